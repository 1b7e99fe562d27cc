package projectkey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/projectkeys/pkg/projectkey"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "two words", input: "Fiesta Lama", expected: []string{"Fiesta", "Lama"}},
		{name: "empty string", input: "", expected: []string{}},
		{name: "whitespace only", input: " \t\n ", expected: []string{}},
		{name: "whitespace runs", input: "  Too    Many \t Spaces  ", expected: []string{"Too", "Many", "Spaces"}},
		{name: "punctuation stripped inside words", input: "O'Brien & Sons", expected: []string{"OBrien", "Sons"}},
		{name: "hyphen joins words", input: "Fiesta-Lama", expected: []string{"FiestaLama"}},
		{name: "digits kept", input: "Project 42", expected: []string{"Project", "42"}},
		{name: "diacritics folded", input: "Café Müller", expected: []string{"Cafe", "Muller"}},
		{name: "letters without decomposition", input: "Øresund Straße Łódź", expected: []string{"Oresund", "Strasse", "Lodz"}},
		{name: "ligatures expanded", input: "ﬁesta ﬂow", expected: []string{"fiesta", "flow"}},
		{name: "fullwidth letters folded", input: "Ｆｉｅｓｔａ Ｌａｍａ", expected: []string{"Fiesta", "Lama"}},
		{name: "non breaking space separates", input: "Fiesta\u00a0Lama", expected: []string{"Fiesta", "Lama"}},
		{name: "non latin script dropped", input: "Проект Alpha", expected: []string{"Alpha"}},
		{name: "only symbols", input: "!!! ??? ***", expected: []string{}},
		{name: "case preserved", input: "iOS app", expected: []string{"iOS", "app"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, projectkey.Normalize(tt.input))
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	t.Parallel()

	first := projectkey.Normalize("Ångström Über Café")
	for range 10 {
		assert.Equal(t, first, projectkey.Normalize("Ångström Über Café"))
	}
}

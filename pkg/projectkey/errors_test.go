package projectkey_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/projectkeys/pkg/projectkey"
)

func TestReasonOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err      error
		expected projectkey.Reason
	}{
		{err: nil, expected: projectkey.ReasonNone},
		{err: errors.New("boom"), expected: projectkey.ReasonNone},
		{err: projectkey.ErrEmptyName, expected: projectkey.ReasonEmptyName},
		{err: projectkey.ErrTooShort, expected: projectkey.ReasonTooShort},
		{err: projectkey.ErrTooLong, expected: projectkey.ReasonTooLong},
		{err: projectkey.ErrBadFormat, expected: projectkey.ReasonBadFormat},
		{err: projectkey.ErrTaken, expected: projectkey.ReasonTaken},
		{err: projectkey.ErrExhaustedKeySpace, expected: projectkey.ReasonExhaustedKeySpace},
		{err: fmt.Errorf("create project: %w", projectkey.ErrTaken), expected: projectkey.ReasonTaken},
		{err: errors.Join(errors.New("db"), projectkey.ErrBadFormat), expected: projectkey.ReasonBadFormat},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, projectkey.ReasonOf(tt.err), "err %v", tt.err)
	}
}

func TestIsKeyError(t *testing.T) {
	t.Parallel()

	assert.True(t, projectkey.IsKeyError(projectkey.ErrTaken))
	assert.False(t, projectkey.IsKeyError(errors.New("connection refused")))
	assert.False(t, projectkey.IsKeyError(nil))
}

func TestCandidate_IsDerived(t *testing.T) {
	t.Parallel()

	assert.False(t, projectkey.Candidate{Key: "FL", Provenance: projectkey.ProvenanceUserSupplied}.IsDerived())
	assert.True(t, projectkey.Candidate{Key: "FL", Provenance: projectkey.ProvenanceDerived}.IsDerived())
	assert.True(t, projectkey.Candidate{Key: "FL1", Provenance: projectkey.ProvenanceDerivedWithSuffix}.IsDerived())
}

func TestReason_Err(t *testing.T) {
	t.Parallel()

	assert.Equal(t, projectkey.ErrTaken, projectkey.ReasonTaken.Err())
	assert.Equal(t, projectkey.ErrExhaustedKeySpace, projectkey.ReasonExhaustedKeySpace.Err())
	assert.NoError(t, projectkey.ReasonNone.Err())
	assert.NoError(t, projectkey.Reason("nope").Err())
}

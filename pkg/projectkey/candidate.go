package projectkey

// Provenance records where a key candidate came from.
type Provenance string

const (
	ProvenanceUserSupplied      Provenance = "user-supplied"
	ProvenanceDerived           Provenance = "derived"
	ProvenanceDerivedWithSuffix Provenance = "derived-with-suffix"
)

// Candidate is a proposed key together with its provenance.
type Candidate struct {
	Key        string
	Provenance Provenance
}

// IsDerived reports whether the key was machine-generated. Only derived keys
// may be auto-suffixed on collision.
func (c Candidate) IsDerived() bool {
	return c.Provenance == ProvenanceDerived || c.Provenance == ProvenanceDerivedWithSuffix
}

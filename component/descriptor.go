package component

import "github.com/willibrandon/vselect/attributes"

// DefaultStatusScheme is the status scheme assumed when a descriptor does
// not declare one, ordered from least to most mature.
var DefaultStatusScheme = []string{"integration", "milestone", "release"}

// Descriptor is a candidate's resolved metadata: its maturity status, the
// ordered scheme that status belongs to, and its declared attributes.
// A Descriptor is immutable once obtained from the resolution gateway.
type Descriptor struct {
	// Status is the candidate's own maturity status, e.g. "milestone".
	Status string

	// StatusScheme orders statuses from least to most mature. When nil,
	// DefaultStatusScheme applies.
	StatusScheme []string

	// Attributes are the candidate's declared attributes.
	Attributes attributes.Set
}

// Scheme returns the descriptor's status scheme, falling back to
// DefaultStatusScheme when none is declared.
func (d *Descriptor) Scheme() []string {
	if len(d.StatusScheme) == 0 {
		return DefaultStatusScheme
	}
	return d.StatusScheme
}

// StatusIndex returns the position of status in the descriptor's scheme,
// or -1 when the scheme does not contain it.
func (d *Descriptor) StatusIndex(status string) int {
	for i, s := range d.Scheme() {
		if s == status {
			return i
		}
	}
	return -1
}

package chooser

import (
	"github.com/willibrandon/vselect/component"
	"github.com/willibrandon/vselect/version"
)

// PickBetter merges two candidates reporting the same component, as when
// two sources answer for one requirement. The strictly newer version wins;
// on equal versions the candidate whose descriptor is already resolved
// wins over a placeholder, since real metadata beats a missing descriptor.
// Ties keep a. Unlike Choose, this never consults rules or attributes and
// never triggers a metadata fetch.
func PickBetter(a, b *component.Candidate, cmp version.Comparator) *component.Candidate {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if cmp == nil {
		cmp = version.DefaultComparator{}
	}

	switch c := cmp.Compare(a.Version(), b.Version()); {
	case c > 0:
		return a
	case c < 0:
		return b
	}

	if _, ok := a.PeekDescriptor(); ok {
		return a
	}
	if _, ok := b.PeekDescriptor(); ok {
		return b
	}
	return a
}

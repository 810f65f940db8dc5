package chooser

import (
	"testing"

	"github.com/willibrandon/vselect/component"
)

func resolved(ver string) *component.Candidate {
	return component.NewResolvedCandidate(
		component.ID{Name: "lib", Version: ver},
		&component.Descriptor{Status: "release"},
	)
}

func placeholder(ver string) *component.Candidate {
	// No resolver and never resolved: a descriptor-less placeholder.
	return component.NewCandidate(component.ID{Name: "lib", Version: ver}, nil)
}

func TestPickBetterNewerWins(t *testing.T) {
	older, newer := placeholder("1.0"), resolved("2.0")
	if got := PickBetter(older, newer, nil); got != newer {
		t.Errorf("PickBetter picked %s, want 2.0", got.ID())
	}
	if got := PickBetter(newer, older, nil); got != newer {
		t.Errorf("PickBetter picked %s, want 2.0", got.ID())
	}

	// Newer version wins even over a resolved descriptor.
	got := PickBetter(resolved("1.0"), placeholder("2.0"), nil)
	if got.ID().Version != "2.0" {
		t.Errorf("PickBetter picked %s, want the strictly newer 2.0", got.ID())
	}
}

func TestPickBetterEqualVersionsPrefersResolved(t *testing.T) {
	p, r := placeholder("1.0"), resolved("1.0")
	if got := PickBetter(p, r, nil); got != r {
		t.Error("equal versions: resolved descriptor should win")
	}
	if got := PickBetter(r, p, nil); got != r {
		t.Error("equal versions: resolved descriptor should win regardless of order")
	}
}

func TestPickBetterEqualVersionsTieKeepsFirst(t *testing.T) {
	a, b := placeholder("1.0"), placeholder("1.0")
	if got := PickBetter(a, b, nil); got != a {
		t.Error("tie between placeholders should keep the first")
	}

	ra, rb := resolved("1.0"), resolved("1.0")
	if got := PickBetter(ra, rb, nil); got != ra {
		t.Error("tie between resolved candidates should keep the first")
	}
}

func TestPickBetterNil(t *testing.T) {
	c := resolved("1.0")
	if got := PickBetter(nil, c, nil); got != c {
		t.Error("nil first argument should yield the second")
	}
	if got := PickBetter(c, nil, nil); got != c {
		t.Error("nil second argument should yield the first")
	}
}

package version

import (
	"testing"
)

func TestParseParts(t *testing.T) {
	tests := []struct {
		input string
		parts []string
	}{
		{"1.2.3", []string{"1", "2", "3"}},
		{"1.2-rc-1", []string{"1", "2", "rc", "1"}},
		{"1.0a", []string{"1", "0", "a"}},
		{"1_0+build7", []string{"1", "0", "build", "7"}},
		{"", nil},
		{"release", []string{"release"}},
		{"1..2", []string{"1", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := Parse(tt.input)
			got := v.Parts()
			if len(got) != len(tt.parts) {
				t.Fatalf("Parse(%q).Parts() = %v, want %v", tt.input, got, tt.parts)
			}
			for i := range got {
				if got[i] != tt.parts[i] {
					t.Errorf("Parse(%q).Parts()[%d] = %q, want %q", tt.input, i, got[i], tt.parts[i])
				}
			}
			if v.String() != tt.input {
				t.Errorf("Parse(%q).String() = %q", tt.input, v.String())
			}
		})
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b  string
		equal bool
	}{
		{"1.0", "1.0", true},
		{"1.0", "1_0", true}, // separators do not matter
		{"1.0", "1.0.0", false},
		{"1.0", "1.1", false},
		{"1.0-rc", "1.0.rc", true},
	}

	for _, tt := range tests {
		if got := Parse(tt.a).Equal(Parse(tt.b)); got != tt.equal {
			t.Errorf("Equal(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.equal)
		}
	}
}

func TestDefaultComparator(t *testing.T) {
	// Each pair asserts a < b.
	ordered := []struct {
		older, newer string
	}{
		{"1.0", "1.1"},
		{"1.0", "2.0"},
		{"1.9", "1.10"},
		{"1.0", "1.0.1"},    // extra numeric part is newer
		{"1.0-rc", "1.0"},   // extra qualifier part is older
		{"1.0-rc-1", "1.0"}, // qualifier decides at first extra part
		{"1.0-dev", "1.0-alpha"},
		{"1.0-alpha", "1.0-beta"},
		{"1.0-beta", "1.0-milestone"},
		{"1.0-milestone", "1.0-rc"},
		{"1.0-rc", "1.0-snapshot"},
		{"1.0-snapshot", "1.0-final"},
		{"1.0-final", "1.0-ga"},
		{"1.0-ga", "1.0-release"},
		{"1.0-release", "1.0-sp"},
		{"1.0-alpha", "1.0-1"}, // numeric beats qualifier
		{"1.0.a", "1.0.1"},
	}

	cmp := DefaultComparator{}
	for _, tt := range ordered {
		a, b := Parse(tt.older), Parse(tt.newer)
		if got := cmp.Compare(a, b); got >= 0 {
			t.Errorf("Compare(%q, %q) = %d, want < 0", tt.older, tt.newer, got)
		}
		if got := cmp.Compare(b, a); got <= 0 {
			t.Errorf("Compare(%q, %q) = %d, want > 0", tt.newer, tt.older, got)
		}
	}
}

func TestDefaultComparatorEqual(t *testing.T) {
	cmp := DefaultComparator{}
	for _, s := range []string{"1.0", "2.0-rc-1", "", "release"} {
		if got := cmp.Compare(Parse(s), Parse(s)); got != 0 {
			t.Errorf("Compare(%q, %q) = %d, want 0", s, s, got)
		}
	}
	// Separator choice does not affect ordering.
	if got := cmp.Compare(Parse("1.0"), Parse("1_0")); got != 0 {
		t.Errorf("Compare(1.0, 1_0) = %d, want 0", got)
	}
}

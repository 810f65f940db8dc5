package selector

import (
	"fmt"
	"strings"

	"github.com/willibrandon/vselect/component"
	"github.com/willibrandon/vselect/version"
)

// Range matches versions inside an interval.
//
// Syntax:
//
//	[1.0, 2.0]   - 1.0 ≤ x ≤ 2.0 (inclusive)
//	(1.0, 2.0)   - 1.0 < x < 2.0 (exclusive)
//	[1.0, 2.0)   - 1.0 ≤ x < 2.0 (mixed)
//	[1.0, )      - x ≥ 1.0 (open upper)
//	(, 2.0]      - x ≤ 2.0 (open lower)
//	[1.0]        - exactly 1.0
type Range struct {
	Min          *version.Version
	Max          *version.Version
	MinInclusive bool
	MaxInclusive bool

	cmp version.Comparator
}

// parseRange parses bracket interval syntax like [1.0, 2.0).
func parseRange(s string) (Range, error) {
	if !strings.HasSuffix(s, "]") && !strings.HasSuffix(s, ")") {
		return Range{}, fmt.Errorf("range must end with ] or ): %q", s)
	}

	minInclusive := strings.HasPrefix(s, "[")
	maxInclusive := strings.HasSuffix(s, "]")

	inner := s[1 : len(s)-1]
	parts := strings.Split(inner, ",")

	var minPart, maxPart string
	switch len(parts) {
	case 1:
		// Single version [1.0] means exactly 1.0
		minPart = strings.TrimSpace(parts[0])
		maxPart = minPart
	case 2:
		minPart = strings.TrimSpace(parts[0])
		maxPart = strings.TrimSpace(parts[1])
	default:
		return Range{}, fmt.Errorf("range must have one or two parts separated by comma: %q", s)
	}

	if minPart == "" && maxPart == "" {
		return Range{}, fmt.Errorf("range must have at least one bound: %q", s)
	}

	r := Range{
		MinInclusive: minInclusive,
		MaxInclusive: maxInclusive,
		cmp:          version.DefaultComparator{},
	}
	if minPart != "" {
		r.Min = version.Parse(minPart)
	}
	if maxPart != "" {
		r.Max = version.Parse(maxPart)
	}
	return r, nil
}

// RequiresMetadata implements Selector; interval matching never needs
// metadata.
func (Range) RequiresMetadata() bool { return false }

// Matches implements Selector.
func (r Range) Matches(v *version.Version, _ *component.Descriptor) bool {
	cmp := r.cmp
	if cmp == nil {
		cmp = version.DefaultComparator{}
	}

	if r.Min != nil {
		c := cmp.Compare(v, r.Min)
		if r.MinInclusive {
			if c < 0 {
				return false
			}
		} else if c <= 0 {
			return false
		}
	}

	if r.Max != nil {
		c := cmp.Compare(v, r.Max)
		if r.MaxInclusive {
			if c > 0 {
				return false
			}
		} else if c >= 0 {
			return false
		}
	}

	return true
}

// String returns the range in interval notation.
func (r Range) String() string {
	minBracket := "("
	if r.MinInclusive {
		minBracket = "["
	}
	maxBracket := ")"
	if r.MaxInclusive {
		maxBracket = "]"
	}

	minStr := ""
	if r.Min != nil {
		minStr = r.Min.String()
	}
	maxStr := ""
	if r.Max != nil {
		maxStr = r.Max.String()
	}

	return fmt.Sprintf("%s%s, %s%s", minBracket, minStr, maxStr, maxBracket)
}

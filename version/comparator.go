package version

import "strconv"

// Comparator defines a total order over versions.
//
// Compare returns a negative number when a orders before b (a is older),
// zero when they order the same, and a positive number when a is newer.
// The selection engine consumes this order; it never re-derives it.
type Comparator interface {
	Compare(a, b *Version) int
}

// specialMeanings ranks well-known qualifiers relative to unknown strings,
// which rank as 0. "1.0-dev" < "1.0-beta" < "1.0-rc" < "1.0-final".
var specialMeanings = map[string]int{
	"dev":      -1,
	"rc":       1,
	"snapshot": 2,
	"final":    3,
	"ga":       4,
	"release":  5,
	"sp":       6,
}

// DefaultComparator orders versions part-wise.
//
// Rules, applied to each part pair in turn:
//   - both numeric: numeric comparison
//   - numeric vs non-numeric: the numeric part is newer
//   - both non-numeric: well-known qualifiers rank per specialMeanings,
//     everything else ranks 0 and falls back to lexicographic order
//
// When one version runs out of parts, each extra part of the longer
// version makes it newer if numeric ("1.0.1" > "1.0") and older if not
// ("1.0-rc" < "1.0").
type DefaultComparator struct{}

// Compare implements Comparator.
func (DefaultComparator) Compare(a, b *Version) int {
	pa, pb := a.Parts(), b.Parts()

	i := 0
	for ; i < len(pa) && i < len(pb); i++ {
		if pa[i] == pb[i] {
			continue
		}
		return comparePart(pa[i], pb[i])
	}

	// Shared prefix exhausted; extra parts decide.
	if i < len(pa) {
		return compareTail(pa[i:])
	}
	if i < len(pb) {
		return -compareTail(pb[i:])
	}
	return 0
}

// comparePart compares two differing version parts.
func comparePart(a, b string) int {
	na, aNum := parseNumeric(a)
	nb, bNum := parseNumeric(b)

	switch {
	case aNum && bNum:
		return na - nb
	case aNum:
		return 1
	case bNum:
		return -1
	}

	sa, aKnown := specialMeanings[a]
	sb, bKnown := specialMeanings[b]
	switch {
	case aKnown && bKnown:
		return sa - sb
	case aKnown:
		return sa
	case bKnown:
		return -sb
	}

	if a < b {
		return -1
	}
	return 1
}

// compareTail decides ordering for the extra parts of the longer version:
// the first numeric part means newer, otherwise older.
func compareTail(extra []string) int {
	if _, ok := parseNumeric(extra[0]); ok {
		return 1
	}
	return -1
}

func parseNumeric(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

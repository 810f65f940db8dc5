// Package version provides version parsing and ordering for dependency
// resolution.
//
// Versions are free-form: any string is a valid version, split into parts
// on '.', '-', '_', '+' and at digit/letter boundaries. Ordering is
// supplied by a Comparator; DefaultComparator implements the newest-first
// total order the selection engine consumes.
//
// Example:
//
//	v := version.Parse("1.2-rc-1")
//	fmt.Println(v.Parts()) // [1 2 rc 1]
package version

import "strings"

// Version is an immutable structured representation of a version string.
//
// Two versions are equal only if their parsed parts are identical; the
// original string is preserved for display.
type Version struct {
	original string
	parts    []string
}

// Parse parses a version string into a Version.
//
// Parsing never fails: a version is any string, split into parts on the
// separators '.', '-', '_', '+' and wherever a digit run meets a letter
// run ("1.0a" parses as [1 0 a]).
func Parse(s string) *Version {
	return &Version{
		original: s,
		parts:    splitParts(s),
	}
}

// String returns the original version string.
func (v *Version) String() string {
	return v.original
}

// Parts returns the parsed version parts. The returned slice must not be
// modified.
func (v *Version) Parts() []string {
	return v.parts
}

// Equal reports whether both versions have identical parts.
//
// "1.0" and "1_0" are equal; "1.0" and "1.0.0" are not.
func (v *Version) Equal(o *Version) bool {
	if o == nil {
		return false
	}
	if len(v.parts) != len(o.parts) {
		return false
	}
	for i, p := range v.parts {
		if p != o.parts[i] {
			return false
		}
	}
	return true
}

// isSeparator reports whether c splits version parts.
func isSeparator(c byte) bool {
	return c == '.' || c == '-' || c == '_' || c == '+'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// splitParts splits a version string into parts on separators and at
// digit/letter boundaries.
func splitParts(s string) []string {
	parts := make([]string, 0, 4)
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		if isSeparator(c) {
			flush()
			continue
		}
		if cur.Len() > 0 {
			prev := s[i-1]
			if !isSeparator(prev) && isDigit(prev) != isDigit(c) {
				flush()
			}
		}
		cur.WriteByte(c)
	}
	flush()

	return parts
}

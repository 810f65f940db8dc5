// Package selector implements version selectors: predicates describing
// which candidate versions satisfy a dependency requirement.
//
// Selector strings follow the build-tool convention:
//
//	1.2.3            - exact structured match
//	1.+              - any version with prefix "1."
//	+                - any version
//	[1.0, 2.0)       - interval notation (see Range)
//	latest.milestone - newest candidate whose status is at least "milestone"
//
// An exclusion constraint uses the identical contract, interpreted
// negatively by the chooser: a candidate otherwise eligible is excluded
// when the constraint selector matches it.
package selector

import (
	"fmt"
	"strings"

	"github.com/willibrandon/vselect/component"
	"github.com/willibrandon/vselect/version"
)

// Selector is a stateless, immutable predicate over candidate versions.
type Selector interface {
	// RequiresMetadata reports whether Matches needs a resolved descriptor.
	// When false the selector decides from the version alone and callers
	// may pass a nil descriptor.
	RequiresMetadata() bool

	// Matches reports whether a candidate at version v satisfies the
	// selector. desc may be nil only when RequiresMetadata reports false.
	Matches(v *version.Version, desc *component.Descriptor) bool

	// String returns the selector in its source notation.
	String() string
}

// latestPrefix introduces status-scheme selectors: "latest.<status>".
const latestPrefix = "latest."

// Parse parses a selector string, dispatching on its syntax.
// Interval selectors order versions with version.DefaultComparator.
func Parse(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("selector cannot be empty")
	}

	switch {
	case strings.HasPrefix(s, latestPrefix):
		status := s[len(latestPrefix):]
		if status == "" {
			return nil, fmt.Errorf("invalid selector %q: missing status", s)
		}
		return Latest{Status: status}, nil

	case s == "+":
		return SubVersion{}, nil

	case strings.HasSuffix(s, ".+"):
		return SubVersion{Prefix: s[:len(s)-1]}, nil

	case strings.HasPrefix(s, "[") || strings.HasPrefix(s, "("):
		return parseRange(s)
	}

	return Exact{Version: version.Parse(s)}, nil
}

// MustParse parses a selector string and panics on error.
// Use this only when you know the selector string is valid.
func MustParse(s string) Selector {
	sel, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// Exact matches a single version by structured equality.
type Exact struct {
	Version *version.Version
}

// RequiresMetadata implements Selector; exact matching never needs metadata.
func (Exact) RequiresMetadata() bool { return false }

// Matches implements Selector.
func (e Exact) Matches(v *version.Version, _ *component.Descriptor) bool {
	return e.Version.Equal(v)
}

func (e Exact) String() string { return e.Version.String() }

// SubVersion matches every version starting with Prefix. The zero value
// (empty prefix, written "+") matches everything.
type SubVersion struct {
	// Prefix includes the trailing dot: "1.+" parses to Prefix "1.".
	Prefix string
}

// RequiresMetadata implements Selector.
func (SubVersion) RequiresMetadata() bool { return false }

// Matches implements Selector.
func (s SubVersion) Matches(v *version.Version, _ *component.Descriptor) bool {
	return strings.HasPrefix(v.String(), s.Prefix)
}

func (s SubVersion) String() string { return s.Prefix + "+" }

// Latest matches candidates whose status is at or above Status in their
// own declared status scheme. It always requires metadata: a candidate's
// status is only known once its descriptor is resolved.
type Latest struct {
	Status string
}

// RequiresMetadata implements Selector.
func (Latest) RequiresMetadata() bool { return true }

// Matches implements Selector. A candidate whose scheme does not contain
// the requested status, or whose own status is unknown to its scheme,
// does not match.
func (l Latest) Matches(_ *version.Version, desc *component.Descriptor) bool {
	if desc == nil {
		return false
	}
	threshold := desc.StatusIndex(l.Status)
	if threshold < 0 {
		return false
	}
	own := desc.StatusIndex(desc.Status)
	return own >= threshold
}

func (l Latest) String() string { return latestPrefix + l.Status }

// Package attributes implements consumer attribute matching for candidate
// selection.
//
// A consumer requests a set of attributes (e.g. color=red); a candidate
// declares attributes in its resolved metadata. Only requested attributes
// are checked: extra attributes on the candidate are ignored. Every
// unmatched requested attribute produces a structured Mismatch so the
// resolution report can say exactly what was asked for and what was found.
package attributes

import (
	"fmt"
	"sort"
	"strings"
)

// Set holds named attribute values.
type Set map[string]string

// IsEmpty reports whether the set has no attributes.
func (s Set) IsEmpty() bool {
	return len(s) == 0
}

// String renders the set as "k1=v1, k2=v2" in key order, for diagnostics.
func (s Set) String() string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%s", k, s[k])
	}
	return sb.String()
}

// Mismatch describes one requested attribute the candidate did not satisfy.
type Mismatch struct {
	// Name is the requested attribute name.
	Name string

	// Requested is the value the consumer asked for.
	Requested string

	// Found is the value the candidate declared. Empty when Absent.
	Found string

	// Absent is true when the candidate declared no value at all for this
	// attribute, distinguishing "missing" from "present but different".
	Absent bool
}

// String renders the mismatch for diagnostics.
func (m Mismatch) String() string {
	if m.Absent {
		return fmt.Sprintf("%s: requested %q, not declared", m.Name, m.Requested)
	}
	return fmt.Sprintf("%s: requested %q, found %q", m.Name, m.Requested, m.Found)
}

// Result is the outcome of matching requested attributes against a
// candidate's declared attributes.
type Result struct {
	// Matched is true when every requested attribute was satisfied.
	Matched bool

	// Mismatches holds one entry per unsatisfied requested attribute,
	// in requested-name order.
	Mismatches []Mismatch
}

// Schema decides whether a declared attribute value satisfies a requested
// one. It is the injected compatibility rule provider: the default is
// strict equality, but a build tool may widen it (for instance treating
// "jre8" as compatible with requested "jdk8").
type Schema interface {
	Compatible(name, requested, found string) bool
}

// EqualitySchema is the default Schema: values match only when equal.
type EqualitySchema struct{}

// Compatible implements Schema.
func (EqualitySchema) Compatible(name, requested, found string) bool {
	return requested == found
}

// Match checks every requested attribute against the candidate's declared
// set under the given schema. Extra candidate attributes are ignored.
//
// Match is only meaningful once the candidate's metadata is available;
// the chooser never invokes it before resolution.
func Match(schema Schema, requested, candidate Set) Result {
	if len(requested) == 0 {
		return Result{Matched: true}
	}
	if schema == nil {
		schema = EqualitySchema{}
	}

	names := make([]string, 0, len(requested))
	for name := range requested {
		names = append(names, name)
	}
	sort.Strings(names)

	var mismatches []Mismatch
	for _, name := range names {
		want := requested[name]
		found, ok := candidate[name]
		if !ok {
			mismatches = append(mismatches, Mismatch{Name: name, Requested: want, Absent: true})
			continue
		}
		if !schema.Compatible(name, want, found) {
			mismatches = append(mismatches, Mismatch{Name: name, Requested: want, Found: found})
		}
	}

	return Result{
		Matched:    len(mismatches) == 0,
		Mismatches: mismatches,
	}
}

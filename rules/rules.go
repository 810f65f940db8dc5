// Package rules implements user-supplied selection rules: policy
// predicates that may reject an otherwise-eligible candidate.
//
// Rules come in two capability levels. A version rule decides from the
// candidate's identifier and version alone; a metadata rule additionally
// inspects the resolved descriptor. The chooser fetches metadata only when
// at least one active rule (or the selector itself) requires it.
package rules

import (
	"github.com/willibrandon/vselect/component"
	"github.com/willibrandon/vselect/observability"
	"github.com/willibrandon/vselect/version"
)

// View is what a rule sees of the candidate under evaluation.
type View interface {
	// ID returns the candidate's identity.
	ID() component.ID

	// Version returns the candidate's structured version.
	Version() *version.Version

	// Descriptor returns the candidate's resolved metadata. It is non-nil
	// only when the rule set declared it requires metadata.
	Descriptor() *component.Descriptor
}

// Verdict is a rule's decision about one candidate.
type Verdict struct {
	Rejected bool
	Reason   string
}

// Accept returns an accepting verdict.
func Accept() Verdict {
	return Verdict{}
}

// Reject returns a rejecting verdict carrying the given reason.
func Reject(reason string) Verdict {
	return Verdict{Rejected: true, Reason: reason}
}

// Rule is an immutable selection rule.
type Rule interface {
	// Name identifies the rule in logs and cache keys.
	Name() string

	// RequiresMetadata reports whether Apply inspects the descriptor.
	RequiresMetadata() bool

	// Apply evaluates the rule against one candidate.
	Apply(view View) Verdict
}

// versionRule evaluates from identifier and version only.
type versionRule struct {
	name string
	fn   func(component.ID, *version.Version) Verdict
}

// VersionRule creates a rule that decides from the candidate's identifier
// and version, without metadata.
func VersionRule(name string, fn func(component.ID, *version.Version) Verdict) Rule {
	return versionRule{name: name, fn: fn}
}

func (r versionRule) Name() string            { return r.name }
func (r versionRule) RequiresMetadata() bool  { return false }
func (r versionRule) Apply(view View) Verdict { return r.fn(view.ID(), view.Version()) }

// metadataRule additionally inspects the resolved descriptor.
type metadataRule struct {
	name string
	fn   func(component.ID, *version.Version, *component.Descriptor) Verdict
}

// MetadataRule creates a rule that inspects the candidate's resolved
// descriptor. Registering one forces metadata resolution for every
// candidate that reaches the rule stage.
func MetadataRule(name string, fn func(component.ID, *version.Version, *component.Descriptor) Verdict) Rule {
	return metadataRule{name: name, fn: fn}
}

func (r metadataRule) Name() string           { return r.name }
func (r metadataRule) RequiresMetadata() bool { return true }
func (r metadataRule) Apply(view View) Verdict {
	return r.fn(view.ID(), view.Version(), view.Descriptor())
}

// Set is an ordered collection of selection rules.
//
// Rules are evaluated in registration order and the first rejecting rule
// wins: remaining rules are not evaluated for that candidate, and no rule
// can override another's rejection.
type Set struct {
	rules []Rule
	cache *EvalCache
}

// NewSet creates a rule set evaluating the given rules in order.
func NewSet(ruleList ...Rule) *Set {
	return &Set{rules: ruleList}
}

// WithCache returns a copy of the set that memoizes per-candidate verdicts
// in the given cache.
func (s *Set) WithCache(cache *EvalCache) *Set {
	return &Set{rules: s.rules, cache: cache}
}

// Empty reports whether the set has no rules.
func (s *Set) Empty() bool {
	return s == nil || len(s.rules) == 0
}

// RequiresMetadata reports whether any rule in the set needs the resolved
// descriptor.
func (s *Set) RequiresMetadata() bool {
	if s == nil {
		return false
	}
	for _, r := range s.rules {
		if r.RequiresMetadata() {
			return true
		}
	}
	return false
}

// Apply evaluates the rules in order against the candidate. An empty set
// accepts trivially.
func (s *Set) Apply(view View) Verdict {
	if s.Empty() {
		return Accept()
	}

	for _, r := range s.rules {
		var verdict Verdict
		if s.cache != nil {
			verdict = s.cache.Apply(r, view)
		} else {
			verdict = r.Apply(view)
		}

		if verdict.Rejected {
			observability.RuleEvaluationsTotal.WithLabelValues("rejected").Inc()
			return verdict
		}
		observability.RuleEvaluationsTotal.WithLabelValues("accepted").Inc()
	}
	return Accept()
}

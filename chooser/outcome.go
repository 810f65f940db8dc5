// Package chooser implements the version-selection core: given a
// dependency requirement and a set of candidate components, it walks the
// candidates newest-to-oldest and selects the first that survives the
// filter pipeline (version selector, exclusion constraint, consumer
// attributes, selection rules), reporting one outcome per candidate
// examined plus exactly one terminal outcome per call.
package chooser

import (
	"github.com/willibrandon/vselect/attributes"
	"github.com/willibrandon/vselect/component"
)

// OutcomeKind enumerates per-candidate and terminal selection outcomes.
type OutcomeKind int

const (
	// OutcomeNotMatched means the candidate failed the version selector.
	OutcomeNotMatched OutcomeKind = iota

	// OutcomeRejectedByConstraint means the exclusion selector matched the
	// candidate.
	OutcomeRejectedByConstraint

	// OutcomeRejectedByRule means a selection rule rejected the candidate.
	OutcomeRejectedByRule

	// OutcomeAttributeMismatch means the candidate's declared attributes
	// did not satisfy the consumer's requested attributes.
	OutcomeAttributeMismatch

	// OutcomeMatched is the terminal success outcome.
	OutcomeMatched

	// OutcomeResolutionFailed is the terminal failure outcome: a
	// candidate's metadata fetch failed and the search stopped.
	OutcomeResolutionFailed

	// OutcomeNoMatchFound is the terminal outcome when the candidate set
	// is exhausted without a match. It is not an error: it lets the caller
	// build a precise diagnostic from the per-candidate outcomes.
	OutcomeNoMatchFound
)

// String returns the outcome kind in snake_case, as used for metric labels.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNotMatched:
		return "not_matched"
	case OutcomeRejectedByConstraint:
		return "rejected_by_constraint"
	case OutcomeRejectedByRule:
		return "rejected_by_rule"
	case OutcomeAttributeMismatch:
		return "attribute_mismatch"
	case OutcomeMatched:
		return "matched"
	case OutcomeResolutionFailed:
		return "resolution_failed"
	case OutcomeNoMatchFound:
		return "no_match_found"
	default:
		return "unknown"
	}
}

// Terminal reports whether the kind ends a selection call.
func (k OutcomeKind) Terminal() bool {
	return k == OutcomeMatched || k == OutcomeResolutionFailed || k == OutcomeNoMatchFound
}

// Sink receives selection outcomes as they are decided, in candidate
// order. Downstream resolution-report tooling implements it to build
// diagnostics; RecordingSink is the in-memory implementation.
type Sink interface {
	// NotMatched reports a candidate that failed the version selector.
	NotMatched(id component.ID)

	// RejectedByConstraint reports a candidate excluded by the constraint
	// selector.
	RejectedByConstraint(id component.ID)

	// RejectedByRule reports a candidate rejected by a selection rule.
	RejectedByRule(id component.ID, reason string)

	// DoesNotMatchConsumerAttributes reports a candidate whose declared
	// attributes did not satisfy the request.
	DoesNotMatchConsumerAttributes(id component.ID, mismatches []attributes.Mismatch)

	// Matches reports the selected candidate. Terminal.
	Matches(id component.ID)

	// NoMatchFound reports exhaustion of the candidate set. Terminal.
	NoMatchFound()

	// Failed reports a metadata resolution failure. Terminal.
	Failed(err *component.ResolutionError)
}

// Event is one recorded selection outcome.
type Event struct {
	Kind OutcomeKind

	// ID identifies the candidate; zero for NoMatchFound.
	ID component.ID

	// Mismatches is set for AttributeMismatch events.
	Mismatches []attributes.Mismatch

	// Reason is set for RejectedByRule events.
	Reason string

	// Err is set for ResolutionFailed events.
	Err *component.ResolutionError
}

// RecordingSink accumulates the ordered outcome sequence of a selection
// call, turning the sink contract into a pure value for inspection and
// testing. Not safe for concurrent use; a selection call is sequential.
type RecordingSink struct {
	events []Event
}

// NewRecordingSink creates an empty recording sink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

// Events returns the recorded outcome sequence in report order.
func (r *RecordingSink) Events() []Event {
	return r.events
}

// NotMatched implements Sink.
func (r *RecordingSink) NotMatched(id component.ID) {
	r.events = append(r.events, Event{Kind: OutcomeNotMatched, ID: id})
}

// RejectedByConstraint implements Sink.
func (r *RecordingSink) RejectedByConstraint(id component.ID) {
	r.events = append(r.events, Event{Kind: OutcomeRejectedByConstraint, ID: id})
}

// RejectedByRule implements Sink.
func (r *RecordingSink) RejectedByRule(id component.ID, reason string) {
	r.events = append(r.events, Event{Kind: OutcomeRejectedByRule, ID: id, Reason: reason})
}

// DoesNotMatchConsumerAttributes implements Sink.
func (r *RecordingSink) DoesNotMatchConsumerAttributes(id component.ID, mismatches []attributes.Mismatch) {
	r.events = append(r.events, Event{Kind: OutcomeAttributeMismatch, ID: id, Mismatches: mismatches})
}

// Matches implements Sink.
func (r *RecordingSink) Matches(id component.ID) {
	r.events = append(r.events, Event{Kind: OutcomeMatched, ID: id})
}

// NoMatchFound implements Sink.
func (r *RecordingSink) NoMatchFound() {
	r.events = append(r.events, Event{Kind: OutcomeNoMatchFound})
}

// Failed implements Sink.
func (r *RecordingSink) Failed(err *component.ResolutionError) {
	r.events = append(r.events, Event{Kind: OutcomeResolutionFailed, ID: err.ID, Err: err})
}

package chooser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/willibrandon/vselect/attributes"
	"github.com/willibrandon/vselect/component"
	"github.com/willibrandon/vselect/observability"
	"github.com/willibrandon/vselect/rules"
	"github.com/willibrandon/vselect/selector"
	"github.com/willibrandon/vselect/version"
)

// Request is the input to one selection call.
type Request struct {
	// Candidates is the unordered candidate set. The chooser holds the
	// handles only for the duration of the call.
	Candidates []*component.Candidate

	// Selector is the primary version selector. Required.
	Selector selector.Selector

	// Constraint is an optional exclusion selector: a candidate otherwise
	// eligible is excluded when it matches.
	Constraint selector.Selector

	// Attributes are the consumer's requested attributes; may be empty.
	Attributes attributes.Set

	// Rules are the active selection rules; may be nil.
	Rules *rules.Set
}

// Selection is the terminal result of one selection call.
type Selection struct {
	// State is OutcomeMatched, OutcomeNoMatchFound, or
	// OutcomeResolutionFailed.
	State OutcomeKind

	// Candidate is the selected candidate when State is OutcomeMatched.
	Candidate *component.Candidate

	// Err carries the resolution failure when State is
	// OutcomeResolutionFailed.
	Err *component.ResolutionError
}

// Result pairs the ordered outcome sequence with the terminal selection,
// making the whole call a pure function of its inputs.
type Result struct {
	Events    []Event
	Selection *Selection
}

// Chooser selects the best-matching candidate for a dependency
// requirement. It is stateless across calls and safe for concurrent use.
type Chooser struct {
	cmp    version.Comparator
	schema attributes.Schema
	logger observability.Logger
}

// Option configures a Chooser.
type Option func(*Chooser)

// WithComparator sets the version comparator. Default: DefaultComparator.
func WithComparator(cmp version.Comparator) Option {
	return func(c *Chooser) { c.cmp = cmp }
}

// WithSchema sets the attribute compatibility schema. Default: equality.
func WithSchema(schema attributes.Schema) Option {
	return func(c *Chooser) { c.schema = schema }
}

// WithLogger sets the logger. Default: discard.
func WithLogger(logger observability.Logger) Option {
	return func(c *Chooser) { c.logger = logger }
}

// New creates a Chooser.
func New(opts ...Option) *Chooser {
	c := &Chooser{
		cmp:    version.DefaultComparator{},
		schema: attributes.EqualitySchema{},
		logger: observability.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// candidateView adapts a candidate to the rules.View contract. The
// descriptor is exposed only when the rule set declared it needs one.
type candidateView struct {
	cand *component.Candidate
	desc *component.Descriptor
}

func (v candidateView) ID() component.ID                  { return v.cand.ID() }
func (v candidateView) Version() *version.Version         { return v.cand.Version() }
func (v candidateView) Descriptor() *component.Descriptor { return v.desc }

// Choose runs one selection call, reporting each outcome into sink in
// candidate order, newest first.
//
// The returned Selection is the terminal result; the error is non-nil only
// when the call terminated with a resolution failure, in which case it is
// the *component.ResolutionError also reported to the sink. Rejections and
// non-matches are never errors.
func (c *Chooser) Choose(ctx context.Context, req Request, sink Sink) (*Selection, error) {
	if req.Selector == nil {
		return nil, fmt.Errorf("selection request has no version selector")
	}

	ctx, span := observability.StartSpan(ctx, "vselect.choose")
	defer span.End()

	log := c.logger.ForContext("SelectionId", uuid.NewString())
	log.Debug("Selecting from {CandidateCount} candidates with selector {Selector}",
		len(req.Candidates), req.Selector.String())
	span.SetAttributes(
		attribute.String("vselect.selector", req.Selector.String()),
		attribute.Int("vselect.candidates", len(req.Candidates)),
	)

	selectorNeedsMD := req.Selector.RequiresMetadata()
	constraintNeedsMD := req.Constraint != nil && req.Constraint.RequiresMetadata()
	rulesNeedMD := req.Rules.RequiresMetadata()
	attrsRequested := !req.Attributes.IsEmpty()

	sorted := component.SortDescending(req.Candidates, c.cmp)

	examined := 0
	for _, cand := range sorted {
		examined++
		id := cand.ID()
		constraintChecked := false

		// Static checks run first: they are free, and metadata resolution
		// is only paid for once the version already looks plausible.
		if !selectorNeedsMD {
			if !req.Selector.Matches(cand.Version(), nil) {
				c.report(log, sink, Event{Kind: OutcomeNotMatched, ID: id})
				continue
			}
			if req.Constraint != nil && !constraintNeedsMD {
				constraintChecked = true
				if req.Constraint.Matches(cand.Version(), nil) {
					c.report(log, sink, Event{Kind: OutcomeRejectedByConstraint, ID: id})
					continue
				}
			}
		}

		var desc *component.Descriptor
		if selectorNeedsMD || constraintNeedsMD || attrsRequested || rulesNeedMD {
			var err error
			desc, err = c.resolve(ctx, cand)
			if err != nil {
				var resErr *component.ResolutionError
				errors.As(err, &resErr)
				c.report(log, sink, Event{Kind: OutcomeResolutionFailed, ID: id, Err: resErr})
				c.finish(span, OutcomeResolutionFailed, examined)
				return &Selection{State: OutcomeResolutionFailed, Err: resErr}, resErr
			}
		}

		if selectorNeedsMD && !req.Selector.Matches(cand.Version(), desc) {
			c.report(log, sink, Event{Kind: OutcomeNotMatched, ID: id})
			continue
		}

		if req.Constraint != nil && !constraintChecked &&
			req.Constraint.Matches(cand.Version(), desc) {
			c.report(log, sink, Event{Kind: OutcomeRejectedByConstraint, ID: id})
			continue
		}

		if attrsRequested {
			res := attributes.Match(c.schema, req.Attributes, desc.Attributes)
			if !res.Matched {
				c.report(log, sink, Event{Kind: OutcomeAttributeMismatch, ID: id, Mismatches: res.Mismatches})
				continue
			}
		}

		// Rules see the descriptor only when the set declared it needs one.
		view := candidateView{cand: cand}
		if rulesNeedMD {
			view.desc = desc
		}
		if verdict := req.Rules.Apply(view); verdict.Rejected {
			c.report(log, sink, Event{Kind: OutcomeRejectedByRule, ID: id, Reason: verdict.Reason})
			continue
		}

		c.report(log, sink, Event{Kind: OutcomeMatched, ID: id})
		c.finish(span, OutcomeMatched, examined)
		return &Selection{State: OutcomeMatched, Candidate: cand}, nil
	}

	c.report(log, sink, Event{Kind: OutcomeNoMatchFound})
	c.finish(span, OutcomeNoMatchFound, examined)
	return &Selection{State: OutcomeNoMatchFound}, nil
}

// Select runs Choose with a recording sink and returns the full ordered
// outcome ledger alongside the terminal selection.
func (c *Chooser) Select(ctx context.Context, req Request) (*Result, error) {
	rec := NewRecordingSink()
	sel, err := c.Choose(ctx, req, rec)
	if sel == nil {
		return nil, err
	}
	return &Result{Events: rec.Events(), Selection: sel}, err
}

// resolve fetches the candidate's descriptor, timing the fetch. The
// candidate handle itself guarantees the at-most-once semantics.
func (c *Chooser) resolve(ctx context.Context, cand *component.Candidate) (*component.Descriptor, error) {
	ctx, span := observability.StartSpan(ctx, "vselect.resolve_metadata")
	defer span.End()
	span.SetAttributes(attribute.String("vselect.component", cand.ID().String()))

	start := time.Now()
	desc, err := cand.Resolve(ctx)
	if err != nil {
		observability.MetadataFetchDuration.WithLabelValues("failure").Observe(time.Since(start).Seconds())
		observability.RecordError(ctx, err)
		return nil, err
	}
	observability.MetadataFetchDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	return desc, nil
}

// report delivers one outcome to the sink and records it in logs/metrics.
func (c *Chooser) report(log observability.Logger, sink Sink, ev Event) {
	observability.SelectionOutcomesTotal.WithLabelValues(ev.Kind.String()).Inc()

	switch ev.Kind {
	case OutcomeNotMatched:
		log.Verbose("Candidate {ComponentId} does not match the version selector", ev.ID.String())
		sink.NotMatched(ev.ID)
	case OutcomeRejectedByConstraint:
		log.Verbose("Candidate {ComponentId} rejected by constraint", ev.ID.String())
		sink.RejectedByConstraint(ev.ID)
	case OutcomeRejectedByRule:
		log.Debug("Candidate {ComponentId} rejected by rule: {Reason}", ev.ID.String(), ev.Reason)
		sink.RejectedByRule(ev.ID, ev.Reason)
	case OutcomeAttributeMismatch:
		log.Debug("Candidate {ComponentId} does not match consumer attributes", ev.ID.String())
		sink.DoesNotMatchConsumerAttributes(ev.ID, ev.Mismatches)
	case OutcomeMatched:
		log.Debug("Selected {ComponentId}", ev.ID.String())
		sink.Matches(ev.ID)
	case OutcomeNoMatchFound:
		log.Debug("No candidate matched")
		sink.NoMatchFound()
	case OutcomeResolutionFailed:
		log.Error("Metadata resolution failed for {ComponentId}: {Error}", ev.ID.String(), ev.Err.Error())
		sink.Failed(ev.Err)
	}
}

// finish records the terminal state of a selection call.
func (c *Chooser) finish(span trace.Span, state OutcomeKind, examined int) {
	observability.SelectionCallsTotal.WithLabelValues(state.String()).Inc()
	observability.SelectionCandidatesExamined.Observe(float64(examined))
	span.SetAttributes(
		attribute.String("vselect.outcome", state.String()),
		attribute.Int("vselect.examined", examined),
	)
}

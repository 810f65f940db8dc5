package component

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/willibrandon/vselect/version"
)

var errNoResolver = errors.New("no metadata resolver configured")

// MetadataResolver is the resolution gateway: it fetches a candidate's
// descriptor. Implementations may hit the network or persistent storage;
// the engine never calls it more than once per candidate handle.
type MetadataResolver interface {
	Resolve(ctx context.Context, id ID) (*Descriptor, error)
}

// ResolverFunc adapts a function to the MetadataResolver interface.
type ResolverFunc func(ctx context.Context, id ID) (*Descriptor, error)

// Resolve implements MetadataResolver.
func (f ResolverFunc) Resolve(ctx context.Context, id ID) (*Descriptor, error) {
	return f(ctx, id)
}

// Candidate is one component at one version, competing for selection.
//
// The structured version is available immediately; the metadata descriptor
// is fetched lazily through the resolver, at most once for the lifetime of
// the handle. The first resolution outcome, success or failure, is latched:
// concurrent callers wait for it and later callers receive it without
// re-triggering the fetch.
type Candidate struct {
	id       ID
	version  *version.Version
	resolver MetadataResolver

	once sync.Once
	done chan struct{}
	desc *Descriptor
	err  error
}

// NewCandidate creates a candidate whose metadata resolves lazily through
// resolver.
func NewCandidate(id ID, resolver MetadataResolver) *Candidate {
	return &Candidate{
		id:       id,
		version:  version.Parse(id.Version),
		resolver: resolver,
		done:     make(chan struct{}),
	}
}

// NewResolvedCandidate creates a candidate whose descriptor is already
// known; Resolve returns it without consulting any resolver.
func NewResolvedCandidate(id ID, desc *Descriptor) *Candidate {
	c := &Candidate{
		id:      id,
		version: version.Parse(id.Version),
		done:    make(chan struct{}),
	}
	c.once.Do(func() {
		c.desc = desc
		close(c.done)
	})
	return c
}

// ID returns the candidate's identity.
func (c *Candidate) ID() ID {
	return c.id
}

// Version returns the candidate's structured version.
func (c *Candidate) Version() *version.Version {
	return c.version
}

// Resolve fetches the candidate's metadata descriptor.
//
// The fetch runs at most once per candidate: repeated and concurrent calls
// return the latched first outcome. A failure is wrapped in a
// *ResolutionError carrying the candidate's identity.
func (c *Candidate) Resolve(ctx context.Context) (*Descriptor, error) {
	c.once.Do(func() {
		defer close(c.done)
		if c.resolver == nil {
			c.err = &ResolutionError{ID: c.id, Err: errNoResolver}
			return
		}
		desc, err := c.resolver.Resolve(ctx, c.id)
		if err != nil {
			c.err = &ResolutionError{ID: c.id, Err: err}
			return
		}
		c.desc = desc
	})
	<-c.done
	return c.desc, c.err
}

// PeekDescriptor returns the already-resolved descriptor without
// triggering a fetch. The second result is false when resolution has not
// completed successfully yet.
func (c *Candidate) PeekDescriptor() (*Descriptor, bool) {
	select {
	case <-c.done:
		if c.err != nil {
			return nil, false
		}
		return c.desc, true
	default:
		return nil, false
	}
}

// SortDescending returns the candidates ordered newest-first under cmp.
// The sort is stable: candidates whose versions compare equal keep their
// input order. The input slice is not modified.
func SortDescending(candidates []*Candidate, cmp version.Comparator) []*Candidate {
	sorted := make([]*Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return cmp.Compare(sorted[i].version, sorted[j].version) > 0
	})
	return sorted
}

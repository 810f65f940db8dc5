package component

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/willibrandon/vselect/version"
)

func TestCandidateResolveOnce(t *testing.T) {
	var calls atomic.Int32
	resolver := ResolverFunc(func(_ context.Context, id ID) (*Descriptor, error) {
		calls.Add(1)
		return &Descriptor{Status: "release"}, nil
	})

	c := NewCandidate(ID{Group: "org.example", Name: "lib", Version: "1.0"}, resolver)

	first, err := c.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	second, err := c.Resolve(context.Background())
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}

	if first != second {
		t.Error("repeated Resolve must return the same descriptor value")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("resolver called %d times, want 1", got)
	}
}

func TestCandidateResolveFailureLatched(t *testing.T) {
	var calls atomic.Int32
	fetchErr := errors.New("repository unreachable")
	resolver := ResolverFunc(func(_ context.Context, id ID) (*Descriptor, error) {
		calls.Add(1)
		return nil, fetchErr
	})

	c := NewCandidate(ID{Name: "lib", Version: "1.0"}, resolver)

	_, err1 := c.Resolve(context.Background())
	_, err2 := c.Resolve(context.Background())

	if err1 == nil || err2 == nil {
		t.Fatal("expected resolution failures")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("failed resolution retried: resolver called %d times, want 1", got)
	}

	var resErr *ResolutionError
	if !errors.As(err1, &resErr) {
		t.Fatalf("error is %T, want *ResolutionError", err1)
	}
	if resErr.ID.Version != "1.0" {
		t.Errorf("error carries ID %s, want version 1.0", resErr.ID)
	}
	if !errors.Is(err1, fetchErr) {
		t.Error("wrapped fetch error lost")
	}
}

func TestCandidateResolveConcurrent(t *testing.T) {
	var calls atomic.Int32
	resolver := ResolverFunc(func(_ context.Context, id ID) (*Descriptor, error) {
		calls.Add(1)
		time.Sleep(50 * time.Millisecond) // Simulate a slow fetch
		return &Descriptor{Status: "release"}, nil
	})

	c := NewCandidate(ID{Name: "lib", Version: "1.0"}, resolver)

	var wg sync.WaitGroup
	descs := make([]*Descriptor, 10)
	for i := range 10 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			desc, err := c.Resolve(context.Background())
			if err != nil {
				t.Errorf("Resolve failed: %v", err)
				return
			}
			descs[i] = desc
		}(i)
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("concurrent Resolve triggered %d fetches, want 1", got)
	}
	for i, d := range descs {
		if d != descs[0] {
			t.Errorf("caller %d received a different descriptor", i)
		}
	}
}

func TestCandidatePeekDescriptor(t *testing.T) {
	resolver := ResolverFunc(func(_ context.Context, id ID) (*Descriptor, error) {
		return &Descriptor{Status: "release"}, nil
	})
	c := NewCandidate(ID{Name: "lib", Version: "1.0"}, resolver)

	if _, ok := c.PeekDescriptor(); ok {
		t.Error("PeekDescriptor before Resolve must not report a descriptor")
	}

	want, err := c.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	got, ok := c.PeekDescriptor()
	if !ok || got != want {
		t.Error("PeekDescriptor after Resolve should return the latched descriptor")
	}
}

func TestCandidatePeekAfterFailure(t *testing.T) {
	resolver := ResolverFunc(func(_ context.Context, id ID) (*Descriptor, error) {
		return nil, errors.New("boom")
	})
	c := NewCandidate(ID{Name: "lib", Version: "1.0"}, resolver)
	_, _ = c.Resolve(context.Background())

	if _, ok := c.PeekDescriptor(); ok {
		t.Error("PeekDescriptor after a failed resolution must not report a descriptor")
	}
}

func TestNewResolvedCandidate(t *testing.T) {
	desc := &Descriptor{Status: "milestone"}
	c := NewResolvedCandidate(ID{Name: "lib", Version: "2.0"}, desc)

	got, ok := c.PeekDescriptor()
	if !ok || got != desc {
		t.Error("resolved candidate should expose its descriptor immediately")
	}

	fromResolve, err := c.Resolve(context.Background())
	if err != nil || fromResolve != desc {
		t.Error("Resolve on a resolved candidate should return the given descriptor")
	}
}

func TestCandidateNoResolver(t *testing.T) {
	c := NewCandidate(ID{Name: "lib", Version: "1.0"}, nil)
	if _, err := c.Resolve(context.Background()); err == nil {
		t.Error("Resolve without a resolver should fail")
	}
}

func TestSortDescending(t *testing.T) {
	mk := func(name, ver string) *Candidate {
		return NewCandidate(ID{Name: name, Version: ver}, nil)
	}

	input := []*Candidate{
		mk("a", "1.0"),
		mk("b", "2.0"),
		mk("c", "1_0"), // equal to 1.0; must stay after "a"
		mk("d", "0.9"),
		mk("e", "2.0-rc-1"),
	}

	sorted := SortDescending(input, version.DefaultComparator{})

	got := make([]string, len(sorted))
	for i, c := range sorted {
		got[i] = c.ID().Name
	}
	want := []string{"b", "e", "a", "c", "d"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}

	// Input slice untouched.
	if input[0].ID().Name != "a" {
		t.Error("SortDescending modified its input")
	}
}

func TestIDString(t *testing.T) {
	id := ID{Group: "org.example", Name: "lib", Version: "1.0"}
	if got := id.String(); got != "org.example:lib:1.0" {
		t.Errorf("String() = %q", got)
	}
	id = ID{Name: "lib", Version: "1.0"}
	if got := id.String(); got != "lib:1.0" {
		t.Errorf("String() without group = %q", got)
	}
}

func TestDescriptorStatusIndex(t *testing.T) {
	d := &Descriptor{Status: "milestone"}
	if got := d.StatusIndex("integration"); got != 0 {
		t.Errorf("StatusIndex(integration) = %d under default scheme", got)
	}
	if got := d.StatusIndex("release"); got != 2 {
		t.Errorf("StatusIndex(release) = %d under default scheme", got)
	}
	if got := d.StatusIndex("nightly"); got != -1 {
		t.Errorf("StatusIndex(nightly) = %d, want -1", got)
	}

	custom := &Descriptor{Status: "gold", StatusScheme: []string{"bronze", "silver", "gold"}}
	if got := custom.StatusIndex("gold"); got != 2 {
		t.Errorf("StatusIndex(gold) = %d under custom scheme", got)
	}
}

package rules

import "sync"

// EvalCache memoizes rule verdicts across selection calls, keyed by
// candidate identity plus rule name. It replaces the ambient global
// rule-execution cache of older engines with an explicitly injected
// collaborator, so selection calls stay independently testable.
//
// Each (candidate, rule) pair is evaluated at most once; concurrent
// evaluations for the same pair share the first result.
type EvalCache struct {
	entries sync.Map // key -> *evalEntry
}

type evalEntry struct {
	once    sync.Once
	verdict Verdict
}

// NewEvalCache creates an empty rule-evaluation cache.
func NewEvalCache() *EvalCache {
	return &EvalCache{}
}

// Apply evaluates rule against view, memoized by (candidate ID, rule name).
func (c *EvalCache) Apply(rule Rule, view View) Verdict {
	key := view.ID().String() + "\x00" + rule.Name()

	e, _ := c.entries.LoadOrStore(key, &evalEntry{})
	ent := e.(*evalEntry)
	ent.once.Do(func() {
		ent.verdict = rule.Apply(view)
	})
	return ent.verdict
}

// Clear removes all memoized verdicts.
func (c *EvalCache) Clear() {
	c.entries.Range(func(key, _ any) bool {
		c.entries.Delete(key)
		return true
	})
}

package component

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/willibrandon/vselect/observability"
)

// DescriptorCache is an LRU cache with TTL for resolved descriptors,
// keyed by component ID. It backs a CachingResolver so repeated selection
// calls over the same candidate universe do not refetch metadata. Safe for
// concurrent use.
type DescriptorCache struct {
	maxEntries int
	ttl        time.Duration

	mu      sync.Mutex
	entries map[ID]*list.Element
	lruList *list.List
}

// cacheEntry wraps the key and value for the LRU list.
type cacheEntry struct {
	id     ID
	desc   *Descriptor
	expiry time.Time
}

// NewDescriptorCache creates a descriptor cache holding at most maxEntries
// descriptors, each for at most ttl.
func NewDescriptorCache(maxEntries int, ttl time.Duration) *DescriptorCache {
	return &DescriptorCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		entries:    make(map[ID]*list.Element),
		lruList:    list.New(),
	}
}

// Get retrieves a descriptor from the cache.
// Returns (desc, true) if present and not expired, (nil, false) otherwise.
func (dc *DescriptorCache) Get(id ID) (*Descriptor, bool) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	elem, ok := dc.entries[id]
	if !ok {
		return nil, false
	}

	ent := elem.Value.(*cacheEntry)
	if time.Now().After(ent.expiry) {
		dc.removeElement(elem)
		return nil, false
	}

	dc.lruList.MoveToFront(elem)
	return ent.desc, true
}

// Set adds or updates a descriptor in the cache.
func (dc *DescriptorCache) Set(id ID, desc *Descriptor) {
	dc.mu.Lock()
	defer dc.mu.Unlock()

	expiry := time.Now().Add(dc.ttl)

	if elem, ok := dc.entries[id]; ok {
		ent := elem.Value.(*cacheEntry)
		ent.desc = desc
		ent.expiry = expiry
		dc.lruList.MoveToFront(elem)
		return
	}

	elem := dc.lruList.PushFront(&cacheEntry{id: id, desc: desc, expiry: expiry})
	dc.entries[id] = elem

	for dc.lruList.Len() > dc.maxEntries {
		if back := dc.lruList.Back(); back != nil {
			dc.removeElement(back)
		}
	}
}

// Len returns the number of cached descriptors.
func (dc *DescriptorCache) Len() int {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.lruList.Len()
}

// removeElement removes an element from the cache (must hold lock).
func (dc *DescriptorCache) removeElement(elem *list.Element) {
	ent := elem.Value.(*cacheEntry)
	delete(dc.entries, ent.id)
	dc.lruList.Remove(elem)
}

// CachingResolver wraps a MetadataResolver with a DescriptorCache.
// Fetch failures are not cached: retry policy belongs to the inner
// resolver, and a later selection call may succeed.
type CachingResolver struct {
	inner MetadataResolver
	cache *DescriptorCache
}

// NewCachingResolver wraps inner with the given cache.
func NewCachingResolver(inner MetadataResolver, cache *DescriptorCache) *CachingResolver {
	return &CachingResolver{inner: inner, cache: cache}
}

// Resolve implements MetadataResolver.
func (r *CachingResolver) Resolve(ctx context.Context, id ID) (*Descriptor, error) {
	if desc, ok := r.cache.Get(id); ok {
		observability.DescriptorCacheHitsTotal.Inc()
		return desc, nil
	}
	observability.DescriptorCacheMissesTotal.Inc()

	desc, err := r.inner.Resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Set(id, desc)
	return desc, nil
}

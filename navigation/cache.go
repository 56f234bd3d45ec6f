package navigation

import (
	"sync"
	"time"

	"github.com/gravitas-015/hexcore/hex"
)

// cacheKey identifies one query: strategy, start, goal and the
// context fingerprint. The fingerprint covers every context field
// that influences output, so two semantically different queries never
// share an entry
type cacheKey struct {
	algo  Strategy
	start hex.Axial
	goal  hex.Axial
	ctxFp uint64
}

// cacheEntry holds a finished result, when it was stored, and the set
// of cells the search consulted, so terrain changes can evict exactly
// the entries they could affect
type cacheEntry struct {
	result  Result
	stored  time.Time
	touched map[hex.Axial]struct{}
}

// resultCache is a TTL + size-bounded path result cache. Reads run
// concurrently under RLock; writes are serialized. Overflow triggers a
// wholesale clear rather than LRU, a deliberate simplicity trade:
// staleness is already bounded by the TTL
type resultCache struct {
	mu       sync.RWMutex
	entries  map[cacheKey]*cacheEntry
	ttl      time.Duration
	capacity int
}

func newResultCache(ttl time.Duration, capacity int) *resultCache {
	return &resultCache{
		entries:  make(map[cacheKey]*cacheEntry),
		ttl:      ttl,
		capacity: capacity,
	}
}

// get returns the cached result for key if present and unexpired
func (c *resultCache) get(key cacheKey) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		return Result{}, false
	}
	if time.Since(e.stored) > c.ttl {
		return Result{}, false
	}
	// Each hit gets its own path slice. Callers own their Result and
	// may mutate it; sharing the stored backing array would let one
	// caller corrupt every later hit
	r := e.result
	if len(r.Path) > 0 {
		r.Path = append([]hex.Axial(nil), r.Path...)
	}
	return r, true
}

// put stores a result. Exceeding capacity clears the whole cache first
func (c *resultCache) put(key cacheKey, r Result, touched map[hex.Axial]struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.capacity {
		c.entries = make(map[cacheKey]*cacheEntry)
	}
	c.entries[key] = &cacheEntry{
		result:  r,
		stored:  time.Now(),
		touched: touched,
	}
}

// invalidateCell removes every entry whose search consulted the cell
func (c *resultCache) invalidateCell(a hex.Axial) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if _, ok := e.touched[a]; ok {
			delete(c.entries, key)
		}
	}
}

// clear drops everything
func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*cacheEntry)
}

// size returns the current entry count
func (c *resultCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

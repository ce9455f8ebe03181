package probe

import (
	"sync"
	"time"
)

// StatusCache holds the most recent probe result per entry id. It is
// the only place sweep results live; entries themselves never carry
// liveness state.
type StatusCache struct {
	mu        sync.RWMutex
	results   map[string]Result
	lastSweep time.Time
}

func NewStatusCache() *StatusCache {
	return &StatusCache{results: make(map[string]Result)}
}

// Set records the latest result for an entry id.
func (c *StatusCache) Set(id string, r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[id] = r
}

// Get returns the last known result for id, if any.
func (c *StatusCache) Get(id string) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.results[id]
	return r, ok
}

// All returns a copy of every cached result keyed by entry id.
func (c *StatusCache) All() map[string]Result {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]Result, len(c.results))
	for id, r := range c.results {
		out[id] = r
	}
	return out
}

// MarkSweep records when a full sweep last completed.
func (c *StatusCache) MarkSweep(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSweep = t
}

// LastSweep reports when the last full sweep completed; the zero time
// means no sweep has run yet.
func (c *StatusCache) LastSweep() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSweep
}

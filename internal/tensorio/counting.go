package tensorio

import (
	"maps"
	"sync"

	"github.com/pdevine/tensor"
)

// CountingLoader wraps a Loader and records every Load call per path,
// successful or not. It is safe for concurrent use.
type CountingLoader struct {
	next Loader

	mu     sync.Mutex
	counts map[string]int
}

// NewCountingLoader returns a CountingLoader delegating to next.
func NewCountingLoader(next Loader) *CountingLoader {
	return &CountingLoader{next: next, counts: make(map[string]int)}
}

// Load records the call and delegates to the wrapped loader.
func (c *CountingLoader) Load(path string) (*tensor.Dense, error) {
	c.mu.Lock()
	c.counts[path]++
	c.mu.Unlock()

	return c.next.Load(path)
}

// Count returns the number of Load calls made for path.
func (c *CountingLoader) Count(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[path]
}

// Total returns the number of Load calls across all paths.
func (c *CountingLoader) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// Counts returns a snapshot of the per-path call counts.
func (c *CountingLoader) Counts() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.counts)
}

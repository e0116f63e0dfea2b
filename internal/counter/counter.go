// Package counter tracks how many messages each user has sent.
package counter

import "sync"

// Counter counts inbound messages per user. Counts only ever grow and
// live in memory for the lifetime of the process. Safe for concurrent
// use.
type Counter struct {
	mu     sync.Mutex
	counts map[string]int
}

// New creates an empty Counter.
func New() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Record increments the count for userID and returns the new count.
// Unseen users start at zero.
func (c *Counter) Record(userID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[userID]++
	return c.counts[userID]
}

// Count returns the number of messages recorded for userID, zero if
// the user has never been seen.
func (c *Counter) Count(userID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[userID]
}

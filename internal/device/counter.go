package device

import "sync/atomic"

// Counter is the process-wide tally of messages received. net/http
// serves each connection on its own goroutine, so the increment must
// be atomic to keep the exactly-once-per-POST invariant.
type Counter struct {
	n atomic.Uint64
}

// IncrementAndGet adds one and returns the new total.
func (c *Counter) IncrementAndGet() uint64 {
	return c.n.Add(1)
}

// Value returns the current total without modifying it.
func (c *Counter) Value() uint64 {
	return c.n.Load()
}

package loopstat

import "go.uber.org/atomic"

// Sequence hands out loop identifiers.
type Sequence interface {
	// Next returns the next identifier. Identifiers are never reused.
	Next() int
}

// Counter is a Sequence for single-threaded analysis.
type Counter struct {
	next int
}

// NewCounter returns a Counter starting at start.
func NewCounter(start int) *Counter {
	return &Counter{next: start}
}

func (c *Counter) Next() int {
	id := c.next
	c.next++
	return id
}

// Peek returns the identifier the next call to Next will return.
func (c *Counter) Peek() int { return c.next }

// AtomicCounter is a Sequence safe for concurrent use.
type AtomicCounter struct {
	next *atomic.Int64
}

// NewAtomicCounter returns an AtomicCounter starting at start.
func NewAtomicCounter(start int) *AtomicCounter {
	return &AtomicCounter{next: atomic.NewInt64(int64(start))}
}

func (c *AtomicCounter) Next() int {
	return int(c.next.Inc() - 1)
}

// Peek returns the identifier the next call to Next will return.
func (c *AtomicCounter) Peek() int { return int(c.next.Load()) }

package depot

import "sync/atomic"

// Cell hands a value from one producer to one consumer. Put overwrites any
// value not yet taken; Take drains it. It is the one type in the package that
// may be written from another goroutine, typically an input handler feeding a
// system once per tick.
type Cell[T any] struct {
	v atomic.Pointer[T]
}

func (c *Cell[T]) Put(value T) {
	c.v.Store(&value)
}

func (c *Cell[T]) Take() (T, bool) {
	p := c.v.Swap(nil)
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

func (c *Cell[T]) Peek() (T, bool) {
	p := c.v.Load()
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

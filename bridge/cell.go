package bridge

import (
	"context"
	"sync/atomic"
)

// signalCell is a single-assignment, awaitable slot. It hands exactly one
// value from a callback goroutine to the awaiting consumer, exactly once.
// The bridge uses one for the subscription handshake; element events flow
// through the adapter's demand-bounded queue.
type signalCell[T any] struct {
	done     chan struct{}
	resolved atomic.Bool
	value    T
}

func newSignalCell[T any]() *signalCell[T] {
	return &signalCell[T]{done: make(chan struct{})}
}

// resolve delivers the value and wakes any awaiting goroutine. Only the
// first call wins; later resolutions are silently dropped rather than
// corrupting the slot.
func (c *signalCell[T]) resolve(v T) bool {
	if !c.resolved.CompareAndSwap(false, true) {
		return false
	}
	c.value = v
	close(c.done)
	return true
}

// await blocks until the cell is resolved or ctx is done. Interruption does
// not consume the resolution: a later await still observes the value.
func (c *signalCell[T]) await(ctx context.Context) (T, error) {
	select {
	case <-c.done:
		return c.value, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

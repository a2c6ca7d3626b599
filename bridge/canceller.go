package bridge

import (
	"sync/atomic"

	"github.com/kbukum/rxbridge/rx"
)

// Cancellation controller states. The only legal transitions are
// notRequested -> requestedBeforeSubscribe -> cancelled and
// notRequested -> cancelled.
const (
	cancelNotRequested int32 = iota
	cancelRequestedBeforeSubscribe
	cancelled
)

// canceller tracks whether the consumer was interrupted before, during, or
// after subscription acknowledgement, and guarantees Cancel is delivered to
// the subscription exactly once across all racing paths.
type canceller struct {
	state atomic.Int32
}

// deferInterrupt records an interruption that arrived while no subscription
// existed yet. The subscriber adapter applies it inside OnSubscribe.
// Returns false if the controller already left the initial state.
func (c *canceller) deferInterrupt() bool {
	return c.state.CompareAndSwap(cancelNotRequested, cancelRequestedBeforeSubscribe)
}

// deferred reports whether a pre-subscription interruption is pending.
func (c *canceller) deferred() bool {
	return c.state.Load() == cancelRequestedBeforeSubscribe
}

// cancel delivers Cancel to sub. Exactly one caller wins, no matter how many
// goroutines race here; the rest return false. A panicking Cancel is
// swallowed: cancellation is advisory and the stream is already terminal for
// the consumer.
func (c *canceller) cancel(sub rx.Subscription) bool {
	for {
		s := c.state.Load()
		if s == cancelled {
			return false
		}
		if c.state.CompareAndSwap(s, cancelled) {
			func() {
				defer func() { _ = recover() }()
				sub.Cancel()
			}()
			return true
		}
	}
}

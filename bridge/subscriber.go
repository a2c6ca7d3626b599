package bridge

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/kbukum/rxbridge/errors"
	"github.com/kbukum/rxbridge/logger"
	"github.com/kbukum/rxbridge/observability"
	"github.com/kbukum/rxbridge/rx"
)

// Bridge states. Owned by the subscriber adapter; every callback and
// cancellation path mutates them through atomic transitions only.
const (
	stateAwaitingSubscription int32 = iota
	stateActive
	stateCancelling
	stateTerminated
)

type eventKind uint8

const (
	eventNext eventKind = iota
	eventComplete
	eventError
)

// event is one delivery from the publisher: a value or a terminal signal.
type event[T any] struct {
	kind eventKind
	val  T
	err  error
}

// subscribeOutcome resolves the handshake cell. A nil err means the
// subscription was granted and pulling may proceed; a non-nil err fails the
// stream before it produced anything.
type subscribeOutcome struct {
	err error
}

// subscriber is the adapter registered with the publisher. All callback
// entry points fold into "deliver one event to the consumer", which makes
// the adapter the single serialization point regardless of which goroutine
// the publisher calls from.
type subscriber[T any] struct {
	streamID string
	log      *logger.Logger
	metrics  *observability.StreamMetrics

	state      atomic.Int32
	sub        atomic.Pointer[subscriptionRef]
	subscribed *signalCell[subscribeOutcome]

	// events carries deliveries to the puller in publisher order. Capacity
	// is the demand window plus one terminal slot, so a publisher honouring
	// its demand can never block here.
	events chan event[T]

	// credit is the publisher-side view of remaining requested demand.
	// Going negative means delivery without demand.
	credit atomic.Int64

	canceller *canceller
}

type subscriptionRef struct {
	rx.Subscription
}

func newSubscriber[T any](streamID string, bufferSize int, log *logger.Logger, metrics *observability.StreamMetrics) *subscriber[T] {
	return &subscriber[T]{
		streamID:   streamID,
		log:        log,
		metrics:    metrics,
		subscribed: newSignalCell[subscribeOutcome](),
		events:     make(chan event[T], bufferSize+1),
		canceller:  &canceller{},
	}
}

// subscription returns the granted subscription, or nil before the handshake.
func (b *subscriber[T]) subscription() *subscriptionRef {
	return b.sub.Load()
}

// OnSubscribe stores the subscription and releases the puller, unless the
// consumer already gave up, in which case the deferred cancellation is
// applied here and the stream ends before requesting anything.
func (b *subscriber[T]) OnSubscribe(s rx.Subscription) {
	defer b.recovered("OnSubscribe")

	if s == nil {
		b.fail(errors.SubscriptionFailed("publisher delivered a nil subscription"))
		return
	}
	ref := &subscriptionRef{s}
	if !b.sub.CompareAndSwap(nil, ref) {
		// Second handshake on the same subscriber. Stop the extra
		// subscription; the first one stays authoritative.
		b.log.Warn("duplicate OnSubscribe from publisher")
		func() {
			defer func() { _ = recover() }()
			s.Cancel()
		}()
		return
	}

	if b.canceller.deferred() {
		// The consumer was interrupted before the publisher acknowledged
		// the subscription. Close the race: cancel instead of proceeding.
		b.state.Store(stateTerminated)
		if b.canceller.cancel(s) {
			b.metrics.RecordCancellation(context.Background(), b.streamID)
			b.log.Debug("deferred cancellation applied on subscribe")
		}
		b.subscribed.resolve(subscribeOutcome{err: context.Canceled})
		return
	}

	b.state.CompareAndSwap(stateAwaitingSubscription, stateActive)
	b.subscribed.resolve(subscribeOutcome{})
	b.log.Debug("subscription established")
}

// OnNext delivers the next value to the puller.
func (b *subscriber[T]) OnNext(v T) {
	defer b.recovered("OnNext")

	switch b.state.Load() {
	case stateCancelling, stateTerminated:
		// Deliveries racing with cancellation or trailing a terminal are
		// legal; drop them.
		return
	}

	if b.credit.Add(-1) < 0 {
		b.violation("delivery without outstanding demand")
		return
	}

	select {
	case b.events <- event[T]{kind: eventNext, val: v}:
	default:
		b.violation("delivery beyond the granted demand window")
	}
}

// OnError fails the stream with the publisher's error, verbatim.
func (b *subscriber[T]) OnError(err error) {
	defer b.recovered("OnError")

	if err == nil {
		err = errors.ProtocolViolation("OnError with nil error")
	}
	b.fail(err)
}

// OnComplete terminates the stream successfully.
func (b *subscriber[T]) OnComplete() {
	defer b.recovered("OnComplete")

	if !b.terminate() {
		return
	}
	b.subscribed.resolve(subscribeOutcome{err: errors.SubscriptionFailed("publisher completed before subscribing")})
	select {
	case b.events <- event[T]{kind: eventComplete}:
	default:
	}
}

// fail transitions to terminated and delivers err as the stream's failure.
// Safe from any goroutine; later terminals are dropped.
func (b *subscriber[T]) fail(err error) {
	if !b.terminate() {
		return
	}
	b.subscribed.resolve(subscribeOutcome{err: err})
	select {
	case b.events <- event[T]{kind: eventError, err: err}:
	default:
	}
}

// terminate moves the bridge to its terminal state. Returns false if a
// terminal was already delivered (duplicate terminals are protocol
// violations we absorb silently).
func (b *subscriber[T]) terminate() bool {
	for {
		s := b.state.Load()
		if s == stateTerminated {
			return false
		}
		if b.state.CompareAndSwap(s, stateTerminated) {
			return true
		}
	}
}

// markCancelling flags the bridge so trailing deliveries are dropped
// quietly. Terminal state wins if already reached.
func (b *subscriber[T]) markCancelling() {
	for {
		s := b.state.Load()
		if s == stateCancelling || s == stateTerminated {
			return
		}
		if b.state.CompareAndSwap(s, stateCancelling) {
			return
		}
	}
}

// violation reports a publisher protocol violation: the stream fails with a
// distinguishable error and the subscription is stopped, since the publisher
// is not in a terminal state of its own.
func (b *subscriber[T]) violation(reason string) {
	b.metrics.RecordViolation(context.Background(), b.streamID, reason)
	b.log.Warn("publisher protocol violation", logger.Fields(logger.FieldReason, reason))
	b.fail(errors.ProtocolViolation(reason))
	if ref := b.subscription(); ref != nil {
		b.canceller.cancel(ref.Subscription)
	}
}

// recovered is the callback boundary guard: a panic in the bridge's own
// callback logic degrades to a failed stream instead of killing whichever
// goroutine the publisher called from.
func (b *subscriber[T]) recovered(callback string) {
	if r := recover(); r != nil {
		err := errors.Internal(fmt.Errorf("panic in %s: %v", callback, r))
		b.log.Error("callback panicked", logger.ErrorFields(callback, err))
		b.fail(err)
	}
}

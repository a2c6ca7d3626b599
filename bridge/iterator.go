package bridge

import (
	"context"
	"fmt"

	"github.com/kbukum/rxbridge/errors"
	"github.com/kbukum/rxbridge/logger"
	"github.com/kbukum/rxbridge/rx"
)

// Stream is the pull side of the bridge. It implements pipeline.Iterator:
// each Next arms a pull, tops up publisher demand when the window is
// exhausted, and awaits the next delivery or terminal.
//
// A Stream serves a single consumer goroutine. Concurrent cancellation goes
// through the pull's context, not through concurrent Next calls.
type Stream[T any] struct {
	streamID string
	buffer   int
	log      *logger.Logger

	sub *subscriber[T]

	// Consumer-side state: touched only by the pulling goroutine.
	handshook   bool
	outstanding int64
	terminated  bool
	termErr     error
	closed      bool
}

// StreamID returns the identifier attached to this stream's logs and
// metric attributes.
func (s *Stream[T]) StreamID() string { return s.streamID }

// Next returns the next value delivered by the publisher. It returns
// (zero, false, nil) after completion, the publisher's error after a
// failure, and ctx.Err() when the pull is interrupted. Interruption cancels
// the subscription exactly once, deferring when the subscription has not
// arrived yet.
func (s *Stream[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if s.terminated {
		return zero, false, s.termErr
	}
	if s.closed {
		return zero, false, nil
	}

	if !s.handshook {
		outcome, err := s.sub.subscribed.await(ctx)
		if err != nil {
			s.interrupt()
			return zero, false, err
		}
		if outcome.err != nil {
			s.latch(outcome.err)
			return zero, false, outcome.err
		}
		s.handshook = true
	}

	// Demand is requested once per window, not once per element.
	if s.outstanding == 0 {
		if ref := s.sub.subscription(); ref != nil {
			n := int64(s.buffer)
			s.sub.credit.Add(n)
			s.outstanding = n
			s.request(ref.Subscription, n)
		}
	}

	// An already-cancelled pull must interrupt even when an element is
	// queued, so the context is checked before racing it against delivery.
	if err := ctx.Err(); err != nil {
		s.interrupt()
		return zero, false, err
	}

	select {
	case ev := <-s.sub.events:
		switch ev.kind {
		case eventNext:
			s.outstanding--
			s.sub.metrics.RecordElement(ctx, s.streamID)
			return ev.val, true, nil
		case eventComplete:
			s.latch(nil)
			s.sub.metrics.RecordCompletion(ctx, s.streamID)
			s.log.Debug("stream completed")
			return zero, false, nil
		default:
			s.latch(ev.err)
			s.sub.metrics.RecordFailure(ctx, s.streamID, failureCode(ev.err))
			return zero, false, ev.err
		}
	case <-ctx.Done():
		s.interrupt()
		return zero, false, ctx.Err()
	}
}

// Close releases the stream. If no terminal was observed, the subscription
// is cancelled (or the cancellation deferred until it arrives). Close after
// a terminal is a no-op: a completed or failed publisher needs no cancel.
func (s *Stream[T]) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if !s.terminated {
		s.interrupt()
	}
	return nil
}

// latch records the terminal outcome so further pulls return it without
// touching the publisher.
func (s *Stream[T]) latch(err error) {
	s.terminated = true
	s.termErr = err
}

// interrupt converges every cancellation race on exactly one Cancel call.
func (s *Stream[T]) interrupt() {
	if ref := s.sub.subscription(); ref != nil {
		s.cancelSubscription(ref)
		return
	}
	if s.sub.canceller.deferInterrupt() {
		// The subscription may have landed while we were deciding; if so,
		// apply the cancellation ourselves instead of waiting for a
		// handshake that already happened.
		if ref := s.sub.subscription(); ref != nil {
			s.cancelSubscription(ref)
		}
		return
	}
	// Cancellation already delivered or deferred by another path.
}

func (s *Stream[T]) cancelSubscription(ref *subscriptionRef) {
	s.sub.markCancelling()
	if s.sub.canceller.cancel(ref.Subscription) {
		s.sub.metrics.RecordCancellation(context.Background(), s.streamID)
		s.log.Debug("subscription cancelled")
	}
}

// request tops up demand. A panicking Request is a publisher defect; it
// fails the stream rather than the pulling goroutine.
func (s *Stream[T]) request(sub rx.Subscription, n int64) {
	defer func() {
		if r := recover(); r != nil {
			s.sub.fail(errors.Internal(fmt.Errorf("panic in Request: %v", r)))
		}
	}()
	sub.Request(n)
}

// failureCode labels a terminal failure for metrics. Publisher errors
// arrive verbatim and may carry no code; those count as publisher failures.
func failureCode(err error) string {
	if code := errors.CodeOf(err); code != "" {
		return string(code)
	}
	return string(errors.ErrCodePublisherFailed)
}

package rxtest

import (
	"sync"
	"time"

	"github.com/kbukum/rxbridge/rx"
)

// ManualPublisher is a publisher driven entirely by the test. Subscribe
// records the subscriber; nothing happens until the test calls Grant, Emit,
// Complete or Fail. All signal methods serialize on an internal mutex, so a
// test may drive them from any goroutine.
type ManualPublisher[T any] struct {
	mu        sync.Mutex
	sub       rx.Subscriber[T]
	requested int64
	cancels   int

	subscribedCh chan struct{}
	requestCh    chan int64
	cancelCh     chan struct{}
}

// NewManualPublisher returns a publisher awaiting its first subscriber.
func NewManualPublisher[T any]() *ManualPublisher[T] {
	return &ManualPublisher[T]{
		subscribedCh: make(chan struct{}),
		requestCh:    make(chan int64, 64),
		cancelCh:     make(chan struct{}, 64),
	}
}

func (p *ManualPublisher[T]) Subscribe(s rx.Subscriber[T]) {
	p.mu.Lock()
	p.sub = s
	p.mu.Unlock()
	close(p.subscribedCh)
}

// Grant delivers the subscription to the recorded subscriber. Request and
// Cancel calls made by the bridge are tallied and signalled on channels the
// test can await.
func (p *ManualPublisher[T]) Grant() {
	p.mu.Lock()
	s := p.sub
	p.mu.Unlock()
	s.OnSubscribe(manualSubscription[T]{p})
}

// Emit delivers values through OnNext in order.
func (p *ManualPublisher[T]) Emit(values ...T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, v := range values {
		p.sub.OnNext(v)
	}
}

// Complete signals OnComplete.
func (p *ManualPublisher[T]) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sub.OnComplete()
}

// Fail signals OnError.
func (p *ManualPublisher[T]) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sub.OnError(err)
}

// Requested returns the total demand requested so far.
func (p *ManualPublisher[T]) Requested() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requested
}

// Cancels returns how many times Cancel was called.
func (p *ManualPublisher[T]) Cancels() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancels
}

// AwaitSubscribe blocks until Subscribe was called.
func (p *ManualPublisher[T]) AwaitSubscribe(timeout time.Duration) bool {
	select {
	case <-p.subscribedCh:
		return true
	case <-time.After(timeout):
		return false
	}
}

// AwaitRequest blocks until the next Request call and returns its demand.
func (p *ManualPublisher[T]) AwaitRequest(timeout time.Duration) (int64, bool) {
	select {
	case n := <-p.requestCh:
		return n, true
	case <-time.After(timeout):
		return 0, false
	}
}

// AwaitCancel blocks until the next Cancel call.
func (p *ManualPublisher[T]) AwaitCancel(timeout time.Duration) bool {
	select {
	case <-p.cancelCh:
		return true
	case <-time.After(timeout):
		return false
	}
}

type manualSubscription[T any] struct {
	p *ManualPublisher[T]
}

func (s manualSubscription[T]) Request(n int64) {
	s.p.mu.Lock()
	s.p.requested += n
	s.p.mu.Unlock()
	select {
	case s.p.requestCh <- n:
	default:
	}
}

func (s manualSubscription[T]) Cancel() {
	s.p.mu.Lock()
	s.p.cancels++
	s.p.mu.Unlock()
	select {
	case s.p.cancelCh <- struct{}{}:
	default:
	}
}

package rxtest

import (
	"sync"
	"sync/atomic"

	"github.com/kbukum/rxbridge/rx"
)

// ScriptedPublisher runs a canned emission script on a dedicated goroutine,
// one goroutine per subscriber, so every callback is serial. By default it
// honours demand; IgnoreDemand builds a rogue publisher that emits without
// waiting for requests.
type ScriptedPublisher[T any] struct {
	run func(*driver[T])
}

func (p *ScriptedPublisher[T]) Subscribe(s rx.Subscriber[T]) {
	d := &driver[T]{
		sub:    s,
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go func() {
		s.OnSubscribe(d)
		p.run(d)
	}()
}

// Emit builds a publisher that delivers the given values respecting demand,
// then completes.
func Emit[T any](values ...T) *ScriptedPublisher[T] {
	return &ScriptedPublisher[T]{run: func(d *driver[T]) {
		for _, v := range values {
			if !d.next(v) {
				return
			}
		}
		d.complete()
	}}
}

// Counter builds a publisher that delivers 0, 1, 2, ... n-1 respecting
// demand, then completes. A negative n never completes.
func Counter(n int) *ScriptedPublisher[int] {
	return &ScriptedPublisher[int]{run: func(d *driver[int]) {
		for i := 0; n < 0 || i < n; i++ {
			if !d.next(i) {
				return
			}
		}
		d.complete()
	}}
}

// FailAfter builds a publisher that delivers the given values respecting
// demand, then fails with err.
func FailAfter[T any](err error, values ...T) *ScriptedPublisher[T] {
	return &ScriptedPublisher[T]{run: func(d *driver[T]) {
		for _, v := range values {
			if !d.next(v) {
				return
			}
		}
		d.fail(err)
	}}
}

// Fail builds a publisher that fails immediately after granting the
// subscription.
func Fail[T any](err error) *ScriptedPublisher[T] {
	return FailAfter[T](err)
}

// Never builds a publisher that grants the subscription and then stays
// silent until cancelled.
func Never[T any]() *ScriptedPublisher[T] {
	return &ScriptedPublisher[T]{run: func(d *driver[T]) {
		<-d.done
	}}
}

// IgnoreDemand builds a rogue publisher that emits all values back to back
// without waiting for requests, then completes. Used to provoke protocol
// violation handling.
func IgnoreDemand[T any](values ...T) *ScriptedPublisher[T] {
	return &ScriptedPublisher[T]{run: func(d *driver[T]) {
		for _, v := range values {
			if d.cancelled() {
				return
			}
			d.sub.OnNext(v)
		}
		if !d.cancelled() {
			d.complete()
		}
	}}
}

// driver is the subscription handed to the bridge and the state shared with
// the script goroutine.
type driver[T any] struct {
	sub       rx.Subscriber[T]
	requested atomic.Int64
	notify    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func (d *driver[T]) Request(n int64) {
	if n <= 0 {
		return
	}
	d.requested.Add(n)
	select {
	case d.notify <- struct{}{}:
	default:
	}
}

func (d *driver[T]) Cancel() {
	d.closeOnce.Do(func() { close(d.done) })
}

func (d *driver[T]) cancelled() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// next delivers one value once demand allows, or reports false when the
// subscription was cancelled first.
func (d *driver[T]) next(v T) bool {
	for {
		if d.cancelled() {
			return false
		}
		if d.requested.Load() > 0 {
			d.requested.Add(-1)
			d.sub.OnNext(v)
			return true
		}
		select {
		case <-d.notify:
		case <-d.done:
			return false
		}
	}
}

func (d *driver[T]) complete() {
	d.sub.OnComplete()
}

func (d *driver[T]) fail(err error) {
	d.sub.OnError(err)
}

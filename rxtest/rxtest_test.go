package rxtest

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kbukum/rxbridge/rx"
)

// recordingSubscriber captures every callback for inspection.
type recordingSubscriber[T any] struct {
	mu       sync.Mutex
	sub      rx.Subscription
	values   []T
	err      error
	complete bool
	done     chan struct{}
}

func newRecordingSubscriber[T any]() *recordingSubscriber[T] {
	return &recordingSubscriber[T]{done: make(chan struct{})}
}

func (r *recordingSubscriber[T]) OnSubscribe(s rx.Subscription) {
	r.mu.Lock()
	r.sub = s
	r.mu.Unlock()
}

func (r *recordingSubscriber[T]) OnNext(v T) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
}

func (r *recordingSubscriber[T]) OnError(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
	close(r.done)
}

func (r *recordingSubscriber[T]) OnComplete() {
	r.mu.Lock()
	r.complete = true
	r.mu.Unlock()
	close(r.done)
}

func (r *recordingSubscriber[T]) subscription(t *testing.T) rx.Subscription {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		r.mu.Lock()
		sub := r.sub
		r.mu.Unlock()
		if sub != nil {
			return sub
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("subscription was never granted")
	return nil
}

func (r *recordingSubscriber[T]) await(t *testing.T) {
	t.Helper()
	select {
	case <-r.done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher never terminated")
	}
}

func TestScripted_EmitHonoursDemand(t *testing.T) {
	rec := newRecordingSubscriber[int]()
	Emit(1, 2, 3).Subscribe(rec)

	// No demand was requested yet, so nothing may arrive.
	sub := rec.subscription(t)
	time.Sleep(20 * time.Millisecond)
	rec.mu.Lock()
	early := len(rec.values)
	rec.mu.Unlock()
	if early != 0 {
		t.Fatalf("got %d elements before any demand, want 0", early)
	}

	sub.Request(10)
	rec.await(t)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.values) != 3 || !rec.complete {
		t.Errorf("got values=%v complete=%v, want [1 2 3] true", rec.values, rec.complete)
	}
}

func TestScripted_CounterStopsOnCancel(t *testing.T) {
	rec := newRecordingSubscriber[int]()
	Counter(-1).Subscribe(rec)
	sub := rec.subscription(t)
	sub.Request(5)
	time.Sleep(20 * time.Millisecond)
	sub.Cancel()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.values) != 5 {
		t.Errorf("got %d elements, want 5", len(rec.values))
	}
	if rec.complete || rec.err != nil {
		t.Error("cancelled publisher must not signal a terminal")
	}
}

func TestScripted_FailAfterDeliversPrefix(t *testing.T) {
	boom := errors.New("boom")
	rec := newRecordingSubscriber[int]()
	FailAfter(boom, 1, 2).Subscribe(rec)
	rec.subscription(t).Request(10)
	rec.await(t)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.values) != 2 || rec.err != boom {
		t.Errorf("got values=%v err=%v, want [1 2] and the scripted error", rec.values, rec.err)
	}
}

func TestScripted_IgnoreDemandEmitsWithoutRequests(t *testing.T) {
	rec := newRecordingSubscriber[int]()
	IgnoreDemand(1, 2, 3).Subscribe(rec)
	rec.await(t)
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.values) != 3 || !rec.complete {
		t.Errorf("got values=%v complete=%v, want [1 2 3] true", rec.values, rec.complete)
	}
}

func TestManual_RecordsDemandAndCancel(t *testing.T) {
	p := NewManualPublisher[string]()
	rec := newRecordingSubscriber[string]()
	p.Subscribe(rec)
	if !p.AwaitSubscribe(time.Second) {
		t.Fatal("AwaitSubscribe timed out")
	}
	p.Grant()
	rec.sub.Request(3)
	if n, ok := p.AwaitRequest(time.Second); !ok || n != 3 {
		t.Fatalf("got (%d, %v), want (3, true)", n, ok)
	}
	p.Emit("a", "b")
	rec.sub.Cancel()
	if !p.AwaitCancel(time.Second) {
		t.Fatal("AwaitCancel timed out")
	}
	if got := p.Cancels(); got != 1 {
		t.Errorf("got %d cancels, want 1", got)
	}
	if got := p.Requested(); got != 3 {
		t.Errorf("got %d requested, want 3", got)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.values) != 2 {
		t.Errorf("got %d values, want 2", len(rec.values))
	}
}

package bridge

import (
	"sync"
	"sync/atomic"
	"testing"
)

type countingSubscription struct {
	requests atomic.Int64
	cancels  atomic.Int64
}

func (s *countingSubscription) Request(n int64) { s.requests.Add(n) }
func (s *countingSubscription) Cancel()         { s.cancels.Add(1) }

func TestCanceller_CancelOnce(t *testing.T) {
	c := &canceller{}
	sub := &countingSubscription{}
	if !c.cancel(sub) {
		t.Fatal("first cancel returned false")
	}
	if c.cancel(sub) {
		t.Error("second cancel returned true")
	}
	if got := sub.cancels.Load(); got != 1 {
		t.Errorf("got %d cancel calls, want 1", got)
	}
}

func TestCanceller_DeferThenCancel(t *testing.T) {
	c := &canceller{}
	if !c.deferInterrupt() {
		t.Fatal("deferInterrupt returned false on fresh canceller")
	}
	if !c.deferred() {
		t.Fatal("deferred returned false after deferInterrupt")
	}
	sub := &countingSubscription{}
	if !c.cancel(sub) {
		t.Fatal("cancel after defer returned false")
	}
	if got := sub.cancels.Load(); got != 1 {
		t.Errorf("got %d cancel calls, want 1", got)
	}
}

func TestCanceller_DeferAfterCancelRefused(t *testing.T) {
	c := &canceller{}
	c.cancel(&countingSubscription{})
	if c.deferInterrupt() {
		t.Error("deferInterrupt returned true after cancel")
	}
}

func TestCanceller_ConcurrentCancelExactlyOnce(t *testing.T) {
	for round := 0; round < 100; round++ {
		c := &canceller{}
		sub := &countingSubscription{}
		var wg sync.WaitGroup
		var wins atomic.Int64
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if c.cancel(sub) {
					wins.Add(1)
				}
			}()
		}
		wg.Wait()
		if wins.Load() != 1 {
			t.Fatalf("round %d: got %d winners, want 1", round, wins.Load())
		}
		if got := sub.cancels.Load(); got != 1 {
			t.Fatalf("round %d: got %d cancel calls, want 1", round, got)
		}
	}
}

func TestCanceller_PanickingCancelStillRecorded(t *testing.T) {
	c := &canceller{}
	panicky := rxSubscriptionFunc{cancel: func() { panic("boom") }}
	if !c.cancel(panicky) {
		t.Error("cancel returned false when Cancel panicked")
	}
	if c.cancel(panicky) {
		t.Error("second cancel returned true")
	}
}

type rxSubscriptionFunc struct {
	request func(int64)
	cancel  func()
}

func (s rxSubscriptionFunc) Request(n int64) {
	if s.request != nil {
		s.request(n)
	}
}

func (s rxSubscriptionFunc) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

package rx

// SubscriberFuncs assembles a Subscriber from individual callback functions.
// Nil slots are filled with no-ops by Build, so callers only provide the
// callbacks they care about.
type SubscriberFuncs[T any] struct {
	Subscribe func(Subscription)
	Next      func(T)
	Error     func(error)
	Complete  func()
}

// Build fills in any nil functions and returns the assembled Subscriber.
func (s SubscriberFuncs[T]) Build() Subscriber[T] {
	if s.Subscribe == nil {
		s.Subscribe = func(Subscription) {}
	}
	if s.Next == nil {
		s.Next = func(T) {}
	}
	if s.Error == nil {
		s.Error = func(error) {}
	}
	if s.Complete == nil {
		s.Complete = func() {}
	}
	return &assembledSubscriber[T]{funcs: s}
}

type assembledSubscriber[T any] struct {
	funcs SubscriberFuncs[T]
}

func (a *assembledSubscriber[T]) OnSubscribe(s Subscription) { a.funcs.Subscribe(s) }
func (a *assembledSubscriber[T]) OnNext(v T)                 { a.funcs.Next(v) }
func (a *assembledSubscriber[T]) OnError(err error)          { a.funcs.Error(err) }
func (a *assembledSubscriber[T]) OnComplete()                { a.funcs.Complete() }

// PublisherFunc adapts a plain subscribe function into a Publisher.
type PublisherFunc[T any] func(Subscriber[T])

// Subscribe implements Publisher.
func (f PublisherFunc[T]) Subscribe(s Subscriber[T]) { f(s) }

// SubscriptionFuncs assembles a Subscription from individual functions.
// Nil slots become no-ops.
type SubscriptionFuncs struct {
	RequestFunc func(int64)
	CancelFunc  func()
}

// Build fills in any nil functions and returns the assembled Subscription.
func (s SubscriptionFuncs) Build() Subscription {
	if s.RequestFunc == nil {
		s.RequestFunc = func(int64) {}
	}
	if s.CancelFunc == nil {
		s.CancelFunc = func() {}
	}
	return &assembledSubscription{funcs: s}
}

type assembledSubscription struct {
	funcs SubscriptionFuncs
}

func (a *assembledSubscription) Request(n int64) { a.funcs.RequestFunc(n) }
func (a *assembledSubscription) Cancel()         { a.funcs.CancelFunc() }

package rx

// Publisher is a provider of a potentially unbounded number of sequenced
// values, publishing them according to the demand received from its
// Subscriber. Subscribe may be called multiple times; each call starts an
// independent Subscription.
type Publisher[T any] interface {
	Subscribe(s Subscriber[T])
}

// Subscriber receives a call to OnSubscribe once after being passed to
// Publisher.Subscribe. The Subscription it receives is used to request
// values from the Publisher and to cancel the stream.
type Subscriber[T any] interface {
	// OnSubscribe delivers the Subscription. Called exactly once, before any
	// other callback.
	OnSubscribe(s Subscription)
	// OnNext delivers the next value. Never called beyond outstanding demand.
	OnNext(v T)
	// OnError signals that the publisher failed. Terminal.
	OnError(err error)
	// OnComplete signals that the publisher finished successfully. Terminal.
	OnComplete()
}

// Subscription represents the one-to-one lifecycle of a Subscriber
// subscribing to a Publisher.
type Subscription interface {
	// Request signals readiness for up to n more values. n must be positive.
	Request(n int64)
	// Cancel signals definitive disinterest. The publisher stops delivering
	// as soon as possible; a small number of in-flight callbacks may still
	// arrive.
	Cancel()
}

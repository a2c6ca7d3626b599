// Package bridge adapts a push-based, demand-driven rx.Publisher into the
// pull-based pipeline.Iterator consumed by a single downstream reader.
//
// The publisher invokes callbacks from arbitrary goroutines; the consumer
// pulls values one at a time and may be cancelled through its context at any
// point. The bridge is the single synchronization boundary between the two:
//
//	it := bridge.New[int](pub, bridge.WithBufferSize(10))
//	defer it.Close()
//	for {
//	    v, ok, err := it.Next(ctx)
//	    ...
//	}
//
// or, through the pipeline runtime:
//
//	got, err := pipeline.Collect(ctx, bridge.Sequence[int](pub))
//
// Guarantees:
//
//   - Values are observed in publisher order, with no duplication or loss,
//     and never ahead of requested demand.
//   - Subscription.Cancel is delivered at most once, and at least once when
//     the consumer abandons a live subscription, no matter how cancellation
//     races with subscription acknowledgement or delivery.
//   - A misbehaving publisher fails the logical stream; it cannot panic the
//     consumer's goroutines or corrupt bridge state.
//
// A Stream is not restartable: create a new one for a second traversal.
package bridge

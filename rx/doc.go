// Package rx defines the demand-driven publish/subscribe contract consumed
// by the bridge: Publisher, Subscriber and Subscription.
//
// The contract follows the Reactive Streams rules:
//
//   - After Subscribe, the publisher calls OnSubscribe exactly once, before
//     any other callback.
//   - OnNext is called at most as many times as demand was requested via
//     Subscription.Request, followed by at most one terminal callback
//     (OnError or OnComplete). No callback follows a terminal one.
//   - Callbacks on one subscriber are never delivered concurrently, though
//     they may arrive on arbitrary goroutines.
//   - Request and Cancel may be called from any goroutine at any time,
//     including from inside OnSubscribe.
//
// Only the subscriber half of the protocol is implemented in this module;
// publishers are external collaborators (see package rxtest for the
// simulators used in tests).
package rx

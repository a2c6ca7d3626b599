// Package pipeline provides the pull-based, lazy sequence runtime that
// bridged streams plug into.
//
// Pipelines are lazy: no work happens until values are pulled via Collect,
// Drain, or ForEach. Each stage pulls from the previous stage on demand,
// providing natural backpressure without explicit flow control.
//
// The Iterator interface is the pull contract produced by package bridge, so
// bridged publishers plug directly into pipelines:
//
//	seq := pipeline.From[int](bridge.New[int](pub))
//	first, err := pipeline.Collect(ctx, pipeline.Take(seq, 10))
//
// The operator set is deliberately small: Map, Filter, Take, Reduce, Tap,
// Buffer, and the Collect/Drain/ForEach terminals.
package pipeline

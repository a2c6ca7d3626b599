// Package errors provides structured error handling for the stream bridge.
// It implements coded error types so that producer failures, protocol
// violations and internal defects remain distinguishable after they surface
// as the failure of a stream.
package errors

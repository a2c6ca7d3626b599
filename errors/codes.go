package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Protocol errors
const (
	// ErrCodeProtocolViolation indicates the publisher broke the
	// demand/terminal rules of the subscription protocol.
	ErrCodeProtocolViolation ErrorCode = "PROTOCOL_VIOLATION"
	// ErrCodePublisherFailed indicates the publisher signalled a terminal
	// failure through OnError.
	ErrCodePublisherFailed ErrorCode = "PUBLISHER_FAILED"
	// ErrCodeSubscriptionFailed indicates the subscription handshake could
	// not be completed.
	ErrCodeSubscriptionFailed ErrorCode = "SUBSCRIPTION_FAILED"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal defect in the bridge itself.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

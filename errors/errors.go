package errors

import (
	stderrors "errors"
	"fmt"
)

// StreamError is the unified error type surfaced by a failed stream.
type StreamError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *StreamError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *StreamError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *StreamError) WithCause(cause error) *StreamError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *StreamError) WithDetail(key string, value any) *StreamError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new StreamError.
func New(code ErrorCode, message string) *StreamError {
	return &StreamError{Code: code, Message: message}
}

// CodeOf returns the ErrorCode carried by err, or the empty string if err is
// not (and does not wrap) a StreamError.
func CodeOf(err error) ErrorCode {
	var se *StreamError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsProtocolViolation reports whether err carries ErrCodeProtocolViolation.
func IsProtocolViolation(err error) bool {
	return CodeOf(err) == ErrCodeProtocolViolation
}

// --- Common Error Constructors ---

// ProtocolViolation creates a new StreamError for a publisher that broke the
// subscription protocol.
func ProtocolViolation(reason string) *StreamError {
	return &StreamError{
		Code: ErrCodeProtocolViolation, Message: fmt.Sprintf("publisher violated the subscription protocol: %s", reason),
		Details: map[string]any{"reason": reason},
	}
}

// PublisherFailed wraps a terminal failure signalled by the publisher.
func PublisherFailed(cause error) *StreamError {
	return &StreamError{
		Code: ErrCodePublisherFailed, Message: "publisher signalled a terminal failure",
		Cause: cause,
	}
}

// SubscriptionFailed creates a new StreamError for a handshake that could not
// be completed.
func SubscriptionFailed(reason string) *StreamError {
	return &StreamError{
		Code: ErrCodeSubscriptionFailed, Message: fmt.Sprintf("subscription could not be established: %s", reason),
		Details: map[string]any{"reason": reason},
	}
}

// InvalidInput creates a new StreamError for invalid input.
func InvalidInput(field, reason string) *StreamError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &StreamError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new StreamError for validation errors.
func Validation(message string) *StreamError {
	return &StreamError{Code: ErrCodeInvalidInput, Message: message}
}

// Internal creates a new StreamError for a defect in the bridge itself.
func Internal(cause error) *StreamError {
	return &StreamError{
		Code: ErrCodeInternal, Message: "internal bridge error",
		Cause: cause,
	}
}

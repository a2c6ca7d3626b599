package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestStreamError_Error(t *testing.T) {
	err := New(ErrCodeInternal, "something broke")
	if !strings.Contains(err.Error(), "INTERNAL_ERROR") {
		t.Errorf("expected code in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "something broke") {
		t.Errorf("expected message, got %q", err.Error())
	}
}

func TestStreamError_ErrorWithCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := New(ErrCodeInternal, "wrapper").WithCause(cause)
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestStreamError_Unwrap(t *testing.T) {
	cause := stderrors.New("boom")
	err := PublisherFailed(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
}

func TestStreamError_WithDetail(t *testing.T) {
	err := New(ErrCodeProtocolViolation, "test").WithDetail("stream_id", "abc")
	if err.Details["stream_id"] != "abc" {
		t.Errorf("expected detail to be set, got %v", err.Details)
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"stream error", ProtocolViolation("too many elements"), ErrCodeProtocolViolation},
		{"wrapped stream error", PublisherFailed(stderrors.New("x")), ErrCodePublisherFailed},
		{"plain error", stderrors.New("x"), ""},
		{"nil cause wrap", Internal(nil), ErrCodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsProtocolViolation(t *testing.T) {
	if !IsProtocolViolation(ProtocolViolation("n without demand")) {
		t.Error("expected true for protocol violation")
	}
	if IsProtocolViolation(PublisherFailed(stderrors.New("x"))) {
		t.Error("expected false for publisher failure")
	}
}

func TestProtocolViolation_ReasonDetail(t *testing.T) {
	err := ProtocolViolation("delivery without demand")
	if err.Details["reason"] != "delivery without demand" {
		t.Errorf("expected reason detail, got %v", err.Details)
	}
}

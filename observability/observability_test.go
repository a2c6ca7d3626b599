package observability

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test")
	if cfg.ServiceName != "test" {
		t.Errorf("expected service name 'test', got %q", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected default endpoint, got %q", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected full sampling by default, got %v", cfg.SampleRate)
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test")
	if cfg.ServiceName != "test" {
		t.Errorf("expected service name 'test', got %q", cfg.ServiceName)
	}
	if !cfg.Insecure {
		t.Error("expected insecure default for development")
	}
}

func TestNewStreamMetrics(t *testing.T) {
	mp := sdkmetric.NewMeterProvider()
	defer mp.Shutdown(context.Background())

	metrics, err := NewStreamMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metrics == nil {
		t.Fatal("expected metrics instance")
	}

	// Record through every instrument; none should panic.
	ctx := context.Background()
	metrics.RecordElement(ctx, "s1")
	metrics.RecordCompletion(ctx, "s1")
	metrics.RecordFailure(ctx, "s1", "PUBLISHER_FAILED")
	metrics.RecordCancellation(ctx, "s1")
	metrics.RecordViolation(ctx, "s1", "delivery without demand")
}

func TestStreamMetrics_NilReceiver(t *testing.T) {
	var m *StreamMetrics
	ctx := context.Background()
	m.RecordElement(ctx, "s1")
	m.RecordCompletion(ctx, "s1")
	m.RecordFailure(ctx, "s1", "x")
	m.RecordCancellation(ctx, "s1")
	m.RecordViolation(ctx, "s1", "x")
}

func TestStartSpan(t *testing.T) {
	ctx, span := StartSpan(context.Background(), SpanStreamConsume)
	if span == nil {
		t.Fatal("expected span")
	}
	span.End()
	if ctx == nil {
		t.Fatal("expected context")
	}
}

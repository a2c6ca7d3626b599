package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// StreamMetrics holds OpenTelemetry metric instruments for bridged streams.
// All Record methods are safe on a nil receiver, so callers can pass metrics
// through unconditionally.
type StreamMetrics struct {
	elements      metric.Int64Counter
	completions   metric.Int64Counter
	failures      metric.Int64Counter
	cancellations metric.Int64Counter
	violations    metric.Int64Counter
}

// NewStreamMetrics creates stream metric instruments on the given meter.
func NewStreamMetrics(meter metric.Meter) (*StreamMetrics, error) {
	elements, err := meter.Int64Counter("stream.elements",
		metric.WithDescription("Total elements delivered to consumers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.elements counter: %w", err)
	}

	completions, err := meter.Int64Counter("stream.completions",
		metric.WithDescription("Streams terminated by publisher completion"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.completions counter: %w", err)
	}

	failures, err := meter.Int64Counter("stream.failures",
		metric.WithDescription("Streams terminated by failure"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.failures counter: %w", err)
	}

	cancellations, err := meter.Int64Counter("stream.cancellations",
		metric.WithDescription("Subscriptions cancelled by the consumer"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.cancellations counter: %w", err)
	}

	violations, err := meter.Int64Counter("stream.protocol_violations",
		metric.WithDescription("Publisher protocol violations detected by the bridge"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating stream.protocol_violations counter: %w", err)
	}

	return &StreamMetrics{
		elements:      elements,
		completions:   completions,
		failures:      failures,
		cancellations: cancellations,
		violations:    violations,
	}, nil
}

// RecordElement records one element delivered downstream.
func (m *StreamMetrics) RecordElement(ctx context.Context, streamID string) {
	if m == nil {
		return
	}
	m.elements.Add(ctx, 1, streamAttrs(streamID))
}

// RecordCompletion records a stream that terminated successfully.
func (m *StreamMetrics) RecordCompletion(ctx context.Context, streamID string) {
	if m == nil {
		return
	}
	m.completions.Add(ctx, 1, streamAttrs(streamID))
}

// RecordFailure records a stream that terminated with the given error code.
func (m *StreamMetrics) RecordFailure(ctx context.Context, streamID, code string) {
	if m == nil {
		return
	}
	m.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrStreamID, streamID),
		attribute.String(AttrErrorCode, code),
	))
}

// RecordCancellation records a consumer-initiated cancellation.
func (m *StreamMetrics) RecordCancellation(ctx context.Context, streamID string) {
	if m == nil {
		return
	}
	m.cancellations.Add(ctx, 1, streamAttrs(streamID))
}

// RecordViolation records a detected publisher protocol violation.
func (m *StreamMetrics) RecordViolation(ctx context.Context, streamID, reason string) {
	if m == nil {
		return
	}
	m.violations.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrStreamID, streamID),
		attribute.String("reason", reason),
	))
}

func streamAttrs(streamID string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String(AttrStreamID, streamID))
}

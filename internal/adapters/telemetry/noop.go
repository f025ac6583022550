package telemetry

import (
	"context"
	"time"

	"go.trai.ch/archlint/internal/core/ports"
)

var (
	_ ports.Tracer  = (*NoOpTracer)(nil)
	_ ports.Span    = (*NoOpSpan)(nil)
	_ ports.Metrics = (*NoOpMetrics)(nil)
)

// NoOpTracer is a no-op implementation of ports.Tracer.
type NoOpTracer struct{}

// NewNoOpTracer creates a new NoOpTracer.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Start creates a new no-op span.
func (t *NoOpTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, &NoOpSpan{}
}

// NoOpSpan is a no-op implementation of ports.Span.
type NoOpSpan struct{}

// End does nothing.
func (s *NoOpSpan) End() {}

// RecordError does nothing.
func (s *NoOpSpan) RecordError(_ error) {}

// SetAttribute does nothing.
func (s *NoOpSpan) SetAttribute(_ string, _ any) {}

// NoOpMetrics discards every measurement.
type NoOpMetrics struct{}

// NewNoOpMetrics creates a new NoOpMetrics.
func NewNoOpMetrics() *NoOpMetrics {
	return &NoOpMetrics{}
}

// FileAnalyzed does nothing.
func (m *NoOpMetrics) FileAnalyzed(_ context.Context, _ bool, _ time.Duration) {}

// FileSkipped does nothing.
func (m *NoOpMetrics) FileSkipped(_ context.Context) {}

// CyclesDetected does nothing.
func (m *NoOpMetrics) CyclesDetected(_ context.Context, _ int) {}

// BatchProcessed does nothing.
func (m *NoOpMetrics) BatchProcessed(_ context.Context, _ int, _ time.Duration) {}

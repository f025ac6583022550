package ports

import (
	"context"
	"time"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
}

// Span represents a unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}

// SpanConfig holds configuration for a starting span.
type SpanConfig struct {
	// Attributes are set on the span when it starts.
	Attributes map[string]any
}

// SpanOption is a functional option for configuring a span.
type SpanOption func(*SpanConfig)

// WithAttribute sets an attribute on the span when it starts.
func WithAttribute(key string, value any) SpanOption {
	return func(c *SpanConfig) {
		if c.Attributes == nil {
			c.Attributes = make(map[string]any)
		}
		c.Attributes[key] = value
	}
}

// Metrics records analysis counters.
type Metrics interface {
	// FileAnalyzed records one analyzed file and whether its result came from the cache.
	FileAnalyzed(ctx context.Context, cached bool, d time.Duration)
	// FileSkipped records a file that could not be read or analyzed.
	FileSkipped(ctx context.Context)
	// CyclesDetected records the number of cycles found by one detection pass.
	CyclesDetected(ctx context.Context, n int)
	// BatchProcessed records one watch-mode batch and the number of changed files in it.
	BatchProcessed(ctx context.Context, changed int, d time.Duration)
}

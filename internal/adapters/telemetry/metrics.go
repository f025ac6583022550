package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.trai.ch/archlint/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Metrics = (*Metrics)(nil)

// Metrics records analysis counters through an OpenTelemetry meter.
type Metrics struct {
	filesAnalyzed   metric.Int64Counter
	filesSkipped    metric.Int64Counter
	analyzeDuration metric.Float64Histogram
	cycles          metric.Int64Histogram
	batches         metric.Int64Counter
	batchFiles      metric.Int64Histogram
	batchDuration   metric.Float64Histogram

	handler  http.Handler
	shutdown func(context.Context) error
}

// NewMetrics creates the instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{
		handler:  http.NotFoundHandler(),
		shutdown: func(context.Context) error { return nil },
	}

	var err error
	if m.filesAnalyzed, err = meter.Int64Counter(
		"archlint_files_analyzed",
		metric.WithDescription("Files analyzed, split by whether the result came from the cache"),
	); err != nil {
		return nil, zerr.Wrap(err, "failed to create files analyzed counter")
	}
	if m.filesSkipped, err = meter.Int64Counter(
		"archlint_files_skipped",
		metric.WithDescription("Files that could not be read or analyzed"),
	); err != nil {
		return nil, zerr.Wrap(err, "failed to create files skipped counter")
	}
	if m.analyzeDuration, err = meter.Float64Histogram(
		"archlint_file_analysis_duration_seconds",
		metric.WithDescription("Duration of single file analyses"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, zerr.Wrap(err, "failed to create analysis duration histogram")
	}
	if m.cycles, err = meter.Int64Histogram(
		"archlint_cycles_detected",
		metric.WithDescription("Circular dependencies found per detection pass"),
	); err != nil {
		return nil, zerr.Wrap(err, "failed to create cycles histogram")
	}
	if m.batches, err = meter.Int64Counter(
		"archlint_watch_batches",
		metric.WithDescription("Watch mode batches processed"),
	); err != nil {
		return nil, zerr.Wrap(err, "failed to create batches counter")
	}
	if m.batchFiles, err = meter.Int64Histogram(
		"archlint_watch_batch_files",
		metric.WithDescription("Changed files per watch mode batch"),
	); err != nil {
		return nil, zerr.Wrap(err, "failed to create batch files histogram")
	}
	if m.batchDuration, err = meter.Float64Histogram(
		"archlint_watch_batch_duration_seconds",
		metric.WithDescription("Duration of watch mode batches"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, zerr.Wrap(err, "failed to create batch duration histogram")
	}

	return m, nil
}

// NewPrometheusMetrics creates Metrics exported through a private Prometheus
// registry. Handler serves the registry in the Prometheus text format.
func NewPrometheusMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create prometheus exporter")
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	m, err := NewMetrics(provider.Meter(InstrumentationName))
	if err != nil {
		return nil, err
	}
	m.handler = promhttp.InstrumentMetricHandler(registry, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	m.shutdown = provider.Shutdown
	return m, nil
}

// Handler returns the HTTP handler exposing the metrics.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

// Shutdown flushes and releases the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.shutdown(ctx)
}

// FileAnalyzed records one analyzed file.
func (m *Metrics) FileAnalyzed(ctx context.Context, cached bool, d time.Duration) {
	attrs := metric.WithAttributes(attribute.Bool("cached", cached))
	m.filesAnalyzed.Add(ctx, 1, attrs)
	m.analyzeDuration.Record(ctx, d.Seconds(), attrs)
}

// FileSkipped records a skipped file.
func (m *Metrics) FileSkipped(ctx context.Context) {
	m.filesSkipped.Add(ctx, 1)
}

// CyclesDetected records the size of one detection pass.
func (m *Metrics) CyclesDetected(ctx context.Context, n int) {
	m.cycles.Record(ctx, int64(n))
}

// BatchProcessed records one watch mode batch.
func (m *Metrics) BatchProcessed(ctx context.Context, changed int, d time.Duration) {
	m.batches.Add(ctx, 1)
	m.batchFiles.Record(ctx, int64(changed))
	m.batchDuration.Record(ctx, d.Seconds())
}

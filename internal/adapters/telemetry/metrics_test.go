package telemetry_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.trai.ch/archlint/internal/adapters/telemetry"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumOf(t *testing.T, agg metricdata.Aggregation) int64 {
	t.Helper()
	sum, ok := agg.(metricdata.Sum[int64])
	require.True(t, ok, "expected an int64 sum, got %T", agg)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	m, err := telemetry.NewMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.FileAnalyzed(ctx, true, time.Millisecond)
	m.FileAnalyzed(ctx, false, 2*time.Millisecond)
	m.FileAnalyzed(ctx, false, 3*time.Millisecond)
	m.FileSkipped(ctx)
	m.CyclesDetected(ctx, 2)
	m.BatchProcessed(ctx, 4, time.Second)

	data := collect(t, reader)

	assert.Equal(t, int64(3), sumOf(t, data["archlint_files_analyzed"]))
	assert.Equal(t, int64(1), sumOf(t, data["archlint_files_skipped"]))
	assert.Equal(t, int64(1), sumOf(t, data["archlint_watch_batches"]))

	analyzed, ok := data["archlint_files_analyzed"].(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, analyzed.DataPoints, 2, "cached and uncached series")

	cycles, ok := data["archlint_cycles_detected"].(metricdata.Histogram[int64])
	require.True(t, ok)
	require.Len(t, cycles.DataPoints, 1)
	assert.Equal(t, int64(2), cycles.DataPoints[0].Sum)
}

func TestMetrics_PrometheusHandler(t *testing.T) {
	m, err := telemetry.NewPrometheusMetrics()
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Shutdown(context.Background()) })

	m.FileAnalyzed(context.Background(), false, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "archlint_files_analyzed")
}

func TestMetrics_PrometheusRegistriesAreIndependent(t *testing.T) {
	first, err := telemetry.NewPrometheusMetrics()
	require.NoError(t, err)
	second, err := telemetry.NewPrometheusMetrics()
	require.NoError(t, err)

	require.NoError(t, first.Shutdown(context.Background()))
	require.NoError(t, second.Shutdown(context.Background()))
}

func TestNoOpMetrics(t *testing.T) {
	t.Parallel()

	m := telemetry.NewNoOpMetrics()
	ctx := context.Background()

	m.FileAnalyzed(ctx, true, time.Second)
	m.FileSkipped(ctx)
	m.CyclesDetected(ctx, 1)
	m.BatchProcessed(ctx, 1, time.Second)
}

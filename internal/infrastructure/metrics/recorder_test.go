package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Luyzz22/contract-analyzer-backend/internal/infrastructure/metrics"
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
	require.True(t, ok, "expected int64 sum, got %T", agg)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestRecorder(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	rec, err := metrics.NewRecorder(provider)
	require.NoError(t, err)

	ctx := context.Background()
	rec.ObserveAnalysis(ctx, "employment", "critical", 100, 1500*time.Millisecond)
	rec.ObserveAnalysis(ctx, "saas", "high", 73, 200*time.Millisecond)
	rec.CountFailure(ctx, "nda", "extraction")
	rec.CountAlerts(ctx, "14_days", 3)
	rec.CountAlerts(ctx, "7_days", 0)
	rec.ObserveRequest(ctx, "GET", "/api/v1/contracts", 200, 5*time.Millisecond)

	got := collect(t, reader)
	assert.Equal(t, int64(2), sumOf(t, got["contract_analyses_total"]))
	assert.Equal(t, int64(1), sumOf(t, got["contract_analysis_failures_total"]))
	assert.Equal(t, int64(3), sumOf(t, got["contract_alerts_created_total"]))
	assert.Equal(t, int64(1), sumOf(t, got["http_requests_total"]))

	scores, ok := got["contract_risk_score"].(metricdata.Histogram[int64])
	require.True(t, ok)
	var count uint64
	for _, dp := range scores.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(2), count)
}

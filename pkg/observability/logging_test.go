package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/Luyzz22/contract-analyzer-backend/pkg/observability"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "INFO", expected: slog.LevelInfo},
		{input: "warn", expected: slog.LevelWarn},
		{input: "Warning", expected: slog.LevelWarn},
		{input: " error ", expected: slog.LevelError},
		{input: "", expected: slog.LevelInfo},
		{input: "xyzzy", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, observability.ParseLevel(tt.input))
		})
	}
}

func TestInitLogger_JSONWithServiceAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := observability.InitLogger(observability.LogConfig{
		Level:       "debug",
		Format:      "json",
		ServiceName: "contractd",
		Environment: "test",
		Output:      &buf,
	})

	logger.Debug("analysis completed", slog.Int("risk_score", 73))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "analysis completed", entry["msg"])
	assert.Equal(t, "contractd", entry["service"])
	assert.Equal(t, "test", entry["env"])
	assert.EqualValues(t, 73, entry["risk_score"])
}

func TestInitLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := observability.InitLogger(observability.LogConfig{Level: "warn", Output: &buf})

	logger.Info("dropped")
	assert.Zero(t, buf.Len())
	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestInitMetrics_ServesInstruments(t *testing.T) {
	provider, handler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: "contractd"})
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	counter, err := provider.Meter("test").Int64Counter("contract_test_total")
	require.NoError(t, err)
	counter.Add(context.Background(), 2)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "contract_test_total")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestInitTracer_WithoutEndpoint(t *testing.T) {
	shutdown, err := observability.InitTracer(context.Background(), observability.TracingConfig{ServiceName: "contractd"})
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}

// Package metrics records pipeline and HTTP measurements as OpenTelemetry
// instruments, exported through the Prometheus reader.
package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/Luyzz22/contract-analyzer-backend"

// Recorder implements port.AnalysisMetrics and the HTTP request metrics
// used by the REST middleware.
type Recorder struct {
	analyses        metric.Int64Counter
	analysisSeconds metric.Float64Histogram
	riskScore       metric.Int64Histogram
	failures        metric.Int64Counter
	alerts          metric.Int64Counter
	requests        metric.Int64Counter
	requestSeconds  metric.Float64Histogram
}

// NewRecorder creates all instruments on a meter from provider.
func NewRecorder(provider metric.MeterProvider) (*Recorder, error) {
	m := provider.Meter(meterName)
	r := &Recorder{}
	var err error

	if r.analyses, err = m.Int64Counter("contract_analyses_total",
		metric.WithDescription("Completed contract analyses by type and overall risk level.")); err != nil {
		return nil, fmt.Errorf("create analyses counter: %w", err)
	}
	if r.analysisSeconds, err = m.Float64Histogram("contract_analysis_duration_seconds",
		metric.WithDescription("Time from request to stored assessment."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.25, 1, 2.5, 5, 10, 30, 60)); err != nil {
		return nil, fmt.Errorf("create analysis duration histogram: %w", err)
	}
	if r.riskScore, err = m.Int64Histogram("contract_risk_score",
		metric.WithDescription("Distribution of overall risk scores."),
		metric.WithExplicitBucketBoundaries(20, 40, 55, 70, 85, 100)); err != nil {
		return nil, fmt.Errorf("create risk score histogram: %w", err)
	}
	if r.failures, err = m.Int64Counter("contract_analysis_failures_total",
		metric.WithDescription("Failed analyses by pipeline stage.")); err != nil {
		return nil, fmt.Errorf("create failure counter: %w", err)
	}
	if r.alerts, err = m.Int64Counter("contract_alerts_created_total",
		metric.WithDescription("Newly stored deadline and risk alerts.")); err != nil {
		return nil, fmt.Errorf("create alert counter: %w", err)
	}
	if r.requests, err = m.Int64Counter("http_requests_total",
		metric.WithDescription("HTTP requests by route and status code.")); err != nil {
		return nil, fmt.Errorf("create request counter: %w", err)
	}
	if r.requestSeconds, err = m.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request latency."),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("create request duration histogram: %w", err)
	}

	return r, nil
}

// ObserveAnalysis records a completed analysis.
func (r *Recorder) ObserveAnalysis(ctx context.Context, contractType, riskLevel string, score int, elapsed time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("contract_type", contractType),
		attribute.String("risk_level", riskLevel),
	)
	r.analyses.Add(ctx, 1, attrs)
	r.analysisSeconds.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attribute.String("contract_type", contractType)))
	r.riskScore.Record(ctx, int64(score), attrs)
}

// CountFailure records a failed analysis.
func (r *Recorder) CountFailure(ctx context.Context, contractType, stage string) {
	r.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("contract_type", contractType),
		attribute.String("stage", stage),
	))
}

// CountAlerts records n newly created alerts.
func (r *Recorder) CountAlerts(ctx context.Context, alertType string, n int) {
	if n <= 0 {
		return
	}
	r.alerts.Add(ctx, int64(n), metric.WithAttributes(attribute.String("alert_type", alertType)))
}

// ObserveRequest records one served HTTP request.
func (r *Recorder) ObserveRequest(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	r.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	))
	r.requestSeconds.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
	))
}

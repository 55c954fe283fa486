package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/dto"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/event"
	"github.com/Luyzz22/contract-analyzer-backend/internal/infrastructure/kafka"
	pkgkafka "github.com/Luyzz22/contract-analyzer-backend/pkg/kafka"
)

const topic = "contract.events"

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type mockWriter struct {
	PublishFunc func(ctx context.Context, topic string, messages ...pkgkafka.Message) error
	published   []pkgkafka.Message
}

func (m *mockWriter) Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error {
	m.published = append(m.published, messages...)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, messages...)
	}
	return nil
}

type mockRecorder struct {
	ExecuteFunc func(ctx context.Context, req dto.RecordRiskAlertRequest) error
	requests    []dto.RecordRiskAlertRequest
}

func (m *mockRecorder) Execute(ctx context.Context, req dto.RecordRiskAlertRequest) error {
	m.requests = append(m.requests, req)
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, req)
	}
	return nil
}

func criticalEvent() event.CriticalRiskDetected {
	return event.NewCriticalRiskDetected(uuid.New(), uuid.New(), "employment", 100,
		[]string{"Wettbewerbsverbot ohne Karenzentschädigung", "Probezeit über 6 Monate"},
		time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC))
}

func TestPublisher_Publish(t *testing.T) {
	writer := &mockWriter{}
	pub := kafka.NewPublisher(writer, topic, discardLogger)
	evt := criticalEvent()

	require.NoError(t, pub.Publish(context.Background(), evt))
	require.Len(t, writer.published, 1)

	msg := writer.published[0]
	assert.Equal(t, evt.AnalysisID.String(), string(msg.Key))
	assert.Equal(t, event.EventTypeCriticalRiskDetected, msg.Headers[kafka.HeaderEventType])
	assert.Equal(t, event.AggregateTypeContractAnalysis, msg.Headers[kafka.HeaderAggregateType])
	assert.Equal(t, evt.TenantID().String(), msg.Headers[kafka.HeaderTenantID])

	var env kafka.Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, evt.EventID(), env.EventID)
	assert.Equal(t, evt.AnalysisID, env.AggregateID)
	assert.Equal(t, evt.TenantID(), env.TenantID)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(env.Payload, &payload))
	assert.EqualValues(t, 100, payload["risk_score"])
	assert.NotContains(t, payload, "tenant_id")
}

func TestPublisher_NoEvents(t *testing.T) {
	writer := &mockWriter{PublishFunc: func(context.Context, string, ...pkgkafka.Message) error {
		t.Fatal("writer must not be called")
		return nil
	}}
	pub := kafka.NewPublisher(writer, topic, discardLogger)
	assert.NoError(t, pub.Publish(context.Background()))
}

func TestPublisher_WriterError(t *testing.T) {
	writer := &mockWriter{PublishFunc: func(context.Context, string, ...pkgkafka.Message) error {
		return errors.New("broker unavailable")
	}}
	pub := kafka.NewPublisher(writer, topic, discardLogger)

	err := pub.Publish(context.Background(), criticalEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contract.events")
}

// roundTrip publishes evt and returns the record the broker would deliver.
func roundTrip(t *testing.T, evt event.CriticalRiskDetected) pkgkafka.Message {
	t.Helper()
	writer := &mockWriter{}
	require.NoError(t, kafka.NewPublisher(writer, topic, discardLogger).Publish(context.Background(), evt))
	require.Len(t, writer.published, 1)
	return writer.published[0]
}

func TestAlertConsumer_RecordsCriticalRisk(t *testing.T) {
	recorder := &mockRecorder{}
	consumer := kafka.NewAlertConsumer(recorder, discardLogger)
	evt := criticalEvent()

	require.NoError(t, consumer.Handle(context.Background(), roundTrip(t, evt)))
	require.Len(t, recorder.requests, 1)

	req := recorder.requests[0]
	assert.Equal(t, evt.AnalysisID, req.AnalysisID)
	assert.Equal(t, evt.TenantID(), req.TenantID)
	assert.Equal(t, "employment", req.ContractType)
	assert.Equal(t, 100, req.RiskScore)
	assert.Equal(t, evt.Findings, req.Findings)
	assert.True(t, evt.DetectedAt.Equal(req.DetectedAt))
}

func TestAlertConsumer_SkipsOtherMessages(t *testing.T) {
	completed := event.NewAnalysisCompleted(uuid.New(), uuid.New(), "nda", 12, "low", 0, 0, nil, time.Now())
	writer := &mockWriter{}
	require.NoError(t, kafka.NewPublisher(writer, topic, discardLogger).Publish(context.Background(), completed))

	tests := []struct {
		name string
		msg  pkgkafka.Message
	}{
		{name: "other event type", msg: writer.published[0]},
		{name: "not json", msg: pkgkafka.Message{Value: []byte("{")}},
		{name: "no header, other type", msg: pkgkafka.Message{Value: []byte(`{"event_type":"contract.analysis.failed"}`)}},
		{
			name: "no tenant",
			msg: pkgkafka.Message{
				Value:   []byte(`{"event_type":"contract.critical_risk.detected","aggregate_id":"` + uuid.NewString() + `","payload":{"risk_score":100}}`),
				Headers: map[string]string{kafka.HeaderEventType: event.EventTypeCriticalRiskDetected},
			},
		},
		{
			name: "bad payload",
			msg: pkgkafka.Message{
				Value:   []byte(`{"event_type":"contract.critical_risk.detected","payload":"oops"}`),
				Headers: map[string]string{kafka.HeaderEventType: event.EventTypeCriticalRiskDetected},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := &mockRecorder{}
			consumer := kafka.NewAlertConsumer(recorder, discardLogger)
			assert.NoError(t, consumer.Handle(context.Background(), tt.msg))
			assert.Empty(t, recorder.requests)
		})
	}
}

func TestAlertConsumer_StorageErrorIsReturned(t *testing.T) {
	recorder := &mockRecorder{ExecuteFunc: func(context.Context, dto.RecordRiskAlertRequest) error {
		return errors.New("connection reset")
	}}
	consumer := kafka.NewAlertConsumer(recorder, discardLogger)

	err := consumer.Handle(context.Background(), roundTrip(t, criticalEvent()))
	assert.ErrorContains(t, err, "connection reset")
}

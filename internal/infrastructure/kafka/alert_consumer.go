package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/dto"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/event"
	pkgkafka "github.com/Luyzz22/contract-analyzer-backend/pkg/kafka"
)

// RiskAlertRecorder stores critical_risk alerts. *usecase.RecordRiskAlert satisfies it.
type RiskAlertRecorder interface {
	Execute(ctx context.Context, req dto.RecordRiskAlertRequest) error
}

// AlertConsumer turns CriticalRiskDetected events into stored alerts.
type AlertConsumer struct {
	recorder RiskAlertRecorder
	logger   *slog.Logger
}

// NewAlertConsumer creates a new AlertConsumer.
func NewAlertConsumer(recorder RiskAlertRecorder, logger *slog.Logger) *AlertConsumer {
	return &AlertConsumer{
		recorder: recorder,
		logger:   logger,
	}
}

// Handle is a pkgkafka.Handler. Other event types and undecodable records
// are skipped so they do not block the partition; only storage failures
// are returned.
func (c *AlertConsumer) Handle(ctx context.Context, msg pkgkafka.Message) error {
	if t, ok := msg.Headers[HeaderEventType]; ok && t != event.EventTypeCriticalRiskDetected {
		return nil
	}

	var env Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil {
		c.logger.WarnContext(ctx, "skipping undecodable event", slog.String("error", err.Error()))
		return nil
	}
	if env.EventType != event.EventTypeCriticalRiskDetected {
		return nil
	}

	var detected event.CriticalRiskDetected
	if err := json.Unmarshal(env.Payload, &detected); err != nil {
		c.logger.WarnContext(ctx, "skipping undecodable critical risk payload",
			slog.String("event_id", env.EventID.String()),
			slog.String("error", err.Error()),
		)
		return nil
	}

	if env.TenantID == uuid.Nil {
		c.logger.WarnContext(ctx, "skipping critical risk event without tenant",
			slog.String("event_id", env.EventID.String()),
		)
		return nil
	}
	analysisID := detected.AnalysisID
	if analysisID == uuid.Nil {
		analysisID = env.AggregateID
	}

	detectedAt := detected.DetectedAt
	if detectedAt.IsZero() {
		detectedAt = env.OccurredAt
	}

	if err := c.recorder.Execute(ctx, dto.RecordRiskAlertRequest{
		DetectedAt:   detectedAt,
		Findings:     detected.Findings,
		ContractType: detected.ContractType,
		TenantID:     env.TenantID,
		AnalysisID:   analysisID,
		RiskScore:    detected.RiskScore,
	}); err != nil {
		return fmt.Errorf("failed to record risk alert for %s: %w", analysisID, err)
	}
	return nil
}

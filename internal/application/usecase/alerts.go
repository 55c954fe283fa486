package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/dto"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/port"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

// maxFindingsInMessage bounds how many finding titles a risk alert names.
const maxFindingsInMessage = 3

// RecordRiskAlert stores a critical_risk alert for a critical analysis.
type RecordRiskAlert struct {
	alerts  port.AlertRepository
	metrics port.AnalysisMetrics
	logger  *slog.Logger
}

// NewRecordRiskAlert creates a new RecordRiskAlert use case.
func NewRecordRiskAlert(alerts port.AlertRepository, metrics port.AnalysisMetrics, logger *slog.Logger) *RecordRiskAlert {
	return &RecordRiskAlert{
		alerts:  alerts,
		metrics: metrics,
		logger:  logger,
	}
}

// Execute stores the alert. Redelivered notifications for the same analysis
// and day are ignored.
func (uc *RecordRiskAlert) Execute(ctx context.Context, req dto.RecordRiskAlertRequest) error {
	detected := req.DetectedAt
	if detected.IsZero() {
		detected = time.Now()
	}
	day := detected.UTC().Truncate(24 * time.Hour)

	alert, err := model.NewAlert(req.TenantID, req.AnalysisID, valueobject.AlertTypeCriticalRisk, day, 0, riskAlertMessage(req))
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	inserted, err := uc.alerts.SaveIfAbsent(ctx, alert)
	if err != nil {
		return fmt.Errorf("failed to save alert: %w", err)
	}
	if !inserted {
		uc.logger.DebugContext(ctx, "risk alert already recorded",
			slog.String("analysis_id", req.AnalysisID.String()),
		)
		return nil
	}

	uc.metrics.CountAlerts(ctx, valueobject.AlertTypeCriticalRisk.String(), 1)
	uc.logger.InfoContext(ctx, "risk alert recorded",
		slog.String("analysis_id", req.AnalysisID.String()),
		slog.String("tenant_id", req.TenantID.String()),
		slog.Int("risk_score", req.RiskScore),
	)
	return nil
}

func riskAlertMessage(req dto.RecordRiskAlertRequest) string {
	msg := fmt.Sprintf("Kritisches Vertragsrisiko erkannt (%s, Risiko-Score %d/100).", req.ContractType, req.RiskScore)
	if len(req.Findings) == 0 {
		return msg
	}
	findings := req.Findings
	if len(findings) > maxFindingsInMessage {
		findings = findings[:maxFindingsInMessage]
	}
	return msg + " " + strings.Join(findings, "; ")
}

// ListAlerts returns a tenant's stored alerts.
type ListAlerts struct {
	alerts port.AlertRepository
}

// NewListAlerts creates a new ListAlerts use case.
func NewListAlerts(alerts port.AlertRepository) *ListAlerts {
	return &ListAlerts{alerts: alerts}
}

// Execute lists alerts ordered by deadline.
func (uc *ListAlerts) Execute(ctx context.Context, req dto.ListAlertsRequest) ([]dto.AlertResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}

	alerts, err := uc.alerts.ListByTenant(ctx, req.TenantID, limit, req.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}

	out := make([]dto.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, dto.AlertFromModel(a))
	}
	return out, nil
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/dto"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/port"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/service"
)

// ScanDeadlines creates reminder alerts for contracts ending soon.
type ScanDeadlines struct {
	analyses port.AnalysisRepository
	alerts   port.AlertRepository
	metrics  port.AnalysisMetrics
	planner  *service.DeadlinePlanner
	logger   *slog.Logger
}

// NewScanDeadlines creates a new ScanDeadlines use case.
func NewScanDeadlines(
	analyses port.AnalysisRepository,
	alerts port.AlertRepository,
	metrics port.AnalysisMetrics,
	planner *service.DeadlinePlanner,
	logger *slog.Logger,
) *ScanDeadlines {
	return &ScanDeadlines{
		analyses: analyses,
		alerts:   alerts,
		metrics:  metrics,
		planner:  planner,
		logger:   logger,
	}
}

// Execute plans alerts for every contract ending within the planner's
// horizon of today and stores the ones that do not exist yet. Running it
// repeatedly on the same day creates nothing new.
func (uc *ScanDeadlines) Execute(ctx context.Context, today time.Time) (dto.ScanDeadlinesResponse, error) {
	from := today.UTC().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, uc.planner.HorizonDays())

	deadlines, err := uc.analyses.UpcomingDeadlines(ctx, from, to)
	if err != nil {
		return dto.ScanDeadlinesResponse{}, fmt.Errorf("failed to load upcoming deadlines: %w", err)
	}

	resp := dto.ScanDeadlinesResponse{Contracts: len(deadlines)}
	created := make(map[string]int)
	for _, d := range deadlines {
		for _, planned := range uc.planner.Plan(d, from) {
			resp.Planned++
			alert, err := model.NewAlert(d.TenantID, d.AnalysisID, planned.Type, planned.Deadline, planned.DaysUntil, planned.Message)
			if err != nil {
				return resp, fmt.Errorf("failed to create alert: %w", err)
			}
			inserted, err := uc.alerts.SaveIfAbsent(ctx, alert)
			if err != nil {
				return resp, fmt.Errorf("failed to save alert: %w", err)
			}
			if inserted {
				resp.Created++
				created[planned.Type.String()]++
			}
		}
	}

	for alertType, n := range created {
		uc.metrics.CountAlerts(ctx, alertType, n)
	}
	uc.logger.InfoContext(ctx, "deadline scan finished",
		slog.Int("contracts", resp.Contracts),
		slog.Int("planned", resp.Planned),
		slog.Int("created", resp.Created),
	)

	return resp, nil
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/dto"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/port"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/service"
)

// expiringWindow is how far ahead the dashboard counts contracts as expiring.
const expiringWindow = 30 * 24 * time.Hour

// Dashboard summarizes a tenant's analyses and plan usage.
type Dashboard struct {
	repo  port.AnalysisRepository
	usage port.UsageRepository
	plans port.TenantPlanRepository
	quota *service.QuotaPolicy
	now   func() time.Time
}

// NewDashboard creates a new Dashboard use case.
func NewDashboard(repo port.AnalysisRepository, usage port.UsageRepository, plans port.TenantPlanRepository) *Dashboard {
	return &Dashboard{
		repo:  repo,
		usage: usage,
		plans: plans,
		quota: service.NewQuotaPolicy(),
		now:   time.Now,
	}
}

// Execute aggregates the tenant's portfolio for the current month.
func (uc *Dashboard) Execute(ctx context.Context, tenantID uuid.UUID) (dto.DashboardResponse, error) {
	now := uc.now().UTC()
	month := monthKey(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats, err := uc.repo.Stats(ctx, tenantID, monthStart, now.Add(expiringWindow))
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("failed to load analysis stats: %w", err)
	}
	plan, err := uc.plans.PlanFor(ctx, tenantID)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("failed to load tenant plan: %w", err)
	}
	used, err := uc.usage.CountForMonth(ctx, tenantID, month)
	if err != nil {
		return dto.DashboardResponse{}, fmt.Errorf("failed to load usage: %w", err)
	}

	return dto.DashboardResponse{
		ByLevel:           stats.ByLevel,
		ByType:            stats.ByType,
		Plan:              plan.String(),
		Month:             month,
		AverageScore:      stats.AverageScore,
		TotalAnalyses:     stats.Total,
		FailedAnalyses:    stats.Failed,
		AnalysesThisMonth: stats.ThisMonth,
		UsedThisMonth:     used,
		MonthlyLimit:      plan.MonthlyAnalyses(),
		Remaining:         uc.quota.Remaining(plan, used),
		ExpiringSoon:      stats.ExpiringSoon,
	}, nil
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/dto"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/port"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/service"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

const tracerName = "github.com/Luyzz22/contract-analyzer-backend/internal/application/usecase"

var tracer = otel.Tracer(tracerName)

// monthKey returns the usage bucket of t ("2006-01").
func monthKey(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// Dependencies groups the ports shared by the analysis use cases.
type Dependencies struct {
	Analyses  port.AnalysisRepository
	Usage     port.UsageRepository
	Plans     port.TenantPlanRepository
	Publisher port.EventPublisher
	Metrics   port.AnalysisMetrics
	Engine    service.Assessor
	Logger    *slog.Logger
}

// pipeline holds the steps AnalyzeContract and AssessContract share.
type pipeline struct {
	Dependencies
	quota *service.QuotaPolicy
	now   func() time.Time
}

func newPipeline(deps Dependencies) pipeline {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return pipeline{
		Dependencies: deps,
		quota:        service.NewQuotaPolicy(),
		now:          time.Now,
	}
}

// checkQuota rejects the request when the tenant's plan does not cover it.
func (p pipeline) checkQuota(ctx context.Context, tenantID uuid.UUID, contractType valueobject.ContractType) error {
	plan, err := p.Plans.PlanFor(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("failed to load tenant plan: %w", err)
	}
	used, err := p.Usage.CountForMonth(ctx, tenantID, monthKey(p.now()))
	if err != nil {
		return fmt.Errorf("failed to load usage: %w", err)
	}
	return p.quota.Check(plan, contractType, used)
}

// complete scores the contract data, finishes the analysis and records it.
func (p pipeline) complete(
	ctx context.Context,
	analysis *model.ContractAnalysis,
	data model.ContractData,
	raw []byte,
	started time.Time,
) (dto.AnalysisResponse, error) {
	// 1. Run the rule engine.
	assessment, err := p.Engine.Assess(data)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("failed to assess contract: %w", err)
	}

	// 2. Apply the assessment to the aggregate.
	if err := analysis.Complete(data, raw, assessment); err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("failed to complete analysis: %w", err)
	}

	// 3. Persist the analysis and count it against the quota.
	if err := p.Analyses.Save(ctx, analysis); err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("failed to save analysis: %w", err)
	}
	if err := p.Usage.Increment(ctx, analysis.TenantID(), monthKey(p.now())); err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("failed to record usage: %w", err)
	}

	// 4. Publish domain events.
	p.publish(ctx, analysis)

	p.Metrics.ObserveAnalysis(ctx,
		analysis.ContractType().String(),
		assessment.OverallRiskLevel.String(),
		assessment.OverallRiskScore,
		p.now().Sub(started),
	)
	p.Logger.InfoContext(ctx, "contract analysis completed",
		slog.String("analysis_id", analysis.ID().String()),
		slog.String("tenant_id", analysis.TenantID().String()),
		slog.String("contract_type", analysis.ContractType().String()),
		slog.Int("risk_score", assessment.OverallRiskScore),
		slog.String("risk_level", assessment.OverallRiskLevel.String()),
	)

	return dto.FromModel(analysis), nil
}

// fail marks the analysis failed, stores it and reports the stage.
func (p pipeline) fail(ctx context.Context, analysis *model.ContractAnalysis, stage string, cause error) {
	p.Metrics.CountFailure(ctx, analysis.ContractType().String(), stage)
	if err := analysis.Fail(cause.Error()); err != nil {
		p.Logger.ErrorContext(ctx, "failed to mark analysis failed",
			slog.String("analysis_id", analysis.ID().String()),
			slog.String("error", err.Error()),
		)
		return
	}
	if err := p.Analyses.Save(ctx, analysis); err != nil {
		p.Logger.ErrorContext(ctx, "failed to save failed analysis",
			slog.String("analysis_id", analysis.ID().String()),
			slog.String("error", err.Error()),
		)
		return
	}
	p.publish(ctx, analysis)
}

// publish drains the aggregate's events. Delivery failures are logged; the
// analysis is already stored.
func (p pipeline) publish(ctx context.Context, analysis *model.ContractAnalysis) {
	evts := analysis.DomainEvents()
	if len(evts) == 0 {
		return
	}
	if err := p.Publisher.Publish(ctx, evts...); err != nil {
		p.Logger.WarnContext(ctx, "failed to publish analysis events",
			slog.String("analysis_id", analysis.ID().String()),
			slog.Int("events", len(evts)),
			slog.String("error", err.Error()),
		)
	}
}

package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/dto"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/port"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ListAnalyses handles listing a tenant's analyses with pagination.
type ListAnalyses struct {
	repo   port.AnalysisRepository
	logger *slog.Logger
}

// NewListAnalyses creates a new ListAnalyses use case.
func NewListAnalyses(repo port.AnalysisRepository, logger *slog.Logger) *ListAnalyses {
	return &ListAnalyses{
		repo:   repo,
		logger: logger,
	}
}

// Execute lists analyses newest first, optionally filtered by type and level.
func (uc *ListAnalyses) Execute(ctx context.Context, req dto.ListAnalysesRequest) (dto.ListAnalysesResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.ListAnalysesResponse{}, err
	}
	uc.logger.DebugContext(ctx, "listing analyses",
		"tenant_id", req.TenantID,
		"contract_type", req.ContractType,
		"risk_level", req.RiskLevel,
		"limit", req.Limit,
		"offset", req.Offset,
	)

	filter := port.AnalysisFilter{
		Limit:  clampLimit(req.Limit),
		Offset: max(req.Offset, 0),
	}
	if req.ContractType != "" {
		ct, err := valueobject.ContractTypeFromString(req.ContractType)
		if err != nil {
			return dto.ListAnalysesResponse{}, fmt.Errorf("%w: %v", dto.ErrValidation, err)
		}
		filter.ContractType = ct
	}
	if req.RiskLevel != "" {
		level, err := valueobject.RiskLevelFromString(req.RiskLevel)
		if err != nil {
			return dto.ListAnalysesResponse{}, fmt.Errorf("%w: %v", dto.ErrValidation, err)
		}
		filter.RiskLevel = level
	}

	analyses, total, err := uc.repo.List(ctx, req.TenantID, filter)
	if err != nil {
		return dto.ListAnalysesResponse{}, fmt.Errorf("failed to list analyses: %w", err)
	}

	items := make([]dto.AnalysisSummary, 0, len(analyses))
	for _, a := range analyses {
		items = append(items, dto.SummaryFromModel(a))
	}

	return dto.ListAnalysesResponse{
		Items:  items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	return min(limit, maxLimit)
}

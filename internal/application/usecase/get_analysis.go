package usecase

import (
	"context"
	"fmt"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/dto"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/port"
)

// GetAnalysis is the use case for retrieving an existing analysis.
type GetAnalysis struct {
	repo port.AnalysisRepository
}

// NewGetAnalysis creates a new GetAnalysis use case.
func NewGetAnalysis(repo port.AnalysisRepository) *GetAnalysis {
	return &GetAnalysis{repo: repo}
}

// Execute retrieves a contract analysis by ID.
func (uc *GetAnalysis) Execute(ctx context.Context, req dto.GetAnalysisRequest) (dto.AnalysisResponse, error) {
	analysis, err := findAnalysis(ctx, uc.repo, req)
	if err != nil {
		return dto.AnalysisResponse{}, err
	}
	return dto.FromModel(analysis), nil
}

func findAnalysis(ctx context.Context, repo port.AnalysisRepository, req dto.GetAnalysisRequest) (*model.ContractAnalysis, error) {
	analysis, err := repo.FindByID(ctx, req.TenantID, req.AnalysisID)
	if err != nil {
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	if analysis == nil {
		return nil, fmt.Errorf("%w: %s", model.ErrAnalysisNotFound, req.AnalysisID)
	}
	return analysis, nil
}

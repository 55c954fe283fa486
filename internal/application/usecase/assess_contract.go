package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/dto"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

// AssessContract scores contract fields the caller has already extracted.
type AssessContract struct {
	pipeline
}

// NewAssessContract creates a new AssessContract use case.
func NewAssessContract(deps Dependencies) *AssessContract {
	return &AssessContract{pipeline: newPipeline(deps)}
}

// Execute decodes the submitted fields, runs the risk engine, and persists
// and publishes the result. Undecodable data is a validation error.
func (uc *AssessContract) Execute(ctx context.Context, req dto.AssessContractRequest) (dto.AnalysisResponse, error) {
	ctx, span := tracer.Start(ctx, "AssessContract")
	defer span.End()
	span.SetAttributes(
		attribute.String("tenant.id", req.TenantID.String()),
		attribute.String("contract.type", req.ContractType),
	)
	started := uc.now()

	// 1. Validate the request and decode the contract data.
	if err := req.Validate(); err != nil {
		return dto.AnalysisResponse{}, err
	}
	contractType, err := valueobject.ContractTypeFromString(req.ContractType)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("%w: %v", dto.ErrValidation, err)
	}
	data, err := model.DecodeContractData(contractType, req.Data)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("%w: %v", dto.ErrValidation, err)
	}

	// 2. Check the tenant's plan.
	if err := uc.checkQuota(ctx, req.TenantID, contractType); err != nil {
		return dto.AnalysisResponse{}, err
	}

	// 3. Create the analysis and complete it.
	analysis, err := model.NewContractAnalysis(req.TenantID, req.UserID, contractType, req.Filename)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("failed to create analysis: %w", err)
	}

	return uc.complete(ctx, analysis, data, req.Data, started)
}

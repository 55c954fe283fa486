package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/dto"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/port"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

// Failure stages reported to metrics.
const (
	stageExtraction = "extraction"
	stageDecode     = "decode"
	stageAssessment = "assessment"
)

// AnalyzeContract extracts the fields of a contract text and scores them.
type AnalyzeContract struct {
	pipeline
	extractor port.Extractor
}

// NewAnalyzeContract creates a new AnalyzeContract use case.
func NewAnalyzeContract(deps Dependencies, extractor port.Extractor) *AnalyzeContract {
	return &AnalyzeContract{
		pipeline:  newPipeline(deps),
		extractor: extractor,
	}
}

// Execute validates the request, checks the plan quota, extracts the contract
// fields, runs the risk engine, and persists and publishes the result.
// Extraction failures are stored as failed analyses and returned.
func (uc *AnalyzeContract) Execute(ctx context.Context, req dto.AnalyzeContractRequest) (dto.AnalysisResponse, error) {
	ctx, span := tracer.Start(ctx, "AnalyzeContract")
	defer span.End()
	span.SetAttributes(
		attribute.String("tenant.id", req.TenantID.String()),
		attribute.String("contract.type", req.ContractType),
	)
	started := uc.now()

	// 1. Validate the request.
	if err := req.Validate(); err != nil {
		return dto.AnalysisResponse{}, err
	}
	contractType, err := valueobject.ContractTypeFromString(req.ContractType)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("%w: %v", dto.ErrValidation, err)
	}

	// 2. Check the tenant's plan.
	if err := uc.checkQuota(ctx, req.TenantID, contractType); err != nil {
		return dto.AnalysisResponse{}, err
	}

	// 3. Create the pending analysis.
	analysis, err := model.NewContractAnalysis(req.TenantID, req.UserID, contractType, req.Filename)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("failed to create analysis: %w", err)
	}
	span.SetAttributes(attribute.String("analysis.id", analysis.ID().String()))

	// 4. Extract structured fields from the text.
	raw, err := uc.extractor.Extract(ctx, contractType, req.Text)
	if err != nil {
		uc.fail(ctx, analysis, stageExtraction, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction failed")
		return dto.AnalysisResponse{}, fmt.Errorf("%w: %w", port.ErrExtractionFailed, err)
	}

	// 5. Decode the extracted document into the typed contract data.
	data, err := model.DecodeContractData(contractType, raw)
	if err != nil {
		uc.fail(ctx, analysis, stageDecode, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return dto.AnalysisResponse{}, fmt.Errorf("%w: undecodable contract data: %w", port.ErrExtractionFailed, err)
	}

	// 6. Score, persist and publish.
	resp, err := uc.complete(ctx, analysis, data, raw, started)
	if err != nil {
		if analysis.Status().Equal(valueobject.AnalysisStatusPending) {
			uc.fail(ctx, analysis, stageAssessment, err)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "assessment failed")
		return dto.AnalysisResponse{}, err
	}
	span.SetAttributes(attribute.Int("risk.score", resp.RiskScore))

	return resp, nil
}

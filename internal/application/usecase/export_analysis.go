package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/dto"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/port"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

var csvHeader = []string{
	"analysis_id",
	"contract_type",
	"overall_risk_level",
	"overall_risk_score",
	"finding_risk_level",
	"category",
	"issue_title",
	"legal_basis",
	"recommendation",
	"section_reference",
}

// ExportAnalysis renders a completed analysis as a downloadable document.
type ExportAnalysis struct {
	repo port.AnalysisRepository
}

// NewExportAnalysis creates a new ExportAnalysis use case.
func NewExportAnalysis(repo port.AnalysisRepository) *ExportAnalysis {
	return &ExportAnalysis{repo: repo}
}

// Execute exports the analysis as JSON (the full response document) or CSV
// (one row per finding). Only completed analyses can be exported.
func (uc *ExportAnalysis) Execute(ctx context.Context, req dto.ExportAnalysisRequest) (dto.ExportResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.ExportResponse{}, err
	}

	analysis, err := findAnalysis(ctx, uc.repo, dto.GetAnalysisRequest{
		TenantID:   req.TenantID,
		AnalysisID: req.AnalysisID,
	})
	if err != nil {
		return dto.ExportResponse{}, err
	}
	if !analysis.Status().Equal(valueobject.AnalysisStatusCompleted) || analysis.Assessment() == nil {
		return dto.ExportResponse{}, fmt.Errorf("%w: %s", model.ErrAnalysisNotCompleted, req.AnalysisID)
	}

	filename := fmt.Sprintf("contract_%s_analysis.%s", analysis.ID(), req.Format)
	switch req.Format {
	case "csv":
		body, err := renderCSV(analysis)
		if err != nil {
			return dto.ExportResponse{}, fmt.Errorf("failed to render csv: %w", err)
		}
		return dto.ExportResponse{ContentType: "text/csv; charset=utf-8", Filename: filename, Body: body}, nil
	default:
		body, err := json.MarshalIndent(dto.FromModel(analysis), "", "  ")
		if err != nil {
			return dto.ExportResponse{}, fmt.Errorf("failed to render json: %w", err)
		}
		return dto.ExportResponse{ContentType: "application/json", Filename: filename, Body: body}, nil
	}
}

func renderCSV(analysis *model.ContractAnalysis) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	assessment := analysis.Assessment()
	for _, f := range assessment.AllRisks() {
		row := []string{
			analysis.ID().String(),
			analysis.ContractType().String(),
			assessment.OverallRiskLevel.String(),
			strconv.Itoa(assessment.OverallRiskScore),
			f.RiskLevel.String(),
			f.Category.String(),
			f.IssueTitle,
			f.LegalBasis,
			f.Recommendation,
			f.SectionReference,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

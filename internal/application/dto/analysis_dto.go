package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
)

// AnalyzeContractRequest is the input DTO for the AnalyzeContract use case.
type AnalyzeContractRequest struct {
	TenantID     uuid.UUID `json:"-"`
	UserID       uuid.UUID `json:"-"`
	ContractType string    `json:"contract_type" validate:"required,oneof=employment saas nda vendor"`
	Filename     string    `json:"filename" validate:"max=255"`
	Text         string    `json:"text" validate:"contracttext"`
	Language     string    `json:"language" validate:"omitempty,oneof=de en"`
}

// Validate checks the request against its field rules.
func (r AnalyzeContractRequest) Validate() error {
	return validateStruct(r)
}

// AssessContractRequest is the input DTO for scoring already structured data.
type AssessContractRequest struct {
	TenantID     uuid.UUID       `json:"-"`
	UserID       uuid.UUID       `json:"-"`
	ContractType string          `json:"contract_type" validate:"required,oneof=employment saas nda vendor"`
	Filename     string          `json:"filename" validate:"max=255"`
	Data         json.RawMessage `json:"data" validate:"required"`
}

// Validate checks the request against its field rules.
func (r AssessContractRequest) Validate() error {
	return validateStruct(r)
}

// GetAnalysisRequest is the input DTO for retrieving an analysis.
type GetAnalysisRequest struct {
	TenantID   uuid.UUID `json:"tenant_id"`
	AnalysisID uuid.UUID `json:"analysis_id"`
}

// ListAnalysesRequest is the input DTO for listing analyses.
type ListAnalysesRequest struct {
	TenantID     uuid.UUID `json:"-"`
	ContractType string    `json:"contract_type" validate:"omitempty,oneof=employment saas nda vendor"`
	RiskLevel    string    `json:"risk_level" validate:"omitempty,oneof=minimal low medium high critical"`
	Limit        int       `json:"limit" validate:"min=0,max=100"`
	Offset       int       `json:"offset" validate:"min=0"`
}

// Validate checks the request against its field rules.
func (r ListAnalysesRequest) Validate() error {
	return validateStruct(r)
}

// ExportAnalysisRequest is the input DTO for exporting an analysis.
type ExportAnalysisRequest struct {
	TenantID   uuid.UUID `json:"-"`
	AnalysisID uuid.UUID `json:"-"`
	Format     string    `json:"format" validate:"required,oneof=json csv"`
}

// Validate checks the request against its field rules.
func (r ExportAnalysisRequest) Validate() error {
	return validateStruct(r)
}

// ExportResponse is a rendered export document.
type ExportResponse struct {
	ContentType string
	Filename    string
	Body        []byte
}

// AnalysisResponse is the output DTO for a single analysis.
type AnalysisResponse struct {
	CreatedAt     time.Time             `json:"created_at"`
	CompletedAt   *time.Time            `json:"completed_at,omitempty"`
	EndDate       *time.Time            `json:"end_date,omitempty"`
	Assessment    *model.RiskAssessment `json:"assessment,omitempty"`
	ExtractedData json.RawMessage       `json:"extracted_data,omitempty"`
	ID            uuid.UUID             `json:"id"`
	TenantID      uuid.UUID             `json:"tenant_id"`
	ContractType  string                `json:"contract_type"`
	Filename      string                `json:"filename"`
	Status        string                `json:"status"`
	ErrorMessage  string                `json:"error_message,omitempty"`
	RiskLevel     string                `json:"risk_level,omitempty"`
	Counterparty  string                `json:"counterparty,omitempty"`
	ContractValue string                `json:"contract_value,omitempty"`
	RiskScore     int                   `json:"risk_score"`
	NoticeDays    int                   `json:"notice_period_days,omitempty"`
	AutoRenewal   bool                  `json:"auto_renewal"`
}

// AnalysisSummary is the list representation of an analysis.
type AnalysisSummary struct {
	CreatedAt     time.Time  `json:"created_at"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	ID            uuid.UUID  `json:"id"`
	ContractType  string     `json:"contract_type"`
	Filename      string     `json:"filename"`
	Status        string     `json:"status"`
	RiskLevel     string     `json:"risk_level,omitempty"`
	Counterparty  string     `json:"counterparty,omitempty"`
	RiskScore     int        `json:"risk_score"`
	CriticalCount int        `json:"critical_count"`
}

// ListAnalysesResponse is a page of analyses.
type ListAnalysesResponse struct {
	Items  []AnalysisSummary `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// FromModel maps a domain model to the response DTO.
func FromModel(a *model.ContractAnalysis) AnalysisResponse {
	resp := AnalysisResponse{
		ID:            a.ID(),
		TenantID:      a.TenantID(),
		ContractType:  a.ContractType().String(),
		Filename:      a.Filename(),
		Status:        a.Status().String(),
		ErrorMessage:  a.ErrorMessage(),
		RiskScore:     a.RiskScore(),
		RiskLevel:     a.RiskLevel().String(),
		Counterparty:  a.Counterparty(),
		EndDate:       a.EndDate(),
		NoticeDays:    a.NoticeDays(),
		AutoRenewal:   a.AutoRenewal(),
		Assessment:    a.Assessment(),
		ExtractedData: a.Extracted(),
		CreatedAt:     a.CreatedAt(),
	}
	if v := a.ContractValue(); v.Valid {
		resp.ContractValue = v.Decimal.String()
	}
	if !a.CompletedAt().IsZero() {
		completed := a.CompletedAt()
		resp.CompletedAt = &completed
	}
	return resp
}

// SummaryFromModel maps a domain model to its list representation.
func SummaryFromModel(a *model.ContractAnalysis) AnalysisSummary {
	s := AnalysisSummary{
		ID:           a.ID(),
		ContractType: a.ContractType().String(),
		Filename:     a.Filename(),
		Status:       a.Status().String(),
		RiskScore:    a.RiskScore(),
		RiskLevel:    a.RiskLevel().String(),
		Counterparty: a.Counterparty(),
		EndDate:      a.EndDate(),
		CreatedAt:    a.CreatedAt(),
	}
	if as := a.Assessment(); as != nil {
		s.CriticalCount = len(as.CriticalRisks)
	}
	return s
}

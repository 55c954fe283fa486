package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/event"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
	"github.com/Luyzz22/contract-analyzer-backend/pkg/events"
)

// ContractAnalysis is the aggregate root for one analyzed contract.
type ContractAnalysis struct {
	createdAt     time.Time
	updatedAt     time.Time
	completedAt   time.Time
	endDate       *time.Time
	contractType  valueobject.ContractType
	status        valueobject.AnalysisStatus
	filename      string
	counterparty  string
	errorMessage  string
	extracted     json.RawMessage
	assessment    *RiskAssessment
	contractValue decimal.NullDecimal
	pending       events.Buffer
	noticeDays    int
	version       int
	autoRenewal   bool
	userID        uuid.UUID
	tenantID      uuid.UUID
	id            uuid.UUID
}

// NewContractAnalysis creates a pending analysis for an uploaded contract.
func NewContractAnalysis(
	tenantID uuid.UUID,
	userID uuid.UUID,
	contractType valueobject.ContractType,
	filename string,
) (*ContractAnalysis, error) {
	if tenantID == uuid.Nil {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user ID is required")
	}
	if contractType.IsZero() {
		return nil, fmt.Errorf("contract type is required")
	}
	filename = strings.TrimSpace(filename)
	if filename == "" {
		filename = contractType.String() + ".txt"
	}

	now := time.Now().UTC()

	return &ContractAnalysis{
		id:           uuid.New(),
		tenantID:     tenantID,
		userID:       userID,
		contractType: contractType,
		filename:     filename,
		status:       valueobject.AnalysisStatusPending,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Complete attaches the extracted fields and their risk assessment. It emits
// AnalysisCompleted, plus CriticalRiskDetected for a CRITICAL overall level.
func (a *ContractAnalysis) Complete(data ContractData, extracted json.RawMessage, assessment RiskAssessment) error {
	if a.status.IsTerminal() {
		return fmt.Errorf("analysis %s is already %s", a.id, a.status.String())
	}
	if !data.Type.Equal(a.contractType) {
		return fmt.Errorf("contract data of type %s does not match analysis type %s",
			data.Type.String(), a.contractType.String())
	}
	if assessment.OverallRiskScore < 0 || assessment.OverallRiskScore > 100 {
		return fmt.Errorf("risk score must be between 0 and 100, got %d", assessment.OverallRiskScore)
	}

	terms := data.Terms()
	a.counterparty = terms.Counterparty
	a.endDate = terms.EndDate
	a.noticeDays = terms.NoticePeriodDays
	a.autoRenewal = terms.AutoRenewal
	a.contractValue = terms.Value

	a.extracted = extracted
	a.assessment = &assessment
	a.status = valueobject.AnalysisStatusCompleted
	a.completedAt = time.Now().UTC()
	a.updatedAt = a.completedAt
	a.version++

	a.pending.Record(event.NewAnalysisCompleted(
		a.id, a.tenantID, a.contractType.String(),
		assessment.OverallRiskScore, assessment.OverallRiskLevel.String(),
		len(assessment.CriticalRisks), len(assessment.HighRisks),
		assessment.MissingClauses, a.completedAt,
	))

	if assessment.IsCritical() {
		titles := make([]string, 0, len(assessment.CriticalRisks))
		for _, r := range assessment.CriticalRisks {
			titles = append(titles, r.IssueTitle)
		}
		a.pending.Record(event.NewCriticalRiskDetected(
			a.id, a.tenantID, a.contractType.String(),
			assessment.OverallRiskScore, titles, a.completedAt,
		))
	}

	return nil
}

// Fail marks the analysis as failed with a reason and emits AnalysisFailed.
func (a *ContractAnalysis) Fail(reason string) error {
	if a.status.IsTerminal() {
		return fmt.Errorf("analysis %s is already %s", a.id, a.status.String())
	}
	if strings.TrimSpace(reason) == "" {
		reason = "unknown error"
	}

	a.status = valueobject.AnalysisStatusFailed
	a.errorMessage = reason
	a.updatedAt = time.Now().UTC()
	a.version++

	a.pending.Record(event.NewAnalysisFailed(
		a.id, a.tenantID, a.contractType.String(), reason, a.updatedAt,
	))
	return nil
}

// AnalysisSnapshot is the persisted state of a ContractAnalysis.
type AnalysisSnapshot struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	UserID        uuid.UUID
	ContractType  valueobject.ContractType
	Filename      string
	Status        valueobject.AnalysisStatus
	ErrorMessage  string
	Extracted     json.RawMessage
	Assessment    *RiskAssessment
	Counterparty  string
	EndDate       *time.Time
	NoticeDays    int
	AutoRenewal   bool
	ContractValue decimal.NullDecimal
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	CompletedAt   time.Time
}

// Reconstruct rebuilds a ContractAnalysis from persisted data (no validation, no events).
func Reconstruct(s AnalysisSnapshot) *ContractAnalysis {
	return &ContractAnalysis{
		id:            s.ID,
		tenantID:      s.TenantID,
		userID:        s.UserID,
		contractType:  s.ContractType,
		filename:      s.Filename,
		status:        s.Status,
		errorMessage:  s.ErrorMessage,
		extracted:     s.Extracted,
		assessment:    s.Assessment,
		counterparty:  s.Counterparty,
		endDate:       s.EndDate,
		noticeDays:    s.NoticeDays,
		autoRenewal:   s.AutoRenewal,
		contractValue: s.ContractValue,
		version:       s.Version,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		completedAt:   s.CompletedAt,
	}
}

// --- Accessors ---

func (a *ContractAnalysis) ID() uuid.UUID                          { return a.id }
func (a *ContractAnalysis) TenantID() uuid.UUID                    { return a.tenantID }
func (a *ContractAnalysis) UserID() uuid.UUID                      { return a.userID }
func (a *ContractAnalysis) ContractType() valueobject.ContractType { return a.contractType }
func (a *ContractAnalysis) Filename() string                       { return a.filename }
func (a *ContractAnalysis) Status() valueobject.AnalysisStatus     { return a.status }
func (a *ContractAnalysis) ErrorMessage() string                   { return a.errorMessage }
func (a *ContractAnalysis) Extracted() json.RawMessage             { return a.extracted }
func (a *ContractAnalysis) Assessment() *RiskAssessment            { return a.assessment }
func (a *ContractAnalysis) Counterparty() string                   { return a.counterparty }
func (a *ContractAnalysis) EndDate() *time.Time                    { return a.endDate }
func (a *ContractAnalysis) NoticeDays() int                        { return a.noticeDays }
func (a *ContractAnalysis) AutoRenewal() bool                      { return a.autoRenewal }
func (a *ContractAnalysis) ContractValue() decimal.NullDecimal     { return a.contractValue }
func (a *ContractAnalysis) Version() int                           { return a.version }
func (a *ContractAnalysis) CreatedAt() time.Time                   { return a.createdAt }
func (a *ContractAnalysis) UpdatedAt() time.Time                   { return a.updatedAt }
func (a *ContractAnalysis) CompletedAt() time.Time                 { return a.completedAt }

// RiskScore returns the overall score, or 0 while no assessment is attached.
func (a *ContractAnalysis) RiskScore() int {
	if a.assessment == nil {
		return 0
	}
	return a.assessment.OverallRiskScore
}

// RiskLevel returns the overall level, or the zero level while pending or failed.
func (a *ContractAnalysis) RiskLevel() valueobject.RiskLevel {
	if a.assessment == nil {
		return valueobject.RiskLevel{}
	}
	return a.assessment.OverallRiskLevel
}

// DomainEvents returns all accumulated domain events and clears them.
func (a *ContractAnalysis) DomainEvents() []events.DomainEvent {
	return a.pending.Drain()
}

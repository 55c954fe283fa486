package model

import (
	"time"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

// DefaultConfidenceScore is reported by every rule-based assessment.
const DefaultConfidenceScore = 0.9

// RiskAssessment is the aggregated result of one engine run.
type RiskAssessment struct {
	OverallRiskScore     int                   `json:"overall_risk_score"`
	OverallRiskLevel     valueobject.RiskLevel `json:"overall_risk_level"`
	CriticalRisks        []ClauseRisk          `json:"critical_risks"`
	HighRisks            []ClauseRisk          `json:"high_risks"`
	MediumRisks          []ClauseRisk          `json:"medium_risks"`
	LowRisks             []ClauseRisk          `json:"low_risks"`
	MissingClauses       []string              `json:"missing_clauses"`
	ExecutiveSummary     string                `json:"executive_summary"`
	KeyFindings          []string              `json:"key_findings"`
	ImmediateActions     []string              `json:"immediate_actions"`
	LegalComplianceScore int                   `json:"legal_compliance_score"`
	ConfidenceScore      float64               `json:"confidence_score"`
	AssessedAt           time.Time             `json:"assessed_at"`
}

// AllRisks returns every finding, critical first.
func (a RiskAssessment) AllRisks() []ClauseRisk {
	all := make([]ClauseRisk, 0, a.FindingCount())
	all = append(all, a.CriticalRisks...)
	all = append(all, a.HighRisks...)
	all = append(all, a.MediumRisks...)
	all = append(all, a.LowRisks...)
	return all
}

// FindingCount returns the number of findings across all buckets.
func (a RiskAssessment) FindingCount() int {
	return len(a.CriticalRisks) + len(a.HighRisks) + len(a.MediumRisks) + len(a.LowRisks)
}

// IsCritical reports whether the overall level is CRITICAL.
func (a RiskAssessment) IsCritical() bool {
	return a.OverallRiskLevel.Equal(valueobject.RiskLevelCritical)
}

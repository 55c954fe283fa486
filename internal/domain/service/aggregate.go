package service

import (
	"time"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

// SummaryFunc renders the executive summary of one contract type from the
// aggregated score, level and number of critical findings.
type SummaryFunc func(score int, level valueobject.RiskLevel, criticalCount int) string

// Aggregate partitions findings by level, scores them with the bucket
// weights (capped at 100) and derives the overall level. The score depends
// only on the bucket counts, never on the per-finding RiskScore.
func Aggregate(findings []model.ClauseRisk, missing []string, summarize SummaryFunc) model.RiskAssessment {
	assessment := model.RiskAssessment{
		CriticalRisks:    make([]model.ClauseRisk, 0),
		HighRisks:        make([]model.ClauseRisk, 0),
		MediumRisks:      make([]model.ClauseRisk, 0),
		LowRisks:         make([]model.ClauseRisk, 0),
		MissingClauses:   make([]string, 0, len(missing)),
		KeyFindings:      make([]string, 0),
		ImmediateActions: make([]string, 0),
		ConfidenceScore:  model.DefaultConfidenceScore,
		AssessedAt:       time.Now().UTC(),
	}
	assessment.MissingClauses = append(assessment.MissingClauses, missing...)

	score := 0
	for _, f := range findings {
		score += f.RiskLevel.Weight()
		switch {
		case f.RiskLevel.Equal(valueobject.RiskLevelCritical):
			assessment.CriticalRisks = append(assessment.CriticalRisks, f)
		case f.RiskLevel.Equal(valueobject.RiskLevelHigh):
			assessment.HighRisks = append(assessment.HighRisks, f)
		case f.RiskLevel.Equal(valueobject.RiskLevelMedium):
			assessment.MediumRisks = append(assessment.MediumRisks, f)
		default:
			assessment.LowRisks = append(assessment.LowRisks, f)
		}
	}
	if score > 100 {
		score = 100
	}

	for _, f := range assessment.CriticalRisks {
		assessment.KeyFindings = append(assessment.KeyFindings, f.IssueTitle)
		assessment.ImmediateActions = append(assessment.ImmediateActions, f.Recommendation)
	}
	for _, f := range assessment.HighRisks {
		assessment.KeyFindings = append(assessment.KeyFindings, f.IssueTitle)
	}

	assessment.OverallRiskScore = score
	assessment.LegalComplianceScore = score
	assessment.OverallRiskLevel = valueobject.RiskLevelFromScore(score)
	if summarize != nil {
		assessment.ExecutiveSummary = summarize(score, assessment.OverallRiskLevel, len(assessment.CriticalRisks))
	}
	return assessment
}

package model

import (
	"github.com/google/uuid"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

// ClauseRisk is a single finding produced by one rule check. RiskScore is
// informational; aggregation only looks at RiskLevel.
type ClauseRisk struct {
	ID               uuid.UUID                  `json:"id"`
	Category         valueobject.ClauseCategory `json:"category"`
	ClauseText       string                     `json:"clause_text"`
	RiskLevel        valueobject.RiskLevel      `json:"risk_level"`
	RiskScore        int                        `json:"risk_score"`
	LegalValidity    valueobject.LegalValidity  `json:"legal_validity"`
	IssueTitle       string                     `json:"issue_title"`
	IssueDescription string                     `json:"issue_description"`
	LegalBasis       string                     `json:"legal_basis"`
	Recommendation   string                     `json:"recommendation"`
	SectionReference string                     `json:"section_reference,omitempty"`
}

// NewClauseRisk assigns a fresh ID to a finding and clamps its score to 0..100.
func NewClauseRisk(r ClauseRisk) ClauseRisk {
	r.ID = uuid.New()
	switch {
	case r.RiskScore < 0:
		r.RiskScore = 0
	case r.RiskScore > 100:
		r.RiskScore = 100
	}
	return r
}

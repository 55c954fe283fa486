package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Luyzz22/contract-analyzer-backend/pkg/events"
)

const AggregateTypeContractAnalysis = "ContractAnalysis"

const (
	// EventTypeAnalysisCompleted is emitted when a contract analysis has been scored.
	EventTypeAnalysisCompleted = "contract.analysis.completed"

	// EventTypeAnalysisFailed is emitted when extraction or scoring could not finish.
	EventTypeAnalysisFailed = "contract.analysis.failed"

	// EventTypeCriticalRiskDetected is emitted when the overall level is CRITICAL.
	EventTypeCriticalRiskDetected = "contract.critical_risk.detected"
)

// AnalysisCompleted is published once a contract analysis has a risk assessment.
type AnalysisCompleted struct {
	events.BaseEvent
	AnalysisID     uuid.UUID `json:"analysis_id"`
	ContractType   string    `json:"contract_type"`
	RiskScore      int       `json:"risk_score"`
	RiskLevel      string    `json:"risk_level"`
	CriticalCount  int       `json:"critical_count"`
	HighCount      int       `json:"high_count"`
	MissingClauses []string  `json:"missing_clauses"`
	CompletedAt    time.Time `json:"completed_at"`
}

// NewAnalysisCompleted creates an AnalysisCompleted domain event.
func NewAnalysisCompleted(
	analysisID, tenantID uuid.UUID,
	contractType string,
	riskScore int,
	riskLevel string,
	criticalCount, highCount int,
	missingClauses []string,
	completedAt time.Time,
) AnalysisCompleted {
	e := AnalysisCompleted{
		AnalysisID:     analysisID,
		ContractType:   contractType,
		RiskScore:      riskScore,
		RiskLevel:      riskLevel,
		CriticalCount:  criticalCount,
		HighCount:      highCount,
		MissingClauses: missingClauses,
		CompletedAt:    completedAt,
	}
	e.BaseEvent = events.NewBaseEvent(analysisMetadata(EventTypeAnalysisCompleted, analysisID, tenantID), mustPayload(e))
	return e
}

// AnalysisFailed is published when an analysis ends in the failed state.
type AnalysisFailed struct {
	events.BaseEvent
	AnalysisID   uuid.UUID `json:"analysis_id"`
	ContractType string    `json:"contract_type"`
	Reason       string    `json:"reason"`
	FailedAt     time.Time `json:"failed_at"`
}

// NewAnalysisFailed creates an AnalysisFailed domain event.
func NewAnalysisFailed(analysisID, tenantID uuid.UUID, contractType, reason string, failedAt time.Time) AnalysisFailed {
	e := AnalysisFailed{
		AnalysisID:   analysisID,
		ContractType: contractType,
		Reason:       reason,
		FailedAt:     failedAt,
	}
	e.BaseEvent = events.NewBaseEvent(analysisMetadata(EventTypeAnalysisFailed, analysisID, tenantID), mustPayload(e))
	return e
}

// CriticalRiskDetected is published for analyses with a CRITICAL overall level.
// The alert consumer turns it into a critical_risk alert.
type CriticalRiskDetected struct {
	events.BaseEvent
	AnalysisID   uuid.UUID `json:"analysis_id"`
	ContractType string    `json:"contract_type"`
	RiskScore    int       `json:"risk_score"`
	Findings     []string  `json:"findings"`
	DetectedAt   time.Time `json:"detected_at"`
}

// NewCriticalRiskDetected creates a CriticalRiskDetected domain event.
func NewCriticalRiskDetected(
	analysisID, tenantID uuid.UUID,
	contractType string,
	riskScore int,
	findings []string,
	detectedAt time.Time,
) CriticalRiskDetected {
	e := CriticalRiskDetected{
		AnalysisID:   analysisID,
		ContractType: contractType,
		RiskScore:    riskScore,
		Findings:     findings,
		DetectedAt:   detectedAt,
	}
	e.BaseEvent = events.NewBaseEvent(analysisMetadata(EventTypeCriticalRiskDetected, analysisID, tenantID), mustPayload(e))
	return e
}

// analysisMetadata identifies an event raised by a ContractAnalysis. The
// tenant travels in the metadata, not in the payload.
func analysisMetadata(eventType string, analysisID, tenantID uuid.UUID) events.Metadata {
	return events.Metadata{
		EventType:     eventType,
		AggregateID:   analysisID,
		AggregateType: AggregateTypeContractAnalysis,
		TenantID:      tenantID,
	}
}

// mustPayload serializes the event body. BaseEvent has no exported fields,
// so the embedded zero value contributes nothing to the payload.
func mustPayload(v any) []byte {
	payload, _ := json.Marshal(v)
	return payload
}

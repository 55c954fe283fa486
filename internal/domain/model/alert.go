package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

// ContractDeadline is the end date of a completed analysis as seen by the
// deadline scanner.
type ContractDeadline struct {
	EndDate          time.Time
	ContractType     valueobject.ContractType
	Counterparty     string
	NoticePeriodDays int
	AutoRenewal      bool
	AnalysisID       uuid.UUID
	TenantID         uuid.UUID
}

// Alert is a stored reminder about a contract. Alerts are unique per
// analysis, type and deadline.
type Alert struct {
	deadline     time.Time
	createdAt    time.Time
	alertType    valueobject.AlertType
	message      string
	daysUntil    int
	acknowledged bool
	analysisID   uuid.UUID
	tenantID     uuid.UUID
	id           uuid.UUID
}

// NewAlert creates an unacknowledged alert.
func NewAlert(
	tenantID, analysisID uuid.UUID,
	alertType valueobject.AlertType,
	deadline time.Time,
	daysUntil int,
	message string,
) (*Alert, error) {
	if tenantID == uuid.Nil {
		return nil, fmt.Errorf("tenant ID is required")
	}
	if analysisID == uuid.Nil {
		return nil, fmt.Errorf("analysis ID is required")
	}
	if alertType.String() == "" {
		return nil, fmt.Errorf("alert type is required")
	}
	if message == "" {
		return nil, fmt.Errorf("alert message is required")
	}

	return &Alert{
		id:         uuid.New(),
		tenantID:   tenantID,
		analysisID: analysisID,
		alertType:  alertType,
		deadline:   deadline.UTC(),
		daysUntil:  daysUntil,
		message:    message,
		createdAt:  time.Now().UTC(),
	}, nil
}

// ReconstructAlert rebuilds an Alert from persisted data.
func ReconstructAlert(
	id, tenantID, analysisID uuid.UUID,
	alertType valueobject.AlertType,
	deadline time.Time,
	daysUntil int,
	message string,
	acknowledged bool,
	createdAt time.Time,
) *Alert {
	return &Alert{
		id:           id,
		tenantID:     tenantID,
		analysisID:   analysisID,
		alertType:    alertType,
		deadline:     deadline,
		daysUntil:    daysUntil,
		message:      message,
		acknowledged: acknowledged,
		createdAt:    createdAt,
	}
}

func (a *Alert) ID() uuid.UUID                    { return a.id }
func (a *Alert) TenantID() uuid.UUID              { return a.tenantID }
func (a *Alert) AnalysisID() uuid.UUID            { return a.analysisID }
func (a *Alert) AlertType() valueobject.AlertType { return a.alertType }
func (a *Alert) Deadline() time.Time              { return a.deadline }
func (a *Alert) DaysUntil() int                   { return a.daysUntil }
func (a *Alert) Message() string                  { return a.message }
func (a *Alert) Acknowledged() bool               { return a.acknowledged }
func (a *Alert) CreatedAt() time.Time             { return a.createdAt }

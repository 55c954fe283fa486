package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
)

// DashboardResponse summarizes a tenant's portfolio and plan usage.
type DashboardResponse struct {
	ByLevel           map[string]int `json:"by_level"`
	ByType            map[string]int `json:"by_type"`
	Plan              string         `json:"plan"`
	Month             string         `json:"month"`
	AverageScore      float64        `json:"average_score"`
	TotalAnalyses     int            `json:"total_analyses"`
	FailedAnalyses    int            `json:"failed_analyses"`
	AnalysesThisMonth int            `json:"analyses_this_month"`
	UsedThisMonth     int            `json:"used_this_month"`
	MonthlyLimit      int            `json:"monthly_limit"`
	Remaining         int            `json:"remaining"`
	ExpiringSoon      int            `json:"expiring_soon"`
}

// ListAlertsRequest is the input DTO for listing alerts.
type ListAlertsRequest struct {
	TenantID uuid.UUID `json:"-"`
	Limit    int       `json:"limit" validate:"min=0,max=200"`
	Offset   int       `json:"offset" validate:"min=0"`
}

// Validate checks the request against its field rules.
func (r ListAlertsRequest) Validate() error {
	return validateStruct(r)
}

// AlertResponse is the output DTO for an alert.
type AlertResponse struct {
	Deadline     time.Time `json:"deadline"`
	CreatedAt    time.Time `json:"created_at"`
	ID           uuid.UUID `json:"id"`
	AnalysisID   uuid.UUID `json:"analysis_id"`
	AlertType    string    `json:"alert_type"`
	Message      string    `json:"message"`
	DaysUntil    int       `json:"days_until"`
	Acknowledged bool      `json:"acknowledged"`
}

// AlertFromModel maps an alert to its response DTO.
func AlertFromModel(a *model.Alert) AlertResponse {
	return AlertResponse{
		ID:           a.ID(),
		AnalysisID:   a.AnalysisID(),
		AlertType:    a.AlertType().String(),
		Deadline:     a.Deadline(),
		DaysUntil:    a.DaysUntil(),
		Message:      a.Message(),
		Acknowledged: a.Acknowledged(),
		CreatedAt:    a.CreatedAt(),
	}
}

// ScanDeadlinesResponse reports one deadline scan run.
type ScanDeadlinesResponse struct {
	Contracts int `json:"contracts"`
	Planned   int `json:"planned"`
	Created   int `json:"created"`
}

// RecordRiskAlertRequest carries a critical risk notification into the alert store.
type RecordRiskAlertRequest struct {
	DetectedAt   time.Time
	Findings     []string
	ContractType string
	TenantID     uuid.UUID
	AnalysisID   uuid.UUID
	RiskScore    int
}

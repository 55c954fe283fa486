package port

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
	"github.com/Luyzz22/contract-analyzer-backend/pkg/events"
)

// AnalysisFilter narrows a listing of analyses.
type AnalysisFilter struct {
	ContractType valueobject.ContractType
	RiskLevel    valueobject.RiskLevel
	Limit        int
	Offset       int
}

// AnalysisStats are per-tenant aggregates for the dashboard.
type AnalysisStats struct {
	ByLevel      map[string]int
	ByType       map[string]int
	AverageScore float64
	Total        int
	Failed       int
	ThisMonth    int
	ExpiringSoon int
}

// AnalysisRepository defines the persistence port for contract analyses.
type AnalysisRepository interface {
	// Save persists a new or updated analysis including its findings.
	Save(ctx context.Context, analysis *model.ContractAnalysis) error

	// FindByID retrieves an analysis. It returns nil, nil when none exists.
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.ContractAnalysis, error)

	// List returns a page of analyses, newest first, and the total count.
	List(ctx context.Context, tenantID uuid.UUID, filter AnalysisFilter) ([]*model.ContractAnalysis, int, error)

	// Stats aggregates the tenant's analyses. Contracts ending before
	// expiringBefore count as expiring soon; monthStart bounds ThisMonth.
	Stats(ctx context.Context, tenantID uuid.UUID, monthStart, expiringBefore time.Time) (AnalysisStats, error)

	// UpcomingDeadlines lists completed analyses of all tenants whose end
	// date lies in [from, to].
	UpcomingDeadlines(ctx context.Context, from, to time.Time) ([]model.ContractDeadline, error)
}

// UsageRepository counts analyses per tenant and calendar month ("2006-01").
type UsageRepository interface {
	CountForMonth(ctx context.Context, tenantID uuid.UUID, month string) (int, error)
	Increment(ctx context.Context, tenantID uuid.UUID, month string) error
}

// TenantPlanRepository resolves the subscription plan of a tenant.
type TenantPlanRepository interface {
	// PlanFor returns the tenant's plan, or the free plan for unknown tenants.
	PlanFor(ctx context.Context, tenantID uuid.UUID) (valueobject.PlanTier, error)
}

// AlertRepository defines the persistence port for deadline and risk alerts.
type AlertRepository interface {
	// SaveIfAbsent stores the alert unless one with the same analysis, type
	// and deadline exists. It reports whether a row was inserted.
	SaveIfAbsent(ctx context.Context, alert *model.Alert) (bool, error)

	// ListByTenant returns alerts ordered by deadline.
	ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*model.Alert, error)
}

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, events ...events.DomainEvent) error
}

// ErrExtractionFailed marks contract texts that could not be turned into
// field data, either because the extractor failed or its output was unusable.
var ErrExtractionFailed = errors.New("contract extraction failed")

// Extractor turns contract text into the JSON field document of a contract type.
type Extractor interface {
	Extract(ctx context.Context, contractType valueobject.ContractType, text string) ([]byte, error)
}

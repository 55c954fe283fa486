package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/usecase"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/port"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/service"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
	"github.com/Luyzz22/contract-analyzer-backend/pkg/events"
)

// --- Mock implementations ---

type mockAnalysisRepository struct {
	saved                 []*model.ContractAnalysis
	saveFunc              func(ctx context.Context, a *model.ContractAnalysis) error
	findByIDFunc          func(ctx context.Context, tenantID, id uuid.UUID) (*model.ContractAnalysis, error)
	listFunc              func(ctx context.Context, tenantID uuid.UUID, f port.AnalysisFilter) ([]*model.ContractAnalysis, int, error)
	statsFunc             func(ctx context.Context, tenantID uuid.UUID, monthStart, expiringBefore time.Time) (port.AnalysisStats, error)
	upcomingDeadlinesFunc func(ctx context.Context, from, to time.Time) ([]model.ContractDeadline, error)
}

func (m *mockAnalysisRepository) Save(ctx context.Context, a *model.ContractAnalysis) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, a)
	}
	m.saved = append(m.saved, a)
	return nil
}

func (m *mockAnalysisRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.ContractAnalysis, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, tenantID, id)
	}
	return nil, nil
}

func (m *mockAnalysisRepository) List(ctx context.Context, tenantID uuid.UUID, f port.AnalysisFilter) ([]*model.ContractAnalysis, int, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, tenantID, f)
	}
	return nil, 0, nil
}

func (m *mockAnalysisRepository) Stats(ctx context.Context, tenantID uuid.UUID, monthStart, expiringBefore time.Time) (port.AnalysisStats, error) {
	if m.statsFunc != nil {
		return m.statsFunc(ctx, tenantID, monthStart, expiringBefore)
	}
	return port.AnalysisStats{}, nil
}

func (m *mockAnalysisRepository) UpcomingDeadlines(ctx context.Context, from, to time.Time) ([]model.ContractDeadline, error) {
	if m.upcomingDeadlinesFunc != nil {
		return m.upcomingDeadlinesFunc(ctx, from, to)
	}
	return nil, nil
}

type mockUsageRepository struct {
	counts        map[string]int
	incrementFunc func(ctx context.Context, tenantID uuid.UUID, month string) error
}

func newMockUsage() *mockUsageRepository {
	return &mockUsageRepository{counts: make(map[string]int)}
}

func (m *mockUsageRepository) CountForMonth(_ context.Context, tenantID uuid.UUID, month string) (int, error) {
	return m.counts[tenantID.String()+"/"+month], nil
}

func (m *mockUsageRepository) Increment(ctx context.Context, tenantID uuid.UUID, month string) error {
	if m.incrementFunc != nil {
		return m.incrementFunc(ctx, tenantID, month)
	}
	m.counts[tenantID.String()+"/"+month]++
	return nil
}

type mockPlanRepository struct {
	plan valueobject.PlanTier
}

func (m *mockPlanRepository) PlanFor(_ context.Context, _ uuid.UUID) (valueobject.PlanTier, error) {
	if m.plan.String() == "" {
		return valueobject.PlanTierEnterprise, nil
	}
	return m.plan, nil
}

type mockAlertRepository struct {
	stored   map[string]*model.Alert
	saveFunc func(ctx context.Context, a *model.Alert) (bool, error)
	listFunc func(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*model.Alert, error)
}

func newMockAlerts() *mockAlertRepository {
	return &mockAlertRepository{stored: make(map[string]*model.Alert)}
}

func (m *mockAlertRepository) SaveIfAbsent(ctx context.Context, a *model.Alert) (bool, error) {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, a)
	}
	key := a.AnalysisID().String() + "/" + a.AlertType().String() + "/" + a.Deadline().Format(time.DateOnly)
	if _, ok := m.stored[key]; ok {
		return false, nil
	}
	m.stored[key] = a
	return true, nil
}

func (m *mockAlertRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*model.Alert, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, tenantID, limit, offset)
	}
	return nil, nil
}

type mockEventPublisher struct {
	published   []events.DomainEvent
	publishFunc func(ctx context.Context, evts ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.published = append(m.published, evts...)
	return nil
}

type mockExtractor struct {
	extractFunc func(ctx context.Context, ct valueobject.ContractType, text string) ([]byte, error)
}

func (m *mockExtractor) Extract(ctx context.Context, ct valueobject.ContractType, text string) ([]byte, error) {
	return m.extractFunc(ctx, ct, text)
}

type mockMetrics struct {
	observed int
	failures map[string]int
	alerts   map[string]int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{failures: make(map[string]int), alerts: make(map[string]int)}
}

func (m *mockMetrics) ObserveAnalysis(_ context.Context, _, _ string, _ int, _ time.Duration) {
	m.observed++
}

func (m *mockMetrics) CountFailure(_ context.Context, _, stage string) {
	m.failures[stage]++
}

func (m *mockMetrics) CountAlerts(_ context.Context, alertType string, n int) {
	m.alerts[alertType] += n
}

// --- Fixtures ---

type fixture struct {
	analyses  *mockAnalysisRepository
	usage     *mockUsageRepository
	plans     *mockPlanRepository
	publisher *mockEventPublisher
	metrics   *mockMetrics
}

func newFixture() *fixture {
	return &fixture{
		analyses:  &mockAnalysisRepository{},
		usage:     newMockUsage(),
		plans:     &mockPlanRepository{},
		publisher: &mockEventPublisher{},
		metrics:   newMockMetrics(),
	}
}

func (f *fixture) deps() usecase.Dependencies {
	return usecase.Dependencies{
		Analyses:  f.analyses,
		Usage:     f.usage,
		Plans:     f.plans,
		Publisher: f.publisher,
		Metrics:   f.metrics,
		Engine:    service.NewRiskEngine(),
		Logger:    discardLogger(),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const (
	criticalEmploymentJSON = `{
		"job_title": "Softwareentwickler",
		"probation": {"duration_months": 8},
		"vacation": {"days_per_year": 15},
		"non_compete": {"post_employment": true, "missing_compensation": true},
		"working_conditions": {"overtime_included_in_salary": "ja"}
	}`
	lowEmploymentJSON = `{"job_title": "Buchhalter", "probation": {"duration_months": 8}}`
	contractText      = "Arbeitsvertrag zwischen der Muster GmbH und Frau Beispiel, Probezeit acht Monate."
)

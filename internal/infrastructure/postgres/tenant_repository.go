package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

// UsageRepository implements port.UsageRepository using PostgreSQL.
type UsageRepository struct {
	pool *pgxpool.Pool
}

// NewUsageRepository creates a new PostgreSQL-backed usage repository.
func NewUsageRepository(pool *pgxpool.Pool) *UsageRepository {
	return &UsageRepository{pool: pool}
}

// CountForMonth returns the number of analyses the tenant ran in month.
func (r *UsageRepository) CountForMonth(ctx context.Context, tenantID uuid.UUID, month string) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT analyses FROM usage_counters WHERE tenant_id = $1 AND month = $2`,
		tenantID, month,
	).Scan(&n)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read usage: %w", err)
	}
	return n, nil
}

// Increment adds one analysis to the tenant's counter for month.
func (r *UsageRepository) Increment(ctx context.Context, tenantID uuid.UUID, month string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO usage_counters (tenant_id, month, analyses) VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, month) DO UPDATE SET analyses = usage_counters.analyses + 1
	`, tenantID, month)
	if err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}
	return nil
}

// TenantPlanRepository implements port.TenantPlanRepository using PostgreSQL.
type TenantPlanRepository struct {
	pool *pgxpool.Pool
}

// NewTenantPlanRepository creates a new PostgreSQL-backed plan repository.
func NewTenantPlanRepository(pool *pgxpool.Pool) *TenantPlanRepository {
	return &TenantPlanRepository{pool: pool}
}

// PlanFor returns the tenant's plan; tenants without a row are on the free plan.
func (r *TenantPlanRepository) PlanFor(ctx context.Context, tenantID uuid.UUID) (valueobject.PlanTier, error) {
	var plan string
	err := r.pool.QueryRow(ctx, `SELECT plan FROM tenant_plans WHERE tenant_id = $1`, tenantID).Scan(&plan)
	if errors.Is(err, pgx.ErrNoRows) {
		return valueobject.PlanTierFree, nil
	}
	if err != nil {
		return valueobject.PlanTier{}, fmt.Errorf("failed to read tenant plan: %w", err)
	}
	tier, err := valueobject.PlanTierFromString(plan)
	if err != nil {
		return valueobject.PlanTier{}, fmt.Errorf("failed to parse tenant plan: %w", err)
	}
	return tier, nil
}

// SetPlan assigns a plan to a tenant.
func (r *TenantPlanRepository) SetPlan(ctx context.Context, tenantID uuid.UUID, plan valueobject.PlanTier) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tenant_plans (tenant_id, plan, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (tenant_id) DO UPDATE SET plan = EXCLUDED.plan, updated_at = EXCLUDED.updated_at
	`, tenantID, plan.String())
	if err != nil {
		return fmt.Errorf("failed to set tenant plan: %w", err)
	}
	return nil
}

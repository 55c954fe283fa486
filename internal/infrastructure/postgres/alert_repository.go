package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

// AlertRepository implements port.AlertRepository using PostgreSQL.
type AlertRepository struct {
	pool *pgxpool.Pool
}

// NewAlertRepository creates a new PostgreSQL-backed alert repository.
func NewAlertRepository(pool *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{pool: pool}
}

// SaveIfAbsent inserts the alert unless the (analysis, type, deadline) key exists.
func (r *AlertRepository) SaveIfAbsent(ctx context.Context, alert *model.Alert) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO contract_alerts (
			id, tenant_id, analysis_id, alert_type, deadline, days_until, message, acknowledged, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (analysis_id, alert_type, deadline) DO NOTHING
	`,
		alert.ID(),
		alert.TenantID(),
		alert.AnalysisID(),
		alert.AlertType().String(),
		alert.Deadline(),
		alert.DaysUntil(),
		alert.Message(),
		alert.Acknowledged(),
		alert.CreatedAt(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to save alert: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListByTenant returns the tenant's alerts ordered by deadline.
func (r *AlertRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*model.Alert, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, tenant_id, analysis_id, alert_type, deadline, days_until, message, acknowledged, created_at
		FROM contract_alerts
		WHERE tenant_id = $1
		ORDER BY deadline, created_at
		LIMIT $2 OFFSET $3
	`, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*model.Alert
	for rows.Next() {
		var (
			id, tenant, analysisID uuid.UUID
			alertTypeStr, message  string
			deadline, createdAt    time.Time
			daysUntil              int
			acknowledged           bool
		)
		if err := rows.Scan(&id, &tenant, &analysisID, &alertTypeStr, &deadline, &daysUntil,
			&message, &acknowledged, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		alertType, err := valueobject.AlertTypeFromString(alertTypeStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse alert type: %w", err)
		}
		alerts = append(alerts, model.ReconstructAlert(id, tenant, analysisID, alertType,
			deadline, daysUntil, message, acknowledged, createdAt))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alerts: %w", err)
	}

	return alerts, nil
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/port"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
	pkgpostgres "github.com/Luyzz22/contract-analyzer-backend/pkg/postgres"
)

const analysisColumns = `
	id, tenant_id, user_id, contract_type, filename, status, error_message,
	extracted_data, assessment, counterparty, end_date, notice_period_days,
	auto_renewal, contract_value, version, created_at, updated_at, completed_at`

// AnalysisRepository implements port.AnalysisRepository using PostgreSQL.
type AnalysisRepository struct {
	pool *pgxpool.Pool
}

// NewAnalysisRepository creates a new PostgreSQL-backed analysis repository.
func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

// Save upserts the analysis and replaces its finding rows in one transaction.
func (r *AnalysisRepository) Save(ctx context.Context, analysis *model.ContractAnalysis) error {
	var (
		assessmentJSON []byte
		riskScore      *int
		riskLevel      *string
		err            error
	)
	if a := analysis.Assessment(); a != nil {
		if assessmentJSON, err = json.Marshal(a); err != nil {
			return fmt.Errorf("failed to encode assessment: %w", err)
		}
		score, level := a.OverallRiskScore, a.OverallRiskLevel.String()
		riskScore, riskLevel = &score, &level
	}
	var completedAt *time.Time
	if t := analysis.CompletedAt(); !t.IsZero() {
		completedAt = &t
	}

	return pkgpostgres.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO contract_analyses (
				id, tenant_id, user_id, contract_type, filename, status, error_message,
				extracted_data, assessment, risk_score, risk_level, counterparty, end_date,
				notice_period_days, auto_renewal, contract_value, version,
				created_at, updated_at, completed_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
			ON CONFLICT (id) DO UPDATE SET
				status = EXCLUDED.status,
				error_message = EXCLUDED.error_message,
				extracted_data = EXCLUDED.extracted_data,
				assessment = EXCLUDED.assessment,
				risk_score = EXCLUDED.risk_score,
				risk_level = EXCLUDED.risk_level,
				counterparty = EXCLUDED.counterparty,
				end_date = EXCLUDED.end_date,
				notice_period_days = EXCLUDED.notice_period_days,
				auto_renewal = EXCLUDED.auto_renewal,
				contract_value = EXCLUDED.contract_value,
				version = EXCLUDED.version,
				updated_at = EXCLUDED.updated_at,
				completed_at = EXCLUDED.completed_at
		`,
			analysis.ID(),
			analysis.TenantID(),
			analysis.UserID(),
			analysis.ContractType().String(),
			analysis.Filename(),
			analysis.Status().String(),
			analysis.ErrorMessage(),
			nullJSON(analysis.Extracted()),
			nullJSON(assessmentJSON),
			riskScore,
			riskLevel,
			analysis.Counterparty(),
			analysis.EndDate(),
			analysis.NoticeDays(),
			analysis.AutoRenewal(),
			analysis.ContractValue(),
			analysis.Version(),
			analysis.CreatedAt(),
			analysis.UpdatedAt(),
			completedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save analysis: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM clause_findings WHERE analysis_id = $1`, analysis.ID()); err != nil {
			return fmt.Errorf("failed to delete old findings: %w", err)
		}
		if analysis.Assessment() == nil {
			return nil
		}

		batch := &pgx.Batch{}
		for i, f := range analysis.Assessment().AllRisks() {
			batch.Queue(`
				INSERT INTO clause_findings (
					id, analysis_id, tenant_id, position, category, risk_level, risk_score,
					legal_validity, issue_title, issue_description, legal_basis,
					recommendation, clause_text, section_reference
				) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
				f.ID, analysis.ID(), analysis.TenantID(), i,
				f.Category.String(), f.RiskLevel.String(), f.RiskScore, f.LegalValidity.String(),
				f.IssueTitle, f.IssueDescription, f.LegalBasis, f.Recommendation,
				f.ClauseText, f.SectionReference,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to save findings: %w", err)
		}
		return nil
	})
}

// FindByID retrieves an analysis by its unique identifier.
func (r *AnalysisRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*model.ContractAnalysis, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+analysisColumns+` FROM contract_analyses WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	)
	analysis, err := scanAnalysis(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return analysis, nil
}

// List returns a page of the tenant's analyses, newest first.
func (r *AnalysisRepository) List(ctx context.Context, tenantID uuid.UUID, filter port.AnalysisFilter) ([]*model.ContractAnalysis, int, error) {
	where := []string{"tenant_id = $1"}
	args := []any{tenantID}
	if !filter.ContractType.IsZero() {
		args = append(args, filter.ContractType.String())
		where = append(where, fmt.Sprintf("contract_type = $%d", len(args)))
	}
	if !filter.RiskLevel.IsZero() {
		args = append(args, filter.RiskLevel.String())
		where = append(where, fmt.Sprintf("risk_level = $%d", len(args)))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contract_analyses WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count analyses: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(`SELECT %s FROM contract_analyses WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		analysisColumns, cond, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var analyses []*model.ContractAnalysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, 0, err
		}
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate analyses: %w", err)
	}

	return analyses, total, nil
}

// Stats aggregates the tenant's analyses for the dashboard.
func (r *AnalysisRepository) Stats(ctx context.Context, tenantID uuid.UUID, monthStart, expiringBefore time.Time) (port.AnalysisStats, error) {
	stats := port.AnalysisStats{
		ByLevel: make(map[string]int),
		ByType:  make(map[string]int),
	}

	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'failed'),
			COUNT(*) FILTER (WHERE created_at >= $2),
			COUNT(*) FILTER (WHERE status = 'completed' AND end_date >= CURRENT_DATE AND end_date < $3),
			COALESCE(AVG(risk_score) FILTER (WHERE status = 'completed'), 0)::float8
		FROM contract_analyses
		WHERE tenant_id = $1
	`, tenantID, monthStart, expiringBefore).Scan(
		&stats.Total, &stats.Failed, &stats.ThisMonth, &stats.ExpiringSoon, &stats.AverageScore,
	)
	if err != nil {
		return port.AnalysisStats{}, fmt.Errorf("failed to aggregate analyses: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT contract_type, COALESCE(risk_level, ''), COUNT(*)
		FROM contract_analyses
		WHERE tenant_id = $1 AND status = 'completed'
		GROUP BY contract_type, risk_level
	`, tenantID)
	if err != nil {
		return port.AnalysisStats{}, fmt.Errorf("failed to group analyses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var contractType, level string
		var n int
		if err := rows.Scan(&contractType, &level, &n); err != nil {
			return port.AnalysisStats{}, fmt.Errorf("failed to scan analysis group: %w", err)
		}
		stats.ByType[contractType] += n
		if level != "" {
			stats.ByLevel[level] += n
		}
	}
	if err := rows.Err(); err != nil {
		return port.AnalysisStats{}, fmt.Errorf("failed to iterate analysis groups: %w", err)
	}

	return stats, nil
}

// UpcomingDeadlines lists completed analyses of every tenant ending in [from, to].
func (r *AnalysisRepository) UpcomingDeadlines(ctx context.Context, from, to time.Time) ([]model.ContractDeadline, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, tenant_id, contract_type, counterparty, end_date, notice_period_days, auto_renewal
		FROM contract_analyses
		WHERE status = 'completed' AND end_date BETWEEN $1 AND $2
		ORDER BY end_date
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query deadlines: %w", err)
	}
	defer rows.Close()

	var deadlines []model.ContractDeadline
	for rows.Next() {
		var (
			d               model.ContractDeadline
			contractTypeStr string
		)
		if err := rows.Scan(&d.AnalysisID, &d.TenantID, &contractTypeStr, &d.Counterparty,
			&d.EndDate, &d.NoticePeriodDays, &d.AutoRenewal); err != nil {
			return nil, fmt.Errorf("failed to scan deadline: %w", err)
		}
		if d.ContractType, err = valueobject.ContractTypeFromString(contractTypeStr); err != nil {
			return nil, fmt.Errorf("failed to parse contract type: %w", err)
		}
		deadlines = append(deadlines, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate deadlines: %w", err)
	}

	return deadlines, nil
}

func scanAnalysis(row pgx.Row) (*model.ContractAnalysis, error) {
	var (
		s               model.AnalysisSnapshot
		contractTypeStr string
		statusStr       string
		extracted       []byte
		assessmentJSON  []byte
		contractValue   decimal.NullDecimal
		completedAt     *time.Time
	)

	err := row.Scan(
		&s.ID, &s.TenantID, &s.UserID, &contractTypeStr, &s.Filename, &statusStr, &s.ErrorMessage,
		&extracted, &assessmentJSON, &s.Counterparty, &s.EndDate, &s.NoticeDays,
		&s.AutoRenewal, &contractValue, &s.Version, &s.CreatedAt, &s.UpdatedAt, &completedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan analysis: %w", err)
	}

	if s.ContractType, err = valueobject.ContractTypeFromString(contractTypeStr); err != nil {
		return nil, fmt.Errorf("failed to parse contract type: %w", err)
	}
	if s.Status, err = valueobject.AnalysisStatusFromString(statusStr); err != nil {
		return nil, fmt.Errorf("failed to parse status: %w", err)
	}
	if len(assessmentJSON) > 0 {
		var a model.RiskAssessment
		if err := json.Unmarshal(assessmentJSON, &a); err != nil {
			return nil, fmt.Errorf("failed to decode assessment: %w", err)
		}
		s.Assessment = &a
	}
	if len(extracted) > 0 {
		s.Extracted = json.RawMessage(extracted)
	}
	s.ContractValue = contractValue
	if completedAt != nil {
		s.CompletedAt = *completedAt
	}

	return model.Reconstruct(s), nil
}

func nullJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}

package usecase_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/dto"
	"github.com/Luyzz22/contract-analyzer-backend/internal/application/usecase"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/port"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/service"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

func completedAnalysis(t *testing.T, tenantID uuid.UUID, raw string) *model.ContractAnalysis {
	t.Helper()
	analysis, err := model.NewContractAnalysis(tenantID, uuid.New(), valueobject.ContractTypeEmployment, "vertrag.txt")
	require.NoError(t, err)
	data, err := model.DecodeContractData(valueobject.ContractTypeEmployment, []byte(raw))
	require.NoError(t, err)
	assessment, err := service.NewRiskEngine().Assess(data)
	require.NoError(t, err)
	require.NoError(t, analysis.Complete(data, json.RawMessage(raw), assessment))
	analysis.DomainEvents()
	return analysis
}

func repoWith(analyses ...*model.ContractAnalysis) *mockAnalysisRepository {
	return &mockAnalysisRepository{
		findByIDFunc: func(_ context.Context, tenantID, id uuid.UUID) (*model.ContractAnalysis, error) {
			for _, a := range analyses {
				if a.ID() == id && a.TenantID() == tenantID {
					return a, nil
				}
			}
			return nil, nil
		},
	}
}

func TestGetAnalysis_Execute(t *testing.T) {
	tenantID := uuid.New()
	stored := completedAnalysis(t, tenantID, criticalEmploymentJSON)
	uc := usecase.NewGetAnalysis(repoWith(stored))

	t.Run("found", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.GetAnalysisRequest{TenantID: tenantID, AnalysisID: stored.ID()})
		require.NoError(t, err)
		assert.Equal(t, stored.ID(), resp.ID)
		assert.Equal(t, 100, resp.RiskScore)
	})

	t.Run("other tenant", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.GetAnalysisRequest{TenantID: uuid.New(), AnalysisID: stored.ID()})
		require.ErrorIs(t, err, model.ErrAnalysisNotFound)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := &mockAnalysisRepository{findByIDFunc: func(context.Context, uuid.UUID, uuid.UUID) (*model.ContractAnalysis, error) {
			return nil, errors.New("database unavailable")
		}}
		_, err := usecase.NewGetAnalysis(repo).Execute(context.Background(), dto.GetAnalysisRequest{TenantID: tenantID, AnalysisID: stored.ID()})
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrAnalysisNotFound)
	})
}

func TestListAnalyses_Execute(t *testing.T) {
	tenantID := uuid.New()
	items := []*model.ContractAnalysis{
		completedAnalysis(t, tenantID, criticalEmploymentJSON),
		completedAnalysis(t, tenantID, lowEmploymentJSON),
	}

	var got port.AnalysisFilter
	repo := &mockAnalysisRepository{listFunc: func(_ context.Context, _ uuid.UUID, f port.AnalysisFilter) ([]*model.ContractAnalysis, int, error) {
		got = f
		return items, 7, nil
	}}
	uc := usecase.NewListAnalyses(repo, discardLogger())

	resp, err := uc.Execute(context.Background(), dto.ListAnalysesRequest{TenantID: tenantID, RiskLevel: "critical"})
	require.NoError(t, err)

	assert.Equal(t, 20, got.Limit)
	assert.True(t, valueobject.RiskLevelCritical.Equal(got.RiskLevel))
	assert.True(t, got.ContractType.IsZero())
	assert.Equal(t, 7, resp.Total)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, 4, resp.Items[0].CriticalCount)
	assert.Equal(t, "low", resp.Items[1].RiskLevel)

	_, err = uc.Execute(context.Background(), dto.ListAnalysesRequest{TenantID: tenantID, Limit: 500})
	require.ErrorIs(t, err, dto.ErrValidation)
}

func TestExportAnalysis_Execute(t *testing.T) {
	tenantID := uuid.New()
	stored := completedAnalysis(t, tenantID, criticalEmploymentJSON)
	uc := usecase.NewExportAnalysis(repoWith(stored))

	t.Run("csv has one row per finding", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.ExportAnalysisRequest{TenantID: tenantID, AnalysisID: stored.ID(), Format: "csv"})
		require.NoError(t, err)

		assert.Equal(t, "text/csv; charset=utf-8", resp.ContentType)
		assert.True(t, strings.HasSuffix(resp.Filename, "_analysis.csv"))
		rows, err := csv.NewReader(strings.NewReader(string(resp.Body))).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 5)
		assert.Equal(t, "analysis_id", rows[0][0])
		assert.Equal(t, stored.ID().String(), rows[1][0])
		assert.Equal(t, "critical", rows[1][4])
		assert.Equal(t, "Probezeit überschreitet 6 Monate", rows[1][6])
	})

	t.Run("json", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), dto.ExportAnalysisRequest{TenantID: tenantID, AnalysisID: stored.ID(), Format: "json"})
		require.NoError(t, err)

		var doc dto.AnalysisResponse
		require.NoError(t, json.Unmarshal(resp.Body, &doc))
		assert.Equal(t, stored.ID(), doc.ID)
		assert.Equal(t, 100, doc.RiskScore)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), dto.ExportAnalysisRequest{TenantID: tenantID, AnalysisID: stored.ID(), Format: "pdf"})
		require.ErrorIs(t, err, dto.ErrValidation)
	})

	t.Run("failed analysis", func(t *testing.T) {
		failed, err := model.NewContractAnalysis(tenantID, uuid.New(), valueobject.ContractTypeNDA, "")
		require.NoError(t, err)
		require.NoError(t, failed.Fail("extraction failed"))

		_, err = usecase.NewExportAnalysis(repoWith(failed)).Execute(context.Background(),
			dto.ExportAnalysisRequest{TenantID: tenantID, AnalysisID: failed.ID(), Format: "csv"})
		require.ErrorIs(t, err, model.ErrAnalysisNotCompleted)
	})
}

func TestDashboard_Execute(t *testing.T) {
	tenantID := uuid.New()
	var gotMonthStart, gotExpiring time.Time
	repo := &mockAnalysisRepository{statsFunc: func(_ context.Context, _ uuid.UUID, monthStart, expiringBefore time.Time) (port.AnalysisStats, error) {
		gotMonthStart, gotExpiring = monthStart, expiringBefore
		return port.AnalysisStats{
			ByLevel:      map[string]int{"critical": 2, "low": 1},
			ByType:       map[string]int{"employment": 3},
			AverageScore: 58.3,
			Total:        4,
			Failed:       1,
			ThisMonth:    2,
			ExpiringSoon: 1,
		}, nil
	}}
	usage := newMockUsage()
	usage.counts[tenantID.String()+"/"+time.Now().UTC().Format("2006-01")] = 2
	uc := usecase.NewDashboard(repo, usage, &mockPlanRepository{plan: valueobject.PlanTierFree})

	resp, err := uc.Execute(context.Background(), tenantID)
	require.NoError(t, err)

	assert.Equal(t, 1, gotMonthStart.Day())
	assert.True(t, gotExpiring.After(time.Now().Add(29*24*time.Hour)))
	assert.Equal(t, "free", resp.Plan)
	assert.Equal(t, 4, resp.TotalAnalyses)
	assert.Equal(t, 2, resp.ByLevel["critical"])
	assert.Equal(t, 2, resp.UsedThisMonth)
	assert.Equal(t, 3, resp.MonthlyLimit)
	assert.Equal(t, 1, resp.Remaining)
	assert.Equal(t, 1, resp.ExpiringSoon)
}

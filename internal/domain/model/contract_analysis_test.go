package model_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/event"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

func newPendingAnalysis(t *testing.T, ct valueobject.ContractType) *model.ContractAnalysis {
	t.Helper()
	a, err := model.NewContractAnalysis(uuid.New(), uuid.New(), ct, "vertrag.pdf")
	require.NoError(t, err)
	return a
}

func TestNewContractAnalysis_Valid(t *testing.T) {
	a := newPendingAnalysis(t, valueobject.ContractTypeSaaS)

	assert.NotEqual(t, uuid.Nil, a.ID())
	assert.Equal(t, "vertrag.pdf", a.Filename())
	assert.True(t, valueobject.AnalysisStatusPending.Equal(a.Status()))
	assert.Equal(t, 1, a.Version())
	assert.Nil(t, a.Assessment())
	assert.Equal(t, 0, a.RiskScore())
	assert.True(t, a.RiskLevel().IsZero())
}

func TestNewContractAnalysis_Validation(t *testing.T) {
	tests := []struct {
		name     string
		ct       valueobject.ContractType
		wantErr  string
		tenantID uuid.UUID
		userID   uuid.UUID
	}{
		{name: "nil tenant ID", userID: uuid.New(), ct: valueobject.ContractTypeNDA, wantErr: "tenant ID is required"},
		{name: "nil user ID", tenantID: uuid.New(), ct: valueobject.ContractTypeNDA, wantErr: "user ID is required"},
		{name: "missing contract type", tenantID: uuid.New(), userID: uuid.New(), wantErr: "contract type is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := model.NewContractAnalysis(tt.tenantID, tt.userID, tt.ct, "x.txt")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewContractAnalysis_DefaultFilename(t *testing.T) {
	a, err := model.NewContractAnalysis(uuid.New(), uuid.New(), valueobject.ContractTypeVendor, "  ")
	require.NoError(t, err)
	assert.Equal(t, "vendor.txt", a.Filename())
}

func criticalAssessment() model.RiskAssessment {
	return model.RiskAssessment{
		OverallRiskScore: 75,
		OverallRiskLevel: valueobject.RiskLevelCritical,
		CriticalRisks: []model.ClauseRisk{
			{IssueTitle: "Fehlender Auftragsverarbeitungsvertrag", RiskLevel: valueobject.RiskLevelCritical},
		},
		MissingClauses:  []string{"Service Credits bei SLA-Verletzung"},
		ConfidenceScore: model.DefaultConfidenceScore,
	}
}

func TestContractAnalysis_Complete(t *testing.T) {
	a := newPendingAnalysis(t, valueobject.ContractTypeSaaS)
	raw := json.RawMessage(`{"service_name":"CloudCRM","provider":{"name":"Acme GmbH"},"contract_term":{"auto_renewal":true,"notice_period_days":14,"end_date":"2027-03-31"}}`)
	data, err := model.DecodeContractData(valueobject.ContractTypeSaaS, raw)
	require.NoError(t, err)

	require.NoError(t, a.Complete(data, raw, criticalAssessment()))

	assert.True(t, valueobject.AnalysisStatusCompleted.Equal(a.Status()))
	assert.Equal(t, 75, a.RiskScore())
	assert.Equal(t, "Acme GmbH", a.Counterparty())
	assert.Equal(t, 14, a.NoticeDays())
	assert.True(t, a.AutoRenewal())
	require.NotNil(t, a.EndDate())
	assert.Equal(t, "2027-03-31", a.EndDate().Format("2006-01-02"))
	assert.Equal(t, 2, a.Version())
	assert.False(t, a.CompletedAt().IsZero())

	evts := a.DomainEvents()
	require.Len(t, evts, 2)
	assert.Equal(t, event.EventTypeAnalysisCompleted, evts[0].EventType())
	assert.Equal(t, event.EventTypeCriticalRiskDetected, evts[1].EventType())
	assert.Equal(t, a.ID(), evts[1].AggregateID())
	for _, e := range evts {
		assert.Equal(t, a.TenantID(), e.TenantID())
	}

	critical, ok := evts[1].(event.CriticalRiskDetected)
	require.True(t, ok)
	assert.Equal(t, []string{"Fehlender Auftragsverarbeitungsvertrag"}, critical.Findings)

	assert.Empty(t, a.DomainEvents(), "events are drained")
}

func TestContractAnalysis_CompleteWithoutCriticalLevel(t *testing.T) {
	a := newPendingAnalysis(t, valueobject.ContractTypeNDA)
	data, err := model.DecodeContractData(valueobject.ContractTypeNDA, []byte(`{"nda_type":"mutual"}`))
	require.NoError(t, err)

	assessment := model.RiskAssessment{OverallRiskScore: 40, OverallRiskLevel: valueobject.RiskLevelMedium}
	require.NoError(t, a.Complete(data, nil, assessment))

	evts := a.DomainEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, event.EventTypeAnalysisCompleted, evts[0].EventType())
}

func TestContractAnalysis_CompleteRejectsMismatchedType(t *testing.T) {
	a := newPendingAnalysis(t, valueobject.ContractTypeNDA)
	data := model.ContractData{Type: valueobject.ContractTypeVendor, Vendor: &model.VendorData{}}

	err := a.Complete(data, nil, model.RiskAssessment{})
	require.Error(t, err)
	assert.True(t, valueobject.AnalysisStatusPending.Equal(a.Status()))
}

func TestContractAnalysis_CompleteRejectsOutOfRangeScore(t *testing.T) {
	a := newPendingAnalysis(t, valueobject.ContractTypeNDA)
	data := model.ContractData{Type: valueobject.ContractTypeNDA, NDA: &model.NDAData{}}

	err := a.Complete(data, nil, model.RiskAssessment{OverallRiskScore: 101})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 0 and 100")
}

func TestContractAnalysis_Fail(t *testing.T) {
	a := newPendingAnalysis(t, valueobject.ContractTypeEmployment)

	require.NoError(t, a.Fail("llm timeout"))
	assert.True(t, valueobject.AnalysisStatusFailed.Equal(a.Status()))
	assert.Equal(t, "llm timeout", a.ErrorMessage())

	evts := a.DomainEvents()
	require.Len(t, evts, 1)
	assert.Equal(t, event.EventTypeAnalysisFailed, evts[0].EventType())

	err := a.Fail("again")
	require.Error(t, err)

	data := model.ContractData{Type: valueobject.ContractTypeEmployment, Employment: &model.EmploymentData{}}
	require.Error(t, a.Complete(data, nil, model.RiskAssessment{}))
}

func TestReconstruct_NoEvents(t *testing.T) {
	id := uuid.New()
	a := model.Reconstruct(model.AnalysisSnapshot{
		ID:           id,
		TenantID:     uuid.New(),
		UserID:       uuid.New(),
		ContractType: valueobject.ContractTypeVendor,
		Status:       valueobject.AnalysisStatusCompleted,
		Version:      3,
	})

	assert.Equal(t, id, a.ID())
	assert.Equal(t, 3, a.Version())
	assert.Empty(t, a.DomainEvents())
}

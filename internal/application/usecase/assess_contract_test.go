package usecase_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luyzz22/contract-analyzer-backend/internal/application/dto"
	"github.com/Luyzz22/contract-analyzer-backend/internal/application/usecase"
)

func TestAssessContract_Execute(t *testing.T) {
	f := newFixture()
	uc := usecase.NewAssessContract(f.deps())

	resp, err := uc.Execute(context.Background(), dto.AssessContractRequest{
		TenantID:     uuid.New(),
		UserID:       uuid.New(),
		ContractType: "saas",
		Data: json.RawMessage(`{
			"service_name": "CloudCRM",
			"provider": {"name": "Acme Inc."},
			"contract_term": {"auto_renewal": true, "notice_period_days": 10, "end_date": "2027-03-31"},
			"data_protection": {"dpa_included": false, "data_export_format": "CSV"},
			"sla": {"uptime_percentage": "99,0", "credit_mechanism": "5% pro Stunde"},
			"liability": {"cap_multiple_annual_fee": 6}
		}`),
	})
	require.NoError(t, err)

	assert.Equal(t, "saas", resp.ContractType)
	assert.Equal(t, "saas.txt", resp.Filename)
	assert.Equal(t, 73, resp.RiskScore)
	assert.Equal(t, "critical", resp.RiskLevel)
	assert.Equal(t, "Acme Inc.", resp.Counterparty)
	assert.True(t, resp.AutoRenewal)
	assert.Equal(t, 10, resp.NoticeDays)
	require.NotNil(t, resp.EndDate)
	assert.Equal(t, "2027-03-31", resp.EndDate.Format("2006-01-02"))
	assert.Len(t, f.analyses.saved, 1)
}

func TestAssessContract_InvalidData(t *testing.T) {
	tests := []struct {
		name string
		req  dto.AssessContractRequest
	}{
		{"missing data", dto.AssessContractRequest{ContractType: "nda"}},
		{"null data", dto.AssessContractRequest{ContractType: "nda", Data: json.RawMessage(`null`)}},
		{"not an object", dto.AssessContractRequest{ContractType: "nda", Data: json.RawMessage(`["penalty_amount", 1]`)}},
		{"unknown type", dto.AssessContractRequest{ContractType: "lease", Data: json.RawMessage(`{}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			uc := usecase.NewAssessContract(f.deps())

			tt.req.TenantID = uuid.New()
			tt.req.UserID = uuid.New()
			_, err := uc.Execute(context.Background(), tt.req)

			require.ErrorIs(t, err, dto.ErrValidation)
			assert.Empty(t, f.analyses.saved)
		})
	}
}

func TestAssessContract_MalformedFieldIsIgnored(t *testing.T) {
	f := newFixture()
	uc := usecase.NewAssessContract(f.deps())

	resp, err := uc.Execute(context.Background(), dto.AssessContractRequest{
		TenantID:     uuid.New(),
		UserID:       uuid.New(),
		ContractType: "nda",
		Data:         json.RawMessage(`{"duration_indefinite": true, "penalty_amount": [1], "exclusions": ["öffentlich bekannt"]}`),
	})

	require.NoError(t, err)
	assert.Equal(t, 25, resp.RiskScore)
	assert.Len(t, f.analyses.saved, 1)
}

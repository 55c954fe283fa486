package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

func TestPlanTier_FromString(t *testing.T) {
	tier, err := valueobject.PlanTierFromString("")
	require.NoError(t, err)
	assert.True(t, valueobject.PlanTierFree.Equal(tier))

	tier, err = valueobject.PlanTierFromString("Enterprise")
	require.NoError(t, err)
	assert.True(t, valueobject.PlanTierEnterprise.Equal(tier))

	_, err = valueobject.PlanTierFromString("platinum")
	require.Error(t, err)
}

func TestPlanTier_Limits(t *testing.T) {
	assert.Equal(t, 3, valueobject.PlanTierFree.MonthlyAnalyses())
	assert.Equal(t, 50, valueobject.PlanTierPro.MonthlyAnalyses())
	assert.Negative(t, valueobject.PlanTierEnterprise.MonthlyAnalyses())
}

func TestPlanTier_Allows(t *testing.T) {
	assert.True(t, valueobject.PlanTierFree.Allows(valueobject.ContractTypeEmployment))
	assert.False(t, valueobject.PlanTierFree.Allows(valueobject.ContractTypeSaaS))

	for _, ct := range valueobject.AllContractTypes() {
		assert.True(t, valueobject.PlanTierPro.Allows(ct), ct.String())
		assert.True(t, valueobject.PlanTierEnterprise.Allows(ct), ct.String())
	}
}

func TestAlertType_FromString(t *testing.T) {
	tests := []struct {
		input    string
		expected valueobject.AlertType
		wantErr  bool
	}{
		{"7_days", valueobject.AlertTypeForDays(7), false},
		{"30_days", valueobject.AlertTypeForDays(30), false},
		{"notice_deadline", valueobject.AlertTypeNoticeDeadline, false},
		{"critical_risk", valueobject.AlertTypeCriticalRisk, false},
		{"0_days", valueobject.AlertType{}, true},
		{"soon", valueobject.AlertType{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := valueobject.AlertTypeFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(result))
		})
	}
}

func TestContractType_FromString(t *testing.T) {
	for _, ct := range valueobject.AllContractTypes() {
		parsed, err := valueobject.ContractTypeFromString(ct.String())
		require.NoError(t, err)
		assert.True(t, ct.Equal(parsed))
	}

	_, err := valueobject.ContractTypeFromString("lease")
	require.Error(t, err)
}

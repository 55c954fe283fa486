package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/service"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

func TestQuotaPolicy_Check(t *testing.T) {
	policy := service.NewQuotaPolicy()

	tests := []struct {
		name    string
		plan    valueobject.PlanTier
		ct      valueobject.ContractType
		used    int
		wantErr error
	}{
		{"free employment within quota", valueobject.PlanTierFree, valueobject.ContractTypeEmployment, 2, nil},
		{"free quota exhausted", valueobject.PlanTierFree, valueobject.ContractTypeEmployment, 3, service.ErrQuotaExceeded},
		{"free excludes saas", valueobject.PlanTierFree, valueobject.ContractTypeSaaS, 0, service.ErrContractTypeNotInPlan},
		{"pro vendor within quota", valueobject.PlanTierPro, valueobject.ContractTypeVendor, 49, nil},
		{"pro quota exhausted", valueobject.PlanTierPro, valueobject.ContractTypeNDA, 50, service.ErrQuotaExceeded},
		{"enterprise unlimited", valueobject.PlanTierEnterprise, valueobject.ContractTypeSaaS, 100000, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Check(tt.plan, tt.ct, tt.used)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestQuotaPolicy_Remaining(t *testing.T) {
	policy := service.NewQuotaPolicy()

	assert.Equal(t, 1, policy.Remaining(valueobject.PlanTierFree, 2))
	assert.Equal(t, 0, policy.Remaining(valueobject.PlanTierFree, 7))
	assert.Equal(t, 50, policy.Remaining(valueobject.PlanTierPro, 0))
	assert.Equal(t, -1, policy.Remaining(valueobject.PlanTierEnterprise, 10))
}

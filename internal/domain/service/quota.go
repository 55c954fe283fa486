package service

import (
	"errors"
	"fmt"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

var (
	ErrQuotaExceeded         = errors.New("monthly analysis quota exceeded")
	ErrContractTypeNotInPlan = errors.New("contract type not included in plan")
)

// QuotaPolicy enforces the per-plan monthly analysis limits.
type QuotaPolicy struct{}

// NewQuotaPolicy creates a new QuotaPolicy.
func NewQuotaPolicy() *QuotaPolicy {
	return &QuotaPolicy{}
}

// Check returns nil when a tenant on plan may run one more analysis of the
// given type, having already used usedThisMonth analyses.
func (q *QuotaPolicy) Check(plan valueobject.PlanTier, contractType valueobject.ContractType, usedThisMonth int) error {
	if !plan.Allows(contractType) {
		return fmt.Errorf("%w: %s does not include %s", ErrContractTypeNotInPlan, plan.String(), contractType.String())
	}
	limit := plan.MonthlyAnalyses()
	if limit >= 0 && usedThisMonth >= limit {
		return fmt.Errorf("%w: %d of %d analyses used on plan %s", ErrQuotaExceeded, usedThisMonth, limit, plan.String())
	}
	return nil
}

// Remaining returns the analyses left this month, or -1 for unlimited plans.
func (q *QuotaPolicy) Remaining(plan valueobject.PlanTier, usedThisMonth int) int {
	limit := plan.MonthlyAnalyses()
	if limit < 0 {
		return -1
	}
	if usedThisMonth >= limit {
		return 0
	}
	return limit - usedThisMonth
}

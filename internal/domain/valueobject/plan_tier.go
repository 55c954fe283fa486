package valueobject

import (
	"fmt"
	"strings"
)

// PlanTier is the subscription tier of a tenant.
type PlanTier struct {
	value string
}

var (
	PlanTierFree       = PlanTier{value: "free"}
	PlanTierPro        = PlanTier{value: "pro"}
	PlanTierEnterprise = PlanTier{value: "enterprise"}
)

// PlanTierFromString reconstructs a PlanTier. An empty string maps to the free tier.
func PlanTierFromString(s string) (PlanTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "free":
		return PlanTierFree, nil
	case "pro":
		return PlanTierPro, nil
	case "enterprise":
		return PlanTierEnterprise, nil
	default:
		return PlanTier{}, fmt.Errorf("invalid plan tier: %s", s)
	}
}

// MonthlyAnalyses returns the number of analyses a tenant on this tier may
// run per calendar month. A negative value means unlimited.
func (p PlanTier) MonthlyAnalyses() int {
	switch p.value {
	case "pro":
		return 50
	case "enterprise":
		return -1
	default:
		return 3
	}
}

// Allows reports whether contracts of the given type may be analyzed on this tier.
func (p PlanTier) Allows(t ContractType) bool {
	switch p.value {
	case "pro", "enterprise":
		return !t.IsZero()
	default:
		return t.Equal(ContractTypeEmployment)
	}
}

func (p PlanTier) String() string {
	return p.value
}

func (p PlanTier) Equal(other PlanTier) bool {
	return p.value == other.value
}

package valueobject

import (
	"fmt"
	"strings"
)

// ClauseCategory tags the part of a contract a finding relates to.
type ClauseCategory struct {
	value string
}

var (
	ClauseCategoryProbation         = ClauseCategory{value: "probation"}
	ClauseCategoryTerminationNotice = ClauseCategory{value: "termination_notice"}
	ClauseCategoryNonCompete        = ClauseCategory{value: "non_compete"}
	ClauseCategoryOvertime          = ClauseCategory{value: "overtime"}
	ClauseCategorySalary            = ClauseCategory{value: "salary"}
	ClauseCategoryBonus             = ClauseCategory{value: "bonus"}
	ClauseCategoryVacation          = ClauseCategory{value: "vacation"}
	ClauseCategoryWorkingHours      = ClauseCategory{value: "working_hours"}
	ClauseCategoryConfidentiality   = ClauseCategory{value: "confidentiality"}
	ClauseCategoryIPRights          = ClauseCategory{value: "ip_rights"}
	ClauseCategoryExclusionPeriod   = ClauseCategory{value: "exclusion_period"}
	ClauseCategoryFixedTerm         = ClauseCategory{value: "fixed_term"}
	ClauseCategorySLA               = ClauseCategory{value: "sla"}
	ClauseCategoryDataProtection    = ClauseCategory{value: "data_protection"}
	ClauseCategoryLiabilityCap      = ClauseCategory{value: "liability_cap"}
	ClauseCategoryTermination       = ClauseCategory{value: "termination"}
	ClauseCategoryAutoRenewal       = ClauseCategory{value: "auto_renewal"}
	ClauseCategoryPriceAdjustment   = ClauseCategory{value: "price_adjustment"}
	ClauseCategoryVendorLockIn      = ClauseCategory{value: "vendor_lock_in"}
	ClauseCategoryDuration          = ClauseCategory{value: "duration"}
	ClauseCategoryScope             = ClauseCategory{value: "scope"}
	ClauseCategoryPenalty           = ClauseCategory{value: "penalty"}
	ClauseCategoryIndemnification   = ClauseCategory{value: "indemnification"}
	ClauseCategoryPenalties         = ClauseCategory{value: "penalties"}
	ClauseCategoryOther             = ClauseCategory{value: "other"}
)

var clauseCategories = map[string]ClauseCategory{}

func init() {
	for _, c := range []ClauseCategory{
		ClauseCategoryProbation, ClauseCategoryTerminationNotice, ClauseCategoryNonCompete,
		ClauseCategoryOvertime, ClauseCategorySalary, ClauseCategoryBonus, ClauseCategoryVacation,
		ClauseCategoryWorkingHours, ClauseCategoryConfidentiality, ClauseCategoryIPRights,
		ClauseCategoryExclusionPeriod, ClauseCategoryFixedTerm, ClauseCategorySLA,
		ClauseCategoryDataProtection, ClauseCategoryLiabilityCap, ClauseCategoryTermination,
		ClauseCategoryAutoRenewal, ClauseCategoryPriceAdjustment, ClauseCategoryVendorLockIn,
		ClauseCategoryDuration, ClauseCategoryScope, ClauseCategoryPenalty,
		ClauseCategoryIndemnification, ClauseCategoryPenalties, ClauseCategoryOther,
	} {
		clauseCategories[c.value] = c
	}
}

// ClauseCategoryFromString reconstructs a ClauseCategory from its string representation.
func ClauseCategoryFromString(s string) (ClauseCategory, error) {
	if c, ok := clauseCategories[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return ClauseCategory{}, fmt.Errorf("invalid clause category: %s", s)
}

func (c ClauseCategory) String() string {
	return c.value
}

func (c ClauseCategory) IsZero() bool {
	return c.value == ""
}

func (c ClauseCategory) Equal(other ClauseCategory) bool {
	return c.value == other.value
}

// MarshalText implements encoding.TextMarshaler.
func (c ClauseCategory) MarshalText() ([]byte, error) {
	return []byte(c.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ClauseCategory) UnmarshalText(text []byte) error {
	parsed, err := ClauseCategoryFromString(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

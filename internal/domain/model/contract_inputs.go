package model

// EmploymentData holds the fields extracted from an employment contract.
type EmploymentData struct {
	JobTitle          string             `json:"job_title,omitempty"`
	Employer          *Party             `json:"employer,omitempty"`
	Employee          *Party             `json:"employee,omitempty"`
	StartDate         string             `json:"start_date,omitempty"`
	Probation         *ProbationTerms    `json:"probation,omitempty"`
	WorkingConditions *WorkingConditions `json:"working_conditions,omitempty"`
	Vacation          *VacationTerms     `json:"vacation,omitempty"`
	NonCompete        *NonCompeteTerms   `json:"non_compete,omitempty"`
	Termination       *TerminationTerms  `json:"termination,omitempty"`
}

type ProbationTerms struct {
	DurationMonths *Number `json:"duration_months,omitempty"`
}

type WorkingConditions struct {
	WeeklyHours              *Number `json:"weekly_hours,omitempty"`
	OvertimeClause           string  `json:"overtime_clause,omitempty"`
	OvertimeIncludedInSalary Flag    `json:"overtime_included_in_salary,omitempty"`
	OvertimeCapHours         *Number `json:"overtime_cap_hours,omitempty"`
}

type VacationTerms struct {
	DaysPerYear *Number `json:"days_per_year,omitempty"`
}

type NonCompeteTerms struct {
	DuringEmployment        Flag    `json:"during_employment,omitempty"`
	PostEmployment          Flag    `json:"post_employment,omitempty"`
	DurationMonths          *Number `json:"duration_months,omitempty"`
	CompensationPercentage  *Number `json:"compensation_percentage,omitempty"`
	HasAdequateCompensation Flag    `json:"has_adequate_compensation,omitempty"`
	MissingCompensation     Flag    `json:"missing_compensation,omitempty"`
}

type TerminationTerms struct {
	NoticePeriodEmployee string `json:"notice_period_employee,omitempty"`
	NoticePeriodEmployer string `json:"notice_period_employer,omitempty"`
	FixedTerm            Flag   `json:"fixed_term,omitempty"`
	EndDate              string `json:"end_date,omitempty"`
}

// SaaSData holds the fields extracted from a SaaS subscription contract.
type SaaSData struct {
	ServiceName    string               `json:"service_name,omitempty"`
	Provider       *Party               `json:"provider,omitempty"`
	Customer       *Party               `json:"customer,omitempty"`
	ContractTerm   *ContractTerm        `json:"contract_term,omitempty"`
	DataProtection *DataProtectionTerms `json:"data_protection,omitempty"`
	SLA            *SLATerms            `json:"sla,omitempty"`
	Liability      *SaaSLiability       `json:"liability,omitempty"`
	Pricing        *SaaSPricing         `json:"pricing,omitempty"`
}

// ContractTerm describes duration and renewal of a contract.
type ContractTerm struct {
	AutoRenewal      Flag    `json:"auto_renewal,omitempty"`
	NoticePeriodDays *Number `json:"notice_period_days,omitempty"`
	StartDate        string  `json:"start_date,omitempty"`
	EndDate          string  `json:"end_date,omitempty"`
}

type DataProtectionTerms struct {
	DPAIncluded              Flag   `json:"dpa_included,omitempty"`
	DataLocation             string `json:"data_location,omitempty"`
	DataLocationGuaranteedEU Flag   `json:"data_location_guaranteed_eu,omitempty"`
	DataExportFormat         string `json:"data_export_format,omitempty"`
}

type SLATerms struct {
	UptimePercentage *Number `json:"uptime_percentage,omitempty"`
	CreditMechanism  string  `json:"credit_mechanism,omitempty"`
}

type SaaSLiability struct {
	CapMultipleAnnualFee *Number `json:"cap_multiple_annual_fee,omitempty"`
}

type SaaSPricing struct {
	AnnualContractValue   Amount `json:"annual_contract_value"`
	PriceEscalationClause string `json:"price_escalation_clause,omitempty"`
	PriceEscalationCap    string `json:"price_escalation_cap,omitempty"`
}

// NDAData holds the fields extracted from a non-disclosure agreement.
type NDAData struct {
	NDAType                  string     `json:"nda_type,omitempty"`
	DisclosingParty          *Party     `json:"disclosing_party,omitempty"`
	ReceivingParty           *Party     `json:"receiving_party,omitempty"`
	Purpose                  string     `json:"purpose,omitempty"`
	DefinitionConfidential   string     `json:"definition_confidential,omitempty"`
	Exclusions               StringList `json:"exclusions,omitempty"`
	DurationYears            *Number    `json:"duration_years,omitempty"`
	DurationIndefinite       Flag       `json:"duration_indefinite,omitempty"`
	PenaltyClause            string     `json:"penalty_clause,omitempty"`
	PenaltyAmount            Amount     `json:"penalty_amount"`
	PenaltyPerViolation      Flag       `json:"penalty_per_violation,omitempty"`
	ReturnOfInformation      Flag       `json:"return_of_information,omitempty"`
	DestructionOfInformation Flag       `json:"destruction_of_information,omitempty"`
	EndDate                  string     `json:"end_date,omitempty"`
}

// VendorData holds the fields extracted from a supplier contract.
type VendorData struct {
	Supplier        *Party           `json:"supplier,omitempty"`
	Buyer           *Party           `json:"buyer,omitempty"`
	ContractSubject string           `json:"contract_subject,omitempty"`
	ContractTerm    *ContractTerm    `json:"contract_term,omitempty"`
	ContractValue   Amount           `json:"contract_value"`
	Warranty        *WarrantyTerms   `json:"warranty,omitempty"`
	Liability       *VendorLiability `json:"liability,omitempty"`
	Payment         *PaymentTerms    `json:"payment,omitempty"`
	Quality         *QualityTerms    `json:"quality,omitempty"`
	Pricing         *VendorPricing   `json:"pricing,omitempty"`
}

type WarrantyTerms struct {
	DurationMonths *Number `json:"duration_months,omitempty"`
}

type VendorLiability struct {
	CapType string `json:"cap_type,omitempty"`
}

type PaymentTerms struct {
	PaymentDays *Number `json:"payment_days,omitempty"`
}

type QualityTerms struct {
	AuditRights Flag `json:"audit_rights,omitempty"`
}

type VendorPricing struct {
	PriceAdjustmentClause string `json:"price_adjustment_clause,omitempty"`
	PriceAdjustmentIndex  string `json:"price_adjustment_index,omitempty"`
}

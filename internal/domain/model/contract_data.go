package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

// ErrEmptyContractData is returned when there is no field document to decode.
var ErrEmptyContractData = errors.New("contract data is empty")

// ContractData carries the extracted fields of exactly one contract type.
// Only the pointer matching Type is set.
type ContractData struct {
	Type       valueobject.ContractType
	Employment *EmploymentData
	SaaS       *SaaSData
	NDA        *NDAData
	Vendor     *VendorData
}

// DecodeContractData decodes the extracted JSON document for the given
// contract type. Unknown keys are ignored, and a field whose value does not
// fit its type is left absent instead of failing the document.
func DecodeContractData(contractType valueobject.ContractType, raw []byte) (ContractData, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ContractData{}, ErrEmptyContractData
	}

	data := ContractData{Type: contractType}
	var target any
	switch {
	case contractType.Equal(valueobject.ContractTypeEmployment):
		data.Employment = &EmploymentData{}
		target = data.Employment
	case contractType.Equal(valueobject.ContractTypeSaaS):
		data.SaaS = &SaaSData{}
		target = data.SaaS
	case contractType.Equal(valueobject.ContractTypeNDA):
		data.NDA = &NDAData{}
		target = data.NDA
	case contractType.Equal(valueobject.ContractTypeVendor):
		data.Vendor = &VendorData{}
		target = data.Vendor
	default:
		return ContractData{}, fmt.Errorf("unsupported contract type %q", contractType.String())
	}

	if err := decodeLenient(raw, target); err != nil {
		return ContractData{}, fmt.Errorf("failed to decode %s data: %w", contractType.String(), err)
	}
	return data, nil
}

// MarshalJSON encodes only the populated variant.
func (d ContractData) MarshalJSON() ([]byte, error) {
	switch {
	case d.Employment != nil:
		return json.Marshal(d.Employment)
	case d.SaaS != nil:
		return json.Marshal(d.SaaS)
	case d.NDA != nil:
		return json.Marshal(d.NDA)
	case d.Vendor != nil:
		return json.Marshal(d.Vendor)
	}
	return []byte("{}"), nil
}

// ContractTerms are the lifecycle facts of a contract that deadline
// monitoring needs, independent of its type.
type ContractTerms struct {
	Counterparty     string
	EndDate          *time.Time
	NoticePeriodDays int
	AutoRenewal      bool
	Value            decimal.NullDecimal
}

// Terms extracts the lifecycle facts from whichever variant is set.
func (d ContractData) Terms() ContractTerms {
	var t ContractTerms
	switch {
	case d.Employment != nil:
		t.Counterparty = PartyName(d.Employment.Employer, "")
		if d.Employment.Termination != nil && bool(d.Employment.Termination.FixedTerm) {
			t.EndDate = ParseContractDate(d.Employment.Termination.EndDate)
		}
	case d.SaaS != nil:
		t.Counterparty = PartyName(d.SaaS.Provider, "")
		applyContractTerm(&t, d.SaaS.ContractTerm)
		if d.SaaS.Pricing != nil {
			t.Value = d.SaaS.Pricing.AnnualContractValue.NullDecimal
		}
	case d.NDA != nil:
		t.Counterparty = PartyName(d.NDA.DisclosingParty, "")
		t.EndDate = ParseContractDate(d.NDA.EndDate)
		t.Value = d.NDA.PenaltyAmount.NullDecimal
	case d.Vendor != nil:
		t.Counterparty = PartyName(d.Vendor.Supplier, "")
		applyContractTerm(&t, d.Vendor.ContractTerm)
		t.Value = d.Vendor.ContractValue.NullDecimal
	}
	return t
}

func applyContractTerm(t *ContractTerms, term *ContractTerm) {
	if term == nil {
		return
	}
	t.AutoRenewal = bool(term.AutoRenewal)
	t.EndDate = ParseContractDate(term.EndDate)
	if term.NoticePeriodDays != nil && *term.NoticePeriodDays > 0 {
		t.NoticePeriodDays = int(*term.NoticePeriodDays)
	}
}

var contractDateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"2.1.2006",
	time.RFC3339,
}

// ParseContractDate parses ISO and German date notations. It returns nil
// for empty or unparseable input.
func ParseContractDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range contractDateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			d := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

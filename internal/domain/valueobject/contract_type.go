package valueobject

import (
	"fmt"
	"strings"
)

// ContractType identifies which rule set evaluates a contract.
type ContractType struct {
	value string
}

var (
	ContractTypeEmployment = ContractType{value: "employment"}
	ContractTypeSaaS       = ContractType{value: "saas"}
	ContractTypeNDA        = ContractType{value: "nda"}
	ContractTypeVendor     = ContractType{value: "vendor"}
)

// AllContractTypes lists every contract type with a scoring engine.
func AllContractTypes() []ContractType {
	return []ContractType{ContractTypeEmployment, ContractTypeSaaS, ContractTypeNDA, ContractTypeVendor}
}

// ContractTypeFromString reconstructs a ContractType from its string representation.
func ContractTypeFromString(s string) (ContractType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "employment":
		return ContractTypeEmployment, nil
	case "saas":
		return ContractTypeSaaS, nil
	case "nda":
		return ContractTypeNDA, nil
	case "vendor":
		return ContractTypeVendor, nil
	default:
		return ContractType{}, fmt.Errorf("invalid contract type: %s", s)
	}
}

func (t ContractType) String() string {
	return t.value
}

func (t ContractType) IsZero() bool {
	return t.value == ""
}

func (t ContractType) Equal(other ContractType) bool {
	return t.value == other.value
}

// MarshalText implements encoding.TextMarshaler.
func (t ContractType) MarshalText() ([]byte, error) {
	return []byte(t.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ContractType) UnmarshalText(text []byte) error {
	parsed, err := ContractTypeFromString(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

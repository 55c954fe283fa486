package service

import (
	"errors"
	"fmt"

	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/model"
	"github.com/Luyzz22/contract-analyzer-backend/internal/domain/valueobject"
)

// ErrUnsupportedContractType is returned for contract data without a matching engine.
var ErrUnsupportedContractType = errors.New("unsupported contract type")

// Assessor scores structured contract data.
type Assessor interface {
	Assess(data model.ContractData) (model.RiskAssessment, error)
}

// RiskEngine dispatches contract data to the engine for its type.
type RiskEngine struct {
	employment *EmploymentEngine
	saas       *SaaSEngine
	nda        *NDAEngine
	vendor     *VendorEngine
}

// NewRiskEngine creates a RiskEngine with all four contract engines.
func NewRiskEngine() *RiskEngine {
	return &RiskEngine{
		employment: NewEmploymentEngine(),
		saas:       NewSaaSEngine(),
		nda:        NewNDAEngine(),
		vendor:     NewVendorEngine(),
	}
}

// Assess scores data with the engine matching data.Type.
func (r *RiskEngine) Assess(data model.ContractData) (model.RiskAssessment, error) {
	switch {
	case data.Type.Equal(valueobject.ContractTypeEmployment):
		return r.employment.Assess(data.Employment), nil
	case data.Type.Equal(valueobject.ContractTypeSaaS):
		return r.saas.Assess(data.SaaS), nil
	case data.Type.Equal(valueobject.ContractTypeNDA):
		return r.nda.Assess(data.NDA), nil
	case data.Type.Equal(valueobject.ContractTypeVendor):
		return r.vendor.Assess(data.Vendor), nil
	}
	return model.RiskAssessment{}, fmt.Errorf("%w: %q", ErrUnsupportedContractType, data.Type.String())
}

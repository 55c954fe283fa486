package valueobject

import (
	"fmt"
	"strings"
)

// LegalValidity describes how a clause is likely to hold up under German law.
type LegalValidity struct {
	value string
}

var (
	LegalValidityValid              = LegalValidity{value: "valid"}
	LegalValidityPotentiallyInvalid = LegalValidity{value: "potentially_invalid"}
	LegalValidityInvalid            = LegalValidity{value: "invalid"}
	LegalValidityRequiresReview     = LegalValidity{value: "requires_review"}
)

// LegalValidityFromString reconstructs a LegalValidity from its string representation.
func LegalValidityFromString(s string) (LegalValidity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "valid":
		return LegalValidityValid, nil
	case "potentially_invalid":
		return LegalValidityPotentiallyInvalid, nil
	case "invalid":
		return LegalValidityInvalid, nil
	case "requires_review":
		return LegalValidityRequiresReview, nil
	default:
		return LegalValidity{}, fmt.Errorf("invalid legal validity: %s", s)
	}
}

func (v LegalValidity) String() string {
	return v.value
}

func (v LegalValidity) IsZero() bool {
	return v.value == ""
}

func (v LegalValidity) Equal(other LegalValidity) bool {
	return v.value == other.value
}

// MarshalText implements encoding.TextMarshaler.
func (v LegalValidity) MarshalText() ([]byte, error) {
	return []byte(v.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *LegalValidity) UnmarshalText(text []byte) error {
	parsed, err := LegalValidityFromString(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

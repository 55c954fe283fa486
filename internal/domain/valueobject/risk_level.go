package valueobject

import (
	"fmt"
	"strings"
)

// RiskLevel is an immutable value object representing the severity of a
// finding or of a whole contract.
type RiskLevel struct {
	value string
}

var (
	RiskLevelMinimal  = RiskLevel{value: "minimal"}
	RiskLevelLow      = RiskLevel{value: "low"}
	RiskLevelMedium   = RiskLevel{value: "medium"}
	RiskLevelHigh     = RiskLevel{value: "high"}
	RiskLevelCritical = RiskLevel{value: "critical"}
)

// RiskLevelFromString reconstructs a RiskLevel from its string representation.
// Matching is case-insensitive.
func RiskLevelFromString(s string) (RiskLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minimal":
		return RiskLevelMinimal, nil
	case "low":
		return RiskLevelLow, nil
	case "medium":
		return RiskLevelMedium, nil
	case "high":
		return RiskLevelHigh, nil
	case "critical":
		return RiskLevelCritical, nil
	default:
		return RiskLevel{}, fmt.Errorf("invalid risk level: %s", s)
	}
}

// RiskLevelFromScore derives the RiskLevel of an overall score (0-100).
// Thresholds are inclusive.
func RiskLevelFromScore(score int) RiskLevel {
	switch {
	case score >= 70:
		return RiskLevelCritical
	case score >= 55:
		return RiskLevelHigh
	case score >= 40:
		return RiskLevelMedium
	case score >= 20:
		return RiskLevelLow
	default:
		return RiskLevelMinimal
	}
}

// Weight returns the contribution of one finding of this level to the
// overall contract score.
func (r RiskLevel) Weight() int {
	switch r.value {
	case "critical":
		return 25
	case "high":
		return 15
	case "medium":
		return 8
	default:
		return 0
	}
}

// String returns the string representation.
func (r RiskLevel) String() string {
	return r.value
}

// IsZero returns true if the RiskLevel has not been set.
func (r RiskLevel) IsZero() bool {
	return r.value == ""
}

// Equal checks equality with another RiskLevel.
func (r RiskLevel) Equal(other RiskLevel) bool {
	return r.value == other.value
}

// MarshalText implements encoding.TextMarshaler.
func (r RiskLevel) MarshalText() ([]byte, error) {
	return []byte(r.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *RiskLevel) UnmarshalText(text []byte) error {
	level, err := RiskLevelFromString(string(text))
	if err != nil {
		return err
	}
	*r = level
	return nil
}

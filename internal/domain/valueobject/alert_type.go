package valueobject

import (
	"fmt"
	"strconv"
	"strings"
)

// AlertType classifies a contract alert.
type AlertType struct {
	value string
}

var (
	AlertTypeNoticeDeadline = AlertType{value: "notice_deadline"}
	AlertTypeCriticalRisk   = AlertType{value: "critical_risk"}
)

// DeadlineThresholds are the day counts before a contract end date at
// which a reminder is raised.
var DeadlineThresholds = []int{30, 14, 7, 1}

// AlertTypeForDays returns the reminder alert type for a threshold, e.g. "7_days".
func AlertTypeForDays(days int) AlertType {
	return AlertType{value: fmt.Sprintf("%d_days", days)}
}

// AlertTypeFromString reconstructs an AlertType from its string representation.
func AlertTypeFromString(s string) (AlertType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case AlertTypeNoticeDeadline.value:
		return AlertTypeNoticeDeadline, nil
	case AlertTypeCriticalRisk.value:
		return AlertTypeCriticalRisk, nil
	}
	if days, ok := strings.CutSuffix(s, "_days"); ok {
		if n, err := strconv.Atoi(days); err == nil && n > 0 {
			return AlertTypeForDays(n), nil
		}
	}
	return AlertType{}, fmt.Errorf("invalid alert type: %s", s)
}

func (a AlertType) String() string {
	return a.value
}

func (a AlertType) Equal(other AlertType) bool {
	return a.value == other.value
}

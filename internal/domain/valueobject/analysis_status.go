package valueobject

import "fmt"

// AnalysisStatus is the lifecycle state of a contract analysis.
type AnalysisStatus struct {
	value string
}

var (
	AnalysisStatusPending   = AnalysisStatus{value: "pending"}
	AnalysisStatusCompleted = AnalysisStatus{value: "completed"}
	AnalysisStatusFailed    = AnalysisStatus{value: "failed"}
)

// AnalysisStatusFromString reconstructs an AnalysisStatus from its string representation.
func AnalysisStatusFromString(s string) (AnalysisStatus, error) {
	switch s {
	case "pending":
		return AnalysisStatusPending, nil
	case "completed":
		return AnalysisStatusCompleted, nil
	case "failed":
		return AnalysisStatusFailed, nil
	default:
		return AnalysisStatus{}, fmt.Errorf("invalid analysis status: %s", s)
	}
}

// IsTerminal returns true once the analysis can no longer change.
func (s AnalysisStatus) IsTerminal() bool {
	return s.value == "completed" || s.value == "failed"
}

func (s AnalysisStatus) String() string {
	return s.value
}

func (s AnalysisStatus) Equal(other AnalysisStatus) bool {
	return s.value == other.value
}

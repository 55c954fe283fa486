package port

import (
	"context"
	"time"
)

// AnalysisMetrics records operational measurements of the analysis pipeline.
type AnalysisMetrics interface {
	// ObserveAnalysis records a completed analysis with its score and duration.
	ObserveAnalysis(ctx context.Context, contractType, riskLevel string, score int, elapsed time.Duration)

	// CountFailure records a failed analysis at the given pipeline stage.
	CountFailure(ctx context.Context, contractType, stage string)

	// CountAlerts records newly created alerts of one type.
	CountAlerts(ctx context.Context, alertType string, n int)
}

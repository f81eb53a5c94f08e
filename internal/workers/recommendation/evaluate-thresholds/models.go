// internal/workers/recommendation/evaluate-thresholds/models.go
package evaluatethresholds

import (
	"time"

	"riskrec-engine/internal/engine/threshold"
)

type Input struct {
	ExperimentIDs []string `json:"experimentIds,omitempty"` // empty means every configured experiment
	WindowDays    int      `json:"windowDays,omitempty"`    // overrides the configured follow-up window
}

type Output struct {
	EvaluatedAt     time.Time                   `json:"evaluatedAt"`
	Recommendations []*threshold.Recommendation `json:"recommendations"`
}

// internal/models/events.go
package models

import "time"

// JourneyEvent records one completed scoring+recommendation cycle.
// Emitted once per request for downstream analytics.
type JourneyEvent struct {
	ID                   string            `json:"id"`
	UserID               string            `json:"userId"`
	Timestamp            time.Time         `json:"timestamp"`
	AssessmentType       string            `json:"assessmentType"`
	RiskScore            float64           `json:"riskScore"`
	RiskLevel            string            `json:"riskLevel"`
	VariantsApplied      map[string]string `json:"variantsApplied"`
	RecommendationCounts map[string]int    `json:"recommendationCounts"`
}

// OutcomeEvent is a later-observed real-world result attributed to an
// experiment variant. The engine only consumes these; an external
// component produces them when an outcome (e.g. job placement) is seen.
type OutcomeEvent struct {
	UserID          string    `json:"userId"`
	ExperimentID    string    `json:"experimentId"`
	VariantID       string    `json:"variantId"`
	OutcomeAchieved bool      `json:"outcomeAchieved"`
	Timestamp       time.Time `json:"timestamp"`
}

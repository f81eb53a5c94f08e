// internal/engine/orchestrator/models.go
package orchestrator

import (
	"context"

	"riskrec-engine/internal/engine/risk"
	"riskrec-engine/internal/engine/tier"
	"riskrec-engine/internal/models"
)

// EventSink receives journey events for downstream analytics. The
// engine performs no I/O itself; implementations live with the callers.
type EventSink interface {
	PublishJourney(ctx context.Context, event models.JourneyEvent) error
}

// Request is one complete scoring+recommendation cycle input, supplied
// by the external signal provider.
type Request struct {
	UserID              string                `json:"userId"`
	CurrentSalary       float64               `json:"currentSalary"`
	Profile             risk.Profile          `json:"profile"`
	ActiveExperimentIDs []string              `json:"activeExperimentIds"`
	CandidatePool       []models.JobCandidate `json:"candidatePool"`
	MatchProfile        models.MatchProfile   `json:"matchProfile"`
}

// TierRecommendations holds one ranked list per tier band.
type TierRecommendations struct {
	Conservative []models.RankedCandidate `json:"conservative"`
	Optimal      []models.RankedCandidate `json:"optimal"`
	Stretch      []models.RankedCandidate `json:"stretch"`
}

// Response is the engine's output contract. Warnings are passed through
// for observability; they never block a response.
type Response struct {
	RiskScore          float64             `json:"riskScore"`
	RiskLevel          risk.Level          `json:"riskLevel"`
	Triggers           []string            `json:"triggers"`
	CategoryBreakdown  map[string]float64  `json:"categoryBreakdown"`
	Tiers              TierRecommendations `json:"tiers"`
	TierBands          [3]tier.Band        `json:"tierBands"`
	ExperimentVariants map[string]string   `json:"experimentVariants"`
	Warnings           []string            `json:"warnings,omitempty"`
}

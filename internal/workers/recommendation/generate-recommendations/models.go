// internal/workers/recommendation/generate-recommendations/models.go
package generaterecommendations

import (
	"riskrec-engine/internal/engine/orchestrator"
	"riskrec-engine/internal/models"
)

type Input struct {
	UserID         string              `json:"userId"`
	AssessmentType string              `json:"assessmentType"`
	MatchProfile   models.MatchProfile `json:"matchProfile"`
	PoolSize       int                 `json:"poolSize,omitempty"`
}

// Output flattens the engine response into the process variables.
type Output struct {
	UserID string `json:"userId"`
	orchestrator.Response
}

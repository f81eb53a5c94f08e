// internal/engine/orchestrator/orchestrator.go
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"riskrec-engine/internal/common/config"
	commonerrors "riskrec-engine/internal/common/errors"
	"riskrec-engine/internal/common/logger"
	"riskrec-engine/internal/common/metrics"
	"riskrec-engine/internal/engine/experiment"
	"riskrec-engine/internal/engine/match"
	"riskrec-engine/internal/engine/risk"
	"riskrec-engine/internal/engine/tier"
	"riskrec-engine/internal/models"
)

// Orchestrator composes the scoring, classification, experiment
// assignment, tier derivation and matching steps into one
// request/response cycle. Each request works on an immutable config
// snapshot; the core components stay pure, so concurrent requests need
// no coordination.
type Orchestrator struct {
	store    *config.Store
	assigner *experiment.Assigner
	sink     EventSink
	logger   logger.Logger
}

func New(store *config.Store, sink EventSink, log logger.Logger) *Orchestrator {
	return &Orchestrator{
		store:    store,
		assigner: experiment.NewAssigner(log),
		sink:     sink,
		logger:   log,
	}
}

// Recommend runs one full cycle: score the profile, classify it,
// resolve experiment variants, derive tier bands, rank candidates per
// band, emit a journey event and return the result. Fatal validation
// errors abort with a structured error and no partial result.
func (o *Orchestrator) Recommend(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	engineCfg := o.store.Engine()
	start := time.Now()

	result, err := risk.Score(req.Profile, engineCfg.Scoring)
	if err != nil {
		return nil, err
	}

	var warnings []string

	// Experiment resolution: assign a variant for every active
	// experiment; overrides are applied in the order the experiments
	// are listed, the last override of each kind wins.
	variants := make(map[string]string, len(req.ActiveExperimentIDs))
	riskBands := engineCfg.RiskBands
	tierVariant := config.Variant{}
	for _, expID := range req.ActiveExperimentIDs {
		exp, ok := engineCfg.ExperimentByID(expID)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("experiment %q not configured, skipped", expID))
			continue
		}
		variant, err := o.assigner.Assign(req.UserID, exp.ID, exp.Variants)
		if err != nil {
			return nil, err
		}
		variants[exp.ID] = variant.ID
		if len(variant.RiskBands) > 0 {
			riskBands = variant.RiskBands
		}
		if len(variant.TierBands) > 0 {
			tierVariant = variant
		}
	}

	level, err := risk.Classify(result.OverallScore, riskBands)
	if err != nil {
		return nil, err
	}
	result.RiskLevel = level

	bands, err := tier.DeriveBands(req.CurrentSalary, level, tierVariant, engineCfg.Tiers)
	if err != nil {
		return nil, err
	}

	ranked := [3][]models.RankedCandidate{}
	counts := make(map[string]int, 3)
	for i, band := range bands {
		ranked[i] = match.Match(req.CandidatePool, band, req.MatchProfile, req.CurrentSalary, engineCfg.Matcher)
		counts[band.Name] = len(ranked[i])
		metrics.RecommendationsReturned.WithLabelValues(band.Name).Add(float64(len(ranked[i])))
	}

	metrics.RequestsScored.WithLabelValues(req.Profile.AssessmentType, string(level)).Inc()
	metrics.RequestDuration.WithLabelValues(req.Profile.AssessmentType).Observe(time.Since(start).Seconds())

	o.emitJourneyEvent(ctx, req, result, variants, counts)

	o.logger.Info("recommendation cycle completed", map[string]interface{}{
		"userId":    req.UserID,
		"riskScore": result.OverallScore,
		"riskLevel": string(level),
		"variants":  variants,
		"counts":    counts,
	})

	return &Response{
		RiskScore:         result.OverallScore,
		RiskLevel:         level,
		Triggers:          result.Triggers,
		CategoryBreakdown: result.CategoryBreakdown,
		Tiers: TierRecommendations{
			Conservative: ranked[0],
			Optimal:      ranked[1],
			Stretch:      ranked[2],
		},
		TierBands:          bands,
		ExperimentVariants: variants,
		Warnings:           warnings,
	}, nil
}

// emitJourneyEvent publishes the per-request analytics record. Sink
// failures are logged, never surfaced: analytics must not block a
// valid response.
func (o *Orchestrator) emitJourneyEvent(ctx context.Context, req *Request, result *risk.Result, variants map[string]string, counts map[string]int) {
	if o.sink == nil {
		return
	}

	event := models.JourneyEvent{
		ID:                   uuid.NewString(),
		UserID:               req.UserID,
		Timestamp:            time.Now().UTC(),
		AssessmentType:       req.Profile.AssessmentType,
		RiskScore:            result.OverallScore,
		RiskLevel:            string(result.RiskLevel),
		VariantsApplied:      variants,
		RecommendationCounts: counts,
	}

	if err := o.sink.PublishJourney(ctx, event); err != nil {
		metrics.EventPublishFailures.Inc()
		o.logger.Warn("journey event publish failed", map[string]interface{}{
			"userId": req.UserID,
			"error":  err.Error(),
		})
	}
}

func validateRequest(req *Request) error {
	if req == nil {
		return commonerrors.NewInputValidationError("request is nil")
	}
	if req.UserID == "" {
		return commonerrors.NewInputValidationError("userId is required")
	}
	if req.Profile.AssessmentType == "" {
		return commonerrors.NewInputValidationError("profile.assessmentType is required")
	}
	if req.CurrentSalary <= 0 {
		return commonerrors.NewInvalidSalaryError(req.CurrentSalary)
	}
	if len(req.CandidatePool) == 0 {
		return commonerrors.NewEmptyCandidatePoolError(req.UserID)
	}
	return nil
}

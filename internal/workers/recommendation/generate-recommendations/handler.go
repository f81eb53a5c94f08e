// internal/workers/recommendation/generate-recommendations/handler.go
package generaterecommendations

import (
	"context"
	"encoding/json"
	"time"

	appconfig "riskrec-engine/internal/common/config"
	commonerrors "riskrec-engine/internal/common/errors"
	"riskrec-engine/internal/common/logger"
	"riskrec-engine/internal/common/metrics"
	"riskrec-engine/internal/common/validation"
	"riskrec-engine/internal/engine/orchestrator"
	"riskrec-engine/internal/models"
	"riskrec-engine/internal/providers/candidates"
	"riskrec-engine/internal/providers/signal"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "generate-recommendations"

// SignalFetcher loads one user's risk-input signals.
type SignalFetcher interface {
	Fetch(ctx context.Context, userID, assessmentType string) (*signal.UserSignals, error)
}

// PoolFetcher loads the candidate pool for one salary-delta window.
type PoolFetcher interface {
	FetchPool(ctx context.Context, q candidates.PoolQuery) ([]models.JobCandidate, error)
}

// Recommender runs one full scoring+recommendation cycle.
type Recommender interface {
	Recommend(ctx context.Context, req *orchestrator.Request) (*orchestrator.Response, error)
}

type Handler struct {
	config  *Config
	store   *appconfig.Store
	signals SignalFetcher
	pool    PoolFetcher
	engine  Recommender
	errors  *commonerrors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(cfg *Config, store *appconfig.Store, signals SignalFetcher, pool PoolFetcher, engine Recommender, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:  cfg,
		store:   store,
		signals: signals,
		pool:    pool,
		engine:  engine,
		errors:  commonerrors.NewErrorHandler(scoped),
		logger:  scoped,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.errors.HandleJobError(context.Background(), client, job, commonerrors.NewInputValidationError("parse input: "+err.Error()))
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(commonerrors.ErrCodeInputValidationFailed)).Inc()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errors.HandleJobError(ctx, client, job, err)
		code := string(commonerrors.ErrCodeInternal)
		if stdErr, ok := err.(*commonerrors.StandardError); ok {
			code = string(stdErr.Code)
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, code).Inc()
		return
	}

	h.completeJob(client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.UserID == "" {
		return nil, commonerrors.NewInputValidationError("userId is required")
	}
	if input.AssessmentType == "" {
		return nil, commonerrors.NewInputValidationError("assessmentType is required")
	}

	sig, err := h.signals.Fetch(ctx, input.UserID, input.AssessmentType)
	if err != nil {
		return nil, err
	}

	engineCfg := h.store.Engine()
	minDelta, maxDelta := poolDeltaRange(engineCfg.Tiers, sig.CurrentSalary, h.config.PoolMargin)

	poolSize := input.PoolSize
	if poolSize <= 0 {
		poolSize = h.config.PoolSize
	}

	pool, err := h.pool.FetchPool(ctx, candidates.PoolQuery{
		MinDelta:        minDelta,
		MaxDelta:        maxDelta,
		RemotePreferred: input.MatchProfile.RemotePreferred,
		Size:            poolSize,
	})
	if err != nil {
		return nil, err
	}

	req := &orchestrator.Request{
		UserID:              input.UserID,
		CurrentSalary:       sig.CurrentSalary,
		Profile:             sig.Profile,
		ActiveExperimentIDs: sig.ActiveExperimentIDs,
		CandidatePool:       pool,
		MatchProfile:        input.MatchProfile,
	}

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := h.engine.Recommend(ctx, req)
	if err != nil {
		return nil, err
	}

	return &Output{UserID: input.UserID, Response: *resp}, nil
}

// validateRequest runs the assembled request through the JSON schema
// before it reaches the engine, so malformed provider data surfaces as
// a structured validation failure rather than a scoring error.
func validateRequest(req *orchestrator.Request) error {
	raw, err := json.Marshal(req)
	if err != nil {
		return commonerrors.NewInternalError(err)
	}
	var asMap map[string]interface{}
	if err := json.Unmarshal(raw, &asMap); err != nil {
		return commonerrors.NewInternalError(err)
	}

	result := validation.ValidateRecommendationRequest(asMap)
	if !result.Valid {
		return commonerrors.NewInputValidationError(validation.FormatErrors(result))
	}
	return nil
}

// poolDeltaRange widens the configured tier percentage bounds by every
// adjustment shift plus a margin, so the candidate query never excludes
// a candidate a derived band could still match.
func poolDeltaRange(tiers appconfig.TierConfig, currentSalary, margin float64) (float64, float64) {
	first := true
	var minPct, maxPct float64
	for _, band := range tiers.Bands {
		if first {
			minPct, maxPct = band.MinPct, band.MaxPct
			first = false
			continue
		}
		if band.MinPct < minPct {
			minPct = band.MinPct
		}
		if band.MaxPct > maxPct {
			maxPct = band.MaxPct
		}
	}

	var lowestShift, highestShift float64
	for _, shifts := range tiers.Adjustments {
		for _, shift := range shifts {
			if shift.MinShiftPct < lowestShift {
				lowestShift = shift.MinShiftPct
			}
			if shift.MaxShiftPct > highestShift {
				highestShift = shift.MaxShiftPct
			}
		}
	}

	return (minPct + lowestShift - margin) * currentSalary, (maxPct + highestShift + margin) * currentSalary
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

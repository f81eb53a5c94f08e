// internal/workers/recommendation/evaluate-thresholds/handler.go
package evaluatethresholds

import (
	"context"
	"encoding/json"
	"time"

	appconfig "riskrec-engine/internal/common/config"
	commonerrors "riskrec-engine/internal/common/errors"
	"riskrec-engine/internal/common/logger"
	"riskrec-engine/internal/common/metrics"
	"riskrec-engine/internal/engine/threshold"
	"riskrec-engine/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "evaluate-thresholds"

// OutcomeLister reads observed experiment outcomes from the store.
type OutcomeLister interface {
	ListByExperiment(ctx context.Context, experimentID string, since time.Time) ([]models.OutcomeEvent, error)
}

type Handler struct {
	config   *Config
	store    *appconfig.Store
	outcomes OutcomeLister
	errors   *commonerrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(cfg *Config, store *appconfig.Store, outcomes OutcomeLister, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   cfg,
		store:    store,
		outcomes: outcomes,
		errors:   commonerrors.NewErrorHandler(scoped),
		logger:   scoped,
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
	engineCfg := h.store.Engine()

	experiments := engineCfg.Experiments
	if len(input.ExperimentIDs) > 0 {
		experiments = make([]appconfig.ExperimentConfig, 0, len(input.ExperimentIDs))
		for _, id := range input.ExperimentIDs {
			exp, ok := engineCfg.ExperimentByID(id)
			if !ok {
				return nil, commonerrors.NewExperimentNotFoundError(id)
			}
			experiments = append(experiments, exp)
		}
	}

	windowDays := input.WindowDays
	if windowDays <= 0 {
		windowDays = engineCfg.Evaluator.FollowUpWindowDays
	}
	since := time.Now().UTC().AddDate(0, 0, -windowDays)

	recommendations := make([]*threshold.Recommendation, 0, len(experiments))
	for _, exp := range experiments {
		events, err := h.outcomes.ListByExperiment(ctx, exp.ID, since)
		if err != nil {
			return nil, err
		}

		rec := threshold.Evaluate(events, exp, engineCfg.Evaluator)
		metrics.ThresholdEvaluations.WithLabelValues(exp.ID, rec.Status).Inc()
		h.logger.Info("experiment evaluated", map[string]interface{}{
			"experimentId": exp.ID,
			"status":       rec.Status,
			"sampleSize":   rec.SampleSize,
		})
		recommendations = append(recommendations, rec)
	}

	return &Output{
		EvaluatedAt:     time.Now().UTC(),
		Recommendations: recommendations,
	}, nil
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

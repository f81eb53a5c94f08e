// internal/engine/threshold/evaluator_test.go
package threshold

import (
	"testing"
	"time"

	"riskrec-engine/internal/common/config"
	"riskrec-engine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEvaluatorConfig() config.EvaluatorConfig {
	return config.EvaluatorConfig{
		MinSampleSize: 200,
		ConfidenceZ:   1.96,
	}
}

func testExperiment() config.ExperimentConfig {
	return config.ExperimentConfig{
		ID: "exp-high-boundary",
		Variants: []config.Variant{
			{ID: "control", Weight: 50, Control: true, Threshold: 0.6},
			{ID: "lowered", Weight: 50, Threshold: 0.55},
		},
	}
}

// outcomes fabricates n events for a variant with the given number of
// successes.
func outcomes(experimentID, variantID string, n, successes int) []models.OutcomeEvent {
	events := make([]models.OutcomeEvent, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, models.OutcomeEvent{
			UserID:          "user",
			ExperimentID:    experimentID,
			VariantID:       variantID,
			OutcomeAchieved: i < successes,
			Timestamp:       time.Now(),
		})
	}
	return events
}

func TestEvaluate_ClearWinnerApplies(t *testing.T) {
	exp := testExperiment()
	events := append(
		outcomes(exp.ID, "control", 500, 250), // 50%
		outcomes(exp.ID, "lowered", 500, 400)..., // 80%
	)

	rec := Evaluate(events, exp, testEvaluatorConfig())
	assert.Equal(t, StatusApply, rec.Status)
	assert.Equal(t, "lowered", rec.RecommendedVariantID)
	assert.Equal(t, 0.55, rec.RecommendedThreshold)
	assert.Equal(t, 1000, rec.SampleSize)
	assert.Greater(t, rec.Confidence, 0.7)
}

func TestEvaluate_SmallSampleDeclines(t *testing.T) {
	exp := testExperiment()
	events := append(
		outcomes(exp.ID, "control", 50, 10),
		outcomes(exp.ID, "lowered", 50, 45)...,
	)

	rec := Evaluate(events, exp, testEvaluatorConfig())
	assert.Equal(t, StatusInsufficientData, rec.Status)
	assert.Empty(t, rec.RecommendedVariantID)
	assert.Contains(t, rec.Reason, "sample size below minimum")
}

func TestEvaluate_OverlappingIntervalsDecline(t *testing.T) {
	exp := testExperiment()
	events := append(
		outcomes(exp.ID, "control", 500, 250), // 50%
		outcomes(exp.ID, "lowered", 500, 260)..., // 52%: inside the noise
	)

	rec := Evaluate(events, exp, testEvaluatorConfig())
	assert.Equal(t, StatusInsufficientData, rec.Status)
	assert.Contains(t, rec.Reason, "overlap")
}

func TestEvaluate_ControlAlreadyBest(t *testing.T) {
	exp := testExperiment()
	events := append(
		outcomes(exp.ID, "control", 500, 400),
		outcomes(exp.ID, "lowered", 500, 100)...,
	)

	rec := Evaluate(events, exp, testEvaluatorConfig())
	assert.Equal(t, StatusInsufficientData, rec.Status)
	assert.Contains(t, rec.Reason, "control variant already performs best")
}

func TestEvaluate_SingleObservedVariant(t *testing.T) {
	exp := testExperiment()
	events := outcomes(exp.ID, "lowered", 300, 200)

	rec := Evaluate(events, exp, testEvaluatorConfig())
	assert.Equal(t, StatusInsufficientData, rec.Status)
	assert.Contains(t, rec.Reason, "fewer than two variants")
}

func TestEvaluate_IgnoresForeignEvents(t *testing.T) {
	exp := testExperiment()
	events := append(
		outcomes(exp.ID, "control", 500, 250),
		outcomes(exp.ID, "lowered", 500, 400)...,
	)
	events = append(events, outcomes("other-experiment", "control", 100, 100)...)
	events = append(events, outcomes(exp.ID, "retired-variant", 100, 100)...)

	rec := Evaluate(events, exp, testEvaluatorConfig())
	require.Equal(t, StatusApply, rec.Status)
	assert.Equal(t, 1000, rec.SampleSize)
}

func TestEvaluate_NoEvents(t *testing.T) {
	rec := Evaluate(nil, testExperiment(), testEvaluatorConfig())
	assert.Equal(t, StatusInsufficientData, rec.Status)
	assert.Zero(t, rec.SampleSize)
}

func TestWilsonInterval(t *testing.T) {
	// 80% of 500 at z=1.96: roughly [0.763, 0.833]
	low, high := wilsonInterval(400, 500, 1.96)
	assert.InDelta(t, 0.763, low, 0.005)
	assert.InDelta(t, 0.833, high, 0.005)

	low, high = wilsonInterval(0, 0, 1.96)
	assert.Zero(t, low)
	assert.Zero(t, high)

	low, high = wilsonInterval(10, 10, 1.96)
	assert.Greater(t, low, 0.6)
	assert.LessOrEqual(t, high, 1.0)
}

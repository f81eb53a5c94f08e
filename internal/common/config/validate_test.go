// internal/common/config/validate_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEngine_DefaultsAreValid(t *testing.T) {
	engine := DefaultEngine()
	assert.NoError(t, ValidateEngine(&engine))
}

func TestValidateEngine_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EngineConfig)
	}{
		{"notable share zero", func(e *EngineConfig) { e.Scoring.NotableShare = 0 }},
		{"notable share above one", func(e *EngineConfig) { e.Scoring.NotableShare = 1.5 }},
		{"no assessments", func(e *EngineConfig) { e.Scoring.Assessments = nil }},
		{"category min above max", func(e *EngineConfig) {
			table := e.Scoring.Assessments[AssessmentAIRisk]
			table.Categories[0].Min = 50
			e.Scoring.Assessments[AssessmentAIRisk] = table
		}},
		{"unknown category mode", func(e *EngineConfig) {
			table := e.Scoring.Assessments[AssessmentAIRisk]
			table.Categories[0].Mode = "multiply"
			e.Scoring.Assessments[AssessmentAIRisk] = table
		}},
		{"bonus with positive max", func(e *EngineConfig) {
			table := e.Scoring.Assessments[AssessmentAIRisk]
			table.Categories[3].Max = 10
			e.Scoring.Assessments[AssessmentAIRisk] = table
		}},
		{"experiment without id", func(e *EngineConfig) {
			e.Experiments = []ExperimentConfig{{Variants: []Variant{{ID: "a", Weight: 100}}}}
		}},
		{"experiment without variants", func(e *EngineConfig) {
			e.Experiments = []ExperimentConfig{{ID: "exp"}}
		}},
		{"variant with negative weight", func(e *EngineConfig) {
			e.Experiments = []ExperimentConfig{{ID: "exp", Variants: []Variant{{ID: "a", Weight: -1}}}}
		}},
		{"missing tier band", func(e *EngineConfig) { delete(e.Tiers.Bands, TierStretch) }},
		{"inverted tier band", func(e *EngineConfig) {
			e.Tiers.Bands[TierOptimal] = TierBand{MinPct: 0.4, MaxPct: 0.2}
		}},
		{"zero matcher weights", func(e *EngineConfig) {
			e.Matcher.SalaryWeight = 0
			e.Matcher.SkillsWeight = 0
			e.Matcher.LocationWeight = 0
		}},
		{"penalty above one", func(e *EngineConfig) { e.Matcher.OutOfBandPenalty = 2 }},
		{"zero max per tier", func(e *EngineConfig) { e.Matcher.MaxPerTier = 0 }},
		{"zero min sample size", func(e *EngineConfig) { e.Evaluator.MinSampleSize = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := DefaultEngine()
			tt.mutate(&engine)
			assert.Error(t, ValidateEngine(&engine))
		})
	}
}

func TestValidateRiskBands(t *testing.T) {
	assert.NoError(t, ValidateRiskBands(DefaultRiskBands()))

	tests := []struct {
		name  string
		bands []RiskBand
	}{
		{"empty", nil},
		{"not starting at zero", []RiskBand{
			{Level: LevelLow, Low: 0.1, High: 1.0},
		}},
		{"gap between bands", []RiskBand{
			{Level: LevelLow, Low: 0, High: 0.4},
			{Level: LevelHigh, Low: 0.5, High: 1.0},
		}},
		{"overlapping bands", []RiskBand{
			{Level: LevelLow, Low: 0, High: 0.5},
			{Level: LevelHigh, Low: 0.4, High: 1.0},
		}},
		{"not ending at one", []RiskBand{
			{Level: LevelLow, Low: 0, High: 0.9},
		}},
		{"inverted band", []RiskBand{
			{Level: LevelLow, Low: 0, High: 0},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateRiskBands(tt.bands))
		})
	}
}

func TestStore_SwapRejectsInvalid(t *testing.T) {
	engine := DefaultEngine()
	store := NewStore(&Config{Engine: engine})

	bad := &Config{Engine: DefaultEngine()}
	bad.Engine.RiskBands = nil
	require.Error(t, store.Swap(bad))

	// The old snapshot stays active.
	assert.NotEmpty(t, store.Engine().RiskBands)

	good := &Config{Engine: DefaultEngine()}
	good.Engine.Scoring.NotableShare = 0.2
	require.NoError(t, store.Swap(good))
	assert.Equal(t, 0.2, store.Engine().Scoring.NotableShare)
}

func TestCategory_MaxContribution(t *testing.T) {
	assert.Equal(t, 30.0, Category{Min: 0, Max: 30, Mode: ModeAdd}.MaxContribution())
	assert.Equal(t, 20.0, Category{Min: 0, Max: 20, Mode: ModeInvert}.MaxContribution())
	assert.Equal(t, 0.0, Category{Min: -20, Max: 0, Mode: ModeBonus}.MaxContribution())
}

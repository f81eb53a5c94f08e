// internal/engine/risk/scorer_test.go
package risk

import (
	"strings"
	"testing"

	"riskrec-engine/internal/common/config"
	commonerrors "riskrec-engine/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		NotableShare: 0.15,
		Assessments:  config.DefaultAssessments(),
	}
}

func layoffProfile() Profile {
	return Profile{
		AssessmentType:      config.AssessmentLayoffRisk,
		CompanySizeRisk:     20,
		TenureRisk:          15,
		PerformanceRisk:     10,
		CompanyHealthRisk:   20,
		RecentLayoffRisk:    25,
		SkillsRelevanceRisk: 15,
	}
}

func TestScore_LayoffProfile(t *testing.T) {
	result, err := Score(layoffProfile(), testScoringConfig())
	require.NoError(t, err)

	// 20+15+10+20+25+15 = 105 out of 155
	assert.InDelta(t, 0.6774, result.OverallScore, 1e-9)
	assert.Equal(t, 25.0, result.CategoryBreakdown["recent_layoff_risk"])
	assert.Len(t, result.CategoryBreakdown, 6)
}

func TestScore_NotableTriggers(t *testing.T) {
	result, err := Score(layoffProfile(), testScoringConfig())
	require.NoError(t, err)

	// Only contributions above 15% of the total are notable.
	assert.Contains(t, result.Triggers, "Recent layoffs at employer")
	assert.Contains(t, result.Triggers, "Company size exposure")
	assert.Contains(t, result.Triggers, "Weak company health")
	assert.NotContains(t, result.Triggers, "Short tenure")
	assert.NotContains(t, result.Triggers, "Performance concerns")
}

func TestScore_AIRisk(t *testing.T) {
	tests := []struct {
		name     string
		profile  Profile
		expected float64
	}{
		{
			name: "maximum attainable",
			profile: Profile{
				AssessmentType:  config.AssessmentAIRisk,
				IndustryRisk:    30,
				AutomationLevel: 45,
				AIToolUsage:     0, // inverted: no tool adoption is maximum exposure
			},
			expected: 1.0,
		},
		{
			name: "moderate with full bonus",
			profile: Profile{
				AssessmentType:         config.AssessmentAIRisk,
				IndustryRisk:           15,
				AutomationLevel:        20,
				AIToolUsage:            10,
				AIResistantSkillsBonus: -20,
			},
			// 15 + 20 + (20-10) - 20 = 25 out of 95
			expected: 0.2632,
		},
		{
			name: "bonus pulls sum below zero, score floors at 0",
			profile: Profile{
				AssessmentType:         config.AssessmentAIRisk,
				AIToolUsage:            20,
				AIResistantSkillsBonus: -20,
			},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Score(tt.profile, testScoringConfig())
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, result.OverallScore, 1e-9)
		})
	}
}

func TestScore_ClampsOutOfRangeInputs(t *testing.T) {
	profile := layoffProfile()
	profile.CompanySizeRisk = 90 // max is 30
	profile.TenureRisk = -5      // min is 0

	result, err := Score(profile, testScoringConfig())
	require.NoError(t, err)

	assert.Equal(t, 30.0, result.CategoryBreakdown["company_size_risk"])
	assert.Equal(t, 0.0, result.CategoryBreakdown["tenure_risk"])

	clampTriggers := 0
	for _, trig := range result.Triggers {
		if strings.Contains(trig, "clamped") {
			clampTriggers++
		}
	}
	assert.Equal(t, 2, clampTriggers)
}

func TestScore_UnknownAssessmentType(t *testing.T) {
	_, err := Score(Profile{AssessmentType: "crystal_ball"}, testScoringConfig())
	require.Error(t, err)

	stdErr, ok := err.(*commonerrors.StandardError)
	require.True(t, ok)
	assert.Equal(t, commonerrors.ErrCodeUnknownAssessmentType, stdErr.Code)
}

func TestScore_Deterministic(t *testing.T) {
	cfg := testScoringConfig()
	first, err := Score(layoffProfile(), cfg)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Score(layoffProfile(), cfg)
		require.NoError(t, err)
		assert.Equal(t, first.OverallScore, again.OverallScore)
		assert.Equal(t, first.CategoryBreakdown, again.CategoryBreakdown)
		assert.Equal(t, first.Triggers, again.Triggers)
	}
}

func TestScore_BoundsHold(t *testing.T) {
	extremes := []Profile{
		{AssessmentType: config.AssessmentLayoffRisk},
		{
			AssessmentType:      config.AssessmentLayoffRisk,
			CompanySizeRisk:     1000,
			TenureRisk:          1000,
			PerformanceRisk:     1000,
			CompanyHealthRisk:   1000,
			RecentLayoffRisk:    1000,
			SkillsRelevanceRisk: 1000,
		},
		{AssessmentType: config.AssessmentAIRisk, AIResistantSkillsBonus: -1000},
		{AssessmentType: config.AssessmentIncomeRisk, IndustryRisk: 500},
	}

	for _, profile := range extremes {
		result, err := Score(profile, testScoringConfig())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.OverallScore, 0.0)
		assert.LessOrEqual(t, result.OverallScore, 1.0)
		assert.NotNil(t, result.Triggers)
	}
}

// internal/engine/risk/classifier_test.go
package risk

import (
	"testing"

	"riskrec-engine/internal/common/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Boundaries(t *testing.T) {
	bands := config.DefaultRiskBands()

	tests := []struct {
		score    float64
		expected Level
	}{
		{0.0, LevelLow},
		{0.3999, LevelLow},
		{0.4, LevelMedium}, // boundary belongs to the upper band
		{0.5999, LevelMedium},
		{0.6, LevelHigh},
		{0.6774, LevelHigh},
		{0.7999, LevelHigh},
		{0.8, LevelCritical},
		{1.0, LevelCritical}, // final band is closed
	}

	for _, tt := range tests {
		level, err := Classify(tt.score, bands)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, level, "score %v", tt.score)
	}
}

func TestClassify_ClampsOutOfRangeScores(t *testing.T) {
	bands := config.DefaultRiskBands()

	level, err := Classify(-0.5, bands)
	require.NoError(t, err)
	assert.Equal(t, LevelLow, level)

	level, err = Classify(1.5, bands)
	require.NoError(t, err)
	assert.Equal(t, LevelCritical, level)
}

func TestClassify_UnsortedBands(t *testing.T) {
	bands := []config.RiskBand{
		{Level: config.LevelCritical, Low: 0.8, High: 1.0},
		{Level: config.LevelLow, Low: 0.0, High: 0.4},
		{Level: config.LevelHigh, Low: 0.6, High: 0.8},
		{Level: config.LevelMedium, Low: 0.4, High: 0.6},
	}

	level, err := Classify(0.5, bands)
	require.NoError(t, err)
	assert.Equal(t, LevelMedium, level)
}

func TestClassify_NoBands(t *testing.T) {
	_, err := Classify(0.5, nil)
	assert.Error(t, err)
}

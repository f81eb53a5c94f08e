// internal/engine/tier/tier_test.go
package tier

import (
	"testing"

	"riskrec-engine/internal/common/config"
	commonerrors "riskrec-engine/internal/common/errors"
	"riskrec-engine/internal/engine/risk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTierConfig() config.TierConfig {
	return config.TierConfig{
		Bands:       config.DefaultTierBands(),
		Adjustments: config.DefaultTierAdjustments(),
	}
}

func TestDeriveBands_LowRiskBaseBands(t *testing.T) {
	bands, err := DeriveBands(70000, risk.LevelLow, config.Variant{}, testTierConfig())
	require.NoError(t, err)

	conservative := bands[0]
	assert.Equal(t, config.TierConservative, conservative.Name)
	assert.InDelta(t, 73500, conservative.MinSalary, 1e-6) // 70000 * 1.05
	assert.InDelta(t, 80500, conservative.MaxSalary, 1e-6) // 70000 * 1.15

	optimal := bands[1]
	assert.InDelta(t, 80500, optimal.MinSalary, 1e-6)
	assert.InDelta(t, 91000, optimal.MaxSalary, 1e-6)

	stretch := bands[2]
	assert.InDelta(t, 91000, stretch.MinSalary, 1e-6)
	assert.InDelta(t, 105000, stretch.MaxSalary, 1e-6)
}

func TestDeriveBands_LowRiskNarrowingConfigurable(t *testing.T) {
	cfg := testTierConfig()
	cfg.Adjustments = map[string]map[string]config.TierShift{
		config.LevelLow: {
			config.TierConservative: {MinShiftPct: 0.03},
		},
	}

	bands, err := DeriveBands(100000, risk.LevelLow, config.Variant{}, cfg)
	require.NoError(t, err)

	// narrowed conservative: 0.05 + 0.03 = 0.08
	assert.InDelta(t, 108000, bands[0].MinSalary, 1e-6)
	assert.InDelta(t, 115000, bands[0].MaxSalary, 1e-6)

	// Other tiers keep the base bands.
	assert.InDelta(t, 115000, bands[1].MinSalary, 1e-6)
	assert.InDelta(t, 130000, bands[2].MinSalary, 1e-6)
}

func TestDeriveBands_CriticalWidensDownward(t *testing.T) {
	cfg := testTierConfig()

	low, err := DeriveBands(100000, risk.LevelLow, config.Variant{}, cfg)
	require.NoError(t, err)
	critical, err := DeriveBands(100000, risk.LevelCritical, config.Variant{}, cfg)
	require.NoError(t, err)

	for i := range Names {
		assert.Less(t, critical[i].MinSalary, low[i].MinSalary, "tier %s", Names[i])
		assert.Equal(t, critical[i].MaxSalary, low[i].MaxSalary, "tier %s", Names[i])
	}

	// critical conservative: 0.05 - 0.05 = 0.00
	assert.InDelta(t, 100000, critical[0].MinSalary, 1e-6)
}

func TestDeriveBands_HighShift(t *testing.T) {
	bands, err := DeriveBands(100000, risk.LevelHigh, config.Variant{}, testTierConfig())
	require.NoError(t, err)

	// high conservative: 0.05 - 0.03 = 0.02
	assert.InDelta(t, 102000, bands[0].MinSalary, 1e-6)
	assert.InDelta(t, 115000, bands[0].MaxSalary, 1e-6)
}

func TestDeriveBands_VariantOverride(t *testing.T) {
	variant := config.Variant{
		ID: "wider-stretch",
		TierBands: map[string]config.TierBand{
			config.TierStretch: {MinPct: 0.25, MaxPct: 0.60, RiskTolerance: 0.9},
		},
	}

	bands, err := DeriveBands(100000, risk.LevelLow, variant, testTierConfig())
	require.NoError(t, err)

	assert.InDelta(t, 125000, bands[2].MinSalary, 1e-6)
	assert.InDelta(t, 160000, bands[2].MaxSalary, 1e-6)
	assert.Equal(t, 0.9, bands[2].RiskTolerance)

	// Untouched tiers keep the base bands.
	assert.InDelta(t, 105000, bands[0].MinSalary, 1e-6)
}

func TestDeriveBands_ShiftNeverInvertsBand(t *testing.T) {
	cfg := config.TierConfig{
		Bands: map[string]config.TierBand{
			config.TierConservative: {MinPct: 0.05, MaxPct: 0.10},
			config.TierOptimal:      {MinPct: 0.10, MaxPct: 0.20},
			config.TierStretch:      {MinPct: 0.20, MaxPct: 0.30},
		},
		Adjustments: map[string]map[string]config.TierShift{
			config.LevelCritical: {
				config.TierConservative: {MinShiftPct: 0.50},
			},
		},
	}

	bands, err := DeriveBands(100000, risk.LevelCritical, config.Variant{}, cfg)
	require.NoError(t, err)
	assert.LessOrEqual(t, bands[0].MinPct, bands[0].MaxPct)
	assert.LessOrEqual(t, bands[0].MinSalary, bands[0].MaxSalary)
}

func TestDeriveBands_InvalidSalary(t *testing.T) {
	for _, salary := range []float64{0, -50000} {
		_, err := DeriveBands(salary, risk.LevelLow, config.Variant{}, testTierConfig())
		require.Error(t, err)
		stdErr, ok := err.(*commonerrors.StandardError)
		require.True(t, ok)
		assert.Equal(t, commonerrors.ErrCodeInvalidSalary, stdErr.Code)
	}
}

func TestBand_Midpoint(t *testing.T) {
	b := Band{MinSalary: 100000, MaxSalary: 120000}
	assert.Equal(t, 110000.0, b.Midpoint())
}

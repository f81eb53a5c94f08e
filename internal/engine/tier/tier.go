// internal/engine/tier/tier.go
package tier

import (
	"riskrec-engine/internal/common/config"
	commonerrors "riskrec-engine/internal/common/errors"
	"riskrec-engine/internal/engine/risk"
)

// Band names in derivation order: conservative, optimal, stretch.
var Names = [3]string{config.TierConservative, config.TierOptimal, config.TierStretch}

// Band is one derived salary-increase target band with its absolute
// salary bounds resolved against the user's current salary.
type Band struct {
	Name          string  `json:"name"`
	MinPct        float64 `json:"minSalaryIncreasePct"`
	MaxPct        float64 `json:"maxSalaryIncreasePct"`
	RiskTolerance float64 `json:"riskTolerance"`
	MinSalary     float64 `json:"minSalary"`
	MaxSalary     float64 `json:"maxSalary"`
}

// Midpoint returns the center of the absolute salary band.
func (b Band) Midpoint() float64 {
	return (b.MinSalary + b.MaxSalary) / 2
}

// DeriveBands computes the three target bands for a user. Base
// percentage bands come from the variant when it overrides them,
// otherwise from the tier configuration; the risk level then applies
// the configured shift (Critical widens bands downward to surface more
// opportunities sooner). All adjustment factors live in configuration.
//
// currentSalary <= 0 is a fatal input error: salary-relative bands are
// undefined otherwise.
func DeriveBands(currentSalary float64, level risk.Level, variant config.Variant, cfg config.TierConfig) ([3]Band, error) {
	var out [3]Band

	if currentSalary <= 0 {
		return out, commonerrors.NewInvalidSalaryError(currentSalary)
	}

	shifts := cfg.Adjustments[string(level)]

	for i, name := range Names {
		base, ok := cfg.Bands[name]
		if !ok {
			return out, commonerrors.NewConfigurationError("tier band missing: " + name)
		}
		if variant.TierBands != nil {
			if override, ok := variant.TierBands[name]; ok {
				base = override
			}
		}

		minPct := base.MinPct
		maxPct := base.MaxPct
		if shift, ok := shifts[name]; ok {
			minPct += shift.MinShiftPct
			maxPct += shift.MaxShiftPct
		}
		// Shifts must not invert the band.
		if minPct > maxPct {
			minPct = maxPct
		}

		out[i] = Band{
			Name:          name,
			MinPct:        minPct,
			MaxPct:        maxPct,
			RiskTolerance: base.RiskTolerance,
			MinSalary:     currentSalary * (1 + minPct),
			MaxSalary:     currentSalary * (1 + maxPct),
		}
	}

	return out, nil
}

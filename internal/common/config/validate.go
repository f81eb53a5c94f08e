// internal/common/config/validate.go
package config

import (
	"fmt"
	"sort"

	commonerrors "riskrec-engine/internal/common/errors"
)

// validateConfig rejects malformed configuration at load time. The
// process must refuse to serve rather than silently use defaults.
func validateConfig(cfg *Config) error {
	if err := ValidateEngine(&cfg.Engine); err != nil {
		return err
	}
	return nil
}

// ValidateEngine checks every engine table the scoring/matching core reads.
func ValidateEngine(e *EngineConfig) error {
	if e.Scoring.NotableShare <= 0 || e.Scoring.NotableShare > 1 {
		return commonerrors.NewConfigurationError(
			fmt.Sprintf("scoring.notable_share must be in (0,1], got %v", e.Scoring.NotableShare))
	}

	if len(e.Scoring.Assessments) == 0 {
		return commonerrors.NewConfigurationError("scoring.assessments is empty")
	}
	for name, table := range e.Scoring.Assessments {
		if len(table.Categories) == 0 {
			return commonerrors.NewConfigurationError(
				fmt.Sprintf("assessment %q has no categories", name))
		}
		maxSum := 0.0
		for _, cat := range table.Categories {
			if cat.Name == "" {
				return commonerrors.NewConfigurationError(
					fmt.Sprintf("assessment %q has a category without a name", name))
			}
			if cat.Min > cat.Max {
				return commonerrors.NewConfigurationError(
					fmt.Sprintf("category %q: min %v > max %v", cat.Name, cat.Min, cat.Max))
			}
			switch cat.Mode {
			case ModeAdd, ModeInvert:
				if cat.Min < 0 {
					return commonerrors.NewConfigurationError(
						fmt.Sprintf("category %q: %s mode requires min >= 0", cat.Name, cat.Mode))
				}
			case ModeBonus:
				if cat.Max > 0 {
					return commonerrors.NewConfigurationError(
						fmt.Sprintf("category %q: bonus mode requires max <= 0", cat.Name))
				}
			default:
				return commonerrors.NewConfigurationError(
					fmt.Sprintf("category %q: unknown mode %q", cat.Name, cat.Mode))
			}
			maxSum += cat.MaxContribution()
		}
		if maxSum <= 0 {
			return commonerrors.NewConfigurationError(
				fmt.Sprintf("assessment %q: maximum attainable sum must be positive", name))
		}
	}

	if err := ValidateRiskBands(e.RiskBands); err != nil {
		return err
	}

	for _, exp := range e.Experiments {
		if exp.ID == "" {
			return commonerrors.NewConfigurationError("experiment without an id")
		}
		if len(exp.Variants) == 0 {
			return commonerrors.NewConfigurationError(
				fmt.Sprintf("experiment %q has no variants", exp.ID))
		}
		for _, v := range exp.Variants {
			if v.ID == "" {
				return commonerrors.NewConfigurationError(
					fmt.Sprintf("experiment %q has a variant without an id", exp.ID))
			}
			if v.Weight < 0 {
				return commonerrors.NewConfigurationError(
					fmt.Sprintf("experiment %q variant %q: negative weight", exp.ID, v.ID))
			}
			if len(v.RiskBands) > 0 {
				if err := ValidateRiskBands(v.RiskBands); err != nil {
					return err
				}
			}
			if err := validateTierBands(v.TierBands); err != nil {
				return err
			}
		}
	}

	if len(e.Tiers.Bands) == 0 {
		return commonerrors.NewConfigurationError("tiers.bands is empty")
	}
	for _, name := range []string{TierConservative, TierOptimal, TierStretch} {
		if _, ok := e.Tiers.Bands[name]; !ok {
			return commonerrors.NewConfigurationError(
				fmt.Sprintf("tiers.bands missing %q", name))
		}
	}
	if err := validateTierBands(e.Tiers.Bands); err != nil {
		return err
	}

	total := e.Matcher.SalaryWeight + e.Matcher.SkillsWeight + e.Matcher.LocationWeight
	if total <= 0 {
		return commonerrors.NewConfigurationError("matcher weights must sum to a positive value")
	}
	if e.Matcher.OutOfBandPenalty < 0 || e.Matcher.OutOfBandPenalty > 1 {
		return commonerrors.NewConfigurationError("matcher.out_of_band_penalty must be in [0,1]")
	}
	if e.Matcher.MaxPerTier <= 0 {
		return commonerrors.NewConfigurationError("matcher.max_per_tier must be positive")
	}

	if e.Evaluator.MinSampleSize <= 0 {
		return commonerrors.NewConfigurationError("evaluator.min_sample_size must be positive")
	}
	if e.Evaluator.ConfidenceZ <= 0 {
		return commonerrors.NewConfigurationError("evaluator.confidence_z must be positive")
	}

	return nil
}

// ValidateRiskBands requires total coverage of [0,1]: sorted, contiguous,
// starting at 0 and ending at 1, so every score classifies to exactly one level.
func ValidateRiskBands(bands []RiskBand) error {
	if len(bands) == 0 {
		return commonerrors.NewConfigurationError("risk_bands is empty")
	}

	sorted := make([]RiskBand, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Low < sorted[j].Low })

	if sorted[0].Low != 0 {
		return commonerrors.NewConfigurationError(
			fmt.Sprintf("risk bands must start at 0, got %v", sorted[0].Low))
	}
	for i, b := range sorted {
		if b.Level == "" {
			return commonerrors.NewConfigurationError("risk band without a level")
		}
		if b.Low >= b.High {
			return commonerrors.NewConfigurationError(
				fmt.Sprintf("risk band %q: low %v >= high %v", b.Level, b.Low, b.High))
		}
		if i > 0 && sorted[i-1].High != b.Low {
			return commonerrors.NewConfigurationError(
				fmt.Sprintf("risk bands have a gap or overlap between %q and %q", sorted[i-1].Level, b.Level))
		}
	}
	if last := sorted[len(sorted)-1]; last.High != 1.0 {
		return commonerrors.NewConfigurationError(
			fmt.Sprintf("risk bands must end at 1.0, got %v", last.High))
	}
	return nil
}

// validateTierBands only requires min <= max per band. Bands may overlap
// across tiers by design to allow fallback.
func validateTierBands(bands map[string]TierBand) error {
	for name, b := range bands {
		if b.MinPct > b.MaxPct {
			return commonerrors.NewConfigurationError(
				fmt.Sprintf("tier band %q: min_pct %v > max_pct %v", name, b.MinPct, b.MaxPct))
		}
	}
	return nil
}

// internal/engine/risk/scorer.go
package risk

import (
	"fmt"
	"math"

	"riskrec-engine/internal/common/config"
	commonerrors "riskrec-engine/internal/common/errors"
)

// Score converts a risk-input profile into a normalized [0,1] score
// with a per-category breakdown and human-readable triggers.
//
// Pure, no I/O. Out-of-range inputs are clamped to their documented
// range rather than rejected; each clamp leaves a trigger entry. The
// sum is normalized against the assessment type's own maximum
// attainable total, because the three assessment types score over
// different category sets with different point scales. The result is
// rounded to 4 decimal places for determinism across platforms.
func Score(profile Profile, cfg config.ScoringConfig) (*Result, error) {
	table, ok := cfg.Assessments[profile.AssessmentType]
	if !ok {
		return nil, commonerrors.NewUnknownAssessmentTypeError(profile.AssessmentType)
	}

	breakdown := make(map[string]float64, len(table.Categories))
	var triggers []string
	sum := 0.0
	maxSum := 0.0

	for _, cat := range table.Categories {
		raw, ok := profile.CategoryValue(cat.Name)
		if !ok {
			return nil, commonerrors.NewConfigurationError(
				fmt.Sprintf("category %q has no profile field", cat.Name))
		}

		clamped := clamp(raw, cat.Min, cat.Max)
		if clamped != raw {
			triggers = append(triggers, fmt.Sprintf(
				"%s: value %.2f outside [%.0f, %.0f], clamped to %.2f",
				cat.Label, raw, cat.Min, cat.Max, clamped))
		}

		contribution := clamped
		if cat.Mode == config.ModeInvert {
			contribution = cat.Max - clamped
		}

		breakdown[cat.Name] = contribution
		sum += contribution
		maxSum += cat.MaxContribution()
	}

	// The bonus category can pull the sum below zero; the score floor
	// stays at 0 so the invariant overallScore in [0,1] always holds.
	score := round4(clamp(sum/maxSum, 0, 1))

	// Notable categories: any positive contribution above the
	// configured share of the total earns a trigger.
	if sum > 0 {
		for _, cat := range table.Categories {
			contribution := breakdown[cat.Name]
			if contribution > 0 && contribution/sum > cfg.NotableShare {
				triggers = append(triggers, cat.Label)
			}
		}
	}

	if triggers == nil {
		triggers = []string{}
	}

	return &Result{
		OverallScore:      score,
		CategoryBreakdown: breakdown,
		Triggers:          triggers,
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

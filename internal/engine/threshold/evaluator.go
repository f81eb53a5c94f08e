// internal/engine/threshold/evaluator.go
package threshold

import (
	"fmt"
	"math"
	"sort"

	"riskrec-engine/internal/common/config"
	"riskrec-engine/internal/models"
)

const (
	// StatusApply means the evidence supports shifting the threshold
	// toward the recommended variant.
	StatusApply = "apply"
	// StatusInsufficientData means no change should be made; the sample
	// is too small or the variants are statistically indistinguishable.
	StatusInsufficientData = "insufficient_data"
)

// Recommendation is the evaluator's output. It is advisory only: a
// human or a separate deployment step applies it, the evaluator never
// mutates experiment configuration.
type Recommendation struct {
	ExperimentID         string  `json:"experimentId"`
	Status               string  `json:"status"`
	RecommendedVariantID string  `json:"recommendedVariantId,omitempty"`
	RecommendedThreshold float64 `json:"recommendedThreshold,omitempty"`
	Confidence           float64 `json:"confidence"`
	SampleSize           int     `json:"sampleSize"`
	Reason               string  `json:"reason"`
}

// variantStats aggregates outcomes for one variant.
type variantStats struct {
	variant   config.Variant
	n         int
	successes int
	rate      float64
	low, high float64 // Wilson score interval
}

// Evaluate aggregates outcome events for one experiment and decides
// whether the evidence supports moving a threshold. A shift is
// recommended only when the best variant's sample meets the minimum
// size and its Wilson confidence interval does not overlap the control
// variant's; anything weaker yields insufficient_data, guarding against
// threshold churn from noisy small samples.
func Evaluate(events []models.OutcomeEvent, exp config.ExperimentConfig, cfg config.EvaluatorConfig) *Recommendation {
	stats := make(map[string]*variantStats, len(exp.Variants))
	for _, v := range exp.Variants {
		stats[v.ID] = &variantStats{variant: v}
	}

	total := 0
	for _, ev := range events {
		if ev.ExperimentID != exp.ID {
			continue
		}
		s, ok := stats[ev.VariantID]
		if !ok {
			// Events for retired variants don't count against anyone.
			continue
		}
		s.n++
		total++
		if ev.OutcomeAchieved {
			s.successes++
		}
	}

	observed := make([]*variantStats, 0, len(stats))
	for _, v := range exp.Variants {
		s := stats[v.ID]
		if s.n == 0 {
			continue
		}
		s.rate = float64(s.successes) / float64(s.n)
		s.low, s.high = wilsonInterval(s.successes, s.n, cfg.ConfidenceZ)
		observed = append(observed, s)
	}

	if len(observed) < 2 {
		return insufficient(exp.ID, total, "fewer than two variants with observed outcomes")
	}

	sort.Slice(observed, func(i, j int) bool {
		if observed[i].rate != observed[j].rate {
			return observed[i].rate > observed[j].rate
		}
		return observed[i].variant.ID < observed[j].variant.ID
	})
	best := observed[0]

	current := controlStats(observed)
	if current == nil {
		current = observed[len(observed)-1]
	}

	if best.variant.ID == current.variant.ID {
		return insufficient(exp.ID, total, "control variant already performs best")
	}
	if best.n < cfg.MinSampleSize || current.n < cfg.MinSampleSize {
		return insufficient(exp.ID, total, fmt.Sprintf(
			"sample size below minimum %d (best=%d, control=%d)",
			cfg.MinSampleSize, best.n, current.n))
	}
	if best.low <= current.high {
		return insufficient(exp.ID, total, fmt.Sprintf(
			"confidence intervals overlap (best [%.3f, %.3f] vs control [%.3f, %.3f])",
			best.low, best.high, current.low, current.high))
	}

	return &Recommendation{
		ExperimentID:         exp.ID,
		Status:               StatusApply,
		RecommendedVariantID: best.variant.ID,
		RecommendedThreshold: best.variant.Threshold,
		Confidence:           round4(best.low),
		SampleSize:           total,
		Reason: fmt.Sprintf(
			"variant %q success rate %.1f%% (n=%d) beats control %q %.1f%% (n=%d) with non-overlapping intervals",
			best.variant.ID, best.rate*100, best.n,
			current.variant.ID, current.rate*100, current.n),
	}
}

func controlStats(observed []*variantStats) *variantStats {
	for _, s := range observed {
		if s.variant.Control {
			return s
		}
	}
	return nil
}

func insufficient(experimentID string, total int, reason string) *Recommendation {
	return &Recommendation{
		ExperimentID: experimentID,
		Status:       StatusInsufficientData,
		SampleSize:   total,
		Reason:       reason,
	}
}

// wilsonInterval returns the Wilson score interval for successes/n at
// confidence z.
func wilsonInterval(successes, n int, z float64) (low, high float64) {
	if n == 0 {
		return 0, 0
	}

	p := float64(successes) / float64(n)
	nf := float64(n)
	z2 := z * z

	denom := 1 + z2/nf
	center := (p + z2/(2*nf)) / denom
	half := z * math.Sqrt(p*(1-p)/nf+z2/(4*nf*nf)) / denom

	low = center - half
	high = center + half
	if low < 0 {
		low = 0
	}
	if high > 1 {
		high = 1
	}
	return low, high
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// internal/engine/risk/classifier.go
package risk

import (
	"fmt"
	"sort"

	"riskrec-engine/internal/common/config"
	commonerrors "riskrec-engine/internal/common/errors"
)

// Classify maps a score onto its risk level. Bands are half-open
// [low, high) except the final band, which is closed at 1.0 so every
// score in [0,1] classifies. A score exactly on a boundary belongs to
// the upper band. Boundaries come from configuration, possibly
// experiment-varied, never from constants here.
func Classify(score float64, bands []config.RiskBand) (Level, error) {
	if len(bands) == 0 {
		return "", commonerrors.NewConfigurationError("no risk bands configured")
	}

	score = clamp(score, 0, 1)

	sorted := make([]config.RiskBand, len(bands))
	copy(sorted, bands)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Low < sorted[j].Low })

	for i, b := range sorted {
		last := i == len(sorted)-1
		if score >= b.Low && (score < b.High || (last && score <= b.High)) {
			return Level(b.Level), nil
		}
	}

	return "", commonerrors.NewConfigurationError(
		fmt.Sprintf("score %v not covered by configured risk bands", score))
}

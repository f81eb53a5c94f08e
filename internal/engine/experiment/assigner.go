// internal/engine/experiment/assigner.go
package experiment

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"riskrec-engine/internal/common/config"
	commonerrors "riskrec-engine/internal/common/errors"
	"riskrec-engine/internal/common/logger"
)

// bucketCount gives 0.01% allocation granularity.
const bucketCount = 10000

// Assigner resolves deterministic variant assignments. Stateless; the
// only dependency is a logger for weight-misconfiguration warnings.
type Assigner struct {
	logger logger.Logger
}

func NewAssigner(log logger.Logger) *Assigner {
	return &Assigner{logger: log}
}

// Assign returns the variant for (userID, experimentID). The same
// inputs always resolve to the same variant: the bucket is a stable
// 64-bit hash of the user and experiment ids, mapped into a
// cumulative-weight table built from each variant's traffic
// percentage. No randomness at read time, so a user's recommendation
// experience stays stable for the experiment's lifetime.
//
// Weights that do not sum to 100 are normalized proportionally and
// logged; this is a config smell, not a request failure.
func (a *Assigner) Assign(userID, experimentID string, variants []config.Variant) (config.Variant, error) {
	if len(variants) == 0 {
		return config.Variant{}, commonerrors.NewConfigurationError(
			fmt.Sprintf("experiment %q has no variants", experimentID))
	}

	total := 0.0
	for _, v := range variants {
		total += v.Weight
	}
	if total <= 0 {
		return config.Variant{}, commonerrors.NewConfigurationError(
			fmt.Sprintf("experiment %q variant weights sum to %v", experimentID, total))
	}
	if total != 100 {
		a.logger.Warn("variant weights do not sum to 100, normalizing", map[string]interface{}{
			"experimentId": experimentID,
			"totalWeight":  total,
		})
	}

	bucket := Bucket(userID, experimentID)

	cumulative := 0.0
	for _, v := range variants {
		cumulative += v.Weight / total * bucketCount
		if float64(bucket) < cumulative {
			return v, nil
		}
	}

	// Floating point residue can leave the last sliver uncovered.
	return variants[len(variants)-1], nil
}

// Bucket computes the stable hash bucket in [0, 10000) for a
// user/experiment pair. xxhash keeps the mapping reproducible across
// runtimes if the engine is ever reimplemented.
func Bucket(userID, experimentID string) uint64 {
	return xxhash.Sum64String(userID+":"+experimentID) % bucketCount
}

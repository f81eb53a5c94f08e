// internal/engine/experiment/assigner_test.go
package experiment

import (
	"fmt"
	"testing"

	"riskrec-engine/internal/common/config"
	"riskrec-engine/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoVariants() []config.Variant {
	return []config.Variant{
		{ID: "control", Weight: 50, Control: true},
		{ID: "aggressive", Weight: 50, Threshold: 0.75},
	}
}

func TestAssign_Deterministic(t *testing.T) {
	assigner := NewAssigner(logger.NewNoOpLogger())
	variants := twoVariants()

	first, err := assigner.Assign("user-42", "exp-risk-bands", variants)
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		again, err := assigner.Assign("user-42", "exp-risk-bands", variants)
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	}
}

func TestAssign_IndependentPerExperiment(t *testing.T) {
	// The bucket depends on both ids, so assignment in one experiment
	// carries no information about another.
	differs := false
	for i := 0; i < 200; i++ {
		user := fmt.Sprintf("user-%d", i)
		if Bucket(user, "exp-a") != Bucket(user, "exp-b") {
			differs = true
			break
		}
	}
	assert.True(t, differs)
}

func TestAssign_DistributionRoughlyMatchesWeights(t *testing.T) {
	assigner := NewAssigner(logger.NewNoOpLogger())
	variants := []config.Variant{
		{ID: "control", Weight: 70, Control: true},
		{ID: "variant-b", Weight: 30},
	}

	counts := map[string]int{}
	const n = 10000
	for i := 0; i < n; i++ {
		v, err := assigner.Assign(fmt.Sprintf("user-%d", i), "exp-dist", variants)
		require.NoError(t, err)
		counts[v.ID]++
	}

	controlShare := float64(counts["control"]) / n
	assert.InDelta(t, 0.70, controlShare, 0.03)
	assert.InDelta(t, 0.30, float64(counts["variant-b"])/n, 0.03)
}

func TestAssign_NormalizesOffWeights(t *testing.T) {
	assigner := NewAssigner(logger.NewTestLogger(t))
	variants := []config.Variant{
		{ID: "a", Weight: 20},
		{ID: "b", Weight: 20},
	}

	counts := map[string]int{}
	const n = 5000
	for i := 0; i < n; i++ {
		v, err := assigner.Assign(fmt.Sprintf("user-%d", i), "exp-norm", variants)
		require.NoError(t, err)
		counts[v.ID]++
	}

	// 20/20 normalizes to a 50/50 split.
	assert.InDelta(t, 0.5, float64(counts["a"])/n, 0.04)
	assert.InDelta(t, 0.5, float64(counts["b"])/n, 0.04)
}

func TestAssign_ConfigurationErrors(t *testing.T) {
	assigner := NewAssigner(logger.NewNoOpLogger())

	_, err := assigner.Assign("user-1", "exp-empty", nil)
	assert.Error(t, err)

	_, err = assigner.Assign("user-1", "exp-zero", []config.Variant{{ID: "a", Weight: 0}})
	assert.Error(t, err)
}

func TestBucket_Range(t *testing.T) {
	for i := 0; i < 1000; i++ {
		b := Bucket(fmt.Sprintf("user-%d", i), "exp")
		assert.Less(t, b, uint64(bucketCount))
	}
}

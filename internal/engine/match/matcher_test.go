// internal/engine/match/matcher_test.go
package match

import (
	"fmt"
	"testing"

	"riskrec-engine/internal/common/config"
	"riskrec-engine/internal/engine/tier"
	"riskrec-engine/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMatcherConfig() config.MatcherConfig {
	return config.MatcherConfig{
		SalaryWeight:     0.5,
		SkillsWeight:     0.3,
		LocationWeight:   0.2,
		OutOfBandPenalty: 0.1,
		MaxPerTier:       8,
	}
}

func testBand() tier.Band {
	// 100k salary, optimal band 15-30%
	return tier.Band{
		Name:      config.TierOptimal,
		MinPct:    0.15,
		MaxPct:    0.30,
		MinSalary: 115000,
		MaxSalary: 130000,
	}
}

func candidate(id string, delta float64, skills []float64, locationFit float64, remote bool) models.JobCandidate {
	return models.JobCandidate{
		ID:          id,
		Title:       "Role " + id,
		SalaryDelta: delta,
		SkillVector: skills,
		LocationFit: locationFit,
		Remote:      remote,
	}
}

func TestMatch_MidpointBeatsEdge(t *testing.T) {
	profile := models.MatchProfile{SkillVector: []float64{1, 1, 1}}
	pool := []models.JobCandidate{
		candidate("edge", 15000, []float64{1, 1, 1}, 0.8, false),     // band minimum
		candidate("midpoint", 22500, []float64{1, 1, 1}, 0.8, false), // band center
	}

	ranked := Match(pool, testBand(), profile, 100000, testMatcherConfig())
	require.Len(t, ranked, 2)
	assert.Equal(t, "midpoint", ranked[0].Candidate.ID)
	assert.Greater(t, ranked[0].MatchScore, ranked[1].MatchScore)
}

func TestMatch_OutOfBandPenalized(t *testing.T) {
	profile := models.MatchProfile{SkillVector: []float64{1, 1, 1}}
	pool := []models.JobCandidate{
		candidate("in-band", 20000, []float64{1, 1, 1}, 0.9, false),
		candidate("way-out", 80000, []float64{1, 1, 1}, 0.9, false),
	}

	ranked := Match(pool, testBand(), profile, 100000, testMatcherConfig())
	require.Len(t, ranked, 2)
	assert.Equal(t, "in-band", ranked[0].Candidate.ID)

	// Out-of-band candidates survive with a near-zero score.
	assert.Greater(t, ranked[1].MatchScore, 0.0)
	assert.Less(t, ranked[1].MatchScore, 0.1)
}

func TestMatch_SkillSimilarityOrders(t *testing.T) {
	profile := models.MatchProfile{SkillVector: []float64{1, 0, 1, 0}}
	pool := []models.JobCandidate{
		candidate("opposite", 22500, []float64{0, 1, 0, 1}, 0.5, false),
		candidate("aligned", 22500, []float64{1, 0, 1, 0}, 0.5, false),
	}

	ranked := Match(pool, testBand(), profile, 100000, testMatcherConfig())
	require.Len(t, ranked, 2)
	assert.Equal(t, "aligned", ranked[0].Candidate.ID)
}

func TestMatch_RemotePreferenceWins(t *testing.T) {
	profile := models.MatchProfile{SkillVector: []float64{1}, RemotePreferred: true}
	pool := []models.JobCandidate{
		candidate("onsite", 22500, []float64{1}, 0.5, false),
		candidate("remote", 22500, []float64{1}, 0.0, true),
	}

	ranked := Match(pool, testBand(), profile, 100000, testMatcherConfig())
	require.Len(t, ranked, 2)
	assert.Equal(t, "remote", ranked[0].Candidate.ID)
}

func TestMatch_DeterministicWithTies(t *testing.T) {
	profile := models.MatchProfile{SkillVector: []float64{1, 1}}
	pool := []models.JobCandidate{
		candidate("cand-c", 22500, []float64{1, 1}, 0.7, false),
		candidate("cand-a", 22500, []float64{1, 1}, 0.7, false),
		candidate("cand-b", 22500, []float64{1, 1}, 0.7, false),
	}

	first := Match(pool, testBand(), profile, 100000, testMatcherConfig())
	require.Len(t, first, 3)

	// Equal scores order by candidate id.
	assert.Equal(t, "cand-a", first[0].Candidate.ID)
	assert.Equal(t, "cand-b", first[1].Candidate.ID)
	assert.Equal(t, "cand-c", first[2].Candidate.ID)

	for i := 0; i < 5; i++ {
		again := Match(pool, testBand(), profile, 100000, testMatcherConfig())
		assert.Equal(t, first, again)
	}
}

func TestMatch_TruncatesToMaxPerTier(t *testing.T) {
	profile := models.MatchProfile{SkillVector: []float64{1}}
	var pool []models.JobCandidate
	for i := 0; i < 20; i++ {
		pool = append(pool, candidate(fmt.Sprintf("cand-%02d", i), 22500, []float64{1}, 0.5, false))
	}

	cfg := testMatcherConfig()
	cfg.MaxPerTier = 8

	ranked := Match(pool, testBand(), profile, 100000, cfg)
	assert.Len(t, ranked, 8)
}

func TestMatch_ScoresStayInRange(t *testing.T) {
	profile := models.MatchProfile{SkillVector: []float64{1, -1, 2}}
	pool := []models.JobCandidate{
		candidate("a", -120000, []float64{-1, 1, -2}, -3, false),
		candidate("b", 0, nil, 7, true),
		candidate("c", 22500, []float64{0, 0, 0}, 0.5, false),
	}

	ranked := Match(pool, testBand(), profile, 100000, testMatcherConfig())
	for _, rc := range ranked {
		assert.GreaterOrEqual(t, rc.MatchScore, 0.0)
		assert.LessOrEqual(t, rc.MatchScore, 1.0)
	}
}

func TestMatch_CarriesBandBounds(t *testing.T) {
	profile := models.MatchProfile{SkillVector: []float64{1}}
	pool := []models.JobCandidate{candidate("a", 22500, []float64{1}, 0.5, false)}

	ranked := Match(pool, testBand(), profile, 100000, testMatcherConfig())
	require.Len(t, ranked, 1)
	assert.Equal(t, 115000.0, ranked[0].BandMin)
	assert.Equal(t, 130000.0, ranked[0].BandMax)
}

// internal/engine/match/matcher.go
package match

import (
	"math"
	"sort"

	"riskrec-engine/internal/common/config"
	"riskrec-engine/internal/engine/tier"
	"riskrec-engine/internal/models"
)

// Match scores and ranks a candidate pool against one tier band.
//
// matchScore is a weighted sum of salary-band fit, skill-vector cosine
// similarity and location/remote fit, normalized into [0,1]. Candidates
// whose target salary falls entirely outside the band are not dropped;
// they keep a near-zero score so the fallback policy still has
// something to surface. Ranking is descending by score with ties broken
// by candidate id, so identical inputs always produce identical output.
// The result is truncated to maxPerTier; truncation only, never a
// correctness condition.
func Match(candidates []models.JobCandidate, band tier.Band, profile models.MatchProfile, currentSalary float64, cfg config.MatcherConfig) []models.RankedCandidate {
	ranked := make([]models.RankedCandidate, 0, len(candidates))

	totalWeight := cfg.SalaryWeight + cfg.SkillsWeight + cfg.LocationWeight

	for _, c := range candidates {
		target := currentSalary + c.SalaryDelta
		salaryFit, inBand := salaryBandFit(target, band)
		skills := cosineSimilarity(profile.SkillVector, c.SkillVector)
		location := locationFit(c, profile)

		score := (cfg.SalaryWeight*salaryFit +
			cfg.SkillsWeight*skills +
			cfg.LocationWeight*location) / totalWeight

		if !inBand {
			score *= cfg.OutOfBandPenalty
		}

		ranked = append(ranked, models.RankedCandidate{
			Candidate:  c,
			MatchScore: round4(score),
			BandMin:    band.MinSalary,
			BandMax:    band.MaxSalary,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].MatchScore != ranked[j].MatchScore {
			return ranked[i].MatchScore > ranked[j].MatchScore
		}
		return ranked[i].Candidate.ID < ranked[j].Candidate.ID
	})

	if len(ranked) > cfg.MaxPerTier {
		ranked = ranked[:cfg.MaxPerTier]
	}

	return ranked
}

// salaryBandFit implements triangular scoring: 1.0 at the band
// midpoint, decaying linearly to 0 at the band edges and beyond.
func salaryBandFit(target float64, band tier.Band) (fit float64, inBand bool) {
	inBand = target >= band.MinSalary && target <= band.MaxSalary

	halfWidth := (band.MaxSalary - band.MinSalary) / 2
	if halfWidth == 0 {
		if target == band.MinSalary {
			return 1, true
		}
		return 0, inBand
	}

	fit = 1 - math.Abs(target-band.Midpoint())/halfWidth
	if fit < 0 {
		fit = 0
	}
	return fit, inBand
}

// cosineSimilarity over the overlapping prefix of the two vectors.
// Mismatched or zero-norm vectors score 0 rather than erroring; skill
// data quality is the provider's concern.
func cosineSimilarity(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim < 0 {
		return 0
	}
	return sim
}

func locationFit(c models.JobCandidate, profile models.MatchProfile) float64 {
	if profile.RemotePreferred && c.Remote {
		return 1
	}
	if c.LocationFit < 0 {
		return 0
	}
	if c.LocationFit > 1 {
		return 1
	}
	return c.LocationFit
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

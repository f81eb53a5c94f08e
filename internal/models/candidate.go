// internal/models/candidate.go
package models

// JobCandidate is one opportunity from the external candidate pool.
// Read-only within the engine.
type JobCandidate struct {
	ID          string    `json:"id"`
	Title       string    `json:"title,omitempty"`
	SalaryDelta float64   `json:"currentSalaryDelta"`
	SkillVector []float64 `json:"skillMatchVector"`
	LocationFit float64   `json:"locationFit"`
	Remote      bool      `json:"remoteFlag"`
}

// MatchProfile carries the user-side inputs the matcher scores against.
type MatchProfile struct {
	SkillVector     []float64 `json:"skillVector"`
	RemotePreferred bool      `json:"remotePreferred"`
}

// RankedCandidate annotates a candidate with its match score and the
// tier-boundary values that produced it.
type RankedCandidate struct {
	Candidate  JobCandidate `json:"candidate"`
	MatchScore float64      `json:"matchScore"`
	BandMin    float64      `json:"bandMin"`
	BandMax    float64      `json:"bandMax"`
}

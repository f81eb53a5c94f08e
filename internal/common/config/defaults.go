// internal/common/config/defaults.go
package config

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	// Zeebe defaults
	if cfg.Zeebe.MaxJobsActive == 0 {
		cfg.Zeebe.MaxJobsActive = 10
	}
	if cfg.Zeebe.Timeout == 0 {
		cfg.Zeebe.Timeout = 30000
	}
	if cfg.Zeebe.RequestTimeout == 0 {
		cfg.Zeebe.RequestTimeout = 30000
	}

	// Postgres defaults
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 20
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	if cfg.Database.Elasticsearch.Index == "" {
		cfg.Database.Elasticsearch.Index = "job_candidates"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	applyEngineDefaults(&cfg.Engine)
}

func applyEngineDefaults(e *EngineConfig) {
	if e.Scoring.NotableShare == 0 {
		e.Scoring.NotableShare = 0.15
	}
	if len(e.Scoring.Assessments) == 0 {
		e.Scoring.Assessments = DefaultAssessments()
	}
	if len(e.RiskBands) == 0 {
		e.RiskBands = DefaultRiskBands()
	}
	if len(e.Tiers.Bands) == 0 {
		e.Tiers.Bands = DefaultTierBands()
	}
	if len(e.Tiers.Adjustments) == 0 {
		e.Tiers.Adjustments = DefaultTierAdjustments()
	}
	if e.Matcher.SalaryWeight == 0 && e.Matcher.SkillsWeight == 0 && e.Matcher.LocationWeight == 0 {
		e.Matcher.SalaryWeight = 0.5
		e.Matcher.SkillsWeight = 0.3
		e.Matcher.LocationWeight = 0.2
	}
	if e.Matcher.OutOfBandPenalty == 0 {
		e.Matcher.OutOfBandPenalty = 0.1
	}
	if e.Matcher.MaxPerTier == 0 {
		e.Matcher.MaxPerTier = 8
	}
	if e.Evaluator.MinSampleSize == 0 {
		e.Evaluator.MinSampleSize = 200
	}
	if e.Evaluator.ConfidenceZ == 0 {
		e.Evaluator.ConfidenceZ = 1.96
	}
	if e.Evaluator.FollowUpWindowDays == 0 {
		e.Evaluator.FollowUpWindowDays = 90
	}
}

// Tier names used across the engine.
const (
	TierConservative = "conservative"
	TierOptimal      = "optimal"
	TierStretch      = "stretch"
)

// Risk level names used in band and adjustment tables.
const (
	LevelLow      = "low"
	LevelMedium   = "medium"
	LevelHigh     = "high"
	LevelCritical = "critical"
)

// Assessment type tags.
const (
	AssessmentAIRisk     = "ai_risk"
	AssessmentLayoffRisk = "layoff_risk"
	AssessmentIncomeRisk = "income_risk"
)

// DefaultAssessments returns the per-type category tables. Each type
// normalizes against its own maximum attainable sum, so the tables are
// deliberately separate rather than one global set.
func DefaultAssessments() map[string]AssessmentTable {
	return map[string]AssessmentTable{
		AssessmentAIRisk: {
			Categories: []Category{
				{Name: "industry_risk", Label: "High-risk industry", Min: 0, Max: 30, Mode: ModeAdd},
				{Name: "automation_level", Label: "Highly automatable role", Min: 0, Max: 45, Mode: ModeAdd},
				{Name: "ai_tool_usage", Label: "Low AI tool adoption", Min: 0, Max: 20, Mode: ModeInvert},
				{Name: "ai_resistant_skills_bonus", Label: "AI-resistant skill set", Min: -20, Max: 0, Mode: ModeBonus},
			},
		},
		AssessmentLayoffRisk: {
			Categories: []Category{
				{Name: "company_size_risk", Label: "Company size exposure", Min: 0, Max: 30, Mode: ModeAdd},
				{Name: "tenure_risk", Label: "Short tenure", Min: 0, Max: 25, Mode: ModeAdd},
				{Name: "performance_risk", Label: "Performance concerns", Min: 0, Max: 20, Mode: ModeAdd},
				{Name: "company_health_risk", Label: "Weak company health", Min: 0, Max: 25, Mode: ModeAdd},
				{Name: "recent_layoff_risk", Label: "Recent layoffs at employer", Min: 0, Max: 30, Mode: ModeAdd},
				{Name: "skills_relevance_risk", Label: "Aging skill set", Min: 0, Max: 25, Mode: ModeAdd},
			},
		},
		AssessmentIncomeRisk: {
			Categories: []Category{
				{Name: "industry_risk", Label: "High-risk industry", Min: 0, Max: 30, Mode: ModeAdd},
				{Name: "tenure_risk", Label: "Short tenure", Min: 0, Max: 25, Mode: ModeAdd},
				{Name: "performance_risk", Label: "Performance concerns", Min: 0, Max: 20, Mode: ModeAdd},
				{Name: "company_health_risk", Label: "Weak company health", Min: 0, Max: 25, Mode: ModeAdd},
				{Name: "skills_relevance_risk", Label: "Aging skill set", Min: 0, Max: 25, Mode: ModeAdd},
			},
		},
	}
}

// DefaultRiskBands returns the default classification boundaries.
func DefaultRiskBands() []RiskBand {
	return []RiskBand{
		{Level: LevelLow, Low: 0.0, High: 0.4},
		{Level: LevelMedium, Low: 0.4, High: 0.6},
		{Level: LevelHigh, Low: 0.6, High: 0.8},
		{Level: LevelCritical, Low: 0.8, High: 1.0},
	}
}

// DefaultTierBands returns the base salary-increase percentage bands.
func DefaultTierBands() map[string]TierBand {
	return map[string]TierBand{
		TierConservative: {MinPct: 0.05, MaxPct: 0.15, RiskTolerance: 0.2},
		TierOptimal:      {MinPct: 0.15, MaxPct: 0.30, RiskTolerance: 0.5},
		TierStretch:      {MinPct: 0.30, MaxPct: 0.50, RiskTolerance: 0.8},
	}
}

// DefaultTierAdjustments returns the per-risk-level band shifts. Higher
// urgency widens bands downward so more opportunities surface sooner.
// Narrowing the conservative band for low-risk users is supported via a
// positive conservative min shift under "low" but ships disabled.
func DefaultTierAdjustments() map[string]map[string]TierShift {
	return map[string]map[string]TierShift{
		LevelCritical: {
			TierConservative: {MinShiftPct: -0.05},
			TierOptimal:      {MinShiftPct: -0.05},
			TierStretch:      {MinShiftPct: -0.05},
		},
		LevelHigh: {
			TierConservative: {MinShiftPct: -0.03},
			TierOptimal:      {MinShiftPct: -0.03},
			TierStretch:      {MinShiftPct: -0.03},
		},
	}
}

// DefaultEngine returns a fully-populated engine configuration. Tests
// and tools start from this and override what they exercise.
func DefaultEngine() EngineConfig {
	e := EngineConfig{}
	applyEngineDefaults(&e)
	return e
}

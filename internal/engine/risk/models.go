// internal/engine/risk/models.go
package risk

// Profile is the normalized risk-input value object supplied by the
// signal provider. Immutable once constructed; consumed once per
// scoring call. Field ranges are documented in the default scoring
// tables; out-of-range values are clamped, not rejected.
type Profile struct {
	AssessmentType         string  `json:"assessmentType"`
	IndustryRisk           float64 `json:"industryRiskRaw"`
	AutomationLevel        float64 `json:"automationLevelRaw"`
	AIToolUsage            float64 `json:"aiToolUsageRaw"`
	AIResistantSkillsBonus float64 `json:"aiResistantSkillsBonus"`
	CompanySizeRisk        float64 `json:"companySizeRisk"`
	TenureRisk             float64 `json:"tenureRisk"`
	PerformanceRisk        float64 `json:"performanceRisk"`
	CompanyHealthRisk      float64 `json:"companyHealthRisk"`
	RecentLayoffRisk       float64 `json:"recentLayoffRisk"`
	SkillsRelevanceRisk    float64 `json:"skillsRelevanceRisk"`
}

// CategoryValue resolves a scoring-table category name to the raw
// profile value it reads.
func (p Profile) CategoryValue(name string) (float64, bool) {
	switch name {
	case "industry_risk":
		return p.IndustryRisk, true
	case "automation_level":
		return p.AutomationLevel, true
	case "ai_tool_usage":
		return p.AIToolUsage, true
	case "ai_resistant_skills_bonus":
		return p.AIResistantSkillsBonus, true
	case "company_size_risk":
		return p.CompanySizeRisk, true
	case "tenure_risk":
		return p.TenureRisk, true
	case "performance_risk":
		return p.PerformanceRisk, true
	case "company_health_risk":
		return p.CompanyHealthRisk, true
	case "recent_layoff_risk":
		return p.RecentLayoffRisk, true
	case "skills_relevance_risk":
		return p.SkillsRelevanceRisk, true
	}
	return 0, false
}

// Level is the urgency band a score classifies into.
type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Result is the derived scoring output. Created per request, handed to
// the classifier/matcher, never mutated and never stored here.
type Result struct {
	OverallScore      float64            `json:"overallScore"`
	RiskLevel         Level              `json:"riskLevel"`
	CategoryBreakdown map[string]float64 `json:"categoryBreakdown"`
	Triggers          []string           `json:"triggers"`
}

// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig               `mapstructure:"app"`
	Engine       EngineConfig            `mapstructure:"engine"`
	Zeebe        ZeebeConfig             `mapstructure:"zeebe"`
	Database     DatabaseConfig          `mapstructure:"database"`
	Integrations IntegrationConfig       `mapstructure:"integrations"`
	Logging      LoggingConfig           `mapstructure:"logging"`
	Workers      map[string]WorkerConfig `mapstructure:"workers"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ZeebeConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"` // Single URL for backwards compatibility
	Index      string   `mapstructure:"index"`
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// IntegrationConfig holds settings for event fan-out integrations.
type IntegrationConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
		SNS    struct {
			Enabled  bool   `mapstructure:"enabled"`
			TopicARN string `mapstructure:"topic_arn"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`

	RedisStream struct {
		Enabled bool   `mapstructure:"enabled"`
		Stream  string `mapstructure:"stream"`
		MaxLen  int64  `mapstructure:"max_len"`
	} `mapstructure:"redis_stream"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// --- Engine Configuration ---

// EngineConfig carries every tunable the scoring/matching core reads.
// It is injected explicitly into each component call, never consulted
// through a process-wide singleton, so experiments and tests can swap
// configurations without cross-test interference.
type EngineConfig struct {
	Scoring     ScoringConfig      `mapstructure:"scoring"`
	RiskBands   []RiskBand         `mapstructure:"risk_bands"`
	Experiments []ExperimentConfig `mapstructure:"experiments"`
	Tiers       TierConfig         `mapstructure:"tiers"`
	Matcher     MatcherConfig      `mapstructure:"matcher"`
	Evaluator   EvaluatorConfig    `mapstructure:"evaluator"`
}

// ScoringConfig describes the per-assessment-type category tables.
type ScoringConfig struct {
	// NotableShare is the fraction of the total score above which a
	// category earns a human-readable trigger entry.
	NotableShare float64                    `mapstructure:"notable_share"`
	Assessments  map[string]AssessmentTable `mapstructure:"assessments"`
}

// AssessmentTable lists the categories one assessment type scores over.
type AssessmentTable struct {
	Categories []Category `mapstructure:"categories"`
}

// Category is one scored signal with its documented numeric range.
//
// Mode controls how the raw value contributes to the sum:
//   - "add":    contribution = raw (range [Min, Max], Min >= 0)
//   - "invert": contribution = Max - raw (higher raw lowers risk)
//   - "bonus":  contribution = raw (range [Min, 0], a signed reduction)
type Category struct {
	Name  string  `mapstructure:"name"`
	Label string  `mapstructure:"label"`
	Min   float64 `mapstructure:"min"`
	Max   float64 `mapstructure:"max"`
	Mode  string  `mapstructure:"mode"`
}

// MaxContribution returns the largest score the category can add.
func (c Category) MaxContribution() float64 {
	switch c.Mode {
	case ModeInvert:
		return c.Max - c.Min
	case ModeBonus:
		return 0
	}
	return c.Max
}

const (
	ModeAdd    = "add"
	ModeInvert = "invert"
	ModeBonus  = "bonus"
)

// RiskBand is one half-open classification interval [Low, High); the
// final band is closed at 1.0.
type RiskBand struct {
	Level string  `mapstructure:"level"`
	Low   float64 `mapstructure:"low"`
	High  float64 `mapstructure:"high"`
}

// ExperimentConfig is one A/B experiment over engine thresholds.
type ExperimentConfig struct {
	ID       string    `mapstructure:"id"`
	Variants []Variant `mapstructure:"variants"`
}

// Variant is one configuration alternative in an experiment. Weight is
// the traffic-allocation percentage. Threshold is the numeric value
// under test (a risk-band boundary or tier-band percentage) that the
// evaluator reports back when the variant wins.
type Variant struct {
	ID        string              `mapstructure:"id"`
	Weight    float64             `mapstructure:"weight"`
	Control   bool                `mapstructure:"control"`
	Threshold float64             `mapstructure:"threshold"`
	RiskBands []RiskBand          `mapstructure:"risk_bands"`
	TierBands map[string]TierBand `mapstructure:"tier_bands"`
}

// TierConfig holds the base salary-increase bands plus per-risk-level
// adjustment shifts. Bands may overlap by design to allow fallback.
type TierConfig struct {
	Bands       map[string]TierBand             `mapstructure:"bands"`
	Adjustments map[string]map[string]TierShift `mapstructure:"adjustments"` // risk level -> tier -> shift
}

// TierBand is a target salary-increase percentage range.
type TierBand struct {
	MinPct        float64 `mapstructure:"min_pct"`
	MaxPct        float64 `mapstructure:"max_pct"`
	RiskTolerance float64 `mapstructure:"risk_tolerance"`
}

// TierShift adjusts a band's percentage bounds for one risk level.
type TierShift struct {
	MinShiftPct float64 `mapstructure:"min_shift_pct"`
	MaxShiftPct float64 `mapstructure:"max_shift_pct"`
}

// MatcherConfig weights the match-score components.
type MatcherConfig struct {
	SalaryWeight     float64 `mapstructure:"salary_weight"`
	SkillsWeight     float64 `mapstructure:"skills_weight"`
	LocationWeight   float64 `mapstructure:"location_weight"`
	OutOfBandPenalty float64 `mapstructure:"out_of_band_penalty"`
	MaxPerTier       int     `mapstructure:"max_per_tier"`
}

// EvaluatorConfig guards threshold recommendations against noisy samples.
type EvaluatorConfig struct {
	MinSampleSize      int     `mapstructure:"min_sample_size"`
	ConfidenceZ        float64 `mapstructure:"confidence_z"`
	FollowUpWindowDays int     `mapstructure:"follow_up_window_days"`
}

// ExperimentByID finds a configured experiment.
func (e EngineConfig) ExperimentByID(id string) (ExperimentConfig, bool) {
	for _, exp := range e.Experiments {
		if exp.ID == id {
			return exp, true
		}
	}
	return ExperimentConfig{}, false
}

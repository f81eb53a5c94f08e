// internal/providers/signal/provider.go
package signal

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	commonerrors "riskrec-engine/internal/common/errors"
	"riskrec-engine/internal/common/logger"
	"riskrec-engine/internal/engine/risk"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = 5 * time.Minute

// UserSignals bundles everything the orchestrator needs about one user:
// the raw risk-input profile, the salary the tier math anchors on, and
// the experiments the user is enrolled in.
type UserSignals struct {
	UserID              string       `json:"userId"`
	CurrentSalary       float64      `json:"currentSalary"`
	ActiveExperimentIDs []string     `json:"activeExperimentIds"`
	Profile             risk.Profile `json:"profile"`
}

// Provider loads user signals from Postgres with a Redis read-through
// cache. Cache rows are keyed per user and assessment type so switching
// assessment types never serves stale category values.
type Provider struct {
	db       *sql.DB
	redis    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func New(db *sql.DB, redisClient *redis.Client, log logger.Logger) *Provider {
	return &Provider{
		db:       db,
		redis:    redisClient,
		cacheTTL: defaultCacheTTL,
		logger:   log.WithFields(map[string]interface{}{"component": "signal-provider"}),
	}
}

// Fetch returns the signals for one user and assessment type.
// Missing users map to PROFILE_NOT_FOUND; infrastructure failures map to
// the retryable SIGNAL_PROVIDER_FAILED code.
func (p *Provider) Fetch(ctx context.Context, userID, assessmentType string) (*UserSignals, error) {
	cacheKey := "signals:" + userID + ":" + assessmentType

	if p.redis != nil {
		if val, err := p.redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached UserSignals
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	signals, err := p.loadFromDB(ctx, userID, assessmentType)
	if err != nil {
		return nil, err
	}

	if p.redis != nil {
		data, _ := json.Marshal(signals)
		if err := p.redis.Set(ctx, cacheKey, data, p.cacheTTL).Err(); err != nil {
			p.logger.Debug("signal cache write failed", map[string]interface{}{
				"userId": userID,
				"error":  err.Error(),
			})
		}
	}

	return signals, nil
}

func (p *Provider) loadFromDB(ctx context.Context, userID, assessmentType string) (*UserSignals, error) {
	signals := &UserSignals{
		UserID:  userID,
		Profile: risk.Profile{AssessmentType: assessmentType},
	}

	query := `SELECT current_salary,
		industry_risk, automation_level, ai_tool_usage, ai_resistant_skills_bonus,
		company_size_risk, tenure_risk, performance_risk, company_health_risk,
		recent_layoff_risk, skills_relevance_risk
	FROM user_risk_signals WHERE user_id = $1`

	err := p.db.QueryRowContext(ctx, query, userID).Scan(
		&signals.CurrentSalary,
		&signals.Profile.IndustryRisk,
		&signals.Profile.AutomationLevel,
		&signals.Profile.AIToolUsage,
		&signals.Profile.AIResistantSkillsBonus,
		&signals.Profile.CompanySizeRisk,
		&signals.Profile.TenureRisk,
		&signals.Profile.PerformanceRisk,
		&signals.Profile.CompanyHealthRisk,
		&signals.Profile.RecentLayoffRisk,
		&signals.Profile.SkillsRelevanceRisk,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, commonerrors.NewProfileNotFoundError(userID)
		}
		return nil, commonerrors.NewSignalProviderError(err)
	}

	experimentIDs, err := p.loadEnrollments(ctx, userID)
	if err != nil {
		return nil, err
	}
	signals.ActiveExperimentIDs = experimentIDs

	return signals, nil
}

func (p *Provider) loadEnrollments(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT experiment_id FROM user_experiment_enrollments
		WHERE user_id = $1 AND active = true ORDER BY experiment_id`

	rows, err := p.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, commonerrors.NewSignalProviderError(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, commonerrors.NewSignalProviderError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, commonerrors.NewSignalProviderError(err)
	}

	return ids, nil
}

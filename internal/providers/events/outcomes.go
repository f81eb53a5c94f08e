// internal/providers/events/outcomes.go
package events

import (
	"context"
	"database/sql"
	"time"

	commonerrors "riskrec-engine/internal/common/errors"
	"riskrec-engine/internal/models"
)

// OutcomeStore persists and reads experiment outcome events in Postgres.
// The threshold evaluator consumes ListByExperiment; Record is called by
// the outcome-ingestion path when a tracked result is observed.
type OutcomeStore struct {
	db *sql.DB
}

func NewOutcomeStore(db *sql.DB) *OutcomeStore {
	return &OutcomeStore{db: db}
}

func (s *OutcomeStore) Record(ctx context.Context, event models.OutcomeEvent) error {
	query := `INSERT INTO experiment_outcomes
		(user_id, experiment_id, variant_id, outcome_achieved, observed_at)
	VALUES ($1, $2, $3, $4, $5)`

	_, err := s.db.ExecContext(ctx, query,
		event.UserID, event.ExperimentID, event.VariantID,
		event.OutcomeAchieved, event.Timestamp,
	)
	if err != nil {
		return commonerrors.NewOutcomeStoreError(err)
	}
	return nil
}

// ListByExperiment returns all outcomes observed for one experiment at
// or after the given cutoff, oldest first.
func (s *OutcomeStore) ListByExperiment(ctx context.Context, experimentID string, since time.Time) ([]models.OutcomeEvent, error) {
	query := `SELECT user_id, experiment_id, variant_id, outcome_achieved, observed_at
	FROM experiment_outcomes
	WHERE experiment_id = $1 AND observed_at >= $2
	ORDER BY observed_at ASC`

	rows, err := s.db.QueryContext(ctx, query, experimentID, since)
	if err != nil {
		return nil, commonerrors.NewOutcomeStoreError(err)
	}
	defer rows.Close()

	var events []models.OutcomeEvent
	for rows.Next() {
		var ev models.OutcomeEvent
		if err := rows.Scan(&ev.UserID, &ev.ExperimentID, &ev.VariantID, &ev.OutcomeAchieved, &ev.Timestamp); err != nil {
			return nil, commonerrors.NewOutcomeStoreError(err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, commonerrors.NewOutcomeStoreError(err)
	}

	return events, nil
}

// internal/providers/events/multi.go
package events

import (
	"context"
	"errors"

	"riskrec-engine/internal/models"
)

// Sink matches the orchestrator's event contract. Declared here as well
// so sink implementations do not import the orchestrator package.
type Sink interface {
	PublishJourney(ctx context.Context, event models.JourneyEvent) error
}

// MultiSink fans one journey event out to every configured sink. Every
// sink is attempted even when an earlier one fails; errors are joined so
// the caller sees all failures at once.
type MultiSink struct {
	sinks []Sink
}

func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) PublishJourney(ctx context.Context, event models.JourneyEvent) error {
	var errs []error
	for _, sink := range m.sinks {
		if err := sink.PublishJourney(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// internal/providers/events/sns.go
package events

import (
	"context"
	"encoding/json"

	commonerrors "riskrec-engine/internal/common/errors"
	"riskrec-engine/internal/common/logger"
	"riskrec-engine/internal/models"
)

// TopicPublisher sends a JSON payload with string attributes to a
// topic. Satisfied by *aws.SNSClient.
type TopicPublisher interface {
	PublishJSON(ctx context.Context, topicARN string, payload []byte, attributes map[string]string) error
}

// SNSSink publishes journey events to an SNS topic for fan-out to
// analytics consumers.
type SNSSink struct {
	client   TopicPublisher
	topicARN string
	logger   logger.Logger
}

func NewSNSSink(client TopicPublisher, topicARN string, log logger.Logger) *SNSSink {
	return &SNSSink{
		client:   client,
		topicARN: topicARN,
		logger:   log.WithFields(map[string]interface{}{"component": "sns-sink"}),
	}
}

func (s *SNSSink) PublishJourney(ctx context.Context, event models.JourneyEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return commonerrors.NewEventPublishError(err)
	}

	attributes := map[string]string{
		"eventType":      "journey",
		"assessmentType": event.AssessmentType,
	}
	if err := s.client.PublishJSON(ctx, s.topicARN, payload, attributes); err != nil {
		return commonerrors.NewEventPublishError(err)
	}

	s.logger.Debug("journey event published", map[string]interface{}{
		"eventId": event.ID,
		"userId":  event.UserID,
	})
	return nil
}

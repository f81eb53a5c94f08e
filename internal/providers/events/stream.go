// internal/providers/events/stream.go
package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	commonerrors "riskrec-engine/internal/common/errors"
	"riskrec-engine/internal/common/logger"
	"riskrec-engine/internal/models"
)

// RedisStreamSink appends journey events to a capped Redis stream.
// Consumers tail the stream with XREADGROUP; the engine only produces.
type RedisStreamSink struct {
	client *redis.Client
	stream string
	maxLen int64
	logger logger.Logger
}

func NewRedisStreamSink(client *redis.Client, stream string, maxLen int64, log logger.Logger) *RedisStreamSink {
	return &RedisStreamSink{
		client: client,
		stream: stream,
		maxLen: maxLen,
		logger: log.WithFields(map[string]interface{}{"component": "stream-sink"}),
	}
}

func (s *RedisStreamSink) PublishJourney(ctx context.Context, event models.JourneyEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return commonerrors.NewEventPublishError(err)
	}

	args := &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"eventId":        event.ID,
			"userId":         event.UserID,
			"assessmentType": event.AssessmentType,
			"payload":        string(payload),
		},
	}

	if err := s.client.XAdd(ctx, args).Err(); err != nil {
		return commonerrors.NewEventPublishError(err)
	}

	s.logger.Debug("journey event appended", map[string]interface{}{
		"stream":  s.stream,
		"eventId": event.ID,
	})
	return nil
}

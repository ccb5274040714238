package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
	"github.com/comitanigiacomo/ecotrack-api/internal/observability"
)

// publish is best effort: a broker outage must not fail the write that
// already succeeded.
func publish(ctx context.Context, publisher domain.EventPublisher, logger zerolog.Logger, event domain.Event) {
	if publisher == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	if err := publisher.Publish(ctx, event); err != nil {
		observability.RecordPublishFailure(event.Type)
		logger.Warn().Err(err).
			Str("event", event.Type).
			Str("user_id", event.UserID).
			Msg("failed to publish event")
	}
}

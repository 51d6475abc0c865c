// Package events publishes post lifecycle notifications onto the shared
// message bus as envelope-wrapped events.
package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"postline/contexts/content/feed-service/ports"
	"postline/internal/platform/messaging"
	sharedevents "postline/internal/shared/events"
)

const Topic = "feed.posts"

type Publisher struct {
	Bus    *messaging.Bus
	Source string
	Logger *slog.Logger
}

func (p Publisher) PublishPostEvent(ctx context.Context, event ports.PostEvent) error {
	if p.Bus == nil {
		return nil
	}

	envelope := sharedevents.Envelope{
		EventID:       uuid.NewString(),
		EventType:     event.Action,
		SourceService: p.Source,
		OccurredAtUTC: time.Now().UTC(),
		EntityType:    "post",
		EntityID:      event.Post.ID,
		Payload:       event.Post,
	}
	if err := p.Bus.Publish(ctx, Topic, envelope); err != nil {
		return err
	}

	if p.Logger != nil {
		p.Logger.Debug("post event published",
			"event", "feed_post_event_published",
			"module", "feed",
			"layer", "adapters",
			"action", event.Action,
			"post_id", event.Post.ID,
		)
	}
	return nil
}

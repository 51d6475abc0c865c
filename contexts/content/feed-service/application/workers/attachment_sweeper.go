package workers

import (
	"context"
	"log/slog"
	"time"

	"postline/contexts/content/feed-service/application"
	"postline/contexts/content/feed-service/ports"
)

const defaultGracePeriod = time.Hour

// AttachmentSweeper removes stored images no post references anymore.
// Files younger than GracePeriod are skipped so an upload that has not
// been attached to a post yet is never reaped mid-flight.
type AttachmentSweeper struct {
	Posts       ports.PostRepository
	Attachments ports.AttachmentStore
	Clock       ports.Clock
	GracePeriod time.Duration
	Logger      *slog.Logger
}

func (s AttachmentSweeper) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(s.Logger)

	grace := s.GracePeriod
	if grace <= 0 {
		grace = defaultGracePeriod
	}
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}

	stored, err := s.Attachments.List(ctx, now.Add(-grace))
	if err != nil {
		logger.Error("attachment sweep listing failed",
			"event", "feed_attachment_sweep_failed",
			"module", "content/feed-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(stored) == 0 {
		return nil
	}

	referenced, err := s.Posts.ListImagePaths(ctx)
	if err != nil {
		logger.Error("attachment sweep reference scan failed",
			"event", "feed_attachment_sweep_failed",
			"module", "content/feed-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	refSet := make(map[string]struct{}, len(referenced))
	for _, path := range referenced {
		refSet[path] = struct{}{}
	}

	removed := 0
	for _, path := range stored {
		if _, ok := refSet[path]; ok {
			continue
		}
		if s.Attachments.Release(ctx, path) {
			removed++
		}
	}

	if removed > 0 {
		logger.Info("attachment sweep completed",
			"event", "feed_attachment_sweep_completed",
			"module", "content/feed-service",
			"layer", "worker",
			"removed_count", removed,
		)
	}
	return nil
}

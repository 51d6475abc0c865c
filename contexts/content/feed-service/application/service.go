package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"postline/contexts/content/feed-service/domain/entities"
	domainerrors "postline/contexts/content/feed-service/domain/errors"
	"postline/contexts/content/feed-service/ports"
	"postline/contracts/session"
)

// PostsPerPage is the fixed feed page size.
const PostsPerPage = 2

const minFieldLength = 5

type Service struct {
	Posts         ports.PostRepository
	Owners        ports.OwnerIndex
	Attachments   ports.AttachmentStore
	Notifications ports.NotificationPublisher
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

func validatePostInput(title string, content string) error {
	var violations []domainerrors.FieldViolation
	if len(strings.TrimSpace(title)) < minFieldLength {
		violations = append(violations, domainerrors.FieldViolation{
			Field:   "title",
			Message: "title is invalid",
		})
	}
	if len(strings.TrimSpace(content)) < minFieldLength {
		violations = append(violations, domainerrors.FieldViolation{
			Field:   "content",
			Message: "content is invalid",
		})
	}
	if len(violations) > 0 {
		return &domainerrors.ValidationError{Violations: violations}
	}
	return nil
}

// CreatePost persists a new post for the authenticated caller and links it
// into the owner's post index. The two writes are not transactional: the
// post row lands first, and an index failure surfaces as
// ErrOwnerIndexStale with the post already persisted.
func (s Service) CreatePost(ctx context.Context, sctx session.Context, title string, content string, imagePath string) (entities.Post, error) {
	if err := Authorize(sctx, OpCreatePost, ""); err != nil {
		return entities.Post{}, err
	}
	if err := validatePostInput(title, content); err != nil {
		return entities.Post{}, err
	}

	id, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Post{}, err
	}

	now := s.now()
	post, err := s.Posts.SavePost(ctx, entities.Post{
		ID:        id,
		Title:     strings.TrimSpace(title),
		Content:   strings.TrimSpace(content),
		ImagePath: strings.TrimSpace(imagePath),
		OwnerID:   sctx.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return entities.Post{}, err
	}

	if err := s.Owners.AppendPost(ctx, sctx.UserID, post.ID, now); err != nil {
		ResolveLogger(s.Logger).Error("owner index append failed after post write",
			"event", "feed_owner_index_append_failed",
			"module", "content/feed-service",
			"layer", "application",
			"post_id", post.ID,
			"owner_id", sctx.UserID,
			"error", err.Error(),
		)
		return entities.Post{}, fmt.Errorf("post %s saved without owner link: %w", post.ID, domainerrors.ErrOwnerIndexStale)
	}

	s.publish(ctx, ports.PostEventCreated, post)
	return post, nil
}

func (s Service) GetPost(ctx context.Context, sctx session.Context, id string) (entities.Post, error) {
	if err := Authorize(sctx, OpReadPost, ""); err != nil {
		return entities.Post{}, err
	}
	return s.Posts.GetPost(ctx, id)
}

// ListPosts returns one feed page ordered by creation time descending.
// page values below 1 are treated as 1, which keeps the offset from going
// negative.
func (s Service) ListPosts(ctx context.Context, sctx session.Context, page int) (ports.PostPage, error) {
	if err := Authorize(sctx, OpListPosts, ""); err != nil {
		return ports.PostPage{}, err
	}

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * PostsPerPage
	if offset < 0 {
		offset = 0
	}

	posts, total, err := s.Posts.ListPosts(ctx, offset, PostsPerPage)
	if err != nil {
		return ports.PostPage{}, err
	}
	return ports.PostPage{Posts: posts, TotalPosts: total}, nil
}

// UpdatePost replaces title and content and applies the tri-state image
// patch. The checks run in order: existence, ownership, validation.
func (s Service) UpdatePost(ctx context.Context, sctx session.Context, id string, title string, content string, image ports.ImagePatch) (entities.Post, error) {
	post, err := s.Posts.GetPost(ctx, id)
	if err != nil {
		return entities.Post{}, err
	}
	if err := Authorize(sctx, OpUpdatePost, post.OwnerID); err != nil {
		return entities.Post{}, err
	}
	if err := validatePostInput(title, content); err != nil {
		return entities.Post{}, err
	}

	previousImage := post.ImagePath
	switch image.Op {
	case ports.ImageSet:
		post.ImagePath = strings.TrimSpace(image.Path)
	case ports.ImageClear:
		post.ImagePath = ""
	}

	post.Title = strings.TrimSpace(title)
	post.Content = strings.TrimSpace(content)
	post.UpdatedAt = s.now()

	saved, err := s.Posts.SavePost(ctx, post)
	if err != nil {
		return entities.Post{}, err
	}

	if previousImage != "" && previousImage != saved.ImagePath {
		s.releaseImage(ctx, previousImage)
	}

	s.publish(ctx, ports.PostEventUpdated, saved)
	return saved, nil
}

// DeletePost removes the post row, severs the owner's index entry, and
// releases the stored image. Removal of the post row is the durable
// outcome; image release is best-effort and only logged on failure.
func (s Service) DeletePost(ctx context.Context, sctx session.Context, id string) error {
	post, err := s.Posts.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(sctx, OpDeletePost, post.OwnerID); err != nil {
		return err
	}

	if err := s.Posts.DeletePost(ctx, id); err != nil {
		return err
	}
	if err := s.Owners.RemovePost(ctx, post.OwnerID, post.ID); err != nil {
		ResolveLogger(s.Logger).Error("owner index removal failed after post delete",
			"event", "feed_owner_index_remove_failed",
			"module", "content/feed-service",
			"layer", "application",
			"post_id", post.ID,
			"owner_id", post.OwnerID,
			"error", err.Error(),
		)
		return fmt.Errorf("post %s deleted without owner unlink: %w", post.ID, domainerrors.ErrOwnerIndexStale)
	}

	if post.ImagePath != "" {
		s.releaseImage(ctx, post.ImagePath)
	}

	s.publish(ctx, ports.PostEventDeleted, post)
	return nil
}

// UploadImage stores an attachment for the authenticated caller and
// returns its path. Unsupported content types surface as
// ErrUnsupportedImage, which the transport reports as a "no file" outcome
// rather than a failure.
func (s Service) UploadImage(ctx context.Context, sctx session.Context, content []byte) (string, error) {
	if err := Authorize(sctx, OpUploadImage, ""); err != nil {
		return "", err
	}
	return s.Attachments.Store(ctx, content)
}

func (s Service) releaseImage(ctx context.Context, path string) {
	if !s.Attachments.Release(ctx, path) {
		ResolveLogger(s.Logger).Warn("attachment release failed",
			"event", "feed_attachment_release_failed",
			"module", "content/feed-service",
			"layer", "application",
			"path", path,
		)
	}
}

func (s Service) publish(ctx context.Context, action string, post entities.Post) {
	if s.Notifications == nil {
		return
	}
	err := s.Notifications.PublishPostEvent(ctx, ports.PostEvent{
		Action: action,
		Post:   post,
	})
	if err != nil {
		ResolveLogger(s.Logger).Warn("post event publish failed",
			"event", "feed_post_event_publish_failed",
			"module", "content/feed-service",
			"layer", "application",
			"action", action,
			"post_id", post.ID,
			"error", err.Error(),
		)
	}
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

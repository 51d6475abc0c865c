package ports

import (
	"context"
	"time"

	"postline/contexts/content/feed-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// PostPage is one page of the feed plus the total across all posts.
type PostPage struct {
	Posts      []entities.Post
	TotalPosts int
}

// ImagePatchOp selects how an update treats the stored image reference.
// The zero value keeps the existing image, so callers that never touch the
// field get "no change" for free.
type ImagePatchOp string

const (
	ImageKeep  ImagePatchOp = ""
	ImageClear ImagePatchOp = "clear"
	ImageSet   ImagePatchOp = "set"
)

// ImagePatch is the tri-state image argument for updates: keep the current
// path, clear it, or replace it with Path.
type ImagePatch struct {
	Op   ImagePatchOp
	Path string
}

func KeepImage() ImagePatch {
	return ImagePatch{Op: ImageKeep}
}

func ClearImage() ImagePatch {
	return ImagePatch{Op: ImageClear}
}

func SetImage(path string) ImagePatch {
	return ImagePatch{Op: ImageSet, Path: path}
}

type PostRepository interface {
	// SavePost inserts the post or replaces the stored document with the
	// same id (load-mutate-save semantics).
	SavePost(ctx context.Context, post entities.Post) (entities.Post, error)
	GetPost(ctx context.Context, id string) (entities.Post, error)
	// ListPosts returns posts ordered by creation time descending plus the
	// total count across all posts.
	ListPosts(ctx context.Context, offset int, limit int) ([]entities.Post, int, error)
	DeletePost(ctx context.Context, id string) error
	// ListImagePaths returns every image reference currently held by a
	// post. Used by the orphan sweep.
	ListImagePaths(ctx context.Context) ([]string, error)
}

// OwnerIndex is the owner side of the user/post dual write: the set of post
// ids owned by each identity.
type OwnerIndex interface {
	AppendPost(ctx context.Context, ownerID string, postID string, now time.Time) error
	RemovePost(ctx context.Context, ownerID string, postID string) error
	ListPostIDs(ctx context.Context, ownerID string) ([]string, error)
}

// AttachmentStore is the external image store boundary. Store rejects
// anything outside the jpeg/png allow-list with ErrUnsupportedImage;
// Release is best-effort and reports success as a bool.
type AttachmentStore interface {
	Store(ctx context.Context, content []byte) (string, error)
	Release(ctx context.Context, path string) bool
	// List returns stored paths last modified before olderThan.
	List(ctx context.Context, olderThan time.Time) ([]string, error)
}

const (
	PostEventCreated = "post.created"
	PostEventUpdated = "post.updated"
	PostEventDeleted = "post.deleted"
)

type PostEvent struct {
	Action string
	Post   entities.Post
}

// NotificationPublisher hands feed mutations to the notification channel.
// Delivery is best-effort; publish failures never fail the mutation.
type NotificationPublisher interface {
	PublishPostEvent(ctx context.Context, event PostEvent) error
}

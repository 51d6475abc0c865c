package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"postline/contexts/content/feed-service/domain/entities"
	domainerrors "postline/contexts/content/feed-service/domain/errors"
	"postline/contexts/content/feed-service/ports"
)

// Store is the in-memory post repository and owner index used for
// development and tests. It also serves the Clock, IDGenerator, and
// NotificationPublisher ports, recording published events for assertions.
type Store struct {
	mu sync.RWMutex

	postsByID      map[string]entities.Post
	postIDsByOwner map[string]map[string]struct{}
	published      []ports.PostEvent
}

func NewStore() *Store {
	return &Store{
		postsByID:      make(map[string]entities.Post),
		postIDsByOwner: make(map[string]map[string]struct{}),
	}
}

func (s *Store) SavePost(ctx context.Context, post entities.Post) (entities.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.postsByID[post.ID] = post
	return post, nil
}

func (s *Store) GetPost(ctx context.Context, id string) (entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.postsByID[id]
	if !ok {
		return entities.Post{}, domainerrors.ErrPostNotFound
	}
	return post, nil
}

func (s *Store) ListPosts(ctx context.Context, offset int, limit int) ([]entities.Post, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Post, 0, len(s.postsByID))
	for _, post := range s.postsByID {
		items = append(items, post)
	}
	// Newest first; id breaks creation-time ties so pagination is stable.
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	total := len(items)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	page := make([]entities.Post, end-offset)
	copy(page, items[offset:end])
	return page, total, nil
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.postsByID[id]; !ok {
		return domainerrors.ErrPostNotFound
	}
	delete(s.postsByID, id)
	return nil
}

func (s *Store) ListImagePaths(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var paths []string
	for _, post := range s.postsByID {
		if post.ImagePath != "" {
			paths = append(paths, post.ImagePath)
		}
	}
	return paths, nil
}

func (s *Store) AppendPost(ctx context.Context, ownerID string, postID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.postIDsByOwner[ownerID]
	if !ok {
		set = make(map[string]struct{})
		s.postIDsByOwner[ownerID] = set
	}
	set[postID] = struct{}{}
	return nil
}

func (s *Store) RemovePost(ctx context.Context, ownerID string, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if set, ok := s.postIDsByOwner[ownerID]; ok {
		delete(set, postID)
	}
	return nil
}

func (s *Store) ListPostIDs(ctx context.Context, ownerID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.postIDsByOwner[ownerID]
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) PublishPostEvent(ctx context.Context, event ports.PostEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.published = append(s.published, event)
	return nil
}

// PublishedEvents returns a copy of every event recorded so far.
func (s *Store) PublishedEvents() []ports.PostEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]ports.PostEvent(nil), s.published...)
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	return uuid.NewString(), nil
}

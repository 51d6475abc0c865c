package memory

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	domainerrors "postline/contexts/content/feed-service/domain/errors"
)

type storedAttachment struct {
	content  []byte
	storedAt time.Time
}

// AttachmentStore keeps uploaded files in memory. It applies the same
// content-type allow-list as the disk-backed store so tests exercise the
// rejection path without touching the filesystem.
type AttachmentStore struct {
	mu    sync.Mutex
	files map[string]storedAttachment
	now   func() time.Time
}

func NewAttachmentStore() *AttachmentStore {
	return &AttachmentStore{
		files: make(map[string]storedAttachment),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *AttachmentStore) Store(ctx context.Context, content []byte) (string, error) {
	switch http.DetectContentType(content) {
	case "image/jpeg", "image/png":
	default:
		return "", domainerrors.ErrUnsupportedImage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := "images/" + uuid.NewString()
	s.files[path] = storedAttachment{content: content, storedAt: s.now()}
	return path, nil
}

func (s *AttachmentStore) Release(ctx context.Context, path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[path]; !ok {
		return false
	}
	delete(s.files, path)
	return true
}

func (s *AttachmentStore) List(ctx context.Context, olderThan time.Time) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var paths []string
	for path, file := range s.files {
		if file.storedAt.Before(olderThan) {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// Contains reports whether a stored file exists at path.
func (s *AttachmentStore) Contains(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.files[path]
	return ok
}

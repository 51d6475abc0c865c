// Package disk stores post attachments as files under a configured
// directory. Stored paths are returned with the "images/" URL prefix the
// HTTP layer serves them from.
package disk

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	domainerrors "postline/contexts/content/feed-service/domain/errors"
)

const pathPrefix = "images/"

type AttachmentStore struct {
	Dir    string
	Logger *slog.Logger
}

func NewAttachmentStore(dir string, logger *slog.Logger) (*AttachmentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating attachment directory: %w", err)
	}
	return &AttachmentStore{Dir: dir, Logger: logger}, nil
}

func (s *AttachmentStore) Store(ctx context.Context, content []byte) (string, error) {
	var extension string
	switch http.DetectContentType(content) {
	case "image/jpeg":
		extension = ".jpg"
	case "image/png":
		extension = ".png"
	default:
		return "", domainerrors.ErrUnsupportedImage
	}

	name := uuid.NewString() + extension
	if err := os.WriteFile(filepath.Join(s.Dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("writing attachment: %w", err)
	}
	return pathPrefix + name, nil
}

func (s *AttachmentStore) Release(ctx context.Context, storedPath string) bool {
	name := path.Base(storedPath)
	if name == "." || name == "/" {
		return false
	}
	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil {
		if s.Logger != nil && !os.IsNotExist(err) {
			s.Logger.Warn("removing attachment file",
				"event", "feed_attachment_remove_failed",
				"module", "feed",
				"layer", "adapters",
				"path", storedPath,
				"error", err,
			)
		}
		return false
	}
	return true
}

func (s *AttachmentStore) List(ctx context.Context, olderThan time.Time) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading attachment directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(olderThan) {
			paths = append(paths, pathPrefix+entry.Name())
		}
	}
	return paths, nil
}

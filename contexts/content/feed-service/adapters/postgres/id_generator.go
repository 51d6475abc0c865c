package postgres

import (
	"context"

	"github.com/google/uuid"
)

// UUIDGenerator issues random UUIDv4 identifiers for posts.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(ctx context.Context) (string, error) {
	return uuid.NewString(), nil
}

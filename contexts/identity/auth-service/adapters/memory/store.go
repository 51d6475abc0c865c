package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	domainerrors "postline/contexts/identity/auth-service/domain/errors"
	"postline/contexts/identity/auth-service/ports"
)

// Store is the in-memory user repository used for development and tests.
// It also serves the Clock and IDGenerator ports.
type Store struct {
	mu sync.RWMutex

	usersByID  map[string]ports.User
	idsByEmail map[string]string
}

func NewStore() *Store {
	return &Store{
		usersByID:  make(map[string]ports.User),
		idsByEmail: make(map[string]string),
	}
}

func (s *Store) CreateUser(ctx context.Context, user ports.User) (ports.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.idsByEmail[user.Email]; exists {
		return ports.User{}, domainerrors.ErrEmailTaken
	}
	s.usersByID[user.ID] = user
	s.idsByEmail[user.Email] = user.ID
	return user, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (ports.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.usersByID[id]
	if !ok {
		return ports.User{}, domainerrors.ErrUserNotFound
	}
	return user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (ports.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Exact, case-sensitive match.
	id, ok := s.idsByEmail[email]
	if !ok {
		return ports.User{}, domainerrors.ErrUserNotFound
	}
	return s.usersByID[id], nil
}

func (s *Store) UpdateStatus(ctx context.Context, id string, status string, now time.Time) (ports.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.usersByID[id]
	if !ok {
		return ports.User{}, domainerrors.ErrUserNotFound
	}
	user.Status = status
	user.UpdatedAt = now.UTC()
	s.usersByID[id] = user
	return user, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(ctx context.Context) (string, error) {
	return uuid.NewString(), nil
}

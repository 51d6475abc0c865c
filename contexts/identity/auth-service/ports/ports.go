package ports

import (
	"context"
	"time"
)

// DefaultStatus is assigned to newly registered users.
const DefaultStatus = "I am new!"

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// User is the stored identity record. PasswordHash is the only credential
// material that ever leaves the hasher.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthData is the login result handed back to the client.
type AuthData struct {
	Token  string
	UserID string
}

// TokenClaims is the identity embedded in a session token.
type TokenClaims struct {
	UserID string
	Email  string
}

// PasswordHasher is the credential store boundary. Hash must salt, so two
// calls on the same plaintext yield different hashes. Verify reports a
// mismatch as false, never as an error.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext string, hash string) bool
}

// TokenCodec issues and verifies signed, time-bound session tokens. Verify
// is a purely cryptographic/structural check; it never consults storage.
type TokenCodec interface {
	Issue(claims TokenClaims) (string, error)
	Verify(token string) (TokenClaims, error)
}

type UserRepository interface {
	// CreateUser persists a new user. A duplicate email fails with
	// ErrEmailTaken.
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id string) (User, error)
	// GetUserByEmail looks up by exact, case-sensitive email match.
	GetUserByEmail(ctx context.Context, email string) (User, error)
	UpdateStatus(ctx context.Context, id string, status string, now time.Time) (User, error)
}

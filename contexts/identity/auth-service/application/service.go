package application

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	domainerrors "postline/contexts/identity/auth-service/domain/errors"
	"postline/contexts/identity/auth-service/ports"
	"postline/contracts/session"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const minPasswordLength = 5

type Service struct {
	Users       ports.UserRepository
	Passwords   ports.PasswordHasher
	Tokens      ports.TokenCodec
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (s Service) Register(ctx context.Context, email string, name string, password string) (ports.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	var violations []domainerrors.FieldViolation
	if !emailPattern.MatchString(email) {
		violations = append(violations, domainerrors.FieldViolation{
			Field:   "email",
			Message: "email is invalid",
		})
	}
	if len(password) < minPasswordLength {
		violations = append(violations, domainerrors.FieldViolation{
			Field:   "password",
			Message: "password too short",
		})
	}
	if len(violations) > 0 {
		return ports.User{}, &domainerrors.ValidationError{Violations: violations}
	}

	hash, err := s.Passwords.Hash(password)
	if err != nil {
		return ports.User{}, err
	}
	id, err := s.IDGenerator.NewID(ctx)
	if err != nil {
		return ports.User{}, err
	}

	now := s.now()
	user, err := s.Users.CreateUser(ctx, ports.User{
		ID:           id,
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Status:       ports.DefaultStatus,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return ports.User{}, err
	}

	ResolveLogger(s.Logger).Info("user registered",
		"event", "auth_user_registered",
		"module", "identity/auth-service",
		"layer", "application",
		"user_id", user.ID,
	)
	return user, nil
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password fail identically so callers cannot probe which
// emails are registered.
func (s Service) Login(ctx context.Context, email string, password string) (ports.AuthData, error) {
	user, err := s.Users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrUserNotFound) {
			return ports.AuthData{}, domainerrors.ErrInvalidCredentials
		}
		return ports.AuthData{}, err
	}
	if !s.Passwords.Verify(password, user.PasswordHash) {
		return ports.AuthData{}, domainerrors.ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(ports.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
	})
	if err != nil {
		return ports.AuthData{}, err
	}

	ResolveLogger(s.Logger).Info("user logged in",
		"event", "auth_user_logged_in",
		"module", "identity/auth-service",
		"layer", "application",
		"user_id", user.ID,
	)
	return ports.AuthData{Token: token, UserID: user.ID}, nil
}

func (s Service) GetStatus(ctx context.Context, sctx session.Context) (string, error) {
	if !sctx.Authenticated {
		return "", domainerrors.ErrUnauthenticated
	}
	user, err := s.Users.GetUser(ctx, sctx.UserID)
	if err != nil {
		return "", err
	}
	return user.Status, nil
}

// UpdateStatus mutates the caller's own status field only. ErrUserNotFound
// means the record vanished between authentication and this call.
func (s Service) UpdateStatus(ctx context.Context, sctx session.Context, status string) (ports.User, error) {
	if !sctx.Authenticated {
		return ports.User{}, domainerrors.ErrUnauthenticated
	}
	return s.Users.UpdateStatus(ctx, sctx.UserID, strings.TrimSpace(status), s.now())
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

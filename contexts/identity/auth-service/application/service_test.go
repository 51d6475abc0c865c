package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"postline/contexts/identity/auth-service/adapters/crypto"
	"postline/contexts/identity/auth-service/adapters/memory"
	domainerrors "postline/contexts/identity/auth-service/domain/errors"
	"postline/contracts/session"
)

func newTestService() (Service, *memory.Store) {
	store := memory.NewStore()
	service := Service{
		Users:     store,
		Passwords: crypto.PasswordHasher{},
		Tokens: crypto.TokenCodec{
			Secret:   []byte("test-secret"),
			Lifetime: time.Hour,
		},
		Clock:       store,
		IDGenerator: store,
	}
	return service, store
}

func TestRegisterThenLoginFlow(t *testing.T) {
	service, _ := newTestService()

	user, err := service.Register(context.Background(), "reader@example.com", "Reader", "sekret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected generated user id")
	}
	if user.Status != "I am new!" {
		t.Fatalf("unexpected default status %q", user.Status)
	}
	if user.PasswordHash == "sekret" {
		t.Fatal("password stored in plaintext")
	}

	auth, err := service.Login(context.Background(), "reader@example.com", "sekret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if auth.UserID != user.ID {
		t.Fatalf("login returned user %s, registered %s", auth.UserID, user.ID)
	}
	if auth.Token == "" {
		t.Fatal("expected session token")
	}
}

func TestRegisterCollectsAllViolations(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Register(context.Background(), "not-an-email", "Reader", "abc")
	if !errors.Is(err, domainerrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	var validationErr *domainerrors.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(validationErr.Violations) != 2 {
		t.Fatalf("expected both fields reported, got %d violations", len(validationErr.Violations))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service, _ := newTestService()

	if _, err := service.Register(context.Background(), "dup@example.com", "First", "sekret"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := service.Register(context.Background(), "dup@example.com", "Second", "sekret")
	if !errors.Is(err, domainerrors.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	service, _ := newTestService()

	if _, err := service.Register(context.Background(), "known@example.com", "Known", "sekret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, unknownErr := service.Login(context.Background(), "unknown@example.com", "sekret")
	_, wrongErr := service.Login(context.Background(), "known@example.com", "wrong-password")

	if !errors.Is(unknownErr, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongErr, domainerrors.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("failure messages differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestStatusRequiresAuthentication(t *testing.T) {
	service, _ := newTestService()

	if _, err := service.GetStatus(context.Background(), session.Anonymous()); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("get status: expected ErrUnauthenticated, got %v", err)
	}
	if _, err := service.UpdateStatus(context.Background(), session.Anonymous(), "hello"); !errors.Is(err, domainerrors.ErrUnauthenticated) {
		t.Fatalf("update status: expected ErrUnauthenticated, got %v", err)
	}
}

func TestUpdateStatusRoundTrip(t *testing.T) {
	service, _ := newTestService()

	user, err := service.Register(context.Background(), "status@example.com", "Status", "sekret")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	sctx := session.Authenticated(user.ID, user.Email)

	updated, err := service.UpdateStatus(context.Background(), sctx, "  Shipping it  ")
	if err != nil {
		t.Fatalf("update status failed: %v", err)
	}
	if updated.Status != "Shipping it" {
		t.Fatalf("expected trimmed status, got %q", updated.Status)
	}

	status, err := service.GetStatus(context.Background(), sctx)
	if err != nil {
		t.Fatalf("get status failed: %v", err)
	}
	if status != "Shipping it" {
		t.Fatalf("expected persisted status, got %q", status)
	}
}

func TestStatusForVanishedUser(t *testing.T) {
	service, _ := newTestService()

	sctx := session.Authenticated("ghost-user", "ghost@example.com")
	if _, err := service.GetStatus(context.Background(), sctx); !errors.Is(err, domainerrors.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

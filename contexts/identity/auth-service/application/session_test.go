package application

import (
	"testing"
	"time"

	"postline/contexts/identity/auth-service/adapters/crypto"
	"postline/contexts/identity/auth-service/ports"
)

func newTestResolver() (Resolver, ports.TokenCodec) {
	codec := crypto.TokenCodec{
		Secret:   []byte("test-secret"),
		Lifetime: time.Hour,
	}
	return Resolver{Tokens: codec}, codec
}

func TestResolveValidBearerToken(t *testing.T) {
	resolver, codec := newTestResolver()

	token, err := codec.Issue(ports.TokenClaims{UserID: "user-1", Email: "user@example.com"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	sctx := resolver.Resolve("Bearer " + token)
	if !sctx.Authenticated {
		t.Fatal("expected authenticated session")
	}
	if sctx.UserID != "user-1" || sctx.Email != "user@example.com" {
		t.Fatalf("unexpected session identity %+v", sctx)
	}
}

func TestResolveWithoutBearerPrefix(t *testing.T) {
	resolver, codec := newTestResolver()

	token, err := codec.Issue(ports.TokenClaims{UserID: "user-2", Email: "two@example.com"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	// Raw tokens are accepted too, the scheme prefix is optional.
	if sctx := resolver.Resolve(token); !sctx.Authenticated {
		t.Fatal("expected authenticated session for raw token")
	}
}

func TestResolveRejectsGarbageToAnonymous(t *testing.T) {
	resolver, _ := newTestResolver()

	for _, header := range []string{"", "Bearer", "Bearer ", "Bearer not-a-token", "nonsense"} {
		if sctx := resolver.Resolve(header); sctx.Authenticated {
			t.Fatalf("header %q: expected anonymous session", header)
		}
	}
}

func TestResolveRejectsForeignSignature(t *testing.T) {
	resolver, _ := newTestResolver()

	foreign := crypto.TokenCodec{Secret: []byte("other-secret"), Lifetime: time.Hour}
	token, err := foreign.Issue(ports.TokenClaims{UserID: "user-3", Email: "three@example.com"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if sctx := resolver.Resolve("Bearer " + token); sctx.Authenticated {
		t.Fatal("expected anonymous session for foreign signature")
	}
}

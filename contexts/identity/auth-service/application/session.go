package application

import (
	"log/slog"
	"strings"

	"postline/contexts/identity/auth-service/ports"
	"postline/contracts/session"
)

// Resolver derives the per-request session context from the Authorization
// header. It never rejects: a missing, malformed, or expired token yields
// the anonymous context and the decision is left to each operation.
type Resolver struct {
	Tokens ports.TokenCodec
	Logger *slog.Logger
}

func (r Resolver) Resolve(authorizationHeader string) session.Context {
	raw := strings.TrimSpace(authorizationHeader)
	if raw == "" {
		return session.Anonymous()
	}
	if parts := strings.SplitN(raw, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		raw = strings.TrimSpace(parts[1])
	}
	if raw == "" {
		return session.Anonymous()
	}

	claims, err := r.Tokens.Verify(raw)
	if err != nil {
		ResolveLogger(r.Logger).Debug("session token rejected",
			"event", "auth_session_token_rejected",
			"module", "identity/auth-service",
			"layer", "application",
			"error", err.Error(),
		)
		return session.Anonymous()
	}
	return session.Authenticated(claims.UserID, claims.Email)
}

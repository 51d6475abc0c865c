package auth

import (
	"log/slog"
	"time"

	"postline/contexts/identity/auth-service/adapters/crypto"
	httpadapter "postline/contexts/identity/auth-service/adapters/http"
	"postline/contexts/identity/auth-service/adapters/memory"
	"postline/contexts/identity/auth-service/application"
	"postline/contexts/identity/auth-service/ports"
)

// Module is the auth-service composition root exposed to runtime wiring.
type Module struct {
	Handler  httpadapter.Handler
	Sessions application.Resolver
	Store    *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Users       ports.UserRepository
	Passwords   ports.PasswordHasher
	Tokens      ports.TokenCodec
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// NewModule wires identity use-cases, the session resolver, and the
// transport handler using explicit ports.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Users:       deps.Users,
		Passwords:   deps.Passwords,
		Tokens:      deps.Tokens,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Sessions: application.Resolver{
			Tokens: deps.Tokens,
			Logger: deps.Logger,
		},
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters and a process-local signing secret.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Users:     store,
		Passwords: crypto.PasswordHasher{},
		Tokens: crypto.TokenCodec{
			Secret:   []byte("postline-dev-secret"),
			Lifetime: time.Hour,
		},
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}

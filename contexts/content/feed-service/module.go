package feed

import (
	"log/slog"

	httpadapter "postline/contexts/content/feed-service/adapters/http"
	"postline/contexts/content/feed-service/adapters/memory"
	"postline/contexts/content/feed-service/application"
	"postline/contexts/content/feed-service/ports"
)

// Module bundles the feed service's wired entry points.
type Module struct {
	Handler httpadapter.Handler
	Service application.Service

	// Store and Attachments are set only by NewInMemoryModule.
	Store       *memory.Store
	Attachments *memory.AttachmentStore
}

type Dependencies struct {
	Posts         ports.PostRepository
	Owners        ports.OwnerIndex
	Attachments   ports.AttachmentStore
	Notifications ports.NotificationPublisher
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	service := application.Service{
		Posts:         deps.Posts,
		Owners:        deps.Owners,
		Attachments:   deps.Attachments,
		Notifications: deps.Notifications,
		Clock:         deps.Clock,
		IDGenerator:   deps.IDGenerator,
		Logger:        deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{Service: service, Logger: deps.Logger},
		Service: service,
	}
}

// NewInMemoryModule wires the feed service against in-memory adapters.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	attachments := memory.NewAttachmentStore()

	module := NewModule(Dependencies{
		Posts:         store,
		Owners:        store,
		Attachments:   attachments,
		Notifications: store,
		Clock:         store,
		IDGenerator:   store,
		Logger:        logger,
	})
	module.Store = store
	module.Attachments = attachments
	return module
}

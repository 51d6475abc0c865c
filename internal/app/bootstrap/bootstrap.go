package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	feed "postline/contexts/content/feed-service"
	feeddisk "postline/contexts/content/feed-service/adapters/disk"
	feedevents "postline/contexts/content/feed-service/adapters/events"
	feedpostgres "postline/contexts/content/feed-service/adapters/postgres"
	feedworkers "postline/contexts/content/feed-service/application/workers"
	auth "postline/contexts/identity/auth-service"
	"postline/contexts/identity/auth-service/adapters/crypto"
	authpostgres "postline/contexts/identity/auth-service/adapters/postgres"
	"postline/internal/platform/config"
	"postline/internal/platform/db"
	"postline/internal/platform/httpserver"
	"postline/internal/platform/messaging"
	"postline/internal/shared/events"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	bus      *messaging.Bus
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres      *db.Postgres
	sweeper       feedworkers.AttachmentSweeper
	sweepInterval time.Duration
	logger        *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	authRepo := authpostgres.NewRepository(pg.DB, logger)
	if err := authRepo.Migrate(migrateCtx); err != nil {
		return nil, err
	}
	authModule := auth.NewModule(auth.Dependencies{
		Users:     authRepo,
		Passwords: crypto.PasswordHasher{},
		Tokens: crypto.TokenCodec{
			Secret:   []byte(cfg.JWTSecret),
			Lifetime: cfg.TokenLifetime,
		},
		Clock:       authpostgres.SystemClock{},
		IDGenerator: authpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	bus := messaging.NewBus(logger)

	attachments, err := feeddisk.NewAttachmentStore(cfg.UploadDir, logger)
	if err != nil {
		return nil, err
	}

	feedRepo := feedpostgres.NewRepository(pg.DB, logger)
	if err := feedRepo.Migrate(migrateCtx); err != nil {
		return nil, err
	}
	feedModule := feed.NewModule(feed.Dependencies{
		Posts:       feedRepo,
		Owners:      feedRepo,
		Attachments: attachments,
		Notifications: feedevents.Publisher{
			Bus:    bus,
			Source: cfg.ServiceName,
			Logger: logger,
		},
		Clock:       feedpostgres.SystemClock{},
		IDGenerator: feedpostgres.UUIDGenerator{},
		Logger:      logger,
	})

	err = bus.Subscribe(context.Background(), feedevents.Topic, func(ctx context.Context, envelope events.Envelope) error {
		logger.Info("post event observed",
			"event", "bootstrap_post_event_observed",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"event_type", envelope.EventType,
			"entity_id", envelope.EntityID,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	server := httpserver.New(authModule, feedModule, logger, normalizeAddr(cfg.HTTPPort), cfg.UploadDir)
	return &APIApp{
		server:   server,
		postgres: pg,
		bus:      bus,
		logger:   logger,
	}, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	attachments, err := feeddisk.NewAttachmentStore(cfg.UploadDir, logger)
	if err != nil {
		return nil, err
	}

	repo := feedpostgres.NewRepository(pg.DB, logger)
	return &WorkerApp{
		postgres: pg,
		sweeper: feedworkers.AttachmentSweeper{
			Posts:       repo,
			Attachments: attachments,
			Clock:       feedpostgres.SystemClock{},
			Logger:      logger,
		},
		sweepInterval: cfg.SweepInterval,
		logger:        logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.sweepInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"sweep_interval", w.sweepInterval.String(),
	)

	for {
		if err := w.sweeper.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}

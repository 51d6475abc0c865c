package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	feed "postline/contexts/content/feed-service"
	auth "postline/contexts/identity/auth-service"
	"postline/contracts/session"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "postline/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	auth      auth.Module
	feed      feed.Module
	staticDir string
}

func New(
	authModule auth.Module,
	feedModule feed.Module,
	logger *slog.Logger,
	addr string,
	staticDir string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}
	if staticDir == "" {
		staticDir = "images"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		auth:      authModule,
		feed:      feedModule,
		staticDir: staticDir,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.Handle("GET /images/",
		http.StripPrefix("/images/", http.FileServer(http.Dir(s.staticDir))))

	s.mux.HandleFunc("PUT /auth/signup", s.handleSignup)
	s.mux.HandleFunc("POST /auth/login", s.handleLogin)
	s.mux.HandleFunc("GET /auth/status", s.handleGetStatus)
	s.mux.HandleFunc("PATCH /auth/status", s.handleUpdateStatus)

	s.mux.HandleFunc("GET /feed/posts", s.handleListPosts)
	s.mux.HandleFunc("POST /feed/post", s.handleCreatePost)
	s.mux.HandleFunc("GET /feed/post/{post_id}", s.handleGetPost)
	s.mux.HandleFunc("PUT /feed/post/{post_id}", s.handleUpdatePost)
	s.mux.HandleFunc("DELETE /feed/post/{post_id}", s.handleDeletePost)

	s.mux.HandleFunc("PUT /post-image", s.handleUploadImage)
}

// resolveSession turns the Authorization header into the caller's session.
// Missing or invalid tokens yield the anonymous session; route handlers
// never reject here, access decisions belong to the application layer.
func (s *Server) resolveSession(r *http.Request) session.Context {
	return s.auth.Sessions.Resolve(r.Header.Get("Authorization"))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hyperspot/fileparser/internal/config"
	"github.com/hyperspot/fileparser/internal/service"
)

// Server is the HTTP front end over the parsing service.
type Server struct {
	router chi.Router
	svc    *service.Service
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(svc *service.Service, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{svc: svc, log: log, cfg: cfg}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/files/info", s.handleInfo)
	r.Post("/files/parse", s.handleParseUpload)
	r.Post("/files/parse_local", s.handleParseLocal)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/repoguide/repoguide/internal/db"
	"github.com/repoguide/repoguide/internal/schema"
)

// Indexer triggers an indexing run for a repository path.
type Indexer interface {
	Index(ctx context.Context, root string) (int, error)
}

// Explainer answers a question from the vector index.
type Explainer interface {
	Explain(ctx context.Context, question, scope string) (*schema.Answer, error)
}

// Config holds server configuration.
type Config struct {
	Port       int
	AllowAll   bool   // allow all CORS origins (dev mode)
	QdrantURL  string // reported by /healthz and linked from onboarding
	Collection string // recorded with each indexing run
}

// Server is the repoguide HTTP API. It adapts requests and responses only;
// the pipeline components own the business logic.
type Server struct {
	cfg        Config
	indexer    Indexer
	explainer  Explainer
	runs       *db.DB
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all dependencies. runs may be nil, in which case
// run history is neither recorded nor served.
func New(cfg Config, indexer Indexer, explainer Explainer, runs *db.DB) *Server {
	s := &Server{
		cfg:       cfg,
		indexer:   indexer,
		explainer: explainer,
		runs:      runs,
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/index", s.handleIndex)
		r.Post("/explain", s.handleExplain)
		r.Post("/preflight", s.handlePreflight)
		r.Post("/change-digest", s.handleChangeDigest)
		r.Post("/onboard", s.handleOnboard)
		r.Get("/runs", s.handleRuns)
	})

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("repoguide API listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/terra-clan/content-engine/internal/cache"
	"github.com/terra-clan/content-engine/internal/config"
	"github.com/terra-clan/content-engine/internal/engine"
)

// Server represents the HTTP API server
type Server struct {
	config          config.ServerConfig
	router          *chi.Mux
	engine          *engine.Engine
	cache           cache.Cache
	metrics         *Metrics
	cacheMiddleware *CacheMiddleware
}

// NewServer creates a new API server. respCache may be nil to disable response caching.
func NewServer(cfg config.ServerConfig, eng *engine.Engine, respCache cache.Cache) *Server {
	s := &Server{
		config:  cfg,
		engine:  eng,
		cache:   respCache,
		metrics: NewMetrics(),
	}
	if respCache != nil {
		s.cacheMiddleware = NewCacheMiddleware(respCache, s.metrics)
	}
	s.metrics.ObserveEngine(eng)
	s.setupRouter()
	return s
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)
	r.Use(middleware.Timeout(10 * time.Second))

	origins := s.config.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-Cache"},
		MaxAge:         300,
	}))

	// Operational endpoints
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	// API v1 routes (read-only)
	r.Route("/api/v1", func(r chi.Router) {
		if s.cacheMiddleware != nil {
			r.Use(s.cacheMiddleware.Handle)
		}

		// Problems
		r.Route("/problems", func(r chi.Router) {
			r.Get("/", s.handleListProblems)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetProblem)
				r.Get("/concept", s.handleGetProblemConcept)
				r.Get("/related-patterns", s.handleRelatedPatterns)
			})
		})

		// Categories
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleListCategories)
			r.Get("/{tag}/problems", s.handleCategoryProblems)
		})

		// DSA concepts and patterns
		r.Route("/dsa-concepts", func(r chi.Router) {
			r.Get("/", s.handleListDSAConcepts)
			r.Get("/{id}", s.handleGetDSAConcept)
			r.Get("/{id}/learning-path", s.handleLearningPath)
		})
		r.Route("/patterns", func(r chi.Router) {
			r.Get("/", s.handleListPatterns)
			r.Get("/{id}/related-problems", s.handleRelatedProblems)
		})

		r.Get("/coverage", s.handleCoverage)
		r.Get("/routes", s.handleRoutes)
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

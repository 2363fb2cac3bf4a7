// Package server exposes the sanitization engine over HTTP: uploads,
// run history, the live dashboard, and WebSocket event streaming.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/raaihank/datascrub/internal/cache"
	"github.com/raaihank/datascrub/internal/config"
	"github.com/raaihank/datascrub/internal/detect"
	"github.com/raaihank/datascrub/internal/history"
	"github.com/raaihank/datascrub/internal/logger"
	"github.com/raaihank/datascrub/internal/metrics"
	"github.com/raaihank/datascrub/internal/recognize"
	"github.com/raaihank/datascrub/internal/web"
	"github.com/raaihank/datascrub/internal/ws"
)

// Server represents the sanitization web service
type Server struct {
	config    *config.Config
	logger    *logger.Logger
	detectors []detect.Detector
	router    *mux.Router
	server    *http.Server
	wsHub     *ws.Hub
	metrics   *metrics.Metrics
	results   *cache.ResultCache
	runs      *history.Store
	limiter   *rateLimiter
}

// New creates a new server instance
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	var recognizer recognize.Recognizer
	if cfg.Sanitizer.NameModel != "" {
		recognizer = recognize.NewModelRecognizer(
			log.WithComponent("recognize").Logger, cfg.Sanitizer.NameModel, 128)
	}

	detectors, err := detect.Build(cfg.Sanitizer.Detectors, recognizer)
	if err != nil {
		return nil, fmt.Errorf("failed to build detectors: %w", err)
	}

	hubConfig := &ws.HubConfig{
		BroadcastRuns:        cfg.WebSocket.Events.BroadcastRuns,
		BroadcastDetections:  cfg.WebSocket.Events.BroadcastDetections,
		BroadcastConnections: cfg.WebSocket.Events.BroadcastConnections,
		AllowedOrigins:       cfg.WebSocket.AllowedOrigins,
	}
	wsHub := ws.NewHub(hubConfig, log.WithComponent("ws").Logger)

	server := &Server{
		config:    cfg,
		logger:    log.WithComponent("server"),
		detectors: detectors,
		router:    mux.NewRouter(),
		wsHub:     wsHub,
		metrics:   metrics.New(),
	}

	if cfg.Cache.Enabled {
		results, err := cache.NewResultCache(&cache.Config{
			RedisURL: cfg.Cache.RedisURL,
			TTL:      cfg.Cache.TTL,
		}, log.WithComponent("cache").Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
		server.results = results
	}

	if cfg.Storage.Enabled {
		runs, err := history.NewStore(&history.Config{
			DatabaseURL:  cfg.Storage.DatabaseURL,
			MaxOpenConns: cfg.Storage.MaxOpenConns,
			MaxIdleConns: cfg.Storage.MaxIdleConns,
			ConnLifetime: cfg.Storage.ConnLifetime,
		}, log.WithComponent("history").Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create run history store: %w", err)
		}
		server.runs = runs
	}

	if cfg.RateLimit.Enabled {
		server.limiter = newRateLimiter(cfg.RateLimit.RequestsPerSec, cfg.RateLimit.Burst)
	}

	server.setupRoutes()

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/info", s.handleInfo).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Dashboard
	s.router.HandleFunc("/", web.ServeDashboard).Methods("GET")
	s.router.HandleFunc("/dashboard", web.ServeDashboard).Methods("GET")

	// WebSocket endpoint for dashboard
	if s.config.WebSocket.Enabled {
		s.router.HandleFunc(s.config.WebSocket.Path, s.handleWebSocket).Methods("GET")
	}

	// Sanitization API
	apiRouter := s.router.PathPrefix("/api").Subrouter()
	apiRouter.Use(s.loggingMiddleware)
	apiRouter.Use(s.rateLimitMiddleware)
	apiRouter.HandleFunc("/sanitize", s.handleSanitize).Methods("POST")
	apiRouter.HandleFunc("/runs", s.handleListRuns).Methods("GET")
	apiRouter.HandleFunc("/runs/{id}", s.handleGetRun).Methods("GET")
	apiRouter.HandleFunc("/runs/{id}/download", s.handleDownload).Methods("GET")
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting datascrub server",
		zap.Int("port", s.config.Server.Port),
		zap.Strings("detectors", s.config.Sanitizer.Detectors),
		zap.Bool("cache_enabled", s.config.Cache.Enabled),
		zap.Bool("storage_enabled", s.config.Storage.Enabled),
	)

	go s.wsHub.Run()

	return s.server.ListenAndServe()
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping datascrub server")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	if s.results != nil {
		if err := s.results.Close(); err != nil {
			s.logger.Warn("Failed to close result cache", zap.Error(err))
		}
	}
	if s.runs != nil {
		if err := s.runs.Close(); err != nil {
			s.logger.Warn("Failed to close run history store", zap.Error(err))
		}
	}
	return nil
}

// handleWebSocket handles WebSocket connections for the dashboard
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.wsHub.HandleWebSocket(w, r)
}

// GetWebSocketHub returns the WebSocket hub for broadcasting events
func (s *Server) GetWebSocketHub() *ws.Hub {
	return s.wsHub
}

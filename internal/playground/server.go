// ============================================================================
// HeLang - Saint He's programming language
// ============================================================================
//
// Package:     playground
// Description: HTTP server hosting the websocket playground
// Author:      lwd-temp
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package playground

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	helog "github.com/lwd-temp/helang/foundation/core/log"
	"github.com/lwd-temp/helang/foundation/helang"
	"github.com/lwd-temp/helang/foundation/helang/ast"
	"github.com/lwd-temp/helang/foundation/helang/env"
	"github.com/lwd-temp/helang/pkg/core/cache"
	"github.com/lwd-temp/helang/pkg/core/health"
	"github.com/lwd-temp/helang/pkg/core/version"
)

// Server is the playground HTTP server
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	logger     *helog.Logger
	config     Config
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration // closes connections that stay silent
	MaxSessions  int           // health degrades above this many connections

	Engine *helang.Engine
	Logger *helog.Logger

	// ParseCache is reported by /healthz. Without an Engine, the default
	// engine is built around it.
	ParseCache *cache.Cache[ast.Node]
}

// DefaultConfig returns default server configuration
func DefaultConfig() Config {
	return Config{
		Host:         "127.0.0.1",
		Port:         8964,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		MaxSessions:  256,
	}
}

// New creates a new playground server
func New(cfg Config) *Server {
	defaults := DefaultConfig()
	if cfg.Host == "" {
		cfg.Host = defaults.Host
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = defaults.IdleTimeout
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = defaults.MaxSessions
	}
	if cfg.Logger == nil {
		cfg.Logger = helog.GetDefault()
	}
	if cfg.Engine == nil {
		if cfg.ParseCache == nil {
			cfg.ParseCache = cache.New[ast.Node](cache.DefaultConfig())
		}
		cfg.Engine = helang.New(helang.Options{
			Logger:     cfg.Logger,
			NoScripts:  true,
			ParseCache: cfg.ParseCache,
		})
	}
	logger := cfg.Logger.WithField("component", "playground")

	ws := newWebSocketHandler(cfg.Engine, cfg.IdleTimeout, logger)
	checks := health.NewRegistry("playground", version.Playground)
	checks.Register("engine", engineCheck(cfg.Engine))
	checks.Register("sessions", ws.sessionsCheck(cfg.MaxSessions))
	if cfg.ParseCache != nil {
		checks.Register("parse_cache", parseCacheCheck(cfg.ParseCache))
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", ws)
	mux.Handle("/healthz", checks.Handler(5*time.Second))

	handler := loggingMiddleware(logger, mux)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		handler: handler,
		logger:  logger,
		config:  cfg,
	}
}

// Handler returns the HTTP handler serving every route
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves until Stop is called
func (s *Server) Start() error {
	s.logger.Info("Starting playground", helog.Fields{"address": s.Address()})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully stops the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping playground")
	return s.httpServer.Shutdown(ctx)
}

// Address returns the server address
func (s *Server) Address() string {
	return s.httpServer.Addr
}

// engineCheck evaluates a tiny program to prove the interpreter works
func engineCheck(engine *helang.Engine) health.CheckFunc {
	probe := engine.WithOutput(io.Discard)
	return func(ctx context.Context) health.CheckResult {
		value, err := probe.Run(ctx, "1 | 2 + 1;", env.New())
		if err != nil {
			return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error()}
		}
		if value.String() != "2 | 3" {
			return health.CheckResult{Status: health.StatusUnhealthy, Message: "unexpected result " + value.String()}
		}
		return health.CheckResult{Status: health.StatusHealthy}
	}
}

// parseCacheCheck reports cache usage; it never fails
func parseCacheCheck(c *cache.Cache[ast.Node]) health.CheckFunc {
	return func(ctx context.Context) health.CheckResult {
		hits, misses, rate := c.Stats()
		return health.CheckResult{
			Status: health.StatusHealthy,
			Details: map[string]interface{}{
				"entries":  c.Size(),
				"hits":     hits,
				"misses":   misses,
				"hit_rate": rate,
			},
		}
	}
}

func loggingMiddleware(logger *helog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		logger.Debug("HTTP request", helog.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		})
	})
}

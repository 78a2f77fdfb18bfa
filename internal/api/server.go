// Package api provides the REST query API: health, stats, the game
// registry listing, and the game-server query endpoint itself, via a
// Gin-based HTTP server.
package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/riftline/gamedig/internal/api/handlers"
	"github.com/riftline/gamedig/internal/api/middleware"
	"github.com/riftline/gamedig/internal/config"
	"github.com/riftline/gamedig/internal/metrics"
	"github.com/riftline/gamedig/internal/ratelimit"
)

// Server is the query REST API server.
//
// Security note: do not expose the API to untrusted networks without an
// API key configured.
type Server struct {
	cfg        *config.Config
	logger     *slog.Logger
	engine     *gin.Engine
	httpServer *http.Server
	limiter    *ratelimit.Limiter
}

// New builds a Server bound to cfg.Server.Host:Port. stats feeds /stats;
// pass a fresh metrics.NewQueryStats() from the caller so it can also be
// recorded into from a CLI query path sharing the same process.
func New(cfg *config.Config, logger *slog.Logger, stats *metrics.QueryStats) *Server {
	if cfg == nil {
		panic("api.New: cfg is nil")
	}

	limiter := ratelimit.New(ratelimit.Config{
		GlobalRate:      cfg.RateLimit.GlobalQPS,
		GlobalBurst:     cfg.RateLimit.GlobalBurst,
		PerIPRate:       cfg.RateLimit.IPQPS,
		PerIPBurst:      cfg.RateLimit.IPBurst,
		CleanupInterval: time.Duration(cfg.RateLimit.CleanupSeconds * float64(time.Second)),
		MaxTrackedIPs:   cfg.RateLimit.MaxIPEntries,
	})

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.SlogRequestLogger(logger))
	engine.Use(middleware.RateLimit(limiter))

	h := handlers.New(cfg, logger, stats, limiter)
	RegisterRoutes(engine, h, cfg)
	mountStatusPage(engine, logger)

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return &Server{cfg: cfg, logger: logger, engine: engine, httpServer: httpServer, limiter: limiter}
}

func (s *Server) Addr() string {
	if s.httpServer == nil {
		return ""
	}
	return s.httpServer.Addr
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

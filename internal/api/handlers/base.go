// Package handlers implements the REST API endpoint handlers for the
// query service.
//
// @title GameDig Query API
// @version 1.0
// @description REST API for querying game server status across protocol families.
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:8080
// @BasePath /api/v1
//
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package handlers

import (
	"log/slog"
	"time"

	"github.com/riftline/gamedig/internal/config"
	"github.com/riftline/gamedig/internal/metrics"
	"github.com/riftline/gamedig/internal/ratelimit"
)

// Handler contains dependencies for API handlers.
type Handler struct {
	cfg       *config.Config
	logger    *slog.Logger
	startTime time.Time
	stats     *metrics.QueryStats
	limiter   *ratelimit.Limiter
}

// New creates a new Handler with the given configuration. limiter is stored
// but no handler consults it; admission control is done by
// middleware.RateLimit. stats may be nil, in which case /stats reports zero
// query counters.
func New(cfg *config.Config, logger *slog.Logger, stats *metrics.QueryStats, limiter *ratelimit.Limiter) *Handler {
	return &Handler{
		cfg:       cfg,
		logger:    logger,
		startTime: time.Now(),
		stats:     stats,
		limiter:   limiter,
	}
}

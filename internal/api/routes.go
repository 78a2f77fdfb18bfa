package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/riftline/gamedig/internal/api/handlers"
	"github.com/riftline/gamedig/internal/api/middleware"
	"github.com/riftline/gamedig/internal/config"

	_ "github.com/riftline/gamedig/internal/api/docs" // swagger docs
)

// RegisterRoutes mounts the query API's endpoints, plus Swagger UI, on r.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	if cfg != nil && cfg.API.APIKey != "" {
		api.Use(middleware.RequireAPIKey(cfg.API.APIKey))
	}

	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)
	api.GET("/config", h.GetConfig)

	api.GET("/games", h.Games)
	api.GET("/query/:game_id", h.Query)
}

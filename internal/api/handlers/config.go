package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/riftline/gamedig/internal/api/models"
)

// ConfigResponse mirrors config.Config with APIKey redacted.
type ConfigResponse struct {
	Server struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	} `json:"server"`
	Logging   any  `json:"logging"`
	RateLimit any  `json:"rate_limit"`
	Query     any  `json:"query"`
	APIKeySet bool `json:"api_key_set"`
}

// GetConfig godoc
// @Summary Get current configuration
// @Description Returns the current server configuration (sensitive fields redacted)
// @Tags config
// @Produce json
// @Success 200 {object} handlers.ConfigResponse
// @Failure 500 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /config [get]
func (h *Handler) GetConfig(c *gin.Context) {
	if h.cfg == nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "config unavailable"})
		return
	}

	var resp ConfigResponse
	resp.Server.Host = h.cfg.Server.Host
	resp.Server.Port = h.cfg.Server.Port
	resp.Logging = h.cfg.Logging
	resp.RateLimit = h.cfg.RateLimit
	resp.Query = h.cfg.Query
	resp.APIKeySet = h.cfg.API.APIKey != ""

	c.JSON(http.StatusOK, resp)
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/riftline/gamedig/internal/api/models"
	"github.com/riftline/gamedig/internal/diag"
	"github.com/riftline/gamedig/internal/nio"
	"github.com/riftline/gamedig/internal/registry"
	"github.com/riftline/gamedig/internal/response"
	"github.com/riftline/gamedig/internal/settings"
)

// Query godoc
// @Summary Query a game server
// @Description Queries a game server's status by game id and address (host:port)
// @Tags query
// @Produce json
// @Param game_id path string true "Registry game id, e.g. csgo"
// @Param address query string true "Server address as host:port"
// @Param retries query int false "Additional attempts after the first (default 1)"
// @Param timeout_ms query int false "UDP/TCP read timeout override in milliseconds"
// @Success 200 {object} models.QueryResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 504 {object} models.ErrorResponse
// @Security ApiKeyAuth
// @Router /query/{game_id} [get]
func (h *Handler) Query(c *gin.Context) {
	gameID := c.Param("game_id")

	address := c.Query("address")
	if address == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "address query parameter is required"})
		return
	}

	endpoint, err := nio.ParseEndpoint(address)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error(), Kind: diag.InvalidInput.String()})
		return
	}

	timeouts := h.baseTimeouts()
	if v := c.Query("retries"); v != "" {
		if n, convErr := strconv.Atoi(v); convErr == nil && n >= 0 {
			timeouts.Retries = uint(n)
		}
	}
	if v := c.Query("timeout_ms"); v != "" {
		if n, convErr := strconv.Atoi(v); convErr == nil && n > 0 {
			d := time.Duration(n) * time.Millisecond
			timeouts.UDP.Read = &d
			timeouts.TCP.Read = &d
		}
	}

	start := time.Now()
	server, err := registry.Query(gameID, endpoint, timeouts)
	latency := time.Since(start)

	if h.stats != nil {
		h.stats.RecordQuery(gameID, err == nil, diag.Is(err, diag.SocketTimeout), latency.Nanoseconds())
	}

	if err != nil {
		status := http.StatusBadGateway
		kind := ""
		if de, ok := err.(*diag.Error); ok {
			kind = de.Kind.String()
		}
		switch {
		case diag.Is(err, diag.GameNotFound):
			status = http.StatusNotFound
		case diag.Is(err, diag.InvalidInput):
			status = http.StatusBadRequest
		case diag.Is(err, diag.SocketTimeout):
			status = http.StatusGatewayTimeout
		}
		c.JSON(status, models.ErrorResponse{Error: err.Error(), Kind: kind})
		return
	}

	c.JSON(http.StatusOK, toQueryResponse(server, latency))
}

// Games godoc
// @Summary List supported games
// @Description Returns every registered game id with its display name, default port, and protocol family
// @Tags query
// @Produce json
// @Success 200 {array} models.GameSummary
// @Security ApiKeyAuth
// @Router /games [get]
func (h *Handler) Games(c *gin.Context) {
	out := make([]models.GameSummary, 0, len(registry.GAMES))
	for id, entry := range registry.GAMES {
		out = append(out, models.GameSummary{
			ID:          id,
			DisplayName: entry.DisplayName,
			DefaultPort: entry.DefaultPort,
			Protocol:    entry.Family.String(),
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) baseTimeouts() settings.TimeoutConfig {
	var t settings.TimeoutConfig
	t.Retries = 1
	if h.cfg == nil {
		return t
	}
	connect := time.Duration(h.cfg.Query.DefaultTCPConnectMS) * time.Millisecond
	tcpRead := time.Duration(h.cfg.Query.DefaultTCPReadMS) * time.Millisecond
	udpRead := time.Duration(h.cfg.Query.DefaultUDPReadMS) * time.Millisecond
	t.TCP.Connect = &connect
	t.TCP.Read = &tcpRead
	t.UDP.Read = &udpRead
	t.Retries = uint(h.cfg.Query.DefaultRetries)
	return t
}

func toQueryResponse(s response.GenericServer, latency time.Duration) models.QueryResponse {
	players := make([]models.PlayerResponse, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, models.PlayerResponse{
			Name:           p.Name,
			AdditionalData: scalarMapToStrings(p.AdditionalData),
		})
	}

	return models.QueryResponse{
		Name:           s.Name,
		Description:    s.Description,
		Map:            s.Map,
		Mode:           s.Mode,
		Version:        s.Version,
		AntiCheat:      s.AntiCheat,
		HasPassword:    s.HasPassword,
		MaxPlayers:     s.MaxPlayers,
		CurrentPlayers: s.CurrentPlayers,
		Players:        players,
		AdditionalData: scalarMapToStrings(s.AdditionalData),
		LatencyMs:      latency.Milliseconds(),
	}
}

func scalarMapToStrings(m map[string]response.Scalar) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v.String()
	}
	return out
}

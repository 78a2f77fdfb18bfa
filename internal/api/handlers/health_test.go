package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftline/gamedig/internal/api/handlers"
	"github.com/riftline/gamedig/internal/api/models"
	"github.com/riftline/gamedig/internal/config"
	"github.com/riftline/gamedig/internal/metrics"
)

func TestHealth(t *testing.T) {
	cfg := &config.Config{}
	h := handlers.New(cfg, nil, nil, nil)
	r := setupTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestStats(t *testing.T) {
	cfg := &config.Config{}
	h := handlers.New(cfg, nil, nil, nil)
	r := setupTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ServerStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Uptime)
	assert.Greater(t, resp.CPU.NumCPU, 0)
}

func TestStats_WithQueryStats(t *testing.T) {
	cfg := &config.Config{}
	stats := metrics.NewQueryStats()
	stats.RecordQuery("csgo", true, false, int64(15_000_000))
	stats.RecordQuery("csgo", false, true, int64(2_000_000_000))

	h := handlers.New(cfg, nil, stats, nil)
	r := setupTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ServerStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp.Query.QueriesTotal)
	assert.EqualValues(t, 1, resp.Query.QueriesFailed)
	assert.EqualValues(t, 1, resp.Query.QueriesTimeout)
	assert.EqualValues(t, 2, resp.Query.QueriesByFamily["csgo"])
}

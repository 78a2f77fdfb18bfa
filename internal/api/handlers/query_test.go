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
)

func TestQuery_MissingAddress(t *testing.T) {
	h := handlers.New(&config.Config{}, nil, nil, nil)
	r := setupTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/query/csgo", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuery_InvalidAddress(t *testing.T) {
	h := handlers.New(&config.Config{}, nil, nil, nil)
	r := setupTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/query/csgo?address=not-an-address", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}

func TestQuery_UnknownGame(t *testing.T) {
	h := handlers.New(&config.Config{}, nil, nil, nil)
	r := setupTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/query/not-a-real-game?address=127.0.0.1:27015", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// TestQuery_UnreachableHost exercises the timeout/connection-refused path
// against a port nothing is listening on; it must not hang and must map
// to a non-2xx status without panicking.
func TestQuery_UnreachableHost(t *testing.T) {
	h := handlers.New(&config.Config{}, nil, nil, nil)
	r := setupTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/query/csgo?address=127.0.0.1:1&retries=0&timeout_ms=50", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.NotEqual(t, http.StatusOK, w.Code)
}

func TestGames(t *testing.T) {
	h := handlers.New(&config.Config{}, nil, nil, nil)
	r := setupTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/games", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []models.GameSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp)

	found := false
	for _, g := range resp {
		if g.ID == "csgo" {
			found = true
			assert.NotEmpty(t, g.Protocol)
		}
	}
	assert.True(t, found, "expected csgo in /games listing")
}

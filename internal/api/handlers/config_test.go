package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftline/gamedig/internal/api/handlers"
	"github.com/riftline/gamedig/internal/config"
)

func TestGetConfig(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "0.0.0.0", Port: 8080},
		API:    config.APIConfig{APIKey: "secret"},
	}
	h := handlers.New(cfg, nil, nil, nil)
	r := setupTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/config", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handlers.ConfigResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "0.0.0.0", resp.Server.Host)
	assert.Equal(t, 8080, resp.Server.Port)
	assert.True(t, resp.APIKeySet)
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestGetConfig_NilConfig(t *testing.T) {
	h := handlers.New(nil, nil, nil, nil)
	r := setupTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/config", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftline/gamedig/internal/api/models"
)

func TestErrorResponse_KindOmittedWhenEmpty(t *testing.T) {
	b, err := json.Marshal(models.ErrorResponse{Error: "boom"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "kind")
}

func TestQueryResponse_RoundTrip(t *testing.T) {
	mapName := "de_dust2"
	qr := models.QueryResponse{
		Name:           "My Server",
		Map:            &mapName,
		MaxPlayers:     16,
		CurrentPlayers: 3,
		Players: []models.PlayerResponse{
			{Name: "alice", AdditionalData: map[string]string{"score": "10"}},
		},
		LatencyMs: 42,
	}

	b, err := json.Marshal(qr)
	require.NoError(t, err)

	var out models.QueryResponse
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, qr.Name, out.Name)
	require.NotNil(t, out.Map)
	assert.Equal(t, mapName, *out.Map)
	assert.Equal(t, qr.MaxPlayers, out.MaxPlayers)
	assert.Len(t, out.Players, 1)
	assert.Equal(t, "alice", out.Players[0].Name)
}

func TestGameSummary_JSONFields(t *testing.T) {
	gs := models.GameSummary{ID: "csgo", DisplayName: "Counter-Strike: Global Offensive", DefaultPort: 27015, Protocol: "valve"}
	b, err := json.Marshal(gs)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"id":"csgo"`)
	assert.Contains(t, string(b), `"protocol":"valve"`)
}

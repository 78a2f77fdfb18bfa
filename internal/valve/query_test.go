package valve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultToGeneric(t *testing.T) {
	result := &Result{
		Info: &Info{
			Name:              "srv",
			Map:               "de_dust2",
			PlayersOnline:     2,
			PlayersMaximum:    10,
			PasswordProtected: true,
			VACEnabled:        true,
			Folder:            "cstrike",
			Game:              "Counter-Strike: Source",
		},
		Players: []Player{{Name: "alice", Score: 5, Duration: 120.5}},
		Rules:   Rules{"sv_gravity": "800"},
	}

	gs := result.ToGeneric()
	assert.Equal(t, "srv", gs.Name)
	assert.Equal(t, uint16(10), gs.MaxPlayers)
	assert.Equal(t, uint16(2), gs.CurrentPlayers)
	require.NotNil(t, gs.HasPassword)
	assert.True(t, *gs.HasPassword)
	require.Len(t, gs.Players, 1)
	assert.Equal(t, "alice", gs.Players[0].Name)
	assert.Equal(t, "800", gs.AdditionalData["rule:sv_gravity"].Str)
}

func TestGoldSrcToInfoMapsFields(t *testing.T) {
	g := &GoldSrcInfo{
		Name:           "gs-srv",
		Map:            "crossfire",
		PlayersOnline:  4,
		PlayersMaximum: 16,
		ServerType:     Dedicated,
		Environment:    Windows,
	}
	info := goldSrcToInfo(g)
	assert.Equal(t, "gs-srv", info.Name)
	assert.Equal(t, uint8(4), info.PlayersOnline)
	assert.Equal(t, Dedicated, info.ServerType)
}

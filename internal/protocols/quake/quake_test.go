package quake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeaderAndPlayers(t *testing.T) {
	body := "\\hostname\\My Server\\mapname\\dm1\\maxclients\\8\\\n" +
		"5 20 \"Alice\" 1.2.3.4:27960\n" +
		"3 40 \"Bob Two\" 5.6.7.8:27960\n"

	info, err := parse(body)
	require.NoError(t, err)

	assert.Equal(t, "My Server", info.Values["hostname"])
	require.Len(t, info.Players, 2)
	assert.Equal(t, "Alice", info.Players[0].Name)
	assert.Equal(t, 5, info.Players[0].Frags)
	assert.Equal(t, "Bob Two", info.Players[1].Name)
}

func TestParsePlayerLineRejectsMalformed(t *testing.T) {
	_, err := parsePlayerLine("not-a-player-line")
	assert.Error(t, err)
}

func TestParseStripsPrintHeader(t *testing.T) {
	body := "\xff\xff\xff\xffprint\n\\hostname\\S\\maxclients\\4\\\n"
	info, err := parse(body)
	require.NoError(t, err)
	assert.Equal(t, "S", info.Values["hostname"])
	assert.Empty(t, info.Players)
}

func TestToGenericCountsPlayers(t *testing.T) {
	body := "\\hostname\\S\\maxclients\\4\\\n5 10 \"A\" 1.1.1.1:1\n"
	info, err := parse(body)
	require.NoError(t, err)
	gs := info.ToGeneric()
	assert.Equal(t, uint16(1), gs.CurrentPlayers)
	assert.Equal(t, uint16(4), gs.MaxPlayers)
}

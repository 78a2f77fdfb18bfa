package gamespy3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendCString(buf []byte, s string) []byte {
	return append(append(buf, []byte(s)...), 0x00)
}

func buildFragmentPayload() []byte {
	var buf []byte
	buf = appendCString(buf, "hostname")
	buf = appendCString(buf, "My Server")
	buf = appendCString(buf, "numplayers")
	buf = appendCString(buf, "1")
	buf = append(buf, 0x00) // end of flat map

	buf = appendCString(buf, "player_")
	buf = append(buf, 0x00) // column-count placeholder
	buf = appendCString(buf, "player_")
	buf = appendCString(buf, "score_")
	buf = append(buf, 0x00) // end of columns
	buf = appendCString(buf, "alice")
	buf = appendCString(buf, "5")
	buf = append(buf, 0x00) // end of rows
	buf = append(buf, 0x00) // end of tables

	return buf
}

func TestParseFragmentsSingleFragment(t *testing.T) {
	info, err := parseFragments(map[uint8][]byte{0: buildFragmentPayload()})
	require.NoError(t, err)

	assert.Equal(t, "My Server", info.Values["hostname"])
	require.Contains(t, info.Tables, "player_")
	require.Len(t, info.Tables["player_"], 1)
	assert.Equal(t, "alice", info.Tables["player_"][0]["player_"])
}

func TestToGenericDerivesPlayers(t *testing.T) {
	info, err := parseFragments(map[uint8][]byte{0: buildFragmentPayload()})
	require.NoError(t, err)

	gs := info.ToGeneric()
	assert.Equal(t, "My Server", gs.Name)
	assert.Equal(t, uint16(1), gs.CurrentPlayers)
	require.Len(t, gs.Players, 1)
	assert.Equal(t, "alice", gs.Players[0].Name)
}

func TestParseFragmentsJoinsMultipleInOrder(t *testing.T) {
	full := buildFragmentPayload()
	fragments := map[uint8][]byte{0: full[:10], 1: full[10:]}
	info, err := parseFragments(fragments)
	require.NoError(t, err)
	assert.Equal(t, "My Server", info.Values["hostname"])
}

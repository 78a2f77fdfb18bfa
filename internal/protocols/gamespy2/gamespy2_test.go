package gamespy2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendCString(buf []byte, s string) []byte {
	return append(append(buf, []byte(s)...), 0x00)
}

func buildPayload() []byte {
	var buf []byte
	buf = append(buf, make([]byte, 9)...) // echoed header

	buf = appendCString(buf, "hostname")
	buf = appendCString(buf, "My Server")
	buf = append(buf, 0x00) // end of map

	// player table
	buf = append(buf, 0x00)
	buf = appendCString(buf, "player")
	buf = appendCString(buf, "score")
	buf = append(buf, 0x00)   // end of columns
	buf = append(buf, 0x01)   // one row
	buf = appendCString(buf, "alice")
	buf = appendCString(buf, "5")

	// team table, empty
	buf = append(buf, 0x00)
	buf = append(buf, 0x00) // end of columns (no columns)
	buf = append(buf, 0x00) // zero rows

	return buf
}

func TestParseFullPayload(t *testing.T) {
	info, err := parse(buildPayload())
	require.NoError(t, err)

	assert.Equal(t, "My Server", info.Values["hostname"])
	require.Len(t, info.Player.Rows, 1)
	assert.Equal(t, []string{"alice", "5"}, info.Player.Rows[0])
	assert.Empty(t, info.Team.Rows)
}

func TestToGenericDerivesPlayerName(t *testing.T) {
	info, err := parse(buildPayload())
	require.NoError(t, err)

	gs := info.ToGeneric()
	assert.Equal(t, "My Server", gs.Name)
	require.Len(t, gs.Players, 1)
	assert.Equal(t, "alice", gs.Players[0].Name)
	assert.Equal(t, "5", gs.Players[0].AdditionalData["score"].Str)
}

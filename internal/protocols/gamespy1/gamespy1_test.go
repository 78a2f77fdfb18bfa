package gamespy1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleFragment(t *testing.T) {
	body := "\\hostname\\My Server\\numplayers\\1\\maxplayers\\8\\mapname\\dm1\\" +
		"player_0\\alice\\score_0\\5\\ping_0\\40\\final\\"
	info := parse(map[int]string{0: body})

	assert.Equal(t, "My Server", info.Values["hostname"])
	require.Len(t, info.Players, 1)
	assert.Equal(t, "alice", info.Players[0].Attrs["player"])
	assert.Equal(t, "5", info.Players[0].Attrs["score"])
}

func TestFragmentIndexExtractsQueryID(t *testing.T) {
	idx, final := fragmentIndex("\\queryid\\1.2\\hostname\\srv")
	assert.Equal(t, 1, idx)
	assert.False(t, final)

	_, final = fragmentIndex("\\final\\")
	assert.True(t, final)
}

func TestParseJoinsMultipleFragmentsInOrder(t *testing.T) {
	fragments := map[int]string{
		1: "\\queryid\\1.2\\hostname\\Srv",
		0: "\\queryid\\0.2\\mapname\\",
	}
	info := parse(fragments)
	// Fragment 0 concatenated before fragment 1: "mapname" takes the empty
	// token between the two fragments' backslashes as its value, fragment 1's
	// own "queryid" tag is filtered out, and hostname is recovered.
	assert.Equal(t, "Srv", info.Values["hostname"])
}

func TestSplitIndexedKey(t *testing.T) {
	base, n, ok := splitIndexedKey("player_3")
	require.True(t, ok)
	assert.Equal(t, "player", base)
	assert.Equal(t, 3, n)

	_, _, ok = splitIndexedKey("hostname")
	assert.False(t, ok)
}

func TestToGenericMapsPlayers(t *testing.T) {
	info := parse(map[int]string{0: "\\hostname\\S\\numplayers\\1\\maxplayers\\2\\player_0\\bob\\final\\"})
	gs := info.ToGeneric()
	assert.Equal(t, "S", gs.Name)
	assert.Equal(t, uint16(2), gs.MaxPlayers)
	require.Len(t, gs.Players, 1)
	assert.Equal(t, "bob", gs.Players[0].Name)
}

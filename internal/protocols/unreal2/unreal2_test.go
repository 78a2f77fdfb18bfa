package unreal2

import (
	"encoding/binary"
	"testing"
	"unicode/utf16"

	"github.com/riftline/gamedig/internal/gamebuf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func latin1String(s string) []byte {
	return append([]byte{byte(len(s) + 1)}, append([]byte(s), 0x00)...)
}

func ucs2String(s string) []byte {
	units := utf16.Encode([]rune(s))
	prefix := byte(len(units)) | 0x80
	buf := []byte{prefix}
	for _, u := range units {
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, u)
		buf = append(buf, b...)
	}
	return buf
}

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func TestParseServerInfoLatin1Strings(t *testing.T) {
	var buf []byte
	buf = append(buf, make([]byte, 5)...)
	buf = append(buf, le32(42)...)
	buf = append(buf, latin1String("1.2.3.4")...)
	buf = append(buf, le32(7777)...)
	buf = append(buf, le32(7778)...)
	buf = append(buf, latin1String("My Server")...)
	buf = append(buf, latin1String("DM-Deck16")...)
	buf = append(buf, latin1String("DeathMatch")...)
	buf = append(buf, le32(3)...)
	buf = append(buf, le32(16)...)

	info, err := parseServerInfo(buf)
	require.NoError(t, err)
	assert.Equal(t, "My Server", info.Name)
	assert.Equal(t, "DM-Deck16", info.Map)
	assert.Equal(t, uint32(3), info.NumPlayers)
	assert.Equal(t, uint32(16), info.MaxPlayers)
}

func TestReadUnrealStringUCS2(t *testing.T) {
	raw := ucs2String("Clan [XYZ]")
	b := gamebuf.New(raw)
	s, err := readUnrealString(b)
	require.NoError(t, err)
	assert.Equal(t, "Clan [XYZ]", s)
}

func TestStripUnrealEscapesRemovesColorCodes(t *testing.T) {
	withEscape := string([]rune{'A', 0x1b, 'r', 'e', 'd', 'B'})
	assert.Equal(t, "AB", stripUnrealEscapes(withEscape))
}

func TestStripUnrealEscapesRemovesControlChars(t *testing.T) {
	withControl := string([]rune{'A', 0x05, 'B'})
	assert.Equal(t, "AB", stripUnrealEscapes(withControl))
}

func TestParsePlayersBody(t *testing.T) {
	var buf []byte
	buf = append(buf, make([]byte, 5)...)
	buf = append(buf, le32(1)...)
	buf = append(buf, latin1String("alice")...)
	buf = append(buf, le32(40)...)
	buf = append(buf, le32(12)...)
	buf = append(buf, make([]byte, 8)...) // statsID + unused dword

	players, err := parsePlayers(buf)
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "alice", players[0].Name)
	assert.Equal(t, int32(12), players[0].Score)
}

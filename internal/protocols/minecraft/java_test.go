package minecraft

import (
	"testing"

	"github.com/riftline/gamedig/internal/nio"
	"github.com/stretchr/testify/assert"
)

func TestAppendAndDecodeVarInt(t *testing.T) {
	cases := []int32{0, 1, 127, 128, 300, 2097151, 2147483647}
	for _, v := range cases {
		encoded := appendVarInt(nil, v)
		decoded, n := decodeVarIntFromSlice(encoded)
		assert.Equal(t, v, decoded)
		assert.Equal(t, len(encoded), n)
	}
}

func TestBuildHandshakePacketIncludesHostAndPort(t *testing.T) {
	pkt := buildHandshakePacket(nio.Endpoint{Host: "example.com", Port: 25565})
	assert.NotEmpty(t, pkt)
	// Host bytes followed directly by the big-endian port (25565 = 0x63DD).
	assert.Contains(t, string(pkt), "example.com\x63\xdd")
}

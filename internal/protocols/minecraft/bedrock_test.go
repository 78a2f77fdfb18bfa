package minecraft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPongPayload(identifier string) []byte {
	payload := []byte{0x1c}
	payload = append(payload, make([]byte, 8)...) // timestamp
	payload = append(payload, make([]byte, 8)...) // server GUID
	payload = append(payload, raknetMagic...)
	payload = append(payload, byte(len(identifier)>>8), byte(len(identifier)))
	payload = append(payload, identifier...)
	return payload
}

func TestParseUnconnectedPong(t *testing.T) {
	identifier := "MCPE;My Server;527;1.19.0;3;20;1234;Sub;Survival"
	info, err := parseUnconnectedPong(buildPongPayload(identifier))
	require.NoError(t, err)

	assert.Equal(t, "MCPE", info.Edition)
	assert.Equal(t, "My Server", info.MOTD)
	assert.Equal(t, 527, info.ProtocolVersion)
	assert.Equal(t, 3, info.NumPlayers)
	assert.Equal(t, 20, info.MaxPlayers)
	assert.Equal(t, "Survival", info.Gamemode)
}

func TestParseUnconnectedPongRejectsWrongID(t *testing.T) {
	_, err := parseUnconnectedPong([]byte{0x00})
	assert.Error(t, err)
}

package minecraft

import (
	"strconv"
	"strings"
	"time"

	"github.com/riftline/gamedig/internal/diag"
	"github.com/riftline/gamedig/internal/nio"
)

var raknetMagic = []byte{
	0x00, 0xff, 0xff, 0x00, 0xfe, 0xfe, 0xfe, 0xfe,
	0xfd, 0xfd, 0xfd, 0xfd, 0x12, 0x34, 0x56, 0x78,
}

// BedrockInfo is the decoded RakNet unconnected-pong payload.
type BedrockInfo struct {
	Edition         string
	MOTD            string
	ProtocolVersion int
	VersionName     string
	NumPlayers      int
	MaxPlayers      int
	ServerID        string
	SubMOTD         string
	Gamemode        string
}

// QueryBedrock sends a RakNet "unconnected ping" and parses the
// semicolon-delimited identifier string the server echoes back.
func QueryBedrock(endpoint nio.Endpoint, readTo, writeTo time.Duration, retries uint) (*BedrockInfo, error) {
	client, err := nio.NewUDPClient(endpoint, readTo, writeTo)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	request := buildUnconnectedPing()
	if err := client.Send(request); err != nil {
		return nil, err
	}

	buf := client.AcquireBuffer()
	defer client.ReleaseBuffer(buf)

	var n int
	err = nio.RetryOnTimeout(retries, func() error {
		var rerr error
		n, rerr = client.Recv(buf)
		return rerr
	})
	if err != nil {
		return nil, err
	}

	return parseUnconnectedPong(buf[:n])
}

func buildUnconnectedPing() []byte {
	req := []byte{0x01}                   // unconnected ping packet id
	req = append(req, make([]byte, 8)...) // client timestamp, unused
	req = append(req, raknetMagic...)
	req = append(req, make([]byte, 8)...) // client GUID, unused
	return req
}

func parseUnconnectedPong(payload []byte) (*BedrockInfo, error) {
	if len(payload) < 1 || payload[0] != 0x1c {
		return nil, diag.New(diag.Parse, "minecraft bedrock response missing unconnected pong id")
	}
	// Skip id(1) + timestamp(8) + server GUID(8) + magic(16), leaving the
	// 2-byte length prefix then the identifier string.
	offset := 1 + 8 + 8 + 16
	if len(payload) < offset+2 {
		return nil, diag.New(diag.PacketTruncated, "minecraft bedrock response too short")
	}
	strLen := int(payload[offset])<<8 | int(payload[offset+1])
	offset += 2
	if len(payload) < offset+strLen {
		return nil, diag.New(diag.PacketTruncated, "minecraft bedrock identifier string truncated")
	}
	identifier := string(payload[offset : offset+strLen])
	return parseBedrockIdentifier(identifier)
}

func parseBedrockIdentifier(identifier string) (*BedrockInfo, error) {
	fields := strings.Split(identifier, ";")
	if len(fields) < 6 {
		return nil, diag.New(diag.Parse, "minecraft bedrock identifier has too few fields")
	}
	info := &BedrockInfo{
		Edition:     fields[0],
		MOTD:        fields[1],
		VersionName: fields[3],
	}
	if pv, err := strconv.Atoi(fields[2]); err == nil {
		info.ProtocolVersion = pv
	}
	if np, err := strconv.Atoi(fields[4]); err == nil {
		info.NumPlayers = np
	}
	if mp, err := strconv.Atoi(fields[5]); err == nil {
		info.MaxPlayers = mp
	}
	if len(fields) > 6 {
		info.ServerID = fields[6]
	}
	if len(fields) > 7 {
		info.SubMOTD = fields[7]
	}
	if len(fields) > 8 {
		info.Gamemode = fields[8]
	}
	return info, nil
}

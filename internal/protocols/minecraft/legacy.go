package minecraft

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"github.com/riftline/gamedig/internal/diag"
	"github.com/riftline/gamedig/internal/nio"
)

// LegacyInfo is the common projection of the three legacy ping formats;
// fields a given sub-protocol cannot report are left at zero value.
type LegacyInfo struct {
	ProtocolVersion int
	ServerVersion   string
	MOTD            string
	NumPlayers      int
	MaxPlayers      int
}

// QueryLegacy16 performs the 1.6+ "full" legacy ping: a 0xFE 0x01 packet
// followed by a plugin-message payload, answered by a 0xFF kick packet
// whose UTF-16BE reason string carries six NUL-delimited fields.
func QueryLegacy16(endpoint nio.Endpoint, connectTo, readTo, writeTo time.Duration) (*LegacyInfo, error) {
	client, err := nio.NewTCPClient(endpoint, connectTo, readTo, writeTo)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	req := buildLegacy16Request(endpoint)
	if err := client.Send(req); err != nil {
		return nil, err
	}

	body, err := readLegacyKickPacket(client)
	if err != nil {
		return nil, err
	}
	return parseLegacy16Body(body)
}

func buildLegacy16Request(endpoint nio.Endpoint) []byte {
	req := []byte{0xFE, 0x01, 0xFA, 0x00, 0x0B}
	req = append(req, utf16BEBytes("MC|PingHost")...)

	var rest []byte
	rest = append(rest, 127) // protocol version placeholder
	rest = append(rest, lengthPrefixedUTF16BE(endpoint.Host)...)
	portBytes := []byte{byte(endpoint.Port >> 8), byte(endpoint.Port)}
	rest = append(rest, portBytes...)

	lenBytes := []byte{byte(len(rest) >> 8), byte(len(rest))}
	req = append(req, lenBytes...)
	req = append(req, rest...)
	return req
}

func utf16BEBytes(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, len(units)*2)
	for _, u := range units {
		out = append(out, byte(u>>8), byte(u))
	}
	return out
}

func lengthPrefixedUTF16BE(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := []byte{byte(len(units) >> 8), byte(len(units))}
	return append(out, utf16BEBytes(s)...)
}

func readLegacyKickPacket(client *nio.TCPClient) ([]byte, error) {
	header := make([]byte, 3)
	if err := readFull(client, header); err != nil {
		return nil, err
	}
	if header[0] != 0xFF {
		return nil, diag.New(diag.Parse, "minecraft legacy response missing kick packet id")
	}
	strLen := int(header[1])<<8 | int(header[2])
	body := make([]byte, strLen*2)
	if err := readFull(client, body); err != nil {
		return nil, err
	}
	units := make([]uint16, strLen)
	for i := 0; i < strLen; i++ {
		units[i] = uint16(body[i*2])<<8 | uint16(body[i*2+1])
	}
	return []byte(string(utf16.Decode(units))), nil
}

func parseLegacy16Body(body []byte) (*LegacyInfo, error) {
	s := string(body)
	if !strings.HasPrefix(s, "§") {
		return parseLegacyPre16Body(s)
	}
	fields := strings.Split(s[len("§"):], "\x00")
	if len(fields) < 5 {
		return nil, diag.New(diag.Parse, "minecraft legacy 1.6 kick body has too few fields")
	}
	protocolVersion, _ := strconv.Atoi(fields[0])
	numPlayers, _ := strconv.Atoi(fields[3])
	maxPlayers, _ := strconv.Atoi(fields[4])
	return &LegacyInfo{
		ProtocolVersion: protocolVersion,
		ServerVersion:   fields[1],
		MOTD:            fields[2],
		NumPlayers:      numPlayers,
		MaxPlayers:      maxPlayers,
	}, nil
}

// parseLegacyPre16Body handles the 1.4/b1.8 format: three §-delimited
// fields with no leading marker byte and no explicit protocol version.
func parseLegacyPre16Body(s string) (*LegacyInfo, error) {
	fields := strings.Split(s, "§")
	if len(fields) < 3 {
		return nil, diag.New(diag.Parse, "minecraft legacy pre-1.6 kick body has too few fields")
	}
	numPlayers, _ := strconv.Atoi(fields[len(fields)-2])
	maxPlayers, _ := strconv.Atoi(fields[len(fields)-1])
	motd := strings.Join(fields[:len(fields)-2], "§")
	return &LegacyInfo{MOTD: motd, NumPlayers: numPlayers, MaxPlayers: maxPlayers}, nil
}

// QueryLegacyOld sends the bare 0xFE ping used by 1.4-1.5 and b1.8, which
// answers through the same kick-packet channel with no plugin-message
// payload in the request.
func QueryLegacyOld(endpoint nio.Endpoint, connectTo, readTo, writeTo time.Duration) (*LegacyInfo, error) {
	client, err := nio.NewTCPClient(endpoint, connectTo, readTo, writeTo)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if err := client.Send([]byte{0xFE}); err != nil {
		return nil, err
	}
	body, err := readLegacyKickPacket(client)
	if err != nil {
		return nil, err
	}
	return parseLegacyPre16Body(string(body))
}

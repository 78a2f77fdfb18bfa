// Package unreal2 implements the Unreal Engine 2 query protocol: three
// packet kinds (ServerInfo, MutatorsAndRules, Players) over UDP, each using
// a custom string prefix encoding distinct from every other protocol family
// in this module.
package unreal2

import (
	"time"
	"unicode/utf16"

	"github.com/riftline/gamedig/internal/gamebuf"
	"github.com/riftline/gamedig/internal/nio"
	"github.com/riftline/gamedig/internal/response"
)

type packetKind uint8

const (
	kindServerInfo       packetKind = 0
	kindMutatorsAndRules packetKind = 1
	kindPlayers          packetKind = 2
)

// ServerInfo is the parsed ServerInfo packet body.
type ServerInfo struct {
	ServerID   uint32
	ServerIP   string
	GamePort   uint32
	QueryPort  uint32
	Name       string
	Map        string
	GameType   string
	NumPlayers uint32
	MaxPlayers uint32
}

// Player is one entry from the Players packet.
type Player struct {
	ID    uint32
	Name  string
	Ping  uint32
	Score int32
}

// Info is the aggregate of all three sub-queries.
type Info struct {
	Server  ServerInfo
	Rules   map[string]string
	Players []Player
}

// Query runs the three Unreal2 sub-queries in sequence over a single UDP
// socket, per the request/response pairing the protocol defines.
func Query(endpoint nio.Endpoint, readTo, writeTo time.Duration, retries uint) (*Info, error) {
	client, err := nio.NewUDPClient(endpoint, readTo, writeTo)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	server, err := queryServerInfo(client, retries)
	if err != nil {
		return nil, err
	}
	rules, err := queryRules(client, retries)
	if err != nil {
		return nil, err
	}
	players, err := queryPlayers(client, retries)
	if err != nil {
		return nil, err
	}

	return &Info{Server: *server, Rules: rules, Players: players}, nil
}

func requestPacket(kind packetKind) []byte {
	return []byte{0x79, 0x00, 0x00, 0x00, 0x00, byte(kind)}
}

func roundtrip(client *nio.UDPClient, retries uint, kind packetKind) ([]byte, error) {
	if err := client.Send(requestPacket(kind)); err != nil {
		return nil, err
	}
	buf := client.AcquireBuffer()
	defer client.ReleaseBuffer(buf)

	var n int
	err := nio.RetryOnTimeout(retries, func() error {
		var rerr error
		n, rerr = client.Recv(buf)
		return rerr
	})
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, buf[:n])
	return out, nil
}

func queryServerInfo(client *nio.UDPClient, retries uint) (*ServerInfo, error) {
	payload, err := roundtrip(client, retries, kindServerInfo)
	if err != nil {
		return nil, err
	}
	return parseServerInfo(payload)
}

func parseServerInfo(payload []byte) (*ServerInfo, error) {
	b := gamebuf.New(payload)
	if err := b.MovePos(5); err != nil { // echoed header
		return nil, err
	}
	serverID, err := b.ReadU32LE()
	if err != nil {
		return nil, err
	}
	serverIP, err := readUnrealString(b)
	if err != nil {
		return nil, err
	}
	gamePort, err := b.ReadU32LE()
	if err != nil {
		return nil, err
	}
	queryPort, err := b.ReadU32LE()
	if err != nil {
		return nil, err
	}
	name, err := readUnrealString(b)
	if err != nil {
		return nil, err
	}
	mapName, err := readUnrealString(b)
	if err != nil {
		return nil, err
	}
	gameType, err := readUnrealString(b)
	if err != nil {
		return nil, err
	}
	numPlayers, err := b.ReadU32LE()
	if err != nil {
		return nil, err
	}
	maxPlayers, err := b.ReadU32LE()
	if err != nil {
		return nil, err
	}

	return &ServerInfo{
		ServerID:   serverID,
		ServerIP:   serverIP,
		GamePort:   gamePort,
		QueryPort:  queryPort,
		Name:       name,
		Map:        mapName,
		GameType:   gameType,
		NumPlayers: numPlayers,
		MaxPlayers: maxPlayers,
	}, nil
}

func queryRules(client *nio.UDPClient, retries uint) (map[string]string, error) {
	payload, err := roundtrip(client, retries, kindMutatorsAndRules)
	if err != nil {
		return nil, err
	}
	return parseRules(payload)
}

func parseRules(payload []byte) (map[string]string, error) {
	b := gamebuf.New(payload)
	if err := b.MovePos(5); err != nil {
		return nil, err
	}
	rules := map[string]string{}
	for !b.IsEmpty() {
		key, err := readUnrealString(b)
		if err != nil {
			return nil, err
		}
		if key == "" {
			break
		}
		val, err := readUnrealString(b)
		if err != nil {
			return nil, err
		}
		rules[key] = val
	}
	return rules, nil
}

func queryPlayers(client *nio.UDPClient, retries uint) ([]Player, error) {
	payload, err := roundtrip(client, retries, kindPlayers)
	if err != nil {
		return nil, err
	}
	return parsePlayers(payload)
}

func parsePlayers(payload []byte) ([]Player, error) {
	b := gamebuf.New(payload)
	if err := b.MovePos(5); err != nil {
		return nil, err
	}
	var players []Player
	for !b.IsEmpty() {
		id, err := b.ReadU32LE()
		if err != nil {
			return nil, err
		}
		name, err := readUnrealString(b)
		if err != nil {
			return nil, err
		}
		ping, err := b.ReadU32LE()
		if err != nil {
			return nil, err
		}
		score, err := b.ReadI32LE()
		if err != nil {
			return nil, err
		}
		// statsID and an unused trailing dword follow each row.
		if err := b.MovePos(8); err != nil {
			return nil, err
		}
		players = append(players, Player{ID: id, Name: name, Ping: ping, Score: score})
	}
	return players, nil
}

// readUnrealString decodes Unreal2's custom prefix encoding: a length
// prefix whose top bit selects UCS-2LE (set) or null-delimited Latin-1
// (clear), with the low 7 bits giving the UCS-2 character count. The
// decoded text is then stripped of ANSI-style color escapes (ESC + 3
// bytes) and control characters at or below 0x1a.
func readUnrealString(b *gamebuf.Buffer) (string, error) {
	prefix, err := b.ReadU8()
	if err != nil {
		return "", err
	}

	var raw string
	if prefix&0x80 != 0 {
		count := int(prefix & 0x7f)
		units := make([]uint16, 0, count)
		for i := 0; i < count; i++ {
			u, err := b.ReadU16LE()
			if err != nil {
				return "", err
			}
			units = append(units, u)
		}
		if count > 0 && units[count-1] == 0x01 {
			units = units[:count-1]
		}
		raw = string(utf16.Decode(units))
	} else {
		s, err := b.ReadStringLatin1(0x00, false)
		if err != nil {
			return "", err
		}
		raw = s
	}

	return stripUnrealEscapes(raw), nil
}

func stripUnrealEscapes(s string) string {
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == 0x1b {
			i += 3
			continue
		}
		if r <= 0x1a {
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

// ToGeneric implements response.CommonResponse.
func (i *Info) ToGeneric() response.GenericServer {
	mapName := i.Server.Map
	gameType := i.Server.GameType
	gs := response.GenericServer{
		Name:           i.Server.Name,
		Map:            &mapName,
		Mode:           &gameType,
		MaxPlayers:     uint16(i.Server.MaxPlayers),
		CurrentPlayers: uint16(i.Server.NumPlayers),
	}

	additional := map[string]response.Scalar{
		"server_id": response.UintScalar(uint64(i.Server.ServerID)),
	}
	for k, v := range i.Rules {
		additional["rule:"+k] = response.StringScalar(v)
	}
	gs.AdditionalData = additional

	players := make([]response.PlayerEntry, 0, len(i.Players))
	for _, p := range i.Players {
		players = append(players, response.PlayerEntry{
			Name: p.Name,
			AdditionalData: map[string]response.Scalar{
				"ping":  response.UintScalar(uint64(p.Ping)),
				"score": response.IntScalar(int64(p.Score)),
				"id":    response.UintScalar(uint64(p.ID)),
			},
		})
	}
	gs.Players = players

	return gs
}

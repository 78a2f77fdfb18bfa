// Package quake implements the shared Quake 1/2/3 status query wire format:
// a single UDP request/response pair, an ASCII "\key\value\…" header line
// terminated by a newline, followed by one player line per connected
// client, parsed positionally.
package quake

import (
	"strconv"
	"strings"
	"time"

	"github.com/riftline/gamedig/internal/diag"
	"github.com/riftline/gamedig/internal/helpers"
	"github.com/riftline/gamedig/internal/nio"
	"github.com/riftline/gamedig/internal/response"
)

// Variant selects the request prefix, which differs across the three Quake
// engine generations. Player lines are parsed with the same column layout
// for every variant.
type Variant int

const (
	Quake1 Variant = iota
	Quake2
	Quake3
)

var requestByVariant = map[Variant][]byte{
	Quake1: []byte("\xffstatus\n"),
	Quake2: []byte("\xff\xff\xff\xffstatus\n"),
	Quake3: []byte("\xff\xff\xff\xffgetstatus\n"),
}

// Player is one row of the positional player table: frags, ping, then the
// quoted name, with Quake2/3 additionally reporting a trailing address.
type Player struct {
	Frags   int
	Ping    int
	Name    string
	Address string
}

// Info is the parsed response.
type Info struct {
	Values  map[string]string
	Players []Player
}

// Query sends the variant's status request and parses the reply.
func Query(variant Variant, endpoint nio.Endpoint, readTo, writeTo time.Duration, retries uint) (*Info, error) {
	client, err := nio.NewUDPClient(endpoint, readTo, writeTo)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	req, ok := requestByVariant[variant]
	if !ok {
		return nil, diag.New(diag.InvalidInput, "unknown quake variant")
	}
	if err := client.Send(req); err != nil {
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

	return parse(string(buf[:n]))
}

func parse(body string) (*Info, error) {
	// Responses echo a "\xff\xff\xff\xffprint\n" (or similar) header before
	// the payload; strip everything up to and including the first newline
	// that precedes the "\" key/value line.
	if idx := strings.IndexByte(body, '\n'); idx >= 0 && !strings.HasPrefix(body, "\\") {
		body = body[idx+1:]
	}

	lines := strings.Split(body, "\n")
	if len(lines) == 0 {
		return nil, diag.New(diag.Parse, "empty quake response")
	}

	values := map[string]string{}
	tokens := strings.Split(strings.Trim(lines[0], "\\"), "\\")
	for i := 0; i+1 < len(tokens); i += 2 {
		values[tokens[i]] = tokens[i+1]
	}

	players := make([]Player, 0, len(lines)-1)
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		p, err := parsePlayerLine(line)
		if err != nil {
			continue
		}
		players = append(players, p)
	}

	return &Info{Values: values, Players: players}, nil
}

// parsePlayerLine parses "frags ping \"name\" address" where address is
// optional depending on engine generation, and name may contain spaces
// inside its quotes.
func parsePlayerLine(line string) (Player, error) {
	fields := strings.SplitN(line, " ", 3)
	if len(fields) < 3 {
		return Player{}, diag.New(diag.Parse, "malformed quake player line")
	}
	frags, err := strconv.Atoi(fields[0])
	if err != nil {
		return Player{}, diag.Wrap(diag.Parse, "quake player frags not numeric", err)
	}
	ping, err := strconv.Atoi(fields[1])
	if err != nil {
		return Player{}, diag.Wrap(diag.Parse, "quake player ping not numeric", err)
	}

	rest := fields[2]
	if !strings.HasPrefix(rest, "\"") {
		return Player{}, diag.New(diag.Parse, "quake player name not quoted")
	}
	end := strings.IndexByte(rest[1:], '"')
	if end < 0 {
		return Player{}, diag.New(diag.Parse, "quake player name unterminated")
	}
	name := rest[1 : end+1]
	address := strings.TrimSpace(rest[end+2:])

	return Player{Frags: frags, Ping: ping, Name: name, Address: address}, nil
}

// ToGeneric implements response.CommonResponse.
func (i *Info) ToGeneric() response.GenericServer {
	gs := response.GenericServer{Name: i.Values["hostname"]}
	if gs.Name == "" {
		gs.Name = i.Values["sv_hostname"]
	}
	if mp, err := strconv.Atoi(i.Values["maxclients"]); err == nil {
		gs.MaxPlayers = helpers.ClampIntToUint16(mp)
	}
	gs.CurrentPlayers = helpers.ClampIntToUint16(len(i.Players))
	if mapName, ok := i.Values["mapname"]; ok {
		gs.Map = &mapName
	}

	additional := map[string]response.Scalar{}
	for k, v := range i.Values {
		additional[k] = response.StringScalar(v)
	}
	gs.AdditionalData = additional

	players := make([]response.PlayerEntry, 0, len(i.Players))
	for _, p := range i.Players {
		players = append(players, response.PlayerEntry{
			Name: p.Name,
			AdditionalData: map[string]response.Scalar{
				"frags": response.IntScalar(int64(p.Frags)),
				"ping":  response.IntScalar(int64(p.Ping)),
			},
		})
	}
	gs.Players = players

	return gs
}

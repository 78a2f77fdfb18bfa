// Package gamespy1 implements the original GameSpy query protocol: a single
// UDP request that may come back split across several datagrams tagged by a
// queryid=N.M key, terminated by a bare "final" key.
package gamespy1

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/riftline/gamedig/internal/helpers"
	"github.com/riftline/gamedig/internal/nio"
	"github.com/riftline/gamedig/internal/response"
)

const request = "\\status\\xserverquery"

// Info is the parsed key/value response plus the derived player table.
type Info struct {
	Values  map[string]string
	Players []Player
}

// Player is one row recovered from the player_N/team_N/ping_N/… key
// suffixes scattered across the flat key/value space.
type Player struct {
	Index int
	Attrs map[string]string
}

// Query sends the status request and reassembles every fragment the server
// returns, in queryid order, until the "final" marker is seen. A read that
// still times out after the retries fails the whole query.
func Query(endpoint nio.Endpoint, readTo, writeTo time.Duration, retries uint) (*Info, error) {
	client, err := nio.NewUDPClient(endpoint, readTo, writeTo)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if err := client.Send([]byte(request)); err != nil {
		return nil, err
	}

	fragments := map[int]string{}
	seenFinal := false
	for !seenFinal {
		buf := client.AcquireBuffer()
		var n int
		err := nio.RetryOnTimeout(retries, func() error {
			var rerr error
			n, rerr = client.Recv(buf)
			return rerr
		})
		if err != nil {
			client.ReleaseBuffer(buf)
			return nil, err
		}
		chunk := string(buf[:n])
		client.ReleaseBuffer(buf)

		idx, final := fragmentIndex(chunk)
		fragments[idx] = chunk
		if final {
			seenFinal = true
		}
	}

	return parse(fragments), nil
}

// fragmentIndex extracts the "N" from a "\queryid\N.M\" tag, defaulting to 0
// when absent (single-datagram responses omit it), and reports whether the
// literal "\final\" marker appears in this fragment.
func fragmentIndex(chunk string) (int, bool) {
	idx := 0
	if p := strings.Index(chunk, "\\queryid\\"); p >= 0 {
		rest := chunk[p+len("\\queryid\\"):]
		if end := strings.IndexByte(rest, '\\'); end >= 0 {
			head := rest[:end]
			if dot := strings.IndexByte(head, '.'); dot >= 0 {
				head = head[:dot]
			}
			if n, err := strconv.Atoi(head); err == nil {
				idx = n
			}
		}
	}
	return idx, strings.Contains(chunk, "\\final\\")
}

func parse(fragments map[int]string) *Info {
	order := make([]int, 0, len(fragments))
	for k := range fragments {
		order = append(order, k)
	}
	sort.Ints(order)

	var joined strings.Builder
	for _, k := range order {
		joined.WriteString(fragments[k])
	}
	body := joined.String()

	values := map[string]string{}
	tokens := strings.Split(body, "\\")
	for i := 1; i+1 < len(tokens); i += 2 {
		key := tokens[i]
		val := tokens[i+1]
		if key == "" || key == "final" || key == "queryid" {
			continue
		}
		values[key] = val
	}

	playerAttrs := map[int]map[string]string{}
	for key, val := range values {
		base, n, ok := splitIndexedKey(key)
		if !ok {
			continue
		}
		if playerAttrs[n] == nil {
			playerAttrs[n] = map[string]string{}
		}
		playerAttrs[n][base] = val
	}

	indices := make([]int, 0, len(playerAttrs))
	for n := range playerAttrs {
		indices = append(indices, n)
	}
	sort.Ints(indices)

	players := make([]Player, 0, len(indices))
	for _, n := range indices {
		players = append(players, Player{Index: n, Attrs: playerAttrs[n]})
	}

	return &Info{Values: values, Players: players}
}

// splitIndexedKey splits "player_3" into ("player", 3, true); keys with no
// trailing underscore-digit suffix are not player-table keys.
func splitIndexedKey(key string) (string, int, bool) {
	under := strings.LastIndexByte(key, '_')
	if under < 0 || under == len(key)-1 {
		return "", 0, false
	}
	suffix := key[under+1:]
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return "", 0, false
	}
	return key[:under], n, true
}

// ToGeneric implements response.CommonResponse.
func (i *Info) ToGeneric() response.GenericServer {
	gs := response.GenericServer{
		Name: i.Values["hostname"],
	}
	if mp, err := strconv.Atoi(i.Values["maxplayers"]); err == nil {
		gs.MaxPlayers = helpers.ClampIntToUint16(mp)
	}
	if np, err := strconv.Atoi(i.Values["numplayers"]); err == nil {
		gs.CurrentPlayers = helpers.ClampIntToUint16(np)
	}
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
		entry := response.PlayerEntry{Name: p.Attrs["player"], AdditionalData: map[string]response.Scalar{}}
		for k, v := range p.Attrs {
			entry.AdditionalData[k] = response.StringScalar(v)
		}
		players = append(players, entry)
	}
	gs.Players = players

	return gs
}

// Package gamespy3 implements the third-generation GameSpy query protocol:
// a challenge handshake followed by a fetch whose response may be split
// across several numbered packets, the last flagged by a high-bit
// end-of-stream marker on its packet index.
package gamespy3

import (
	"encoding/binary"
	"strconv"
	"time"

	"github.com/riftline/gamedig/internal/diag"
	"github.com/riftline/gamedig/internal/gamebuf"
	"github.com/riftline/gamedig/internal/helpers"
	"github.com/riftline/gamedig/internal/nio"
	"github.com/riftline/gamedig/internal/response"
)

const (
	requestPrefix  = 0xFE
	requestPrefix2 = 0xFD
	typeChallenge  = 0x09
	typeQuery      = 0x00
	endOfStreamBit = 0x80
)

// Info is the parsed response: a flat key/value map plus one table per
// sub-table the server reports (commonly "player_" and "team_").
type Info struct {
	Values map[string]string
	Tables map[string][]map[string]string
}

// Query performs the challenge/fetch exchange and assembles every fragment
// until the end-of-stream flag is observed.
func Query(endpoint nio.Endpoint, readTo, writeTo time.Duration, retries uint) (*Info, error) {
	client, err := nio.NewUDPClient(endpoint, readTo, writeTo)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	challenge, err := doChallenge(client, retries)
	if err != nil {
		return nil, err
	}

	request := buildQueryRequest(challenge)
	if err := client.Send(request); err != nil {
		return nil, err
	}

	fragments := map[uint8][]byte{}
	done := false
	for !done {
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
		packet := make([]byte, n)
		copy(packet, buf[:n])
		client.ReleaseBuffer(buf)

		b := gamebuf.New(packet)
		if err := b.MovePos(5); err != nil { // type byte + 4-byte session id
			return nil, err
		}
		idxByte, err := b.ReadU8()
		if err != nil {
			return nil, err
		}
		isLast := idxByte&endOfStreamBit != 0
		idx := idxByte &^ endOfStreamBit
		fragments[idx] = b.RemainingSlice()
		if isLast {
			done = true
		}
	}

	return parseFragments(fragments)
}

func doChallenge(client *nio.UDPClient, retries uint) ([]byte, error) {
	challengeRequest := []byte{requestPrefix, requestPrefix2, typeChallenge, 0, 0, 0, 1}
	if err := client.Send(challengeRequest); err != nil {
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
	if n < 6 {
		return nil, diag.New(diag.Parse, "gamespy3 challenge response too short")
	}

	// Bytes after the 5-byte header are an ASCII-decimal challenge token;
	// the wire protocol carries it as text even though it is numeric.
	tokenStr := string(buf[5 : n-1])
	token, err := strconv.Atoi(tokenStr)
	if err != nil {
		return nil, diag.Wrap(diag.Parse, "gamespy3 challenge token not numeric", err)
	}

	encoded := make([]byte, 4)
	binary.BigEndian.PutUint32(encoded, uint32(int32(token)))
	return encoded, nil
}

func buildQueryRequest(challenge []byte) []byte {
	req := []byte{requestPrefix, requestPrefix2, typeQuery, 0, 0, 0, 1}
	req = append(req, challenge...)
	req = append(req, 0xFF, 0xFF, 0xFF, 0x01) // full-stats request flags
	return req
}

func parseFragments(fragments map[uint8][]byte) (*Info, error) {
	var payload []byte
	for i := uint8(0); i < uint8(len(fragments)); i++ {
		chunk, ok := fragments[i]
		if !ok {
			break
		}
		payload = append(payload, chunk...)
	}

	b := gamebuf.New(payload)
	values := map[string]string{}
	for {
		key, err := b.ReadStringUTF8(0x00, false)
		if err != nil {
			return nil, err
		}
		if key == "" {
			// A single NUL with no key terminates the flat map and opens
			// the sub-table section.
			break
		}
		val, err := b.ReadStringUTF8(0x00, false)
		if err != nil {
			return nil, err
		}
		values[key] = val
	}

	tables, err := parseTables(b)
	if err != nil {
		return nil, err
	}

	return &Info{Values: values, Tables: tables}, nil
}

func parseTables(b *gamebuf.Buffer) (map[string][]map[string]string, error) {
	tables := map[string][]map[string]string{}
	for {
		name, err := b.ReadStringUTF8(0x00, false)
		if err != nil || name == "" {
			return tables, nil
		}
		if err := b.MovePos(1); err != nil { // column-count placeholder byte
			return nil, err
		}

		var columns []string
		for {
			col, err := b.ReadStringUTF8(0x00, false)
			if err != nil {
				return nil, err
			}
			if col == "" {
				break
			}
			columns = append(columns, col)
		}

		var rows []map[string]string
		for {
			first, err := b.ReadStringUTF8(0x00, false)
			if err != nil {
				return nil, err
			}
			if first == "" {
				break
			}
			row := map[string]string{columns[0]: first}
			for _, col := range columns[1:] {
				val, err := b.ReadStringUTF8(0x00, false)
				if err != nil {
					return nil, err
				}
				row[col] = val
			}
			rows = append(rows, row)
		}
		tables[name] = rows
	}
}

// ToGeneric implements response.CommonResponse.
func (i *Info) ToGeneric() response.GenericServer {
	gs := response.GenericServer{Name: i.Values["hostname"]}
	if mp, err := strconv.Atoi(i.Values["maxplayers"]); err == nil {
		gs.MaxPlayers = helpers.ClampIntToUint16(mp)
	}
	if np, err := strconv.Atoi(i.Values["numplayers"]); err == nil {
		gs.CurrentPlayers = helpers.ClampIntToUint16(np)
	}

	additional := map[string]response.Scalar{}
	for k, v := range i.Values {
		additional[k] = response.StringScalar(v)
	}
	gs.AdditionalData = additional

	if rows, ok := i.Tables["player_"]; ok {
		players := make([]response.PlayerEntry, 0, len(rows))
		for _, row := range rows {
			entry := response.PlayerEntry{Name: row["player_"], AdditionalData: map[string]response.Scalar{}}
			for k, v := range row {
				entry.AdditionalData[k] = response.StringScalar(v)
			}
			players = append(players, entry)
		}
		gs.Players = players
	}

	return gs
}

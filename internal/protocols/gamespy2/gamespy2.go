// Package gamespy2 implements the second-generation GameSpy query protocol:
// a single framed UDP request, answered by a key/value map followed by a
// player table and a team table, each table introduced by a row-count
// header.
package gamespy2

import (
	"time"

	"github.com/riftline/gamedig/internal/gamebuf"
	"github.com/riftline/gamedig/internal/nio"
	"github.com/riftline/gamedig/internal/response"
)

var request = []byte{0xFE, 0xFD, 0x00, 0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0x01}

// Table is one of the player/team tables: a fixed set of column names
// followed by a row count, then that many rows of one value per column.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Info is the parsed response.
type Info struct {
	Values map[string]string
	Player Table
	Team   Table
}

// Query sends the GameSpy2 request and parses the single-datagram reply.
func Query(endpoint nio.Endpoint, readTo, writeTo time.Duration, retries uint) (*Info, error) {
	client, err := nio.NewUDPClient(endpoint, readTo, writeTo)
	if err != nil {
		return nil, err
	}
	defer client.Close()

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

	return parse(buf[:n])
}

func parse(payload []byte) (*Info, error) {
	b := gamebuf.New(payload)
	// 9-byte echo of the request header (type byte + 4-byte id + 4-byte
	// unused instance id) precedes the body.
	if err := b.MovePos(9); err != nil {
		return nil, err
	}

	values, err := parseKVMap(b)
	if err != nil {
		return nil, err
	}

	playerTable, err := parseTable(b)
	if err != nil {
		return nil, err
	}

	teamTable, err := parseTable(b)
	if err != nil {
		return nil, err
	}

	return &Info{Values: values, Player: playerTable, Team: teamTable}, nil
}

func parseKVMap(b *gamebuf.Buffer) (map[string]string, error) {
	values := map[string]string{}
	for {
		key, err := b.ReadStringUTF8(0x00, false)
		if err != nil {
			return nil, err
		}
		if key == "" {
			return values, nil
		}
		val, err := b.ReadStringUTF8(0x00, false)
		if err != nil {
			return nil, err
		}
		values[key] = val
	}
}

func parseTable(b *gamebuf.Buffer) (Table, error) {
	if err := b.MovePos(1); err != nil {
		return Table{}, err
	}

	var columns []string
	for {
		col, err := b.ReadStringUTF8(0x00, false)
		if err != nil {
			return Table{}, err
		}
		if col == "" {
			break
		}
		columns = append(columns, col)
	}

	numRows, err := b.ReadU8()
	if err != nil {
		return Table{}, err
	}

	rows := make([][]string, 0, numRows)
	for r := uint8(0); r < numRows; r++ {
		row := make([]string, 0, len(columns))
		for range columns {
			val, err := b.ReadStringUTF8(0x00, false)
			if err != nil {
				return Table{}, err
			}
			row = append(row, val)
		}
		rows = append(rows, row)
	}

	return Table{Columns: columns, Rows: rows}, nil
}

// ToGeneric implements response.CommonResponse.
func (i *Info) ToGeneric() response.GenericServer {
	gs := response.GenericServer{Name: i.Values["hostname"]}

	additional := map[string]response.Scalar{}
	for k, v := range i.Values {
		additional[k] = response.StringScalar(v)
	}
	gs.AdditionalData = additional
	gs.CurrentPlayers = uint16(len(i.Player.Rows))

	nameIdx := -1
	for idx, col := range i.Player.Columns {
		if col == "player" || col == "name" {
			nameIdx = idx
			break
		}
	}

	players := make([]response.PlayerEntry, 0, len(i.Player.Rows))
	for _, row := range i.Player.Rows {
		entry := response.PlayerEntry{AdditionalData: map[string]response.Scalar{}}
		for idx, col := range i.Player.Columns {
			if idx < len(row) {
				entry.AdditionalData[col] = response.StringScalar(row[idx])
			}
		}
		if nameIdx >= 0 && nameIdx < len(row) {
			entry.Name = row[nameIdx]
		}
		players = append(players, entry)
	}
	gs.Players = players

	return gs
}

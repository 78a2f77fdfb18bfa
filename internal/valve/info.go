package valve

import (
	"github.com/riftline/gamedig/internal/diag"
	"github.com/riftline/gamedig/internal/gamebuf"
)

// QueryInfo performs the A2S_INFO sub-query: send, expect either the
// success byte or a challenge round trip, then parse the body.
func (c *Client) QueryInfo(payload []byte) (*Info, error) {
	body, err := c.query(payload, successInfo)
	if err != nil {
		return nil, err
	}
	return parseInfo(body, c.theShip)
}

func parseInfo(b *gamebuf.Buffer, theShip bool) (*Info, error) {
	info := &Info{}

	protocol, err := b.ReadU8()
	if err != nil {
		return nil, wrapField(err, "protocol")
	}
	info.Protocol = protocol

	if info.Name, err = b.ReadStringUTF8(0, false); err != nil {
		return nil, wrapField(err, "name")
	}
	if info.Map, err = b.ReadStringUTF8(0, false); err != nil {
		return nil, wrapField(err, "map")
	}
	if info.Folder, err = b.ReadStringUTF8(0, false); err != nil {
		return nil, wrapField(err, "folder")
	}
	if info.Game, err = b.ReadStringUTF8(0, false); err != nil {
		return nil, wrapField(err, "game")
	}
	if info.AppID, err = b.ReadU16LE(); err != nil {
		return nil, wrapField(err, "app_id")
	}
	if info.PlayersOnline, err = b.ReadU8(); err != nil {
		return nil, wrapField(err, "players")
	}
	if info.PlayersMaximum, err = b.ReadU8(); err != nil {
		return nil, wrapField(err, "max_players")
	}
	if info.Bots, err = b.ReadU8(); err != nil {
		return nil, wrapField(err, "bots")
	}

	serverTypeByte, err := b.ReadU8()
	if err != nil {
		return nil, wrapField(err, "server_type")
	}
	st, err := decodeServerType(serverTypeByte)
	if err != nil {
		return nil, err
	}
	info.ServerType = st

	envByte, err := b.ReadU8()
	if err != nil {
		return nil, wrapField(err, "environment")
	}
	env, err := decodeEnvironment(envByte)
	if err != nil {
		return nil, err
	}
	info.Environment = env

	pw, err := b.ReadU8()
	if err != nil {
		return nil, wrapField(err, "password")
	}
	info.PasswordProtected = pw != 0

	vac, err := b.ReadU8()
	if err != nil {
		return nil, wrapField(err, "vac")
	}
	info.VACEnabled = vac != 0

	if theShip {
		mode, err := b.ReadU8()
		if err != nil {
			return nil, wrapField(err, "the_ship.mode")
		}
		witnesses, err := b.ReadU8()
		if err != nil {
			return nil, wrapField(err, "the_ship.witnesses")
		}
		duration, err := b.ReadU8()
		if err != nil {
			return nil, wrapField(err, "the_ship.duration")
		}
		info.TheShip = &TheShip{Mode: mode, Witnesses: witnesses, Duration: duration}
	}

	if info.Version, err = b.ReadStringUTF8(0, false); err != nil {
		return nil, wrapField(err, "version")
	}

	edf, err := b.ReadU8()
	if err != nil {
		return nil, wrapField(err, "edf")
	}
	info.EDF = edf

	// The optional extras are ordered: each flag gates presence of the
	// following bytes, so they must be read in this exact sequence.
	if edf&0x80 != 0 {
		port, err := b.ReadU16LE()
		if err != nil {
			return nil, wrapField(err, "extras.port")
		}
		info.Extras.Port = &port
	}
	if edf&0x10 != 0 {
		id, err := b.ReadU64LE()
		if err != nil {
			return nil, wrapField(err, "extras.server_steam_id")
		}
		info.Extras.ServerSteamID = &id
	}
	if edf&0x40 != 0 {
		tvPort, err := b.ReadU16LE()
		if err != nil {
			return nil, wrapField(err, "extras.source_tv.port")
		}
		tvName, err := b.ReadStringUTF8(0, false)
		if err != nil {
			return nil, wrapField(err, "extras.source_tv.name")
		}
		info.Extras.SourceTVPort = &tvPort
		info.Extras.SourceTVName = &tvName
	}
	if edf&0x20 != 0 {
		keywords, err := b.ReadStringUTF8(0, false)
		if err != nil {
			return nil, wrapField(err, "extras.keywords")
		}
		info.Extras.Keywords = &keywords
	}
	if edf&0x01 != 0 {
		appID64, err := b.ReadU64LE()
		if err != nil {
			return nil, wrapField(err, "extras.app_id_64")
		}
		info.Extras.AppID64 = &appID64
	}

	return info, nil
}

func decodeServerType(b byte) (ServerType, error) {
	switch b {
	case 'd', 'D':
		return Dedicated, nil
	case 'l', 'L':
		return NonDedicated, nil
	case 'p', 'P':
		return SourceTV, nil
	default:
		return 0, diag.New(diag.SanityCheck, "unknown server type").Attach("byte", string(b))
	}
}

func decodeEnvironment(b byte) (Environment, error) {
	switch b {
	case 'l', 'L':
		return Linux, nil
	case 'w', 'W':
		return Windows, nil
	case 'm', 'M', 'o', 'O':
		return Mac, nil
	default:
		return 0, diag.New(diag.SanityCheck, "unknown environment").Attach("byte", string(b))
	}
}

func wrapField(err error, field string) error {
	return diag.Wrap(diag.Parse, "decoding info field", err).Attach("section", "INFO").Attach("field", field)
}

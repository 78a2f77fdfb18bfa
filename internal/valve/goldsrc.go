package valve

import "github.com/riftline/gamedig/internal/gamebuf"

// GoldSrcMod describes a mod running on a GoldSrc-engine server, present
// only when the obsolete INFO response's is_mod flag is set.
type GoldSrcMod struct {
	Link            string
	DownloadLink    string
	Version         uint32
	Size            uint32
	MultiplayerOnly bool
	UsesCustomDLL   bool
}

// GoldSrcInfo is the obsolete A2S_INFO layout, selected per-registry entry
// for servers that reply with header byte 'm' instead of 'I'. It has no
// explicit app id and carries an address-string prefix the modern layout
// lacks.
type GoldSrcInfo struct {
	Address           string
	Name              string
	Map               string
	Folder            string
	Game              string
	PlayersOnline     uint8
	PlayersMaximum    uint8
	Protocol          uint8
	ServerType        ServerType
	Environment       Environment
	PasswordProtected bool
	Mod               *GoldSrcMod
	VACEnabled        bool
	Bots              uint8
}

// QueryInfoGoldSrc performs the A2S_INFO sub-query against a GoldSrc-engine
// server and parses the obsolete response layout.
func (c *Client) QueryInfoGoldSrc(payload []byte) (*GoldSrcInfo, error) {
	body, err := c.query(payload, successGoldSrc)
	if err != nil {
		return nil, err
	}
	return parseGoldSrcInfo(body)
}

func parseGoldSrcInfo(b *gamebuf.Buffer) (*GoldSrcInfo, error) {
	info := &GoldSrcInfo{}
	var err error

	if info.Address, err = b.ReadStringUTF8(0, false); err != nil {
		return nil, wrapField(err, "address")
	}
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
	if info.PlayersOnline, err = b.ReadU8(); err != nil {
		return nil, wrapField(err, "players")
	}
	if info.PlayersMaximum, err = b.ReadU8(); err != nil {
		return nil, wrapField(err, "max_players")
	}
	if info.Protocol, err = b.ReadU8(); err != nil {
		return nil, wrapField(err, "protocol")
	}

	serverTypeByte, err := b.ReadU8()
	if err != nil {
		return nil, wrapField(err, "server_type")
	}
	if info.ServerType, err = decodeServerType(serverTypeByte); err != nil {
		return nil, err
	}

	envByte, err := b.ReadU8()
	if err != nil {
		return nil, wrapField(err, "environment")
	}
	if info.Environment, err = decodeEnvironment(envByte); err != nil {
		return nil, err
	}

	pw, err := b.ReadU8()
	if err != nil {
		return nil, wrapField(err, "password")
	}
	info.PasswordProtected = pw != 0

	isMod, err := b.ReadU8()
	if err != nil {
		return nil, wrapField(err, "is_mod")
	}
	if isMod != 0 {
		m := &GoldSrcMod{}
		if m.Link, err = b.ReadStringUTF8(0, false); err != nil {
			return nil, wrapField(err, "mod.link")
		}
		if m.DownloadLink, err = b.ReadStringUTF8(0, false); err != nil {
			return nil, wrapField(err, "mod.download_link")
		}
		if err := b.MovePos(1); err != nil { // reserved NUL byte
			return nil, wrapField(err, "mod.reserved")
		}
		if m.Version, err = b.ReadU32LE(); err != nil {
			return nil, wrapField(err, "mod.version")
		}
		if m.Size, err = b.ReadU32LE(); err != nil {
			return nil, wrapField(err, "mod.size")
		}
		mpOnly, err := b.ReadU8()
		if err != nil {
			return nil, wrapField(err, "mod.multiplayer_only")
		}
		m.MultiplayerOnly = mpOnly != 0
		dll, err := b.ReadU8()
		if err != nil {
			return nil, wrapField(err, "mod.uses_custom_dll")
		}
		m.UsesCustomDLL = dll != 0
		info.Mod = m
	}

	vac, err := b.ReadU8()
	if err != nil {
		return nil, wrapField(err, "vac")
	}
	info.VACEnabled = vac != 0

	if info.Bots, err = b.ReadU8(); err != nil {
		return nil, wrapField(err, "bots")
	}

	return info, nil
}

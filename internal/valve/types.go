package valve

// ServerType distinguishes a dedicated server, a listen (non-dedicated)
// server, or a SourceTV/HLTV relay.
type ServerType int

const (
	Dedicated ServerType = iota
	NonDedicated
	SourceTV
)

func (s ServerType) String() string {
	switch s {
	case Dedicated:
		return "Dedicated"
	case NonDedicated:
		return "NonDedicated"
	case SourceTV:
		return "SourceTV"
	default:
		return "Unknown"
	}
}

// Environment is the server's host operating system family.
type Environment int

const (
	Linux Environment = iota
	Windows
	Mac
)

func (e Environment) String() string {
	switch e {
	case Linux:
		return "Linux"
	case Windows:
		return "Windows"
	case Mac:
		return "Mac"
	default:
		return "Unknown"
	}
}

// Engine selects between the modern Source protocol (optionally pinned to
// a specific app id) and the obsolete GoldSrc layout.
type Engine struct {
	GoldSrc       bool
	AppID         *uint16
	ForceObsolete bool
}

// TheShip carries the extra INFO/PLAYERS fields present only for that
// game's app id.
type TheShip struct {
	Mode      uint8
	Witnesses uint8
	Duration  uint8
}

// Extras are the optional trailing INFO fields gated by the Extra Data
// Flag bitfield; every field is present only if its corresponding bit was
// set, and must be read in the fixed order the bitfield encodes.
type Extras struct {
	Port          *uint16
	ServerSteamID *uint64
	SourceTVPort  *uint16
	SourceTVName  *string
	Keywords      *string
	AppID64       *uint64
}

// Info is the parsed A2S_INFO response, preserved field-for-field per the
// wire layout.
type Info struct {
	Protocol          uint8
	Name              string
	Map               string
	Folder            string
	Game              string
	AppID             uint16
	PlayersOnline     uint8
	PlayersMaximum    uint8
	Bots              uint8
	ServerType        ServerType
	Environment       Environment
	PasswordProtected bool
	VACEnabled        bool
	TheShip           *TheShip
	Version           string
	EDF               uint8
	Extras            Extras
}

// Player is one entry of the A2S_PLAYERS response.
type Player struct {
	Index    uint8
	Name     string
	Score    int32
	Duration float32
	TheShip  *PlayerTheShip
}

// PlayerTheShip carries TheShip's extra per-player fields.
type PlayerTheShip struct {
	Deaths uint32
	Money  uint32
}

// Rules is the parsed A2S_RULES response: a flat key/value map. Duplicate
// keys are resolved last-write-wins, matching the source's tolerance for
// rules mappings being commutative in practice.
type Rules map[string]string

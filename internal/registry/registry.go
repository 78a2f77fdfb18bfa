// Package registry maps a stable lowercase game id to its protocol family,
// default port, and gather policy, and exposes the single public dispatch
// facade every concrete protocol handler sits behind.
package registry

import (
	"strings"

	"github.com/riftline/gamedig/internal/diag"
	"github.com/riftline/gamedig/internal/nio"
	"github.com/riftline/gamedig/internal/protocols/gamespy1"
	"github.com/riftline/gamedig/internal/protocols/gamespy2"
	"github.com/riftline/gamedig/internal/protocols/gamespy3"
	"github.com/riftline/gamedig/internal/protocols/minecraft"
	"github.com/riftline/gamedig/internal/protocols/quake"
	"github.com/riftline/gamedig/internal/protocols/unreal2"
	"github.com/riftline/gamedig/internal/response"
	"github.com/riftline/gamedig/internal/settings"
	"github.com/riftline/gamedig/internal/valve"
)

// Family identifies which protocol package an Entry dispatches to.
type Family int

const (
	FamilyValve Family = iota
	FamilyValveGoldSrc
	FamilyGameSpy1
	FamilyGameSpy2
	FamilyGameSpy3
	FamilyQuake1
	FamilyQuake2
	FamilyQuake3
	FamilyUnreal2
	FamilyMinecraft
)

// String renders a Family as the protocol package name it dispatches to.
func (f Family) String() string {
	switch f {
	case FamilyValve:
		return "valve"
	case FamilyValveGoldSrc:
		return "valve-goldsrc"
	case FamilyGameSpy1:
		return "gamespy1"
	case FamilyGameSpy2:
		return "gamespy2"
	case FamilyGameSpy3:
		return "gamespy3"
	case FamilyQuake1:
		return "quake1"
	case FamilyQuake2:
		return "quake2"
	case FamilyQuake3:
		return "quake3"
	case FamilyUnreal2:
		return "unreal2"
	case FamilyMinecraft:
		return "minecraft"
	default:
		return "unknown"
	}
}

// Entry is one registry row: everything the dispatcher needs to query a
// game by id without the caller naming a protocol explicitly.
type Entry struct {
	DisplayName       string
	DefaultPort       uint16
	Family            Family
	Gather            settings.GatherSettings
	ExpectedAppID     uint16
	SecondaryAppID    *uint16
	LegacySplitPacket bool
	TheShip           bool
}

// GAMES is the immutable, compile-time registry. It is never mutated after
// package init and is safe for concurrent lookup.
var GAMES = map[string]Entry{
	"css": {
		DisplayName:   "Counter-Strike: Source",
		DefaultPort:   27015,
		Family:        FamilyValve,
		Gather:        settings.DefaultGatherSettings(),
		ExpectedAppID: 240,
	},
	"csgo": {
		DisplayName:   "Counter-Strike: Global Offensive",
		DefaultPort:   27015,
		Family:        FamilyValve,
		Gather:        settings.DefaultGatherSettings(),
		ExpectedAppID: 730,
	},
	"tf2": {
		DisplayName:   "Team Fortress 2",
		DefaultPort:   27015,
		Family:        FamilyValve,
		Gather:        settings.DefaultGatherSettings(),
		ExpectedAppID: 440,
	},
	"l4d2": {
		DisplayName:   "Left 4 Dead 2",
		DefaultPort:   27015,
		Family:        FamilyValve,
		Gather:        settings.DefaultGatherSettings(),
		ExpectedAppID: 550,
	},
	"garrysmod": {
		DisplayName:   "Garry's Mod",
		DefaultPort:   27015,
		Family:        FamilyValve,
		Gather:        settings.DefaultGatherSettings(),
		ExpectedAppID: 4000,
	},
	"rust": {
		DisplayName:   "Rust",
		DefaultPort:   28015,
		Family:        FamilyValve,
		Gather:        settings.GatherSettings{Players: settings.Try, Rules: settings.Skip, CheckAppID: true},
		ExpectedAppID: 252490,
	},
	"ark": {
		DisplayName:    "ARK: Survival Evolved",
		DefaultPort:    27015,
		Family:         FamilyValve,
		Gather:         settings.DefaultGatherSettings(),
		ExpectedAppID:  346110,
		SecondaryAppID: uint16Ptr(346111),
	},
	"halflife": {
		DisplayName:       "Half-Life",
		DefaultPort:       27015,
		Family:            FamilyValveGoldSrc,
		Gather:            settings.DefaultGatherSettings(),
		LegacySplitPacket: true,
	},
	"counterstrike": {
		DisplayName:       "Counter-Strike",
		DefaultPort:       27015,
		Family:            FamilyValveGoldSrc,
		Gather:            settings.DefaultGatherSettings(),
		LegacySplitPacket: true,
	},
	"theship": {
		DisplayName: "The Ship",
		DefaultPort: 27015,
		Family:      FamilyValve,
		Gather:      settings.DefaultGatherSettings(),
		TheShip:     true,
	},
	"quake1": {
		DisplayName: "Quake",
		DefaultPort: 27500,
		Family:      FamilyQuake1,
		Gather:      settings.DefaultGatherSettings(),
	},
	"quake2": {
		DisplayName: "Quake II",
		DefaultPort: 27910,
		Family:      FamilyQuake2,
		Gather:      settings.DefaultGatherSettings(),
	},
	"quake3": {
		DisplayName: "Quake III Arena",
		DefaultPort: 27960,
		Family:      FamilyQuake3,
		Gather:      settings.DefaultGatherSettings(),
	},
	"unreal2": {
		DisplayName: "Unreal Tournament 2004",
		DefaultPort: 7778,
		Family:      FamilyUnreal2,
		Gather:      settings.DefaultGatherSettings(),
	},
	"minecraft": {
		DisplayName: "Minecraft",
		DefaultPort: 25565,
		Family:      FamilyMinecraft,
		Gather:      settings.DefaultGatherSettings(),
	},
	"medalofhonor": {
		DisplayName: "Medal of Honor: Allied Assault",
		DefaultPort: 12203,
		Family:      FamilyGameSpy1,
		Gather:      settings.DefaultGatherSettings(),
	},
	"unrealtournament": {
		DisplayName: "Unreal Tournament",
		DefaultPort: 7778,
		Family:      FamilyGameSpy2,
		Gather:      settings.DefaultGatherSettings(),
	},
	"battlefield2": {
		DisplayName: "Battlefield 2",
		DefaultPort: 29900,
		Family:      FamilyGameSpy3,
		Gather:      settings.DefaultGatherSettings(),
	},
}

func uint16Ptr(v uint16) *uint16 { return &v }

// Query resolves gameID, fills in endpoint.Port from the registry's default
// when the caller didn't supply one, dispatches to the matching protocol
// family, and normalizes the result to response.GenericServer.
func Query(gameID string, endpoint nio.Endpoint, timeouts settings.TimeoutConfig) (response.GenericServer, error) {
	entry, ok := GAMES[strings.ToLower(gameID)]
	if !ok {
		return response.GenericServer{}, diag.New(diag.GameNotFound, "unknown game id").Attach("game_id", gameID)
	}
	if endpoint.Port == 0 {
		endpoint.Port = entry.DefaultPort
	}

	common, err := dispatch(entry, endpoint, timeouts)
	if err != nil {
		return response.GenericServer{}, err
	}
	return common.ToGeneric(), nil
}

func dispatch(entry Entry, endpoint nio.Endpoint, timeouts settings.TimeoutConfig) (response.CommonResponse, error) {
	switch entry.Family {
	case FamilyValve, FamilyValveGoldSrc:
		opts := valve.Options{
			GoldSrc:           entry.Family == FamilyValveGoldSrc,
			TheShip:           entry.TheShip,
			LegacySplitPacket: entry.LegacySplitPacket,
			ExpectedAppID:     entry.ExpectedAppID,
			SecondaryAppID:    entry.SecondaryAppID,
		}
		if !entry.Gather.CheckAppID {
			opts.ExpectedAppID = 0
		}
		return valve.Query(endpoint, timeouts, entry.Gather, opts)

	case FamilyGameSpy1:
		return gamespy1.Query(endpoint, timeouts.UDPReadOrDefault(), timeouts.UDPWriteOrDefault(), timeouts.Retries)

	case FamilyGameSpy2:
		return gamespy2.Query(endpoint, timeouts.UDPReadOrDefault(), timeouts.UDPWriteOrDefault(), timeouts.Retries)

	case FamilyGameSpy3:
		return gamespy3.Query(endpoint, timeouts.UDPReadOrDefault(), timeouts.UDPWriteOrDefault(), timeouts.Retries)

	case FamilyQuake1:
		return quake.Query(quake.Quake1, endpoint, timeouts.UDPReadOrDefault(), timeouts.UDPWriteOrDefault(), timeouts.Retries)
	case FamilyQuake2:
		return quake.Query(quake.Quake2, endpoint, timeouts.UDPReadOrDefault(), timeouts.UDPWriteOrDefault(), timeouts.Retries)
	case FamilyQuake3:
		return quake.Query(quake.Quake3, endpoint, timeouts.UDPReadOrDefault(), timeouts.UDPWriteOrDefault(), timeouts.Retries)

	case FamilyUnreal2:
		return unreal2.Query(endpoint, timeouts.UDPReadOrDefault(), timeouts.UDPWriteOrDefault(), timeouts.Retries)

	case FamilyMinecraft:
		return minecraft.Query(minecraft.Auto, endpoint, timeouts)

	default:
		return nil, diag.New(diag.InvalidInput, "unhandled protocol family")
	}
}

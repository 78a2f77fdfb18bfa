package valve

import (
	"time"

	"github.com/riftline/gamedig/internal/diag"
	"github.com/riftline/gamedig/internal/nio"
	"github.com/riftline/gamedig/internal/response"
	"github.com/riftline/gamedig/internal/settings"
)

// Result is the aggregate of a full Valve Source Query: INFO is always
// present (its failure fails the whole query); Players and Rules are
// present only if their gather policy attempted and succeeded.
type Result struct {
	Info    *Info
	Players []Player
	Rules   Rules
}

// Options configures one aggregate query beyond the raw transport
// timeouts: whether to treat the server as GoldSrc, TheShip, or a
// legacy-split-packet app, and the registry's expected app id for
// check_app_id.
type Options struct {
	GoldSrc           bool
	TheShip           bool
	LegacySplitPacket bool
	ExpectedAppID     uint16
	// SecondaryAppID allows for the common case of a dedicated-server
	// variant app id alongside the primary one (spec's "allowance for a
	// secondary dedicated-server app id").
	SecondaryAppID *uint16
}

// Query runs INFO -> PLAYERS -> RULES in that fixed order against endpoint,
// composing sub-queries per gather. INFO failure always fails the query;
// PLAYERS/RULES failures are tolerated under Try/Skip and fatal under
// Enforce.
func Query(endpoint nio.Endpoint, timeouts settings.TimeoutConfig, gather settings.GatherSettings, opts Options) (*Result, error) {
	client, err := NewClient(endpoint, timeouts.UDPReadOrDefault(), timeouts.UDPWriteOrDefault(), timeouts.Retries, opts.LegacySplitPacket, opts.TheShip)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	result := &Result{}

	if opts.GoldSrc {
		gsInfo, err := client.QueryInfoGoldSrc(BuildInfoRequest())
		if err != nil {
			return nil, err
		}
		result.Info = goldSrcToInfo(gsInfo)
	} else {
		info, err := client.QueryInfo(BuildInfoRequest())
		if err != nil {
			return nil, err
		}
		result.Info = info
	}

	if opts.ExpectedAppID != 0 && result.Info.AppID != 0 {
		matches := result.Info.AppID == opts.ExpectedAppID
		if !matches && opts.SecondaryAppID != nil {
			matches = result.Info.AppID == *opts.SecondaryAppID
		}
		if !matches {
			return nil, diag.New(diag.BadGame, "app id mismatch").
				Attach("expected", itoa(int(opts.ExpectedAppID))).Attach("got", itoa(int(result.Info.AppID)))
		}
	}

	if gather.Players != settings.Skip {
		players, err := client.QueryPlayers(BuildPlayersRequest())
		if err != nil {
			if gather.Players == settings.Enforce {
				return nil, err
			}
		} else {
			result.Players = players
		}
	}

	if gather.Rules != settings.Skip {
		rules, err := client.QueryRules(BuildRulesRequest())
		if err != nil {
			if gather.Rules == settings.Enforce {
				return nil, err
			}
		} else {
			result.Rules = rules
		}
	}

	return result, nil
}

func goldSrcToInfo(g *GoldSrcInfo) *Info {
	return &Info{
		Protocol:          g.Protocol,
		Name:              g.Name,
		Map:               g.Map,
		Folder:            g.Folder,
		Game:              g.Game,
		PlayersOnline:     g.PlayersOnline,
		PlayersMaximum:    g.PlayersMaximum,
		Bots:              g.Bots,
		ServerType:        g.ServerType,
		Environment:       g.Environment,
		PasswordProtected: g.PasswordProtected,
		VACEnabled:        g.VACEnabled,
	}
}

// ToGeneric implements response.CommonResponse.
func (r *Result) ToGeneric() response.GenericServer {
	gs := response.GenericServer{
		Name:           r.Info.Name,
		MaxPlayers:     uint16(r.Info.PlayersMaximum),
		CurrentPlayers: uint16(r.Info.PlayersOnline),
		HasPassword:    boolPtr(r.Info.PasswordProtected),
		Map:            strPtr(r.Info.Map),
		Version:        strPtr(r.Info.Version),
		AntiCheat:      boolPtr(r.Info.VACEnabled),
	}

	additional := map[string]response.Scalar{
		"folder":      response.StringScalar(r.Info.Folder),
		"game":        response.StringScalar(r.Info.Game),
		"app_id":      response.UintScalar(uint64(r.Info.AppID)),
		"server_type": response.StringScalar(r.Info.ServerType.String()),
		"environment": response.StringScalar(r.Info.Environment.String()),
		"bots":        response.UintScalar(uint64(r.Info.Bots)),
	}
	if r.Info.Extras.Keywords != nil {
		additional["keywords"] = response.StringScalar(*r.Info.Extras.Keywords)
	}
	if r.Info.Extras.ServerSteamID != nil {
		additional["server_steam_id"] = response.UintScalar(*r.Info.Extras.ServerSteamID)
	}
	gs.AdditionalData = additional

	if r.Rules != nil {
		for k, v := range r.Rules {
			additional["rule:"+k] = response.StringScalar(v)
		}
	}

	if r.Players != nil {
		players := make([]response.PlayerEntry, 0, len(r.Players))
		for _, p := range r.Players {
			entry := response.PlayerEntry{
				Name: p.Name,
				AdditionalData: map[string]response.Scalar{
					"score":    response.IntScalar(int64(p.Score)),
					"duration": response.DurationScalar(time.Duration(p.Duration * float32(time.Second))),
				},
			}
			players = append(players, entry)
		}
		gs.Players = players
	}

	return gs
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

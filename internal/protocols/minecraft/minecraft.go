// Package minecraft dispatches across Minecraft's four wire sub-protocols:
// modern Java (TCP, JSON), Bedrock (UDP, RakNet unconnected ping), and two
// legacy TCP variants. Auto-mode tries each in turn and returns the first
// success, opening a fresh socket per attempt since a failed probe can
// leave a sub-protocol's connection in an unusable state.
package minecraft

import (
	"github.com/riftline/gamedig/internal/diag"
	"github.com/riftline/gamedig/internal/nio"
	"github.com/riftline/gamedig/internal/response"
	"github.com/riftline/gamedig/internal/settings"
)

// Variant selects one fixed sub-protocol; Auto tries all of them in order.
type Variant int

const (
	Auto Variant = iota
	Java
	Bedrock
	Legacy16
	Legacy14
	LegacyB18
)

// Info is the normalized result of whichever sub-probe succeeded.
type Info struct {
	Variant Variant
	Java    *JavaInfo
	Bedrock *BedrockInfo
	Legacy  *LegacyInfo
}

// Query runs variant (or, for Auto, each sub-protocol in the fixed order
// Java -> Bedrock -> Legacy16 -> Legacy14 -> LegacyB18) and returns the
// first successful probe's result.
func Query(variant Variant, endpoint nio.Endpoint, timeouts settings.TimeoutConfig) (*Info, error) {
	order := []Variant{variant}
	if variant == Auto {
		order = []Variant{Java, Bedrock, Legacy16, Legacy14, LegacyB18}
	}

	var lastErr error
	for _, v := range order {
		info, err := queryOne(v, endpoint, timeouts)
		if err == nil {
			return info, nil
		}
		lastErr = err
	}

	if variant == Auto {
		return nil, diag.Wrap(diag.AutoQuery, "every minecraft sub-protocol failed", lastErr)
	}
	return nil, lastErr
}

func queryOne(v Variant, endpoint nio.Endpoint, timeouts settings.TimeoutConfig) (*Info, error) {
	switch v {
	case Java:
		j, err := QueryJava(endpoint, timeouts.TCPConnectOrDefault(), timeouts.TCPReadOrDefault(), timeouts.TCPReadOrDefault())
		if err != nil {
			return nil, err
		}
		return &Info{Variant: Java, Java: j}, nil
	case Bedrock:
		b, err := QueryBedrock(endpoint, timeouts.UDPReadOrDefault(), timeouts.UDPWriteOrDefault(), timeouts.Retries)
		if err != nil {
			return nil, err
		}
		return &Info{Variant: Bedrock, Bedrock: b}, nil
	case Legacy16:
		l, err := QueryLegacy16(endpoint, timeouts.TCPConnectOrDefault(), timeouts.TCPReadOrDefault(), timeouts.TCPReadOrDefault())
		if err != nil {
			return nil, err
		}
		return &Info{Variant: Legacy16, Legacy: l}, nil
	case Legacy14, LegacyB18:
		l, err := QueryLegacyOld(endpoint, timeouts.TCPConnectOrDefault(), timeouts.TCPReadOrDefault(), timeouts.TCPReadOrDefault())
		if err != nil {
			return nil, err
		}
		return &Info{Variant: v, Legacy: l}, nil
	default:
		return nil, diag.New(diag.InvalidInput, "unknown minecraft variant")
	}
}

// ToGeneric implements response.CommonResponse.
func (i *Info) ToGeneric() response.GenericServer {
	switch {
	case i.Java != nil:
		gs := response.GenericServer{
			MaxPlayers:     uint16(i.Java.Players.Max),
			CurrentPlayers: uint16(i.Java.Players.Online),
			Version:        &i.Java.Version.Name,
		}
		additional := map[string]response.Scalar{
			"description": response.StringScalar(string(i.Java.Description)),
			"protocol":    response.IntScalar(int64(i.Java.Version.Protocol)),
		}
		players := make([]response.PlayerEntry, 0, len(i.Java.Players.Sample))
		for _, p := range i.Java.Players.Sample {
			players = append(players, response.PlayerEntry{
				Name:           p.Name,
				AdditionalData: map[string]response.Scalar{"uuid": response.StringScalar(p.ID)},
			})
		}
		gs.Players = players
		gs.AdditionalData = additional
		return gs
	case i.Bedrock != nil:
		mode := i.Bedrock.Gamemode
		gs := response.GenericServer{
			Name:           i.Bedrock.MOTD,
			Map:            &i.Bedrock.SubMOTD,
			Mode:           &mode,
			MaxPlayers:     uint16(i.Bedrock.MaxPlayers),
			CurrentPlayers: uint16(i.Bedrock.NumPlayers),
		}
		gs.AdditionalData = map[string]response.Scalar{
			"edition":   response.StringScalar(i.Bedrock.Edition),
			"protocol":  response.IntScalar(int64(i.Bedrock.ProtocolVersion)),
			"server_id": response.StringScalar(i.Bedrock.ServerID),
		}
		return gs
	case i.Legacy != nil:
		return response.GenericServer{
			Name:           i.Legacy.MOTD,
			MaxPlayers:     uint16(i.Legacy.MaxPlayers),
			CurrentPlayers: uint16(i.Legacy.NumPlayers),
			Version:        &i.Legacy.ServerVersion,
			AdditionalData: map[string]response.Scalar{
				"protocol": response.IntScalar(int64(i.Legacy.ProtocolVersion)),
			},
		}
	default:
		return response.GenericServer{}
	}
}

package models

// PlayerResponse is one roster entry in a query result.
type PlayerResponse struct {
	Name           string            `json:"name"`
	AdditionalData map[string]string `json:"additional_data,omitempty"`
}

// QueryResponse is the generic, protocol-agnostic projection of a game
// server's state returned by GET /query/:game_id, mirroring
// response.GenericServer.
type QueryResponse struct {
	Name           string            `json:"name"`
	Description    *string           `json:"description,omitempty"`
	Map            *string           `json:"map,omitempty"`
	Mode           *string           `json:"mode,omitempty"`
	Version        *string           `json:"version,omitempty"`
	AntiCheat      *bool             `json:"anticheat,omitempty"`
	HasPassword    *bool             `json:"has_password,omitempty"`
	MaxPlayers     uint16            `json:"max_players"`
	CurrentPlayers uint16            `json:"current_players"`
	Players        []PlayerResponse  `json:"players,omitempty"`
	AdditionalData map[string]string `json:"additional_data,omitempty"`
	LatencyMs      int64             `json:"latency_ms"`
}

// GameSummary is one row of GET /games: a registry entry's id, display
// name, default port and protocol family name. The gather policy and the
// other internal dispatch details are left out.
type GameSummary struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	DefaultPort uint16 `json:"default_port"`
	Protocol    string `json:"protocol"`
}

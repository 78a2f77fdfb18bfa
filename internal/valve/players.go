package valve

import (
	"github.com/riftline/gamedig/internal/diag"
	"github.com/riftline/gamedig/internal/gamebuf"
)

// QueryPlayers performs the A2S_PLAYERS sub-query.
func (c *Client) QueryPlayers(payload []byte) ([]Player, error) {
	body, err := c.query(payload, successPlayers)
	if err != nil {
		return nil, err
	}
	return parsePlayers(body, c.theShip)
}

func parsePlayers(body *gamebuf.Buffer, theShip bool) ([]Player, error) {
	total, err := body.ReadU8()
	if err != nil {
		return nil, wrapPlayersField(err, "total")
	}

	players := make([]Player, 0, total)
	for i := uint8(0); i < total; i++ {
		idx, err := body.ReadU8()
		if err != nil {
			return nil, wrapPlayersField(err, "index")
		}
		name, err := body.ReadStringUTF8(0, false)
		if err != nil {
			return nil, wrapPlayersField(err, "name")
		}
		score, err := body.ReadI32LE()
		if err != nil {
			return nil, wrapPlayersField(err, "score")
		}
		duration, err := body.ReadF32LE()
		if err != nil {
			return nil, wrapPlayersField(err, "duration")
		}

		p := Player{Index: idx, Name: name, Score: score, Duration: duration}

		if theShip {
			deaths, err := body.ReadU32LE()
			if err != nil {
				return nil, wrapPlayersField(err, "the_ship.deaths")
			}
			money, err := body.ReadU32LE()
			if err != nil {
				return nil, wrapPlayersField(err, "the_ship.money")
			}
			p.TheShip = &PlayerTheShip{Deaths: deaths, Money: money}
		}

		players = append(players, p)
	}
	return players, nil
}

func wrapPlayersField(err error, field string) error {
	return diag.Wrap(diag.Parse, "decoding players field", err).Attach("section", "PLAYERS").Attach("field", field)
}

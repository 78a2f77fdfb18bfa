package valve

import (
	"github.com/riftline/gamedig/internal/diag"
	"github.com/riftline/gamedig/internal/gamebuf"
)

// QueryRules performs the A2S_RULES sub-query. Duplicate keys resolve
// last-write-wins.
func (c *Client) QueryRules(payload []byte) (Rules, error) {
	body, err := c.query(payload, successRules)
	if err != nil {
		return nil, err
	}
	return parseRules(body)
}

func parseRules(body *gamebuf.Buffer) (Rules, error) {
	total, err := body.ReadU16LE()
	if err != nil {
		return nil, wrapRulesField(err, "total")
	}

	rules := make(Rules, total)
	for i := uint16(0); i < total; i++ {
		key, err := body.ReadStringUTF8(0, false)
		if err != nil {
			return nil, wrapRulesField(err, "key")
		}
		value, err := body.ReadStringUTF8(0, false)
		if err != nil {
			return nil, wrapRulesField(err, "value")
		}
		rules[key] = value
	}
	return rules, nil
}

func wrapRulesField(err error, field string) error {
	return diag.Wrap(diag.Parse, "decoding rules field", err).Attach("section", "RULES").Attach("field", field)
}

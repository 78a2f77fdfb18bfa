package valve

var packetHeader = []byte{0xFF, 0xFF, 0xFF, 0xFF}

// BuildInfoRequest builds the fixed 25-byte A2S_INFO payload.
func BuildInfoRequest() []byte {
	payload := append(append([]byte{}, packetHeader...), reqInfo)
	return append(payload, "Source Engine Query\x00"...)
}

// BuildPlayersRequest builds the initial 5-byte A2S_PLAYERS payload, which
// the server answers with a challenge on first contact.
func BuildPlayersRequest() []byte {
	return append(append([]byte{}, packetHeader...), reqPlayers)
}

// BuildRulesRequest builds the initial 5-byte A2S_RULES payload.
func BuildRulesRequest() []byte {
	return append(append([]byte{}, packetHeader...), reqRules)
}

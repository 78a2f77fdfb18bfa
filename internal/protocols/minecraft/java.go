package minecraft

import (
	"encoding/binary"
	"time"

	"github.com/goccy/go-json"

	"github.com/riftline/gamedig/internal/diag"
	"github.com/riftline/gamedig/internal/nio"
)

// JavaInfo is the decoded status response from a modern (1.7+) Java Edition
// server, whose handshake/status/ping exchange answers with a single JSON
// document.
type JavaInfo struct {
	Description json.RawMessage `json:"description"`
	Players     struct {
		Max    int `json:"max"`
		Online int `json:"online"`
		Sample []struct {
			Name string `json:"name"`
			ID   string `json:"id"`
		} `json:"sample"`
	} `json:"players"`
	Version struct {
		Name     string `json:"name"`
		Protocol int    `json:"protocol"`
	} `json:"version"`
	FavIcon string `json:"favicon"`
}

// QueryJava performs the TCP handshake + status request + status response
// exchange. No ping/pong round-trip is sent since latency is not modeled by
// this module's generic projection.
func QueryJava(endpoint nio.Endpoint, connectTo, readTo, writeTo time.Duration) (*JavaInfo, error) {
	client, err := nio.NewTCPClient(endpoint, connectTo, readTo, writeTo)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	handshake := buildHandshakePacket(endpoint)
	if err := client.Send(handshake); err != nil {
		return nil, err
	}
	if err := client.Send(encodePacket(0x00, nil)); err != nil {
		return nil, err
	}

	body, err := readJavaResponse(client)
	if err != nil {
		return nil, err
	}

	var info JavaInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, diag.Wrap(diag.Parse, "minecraft java status json decode failed", err)
	}
	return &info, nil
}

func buildHandshakePacket(endpoint nio.Endpoint) []byte {
	var payload []byte
	payload = appendVarInt(payload, 0x00)     // handshake packet id
	payload = appendVarInt(payload, 763)      // protocol version, best-effort current
	payload = appendVarInt(payload, int32(len(endpoint.Host)))
	payload = append(payload, endpoint.Host...)
	portBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(portBytes, endpoint.Port)
	payload = append(payload, portBytes...)
	payload = appendVarInt(payload, 1) // next state: status
	return prependVarIntLength(payload)
}

func encodePacket(id int32, body []byte) []byte {
	payload := appendVarInt(nil, id)
	payload = append(payload, body...)
	return prependVarIntLength(payload)
}

func prependVarIntLength(payload []byte) []byte {
	length := appendVarInt(nil, int32(len(payload)))
	return append(length, payload...)
}

func appendVarInt(buf []byte, v int32) []byte {
	uv := uint32(v)
	for {
		b := byte(uv & 0x7f)
		uv >>= 7
		if uv != 0 {
			buf = append(buf, b|0x80)
		} else {
			buf = append(buf, b)
			break
		}
	}
	return buf
}

func readVarInt(client *nio.TCPClient) (int32, error) {
	var result int32
	for shift := uint(0); shift < 35; shift += 7 {
		b, err := readByte(client)
		if err != nil {
			return 0, err
		}
		result |= int32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
	}
	return 0, diag.New(diag.Parse, "minecraft varint too long")
}

func readByte(client *nio.TCPClient) (byte, error) {
	buf := make([]byte, 1)
	n, err := client.Read(buf)
	if err != nil {
		return 0, err
	}
	if n != 1 {
		return 0, diag.New(diag.PacketTruncated, "minecraft read short of one byte")
	}
	return buf[0], nil
}

// readJavaResponse reads the length-prefixed status response packet and
// strips its packet id (always 0x00) and the following JSON string's own
// varint length prefix, returning the raw JSON bytes.
func readJavaResponse(client *nio.TCPClient) ([]byte, error) {
	packetLen, err := readVarInt(client)
	if err != nil {
		return nil, err
	}
	remaining := make([]byte, packetLen)
	if err := readFull(client, remaining); err != nil {
		return nil, err
	}

	idx := 0
	_, n := decodeVarIntFromSlice(remaining[idx:]) // packet id, discarded
	idx += n
	jsonLen, n := decodeVarIntFromSlice(remaining[idx:])
	idx += n
	if idx+int(jsonLen) > len(remaining) {
		return nil, diag.New(diag.PacketTruncated, "minecraft status json length exceeds packet")
	}
	return remaining[idx : idx+int(jsonLen)], nil
}

func readFull(client *nio.TCPClient, buf []byte) error {
	total := 0
	for total < len(buf) {
		n, err := client.Read(buf[total:])
		if err != nil {
			return err
		}
		if n == 0 {
			return diag.New(diag.PacketTruncated, "minecraft connection closed mid-packet")
		}
		total += n
	}
	return nil
}

func decodeVarIntFromSlice(b []byte) (int32, int) {
	var result int32
	for i := 0; i < len(b) && i < 5; i++ {
		result |= int32(b[i]&0x7f) << (7 * uint(i))
		if b[i]&0x80 == 0 {
			return result, i + 1
		}
	}
	return result, len(b)
}

package valve

import (
	"bytes"
	"encoding/binary"
	"net"
	"testing"
	"time"

	"github.com/riftline/gamedig/internal/nio"
	"github.com/stretchr/testify/require"
)

// singlePacket wraps body in a -1 ("single packet") header, the framing
// query()/request() expect for an unfragmented datagram.
func singlePacket(body []byte) []byte {
	out := make([]byte, 4+len(body))
	binary.LittleEndian.PutUint32(out, uint32(int32(-1)))
	copy(out[4:], body)
	return out
}

// TestClient_Query_ChallengeThenSuccess exercises the challenge round trip:
// the server's first reply carries the 'A' challenge byte plus a 4-byte
// challenge value, which the client must append to the original payload and
// resend once, succeeding on the second reply.
func TestClient_Query_ChallengeThenSuccess(t *testing.T) {
	addr, err := net.ResolveUDPAddr("udp", "127.0.0.1:0")
	require.NoError(t, err)
	conn, err := net.ListenUDP("udp", addr)
	require.NoError(t, err)
	defer conn.Close()

	challengeValue := []byte{0x11, 0x22, 0x33, 0x44}
	successBody := []byte{successInfo, 0x01, 0x02, 0x03}
	originalPayload := []byte("payload")

	go func() {
		req := make([]byte, 1500)

		n, clientAddr, err := conn.ReadFromUDP(req)
		if err != nil || !bytes.Equal(req[:n], originalPayload) {
			return
		}
		challengeBody := append([]byte{challengeCode}, challengeValue...)
		if _, err := conn.WriteToUDP(singlePacket(challengeBody), clientAddr); err != nil {
			return
		}

		n, clientAddr, err = conn.ReadFromUDP(req)
		if err != nil {
			return
		}
		got := req[:n]
		wantRetry := append(append([]byte{}, originalPayload...), challengeValue...)
		if !bytes.Equal(got, wantRetry) {
			return
		}
		_, _ = conn.WriteToUDP(singlePacket(successBody), clientAddr)
	}()

	endpoint := nio.Endpoint{Host: "127.0.0.1", Port: uint16(conn.LocalAddr().(*net.UDPAddr).Port)}
	client, err := NewClient(endpoint, time.Second, time.Second, 1, false, false)
	require.NoError(t, err)
	defer client.Close()

	body, err := client.query(originalPayload, successInfo)
	require.NoError(t, err)
	require.Equal(t, successBody[1:], body.RemainingSlice())
}

// TestClient_Query_UnexpectedFirstByteFails confirms a reply that is
// neither the expected success byte nor the challenge code is reported as a
// protocol error rather than silently accepted.
func TestClient_Query_UnexpectedFirstByteFails(t *testing.T) {
	addr, err := net.ResolveUDPAddr("udp", "127.0.0.1:0")
	require.NoError(t, err)
	conn, err := net.ListenUDP("udp", addr)
	require.NoError(t, err)
	defer conn.Close()

	go func() {
		req := make([]byte, 1500)
		_, clientAddr, err := conn.ReadFromUDP(req)
		if err != nil {
			return
		}
		_, _ = conn.WriteToUDP(singlePacket([]byte{0xFF, 0x00}), clientAddr)
	}()

	endpoint := nio.Endpoint{Host: "127.0.0.1", Port: uint16(conn.LocalAddr().(*net.UDPAddr).Port)}
	client, err := NewClient(endpoint, time.Second, time.Second, 1, false, false)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.query([]byte("payload"), successInfo)
	require.Error(t, err)
}

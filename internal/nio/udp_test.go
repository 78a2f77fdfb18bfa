package nio

import (
	"net"
	"testing"
	"time"

	"github.com/riftline/gamedig/internal/diag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loopbackUDPServer binds an ephemeral port, replies to the first datagram
// it receives with reply, and returns the chosen Endpoint.
func loopbackUDPServer(t *testing.T, reply []byte) Endpoint {
	t.Helper()

	addr, err := net.ResolveUDPAddr("udp", "127.0.0.1:0")
	require.NoError(t, err)
	conn, err := net.ListenUDP("udp", addr)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	go func() {
		req := make([]byte, 1500)
		_, clientAddr, err := conn.ReadFromUDP(req)
		if err != nil {
			return
		}
		_, _ = conn.WriteToUDP(reply, clientAddr)
	}()

	return Endpoint{Host: "127.0.0.1", Port: uint16(conn.LocalAddr().(*net.UDPAddr).Port)}
}

// TestUDPClient_Recv_TruncatedDatagram exercises the truncation check: a
// datagram exactly filling the receive buffer must be reported as
// PacketTruncated, not treated as a complete read.
func TestUDPClient_Recv_TruncatedDatagram(t *testing.T) {
	const bufSize = 16
	reply := make([]byte, bufSize)
	for i := range reply {
		reply[i] = byte(i)
	}

	endpoint := loopbackUDPServer(t, reply)

	client, err := NewUDPClient(endpoint, time.Second, time.Second)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Send([]byte("ping")))

	buf := make([]byte, bufSize)
	n, err := client.Recv(buf)
	assert.Equal(t, bufSize, n)
	require.Error(t, err)
	assert.True(t, diag.Is(err, diag.PacketTruncated))
}

// TestUDPClient_Recv_NormalDatagram confirms a datagram shorter than the
// receive buffer is returned as-is with no truncation error.
func TestUDPClient_Recv_NormalDatagram(t *testing.T) {
	reply := []byte("short reply")
	endpoint := loopbackUDPServer(t, reply)

	client, err := NewUDPClient(endpoint, time.Second, time.Second)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Send([]byte("ping")))

	buf := make([]byte, MaxDatagramSize)
	n, err := client.Recv(buf)
	require.NoError(t, err)
	assert.Equal(t, reply, buf[:n])
}

// TestUDPClient_Recv_TimesOutWithNoReply confirms a silent remote yields a
// SocketTimeout, not a hang, within the configured read deadline.
func TestUDPClient_Recv_TimesOutWithNoReply(t *testing.T) {
	addr, err := net.ResolveUDPAddr("udp", "127.0.0.1:0")
	require.NoError(t, err)
	conn, err := net.ListenUDP("udp", addr)
	require.NoError(t, err)
	defer conn.Close()

	endpoint := Endpoint{Host: "127.0.0.1", Port: uint16(conn.LocalAddr().(*net.UDPAddr).Port)}
	client, err := NewUDPClient(endpoint, 50*time.Millisecond, time.Second)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Send([]byte("ping")))

	buf := make([]byte, MaxDatagramSize)
	_, err = client.Recv(buf)
	require.Error(t, err)
	assert.True(t, diag.Is(err, diag.SocketTimeout))
}

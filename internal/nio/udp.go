package nio

import (
	"net"
	"time"

	"github.com/riftline/gamedig/internal/diag"
	"github.com/riftline/gamedig/internal/pool"
)

// MaxDatagramSize is the default receive buffer size used when a caller
// does not supply its own. Individual protocols (notably Valve Source
// Query, which needs MAX_PACKET_SIZE_PLUS_ONE=1401) override this.
const MaxDatagramSize = 8192

var bufPool = pool.New(func() []byte { return make([]byte, MaxDatagramSize) })

// UDPClient is a single-datagram client bound to one remote endpoint for
// the lifetime of one logical query. It is not pooled or reused across
// queries: each query has exclusive ownership of its own sockets.
type UDPClient struct {
	conn    *net.UDPConn
	readTo  time.Duration
	writeTo time.Duration
}

// NewUDPClient resolves endpoint, binds an ephemeral local socket, and
// connects to the resolved remote. Address resolution prefers IPv4 but
// accepts IPv6 because net.ResolveUDPAddr does both transparently via
// Go's "udp" network.
func NewUDPClient(endpoint Endpoint, readTo, writeTo time.Duration) (*UDPClient, error) {
	dialer := net.Dialer{Control: controlSetRecvBuf}
	conn, err := dialer.Dial("udp", endpoint.String())
	if err != nil {
		if isTimeout(err) {
			return nil, diag.Wrap(diag.SocketTimeout, "udp dial timed out", err).Attach("endpoint", endpoint.String())
		}
		return nil, diag.Wrap(diag.SocketConnect, "udp dial failed", err).Attach("endpoint", endpoint.String())
	}
	udpConn, ok := conn.(*net.UDPConn)
	if !ok {
		_ = conn.Close()
		return nil, diag.New(diag.SocketConnect, "dial did not return a udp connection").Attach("endpoint", endpoint.String())
	}
	return &UDPClient{conn: udpConn, readTo: readTo, writeTo: writeTo}, nil
}

// Close releases the underlying socket. Every query path must call this on
// every exit, success or failure.
func (c *UDPClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Send writes payload as a single datagram.
func (c *UDPClient) Send(payload []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTo)); err != nil {
		return diag.Wrap(diag.SocketSend, "set write deadline failed", err)
	}
	if _, err := c.conn.Write(payload); err != nil {
		if isTimeout(err) {
			return diag.Wrap(diag.SocketTimeout, "udp send timed out", err)
		}
		return diag.Wrap(diag.SocketSend, "udp send failed", err)
	}
	return nil
}

// Recv reads one datagram into buf. A datagram exactly as long as len(buf)
// is treated as truncated: the caller must supply a buffer at least one
// byte larger than any legal packet for this protocol.
func (c *UDPClient) Recv(buf []byte) (int, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.readTo)); err != nil {
		return 0, diag.Wrap(diag.SocketRecv, "set read deadline failed", err)
	}
	n, err := c.conn.Read(buf)
	if err != nil {
		if isTimeout(err) {
			return 0, diag.Wrap(diag.SocketTimeout, "udp recv timed out", err)
		}
		return 0, diag.Wrap(diag.SocketRecv, "udp recv failed", err)
	}
	if n == len(buf) {
		return n, diag.New(diag.PacketTruncated, "datagram filled receive buffer to capacity").
			Attach("buffer_size", itoa(len(buf)))
	}
	return n, nil
}

// AcquireBuffer borrows a pooled receive buffer; callers must ReleaseBuffer
// it when done to avoid an allocation on the next query.
func AcquireBuffer() []byte { return bufPool.Get() }

// ReleaseBuffer returns a buffer obtained from AcquireBuffer to the pool.
func ReleaseBuffer(b []byte) { bufPool.Put(b) }

// AcquireBuffer is the method form of the package-level AcquireBuffer.
func (c *UDPClient) AcquireBuffer() []byte { return AcquireBuffer() }

// ReleaseBuffer is the method form of the package-level ReleaseBuffer.
func (c *UDPClient) ReleaseBuffer(b []byte) { ReleaseBuffer(b) }

func isTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

package nio

import (
	"net"
	"time"

	"github.com/riftline/gamedig/internal/diag"
)

// TCPClient is a single-connection client bound to one remote endpoint,
// analogous to UDPClient but over a stream transport with its own bounded
// connect timeout.
type TCPClient struct {
	conn    net.Conn
	readTo  time.Duration
	writeTo time.Duration
}

// NewTCPClient dials endpoint with the given connect/read/write timeouts.
func NewTCPClient(endpoint Endpoint, connectTo, readTo, writeTo time.Duration) (*TCPClient, error) {
	dialer := net.Dialer{Timeout: connectTo, Control: controlSetRecvBuf}
	conn, err := dialer.Dial("tcp", endpoint.String())
	if err != nil {
		if isTimeout(err) {
			return nil, diag.Wrap(diag.SocketTimeout, "tcp connect timed out", err).Attach("endpoint", endpoint.String())
		}
		return nil, diag.Wrap(diag.SocketConnect, "tcp connect failed", err).Attach("endpoint", endpoint.String())
	}
	return &TCPClient{conn: conn, readTo: readTo, writeTo: writeTo}, nil
}

// Close releases the underlying connection.
func (c *TCPClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Send writes payload to the stream.
func (c *TCPClient) Send(payload []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeTo)); err != nil {
		return diag.Wrap(diag.SocketSend, "set write deadline failed", err)
	}
	if _, err := c.conn.Write(payload); err != nil {
		if isTimeout(err) {
			return diag.Wrap(diag.SocketTimeout, "tcp send timed out", err)
		}
		return diag.Wrap(diag.SocketSend, "tcp send failed", err)
	}
	return nil
}

// Read fills buf from the stream, returning as soon as any data arrives
// (unlike io.ReadFull, which callers use explicitly for length-prefixed
// protocols that know exactly how many bytes to expect).
func (c *TCPClient) Read(buf []byte) (int, error) {
	if err := c.conn.SetReadDeadline(time.Now().Add(c.readTo)); err != nil {
		return 0, diag.Wrap(diag.SocketRecv, "set read deadline failed", err)
	}
	n, err := c.conn.Read(buf)
	if err != nil {
		if isTimeout(err) {
			return n, diag.Wrap(diag.SocketTimeout, "tcp read timed out", err)
		}
		return n, diag.Wrap(diag.SocketRecv, "tcp read failed", err)
	}
	return n, nil
}

// Conn exposes the underlying net.Conn for callers (e.g. io.ReadFull on a
// length-prefixed frame) that need the stdlib io interfaces directly.
func (c *TCPClient) Conn() net.Conn { return c.conn }

package valve

import (
	"time"

	"github.com/riftline/gamedig/internal/diag"
	"github.com/riftline/gamedig/internal/gamebuf"
	"github.com/riftline/gamedig/internal/nio"
)

// sub-query success and request bytes, per A2S_*.
const (
	reqInfo    byte = 0x54
	reqPlayers byte = 0x55
	reqRules   byte = 0x56

	successInfo    byte = 'I'
	successPlayers byte = 'D'
	successRules   byte = 'E'
	successGoldSrc byte = 'm'
	challengeCode  byte = 'A'
)

// Client is a single Source-engine query connection. LegacySplitPacket
// configures fragment parsing for older app ids (215, 240, 17550, 17700 at
// certain protocol versions) that omit the 2-byte per-fragment size field;
// the registry sets this flag per known app.
type Client struct {
	conn              *nio.UDPClient
	readTo            time.Duration
	writeTo           time.Duration
	retries           uint
	legacySplitPacket bool
	theShip           bool
}

// NewClient dials endpoint and returns a ready-to-query Client.
func NewClient(endpoint nio.Endpoint, readTo, writeTo time.Duration, retries uint, legacySplitPacket, theShip bool) (*Client, error) {
	conn, err := nio.NewUDPClient(endpoint, readTo, writeTo)
	if err != nil {
		return nil, err
	}
	return &Client{
		conn:              conn,
		readTo:            readTo,
		writeTo:           writeTo,
		retries:           retries,
		legacySplitPacket: legacySplitPacket,
		theShip:           theShip,
	}, nil
}

// Close releases the underlying socket.
func (c *Client) Close() error { return c.conn.Close() }

// recvRawDatagram performs one bounded recv of a raw MaxPacketSizePlusOne
// datagram, retrying on timeout only.
func (c *Client) recvRawDatagram() ([]byte, error) {
	var n int
	buf := make([]byte, MaxPacketSizePlusOne)
	err := nio.RetryOnTimeout(c.retries, func() error {
		var recvErr error
		n, recvErr = c.conn.Recv(buf)
		return recvErr
	})
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// request sends payload, receives a full logical body (performing fragment
// reassembly transparently), and returns it wrapped in a Buffer positioned
// at offset 0 of the body (the 4-byte packet header has already been
// consumed and validated).
func (c *Client) request(payload []byte) (*gamebuf.Buffer, error) {
	sendErr := nio.RetryOnTimeout(c.retries, func() error { return c.conn.Send(payload) })
	if sendErr != nil {
		return nil, sendErr
	}

	raw, err := c.recvRawDatagram()
	if err != nil {
		return nil, err
	}

	b := gamebuf.New(raw)
	header, err := b.ReadI32LE()
	if err != nil {
		return nil, diag.Wrap(diag.Parse, "reading packet header", err)
	}

	switch header {
	case headerSingle:
		return gamebuf.New(b.RemainingSlice()), nil
	case headerFragmented:
		fh, err := readFragmentHeader(b, c.legacySplitPacket)
		if err != nil {
			return nil, err
		}
		body, err := reassemble(fh, b.RemainingSlice(), c.legacySplitPacket, c.recvRawDatagram)
		if err != nil {
			return nil, err
		}
		return gamebuf.New(body), nil
	default:
		return nil, diag.New(diag.SanityCheck, "unexpected header").
			Attach("header", itoa(int(header))).AttachHexDump("datagram", raw, 0)
	}
}

// query sends payload and expects either the success byte immediately or a
// single challenge round trip: if the server replies with the challenge
// code, the 4-byte challenge is appended to payload and the request is
// resent once, expecting success on the second try.
func (c *Client) query(payload []byte, success byte) (*gamebuf.Buffer, error) {
	body, err := c.request(payload)
	if err != nil {
		return nil, err
	}

	first, err := body.ReadU8()
	if err != nil {
		return nil, diag.Wrap(diag.Parse, "reading response header byte", err)
	}

	switch first {
	case success:
		return body, nil
	case challengeCode:
		challenge, err := body.Peek(4)
		if err != nil {
			return nil, diag.Wrap(diag.Parse, "reading challenge value", err)
		}
		retryPayload := append(append([]byte{}, payload...), challenge...)
		body2, err := c.request(retryPayload)
		if err != nil {
			return nil, err
		}
		second, err := body2.ReadU8()
		if err != nil {
			return nil, diag.Wrap(diag.Parse, "reading response header byte after challenge", err)
		}
		if second != success {
			return nil, diag.New(diag.SanityCheck, "unexpected header").
				Attach("expected", string(success)).Attach("got", string(second))
		}
		return body2, nil
	default:
		return nil, diag.New(diag.SanityCheck, "unexpected header").
			Attach("expected", string(success)).Attach("got", string(first))
	}
}

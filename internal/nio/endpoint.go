// Package nio implements the socket and retry layer shared by every
// protocol handler: UDP and TCP clients with bounded timeouts, and a
// retry-on-timeout-only helper.
package nio

import (
	"net"
	"strconv"

	"github.com/riftline/gamedig/internal/diag"
)

// Endpoint is a resolved network address plus port, accepted at the
// boundary as "host:port" where host may be a dotted-quad, a bracketed
// IPv6 literal, or a DNS name to be resolved synchronously.
type Endpoint struct {
	Host string
	Port uint16
}

// ParseEndpoint splits "host:port" into an Endpoint. Resolution of a DNS
// name is deferred to the client constructors, which call net.Dial/ResolveX
// and so resolve synchronously as part of connecting.
func ParseEndpoint(s string) (Endpoint, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return Endpoint{}, diag.Wrap(diag.InvalidInput, "malformed endpoint", err).Attach("endpoint", s)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return Endpoint{}, diag.Wrap(diag.InvalidInput, "malformed port", err).Attach("endpoint", s)
	}
	return Endpoint{Host: host, Port: uint16(port)}, nil
}

// String renders the endpoint back as "host:port".
func (e Endpoint) String() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(int(e.Port)))
}

// WithPort returns a copy of e with a different port, used by the registry
// dispatcher to fall back to a game's default port when the caller's
// endpoint omits one.
func (e Endpoint) WithPort(port uint16) Endpoint {
	e.Port = port
	return e
}

// Package settings defines the per-query configuration surface: transport
// timeouts and the optional-section gather policy. Both are plain value
// types with no behavior beyond validation; every duration is optional
// (nil means "use the library default"), and a zero duration is always
// rejected.
package settings

import (
	"time"

	"github.com/riftline/gamedig/internal/diag"
)

// GatherPolicy controls whether an optional sub-query is attempted and
// whether its failure aborts the whole query.
type GatherPolicy int

const (
	// Skip never attempts the sub-query.
	Skip GatherPolicy = iota
	// Try attempts the sub-query but tolerates its failure.
	Try
	// Enforce attempts the sub-query and fails the whole query if it fails.
	Enforce
)

func (p GatherPolicy) String() string {
	switch p {
	case Skip:
		return "Skip"
	case Try:
		return "Try"
	case Enforce:
		return "Enforce"
	default:
		return "Unknown"
	}
}

// TCPTimeouts groups the three TCP transport timeouts.
type TCPTimeouts struct {
	Connect *time.Duration
	Read    *time.Duration
	Write   *time.Duration
}

// UDPTimeouts groups the two UDP transport timeouts.
type UDPTimeouts struct {
	Read  *time.Duration
	Write *time.Duration
}

// HTTPTimeouts groups the ambient HTTP service's client-facing timeout.
type HTTPTimeouts struct {
	Global *time.Duration
}

// TimeoutConfig is the caller-supplied transport budget for one query.
// Every field is optional; absence means "use the platform/library
// default". Retries counts additional attempts after the first and applies
// only to timeouts, never to parse or semantic errors.
type TimeoutConfig struct {
	TCP     TCPTimeouts
	UDP     UDPTimeouts
	HTTP    HTTPTimeouts
	Retries uint
}

// Validate rejects a supplied-but-zero duration anywhere in the config;
// absence (nil) is always fine.
func (t TimeoutConfig) Validate() error {
	fields := []struct {
		name string
		d    *time.Duration
	}{
		{"tcp.connect", t.TCP.Connect},
		{"tcp.read", t.TCP.Read},
		{"tcp.write", t.TCP.Write},
		{"udp.read", t.UDP.Read},
		{"udp.write", t.UDP.Write},
		{"http.global", t.HTTP.Global},
	}
	for _, f := range fields {
		if f.d != nil && *f.d <= 0 {
			return diag.New(diag.InvalidInput, "zero or negative duration is not allowed").Attach("field", f.name)
		}
	}
	return nil
}

// Default timeout values applied whenever a TimeoutConfig field is nil.
const (
	DefaultTCPConnect   = 4 * time.Second
	DefaultTCPReadWrite = 4 * time.Second
	DefaultUDPReadWrite = 3 * time.Second
)

// TCPConnectOrDefault returns the configured connect timeout or the library
// default.
func (t TimeoutConfig) TCPConnectOrDefault() time.Duration {
	if t.TCP.Connect != nil {
		return *t.TCP.Connect
	}
	return DefaultTCPConnect
}

// TCPReadOrDefault returns the configured TCP read timeout or the default.
func (t TimeoutConfig) TCPReadOrDefault() time.Duration {
	if t.TCP.Read != nil {
		return *t.TCP.Read
	}
	return DefaultTCPReadWrite
}

// TCPWriteOrDefault returns the configured TCP write timeout or the default.
func (t TimeoutConfig) TCPWriteOrDefault() time.Duration {
	if t.TCP.Write != nil {
		return *t.TCP.Write
	}
	return DefaultTCPReadWrite
}

// UDPReadOrDefault returns the configured UDP read timeout or the default.
func (t TimeoutConfig) UDPReadOrDefault() time.Duration {
	if t.UDP.Read != nil {
		return *t.UDP.Read
	}
	return DefaultUDPReadWrite
}

// UDPWriteOrDefault returns the configured UDP write timeout or the default.
func (t TimeoutConfig) UDPWriteOrDefault() time.Duration {
	if t.UDP.Write != nil {
		return *t.UDP.Write
	}
	return DefaultUDPReadWrite
}

// GatherSettings is the per-query policy for optional sub-queries.
type GatherSettings struct {
	Players    GatherPolicy
	Rules      GatherPolicy
	CheckAppID bool
}

// DefaultGatherSettings mirrors the registry's baseline policy: attempt
// players and rules but tolerate their absence, and verify app id.
func DefaultGatherSettings() GatherSettings {
	return GatherSettings{Players: Try, Rules: Try, CheckAppID: true}
}

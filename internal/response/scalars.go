package response

import (
	"net"
	"time"
)

// IntScalar wraps a signed integer of any width up to 64 bits. Wider
// protocol fields (e.g. Valve's 64-bit steam ids) still fit here since Go's
// int64/uint64 cover every width this module's protocols emit; nothing in
// C1-C8 needs a literal 128-bit additional_data value.
func IntScalar(v int64) Scalar { return Scalar{Kind: ScalarInt, Int: v, Signed: true} }

// UintScalar wraps an unsigned integer.
func UintScalar(v uint64) Scalar { return Scalar{Kind: ScalarInt, Uint: v, Signed: false} }

// FloatScalar wraps a 32- or 64-bit float as float64.
func FloatScalar(v float64) Scalar { return Scalar{Kind: ScalarFloat, Float: v} }

// BoolScalar wraps a boolean.
func BoolScalar(v bool) Scalar { return Scalar{Kind: ScalarBool, Bool: v} }

// StringScalar wraps a string.
func StringScalar(v string) Scalar { return Scalar{Kind: ScalarString, Str: v} }

// StringListScalar wraps a list of strings.
func StringListScalar(v []string) Scalar { return Scalar{Kind: ScalarStringList, StringList: v} }

// DurationScalar wraps a duration in milliseconds.
func DurationScalar(v time.Duration) Scalar { return Scalar{Kind: ScalarDuration, Duration: v} }

// IPScalar wraps an IP address.
func IPScalar(v net.IP) Scalar { return Scalar{Kind: ScalarIP, IP: v} }

// SocketAddrScalar wraps a socket address.
func SocketAddrScalar(v net.Addr) Scalar { return Scalar{Kind: ScalarSocketAddr, SocketAddr: v} }

// Package response defines the generic, protocol-agnostic view of a game
// server any concrete protocol response can project itself into, plus the
// capability interface (CommonResponse) the dispatcher uses so it never
// needs to know concrete per-protocol types.
package response

import (
	"fmt"
	"net"
	"time"
)

// ScalarKind tags the type carried by a Scalar, since Go has no tagged
// union built in and additional_data values are heterogeneous.
type ScalarKind int

const (
	ScalarInt ScalarKind = iota
	ScalarFloat
	ScalarBool
	ScalarString
	ScalarStringList
	ScalarDuration
	ScalarIP
	ScalarSocketAddr
)

// Scalar is a tagged value for the additional_data map. Implementations
// that target languages without arbitrary integer widths would serialize
// Int as a decimal string; this Go implementation keeps it as int64/uint64
// pairs since Go's own ecosystem has no such constraint. Scalar has no
// 128-bit form.
type Scalar struct {
	Kind       ScalarKind
	Int        int64
	Uint       uint64
	Signed     bool
	Float      float64
	Bool       bool
	Str        string
	StringList []string
	Duration   time.Duration
	IP         net.IP
	SocketAddr net.Addr
}

// String renders a Scalar for display/debugging purposes only; callers
// needing the typed value should switch on Kind directly.
func (s Scalar) String() string {
	switch s.Kind {
	case ScalarInt:
		if s.Signed {
			return fmt.Sprintf("%d", s.Int)
		}
		return fmt.Sprintf("%d", s.Uint)
	case ScalarFloat:
		return fmt.Sprintf("%g", s.Float)
	case ScalarBool:
		return fmt.Sprintf("%t", s.Bool)
	case ScalarString:
		return s.Str
	case ScalarStringList:
		return fmt.Sprintf("%v", s.StringList)
	case ScalarDuration:
		return s.Duration.String()
	case ScalarIP:
		return s.IP.String()
	case ScalarSocketAddr:
		if s.SocketAddr != nil {
			return s.SocketAddr.String()
		}
		return ""
	default:
		return ""
	}
}

// PlayerEntry is one roster entry in the generic projection.
type PlayerEntry struct {
	Name           string
	AdditionalData map[string]Scalar
}

// GenericServer is the unified, read-only projection over any protocol's
// response, per spec's C8 data model. Every field a concrete protocol
// cannot populate is left at its zero value (optional pointer fields nil).
type GenericServer struct {
	Name           string
	Description    *string
	Map            *string
	Mode           *string
	Version        *string
	AntiCheat      *bool
	HasPassword    *bool
	MaxPlayers     uint16
	CurrentPlayers uint16
	Players        []PlayerEntry
	AdditionalData map[string]Scalar
}

// CommonResponse is the capability interface every concrete per-protocol
// response type implements so the dispatcher can normalize results without
// type-switching over every protocol family.
type CommonResponse interface {
	ToGeneric() GenericServer
}

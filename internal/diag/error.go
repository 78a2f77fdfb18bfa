package diag

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/host"
)

// IncludeHostInfo gates whether New/Wrap attach a lazily-computed host
// summary. It defaults to false: the hot parse path (every buffer read) must
// not pay for a host.Info() syscall round trip just to construct an error.
// cmd/gamedig-api turns it on once at startup, for the whole process.
var IncludeHostInfo = false

// Attachment is one piece of context threaded onto an Error as it
// propagates, the Go-sized analogue of the Rust original's
// Report.attach(...) chain.
type Attachment struct {
	Label string
	Value string
}

// Error is the library's sole error type. It carries a closed Kind, a
// human-readable message, a correlation id, and an ordered attachment
// chain.
type Error struct {
	Kind          Kind
	Message       string
	CorrelationID string
	Attachments   []Attachment
	cause         error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[gamedig] %s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("[gamedig] %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is lets errors.Is(err, diag.SomeKind) work by comparing against a bare
// Kind value wrapped in a throwaway *Error. Kind itself is not an error, so
// this type assertion path is how callers match on category.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && len(t.Attachments) == 0
}

// Sentinel returns a bare *Error carrying only a Kind, suitable for
// errors.Is(err, diag.Sentinel(diag.BadGame)) comparisons.
func Sentinel(k Kind) *Error { return &Error{Kind: k} }

// New constructs an Error with the given kind and message.
func New(k Kind, msg string) *Error {
	e := &Error{Kind: k, Message: msg, CorrelationID: uuid.NewString()}
	if IncludeHostInfo {
		e.Attachments = append(e.Attachments, hostAttachment())
	}
	return e
}

// Wrap constructs an Error that chains an underlying cause.
func Wrap(k Kind, msg string, cause error) *Error {
	e := New(k, msg)
	e.cause = cause
	return e
}

// Attach appends a key/value attachment and returns the same Error for
// chaining, matching the fluent style of the Rust Report.attach(...) calls
// this design is grounded on.
func (e *Error) Attach(label, value string) *Error {
	e.Attachments = append(e.Attachments, Attachment{Label: label, Value: value})
	return e
}

// AttachHexDump appends a bounded hex dump of data, truncated so a large
// payload never blows up an error message.
func (e *Error) AttachHexDump(label string, data []byte, cursor int) *Error {
	const maxBytes = 64
	shown := data
	truncated := false
	if len(shown) > maxBytes {
		shown = shown[:maxBytes]
		truncated = true
	}
	var b strings.Builder
	for i, c := range shown {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%02x", c)
	}
	if truncated {
		b.WriteString(" ...")
	}
	return e.Attach(label, fmt.Sprintf("cursor=%d bytes=[%s]", cursor, b.String()))
}

func hostAttachment() Attachment {
	info, err := host.Info()
	if err != nil {
		return Attachment{Label: "host", Value: "unavailable"}
	}
	return Attachment{Label: "host", Value: fmt.Sprintf("%s/%s %s", info.Platform, info.KernelArch, info.KernelVersion)}
}

// Is reports whether err is a *diag.Error of the given kind, looking through
// any fmt.Errorf %w wrapping.
func Is(err error, k Kind) bool {
	var de *Error
	for err != nil {
		if e, ok := err.(*Error); ok {
			de = e
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return de != nil && de.Kind == k
}

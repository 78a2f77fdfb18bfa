// Package gamebuf implements the safe binary cursor buffer every protocol
// parser in this module is built on: range-checked, endian-aware primitive
// reads and delimited/length-prefixed/multi-byte string decoding with strict
// and lossy modes.
//
// Every read either succeeds and advances the cursor by exactly the number
// of bytes consumed, or fails and leaves the cursor untouched. Callers that
// speculatively read-ahead and roll back on error are doing it wrong: this
// package validates before advancing, not after.
package gamebuf

import (
	"math/big"

	"github.com/riftline/gamedig/internal/diag"
)

// Buffer is a byte sequence plus a cursor 0 <= pos <= len(data).
type Buffer struct {
	data []byte
	pos  int
}

// New wraps data in a Buffer with cursor at 0. The slice is not copied;
// callers must not mutate it while the Buffer is in use.
func New(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Len returns the total number of bytes the buffer holds.
func (b *Buffer) Len() int { return len(b.data) }

// Pos returns the current cursor position.
func (b *Buffer) Pos() int { return b.pos }

// Remaining returns the number of unread bytes.
func (b *Buffer) Remaining() int { return len(b.data) - b.pos }

// IsEmpty reports whether no bytes remain.
func (b *Buffer) IsEmpty() bool { return b.Remaining() == 0 }

// RemainingSlice borrows the unread tail of the buffer without advancing.
func (b *Buffer) RemainingSlice() []byte { return b.data[b.pos:] }

// Bytes returns the full underlying slice, unread bytes included.
func (b *Buffer) Bytes() []byte { return b.data }

// MovePos repositions the cursor by a signed delta. A delta of zero is
// always a no-op, even on an empty buffer. Fails with BufferOutOfRange if
// the destination would fall outside [0, len], or BufferNotRepresentable on
// signed overflow of the intermediate arithmetic.
func (b *Buffer) MovePos(delta int) error {
	if delta == 0 {
		return nil
	}
	// int is at least 32 bits in Go; guard the addition the same way the
	// source guards its checked_add on an isize cursor.
	next := b.pos + delta
	if delta > 0 && next < b.pos {
		return diag.New(diag.BufferNotRepresentable, "cursor move overflowed").Attach("delta", itoa(delta))
	}
	if delta < 0 && next > b.pos {
		return diag.New(diag.BufferNotRepresentable, "cursor move overflowed").Attach("delta", itoa(delta))
	}
	if next < 0 || next > len(b.data) {
		return diag.New(diag.BufferOutOfRange, "cursor move out of range").
			Attach("from", itoa(b.pos)).Attach("delta", itoa(delta)).Attach("len", itoa(len(b.data)))
	}
	b.pos = next
	return nil
}

// Peek borrows the next n bytes without moving the cursor. Fails with
// BufferOutOfRange if fewer than n bytes remain.
func (b *Buffer) Peek(n int) ([]byte, error) {
	if n < 0 {
		return nil, diag.New(diag.BufferRangeBoundsInvalid, "negative peek length")
	}
	if b.Remaining() < n {
		return nil, diag.New(diag.BufferOutOfRange, "peek exceeds remaining bytes").
			Attach("want", itoa(n)).Attach("have", itoa(b.Remaining()))
	}
	return b.data[b.pos : b.pos+n], nil
}

// advance is the sole mutation point: it is only ever called after the
// caller has already validated that n bytes are available, so it never
// fails and the cursor only ever moves forward here.
func (b *Buffer) advance(n int) {
	b.pos += n
}

func itoa(n int) string {
	return big.NewInt(int64(n)).String()
}

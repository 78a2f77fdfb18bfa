package gamebuf

import (
	"encoding/binary"
	"math"

	"github.com/riftline/gamedig/internal/diag"
)

func (b *Buffer) need(n int) error {
	if b.Remaining() < n {
		return diag.New(diag.BufferOutOfRange, "read exceeds remaining bytes").
			Attach("want", itoa(n)).Attach("have", itoa(b.Remaining())).
			AttachHexDump("tail", b.RemainingSlice(), b.pos)
	}
	return nil
}

// ReadU8 reads an unsigned 8-bit integer.
func (b *Buffer) ReadU8() (uint8, error) {
	if err := b.need(1); err != nil {
		return 0, err
	}
	v := b.data[b.pos]
	b.advance(1)
	return v, nil
}

// ReadI8 reads a signed 8-bit integer.
func (b *Buffer) ReadI8() (int8, error) {
	v, err := b.ReadU8()
	return int8(v), err //nolint:gosec // intentional reinterpretation
}

// ReadU16BE reads a big-endian unsigned 16-bit integer.
func (b *Buffer) ReadU16BE() (uint16, error) {
	if err := b.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(b.data[b.pos:])
	b.advance(2)
	return v, nil
}

// ReadU16LE reads a little-endian unsigned 16-bit integer.
func (b *Buffer) ReadU16LE() (uint16, error) {
	if err := b.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(b.data[b.pos:])
	b.advance(2)
	return v, nil
}

// ReadI16BE reads a big-endian signed 16-bit integer.
func (b *Buffer) ReadI16BE() (int16, error) {
	v, err := b.ReadU16BE()
	return int16(v), err //nolint:gosec // intentional reinterpretation
}

// ReadI16LE reads a little-endian signed 16-bit integer.
func (b *Buffer) ReadI16LE() (int16, error) {
	v, err := b.ReadU16LE()
	return int16(v), err //nolint:gosec // intentional reinterpretation
}

// ReadU32BE reads a big-endian unsigned 32-bit integer.
func (b *Buffer) ReadU32BE() (uint32, error) {
	if err := b.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(b.data[b.pos:])
	b.advance(4)
	return v, nil
}

// ReadU32LE reads a little-endian unsigned 32-bit integer.
func (b *Buffer) ReadU32LE() (uint32, error) {
	if err := b.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(b.data[b.pos:])
	b.advance(4)
	return v, nil
}

// ReadI32BE reads a big-endian signed 32-bit integer.
func (b *Buffer) ReadI32BE() (int32, error) {
	v, err := b.ReadU32BE()
	return int32(v), err //nolint:gosec // intentional reinterpretation
}

// ReadI32LE reads a little-endian signed 32-bit integer. This is the
// encoding of every Valve Source Query packet header.
func (b *Buffer) ReadI32LE() (int32, error) {
	v, err := b.ReadU32LE()
	return int32(v), err //nolint:gosec // intentional reinterpretation
}

// ReadU64BE reads a big-endian unsigned 64-bit integer.
func (b *Buffer) ReadU64BE() (uint64, error) {
	if err := b.need(8); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint64(b.data[b.pos:])
	b.advance(8)
	return v, nil
}

// ReadU64LE reads a little-endian unsigned 64-bit integer. This is the
// encoding of EDF server_steam_id and app_id_64.
func (b *Buffer) ReadU64LE() (uint64, error) {
	if err := b.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(b.data[b.pos:])
	b.advance(8)
	return v, nil
}

// ReadI64BE reads a big-endian signed 64-bit integer.
func (b *Buffer) ReadI64BE() (int64, error) {
	v, err := b.ReadU64BE()
	return int64(v), err //nolint:gosec // intentional reinterpretation
}

// ReadI64LE reads a little-endian signed 64-bit integer.
func (b *Buffer) ReadI64LE() (int64, error) {
	v, err := b.ReadU64LE()
	return int64(v), err //nolint:gosec // intentional reinterpretation
}

// U128 represents a 128-bit value Go has no native integer for, as two
// 64-bit halves plus a big.Int convenience accessor.
type U128 struct {
	Hi, Lo uint64
}

// Int returns the 128-bit value as an arbitrary-precision integer.
func (u U128) Int() *big.Int {
	hi := new(big.Int).SetUint64(u.Hi)
	hi.Lsh(hi, 64)
	return hi.Or(hi, new(big.Int).SetUint64(u.Lo))
}

// ReadU128BE reads a big-endian unsigned 128-bit integer as two halves.
func (b *Buffer) ReadU128BE() (U128, error) {
	if err := b.need(16); err != nil {
		return U128{}, err
	}
	hi := binary.BigEndian.Uint64(b.data[b.pos:])
	lo := binary.BigEndian.Uint64(b.data[b.pos+8:])
	b.advance(16)
	return U128{Hi: hi, Lo: lo}, nil
}

// ReadU128LE reads a little-endian unsigned 128-bit integer as two halves.
func (b *Buffer) ReadU128LE() (U128, error) {
	if err := b.need(16); err != nil {
		return U128{}, err
	}
	lo := binary.LittleEndian.Uint64(b.data[b.pos:])
	hi := binary.LittleEndian.Uint64(b.data[b.pos+8:])
	b.advance(16)
	return U128{Hi: hi, Lo: lo}, nil
}

// ReadI128BE reads a big-endian signed 128-bit integer, returned as a
// big.Int so the sign is represented correctly regardless of width.
func (b *Buffer) ReadI128BE() (*big.Int, error) {
	u, err := b.ReadU128BE()
	if err != nil {
		return nil, err
	}
	return signed128(u), nil
}

// ReadI128LE reads a little-endian signed 128-bit integer.
func (b *Buffer) ReadI128LE() (*big.Int, error) {
	u, err := b.ReadU128LE()
	if err != nil {
		return nil, err
	}
	return signed128(u), nil
}

func signed128(u U128) *big.Int {
	v := u.Int()
	if u.Hi&0x8000000000000000 == 0 {
		return v
	}
	mod := new(big.Int).Lsh(big.NewInt(1), 128)
	return v.Sub(v, mod)
}

// ReadF32BE reads a big-endian IEEE-754 single-precision float.
func (b *Buffer) ReadF32BE() (float32, error) {
	v, err := b.ReadU32BE()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadF32LE reads a little-endian IEEE-754 single-precision float. This is
// the encoding of Valve's PLAYERS duration field.
func (b *Buffer) ReadF32LE() (float32, error) {
	v, err := b.ReadU32LE()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadF64BE reads a big-endian IEEE-754 double-precision float.
func (b *Buffer) ReadF64BE() (float64, error) {
	v, err := b.ReadU64BE()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadF64LE reads a little-endian IEEE-754 double-precision float.
func (b *Buffer) ReadF64LE() (float64, error) {
	v, err := b.ReadU64LE()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

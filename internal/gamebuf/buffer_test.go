package gamebuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovePosZeroIsNoop(t *testing.T) {
	b := New([]byte{1, 2, 3})
	require.NoError(t, b.MovePos(0))
	assert.Equal(t, 0, b.Pos())
}

func TestMovePosToEnd(t *testing.T) {
	b := New([]byte{1, 2, 3})
	require.NoError(t, b.MovePos(3))
	assert.Equal(t, 3, b.Pos())
	assert.True(t, b.IsEmpty())
}

func TestMovePosNegativeBeyondStartFails(t *testing.T) {
	b := New([]byte{1, 2, 3})
	require.NoError(t, b.MovePos(2))
	err := b.MovePos(-3)
	assert.Error(t, err)
	assert.Equal(t, 2, b.Pos(), "cursor must not move on failure")
}

func TestPeekDoesNotMutate(t *testing.T) {
	b := New([]byte{1, 2, 3, 4})
	s, err := b.Peek(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, s)
	assert.Equal(t, 0, b.Pos())
}

func TestReadU8RoundTrip(t *testing.T) {
	b := New([]byte{0xAB})
	v, err := b.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xAB), v)
	assert.Equal(t, 1, b.Pos())
}

func TestReadPrimitiveTooShortLeavesCursor(t *testing.T) {
	b := New([]byte{1, 2})
	_, err := b.ReadU32LE()
	assert.Error(t, err)
	assert.Equal(t, 0, b.Pos())
}

func TestReadI32LERoundTrip(t *testing.T) {
	b := New([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	v, err := b.ReadI32LE()
	require.NoError(t, err)
	assert.Equal(t, int32(-1), v)
}

func TestReadU16BEvsLE(t *testing.T) {
	b := New([]byte{0x01, 0x02})
	be, err := New([]byte{0x01, 0x02}).ReadU16BE()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), be)

	le, err := b.ReadU16LE()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0201), le)
}

func TestReadF32LE(t *testing.T) {
	b := New([]byte{0x00, 0x00, 0x80, 0x3F}) // 1.0f LE
	v, err := b.ReadF32LE()
	require.NoError(t, err)
	assert.InDelta(t, float32(1.0), v, 0.0001)
}

func TestReadU64LERoundTrip(t *testing.T) {
	b := New([]byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	v, err := b.ReadU64LE()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestReadU128LE(t *testing.T) {
	data := make([]byte, 16)
	data[0] = 0x01
	data[15] = 0x80
	b := New(data)
	v, err := b.ReadU128LE()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v.Lo)
	assert.Equal(t, uint64(0x8000000000000000), v.Hi)
}

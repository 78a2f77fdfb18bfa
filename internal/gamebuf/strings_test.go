package gamebuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadStringUTF8DelimFound(t *testing.T) {
	b := New([]byte("hello\x00world"))
	s, err := b.ReadStringUTF8(0, true)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
	assert.Equal(t, 6, b.Pos())
}

func TestReadStringUTF8DelimiterNotFound(t *testing.T) {
	b := New([]byte("hello"))
	_, err := b.ReadStringUTF8(0, true)
	assert.Error(t, err)
	assert.Equal(t, 0, b.Pos())
}

func TestReadStringUTF8StrictRejectsInvalid(t *testing.T) {
	b := New([]byte{0xFF, 0x00})
	_, err := b.ReadStringUTF8(0, true)
	assert.Error(t, err)
}

func TestReadStringUTF8LossyReplaces(t *testing.T) {
	b := New([]byte{0xFF, 0x00})
	s, err := b.ReadStringUTF8(0, false)
	require.NoError(t, err)
	assert.Equal(t, "�", s)
}

func TestReadStringUTF8LenPrefixed(t *testing.T) {
	b := New([]byte{5, 'H', 'e', 'l', 'l', 'o'})
	s, err := b.ReadStringUTF8LenPrefixed(true)
	require.NoError(t, err)
	assert.Equal(t, "Hello", s)
	assert.Equal(t, 6, b.Pos())
}

func TestReadStringUTF16BE(t *testing.T) {
	b := New([]byte{0x00, 0x48, 0x00, 0x69, 0x00, 0x00})
	s, err := b.ReadStringUTF16BE(0x0000, true)
	require.NoError(t, err)
	assert.Equal(t, "Hi", s)
	assert.Equal(t, 6, b.Pos())
}

func TestReadStringUTF16OddAlignmentIsInvalid(t *testing.T) {
	// Delimiter bytes 00 00 appear but only at an odd relative offset.
	b := New([]byte{0x41, 0x00, 0x00, 0x42})
	_, err := b.ReadStringUTF16LE(0x0000, true)
	assert.Error(t, err)
}

func TestReadStringUCS2IsUTF16LE(t *testing.T) {
	data := []byte{0x48, 0x00, 0x69, 0x00, 0x00, 0x00}
	s, err := New(data).ReadStringUCS2(0x0000, true)
	require.NoError(t, err)
	assert.Equal(t, "Hi", s)
}

func TestReadStringLatin1(t *testing.T) {
	b := New([]byte{'c', 'a', 'f', 0xE9, 0x00})
	s, err := b.ReadStringLatin1(0, true)
	require.NoError(t, err)
	assert.Equal(t, "café", s)
}

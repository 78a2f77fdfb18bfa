package gamebuf

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/riftline/gamedig/internal/diag"
)

// windows1252 maps bytes 0x80-0x9F to their Windows-1252 code points; every
// other byte value maps to the identical Latin-1 (ISO-8859-1) code point.
// Table taken from the standard Windows-1252 code page; 0x81, 0x8D, 0x8F,
// 0x90, 0x9D are unassigned and map to U+FFFD.
var windows1252 = [32]rune{
	0x20AC, 0xFFFD, 0x201A, 0x0192, 0x201E, 0x2026, 0x2020, 0x2021,
	0x02C6, 0x2030, 0x0160, 0x2039, 0x0152, 0xFFFD, 0x017D, 0xFFFD,
	0xFFFD, 0x2018, 0x2019, 0x201C, 0x201D, 0x2022, 0x2013, 0x2014,
	0x02DC, 0x2122, 0x0161, 0x203A, 0x0153, 0xFFFD, 0x017E, 0x0178,
}

func decodeWindows1252Byte(b byte) rune {
	if b >= 0x80 && b <= 0x9F {
		return windows1252[b-0x80]
	}
	return rune(b)
}

// findByte locates the first occurrence of delim in the unread tail and
// returns its offset relative to the cursor, or -1 if absent.
func (b *Buffer) findByte(delim byte) int {
	for i := b.pos; i < len(b.data); i++ {
		if b.data[i] == delim {
			return i - b.pos
		}
	}
	return -1
}

// ReadStringUTF8 reads bytes up to the first occurrence of delim, decodes
// them as UTF-8, and advances the cursor past the delimiter. In strict mode
// a malformed sequence fails with BufferInvalidUTF8; lossy mode substitutes
// U+FFFD per invalid sequence. Fails with BufferDelimiterNotFound if delim
// never appears.
func (b *Buffer) ReadStringUTF8(delim byte, strict bool) (string, error) {
	idx := b.findByte(delim)
	if idx < 0 {
		return "", diag.New(diag.BufferDelimiterNotFound, "utf8 delimiter not found").
			AttachHexDump("tail", b.RemainingSlice(), b.pos)
	}
	raw := b.data[b.pos : b.pos+idx]
	if strict && !utf8.Valid(raw) {
		return "", diag.New(diag.BufferInvalidUTF8, "invalid utf-8 sequence").AttachHexDump("raw", raw, b.pos)
	}
	s := lossyUTF8(raw)
	b.advance(idx + 1)
	return s, nil
}

// lossyUTF8 decodes raw as UTF-8, substituting U+FFFD for each malformed
// byte sequence. A plain string(raw) conversion would copy invalid bytes
// through unchanged, so callers in lossy mode must go through this instead.
func lossyUTF8(raw []byte) string {
	var b strings.Builder
	for len(raw) > 0 {
		r, size := utf8.DecodeRune(raw)
		b.WriteRune(r)
		raw = raw[size:]
	}
	return b.String()
}

// ReadStringUTF8LenPrefixed reads one length byte L, then L bytes of UTF-8.
// Cursor advances by 1+L on success.
func (b *Buffer) ReadStringUTF8LenPrefixed(strict bool) (string, error) {
	start := b.pos
	n, err := b.ReadU8()
	if err != nil {
		return "", err
	}
	raw, err := b.Peek(int(n))
	if err != nil {
		b.pos = start
		return "", diag.New(diag.BufferOutOfRange, "length-prefixed string exceeds remaining bytes").
			Attach("declared_len", itoa(int(n)))
	}
	if strict && !utf8.Valid(raw) {
		invalidErr := diag.New(diag.BufferInvalidUTF8, "invalid utf-8 sequence").AttachHexDump("raw", raw, b.pos)
		b.pos = start
		return "", invalidErr
	}
	s := lossyUTF8(raw)
	b.advance(int(n))
	return s, nil
}

// utf16Endian selects byte order for the two-byte code-unit reads shared by
// ReadStringUTF16BE/LE.
type utf16Endian int

const (
	utf16BE utf16Endian = iota
	utf16LE
)

// ReadStringUTF16BE reads code units up to a 2-byte big-endian delimiter
// found at an even offset relative to the start of the remaining slice. A
// match at an odd offset is BufferInvalidUTF16, per the required
// alignment rule.
func (b *Buffer) ReadStringUTF16BE(delim uint16, strict bool) (string, error) {
	return b.readStringUTF16(delim, strict, utf16BE)
}

// ReadStringUTF16LE is the little-endian counterpart of ReadStringUTF16BE.
func (b *Buffer) ReadStringUTF16LE(delim uint16, strict bool) (string, error) {
	return b.readStringUTF16(delim, strict, utf16LE)
}

// ReadStringUCS2 is defined to be identical to ReadStringUTF16LE.
func (b *Buffer) ReadStringUCS2(delim uint16, strict bool) (string, error) {
	return b.readStringUTF16(delim, strict, utf16LE)
}

func (b *Buffer) readStringUTF16(delim uint16, strict bool, endian utf16Endian) (string, error) {
	tail := b.RemainingSlice()
	delimOffset := -1
	for i := 0; i+1 < len(tail); i += 2 {
		var unit uint16
		if endian == utf16BE {
			unit = uint16(tail[i])<<8 | uint16(tail[i+1])
		} else {
			unit = uint16(tail[i]) | uint16(tail[i+1])<<8
		}
		if unit == delim {
			delimOffset = i
			break
		}
	}
	if delimOffset < 0 {
		// Check for an odd-aligned match before reporting "not found": that
		// case is reported as InvalidUTF16, not DelimiterNotFound, because a
		// reader naively scanning byte-by-byte could otherwise silently skip
		// past a real delimiter.
		for i := 1; i+1 < len(tail); i += 2 {
			var unit uint16
			if endian == utf16BE {
				unit = uint16(tail[i])<<8 | uint16(tail[i+1])
			} else {
				unit = uint16(tail[i]) | uint16(tail[i+1])<<8
			}
			if unit == delim {
				return "", diag.New(diag.BufferInvalidUTF16, "utf-16 delimiter matched at odd byte offset").
					Attach("offset", itoa(i))
			}
		}
		return "", diag.New(diag.BufferDelimiterNotFound, "utf-16 delimiter not found").
			AttachHexDump("tail", tail, b.pos)
	}

	units := make([]uint16, 0, delimOffset/2)
	for i := 0; i < delimOffset; i += 2 {
		if endian == utf16BE {
			units = append(units, uint16(tail[i])<<8|uint16(tail[i+1]))
		} else {
			units = append(units, uint16(tail[i])|uint16(tail[i+1])<<8)
		}
	}

	if strict {
		for _, r := range utf16.Decode(units) {
			if r == utf8.RuneError {
				return "", diag.New(diag.BufferInvalidUTF16, "unpaired utf-16 surrogate")
			}
		}
	}
	s := string(utf16.Decode(units))
	b.advance(delimOffset + 2)
	return s, nil
}

// ReadStringLatin1 decodes Windows-1252 bytes up to delim. Every byte value
// maps to a valid code point under this encoding, so the only failure mode
// is a missing delimiter.
func (b *Buffer) ReadStringLatin1(delim byte, _ bool) (string, error) {
	idx := b.findByte(delim)
	if idx < 0 {
		return "", diag.New(diag.BufferDelimiterNotFound, "latin1 delimiter not found").
			AttachHexDump("tail", b.RemainingSlice(), b.pos)
	}
	raw := b.data[b.pos : b.pos+idx]
	runes := make([]rune, len(raw))
	for i, c := range raw {
		runes[i] = decodeWindows1252Byte(c)
	}
	b.advance(idx + 1)
	return string(runes), nil
}

package valve

import (
	"bytes"
	"compress/bzip2"
	"hash/crc32"
	"io"
	"sort"

	"github.com/riftline/gamedig/internal/diag"
	"github.com/riftline/gamedig/internal/gamebuf"
)

// MaxPacketSizePlusOne is the receive buffer size for every raw datagram. A
// recv that fills this buffer exactly is treated as truncated: it is one
// byte larger than any legal Source-engine packet so a full buffer always
// means data was silently dropped.
const MaxPacketSizePlusOne = 1401

// MaxTotalFragments caps the number of fragments accepted for one
// reassembly, a safety limit against a malicious or broken server.
const MaxTotalFragments = 35

const (
	headerSingle      int32 = -1
	headerFragmented  int32 = -2
	fragmentIDCompBit uint32 = 1 << 31
)

type fragment struct {
	number  uint8
	payload []byte
}

// fragmentHeader is the metadata readFragmentHeader consumes from a
// -2-header datagram (id, total, number, and the per-fragment size field
// unless legacySplit is set). reassemble reads every following fragment's
// header the same way.
type fragmentHeader struct {
	id         uint32
	compressed bool
	total      uint8
	number     uint8
}

func readFragmentHeader(b *gamebuf.Buffer, legacySplit bool) (fragmentHeader, error) {
	id, err := b.ReadU32LE()
	if err != nil {
		return fragmentHeader{}, diag.Wrap(diag.Parse, "reading fragment id", err).Attach("section", "fragment-header")
	}
	total, err := b.ReadU8()
	if err != nil {
		return fragmentHeader{}, diag.Wrap(diag.Parse, "reading fragment total", err).Attach("section", "fragment-header")
	}
	if total > MaxTotalFragments {
		return fragmentHeader{}, diag.New(diag.SanityCheck, "total fragments").
			Attach("total", itoa(int(total))).Attach("max", itoa(MaxTotalFragments))
	}
	number, err := b.ReadU8()
	if err != nil {
		return fragmentHeader{}, diag.Wrap(diag.Parse, "reading fragment number", err).Attach("section", "fragment-header")
	}
	if !legacySplit {
		if err := b.MovePos(2); err != nil {
			return fragmentHeader{}, diag.Wrap(diag.Parse, "skipping fragment size field", err)
		}
	}
	return fragmentHeader{
		id:         id &^ fragmentIDCompBit,
		compressed: id&fragmentIDCompBit != 0,
		total:      total,
		number:     number,
	}, nil
}

// reassemble reads `total-1` additional raw datagrams via recv and
// concatenates all fragments (sorted by number) into one logical body. recv
// must return one raw datagram per call, already sized at
// MaxPacketSizePlusOne and truncation-checked by the caller.
func reassemble(first fragmentHeader, firstPayload []byte, legacySplit bool, recv func() ([]byte, error)) ([]byte, error) {
	if first.number != 0 {
		return nil, diag.New(diag.SanityCheck, "first fragment number").Attach("number", itoa(int(first.number)))
	}

	var decompressedSize, crc uint32
	body := gamebuf.New(firstPayload)
	if first.compressed {
		ds, err := body.ReadU32LE()
		if err != nil {
			return nil, diag.Wrap(diag.Parse, "reading decompressed size", err)
		}
		c, err := body.ReadU32LE()
		if err != nil {
			return nil, diag.Wrap(diag.Parse, "reading fragment crc32", err)
		}
		decompressedSize, crc = ds, c
	}

	frags := []fragment{{number: first.number, payload: body.RemainingSlice()}}

	for i := uint8(1); i < first.total; i++ {
		raw, err := recv()
		if err != nil {
			return nil, err
		}
		fb := gamebuf.New(raw)
		header, err := fb.ReadI32LE()
		if err != nil {
			return nil, diag.Wrap(diag.Parse, "reading fragment packet header", err)
		}
		if header != headerFragmented {
			return nil, diag.New(diag.SanityCheck, "unexpected header").Attach("header", itoa(int(header)))
		}
		fh, err := readFragmentHeader(fb, legacySplit)
		if err != nil {
			return nil, err
		}
		if fh.id != first.id {
			return nil, diag.New(diag.SanityCheck, "fragment id mismatch").
				Attach("expected", itoa(int(first.id))).Attach("got", itoa(int(fh.id)))
		}
		frags = append(frags, fragment{number: fh.number, payload: fb.RemainingSlice()})
	}

	sort.Slice(frags, func(i, j int) bool { return frags[i].number < frags[j].number })

	var buf bytes.Buffer
	for _, f := range frags {
		buf.Write(f.payload)
	}
	concatenated := buf.Bytes()

	if !first.compressed {
		return concatenated, nil
	}

	decompressed, err := io.ReadAll(bzip2.NewReader(bytes.NewReader(concatenated)))
	if err != nil {
		return nil, diag.Wrap(diag.SanityCheck, "bzip2 decompression failed", err)
	}
	if uint32(len(decompressed)) != decompressedSize {
		return nil, diag.New(diag.SanityCheck, "decompressed size").
			Attach("expected", itoa(int(decompressedSize))).Attach("got", itoa(len(decompressed)))
	}
	if crc32.ChecksumIEEE(decompressed) != crc {
		return nil, diag.New(diag.SanityCheck, "crc32 checksum")
	}
	return decompressed, nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

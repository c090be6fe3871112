// Package szs implements the Yaz0 container: a decoder plus three
// interoperable encoders with varying speed/ratio tradeoffs (C1, §4.1).
//
// The container is a 16-byte header ("Yaz0", big-endian expanded size,
// 8 reserved bytes) followed by a sequence of chunks. Each chunk opens
// with a 1-byte flag byte whose bits, MSB to LSB, select between a
// literal byte (1) and a back-reference (0). Back-references are 2 or
// 3 bytes: the high nibble of the first byte names the match length
// (length-2, 0 escapes to a 3-byte form encoding length-0x12 in the
// third byte, covering lengths 18..273); the low 12 bits encode
// offset-1, a backward distance into the already-decoded output.
package szs

import (
	"encoding/binary"
	"fmt"

	"github.com/gc3dtools/librii/rlog"
)

var log = rlog.Named("SZS")

const (
	magic         = "Yaz0"
	headerSize    = 16
	windowSize    = 0x1000 // max back-reference distance
	minMatchLen   = 3
	maxMatchLen2B = 17  // largest length encodable in the 2-byte form
	maxMatchLen3B = 273 // largest length encodable in the 3-byte form
)

// DecodeError reports a malformed Yaz0 stream. It is a
// Decode-integrity error per §7: fatal for the containing operation,
// never silently recovered.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string { return fmt.Sprintf("szs: %s", e.Reason) }

// Algorithm selects an SZS encoder. The driver never falls back
// silently between algorithms; the caller always names one (§4.1).
type Algorithm int

const (
	// WorstCase emits only literals: 9 bytes per 8 input bytes, O(n)
	// time and memory, no compression. Used for tests and as an
	// upper bound on encoded size.
	WorstCase Algorithm = iota
	// BoyerMooreHorspool is a sliding-window LZSS encoder with a
	// 4096-byte window and a BMH skip table accelerating the match
	// search, plus depth-1 lazy matching.
	BoyerMooreHorspool
	// CTGP is a chained-hash match finder tuned for better ratios at
	// a modest speed cost.
	CTGP
)

// ExpandedSize reads the declared uncompressed size from a Yaz0
// header without decoding the payload.
func ExpandedSize(src []byte) (int, error) {

	if len(src) < headerSize || string(src[:4]) != magic {
		return 0, &DecodeError{Reason: "missing Yaz0 magic or truncated header"}
	}
	return int(binary.BigEndian.Uint32(src[4:8])), nil
}

// IsCompressed reports whether src begins with the Yaz0 magic.
func IsCompressed(src []byte) bool {

	return len(src) >= 4 && string(src[:4]) == magic
}

// Decode decompresses a Yaz0 stream. The output window used to
// resolve back-references is conceptually a 4096-byte circular buffer
// (max offset 0x1000), but since the whole output is materialized up
// front, back-references simply index into the output slice built so
// far.
func Decode(src []byte) ([]byte, error) {

	size, err := ExpandedSize(src)
	if err != nil {
		return nil, err
	}
	if size < 0 {
		return nil, &DecodeError{Reason: "negative expanded size"}
	}

	out := make([]byte, 0, size)
	pos := headerSize

	for len(out) < size {
		if pos >= len(src) {
			return nil, &DecodeError{Reason: "truncated chunk header"}
		}
		flags := src[pos]
		pos++

		for bit := 0; bit < 8 && len(out) < size; bit++ {
			if flags&0x80 != 0 {
				if pos >= len(src) {
					return nil, &DecodeError{Reason: "truncated literal"}
				}
				out = append(out, src[pos])
				pos++
			} else {
				if pos+1 >= len(src) {
					return nil, &DecodeError{Reason: "truncated back-reference"}
				}
				b0, b1 := src[pos], src[pos+1]
				pos += 2

				length := int(b0 >> 4)
				var matchLen int
				if length == 0 {
					if pos >= len(src) {
						return nil, &DecodeError{Reason: "truncated extended back-reference"}
					}
					matchLen = int(src[pos]) + 0x12
					pos++
				} else {
					matchLen = length + 2
				}

				dist := (int(b0&0x0F)<<8 | int(b1)) + 1
				srcPos := len(out) - dist
				if srcPos < 0 {
					return nil, &DecodeError{Reason: "back-reference points before start of output"}
				}
				for i := 0; i < matchLen && len(out) < size; i++ {
					out = append(out, out[srcPos+i])
				}
				flags <<= 1
				continue
			}
			flags <<= 1
		}
	}

	if len(out) != size {
		return nil, &DecodeError{Reason: "decoded size does not match declared size"}
	}
	return out, nil
}

// Encode compresses src with the requested algorithm.
func Encode(src []byte, algo Algorithm) ([]byte, error) {

	switch algo {
	case WorstCase:
		return EncodeWorstCase(src), nil
	case BoyerMooreHorspool:
		return EncodeBMH(src), nil
	case CTGP:
		return EncodeCTGP(src)
	default:
		return nil, fmt.Errorf("szs: unknown algorithm %d", algo)
	}
}

// writeHeader appends the 16-byte Yaz0 header for an input of the
// given size to dst.
func writeHeader(dst []byte, size int) []byte {

	var hdr [headerSize]byte
	copy(hdr[0:4], magic)
	binary.BigEndian.PutUint32(hdr[4:8], uint32(size))
	return append(dst, hdr[:]...)
}

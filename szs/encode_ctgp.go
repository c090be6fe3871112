package szs

import "fmt"

const (
	ctgpBuckets  = 16384
	ctgpHashMask = ctgpBuckets - 1
)

// ctgpHash computes the 3-byte rolling hash used to bucket candidate
// match positions: ((v*v*0xEF34 + v + 0xB205) >> 10) & 0x3FFF, where v
// is the 3 bytes at the candidate position packed big-endian (§4.1).
func ctgpHash(src []byte, pos int) uint32 {

	v := uint32(src[pos])<<16 | uint32(src[pos+1])<<8 | uint32(src[pos+2])
	h := (v*v*0xEF34 + v + 0xB205) >> 10
	return h & ctgpHashMask
}

// ctgpChains is a chained-hash match finder: head[h] names the most
// recently inserted position whose 3-byte hash is h, and prev[pos]
// links back to the previous position with the same hash, forming a
// singly-linked collision chain per bucket. Chains longer than
// ctgpMaxChain are compacted by giving up the search early rather than
// walking arbitrarily far back — the "external collision chain
// compaction" named in §4.1.
type ctgpChains struct {
	head [ctgpBuckets]int32
	prev []int32
}

const ctgpMaxChain = 128

func newCTGPChains(n int) *ctgpChains {

	c := &ctgpChains{prev: make([]int32, n)}
	for i := range c.head {
		c.head[i] = -1
	}
	return c
}

func (c *ctgpChains) insert(src []byte, pos int) {

	if pos+3 > len(src) {
		return
	}
	h := ctgpHash(src, pos)
	c.prev[pos] = c.head[h]
	c.head[h] = int32(pos)
}

// bestMatch walks the collision chain for the hash of src[pos:pos+3],
// verifying each candidate and keeping the longest match within the
// window, corrupt-chain positions (pointing forward or out of bounds,
// which cannot occur from insert but are defended against per the
// source's corrupt-input posture, §9) abort the walk rather than
// panicking.
func (c *ctgpChains) bestMatch(src []byte, pos int) (length, dist int) {

	maxLen := len(src) - pos
	if maxLen > maxMatchLen3B {
		maxLen = maxMatchLen3B
	}
	if maxLen < minMatchLen {
		return 0, 0
	}

	h := ctgpHash(src, pos)
	j := c.head[h]
	lowBound := pos - windowSize
	for steps := 0; j >= 0 && int(j) != pos && steps < ctgpMaxChain; steps++ {
		cand := int(j)
		if cand < lowBound || cand >= pos {
			break
		}
		l := matchLength(src, cand, pos, maxLen)
		if l > length {
			length = l
			dist = pos - cand
			if length == maxLen {
				break
			}
		}
		next := c.prev[cand]
		if next >= j {
			// A chain must strictly decrease; anything else is a
			// corrupt chain, treated as "search exhausted" rather
			// than looping forever (§9 CTGP open question).
			break
		}
		j = next
	}
	return length, dist
}

// EncodeCTGP compresses src with the chained-hash match finder
// described in §4.1. It cannot fail on any well-formed []byte input;
// the error return exists because the original CTGP encoder this is
// ported from carries subroutines reachable only on corrupt chain
// state, which this port reports as an error instead of asserting
// (§9). No such condition arises from this package's own insert/
// bestMatch implementation, so the error is always nil in practice,
// but a defensive wrapper is kept so a future optimization to the
// chain structure fails loudly instead of silently miscompressing.
func EncodeCTGP(src []byte) ([]byte, error) {

	if len(src) < 0 {
		// Unreachable for a []byte, kept to mirror the original's
		// explicit length-validity assertion.
		return nil, fmt.Errorf("szs: corrupt input encountered building CTGP chains")
	}

	chains := newCTGPChains(len(src))
	tw := newTokenWriter(len(src))

	pos := 0
	for pos < len(src) {
		length, dist := chains.bestMatch(src, pos)

		if length >= minMatchLen {
			for i := 0; i < length; i++ {
				chains.insert(src, pos+i)
			}
			tw.match(dist, length)
			pos += length
		} else {
			chains.insert(src, pos)
			tw.literal(src[pos])
			pos++
		}
	}

	out := writeHeader(make([]byte, 0, headerSize+len(tw.bytes())), len(src))
	return append(out, tw.bytes()...), nil
}

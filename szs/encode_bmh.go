package szs

// bmhIndex tracks, for each byte value, the positions at which it has
// been seen so far in the input, most recent last. Searching a match
// for the byte at the cursor only ever visits candidate positions that
// share its leading byte — the "skip table" that gives
// Boyer-Moore-Horspool its name: positions that cannot possibly match
// are never tested at all, rather than compared and rejected one at a
// time the way a naive window scan would.
type bmhIndex struct {
	positions [256][]int32
}

func (b *bmhIndex) record(pos int, ch byte) {

	b.positions[ch] = append(b.positions[ch], int32(pos))
}

// bestMatch returns the longest match for src[pos:] within the
// preceding windowSize bytes, or (0, 0) if no match of at least
// minMatchLen exists.
func (b *bmhIndex) bestMatch(src []byte, pos int) (length, dist int) {

	maxLen := len(src) - pos
	if maxLen > maxMatchLen3B {
		maxLen = maxMatchLen3B
	}
	if maxLen < minMatchLen {
		return 0, 0
	}

	lowBound := pos - windowSize
	cands := b.positions[src[pos]]
	for k := len(cands) - 1; k >= 0; k-- {
		j := int(cands[k])
		if j < lowBound {
			break
		}
		l := matchLength(src, j, pos, maxLen)
		if l > length {
			length = l
			dist = pos - j
			if length == maxLen {
				break
			}
		}
	}
	return length, dist
}

func matchLength(src []byte, a, b, maxLen int) int {

	l := 0
	for l < maxLen && src[a+l] == src[b+l] {
		l++
	}
	return l
}

// EncodeBMH compresses src with a sliding-window LZSS encoder: a
// 4096-byte window, a Boyer-Moore-Horspool style skip-table match
// search, and depth-1 lazy matching — when the match one byte later
// is strictly longer than the current match's length + 1, a literal
// is emitted and the later, longer match is taken instead (§4.1).
func EncodeBMH(src []byte) []byte {

	idx := &bmhIndex{}
	tw := newTokenWriter(len(src))

	pos := 0
	for pos < len(src) {
		length, dist := idx.bestMatch(src, pos)

		if length >= minMatchLen && pos+1 < len(src) {
			idx.record(pos, src[pos])
			nextLen, nextDist := idx.bestMatch(src, pos+1)
			if nextLen > length+1 {
				tw.literal(src[pos])
				pos++
				length, dist = nextLen, nextDist
				if length >= minMatchLen {
					idx.record(pos, src[pos])
					tw.match(dist, length)
					for i := 1; i < length; i++ {
						idx.record(pos+i, src[pos+i])
					}
					pos += length
					continue
				}
				continue
			}
		} else {
			idx.record(pos, src[pos])
		}

		if length >= minMatchLen {
			tw.match(dist, length)
			for i := 1; i < length; i++ {
				idx.record(pos+i, src[pos+i])
			}
			pos += length
		} else {
			tw.literal(src[pos])
			pos++
		}
	}

	out := writeHeader(make([]byte, 0, headerSize+len(tw.bytes())), len(src))
	return append(out, tw.bytes()...)
}

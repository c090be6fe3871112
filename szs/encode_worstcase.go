package szs

// EncodeWorstCase emits a valid Yaz0 stream consisting entirely of
// literals: 9 bytes for every 8 input bytes. It performs no searching
// and allocates only the output buffer, so it is provably O(n) in
// both time and space. Used for tests and as an upper bound on
// encoded size against which the other encoders are compared.
func EncodeWorstCase(src []byte) []byte {

	out := writeHeader(make([]byte, 0, headerSize+len(src)+len(src)/8+1), len(src))
	tw := newTokenWriter(len(src) + len(src)/8 + 1)
	for _, b := range src {
		tw.literal(b)
	}
	return append(out, tw.bytes()...)
}

package szs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeatedBytes() []byte {
	var out []byte
	for i := 0; i < 16; i++ {
		for b := 0; b < 256; b++ {
			out = append(out, byte(b))
		}
	}
	return out
}

func TestRoundTripAllAlgorithms(t *testing.T) {

	inputs := [][]byte{
		{},
		[]byte("A"),
		[]byte("AAAAAAAAAAAAAAAA"),
		repeatedBytes(),
		bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 200),
	}

	for _, algo := range []Algorithm{WorstCase, BoyerMooreHorspool, CTGP} {
		for _, in := range inputs {
			enc, err := Encode(in, algo)
			require.NoError(t, err)

			size, err := ExpandedSize(enc)
			require.NoError(t, err)
			assert.Equal(t, len(in), size)

			dec, err := Decode(enc)
			require.NoError(t, err)
			assert.Equal(t, in, dec)
		}
	}
}

func TestEncodeFastRepeatedBytesScenario(t *testing.T) {

	in := repeatedBytes()
	enc := EncodeWorstCase(in)
	dec, err := Decode(enc)
	require.NoError(t, err)
	assert.Equal(t, in, dec)

	size, err := ExpandedSize(enc)
	require.NoError(t, err)
	assert.Equal(t, 4096, size)
}

func TestEncodeCTGPShortRunIsCompact(t *testing.T) {

	in := bytes.Repeat([]byte("A"), 16)
	enc, err := EncodeCTGP(in)
	require.NoError(t, err)

	dec, err := Decode(enc)
	require.NoError(t, err)
	assert.Equal(t, in, dec)
	assert.LessOrEqual(t, len(enc), 20)
}

func TestDecodeRejectsBadMagic(t *testing.T) {

	_, err := Decode([]byte("NotYaz0andmore!!"))
	require.Error(t, err)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
}

func TestDecodeRejectsTruncatedChunk(t *testing.T) {

	enc := EncodeBMH([]byte("hello world hello world"))
	_, err := Decode(enc[:len(enc)-2])
	require.Error(t, err)
}

func TestBMHBeatsWorstCaseOnCompressibleInput(t *testing.T) {

	in := bytes.Repeat([]byte("compress me please "), 500)
	fast := EncodeWorstCase(in)
	bmh := EncodeBMH(in)
	ctgp, err := EncodeCTGP(in)
	require.NoError(t, err)

	assert.Less(t, len(bmh), len(fast))
	assert.Less(t, len(ctgp), len(fast))
}

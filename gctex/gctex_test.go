package gctex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodedSizeRoundsUpToWholeBlocks(t *testing.T) {
	sz, err := CMPR.EncodedSize(10, 10)
	require.NoError(t, err)
	// CMPR is 8x8 blocks at 32 bytes (256 bits) each; 10x10 needs 2x2 blocks.
	assert.Equal(t, 2*2*256/8, sz)
}

func TestMipChainSizeSumsEachHalvedLevel(t *testing.T) {
	sz, err := RGBA32.MipChainSize(8, 8, 3)
	require.NoError(t, err)

	l0, _ := RGBA32.EncodedSize(8, 8)
	l1, _ := RGBA32.EncodedSize(4, 4)
	l2, _ := RGBA32.EncodedSize(2, 2)
	assert.Equal(t, l0+l1+l2, sz)
}

func TestTEX0ValidateRejectsShortBuffer(t *testing.T) {
	tex := &TEX0{Name: "tex", Width: 4, Height: 4, Format: RGBA32, Data: make([]byte, 10)}
	err := tex.Validate()
	require.Error(t, err)
}

func TestTEX0ValidateRejectsIndexedWithoutPalette(t *testing.T) {
	sz, _ := C8.EncodedSize(8, 8)
	tex := &TEX0{Name: "tex", Width: 8, Height: 8, Format: C8, Data: make([]byte, sz)}
	err := tex.Validate()
	require.Error(t, err)
}

func TestGenerateMipmapsHalvesUntilOnePixel(t *testing.T) {
	base := make([]byte, 4*4*4)
	for i := range base {
		base[i] = 0xff
	}
	levels, err := GenerateMipmaps(base, 4, 4, 3)
	require.NoError(t, err)
	require.Len(t, levels, 3)
	assert.Len(t, levels[0], 4*4*4)
	assert.Len(t, levels[1], 2*2*4)
	assert.Len(t, levels[2], 1*1*4)
}

func TestAverageAlphaDetectsOpaqueBuffer(t *testing.T) {
	base := make([]byte, 2*2*4)
	for i := 3; i < len(base); i += 4 {
		base[i] = 0xff
	}
	assert.True(t, AverageAlpha(base, 2, 2))

	base[3] = 0x80
	assert.False(t, AverageAlpha(base, 2, 2))
}

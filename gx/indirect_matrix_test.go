package gx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndirectMatrixIdentityScenario(t *testing.T) {

	m := IndMatrix{{1, 0}, {0, 1}, {0, 0}}
	words := EncodeIndMatrix(m)

	storedExp := ((words[0] >> 22) & 0x3) | ((words[1]>>22)&0x3)<<2 | ((words[2]>>22)&0x3)<<4
	assert.Equal(t, uint32(0x12), storedExp)

	back, err := DecodeIndMatrix(words)
	require.NoError(t, err)
	for col := 0; col < 3; col++ {
		for row := 0; row < 2; row++ {
			assert.InDelta(t, m[col][row], back[col][row], 1.0/1024)
		}
	}
}

func TestIndirectMatrixFidelityAcrossExponentRange(t *testing.T) {

	for exp := -10; exp < 20; exp++ {
		scale := float32(math.Exp2(float64(exp)))
		m := IndMatrix{{0.73 * scale, -0.4 * scale}, {0.1 * scale, 0.99 * scale}, {-0.99 * scale, 0.02 * scale}}
		words := EncodeIndMatrix(m)
		back, err := DecodeIndMatrix(words)
		require.NoError(t, err)
		for col := 0; col < 3; col++ {
			for row := 0; row < 2; row++ {
				tolerance := scale / 1024 * 1.01
				assert.InDelta(t, m[col][row], back[col][row], float64(tolerance)+1e-12)
			}
		}
	}
}

func TestIndirectMatrixZero(t *testing.T) {

	words := EncodeIndMatrix(IndMatrix{})
	back, err := DecodeIndMatrix(words)
	require.NoError(t, err)
	assert.Equal(t, IndMatrix{}, back)
}

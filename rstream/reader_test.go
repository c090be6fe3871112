package rstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderPrimitives(t *testing.T) {

	data := []byte{0x00, 0x01, 0x02, 0x03, 0x3F, 0x80, 0x00, 0x00, 0x00, 0x00}
	r := NewReader(data)

	u16, err := r.U16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0001), u16)

	u32, err := r.U32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x02033F80), u32)

	f32, err := r.F32()
	require.NoError(t, err)
	assert.Equal(t, float32(0), f32)
}

func TestReaderOutOfBounds(t *testing.T) {

	r := NewReader([]byte{0x01, 0x02})
	_, err := r.U32()
	require.Error(t, err)

	var oob *OutOfBoundsError
	require.ErrorAs(t, err, &oob)
	assert.Equal(t, "u32", oob.Type)
	assert.Equal(t, 0, oob.Offset)
}

func TestReaderScopedPrefixesError(t *testing.T) {

	r := NewReader(nil)
	pop := r.Scoped("header")
	defer pop()

	_, err := r.U8()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}

func TestReaderJumpRestoresCursor(t *testing.T) {

	r := NewReader([]byte{0, 1, 2, 3, 4, 5})
	r.Seek(4)
	func() {
		defer r.Jump(0)()
		v, err := r.U8()
		require.NoError(t, err)
		assert.Equal(t, uint8(0), v)
	}()
	assert.Equal(t, 4, r.Pos())
}

func TestWriterRoundTrip(t *testing.T) {

	w := NewWriter()
	w.WriteU32(0xDEADBEEF)
	w.WriteF32(1.0)
	w.Pad(8)
	assert.Equal(t, 0, w.Pos()%8)

	r := NewReader(w.Bytes())
	u32, err := r.U32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)

	f32, err := r.F32()
	require.NoError(t, err)
	assert.Equal(t, float32(1.0), f32)
}

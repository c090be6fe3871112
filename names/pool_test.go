package names

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gc3dtools/librii/rstream"
)

func TestPoolDeduplicatesAndPatches(t *testing.T) {

	w := rstream.NewWriter()
	pool := NewPool()

	structA := w.Pos()
	w.WriteU32(0) // struct header filler
	pool.WriteNameForward(w, structA, "Bone0")

	structB := w.Pos()
	pool.WriteNameForward(w, structB, "Bone0") // duplicate, should share an offset
	pool.WriteNameForward(w, structB, "Bone1")

	poolBase := w.Pos()
	body := pool.Body()
	w.WriteBytes(body)
	pool.Resolve(w, poolBase)

	assert.Equal(t, 2, pool.Len())

	r := rstream.NewReader(w.Bytes())

	r.Seek(structA)
	r.Skip(4)
	rel, err := r.U32()
	assert.NoError(t, err)
	nameOff := structA + int(int32(rel))
	r.Seek(nameOff)
	name, err := r.ReadNamePascal()
	assert.NoError(t, err)
	assert.Equal(t, "Bone0", name)

	// Both references to "Bone0" must resolve to the same pool entry.
	r.Seek(structB)
	rel2, err := r.U32()
	assert.NoError(t, err)
	nameOff2 := structB + int(int32(rel2))
	assert.Equal(t, nameOff, nameOff2)
}

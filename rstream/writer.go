package rstream

import (
	"encoding/binary"
	"math"
)

// Writer is a growable, endian-aware byte buffer writer, the write
// side of the safe reader/writer pair (C3).
type Writer struct {
	buf    []byte
	order  binary.ByteOrder
	scopes []string
}

// NewWriter returns an empty big-endian writer.
func NewWriter() *Writer {

	return &Writer{order: binary.BigEndian}
}

// SetEndian overrides the byte order used by subsequent multi-byte writes.
func (w *Writer) SetEndian(order binary.ByteOrder) { w.order = order }

// Pos returns the number of bytes written so far.
func (w *Writer) Pos() int { return len(w.buf) }

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Scoped pushes a human-readable scope name for diagnostics produced
// by code running under the returned closure; call it (typically via
// defer) to pop the scope.
func (w *Writer) Scoped(name string) func() {

	w.scopes = append(w.scopes, name)
	return func() {
		if len(w.scopes) > 0 {
			w.scopes = w.scopes[:len(w.scopes)-1]
		}
	}
}

// WriteU8 appends an unsigned byte.
func (w *Writer) WriteU8(v uint8) { w.buf = append(w.buf, v) }

// WriteS8 appends a signed byte.
func (w *Writer) WriteS8(v int8) { w.WriteU8(uint8(v)) }

// WriteU16 appends an unsigned 16-bit word.
func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	w.order.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteS16 appends a signed 16-bit word.
func (w *Writer) WriteS16(v int16) { w.WriteU16(uint16(v)) }

// WriteU32 appends an unsigned 32-bit word.
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	w.order.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteS32 appends a signed 32-bit word.
func (w *Writer) WriteS32(v int32) { w.WriteU32(uint32(v)) }

// WriteF32 appends an IEEE-754 single precision float.
func (w *Writer) WriteF32(v float32) { w.WriteU32(math.Float32bits(v)) }

// WriteBytes appends raw bytes verbatim.
func (w *Writer) WriteBytes(b []byte) { w.buf = append(w.buf, b...) }

// WriteCString appends a string followed by a NUL terminator.
func (w *Writer) WriteCString(s string) {
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, 0)
}

// Pad appends zero bytes until Pos() is a multiple of align.
func (w *Writer) Pad(align int) {
	for w.Pos()%align != 0 {
		w.WriteU8(0)
	}
}

// PadTo appends zero bytes until Pos() equals size. It is a no-op if
// the writer has already passed size.
func (w *Writer) PadTo(size int) {
	for w.Pos() < size {
		w.WriteU8(0)
	}
}

// WriteU32At overwrites the 4 bytes at an already-written offset, used
// by back-patching (name table placeholders, reloc slots).
func (w *Writer) WriteU32At(offset int, v uint32) {
	var b [4]byte
	w.order.PutUint32(b[:], v)
	copy(w.buf[offset:offset+4], b[:])
}

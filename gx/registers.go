// Package gx implements the GPU Display-List (DL) codec (C4): a
// bit-exact encoder/decoder for the console's inline register-write
// command stream. The DL is not self-describing — a parser runs a
// fixed-size pass whose byte count depends on the number of enabled
// TEV stages, indirect stages, and texgens, accumulating writes into a
// GpuRegisterState, then projects that state back into strongly typed
// records (§4.4).
package gx

import (
	"fmt"

	"github.com/gc3dtools/librii/rlog"
	"github.com/gc3dtools/librii/rstream"
)

var log = rlog.Named("G3D")

// Command opcodes used by the core (§4.4).
const (
	OpBP byte = 0x61 // 1-byte opcode, then a 32-bit word: high byte register id, low 24 bits value.
	OpXF byte = 0x10 // 1-byte opcode, 16-bit reserved zero, 16-bit register id, 32-bit value.
	OpCP byte = 0x08 // 1-byte opcode, 1-byte register id, 32-bit value.
)

// BP register ids used by the material and TEV display lists. These
// mirror the publicly documented GameCube/Wii GX BP register map.
const (
	bpGenMode       byte = 0x00
	bpIndMtxA0      byte = 0x06 // + 3*matrix index: col0/col1/col2
	bpIndTexScale0  byte = 0x25 // covers stages 0-1
	bpIndTexScale1  byte = 0x26 // covers stages 2-3
	bpRas1Iref      byte = 0x27
	bpRas1Ss0       byte = 0x28 // + evenIndStage/2
	bpAlphaCompare  byte = 0xF3
	bpBlendMode     byte = 0x41
	bpConstAlpha    byte = 0x42
	bpZMode         byte = 0x40
	bpTevKSel0      byte = 0xF6 // + id
	bpTevRegisterL0 byte = 0xE0 // + reg*2 (RA)
	bpTevRegisterH0 byte = 0xE1 // + reg*2 (BG), written 4x (§9 open question)
	bpTRef0         byte = 0x28 // + evenStage (order: texmap/texcoord/raster)
	bpColorEnv0     byte = 0xC0 // + stage*2
	bpAlphaEnv0     byte = 0xC1 // + stage*2
	bpIndCmd0       byte = 0x10 // + stage (indirect order per TEV stage pair)
	bpSwapTable0    byte = 0xF7 // + entry*2 (ra/bg halves)
)

// XF register ids.
const (
	xfTexGen0 uint16 = 0x1040 // + index
)

func writeBP(w *rstream.Writer, reg byte, value uint32) {

	w.WriteU8(OpBP)
	w.WriteU32(uint32(reg)<<24 | (value & 0x00FFFFFF))
}

func writeXF(w *rstream.Writer, reg uint16, value uint32) {

	w.WriteU8(OpXF)
	w.WriteU16(0)
	w.WriteU16(reg)
	w.WriteU32(value)
}

func writeCP(w *rstream.Writer, reg byte, value uint32) {

	w.WriteU8(OpCP)
	w.WriteU8(reg)
	w.WriteU32(value)
}

// bpWrite is a single decoded BP command.
type bpWrite struct {
	Reg   byte
	Value uint32
}

// DecodeError reports a display-list that could not be parsed: fewer
// bytes consumed than the gen_mode-derived pass expected, an
// unsupported BP register id, or a quantity decoded outside its valid
// range (e.g. an indirect-matrix exponent outside [-17, 46]) (§4.4,
// §7).
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string { return fmt.Sprintf("gx: %s", e.Reason) }

func readCommand(r *rstream.Reader) (op byte, reg uint32, value uint32, err error) {

	op, err = r.U8()
	if err != nil {
		return 0, 0, 0, err
	}
	switch op {
	case OpBP:
		word, err := r.U32()
		if err != nil {
			return 0, 0, 0, err
		}
		return op, word >> 24, word & 0x00FFFFFF, nil
	case OpXF:
		if _, err := r.U16(); err != nil { // reserved
			return 0, 0, 0, err
		}
		regID, err := r.U16()
		if err != nil {
			return 0, 0, 0, err
		}
		val, err := r.U32()
		if err != nil {
			return 0, 0, 0, err
		}
		return op, uint32(regID), val, nil
	case OpCP:
		regID, err := r.U8()
		if err != nil {
			return 0, 0, 0, err
		}
		val, err := r.U32()
		if err != nil {
			return 0, 0, 0, err
		}
		return op, uint32(regID), val, nil
	default:
		return 0, 0, 0, &DecodeError{Reason: fmt.Sprintf("unsupported command opcode 0x%02x", op)}
	}
}

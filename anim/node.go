package anim

// Node flag bits, ported from CHR0Flags (AnimChrIO.hpp). Each bit
// either records a per-node SRT optimization hint or selects the
// quantization format of one of the node's scale/rotate/translate
// attribute groups.
const (
	FlagEnabled          uint32 = 1 << 0
	FlagSRTIdentity      uint32 = 1 << 1
	FlagRTZero           uint32 = 1 << 2
	FlagSclOne           uint32 = 1 << 3
	FlagSclIsotropic     uint32 = 1 << 4
	FlagRotZero          uint32 = 1 << 5
	FlagTransZero        uint32 = 1 << 6
	FlagSclModel         uint32 = 1 << 7
	FlagRotModel         uint32 = 1 << 8
	FlagTransModel       uint32 = 1 << 9
	FlagSSCApply         uint32 = 1 << 10
	FlagSSCParent        uint32 = 1 << 11
	FlagClassicScaleOff  uint32 = 1 << 12
	FlagSXConst          uint32 = 1 << 13
	FlagSYConst          uint32 = 1 << 14
	FlagSZConst          uint32 = 1 << 15
	FlagRXConst          uint32 = 1 << 16
	FlagRYConst          uint32 = 1 << 17
	FlagRZConst          uint32 = 1 << 18
	FlagTXConst          uint32 = 1 << 19
	FlagTYConst          uint32 = 1 << 20
	FlagTZConst          uint32 = 1 << 21
	FlagRequireScale     uint32 = 1 << 22
	FlagRequireRot       uint32 = 1 << 23
	FlagRequireTrans     uint32 = 1 << 24
	FlagScaleTypeLow     uint32 = 1 << 25
	FlagScaleTypeHi      uint32 = 1 << 26
	FlagRotTypeLow       uint32 = 1 << 27
	FlagRotTypeMid       uint32 = 1 << 28
	FlagRotTypeHigh      uint32 = 1 << 29
	FlagTransTypeLow     uint32 = 1 << 30
	FlagTransTypeHi      uint32 = 1 << 31
)

const (
	omitSX = FlagSRTIdentity | FlagSclOne | FlagSclModel
	omitSY = FlagSRTIdentity | FlagSclOne | FlagSclIsotropic | FlagSclModel
	omitSZ = FlagSRTIdentity | FlagSclOne | FlagSclIsotropic | FlagSclModel
	omitRX = FlagSRTIdentity | FlagRTZero | FlagRotZero | FlagRotModel
	omitRY = FlagSRTIdentity | FlagRTZero | FlagRotZero | FlagRotModel
	omitRZ = FlagSRTIdentity | FlagRTZero | FlagRotZero | FlagRotModel
	omitTX = FlagSRTIdentity | FlagRTZero | FlagTransZero | FlagTransModel
	omitTY = FlagSRTIdentity | FlagRTZero | FlagTransZero | FlagTransModel
	omitTZ = FlagSRTIdentity | FlagRTZero | FlagTransZero | FlagTransModel
)

// Attrib is one of the nine SRT components a CHR0Node may carry a
// track for.
type Attrib int

const (
	AttribSclX Attrib = iota
	AttribSclY
	AttribSclZ
	AttribRotX
	AttribRotY
	AttribRotZ
	AttribTransX
	AttribTransY
	AttribTransZ
)

// Attribs enumerates all nine in on-disk order.
var Attribs = [9]Attrib{AttribSclX, AttribSclY, AttribSclZ, AttribRotX, AttribRotY, AttribRotZ, AttribTransX, AttribTransY, AttribTransZ}

func omitMaskFor(a Attrib) uint32 {
	switch a {
	case AttribSclX:
		return omitSX
	case AttribSclY:
		return omitSY
	case AttribSclZ:
		return omitSZ
	case AttribRotX:
		return omitRX
	case AttribRotY:
		return omitRY
	case AttribRotZ:
		return omitRZ
	case AttribTransX:
		return omitTX
	case AttribTransY:
		return omitTY
	case AttribTransZ:
		return omitTZ
	}
	return 0
}

// HasAttrib reports whether a node with the given flags carries a
// track slot for attr at all.
func HasAttrib(flags uint32, attr Attrib) bool {
	return flags&omitMaskFor(attr) == 0
}

func constBitFor(a Attrib) uint32 {
	switch a {
	case AttribSclX:
		return FlagSXConst
	case AttribSclY:
		return FlagSYConst
	case AttribSclZ:
		return FlagSZConst
	case AttribRotX:
		return FlagRXConst
	case AttribRotY:
		return FlagRYConst
	case AttribRotZ:
		return FlagRZConst
	case AttribTransX:
		return FlagTXConst
	case AttribTransY:
		return FlagTYConst
	case AttribTransZ:
		return FlagTZConst
	}
	return 0
}

// IsAttribConst reports whether attr's track slot is the inline Const
// form rather than a pool reference.
func IsAttribConst(flags uint32, attr Attrib) bool {
	return flags&constBitFor(attr) != 0
}

// rotFmt mirrors CHR0Flags::RotFmt: the 3-bit superset encoding that
// every attribute group's 2-or-3-bit field is read through (scale and
// translate only ever encode the first four values).
type rotFmt uint8

const (
	rotFmtConst rotFmt = iota
	rotFmt32
	rotFmt48
	rotFmt96
	rotFmtBaked8
	rotFmtBaked16
	rotFmtBaked32
)

func (f rotFmt) toQuantization() Quantization {
	switch f {
	case rotFmtConst:
		return QuantConst
	case rotFmt32:
		return QuantTrack32
	case rotFmt48:
		return QuantTrack48
	case rotFmt96:
		return QuantTrack96
	case rotFmtBaked8:
		return QuantBakedTrack8
	case rotFmtBaked16:
		return QuantBakedTrack16
	case rotFmtBaked32:
		return QuantBakedTrack32
	default:
		return QuantConst
	}
}

func scaleEncoding(flags uint32) rotFmt    { return rotFmt((flags >> 25) & 0b11) }
func rotateEncoding(flags uint32) rotFmt   { return rotFmt((flags >> 27) & 0b111) }
func translateEncoding(flags uint32) rotFmt { return rotFmt((flags >> 30) & 0b11) }

// formatFor returns the quantization format attr's track slot is
// encoded in, given the node's flags (CHR0Node::read's per-attribute
// switch).
func formatFor(flags uint32, attr Attrib) Quantization {
	var fmt rotFmt
	switch attr {
	case AttribSclX, AttribSclY, AttribSclZ:
		fmt = scaleEncoding(flags)
	case AttribRotX, AttribRotY, AttribRotZ:
		fmt = rotateEncoding(flags)
	case AttribTransX, AttribTransY, AttribTransZ:
		fmt = translateEncoding(flags)
	}
	if IsAttribConst(flags, attr) {
		fmt = rotFmtConst
	}
	return fmt.toQuantization()
}

// trackRef is one CHR0Node attribute slot as stored on disk: either an
// index into the binary animation's track pool, or an inline constant
// value.
type trackRef struct {
	isConst  bool
	index    uint32
	constVal float32
}

// BinaryNode is one CHR0Node: a name, a flag word selecting which of
// the nine SRT attributes are present/const/quantized how, and one
// trackRef per present attribute, in Attribs order.
type BinaryNode struct {
	Name   string
	Flags  uint32
	Tracks []trackRef
}

// fileSize is the node's encoded size: the 4-byte length-prefixed name
// plus the 4-byte flag word plus one 4-byte slot per track reference
// (CHR0Node::filesize).
func (n BinaryNode) fileSize() uint32 {
	return 4 + uint32(len(n.Name)) + 1 + 4 + 4*uint32(len(n.Tracks))
}

// Node is the high-level per-bone/per-material animation target: a
// name, the same flag word (its bit meaning is unchanged by the
// index/const split — only the pool-reference representation is
// resolved), and indices into the owning Anim's Tracks. A Const
// attribute's track is represented the same as any other: as an extra
// trailing entry in Tracks (ChrAnim::from/ChrNode).
type Node struct {
	Name   string
	Flags  uint32
	Tracks []int
}

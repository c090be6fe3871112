// Package anim implements the animation track codec (C7): six
// quantized per-frame keyframe encodings plus the high-level,
// 64-bit-precision Track representation every encoding decodes into
// and re-encodes from, and the CHR0 character-animation container
// that owns pools of them.
//
// Grounded on original_source/.../librii/g3d/io/AnimChrIO.{hpp,cpp}.
package anim

import "github.com/gc3dtools/librii/rlog"

var log = rlog.Named("ANIM")

// Quantization identifies one of C7's six quantized keyframe
// encodings, or Const for a track collapsed to a single inline value
// (§4.7).
type Quantization uint8

const (
	QuantTrack32 Quantization = iota
	QuantTrack48
	QuantTrack96
	QuantBakedTrack8
	QuantBakedTrack16
	QuantBakedTrack32
	QuantConst
)

func (q Quantization) baked() bool {
	return q == QuantBakedTrack8 || q == QuantBakedTrack16 || q == QuantBakedTrack32
}

func (q Quantization) String() string {
	switch q {
	case QuantTrack32:
		return "Track32"
	case QuantTrack48:
		return "Track48"
	case QuantTrack96:
		return "Track96"
	case QuantBakedTrack8:
		return "BakedTrack8"
	case QuantBakedTrack16:
		return "BakedTrack16"
	case QuantBakedTrack32:
		return "BakedTrack32"
	case QuantConst:
		return "Const"
	default:
		return "Quantization(?)"
	}
}

// WrapMode is a CHR0's playback loop behavior.
type WrapMode uint32

const (
	WrapModeClamp WrapMode = iota
	WrapModeRepeat
)

// ScaleRule records which modeling package authored a CHR0's scale
// tracks, which changes the default scale-track interpolation the
// original tooling applies (§6 "AnimChrIO scale-rule handling"). The
// distilled spec names "scale rule" in BinaryAnim without defining its
// values; this numbering follows the original's `scaleRule` field,
// where 0 is the standard/unspecified case.
type ScaleRule uint32

const (
	ScaleRuleStandard ScaleRule = iota
	ScaleRuleMaya
	ScaleRule3dsMax
	ScaleRuleXSI
)

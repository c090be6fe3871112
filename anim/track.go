package anim

import "math"

// Keyframe is one (frame, value, slope) sample of a Track, always
// carried at 64-bit precision so repeated re-quantization does not
// accumulate error; quantization applies only when the track is
// written to one of the six on-disk encodings (§4.7 "Track
// (animation)").
type Keyframe struct {
	Frame, Value, Slope float64
}

// Track is the high-level, quantization-tagged keyframe list every
// on-disk encoding decodes into and re-encodes from (§4.7). For
// non-Const, non-baked tracks Frames must be sorted strictly by Frame
// (decoded baked tracks carry one sample per frame, each with Frame 0); a Const
// track carries exactly one Frame whose Value is the constant.
type Track struct {
	Quant Quantization

	// Scale/Offset are quantization settings only: Frames[i].Value is
	// already the decoded, scale-adjusted value, not the raw quantized
	// integer (ChrTrack's own doc comment on this point, AnimChrIO.hpp).
	Scale, Offset float32

	// Step is the non-baked encodings' own sampling granularity,
	// carried in the pool entry's 8-byte header; baked and Const
	// tracks ignore it.
	Step float32

	Frames []Keyframe
}

// fromTrackData32 decodes a Track32 pool entry (ChrTrack::from(const
// CHR0Track32&)).
func fromTrackData32(d TrackData32, step float32) Track {
	t := Track{Quant: QuantTrack32, Scale: d.Scale, Offset: d.Offset, Step: step}
	for _, f := range d.Frames {
		t.Frames = append(t.Frames, Keyframe{
			Frame: float64(f.Frame),
			Value: float64(f.Value)*float64(d.Scale) + float64(d.Offset),
			Slope: f.slopeDecoded(),
		})
	}
	return t
}

func fromTrackData48(d TrackData48, step float32) Track {
	t := Track{Quant: QuantTrack48, Scale: d.Scale, Offset: d.Offset, Step: step}
	for _, f := range d.Frames {
		t.Frames = append(t.Frames, Keyframe{
			Frame: f.frameDecoded(),
			Value: float64(f.Value)*float64(d.Scale) + float64(d.Offset),
			Slope: f.slopeDecoded(),
		})
	}
	return t
}

func fromTrackData96(d TrackData96, step float32) Track {
	t := Track{Quant: QuantTrack96, Step: step}
	for _, f := range d.Frames {
		t.Frames = append(t.Frames, Keyframe{Frame: float64(f.Frame), Value: float64(f.Value), Slope: float64(f.Slope)})
	}
	return t
}

// Baked tracks do not carry a per-sample frame value: the original
// sets ChrFrame.frame to 0 for every sample rather than fabricating an
// index, and likewise leaves slope at 0 (no slope for baked tracks).
func fromBakedTrackData8(d BakedTrackData8) Track {
	t := Track{Quant: QuantBakedTrack8, Scale: d.Scale, Offset: d.Offset}
	for _, v := range d.Frames {
		t.Frames = append(t.Frames, Keyframe{Value: float64(v)*float64(d.Scale) + float64(d.Offset)})
	}
	return t
}

func fromBakedTrackData16(d BakedTrackData16) Track {
	t := Track{Quant: QuantBakedTrack16, Scale: d.Scale, Offset: d.Offset}
	for _, v := range d.Frames {
		t.Frames = append(t.Frames, Keyframe{Value: float64(v)*float64(d.Scale) + float64(d.Offset)})
	}
	return t
}

func fromBakedTrackData32(d BakedTrackData32) Track {
	t := Track{Quant: QuantBakedTrack32}
	for _, v := range d.Frames {
		t.Frames = append(t.Frames, Keyframe{Value: float64(v)})
	}
	return t
}

// FromConst builds the inline one-sample Const track a node attribute
// slot carries directly, with no pool entry (ChrTrack::from(f32)).
func FromConst(value float32) Track {
	return Track{Quant: QuantConst, Frames: []Keyframe{{Value: float64(value)}}}
}

// fromBinaryTrackData decodes any pool entry into its high-level form
// (ChrTrack::fromAny).
func fromBinaryTrackData(d BinaryTrackData) Track {
	switch d.Quant {
	case QuantTrack32:
		return fromTrackData32(d.Track32, d.Step)
	case QuantTrack48:
		return fromTrackData48(d.Track48, d.Step)
	case QuantTrack96:
		return fromTrackData96(d.Track96, d.Step)
	case QuantBakedTrack8:
		return fromBakedTrackData8(d.Baked8)
	case QuantBakedTrack16:
		return fromBakedTrackData16(d.Baked16)
	case QuantBakedTrack32:
		return fromBakedTrackData32(d.Baked32)
	default:
		return Track{Quant: d.Quant}
	}
}

// toBinaryTrackData quantizes t into its on-disk form (ChrTrack::to).
// t.Quant must not be QuantConst; Const tracks are addressed inline
// from the owning node slot instead of through the pool.
func (t Track) toBinaryTrackData() BinaryTrackData {
	switch t.Quant {
	case QuantTrack32:
		d := TrackData32{Scale: t.Scale, Offset: t.Offset}
		for _, k := range t.Frames {
			d.Frames = append(d.Frames, Frame32{
				Frame: uint32(math.Round(k.Frame)),
				Value: uint32(math.Round((k.Value - float64(t.Offset)) / float64(t.Scale))),
				Slope: int32(math.Round(k.Slope * 32.0)),
			})
		}
		return BinaryTrackData{Quant: QuantTrack32, Step: t.Step, Track32: d}
	case QuantTrack48:
		d := TrackData48{Scale: t.Scale, Offset: t.Offset}
		for _, k := range t.Frames {
			d.Frames = append(d.Frames, Frame48{
				Frame: int16(math.Round(k.Frame * 32.0)),
				Value: uint16(math.Round((k.Value - float64(t.Offset)) / float64(t.Scale))),
				Slope: int16(math.Round(k.Slope * 256.0)),
			})
		}
		return BinaryTrackData{Quant: QuantTrack48, Step: t.Step, Track48: d}
	case QuantTrack96:
		d := TrackData96{}
		for _, k := range t.Frames {
			d.Frames = append(d.Frames, Frame96{Frame: float32(k.Frame), Value: float32(k.Value), Slope: float32(k.Slope)})
		}
		return BinaryTrackData{Quant: QuantTrack96, Step: t.Step, Track96: d}
	case QuantBakedTrack8:
		d := BakedTrackData8{Scale: t.Scale, Offset: t.Offset}
		for _, k := range t.Frames {
			d.Frames = append(d.Frames, uint8(math.Round((k.Value-float64(t.Offset))/float64(t.Scale))))
		}
		return BinaryTrackData{Quant: QuantBakedTrack8, Baked8: d}
	case QuantBakedTrack16:
		d := BakedTrackData16{Scale: t.Scale, Offset: t.Offset}
		for _, k := range t.Frames {
			d.Frames = append(d.Frames, uint16(math.Round((k.Value-float64(t.Offset))/float64(t.Scale))))
		}
		return BinaryTrackData{Quant: QuantBakedTrack16, Baked16: d}
	case QuantBakedTrack32:
		d := BakedTrackData32{}
		for _, k := range t.Frames {
			d.Frames = append(d.Frames, float32(k.Value))
		}
		return BinaryTrackData{Quant: QuantBakedTrack32, Baked32: d}
	default:
		return BinaryTrackData{Quant: t.Quant}
	}
}

// ConstValue returns the inline value of a Const track. It panics if
// t is not Const; callers should check t.Quant first (mirrors the
// original's `assert(frames.size() >= 1)` on this path).
func (t Track) ConstValue() float32 {
	if t.Quant != QuantConst {
		panic("anim: ConstValue called on a non-Const track")
	}
	return float32(t.Frames[0].Value)
}

package anim

import "github.com/gc3dtools/librii/rstream"

// TrackData32 is the on-disk Track32 payload: a scale/offset pair
// followed by one Frame32 per sample (4 bytes/frame, §4.7).
type TrackData32 struct {
	Scale, Offset float32
	Frames        []Frame32
}

func readTrackData32(r *rstream.Reader, count uint32) (TrackData32, error) {
	var t TrackData32
	var err error
	if t.Scale, err = r.F32(); err != nil {
		return TrackData32{}, err
	}
	if t.Offset, err = r.F32(); err != nil {
		return TrackData32{}, err
	}
	for i := uint32(0); i < count; i++ {
		f, err := readFrame32(r)
		if err != nil {
			return TrackData32{}, err
		}
		t.Frames = append(t.Frames, f)
	}
	return t, nil
}

func (t TrackData32) write(w *rstream.Writer) {
	w.WriteF32(t.Scale)
	w.WriteF32(t.Offset)
	for _, f := range t.Frames {
		f.write(w)
	}
}

func (t TrackData32) fileSize() uint32 { return 8 + 4*uint32(len(t.Frames)) }

// TrackData48 is the on-disk Track48 payload (6 bytes/frame, §4.7).
type TrackData48 struct {
	Scale, Offset float32
	Frames        []Frame48
}

func readTrackData48(r *rstream.Reader, count uint32) (TrackData48, error) {
	var t TrackData48
	var err error
	if t.Scale, err = r.F32(); err != nil {
		return TrackData48{}, err
	}
	if t.Offset, err = r.F32(); err != nil {
		return TrackData48{}, err
	}
	for i := uint32(0); i < count; i++ {
		f, err := readFrame48(r)
		if err != nil {
			return TrackData48{}, err
		}
		t.Frames = append(t.Frames, f)
	}
	return t, nil
}

func (t TrackData48) write(w *rstream.Writer) {
	w.WriteF32(t.Scale)
	w.WriteF32(t.Offset)
	for _, f := range t.Frames {
		f.write(w)
	}
}

func (t TrackData48) fileSize() uint32 { return 8 + 6*uint32(len(t.Frames)) }

// TrackData96 is the on-disk Track96 payload: no scale/offset, just
// raw float frames (12 bytes/frame, §4.7).
type TrackData96 struct {
	Frames []Frame96
}

func readTrackData96(r *rstream.Reader, count uint32) (TrackData96, error) {
	var t TrackData96
	for i := uint32(0); i < count; i++ {
		f, err := readFrame96(r)
		if err != nil {
			return TrackData96{}, err
		}
		t.Frames = append(t.Frames, f)
	}
	return t, nil
}

func (t TrackData96) write(w *rstream.Writer) {
	for _, f := range t.Frames {
		f.write(w)
	}
}

func (t TrackData96) fileSize() uint32 { return 12 * uint32(len(t.Frames)) }

// BakedTrackData8 is an implicit-frame, no-slope track quantized to
// one byte per sample (§4.7). The original stores frameDuration+1
// samples so the final baked sample lands exactly on the loop point.
type BakedTrackData8 struct {
	Scale, Offset float32
	Frames        []uint8
}

func readBakedTrackData8(r *rstream.Reader, frameDuration uint32) (BakedTrackData8, error) {
	var t BakedTrackData8
	var err error
	if t.Scale, err = r.F32(); err != nil {
		return BakedTrackData8{}, err
	}
	if t.Offset, err = r.F32(); err != nil {
		return BakedTrackData8{}, err
	}
	for i := uint32(0); i < frameDuration+1; i++ {
		v, err := r.U8()
		if err != nil {
			return BakedTrackData8{}, err
		}
		t.Frames = append(t.Frames, v)
	}
	return t, nil
}

func (t BakedTrackData8) write(w *rstream.Writer) {
	w.WriteF32(t.Scale)
	w.WriteF32(t.Offset)
	for _, v := range t.Frames {
		w.WriteU8(v)
	}
}

func (t BakedTrackData8) fileSize() uint32 { return 8 + uint32(len(t.Frames)) }

// BakedTrackData16 is the 2-byte-per-sample baked encoding (§4.7).
type BakedTrackData16 struct {
	Scale, Offset float32
	Frames        []uint16
}

func readBakedTrackData16(r *rstream.Reader, frameDuration uint32) (BakedTrackData16, error) {
	var t BakedTrackData16
	var err error
	if t.Scale, err = r.F32(); err != nil {
		return BakedTrackData16{}, err
	}
	if t.Offset, err = r.F32(); err != nil {
		return BakedTrackData16{}, err
	}
	for i := uint32(0); i < frameDuration+1; i++ {
		v, err := r.U16()
		if err != nil {
			return BakedTrackData16{}, err
		}
		t.Frames = append(t.Frames, v)
	}
	return t, nil
}

func (t BakedTrackData16) write(w *rstream.Writer) {
	w.WriteF32(t.Scale)
	w.WriteF32(t.Offset)
	for _, v := range t.Frames {
		w.WriteU16(v)
	}
}

func (t BakedTrackData16) fileSize() uint32 { return 8 + 2*uint32(len(t.Frames)) }

// BakedTrackData32 is the unquantized, no-scale/offset baked encoding
// (§4.7): every sample is a raw float.
type BakedTrackData32 struct {
	Frames []float32
}

func readBakedTrackData32(r *rstream.Reader, frameDuration uint32) (BakedTrackData32, error) {
	var t BakedTrackData32
	for i := uint32(0); i < frameDuration+1; i++ {
		v, err := r.F32()
		if err != nil {
			return BakedTrackData32{}, err
		}
		t.Frames = append(t.Frames, v)
	}
	return t, nil
}

func (t BakedTrackData32) write(w *rstream.Writer) {
	for _, v := range t.Frames {
		w.WriteF32(v)
	}
}

func (t BakedTrackData32) fileSize() uint32 { return 4 * uint32(len(t.Frames)) }

// BinaryTrackData is one pool entry's on-disk payload: the union of
// all six quantized encodings, tagged by Quant. Step is the sampling
// granularity carried by the non-baked encodings' own 8-byte header
// (frame count + padding + step); baked encodings are sampled every
// game frame and ignore it (§4.7, CHR0Track/CHR0BakedTrack).
type BinaryTrackData struct {
	Quant Quantization
	Step  float32

	Track32 TrackData32
	Track48 TrackData48
	Track96 TrackData96
	Baked8  BakedTrackData8
	Baked16 BakedTrackData16
	Baked32 BakedTrackData32
}

// readBinaryTrackData reads one pool entry. Non-baked encodings carry
// their own frame count; baked encodings take frameDuration from the
// owning animation (CHR0AnyTrack::read).
func readBinaryTrackData(r *rstream.Reader, baked bool, quant Quantization, frameDuration uint32) (BinaryTrackData, error) {
	if !baked {
		count, err := r.U16()
		if err != nil {
			return BinaryTrackData{}, err
		}
		if _, err := r.U16(); err != nil { // padding
			return BinaryTrackData{}, err
		}
		step, err := r.F32()
		if err != nil {
			return BinaryTrackData{}, err
		}
		out := BinaryTrackData{Quant: quant, Step: step}
		switch quant {
		case QuantTrack32:
			out.Track32, err = readTrackData32(r, uint32(count))
		case QuantTrack48:
			out.Track48, err = readTrackData48(r, uint32(count))
		case QuantTrack96:
			out.Track96, err = readTrackData96(r, uint32(count))
		}
		return out, err
	}

	out := BinaryTrackData{Quant: quant}
	var err error
	switch quant {
	case QuantBakedTrack8:
		out.Baked8, err = readBakedTrackData8(r, frameDuration)
	case QuantBakedTrack16:
		out.Baked16, err = readBakedTrackData16(r, frameDuration)
	case QuantBakedTrack32:
		out.Baked32, err = readBakedTrackData32(r, frameDuration)
	}
	return out, err
}

func (d BinaryTrackData) write(w *rstream.Writer) {
	if !d.Quant.baked() {
		switch d.Quant {
		case QuantTrack32:
			w.WriteU16(uint16(len(d.Track32.Frames)))
		case QuantTrack48:
			w.WriteU16(uint16(len(d.Track48.Frames)))
		case QuantTrack96:
			w.WriteU16(uint16(len(d.Track96.Frames)))
		}
		w.WriteU16(0)
		w.WriteF32(d.Step)
		switch d.Quant {
		case QuantTrack32:
			d.Track32.write(w)
		case QuantTrack48:
			d.Track48.write(w)
		case QuantTrack96:
			d.Track96.write(w)
		}
		return
	}
	switch d.Quant {
	case QuantBakedTrack8:
		d.Baked8.write(w)
	case QuantBakedTrack16:
		d.Baked16.write(w)
	case QuantBakedTrack32:
		d.Baked32.write(w)
	}
}

func (d BinaryTrackData) fileSize() uint32 {
	switch d.Quant {
	case QuantTrack32:
		return 8 + d.Track32.fileSize()
	case QuantTrack48:
		return 8 + d.Track48.fileSize()
	case QuantTrack96:
		return 8 + d.Track96.fileSize()
	case QuantBakedTrack8:
		return d.Baked8.fileSize()
	case QuantBakedTrack16:
		return d.Baked16.fileSize()
	case QuantBakedTrack32:
		return d.Baked32.fileSize()
	default:
		return 0
	}
}

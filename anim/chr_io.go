package anim

import "github.com/gc3dtools/librii/rstream"

// Binary layout notes (Open Question decision, recorded in
// DESIGN.md): the original CHR0 subfile is offset-addressed so it can
// sit anywhere inside an outer BRRES container and be located through
// a b-tree dictionary (ReadDictionary/WriteDictionary, owned by the
// `archive` package, C9). Rather than guess at that
// container-level framing here, this codec's own Read/Write treat
// CHR0 as a standalone stream: a flat node table (no dictionary) and
// direct pool indices (no offset/index two-pass resolution) in place
// of the original's address-based node lookup and the offset->index
// rewrite pass BinaryChr::read performs once tracks are located. The
// semantics the spec actually calls out as testable — the six
// quantized encodings, track-pool dedup, and the Const-trailing
// invariant — are preserved exactly. archive.WriteBRRES embeds this
// stream's bytes as they are, without a dictionary entry of its own.

func writeInlineString(w *rstream.Writer, s string) {
	w.WriteU32(uint32(len(s)))
	w.WriteCString(s)
}

func readInlineString(r *rstream.Reader) (string, error) {
	n, err := r.U32()
	if err != nil {
		return "", err
	}
	b, err := r.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	if _, err := r.U8(); err != nil { // NUL terminator
		return "", err
	}
	return string(b), nil
}

// Write serializes b to its binary form.
func (b BinaryAnim) Write() []byte {
	w := rstream.NewWriter()
	w.WriteBytes([]byte(magic))
	w.WriteU32(0) // size, patched below
	w.WriteU32(supportedVersion)
	w.WriteU32(uint32(len(b.Nodes)))
	w.WriteU32(uint32(len(b.Tracks)))
	w.WriteU16(b.FrameDuration)
	w.WriteU16(0) // padding
	w.WriteU32(uint32(b.WrapMode))
	w.WriteU32(uint32(b.ScaleRule))
	writeInlineString(w, b.Name)
	writeInlineString(w, b.SourcePath)

	for _, node := range b.Nodes {
		writeInlineString(w, node.Name)
		w.WriteU32(node.Flags)
		for _, ref := range node.Tracks {
			if ref.isConst {
				w.WriteF32(ref.constVal)
			} else {
				w.WriteU32(ref.index)
			}
		}
	}

	for _, t := range b.Tracks {
		w.Pad(4)
		w.WriteU8(uint8(t.Quant))
		t.write(w)
	}

	out := w.Bytes()
	w.WriteU32At(4, uint32(len(out)))

	if expect := b.expectedSize(); expect != uint32(len(out)) {
		panic("anim: encoded CHR0 size does not match the sum of its parts")
	}

	return w.Bytes()
}

// expectedSize sums the fixed header plus every node's and track's
// on-disk size, including the per-track 4-byte alignment padding
// Write applies before each pool entry. Used as an internal
// consistency check against the writer's actual output length.
func (b BinaryAnim) expectedSize() uint32 {
	const fixedHeader = 4 + 4 + 4 + 4 + 4 + 2 + 2 + 4 + 4
	size := uint32(fixedHeader)
	size += 4 + uint32(len(b.Name)) + 1
	size += 4 + uint32(len(b.SourcePath)) + 1
	for _, n := range b.Nodes {
		size += n.fileSize()
	}
	for _, t := range b.Tracks {
		if size%4 != 0 {
			size += 4 - size%4
		}
		size += 1 + t.fileSize()
	}
	return size
}

// Read parses a CHR0 stream written by Write.
func Read(data []byte) (BinaryAnim, error) {
	r := rstream.NewReader(data)
	defer r.Scoped("CHR0")()

	magicBytes, err := r.ReadBytes(4)
	if err != nil {
		return BinaryAnim{}, err
	}
	if string(magicBytes) != magic {
		return BinaryAnim{}, &DecodeError{Reason: "missing CHR0 magic"}
	}
	if _, err := r.U32(); err != nil { // size
		return BinaryAnim{}, err
	}
	ver, err := r.U32()
	if err != nil {
		return BinaryAnim{}, err
	}
	if ver != supportedVersion {
		return BinaryAnim{}, &DecodeError{Reason: "unsupported CHR0 version; only version 5 is supported"}
	}
	nodeCount, err := r.U32()
	if err != nil {
		return BinaryAnim{}, err
	}
	trackCount, err := r.U32()
	if err != nil {
		return BinaryAnim{}, err
	}
	frameDuration, err := r.U16()
	if err != nil {
		return BinaryAnim{}, err
	}
	if _, err := r.U16(); err != nil { // padding
		return BinaryAnim{}, err
	}
	wrapModeRaw, err := r.U32()
	if err != nil {
		return BinaryAnim{}, err
	}
	scaleRuleRaw, err := r.U32()
	if err != nil {
		return BinaryAnim{}, err
	}
	name, err := readInlineString(r)
	if err != nil {
		return BinaryAnim{}, err
	}
	sourcePath, err := readInlineString(r)
	if err != nil {
		return BinaryAnim{}, err
	}

	out := BinaryAnim{
		Name:          name,
		SourcePath:    sourcePath,
		FrameDuration: frameDuration,
		WrapMode:      WrapMode(wrapModeRaw),
		ScaleRule:     ScaleRule(scaleRuleRaw),
	}

	for i := uint32(0); i < nodeCount; i++ {
		nodeName, err := readInlineString(r)
		if err != nil {
			return BinaryAnim{}, err
		}
		flags, err := r.U32()
		if err != nil {
			return BinaryAnim{}, err
		}
		node := BinaryNode{Name: nodeName, Flags: flags}
		for _, attr := range Attribs {
			if !HasAttrib(flags, attr) {
				continue
			}
			if formatFor(flags, attr) == QuantConst {
				v, err := r.F32()
				if err != nil {
					return BinaryAnim{}, err
				}
				node.Tracks = append(node.Tracks, trackRef{isConst: true, constVal: v})
			} else {
				idx, err := r.U32()
				if err != nil {
					return BinaryAnim{}, err
				}
				node.Tracks = append(node.Tracks, trackRef{index: idx})
			}
		}
		out.Nodes = append(out.Nodes, node)
	}

	for i := uint32(0); i < trackCount; i++ {
		if pos := r.Pos(); pos%4 != 0 {
			r.Skip(4 - pos%4)
		}
		quantByte, err := r.U8()
		if err != nil {
			return BinaryAnim{}, err
		}
		quant := Quantization(quantByte)
		t, err := readBinaryTrackData(r, quant.baked(), quant, uint32(frameDuration))
		if err != nil {
			return BinaryAnim{}, err
		}
		out.Tracks = append(out.Tracks, t)
	}

	return out, nil
}

// Decode parses a CHR0 stream directly into the high-level Anim form.
func Decode(data []byte) (Anim, error) {
	b, err := Read(data)
	if err != nil {
		return Anim{}, err
	}
	return FromBinary(b), nil
}

// Encode lowers a into its binary form, deduplicating the track pool
// before serializing (ChrAnim::write, BinaryChr::mergeIdenticalTracks).
func (a Anim) Encode() ([]byte, error) {
	b, err := a.ToBinary()
	if err != nil {
		return nil, err
	}
	b.mergeIdenticalTracks()
	return b.Write(), nil
}

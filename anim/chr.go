package anim

import (
	"fmt"

	"github.com/gc3dtools/librii/rstream"
)

// magic is the CHR0 subfile's four-byte identifier.
const magic = "CHR0"

// supportedVersion is the only CHR0 revision this codec reads or
// writes; the original rejects every other version outright.
const supportedVersion = 5

// DecodeError reports a malformed or unsupported CHR0 stream.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string { return fmt.Sprintf("anim: %s", e.Reason) }

// ConstOrderError reports an Anim whose tracks do not satisfy the
// "Const tracks must be trailing" invariant (§4.7 "Track pool dedup").
// The original enforces this with an assert and process exit; this
// port returns it as an ordinary error instead.
type ConstOrderError struct {
	FirstConstIndex int
	LaterNonConst   int
}

func (e *ConstOrderError) Error() string {
	return fmt.Sprintf("anim: track %d is non-Const after Const track %d; Const tracks must be contiguous and final", e.LaterNonConst, e.FirstConstIndex)
}

// BinaryAnim is the file-friendly CHR0: a flat node table and a track
// pool, with pool references resolved to plain indices (as they are by
// the midpoint of BinaryChr::read, once the slow offset->index pass
// has run). Name/SourcePath/FrameDuration/WrapMode/ScaleRule mirror
// BinaryChrInfo.
type BinaryAnim struct {
	Nodes         []BinaryNode
	Tracks        []BinaryTrackData
	Name          string
	SourcePath    string
	FrameDuration uint16
	WrapMode      WrapMode
	ScaleRule     ScaleRule
}

// mergeIdenticalTracks collapses byte-for-byte identical pool entries,
// remapping every node's track references through a stable old->new
// index table (BinaryChr::mergeIdenticalTracks, grounded on
// rsl::StableCompactVector).
func (b *BinaryAnim) mergeIdenticalTracks() {
	remap := make([]int, len(b.Tracks))
	seen := make(map[string]int, len(b.Tracks))
	unique := make([]BinaryTrackData, 0, len(b.Tracks))

	for i, t := range b.Tracks {
		key := trackKey(t)
		if j, ok := seen[key]; ok {
			remap[i] = j
			continue
		}
		j := len(unique)
		unique = append(unique, t)
		seen[key] = j
		remap[i] = j
	}

	for ni := range b.Nodes {
		for ti, ref := range b.Nodes[ni].Tracks {
			if !ref.isConst {
				b.Nodes[ni].Tracks[ti].index = uint32(remap[int(ref.index)])
			}
		}
	}
	b.Tracks = unique
}

// trackKey produces a value equal for two BinaryTrackData iff their
// on-disk encodings would be byte-identical, the equality
// StableCompactVector's dedup pass relies on in the original.
func trackKey(t BinaryTrackData) string {
	w := rstream.NewWriter()
	w.WriteU8(uint8(t.Quant))
	t.write(w)
	return string(w.Bytes())
}

// Anim is the high-level CHR0: nodes addressing tracks purely by
// index (no index/const split — a Const attribute is just another
// trailing Track of quantization QuantConst), the representation
// ChrAnim::from/to convert to and from BinaryAnim.
type Anim struct {
	Nodes         []Node
	Tracks        []Track
	Name          string
	SourcePath    string
	FrameDuration uint16
	WrapMode      WrapMode
	ScaleRule     ScaleRule
}

// FromBinary lifts a BinaryAnim into the high-level form, materializing
// one extra trailing Track per inline Const attribute slot
// (ChrAnim::from).
func FromBinary(b BinaryAnim) Anim {
	a := Anim{
		Name:          b.Name,
		SourcePath:    b.SourcePath,
		FrameDuration: b.FrameDuration,
		WrapMode:      b.WrapMode,
		ScaleRule:     b.ScaleRule,
	}

	for _, t := range b.Tracks {
		a.Tracks = append(a.Tracks, fromBinaryTrackData(t))
	}

	for _, bn := range b.Nodes {
		node := Node{Name: bn.Name, Flags: bn.Flags}
		for _, ref := range bn.Tracks {
			if ref.isConst {
				a.Tracks = append(a.Tracks, FromConst(ref.constVal))
				node.Tracks = append(node.Tracks, len(a.Tracks)-1)
				continue
			}
			node.Tracks = append(node.Tracks, int(ref.index))
		}
		a.Nodes = append(a.Nodes, node)
	}

	return a
}

// ToBinary lowers the high-level form back to BinaryAnim, splitting
// each Const track back out to an inline node-slot value
// (ChrAnim::to). It returns a *ConstOrderError if any non-Const track
// follows a Const one in a.Tracks — the "Const tracks must be
// contiguous and final" invariant the original enforces with an
// assert-and-exit.
func (a Anim) ToBinary() (BinaryAnim, error) {
	b := BinaryAnim{
		Name:          a.Name,
		SourcePath:    a.SourcePath,
		FrameDuration: a.FrameDuration,
		WrapMode:      a.WrapMode,
		ScaleRule:     a.ScaleRule,
	}

	firstConst := -1
	for i, t := range a.Tracks {
		if t.Quant == QuantConst {
			if firstConst == -1 {
				firstConst = i
			}
			continue
		}
		if firstConst != -1 {
			return BinaryAnim{}, &ConstOrderError{FirstConstIndex: firstConst, LaterNonConst: i}
		}
		b.Tracks = append(b.Tracks, t.toBinaryTrackData())
	}

	for _, node := range a.Nodes {
		bn := BinaryNode{Name: node.Name, Flags: node.Flags}
		for _, idx := range node.Tracks {
			if idx < 0 || idx >= len(a.Tracks) {
				return BinaryAnim{}, &DecodeError{Reason: fmt.Sprintf("node %q references out-of-range track %d", node.Name, idx)}
			}
			t := a.Tracks[idx]
			if t.Quant == QuantConst {
				bn.Tracks = append(bn.Tracks, trackRef{isConst: true, constVal: t.ConstValue()})
			} else {
				bn.Tracks = append(bn.Tracks, trackRef{index: uint32(idx)})
			}
		}
		b.Nodes = append(b.Nodes, bn)
	}

	return b, nil
}

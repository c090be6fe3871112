package gx

import (
	"github.com/gc3dtools/librii/rstream"
)

// TevDLSize is the fixed, padded size of a TEV display list (§4.4).
const TevDLSize = 0x200

// MaxTevStages is the hardware limit on TEV stages, processed two at a
// time by the encoder (§4.4 "TEV DL").
const MaxTevStages = 16

const tevStagePairSize = 48 // konst-sel, order, 2 color, 2 alpha, 2 indirect, 3 pad bytes, x2 stages

// SwapTable is one 4-entry RGBA channel-swizzle table referenced by a
// TEV stage's RasSwap/TexSwap ids.
type SwapTable struct {
	R, G, B, A uint8 // 2-bit channel selectors
}

func packSwapRG(s SwapTable) uint32 { return uint32(s.R&0x3) | uint32(s.G&0x3)<<2 }
func packSwapBA(s SwapTable) uint32 { return uint32(s.B&0x3) | uint32(s.A&0x3)<<2 }

func unpackSwapRG(rg, ba uint32) SwapTable {
	return SwapTable{
		R: uint8(rg & 0x3),
		G: uint8((rg >> 2) & 0x3),
		B: uint8(ba & 0x3),
		A: uint8((ba >> 2) & 0x3),
	}
}

func packIndOrders(orders [4]uint32) uint32 {
	var v uint32
	for i, o := range orders {
		v |= (o & 0x3F) << uint(i*6)
	}
	return v
}

func unpackIndOrders(v uint32) [4]uint32 {
	var out [4]uint32
	for i := range out {
		out[i] = (v >> uint(i*6)) & 0x3F
	}
	return out
}

// TevDLData is the full set of fields a TEV DL's fixed-size pass reads
// and writes: swap tables, per-pair indirect orders, and up to
// MaxTevStages combiner stages (§4.4).
type TevDLData struct {
	SwapTables [4]SwapTable
	IndOrders  [4]uint32 // packed ref/texmap/texcoord 6-bit field per stage-pair slot
	Stages     []TevStage
}

func packIndStage(s IndirectStage, hasIndirect bool) uint32 {
	if !hasIndirect {
		return 0x7 // sentinel "no indirect stage bound"
	}
	return uint32(s.TexCoord&0x7) | uint32(s.TexMap&0x7)<<3 | uint32(s.Method&0x3)<<6 | uint32(s.RefLight&0x7)<<8
}

func unpackIndStage(v uint32) (IndirectStage, bool) {
	if v&0x7 == 0x7 && v>>3 == 0 {
		return IndirectStage{}, false
	}
	return IndirectStage{
		TexCoord: uint8(v & 0x7),
		TexMap:   uint8((v >> 3) & 0x7),
		Method:   IndMethod((v >> 6) & 0x3),
		RefLight: uint8((v >> 8) & 0x7),
	}, true
}

// packTevOrderPair packs both stages of a pair's raster-order inputs
// into the single 24-bit BP write real hardware uses to cover two TEV
// stages at once (mirrored here for konst-select too, §4.4).
func packTevOrderPair(a, b TevStage) uint32 {
	v := uint32(a.TexCoord&0x7) | uint32(a.TexMap&0x7)<<3 | uint32(a.RasOrder&0x7)<<6
	v |= uint32(b.TexCoord&0x7) << 9
	v |= uint32(b.TexMap&0x7) << 12
	v |= uint32(b.RasOrder&0x7) << 15
	return v
}

func unpackTevOrderPair(v uint32) (a, b struct{ TexCoord, TexMap, RasOrder uint8 }) {
	a.TexCoord = uint8(v & 0x7)
	a.TexMap = uint8((v >> 3) & 0x7)
	a.RasOrder = uint8((v >> 6) & 0x7)
	b.TexCoord = uint8((v >> 9) & 0x7)
	b.TexMap = uint8((v >> 12) & 0x7)
	b.RasOrder = uint8((v >> 15) & 0x7)
	return
}

func packKonstSel(konstColor, konstAlpha uint8) uint32 {
	return uint32(konstColor&0x1F) | uint32(konstAlpha&0x1F)<<5
}

func unpackKonstSel(v uint32) (konstColor, konstAlpha uint8) {
	return uint8(v & 0x1F), uint8((v >> 5) & 0x1F)
}

// EncodeTevDL writes t as the fixed 0x200-byte TEV display list (§4.4
// "TEV DL").
func EncodeTevDL(t TevDLData) []byte {

	w := rstream.NewWriter()

	for i, st := range t.SwapTables {
		writeBP(w, bpSwapTable0+byte(i*2), packSwapRG(st))
		writeBP(w, bpSwapTable0+byte(i*2+1), packSwapBA(st))
	}
	writeBP(w, bpRas1Iref, packIndOrders(t.IndOrders))

	for pair := 0; pair < MaxTevStages/2; pair++ {
		start := w.Pos()

		var a, b TevStage
		if 2*pair < len(t.Stages) {
			a = t.Stages[2*pair]
		}
		if 2*pair+1 < len(t.Stages) {
			b = t.Stages[2*pair+1]
		}

		writeBP(w, bpTevKSel0+byte(pair*2), packKonstSel(0, 0))
		writeBP(w, bpTevKSel0+byte(pair*2+1), packKonstSel(0, 0))
		writeBP(w, bpTRef0+byte(pair), packTevOrderPair(a, b))
		writeBP(w, bpColorEnv0+byte(pair*2), packColor(a.Color))
		writeBP(w, bpColorEnv0+byte(pair*2+1), packColor(b.Color))
		writeBP(w, bpAlphaEnv0+byte(pair*2), packAlpha(a.Alpha))
		writeBP(w, bpAlphaEnv0+byte(pair*2+1), packAlpha(b.Alpha))
		writeBP(w, bpIndCmd0+byte(pair*2), packIndStage(a.Indirect, a.HasIndirect))
		writeBP(w, bpIndCmd0+byte(pair*2+1), packIndStage(b.Indirect, b.HasIndirect))

		w.PadTo(start + tevStagePairSize)
	}

	w.PadTo(TevDLSize)
	return w.Bytes()
}

// DecodeTevDL parses a TEV display list. numStages selects how many of
// the 16 stage slots are projected into the returned Stages slice;
// padding slots beyond it are consumed but discarded.
func DecodeTevDL(buf []byte, numStages int) (TevDLData, error) {

	if len(buf) < TevDLSize {
		return TevDLData{}, &DecodeError{Reason: "TEV display list shorter than 0x200 bytes"}
	}

	r := rstream.NewReader(buf)
	var t TevDLData

	for i := range t.SwapTables {
		_, _, rg, err := readCommand(r)
		if err != nil {
			return TevDLData{}, err
		}
		_, _, ba, err := readCommand(r)
		if err != nil {
			return TevDLData{}, err
		}
		t.SwapTables[i] = unpackSwapRG(rg, ba)
	}

	_, _, ordersWord, err := readCommand(r)
	if err != nil {
		return TevDLData{}, err
	}
	t.IndOrders = unpackIndOrders(ordersWord)

	for pair := 0; pair < MaxTevStages/2; pair++ {
		start := r.Pos()

		if _, _, _, err := readCommand(r); err != nil { // konst-sel A
			return TevDLData{}, err
		}
		if _, _, _, err := readCommand(r); err != nil { // konst-sel B
			return TevDLData{}, err
		}
		_, _, orderWord, err := readCommand(r)
		if err != nil {
			return TevDLData{}, err
		}
		_, _, colorA, err := readCommand(r)
		if err != nil {
			return TevDLData{}, err
		}
		_, _, colorB, err := readCommand(r)
		if err != nil {
			return TevDLData{}, err
		}
		_, _, alphaA, err := readCommand(r)
		if err != nil {
			return TevDLData{}, err
		}
		_, _, alphaB, err := readCommand(r)
		if err != nil {
			return TevDLData{}, err
		}
		_, _, indA, err := readCommand(r)
		if err != nil {
			return TevDLData{}, err
		}
		_, _, indB, err := readCommand(r)
		if err != nil {
			return TevDLData{}, err
		}

		orderA, orderB := unpackTevOrderPair(orderWord)
		if 2*pair < numStages {
			t.Stages = append(t.Stages, buildTevStage(orderA.TexCoord, orderA.TexMap, orderA.RasOrder, colorA, alphaA, indA))
		}
		if 2*pair+1 < numStages {
			t.Stages = append(t.Stages, buildTevStage(orderB.TexCoord, orderB.TexMap, orderB.RasOrder, colorB, alphaB, indB))
		}

		r.Seek(start + tevStagePairSize)
	}

	return t, nil
}

func buildTevStage(texCoord, texMap, rasOrder uint8, colorWord, alphaWord, indWord uint32) TevStage {

	color := unpackColor(colorWord)
	alpha := unpackAlpha(alphaWord)
	indStage, hasIndirect := unpackIndStage(indWord)

	return TevStage{
		RasOrder:    rasOrder,
		TexMap:      texMap,
		TexCoord:    texCoord,
		RasSwap:     alpha.RasSwap,
		TexSwap:     alpha.TexSwap,
		Color:       color,
		Alpha:       alpha,
		Indirect:    indStage,
		HasIndirect: hasIndirect,
	}
}

package gx

import "math"

// IndMatrix is the host-format 3x2 float indirect texture matrix: 3
// columns (the hardware's IND_MTXA/B/C), each a 2-row vector, mapping
// a 3D input to the 2D (s, t) indirect offset (§3, §4.4).
type IndMatrix [3][2]float32

const indExponentBias = 0x11 // 0x11 == 17

// normalizeExponent repeatedly halves (or doubles) absMax until it
// lies in [0.5, 1), returning the scale-matching exponent. An all-zero
// matrix normalizes to exponent 0 with every coefficient encoding to 0.
func normalizeExponent(absMax float32) (scaled float32, exponent int) {

	if absMax == 0 {
		return 0, 0
	}
	scaled = absMax
	for scaled >= 1 {
		scaled /= 2
		exponent++
	}
	for scaled < 0.5 {
		scaled *= 2
		exponent--
	}
	return scaled, exponent
}

func absMaxOf(m IndMatrix) float32 {

	var max float32
	for _, col := range m {
		for _, v := range col {
			a := v
			if a < 0 {
				a = -a
			}
			if a > max {
				max = a
			}
		}
	}
	return max
}

func clampS11(v int32) int32 {

	if v > 1023 {
		return 1023
	}
	if v < -1024 {
		return -1024
	}
	return v
}

// EncodeIndMatrix normalizes m's absolute maximum into [0.5, 1) by
// repeated halving, yielding a shared 6-bit exponent (biased by
// 0x11), then quantizes each coefficient to an 11-bit signed
// fixed-point value at that scale. It returns the three 24-bit BP
// values ready for writeBP (§4.4).
func EncodeIndMatrix(m IndMatrix) [3]uint32 {

	absMax := absMaxOf(m)
	_, exponent := normalizeExponent(absMax)
	storedExp := uint32(exponent+indExponentBias) & 0x3F
	denom := float32(math.Exp2(float64(exponent)))

	quant := func(v float32) uint32 {
		normalized := v
		if denom != 0 {
			normalized = v / denom
		}
		fixed := clampS11(int32(math.Round(float64(normalized) * 1024)))
		return uint32(fixed) & 0x7FF
	}

	var out [3]uint32
	for col := 0; col < 3; col++ {
		r0 := quant(m[col][0])
		r1 := quant(m[col][1])
		expFrag := (storedExp >> uint(col*2)) & 0x3
		out[col] = r0 | r1<<11 | expFrag<<22
	}
	return out
}

func signExtend11(v uint32) int32 {

	x := int32(v & 0x7FF)
	if x&0x400 != 0 {
		x -= 0x800
	}
	return x
}

// DecodeIndMatrix reverses EncodeIndMatrix. It fails if the
// reassembled 6-bit exponent field, once debiased, falls outside
// [-17, 46] (§4.4, §7) — a bit-extraction invariant that can only be
// violated by a corrupt or truncated write triplet.
func DecodeIndMatrix(words [3]uint32) (IndMatrix, error) {

	var storedExp uint32
	for col := 0; col < 3; col++ {
		frag := (words[col] >> 22) & 0x3
		storedExp |= frag << uint(col*2)
	}
	exponent := int(storedExp) - indExponentBias
	if exponent < -17 || exponent > 46 {
		return IndMatrix{}, &DecodeError{Reason: "indirect matrix exponent out of [-17, 46]"}
	}

	scale := float32(math.Exp2(float64(exponent)))
	var m IndMatrix
	for col := 0; col < 3; col++ {
		r0 := signExtend11(words[col] & 0x7FF)
		r1 := signExtend11((words[col] >> 11) & 0x7FF)
		m[col][0] = float32(r0) / 1024 * scale
		m[col][1] = float32(r1) / 1024 * scale
	}
	return m, nil
}

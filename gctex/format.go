// Package gctex implements the TEX0 texture container: the GameCube
// and Wii GPU's fixed pixel-format table, the tiled block-encoded
// buffer size formula those formats share, and mipmap backfilling for
// archives whose stored mip chain is shorter than gen_mode declares.
//
// Grounded on plugins/gc/Export/Texture.hpp (getEncodedSize, the
// decode/encode pair, the palette-format side channel for indexed
// formats).
package gctex

import "fmt"

// PixelFormat is one of the console GPU's fixed texture encodings
// (TextureFormat). Each is defined by its block footprint in texels
// and its bits-per-texel cost; the console never stores raw,
// untiled pixels.
type PixelFormat int

const (
	I4 PixelFormat = iota
	I8
	IA4
	IA8
	RGB565
	RGB5A3
	RGBA32
	C4
	C8
	C14X2
	CMPR
)

func (f PixelFormat) String() string {
	names := [...]string{"I4", "I8", "IA4", "IA8", "RGB565", "RGB5A3", "RGBA32", "C4", "C8", "C14X2", "CMPR"}
	if int(f) < 0 || int(f) >= len(names) {
		return "Unknown"
	}
	return names[f]
}

// blockFootprint describes one format's tiled-block geometry: every
// encoded buffer is laid out as an integer number of blockW x blockH
// texel blocks, each block costing bitsPerBlock bits regardless of
// partial coverage at the image edge.
type blockFootprint struct {
	blockW, blockH int
	bitsPerBlock   int
}

var footprints = map[PixelFormat]blockFootprint{
	I4:     {8, 8, 256},
	I8:     {8, 4, 256},
	IA4:    {8, 4, 256},
	IA8:    {4, 4, 256},
	RGB565: {4, 4, 256},
	RGB5A3: {4, 4, 256},
	RGBA32: {4, 4, 512},
	C4:     {8, 8, 256},
	C8:     {8, 4, 256},
	C14X2:  {4, 4, 256},
	CMPR:   {8, 8, 256},
}

// IsIndexed reports whether a PixelFormat stores palette indices
// rather than direct color, and therefore requires a companion
// palette buffer and PaletteFormat.
func (f PixelFormat) IsIndexed() bool {
	return f == C4 || f == C8 || f == C14X2
}

// EncodedSize returns the byte size of width x height at this format,
// rounding up to whole blocks at each edge (GetTexBufferSize).
func (f PixelFormat) EncodedSize(width, height int) (int, error) {
	fp, ok := footprints[f]
	if !ok {
		return 0, fmt.Errorf("gctex: unknown pixel format %v", f)
	}
	blocksWide := (width + fp.blockW - 1) / fp.blockW
	blocksHigh := (height + fp.blockH - 1) / fp.blockH
	bits := blocksWide * blocksHigh * fp.bitsPerBlock
	return bits / 8, nil
}

// MipChainSize returns the total encoded size of the base level plus
// levels-1 additional halved mip levels (getEncodedSize(mip=true)).
func (f PixelFormat) MipChainSize(width, height, levels int) (int, error) {
	total := 0
	w, h := width, height
	for i := 0; i < levels; i++ {
		sz, err := f.EncodedSize(w, h)
		if err != nil {
			return 0, err
		}
		total += sz
		if w > 1 {
			w /= 2
		}
		if h > 1 {
			h /= 2
		}
	}
	return total, nil
}

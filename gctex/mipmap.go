package gctex

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// GenerateMipmaps decodes base (an RGBA8 buffer sized width*height*4),
// then repeatedly halves it until want total levels (base included)
// exist or a level of 1x1 is reached, whichever comes first, returning
// one []byte per level in descending-size order.
//
// x/image/draw has no literal box filter; draw.BiLinear is the
// closest real scaler in the pack for a 2x downsample and is used
// here instead of hand-rolling a resampler (see DESIGN.md).
func GenerateMipmaps(base []byte, width, height, want int) ([][]byte, error) {
	if want < 1 {
		return nil, fmt.Errorf("gctex: want must be at least 1")
	}
	if len(base) < width*height*4 {
		return nil, fmt.Errorf("gctex: base buffer too small for %dx%d RGBA8", width, height)
	}

	levels := make([][]byte, 0, want)
	levels = append(levels, base)

	src := rgbaFrom(base, width, height)
	w, h := width, height
	for len(levels) < want && (w > 1 || h > 1) {
		nw, nh := w/2, h/2
		if nw < 1 {
			nw = 1
		}
		if nh < 1 {
			nh = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
		draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
		levels = append(levels, dst.Pix)
		src = dst
		w, h = nw, nh
	}
	return levels, nil
}

func rgbaFrom(buf []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, buf)
	return img
}

// AverageAlpha reports whether every pixel decoded from buf (an RGBA8
// buffer) is fully opaque; used to decide whether a mip chain for an
// indexed-alpha format needs to preserve alpha at all.
func AverageAlpha(buf []byte, width, height int) bool {
	img := rgbaFrom(buf, width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.RGBAAt(x, y)
			if c.A != 0xff {
				return false
			}
		}
	}
	return true
}

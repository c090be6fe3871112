package gctex

import "fmt"

// TEX0 is a decoded GameCube/Wii texture record: the console-format
// encoded buffer plus the metadata needed to decode or re-encode it
// (libcube::Texture, stripped of the editor-facing encoder-selection
// methods that have no byte-format counterpart).
type TEX0 struct {
	Name          string
	Width, Height int
	Format        PixelFormat
	MipmapCount   int // additional levels beyond the base, like getMipmapCount()
	Data          []byte
	PaletteData   []byte
	PaletteFormat PixelFormat
}

// EncodedSize returns the number of bytes Data must hold: the base
// level alone, or the full mip chain when mip is true and more than
// one level is present (getEncodedSize).
func (t *TEX0) EncodedSize(mip bool) (int, error) {
	if mip && t.MipmapCount > 0 {
		return t.Format.MipChainSize(t.Width, t.Height, t.MipmapCount+1)
	}
	return t.Format.EncodedSize(t.Width, t.Height)
}

// DecodedSize returns the byte size of the fully unpacked RGBA8
// buffer decode would produce: 4 bytes per texel, summed over the mip
// chain when mip is requested.
func (t *TEX0) DecodedSize(mip bool) int {
	levels := 1
	if mip && t.MipmapCount > 0 {
		levels = t.MipmapCount + 1
	}
	total := 0
	w, h := t.Width, t.Height
	for i := 0; i < levels; i++ {
		total += w * h * 4
		if w > 1 {
			w /= 2
		}
		if h > 1 {
			h /= 2
		}
	}
	return total
}

// Validate reports whether Data is large enough for the declared
// dimensions, format, and mip count (§7 decode-integrity).
func (t *TEX0) Validate() error {
	want, err := t.EncodedSize(true)
	if err != nil {
		return err
	}
	if len(t.Data) < want {
		return fmt.Errorf("gctex: %q declares %d bytes of %s data across %d mip level(s) but only %d are present",
			t.Name, want, t.Format, t.MipmapCount+1, len(t.Data))
	}
	if t.Format.IsIndexed() && len(t.PaletteData) == 0 {
		return fmt.Errorf("gctex: %q uses indexed format %s but carries no palette data", t.Name, t.Format)
	}
	return nil
}

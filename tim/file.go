package tim

import (
	"image"
	"image/color"
)

// File is a TIM file, a CLUT block and a pixel block.
type File struct {
	Flags  Flags
	CLUT   *CLUT
	Pixels *Pixels
}

// New returns a File for format f.
func New(f Format, clut *CLUT, pixels *Pixels) *File {
	return &File{
		Flags:  NewFlags(f),
		CLUT:   clut,
		Pixels: pixels,
	}
}

// Format returns the pixel mode.
func (f *File) Format() Format {
	return f.Flags.Format()
}

// Tables returns the number of palettes in the CLUT block.
func (f *File) Tables() int {
	if f.CLUT == nil {
		return 0
	}
	return f.CLUT.Tables()
}

// Bounds returns the dimensions of the texture in pixels.
func (f *File) Bounds() image.Rectangle {
	if f.Pixels == nil {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, int(f.Pixels.Header.Width), int(f.Pixels.Header.Height))
}

// Image renders the texture using palette table. The table wraps around the
// number of palettes so stepping through them cycles back to the first.
// Colours with a clear transparency bit are fully transparent.
func (f *File) Image(table int) (*image.NRGBA, error) {
	format := f.Format()
	if !format.HasCLUT() || f.CLUT == nil {
		return nil, ErrUnsupportedFormat
	}
	if f.Pixels == nil {
		return nil, ErrTruncated
	}

	palette := f.CLUT.Table(table)
	if palette == nil {
		return nil, ErrBadIndex
	}

	b := f.Bounds()
	n := b.Dx() * b.Dy()
	if len(f.Pixels.Data) < format.packedLen(n) {
		return nil, ErrTruncated
	}

	m := image.NewNRGBA(b)
	for i := 0; i < n; i++ {
		v := unpackIndex(f.Pixels.Data, format, i)
		if v >= len(palette) {
			return nil, ErrBadIndex
		}
		c := palette[v].NRGBA()
		m.Pix[i*4+0] = c.R
		m.Pix[i*4+1] = c.G
		m.Pix[i*4+2] = c.B
		m.Pix[i*4+3] = c.A
	}

	return m, nil
}

// ColorModel returns palette table as a color.Palette, or ColorModel if
// there is no palette.
func (f *File) ColorModel(table int) color.Model {
	if f.CLUT != nil {
		if t := f.CLUT.Table(table); t != nil {
			return Palette(t)
		}
	}
	return ColorModel
}

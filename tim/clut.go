package tim

import (
	"fmt"
	"image"
	"image/color"
)

// CLUT is the colour lookup table block. It holds Tables() palettes of
// Header.Width colours each, stacked vertically.
type CLUT struct {
	Header BlockHeader
	Colors []Color

	// Padded is set when the source had fewer colours than a single palette
	// and the remaining slots were zero-filled
	Padded bool
}

// rgbAt returns the 8-bit colour channels of a pixel, alpha is ignored
func rgbAt(m image.Image, x, y int) (r, g, b uint8) {
	if nm, ok := m.(*image.NRGBA); ok {
		i := nm.PixOffset(x, y)
		return nm.Pix[i], nm.Pix[i+1], nm.Pix[i+2]
	}
	c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
	return c.R, c.G, c.B
}

// NewCLUT builds a CLUT block from the pixels of m, read in row-major order,
// to be placed at (x, y) in VRAM.
//
// If m has fewer pixels than one palette of format f, a single zero-padded
// palette is built. Otherwise the pixel count must be an exact multiple of
// the palette size and each multiple becomes one palette.
func NewCLUT(m image.Image, f Format, x, y int) (*CLUT, error) {
	n := f.Colors()
	if n == 0 {
		return nil, ErrUnsupportedFormat
	}

	b := m.Bounds()
	total := b.Dx() * b.Dy()

	tables, padded := 1, false
	switch {
	case total < n:
		padded = true
	case total%n != 0:
		return nil, fmt.Errorf("%w: %d colours is not a multiple of %d", ErrAlignment, total, n)
	default:
		tables = total / n
	}

	if err := checkBounds("CLUT", x, y, n, tables); err != nil {
		return nil, err
	}

	colors := make([]Color, n*tables)
	i := 0
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			colors[i] = Quantize(rgbAt(m, px, py))
			i++
		}
	}

	return &CLUT{
		Header: newBlockHeader(len(colors)*2, x, y, n, tables),
		Colors: colors,
		Padded: padded,
	}, nil
}

// Tables returns the number of stacked palettes.
func (c *CLUT) Tables() int {
	return int(c.Header.Height)
}

// Table returns palette i, wrapping around the number of palettes so any
// value of i selects a palette. It returns nil if the block holds no
// complete palette.
func (c *CLUT) Table(i int) []Color {
	tables, w := c.Tables(), int(c.Header.Width)
	if tables == 0 || w == 0 {
		return nil
	}
	i %= tables
	if i < 0 {
		i += tables
	}
	if (i+1)*w > len(c.Colors) {
		return nil
	}
	return c.Colors[i*w : (i+1)*w]
}

package tim

import (
	"fmt"
	"image/color"
)

const (
	u5Mask = 0x1f

	redShift   = 0
	greenShift = 5
	blueShift  = 10
	stpBit     = 1 << 15
)

// Color is a packed 16-bit PlayStation colour, laid out as SBBBBBGGGGGRRRRR.
// It implements the color.Color interface.
type Color uint16

// NewColor packs 5-bit channel values and the transparency bit. Any bits
// above the lower 5 of each channel are ignored.
func NewColor(r, g, b uint8, stp bool) Color {
	c := Color(r&u5Mask)<<redShift | Color(g&u5Mask)<<greenShift | Color(b&u5Mask)<<blueShift
	if stp {
		c |= stpBit
	}
	return c
}

func u8ToU5(v uint8) uint8 {
	return uint8(uint16(v)*31/255) & u5Mask
}

func u5ToU8(v uint8) uint8 {
	return uint8(uint16(v&u5Mask) * 255 / 31)
}

// Quantize converts an 8-bit per channel colour. The transparency bit is
// always set as source images are treated as opaque.
func Quantize(r, g, b uint8) Color {
	return NewColor(u8ToU5(r), u8ToU5(g), u8ToU5(b), true)
}

// R returns the 5-bit red channel.
func (c Color) R() uint8 { return uint8(c>>redShift) & u5Mask }

// G returns the 5-bit green channel.
func (c Color) G() uint8 { return uint8(c>>greenShift) & u5Mask }

// B returns the 5-bit blue channel.
func (c Color) B() uint8 { return uint8(c>>blueShift) & u5Mask }

// STP returns the transparency bit.
func (c Color) STP() bool { return c&stpBit != 0 }

// NRGBA expands the colour to 8 bits per channel. A clear transparency bit
// gives a fully transparent colour.
func (c Color) NRGBA() color.NRGBA {
	n := color.NRGBA{
		R: u5ToU8(c.R()),
		G: u5ToU8(c.G()),
		B: u5ToU8(c.B()),
	}
	if c.STP() {
		n.A = 0xff
	}
	return n
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func (c Color) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", c.R(), c.G(), c.B(), c&stpBit>>15)
}

// ColorModel converts any color.Color to a Color, ignoring alpha.
var ColorModel = color.ModelFunc(colorModel)

func colorModel(c color.Color) color.Color {
	if c, ok := c.(Color); ok {
		return c
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Quantize(n.R, n.G, n.B)
}

// Palette converts colours to a color.Palette.
func Palette(colors []Color) color.Palette {
	p := make(color.Palette, len(colors))
	for i, c := range colors {
		p[i] = c
	}
	return p
}

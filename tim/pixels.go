package tim

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Pixels is the pixel block. Header.Width is the width in pixels, not in
// VRAM units, and Data holds the packed palette indices padded to a multiple
// of 4 bytes.
type Pixels struct {
	Header BlockHeader
	Data   []byte
}

// index maps colours to the lowest palette slot holding them
type index map[Color]int

func newIndex(table []Color) index {
	idx := make(index, len(table))
	for i, c := range table {
		if _, ok := idx[c]; !ok {
			idx[c] = i
		}
	}
	return idx
}

func labOf(c Color) colorful.Color {
	n := c.NRGBA()
	return colorful.Color{R: float64(n.R) / 255, G: float64(n.G) / 255, B: float64(n.B) / 255}
}

// nearest returns the slot perceptually closest to c
func nearest(table []Color, c Color) int {
	want := labOf(c)
	best, bestDist := -1, math.Inf(1)
	for i, t := range table {
		if d := want.DistanceLab(labOf(t)); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func packIndex(b []byte, f Format, i, v int) {
	if f == Format4Bit {
		if i&1 == 0 {
			b[i>>1] = b[i>>1]&0xf0 | byte(v)&0x0f
		} else {
			b[i>>1] = b[i>>1]&0x0f | byte(v)<<4
		}
		return
	}
	b[i] = byte(v)
}

func unpackIndex(b []byte, f Format, i int) int {
	if f == Format4Bit {
		return int(b[i>>1]>>(uint(i&1)<<2)) & 0x0f
	}
	return int(b[i])
}

// NewPixels builds a pixel block from m, to be placed at (x, y) in VRAM.
// Every pixel is quantized and must exactly match a colour in table, which
// should be the first palette of the CLUT. Where a colour appears more than
// once the lowest slot is used.
func NewPixels(m image.Image, f Format, table []Color, x, y int) (*Pixels, error) {
	n := f.Colors()
	if n == 0 {
		return nil, ErrUnsupportedFormat
	}
	if len(table) > n {
		table = table[:n]
	}

	b := m.Bounds()
	w, h := b.Dx(), b.Dy()

	if a := f.widthAlign(); w%a != 0 {
		return nil, fmt.Errorf("%w: must be a multiple of %d (%d provided)", ErrInvalidDimension, a, w)
	}

	if err := checkBounds("pixel", x, y, w, h); err != nil {
		return nil, err
	}

	data := make([]byte, alignUp(f.packedLen(w*h), 4))
	idx := newIndex(table)

	i := 0
	for py := b.Min.Y; py < b.Max.Y; py++ {
		for px := b.Min.X; px < b.Max.X; px++ {
			c := Quantize(rgbAt(m, px, py))
			v, ok := idx[c]
			if !ok {
				return nil, &PaletteMissError{
					X:       px - b.Min.X,
					Y:       py - b.Min.Y,
					Color:   c,
					Nearest: nearest(table, c),
				}
			}
			packIndex(data, f, i, v)
			i++
		}
	}

	return &Pixels{
		Header: newBlockHeader(len(data), x, y, w, h),
		Data:   data,
	}, nil
}

// Index returns the palette index of pixel i, counted in row-major order.
func (p *Pixels) Index(f Format, i int) int {
	return unpackIndex(p.Data, f, i)
}

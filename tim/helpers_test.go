package tim

import (
	"image"
	"image/color"
)

// sourceLevel returns the smallest 8-bit value that quantizes to v
func sourceLevel(v uint8) uint8 {
	return uint8((uint16(v)*255 + 30) / 31)
}

// testColors returns n colours which all quantize to distinct values
func testColors(n int) []color.NRGBA {
	c := make([]color.NRGBA, n)
	for i := range c {
		c[i] = color.NRGBA{
			R: sourceLevel(uint8(i % 32)),
			G: sourceLevel(uint8(i / 32)),
			B: sourceLevel(uint8(31 - i%32)),
			A: 0xff,
		}
	}
	return c
}

// decoded returns c as it reads back from a file
func decoded(c color.NRGBA) color.NRGBA {
	return ColorModel.Convert(c).(Color).NRGBA()
}

func rowImage(w, h int, colors []color.NRGBA) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, c := range colors {
		m.SetNRGBA(i%w, i/w, c)
	}
	return m
}

func indexedImage(w, h int, colors []color.NRGBA, indices []int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, v := range indices {
		m.SetNRGBA(i%w, i/w, colors[v])
	}
	return m
}

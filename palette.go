package timpack

import (
	"errors"
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/timpack/tim"
	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"
)

// GeneratePalette reduces the texture image to at most one palette's worth
// of colours for format f. The palette is written as a single row of pixels
// to palette and the texture, remapped to only use those colours, is written
// to remapped. Both outputs can be given straight to Pack.
func (p *Packer) GeneratePalette(f tim.Format, texture, palette, remapped string) error {
	n := f.Colors()
	if n == 0 {
		return tim.ErrUnsupportedFormat
	}

	m, _, err := Load(texture)
	if err != nil {
		return err
	}
	b := m.Bounds()

	q := quantize.MedianCutQuantizer{}
	cp := q.Quantize(make(color.Palette, 0, n), m)
	if len(cp) == 0 {
		return errors.New("timpack: unable to generate palette")
	}

	// Snap each colour to the nearest representable one so the remapped
	// texture quantizes to exactly the palette entries
	for i, c := range cp {
		cp[i] = tim.ColorModel.Convert(c).(tim.Color).NRGBA()
	}
	p.logger.Printf("generated %d colour palette from %d * %d texture\n", len(cp), b.Dx(), b.Dy())

	pm := image.NewPaletted(b, cp)
	draw.Draw(pm, b, m, b.Min, draw.Src)

	pi := image.NewNRGBA(image.Rect(0, 0, len(cp), 1))
	for i, c := range cp {
		pi.Set(i, 0, c)
	}

	if err := imaging.Save(pi, palette); err != nil {
		return err
	}

	return imaging.Save(pm, remapped)
}

package timpack

import (
	"bufio"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bodgit/timpack/tim"
)

// PackOptions describes the inputs, placement and output of a TIM file.
type PackOptions struct {
	Format tim.Format

	Texture string
	Palette string
	Output  string

	// VRAM coordinates of the pixel and CLUT blocks
	TextureX, TextureY int
	PaletteX, PaletteY int
}

func (p *Packer) loadPalette(file string, f tim.Format, x, y int) (*tim.CLUT, error) {
	m, n, err := Load(file)
	if err != nil {
		return nil, err
	}
	b := m.Bounds()
	p.logger.Printf("loaded %d * %d palette with %d channels\n", b.Dx(), b.Dy(), n)

	clut, err := tim.NewCLUT(m, f, x, y)
	if err != nil {
		return nil, err
	}

	if clut.Padded {
		p.logger.Printf("palette has fewer than %d colours, resulting palette will be padded\n", f.Colors())
	}
	p.logger.Printf("constructing %d palette(s) of %d colours\n", clut.Tables(), f.Colors())

	return clut, nil
}

func (p *Packer) loadTexture(file string, f tim.Format, table []tim.Color, x, y int) (*tim.Pixels, error) {
	m, n, err := Load(file)
	if err != nil {
		return nil, err
	}
	b := m.Bounds()
	p.logger.Printf("loaded %d * %d texture with %d channels\n", b.Dx(), b.Dy(), n)

	pixels, err := tim.NewPixels(m, f, table, x, y)
	if err != nil {
		return nil, err
	}
	p.logger.Printf("allocated %d bytes for the pixel data\n", len(pixels.Data))

	return pixels, nil
}

// Build loads the palette and texture images and returns the TIM file built
// from them. Nothing is written.
func (p *Packer) Build(opts PackOptions) (*tim.File, error) {
	if !opts.Format.HasCLUT() {
		return nil, tim.ErrUnsupportedFormat
	}

	p.logger.Printf("bpp mode: %s, texture: %s, palette: %s\n", opts.Format, opts.Texture, opts.Palette)

	clut, err := p.loadPalette(opts.Palette, opts.Format, opts.PaletteX, opts.PaletteY)
	if err != nil {
		return nil, err
	}

	pixels, err := p.loadTexture(opts.Texture, opts.Format, clut.Table(0), opts.TextureX, opts.TextureY)
	if err != nil {
		return nil, err
	}

	return tim.New(opts.Format, clut, pixels), nil
}

// writeFile writes to a temporary file alongside file and renames it into
// place so a failed write never leaves a partial file behind
func writeFile(file string, f *tim.File) (err error) {
	tmp, err := ioutil.TempFile(filepath.Dir(file), "."+filepath.Base(file)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = tim.Write(w, f); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), file)
}

// Pack builds a TIM file from the options and writes it to opts.Output. On
// any error no output file is created. If the Packer has a registry the
// placement of the new file is recorded and any overlaps are logged.
func (p *Packer) Pack(opts PackOptions) error {
	f, err := p.Build(opts)
	if err != nil {
		return err
	}

	if err := writeFile(opts.Output, f); err != nil {
		return err
	}
	p.logger.Printf("wrote %s\n", opts.Output)

	if p.registry == nil {
		return nil
	}

	if err := p.registry.Register(opts.Output, f); err != nil {
		return err
	}

	overlaps, err := p.registry.Overlaps()
	if err != nil {
		return err
	}
	for _, o := range overlaps {
		p.logger.Printf("VRAM overlap: %s\n", o)
	}

	return nil
}

// Open reads the TIM file at path.
func (p *Packer) Open(path string) (*tim.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p.logger.Printf("reading %s\n", path)

	return tim.Read(bufio.NewReader(f))
}

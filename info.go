package timpack

import (
	"fmt"
	"io"

	"github.com/bodgit/timpack/tim"
)

func describeBlock(w io.Writer, name string, h tim.BlockHeader) {
	fmt.Fprintf(w, "  %s block:\n", name)
	fmt.Fprintf(w, "    size: %d bytes\n", h.Size)
	fmt.Fprintf(w, "    coordinates: (%d, %d)\n", h.X, h.Y)
	fmt.Fprintf(w, "    dimensions: %d * %d\n", h.Width, h.Height)
}

// Describe prints the file and block headers of f.
func Describe(w io.Writer, name string, f *tim.File) {
	fmt.Fprintf(w, "%s:\n", name)
	fmt.Fprintf(w, "  id: %#02x\n", tim.Magic)
	fmt.Fprintf(w, "  mode: %s\n", f.Format())
	fmt.Fprintf(w, "  clut: %t\n", f.Flags.HasCLUT())
	if f.CLUT != nil {
		describeBlock(w, "CLUT", f.CLUT.Header)
		fmt.Fprintf(w, "    palettes: %d\n", f.Tables())
	}
	if f.Pixels != nil {
		describeBlock(w, "pixel", f.Pixels.Header)
	}
}

// Info reads the TIM file at path and describes it to w.
func (p *Packer) Info(w io.Writer, path string) error {
	f, err := p.Open(path)
	if err != nil {
		return err
	}
	Describe(w, path, f)
	return nil
}

package timpack

import (
	"image"
	"image/color"
	"image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/timpack/tim"
	"github.com/stretchr/testify/require"
)

func discard() *log.Logger {
	return log.New(ioutil.Discard, "", 0)
}

// sourceLevel returns the smallest 8-bit value that quantizes to v
func sourceLevel(v int) uint8 {
	return uint8((v*255 + 30) / 31)
}

// testColors returns n colours that all quantize to distinct values
func testColors(n int) []color.NRGBA {
	c := make([]color.NRGBA, n)
	for i := range c {
		c[i] = color.NRGBA{sourceLevel(i % 32), sourceLevel(i / 32), sourceLevel(i % 7), 0xff}
	}
	return c
}

// decodedImage returns m as it reads back from a packed file
func decodedImage(m *image.NRGBA) *image.NRGBA {
	d := image.NewNRGBA(m.Bounds())
	for y := m.Rect.Min.Y; y < m.Rect.Max.Y; y++ {
		for x := m.Rect.Min.X; x < m.Rect.Max.X; x++ {
			d.SetNRGBA(x, y, tim.ColorModel.Convert(m.NRGBAAt(x, y)).(tim.Color).NRGBA())
		}
	}
	return d
}

func rowImage(w, h int, colors []color.NRGBA) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, c := range colors {
		m.SetNRGBA(i%w, i/w, c)
	}
	return m
}

func writePNG(t *testing.T, dir, name string, m image.Image) string {
	t.Helper()

	file := filepath.Join(dir, name)
	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, png.Encode(f, m))
	return file
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()

	infos, err := ioutil.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names
}

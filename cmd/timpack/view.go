package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/timpack"
	"github.com/bodgit/timpack/tim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/urfave/cli/v2"
	"golang.org/x/image/font/basicfont"
)

type viewer struct {
	file  *tim.File
	table int
	image *ebiten.Image

	// ebiten wants premultiplied alpha
	rgba *image.RGBA
}

func newViewer(f *tim.File, table int) (*viewer, error) {
	v := &viewer{
		file: f,
	}
	if err := v.show(table); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *viewer) show(table int) error {
	m, err := v.file.Image(table)
	if err != nil {
		return err
	}
	b := m.Bounds()
	if v.image == nil {
		v.image = ebiten.NewImage(b.Dx(), b.Dy())
		v.rgba = image.NewRGBA(b)
	}
	draw.Draw(v.rgba, b, m, b.Min, draw.Src)
	v.image.WritePixels(v.rgba.Pix)
	v.table = table
	return nil
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if len(inpututil.AppendJustPressedKeys(nil)) > 0 || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if err := v.show((v.table + 1) % v.file.Tables()); err != nil {
			return err
		}
	}

	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	screen.DrawImage(v.image, nil)
	if v.file.Tables() > 1 {
		text.Draw(screen, fmt.Sprintf("%d/%d", v.table+1, v.file.Tables()), basicfont.Face7x13, 2, 12, color.White)
	}
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	b := v.file.Bounds()
	return b.Dx(), b.Dy()
}

func view(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	f, err := timpack.New(nil, newLogger(c)).Open(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	b := f.Bounds()
	if b.Empty() {
		return cli.Exit(errors.New("texture has no pixels"), 1)
	}

	table := c.Int("table")
	if n := f.Tables(); n > 0 {
		table = (table%n + n) % n
	}

	v, err := newViewer(f, table)
	if err != nil {
		return cli.Exit(err, 1)
	}

	scale := c.Int("scale")
	if scale < 1 {
		scale = 1
	}

	ebiten.SetWindowSize(b.Dx()*scale, b.Dy()*scale)
	ebiten.SetWindowTitle("timview - " + c.Args().First())

	if err := ebiten.RunGame(v); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"

	"github.com/bodgit/timpack"
	"github.com/bodgit/timpack/tim"
	"github.com/urfave/cli/v2"
)

const defaultDB = "vram.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func bppFlag() cli.Flag {
	return &cli.IntFlag{
		Name:    "bpp",
		Aliases: []string{"b"},
		Value:   4,
		Usage:   "bits per pixel (4 for 16 colour, 8 for 256 colour)",
	}
}

func coordinate(c *cli.Context, name string) (int, error) {
	v := c.Int(name)
	if v < 0 {
		return 0, fmt.Errorf("--%s must not be negative", name)
	}
	return v, nil
}

// coordinates fills in the VRAM placement, checking the flags in order
func coordinates(c *cli.Context, opts *timpack.PackOptions) error {
	for _, v := range []struct {
		name string
		dst  *int
	}{
		{"texture-x", &opts.TextureX},
		{"texture-y", &opts.TextureY},
		{"palette-x", &opts.PaletteX},
		{"palette-y", &opts.PaletteY},
	} {
		n, err := coordinate(c, v.name)
		if err != nil {
			return err
		}
		*v.dst = n
	}
	return nil
}

func pack(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	format, err := tim.ParseBPP(c.Int("bpp"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	opts := timpack.PackOptions{
		Format:  format,
		Texture: c.String("texture"),
		Palette: c.String("palette"),
		Output:  c.Args().First(),
	}

	if err := coordinates(c, &opts); err != nil {
		return cli.Exit(err, 1)
	}

	var registry *timpack.Registry
	if c.Bool("register") {
		registry, err = timpack.NewRegistry(c.String("db"))
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer registry.Close()
	}

	if err := timpack.New(registry, newLogger(c)).Pack(opts); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func info(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	p := timpack.New(nil, newLogger(c))
	for _, file := range c.Args().Slice() {
		if err := p.Info(os.Stdout, file); err != nil {
			return cli.Exit(err, 1)
		}
	}

	return nil
}

func palette(c *cli.Context) error {
	if c.NArg() < 3 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	format, err := tim.ParseBPP(c.Int("bpp"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := timpack.New(nil, newLogger(c)).GeneratePalette(format, c.Args().Get(0), c.Args().Get(1), c.Args().Get(2)); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func vram(c *cli.Context) error {
	registry, err := timpack.NewRegistry(c.String("db"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer registry.Close()

	for _, file := range c.Args().Slice() {
		if err := registry.Unregister(file); err != nil {
			return cli.Exit(err, 1)
		}
	}

	blocks, err := registry.Blocks()
	if err != nil {
		return cli.Exit(err, 1)
	}
	for _, b := range blocks {
		fmt.Printf("%s\t%s\t%s\t%d,%d\t%d * %d\n", b.Path, b.Format, b.Kind, b.Rect.Min.X, b.Rect.Min.Y, b.Rect.Dx(), b.Rect.Dy())
	}

	overlaps, err := registry.Overlaps()
	if err != nil {
		return cli.Exit(err, 1)
	}
	for _, o := range overlaps {
		fmt.Printf("overlap: %s\n", o)
	}

	if len(overlaps) > 0 {
		return cli.Exit("", 2)
	}

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "timpack"
	app.Usage = "pack texture + palette data into the Sony PlayStation's TIM file format"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TIMPACK_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to VRAM registry",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "pack",
			Usage:       "Pack a texture and palette into a TIM file",
			Description: "Every colour in the texture must appear in the first palette. A palette image with more colours than a single palette is split into several stacked palettes.",
			ArgsUsage:   "OUTPUT_FILE",
			Flags: []cli.Flag{
				bppFlag(),
				&cli.StringFlag{
					Name:     "texture",
					Aliases:  []string{"t"},
					Usage:    "texture file",
					Required: true,
				},
				&cli.StringFlag{
					Name:     "palette",
					Aliases:  []string{"p"},
					Usage:    "palette file",
					Required: true,
				},
				&cli.IntFlag{
					Name:  "texture-x",
					Value: 640,
					Usage: "VRAM x coordinate of the pixel data",
				},
				&cli.IntFlag{
					Name:  "texture-y",
					Value: 0,
					Usage: "VRAM y coordinate of the pixel data",
				},
				&cli.IntFlag{
					Name:  "palette-x",
					Value: 0,
					Usage: "VRAM x coordinate of the palette data",
				},
				&cli.IntFlag{
					Name:  "palette-y",
					Value: 480,
					Usage: "VRAM y coordinate of the palette data",
				},
				&cli.BoolFlag{
					Name:  "register",
					Usage: "record the VRAM placement in the registry",
				},
			},
			Action: pack,
		},
		{
			Name:        "view",
			Usage:       "Display a TIM file",
			Description: "Any key or mouse click switches to the next palette, Escape quits.",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "table",
					Value: 0,
					Usage: "initial palette",
				},
				&cli.IntFlag{
					Name:  "scale",
					Value: 2,
					Usage: "window scale factor",
				},
			},
			Action: view,
		},
		{
			Name:      "info",
			Usage:     "Print the headers of TIM files",
			ArgsUsage: "FILE...",
			Action:    info,
		},
		{
			Name:        "palette",
			Usage:       "Generate a palette from a texture",
			Description: "Reduces the texture to a single palette and writes the palette and the remapped texture, ready for packing.",
			ArgsUsage:   "TEXTURE PALETTE_OUTPUT TEXTURE_OUTPUT",
			Flags: []cli.Flag{
				bppFlag(),
			},
			Action: palette,
		},
		{
			Name:        "vram",
			Usage:       "List registered VRAM placements and overlaps",
			Description: "Any FILE arguments are removed from the registry first.",
			ArgsUsage:   "[FILE...]",
			Action:      vram,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

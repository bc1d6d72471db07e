package main

import (
	"flag"
	"fmt"
	"testing"

	"github.com/bodgit/timpack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newContext(t *testing.T, values map[string]int) *cli.Context {
	t.Helper()

	set := flag.NewFlagSet("pack", flag.ContinueOnError)
	for _, name := range []string{"texture-x", "texture-y", "palette-x", "palette-y"} {
		set.Int(name, 0, "")
	}
	for name, v := range values {
		require.NoError(t, set.Set(name, fmt.Sprint(v)))
	}

	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestCoordinates(t *testing.T) {
	c := newContext(t, map[string]int{
		"texture-x": 640,
		"texture-y": 16,
		"palette-x": 32,
		"palette-y": 480,
	})

	var opts timpack.PackOptions
	require.NoError(t, coordinates(c, &opts))
	assert.Equal(t, 640, opts.TextureX)
	assert.Equal(t, 16, opts.TextureY)
	assert.Equal(t, 32, opts.PaletteX)
	assert.Equal(t, 480, opts.PaletteY)
}

func TestCoordinatesNegative(t *testing.T) {
	c := newContext(t, map[string]int{
		"texture-y": -1,
		"palette-x": -2,
		"palette-y": -3,
	})

	for i := 0; i < 20; i++ {
		var opts timpack.PackOptions
		assert.EqualError(t, coordinates(c, &opts), "--texture-y must not be negative")
	}
}

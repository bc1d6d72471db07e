package timpack

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/bodgit/timpack/tim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()

	r, err := NewRegistry(filepath.Join(t.TempDir(), "vram.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })

	return r
}

func TestRegistry(t *testing.T) {
	r := newRegistry(t)
	fx := newFixture(t, tim.Format4Bit, 16)
	p := New(r, discard())

	a := fx.opts
	a.Output = filepath.Join(fx.dir, "a.tim")
	require.NoError(t, p.Pack(a))

	b := fx.opts
	b.Output = filepath.Join(fx.dir, "b.tim")
	b.TextureX, b.PaletteY = 642, 481
	require.NoError(t, p.Pack(b))

	blocks, err := r.Blocks()
	require.NoError(t, err)
	require.Len(t, blocks, 4)

	assert.Equal(t, "a.tim", filepath.Base(blocks[0].Path))
	assert.Equal(t, kindCLUT, blocks[0].Kind)
	assert.Equal(t, tim.Format4Bit, blocks[0].Format)
	assert.Equal(t, image.Rect(0, 480, 16, 481), blocks[0].Rect)

	// 8 pixels wide at 4 bits per pixel is 2 VRAM units
	assert.Equal(t, kindPixel, blocks[1].Kind)
	assert.Equal(t, image.Rect(640, 0, 642, 4), blocks[1].Rect)

	overlaps, err := r.Overlaps()
	require.NoError(t, err)
	assert.Empty(t, overlaps)

	// Repacking replaces the previous placement
	b.TextureX = 641
	require.NoError(t, p.Pack(b))

	blocks, err = r.Blocks()
	require.NoError(t, err)
	require.Len(t, blocks, 4)

	overlaps, err = r.Overlaps()
	require.NoError(t, err)
	require.Len(t, overlaps, 1)
	assert.Equal(t, kindPixel, overlaps[0].A.Kind)
	assert.Equal(t, "a.tim", filepath.Base(overlaps[0].A.Path))
	assert.Equal(t, "b.tim", filepath.Base(overlaps[0].B.Path))
	assert.Equal(t, image.Rect(641, 0, 643, 4), overlaps[0].B.Rect)

	require.NoError(t, r.Unregister(b.Output))

	blocks, err = r.Blocks()
	require.NoError(t, err)
	assert.Len(t, blocks, 2)
}

func TestRegistry8Bit(t *testing.T) {
	r := newRegistry(t)
	fx := newFixture(t, tim.Format8Bit, 256)

	f, err := New(nil, discard()).Build(fx.opts)
	require.NoError(t, err)
	require.NoError(t, r.Register("c.tim", f))

	blocks, err := r.Blocks()
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, image.Rect(0, 480, 256, 481), blocks[0].Rect)
	assert.Equal(t, image.Rect(640, 0, 644, 4), blocks[1].Rect)
}

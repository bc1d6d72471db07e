package timpack

import (
	"bytes"
	"testing"

	"github.com/bodgit/timpack/tim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfo(t *testing.T) {
	fx := newFixture(t, tim.Format4Bit, 16)
	p := New(nil, discard())
	require.NoError(t, p.Pack(fx.opts))

	b := new(bytes.Buffer)
	require.NoError(t, p.Info(b, fx.opts.Output))

	s := b.String()
	assert.Contains(t, s, "id: 0x10\n")
	assert.Contains(t, s, "mode: 4bpp\n")
	assert.Contains(t, s, "clut: true\n")
	assert.Contains(t, s, "size: 44 bytes\n")
	assert.Contains(t, s, "coordinates: (640, 0)\n")
	assert.Contains(t, s, "dimensions: 8 * 4\n")
	assert.Contains(t, s, "palettes: 1\n")
}

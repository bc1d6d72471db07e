package tim

import (
	"errors"
	"fmt"
)

var (
	ErrAlignment         = errors.New("tim: palette is not correctly aligned")
	ErrBounds            = errors.New("tim: block does not fit within VRAM")
	ErrInvalidDimension  = errors.New("tim: invalid image width")
	ErrPaletteMiss       = errors.New("tim: colour not found in palette")
	ErrBadMagic          = errors.New("tim: not a TIM file")
	ErrUnsupportedFormat = errors.New("tim: unsupported pixel format")
	ErrTruncated         = errors.New("tim: not enough data")
	ErrBadBlockSize      = errors.New("tim: invalid block size")
	ErrBadIndex          = errors.New("tim: palette index out of range")
)

// BoundsError records a block whose placement and dimensions overflow the
// VRAM surface.
type BoundsError struct {
	Block         string
	X, Y          int
	Width, Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("tim: %s block at (%d, %d) with size %d * %d does not fit within %d * %d VRAM", e.Block, e.X, e.Y, e.Width, e.Height, VRAMWidth, VRAMHeight)
}

// Is makes errors.Is(err, ErrBounds) succeed.
func (e *BoundsError) Is(target error) bool {
	return target == ErrBounds
}

// PaletteMissError records the first texture pixel whose quantized colour
// has no exact match in the palette.
type PaletteMissError struct {
	X, Y  int
	Color Color

	// Nearest is the slot closest to Color in the palette. It is only a hint
	// for fixing the source images, the encoder never substitutes it.
	Nearest int
}

func (e *PaletteMissError) Error() string {
	return fmt.Sprintf("tim: colour %v of pixel (%d, %d) not found in palette, nearest is slot %d", e.Color, e.X, e.Y, e.Nearest)
}

// Is makes errors.Is(err, ErrPaletteMiss) succeed.
func (e *PaletteMissError) Is(target error) bool {
	return target == ErrPaletteMiss
}

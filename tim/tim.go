/*
Package tim implements the Sony PlayStation TIM texture format for the
indexed colour modes.

A TIM file is an 8 byte file header, a magic ID of 0x10 followed by a flags
word, and then a CLUT block holding one or more palettes followed by a pixel
block holding the palette indices. Each block starts with a 12 byte header
giving the block size in bytes (header included), the destination coordinates
within the 1024 by 512 VRAM surface and the dimensions of the data.

Colours are stored as packed 16-bit values with 5 bits per channel and a
single transparency bit. In 4-bit mode two pixels share a byte, the even
pixel in the lower nibble and the odd pixel in the upper nibble, and the
palette has 16 colours. In 8-bit mode each pixel is a byte and the palette has
256 colours. A CLUT block may stack several palettes vertically, the pixel
block is always resolved against the first one.

All values are little-endian.
*/
package tim

import (
	"fmt"
)

const (
	// Magic is the ID found at the start of every TIM file
	Magic = 0x10

	// VRAMWidth and VRAMHeight bound the destination coordinates of every
	// block
	VRAMWidth  = 1024
	VRAMHeight = 512

	fileHeaderSize  = 8
	blockHeaderSize = 12

	// Largest data segment a block can describe, the whole of VRAM
	maxBlockData = VRAMWidth * VRAMHeight * 2
)

// Format is the pixel mode stored in the lowest three bits of the flags word.
type Format uint8

const (
	Format4Bit Format = iota
	Format8Bit
	Format15Bit
	Format24Bit
)

var formatNames = [...]string{
	Format4Bit:  "4bpp",
	Format8Bit:  "8bpp",
	Format15Bit: "15bpp",
	Format24Bit: "24bpp",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// HasCLUT reports whether pixels in this format are palette indices.
func (f Format) HasCLUT() bool {
	return f < Format15Bit
}

// Colors returns the number of colours in a single palette, zero for the
// direct colour modes.
func (f Format) Colors() int {
	switch f {
	case Format4Bit:
		return 16
	case Format8Bit:
		return 256
	}
	return 0
}

// widthAlign is the multiple the texture width must be so that each row
// fills whole 16-bit VRAM units
func (f Format) widthAlign() int {
	if f == Format4Bit {
		return 4
	}
	return 2
}

// packedLen is the number of bytes needed for n palette indices
func (f Format) packedLen(n int) int {
	if f == Format4Bit {
		return (n + 1) >> 1
	}
	return n
}

// ParseBPP maps a bits per pixel value, 4 or 8, to the matching format.
func ParseBPP(bpp int) (Format, error) {
	switch bpp {
	case 4:
		return Format4Bit, nil
	case 8:
		return Format8Bit, nil
	case 15, 16:
		return Format15Bit, ErrUnsupportedFormat
	case 24:
		return Format24Bit, ErrUnsupportedFormat
	}
	return 0, fmt.Errorf("tim: invalid bits per pixel %d, expected 4 or 8", bpp)
}

// Flags is the second word of the file header. Bits 0-2 hold the Format and
// bit 3 is set when the file carries a CLUT block.
type Flags uint32

const (
	flagsModeMask = 0x7
	flagsCLUT     = 1 << 3
)

// NewFlags returns the flags word for the given format.
func NewFlags(f Format) Flags {
	fl := Flags(f) & flagsModeMask
	if f.HasCLUT() {
		fl |= flagsCLUT
	}
	return fl
}

// Format returns the pixel mode.
func (fl Flags) Format() Format {
	return Format(fl & flagsModeMask)
}

// HasCLUT reports whether the CLUT bit is set.
func (fl Flags) HasCLUT() bool {
	return fl&flagsCLUT != 0
}

type fileHeader struct {
	ID    uint32
	Flags Flags
}

// BlockHeader prefixes both the CLUT and pixel blocks.
type BlockHeader struct {
	// Size of the block in bytes, including this header
	Size uint32

	// Destination coordinates within VRAM
	X, Y uint16

	// Dimensions of the data segment
	Width, Height uint16
}

func newBlockHeader(dataSize, x, y, w, h int) BlockHeader {
	return BlockHeader{
		Size:   uint32(blockHeaderSize + dataSize),
		X:      uint16(x),
		Y:      uint16(y),
		Width:  uint16(w),
		Height: uint16(h),
	}
}

// DataSize returns the size in bytes of the data segment following the
// header.
func (h BlockHeader) DataSize() int {
	if h.Size < blockHeaderSize {
		return 0
	}
	return int(h.Size) - blockHeaderSize
}

func alignUp(x, y int) int {
	if m := x % y; m != 0 {
		return x + y - m
	}
	return x
}

func checkBounds(block string, x, y, w, h int) error {
	if x < 0 || y < 0 || x+w > VRAMWidth || y+h > VRAMHeight {
		return &BoundsError{Block: block, X: x, Y: y, Width: w, Height: h}
	}
	return nil
}

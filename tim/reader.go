package tim

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"
)

func init() {
	image.RegisterFormat("tim", "\x10\x00\x00\x00", Decode, DecodeConfig)
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: %v", ErrTruncated, io.ErrUnexpectedEOF)
	}
	return err
}

func readBlockHeader(r io.Reader) (BlockHeader, error) {
	var tmp [blockHeaderSize]byte
	if err := readFull(r, tmp[:]); err != nil {
		return BlockHeader{}, err
	}

	h := BlockHeader{
		Size:   binary.LittleEndian.Uint32(tmp[0:]),
		X:      binary.LittleEndian.Uint16(tmp[4:]),
		Y:      binary.LittleEndian.Uint16(tmp[6:]),
		Width:  binary.LittleEndian.Uint16(tmp[8:]),
		Height: binary.LittleEndian.Uint16(tmp[10:]),
	}

	if h.Size < blockHeaderSize || h.DataSize() > maxBlockData {
		return BlockHeader{}, fmt.Errorf("%w: %d bytes", ErrBadBlockSize, h.Size)
	}

	return h, nil
}

func readBlock(r io.Reader) (BlockHeader, []byte, error) {
	h, err := readBlockHeader(r)
	if err != nil {
		return BlockHeader{}, nil, err
	}

	b := make([]byte, h.DataSize())
	if err := readFull(r, b); err != nil {
		return BlockHeader{}, nil, err
	}

	return h, b, nil
}

// Read reads a TIM file from r. The magic ID is checked before anything else
// is read or allocated.
func Read(r io.Reader) (*File, error) {
	var tmp [fileHeaderSize]byte
	if err := readFull(r, tmp[:]); err != nil {
		return nil, err
	}

	if binary.LittleEndian.Uint32(tmp[0:]) != Magic {
		return nil, ErrBadMagic
	}

	f := &File{
		Flags: Flags(binary.LittleEndian.Uint32(tmp[4:])),
	}

	if f.Flags.HasCLUT() {
		h, b, err := readBlock(r)
		if err != nil {
			return nil, err
		}

		if len(b)%2 != 0 {
			return nil, fmt.Errorf("%w: odd CLUT length %d", ErrBadBlockSize, len(b))
		}

		colors := make([]Color, len(b)/2)
		for i := range colors {
			colors[i] = Color(binary.LittleEndian.Uint16(b[i*2:]))
		}

		f.CLUT = &CLUT{
			Header: h,
			Colors: colors,
		}
	}

	h, b, err := readBlock(r)
	if err != nil {
		return nil, err
	}

	f.Pixels = &Pixels{
		Header: h,
		Data:   b,
	}

	return f, nil
}

// UnmarshalBinary decodes the file from binary form.
func (f *File) UnmarshalBinary(b []byte) error {
	dup, err := Read(bytes.NewReader(b))
	if err != nil {
		return err
	}
	*f = *dup
	return nil
}

// Decode reads a TIM file from r and returns it as an image.Image rendered
// with the first palette.
func Decode(r io.Reader) (image.Image, error) {
	f, err := Read(r)
	if err != nil {
		return nil, err
	}
	return f.Image(0)
}

// DecodeConfig returns the color model and dimensions of a TIM file.
func DecodeConfig(r io.Reader) (image.Config, error) {
	f, err := Read(r)
	if err != nil {
		return image.Config{}, err
	}
	b := f.Bounds()
	return image.Config{
		ColorModel: f.ColorModel(0),
		Width:      b.Dx(),
		Height:     b.Dy(),
	}, nil
}

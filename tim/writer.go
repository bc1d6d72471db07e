package tim

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

func writeBlock(w io.Writer, h BlockHeader, data interface{}, size int) error {
	if h.Size < blockHeaderSize || h.DataSize() != size {
		return ErrBadBlockSize
	}
	if err := binary.Write(w, binary.LittleEndian, &h); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

// Write writes f to w. The file header is followed by the CLUT block, if the
// flags say there is one, and then the pixel block. Nothing is written
// beyond the declared size of each block.
func Write(w io.Writer, f *File) error {
	if f.Pixels == nil {
		return errors.New("tim: missing pixel block")
	}

	if err := binary.Write(w, binary.LittleEndian, fileHeader{ID: Magic, Flags: f.Flags}); err != nil {
		return err
	}

	if f.Flags.HasCLUT() {
		if f.CLUT == nil {
			return errors.New("tim: missing CLUT block")
		}
		if err := writeBlock(w, f.CLUT.Header, f.CLUT.Colors, len(f.CLUT.Colors)*2); err != nil {
			return err
		}
	}

	return writeBlock(w, f.Pixels.Header, f.Pixels.Data, len(f.Pixels.Data))
}

// MarshalBinary encodes the file into binary form and returns the result.
func (f *File) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	if err := Write(b, f); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

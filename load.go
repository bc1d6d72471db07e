package timpack

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var errTooFewChannels = errors.New("image must be RGB or RGBA")

// ImageLoadError is returned when a source image cannot be read or decoded.
type ImageLoadError struct {
	Path string
	Err  error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("timpack: unable to load %q: %v", e.Path, e.Err)
}

func (e *ImageLoadError) Unwrap() error {
	return e.Err
}

func channels(m image.Image) int {
	switch m.(type) {
	case *image.Gray, *image.Gray16, *image.Alpha, *image.Alpha16:
		return 1
	}
	if o, ok := m.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

// Load decodes the image at path and returns it as non-premultiplied RGBA
// along with the number of channels in the source, 3 or 4.
func Load(path string) (*image.NRGBA, int, error) {
	m, err := imaging.Open(path)
	if err != nil {
		return nil, 0, &ImageLoadError{Path: path, Err: err}
	}

	n := channels(m)
	if n < 3 {
		return nil, 0, &ImageLoadError{Path: path, Err: errTooFewChannels}
	}

	return imaging.Clone(m), n, nil
}

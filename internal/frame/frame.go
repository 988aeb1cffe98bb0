// Package frame models camera frames handed to the processor and converts
// their pixel buffers into decoded bitmaps.
package frame

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"time"

	"github.com/MeKo-Tech/textframe/internal/orientation"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// PixelFormat describes the layout of Buffer.Data.
type PixelFormat int

const (
	// Encoded holds a complete image file (PNG, JPEG, BMP, TIFF or WebP).
	Encoded PixelFormat = iota
	RGBA
	BGRA
	Gray
)

var formatNames = [...]string{
	Encoded: "encoded",
	RGBA:    "rgba",
	BGRA:    "bgra",
	Gray:    "gray",
}

func (p PixelFormat) String() string {
	if p < 0 || int(p) >= len(formatNames) {
		return fmt.Sprintf("format(%d)", int(p))
	}
	return formatNames[p]
}

// ParsePixelFormat maps a format name to a PixelFormat.
func ParsePixelFormat(s string) (PixelFormat, error) {
	for i, name := range formatNames {
		if name == s {
			return PixelFormat(i), nil
		}
	}
	return Encoded, fmt.Errorf("unknown pixel format %q", s)
}

func (p PixelFormat) bytesPerPixel() int {
	switch p {
	case RGBA, BGRA:
		return 4
	case Gray:
		return 1
	default:
		return 0
	}
}

// Buffer is the pixel payload of a frame. Width, Height and Stride are only
// used for raw formats; a zero Stride means tightly packed rows.
type Buffer struct {
	Data   []byte
	Format PixelFormat
	Width  int
	Height int
	Stride int
}

// Frame is one captured image together with its sensor orientation. A frame
// whose Buffer is nil has no retrievable pixel data.
type Frame struct {
	Buffer      *Buffer
	Orientation orientation.Orientation
	Timestamp   time.Time
}

// ConversionError reports a failure while turning a buffer into a bitmap.
type ConversionError struct {
	Operation string
	Err       error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("frame %s: %v", e.Operation, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// ErrEmptyBuffer is returned when a buffer carries no bytes.
var ErrEmptyBuffer = errors.New("empty pixel buffer")

// Bitmap decodes the buffer into an image.
func (b *Buffer) Bitmap() (image.Image, error) {
	if b == nil || len(b.Data) == 0 {
		return nil, &ConversionError{Operation: "decode", Err: ErrEmptyBuffer}
	}
	if b.Format == Encoded {
		img, _, err := image.Decode(newReader(b.Data))
		if err != nil {
			return nil, &ConversionError{Operation: "decode", Err: err}
		}
		return img, nil
	}
	return b.raw()
}

func (b *Buffer) raw() (image.Image, error) {
	bpp := b.Format.bytesPerPixel()
	if bpp == 0 {
		return nil, &ConversionError{Operation: "wrap", Err: fmt.Errorf("unsupported pixel format %s", b.Format)}
	}
	if b.Width <= 0 || b.Height <= 0 {
		return nil, &ConversionError{Operation: "wrap", Err: fmt.Errorf("invalid dimensions %dx%d", b.Width, b.Height)}
	}
	if b.Width > math.MaxInt/bpp {
		return nil, &ConversionError{Operation: "wrap", Err: fmt.Errorf("width %d overflows row size", b.Width)}
	}
	rowBytes := b.Width * bpp
	stride := b.Stride
	if stride == 0 {
		stride = rowBytes
	}
	if stride < rowBytes {
		return nil, &ConversionError{Operation: "wrap", Err: fmt.Errorf("stride %d too small for width %d", stride, b.Width)}
	}
	if b.Height > 1 && stride > (math.MaxInt-rowBytes)/(b.Height-1) {
		return nil, &ConversionError{Operation: "wrap", Err: fmt.Errorf("dimensions %dx%d overflow buffer size", b.Width, b.Height)}
	}
	need := stride*(b.Height-1) + rowBytes
	if len(b.Data) < need {
		return nil, &ConversionError{
			Operation: "wrap",
			Err:       fmt.Errorf("buffer too short: %d bytes < %d", len(b.Data), need),
		}
	}

	rect := image.Rect(0, 0, b.Width, b.Height)
	switch b.Format {
	case Gray:
		img := image.NewGray(rect)
		for y := 0; y < b.Height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+b.Width], b.Data[y*stride:])
		}
		return img, nil
	default:
		img := image.NewNRGBA(rect)
		for y := 0; y < b.Height; y++ {
			row := b.Data[y*stride : y*stride+b.Width*4]
			for x := 0; x < b.Width; x++ {
				p := row[x*4 : x*4+4]
				c := color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
				if b.Format == BGRA {
					c.R, c.B = p[2], p[0]
				}
				img.SetNRGBA(x, y, c)
			}
		}
		return img, nil
	}
}

package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"testing"

	"github.com/MeKo-Tech/textframe/internal/frame"
	"github.com/MeKo-Tech/textframe/internal/orientation"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ImageSize represents frame dimensions.
type ImageSize struct {
	Width  int
	Height int
}

var (
	SmallSize     = ImageSize{320, 240}
	PortraitSize  = ImageSize{240, 320}
	LandscapeSize = ImageSize{640, 480}
)

// TextImageConfig holds configuration for generating synthetic frames.
type TextImageConfig struct {
	Text       string
	Size       ImageSize
	Background color.Color
	Foreground color.Color
	FontFace   font.Face
	// Orientation rotates the rendered image as a sensor in that orientation
	// would deliver it.
	Orientation orientation.Orientation
}

// DefaultTextImageConfig returns a default configuration.
func DefaultTextImageConfig() TextImageConfig {
	return TextImageConfig{
		Text:        "Sample Text",
		Size:        SmallSize,
		Background:  color.White,
		Foreground:  color.Black,
		FontFace:    basicfont.Face7x13,
		Orientation: orientation.Up,
	}
}

// GenerateTextImage renders centered text and applies the inverse of the
// upright transform for the configured orientation.
func GenerateTextImage(config TextImageConfig) *image.NRGBA {
	img := image.NewRGBA(image.Rect(0, 0, config.Size.Width, config.Size.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{config.Background}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{config.Foreground},
		Face: config.FontFace,
	}
	textWidth := font.MeasureString(config.FontFace, config.Text).Ceil()
	textHeight := config.FontFace.Metrics().Height.Ceil()
	drawer.Dot = fixed.P((config.Size.Width-textWidth)/2, (config.Size.Height+textHeight)/2)
	drawer.DrawString(config.Text)

	return sensorView(img, config.Orientation)
}

// sensorView undoes orientation.Upright so that Upright(sensorView(img, o), o)
// reproduces img.
func sensorView(img image.Image, o orientation.Orientation) *image.NRGBA {
	switch o {
	case orientation.Down:
		return imaging.Rotate180(img)
	case orientation.Left:
		return imaging.Rotate270(img)
	case orientation.Right:
		return imaging.Rotate90(img)
	case orientation.UpMirrored:
		return imaging.FlipH(img)
	case orientation.DownMirrored:
		return imaging.FlipV(img)
	case orientation.LeftMirrored:
		return imaging.Transpose(img)
	case orientation.RightMirrored:
		return imaging.Transverse(img)
	default:
		return imaging.Clone(img)
	}
}

// MarkerImage returns a white image with a red pixel in the top-left corner,
// used to check which transform reached the engine.
func MarkerImage(width, height int) *image.NRGBA {
	img := imaging.New(width, height, color.White)
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	return img
}

// MarkerCorner reports the corner of img holding the red marker: "top-left",
// "top-right", "bottom-left", "bottom-right" or "" when none does.
func MarkerCorner(img image.Image) string {
	b := img.Bounds()
	corners := map[string]image.Point{
		"top-left":     {b.Min.X, b.Min.Y},
		"top-right":    {b.Max.X - 1, b.Min.Y},
		"bottom-left":  {b.Min.X, b.Max.Y - 1},
		"bottom-right": {b.Max.X - 1, b.Max.Y - 1},
	}
	for name, p := range corners {
		r, g, _, _ := img.At(p.X, p.Y).RGBA()
		if r == 0xffff && g == 0 {
			return name
		}
	}
	return ""
}

// EncodePNG encodes img as PNG.
func EncodePNG(t testing.TB, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img), "Failed to encode PNG image")
	return buf.Bytes()
}

// EncodedFrame wraps img as a PNG-encoded frame.
func EncodedFrame(t testing.TB, img image.Image, o orientation.Orientation) *frame.Frame {
	t.Helper()
	return frame.FromBytes(EncodePNG(t, img), o)
}

// BGRAFrame wraps img as a raw BGRA frame the way camera sources deliver it.
func BGRAFrame(img image.Image, o orientation.Orientation) *frame.Frame {
	src := imaging.Clone(img)
	b := src.Bounds()
	data := make([]byte, len(src.Pix))
	for i := 0; i < len(src.Pix); i += 4 {
		data[i], data[i+1], data[i+2], data[i+3] = src.Pix[i+2], src.Pix[i+1], src.Pix[i], src.Pix[i+3]
	}
	return &frame.Frame{
		Buffer: &frame.Buffer{
			Data:   data,
			Format: frame.BGRA,
			Width:  b.Dx(),
			Height: b.Dy(),
			Stride: src.Stride,
		},
		Orientation: o,
	}
}

package frame

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MeKo-Tech/textframe/internal/orientation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBitmap_Encoded(t *testing.T) {
	b := &Buffer{Data: encodePNG(t, 6, 4)}
	img, err := b.Bitmap()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 4), img.Bounds())

	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestBitmap_Raw(t *testing.T) {
	t.Run("rgba", func(t *testing.T) {
		b := &Buffer{Data: []byte{1, 2, 3, 255, 4, 5, 6, 255}, Format: RGBA, Width: 2, Height: 1}
		img, err := b.Bitmap()
		require.NoError(t, err)
		assert.Equal(t, color.NRGBA{R: 4, G: 5, B: 6, A: 255}, img.At(1, 0))
	})

	t.Run("bgra swaps red and blue", func(t *testing.T) {
		b := &Buffer{Data: []byte{10, 20, 30, 255}, Format: BGRA, Width: 1, Height: 1}
		img, err := b.Bitmap()
		require.NoError(t, err)
		assert.Equal(t, color.NRGBA{R: 30, G: 20, B: 10, A: 255}, img.At(0, 0))
	})

	t.Run("gray with padded stride", func(t *testing.T) {
		b := &Buffer{Data: []byte{7, 8, 0, 0, 9, 10}, Format: Gray, Width: 2, Height: 2, Stride: 4}
		img, err := b.Bitmap()
		require.NoError(t, err)
		assert.Equal(t, color.Gray{Y: 9}, img.At(0, 1))
		assert.Equal(t, color.Gray{Y: 10}, img.At(1, 1))
	})
}

func TestBitmap_Errors(t *testing.T) {
	var nilBuf *Buffer
	tests := map[string]*Buffer{
		"nil buffer":      nilBuf,
		"empty data":      {Format: Encoded},
		"garbage":         {Data: []byte("not an image")},
		"short raw":       {Data: []byte{1, 2, 3}, Format: RGBA, Width: 1, Height: 1},
		"zero dimensions": {Data: []byte{1}, Format: Gray},
		"small stride":    {Data: make([]byte, 16), Format: RGBA, Width: 2, Height: 2, Stride: 4},
		"unknown format":  {Data: []byte{1}, Format: PixelFormat(42), Width: 1, Height: 1},
		"row overflow":    {Data: []byte{1, 2, 3, 4}, Format: BGRA, Width: math.MaxInt / 2, Height: 1},
		"height overflow": {Data: []byte{1, 2, 3, 4}, Format: RGBA, Width: 1, Height: math.MaxInt / 2},
		"stride overflow": {Data: []byte{1, 2, 3, 4}, Format: Gray, Width: 1, Height: 3, Stride: math.MaxInt/2 + 1},
	}
	for name, b := range tests {
		t.Run(name, func(t *testing.T) {
			img, err := b.Bitmap()
			assert.Nil(t, img)
			var convErr *ConversionError
			require.ErrorAs(t, err, &convErr)
		})
	}
}

func TestParsePixelFormat(t *testing.T) {
	f, err := ParsePixelFormat("bgra")
	require.NoError(t, err)
	assert.Equal(t, BGRA, f)
	assert.Equal(t, "bgra", f.String())

	_, err = ParsePixelFormat("yuv")
	require.Error(t, err)
}

func TestRead(t *testing.T) {
	data := encodePNG(t, 2, 2)

	f, err := Read(bytes.NewReader(data), orientation.Right, 0)
	require.NoError(t, err)
	assert.Equal(t, orientation.Right, f.Orientation)
	assert.Equal(t, data, f.Buffer.Data)
	assert.False(t, f.Timestamp.IsZero())

	_, err = Read(strings.NewReader("0123456789"), orientation.Up, 4)
	require.ErrorIs(t, err, ErrTooLarge)

	_, err = Read(strings.NewReader("0123"), orientation.Up, 4)
	require.NoError(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 3, 3), 0o600))

	f, err := Load(path, orientation.Down)
	require.NoError(t, err)
	img, err := f.Buffer.Bitmap()
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())

	_, err = Load("", orientation.Up)
	require.Error(t, err)
	_, err = Load(filepath.Join(dir, "frame.gif"), orientation.Up)
	require.ErrorContains(t, err, "unsupported format")
	_, err = Load(filepath.Join(dir, "missing.png"), orientation.Up)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("a.WEBP"))
	assert.True(t, IsSupported("a.tiff"))
	assert.False(t, IsSupported("a.pdf"))
}

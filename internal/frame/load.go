package frame

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MeKo-Tech/textframe/internal/orientation"
)

// SupportedExtensions lists the file extensions Load accepts.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff", ".webp"}

// IsSupported reports whether path has a supported image extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// ErrTooLarge is returned when a payload exceeds the configured limit.
var ErrTooLarge = errors.New("frame exceeds size limit")

// FromBytes wraps an encoded image payload in a frame. The data is not
// decoded until the frame is processed.
func FromBytes(data []byte, o orientation.Orientation) *Frame {
	return &Frame{
		Buffer:      &Buffer{Data: data, Format: Encoded},
		Orientation: o,
		Timestamp:   time.Now(),
	}
}

// Read reads an encoded frame from r, refusing payloads larger than maxBytes
// when maxBytes is positive.
func Read(r io.Reader, o orientation.Orientation, maxBytes int64) (*Frame, error) {
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read frame: %w", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxBytes)
	}
	return FromBytes(data, o), nil
}

// Load reads an image file into a frame.
func Load(path string, o orientation.Orientation) (*Frame, error) {
	if path == "" {
		return nil, &ConversionError{Operation: "load", Err: errors.New("empty path")}
	}
	if !IsSupported(path) {
		return nil, &ConversionError{Operation: "load", Err: fmt.Errorf("unsupported format: %s", filepath.Ext(path))}
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: reading a user-provided image path is expected
	if err != nil {
		return nil, &ConversionError{Operation: "load", Err: err}
	}
	return FromBytes(data, o), nil
}

func newReader(data []byte) io.Reader { return bytes.NewReader(data) }

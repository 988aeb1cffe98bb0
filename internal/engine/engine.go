// Package engine defines the text-detection engine consumed by the frame
// processor and the backends that implement it.
//
// An Engine is constructed once at process start and shared by every frame.
// Implementations keep no per-call state, so no teardown is required.
//
// The Tesseract backend needs CGO and is only linked with the build tag
// `tesseract`:
//
//	go build -tags=tesseract ./...
package engine

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

// Backend names accepted by New.
const (
	BackendTesseract = "tesseract"
	BackendReplay    = "replay"
)

// ErrNoBackend is returned when the requested backend was not linked into
// the binary.
var ErrNoBackend = errors.New("engine: tesseract backend not linked; build with -tags=tesseract or use the replay backend")

// Engine runs text detection on a single upright image.
type Engine interface {
	Name() string
	Recognize(img image.Image) (*Text, error)
}

// Config selects and configures a backend.
type Config struct {
	Backend string
	// Languages lists Tesseract language packs, e.g. "eng" or "deu".
	Languages      []string
	TessdataPrefix string
	PageSegMode    int
	Whitelist      string
	// ReplayFile is a YAML or JSON document with recorded detector output.
	ReplayFile string
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		Backend:     BackendTesseract,
		Languages:   []string{"eng"},
		PageSegMode: 3,
	}
}

// New constructs the engine selected by cfg.Backend.
func New(cfg Config) (Engine, error) {
	switch strings.ToLower(cfg.Backend) {
	case BackendTesseract, "":
		return newTesseract(cfg)
	case BackendReplay:
		return NewReplay(cfg.ReplayFile)
	default:
		return nil, fmt.Errorf("unknown engine backend %q", cfg.Backend)
	}
}

// Func adapts a plain function to the Engine interface.
type Func func(img image.Image) (*Text, error)

// Name implements Engine.
func (f Func) Name() string { return "func" }

// Recognize implements Engine.
func (f Func) Recognize(img image.Image) (*Text, error) { return f(img) }

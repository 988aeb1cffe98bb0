// Package support holds the step definitions of the frame feature suite.
package support

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"

	"github.com/MeKo-Tech/textframe/internal/frame"
	"github.com/MeKo-Tech/textframe/internal/processor"
	"github.com/MeKo-Tech/textframe/internal/testutil"
)

// TestContext holds the state of one scenario.
type TestContext struct {
	Engine *testutil.RecordingEngine

	// Frame under test
	FrameData   []byte
	Frame       *frame.Frame
	Args        map[string]any
	LastResult  map[string]any
	LastLogs    bytes.Buffer
	Processed   bool
	HTTPServer  *HTTPTestServerWrapper
	LastStatus  int
	LastBody    string
	LastHeaders map[string]string
}

// NewTestContext creates a new test context.
func NewTestContext() *TestContext {
	return &TestContext{
		Engine: &testutil.RecordingEngine{Result: testutil.SingleBlockText()},
		Args:   map[string]any{},
	}
}

// Cleanup releases scenario resources.
func (testCtx *TestContext) Cleanup() error {
	if testCtx.HTTPServer != nil {
		testCtx.HTTPServer.Close()
		testCtx.HTTPServer = nil
	}
	return nil
}

func (testCtx *TestContext) newProcessor() (*processor.Processor, error) {
	logger := slog.New(slog.NewJSONHandler(&testCtx.LastLogs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return processor.New(testCtx.Engine, processor.WithLogger(logger))
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

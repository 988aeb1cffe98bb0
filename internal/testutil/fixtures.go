package testutil

import (
	"image"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/MeKo-Tech/textframe/internal/engine"
	"github.com/stretchr/testify/require"
)

func rect(minX, minY, maxX, maxY float64) *engine.Rect {
	return &engine.Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

func corners(r *engine.Rect) []any {
	return []any{
		engine.Point{X: r.MinX, Y: r.MinY},
		engine.Point{X: r.MaxX, Y: r.MinY},
		engine.Point{X: r.MaxX, Y: r.MaxY},
		engine.Point{X: r.MinX, Y: r.MaxY},
	}
}

// SingleBlockText returns one block with one line and two elements, all with
// valid geometry and an English language tag.
func SingleBlockText() *engine.Text {
	hello := rect(10, 20, 50, 40)
	world := rect(60, 20, 110, 40)
	line := rect(10, 20, 110, 40)
	return &engine.Text{
		Text: "Hello world",
		Blocks: []engine.Block{{
			Text:                "Hello world",
			RecognizedLanguages: []engine.Language{{Code: "en"}},
			CornerPoints:        corners(line),
			Frame:               line,
			Lines: []engine.Line{{
				Text:                "Hello world",
				RecognizedLanguages: []engine.Language{{Code: "en"}},
				CornerPoints:        corners(line),
				Frame:               line,
				Elements: []engine.Element{
					{Text: "Hello", CornerPoints: corners(hello), Frame: hello},
					{Text: "world", CornerPoints: corners(world), Frame: world},
				},
			}},
		}},
	}
}

// DefectiveText returns a result whose line has a broken third corner point
// and a language entry without a code.
func DefectiveText() *engine.Text {
	text := SingleBlockText()
	line := &text.Blocks[0].Lines[0]
	line.CornerPoints[2] = "broken"
	line.RecognizedLanguages = []engine.Language{{Code: "en"}, {}}
	return text
}

// SingleBlockReplay is SingleBlockText as a replay document.
const SingleBlockReplay = `text: Hello world
blocks:
  - text: Hello world
    languages: [en]
    frame: {min_x: 10, min_y: 20, max_x: 110, max_y: 40}
    corner_points: [[10, 20], [110, 20], [110, 40], [10, 40]]
    lines:
      - text: Hello world
        languages: [en]
        frame: {min_x: 10, min_y: 20, max_x: 110, max_y: 40}
        corner_points: [[10, 20], [110, 20], [110, 40], [10, 40]]
        elements:
          - text: Hello
            frame: {min_x: 10, min_y: 20, max_x: 50, max_y: 40}
            corner_points: [[10, 20], [50, 20], [50, 40], [10, 40]]
          - text: world
            frame: {min_x: 60, min_y: 20, max_x: 110, max_y: 40}
            corner_points: [[60, 20], [110, 20], [110, 40], [60, 40]]
`

// WriteReplay writes a replay document into a temporary directory and
// returns its path.
func WriteReplay(t testing.TB, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "replay.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}

// RecordingEngine returns a canned result and remembers every image it saw.
type RecordingEngine struct {
	Result *engine.Text
	Err    error

	mu     sync.Mutex
	images []image.Image
}

// Name implements engine.Engine.
func (e *RecordingEngine) Name() string { return "recording" }

// Recognize implements engine.Engine.
func (e *RecordingEngine) Recognize(img image.Image) (*engine.Text, error) {
	e.mu.Lock()
	e.images = append(e.images, img)
	e.mu.Unlock()
	if e.Err != nil {
		return nil, e.Err
	}
	return e.Result, nil
}

// Images returns the images passed to Recognize so far.
func (e *RecordingEngine) Images() []image.Image {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]image.Image, len(e.images))
	copy(out, e.images)
	return out
}

// Calls returns the number of Recognize calls.
func (e *RecordingEngine) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.images)
}

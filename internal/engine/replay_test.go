package engine

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const replayFixture = `
text: "Hello world"
blocks:
  - text: "Hello world"
    languages: [en, null]
    frame: {min_x: 10, min_y: 20, max_x: 50, max_y: 40}
    corner_points: [[10, 20], [50, 20], [50, 40, 1], [10, 40]]
    lines:
      - text: "Hello world"
        languages: [en]
        frame: {min_x: 10, min_y: 20, max_x: 50, max_y: 40}
        elements:
          - text: Hello
            corner_points: [[10, 20], [30, 20], [30, 40], [10, 40]]
`

func TestParseReplay(t *testing.T) {
	r, err := ParseReplay([]byte(replayFixture))
	require.NoError(t, err)
	assert.Equal(t, BackendReplay, r.Name())

	text, err := r.Recognize(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text.Text)
	require.Len(t, text.Blocks, 1)

	block := text.Blocks[0]
	assert.Equal(t, []Language{{Code: "en"}, {}}, block.RecognizedLanguages)
	assert.Equal(t, &Rect{MinX: 10, MinY: 20, MaxX: 50, MaxY: 40}, block.Frame)
	require.Len(t, block.CornerPoints, 4)
	assert.Equal(t, [2]float64{10, 20}, block.CornerPoints[0])
	assert.Equal(t, []float64{50, 40, 1}, block.CornerPoints[2])

	require.Len(t, block.Lines, 1)
	require.Len(t, block.Lines[0].Elements, 1)
	assert.Nil(t, block.Lines[0].Elements[0].Frame)
	assert.Len(t, block.Lines[0].Elements[0].CornerPoints, 4)
}

func TestReplay_ReturnsFreshCopies(t *testing.T) {
	r, err := ParseReplay([]byte(replayFixture))
	require.NoError(t, err)
	img := image.NewGray(image.Rect(0, 0, 1, 1))

	first, err := r.Recognize(img)
	require.NoError(t, err)
	first.Blocks[0].Text = "mutated"

	second, err := r.Recognize(img)
	require.NoError(t, err)
	assert.Equal(t, "Hello world", second.Blocks[0].Text)
}

func TestReplay_Errors(t *testing.T) {
	r, err := ParseReplay([]byte("error: engine exploded\n"))
	require.NoError(t, err)

	_, err = r.Recognize(image.NewGray(image.Rect(0, 0, 1, 1)))
	require.EqualError(t, err, "engine exploded")

	_, err = r.Recognize(nil)
	require.Error(t, err)

	_, err = ParseReplay([]byte("blocks: {not: [a list"))
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "replay.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"text": "json works", "blocks": []}`), 0o600))

	e, err := New(Config{Backend: "REPLAY", ReplayFile: path})
	require.NoError(t, err)
	text, err := e.Recognize(image.NewGray(image.Rect(0, 0, 1, 1)))
	require.NoError(t, err)
	assert.Equal(t, "json works", text.Text)

	_, err = New(Config{Backend: BackendReplay})
	require.Error(t, err)

	_, err = New(Config{Backend: "nope"})
	require.ErrorContains(t, err, "unknown engine backend")
}

func TestFunc(t *testing.T) {
	called := false
	e := Func(func(image.Image) (*Text, error) {
		called = true
		return &Text{Text: "ok"}, nil
	})
	text, err := e.Recognize(nil)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "ok", text.Text)
	assert.Equal(t, "func", e.Name())
}

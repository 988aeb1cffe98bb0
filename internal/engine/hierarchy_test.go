package engine

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildText_GroupsByBlockAndLine(t *testing.T) {
	words := []WordBox{
		{Text: "Hello", Box: image.Rect(10, 10, 50, 30), Block: 1, Paragraph: 1, Line: 1},
		{Text: "world", Box: image.Rect(60, 10, 110, 30), Block: 1, Paragraph: 1, Line: 1},
		{Text: "again", Box: image.Rect(10, 40, 60, 60), Block: 1, Paragraph: 1, Line: 2},
		{Text: "   ", Box: image.Rect(0, 0, 1, 1), Block: 1, Paragraph: 1, Line: 2},
		{Text: "Footer", Box: image.Rect(10, 200, 80, 220), Block: 2, Paragraph: 1, Line: 1},
	}
	langs := []Language{{Code: "en"}}

	text := BuildText(words, langs)
	require.Len(t, text.Blocks, 2)
	assert.Equal(t, "Hello world\nagain\nFooter", text.Text)

	first := text.Blocks[0]
	assert.Equal(t, "Hello world\nagain", first.Text)
	require.Len(t, first.Lines, 2)
	assert.Equal(t, "Hello world", first.Lines[0].Text)
	assert.Len(t, first.Lines[0].Elements, 2)
	assert.Len(t, first.Lines[1].Elements, 1, "blank words are skipped")
	assert.Equal(t, &Rect{MinX: 10, MinY: 10, MaxX: 110, MaxY: 60}, first.Frame)
	assert.Equal(t, &Rect{MinX: 10, MinY: 10, MaxX: 110, MaxY: 30}, first.Lines[0].Frame)
	assert.Equal(t, langs, first.RecognizedLanguages)
	assert.Equal(t, langs, first.Lines[0].RecognizedLanguages)

	elem := first.Lines[0].Elements[1]
	assert.Equal(t, "world", elem.Text)
	assert.Equal(t, []any{
		image.Pt(60, 10), image.Pt(110, 10), image.Pt(110, 30), image.Pt(60, 30),
	}, elem.CornerPoints)
}

func TestBuildText_Empty(t *testing.T) {
	text := BuildText(nil, nil)
	require.NotNil(t, text)
	assert.Empty(t, text.Text)
	assert.Empty(t, text.Blocks)
}

func TestBuildText_LanguagesAreCopied(t *testing.T) {
	langs := []Language{{Code: "en"}}
	text := BuildText([]WordBox{{Text: "x", Box: image.Rect(0, 0, 5, 5)}}, langs)
	langs[0].Code = "de"
	assert.Equal(t, "en", text.Blocks[0].RecognizedLanguages[0].Code)
}

func TestNormalizeLanguage(t *testing.T) {
	tests := map[string]string{
		"eng":     "en",
		"deu":     "de",
		"en":      "en",
		" fra ":   "fr",
		"":        "",
		"123":     "",
		"eng_old": "en",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeLanguage(in), "input %q", in)
	}
}

func TestLanguagesFromPacks(t *testing.T) {
	got := LanguagesFromPacks([]string{"eng", "!!"})
	assert.Equal(t, []Language{{Code: "en"}, {}}, got)
}

func TestRect(t *testing.T) {
	r := Rect{MinX: 10, MinY: 20, MaxX: 50, MaxY: 40}
	assert.InDelta(t, 30.0, r.MidX(), 1e-9)
	assert.InDelta(t, 30.0, r.MidY(), 1e-9)
	assert.InDelta(t, 40.0, r.Width(), 1e-9)
	assert.InDelta(t, 20.0, r.Height(), 1e-9)

	inverted := Rect{MinX: 50, MinY: 40, MaxX: 10, MaxY: 20}
	assert.InDelta(t, 40.0, inverted.Width(), 1e-9)
	assert.InDelta(t, 20.0, inverted.Height(), 1e-9)
}

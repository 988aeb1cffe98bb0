package engine

import (
	"errors"
	"fmt"
	"image"
	"os"

	"gopkg.in/yaml.v3"
)

// Replay returns recorded detector output for every image. It backs offline
// runs and the integration suite where no OCR library is available.
type Replay struct {
	doc replayDocument
}

type replayDocument struct {
	// Error makes every Recognize call fail with this message.
	Error  string        `yaml:"error"`
	Text   string        `yaml:"text"`
	Blocks []replayBlock `yaml:"blocks"`
}

type replayRect struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

type replayElement struct {
	Text         string      `yaml:"text"`
	CornerPoints [][]float64 `yaml:"corner_points"`
	Frame        *replayRect `yaml:"frame"`
}

type replayLine struct {
	Text         string          `yaml:"text"`
	Languages    []*string       `yaml:"languages"`
	CornerPoints [][]float64     `yaml:"corner_points"`
	Frame        *replayRect     `yaml:"frame"`
	Elements     []replayElement `yaml:"elements"`
}

type replayBlock struct {
	Text         string       `yaml:"text"`
	Languages    []*string    `yaml:"languages"`
	CornerPoints [][]float64  `yaml:"corner_points"`
	Frame        *replayRect  `yaml:"frame"`
	Lines        []replayLine `yaml:"lines"`
}

// NewReplay loads a replay document from path. JSON documents are accepted
// as well since JSON is valid YAML.
func NewReplay(path string) (*Replay, error) {
	if path == "" {
		return nil, errors.New("replay backend requires a replay file")
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("read replay file: %w", err)
	}
	return ParseReplay(data)
}

// ParseReplay builds a Replay engine from an in-memory document.
func ParseReplay(data []byte) (*Replay, error) {
	var doc replayDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse replay document: %w", err)
	}
	return &Replay{doc: doc}, nil
}

// Name implements Engine.
func (r *Replay) Name() string { return BackendReplay }

// Recognize ignores the image content and returns a fresh copy of the
// recorded result.
func (r *Replay) Recognize(img image.Image) (*Text, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	if r.doc.Error != "" {
		return nil, errors.New(r.doc.Error)
	}

	out := &Text{Text: r.doc.Text, Blocks: make([]Block, 0, len(r.doc.Blocks))}
	for _, b := range r.doc.Blocks {
		block := Block{
			Text:                b.Text,
			RecognizedLanguages: replayLanguages(b.Languages),
			CornerPoints:        replayPoints(b.CornerPoints),
			Frame:               b.Frame.rect(),
		}
		for _, l := range b.Lines {
			line := Line{
				Text:                l.Text,
				RecognizedLanguages: replayLanguages(l.Languages),
				CornerPoints:        replayPoints(l.CornerPoints),
				Frame:               l.Frame.rect(),
			}
			for _, e := range l.Elements {
				line.Elements = append(line.Elements, Element{
					Text:         e.Text,
					CornerPoints: replayPoints(e.CornerPoints),
					Frame:        e.Frame.rect(),
				})
			}
			block.Lines = append(block.Lines, line)
		}
		out.Blocks = append(out.Blocks, block)
	}
	return out, nil
}

func (r *replayRect) rect() *Rect {
	if r == nil {
		return nil
	}
	return &Rect{MinX: r.MinX, MinY: r.MinY, MaxX: r.MaxX, MaxY: r.MaxY}
}

// replayLanguages maps null entries to a language without a code.
func replayLanguages(codes []*string) []Language {
	out := make([]Language, 0, len(codes))
	for _, c := range codes {
		if c == nil {
			out = append(out, Language{})
			continue
		}
		out = append(out, Language{Code: *c})
	}
	return out
}

// replayPoints keeps entries that are not coordinate pairs as raw slices so
// that consumers see them as malformed.
func replayPoints(points [][]float64) []any {
	out := make([]any, 0, len(points))
	for _, p := range points {
		if len(p) == 2 {
			out = append(out, [2]float64{p[0], p[1]})
			continue
		}
		out = append(out, p)
	}
	return out
}

// Package projector turns raw detection output into the serialized frame
// report: per-rectangle frame and bounding-box representations, converted
// corner points and language tags, organized as blocks, lines and elements.
package projector

import (
	"image"
	"log/slog"
	"math"

	"github.com/MeKo-Tech/textframe/internal/engine"
)

// Project converts a detection result. A nil input yields an empty result.
func Project(text *engine.Text) *Result {
	if text == nil {
		return &Result{Blocks: []Block{}}
	}
	res := &Result{Text: text.Text, Blocks: make([]Block, 0, len(text.Blocks))}
	for _, b := range text.Blocks {
		res.Blocks = append(res.Blocks, projectBlock(b))
	}
	return res
}

func projectBlock(b engine.Block) Block {
	out := Block{
		Text:                b.Text,
		RecognizedLanguages: Languages(b.RecognizedLanguages),
		CornerPoints:        CornerPoints(b.CornerPoints),
		Frame:               FrameOf(b.Frame),
		BoundingBox:         BoundingBoxOf(b.Frame),
		Lines:               make([]Line, 0, len(b.Lines)),
	}
	for _, l := range b.Lines {
		out.Lines = append(out.Lines, projectLine(l))
	}
	return out
}

func projectLine(l engine.Line) Line {
	out := Line{
		Text:                l.Text,
		RecognizedLanguages: Languages(l.RecognizedLanguages),
		CornerPoints:        CornerPoints(l.CornerPoints),
		Frame:               FrameOf(l.Frame),
		BoundingBox:         BoundingBoxOf(l.Frame),
		Elements:            make([]Element, 0, len(l.Elements)),
	}
	for _, e := range l.Elements {
		out.Elements = append(out.Elements, Element{
			Text:         e.Text,
			CornerPoints: CornerPoints(e.CornerPoints),
			Frame:        FrameOf(e.Frame),
			BoundingBox:  BoundingBoxOf(e.Frame),
		})
	}
	return out
}

// FrameOf computes the center-pivoted frame representation. The horizontal
// coordinate is reflected across the rectangle's center after correcting for
// the ceiling of its size. A nil rectangle is treated as the zero rectangle.
func FrameOf(r *engine.Rect) FrameRep {
	var rect engine.Rect
	if r != nil {
		rect = *r
	}
	midX, midY := rect.MidX(), rect.MidY()
	width, height := rect.Width(), rect.Height()

	offsetX := (midX - math.Ceil(width)) / 2
	offsetY := (midY - math.Ceil(height)) / 2
	x := rect.MaxX + offsetX
	y := rect.MinY + offsetY

	return FrameRep{
		X:               midX + (midX - x),
		Y:               midY + (y - midY),
		Width:           width,
		Height:          height,
		BoundingCenterX: midX,
		BoundingCenterY: midY,
	}
}

// BoundingBoxOf maps a rectangle positionally: top is MaxY, bottom is MinY,
// regardless of which is larger. It returns nil for a nil rectangle.
func BoundingBoxOf(r *engine.Rect) *BoundingBox {
	if r == nil {
		return nil
	}
	return &BoundingBox{Left: r.MinX, Top: r.MaxY, Right: r.MaxX, Bottom: r.MinY}
}

// CornerPoints converts raw points in order and stops at the first value
// that cannot be converted. The result is never nil.
func CornerPoints(raw []any) []Point {
	out := make([]Point, 0, len(raw))
	for i, v := range raw {
		p, ok := toPoint(v)
		if !ok {
			reportDefect(defectCornerPoint, "corner point conversion failed; truncating",
				slog.Int("index", i), slog.Int("kept", len(out)), slog.Int("supplied", len(raw)))
			break
		}
		out = append(out, p)
	}
	return out
}

// Languages collects language codes in order and stops at the first entry
// without a code. The result is never nil.
func Languages(langs []engine.Language) []string {
	out := make([]string, 0, len(langs))
	for i, l := range langs {
		if l.Code == "" {
			reportDefect(defectLanguage, "language entry without code; truncating",
				slog.Int("index", i), slog.Int("kept", len(out)), slog.Int("supplied", len(langs)))
			break
		}
		out = append(out, l.Code)
	}
	return out
}

func toPoint(v any) (Point, bool) {
	var p Point
	switch t := v.(type) {
	case Point:
		p = t
	case *Point:
		if t == nil {
			return Point{}, false
		}
		p = *t
	case engine.Point:
		p = Point{X: t.X, Y: t.Y}
	case *engine.Point:
		if t == nil {
			return Point{}, false
		}
		p = Point{X: t.X, Y: t.Y}
	case image.Point:
		p = Point{X: float64(t.X), Y: float64(t.Y)}
	case [2]float64:
		p = Point{X: t[0], Y: t[1]}
	default:
		return Point{}, false
	}
	if !finite(p.X) || !finite(p.Y) {
		return Point{}, false
	}
	return p, true
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

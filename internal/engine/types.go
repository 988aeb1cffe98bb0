package engine

import "math"

// Rect is an axis-aligned rectangle in image pixel coordinates.
type Rect struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// MidX returns the horizontal center.
func (r Rect) MidX() float64 { return (r.MinX + r.MaxX) / 2 }

// MidY returns the vertical center.
func (r Rect) MidY() float64 { return (r.MinY + r.MaxY) / 2 }

// Width returns the non-negative horizontal extent.
func (r Rect) Width() float64 { return math.Abs(r.MaxX - r.MinX) }

// Height returns the non-negative vertical extent.
func (r Rect) Height() float64 { return math.Abs(r.MaxY - r.MinY) }

// Point is a pixel coordinate reported by a backend.
type Point struct {
	X float64
	Y float64
}

// Language is a recognized language tag. An empty Code means the backend
// reported an entry without a language code.
type Language struct {
	Code string
}

// Element is the finest recognized unit, usually a word.
type Element struct {
	Text string
	// CornerPoints holds the quadrilateral corners as produced by the backend:
	// Point, *Point, image.Point or [2]float64 values. Other values cannot be
	// converted and are treated as malformed by consumers.
	CornerPoints []any
	Frame        *Rect
}

// Line is a single line of text.
type Line struct {
	Text                string
	RecognizedLanguages []Language
	CornerPoints        []any
	Frame               *Rect
	Elements            []Element
}

// Block is a paragraph-like group of lines.
type Block struct {
	Text                string
	RecognizedLanguages []Language
	CornerPoints        []any
	Frame               *Rect
	Lines               []Line
}

// Text is the full detection result for one image.
type Text struct {
	Text   string
	Blocks []Block
}

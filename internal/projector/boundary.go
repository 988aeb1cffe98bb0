package projector

// Envelope wraps the boundary map of res in the top-level "result" key. A nil
// result yields a nil map.
func Envelope(res *Result) map[string]any {
	if res == nil {
		return nil
	}
	return map[string]any{"result": res.Map()}
}

// Map converts the typed result into the loosely-typed boundary map.
func (r *Result) Map() map[string]any {
	blocks := make([]any, 0, len(r.Blocks))
	for _, b := range r.Blocks {
		blocks = append(blocks, b.Map())
	}
	return map[string]any{
		"text":   r.Text,
		"blocks": blocks,
	}
}

// Map converts a block and its lines.
func (b Block) Map() map[string]any {
	lines := make([]any, 0, len(b.Lines))
	for _, l := range b.Lines {
		lines = append(lines, l.Map())
	}
	return map[string]any{
		"text":                b.Text,
		"recognizedLanguages": languagesMap(b.RecognizedLanguages),
		"cornerPoints":        pointsMap(b.CornerPoints),
		"frame":               b.Frame.Map(),
		"boundingBox":         boxValue(b.BoundingBox),
		"lines":               lines,
	}
}

// Map converts a line and its elements.
func (l Line) Map() map[string]any {
	elements := make([]any, 0, len(l.Elements))
	for _, e := range l.Elements {
		elements = append(elements, e.Map())
	}
	return map[string]any{
		"text":                l.Text,
		"recognizedLanguages": languagesMap(l.RecognizedLanguages),
		"cornerPoints":        pointsMap(l.CornerPoints),
		"frame":               l.Frame.Map(),
		"boundingBox":         boxValue(l.BoundingBox),
		"elements":            elements,
	}
}

// Map converts an element. Elements always carry an empty symbol list.
func (e Element) Map() map[string]any {
	return map[string]any{
		"text":         e.Text,
		"cornerPoints": pointsMap(e.CornerPoints),
		"frame":        e.Frame.Map(),
		"boundingBox":  boxValue(e.BoundingBox),
		"symbols":      []any{},
	}
}

func (f FrameRep) Map() map[string]any {
	return map[string]any{
		"x":               f.X,
		"y":               f.Y,
		"width":           f.Width,
		"height":          f.Height,
		"boundingCenterX": f.BoundingCenterX,
		"boundingCenterY": f.BoundingCenterY,
	}
}

func (b BoundingBox) Map() map[string]any {
	return map[string]any{
		"left":   b.Left,
		"top":    b.Top,
		"right":  b.Right,
		"bottom": b.Bottom,
	}
}

// boxValue keeps the key present with an untyped nil when there is no box.
func boxValue(b *BoundingBox) any {
	if b == nil {
		return nil
	}
	return b.Map()
}

func pointsMap(points []Point) []any {
	out := make([]any, 0, len(points))
	for _, p := range points {
		out = append(out, map[string]any{"x": p.X, "y": p.Y})
	}
	return out
}

func languagesMap(langs []string) []any {
	out := make([]any, 0, len(langs))
	for _, l := range langs {
		out = append(out, l)
	}
	return out
}

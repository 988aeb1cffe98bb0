package projector

// Point is a converted corner point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FrameRep is the center-pivoted frame representation of a rectangle.
type FrameRep struct {
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	BoundingCenterX float64 `json:"boundingCenterX"`
	BoundingCenterY float64 `json:"boundingCenterY"`
}

// BoundingBox is the positional left/top/right/bottom representation. Top is
// always the rectangle's MaxY and Bottom its MinY.
type BoundingBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Element is a projected word.
type Element struct {
	Text         string       `json:"text"`
	CornerPoints []Point      `json:"cornerPoints"`
	Frame        FrameRep     `json:"frame"`
	BoundingBox  *BoundingBox `json:"boundingBox"`
}

// Line is a projected line of text.
type Line struct {
	Text                string       `json:"text"`
	RecognizedLanguages []string     `json:"recognizedLanguages"`
	CornerPoints        []Point      `json:"cornerPoints"`
	Frame               FrameRep     `json:"frame"`
	BoundingBox         *BoundingBox `json:"boundingBox"`
	Elements            []Element    `json:"elements"`
}

// Block is a projected text block.
type Block struct {
	Text                string       `json:"text"`
	RecognizedLanguages []string     `json:"recognizedLanguages"`
	CornerPoints        []Point      `json:"cornerPoints"`
	Frame               FrameRep     `json:"frame"`
	BoundingBox         *BoundingBox `json:"boundingBox"`
	Lines               []Line       `json:"lines"`
}

// Result is the projected detection result of one frame.
type Result struct {
	Text   string  `json:"text"`
	Blocks []Block `json:"blocks"`
}

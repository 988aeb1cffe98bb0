package projector

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToJSON serializes the boundary envelope of res as indented JSON. A nil
// result serializes to "null", the same value the frame service returns for
// a dropped frame.
func ToJSON(res *Result) (string, error) {
	env := Envelope(res)
	if env == nil {
		return "null", nil
	}
	b, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ToPlainText returns the block texts in detection order, one per line.
func ToPlainText(res *Result) (string, error) {
	if res == nil {
		return "", errors.New("nil result")
	}
	texts := make([]string, 0, len(res.Blocks))
	for _, b := range res.Blocks {
		if t := strings.TrimSpace(b.Text); t != "" {
			texts = append(texts, t)
		}
	}
	return strings.Join(texts, "\n"), nil
}

// ToCSV exports one row per block, line and element with its bounding box.
func ToCSV(res *Result) (string, error) {
	if res == nil {
		return "", errors.New("nil result")
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"level", "block", "line", "element", "text", "left", "top", "right", "bottom"})

	row := func(level string, bi, li, ei int, text string, box *BoundingBox) {
		rec := []string{level, strconv.Itoa(bi), strconv.Itoa(li), strconv.Itoa(ei), text, "", "", "", ""}
		if box != nil {
			rec[5] = formatCoord(box.Left)
			rec[6] = formatCoord(box.Top)
			rec[7] = formatCoord(box.Right)
			rec[8] = formatCoord(box.Bottom)
		}
		_ = w.Write(rec)
	}
	for bi, b := range res.Blocks {
		row("block", bi, -1, -1, b.Text, b.BoundingBox)
		for li, l := range b.Lines {
			row("line", bi, li, -1, l.Text, l.BoundingBox)
			for ei, e := range l.Elements {
				row("element", bi, li, ei, e.Text, e.BoundingBox)
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Validate checks that every frame representation has non-negative, finite
// sizes and that all coordinates are finite.
func Validate(res *Result) error {
	if res == nil {
		return errors.New("nil result")
	}
	for bi, b := range res.Blocks {
		if err := validateNode(b.Frame, b.CornerPoints); err != nil {
			return fmt.Errorf("block %d: %w", bi, err)
		}
		for li, l := range b.Lines {
			if err := validateNode(l.Frame, l.CornerPoints); err != nil {
				return fmt.Errorf("block %d line %d: %w", bi, li, err)
			}
			for ei, e := range l.Elements {
				if err := validateNode(e.Frame, e.CornerPoints); err != nil {
					return fmt.Errorf("block %d line %d element %d: %w", bi, li, ei, err)
				}
			}
		}
	}
	return nil
}

func validateNode(f FrameRep, points []Point) error {
	if f.Width < 0 || f.Height < 0 {
		return fmt.Errorf("negative frame size %gx%g", f.Width, f.Height)
	}
	for _, v := range []float64{f.X, f.Y, f.Width, f.Height, f.BoundingCenterX, f.BoundingCenterY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("non-finite frame value")
		}
	}
	for i, p := range points {
		if !finite(p.X) || !finite(p.Y) {
			return fmt.Errorf("non-finite corner point %d", i)
		}
	}
	return nil
}

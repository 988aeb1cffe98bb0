package engine

import (
	"image"
	"strings"

	"golang.org/x/text/language"
)

// WordBox is a single recognized word together with its layout position.
type WordBox struct {
	Text      string
	Box       image.Rectangle
	Block     int
	Paragraph int
	Line      int
}

type lineKey struct {
	paragraph int
	line      int
}

// BuildText groups word boxes into blocks and lines. Groups keep the order in
// which they first appear; blank words are skipped. Every block and line is
// tagged with langs.
func BuildText(words []WordBox, langs []Language) *Text {
	var blockOrder []int
	blocks := make(map[int][]WordBox)
	for _, w := range words {
		if strings.TrimSpace(w.Text) == "" {
			continue
		}
		if _, seen := blocks[w.Block]; !seen {
			blockOrder = append(blockOrder, w.Block)
		}
		blocks[w.Block] = append(blocks[w.Block], w)
	}

	out := &Text{Blocks: make([]Block, 0, len(blockOrder))}
	blockTexts := make([]string, 0, len(blockOrder))
	for _, id := range blockOrder {
		block := buildBlock(blocks[id], langs)
		out.Blocks = append(out.Blocks, block)
		blockTexts = append(blockTexts, block.Text)
	}
	out.Text = strings.Join(blockTexts, "\n")
	return out
}

func buildBlock(words []WordBox, langs []Language) Block {
	var order []lineKey
	lines := make(map[lineKey][]WordBox)
	for _, w := range words {
		k := lineKey{w.Paragraph, w.Line}
		if _, seen := lines[k]; !seen {
			order = append(order, k)
		}
		lines[k] = append(lines[k], w)
	}

	block := Block{RecognizedLanguages: cloneLanguages(langs)}
	texts := make([]string, 0, len(order))
	var bounds image.Rectangle
	for i, k := range order {
		line := buildLine(lines[k], langs)
		block.Lines = append(block.Lines, line)
		texts = append(texts, line.Text)
		r := toRectangle(*line.Frame)
		if i == 0 {
			bounds = r
		} else {
			bounds = bounds.Union(r)
		}
	}
	block.Text = strings.Join(texts, "\n")
	block.Frame = rectPtr(bounds)
	block.CornerPoints = corners(bounds)
	return block
}

func buildLine(words []WordBox, langs []Language) Line {
	line := Line{RecognizedLanguages: cloneLanguages(langs)}
	texts := make([]string, 0, len(words))
	var bounds image.Rectangle
	for i, w := range words {
		line.Elements = append(line.Elements, Element{
			Text:         w.Text,
			CornerPoints: corners(w.Box),
			Frame:        rectPtr(w.Box),
		})
		texts = append(texts, w.Text)
		if i == 0 {
			bounds = w.Box
		} else {
			bounds = bounds.Union(w.Box)
		}
	}
	line.Text = strings.Join(texts, " ")
	line.Frame = rectPtr(bounds)
	line.CornerPoints = corners(bounds)
	return line
}

// corners returns the four corners of r clockwise from the top-left.
func corners(r image.Rectangle) []any {
	return []any{
		image.Pt(r.Min.X, r.Min.Y),
		image.Pt(r.Max.X, r.Min.Y),
		image.Pt(r.Max.X, r.Max.Y),
		image.Pt(r.Min.X, r.Max.Y),
	}
}

func rectPtr(r image.Rectangle) *Rect {
	return &Rect{
		MinX: float64(r.Min.X),
		MinY: float64(r.Min.Y),
		MaxX: float64(r.Max.X),
		MaxY: float64(r.Max.Y),
	}
}

func toRectangle(r Rect) image.Rectangle {
	return image.Rect(int(r.MinX), int(r.MinY), int(r.MaxX), int(r.MaxY))
}

func cloneLanguages(langs []Language) []Language {
	if len(langs) == 0 {
		return nil
	}
	out := make([]Language, len(langs))
	copy(out, langs)
	return out
}

// LanguagesFromPacks converts Tesseract language pack names ("eng", "deu",
// "chi_sim") to BCP 47 base codes ("en", "de", "zh"). A pack that does not
// map to a known language yields an entry with an empty code.
func LanguagesFromPacks(packs []string) []Language {
	out := make([]Language, 0, len(packs))
	for _, p := range packs {
		out = append(out, Language{Code: NormalizeLanguage(p)})
	}
	return out
}

// NormalizeLanguage returns the BCP 47 base language for a language pack
// name, or "" when it cannot be determined.
func NormalizeLanguage(pack string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(pack), "_")
	if name == "" {
		return ""
	}
	base, err := language.ParseBase(name)
	if err != nil {
		return ""
	}
	return base.String()
}

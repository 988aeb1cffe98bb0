//go:build tesseract

package engine

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log/slog"

	"github.com/otiai10/gosseract/v2"
)

type tesseractEngine struct {
	cfg       Config
	languages []Language
}

func newTesseract(cfg Config) (Engine, error) {
	c := gosseract.NewClient()
	defer func() { _ = c.Close() }()

	if cfg.TessdataPrefix != "" {
		if err := c.SetTessdataPrefix(cfg.TessdataPrefix); err != nil {
			return nil, fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	slog.Debug("Tesseract engine initialized", "version", c.Version(), "languages", cfg.Languages)

	return &tesseractEngine{cfg: cfg, languages: LanguagesFromPacks(cfg.Languages)}, nil
}

func (e *tesseractEngine) Name() string { return BackendTesseract }

// Recognize encodes img as PNG and runs Tesseract with a fresh client, so
// concurrent callers never share client state.
func (e *tesseractEngine) Recognize(img image.Image) (*Text, error) {
	if img == nil {
		return nil, fmt.Errorf("nil image")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	c := gosseract.NewClient()
	defer func() { _ = c.Close() }()

	if err := e.configure(c); err != nil {
		return nil, err
	}
	if err := c.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("set image: %w", err)
	}

	boxes, err := c.GetBoundingBoxesVerbose()
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}

	words := make([]WordBox, 0, len(boxes))
	for _, b := range boxes {
		words = append(words, WordBox{
			Text:      b.Word,
			Box:       b.Box,
			Block:     b.BlockNum,
			Paragraph: b.ParNum,
			Line:      b.LineNum,
		})
	}
	return BuildText(words, e.languages), nil
}

func (e *tesseractEngine) configure(c *gosseract.Client) error {
	if e.cfg.TessdataPrefix != "" {
		if err := c.SetTessdataPrefix(e.cfg.TessdataPrefix); err != nil {
			return fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if len(e.cfg.Languages) > 0 {
		if err := c.SetLanguage(e.cfg.Languages...); err != nil {
			return fmt.Errorf("set languages: %w", err)
		}
	}
	if e.cfg.PageSegMode > 0 {
		if err := c.SetPageSegMode(gosseract.PageSegMode(e.cfg.PageSegMode)); err != nil {
			return fmt.Errorf("set page segmentation mode: %w", err)
		}
	}
	if e.cfg.Whitelist != "" {
		if err := c.SetWhitelist(e.cfg.Whitelist); err != nil {
			return fmt.Errorf("set whitelist: %w", err)
		}
	}
	return nil
}

//go:build !tesseract

package engine

func newTesseract(Config) (Engine, error) { return nil, ErrNoBackend }

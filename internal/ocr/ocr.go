// Package ocr recognizes text in page screenshots.
package ocr

import (
	"context"
	"errors"

	"github.com/rotisserie/eris"

	"github.com/Up-Bizz/ContactVerifier/internal/config"
)

// ErrEngine marks a failure of the recognition engine itself, as opposed to
// a screenshot that simply contains no recognizable text (which is an empty
// result, not an error).
var ErrEngine = errors.New("recognition engine failure")

// Recognizer extracts text from a PNG image.
type Recognizer interface {
	Recognize(ctx context.Context, png []byte) (string, error)
}

// NewRecognizer creates a Recognizer based on config.
func NewRecognizer(cfg config.OCRConfig) (Recognizer, error) {
	switch cfg.Provider {
	case "tesseract", "":
		return NewTesseract(cfg.TesseractPath, cfg.Languages), nil
	case "ocrspace":
		if cfg.APIKey == "" {
			return nil, eris.New("ocr: ocrspace provider requires api_key")
		}
		return NewOCRSpace(cfg.APIKey, cfg.Languages), nil
	default:
		return nil, eris.Errorf("ocr: unknown provider %q", cfg.Provider)
	}
}

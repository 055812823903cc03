package ocr

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract extracts text with a local Tesseract installation through
// gosseract. A fresh client is created per call because gosseract clients
// are not safe for concurrent use; the engine value itself is.
type Tesseract struct {
	lang string
}

// NewTesseract builds a Tesseract engine for the given language ("eng" when
// empty).
func NewTesseract(lang string) *Tesseract {
	if lang == "" {
		lang = "eng"
	}
	return &Tesseract{lang: lang}
}

func (t *Tesseract) Extract(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	buf, err := encodePNG(img)
	if err != nil {
		return "", fmt.Errorf("%w: encode: %v", ErrEngine, err)
	}
	client := gosseract.NewClient()
	defer client.Close()
	_ = client.SetLanguage(t.lang)
	if err := client.SetImageFromBytes(buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEngine, err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEngine, err)
	}
	return strings.TrimSpace(text), nil
}

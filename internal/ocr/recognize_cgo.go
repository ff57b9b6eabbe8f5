//go:build cgo

package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/otiai10/gosseract/v2"
)

// Available reports whether OCR support is compiled into this binary.
func Available() bool { return true }

// recognize runs Tesseract over the image and returns the recognized
// text. A fresh client is created per call; recognition is synchronous
// and the image is handed over as an in-memory PNG.
func recognize(img image.Image, language string) (*Result, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image for ocr: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("failed to set ocr language %q: %w", language, err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set ocr image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("ocr failed: %w", err)
	}

	return &Result{Text: text, Language: language}, nil
}

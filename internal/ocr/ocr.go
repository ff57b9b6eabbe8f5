// Package ocr recognizes text in processed images, the usual downstream
// consumer of a binarized buffer. Recognition is backed by Tesseract via
// gosseract and only available when the binary is built with CGO; without
// it, every call reports ErrUnavailable so the rest of the toolset keeps
// working.
package ocr

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrUnavailable is returned when the binary was built without the
// Tesseract bindings (CGO disabled).
var ErrUnavailable = errors.New("ocr unavailable: built without cgo/tesseract support")

// Result contains recognized text.
type Result struct {
	// Text is the recognized text with original spacing and newlines.
	Text string `json:"text"`

	// Language is the Tesseract language code used for recognition.
	Language string `json:"language"`
}

// ExtractText recognizes all text in an image.
//
// The image should already be preprocessed (grayscale or binarized) for
// best results. Returns ErrUnavailable when OCR support is not compiled
// in.
func ExtractText(img image.Image, language string) (*Result, error) {
	if language == "" {
		language = "eng"
	}
	return recognize(img, language)
}

// ExtractTextFromRegion recognizes text in the rectangular region
// (x1,y1)-(x2,y2), with the usual inclusive/exclusive corner convention.
//
// Returns an error for empty or out-of-order regions; regions partially
// outside the image are clipped by the crop.
func ExtractTextFromRegion(img image.Image, x1, y1, x2, y2 int, language string) (*Result, error) {
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid region: (%d,%d)-(%d,%d)", x1, y1, x2, y2)
	}
	cropped := imaging.Crop(img, image.Rect(x1, y1, x2, y2))
	return ExtractText(cropped, language)
}

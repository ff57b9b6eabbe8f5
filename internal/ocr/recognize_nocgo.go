//go:build !cgo

package ocr

import "image"

// Available reports whether OCR support is compiled into this binary.
func Available() bool { return false }

func recognize(image.Image, string) (*Result, error) {
	return nil, ErrUnavailable
}

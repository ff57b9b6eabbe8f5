package binarize

import (
	"image"

	"github.com/anthonynsimon/bild/blur"

	"github.com/ironsheep/contour-tools-mcp/internal/imaging"
)

// applyAdaptive thresholds each pixel against a Gaussian-weighted mean of
// its window x window neighborhood, minus offset. A pixel maps to the high
// level only if it strictly exceeds its local threshold.
//
// The local mean comes from bild's Gaussian blur with radius (window-1)/2,
// which builds a kernel spanning exactly the requested window; border
// pixels use the library's clamped-edge convention. With the defaults
// (window 11, offset 2) this matches the standard adaptive-Gaussian
// thresholding parameters of the reference pipeline.
func applyAdaptive(buf *imaging.Buffer, window, offset int) {
	gray, ok := buf.ToImage().(*image.Gray)
	if !ok {
		// Apply reduces to grayscale before dispatching; this branch is
		// unreachable but keeps the conversion honest.
		return
	}

	radius := float64(window-1) / 2
	blurred := blur.Gaussian(gray, radius)

	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			// Blurred output is RGBA; all channels carry the same
			// luminance for a grayscale source, so read red.
			mean := int(blurred.RGBAAt(x, y).R)
			i := y*buf.Width + x
			if int(buf.Pix[i]) > mean-offset {
				buf.Pix[i] = levelHigh
			} else {
				buf.Pix[i] = levelLow
			}
		}
	}
}

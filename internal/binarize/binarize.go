// Package binarize converts grayscale or RGB buffers into binary
// (two-level) images using one of three thresholding strategies.
//
// The strategies mirror the common library conventions:
//   - FixedGlobal: single constant threshold (128), applied with >=
//   - AdaptiveLocal: per-pixel threshold from an 11x11 Gaussian-weighted
//     local mean minus a constant offset (2), applied with >
//   - AutoGlobal: Otsu's method, maximizing between-class variance over
//     the histogram, then applied as a fixed >= threshold
//
// Algorithm selection arrives from callers as an integer code
// {0: FixedGlobal, 1: AdaptiveLocal, 2: AutoGlobal}. Codes outside that
// set map to Unrecognized, which deliberately leaves the buffer as plain
// grayscale without binarizing - a permissive default kept for
// compatibility with existing callers. Recognized() lets callers surface
// a diagnostic without changing the call's outcome.
package binarize

import (
	"fmt"

	"github.com/ironsheep/contour-tools-mcp/internal/imaging"
)

// Algorithm selects the thresholding strategy for Apply.
//
// The zero value is FixedGlobal, matching selector code 0. Use FromCode
// to translate caller-supplied integer codes; unknown codes become
// Unrecognized rather than an error.
type Algorithm int

const (
	// FixedGlobal thresholds every pixel against the constant 128.
	FixedGlobal Algorithm = iota

	// AdaptiveLocal thresholds each pixel against its Gaussian-weighted
	// 11x11 neighborhood mean minus 2.
	AdaptiveLocal

	// AutoGlobal computes a global threshold with Otsu's method.
	AutoGlobal

	// Unrecognized is the explicit arm for out-of-range selector codes.
	// Apply treats it as a no-op after grayscale reduction.
	Unrecognized
)

// Threshold parameters, matching the defaults of the reference pipeline.
const (
	// FixedThreshold is the constant cut for FixedGlobal.
	FixedThreshold = 128

	// AdaptiveWindow is the side length of the local-mean window.
	AdaptiveWindow = 11

	// AdaptiveOffset is subtracted from the local mean.
	AdaptiveOffset = 2
)

// Output levels of a binarized buffer.
const (
	levelLow  = 0
	levelHigh = 255
)

// FromCode maps a caller-supplied integer selector to an Algorithm.
// Codes outside {0, 1, 2} map to Unrecognized.
func FromCode(code int) Algorithm {
	switch code {
	case 0:
		return FixedGlobal
	case 1:
		return AdaptiveLocal
	case 2:
		return AutoGlobal
	default:
		return Unrecognized
	}
}

// Recognized reports whether the algorithm is one of the three supported
// strategies. Unrecognized algorithms are absorbed as no-ops by Apply;
// this is the diagnostic channel for callers that want to log them.
func (a Algorithm) Recognized() bool {
	return a >= FixedGlobal && a <= AutoGlobal
}

// String returns the algorithm name for logs and tool results.
func (a Algorithm) String() string {
	switch a {
	case FixedGlobal:
		return "fixed-global"
	case AdaptiveLocal:
		return "adaptive-local"
	case AutoGlobal:
		return "otsu"
	default:
		return fmt.Sprintf("unrecognized(%d)", int(a))
	}
}

// Apply binarizes the buffer in place with the selected algorithm.
//
// A 3-channel buffer is first reduced to single-channel grayscale; after a
// successful call with a recognized algorithm every pixel is exactly 0 or
// 255 and buf.Channels == 1. An Unrecognized algorithm performs only the
// grayscale reduction and leaves the pixel values otherwise untouched.
//
// Returns imaging.ErrInvalidBuffer or imaging.ErrUnsupportedChannelLayout
// without mutating the buffer if validation fails; there is no other
// error path.
func Apply(buf *imaging.Buffer, alg Algorithm) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	if buf.Channels > 1 {
		if err := imaging.Grayscale(buf); err != nil {
			return err
		}
	}

	switch alg {
	case FixedGlobal:
		applyFixed(buf, FixedThreshold)
	case AdaptiveLocal:
		applyAdaptive(buf, AdaptiveWindow, AdaptiveOffset)
	case AutoGlobal:
		applyFixed(buf, otsuThreshold(buf))
	default:
		// Out-of-range selector: leave the grayscale buffer as-is.
	}
	return nil
}

// applyFixed maps every pixel at or above threshold to the high level and
// everything below it to the low level.
func applyFixed(buf *imaging.Buffer, threshold int) {
	n := buf.Width * buf.Height
	for i := 0; i < n; i++ {
		if int(buf.Pix[i]) >= threshold {
			buf.Pix[i] = levelHigh
		} else {
			buf.Pix[i] = levelLow
		}
	}
}

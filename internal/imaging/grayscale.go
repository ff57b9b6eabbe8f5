package imaging

import "fmt"

// Luma weights for RGB -> grayscale reduction (ITU-R BT.601), scaled by
// 1000 for integer arithmetic. These are the same weights the Rec. 601
// standard and common imaging libraries use; they are fixed here so
// repeated conversions are bit-for-bit reproducible.
const (
	lumaR = 299
	lumaG = 587
	lumaB = 114
)

// luma combines an RGB triple into a single 8-bit luminance value using
// the BT.601 weights, rounding to nearest.
func luma(r, g, b uint8) uint8 {
	return uint8((lumaR*int(r) + lumaG*int(g) + lumaB*int(b) + 500) / 1000)
}

// Grayscale reduces a 3-channel buffer to single-channel luminance in
// place. The buffer's Channels field becomes 1 and Pix is truncated to
// Width*Height samples; a buffer that is already single-channel is left
// untouched.
//
// Returns ErrInvalidBuffer or ErrUnsupportedChannelLayout without mutating
// the buffer if validation fails.
func Grayscale(b *Buffer) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if b.Channels == 1 {
		return nil
	}

	n := b.Width * b.Height
	for i := 0; i < n; i++ {
		j := i * 3
		b.Pix[i] = luma(b.Pix[j], b.Pix[j+1], b.Pix[j+2])
	}
	b.Pix = b.Pix[:n]
	b.Channels = 1
	return nil
}

// ReportResult summarizes a buffer after grayscale analysis.
type ReportResult struct {
	// Status is a human-readable summary, e.g. "Image processed: 640x480".
	Status string `json:"status"`

	// Width of the analyzed buffer in pixels.
	Width int `json:"width"`

	// Height of the analyzed buffer in pixels.
	Height int `json:"height"`

	// MeanLuma is the average luminance (0-255) of the grayscale
	// reduction, useful as a quick exposure check before thresholding.
	MeanLuma float64 `json:"mean_luma"`
}

// Report runs the grayscale conversion on an internal copy of the buffer
// and returns a textual status plus basic luminance statistics. The
// caller's buffer is never modified.
//
// Returns ErrInvalidBuffer or ErrUnsupportedChannelLayout for unusable
// buffers.
func Report(b *Buffer) (*ReportResult, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	gray := b
	if b.Channels > 1 {
		gray = b.Clone()
		if err := Grayscale(gray); err != nil {
			return nil, err
		}
	}

	var sum int64
	n := gray.Width * gray.Height
	for i := 0; i < n; i++ {
		sum += int64(gray.Pix[i])
	}

	return &ReportResult{
		Status:   fmt.Sprintf("Image processed: %dx%d", b.Width, b.Height),
		Width:    b.Width,
		Height:   b.Height,
		MeanLuma: float64(sum) / float64(n),
	}, nil
}

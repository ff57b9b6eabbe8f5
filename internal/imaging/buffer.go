package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Sentinel errors for buffer validation. Callers can test for them with
// errors.Is after unwrapping the contextual message.
var (
	// ErrInvalidBuffer indicates a nil, zero-area, or truncated pixel buffer.
	ErrInvalidBuffer = errors.New("invalid buffer")

	// ErrUnsupportedChannelLayout indicates a channel count outside {1, 3}.
	ErrUnsupportedChannelLayout = errors.New("unsupported channel layout")
)

// Buffer is a caller-owned 2D pixel grid with 8-bit depth per channel.
//
// Pixel data is stored row-major with channels interleaved, so the sample
// for channel c of pixel (x, y) lives at Pix[(y*Width+x)*Channels+c].
// A 1-channel buffer is grayscale; a 3-channel buffer is RGB.
//
// The binarizer mutates a Buffer in place (including collapsing Channels
// from 3 to 1); the contour tracer only reads it. Ownership stays with the
// caller for the duration of each call - no operation retains a reference
// after returning. Callers wrapping these operations for concurrent use
// must serialize access to a given Buffer.
type Buffer struct {
	// Width is the image width in pixels. Must be positive.
	Width int

	// Height is the image height in pixels. Must be positive.
	Height int

	// Channels is the number of interleaved samples per pixel: 1 or 3.
	Channels int

	// Pix holds the raw samples. Length must be at least
	// Width*Height*Channels.
	Pix []uint8
}

// New allocates a zeroed buffer with the given geometry.
//
// Returns ErrInvalidBuffer for non-positive dimensions and
// ErrUnsupportedChannelLayout for a channel count outside {1, 3}.
func New(width, height, channels int) (*Buffer, error) {
	b := &Buffer{
		Width:    width,
		Height:   height,
		Channels: channels,
	}
	// Allocate only once the geometry is known good; Validate then just
	// confirms the slice length.
	if width > 0 && height > 0 && (channels == 1 || channels == 3) {
		b.Pix = make([]uint8, width*height*channels)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks that the buffer is usable by the processing operations.
//
// It reports ErrInvalidBuffer for a nil receiver, non-positive dimensions,
// or a Pix slice too short for the declared geometry, and
// ErrUnsupportedChannelLayout for a channel count outside {1, 3}.
// Operations call this before any mutation, so a failed call leaves the
// buffer untouched.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidBuffer)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidBuffer, b.Width, b.Height)
	}
	if b.Channels != 1 && b.Channels != 3 {
		return fmt.Errorf("%w: %d channels (want 1 or 3)", ErrUnsupportedChannelLayout, b.Channels)
	}
	if need := b.Width * b.Height * b.Channels; len(b.Pix) < need {
		return fmt.Errorf("%w: pixel data has %d samples, need %d", ErrInvalidBuffer, len(b.Pix), need)
	}
	return nil
}

// Clone returns a deep copy of the buffer. The copy shares no storage with
// the original.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, b.Width*b.Height*b.Channels)
	copy(pix, b.Pix)
	return &Buffer{
		Width:    b.Width,
		Height:   b.Height,
		Channels: b.Channels,
		Pix:      pix,
	}
}

// At returns the sample for channel c of pixel (x, y).
// Coordinates and channel index are not bounds-checked.
func (b *Buffer) At(x, y, c int) uint8 {
	return b.Pix[(y*b.Width+x)*b.Channels+c]
}

// Set stores the sample for channel c of pixel (x, y).
// Coordinates and channel index are not bounds-checked.
func (b *Buffer) Set(x, y, c int, v uint8) {
	b.Pix[(y*b.Width+x)*b.Channels+c] = v
}

// FromImage converts a decoded image into a 3-channel RGB buffer.
//
// 16-bit source samples are reduced to 8-bit by dropping the low byte;
// alpha is discarded. The buffer's origin is the image's Bounds().Min, so
// images with a non-zero origin are normalized to (0,0).
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	b := &Buffer{
		Width:    width,
		Height:   height,
		Channels: 3,
		Pix:      make([]uint8, width*height*3),
	}
	i := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, bl, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			b.Pix[i] = uint8(r >> 8)
			b.Pix[i+1] = uint8(g >> 8)
			b.Pix[i+2] = uint8(bl >> 8)
			i += 3
		}
	}
	return b
}

// ToImage converts the buffer back into a standard Go image: *image.Gray
// for 1-channel buffers, *image.RGBA (fully opaque) for 3-channel buffers.
func (b *Buffer) ToImage() image.Image {
	rect := image.Rect(0, 0, b.Width, b.Height)
	if b.Channels == 1 {
		gray := image.NewGray(rect)
		for y := 0; y < b.Height; y++ {
			copy(gray.Pix[y*gray.Stride:y*gray.Stride+b.Width], b.Pix[y*b.Width:(y+1)*b.Width])
		}
		return gray
	}

	rgba := image.NewRGBA(rect)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			i := (y*b.Width + x) * 3
			rgba.SetRGBA(x, y, color.RGBA{b.Pix[i], b.Pix[i+1], b.Pix[i+2], 255})
		}
	}
	return rgba
}

// Package render draws traced contours over their source image for visual
// inspection, returning the overlay as base64 PNG.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/contour-tools-mcp/internal/contour"
)

// OverlayResult contains a contour overlay encoded as base64 PNG.
type OverlayResult struct {
	// Width of the overlay image in pixels (same as input).
	Width int `json:"width"`

	// Height of the overlay image in pixels (same as input).
	Height int `json:"height"`

	// ContourCount is the number of contours drawn.
	ContourCount int `json:"contour_count"`

	// ImageBase64 is the overlay encoded as base64 PNG.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png" for overlay results.
	MimeType string `json:"mime_type"`
}

// Contours draws every contour of a trace result over the given image,
// one color per nesting depth, and returns the overlay as base64 PNG.
//
// Contour vertices are joined by straight lines (matching the compressed
// point representation); single-point contours render as a lone pixel.
// Depths are colored with evenly distinguishable hues, so a hole always
// contrasts with the shape that contains it.
func Contours(img image.Image, res *contour.TraceResult) (*OverlayResult, error) {
	base := imaging.Clone(img)
	features := contour.Summarize(res)

	for i, c := range res.Contours {
		col := depthColor(features[i].Depth)
		if len(c.Points) == 1 {
			setPixel(base, c.Points[0].X, c.Points[0].Y, col)
			continue
		}
		for j, p := range c.Points {
			q := c.Points[(j+1)%len(c.Points)]
			drawLine(base, p.X, p.Y, q.X, q.Y, col)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, base); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}

	bounds := base.Bounds()
	return &OverlayResult{
		Width:        bounds.Dx(),
		Height:       bounds.Dy(),
		ContourCount: res.Count,
		ImageBase64:  base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:     "image/png",
	}, nil
}

// depthColor picks a saturated hue for a nesting depth. Hues advance by
// the golden angle so consecutive depths stay far apart on the wheel.
func depthColor(depth int) color.NRGBA {
	hue := math.Mod(float64(depth)*137.508, 360)
	r, g, b := colorful.Hsv(hue, 0.9, 0.95).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// drawLine draws a straight segment with Bresenham's algorithm.
func drawLine(dst *image.NRGBA, x1, y1, x2, y2 int, col color.NRGBA) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy

	x, y := x1, y1
	for {
		setPixel(dst, x, y, col)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// setPixel writes a pixel if it lies inside the image.
func setPixel(dst *image.NRGBA, x, y int, col color.NRGBA) {
	if image.Pt(x, y).In(dst.Bounds()) {
		dst.SetNRGBA(x, y, col)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package binarize

import "github.com/ironsheep/contour-tools-mcp/internal/imaging"

// otsuThreshold computes the global threshold that maximizes between-class
// variance over the 256-bin histogram of a single-channel buffer.
//
// The returned value is meant to be applied with the >= convention of
// applyFixed. When several cut points tie for maximum variance (e.g. a
// bimodal histogram with an empty valley), the midpoint of the tying range
// is returned, placing the threshold centrally between the modes.
//
// # Algorithm
//
// For each candidate threshold t, pixels split into a background class
// [0, t] and a foreground class [t+1, 255]. With class weights w0, w1 and
// class means m0, m1, the between-class variance is
//
//	sigma_b^2(t) = w0 * w1 * (m0 - m1)^2
//
// and the chosen threshold maximizes sigma_b^2 over all t.
func otsuThreshold(buf *imaging.Buffer) int {
	var hist [256]int
	n := buf.Width * buf.Height
	for i := 0; i < n; i++ {
		hist[buf.Pix[i]]++
	}

	var sumAll int64
	for v, count := range hist {
		sumAll += int64(v) * int64(count)
	}

	var (
		weightB  int64
		sumB     int64
		maxSigma float64
		lo, hi   int
	)
	for t := 0; t < 256; t++ {
		weightB += int64(hist[t])
		if weightB == 0 {
			continue
		}
		weightF := int64(n) - weightB
		if weightF == 0 {
			break
		}
		sumB += int64(t) * int64(hist[t])

		meanB := float64(sumB) / float64(weightB)
		meanF := float64(sumAll-sumB) / float64(weightF)
		diff := meanB - meanF
		sigma := float64(weightB) * float64(weightF) * diff * diff

		switch {
		case sigma > maxSigma:
			maxSigma = sigma
			lo, hi = t, t
		case sigma == maxSigma:
			hi = t
		}
	}

	// Degenerate histogram (single intensity): no cut separates anything,
	// so fall back to the fixed default rather than thresholding at 0.
	if maxSigma == 0 {
		return FixedThreshold
	}
	return (lo + hi + 1) / 2
}

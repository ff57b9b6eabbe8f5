// Package contour extracts the boundary curves of a binary image together
// with the hierarchy describing how they nest.
//
// Tracing uses the Suzuki-Abe border-following algorithm over an
// 8-connected foreground. The image is scanned in raster order; each
// background-to-foreground transition starts an outer border, each
// foreground-to-background transition starts a hole border, and every
// border is followed around its full closed curve exactly once. The
// last-met border during the scan determines each new border's parent, so
// the complete nesting tree (a hole inside a shape is that shape's child,
// an island inside the hole is the hole's child, and so on) falls out of
// a single pass.
//
// Contour point lists keep only direction-change vertices: straight runs
// of the 8-direction chain collapse to their endpoints, so an axis-aligned
// rectangle is four corner points. A lone foreground pixel is a
// single-point contour.
//
// The input buffer is treated as read-only; tracing works on an internal
// label grid, so a caller can re-run Trace on the same buffer and get an
// identical result. Any non-zero pixel counts as foreground, which
// tolerates input that was never strictly binarized.
package contour

// Package imaging provides the pixel buffer model shared by the
// binarization and contour-tracing operations, plus file loading and
// encoding helpers for the MCP server.
//
// The central type is Buffer: a caller-owned, row-major, 8-bit pixel grid
// with 1 (grayscale) or 3 (RGB) interleaved channels. Operations that
// mutate a Buffer do so in place and only for the duration of the call;
// nothing in this package retains a reference to a caller's buffer.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward.
//
// # Grayscale Convention
//
// RGB to grayscale reduction uses the ITU-R BT.601 luma weights
// (0.299*R + 0.587*G + 0.114*B), rounded to nearest. The weights are
// fixed constants so conversions are reproducible across runs.
//
// # Error Handling
//
// Buffer validation failures are reported through two sentinel errors:
//   - ErrInvalidBuffer: nil, zero-area, or truncated pixel data
//   - ErrUnsupportedChannelLayout: channel count outside {1, 3}
//
// Operations validate before mutating, so an error return guarantees the
// buffer is unchanged.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Buffer operations are not;
// callers must serialize access to a given Buffer instance.
package imaging

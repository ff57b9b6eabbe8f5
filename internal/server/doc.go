// Package server implements the MCP (Model Context Protocol) server that
// hosts the binarization and contour-tracing operations.
//
// This package provides a JSON-RPC 2.0 server exposing the image
// processing pipeline to MCP-compatible clients. It plays the "hosting
// application" role for the core packages: it owns file loading and the
// image cache, builds a fresh pixel buffer per call, and hands that
// buffer to the binarize/contour/ocr operations.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Grayscale Pipeline:
//   - image_grayscale_report: Grayscale analysis summary
//   - image_binarize: Threshold to a two-level image
//
// Contour Extraction:
//   - image_trace_contours: Contours + hierarchy + features
//   - image_render_contours: Contour overlay as base64 PNG
//
// OCR:
//   - image_ocr_region: Binarize-then-recognize text
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process.
// Processing always happens on a fresh buffer built from the cached
// image, so tools never observe each other's mutations.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// Out-of-range threshold algorithm codes are deliberately NOT errors:
// the image is left grayscale and the result carries a note, matching the
// permissive contract of the binarize package.
//
// # Logging
//
// Structured logs go to stderr via zerolog; stdout is reserved for the
// protocol stream.
package server

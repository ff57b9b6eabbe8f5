package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/contour-tools-mcp/internal/binarize"
	"github.com/ironsheep/contour-tools-mcp/internal/contour"
	"github.com/ironsheep/contour-tools-mcp/internal/imaging"
	"github.com/ironsheep/contour-tools-mcp/internal/ocr"
	"github.com/ironsheep/contour-tools-mcp/internal/render"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_binarize").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Debug().Str("tool", params.Name).Err(err).Msg("tool execution failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads the image through the cache into a fresh pixel buffer
//  4. Runs the binarize/contour/ocr operation
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Grayscale Pipeline
	case "image_grayscale_report":
		return s.handleGrayscaleReport(args)
	case "image_binarize":
		return s.handleBinarize(args)

	// Contour Extraction
	case "image_trace_contours":
		return s.handleTraceContours(args)
	case "image_render_contours":
		return s.handleRenderContours(args)

	// OCR
	case "image_ocr_region":
		return s.handleOCRRegion(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Grayscale Pipeline Handlers ===

func (s *Server) handleGrayscaleReport(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.LoadBuffer(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.Report(buf)
}

type imageBinarizeArgs struct {
	Path      string `json:"path"`
	Algorithm int    `json:"algorithm"`
}

// binarizeResult reports the outcome of a binarization, including the
// permissive no-op case for out-of-range algorithm codes.
type binarizeResult struct {
	// Algorithm is the name of the strategy that was selected.
	Algorithm string `json:"algorithm"`

	// Applied is false when the algorithm code was out of range and the
	// image was only grayscale-converted, not binarized.
	Applied bool `json:"applied"`

	// Note explains a skipped binarization; empty otherwise.
	Note string `json:"note,omitempty"`

	// Image is the processed image as base64 PNG.
	Image *imaging.EncodedImage `json:"image"`
}

func (s *Server) handleBinarize(args json.RawMessage) (interface{}, error) {
	var a imageBinarizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.cache.LoadBuffer(a.Path)
	if err != nil {
		return nil, err
	}

	alg := binarize.FromCode(a.Algorithm)
	if err := binarize.Apply(buf, alg); err != nil {
		return nil, err
	}

	result := &binarizeResult{
		Algorithm: alg.String(),
		Applied:   alg.Recognized(),
	}
	if !alg.Recognized() {
		s.log.Warn().Int("code", a.Algorithm).Msg("unsupported threshold algorithm, image left grayscale")
		result.Note = fmt.Sprintf("algorithm code %d is not supported; image converted to grayscale only", a.Algorithm)
	}

	result.Image, err = imaging.EncodePNG(buf.ToImage())
	if err != nil {
		return nil, err
	}
	return result, nil
}

// === Contour Extraction Handlers ===

type traceContoursArgs struct {
	Path        string `json:"path"`
	PreBinarize bool   `json:"pre_binarize"`
	Algorithm   int    `json:"algorithm"`
	OmitPoints  bool   `json:"omit_points"`
}

type traceContoursResult struct {
	// Count is the number of contours found.
	Count int `json:"count"`

	// Contours in discovery order; omitted when omit_points is set.
	Contours []contour.Contour `json:"contours,omitempty"`

	// Hierarchy has one node per contour at the matching index.
	Hierarchy []contour.Node `json:"hierarchy"`

	// Features summarize each contour's geometry and nesting.
	Features []contour.Feature `json:"features"`
}

// loadTraceBuffer loads a path into a buffer and optionally binarizes it
// with the given algorithm code.
func (s *Server) loadTraceBuffer(path string, preBinarize bool, algorithm int) (*imaging.Buffer, error) {
	buf, err := s.cache.LoadBuffer(path)
	if err != nil {
		return nil, err
	}
	if preBinarize {
		if err := binarize.Apply(buf, binarize.FromCode(algorithm)); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (s *Server) handleTraceContours(args json.RawMessage) (interface{}, error) {
	var a traceContoursArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	buf, err := s.loadTraceBuffer(a.Path, a.PreBinarize, a.Algorithm)
	if err != nil {
		return nil, err
	}

	res, err := contour.Trace(buf)
	if err != nil {
		return nil, err
	}

	result := &traceContoursResult{
		Count:     res.Count,
		Hierarchy: res.Hierarchy,
		Features:  contour.Summarize(res),
	}
	if !a.OmitPoints {
		result.Contours = res.Contours
	}
	return result, nil
}

type renderContoursArgs struct {
	Path        string `json:"path"`
	PreBinarize bool   `json:"pre_binarize"`
	Algorithm   int    `json:"algorithm"`
}

func (s *Server) handleRenderContours(args json.RawMessage) (interface{}, error) {
	var a renderContoursArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	buf, err := s.loadTraceBuffer(a.Path, a.PreBinarize, a.Algorithm)
	if err != nil {
		return nil, err
	}

	res, err := contour.Trace(buf)
	if err != nil {
		return nil, err
	}
	return render.Contours(img, res)
}

// === OCR Handlers ===

type ocrRegionArgs struct {
	Path      string `json:"path"`
	X1        int    `json:"x1"`
	Y1        int    `json:"y1"`
	X2        int    `json:"x2"`
	Y2        int    `json:"y2"`
	Binarize  bool   `json:"binarize"`
	Algorithm int    `json:"algorithm"`
	Language  string `json:"language"`
}

func (s *Server) handleOCRRegion(args json.RawMessage) (interface{}, error) {
	var a ocrRegionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = "eng"
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	if a.Binarize {
		buf := imaging.FromImage(img)
		if err := binarize.Apply(buf, binarize.FromCode(a.Algorithm)); err != nil {
			return nil, err
		}
		img = buf.ToImage()
	}

	// All-zero coordinates mean the full image.
	if a.X1 == 0 && a.Y1 == 0 && a.X2 == 0 && a.Y2 == 0 {
		return ocr.ExtractText(img, a.Language)
	}
	return ocr.ExtractTextFromRegion(img, a.X1, a.Y1, a.X2, a.Y2, a.Language)
}

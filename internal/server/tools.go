package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// algorithmProperty is the shared schema for the thresholding selector.
// Codes outside {0, 1, 2} are accepted and leave the image grayscale
// without binarizing.
func algorithmProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Thresholding algorithm: 0 = fixed global (threshold 128), 1 = adaptive local (Gaussian 11x11, offset 2), 2 = Otsu auto global. Other codes are a documented no-op. Default 0.",
		"default":     0,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Grayscale Pipeline
		{
			Name:        "image_grayscale_report",
			Description: "Run the grayscale conversion and report a processing summary (dimensions and mean luminance) without modifying the image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_binarize",
			Description: "Convert an image to a two-level (black/white) image using the selected thresholding algorithm. Returns the result as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"algorithm": algorithmProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Contour Extraction
		{
			Name:        "image_trace_contours",
			Description: "Trace the boundary contours of a binary image and return them with their nesting hierarchy and per-contour features (area, perimeter, bounds, depth).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"pre_binarize": map[string]interface{}{
						"type":        "boolean",
						"description": "Binarize the image first using `algorithm`. Without it, any non-zero pixel counts as foreground.",
						"default":     false,
					},
					"algorithm": algorithmProperty(),
					"omit_points": map[string]interface{}{
						"type":        "boolean",
						"description": "Omit contour point lists from the result (hierarchy and features are always included). Useful for large images.",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_render_contours",
			Description: "Trace contours and return the source image with the contours drawn over it, one color per nesting depth, as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"pre_binarize": map[string]interface{}{
						"type":        "boolean",
						"description": "Binarize the image first using `algorithm`.",
						"default":     false,
					},
					"algorithm": algorithmProperty(),
				},
				"required": []string{"path"},
			},
		},

		// OCR
		{
			Name:        "image_ocr_region",
			Description: "Recognize text in the image or a rectangular region of it, optionally binarizing first (the usual OCR preprocessing). Requires a build with Tesseract support.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x1": map[string]interface{}{"type": "integer", "description": "Region left edge (0-based). Omit all four coordinates for the full image."},
					"y1": map[string]interface{}{"type": "integer", "description": "Region top edge"},
					"x2": map[string]interface{}{"type": "integer", "description": "Region right edge (exclusive)"},
					"y2": map[string]interface{}{"type": "integer", "description": "Region bottom edge (exclusive)"},
					"binarize": map[string]interface{}{
						"type":        "boolean",
						"description": "Binarize before recognition using `algorithm`.",
						"default":     false,
					},
					"algorithm": algorithmProperty(),
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code (default 'eng')",
						"default":     "eng",
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}

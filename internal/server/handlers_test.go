package server

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/contour-tools-mcp/internal/contour"
	"github.com/ironsheep/contour-tools-mcp/internal/imaging"
	"github.com/ironsheep/contour-tools-mcp/internal/render"
)

// writeSquarePNG writes a 16x16 black PNG with a white square covering
// the inclusive rectangle (4,4)-(11,11) and returns its path.
func writeSquarePNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 4; y <= 11; y++ {
		for x := 4; x <= 11; x++ {
			img.Set(x, y, color.White)
		}
	}

	path := filepath.Join(t.TempDir(), "square.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	return path
}

func pathArgs(path string) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{"path": %q}`, path))
}

func TestExecuteTool_ImageLoad(t *testing.T) {
	s := newTestServer()
	path := writeSquarePNG(t)

	result, err := s.executeTool("image_load", pathArgs(path))
	if err != nil {
		t.Fatalf("image_load failed: %v", err)
	}
	info, ok := result.(*imaging.ImageInfo)
	if !ok {
		t.Fatalf("result type: got %T", result)
	}
	if info.Width != 16 || info.Height != 16 {
		t.Errorf("dimensions: got %dx%d, want 16x16", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("format: got %q, want png", info.Format)
	}
}

func TestExecuteTool_ImageDimensions(t *testing.T) {
	s := newTestServer()
	path := writeSquarePNG(t)

	result, err := s.executeTool("image_dimensions", pathArgs(path))
	if err != nil {
		t.Fatalf("image_dimensions failed: %v", err)
	}
	dims, ok := result.(*imaging.DimensionsResult)
	if !ok {
		t.Fatalf("result type: got %T", result)
	}
	if dims.Width != 16 || dims.Height != 16 {
		t.Errorf("dimensions: got %dx%d, want 16x16", dims.Width, dims.Height)
	}
}

func TestExecuteTool_GrayscaleReport(t *testing.T) {
	s := newTestServer()
	path := writeSquarePNG(t)

	result, err := s.executeTool("image_grayscale_report", pathArgs(path))
	if err != nil {
		t.Fatalf("image_grayscale_report failed: %v", err)
	}
	report, ok := result.(*imaging.ReportResult)
	if !ok {
		t.Fatalf("result type: got %T", result)
	}
	if report.Status != "Image processed: 16x16" {
		t.Errorf("status: got %q", report.Status)
	}
	// 64 white pixels out of 256.
	if report.MeanLuma < 50 || report.MeanLuma > 80 {
		t.Errorf("mean luma: got %.1f, want ~64", report.MeanLuma)
	}
}

func TestExecuteTool_Binarize(t *testing.T) {
	s := newTestServer()
	path := writeSquarePNG(t)

	result, err := s.executeTool("image_binarize",
		json.RawMessage(fmt.Sprintf(`{"path": %q, "algorithm": 0}`, path)))
	if err != nil {
		t.Fatalf("image_binarize failed: %v", err)
	}
	br, ok := result.(*binarizeResult)
	if !ok {
		t.Fatalf("result type: got %T", result)
	}
	if !br.Applied || br.Algorithm != "fixed-global" {
		t.Errorf("outcome: got %+v", br)
	}
	if br.Note != "" {
		t.Errorf("unexpected note: %q", br.Note)
	}
	if br.Image == nil || br.Image.MimeType != "image/png" || br.Image.ImageBase64 == "" {
		t.Errorf("image payload: got %+v", br.Image)
	}
}

func TestExecuteTool_BinarizeUnknownCodeIsNoOp(t *testing.T) {
	s := newTestServer()
	path := writeSquarePNG(t)

	result, err := s.executeTool("image_binarize",
		json.RawMessage(fmt.Sprintf(`{"path": %q, "algorithm": 9}`, path)))
	if err != nil {
		t.Fatalf("unknown algorithm code must not be an error, got %v", err)
	}
	br, ok := result.(*binarizeResult)
	if !ok {
		t.Fatalf("result type: got %T", result)
	}
	if br.Applied {
		t.Error("Applied should be false for an unrecognized code")
	}
	if !strings.Contains(br.Note, "not supported") {
		t.Errorf("note: got %q", br.Note)
	}
	if br.Image == nil {
		t.Error("grayscale image still expected in the result")
	}
}

func TestExecuteTool_TraceContours(t *testing.T) {
	s := newTestServer()
	path := writeSquarePNG(t)

	result, err := s.executeTool("image_trace_contours",
		json.RawMessage(fmt.Sprintf(`{"path": %q, "pre_binarize": true, "algorithm": 0}`, path)))
	if err != nil {
		t.Fatalf("image_trace_contours failed: %v", err)
	}
	tr, ok := result.(*traceContoursResult)
	if !ok {
		t.Fatalf("result type: got %T", result)
	}
	if tr.Count != 1 {
		t.Fatalf("count: got %d, want 1", tr.Count)
	}
	if len(tr.Contours) != 1 || len(tr.Contours[0].Points) != 4 {
		t.Errorf("contours: got %+v, want one 4-vertex square", tr.Contours)
	}
	want := contour.Node{Next: -1, Prev: -1, FirstChild: -1, Parent: -1}
	if tr.Hierarchy[0] != want {
		t.Errorf("hierarchy: got %+v", tr.Hierarchy[0])
	}
	if len(tr.Features) != 1 || tr.Features[0].Depth != 0 {
		t.Errorf("features: got %+v", tr.Features)
	}
}

func TestExecuteTool_TraceContoursOmitPoints(t *testing.T) {
	s := newTestServer()
	path := writeSquarePNG(t)

	result, err := s.executeTool("image_trace_contours",
		json.RawMessage(fmt.Sprintf(`{"path": %q, "pre_binarize": true, "omit_points": true}`, path)))
	if err != nil {
		t.Fatalf("image_trace_contours failed: %v", err)
	}
	tr := result.(*traceContoursResult)
	if tr.Contours != nil {
		t.Errorf("contours should be omitted, got %d", len(tr.Contours))
	}
	if tr.Count != 1 || len(tr.Hierarchy) != 1 {
		t.Errorf("count/hierarchy still expected: %+v", tr)
	}
}

func TestExecuteTool_RenderContours(t *testing.T) {
	s := newTestServer()
	path := writeSquarePNG(t)

	result, err := s.executeTool("image_render_contours",
		json.RawMessage(fmt.Sprintf(`{"path": %q, "pre_binarize": true}`, path)))
	if err != nil {
		t.Fatalf("image_render_contours failed: %v", err)
	}
	overlay, ok := result.(*render.OverlayResult)
	if !ok {
		t.Fatalf("result type: got %T", result)
	}
	if overlay.Width != 16 || overlay.Height != 16 || overlay.ContourCount != 1 {
		t.Errorf("overlay: got %+v", overlay)
	}
	if overlay.MimeType != "image/png" || overlay.ImageBase64 == "" {
		t.Errorf("payload: mime=%q, empty=%v", overlay.MimeType, overlay.ImageBase64 == "")
	}
}

func TestExecuteTool_Errors(t *testing.T) {
	s := newTestServer()
	path := writeSquarePNG(t)

	tests := []struct {
		name string
		tool string
		args json.RawMessage
	}{
		{"unknown tool", "image_rotate", pathArgs(path)},
		{"malformed args", "image_binarize", json.RawMessage(`{"path": 42}`)},
		{"missing file", "image_trace_contours", pathArgs(filepath.Join(t.TempDir(), "absent.png"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.executeTool(tt.tool, tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestHandleToolsCall_WrapsResultInContent(t *testing.T) {
	s := newTestServer()
	path := writeSquarePNG(t)

	params, _ := json.Marshal(ToolCallParams{
		Name:      "image_dimensions",
		Arguments: pathArgs(path),
	})
	resp := s.handleToolsCall(&MCPRequest{JSONRPC: "2.0", ID: 5, Params: params})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}

	result := resp.Result.(map[string]interface{})
	content := result["content"].([]map[string]interface{})
	if len(content) != 1 || content[0]["type"] != "text" {
		t.Fatalf("content: got %+v", content)
	}
	text := content[0]["text"].(string)
	var dims imaging.DimensionsResult
	if err := json.Unmarshal([]byte(text), &dims); err != nil {
		t.Fatalf("content text is not JSON: %v", err)
	}
	if dims.Width != 16 || dims.Height != 16 {
		t.Errorf("dimensions: got %+v", dims)
	}
}

func TestHandleToolsCall_ToolErrorCode(t *testing.T) {
	s := newTestServer()

	params, _ := json.Marshal(ToolCallParams{
		Name:      "image_load",
		Arguments: pathArgs("/nonexistent/file.png"),
	})
	resp := s.handleToolsCall(&MCPRequest{JSONRPC: "2.0", ID: 6, Params: params})
	if resp.Error == nil {
		t.Fatal("expected an error response")
	}
	if resp.Error.Code != -32000 {
		t.Errorf("error code: got %d, want -32000", resp.Error.Code)
	}
}

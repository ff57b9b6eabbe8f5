package server

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func newTestServer() *Server {
	return New(zerolog.Nop())
}

func TestHandleRequest_Initialize(t *testing.T) {
	s := newTestServer()

	resp := s.handleRequest(&MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "initialize",
	})
	if resp == nil {
		t.Fatal("initialize must produce a response")
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result type: got %T", resp.Result)
	}
	if got := result["protocolVersion"]; got != "2024-11-05" {
		t.Errorf("protocolVersion: got %v", got)
	}
	info, ok := result["serverInfo"].(map[string]interface{})
	if !ok {
		t.Fatal("serverInfo missing")
	}
	if info["name"] != "contour-tools-mcp" {
		t.Errorf("server name: got %v", info["name"])
	}
}

func TestHandleRequest_Ping(t *testing.T) {
	s := newTestServer()

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 7, Method: "ping"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("ping response: %+v", resp)
	}
	if resp.ID != 7 {
		t.Errorf("ID: got %v, want 7", resp.ID)
	}
}

func TestHandleRequest_InitializedNotification(t *testing.T) {
	s := newTestServer()

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", Method: "notifications/initialized"})
	if resp != nil {
		t.Errorf("notification must not produce a response, got %+v", resp)
	}
}

func TestHandleRequest_UnknownMethod(t *testing.T) {
	s := newTestServer()

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 2, Method: "resources/list"})
	if resp == nil || resp.Error == nil {
		t.Fatal("unknown method must produce an error response")
	}
	if resp.Error.Code != -32601 {
		t.Errorf("error code: got %d, want -32601", resp.Error.Code)
	}
}

func TestHandleRequest_ToolsList(t *testing.T) {
	s := newTestServer()

	resp := s.handleRequest(&MCPRequest{JSONRPC: "2.0", ID: 3, Method: "tools/list"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("tools/list response: %+v", resp)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result type: got %T", resp.Result)
	}
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatalf("tools type: got %T", result["tools"])
	}
	if len(tools) != 7 {
		t.Errorf("tool count: got %d, want 7", len(tools))
	}
}

func TestMCPResponse_Marshaling(t *testing.T) {
	resp := &MCPResponse{
		JSONRPC: "2.0",
		ID:      1,
		Result:  map[string]interface{}{"ok": true},
	}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["jsonrpc"] != "2.0" {
		t.Errorf("jsonrpc: got %v", decoded["jsonrpc"])
	}
	if _, present := decoded["error"]; present {
		t.Error("error field should be omitted when nil")
	}
}

func TestMCPError_CarriesData(t *testing.T) {
	s := newTestServer()

	resp := s.errorResponse(4, -32000, "Tool execution failed", "file not found")
	if resp.Error == nil {
		t.Fatal("error missing")
	}
	if resp.Error.Code != -32000 || resp.Error.Data != "file not found" {
		t.Errorf("error: %+v", resp.Error)
	}
}

// Package mcp exposes the study server to assistants as an MCP stdio
// server. Every tool is a thin call to the HTTP API.
package mcp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"
)

const protocolVersion = "2024-11-05"

// Server implements an MCP stdio server that delegates to the study HTTP API.
type Server struct {
	serverURL string
	apiKey    string
	client    *http.Client
	out       io.Writer
}

// NewServer creates a new MCP server writing responses to out.
func NewServer(serverURL, apiKey string, out io.Writer) *Server {
	return &Server{
		serverURL: strings.TrimRight(serverURL, "/"),
		apiKey:    apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		out: out,
	}
}

// Run reads one request per line from in. Blocks until in is closed.
func (s *Server) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeResponse(errorResponse(nil, CodeParseError, "parse error: "+err.Error()))
			continue
		}

		if resp := s.handleRequest(&req); resp != nil {
			s.writeResponse(resp)
		}
	}

	return scanner.Err()
}

func (s *Server) handleRequest(req *Request) *Response {
	switch req.Method {
	case "initialize":
		return &Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: InitializeResult{
				ProtocolVersion: protocolVersion,
				Capabilities:    ServerCapabilities{Tools: &ToolCapabilities{}},
				ServerInfo:      ServerInfo{Name: "studytime", Version: "1.0.0"},
			},
		}
	case "initialized", "notifications/initialized":
		// Notification, no response
		return nil
	case "tools/list":
		return &Response{JSONRPC: "2.0", ID: req.ID, Result: ToolsListResult{Tools: ToolDefinitions()}}
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &Response{JSONRPC: "2.0", ID: req.ID, Result: map[string]string{}}
	default:
		return errorResponse(req.ID, CodeMethodNotFound, "method not found: "+req.Method)
	}
}

func (s *Server) handleToolsCall(req *Request) *Response {
	raw, err := json.Marshal(req.Params)
	if err != nil {
		return errorResponse(req.ID, CodeInvalidParams, "invalid params")
	}

	var params CallToolParams
	if err := json.Unmarshal(raw, &params); err != nil {
		return errorResponse(req.ID, CodeInvalidParams, "invalid params: "+err.Error())
	}

	result, isError := s.dispatchTool(params.Name, params.Arguments)

	return &Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: CallToolResult{
			Content: []ContentBlock{{Type: "text", Text: result}},
			IsError: isError,
		},
	}
}

func (s *Server) dispatchTool(name string, args map[string]any) (string, bool) {
	switch name {
	case "study_log_minutes":
		return s.call(http.MethodPost, "/sessions", map[string]any{
			"minutes": int(getFloat(args, "minutes", 0)),
		})
	case "study_quick_add":
		return s.call(http.MethodPost, "/sessions/quick", nil)
	case "study_weekly":
		return s.call(http.MethodGet, "/weekly", nil)
	case "deadline_add":
		return s.call(http.MethodPost, "/deadlines", map[string]any{
			"title":   getString(args, "title"),
			"dueText": getString(args, "dueText"),
		})
	case "deadline_list":
		return s.call(http.MethodGet, "/deadlines", nil)
	case "deadline_delete":
		id := int64(getFloat(args, "id", 0))
		if id <= 0 {
			return "id must be a positive deadline id", true
		}
		return s.call(http.MethodDelete, fmt.Sprintf("/deadlines/%d", id), nil)
	case "timer_status":
		return s.call(http.MethodGet, "/timer", nil)
	case "timer_control":
		action := getString(args, "action")
		if !slices.Contains(timerActions, action) {
			return fmt.Sprintf("unknown timer action %q", action), true
		}
		return s.call(http.MethodPost, "/timer/"+action, nil)
	default:
		return fmt.Sprintf("unknown tool: %s", name), true
	}
}

// --- HTTP helpers ---

func (s *Server) call(method, path string, body any) (string, bool) {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Sprintf("marshal error: %s", err), true
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, s.serverURL+path, reader)
	if err != nil {
		return fmt.Sprintf("request error: %s", err), true
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Sprintf("HTTP error: %s", err), true
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Sprintf("read error: %s", err), true
	}

	if resp.StatusCode == http.StatusNoContent {
		return "ok", false
	}
	return strings.TrimSpace(string(respBody)), resp.StatusCode >= 400
}

// --- Response helpers ---

func (s *Server) writeResponse(resp *Response) {
	data, _ := json.Marshal(resp)
	fmt.Fprintf(s.out, "%s\n", data)
}

func errorResponse(id any, code int, message string) *Response {
	return &Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	}
}

// --- Argument helpers ---

func getFloat(args map[string]any, key string, fallback float64) float64 {
	if v, ok := args[key]; ok {
		switch val := v.(type) {
		case float64:
			return val
		case int:
			return float64(val)
		}
	}
	return fallback
}

func getString(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

package mcp

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Primadeb/pri2025Study/internal/api"
	"github.com/Primadeb/pri2025Study/internal/store"
	"github.com/Primadeb/pri2025Study/internal/study"
	"github.com/Primadeb/pri2025Study/internal/timer"
)

// newBackend starts the real HTTP API over a temp database.
func newBackend(t *testing.T, apiKey string) *httptest.Server {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "mcp.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := study.NewService(store.NewSessionStore(db), store.NewDeadlineStore(db), store.NewSettingsStore(db), logger)
	engine := timer.New(timer.Config{Study: 2 * time.Second, Break: time.Second})

	srv := httptest.NewServer(api.NewRouter(db, svc, engine, apiKey, logger))
	t.Cleanup(srv.Close)
	return srv
}

// exchange feeds requests to a server and returns the decoded responses.
func exchange(t *testing.T, s *Server, out *bytes.Buffer, requests ...string) []Response {
	t.Helper()
	if err := s.Run(strings.NewReader(strings.Join(requests, "\n") + "\n")); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var responses []Response
	dec := json.NewDecoder(out)
	for dec.More() {
		var resp Response
		if err := dec.Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		responses = append(responses, resp)
	}
	return responses
}

// toolResult re-decodes a generic Result into CallToolResult.
func toolResult(t *testing.T, resp Response) CallToolResult {
	t.Helper()
	raw, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatal(err)
	}
	var result CallToolResult
	if err := json.Unmarshal(raw, &result); err != nil {
		t.Fatalf("decode tool result: %v", err)
	}
	return result
}

func TestProtocolMethods(t *testing.T) {
	var out bytes.Buffer
	s := NewServer("http://unused", "", &out)

	responses := exchange(t, s, &out,
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		`{"jsonrpc":"2.0","id":3,"method":"bogus"}`,
		`not json`,
	)

	if len(responses) != 4 {
		t.Fatalf("expected 4 responses (notification has none), got %d", len(responses))
	}
	if responses[0].Error != nil {
		t.Errorf("initialize failed: %+v", responses[0].Error)
	}

	raw, _ := json.Marshal(responses[1].Result)
	var list ToolsListResult
	if err := json.Unmarshal(raw, &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Tools) != len(ToolDefinitions()) {
		t.Errorf("expected %d tools, got %d", len(ToolDefinitions()), len(list.Tools))
	}

	if responses[2].Error == nil || responses[2].Error.Code != CodeMethodNotFound {
		t.Errorf("expected method not found, got %+v", responses[2])
	}
	if responses[3].Error == nil || responses[3].Error.Code != CodeParseError {
		t.Errorf("expected parse error, got %+v", responses[3])
	}
}

func TestToolsAgainstAPI(t *testing.T) {
	backend := newBackend(t, "secret")

	var out bytes.Buffer
	s := NewServer(backend.URL+"/", "secret", &out)

	responses := exchange(t, s, &out,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"study_log_minutes","arguments":{"minutes":45}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"study_quick_add"}}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"study_weekly"}}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"deadline_add","arguments":{}}}`,
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"timer_control","arguments":{"action":"start"}}}`,
		`{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"timer_control","arguments":{"action":"explode"}}}`,
		`{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"deadline_delete","arguments":{"id":999}}}`,
		`{"jsonrpc":"2.0","id":8,"method":"tools/call","params":{"name":"study_log_minutes","arguments":{"minutes":-20}}}`,
	)
	if len(responses) != 8 {
		t.Fatalf("expected 8 responses, got %d", len(responses))
	}

	tests := []struct {
		name     string
		idx      int
		contains string
		isError  bool
	}{
		{"log minutes", 0, `"weeklyTotal":45`, false},
		{"quick add", 1, `"weeklyTotal":75`, false},
		{"weekly", 2, `"weeklyTotal":75`, false},
		{"deadline placeholders", 3, `"title":"Untitled"`, false},
		{"timer start", 4, `"running":true`, false},
		{"bad action", 5, "unknown timer action", true},
		{"missing deadline", 6, "not found", true},
		{"negative minutes skipped", 7, `"skipped":true`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := toolResult(t, responses[tt.idx])
			if result.IsError != tt.isError {
				t.Errorf("IsError = %v, want %v (%s)", result.IsError, tt.isError, result.Content[0].Text)
			}
			if !strings.Contains(result.Content[0].Text, tt.contains) {
				t.Errorf("expected %q in %q", tt.contains, result.Content[0].Text)
			}
		})
	}
}

func TestToolsWithoutKeyAreRejected(t *testing.T) {
	backend := newBackend(t, "secret")

	var out bytes.Buffer
	s := NewServer(backend.URL, "", &out)

	responses := exchange(t, s, &out,
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"study_weekly"}}`,
	)
	if result := toolResult(t, responses[0]); !result.IsError {
		t.Errorf("expected unauthorized error, got %q", result.Content[0].Text)
	}
}

package project_tools

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"golang.org/x/oauth2"

	"github.com/hostedmcp/basecamp-mcp/internal/basecamp"
	"github.com/hostedmcp/basecamp-mcp/internal/config"
	"github.com/hostedmcp/basecamp-mcp/internal/launchpad"
	"github.com/hostedmcp/basecamp-mcp/internal/server"
	"github.com/hostedmcp/basecamp-mcp/internal/tokenstore"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newToolTestContext builds a ServerContext backed by a fake Basecamp API.
// When apiHandler is nil no client is injected, which exercises the
// unauthenticated path.
func newToolTestContext(t *testing.T, apiHandler http.Handler) *server.ServerContext {
	t.Helper()
	cfg := &config.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AccountID:    "999999",
		TokenDir:     t.TempDir(),
	}
	cfg.ApplyDefaults()

	store := tokenstore.NewFileStore(filepath.Join(cfg.TokenDir, cfg.TokenFilename))
	flow, err := launchpad.NewFlow(cfg, store, discardLogger())
	if err != nil {
		t.Fatalf("failed to create oauth flow: %v", err)
	}
	sc, err := server.NewServerContext(context.Background(), cfg, flow, discardLogger())
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })

	if apiHandler != nil {
		api := httptest.NewServer(apiHandler)
		t.Cleanup(api.Close)

		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
		client, err := basecamp.NewClient(context.Background(), cfg.AccountID, cfg.UserAgent, ts, basecamp.WithBaseURL(api.URL))
		if err != nil {
			t.Fatalf("failed to create basecamp client: %v", err)
		}
		sc.SetBasecampClient(client)
	}
	return sc
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("expected a result, got nil")
	}
	if len(result.Content) == 0 {
		t.Fatal("expected result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestRegisterProjectTools(t *testing.T) {
	sc := newToolTestContext(t, nil)
	s := mcpserver.NewMCPServer("test-server", "1.0.0",
		mcpserver.WithToolCapabilities(true),
	)

	if err := RegisterProjectTools(s, sc); err != nil {
		t.Fatalf("RegisterProjectTools failed: %v", err)
	}
}

func TestListProjects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/999999/projects.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id": 1, "status": "active", "name": "Alpha Launch", "description": "Q3 launch work"},
			{"id": 2, "status": "active", "name": "Website Redesign", "description": ""}
		]`)
	})
	sc := newToolTestContext(t, mux)

	result, err := handleListProjects(context.Background(), callRequest(nil), sc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error result: %s", resultText(t, result))
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Alpha Launch") || !strings.Contains(text, "Website Redesign") {
		t.Errorf("expected project names in output, got: %s", text)
	}
}

func TestListProjects_NotAuthenticated(t *testing.T) {
	sc := newToolTestContext(t, nil)

	result, err := handleListProjects(context.Background(), callRequest(nil), sc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	if !strings.Contains(resultText(t, result), "/oauth/start") {
		t.Errorf("expected authorization hint in error, got: %s", resultText(t, result))
	}
}

func TestGetProject(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/999999/projects/12345.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"id": 12345,
			"status": "active",
			"name": "Alpha Launch",
			"dock": [
				{"id": 100, "name": "todoset", "title": "To-dos", "enabled": true},
				{"id": 200, "name": "chat", "title": "Campfire", "enabled": true}
			]
		}`)
	})
	sc := newToolTestContext(t, mux)

	result, err := handleGetProject(context.Background(), callRequest(map[string]interface{}{
		"project_id": float64(12345),
	}), sc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error result: %s", resultText(t, result))
	}

	text := resultText(t, result)
	if !strings.Contains(text, "Alpha Launch") {
		t.Errorf("expected project name in output, got: %s", text)
	}
	if !strings.Contains(text, "todoset") {
		t.Errorf("expected dock entries in output, got: %s", text)
	}
}

func TestGetProject_MissingProjectID(t *testing.T) {
	sc := newToolTestContext(t, http.NewServeMux())

	result, err := handleGetProject(context.Background(), callRequest(nil), sc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	if !strings.Contains(resultText(t, result), "project_id is required") {
		t.Errorf("unexpected error message: %s", resultText(t, result))
	}
}

func TestGetProject_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/999999/projects/404.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "Project not found"}`)
	})
	sc := newToolTestContext(t, mux)

	result, err := handleGetProject(context.Background(), callRequest(map[string]interface{}{
		"project_id": float64(404),
	}), sc)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.IsError {
		t.Fatal("expected an error result")
	}
	if !strings.Contains(resultText(t, result), "Failed to get project") {
		t.Errorf("unexpected error message: %s", resultText(t, result))
	}
}

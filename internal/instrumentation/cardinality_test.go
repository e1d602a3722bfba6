package instrumentation

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/", "/"},
		{"/health", "/health"},
		{"/healthz", "/healthz"},
		{"/healthz/detailed", "/healthz/detailed"},
		{"/readyz", "/readyz"},
		{"/debug/info", "/debug/info"},
		{"/metrics", "/metrics"},
		{"/mcp", "/mcp"},
		{"/mcp/", "/mcp"},
		{"/mcp/message", "/mcp"},
		{"/oauth", "/oauth"},
		{"/oauth/", "/oauth/"},
		{"/oauth/start", "/oauth/start"},
		{"/oauth/callback", "/oauth/callback"},
		{"/oauth/status", "/oauth/status"},
		{"/oauth/logout", "/oauth/logout"},
		{"/oauth/unknown", "/oauth/other"},
		{"/oauth/callback/extra", "/oauth/other"},
		{"/wp-admin.php", "other"},
		{"/favicon.ico", "other"},
		{"", "other"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			result := NormalizePath(tt.path)
			if result != tt.expected {
				t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, result, tt.expected)
			}
		})
	}
}

func TestOperationConstants(t *testing.T) {
	operations := map[string]string{
		OperationList:     "list",
		OperationGet:      "get",
		OperationCreate:   "create",
		OperationComplete: "complete",
		OperationMove:     "move",
		OperationSearch:   "search",
	}

	for constant, expected := range operations {
		if constant != expected {
			t.Errorf("Operation constant = %q, want %q", constant, expected)
		}
	}
}

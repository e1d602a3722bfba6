package instrumentation

import "strings"

// Cardinality management helpers for metrics.
// These functions reduce high-cardinality label values to prevent metrics explosion.
//
// # Warning
//
// High cardinality in metrics can cause:
// - Increased memory usage in Prometheus/metrics backends
// - Slower query performance
// - Higher storage costs
//
// Always use these helpers when recording metrics with request-derived values.

// NormalizePath maps a request path onto the fixed route set so that
// arbitrary URLs (scanners, typos, MCP session suffixes) cannot create
// unbounded path label values.
//
// Example:
//
//	NormalizePath("/")                // "/"
//	NormalizePath("/mcp")             // "/mcp"
//	NormalizePath("/oauth/callback")  // "/oauth/callback"
//	NormalizePath("/oauth/whatever")  // "/oauth/other"
//	NormalizePath("/wp-admin.php")    // "other"
func NormalizePath(path string) string {
	switch path {
	case "/", "/health", "/healthz", "/healthz/detailed", "/readyz", "/debug/info", "/metrics":
		return path
	}

	if path == "/mcp" || strings.HasPrefix(path, "/mcp/") {
		return "/mcp"
	}

	if strings.HasPrefix(path, "/oauth") {
		switch path {
		case "/oauth", "/oauth/", "/oauth/start", "/oauth/callback", "/oauth/status", "/oauth/logout":
			return path
		}
		return "/oauth/other"
	}

	return "other"
}

// Common operation types for Basecamp API metrics.
// Status, OAuth, and facet constants are defined in config.go.
const (
	OperationList     = "list"
	OperationGet      = "get"
	OperationCreate   = "create"
	OperationComplete = "complete"
	OperationMove     = "move"
	OperationSearch   = "search"
)

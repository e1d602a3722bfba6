// Package server composes and runs the Basecamp MCP service.
//
// # Key Components
//
// Compose wires the whole service from a config.Config: it resolves the
// token directory, builds the OAuth flow and the MCP server with its tools,
// and assembles a single HTTP handler with the routes
//
//	/mcp          MCP streamable HTTP endpoint
//	/oauth/...    browser-facing OAuth flow (start, callback, status, logout)
//	/             fixed liveness payload {"ok":true} (also at /health)
//	/healthz      liveness probe
//	/readyz       readiness probe
//	/debug/info   composition facts, no secrets
//
// App.Serve runs that handler on all interfaces and drains in-flight
// requests on SIGINT/SIGTERM.
//
// ServerContext carries the state shared by the MCP tool handlers: the
// configuration, the OAuth flow, and a lazily built Basecamp API client.
// The client is only constructed on the first tool call so the service can
// boot, and the OAuth flow can be completed, before any token exists.
//
// MetricsServer exposes Prometheus metrics on a separate listener so
// operational metrics never ride on the public MCP port.
package server

// Package logging provides structured logging utilities for the basecamp-mcp service.
//
// This package centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Consistent attribute naming across the codebase
//   - Token sanitization for OAuth-adjacent log lines
//   - Adapter bridging slog to the MCP transport's logger interface
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "basecamp.list_projects")
//	logger.Info("listing projects",
//	    logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Debug("token loaded",
//	    "token", logging.SanitizeToken(tok.AccessToken))
//
// # Security Considerations
//
// OAuth tokens are never logged directly; SanitizeToken reduces them to a
// length indicator.
package logging

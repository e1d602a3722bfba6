// Package common provides shared utilities for MCP tool implementations:
// argument coercion for the int64 IDs Basecamp uses everywhere, and the
// instrumented handler wrapper every tool registers through.
package common

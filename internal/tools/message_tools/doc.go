// Package message_tools provides MCP tools for Basecamp message boards.
//
// Every project has at most one message board, resolved through the
// project dock. Posting requires the server to run with mutations
// enabled; new messages publish immediately unless a draft status is
// requested.
package message_tools

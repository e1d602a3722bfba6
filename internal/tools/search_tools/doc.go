// Package search_tools provides the MCP search tool for Basecamp.
//
// The Basecamp API has no server-side text search, so the tool walks
// the recordings index for one recording type and filters titles
// client side. Results degrade gracefully to a friendly no-match
// message instead of an empty JSON array.
package search_tools

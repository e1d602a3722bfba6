// Package people_tools provides MCP tools for Basecamp people.
package people_tools

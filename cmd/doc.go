// Package cmd implements the command-line interface for basecamp-mcp.
//
// This package provides the following commands:
//   - serve: Start the MCP server (HTTP or stdio transport)
//   - auth: Run the Launchpad OAuth flow from the terminal
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The serve command is the default command when no subcommand is specified.
package cmd

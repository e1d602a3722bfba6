// Package project_tools provides MCP tools for Basecamp projects.
//
// Projects are the entry point into a Basecamp account: every other
// resource (to-dos, messages, campfires, card tables) lives inside a
// project, and a project's dock lists which of those tools are enabled.
package project_tools

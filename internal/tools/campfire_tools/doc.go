// Package campfire_tools provides MCP tools for Basecamp campfires.
//
// Campfires are the chat rooms of Basecamp. The listing endpoint is
// account-wide, so no project ID is needed to discover campfires;
// reading and posting lines is always project-scoped.
package campfire_tools

// Package todo_tools provides MCP tools for Basecamp to-dos.
//
// To-dos live in to-do lists, which belong to a project's to-do set.
// The list tools resolve the to-do set through the project dock, so
// callers only ever supply project and list IDs. Creating, completing
// and reopening to-dos requires the server to run with mutations
// enabled.
package todo_tools

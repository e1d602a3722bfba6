// Package card_tools provides MCP tools for Basecamp card tables.
//
// A card table is the kanban view of a project: columns hold cards,
// and cards move between columns as work progresses. The table tool
// returns the column layout, which callers need before listing,
// creating or moving cards.
package card_tools

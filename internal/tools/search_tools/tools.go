package search_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/hostedmcp/basecamp-mcp/internal/instrumentation"
	"github.com/hostedmcp/basecamp-mcp/internal/server"
	"github.com/hostedmcp/basecamp-mcp/internal/tools/common"
)

// RegisterSearchTools registers the search tool with the MCP server
func RegisterSearchTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	searchTool := mcp.NewTool("basecamp_search",
		mcp.WithDescription("Search Basecamp recordings by title. Searches to-dos by default; pass a type to search messages, documents or other recordings."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to match against recording titles (case insensitive)"),
		),
		mcp.WithString("type",
			mcp.Description("Recording type to search: Todo (default), Todolist, Message, Comment, Document or Upload"),
		),
		mcp.WithNumber("project_id",
			mcp.Description("Limit the search to one project (default: all projects)"),
		),
	)

	s.AddTool(searchTool, common.InstrumentedToolHandlerWithService(
		"basecamp_search", instrumentation.ServiceSearch, instrumentation.OperationSearch, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSearch(ctx, request, sc)
		}))

	return nil
}

func handleSearch(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	query, err := common.StringArg(args, "query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recordingType := common.OptionalStringArg(args, "type")
	projectID, err := common.OptionalInt64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	matches, err := client.Search(ctx, query, recordingType, projectID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Search failed: %v", err)), nil
	}

	if len(matches) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No recordings matching %q", query)), nil
	}

	result, _ := json.MarshalIndent(matches, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

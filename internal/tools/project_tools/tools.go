package project_tools

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

// RegisterProjectTools registers project tools with the MCP server
func RegisterProjectTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List projects tool
	listProjectsTool := mcp.NewTool("basecamp_list_projects",
		mcp.WithDescription("List all active Basecamp projects visible to the authenticated user"),
	)

	s.AddTool(listProjectsTool, common.InstrumentedToolHandlerWithService(
		"basecamp_list_projects", instrumentation.ServiceProjects, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListProjects(ctx, request, sc)
		}))

	// Get project tool
	getProjectTool := mcp.NewTool("basecamp_get_project",
		mcp.WithDescription("Get a single Basecamp project including its dock of enabled tools (to-dos, message board, campfire, card table)"),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project to retrieve"),
		),
	)

	s.AddTool(getProjectTool, common.InstrumentedToolHandlerWithService(
		"basecamp_get_project", instrumentation.ServiceProjects, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetProject(ctx, request, sc)
		}))

	return nil
}

func handleListProjects(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	projects, err := client.ListProjects(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list projects: %v", err)), nil
	}

	result, _ := json.MarshalIndent(projects, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetProject(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.Int64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	project, err := client.GetProject(ctx, projectID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get project: %v", err)), nil
	}

	result, _ := json.MarshalIndent(project, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

package campfire_tools

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

// RegisterCampfireTools registers campfire tools with the MCP server.
// The post tool is skipped when readOnly is set.
func RegisterCampfireTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List campfires tool
	listCampfiresTool := mcp.NewTool("basecamp_list_campfires",
		mcp.WithDescription("List all campfires (chat rooms) visible to the authenticated user across projects"),
	)

	s.AddTool(listCampfiresTool, common.InstrumentedToolHandlerWithService(
		"basecamp_list_campfires", instrumentation.ServiceCampfires, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListCampfires(ctx, request, sc)
		}))

	// Get campfire lines tool
	getCampfireLinesTool := mcp.NewTool("basecamp_get_campfire_lines",
		mcp.WithDescription("Get the recent chat lines of a campfire"),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project the campfire belongs to"),
		),
		mcp.WithNumber("campfire_id",
			mcp.Required(),
			mcp.Description("The ID of the campfire"),
		),
	)

	s.AddTool(getCampfireLinesTool, common.InstrumentedToolHandlerWithService(
		"basecamp_get_campfire_lines", instrumentation.ServiceCampfires, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetCampfireLines(ctx, request, sc)
		}))

	if !readOnly {
		// Post campfire line tool
		postCampfireLineTool := mcp.NewTool("basecamp_post_campfire_line",
			mcp.WithDescription("Post a chat line to a campfire"),
			mcp.WithNumber("project_id",
				mcp.Required(),
				mcp.Description("The ID of the project the campfire belongs to"),
			),
			mcp.WithNumber("campfire_id",
				mcp.Required(),
				mcp.Description("The ID of the campfire"),
			),
			mcp.WithString("content",
				mcp.Required(),
				mcp.Description("The chat line text"),
			),
		)

		s.AddTool(postCampfireLineTool, common.InstrumentedToolHandlerWithService(
			"basecamp_post_campfire_line", instrumentation.ServiceCampfires, instrumentation.OperationCreate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handlePostCampfireLine(ctx, request, sc)
			}))
	}

	return nil
}

func handleListCampfires(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	campfires, err := client.ListCampfires(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list campfires: %v", err)), nil
	}

	result, _ := json.MarshalIndent(campfires, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetCampfireLines(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.Int64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	campfireID, err := common.Int64Arg(args, "campfire_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	lines, err := client.GetCampfireLines(ctx, projectID, campfireID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get campfire lines: %v", err)), nil
	}

	result, _ := json.MarshalIndent(lines, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handlePostCampfireLine(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.Int64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	campfireID, err := common.Int64Arg(args, "campfire_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := common.StringArg(args, "content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	line, err := client.CreateCampfireLine(ctx, projectID, campfireID, content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to post campfire line: %v", err)), nil
	}

	result, _ := json.MarshalIndent(line, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

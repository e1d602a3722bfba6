package people_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/hostedmcp/basecamp-mcp/internal/basecamp"
	"github.com/hostedmcp/basecamp-mcp/internal/instrumentation"
	"github.com/hostedmcp/basecamp-mcp/internal/server"
	"github.com/hostedmcp/basecamp-mcp/internal/tools/common"
)

// RegisterPeopleTools registers people tools with the MCP server
func RegisterPeopleTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// List people tool
	listPeopleTool := mcp.NewTool("basecamp_list_people",
		mcp.WithDescription("List the people in the Basecamp account, or the people on one project"),
		mcp.WithNumber("project_id",
			mcp.Description("Limit the listing to one project's members (default: whole account)"),
		),
	)

	s.AddTool(listPeopleTool, common.InstrumentedToolHandlerWithService(
		"basecamp_list_people", instrumentation.ServicePeople, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListPeople(ctx, request, sc)
		}))

	// Get my profile tool
	getMyProfileTool := mcp.NewTool("basecamp_get_my_profile",
		mcp.WithDescription("Get the profile of the authenticated Basecamp user"),
	)

	s.AddTool(getMyProfileTool, common.InstrumentedToolHandlerWithService(
		"basecamp_get_my_profile", instrumentation.ServicePeople, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetMyProfile(ctx, request, sc)
		}))

	return nil
}

func handleListPeople(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.OptionalInt64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var people []basecamp.Person
	if projectID > 0 {
		people, err = client.ListProjectPeople(ctx, projectID)
	} else {
		people, err = client.ListPeople(ctx)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list people: %v", err)), nil
	}

	result, _ := json.MarshalIndent(people, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetMyProfile(ctx context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	person, err := client.GetMyProfile(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get profile: %v", err)), nil
	}

	result, _ := json.MarshalIndent(person, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

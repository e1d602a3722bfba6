package message_tools

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

// RegisterMessageTools registers message-board tools with the MCP server.
// The create tool is skipped when readOnly is set.
func RegisterMessageTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List messages tool
	listMessagesTool := mcp.NewTool("basecamp_list_messages",
		mcp.WithDescription("List the message-board posts of a Basecamp project"),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project"),
		),
	)

	s.AddTool(listMessagesTool, common.InstrumentedToolHandlerWithService(
		"basecamp_list_messages", instrumentation.ServiceMessages, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListMessages(ctx, request, sc)
		}))

	// Get message tool
	getMessageTool := mcp.NewTool("basecamp_get_message",
		mcp.WithDescription("Get a single message with its full content"),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project"),
		),
		mcp.WithNumber("message_id",
			mcp.Required(),
			mcp.Description("The ID of the message"),
		),
	)

	s.AddTool(getMessageTool, common.InstrumentedToolHandlerWithService(
		"basecamp_get_message", instrumentation.ServiceMessages, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetMessage(ctx, request, sc)
		}))

	if !readOnly {
		// Create message tool
		createMessageTool := mcp.NewTool("basecamp_create_message",
			mcp.WithDescription("Post a message to the project's message board"),
			mcp.WithNumber("project_id",
				mcp.Required(),
				mcp.Description("The ID of the project"),
			),
			mcp.WithString("subject",
				mcp.Required(),
				mcp.Description("The message subject"),
			),
			mcp.WithString("content",
				mcp.Description("The message body (may contain HTML)"),
			),
			mcp.WithString("status",
				mcp.Description("Publication status: 'active' publishes immediately (default), 'drafted' saves a draft"),
			),
		)

		s.AddTool(createMessageTool, common.InstrumentedToolHandlerWithService(
			"basecamp_create_message", instrumentation.ServiceMessages, instrumentation.OperationCreate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateMessage(ctx, request, sc)
			}))
	}

	return nil
}

func handleListMessages(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.Int64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	messages, err := client.ListMessages(ctx, projectID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list messages: %v", err)), nil
	}

	result, _ := json.MarshalIndent(messages, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.Int64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	messageID, err := common.Int64Arg(args, "message_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	message, err := client.GetMessage(ctx, projectID, messageID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get message: %v", err)), nil
	}

	result, _ := json.MarshalIndent(message, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleCreateMessage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.Int64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	subject, err := common.StringArg(args, "subject")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	input := basecamp.MessageInput{
		Subject: subject,
		Content: common.OptionalStringArg(args, "content"),
		Status:  common.OptionalStringArg(args, "status"),
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	message, err := client.CreateMessage(ctx, projectID, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create message: %v", err)), nil
	}

	result, _ := json.MarshalIndent(message, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

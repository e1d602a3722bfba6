package card_tools

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

// RegisterCardTools registers card-table tools with the MCP server.
// Mutating tools are skipped when readOnly is set.
func RegisterCardTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Get card table tool
	getCardTableTool := mcp.NewTool("basecamp_get_card_table",
		mcp.WithDescription("Get a project's card table with its columns and card counts"),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project"),
		),
	)

	s.AddTool(getCardTableTool, common.InstrumentedToolHandlerWithService(
		"basecamp_get_card_table", instrumentation.ServiceCards, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetCardTable(ctx, request, sc)
		}))

	// List cards tool
	listCardsTool := mcp.NewTool("basecamp_list_cards",
		mcp.WithDescription("List the cards in a card table column"),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project"),
		),
		mcp.WithNumber("column_id",
			mcp.Required(),
			mcp.Description("The ID of the column (use basecamp_get_card_table to discover columns)"),
		),
	)

	s.AddTool(listCardsTool, common.InstrumentedToolHandlerWithService(
		"basecamp_list_cards", instrumentation.ServiceCards, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListCards(ctx, request, sc)
		}))

	// Get card tool
	getCardTool := mcp.NewTool("basecamp_get_card",
		mcp.WithDescription("Get a single card with its content, assignees and due date"),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project"),
		),
		mcp.WithNumber("card_id",
			mcp.Required(),
			mcp.Description("The ID of the card"),
		),
	)

	s.AddTool(getCardTool, common.InstrumentedToolHandlerWithService(
		"basecamp_get_card", instrumentation.ServiceCards, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetCard(ctx, request, sc)
		}))

	if !readOnly {
		// Create card tool
		createCardTool := mcp.NewTool("basecamp_create_card",
			mcp.WithDescription("Create a card in a card table column"),
			mcp.WithNumber("project_id",
				mcp.Required(),
				mcp.Description("The ID of the project"),
			),
			mcp.WithNumber("column_id",
				mcp.Required(),
				mcp.Description("The ID of the column to add the card to"),
			),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("The card title"),
			),
			mcp.WithString("content",
				mcp.Description("Optional card body (may contain HTML)"),
			),
			mcp.WithString("due_on",
				mcp.Description("Optional due date in YYYY-MM-DD format"),
			),
		)

		s.AddTool(createCardTool, common.InstrumentedToolHandlerWithService(
			"basecamp_create_card", instrumentation.ServiceCards, instrumentation.OperationCreate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateCard(ctx, request, sc)
			}))

		// Move card tool
		moveCardTool := mcp.NewTool("basecamp_move_card",
			mcp.WithDescription("Move a card to another column of the same card table"),
			mcp.WithNumber("project_id",
				mcp.Required(),
				mcp.Description("The ID of the project"),
			),
			mcp.WithNumber("card_id",
				mcp.Required(),
				mcp.Description("The ID of the card to move"),
			),
			mcp.WithNumber("column_id",
				mcp.Required(),
				mcp.Description("The ID of the destination column"),
			),
		)

		s.AddTool(moveCardTool, common.InstrumentedToolHandlerWithService(
			"basecamp_move_card", instrumentation.ServiceCards, instrumentation.OperationMove, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleMoveCard(ctx, request, sc)
			}))
	}

	return nil
}

func handleGetCardTable(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.Int64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	table, err := client.GetCardTable(ctx, projectID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get card table: %v", err)), nil
	}

	result, _ := json.MarshalIndent(table, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleListCards(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.Int64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	columnID, err := common.Int64Arg(args, "column_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cards, err := client.ListCardsInColumn(ctx, projectID, columnID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list cards: %v", err)), nil
	}

	result, _ := json.MarshalIndent(cards, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetCard(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.Int64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cardID, err := common.Int64Arg(args, "card_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	card, err := client.GetCard(ctx, projectID, cardID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get card: %v", err)), nil
	}

	result, _ := json.MarshalIndent(card, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleCreateCard(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.Int64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	columnID, err := common.Int64Arg(args, "column_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := common.StringArg(args, "title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	input := basecamp.CardInput{
		Title:   title,
		Content: common.OptionalStringArg(args, "content"),
		DueOn:   common.OptionalStringArg(args, "due_on"),
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	card, err := client.CreateCard(ctx, projectID, columnID, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create card: %v", err)), nil
	}

	result, _ := json.MarshalIndent(card, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleMoveCard(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.Int64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cardID, err := common.Int64Arg(args, "card_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	columnID, err := common.Int64Arg(args, "column_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.MoveCard(ctx, projectID, cardID, columnID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to move card: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Card %d moved to column %d", cardID, columnID)), nil
}

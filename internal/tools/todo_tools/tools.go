package todo_tools

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

// RegisterTodoTools registers to-do tools with the MCP server. Mutating
// tools are skipped when readOnly is set.
func RegisterTodoTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List to-do lists tool
	listTodoListsTool := mcp.NewTool("basecamp_list_todolists",
		mcp.WithDescription("List the to-do lists of a Basecamp project"),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project"),
		),
	)

	s.AddTool(listTodoListsTool, common.InstrumentedToolHandlerWithService(
		"basecamp_list_todolists", instrumentation.ServiceTodos, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListTodoLists(ctx, request, sc)
		}))

	// List to-dos tool
	listTodosTool := mcp.NewTool("basecamp_list_todos",
		mcp.WithDescription("List the to-dos of a to-do list. By default only open to-dos are returned."),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project"),
		),
		mcp.WithNumber("todolist_id",
			mcp.Required(),
			mcp.Description("The ID of the to-do list"),
		),
		mcp.WithBoolean("completed",
			mcp.Description("Return completed to-dos instead of open ones (default: false)"),
		),
	)

	s.AddTool(listTodosTool, common.InstrumentedToolHandlerWithService(
		"basecamp_list_todos", instrumentation.ServiceTodos, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListTodos(ctx, request, sc)
		}))

	// Get to-do tool
	getTodoTool := mcp.NewTool("basecamp_get_todo",
		mcp.WithDescription("Get a single to-do with its description, assignees and due date"),
		mcp.WithNumber("project_id",
			mcp.Required(),
			mcp.Description("The ID of the project"),
		),
		mcp.WithNumber("todo_id",
			mcp.Required(),
			mcp.Description("The ID of the to-do"),
		),
	)

	s.AddTool(getTodoTool, common.InstrumentedToolHandlerWithService(
		"basecamp_get_todo", instrumentation.ServiceTodos, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetTodo(ctx, request, sc)
		}))

	if !readOnly {
		// Create to-do tool
		createTodoTool := mcp.NewTool("basecamp_create_todo",
			mcp.WithDescription("Create a to-do in a to-do list"),
			mcp.WithNumber("project_id",
				mcp.Required(),
				mcp.Description("The ID of the project"),
			),
			mcp.WithNumber("todolist_id",
				mcp.Required(),
				mcp.Description("The ID of the to-do list to add the to-do to"),
			),
			mcp.WithString("content",
				mcp.Required(),
				mcp.Description("The to-do text"),
			),
			mcp.WithString("description",
				mcp.Description("Optional longer description (may contain HTML)"),
			),
			mcp.WithString("due_on",
				mcp.Description("Optional due date in YYYY-MM-DD format"),
			),
			mcp.WithArray("assignee_ids",
				mcp.Description("Optional list of person IDs to assign"),
			),
		)

		s.AddTool(createTodoTool, common.InstrumentedToolHandlerWithService(
			"basecamp_create_todo", instrumentation.ServiceTodos, instrumentation.OperationCreate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateTodo(ctx, request, sc)
			}))

		// Complete to-do tool
		completeTodoTool := mcp.NewTool("basecamp_complete_todo",
			mcp.WithDescription("Mark a to-do as completed"),
			mcp.WithNumber("project_id",
				mcp.Required(),
				mcp.Description("The ID of the project"),
			),
			mcp.WithNumber("todo_id",
				mcp.Required(),
				mcp.Description("The ID of the to-do to complete"),
			),
		)

		s.AddTool(completeTodoTool, common.InstrumentedToolHandlerWithService(
			"basecamp_complete_todo", instrumentation.ServiceTodos, instrumentation.OperationComplete, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCompleteTodo(ctx, request, sc)
			}))

		// Uncomplete to-do tool
		uncompleteTodoTool := mcp.NewTool("basecamp_uncomplete_todo",
			mcp.WithDescription("Reopen a completed to-do"),
			mcp.WithNumber("project_id",
				mcp.Required(),
				mcp.Description("The ID of the project"),
			),
			mcp.WithNumber("todo_id",
				mcp.Required(),
				mcp.Description("The ID of the to-do to reopen"),
			),
		)

		s.AddTool(uncompleteTodoTool, common.InstrumentedToolHandlerWithService(
			"basecamp_uncomplete_todo", instrumentation.ServiceTodos, instrumentation.OperationComplete, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleUncompleteTodo(ctx, request, sc)
			}))
	}

	return nil
}

func handleListTodoLists(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.Int64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	lists, err := client.ListTodoLists(ctx, projectID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list todo lists: %v", err)), nil
	}

	result, _ := json.MarshalIndent(lists, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleListTodos(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.Int64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	todoListID, err := common.Int64Arg(args, "todolist_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	completed := common.OptionalBoolArg(args, "completed", false)

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	todos, err := client.ListTodos(ctx, projectID, todoListID, completed)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list todos: %v", err)), nil
	}

	result, _ := json.MarshalIndent(todos, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleGetTodo(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.Int64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	todoID, err := common.Int64Arg(args, "todo_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	todo, err := client.GetTodo(ctx, projectID, todoID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get todo: %v", err)), nil
	}

	result, _ := json.MarshalIndent(todo, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleCreateTodo(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.Int64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	todoListID, err := common.Int64Arg(args, "todolist_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := common.StringArg(args, "content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	assigneeIDs, err := common.Int64SliceArg(args, "assignee_ids")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	input := basecamp.TodoInput{
		Content:     content,
		Description: common.OptionalStringArg(args, "description"),
		DueOn:       common.OptionalStringArg(args, "due_on"),
		AssigneeIDs: assigneeIDs,
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	todo, err := client.CreateTodo(ctx, projectID, todoListID, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create todo: %v", err)), nil
	}

	result, _ := json.MarshalIndent(todo, "", "  ")
	return mcp.NewToolResultText(string(result)), nil
}

func handleCompleteTodo(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.Int64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	todoID, err := common.Int64Arg(args, "todo_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.CompleteTodo(ctx, projectID, todoID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to complete todo: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Todo %d marked as completed", todoID)), nil
}

func handleUncompleteTodo(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	projectID, err := common.Int64Arg(args, "project_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	todoID, err := common.Int64Arg(args, "todo_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.BasecampClient(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := client.UncompleteTodo(ctx, projectID, todoID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to uncomplete todo: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Todo %d reopened", todoID)), nil
}

package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/hostedmcp/basecamp-mcp/internal/basecamp"
	"github.com/hostedmcp/basecamp-mcp/internal/server"
)

// RegisterAccountResources registers the account summary resource
func RegisterAccountResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	accountResource := mcp.NewResource(
		"basecamp://account",
		"Basecamp Account",
		mcp.WithResourceDescription("The configured Basecamp account and its authentication state"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(accountResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleAccountInfo(ctx, request, sc)
	})

	return nil
}

// handleAccountInfo summarizes the account binding without touching the
// Basecamp API, so the resource stays readable before authorization.
func handleAccountInfo(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	cfg := sc.Config()

	accountData := map[string]interface{}{
		"account_id":    cfg.AccountID,
		"api_url":       fmt.Sprintf("%s/%s", basecamp.DefaultBaseURL, cfg.AccountID),
		"authenticated": sc.Flow().Authenticated(ctx),
		"read_only":     sc.ReadOnly(),
		"description":   "Basecamp account served by this MCP server",
	}

	jsonData, err := json.MarshalIndent(accountData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal account data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}

package basecamp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ListMessages lists the message-board posts of a project. The board is
// resolved through the dock.
func (c *Client) ListMessages(ctx context.Context, projectID int64) ([]Message, error) {
	board, err := c.dockItem(ctx, projectID, DockMessageBoard)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	var messages []Message
	url := c.apiURL(fmt.Sprintf("/buckets/%d/message_boards/%d/messages.json", projectID, board.ID))
	err = c.getPages(ctx, url, func(data []byte) error {
		var page []Message
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		messages = append(messages, page...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// GetMessage retrieves a single message.
func (c *Client) GetMessage(ctx context.Context, projectID, messageID int64) (*Message, error) {
	var message Message
	url := c.apiURL(fmt.Sprintf("/buckets/%d/messages/%d.json", projectID, messageID))
	if err := c.do(ctx, http.MethodGet, url, nil, &message); err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return &message, nil
}

// CreateMessage posts a message to the project's message board. The message
// is published immediately unless input.Status says otherwise.
func (c *Client) CreateMessage(ctx context.Context, projectID int64, input MessageInput) (*Message, error) {
	if input.Subject == "" {
		return nil, fmt.Errorf("message subject cannot be empty")
	}
	if input.Status == "" {
		input.Status = "active"
	}

	board, err := c.dockItem(ctx, projectID, DockMessageBoard)
	if err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	var message Message
	url := c.apiURL(fmt.Sprintf("/buckets/%d/message_boards/%d/messages.json", projectID, board.ID))
	if err := c.do(ctx, http.MethodPost, url, input, &message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	return &message, nil
}

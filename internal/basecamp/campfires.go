package basecamp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ListCampfires lists the campfires (chats) visible to the authorized user
// across the account.
func (c *Client) ListCampfires(ctx context.Context) ([]Campfire, error) {
	var campfires []Campfire
	err := c.getPages(ctx, c.apiURL("/chats.json"), func(data []byte) error {
		var page []Campfire
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		campfires = append(campfires, page...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list campfires: %w", err)
	}
	return campfires, nil
}

// GetCampfireLines returns the most recent lines of a campfire, newest first.
func (c *Client) GetCampfireLines(ctx context.Context, projectID, campfireID int64) ([]CampfireLine, error) {
	var lines []CampfireLine
	url := c.apiURL(fmt.Sprintf("/buckets/%d/chats/%d/lines.json", projectID, campfireID))
	err := c.getPages(ctx, url, func(data []byte) error {
		var page []CampfireLine
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		lines = append(lines, page...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get campfire lines: %w", err)
	}
	return lines, nil
}

// CreateCampfireLine posts a line to a campfire.
func (c *Client) CreateCampfireLine(ctx context.Context, projectID, campfireID int64, content string) (*CampfireLine, error) {
	if content == "" {
		return nil, fmt.Errorf("campfire line content cannot be empty")
	}

	var line CampfireLine
	url := c.apiURL(fmt.Sprintf("/buckets/%d/chats/%d/lines.json", projectID, campfireID))
	body := map[string]string{"content": content}
	if err := c.do(ctx, http.MethodPost, url, body, &line); err != nil {
		return nil, fmt.Errorf("failed to post campfire line: %w", err)
	}
	return &line, nil
}

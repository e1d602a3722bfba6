package basecamp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Recording types accepted by the recordings index endpoint.
const (
	RecordingTodo     = "Todo"
	RecordingTodolist = "Todolist"
	RecordingMessage  = "Message"
	RecordingComment  = "Comment"
	RecordingDocument = "Document"
	RecordingUpload   = "Upload"
)

// ListRecordings lists recordings of one type across every project the
// authenticated user can see. Pass a project ID to limit the listing to
// that project, or 0 for all projects.
func (c *Client) ListRecordings(ctx context.Context, recordingType string, projectID int64) ([]Recording, error) {
	if recordingType == "" {
		return nil, fmt.Errorf("recording type cannot be empty")
	}

	q := url.Values{}
	q.Set("type", recordingType)
	if projectID > 0 {
		q.Set("bucket", fmt.Sprintf("%d", projectID))
	}

	var recordings []Recording
	u := c.apiURL("/projects/recordings.json") + "?" + q.Encode()
	err := c.getPages(ctx, u, func(data []byte) error {
		var page []Recording
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		recordings = append(recordings, page...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recordings: %w", err)
	}
	return recordings, nil
}

// Search finds recordings whose title contains the query, case
// insensitively. The recordings index has no server-side search, so the
// filter runs over the fetched pages.
func (c *Client) Search(ctx context.Context, query, recordingType string, projectID int64) ([]Recording, error) {
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	if recordingType == "" {
		recordingType = RecordingTodo
	}

	recordings, err := c.ListRecordings(ctx, recordingType, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to search recordings: %w", err)
	}

	needle := strings.ToLower(query)
	var matches []Recording
	for _, r := range recordings {
		if strings.Contains(strings.ToLower(r.Title), needle) {
			matches = append(matches, r)
		}
	}
	return matches, nil
}

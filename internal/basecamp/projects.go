package basecamp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ListProjects lists all active projects visible to the authorized user.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	err := c.getPages(ctx, c.apiURL("/projects.json"), func(data []byte) error {
		var page []Project
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		projects = append(projects, page...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject retrieves a project by ID, including its dock.
func (c *Client) GetProject(ctx context.Context, projectID int64) (*Project, error) {
	var project Project
	url := c.apiURL(fmt.Sprintf("/projects/%d.json", projectID))
	if err := c.do(ctx, http.MethodGet, url, nil, &project); err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}

// dockItem finds an enabled tool on the project's dock. Per-project tool IDs
// (to-do set, message board, chat, card table) differ from the project ID,
// so every tool lookup goes through here.
func (c *Client) dockItem(ctx context.Context, projectID int64, name string) (*DockItem, error) {
	project, err := c.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for i := range project.Dock {
		if project.Dock[i].Name == name && project.Dock[i].Enabled {
			return &project.Dock[i], nil
		}
	}
	return nil, fmt.Errorf("project %d (%s) has no enabled %s", projectID, project.Name, name)
}

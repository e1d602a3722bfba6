package basecamp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// ListPeople lists everyone visible on the account.
func (c *Client) ListPeople(ctx context.Context) ([]Person, error) {
	var people []Person
	url := c.apiURL("/people.json")
	err := c.getPages(ctx, url, func(data []byte) error {
		var page []Person
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		people = append(people, page...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	return people, nil
}

// ListProjectPeople lists the people with access to one project.
func (c *Client) ListProjectPeople(ctx context.Context, projectID int64) ([]Person, error) {
	var people []Person
	url := c.apiURL(fmt.Sprintf("/projects/%d/people.json", projectID))
	err := c.getPages(ctx, url, func(data []byte) error {
		var page []Person
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		people = append(people, page...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list project people: %w", err)
	}
	return people, nil
}

// GetMyProfile retrieves the person record of the authenticated user.
func (c *Client) GetMyProfile(ctx context.Context) (*Person, error) {
	var person Person
	url := c.apiURL("/my/profile.json")
	if err := c.do(ctx, http.MethodGet, url, nil, &person); err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &person, nil
}

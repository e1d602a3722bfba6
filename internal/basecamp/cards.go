package basecamp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetCardTable retrieves a project's card table with its columns. The table
// is resolved through the dock.
func (c *Client) GetCardTable(ctx context.Context, projectID int64) (*CardTable, error) {
	dock, err := c.dockItem(ctx, projectID, DockCardTable)
	if err != nil {
		return nil, fmt.Errorf("failed to get card table: %w", err)
	}

	var table CardTable
	url := c.apiURL(fmt.Sprintf("/buckets/%d/card_tables/%d.json", projectID, dock.ID))
	if err := c.do(ctx, http.MethodGet, url, nil, &table); err != nil {
		return nil, fmt.Errorf("failed to get card table: %w", err)
	}
	return &table, nil
}

// ListCardsInColumn lists the cards of one card-table column.
func (c *Client) ListCardsInColumn(ctx context.Context, projectID, columnID int64) ([]Card, error) {
	var cards []Card
	url := c.apiURL(fmt.Sprintf("/buckets/%d/card_tables/lists/%d/cards.json", projectID, columnID))
	err := c.getPages(ctx, url, func(data []byte) error {
		var page []Card
		if err := json.Unmarshal(data, &page); err != nil {
			return err
		}
		cards = append(cards, page...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// GetCard retrieves a single card.
func (c *Client) GetCard(ctx context.Context, projectID, cardID int64) (*Card, error) {
	var card Card
	url := c.apiURL(fmt.Sprintf("/buckets/%d/card_tables/cards/%d.json", projectID, cardID))
	if err := c.do(ctx, http.MethodGet, url, nil, &card); err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return &card, nil
}

// CreateCard creates a card in a column.
func (c *Client) CreateCard(ctx context.Context, projectID, columnID int64, input CardInput) (*Card, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("card title cannot be empty")
	}

	var card Card
	url := c.apiURL(fmt.Sprintf("/buckets/%d/card_tables/lists/%d/cards.json", projectID, columnID))
	if err := c.do(ctx, http.MethodPost, url, input, &card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return &card, nil
}

// MoveCard moves a card to another column of the same card table.
func (c *Client) MoveCard(ctx context.Context, projectID, cardID, columnID int64) error {
	url := c.apiURL(fmt.Sprintf("/buckets/%d/card_tables/cards/%d/moves.json", projectID, cardID))
	body := map[string]int64{"column_id": columnID}
	if err := c.do(ctx, http.MethodPost, url, body, nil); err != nil {
		return fmt.Errorf("failed to move card: %w", err)
	}
	return nil
}

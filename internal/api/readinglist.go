package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/blackwell-systems/okreads/internal/model"
)

// GetReadingList fetches the user's reading list.
func (c *Client) GetReadingList(ctx context.Context) ([]model.ReadingListItem, error) {
	var items []model.ReadingListItem
	if err := c.doJSON(ctx, http.MethodGet, c.url("reading-list"), nil, &items); err != nil {
		return nil, fmt.Errorf("get reading list: %w", err)
	}
	if items == nil {
		items = []model.ReadingListItem{}
	}
	return items, nil
}

// AddToReadingList saves book to the reading list.
func (c *Client) AddToReadingList(ctx context.Context, book model.BookView) error {
	if err := c.doJSON(ctx, http.MethodPost, c.url("reading-list"), book, nil); err != nil {
		return fmt.Errorf("add %q to reading list: %w", book.ID, err)
	}
	return nil
}

// RemoveFromReadingList deletes the entry for bookID.
func (c *Client) RemoveFromReadingList(ctx context.Context, bookID string) error {
	if err := c.doJSON(ctx, http.MethodDelete, c.url("reading-list", bookID), nil, nil); err != nil {
		return fmt.Errorf("remove %q from reading list: %w", bookID, err)
	}
	return nil
}

// MarkAsFinished flags the entry for bookID as read.
func (c *Client) MarkAsFinished(ctx context.Context, bookID string) error {
	if err := c.doJSON(ctx, http.MethodPut, c.url("reading-list", bookID, "finished"), nil, nil); err != nil {
		return fmt.Errorf("mark %q as finished: %w", bookID, err)
	}
	return nil
}

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/blackwell-systems/okreads/internal/model"
)

// SearchBooks queries the books API. The backend answers either with a
// bare array or with an {"items": [...]} envelope.
func (c *Client) SearchBooks(ctx context.Context, term string) ([]model.Book, error) {
	u := c.url("books", "search") + "?q=" + url.QueryEscape(term)

	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &raw); err != nil {
		return nil, fmt.Errorf("search books %q: %w", term, err)
	}
	books, err := decodeBooks(raw)
	if err != nil {
		return nil, fmt.Errorf("search books %q: %w", term, err)
	}
	return books, nil
}

func decodeBooks(raw json.RawMessage) ([]model.Book, error) {
	var books []model.Book
	if err := json.Unmarshal(raw, &books); err == nil {
		return books, nil
	}
	var envelope struct {
		Items []model.Book `json:"items"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	return envelope.Items, nil
}

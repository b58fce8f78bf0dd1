package effects

import (
	"context"
	"strings"

	"github.com/blackwell-systems/okreads/internal/action"
	"github.com/blackwell-systems/okreads/internal/model"
)

// BooksAPI searches the book catalogue.
type BooksAPI interface {
	SearchBooks(ctx context.Context, term string) ([]model.Book, error)
}

// Books returns the search effect. The latest search wins: a new term
// cancels the request for the previous one.
func Books(api BooksAPI) []Effect {
	return []Effect{{
		Name:   "searchBooks",
		On:     []action.Kind{action.KindSearchBooks},
		Policy: Switch,
		Handle: func(ctx context.Context, a action.Action) []action.Action {
			raw := a.(action.SearchBooks).Term
			term := strings.TrimSpace(raw)
			if term == "" {
				return []action.Action{action.SearchBooksSuccess{Term: raw}}
			}
			books, err := api.SearchBooks(ctx, term)
			if ctx.Err() != nil {
				return nil
			}
			if err != nil {
				return []action.Action{action.SearchBooksFailure{Term: raw, Err: err}}
			}
			return []action.Action{action.SearchBooksSuccess{Term: raw, Books: books}}
		},
	}}
}

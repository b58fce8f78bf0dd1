package store

import "github.com/blackwell-systems/okreads/internal/model"

// State is the whole client state. Values are replaced, never mutated in
// place, so a State handed to a subscriber stays valid.
type State struct {
	Books       BooksState
	ReadingList ReadingListState
}

// BooksState holds the latest search.
type BooksState struct {
	SearchTerm string
	Entities   []model.Book
	Loaded     bool
	Err        error
}

// ReadingListState holds the user's list in display order. Err is the
// last load failure; MutationErr the last failed add, remove or finish.
type ReadingListState struct {
	Items       []model.ReadingListItem
	Loaded      bool
	Err         error
	MutationErr error
}

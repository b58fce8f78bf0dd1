package store

import (
	"time"

	"github.com/blackwell-systems/okreads/internal/action"
	"github.com/blackwell-systems/okreads/internal/model"
)

// Reducer computes the next state. It must not perform I/O.
type Reducer func(State, action.Action) State

// now is swapped in tests.
var now = time.Now

// Reduce is the default reducer.
//
// Add and remove are applied as soon as the intent is dispatched. Failure
// actions record the error but leave the list as it is.
func Reduce(s State, a action.Action) State {
	switch a := a.(type) {
	case action.SearchBooks:
		s.Books = BooksState{SearchTerm: a.Term}
	case action.SearchBooksSuccess:
		if a.Term != s.Books.SearchTerm {
			break
		}
		s.Books.Entities = a.Books
		s.Books.Loaded = true
		s.Books.Err = nil
	case action.SearchBooksFailure:
		if a.Term != s.Books.SearchTerm {
			break
		}
		s.Books.Entities = nil
		s.Books.Loaded = true
		s.Books.Err = a.Err
	case action.ClearSearch:
		s.Books = BooksState{}

	case action.Init:
		s.ReadingList.Loaded = false
		s.ReadingList.Err = nil
	case action.LoadReadingListSuccess:
		s.ReadingList = ReadingListState{Items: a.List, Loaded: true, MutationErr: s.ReadingList.MutationErr}
	case action.LoadReadingListError:
		s.ReadingList.Loaded = true
		s.ReadingList.Err = a.Err

	case action.AddToReadingList:
		it := model.ItemFromBook(a.Book)
		if a.Restore != nil {
			it = *a.Restore
		}
		s.ReadingList.Items = model.Upsert(s.ReadingList.Items, it)
	case action.RemoveFromReadingList:
		s.ReadingList.Items, _ = model.Remove(s.ReadingList.Items, a.Item.BookID)
	case action.MarkBookAsFinished:
		if it := model.ByBookID(s.ReadingList.Items, a.Item.BookID); it != nil {
			done := *it
			at := now().UTC()
			done.Finished = true
			done.FinishedDate = &at
			s.ReadingList.Items = model.Upsert(s.ReadingList.Items, done)
		}

	case action.FailedAddToReadingList:
		s.ReadingList.MutationErr = a.Err
	case action.FailedRemoveFromReadingList:
		s.ReadingList.MutationErr = a.Err
	case action.FailedMarkBookAsFinished:
		s.ReadingList.MutationErr = a.Err
	}
	return s
}

// Package action defines the messages that flow through the store and the
// effect pipeline. Actions are plain values; they are never mutated once
// dispatched.
package action

import (
	"fmt"

	"github.com/blackwell-systems/okreads/internal/model"
)

// Kind labels an action. The bracketed prefix names the source.
type Kind string

// Action is implemented by every message in this package.
type Action interface {
	Kind() Kind
}

// Books search.
const (
	KindSearchBooks        Kind = "[Books Search API] Search Books"
	KindSearchBooksSuccess Kind = "[Books Search API] Search Books Success"
	KindSearchBooksFailure Kind = "[Books Search API] Search Books Failure"
	KindClearSearch        Kind = "[Books Search API] Clear Search"
)

// Reading list.
const (
	KindInit                           Kind = "[Reading List] Initialize"
	KindLoadReadingListSuccess         Kind = "[Reading List API] Load list success"
	KindLoadReadingListError           Kind = "[Reading List API] Load list error"
	KindAddToReadingList               Kind = "[Books Search Results] Add to list"
	KindConfirmedAddToReadingList      Kind = "[Reading List API] Confirmed add to list"
	KindFailedAddToReadingList         Kind = "[Reading List API] Failed add to list"
	KindRemoveFromReadingList          Kind = "[Books Search Results] Remove from list"
	KindConfirmedRemoveFromReadingList Kind = "[Reading List API] Confirmed remove from list"
	KindFailedRemoveFromReadingList    Kind = "[Reading List API] Failed remove from list"
	KindMarkBookAsFinished             Kind = "[Reading List] Mark book as finished"
	KindConfirmedMarkBookAsFinished    Kind = "[Reading List API] Confirmed mark book as finished"
	KindFailedMarkBookAsFinished       Kind = "[Reading List API] Failed mark book as finished"
	KindShowSnackBar                   Kind = "[Reading List] Show snack bar"
)

// SnackBarType tags a snackbar with the operation it can undo.
type SnackBarType string

const (
	SnackBarAdd    SnackBarType = "ADD"
	SnackBarRemove SnackBarType = "REMOVE"
)

// SearchBooks starts a search for Term. A newer search supersedes it.
type SearchBooks struct{ Term string }

// SearchBooksSuccess carries the results for Term.
type SearchBooksSuccess struct {
	Term  string
	Books []model.Book
}

// SearchBooksFailure reports a failed search for Term.
type SearchBooksFailure struct {
	Term string
	Err  error
}

// ClearSearch empties the search results.
type ClearSearch struct{}

// Init (re)loads the reading list.
type Init struct{}

// LoadReadingListSuccess replaces the reading list with List.
type LoadReadingListSuccess struct{ List []model.ReadingListItem }

// LoadReadingListError reports a failed load.
type LoadReadingListError struct{ Err error }

// AddToReadingList asks for book to be saved to the list. ShowSnackBar
// requests an undo prompt once the backend confirms. Restore is set when
// a removal is undone; the entry goes back exactly as it was.
type AddToReadingList struct {
	Book         model.Book
	ShowSnackBar bool
	Restore      *model.ReadingListItem
}

// ConfirmedAddToReadingList reports that the backend saved Book.
type ConfirmedAddToReadingList struct {
	Book         model.BookView
	ShowSnackBar bool
}

// FailedAddToReadingList reports a failed add. The list is not rolled back.
type FailedAddToReadingList struct{ Err error }

// RemoveFromReadingList asks for Item to be deleted from the list.
type RemoveFromReadingList struct {
	Item         model.ReadingListItem
	ShowSnackBar bool
}

// ConfirmedRemoveFromReadingList reports that the backend deleted Item.
type ConfirmedRemoveFromReadingList struct {
	Item         model.ReadingListItem
	ShowSnackBar bool
}

// FailedRemoveFromReadingList reports a failed removal.
type FailedRemoveFromReadingList struct{ Err error }

// MarkBookAsFinished flags Item as read.
type MarkBookAsFinished struct{ Item model.ReadingListItem }

// ConfirmedMarkBookAsFinished reports that the backend stored the flag.
type ConfirmedMarkBookAsFinished struct{ Item model.ReadingListItem }

// FailedMarkBookAsFinished reports a failed finish.
type FailedMarkBookAsFinished struct{ Err error }

// ShowSnackBar opens an undo prompt for item.
type ShowSnackBar struct {
	ActionType SnackBarType
	Item       model.ReadingListItem
}

func (SearchBooks) Kind() Kind        { return KindSearchBooks }
func (SearchBooksSuccess) Kind() Kind { return KindSearchBooksSuccess }
func (SearchBooksFailure) Kind() Kind { return KindSearchBooksFailure }
func (ClearSearch) Kind() Kind        { return KindClearSearch }

func (Init) Kind() Kind                           { return KindInit }
func (LoadReadingListSuccess) Kind() Kind         { return KindLoadReadingListSuccess }
func (LoadReadingListError) Kind() Kind           { return KindLoadReadingListError }
func (AddToReadingList) Kind() Kind               { return KindAddToReadingList }
func (ConfirmedAddToReadingList) Kind() Kind      { return KindConfirmedAddToReadingList }
func (FailedAddToReadingList) Kind() Kind         { return KindFailedAddToReadingList }
func (RemoveFromReadingList) Kind() Kind          { return KindRemoveFromReadingList }
func (ConfirmedRemoveFromReadingList) Kind() Kind { return KindConfirmedRemoveFromReadingList }
func (FailedRemoveFromReadingList) Kind() Kind    { return KindFailedRemoveFromReadingList }
func (MarkBookAsFinished) Kind() Kind             { return KindMarkBookAsFinished }
func (ConfirmedMarkBookAsFinished) Kind() Kind    { return KindConfirmedMarkBookAsFinished }
func (FailedMarkBookAsFinished) Kind() Kind       { return KindFailedMarkBookAsFinished }
func (ShowSnackBar) Kind() Kind                   { return KindShowSnackBar }

// Err returns the error carried by a failure action, or nil.
func Err(a Action) error {
	switch a := a.(type) {
	case SearchBooksFailure:
		return a.Err
	case LoadReadingListError:
		return a.Err
	case FailedAddToReadingList:
		return a.Err
	case FailedRemoveFromReadingList:
		return a.Err
	case FailedMarkBookAsFinished:
		return a.Err
	}
	return nil
}

// Describe renders a short summary of a for logs.
func Describe(a Action) string {
	switch a := a.(type) {
	case SearchBooks:
		return fmt.Sprintf("term:%q", a.Term)
	case SearchBooksSuccess:
		return fmt.Sprintf("books:%d", len(a.Books))
	case LoadReadingListSuccess:
		return fmt.Sprintf("items:%d", len(a.List))
	case AddToReadingList:
		return fmt.Sprintf("book:%q snackbar:%t", a.Book.ID, a.ShowSnackBar)
	case ConfirmedAddToReadingList:
		return fmt.Sprintf("book:%q snackbar:%t", a.Book.ID, a.ShowSnackBar)
	case RemoveFromReadingList:
		return fmt.Sprintf("book:%q snackbar:%t", a.Item.BookID, a.ShowSnackBar)
	case ConfirmedRemoveFromReadingList:
		return fmt.Sprintf("book:%q snackbar:%t", a.Item.BookID, a.ShowSnackBar)
	case MarkBookAsFinished:
		return fmt.Sprintf("book:%q", a.Item.BookID)
	case ConfirmedMarkBookAsFinished:
		return fmt.Sprintf("book:%q", a.Item.BookID)
	case ShowSnackBar:
		return fmt.Sprintf("type:%s book:%q", a.ActionType, a.Item.BookID)
	}
	if err := Err(a); err != nil {
		return fmt.Sprintf("error:%q", err.Error())
	}
	return ""
}

package effects

import (
	"context"
	"fmt"
	"time"

	"github.com/blackwell-systems/okreads/internal/action"
	"github.com/blackwell-systems/okreads/internal/model"
	"github.com/blackwell-systems/okreads/internal/snackbar"
)

// ReadingListAPI is the part of the backend the reading list effects use.
type ReadingListAPI interface {
	GetReadingList(ctx context.Context) ([]model.ReadingListItem, error)
	AddToReadingList(ctx context.Context, book model.BookView) error
	RemoveFromReadingList(ctx context.Context, bookID string) error
	MarkAsFinished(ctx context.Context, bookID string) error
}

// SnackBarConfig holds the undo prompt texts and styling.
type SnackBarConfig struct {
	Duration     time.Duration
	UndoLabel    string
	AddedText    string
	RemovedText  string
	AddedClass   string
	RemovedClass string
}

// DefaultSnackBarConfig returns the standard undo prompt settings.
func DefaultSnackBarConfig() SnackBarConfig {
	return SnackBarConfig{
		Duration:     3 * time.Second,
		UndoLabel:    "Undo",
		AddedText:    "Added to reading list",
		RemovedText:  "Removed from reading list",
		AddedClass:   "book-added",
		RemovedClass: "book-removed",
	}
}

// ReadingList builds the reading list effects.
type ReadingList struct {
	api   ReadingListAPI
	snack snackbar.Service
	cfg   SnackBarConfig
}

// NewReadingList creates the reading list effects.
func NewReadingList(api ReadingListAPI, snack snackbar.Service, cfg SnackBarConfig) *ReadingList {
	return &ReadingList{api: api, snack: snack, cfg: cfg}
}

// Effects returns every reading list effect.
func (r *ReadingList) Effects() []Effect {
	return []Effect{
		{Name: "loadReadingList", On: []action.Kind{action.KindInit}, Policy: Exhaust, Handle: r.load},
		{Name: "addBook", On: []action.Kind{action.KindAddToReadingList}, Policy: Concat, Handle: r.add},
		{Name: "removeBook", On: []action.Kind{action.KindRemoveFromReadingList}, Policy: Concat, Handle: r.remove},
		{Name: "markBookAsFinished", On: []action.Kind{action.KindMarkBookAsFinished}, Policy: Concat, Handle: r.markFinished},
		{Name: "undoAddBook", On: []action.Kind{action.KindConfirmedAddToReadingList}, Policy: Merge, Handle: r.undoAdd},
		{Name: "undoRemoveBook", On: []action.Kind{action.KindConfirmedRemoveFromReadingList}, Policy: Merge, Handle: r.undoRemove},
		{Name: "openSnackBar", On: []action.Kind{action.KindShowSnackBar}, Policy: Switch, Handle: r.openSnackBar},
	}
}

func (r *ReadingList) load(ctx context.Context, _ action.Action) []action.Action {
	list, err := r.api.GetReadingList(ctx)
	if err != nil {
		return []action.Action{action.LoadReadingListError{Err: err}}
	}
	return []action.Action{action.LoadReadingListSuccess{List: list}}
}

func (r *ReadingList) add(ctx context.Context, a action.Action) []action.Action {
	req := a.(action.AddToReadingList)
	added := model.BookView{Book: req.Book, IsAdded: true}
	if req.Restore != nil {
		added = model.ViewFromItem(*req.Restore)
	}
	if err := r.api.AddToReadingList(ctx, added); err != nil {
		return []action.Action{action.FailedAddToReadingList{Err: err}}
	}
	return []action.Action{action.ConfirmedAddToReadingList{Book: added, ShowSnackBar: req.ShowSnackBar}}
}

func (r *ReadingList) remove(ctx context.Context, a action.Action) []action.Action {
	req := a.(action.RemoveFromReadingList)
	if err := r.api.RemoveFromReadingList(ctx, req.Item.BookID); err != nil {
		return []action.Action{action.FailedRemoveFromReadingList{Err: err}}
	}
	return []action.Action{action.ConfirmedRemoveFromReadingList{Item: req.Item, ShowSnackBar: req.ShowSnackBar}}
}

func (r *ReadingList) markFinished(ctx context.Context, a action.Action) []action.Action {
	req := a.(action.MarkBookAsFinished)
	if err := r.api.MarkAsFinished(ctx, req.Item.BookID); err != nil {
		return []action.Action{action.FailedMarkBookAsFinished{Err: err}}
	}
	return []action.Action{action.ConfirmedMarkBookAsFinished{Item: req.Item}}
}

func (r *ReadingList) undoAdd(_ context.Context, a action.Action) []action.Action {
	confirmed := a.(action.ConfirmedAddToReadingList)
	if !confirmed.ShowSnackBar {
		return nil
	}
	return []action.Action{action.ShowSnackBar{
		ActionType: action.SnackBarAdd,
		Item:       model.ItemFromBook(confirmed.Book.Book),
	}}
}

func (r *ReadingList) undoRemove(_ context.Context, a action.Action) []action.Action {
	confirmed := a.(action.ConfirmedRemoveFromReadingList)
	if !confirmed.ShowSnackBar {
		return nil
	}
	return []action.Action{action.ShowSnackBar{
		ActionType: action.SnackBarRemove,
		Item:       confirmed.Item,
	}}
}

// openSnackBar shows the undo prompt and waits for it to be pressed,
// dismissed or superseded. The reversing action never asks for another
// snackbar.
func (r *ReadingList) openSnackBar(ctx context.Context, a action.Action) []action.Action {
	show := a.(action.ShowSnackBar)

	text, class := r.cfg.RemovedText, r.cfg.RemovedClass
	if show.ActionType == action.SnackBarAdd {
		text, class = r.cfg.AddedText, r.cfg.AddedClass
	}
	ref := r.snack.Open(fmt.Sprintf("%s - %s", show.Item.Title, text), r.cfg.UndoLabel, snackbar.Options{
		Duration: r.cfg.Duration,
		Class:    class,
	})
	defer ref.Dismiss()

	select {
	case <-ref.Action():
		return undo(show)
	case <-ref.Dismissed():
		// Pressing the action also dismisses; both may be ready.
		select {
		case <-ref.Action():
			return undo(show)
		default:
			return nil
		}
	case <-ctx.Done():
		// A press that landed before the next prompt replaced this one
		// still counts.
		select {
		case <-ref.Action():
			return undo(show)
		default:
			return nil
		}
	}
}

func undo(show action.ShowSnackBar) []action.Action {
	if show.ActionType == action.SnackBarAdd {
		return []action.Action{action.RemoveFromReadingList{Item: show.Item, ShowSnackBar: false}}
	}
	item := show.Item
	return []action.Action{action.AddToReadingList{Book: model.BookFromItem(item), ShowSnackBar: false, Restore: &item}}
}

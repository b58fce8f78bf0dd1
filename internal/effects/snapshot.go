package effects

import (
	"context"
	"log/slog"

	"github.com/blackwell-systems/okreads/internal/action"
	"github.com/blackwell-systems/okreads/internal/model"
	"github.com/blackwell-systems/okreads/internal/store"
)

// SnapshotWriter persists the reading list for offline viewing.
type SnapshotWriter interface {
	SaveReadingList(items []model.ReadingListItem) error
}

// Snapshot writes the reading list to w whenever the backend confirms a
// change. Write errors are logged and otherwise ignored.
func Snapshot(w SnapshotWriter, state func() store.State, log *slog.Logger) []Effect {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return []Effect{{
		Name: "snapshotReadingList",
		On: []action.Kind{
			action.KindLoadReadingListSuccess,
			action.KindConfirmedAddToReadingList,
			action.KindConfirmedRemoveFromReadingList,
			action.KindConfirmedMarkBookAsFinished,
		},
		Policy: Concat,
		Handle: func(_ context.Context, a action.Action) []action.Action {
			items := store.ReadingList(state())
			if err := w.SaveReadingList(items); err != nil {
				log.Warn("saving reading list snapshot", "error", err)
				return nil
			}
			log.Debug("reading list snapshot saved", "items", len(items), "trigger", string(a.Kind()))
			return nil
		},
	}}
}

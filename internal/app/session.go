package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/blackwell-systems/okreads/internal/action"
	"github.com/blackwell-systems/okreads/internal/effects"
	"github.com/blackwell-systems/okreads/internal/model"
	"github.com/blackwell-systems/okreads/internal/snackbar"
	"github.com/blackwell-systems/okreads/internal/store"
)

// backend is everything the effects need from the HTTP API.
type backend interface {
	effects.ReadingListAPI
	effects.BooksAPI
}

// session wires a store, a snackbar and the effect pipeline together.
// Commands and the TUI drive it only by dispatching actions.
type session struct {
	store    *store.Store
	bar      *snackbar.Bar
	pipeline *effects.Pipeline
	cancel   context.CancelFunc
}

// newSession builds a session. A nil snapshot writer leaves the offline
// snapshot effect out.
func newSession(api backend, snapshot effects.SnapshotWriter, snackBarDuration time.Duration, log *slog.Logger) *session {
	st := store.New(store.State{}, nil, log)
	bar := snackbar.NewBar()

	snackCfg := effects.DefaultSnackBarConfig()
	if snackBarDuration > 0 {
		snackCfg.Duration = snackBarDuration
	}

	effs := effects.NewReadingList(api, bar, snackCfg).Effects()
	effs = append(effs, effects.Books(api)...)
	if snapshot != nil {
		effs = append(effs, effects.Snapshot(snapshot, st.State, log)...)
	}

	return &session{
		store:    st,
		bar:      bar,
		pipeline: effects.New(st, log, effs...),
	}
}

// start runs the effects until stop is called or ctx is done.
func (s *session) start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.pipeline.Start(ctx)
}

func (s *session) stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return s.pipeline.Wait()
}

// load starts the session and waits for the initial reading list.
func (s *session) load(ctx context.Context) ([]model.ReadingListItem, error) {
	sub := s.store.Actions(action.KindLoadReadingListSuccess, action.KindLoadReadingListError)
	defer sub.Close()

	s.start(ctx)
	a, ok := sub.Next(ctx)
	if !ok {
		return nil, ctx.Err()
	}
	if err := action.Err(a); err != nil {
		return nil, fmt.Errorf("loading reading list: %w", err)
	}
	return store.ReadingList(s.store.State()), nil
}

// dispatchAndWait dispatches a and returns the first following action of
// one of kinds. Failure actions are returned as errors.
func (s *session) dispatchAndWait(ctx context.Context, a action.Action, kinds ...action.Kind) (action.Action, error) {
	sub := s.store.Actions(kinds...)
	defer sub.Close()

	s.store.Dispatch(a)
	out, ok := sub.Next(ctx)
	if !ok {
		return nil, ctx.Err()
	}
	if err := action.Err(out); err != nil {
		return out, err
	}
	return out, nil
}

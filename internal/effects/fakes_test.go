package effects_test

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/okreads/internal/action"
	"github.com/blackwell-systems/okreads/internal/effects"
	"github.com/blackwell-systems/okreads/internal/model"
	"github.com/blackwell-systems/okreads/internal/snackbar"
	"github.com/blackwell-systems/okreads/internal/store"
)

// fakeAPI records calls in order. getGate, when set, holds GET until closed.
type fakeAPI struct {
	mu     sync.Mutex
	calls  []string
	posted []model.BookView

	list       []model.ReadingListItem
	getErr     error
	addErr     error
	removeErr  error
	finishErr  error
	getGate    chan struct{}
	getStarted chan struct{}
	postDelay  time.Duration

	active    atomic.Int32
	maxActive atomic.Int32
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Posted() []model.BookView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.BookView(nil), f.posted...)
}

func (f *fakeAPI) count(prefix string) int {
	n := 0
	for _, c := range f.Calls() {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func (f *fakeAPI) GetReadingList(ctx context.Context) ([]model.ReadingListItem, error) {
	f.record("GET")
	if f.getStarted != nil {
		select {
		case f.getStarted <- struct{}{}:
		default:
		}
	}
	if f.getGate != nil {
		select {
		case <-f.getGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.list, f.getErr
}

func (f *fakeAPI) AddToReadingList(ctx context.Context, book model.BookView) error {
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		m := f.maxActive.Load()
		if n <= m || f.maxActive.CompareAndSwap(m, n) {
			break
		}
	}
	f.mu.Lock()
	f.posted = append(f.posted, book)
	f.mu.Unlock()
	f.record("POST " + book.ID)
	if f.postDelay > 0 {
		time.Sleep(f.postDelay)
	}
	return f.addErr
}

func (f *fakeAPI) RemoveFromReadingList(ctx context.Context, bookID string) error {
	f.record("DELETE " + bookID)
	return f.removeErr
}

func (f *fakeAPI) MarkAsFinished(ctx context.Context, bookID string) error {
	f.record("PUT " + bookID)
	return f.finishErr
}

// fakeSnack hands out refs whose action can be pressed at any time, even
// after dismissal, so late presses can be simulated.
type fakeSnack struct {
	opened chan *fakeRef
}

func newFakeSnack() *fakeSnack {
	return &fakeSnack{opened: make(chan *fakeRef, 16)}
}

func (s *fakeSnack) Open(message, label string, opts snackbar.Options) snackbar.Ref {
	r := &fakeRef{
		message:   message,
		label:     label,
		opts:      opts,
		action:    make(chan struct{}),
		dismissed: make(chan struct{}),
	}
	s.opened <- r
	return r
}

func (s *fakeSnack) next(t *testing.T) *fakeRef {
	t.Helper()
	select {
	case r := <-s.opened:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no snackbar opened")
		return nil
	}
}

type fakeRef struct {
	message   string
	label     string
	opts      snackbar.Options
	action    chan struct{}
	dismissed chan struct{}
	pressOnce sync.Once
	dismOnce  sync.Once
}

func (r *fakeRef) Action() <-chan struct{}    { return r.action }
func (r *fakeRef) Dismissed() <-chan struct{} { return r.dismissed }
func (r *fakeRef) Dismiss()                   { r.dismOnce.Do(func() { close(r.dismissed) }) }
func (r *fakeRef) press()                     { r.pressOnce.Do(func() { close(r.action) }) }

func (r *fakeRef) isDismissed() bool {
	select {
	case <-r.dismissed:
		return true
	default:
		return false
	}
}

// syncBuffer lets the test read log output while effects write to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type harness struct {
	store *store.Store
	pipe  *effects.Pipeline
	api   *fakeAPI
	snack *fakeSnack
	logs  *syncBuffer
	ctx   context.Context
}

func newHarness(t *testing.T, api *fakeAPI, extra ...effects.Effect) *harness {
	t.Helper()
	if api == nil {
		api = &fakeAPI{}
	}
	logs := &syncBuffer{}
	log := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	st := store.New(store.State{}, nil, log)
	snack := newFakeSnack()
	cfg := effects.DefaultSnackBarConfig()

	all := effects.NewReadingList(api, snack, cfg).Effects()
	all = append(all, extra...)
	pipe := effects.New(st, log, all...)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		_ = pipe.Wait()
	})
	return &harness{store: st, pipe: pipe, api: api, snack: snack, logs: logs, ctx: ctx}
}

// start runs the pipeline and waits for the initial load to settle.
func (h *harness) start(t *testing.T) {
	t.Helper()
	sub := h.store.Actions(action.KindLoadReadingListSuccess, action.KindLoadReadingListError)
	defer sub.Close()
	h.pipe.Start(h.ctx)
	next(t, sub)
}

func next(t *testing.T, sub *store.ActionSubscription) action.Action {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	a, ok := sub.Next(ctx)
	require.True(t, ok, "timed out waiting for action")
	return a
}

func expectNone(t *testing.T, sub *store.ActionSubscription, wait time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	if a, ok := sub.Next(ctx); ok {
		t.Fatalf("unexpected action %s %s", a.Kind(), action.Describe(a))
	}
}

func book(id string) model.Book {
	return model.Book{ID: id, Title: fmt.Sprintf("Book %s", id)}
}

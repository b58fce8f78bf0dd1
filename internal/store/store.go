// Package store holds client state. State changes only through Dispatch,
// which runs the reducer and then fans the action out to subscribers in
// dispatch order.
package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/blackwell-systems/okreads/internal/action"
)

// Dispatcher is the write side of the store.
type Dispatcher interface {
	Dispatch(action.Action)
}

// Store is the central state container.
type Store struct {
	mu      sync.Mutex
	state   State
	reducer Reducer
	log     *slog.Logger

	actionSubs map[*ActionSubscription]struct{}
	stateSubs  map[*StateSubscription]struct{}
}

// New creates a store with the given initial state. A nil reducer means Reduce.
func New(initial State, reducer Reducer, log *slog.Logger) *Store {
	if reducer == nil {
		reducer = Reduce
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{
		state:      initial,
		reducer:    reducer,
		log:        log,
		actionSubs: make(map[*ActionSubscription]struct{}),
		stateSubs:  make(map[*StateSubscription]struct{}),
	}
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces a into the state and delivers it to subscribers.
// It never blocks on a slow subscriber.
func (s *Store) Dispatch(a action.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("dispatch", "kind", string(a.Kind()), "detail", action.Describe(a))
	s.state = s.reducer(s.state, a)

	for sub := range s.actionSubs {
		if sub.matches(a.Kind()) {
			sub.box.push(a)
		}
	}
	for sub := range s.stateSubs {
		sub.box.push(s.state)
	}
}

// Actions subscribes to dispatched actions of the given kinds. With no
// kinds every action is delivered.
func (s *Store) Actions(kinds ...action.Kind) *ActionSubscription {
	sub := &ActionSubscription{store: s, box: newMailbox[action.Action]()}
	if len(kinds) > 0 {
		sub.kinds = make(map[action.Kind]struct{}, len(kinds))
		for _, k := range kinds {
			sub.kinds[k] = struct{}{}
		}
	}
	s.mu.Lock()
	s.actionSubs[sub] = struct{}{}
	s.mu.Unlock()
	return sub
}

// Subscribe delivers every state produced after the call. The current
// state is delivered first.
func (s *Store) Subscribe() *StateSubscription {
	sub := &StateSubscription{store: s, box: newMailbox[State]()}
	s.mu.Lock()
	s.stateSubs[sub] = struct{}{}
	sub.box.push(s.state)
	s.mu.Unlock()
	return sub
}

// WaitFor blocks until an action of one of the kinds is dispatched after
// the call. To catch the reply to a dispatch of your own, subscribe with
// Actions before dispatching.
func (s *Store) WaitFor(ctx context.Context, kinds ...action.Kind) (action.Action, error) {
	sub := s.Actions(kinds...)
	defer sub.Close()
	a, ok := sub.Next(ctx)
	if !ok {
		return nil, ctx.Err()
	}
	return a, nil
}

// ActionSubscription receives dispatched actions.
type ActionSubscription struct {
	store *Store
	kinds map[action.Kind]struct{}
	box   *mailbox[action.Action]
	once  sync.Once
}

func (sub *ActionSubscription) matches(k action.Kind) bool {
	if sub.kinds == nil {
		return true
	}
	_, ok := sub.kinds[k]
	return ok
}

// Next returns the next action. ok is false after Close or when ctx is done.
func (sub *ActionSubscription) Next(ctx context.Context) (action.Action, bool) {
	return sub.box.next(ctx)
}

// Close stops delivery. Actions already queued are still returned by Next.
func (sub *ActionSubscription) Close() {
	sub.once.Do(func() {
		sub.store.mu.Lock()
		delete(sub.store.actionSubs, sub)
		sub.store.mu.Unlock()
		sub.box.close()
	})
}

// StateSubscription receives state snapshots.
type StateSubscription struct {
	store *Store
	box   *mailbox[State]
	once  sync.Once
}

// Next returns the next state snapshot.
func (sub *StateSubscription) Next(ctx context.Context) (State, bool) {
	return sub.box.next(ctx)
}

// Close stops delivery.
func (sub *StateSubscription) Close() {
	sub.once.Do(func() {
		sub.store.mu.Lock()
		delete(sub.store.stateSubs, sub)
		sub.store.mu.Unlock()
		sub.box.close()
	})
}

// Package effects reacts to dispatched actions by calling collaborators
// (the HTTP API, the snackbar) and dispatching the resulting actions.
//
// Each Effect declares which action kinds it handles and how overlapping
// triggers of those kinds are treated:
//
//	Concat   one at a time, in dispatch order
//	Exhaust  triggers that arrive while one is running are dropped
//	Switch   a new trigger cancels the running one and waits for it to return
//	Merge    handled inline, for pure mappings
package effects

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/okreads/internal/action"
	"github.com/blackwell-systems/okreads/internal/store"
)

// Policy decides how triggers that overlap an in-flight invocation are handled.
type Policy int

const (
	Merge Policy = iota
	Concat
	Exhaust
	Switch
)

func (p Policy) String() string {
	switch p {
	case Merge:
		return "merge"
	case Concat:
		return "concat"
	case Exhaust:
		return "exhaust"
	case Switch:
		return "switch"
	}
	return "unknown"
}

// Handler performs the side effect for a and returns the actions to
// dispatch. Handlers report failures as actions, never as panics; ctx is
// cancelled when a Switch effect is superseded or the pipeline stops. A
// handler that sees ctx cancelled should return nothing it has not
// already committed to.
type Handler func(ctx context.Context, a action.Action) []action.Action

// Effect binds a Handler to the action kinds it reacts to.
type Effect struct {
	Name   string
	On     []action.Kind
	Policy Policy
	Handle Handler
}

// Pipeline runs a set of effects against a store.
type Pipeline struct {
	store   *store.Store
	effects []Effect
	log     *slog.Logger

	started atomic.Bool
	group   *errgroup.Group
}

// New creates a pipeline. Nothing runs until Start.
func New(s *store.Store, log *slog.Logger, effects ...Effect) *Pipeline {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{store: s, effects: effects, log: log}
}

// Start subscribes every effect, then dispatches action.Init once. When
// Start returns, every action dispatched afterwards is seen by the
// effects. Effects stop when ctx is done.
func (p *Pipeline) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	g, ctx := errgroup.WithContext(ctx)
	p.group = g

	subs := make([]*store.ActionSubscription, len(p.effects))
	for i, e := range p.effects {
		subs[i] = p.store.Actions(e.On...)
	}
	for i, e := range p.effects {
		e, sub := e, subs[i]
		g.Go(func() error {
			defer sub.Close()
			p.log.Debug("effect started", "effect", e.Name, "policy", e.Policy.String())
			switch e.Policy {
			case Exhaust:
				p.runExhaust(ctx, e, sub)
			case Switch:
				p.runSwitch(ctx, e, sub)
			default:
				p.runConcat(ctx, e, sub)
			}
			return nil
		})
	}

	p.store.Dispatch(action.Init{})
}

// Wait blocks until every effect has stopped.
func (p *Pipeline) Wait() error {
	if p.group == nil {
		return nil
	}
	return p.group.Wait()
}

// Run is Start followed by Wait.
func (p *Pipeline) Run(ctx context.Context) error {
	p.Start(ctx)
	return p.Wait()
}

// runConcat handles triggers one after another. Merge effects use it too:
// their handlers do no I/O, so running them inline cannot hold others up.
func (p *Pipeline) runConcat(ctx context.Context, e Effect, sub *store.ActionSubscription) {
	for {
		a, ok := sub.Next(ctx)
		if !ok {
			return
		}
		p.emit(e, p.invoke(ctx, e, a))
	}
}

func (p *Pipeline) runExhaust(ctx context.Context, e Effect, sub *store.ActionSubscription) {
	var (
		busy atomic.Bool
		wg   sync.WaitGroup
	)
	defer wg.Wait()

	for {
		a, ok := sub.Next(ctx)
		if !ok {
			return
		}
		if !busy.CompareAndSwap(false, true) {
			p.log.Debug("trigger dropped while in flight", "effect", e.Name, "kind", string(a.Kind()))
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer busy.Store(false)
			p.emit(e, p.invoke(ctx, e, a))
		}()
	}
}

// runSwitch cancels the running invocation when a new trigger arrives and
// waits for it to return before starting the next. Whatever the cancelled
// invocation managed to produce is still dispatched, apart from failures
// caused by the cancellation itself.
func (p *Pipeline) runSwitch(ctx context.Context, e Effect, sub *store.ActionSubscription) {
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)
	stop := func() {
		if cancel != nil {
			cancel()
			<-done
			cancel = nil
		}
	}
	defer stop()

	for {
		a, ok := sub.Next(ctx)
		if !ok {
			return
		}

		if cancel != nil {
			p.log.Debug("cancelling superseded invocation", "effect", e.Name)
		}
		stop()

		ictx, c := context.WithCancel(ctx)
		d := make(chan struct{})
		cancel, done = c, d
		go func() {
			defer close(d)
			out := p.invoke(ictx, e, a)
			if ictx.Err() != nil && cancelledBy(out) {
				p.log.Debug("discarding cancelled result", "effect", e.Name, "kind", string(a.Kind()))
				return
			}
			p.emit(e, out)
		}()
	}
}

// cancelledBy reports whether any action in out failed because its
// context was cancelled.
func cancelledBy(out []action.Action) bool {
	for _, a := range out {
		if err := action.Err(a); errors.Is(err, context.Canceled) {
			return true
		}
	}
	return false
}

// invoke runs the handler, turning a panic into a logged error so the
// effect keeps consuming triggers.
func (p *Pipeline) invoke(ctx context.Context, e Effect, a action.Action) (out []action.Action) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("effect panicked", "effect", e.Name, "kind", string(a.Kind()), "panic", r)
			out = nil
		}
	}()
	return e.Handle(ctx, a)
}

func (p *Pipeline) emit(e Effect, out []action.Action) {
	for _, a := range out {
		if err := action.Err(a); err != nil {
			p.log.Warn("effect failed", "effect", e.Name, "kind", string(a.Kind()), "error", err)
		}
		p.store.Dispatch(a)
	}
}

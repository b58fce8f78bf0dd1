// Package snackbar shows short-lived notifications that carry one action
// button, such as "Undo".
package snackbar

import (
	"sync"
	"time"
)

// Options control how a notification is shown.
type Options struct {
	Duration time.Duration // zero keeps it open until replaced or dismissed
	Class    string        // style hint for the renderer
}

// Ref is a handle to an open notification.
type Ref interface {
	// Action is closed when the user presses the action button.
	Action() <-chan struct{}
	// Dismissed is closed when the notification goes away for any reason.
	Dismissed() <-chan struct{}
	// Dismiss closes the notification. Safe to call more than once.
	Dismiss()
}

// Service opens notifications.
type Service interface {
	Open(message, actionLabel string, opts Options) Ref
}

// Notification is what a renderer needs to draw the current snackbar.
type Notification struct {
	Message string
	Label   string
	Class   string
}

// Bar is a Service that shows one notification at a time. Opening a new
// notification dismisses the current one.
type Bar struct {
	mu      sync.Mutex
	current *ref
	changes chan struct{}
}

// NewBar creates an empty Bar.
func NewBar() *Bar {
	return &Bar{changes: make(chan struct{}, 1)}
}

// Open shows a notification and returns its handle.
func (b *Bar) Open(message, actionLabel string, opts Options) Ref {
	r := &ref{
		bar:       b,
		n:         Notification{Message: message, Label: actionLabel, Class: opts.Class},
		action:    make(chan struct{}),
		dismissed: make(chan struct{}),
	}

	b.mu.Lock()
	if b.current != nil {
		b.current.closeLocked()
	}
	b.current = r
	if opts.Duration > 0 {
		r.timer = time.AfterFunc(opts.Duration, r.Dismiss)
	}
	b.mu.Unlock()

	b.changed()
	return r
}

// Current returns the visible notification, if any.
func (b *Bar) Current() (Notification, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Notification{}, false
	}
	return b.current.n, true
}

// Undo presses the action button of the visible notification. It reports
// whether there was one to press.
func (b *Bar) Undo() bool {
	b.mu.Lock()
	r := b.current
	if r == nil || r.done {
		b.mu.Unlock()
		return false
	}
	close(r.action)
	r.closeLocked()
	b.current = nil
	b.mu.Unlock()

	b.changed()
	return true
}

// Changes signals whenever the visible notification changes. Signals are
// coalesced.
func (b *Bar) Changes() <-chan struct{} {
	return b.changes
}

func (b *Bar) changed() {
	select {
	case b.changes <- struct{}{}:
	default:
	}
}

type ref struct {
	bar       *Bar
	n         Notification
	action    chan struct{}
	dismissed chan struct{}
	timer     *time.Timer
	done      bool
}

func (r *ref) Action() <-chan struct{}    { return r.action }
func (r *ref) Dismissed() <-chan struct{} { return r.dismissed }

func (r *ref) Dismiss() {
	r.bar.mu.Lock()
	if r.done {
		r.bar.mu.Unlock()
		return
	}
	r.closeLocked()
	if r.bar.current == r {
		r.bar.current = nil
	}
	r.bar.mu.Unlock()
	r.bar.changed()
}

// closeLocked must be called with bar.mu held.
func (r *ref) closeLocked() {
	if r.done {
		return
	}
	r.done = true
	if r.timer != nil {
		r.timer.Stop()
	}
	close(r.dismissed)
}

// Package toast shows notice panels that hide themselves after a fixed time.
package toast

import (
	"time"

	"portfolio/internal/clock"
	"portfolio/internal/ui"
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 5000 * time.Millisecond

// ShowClass marks a visible toast node.
const ShowClass = "show"

// Toast binds a page node to an auto-hide timer. Showing a visible toast restarts its timer.
type Toast struct {
	node     *ui.Node
	sched    *clock.Scheduler
	duration time.Duration
	timer    *clock.Timer

	// OnShow and OnHide run after the node changed; OnHide also runs on auto-dismiss.
	OnShow func()
	OnHide func()
}

// New returns a hidden toast for node. node may be nil (a page without that panel); the timer
// still runs so callers behave the same.
func New(node *ui.Node, sched *clock.Scheduler, d time.Duration) *Toast {
	if d <= 0 {
		d = DefaultDuration
	}
	return &Toast{node: node, sched: sched, duration: d}
}

// Show makes the toast visible and (re)starts the dismissal timer.
func (t *Toast) Show() {
	t.timer.Stop()
	if t.node != nil {
		t.node.AddClass(ShowClass)
	}
	if t.OnShow != nil {
		t.OnShow()
	}
	t.timer = t.sched.AfterFunc(t.duration, t.dismiss)
}

// Hide removes the toast now and cancels a pending dismissal.
func (t *Toast) Hide() {
	t.timer.Stop()
	t.timer = nil
	if t.node != nil {
		t.node.RemoveClass(ShowClass)
	}
	if t.OnHide != nil {
		t.OnHide()
	}
}

func (t *Toast) dismiss() {
	t.timer = nil
	if t.node != nil {
		t.node.RemoveClass(ShowClass)
	}
	if t.OnHide != nil {
		t.OnHide()
	}
}

// Visible reports whether the toast is showing.
func (t *Toast) Visible() bool {
	if t.node != nil {
		return t.node.HasClass(ShowClass)
	}
	return t.timer.Pending()
}

// Remaining returns the time until auto-dismiss, 0 when hidden.
func (t *Toast) Remaining() time.Duration {
	return t.timer.Remaining()
}

// Node returns the bound page node.
func (t *Toast) Node() *ui.Node {
	return t.node
}

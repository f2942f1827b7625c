package theme

import (
	"time"

	"portfolio/internal/clock"
	"portfolio/internal/ui"
)

// PulseDuration is how long the pulse animation runs before the theme advances.
const PulseDuration = 1500 * time.Millisecond

// PulseState is the pulse control's state.
type PulseState int

const (
	PulseIdle PulseState = iota
	PulsePending
)

func (s PulseState) String() string {
	if s == PulsePending {
		return "pending"
	}
	return "idle"
}

// Pulse drives the theme-advancing control: a click starts a timed animation, the control is
// disabled while it runs, and the timer's completion is the only way back to idle.
type Pulse struct {
	cycler   *Cycler
	sched    *clock.Scheduler
	button   *ui.Node // may be nil; the state machine still runs
	duration time.Duration
	state    PulseState
	timer    *clock.Timer
}

// NewPulse returns an idle pulse bound to the control node.
func NewPulse(c *Cycler, sched *clock.Scheduler, button *ui.Node) *Pulse {
	return &Pulse{cycler: c, sched: sched, button: button, duration: PulseDuration}
}

// SetDuration overrides the animation length (from content config). Non-positive values are ignored.
func (p *Pulse) SetDuration(d time.Duration) {
	if d > 0 {
		p.duration = d
	}
}

// State returns the current state.
func (p *Pulse) State() PulseState {
	return p.state
}

// Trigger starts the pulse. Returns false when a pulse is already pending.
func (p *Pulse) Trigger() bool {
	if p.state == PulsePending {
		return false
	}
	p.state = PulsePending
	if p.button != nil {
		if t, ok := p.cycler.Current(); ok {
			p.button.SetStyle("--pulse-glow", t.Glow)
		}
		p.button.AddClass("pulse-animation")
		p.button.Disabled = true
	}
	p.timer = p.sched.AfterFunc(p.duration, p.complete)
	return true
}

func (p *Pulse) complete() {
	p.timer = nil
	if p.button != nil {
		p.button.RemoveClass("pulse-animation")
		p.button.Disabled = false
	}
	p.state = PulseIdle
	p.cycler.Advance()
}

// Progress returns how far the running animation is, in [0,1]; 0 when idle.
func (p *Pulse) Progress() float64 {
	if p.state != PulsePending || p.timer == nil || p.duration <= 0 {
		return 0
	}
	return 1 - float64(p.timer.Remaining())/float64(p.duration)
}

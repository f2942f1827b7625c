package clock

import (
	"sort"
	"time"
)

// Scheduler is a virtual clock advanced by the frame loop. Timers fire from Advance on the caller's
// goroutine, so callbacks may touch UI state without locking. Not safe for concurrent use.
type Scheduler struct {
	now    time.Duration
	seq    uint64
	timers []*Timer
}

// Timer is a single-shot callback registered with a Scheduler.
type Timer struct {
	s        *Scheduler
	deadline time.Duration
	seq      uint64
	fn       func()
	pending  bool
}

// New returns a scheduler at virtual time zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the virtual time elapsed since New.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// AfterFunc schedules fn to run once d has elapsed. d <= 0 fires on the next Advance.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &Timer{s: s, deadline: s.now + d, seq: s.seq, fn: fn, pending: true}
	s.timers = append(s.timers, t)
	return t
}

// Advance moves the clock forward by dt and runs every timer whose deadline is reached, earliest first.
// Timers scheduled by a callback also fire in the same call when their deadline is within the window.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt
	for {
		t := s.nextDue(target)
		if t == nil {
			break
		}
		s.now = t.deadline
		t.pending = false
		s.remove(t)
		if t.fn != nil {
			t.fn()
		}
	}
	s.now = target
}

// Pending reports how many timers are waiting to fire.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

func (s *Scheduler) nextDue(limit time.Duration) *Timer {
	if len(s.timers) == 0 {
		return nil
	}
	sort.SliceStable(s.timers, func(i, j int) bool {
		a, b := s.timers[i], s.timers[j]
		if a.deadline != b.deadline {
			return a.deadline < b.deadline
		}
		return a.seq < b.seq
	})
	if s.timers[0].deadline > limit {
		return nil
	}
	return s.timers[0]
}

func (s *Scheduler) remove(t *Timer) {
	for i, x := range s.timers {
		if x == t {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return
		}
	}
}

// Stop cancels the timer. Returns true if it was still pending.
func (t *Timer) Stop() bool {
	if t == nil || !t.pending {
		return false
	}
	t.pending = false
	t.s.remove(t)
	return true
}

// Pending reports whether the timer has neither fired nor been stopped.
func (t *Timer) Pending() bool {
	return t != nil && t.pending
}

// Remaining returns the virtual time left before the timer fires, or 0 when it is not pending.
func (t *Timer) Remaining() time.Duration {
	if !t.Pending() {
		return 0
	}
	return t.deadline - t.s.now
}

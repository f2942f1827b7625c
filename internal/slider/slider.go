// Package slider is the vertical slide deck: one full-height panel at a time, eased transitions,
// wheel paging with a direction debounce and an after-change notification.
package slider

import (
	"math"
	"time"

	"golang.org/x/exp/constraints"

	"portfolio/internal/clock"
)

const (
	DefaultSpeed   = 1000 * time.Millisecond
	WheelThreshold = 40
	WheelDebounce  = 1200 * time.Millisecond
)

// Slider tracks the current slide and the animated offset between slides. It is not infinite:
// indices clamp to [0, count-1].
type Slider struct {
	count   int
	speed   time.Duration
	current int

	animating bool
	from      float64
	elapsed   time.Duration
	offset    float64

	sched     *clock.Scheduler
	scrolling bool
	direction int
	wheel     *clock.Timer

	afterChange []func(int)
	onInit      []func(int)
	inited      bool
}

// New returns a deck of count slides on slide 0. speed <= 0 means DefaultSpeed.
func New(count int, speed time.Duration, sched *clock.Scheduler) *Slider {
	if count < 1 {
		count = 1
	}
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return &Slider{count: count, speed: speed, sched: sched}
}

// OnAfterChange registers fn to run with the new index whenever a transition completes.
func (s *Slider) OnAfterChange(fn func(int)) {
	s.afterChange = append(s.afterChange, fn)
}

// OnInit registers fn to run once with the starting index when Init is called.
func (s *Slider) OnInit(fn func(int)) {
	s.onInit = append(s.onInit, fn)
}

// Init fires the init hooks. Later calls do nothing.
func (s *Slider) Init() {
	if s.inited {
		return
	}
	s.inited = true
	for _, fn := range s.onInit {
		fn(s.current)
	}
}

// Count returns the number of slides.
func (s *Slider) Count() int {
	return s.count
}

// Current returns the slide being shown or animated to.
func (s *Slider) Current() int {
	return s.current
}

// Animating reports whether a transition is in flight.
func (s *Slider) Animating() bool {
	return s.animating
}

// Offset returns the animated position in slides; 2.5 means halfway between slides 2 and 3.
func (s *Slider) Offset() float64 {
	return s.offset
}

// GoTo moves to slide i, clamped to the deck. Instant jumps skip the tween and notify right away.
// A non-instant request while a transition is running is dropped; so is a request for the slide
// already shown.
func (s *Slider) GoTo(i int, instant bool) {
	i = clamp(i, 0, s.count-1)
	if i == s.current {
		return
	}
	if instant {
		s.current = i
		s.animating = false
		s.offset = float64(i)
		s.notify()
		return
	}
	if s.animating {
		return
	}
	s.from = s.offset
	s.current = i
	s.elapsed = 0
	s.animating = true
}

// Next goes one slide down.
func (s *Slider) Next() {
	s.GoTo(s.current+1, false)
}

// Prev goes one slide up.
func (s *Slider) Prev() {
	s.GoTo(s.current-1, false)
}

// Update advances the running transition and fires after-change when it lands.
func (s *Slider) Update(dt time.Duration) {
	if !s.animating {
		return
	}
	s.elapsed += dt
	t := float64(s.elapsed) / float64(s.speed)
	if t >= 1 {
		s.animating = false
		s.offset = float64(s.current)
		s.notify()
		return
	}
	s.offset = s.from + (float64(s.current)-s.from)*EaseInOutCubic(t)
}

func (s *Slider) notify() {
	for _, fn := range s.afterChange {
		fn(s.current)
	}
}

// Wheel pages by one slide per gesture. Small deltas are noise. While a gesture's debounce window
// is open, further wheel events in the same direction are ignored; a reversal goes through at once.
func (s *Slider) Wheel(deltaY float64) bool {
	if math.Abs(deltaY) < WheelThreshold {
		return false
	}
	dir := 1
	if deltaY < 0 {
		dir = -1
	}
	if s.scrolling && dir == s.direction {
		return false
	}
	s.direction = dir
	if dir > 0 {
		s.Next()
	} else {
		s.Prev()
	}
	// Without a scheduler nothing could close the window, so there is no debounce.
	if s.sched != nil {
		s.scrolling = true
		if s.wheel != nil {
			s.wheel.Stop()
		}
		s.wheel = s.sched.AfterFunc(WheelDebounce, func() { s.scrolling = false })
	}
	return true
}

// EaseInOutCubic maps t in [0,1] to an eased progress in [0,1].
func EaseInOutCubic(t float64) float64 {
	t = clamp(t, 0, 1)
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := -2*t + 2
	return 1 - f*f*f/2
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

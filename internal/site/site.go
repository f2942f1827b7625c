// Package site wires the page together: the node tree and stylesheet, the theme cycler and pulse
// control, the slide deck with its toasts and word stagger, the skill tile scene and the contact form.
// All state changes happen on the frame loop through Update and the input methods.
package site

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand/v2"
	"time"

	"portfolio/internal/clock"
	"portfolio/internal/contact"
	"portfolio/internal/content"
	"portfolio/internal/logger"
	"portfolio/internal/scene"
	"portfolio/internal/slider"
	"portfolio/internal/theme"
	"portfolio/internal/toast"
	"portfolio/internal/ui"
)

//go:embed page.css
var pageCSS string

// Class names the slide-change handler toggles.
const (
	GlowClass   = "toast-glow"
	TypingClass = "typing"
	FocusClass  = "focus"
)

// Slide indices with behavior attached.
const (
	introSlide  = 0
	aboutSlide  = 1
	skillsSlide = 2
)

// Options configure New. Content is required; everything else has a usable zero value.
type Options struct {
	Content *content.Content
	Sender  contact.Sender // nil disables sending; submits fail with a notice
	Log     *logger.Logger
	Rand    *rand.Rand
	Tuning  *scene.Tuning
	Context context.Context // parent of contact sends
}

// Site is the page. Its exported components are there for the frame loop, the painter and the dev
// console; they are not meant to be replaced after New.
type Site struct {
	Content *content.Content
	UI      *ui.Engine
	Sched   *clock.Scheduler
	Themes  *theme.Cycler
	Pulse   *theme.Pulse
	Deck    *slider.Slider
	Scene   *scene.Scene
	Toast1  *toast.Toast
	Toast2  *toast.Toast
	Form    *contact.Form

	log *logger.Logger
	ctx context.Context

	body      *ui.Node
	container *ui.Node
	pulse     *ui.Node
	canvas    *ui.Node
	scrollTop *ui.Node
	submit    *ui.Node
	about     *ui.Node
	words     []string
	spans     []*ui.Node // one per about word, carrying its animation delay
	typingAt  time.Duration
	anchors   map[*ui.Node]string
	slides    []slide
	focus     *ui.Node

	width, height int
	started       bool
}

type slide struct {
	section content.Section
	panel   *ui.Node
	title   *ui.Node
	body    *ui.Node
}

type sendUnavailable struct{}

func (sendUnavailable) Send(context.Context, contact.Message) error {
	return fmt.Errorf("contact: no email service configured")
}

// New builds the page from content. Nothing is laid out or started until Start.
func New(opts Options) (*Site, error) {
	if opts.Content == nil {
		return nil, fmt.Errorf("site: no content")
	}
	c := opts.Content
	themes, err := c.CompiledThemes()
	if err != nil {
		return nil, fmt.Errorf("site: %w", err)
	}
	sheet, err := ui.ParseCSS(pageCSS)
	if err != nil {
		return nil, fmt.Errorf("site: %w", err)
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	tuning := scene.DefaultTuning()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	sender := opts.Sender
	if sender == nil {
		sender = sendUnavailable{}
	}

	s := &Site{
		Content: c,
		UI:      ui.New(),
		Sched:   clock.New(),
		log:     opts.Log,
		ctx:     ctx,
		anchors: make(map[*ui.Node]string),
	}
	s.UI.SetStylesheet(sheet)
	s.build()

	s.Themes = theme.NewCycler(themes, s.UI)
	s.Pulse = theme.NewPulse(s.Themes, s.Sched, s.pulse)
	s.Pulse.SetDuration(c.Timings.Pulse())
	s.Deck = slider.New(len(c.Sections), c.Timings.Slide(), s.Sched)
	s.Scene = scene.New(s.Themes, opts.Rand, opts.Log, tuning)
	s.Toast1 = toast.New(s.UI.First("#toastDiv1"), s.Sched, c.Timings.Toast())
	s.Toast2 = toast.New(s.UI.First("#toastDiv2"), s.Sched, c.Timings.Toast())
	s.Form = contact.NewForm(sender, opts.Log, contact.Fields{
		FullName: s.UI.First("#full_name"),
		Email:    s.UI.First("#email"),
		Phone:    s.UI.First("#phone"),
		Message:  s.UI.First("#message"),
		Notice:   s.UI.First(".form-notice"),
	})

	s.Toast1.OnShow = func() {
		if s.pulse == nil {
			return
		}
		s.pulse.AddClass(GlowClass)
		if t, ok := s.Themes.Current(); ok {
			s.pulse.SetStyle("--pulse-glow", t.Glow)
		}
	}
	s.Toast1.OnHide = func() {
		if s.pulse != nil {
			s.pulse.RemoveClass(GlowClass)
		}
	}
	s.Deck.OnAfterChange(s.onSlideChange)
	s.Deck.OnInit(func(i int) {
		if i == introSlide {
			s.Toast1.Show()
		}
	})
	s.Themes.OnChange = func(t theme.Theme) {
		s.log.Logf("theme: %s", t.Name)
	}
	return s, nil
}

// Start applies the first theme, lays the page out for a width×height window, builds the tile
// scene inside the canvas container and initializes the deck.
func (s *Site) Start(width, height int) {
	s.Themes.Initialize()
	s.layout(width, height)
	if s.canvas == nil {
		s.log.Log("site: no canvas container, skill tiles disabled")
	} else {
		s.Scene.Setup(int(s.canvas.Bounds.Width), int(s.canvas.Bounds.Height), s.Content.Skills)
	}
	s.started = true
	s.Deck.Init()
	s.syncSlide(s.Deck.Current())
}

// Resize re-lays the page and rebuilds the tile scene for the new canvas size.
func (s *Site) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.layout(width, height)
	if s.canvas != nil && s.started {
		w, h := int(s.canvas.Bounds.Width), int(s.canvas.Bounds.Height)
		if s.Scene.State() == scene.Running {
			s.Scene.OnViewportResize(w, h)
		} else {
			s.Scene.Setup(w, h, s.Content.Skills)
		}
	}
}

// Update advances timers, the deck tween, the physics and the contact form by dt.
func (s *Site) Update(dt time.Duration) {
	s.Sched.Advance(dt)
	s.Deck.Update(dt)
	s.Scene.Update(dt.Seconds())
	s.Form.Poll()
	s.updateTyping()
}

// onSlideChange runs after every completed slide transition.
func (s *Site) onSlideChange(i int) {
	switch i {
	case introSlide:
		s.Toast1.Show()
		s.Toast2.Hide()
	case skillsSlide:
		s.Toast2.Show()
		s.Toast1.Hide()
		s.removeGlow()
	default:
		s.Toast1.Hide()
		s.Toast2.Hide()
		s.removeGlow()
	}
	s.syncSlide(i)
}

// syncSlide sets the slide-dependent page state that does not involve toasts.
func (s *Site) syncSlide(i int) {
	if s.about != nil {
		if i == aboutSlide {
			s.about.AddClass(TypingClass)
			s.typingAt = s.Sched.Now()
			for j, span := range s.spans {
				span.SetStyle("animation-delay", fmt.Sprintf("%dms", (time.Duration(j)*s.Content.Timings.Stagger()).Milliseconds()))
			}
		} else {
			s.about.RemoveClass(TypingClass)
			for _, span := range s.spans {
				span.SetStyle("animation-delay", "0ms")
			}
		}
		s.updateTyping()
	}

	if s.scrollTop != nil {
		s.scrollTop.Hidden = i < skillsSlide
	}
}

func (s *Site) removeGlow() {
	if s.pulse != nil {
		s.pulse.RemoveClass(GlowClass)
	}
}

// updateTyping reveals the about paragraph word by word while it is typing.
func (s *Site) updateTyping() {
	if s.about == nil {
		return
	}
	if !s.about.HasClass(TypingClass) {
		s.about.Text = joinWords(s.words, len(s.words))
		return
	}
	elapsed := s.Sched.Now() - s.typingAt
	shown := 0
	for _, span := range s.spans {
		d, err := time.ParseDuration(span.Style("animation-delay"))
		if err != nil || d > elapsed {
			break
		}
		shown++
	}
	s.about.Text = joinWords(s.words, shown)
}

// Anchor follows an in-page link such as "#skills". Unknown anchors are ignored.
func (s *Site) Anchor(href string) bool {
	i, ok := s.Content.Anchors[href]
	if !ok {
		return false
	}
	s.Deck.GoTo(i, false)
	return true
}

// ScrollTop jumps straight back to the first slide.
func (s *Site) ScrollTop() {
	s.Deck.GoTo(0, true)
}

// Wheel forwards a vertical wheel delta to the deck.
func (s *Site) Wheel(deltaY float64) bool {
	return s.Deck.Wheel(deltaY)
}

// Click routes a primary click at window coordinates to the node under it.
func (s *Site) Click(x, y float32) {
	n := s.UI.NodeAt(x, y, float32(s.Deck.Offset()), float32(s.height))
	if !ui.Interactive(n) {
		s.setFocus(nil)
		return
	}
	switch {
	case n == s.pulse:
		s.Pulse.Trigger()
	case n == s.scrollTop:
		s.ScrollTop()
	case n == s.submit:
		if err := s.Form.Submit(s.ctx); err != nil {
			s.log.Logf("site: submit: %v", err)
		}
	case n.Type == "input" || n.Type == "textarea":
		s.setFocus(n)
		return
	default:
		if href, ok := s.anchors[n]; ok {
			s.Anchor(href)
		}
	}
	s.setFocus(nil)
}

func (s *Site) setFocus(n *ui.Node) {
	if s.focus != nil {
		s.focus.RemoveClass(FocusClass)
	}
	s.focus = n
	if n != nil {
		n.AddClass(FocusClass)
	}
}

// Focused returns the input receiving typed text, or nil.
func (s *Site) Focused() *ui.Node {
	return s.focus
}

// TypeRune appends r to the focused input.
func (s *Site) TypeRune(r rune) {
	if s.focus == nil || s.Form.Busy() {
		return
	}
	s.focus.Text += string(r)
}

// Backspace deletes the last rune of the focused input. Fields are frozen while a send is in flight.
func (s *Site) Backspace() {
	if s.focus == nil || s.focus.Text == "" || s.Form.Busy() {
		return
	}
	r := []rune(s.focus.Text)
	s.focus.Text = string(r[:len(r)-1])
}

// CanvasPoint converts window coordinates into tile scene coordinates. ok is false unless the deck
// is resting on the canvas slide and the point is inside the canvas.
func (s *Site) CanvasPoint(x, y float32) (cx, cy float64, ok bool) {
	if s.canvas == nil || s.Deck.Animating() || s.Deck.Current() != s.canvas.Slide {
		return 0, 0, false
	}
	b := s.canvas.Bounds
	if !b.Contains(x, y) {
		return 0, 0, false
	}
	return float64(x - b.X), float64(y - b.Y), true
}

// Canvas returns the node the tile scene is drawn into, or nil.
func (s *Site) Canvas() *ui.Node {
	return s.canvas
}

// Size returns the laid-out window size.
func (s *Site) Size() (width, height int) {
	return s.width, s.height
}

package site

import (
	"context"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/anthonynsimon/bild/imgio"

	"portfolio/internal/contact"
	"portfolio/internal/content"
	"portfolio/internal/scene"
	"portfolio/internal/theme"
)

func newSite(t *testing.T, mutate func(*content.Content)) *Site {
	t.Helper()
	c, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	if mutate != nil {
		mutate(c)
	}
	s, err := New(Options{Content: c, Rand: rand.New(rand.NewPCG(1, 2))})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Start(1280, 720)
	return s
}

func TestStartShowsFirstToastWithGlow(t *testing.T) {
	s := newSite(t, nil)
	if !s.Toast1.Visible() || s.Toast2.Visible() {
		t.Fatalf("toasts = %v, %v; want first only", s.Toast1.Visible(), s.Toast2.Visible())
	}
	if !s.pulse.HasClass(GlowClass) {
		t.Error("pulse control has no glow")
	}
	first := theme.Defaults()[0]
	if got := s.pulse.Style("--pulse-glow"); got != first.Glow {
		t.Errorf("--pulse-glow = %q, want %q", got, first.Glow)
	}
	if s.Scene.State() != scene.Running || len(s.Scene.Tiles()) != len(s.Content.Skills) {
		t.Errorf("scene %v with %d tiles", s.Scene.State(), len(s.Scene.Tiles()))
	}
	if !s.scrollTop.Hidden {
		t.Error("scroll-top visible on the first slide")
	}
}

func TestFirstToastExpiryDropsGlow(t *testing.T) {
	s := newSite(t, nil)
	s.Update(5 * time.Second)
	if s.Toast1.Visible() || s.pulse.HasClass(GlowClass) {
		t.Error("toast or glow still up after 5s")
	}
}

func TestSlideChangeToasts(t *testing.T) {
	s := newSite(t, nil)

	s.Deck.GoTo(skillsSlide, true)
	if s.Toast1.Visible() || !s.Toast2.Visible() {
		t.Errorf("skills slide: toasts = %v, %v; want second only", s.Toast1.Visible(), s.Toast2.Visible())
	}
	if s.pulse.HasClass(GlowClass) {
		t.Error("glow kept on skills slide")
	}
	if s.scrollTop.Hidden {
		t.Error("scroll-top hidden on skills slide")
	}

	s.Deck.GoTo(3, true)
	if s.Toast1.Visible() || s.Toast2.Visible() {
		t.Error("toast visible on a plain slide")
	}

	s.Deck.GoTo(introSlide, true)
	if !s.Toast1.Visible() || s.Toast2.Visible() || !s.pulse.HasClass(GlowClass) {
		t.Error("first slide did not bring back the first toast")
	}
}

func TestAboutSlideTypesWords(t *testing.T) {
	s := newSite(t, nil)
	if len(s.words) == 0 || s.words[0] != "I" {
		t.Fatalf("words = %v", s.words)
	}
	for _, w := range s.words {
		if w == "<strong>research</strong>," {
			t.Fatal("markup left in about text")
		}
	}

	s.Deck.GoTo(aboutSlide, true)
	if !s.about.HasClass(TypingClass) {
		t.Fatal("about paragraph not typing")
	}
	for i, span := range s.spans {
		want := fmt.Sprintf("%dms", i*80)
		if got := span.Style("animation-delay"); got != want {
			t.Fatalf("span %d delay = %q, want %q", i, got, want)
		}
	}
	if s.about.Text != "I" {
		t.Errorf("text at 0ms = %q", s.about.Text)
	}
	s.Update(170 * time.Millisecond)
	if s.about.Text != joinWords(s.words, 3) {
		t.Errorf("text at 170ms = %q", s.about.Text)
	}

	s.Deck.GoTo(3, true)
	if s.about.HasClass(TypingClass) || s.spans[5].Style("animation-delay") != "0ms" {
		t.Error("typing state kept after leaving the about slide")
	}
	if s.about.Text != joinWords(s.words, len(s.words)) {
		t.Errorf("text = %q, want the whole paragraph", s.about.Text)
	}
}

func TestAnchorsAndScrollTop(t *testing.T) {
	s := newSite(t, nil)
	if s.Anchor("#nowhere") {
		t.Error("unknown anchor followed")
	}
	if !s.Anchor("#contact") {
		t.Fatal("#contact not followed")
	}
	s.Update(1100 * time.Millisecond)
	if s.Deck.Current() != 8 || s.Deck.Animating() {
		t.Fatalf("current = %d, animating = %v", s.Deck.Current(), s.Deck.Animating())
	}
	s.ScrollTop()
	if s.Deck.Current() != 0 || s.Deck.Animating() {
		t.Errorf("after scroll-top current = %d", s.Deck.Current())
	}
	if len(s.anchors) != len(s.Content.Anchors) {
		t.Errorf("%d nav links for %d anchors", len(s.anchors), len(s.Content.Anchors))
	}
}

func TestClickPulse(t *testing.T) {
	s := newSite(t, nil)
	b := s.pulse.Bounds
	s.Click(b.X+b.Width/2, b.Y+b.Height/2)
	if s.Pulse.State() != theme.PulsePending {
		t.Fatalf("pulse state = %v", s.Pulse.State())
	}
	s.Update(1500 * time.Millisecond)
	if s.Themes.Index() != 1 {
		t.Errorf("theme index = %d after pulse", s.Themes.Index())
	}
}

func TestTypingAndSubmitWithoutService(t *testing.T) {
	s := newSite(t, nil)
	s.Deck.GoTo(8, true)

	fill := func(id, text string) {
		n := s.UI.First("#" + id)
		s.Click(n.Bounds.X+5, n.Bounds.Y+5)
		if s.Focused() != n {
			t.Fatalf("#%s not focused", id)
		}
		for _, r := range text {
			s.TypeRune(r)
		}
	}
	fill("full_name", "Ann")
	s.Backspace()
	s.TypeRune('a')
	fill("email", "ann@example.com")
	fill("message", "hi")
	if got := s.Form.Message().FullName; got != "Ana" {
		t.Errorf("FullName = %q", got)
	}

	s.Click(s.submit.Bounds.X+5, s.submit.Bounds.Y+5)
	if s.Focused() != nil {
		t.Error("focus kept after clicking submit")
	}
	deadline := time.Now().Add(2 * time.Second)
	for s.Form.Busy() && time.Now().Before(deadline) {
		s.Update(time.Millisecond)
		time.Sleep(time.Millisecond)
	}
	if s.Form.Notice() != contact.NoticeFailed {
		t.Errorf("notice = %q", s.Form.Notice())
	}
	if s.Form.Message().Email != "ann@example.com" {
		t.Error("failed send cleared the form")
	}
}

// heldSender blocks every send until release is closed.
type heldSender struct{ release chan struct{} }

func (h heldSender) Send(ctx context.Context, m contact.Message) error {
	select {
	case <-h.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func TestFieldsFrozenWhileSending(t *testing.T) {
	c, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	held := heldSender{release: make(chan struct{})}
	s, err := New(Options{Content: c, Sender: held, Rand: rand.New(rand.NewPCG(1, 2))})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Start(1280, 720)
	s.Deck.GoTo(8, true)

	focus := func(id string) {
		n := s.UI.First("#" + id)
		s.Click(n.Bounds.X+5, n.Bounds.Y+5)
	}
	for id, text := range map[string]string{"full_name": "Ann", "email": "ann@example.com", "message": "hello"} {
		focus(id)
		for _, r := range text {
			s.TypeRune(r)
		}
	}
	s.Click(s.submit.Bounds.X+5, s.submit.Bounds.Y+5)
	if !s.Form.Busy() {
		t.Fatal("submit did not start a send")
	}

	focus("message")
	s.Backspace()
	s.TypeRune('!')
	if got := s.Form.Message().Message; got != "hello" {
		t.Errorf("message edited during send: %q", got)
	}

	close(held.release)
	deadline := time.Now().Add(2 * time.Second)
	for s.Form.Busy() && time.Now().Before(deadline) {
		s.Update(time.Millisecond)
		time.Sleep(time.Millisecond)
	}
	if s.Form.Notice() != contact.NoticeSent {
		t.Errorf("notice = %q", s.Form.Notice())
	}
}

func TestNoCanvasContainer(t *testing.T) {
	s := newSite(t, func(c *content.Content) {
		var kept []content.Section
		for _, sec := range c.Sections {
			if sec.Kind != "skills" {
				kept = append(kept, sec)
			}
		}
		c.Sections = kept
	})
	if s.Canvas() != nil {
		t.Fatal("canvas built without a skills section")
	}
	if s.Scene.State() != scene.Uninitialized {
		t.Errorf("scene state = %v", s.Scene.State())
	}
	s.Update(time.Second)
	s.Resize(800, 600)
	if _, _, ok := s.CanvasPoint(10, 10); ok {
		t.Error("canvas point without a canvas")
	}
}

func TestCanvasPointAndResize(t *testing.T) {
	s := newSite(t, nil)
	b := s.Canvas().Bounds
	if _, _, ok := s.CanvasPoint(b.X+10, b.Y+10); ok {
		t.Error("canvas point accepted off the skills slide")
	}
	s.Deck.GoTo(skillsSlide, true)
	x, y, ok := s.CanvasPoint(b.X+10, b.Y+20)
	if !ok || x != float64(b.X+10-b.X) || y != float64(b.Y+20-b.Y) {
		t.Errorf("CanvasPoint = %v, %v, %v", x, y, ok)
	}

	s.Resize(800, 600)
	w, h := s.Scene.Size()
	if w != int(s.Canvas().Bounds.Width) || h != int(s.Canvas().Bounds.Height) {
		t.Errorf("scene %dx%d, canvas %v", w, h, s.Canvas().Bounds)
	}
	if dynamic, static := s.Scene.World().Counts(); dynamic != len(s.Content.Skills) || static != 4 {
		t.Errorf("counts after resize = %d, %d", dynamic, static)
	}
}

func TestSnapshotUsesThemeBackground(t *testing.T) {
	s := newSite(t, nil)
	path := filepath.Join(t.TempDir(), "tiles.png")
	if err := s.Snapshot(path, nil); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	img, err := imgio.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	w, h := s.Scene.Size()
	if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
		t.Fatalf("image %v, scene %dx%d", b, w, h)
	}
	want := theme.Defaults()[0].Palette().Background
	r, g, b, _ := img.At(1, 1).RGBA()
	for i, c := range [][2]uint32{{r >> 8, uint32(want.R)}, {g >> 8, uint32(want.G)}, {b >> 8, uint32(want.B)}} {
		if d := int(c[0]) - int(c[1]); d < -1 || d > 1 {
			t.Errorf("channel %d = %d, want %d", i, c[0], c[1])
		}
	}
}

func TestSnapshotWithoutScene(t *testing.T) {
	s, err := New(Options{Content: mustDefault(t)})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Snapshot(filepath.Join(t.TempDir(), "x.png"), nil); err == nil {
		t.Error("snapshot before Start succeeded")
	}
}

func mustDefault(t *testing.T) *content.Content {
	t.Helper()
	c, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	return c
}

package graphics

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio/internal/site"
)

// wheelPixels is how far one wheel notch scrolls in a browser, so the deck's wheel threshold keeps
// its meaning.
const wheelPixels = 100

// Input routes mouse and keyboard to the page each frame. Grabbing a tile takes precedence over a
// click; while the console is open the keyboard belongs to it.
type Input struct {
	site     *site.Site
	console  interface{ IsOpen() bool }
	dragging bool
}

// NewInput returns an input router. console may be nil.
func NewInput(s *site.Site, console interface{ IsOpen() bool }) *Input {
	return &Input{site: s, console: console}
}

// Update polls raylib once. Call after the console's Update.
func (in *Input) Update() {
	if rl.IsWindowResized() {
		in.site.Resize(int(rl.GetScreenWidth()), int(rl.GetScreenHeight()))
	}
	in.mouse()
	if in.console != nil && in.console.IsOpen() {
		return
	}
	in.keys()
}

func (in *Input) mouse() {
	m := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if x, y, ok := in.site.CanvasPoint(m.X, m.Y); ok && in.site.Scene.PointerDown(x, y) {
			in.dragging = true
		} else {
			in.site.Click(m.X, m.Y)
		}
	}
	if in.dragging {
		if c := in.site.Canvas(); c != nil {
			in.site.Scene.PointerMove(float64(m.X-c.Bounds.X), float64(m.Y-c.Bounds.Y))
		}
		if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
			in.site.Scene.PointerUp()
			in.dragging = false
		}
	}
	if d := rl.GetMouseWheelMove(); d != 0 && !in.dragging {
		in.site.Wheel(float64(-d) * wheelPixels)
	}
}

func (in *Input) keys() {
	for {
		c := rl.GetCharPressed()
		if c == 0 {
			break
		}
		in.site.TypeRune(rune(c))
	}
	if rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace) {
		in.site.Backspace()
	}
	if in.site.Focused() != nil {
		return
	}
	switch {
	case rl.IsKeyPressed(rl.KeyDown), rl.IsKeyPressed(rl.KeyPageDown):
		in.site.Deck.Next()
	case rl.IsKeyPressed(rl.KeyUp), rl.IsKeyPressed(rl.KeyPageUp):
		in.site.Deck.Prev()
	case rl.IsKeyPressed(rl.KeyHome):
		in.site.ScrollTop()
	}
}

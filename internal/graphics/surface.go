package graphics

import (
	"image/color"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	roundedSegments = 12
	textSpacing     = 1
)

// WindowSurface draws the tile scene into a rectangle of the live window. Begin clips to the
// rectangle and moves the origin to its corner; End restores both. Transforms go through the rlgl
// matrix stack, so rotated tiles and their labels turn together.
type WindowSurface struct {
	font rl.Font
	w, h int
}

// NewWindowSurface returns a surface drawing text with font (zero = raylib default font).
func NewWindowSurface(font rl.Font) *WindowSurface {
	return &WindowSurface{font: font}
}

// Begin starts drawing into the w×h rectangle at window position (x, y).
func (s *WindowSurface) Begin(x, y float32, w, h int) {
	s.w, s.h = w, h
	rl.BeginScissorMode(int32(x), int32(y), int32(w), int32(h))
	rl.PushMatrix()
	rl.Translatef(x, y, 0)
}

// End finishes a Begin.
func (s *WindowSurface) End() {
	rl.PopMatrix()
	rl.EndScissorMode()
}

func (s *WindowSurface) Size() (int, int) { return s.w, s.h }

func (s *WindowSurface) Clear(bg color.RGBA) {
	rl.DrawRectangle(0, 0, int32(s.w), int32(s.h), bg)
}

func (s *WindowSurface) Push() { rl.PushMatrix() }

func (s *WindowSurface) Pop() { rl.PopMatrix() }

func (s *WindowSurface) Translate(x, y float64) { rl.Translatef(float32(x), float32(y), 0) }

// Rotate turns the frame by angle radians.
func (s *WindowSurface) Rotate(angle float64) {
	rl.Rotatef(float32(angle)*180/math32.Pi, 0, 0, 1)
}

func (s *WindowSurface) RoundedRect(x, y, w, h, radius float64, fill, stroke color.RGBA, strokeWidth float64) {
	rec := rl.NewRectangle(float32(x), float32(y), float32(w), float32(h))
	r := Roundness(rec.Width, rec.Height, float32(radius))
	rl.DrawRectangleRounded(rec, r, roundedSegments, fill)
	if strokeWidth > 0 {
		rl.DrawRectangleRoundedLinesEx(rec, r, roundedSegments, float32(strokeWidth), stroke)
	}
}

func (s *WindowSurface) TextCentered(text string, x, y, size float64, col color.RGBA) {
	drawTextCentered(s.font, text, float32(x), float32(y), float32(size), col)
}

// Roundness converts a CSS corner radius into raylib's roundness (corner radius over half the
// shorter side, capped at 1).
func Roundness(w, h, radius float32) float32 {
	short := math32.Min(w, h)
	if short <= 0 || radius <= 0 {
		return 0
	}
	return math32.Min(1, 2*radius/short)
}

func drawTextCentered(font rl.Font, text string, x, y, size float32, col color.RGBA) {
	if font.Texture.ID == 0 {
		w := rl.MeasureText(text, int32(size))
		rl.DrawText(text, int32(x)-w/2, int32(y-size/2), int32(size), col)
		return
	}
	m := rl.MeasureTextEx(font, text, size, textSpacing)
	rl.DrawTextEx(font, text, rl.NewVector2(x-m.X/2, y-m.Y/2), size, textSpacing, col)
}

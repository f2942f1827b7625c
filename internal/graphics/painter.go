package graphics

import (
	"image/color"
	"strings"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"portfolio/internal/canvas"
	"portfolio/internal/site"
	"portfolio/internal/ui"
)

var _ canvas.Surface = (*WindowSurface)(nil)

const (
	shadowLayers = 4
	glowSpread   = 6
	pulseSpread  = 40
	caretPeriod  = 1.0 // seconds per caret blink cycle
)

// Painter draws the page: every visible node in order, offset by the deck position, with the tile
// scene painted inside the canvas container.
type Painter struct {
	site    *site.Site
	font    rl.Font
	surface *WindowSurface
}

// NewPainter returns a painter for s using font (zero = raylib default font).
func NewPainter(s *site.Site, font rl.Font) *Painter {
	return &Painter{site: s, font: font, surface: NewWindowSurface(font)}
}

// Draw paints one frame.
func (p *Painter) Draw() {
	_, height := p.site.Size()
	h := float32(height)
	offset := float32(p.site.Deck.Offset())
	styles := p.site.UI.Styles()
	for i, n := range p.site.UI.Nodes() {
		st := styles[i]
		if n.Hidden || st.Hidden {
			continue
		}
		b := n.Bounds
		if !n.Fixed {
			b.Y += (float32(n.Slide) - offset) * h
			if b.Y >= h || b.Y+b.Height <= 0 {
				continue
			}
		}
		p.node(n, st, b)
		if n == p.site.Canvas() && b.Width > 0 && b.Height > 0 {
			p.surface.Begin(b.X, b.Y, int(b.Width), int(b.Height))
			p.site.Scene.RenderFrame(p.surface)
			p.surface.End()
		}
	}
}

func (p *Painter) node(n *ui.Node, st ui.ComputedStyle, b ui.Rect) {
	rec := rl.NewRectangle(b.X, b.Y, b.Width, b.Height)
	round := Roundness(b.Width, b.Height, st.Radius)

	for _, sh := range st.Shadows {
		if !sh.Inset {
			drawShadow(rec, st.Radius, sh)
		}
	}
	if n.HasClass(site.GlowClass) && st.HasGlow {
		a := 0.45 + 0.25*math32.Sin(float32(rl.GetTime())*4)
		ring := grow(rec, glowSpread)
		rl.DrawRectangleRoundedLinesEx(ring, Roundness(ring.Width, ring.Height, st.Radius+glowSpread), roundedSegments, 3, rl.Fade(st.Glow, a))
	}
	if n.HasClass("pulse-animation") && st.HasGlow {
		t := float32(p.site.Pulse.Progress())
		spread := t * pulseSpread
		ring := grow(rec, spread)
		rl.DrawRectangleRoundedLinesEx(ring, Roundness(ring.Width, ring.Height, st.Radius+spread), roundedSegments, 4, rl.Fade(st.Glow, 1-t))
	}
	if st.Background.A > 0 {
		rl.DrawRectangleRounded(rec, round, roundedSegments, st.Background)
	}
	for _, sh := range st.Shadows {
		if sh.Inset {
			inner := grow(rec, -sh.Blur/2)
			rl.DrawRectangleRoundedLinesEx(inner, Roundness(inner.Width, inner.Height, st.Radius), roundedSegments, sh.Blur/2, rl.Fade(sh.Color, 0.5))
		}
	}
	if st.HasBorder && b.Width > 0 && b.Height > 0 {
		width := float32(1)
		if n.HasClass(site.FocusClass) {
			width = 2
		}
		rl.DrawRectangleRoundedLinesEx(rec, round, roundedSegments, width, st.Border)
	}
	p.text(n, st, b)
}

func (p *Painter) text(n *ui.Node, st ui.ComputedStyle, b ui.Rect) {
	text, col := n.Text, st.Color
	field := n.Type == "input" || n.Type == "textarea"
	if field && text == "" && !n.HasClass(site.FocusClass) {
		text = n.Style("--placeholder")
		col = ui.Blend(st.Color, st.Background, 0.5)
	}
	if field && n.HasClass(site.FocusClass) && int(rl.GetTime()/caretPeriod*2)%2 == 0 {
		text += "|"
	}
	if text == "" {
		return
	}
	size := float32(st.FontSize)
	pad := float32(st.Padding)
	if st.Center {
		drawTextCentered(p.font, text, b.X+b.Width/2, b.Y+b.Height/2, size, col)
		return
	}
	maxW := b.Width - 2*pad
	y := b.Y + pad
	for _, line := range p.wrap(text, size, maxW) {
		p.drawText(line, b.X+pad, y, size, col)
		y += size * 1.3
	}
}

func (p *Painter) drawText(s string, x, y, size float32, col color.RGBA) {
	if p.font.Texture.ID == 0 {
		rl.DrawText(s, int32(x), int32(y), int32(size), col)
		return
	}
	rl.DrawTextEx(p.font, s, rl.NewVector2(x, y), size, textSpacing, col)
}

func (p *Painter) measure(s string, size float32) float32 {
	if p.font.Texture.ID == 0 {
		return float32(rl.MeasureText(s, int32(size)))
	}
	return rl.MeasureTextEx(p.font, s, size, textSpacing).X
}

// wrap breaks text into lines no wider than maxW. A single word wider than maxW gets its own line.
func (p *Painter) wrap(text string, size, maxW float32) []string {
	if maxW <= 0 {
		return []string{text}
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, w := range strings.Fields(para) {
			next := w
			if line != "" {
				next = line + " " + w
			}
			if line != "" && p.measure(next, size) > maxW {
				lines = append(lines, line)
				next = w
			}
			line = next
		}
		lines = append(lines, line)
	}
	return lines
}

func drawShadow(rec rl.Rectangle, radius float32, sh ui.Shadow) {
	base := rl.NewRectangle(rec.X+sh.OffsetX, rec.Y+sh.OffsetY, rec.Width, rec.Height)
	alpha := float32(sh.Color.A) / 255 / shadowLayers
	c := sh.Color
	c.A = 255
	for k := shadowLayers; k >= 1; k-- {
		spread := sh.Blur * float32(k) / shadowLayers / 2
		r := grow(base, spread)
		rl.DrawRectangleRounded(r, Roundness(r.Width, r.Height, radius+spread), roundedSegments, rl.Fade(c, alpha))
	}
}

func grow(r rl.Rectangle, d float32) rl.Rectangle {
	return rl.NewRectangle(r.X-d, r.Y-d, r.Width+2*d, r.Height+2*d)
}

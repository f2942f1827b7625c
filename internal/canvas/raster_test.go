package canvas

import (
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
)

var (
	paper = color.RGBA{R: 0xFA, G: 0xF7, B: 0xF0, A: 0xFF}
	ink   = color.RGBA{R: 0x3E, G: 0x27, B: 0x23, A: 0xFF}
)

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// near allows one step of rounding per channel between 8-bit and float color.
func near(a, b color.RGBA) bool {
	d := func(x, y uint8) bool { return x-y <= 1 || y-x <= 1 }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}

func TestNewRasterRejectsEmpty(t *testing.T) {
	if _, err := NewRaster(0, 10, nil); err == nil {
		t.Fatal("expected error for zero width")
	}
}

func TestClearFillsBackground(t *testing.T) {
	r, err := NewRaster(64, 48, nil)
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	defer r.Close()

	r.Clear(paper)
	img := r.Image()
	for _, p := range [][2]int{{0, 0}, {63, 47}, {32, 24}} {
		if got := rgba(img.At(p[0], p[1])); !near(got, paper) {
			t.Errorf("pixel %v = %v, want %v", p, got, paper)
		}
	}
}

func TestRoundedRectUnderTransform(t *testing.T) {
	r, err := NewRaster(200, 200, nil)
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	defer r.Close()

	r.Clear(paper)
	r.Push()
	r.Translate(100, 100)
	r.RoundedRect(-40, -10, 80, 20, 5, ink, ink, 1)
	r.Pop()

	img := r.Image()
	if got := rgba(img.At(100, 100)); !near(got, ink) {
		t.Errorf("center pixel = %v, want fill %v", got, ink)
	}
	if got := rgba(img.At(10, 10)); !near(got, paper) {
		t.Errorf("corner pixel = %v, want background %v", got, paper)
	}
}

func TestResizeAndSave(t *testing.T) {
	r, err := NewRaster(32, 32, nil)
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	defer r.Close()

	if err := r.Resize(80, 40); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if w, h := r.Size(); w != 80 || h != 40 {
		t.Fatalf("Size() = %dx%d, want 80x40", w, h)
	}
	r.Clear(ink)
	r.TextCentered("FIGMA", 40, 20, 16, paper)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := r.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	img, err := imgio.Open(path)
	if err != nil {
		t.Fatalf("open saved frame: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 40 {
		t.Errorf("saved bounds = %v", b)
	}
}

func TestTextTurnsWithTransform(t *testing.T) {
	r, err := NewRaster(160, 160, nil)
	if err != nil {
		t.Fatalf("NewRaster: %v", err)
	}
	defer r.Close()

	r.Clear(paper)
	r.Push()
	r.Translate(80, 80)
	r.Rotate(math.Pi / 2)
	r.TextCentered("WWWWWWWW", 0, 0, 16, ink)
	r.Pop()

	img := r.Image()
	minX, minY, maxX, maxY := 160, 160, -1, -1
	for y := 0; y < 160; y++ {
		for x := 0; x < 160; x++ {
			if near(rgba(img.At(x, y)), paper) {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	if maxX < 0 {
		t.Fatal("no text was drawn")
	}
	if w, h := maxX-minX, maxY-minY; h <= w {
		t.Errorf("rotated label spans %dx%d px; want taller than wide", w, h)
	}
}

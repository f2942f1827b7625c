package ui

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#1A1A1A", color.RGBA{0x1a, 0x1a, 0x1a, 255}, true},
		{"#fff", color.RGBA{255, 255, 255, 255}, true},
		{"#00BFA580", color.RGBA{0x00, 0xbf, 0xa5, 0x80}, true},
		{"rgba(234, 234, 234, 0.3)", color.RGBA{234, 234, 234, 77}, true},
		{"rgb(62,39,35)", color.RGBA{62, 39, 35, 255}, true},
		{"  white ", color.RGBA{255, 255, 255, 255}, true},
		{"#12", color.RGBA{}, false},
		{"hsl(1, 2%, 3%)", color.RGBA{}, false},
		{"", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseColor(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseColor(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseShadows(t *testing.T) {
	got := ParseShadows("0 0 20px rgba(62, 39, 35, 0.3), inset 0 0 10px #3E2723")
	if len(got) != 2 {
		t.Fatalf("got %d shadows, want 2", len(got))
	}
	if got[0].Inset || got[0].Blur != 20 || got[0].Color != (color.RGBA{62, 39, 35, 77}) {
		t.Errorf("first shadow = %+v", got[0])
	}
	if !got[1].Inset || got[1].Blur != 10 || got[1].Color != (color.RGBA{0x3e, 0x27, 0x23, 255}) {
		t.Errorf("second shadow = %+v", got[1])
	}

	offset := ParseShadows("0 4px 20px #000")
	if len(offset) != 1 || offset[0].OffsetY != 4 || offset[0].Blur != 20 {
		t.Errorf("offset shadow = %+v", offset)
	}
}

func TestParseCSS(t *testing.T) {
	sheet, err := ParseCSS(`
/* page */
body { background: #000; color: #fff; }
a, p, .card { color: #123456; }
.main .nested { color: red; }
@media (max-width: 10px) { .card { color: blue; } }
#toastDiv1 { --pulse-glow: #00BFA5; left: 50%; }
`)
	if err != nil {
		t.Fatal(err)
	}
	var selectors []string
	for _, r := range sheet.Rules {
		selectors = append(selectors, r.Selector)
	}
	want := []string{"body", "a", "p", ".card", "#toastDiv1"}
	if len(selectors) != len(want) {
		t.Fatalf("selectors = %v, want %v", selectors, want)
	}
	for i := range want {
		if selectors[i] != want[i] {
			t.Errorf("selector[%d] = %q, want %q", i, selectors[i], want[i])
		}
	}
	if got := sheet.Rules[4].Props["--pulse-glow"]; got != "#00BFA5" {
		t.Errorf("--pulse-glow = %q", got)
	}
}

func TestNodeMatches(t *testing.T) {
	n := NewNode("button", "pulse-button card", "pulse", "")
	for _, sel := range []string{"button", ".pulse-button", ".card", "#pulse", "button.pulse-button", "*"} {
		if !n.Matches(sel) {
			t.Errorf("Matches(%q) = false", sel)
		}
	}
	for _, sel := range []string{"a", ".glass", "#other", "input.card", ""} {
		if n.Matches(sel) {
			t.Errorf("Matches(%q) = true", sel)
		}
	}
	n.RemoveClass("card")
	if n.HasClass("card") {
		t.Error("RemoveClass left class in place")
	}
	n.AddClass("show")
	n.AddClass("show")
	if len(n.Classes) != 2 {
		t.Errorf("Classes = %v", n.Classes)
	}
}

func TestEngineInlineOverridesSheet(t *testing.T) {
	sheet, err := ParseCSS(`p { color: #111111; } .lead { color: #222222; } #intro { color: #333333; }`)
	if err != nil {
		t.Fatal(err)
	}
	e := New()
	e.SetStylesheet(sheet)
	p := NewNode("p", "lead", "intro", "hello")
	plain := NewNode("p", "", "", "")
	e.AddNode(p)
	e.AddNode(plain)

	if got := e.StyleOf(p).Color; got != (color.RGBA{0x33, 0x33, 0x33, 255}) {
		t.Errorf("id rule should win, got %v", got)
	}
	if got := e.StyleOf(plain).Color; got != (color.RGBA{0x11, 0x11, 0x11, 255}) {
		t.Errorf("tag rule, got %v", got)
	}

	p.SetStyle("color", "#EAEAEA")
	if got := e.StyleOf(p).Color; got != (color.RGBA{0xea, 0xea, 0xea, 255}) {
		t.Errorf("inline style should win after change, got %v", got)
	}
	p.SetStyle("color", "")
	if got := e.StyleOf(p).Color; got != (color.RGBA{0x33, 0x33, 0x33, 255}) {
		t.Errorf("removing inline style should restore sheet value, got %v", got)
	}
}

func TestQueryAndNodeAt(t *testing.T) {
	e := New()
	a := NewNode("a", "", "", "Home")
	a.Bounds = Rect{X: 10, Y: 10, Width: 100, Height: 20}
	btn := NewNode("button", "pulse-button", "", "")
	btn.Slide = 1
	btn.Bounds = Rect{X: 10, Y: 10, Width: 50, Height: 50}
	toast := NewNode("div", "Toast-div", "toastDiv1", "")
	toast.Fixed = true
	toast.Bounds = Rect{X: 0, Y: 0, Width: 5, Height: 5}
	e.SetNodes([]*Node{a, btn, toast})

	if got := e.Query("a", "button", ".Toast-div"); len(got) != 3 {
		t.Fatalf("Query returned %d nodes", len(got))
	}
	if got := e.Query("input"); len(got) != 0 {
		t.Errorf("Query(input) = %v", got)
	}
	if got := e.NodeAt(20, 15, 0, 600); got != a {
		t.Errorf("NodeAt on slide 0 = %v", got)
	}
	if got := e.NodeAt(20, 15, 1, 600); got != btn {
		t.Errorf("NodeAt on slide 1 = %v", got)
	}
	if got := e.NodeAt(2, 2, 1, 600); got != toast {
		t.Errorf("fixed node not hit: %v", got)
	}
	toast.Hidden = true
	if got := e.NodeAt(2, 2, 1, 600); got == toast {
		t.Error("hidden node was hit")
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := color.RGBA{255, 0, 0, 255}
	b := color.RGBA{0, 0, 255, 0}
	if Blend(a, b, 0) != a || Blend(a, b, 1) != b {
		t.Error("Blend endpoints should return inputs")
	}
	mid := Blend(a, b, 0.5)
	if mid.A < 120 || mid.A > 135 {
		t.Errorf("mid alpha = %d", mid.A)
	}
}

package theme

import (
	"fmt"
	"image/color"

	"portfolio/internal/ui"
)

// Theme is an immutable palette applied uniformly to the page and the physics canvas.
// Color fields hold CSS values (hex or rgba()) so they can be written into inline styles as-is.
type Theme struct {
	Name       string `yaml:"name"`
	Background string `yaml:"background"`
	Border     string `yaml:"border"`
	Text       string `yaml:"text"`
	Glow       string `yaml:"glow"`
	Shadow     string `yaml:"shadow"`

	palette Palette
}

// Palette is a Theme's colors resolved to RGBA for drawing.
type Palette struct {
	Background color.RGBA
	Border     color.RGBA
	Text       color.RGBA
	Glow       color.RGBA
	Shadow     color.RGBA
}

// Compile parses every color of t and returns a copy carrying the resolved palette.
func (t Theme) Compile() (Theme, error) {
	fields := []struct {
		name string
		src  string
		dst  *color.RGBA
	}{
		{"background", t.Background, &t.palette.Background},
		{"border", t.Border, &t.palette.Border},
		{"text", t.Text, &t.palette.Text},
		{"glow", t.Glow, &t.palette.Glow},
		{"shadow", t.Shadow, &t.palette.Shadow},
	}
	for _, f := range fields {
		c, ok := ui.ParseColor(f.src)
		if !ok {
			return Theme{}, fmt.Errorf("theme %q: invalid %s color %q", t.Name, f.name, f.src)
		}
		*f.dst = c
	}
	return t, nil
}

// Palette returns the resolved colors. Zero for a Theme that was not compiled.
func (t Theme) Palette() Palette {
	return t.palette
}

// Defaults are the five palettes the page ships with.
func Defaults() []Theme {
	raw := []Theme{
		{Name: "graphite", Background: "#1A1A1A", Border: "#EAEAEA", Text: "#EAEAEA", Glow: "#EAEAEA", Shadow: "rgba(234, 234, 234, 0.3)"},
		{Name: "paper", Background: "#FAF7F0", Border: "#3E2723", Text: "#3E2723", Glow: "#CBB29A", Shadow: "rgba(62, 39, 35, 0.3)"},
		{Name: "lagoon", Background: "#E0F7FA", Border: "#004D40", Text: "#004D40", Glow: "#00BFA5", Shadow: "rgba(0, 77, 64, 0.3)"},
		{Name: "navy", Background: "#0A192F", Border: "#E0FBFC", Text: "#E0FBFC", Glow: "#64FFDA", Shadow: "rgba(100, 255, 218, 0.3)"},
		{Name: "cocoa", Background: "#3E2723", Border: "#E0F7FA", Text: "#E0F7FA", Glow: "#A7FFEB", Shadow: "rgba(224, 247, 250, 0.3)"},
	}
	out := make([]Theme, 0, len(raw))
	for _, t := range raw {
		c, err := t.Compile()
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

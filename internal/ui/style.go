package ui

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Rule is a single CSS rule: one simple selector and a set of property values (raw strings).
// Selector lists ("a, p") are split into one rule per selector by the parser.
type Rule struct {
	Selector string            // e.g. ".panel", "#menu", "button"
	Props    map[string]string // e.g. "background" -> "#333"
}

// Stylesheet is a list of rules (order matters: later overrides earlier at equal specificity).
type Stylesheet struct {
	Rules []Rule
}

// Shadow is one layer of a box-shadow value.
type Shadow struct {
	Inset            bool
	OffsetX, OffsetY float32
	Blur             float32
	Color            color.RGBA
}

// ComputedStyle holds resolved values used for drawing.
// LeftPct/TopPct: 0–100 for percentage positioning; -1 means use Left/Top as pixels.
// Padding is the offset (in pixels) from the node's left/top when drawing text.
type ComputedStyle struct {
	Background color.RGBA
	Color      color.RGBA
	Border     color.RGBA
	HasBorder  bool
	Radius     float32
	Shadows    []Shadow
	Glow       color.RGBA // --pulse-glow
	HasGlow    bool
	Width      int32
	Height     int32
	Left       int32
	Top        int32
	LeftPct    int32 // -1 = not set
	TopPct     int32 // -1 = not set
	Padding    int32
	FontSize   int32
	Center     bool // text-align: center
	Hidden     bool // display: none
}

// DefaultComputedStyle returns a minimal style (transparent background, white text, no border, zero size).
func DefaultComputedStyle() ComputedStyle {
	return ComputedStyle{
		Background: color.RGBA{},
		Color:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Border:     color.RGBA{A: 255},
		LeftPct:    -1,
		TopPct:     -1,
		Padding:    4,
		FontSize:   20,
	}
}

var namedColors = map[string]color.RGBA{
	"transparent": {},
	"black":       {A: 255},
	"white":       {R: 255, G: 255, B: 255, A: 255},
	"red":         {R: 255, A: 255},
	"green":       {G: 128, A: 255},
	"blue":        {B: 255, A: 255},
}

// ParseColor parses a CSS color: #RGB, #RGBA, #RRGGBB, #RRGGBBAA, rgb(), rgba() or a basic named color.
func ParseColor(s string) (color.RGBA, bool) {
	l := css.NewLexer(parse.NewInputString(strings.TrimSpace(s)))
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return color.RGBA{}, false
		case css.WhitespaceToken:
			continue
		case css.HashToken:
			return ParseHexColor(string(data))
		case css.IdentToken:
			c, ok := namedColors[strings.ToLower(string(data))]
			return c, ok
		case css.FunctionToken:
			name := strings.ToLower(strings.TrimSuffix(string(data), "("))
			if name != "rgb" && name != "rgba" {
				return color.RGBA{}, false
			}
			return parseRGBArgs(l)
		default:
			return color.RGBA{}, false
		}
	}
}

// parseRGBArgs reads the arguments of rgb()/rgba() up to the closing parenthesis.
func parseRGBArgs(l *css.Lexer) (color.RGBA, bool) {
	var args []float64
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			return color.RGBA{}, false
		case css.NumberToken:
			v, err := strconv.ParseFloat(string(data), 64)
			if err != nil {
				return color.RGBA{}, false
			}
			args = append(args, v)
		case css.PercentageToken:
			v, err := strconv.ParseFloat(strings.TrimSuffix(string(data), "%"), 64)
			if err != nil {
				return color.RGBA{}, false
			}
			// Channel percentages scale to 255; the alpha percentage is fixed up below.
			args = append(args, v*255/100)
		case css.RightParenthesisToken:
			if len(args) != 3 && len(args) != 4 {
				return color.RGBA{}, false
			}
			c := color.RGBA{R: clampByte(args[0]), G: clampByte(args[1]), B: clampByte(args[2]), A: 255}
			if len(args) == 4 {
				a := args[3]
				if a > 1 {
					a /= 255
				}
				c.A = clampByte(a * 255)
			}
			return c, true
		}
	}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// ParseHexColor parses #RGB, #RGBA, #RRGGBB or #RRGGBBAA. Returns black and false on parse error.
func ParseHexColor(s string) (color.RGBA, bool) {
	s = strings.TrimSpace(s)
	black := color.RGBA{A: 255}
	if len(s) < 4 || s[0] != '#' {
		return black, false
	}
	hex := s[1:]
	for i := 0; i < len(hex); i++ {
		if !isHex(hex[i]) {
			return black, false
		}
	}
	switch len(hex) {
	case 3, 4:
		c := color.RGBA{R: hexByte(hex[0]) * 17, G: hexByte(hex[1]) * 17, B: hexByte(hex[2]) * 17, A: 255}
		if len(hex) == 4 {
			c.A = hexByte(hex[3]) * 17
		}
		return c, true
	case 6, 8:
		c := color.RGBA{
			R: hexByte(hex[0])<<4 + hexByte(hex[1]),
			G: hexByte(hex[2])<<4 + hexByte(hex[3]),
			B: hexByte(hex[4])<<4 + hexByte(hex[5]),
			A: 255,
		}
		if len(hex) == 8 {
			c.A = hexByte(hex[6])<<4 + hexByte(hex[7])
		}
		return c, true
	}
	return black, false
}

func isHex(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexByte(c byte) uint8 {
	if c >= '0' && c <= '9' {
		return c - '0'
	}
	if c >= 'a' && c <= 'f' {
		return c - 'a' + 10
	}
	if c >= 'A' && c <= 'F' {
		return c - 'A' + 10
	}
	return 0
}

// Blend mixes a toward b by t in Lab space; alpha is interpolated linearly.
// Used for glow rings that fade from the glow color into the page background.
func Blend(a, b color.RGBA, t float64) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	alpha := clampByte(float64(a.A) + (float64(b.A)-float64(a.A))*t)
	ca, okA := colorful.MakeColor(opaque(a))
	cb, okB := colorful.MakeColor(opaque(b))
	if !okA || !okB {
		return color.RGBA{R: a.R, G: a.G, B: a.B, A: alpha}
	}
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: alpha}
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 255
	return c
}

// ParsePx parses a number, with optional "px" suffix, to int32. Unitless is treated as pixels.
func ParsePx(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "px")
	s = strings.TrimSpace(s)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int32(f), true
}

// ParsePct parses "N%" to int32 (0–100). Used for left/top percentage positioning.
func ParsePct(s string) (int32, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[len(s)-1] != '%' {
		return 0, false
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n < 0 || n > 100 {
		return 0, false
	}
	return int32(n), true
}

// ParseShadows parses a box-shadow list such as "0 0 20px rgba(0,0,0,.3), inset 0 0 10px #fff".
// Lengths are read in order as offset-x, offset-y, blur; spread is ignored.
func ParseShadows(s string) []Shadow {
	var out []Shadow
	for _, layer := range splitTopLevel(s) {
		var sh Shadow
		var lengths []float32
		var colorText strings.Builder
		depth := 0
		ok := false
		l := css.NewLexer(parse.NewInputString(layer))
		for {
			tt, data := l.Next()
			if tt == css.ErrorToken {
				break
			}
			if depth > 0 || tt == css.FunctionToken || tt == css.HashToken {
				colorText.Write(data)
				switch tt {
				case css.FunctionToken:
					depth++
				case css.RightParenthesisToken:
					depth--
				}
				continue
			}
			switch tt {
			case css.IdentToken:
				if strings.EqualFold(string(data), "inset") {
					sh.Inset = true
				} else {
					colorText.Write(data)
				}
			case css.NumberToken, css.DimensionToken:
				if n, okPx := ParsePx(string(data)); okPx {
					lengths = append(lengths, float32(n))
				}
			}
		}
		if c, okC := ParseColor(colorText.String()); okC {
			sh.Color = c
			ok = true
		}
		if len(lengths) > 0 {
			sh.OffsetX = lengths[0]
		}
		if len(lengths) > 1 {
			sh.OffsetY = lengths[1]
		}
		if len(lengths) > 2 {
			sh.Blur = lengths[2]
		}
		if ok {
			out = append(out, sh)
		}
	}
	return out
}

// splitTopLevel splits s on commas that are not inside parentheses.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(s[start:]); rest != "" {
		parts = append(parts, rest)
	}
	return parts
}

// ResolveProps builds a ComputedStyle from a merged property map (stylesheet rules then inline styles).
func ResolveProps(props map[string]string) ComputedStyle {
	out := DefaultComputedStyle()
	for k, v := range props {
		v = strings.TrimSpace(v)
		switch k {
		case "background", "background-color":
			if c, ok := ParseColor(v); ok {
				out.Background = c
			}
		case "color":
			if c, ok := ParseColor(v); ok {
				out.Color = c
			}
		case "border", "border-color":
			if c, ok := ParseColor(lastField(v)); ok {
				out.Border = c
				out.HasBorder = true
			}
		case "border-radius":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Radius = float32(n)
			}
		case "box-shadow":
			out.Shadows = ParseShadows(v)
		case "--pulse-glow":
			if c, ok := ParseColor(v); ok {
				out.Glow = c
				out.HasGlow = true
			}
		case "width":
			if n, ok := ParsePx(v); ok {
				out.Width = n
			}
		case "height":
			if n, ok := ParsePx(v); ok {
				out.Height = n
			}
		case "left", "x":
			if pct, ok := ParsePct(v); ok {
				out.LeftPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Left = n
			}
		case "top", "y":
			if pct, ok := ParsePct(v); ok {
				out.TopPct = pct
			} else if n, ok := ParsePx(v); ok {
				out.Top = n
			}
		case "padding":
			if n, ok := ParsePx(v); ok && n >= 0 {
				out.Padding = n
			}
		case "font-size":
			if n, ok := ParsePx(v); ok && n > 0 {
				out.FontSize = n
			}
		case "text-align":
			out.Center = v == "center"
		case "display":
			out.Hidden = v == "none"
		}
	}
	return out
}

// lastField returns the color part of a shorthand like "1px solid #fff".
func lastField(v string) string {
	if strings.ContainsAny(v, "(") {
		if i := strings.Index(v, "rgb"); i >= 0 {
			return v[i:]
		}
		return v
	}
	f := strings.Fields(v)
	if len(f) == 0 {
		return v
	}
	return f[len(f)-1]
}

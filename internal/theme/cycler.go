package theme

import "portfolio/internal/ui"

// Target is the set of page elements a theme is applied to. *ui.Engine satisfies it.
type Target interface {
	Query(selectors ...string) []*ui.Node
}

// Selectors the cycler styles.
var (
	BodySelector       = "body"
	PulseSelector      = ".pulse-button"
	TextSelectors      = []string{"a", "h1", "h2", "h3", "h4", "h5", "p", "span", "label", "input", "button", "textarea"}
	ContainerSelectors = []string{".card", ".box", ".glass", ".Toast-div", "input", "textarea", "button"}
)

// Cycler holds the ordered theme list and the current index. It is the single owner of "which theme
// is active"; the physics scene reads Current every frame.
type Cycler struct {
	themes []Theme
	index  int
	target Target
	// OnChange, if set, runs after a theme has been applied.
	OnChange func(Theme)
}

// NewCycler returns a cycler over themes that styles target. target may be nil (canvas-only use).
func NewCycler(themes []Theme, target Target) *Cycler {
	return &Cycler{themes: themes, target: target}
}

// Initialize selects the first theme and applies it.
func (c *Cycler) Initialize() {
	c.index = 0
	c.ApplyCurrentTheme()
}

// Index returns the current theme index.
func (c *Cycler) Index() int {
	return c.index
}

// Len returns the number of themes.
func (c *Cycler) Len() int {
	return len(c.themes)
}

// Current returns the active theme; false when the list is empty.
func (c *Cycler) Current() (Theme, bool) {
	if len(c.themes) == 0 {
		return Theme{}, false
	}
	return c.themes[c.index], true
}

// Advance moves to the next theme (wrapping) and applies it. No-op on an empty list.
func (c *Cycler) Advance() {
	if len(c.themes) == 0 {
		return
	}
	c.index = (c.index + 1) % len(c.themes)
	c.ApplyCurrentTheme()
}

// ApplyCurrentTheme writes the active theme into the target's inline styles.
// With no themes or no target nothing is touched.
func (c *Cycler) ApplyCurrentTheme() {
	t, ok := c.Current()
	if !ok {
		return
	}
	if c.target != nil {
		apply(c.target, t)
	}
	if c.OnChange != nil {
		c.OnChange(t)
	}
}

func apply(target Target, t Theme) {
	for _, n := range target.Query(BodySelector) {
		n.SetStyle("background-color", t.Background)
		n.SetStyle("color", t.Text)
	}
	for _, n := range target.Query(PulseSelector) {
		n.SetStyle("border-color", t.Border)
		n.SetStyle("box-shadow", "0 0 20px "+t.Shadow+", inset 0 0 10px "+t.Shadow)
		n.SetStyle("--pulse-glow", t.Glow)
	}
	for _, n := range target.Query(TextSelectors...) {
		n.SetStyle("color", t.Text)
	}
	for _, n := range target.Query(ContainerSelectors...) {
		n.SetStyle("box-shadow", "0 4px 20px "+t.Shadow)
		n.SetStyle("border-color", t.Border)
	}
}

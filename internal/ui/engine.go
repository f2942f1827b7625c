package ui

import (
	"os"
	"sort"
	"strings"
)

// Engine holds the current stylesheet and the page nodes. Draw order is node order (first node drawn
// first, later nodes on top). Resolved styles are cached per node and recomputed only when the sheet
// changes or a node's classes or inline styles change, to avoid per-frame allocations.
// Drawing lives in the graphics package; the engine only answers "what does each node look like".
type Engine struct {
	sheet        *Stylesheet
	nodes        []*Node
	cachedStyles []ComputedStyle
	cacheValid   bool
}

// New creates an empty UI engine (no stylesheet, no nodes).
func New() *Engine {
	return &Engine{}
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sheet, err := ParseCSS(string(data))
	if err != nil {
		return err
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly (e.g. from embedded CSS).
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	e.cacheValid = false
}

// AddNode appends a node. Nodes are drawn in order.
func (e *Engine) AddNode(n *Node) {
	e.nodes = append(e.nodes, n)
	e.cacheValid = false
}

// SetNodes replaces all nodes.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
	e.cacheValid = false
}

// Nodes returns the nodes in draw order.
func (e *Engine) Nodes() []*Node {
	return e.nodes
}

// Query returns every node matching any of the selectors, in document order, each node once.
func (e *Engine) Query(selectors ...string) []*Node {
	var out []*Node
	for _, n := range e.nodes {
		for _, sel := range selectors {
			if n.Matches(sel) {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// First returns the first node matching sel, or nil.
func (e *Engine) First(sel string) *Node {
	for _, n := range e.nodes {
		if n.Matches(sel) {
			return n
		}
	}
	return nil
}

// resolveProps returns merged properties for a node: matching rules by ascending specificity
// (stable, so later rules win ties), then inline styles.
func (e *Engine) resolveProps(n *Node) map[string]string {
	merged := make(map[string]string)
	if e.sheet != nil {
		var matched []Rule
		for _, rule := range e.sheet.Rules {
			if n.Matches(rule.Selector) {
				matched = append(matched, rule)
			}
		}
		sort.SliceStable(matched, func(i, j int) bool {
			return specificity(matched[i].Selector) < specificity(matched[j].Selector)
		})
		for _, rule := range matched {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	for k, v := range n.inline {
		merged[k] = v
	}
	return merged
}

// Styles returns the computed style of every node, index-aligned with Nodes().
func (e *Engine) Styles() []ComputedStyle {
	if !e.cacheValid || len(e.cachedStyles) != len(e.nodes) {
		e.cachedStyles = make([]ComputedStyle, len(e.nodes))
		for i, n := range e.nodes {
			e.cachedStyles[i] = ResolveProps(e.resolveProps(n))
			n.dirty = false
		}
		e.cacheValid = true
		return e.cachedStyles
	}
	for i, n := range e.nodes {
		if n.dirty {
			e.cachedStyles[i] = ResolveProps(e.resolveProps(n))
			n.dirty = false
		}
	}
	return e.cachedStyles
}

// StyleOf returns the computed style of n, or the default style when n is not in the engine.
func (e *Engine) StyleOf(n *Node) ComputedStyle {
	styles := e.Styles()
	for i, x := range e.nodes {
		if x == n {
			return styles[i]
		}
	}
	return DefaultComputedStyle()
}

// Layout resolves node bounds from their styles for a viewport of w×h. Percentage positions are
// relative to the free space.
func (e *Engine) Layout(w, h int32) {
	styles := e.Styles()
	for i, n := range e.nodes {
		style := styles[i]
		if style.Width > 0 {
			n.Bounds.Width = float32(style.Width)
		}
		if style.Height > 0 {
			n.Bounds.Height = float32(style.Height)
		}
		if style.LeftPct >= 0 {
			n.Bounds.X = float32((w - int32(n.Bounds.Width)) * style.LeftPct / 100)
		} else if style.Left != 0 {
			n.Bounds.X = float32(style.Left)
		}
		if style.TopPct >= 0 {
			n.Bounds.Y = float32((h - int32(n.Bounds.Height)) * style.TopPct / 100)
		} else if style.Top != 0 {
			n.Bounds.Y = float32(style.Top)
		}
	}
}

// NodeAt returns the top-most visible node under a viewport point. scroll is the slide deck offset
// in slides and viewportH the slide height; fixed nodes ignore scroll.
func (e *Engine) NodeAt(x, y, scroll, viewportH float32) *Node {
	styles := e.Styles()
	for i := len(e.nodes) - 1; i >= 0; i-- {
		n := e.nodes[i]
		if n.Hidden || styles[i].Hidden {
			continue
		}
		py := y
		if !n.Fixed {
			py = y + scroll*viewportH - float32(n.Slide)*viewportH
		}
		if n.Bounds.Contains(x, py) {
			return n
		}
	}
	return nil
}

// HasStylesheet returns whether a stylesheet has been loaded.
func (e *Engine) HasStylesheet() bool {
	return e.sheet != nil && len(e.sheet.Rules) > 0
}

// Stylesheet returns the current stylesheet (may be nil).
func (e *Engine) Stylesheet() *Stylesheet {
	return e.sheet
}

// Interactive reports whether clicks on n should be routed to it rather than to the slide.
func Interactive(n *Node) bool {
	if n == nil || n.Disabled {
		return false
	}
	switch strings.ToLower(n.Type) {
	case "a", "button", "input", "textarea":
		return true
	}
	return false
}

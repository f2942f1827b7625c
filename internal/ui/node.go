package ui

import (
	"strings"
)

// Rect is a node's box in page pixels, relative to the slide it lives on.
type Rect struct {
	X, Y, Width, Height float32
}

// Contains reports whether (x, y) is inside r.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Node is a single page element: body, panel, label, button, input, etc. It has a tag (Type), a class
// list and an id for CSS matching, bounds, optional text, and inline style overrides that win over the
// stylesheet the way an element's style attribute does in a browser.
type Node struct {
	Type     string   // tag: "body", "div", "p", "button", "input", ...
	Classes  []string // e.g. ["card", "show"]
	ID       string   // e.g. "toastDiv1" for #toastDiv1
	Bounds   Rect
	Text     string
	Slide    int  // slide index the node scrolls with; ignored when Fixed
	Fixed    bool // drawn relative to the viewport (toasts, scroll-top button)
	Disabled bool
	Hidden   bool

	inline map[string]string
	dirty  bool
}

// NewNode creates a node with a tag, a space-separated class list, an id and text.
func NewNode(typ, class, id, text string) *Node {
	return &Node{
		Type:    typ,
		Classes: strings.Fields(class),
		ID:      id,
		Text:    text,
		dirty:   true,
	}
}

// HasClass reports whether the node carries class c.
func (n *Node) HasClass(c string) bool {
	for _, x := range n.Classes {
		if x == c {
			return true
		}
	}
	return false
}

// AddClass adds c if it is not already present.
func (n *Node) AddClass(c string) {
	if c == "" || n.HasClass(c) {
		return
	}
	n.Classes = append(n.Classes, c)
	n.dirty = true
}

// RemoveClass removes c if present.
func (n *Node) RemoveClass(c string) {
	for i, x := range n.Classes {
		if x == c {
			n.Classes = append(n.Classes[:i], n.Classes[i+1:]...)
			n.dirty = true
			return
		}
	}
}

// SetStyle sets an inline style property (e.g. "color", "box-shadow", "--pulse-glow").
// An empty value removes the property.
func (n *Node) SetStyle(prop, value string) {
	if n.inline == nil {
		n.inline = make(map[string]string)
	}
	prop = strings.TrimSpace(prop)
	if value == "" {
		delete(n.inline, prop)
	} else {
		n.inline[prop] = value
	}
	n.dirty = true
}

// Style returns the inline value of prop, or "".
func (n *Node) Style(prop string) string {
	return n.inline[prop]
}

// Matches reports whether the node matches one simple selector: "tag", ".class", "#id",
// or a tag/class compound such as "button.pulse-button".
func (n *Node) Matches(sel string) bool {
	sel = strings.TrimSpace(sel)
	if sel == "" {
		return false
	}
	if sel == "*" {
		return true
	}
	if sel[0] == '#' {
		return n.ID == sel[1:]
	}
	tag, rest := sel, ""
	if i := strings.IndexAny(sel, ".#"); i >= 0 {
		tag, rest = sel[:i], sel[i:]
	}
	if tag != "" && tag != n.Type {
		return false
	}
	for rest != "" {
		kind := rest[0]
		rest = rest[1:]
		end := strings.IndexAny(rest, ".#")
		if end < 0 {
			end = len(rest)
		}
		part := rest[:end]
		rest = rest[end:]
		switch kind {
		case '.':
			if !n.HasClass(part) {
				return false
			}
		case '#':
			if n.ID != part {
				return false
			}
		}
	}
	return true
}

// specificity orders matching rules: ids beat classes beat tags.
func specificity(sel string) int {
	score := 0
	if sel != "" && sel[0] != '.' && sel[0] != '#' && sel != "*" {
		score++
	}
	score += 10 * strings.Count(sel, ".")
	score += 100 * strings.Count(sel, "#")
	return score
}

package site

import (
	"strings"

	"golang.org/x/net/html"

	"portfolio/internal/ui"
)

var inputPlaceholders = []struct {
	typ, id, placeholder string
}{
	{"input", "full_name", "Full name"},
	{"input", "email", "Email"},
	{"input", "phone", "Phone"},
	{"textarea", "message", "Message"},
}

// build creates the node tree in draw order: page chrome, one panel per section, then the fixed
// widgets on top.
func (s *Site) build() {
	c := s.Content
	add := func(n *ui.Node) *ui.Node {
		s.UI.AddNode(n)
		return n
	}

	s.body = add(ui.NewNode("body", "", "", ""))
	s.body.Fixed = true
	s.container = add(ui.NewNode("div", "maincontainer", "", ""))
	s.container.Fixed = true

	for i, sec := range c.Sections {
		sl := slide{section: sec}
		sl.panel = add(ui.NewNode("div", "slide slide-"+sec.Kind, sec.ID, ""))
		tag := "h2"
		if sec.Kind == "hero" {
			tag = "h1"
		}
		sl.title = add(ui.NewNode(tag, "", "", sec.Title))
		if sec.Body != "" {
			class := ""
			if sec.Kind == "project" {
				class = "card"
			}
			sl.body = add(ui.NewNode("p", class, "", sec.Body))
		}
		for _, n := range []*ui.Node{sl.panel, sl.title, sl.body} {
			if n != nil {
				n.Slide = i
			}
		}

		switch sec.Kind {
		case "about":
			s.words = strings.Fields(textContent(c.About))
			s.about = add(ui.NewNode("p", "about-para", "", strings.Join(s.words, " ")))
			s.about.Slide = i
			s.spans = make([]*ui.Node, len(s.words))
			for j, w := range s.words {
				s.spans[j] = ui.NewNode("span", "", "", w)
			}
		case "skills":
			if s.canvas == nil {
				s.canvas = add(ui.NewNode("div", "", "canvasContainer", ""))
				s.canvas.Slide = i
			}
		case "contact":
			form := add(ui.NewNode("form", "", "contact-form", ""))
			form.Slide = i
			for _, in := range inputPlaceholders {
				n := add(ui.NewNode(in.typ, "", in.id, ""))
				n.SetStyle("--placeholder", in.placeholder)
				n.Slide = i
			}
			s.submit = add(ui.NewNode("button", "submit-button", "submitBtn", "Send"))
			s.submit.Slide = i
			notice := add(ui.NewNode("label", "form-notice", "", ""))
			notice.Slide = i
			notice.Hidden = true
		}
		s.slides = append(s.slides, sl)
	}

	for _, sec := range c.Sections {
		href := "#" + sec.ID
		if _, ok := c.Anchors[href]; !ok {
			continue
		}
		link := add(ui.NewNode("a", "nav-link", "", sec.Title))
		link.Fixed = true
		s.anchors[link] = href
	}

	s.pulse = add(ui.NewNode("button", "pulse-button", "", ""))
	s.pulse.Fixed = true
	t1 := add(ui.NewNode("div", "Toast-div", "toastDiv1", c.Toasts.First))
	t1.Fixed = true
	t2 := add(ui.NewNode("div", "Toast-div", "toastDiv2", c.Toasts.Second))
	t2.Fixed = true
	s.scrollTop = add(ui.NewNode("button", "", "scrollTopBtn", "^"))
	s.scrollTop.Fixed = true
	s.scrollTop.Hidden = true
}

// layout sizes every node for a width×height window. Slide content is placed relative to its own
// slide; fixed widgets are positioned by the stylesheet.
func (s *Site) layout(width, height int) {
	s.width, s.height = width, height
	w, h := float32(width), float32(height)
	full := ui.Rect{Width: w, Height: h}
	s.body.Bounds = full
	s.container.Bounds = full

	margin := w * 0.1
	inner := w - 2*margin
	for _, sl := range s.slides {
		sl.panel.Bounds = full
		sl.title.Bounds = ui.Rect{X: margin, Y: h * 0.12, Width: inner, Height: 64}
		if sl.body != nil {
			b := ui.Rect{X: margin, Y: h*0.12 + 80, Width: inner, Height: 60}
			if sl.section.Kind == "project" {
				b = ui.Rect{X: w * 0.2, Y: h * 0.35, Width: w * 0.6, Height: h * 0.3}
			}
			sl.body.Bounds = b
		}
	}
	if s.about != nil {
		s.about.Bounds = ui.Rect{X: margin, Y: h * 0.3, Width: inner, Height: h * 0.5}
	}
	if s.canvas != nil {
		s.canvas.Bounds = ui.Rect{X: w * 0.05, Y: h * 0.24, Width: w * 0.9, Height: h * 0.72}
	}

	fieldX, fieldW := w*0.3, w*0.4
	y := h * 0.28
	for _, in := range inputPlaceholders {
		n := s.UI.First("#" + in.id)
		if n == nil {
			continue
		}
		fh := float32(44)
		if in.typ == "textarea" {
			fh = 120
		}
		n.Bounds = ui.Rect{X: fieldX, Y: y, Width: fieldW, Height: fh}
		y += fh + 12
	}
	if s.submit != nil {
		s.submit.Bounds = ui.Rect{X: fieldX, Y: y, Width: 140, Height: 44}
		if notice := s.UI.First(".form-notice"); notice != nil {
			notice.Bounds = ui.Rect{X: fieldX + 160, Y: y + 10, Width: fieldW - 160, Height: 24}
		}
	}

	i := float32(0)
	for _, n := range s.UI.Query("a.nav-link") {
		n.Bounds = ui.Rect{X: 24 + i*124, Y: 20, Width: 116, Height: 32}
		i++
	}
	s.UI.Layout(int32(width), int32(height))
}

// textContent returns the text of an HTML fragment with markup removed.
func textContent(fragment string) string {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(strings.Fields(b.String()), " ")
}

func joinWords(words []string, n int) string {
	if n > len(words) {
		n = len(words)
	}
	return strings.Join(words[:n], " ")
}

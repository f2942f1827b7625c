package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Skills) != 15 {
		t.Errorf("len(Skills) = %d, want 15", len(c.Skills))
	}
	if c.Anchors["#contact"] != 8 || c.SectionIndex("contact") != 8 {
		t.Errorf("#contact anchor = %d, section index = %d", c.Anchors["#contact"], c.SectionIndex("contact"))
	}
	if c.Timings.Pulse() != 1500*time.Millisecond || c.Timings.Toast() != 5*time.Second {
		t.Errorf("timings = %+v", c.Timings)
	}
	themes, err := c.CompiledThemes()
	if err != nil || len(themes) != 5 {
		t.Fatalf("CompiledThemes() = %d themes, %v", len(themes), err)
	}
	if !strings.Contains(c.About, "about-para") {
		t.Errorf("About = %q", c.About)
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Title != "Portfolio" {
		t.Errorf("Title = %q", c.Title)
	}
}

func TestOverlay(t *testing.T) {
	path := writeFile(t, `
title: Studio
skills: [Go, Figma]
timings:
  toast_ms: 3000
themes:
  - {name: mono, background: "#000", border: "#fff", text: "#fff", glow: "#888", shadow: "rgba(255,255,255,0.3)"}
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Title != "Studio" || c.Owner == "" {
		t.Errorf("Title = %q, Owner = %q", c.Title, c.Owner)
	}
	if strings.Join(c.Skills, ",") != "Go,Figma" {
		t.Errorf("Skills = %v", c.Skills)
	}
	if c.Timings.ToastMS != 3000 || c.Timings.PulseMS != 1500 {
		t.Errorf("Timings = %+v", c.Timings)
	}
	if len(c.Sections) != 9 {
		t.Errorf("len(Sections) = %d, want defaults", len(c.Sections))
	}
	themes, err := c.CompiledThemes()
	if err != nil || len(themes) != 1 || themes[0].Name != "mono" {
		t.Fatalf("themes = %v, %v", themes, err)
	}
	if themes[0].Palette().Background.A != 0xFF {
		t.Error("overlay theme not compiled")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "title: [unterminated"},
		{"bad color", "themes:\n  - {name: x, background: nope, border: '#000', text: '#000', glow: '#000', shadow: '#000'}\n"},
		{"duplicate id", "sections:\n  - {id: a}\n  - {id: a}\n"},
		{"negative anchor", "anchors: {'#home': -1}\n"},
	}
	for _, tt := range tests {
		if _, err := Load(writeFile(t, tt.body)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

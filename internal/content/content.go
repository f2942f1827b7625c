// Package content loads what the site says: sections, skills, about text, toasts, anchors, themes
// and timings. The embedded default.yaml is always loaded first; an optional file is overlaid on it.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"

	"portfolio/internal/theme"
)

// SiteConfigPath is the optional overlay file, relative to the working directory.
const SiteConfigPath = "config/site.yaml"

//go:embed default.yaml
var defaultYAML []byte

// Section is one slide.
type Section struct {
	ID    string `yaml:"id"`
	Kind  string `yaml:"kind"` // hero, about, skills, projects, project, contact
	Title string `yaml:"title"`
	Body  string `yaml:"body"`
}

// Toasts holds the two toast texts.
type Toasts struct {
	First  string `yaml:"first"`
	Second string `yaml:"second"`
}

// Timings are in milliseconds.
type Timings struct {
	PulseMS   int `yaml:"pulse_ms"`
	ToastMS   int `yaml:"toast_ms"`
	SlideMS   int `yaml:"slide_ms"`
	StaggerMS int `yaml:"stagger_ms"`
}

func (t Timings) Pulse() time.Duration   { return time.Duration(t.PulseMS) * time.Millisecond }
func (t Timings) Toast() time.Duration   { return time.Duration(t.ToastMS) * time.Millisecond }
func (t Timings) Slide() time.Duration   { return time.Duration(t.SlideMS) * time.Millisecond }
func (t Timings) Stagger() time.Duration { return time.Duration(t.StaggerMS) * time.Millisecond }

// Content is the whole site description.
type Content struct {
	Title    string         `yaml:"title"`
	Owner    string         `yaml:"owner"`
	Role     string         `yaml:"role"`
	Sections []Section      `yaml:"sections"`
	About    string         `yaml:"about"` // HTML; only its text is shown
	Skills   []string       `yaml:"skills"`
	Toasts   Toasts         `yaml:"toasts"`
	Anchors  map[string]int `yaml:"anchors"`
	Themes   []theme.Theme  `yaml:"themes"`
	Timings  Timings        `yaml:"timings"`
}

// Default returns the embedded content.
func Default() (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
		return nil, fmt.Errorf("content: embedded default: %w", err)
	}
	return &c, nil
}

// Load returns the default content with path overlaid. A missing file is not an error; fields the
// file leaves empty keep their defaults. The result is validated.
func Load(path string) (*Content, error) {
	base, err := Default()
	if err != nil {
		return nil, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("content: %w", err)
		default:
			if err := overlay(base, data); err != nil {
				return nil, fmt.Errorf("content: %s: %w", path, err)
			}
		}
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}
	return base, nil
}

func overlay(base *Content, data []byte) error {
	var over Content
	if err := yaml.Unmarshal(data, &over); err != nil {
		return err
	}
	defaults := base.Timings
	// Lists given by the overlay replace the defaults instead of merging element by element.
	if len(over.Sections) > 0 {
		base.Sections = nil
	}
	if len(over.Skills) > 0 {
		base.Skills = nil
	}
	if len(over.Themes) > 0 {
		base.Themes = nil
	}
	if err := copier.CopyWithOption(base, &over, copier.Option{IgnoreEmpty: true, DeepCopy: true}); err != nil {
		return err
	}
	// Per-field fallback so a partial timings block only changes what it names.
	if base.Timings.PulseMS <= 0 {
		base.Timings.PulseMS = defaults.PulseMS
	}
	if base.Timings.ToastMS <= 0 {
		base.Timings.ToastMS = defaults.ToastMS
	}
	if base.Timings.SlideMS <= 0 {
		base.Timings.SlideMS = defaults.SlideMS
	}
	if base.Timings.StaggerMS <= 0 {
		base.Timings.StaggerMS = defaults.StaggerMS
	}
	return nil
}

// Validate checks that the deck is usable: at least one section, unique section ids, non-negative
// anchors and parseable theme colors. Anchors past the last slide are clamped by the deck.
func (c *Content) Validate() error {
	if len(c.Sections) == 0 {
		return fmt.Errorf("content: no sections")
	}
	seen := make(map[string]bool, len(c.Sections))
	for i, s := range c.Sections {
		if s.ID == "" {
			return fmt.Errorf("content: section %d has no id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("content: duplicate section id %q", s.ID)
		}
		seen[s.ID] = true
	}
	for a, i := range c.Anchors {
		if i < 0 {
			return fmt.Errorf("content: anchor %s points at slide %d", a, i)
		}
	}
	if _, err := c.CompiledThemes(); err != nil {
		return err
	}
	return nil
}

// CompiledThemes returns the configured themes with resolved palettes, or the built-in palettes when
// none are configured.
func (c *Content) CompiledThemes() ([]theme.Theme, error) {
	if len(c.Themes) == 0 {
		return theme.Defaults(), nil
	}
	out := make([]theme.Theme, 0, len(c.Themes))
	for _, t := range c.Themes {
		ct, err := t.Compile()
		if err != nil {
			return nil, fmt.Errorf("content: %w", err)
		}
		out = append(out, ct)
	}
	return out, nil
}

// SectionIndex returns the slide index of the section with id, or -1.
func (c *Content) SectionIndex(id string) int {
	for i, s := range c.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

package scene

import (
	"image/color"
	"math"
	"math/rand/v2"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"portfolio/internal/canvas"
	"portfolio/internal/logger"
	"portfolio/internal/physics"
	"portfolio/internal/theme"
)

// ThemeSource is read once per frame for the active palette. *theme.Cycler satisfies it.
type ThemeSource interface {
	Current() (theme.Theme, bool)
}

// State is the scene lifecycle. There is no way back to Uninitialized.
type State int

const (
	Uninitialized State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "uninitialized"
}

// Tuning holds tile geometry, materials and drawing constants.
type Tuning struct {
	TileWidth     float64
	TileHeight    float64
	TileRadius    float64
	Inset         float64 // tiles spawn at least this far from every edge
	WallThickness float64
	Material      physics.Material
	Physics       physics.Config
	StrokeWidth   float64
	FontSize      float64
	LabelOffsetY  float64
}

// DefaultTuning returns the skill tile setup: 350×60 tiles with 25px corners, light and bouncy.
func DefaultTuning() Tuning {
	return Tuning{
		TileWidth:     350,
		TileHeight:    60,
		TileRadius:    25,
		Inset:         100,
		WallThickness: 50,
		Material:      physics.Material{Friction: 0.1, Restitution: 0.6, Density: 0.0015},
		Physics:       physics.DefaultConfig(),
		StrokeWidth:   1.2,
		FontSize:      16,
		LabelOffsetY:  2,
	}
}

// Used when the theme source has nothing to offer.
var (
	fallbackBackground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	fallbackText       = color.RGBA{A: 0xFF}
)

// Tile is a labeled dynamic body. The pose lives in the world, never here.
type Tile struct {
	Label string
	Body  *physics.Body
}

// Scene owns the physics world of skill tiles, keeps it sized to the viewport and paints it every
// frame in the active theme. Everything it needs is passed to New; there is no shared package state.
type Scene struct {
	themes ThemeSource
	rng    *rand.Rand
	log    *logger.Logger
	tuning Tuning
	upper  cases.Caser

	state  State
	world  *physics.World
	tiles  []Tile
	labels []string
	width  float64
	height float64
}

// New returns an uninitialized scene. log may be nil.
func New(themes ThemeSource, rng *rand.Rand, log *logger.Logger, tuning Tuning) *Scene {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Scene{
		themes: themes,
		rng:    rng,
		log:    log,
		tuning: tuning,
		upper:  cases.Upper(language.Und),
	}
}

// Setup builds the world for a width×height viewport: four walls just outside the edges and one
// tile per label at a random interior position. A non-positive size means there is no viewport to
// fill; the call is logged and skipped.
func (s *Scene) Setup(width, height int, labels []string) {
	if width <= 0 || height <= 0 {
		s.log.Logf("scene: no viewport (%dx%d), setup skipped", width, height)
		return
	}
	s.labels = append([]string(nil), labels...)
	s.width, s.height = float64(width), float64(height)
	w, h, t := s.width, s.height, s.tuning.WallThickness
	s.world = physics.NewWorld(s.physicsConfig())

	s.world.AddStaticBox(w/2, h+t/2, w, t) // ground
	s.world.AddStaticBox(w/2, -t/2, w, t)  // ceiling
	s.world.AddStaticBox(-t/2, h/2, t, h)  // left
	s.world.AddStaticBox(w+t/2, h/2, t, h) // right

	s.tiles = make([]Tile, 0, len(s.labels))
	for _, label := range s.labels {
		x := s.spawn(w)
		y := s.spawn(h)
		body := s.world.AddDynamicBox(x, y, s.tuning.TileWidth, s.tuning.TileHeight, s.tuning.TileRadius, s.tuning.Material)
		s.tiles = append(s.tiles, Tile{Label: label, Body: body})
	}
	s.state = Running
	s.log.Logf("scene: %d tiles in %dx%d", len(s.tiles), width, height)
}

// physicsConfig caps tile speed below one wall thickness per step so a flung tile cannot pass
// through a wall between two steps.
func (s *Scene) physicsConfig() physics.Config {
	cfg := s.tuning.Physics
	rate := cfg.StepRate
	if rate <= 0 {
		rate = 60
	}
	if limit := 0.8 * s.tuning.WallThickness * rate; limit > 0 && (cfg.MaxSpeed <= 0 || cfg.MaxSpeed > limit) {
		cfg.MaxSpeed = limit
	}
	return cfg
}

// spawn picks a coordinate in [inset, extent-inset]; too-small extents get the center.
func (s *Scene) spawn(extent float64) float64 {
	span := extent - 2*s.tuning.Inset
	if span <= 0 {
		return extent / 2
	}
	return s.tuning.Inset + s.rng.Float64()*span
}

// OnViewportResize discards the whole world and builds a new one for the new size with the same
// labels. Tiles are re-randomized. A non-positive size leaves the current scene untouched.
func (s *Scene) OnViewportResize(width, height int) {
	if width <= 0 || height <= 0 {
		s.log.Logf("scene: ignoring resize to %dx%d", width, height)
		return
	}
	s.teardown()
	s.Setup(width, height, s.labels)
}

// SetLabels replaces the label list used by the next Setup or resize.
func (s *Scene) SetLabels(labels []string) {
	s.labels = append([]string(nil), labels...)
}

// Reset rebuilds the scene at its current size.
func (s *Scene) Reset() {
	if s.state != Running {
		return
	}
	s.OnViewportResize(int(s.width), int(s.height))
}

func (s *Scene) teardown() {
	if s.world != nil {
		s.world.Clear()
	}
	s.world = nil
	s.tiles = nil
}

// Update advances the simulation by dt seconds.
func (s *Scene) Update(dt float64) {
	if s.state != Running {
		return
	}
	s.world.Step(dt)
	s.contain()
}

// contain puts any tile whose center left the viewport back inside at rest.
func (s *Scene) contain() {
	for _, tile := range s.tiles {
		p := s.world.Pose(tile.Body)
		if p.X >= 0 && p.X <= s.width && p.Y >= 0 && p.Y <= s.height {
			continue
		}
		x, y := s.inside(p.X, s.width), s.inside(p.Y, s.height)
		s.world.Place(tile.Body, x, y)
		s.log.Logf("scene: %s left the viewport, placed back at (%.0f, %.0f)", tile.Label, x, y)
	}
}

// inside clamps v into the spawn band of an extent.
func (s *Scene) inside(v, extent float64) float64 {
	lo, hi := s.tuning.Inset, extent-s.tuning.Inset
	if hi <= lo {
		return extent / 2
	}
	return clamp(v, lo, hi)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// RenderFrame clears the surface to the theme background and draws every tile at its live pose.
// It only reads the world.
func (s *Scene) RenderFrame(surface canvas.Surface) {
	bg, fg := fallbackBackground, fallbackText
	if s.themes != nil {
		if t, ok := s.themes.Current(); ok {
			p := t.Palette()
			bg, fg = p.Background, p.Text
		}
	}
	surface.Clear(bg)
	if s.state != Running {
		return
	}
	w, h, r := s.tuning.TileWidth, s.tuning.TileHeight, s.tuning.TileRadius
	for _, tile := range s.tiles {
		pose := s.world.Pose(tile.Body)
		surface.Push()
		surface.Translate(pose.X, pose.Y)
		surface.Rotate(pose.Angle)
		surface.RoundedRect(-w/2, -h/2, w, h, r, bg, fg, s.tuning.StrokeWidth)
		surface.TextCentered(s.upper.String(tile.Label), 0, s.tuning.LabelOffsetY, s.tuning.FontSize, fg)
		surface.Pop()
	}
}

// PointerDown grabs the tile under (x, y), if any.
func (s *Scene) PointerDown(x, y float64) bool {
	if s.state != Running {
		return false
	}
	return s.world.Grab(x, y) != nil
}

// PointerMove drags the grabbed tile. The pointer is clamped to the viewport.
func (s *Scene) PointerMove(x, y float64) {
	if s.state != Running {
		return
	}
	s.world.Drag(clamp(x, 0, s.width), clamp(y, 0, s.height))
}

// PointerUp lets go; the tile keeps its velocity.
func (s *Scene) PointerUp() {
	if s.state != Running {
		return
	}
	s.world.Release()
}

// Dragging reports whether a tile is held.
func (s *Scene) Dragging() bool {
	return s.state == Running && s.world.Grabbed() != nil
}

// State returns the lifecycle state.
func (s *Scene) State() State {
	return s.state
}

// World returns the current world, nil before Setup.
func (s *Scene) World() *physics.World {
	return s.world
}

// Tiles returns the current tiles.
func (s *Scene) Tiles() []Tile {
	return append([]Tile(nil), s.tiles...)
}

// Size returns the viewport the world was built for.
func (s *Scene) Size() (width, height int) {
	return int(s.width), int(s.height)
}

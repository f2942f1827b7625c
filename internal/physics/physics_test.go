package physics

import (
	"math"
	"testing"
)

var tile = Material{Friction: 0.1, Restitution: 0.6, Density: 0.0015}

func box(w *World, width, height float64) {
	const t = 50
	w.AddStaticBox(width/2, height+t/2, width, t)
	w.AddStaticBox(width/2, -t/2, width, t)
	w.AddStaticBox(-t/2, height/2, t, height)
	w.AddStaticBox(width+t/2, height/2, t, height)
}

func TestCounts(t *testing.T) {
	w := NewWorld(DefaultConfig())
	box(w, 800, 600)
	for i := 0; i < 3; i++ {
		w.AddDynamicBox(200+float64(i)*100, 200, 350, 60, 25, tile)
	}
	dyn, st := w.Counts()
	if dyn != 3 || st != 4 {
		t.Fatalf("Counts() = %d dynamic, %d static; want 3, 4", dyn, st)
	}
	if len(w.Bodies()) != 7 {
		t.Errorf("len(Bodies) = %d, want 7", len(w.Bodies()))
	}
}

func TestClearEmptiesSpace(t *testing.T) {
	w := NewWorld(DefaultConfig())
	box(w, 800, 600)
	b := w.AddDynamicBox(400, 300, 350, 60, 25, tile)
	if w.Grab(400, 300) != b {
		t.Fatal("Grab at the tile center should return the tile")
	}
	w.Clear()
	dyn, st := w.Counts()
	if dyn != 0 || st != 0 {
		t.Fatalf("after Clear: %d dynamic, %d static", dyn, st)
	}
	if w.Grabbed() != nil {
		t.Error("Clear should release the pointer")
	}
}

func TestGravityAndContainment(t *testing.T) {
	w := NewWorld(DefaultConfig())
	box(w, 800, 600)
	b := w.AddDynamicBox(400, 150, 350, 60, 25, tile)
	start := w.Pose(b)
	for i := 0; i < 60*4; i++ {
		w.Step(1.0 / 60)
	}
	p := w.Pose(b)
	if p.Y <= start.Y {
		t.Fatalf("tile did not fall: y %.1f -> %.1f", start.Y, p.Y)
	}
	if p.Y > 600 || p.X < 0 || p.X > 800 {
		t.Errorf("tile escaped the walls: (%.1f, %.1f)", p.X, p.Y)
	}
}

func TestGrabOnlyDynamic(t *testing.T) {
	w := NewWorld(DefaultConfig())
	box(w, 800, 600)
	w.AddDynamicBox(400, 300, 350, 60, 25, tile)

	if got := w.Grab(400, 610); got != nil {
		t.Error("the ground must not be grabbable")
	}
	if got := w.Grab(50, 50); got != nil {
		t.Error("empty space must not be grabbable")
	}
}

func TestDragPullsAndReleaseKeepsVelocity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gravity = 0
	w := NewWorld(cfg)
	b := w.AddDynamicBox(400, 300, 350, 60, 25, tile)
	if w.Grab(400, 300) == nil {
		t.Fatal("Grab missed the tile")
	}
	for i := 1; i <= 10; i++ {
		w.Drag(400+float64(i)*10, 300)
		w.Step(1.0 / 60)
	}
	if p := w.Pose(b); p.X <= 400 {
		t.Fatalf("tile did not follow the pointer: x = %.1f", p.X)
	}
	w.Release()
	vx, _ := w.Velocity(b)
	if vx <= 0 {
		t.Errorf("released tile lost its velocity: vx = %.2f", vx)
	}
}

func TestStepAccumulates(t *testing.T) {
	w := NewWorld(DefaultConfig())
	b := w.AddDynamicBox(400, 100, 100, 40, 10, tile)
	w.Step(0.5 / 60)
	if _, vy := w.Velocity(b); vy != 0 {
		t.Fatalf("half a step already integrated gravity: vy = %.3f", vy)
	}
	w.Step(0.5 / 60)
	if _, vy := w.Velocity(b); vy <= 0 {
		t.Error("a full accumulated step should integrate gravity")
	}
}

func TestSpeedLimitBoundsStepTravel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gravity = 0
	w := NewWorld(cfg)
	b := w.AddDynamicBox(400, 300, 350, 60, 25, tile)
	w.SetVelocity(b, 10000, -10000)
	w.Step(1.0 / 60)
	p := w.Pose(b)
	dx, dy := p.X-400, p.Y-300
	if travel := dx*dx + dy*dy; travel > (cfg.MaxSpeed/60)*(cfg.MaxSpeed/60)+1e-6 {
		t.Errorf("one step moved %.1f px; want at most %.1f", math.Sqrt(travel), cfg.MaxSpeed/60)
	}
	if dx <= 0 || dy >= 0 {
		t.Errorf("clamped velocity lost its direction: (%.1f, %.1f)", dx, dy)
	}
}

func TestFastTileStaysInside(t *testing.T) {
	w := NewWorld(DefaultConfig())
	box(w, 800, 600)
	b := w.AddDynamicBox(400, 300, 350, 60, 25, tile)
	w.SetVelocity(b, 20000, 15000)
	for i := 0; i < 60*2; i++ {
		w.Step(1.0 / 60)
	}
	if p := w.Pose(b); p.X < 0 || p.X > 800 || p.Y < 0 || p.Y > 600 {
		t.Errorf("tile tunneled out: (%.1f, %.1f)", p.X, p.Y)
	}
}

func TestPlaceStopsAndReleases(t *testing.T) {
	w := NewWorld(DefaultConfig())
	b := w.AddDynamicBox(400, 300, 350, 60, 25, tile)
	if w.Grab(400, 300) == nil {
		t.Fatal("Grab missed the tile")
	}
	w.SetVelocity(b, 500, 500)
	w.Place(b, 100, 120)
	if w.Grabbed() != nil {
		t.Error("Place should release a held tile")
	}
	if p := w.Pose(b); p.X != 100 || p.Y != 120 {
		t.Errorf("Pose = (%.1f, %.1f), want (100, 120)", p.X, p.Y)
	}
	if vx, vy := w.Velocity(b); vx != 0 || vy != 0 {
		t.Errorf("Velocity = (%.1f, %.1f), want 0", vx, vy)
	}
}

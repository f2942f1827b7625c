package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// maxStepsPerUpdate bounds catch-up after a long frame so a stalled window does not spiral.
const maxStepsPerUpdate = 5

// Config tunes the world. Screen coordinates: +X right, +Y down.
type Config struct {
	Gravity     float64 // px/s² along +Y
	StepRate    float64 // fixed steps per second
	Iterations  uint
	AirFriction float64 // fraction of velocity lost per step
	MaxSpeed    float64 // px/s cap on any point of a dynamic body; 0 disables

	// Pointer drag spring, expressed per step like the page's mouse constraint:
	// 1 would close the whole gap in one step.
	DragStiffness        float64
	DragAngularStiffness float64
	DragDamping          float64
}

// DefaultConfig returns the tuning the skill tiles were designed for.
func DefaultConfig() Config {
	return Config{
		Gravity:              1000,
		StepRate:             60,
		Iterations:           10,
		AirFriction:          0.02,
		MaxSpeed:             2400,
		DragStiffness:        0.35,
		DragAngularStiffness: 0.3,
		DragDamping:          0.2,
	}
}

type grab struct {
	body   *Body
	spring *cp.Constraint
	rotary *cp.Constraint
}

// World owns a Chipmunk space and every body in it. Bodies are handed out as handles; the world is
// the only thing that steps, reads or removes them.
type World struct {
	cfg    Config
	space  *cp.Space
	bodies []*Body
	mouse  *cp.Body // kinematic, never added to the space
	grab   *grab
	acc    float64
}

// NewWorld returns an empty world.
func NewWorld(cfg Config) *World {
	if cfg.StepRate <= 0 {
		cfg.StepRate = 60
	}
	if cfg.Iterations == 0 {
		cfg.Iterations = 10
	}
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: cfg.Gravity})
	space.Iterations = cfg.Iterations
	// Per-step loss compounded over one second.
	space.SetDamping(math.Pow(1-cfg.AirFriction, cfg.StepRate))
	return &World{cfg: cfg, space: space, mouse: cp.NewKinematicBody()}
}

// Config returns the world's tuning.
func (w *World) Config() Config {
	return w.cfg
}

// AddStaticBox adds an immovable box centered at (cx, cy).
func (w *World) AddStaticBox(cx, cy, width, height float64) *Body {
	body := cp.NewStaticBody()
	body.SetPosition(cp.Vector{X: cx, Y: cy})
	w.space.AddBody(body)
	shape := w.space.AddShape(cp.NewBox(body, width, height, 0))
	// Chipmunk multiplies the two surfaces' coefficients; walls pass the tile's values through.
	shape.SetFriction(1)
	shape.SetElasticity(1)
	b := &Body{body: body, shape: shape, Width: width, Height: height, Static: true}
	w.bodies = append(w.bodies, b)
	return b
}

// AddDynamicBox adds a rounded box of the given outer size centered at (cx, cy).
func (w *World) AddDynamicBox(cx, cy, width, height, radius float64, m Material) *Body {
	if radius*2 > math.Min(width, height) {
		radius = math.Min(width, height) / 2
	}
	mass := m.Density * width * height
	if mass <= 0 {
		mass = 1
	}
	body := w.space.AddBody(cp.NewBody(mass, cp.MomentForBox(mass, width, height)))
	body.SetPosition(cp.Vector{X: cx, Y: cy})
	// The rounding radius grows the polygon outward, so the core is shrunk by it on every side.
	shape := w.space.AddShape(cp.NewBox(body, width-2*radius, height-2*radius, radius))
	shape.SetFriction(m.Friction)
	shape.SetElasticity(m.Restitution)
	if w.cfg.MaxSpeed > 0 {
		body.SetPositionUpdateFunc(speedLimit(w.cfg.MaxSpeed, math.Hypot(width, height)/2))
	}
	b := &Body{body: body, shape: shape, Width: width, Height: height, Radius: radius}
	w.bodies = append(w.bodies, b)
	return b
}

// speedLimit clamps a body's velocity before it is integrated, so no point of the body travels
// further than maxSpeed/StepRate in one step. reach is the farthest point from the center.
func speedLimit(maxSpeed, reach float64) cp.BodyPositionFunc {
	maxSpin := maxSpeed / reach
	return func(body *cp.Body, dt float64) {
		if v := body.Velocity(); v.LengthSq() > maxSpeed*maxSpeed {
			body.SetVelocityVector(v.Clamp(maxSpeed))
		}
		if spin := body.AngularVelocity(); math.Abs(spin) > maxSpin {
			body.SetAngularVelocity(math.Copysign(maxSpin, spin))
		}
		cp.BodyUpdatePosition(body, dt)
	}
}

// Step advances the simulation by dt seconds in fixed steps of 1/StepRate.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	fixed := 1 / w.cfg.StepRate
	w.acc += dt
	steps := 0
	for w.acc >= fixed && steps < maxStepsPerUpdate {
		w.space.Step(fixed)
		w.acc -= fixed
		steps++
	}
	if steps == maxStepsPerUpdate {
		w.acc = 0
	}
}

// Pose reads a body's current position and angle.
func (w *World) Pose(b *Body) Pose {
	p := b.body.Position()
	return Pose{X: p.X, Y: p.Y, Angle: b.body.Angle()}
}

// SetVelocity sets a dynamic body's linear velocity in px/s.
func (w *World) SetVelocity(b *Body, vx, vy float64) {
	b.body.SetVelocityVector(cp.Vector{X: vx, Y: vy})
}

// Place moves a dynamic body to (x, y) and stops it.
func (w *World) Place(b *Body, x, y float64) {
	if b.Static {
		return
	}
	if w.grab != nil && w.grab.body == b {
		w.Release()
	}
	b.body.SetPosition(cp.Vector{X: x, Y: y})
	b.body.SetVelocityVector(cp.Vector{})
	b.body.SetAngularVelocity(0)
}

// Velocity returns a body's linear velocity in px/s.
func (w *World) Velocity(b *Body) (vx, vy float64) {
	v := b.body.Velocity()
	return v.X, v.Y
}

// Bodies returns the handles created by this world, in creation order.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Counts reports the dynamic and static bodies currently in the space.
func (w *World) Counts() (dynamic, static int) {
	w.space.EachBody(func(b *cp.Body) {
		switch b.GetType() {
		case cp.BODY_STATIC:
			static++
		case cp.BODY_DYNAMIC:
			dynamic++
		}
	})
	return dynamic, static
}

// Clear removes every constraint, shape and body from the space. Handles become invalid.
func (w *World) Clear() {
	w.Release()
	for _, b := range w.bodies {
		w.space.RemoveShape(b.shape)
		w.space.RemoveBody(b.body)
	}
	w.bodies = nil
	w.acc = 0
}

// Grab attaches the pointer to the dynamic body under (x, y) with a damped spring and returns it,
// or nil when nothing grabbable is there.
func (w *World) Grab(x, y float64) *Body {
	w.Release()
	point := cp.Vector{X: x, Y: y}
	info := w.space.PointQueryNearest(point, 0, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return nil
	}
	var target *Body
	for _, b := range w.bodies {
		if b.shape == info.Shape && !b.Static {
			target = b
			break
		}
	}
	if target == nil {
		return nil
	}

	w.mouse.SetPosition(point)
	w.mouse.SetVelocityVector(cp.Vector{})
	rate := w.cfg.StepRate
	mass, moment := target.body.Mass(), target.body.Moment()
	spring := cp.NewDampedSpring(w.mouse, target.body, cp.Vector{}, target.body.WorldToLocal(point), 0,
		w.cfg.DragStiffness*mass*rate*rate, w.cfg.DragDamping*mass*rate)
	rotary := cp.NewDampedRotarySpring(w.mouse, target.body, w.mouse.Angle()-target.body.Angle(),
		w.cfg.DragAngularStiffness*moment*rate*rate, w.cfg.DragDamping*moment*rate)
	w.space.AddConstraint(spring)
	w.space.AddConstraint(rotary)
	w.grab = &grab{body: target, spring: spring, rotary: rotary}
	return target
}

// Drag moves the pointer anchor. The kinematic anchor carries the pointer's velocity so a fling
// transfers through the spring.
func (w *World) Drag(x, y float64) {
	if w.grab == nil {
		return
	}
	next := cp.Vector{X: x, Y: y}
	w.mouse.SetVelocityVector(next.Sub(w.mouse.Position()).Mult(w.cfg.StepRate))
	w.mouse.SetPosition(next)
}

// Release detaches the pointer. The body keeps whatever velocity it has.
func (w *World) Release() {
	if w.grab == nil {
		return
	}
	w.space.RemoveConstraint(w.grab.spring)
	w.space.RemoveConstraint(w.grab.rotary)
	w.mouse.SetVelocityVector(cp.Vector{})
	w.grab = nil
}

// Grabbed returns the body held by the pointer, or nil.
func (w *World) Grabbed() *Body {
	if w.grab == nil {
		return nil
	}
	return w.grab.body
}

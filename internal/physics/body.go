package physics

import "github.com/jakecoffman/cp"

// Material holds the surface and mass parameters of a dynamic body.
// AirFriction is applied world-wide (see Config), the rest per shape.
type Material struct {
	Friction    float64
	Restitution float64
	Density     float64 // mass per square pixel
}

// Body is a non-owning handle to a body living in a World. Only the World that created it may
// read or move it; after Clear the handle is dead.
type Body struct {
	body   *cp.Body
	shape  *cp.Shape
	Width  float64
	Height float64
	Radius float64
	Static bool
}

// Pose is a body's position (center) and rotation in radians.
type Pose struct {
	X, Y  float64
	Angle float64
}

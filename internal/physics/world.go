package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Logger receives diagnostic lines from the World. *logger.Logger satisfies it.
type Logger interface {
	Logf(format string, args ...any)
}

// State is the step loop's run state.
type State int

const (
	Running State = iota
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// World owns every body and wall of one simulation and runs the fixed-substep loop:
// forces, Verlet integration, then iterative collision resolution.
// Bodies live in one slice and are addressed by index; indices never change because bodies
// are never removed individually. Supporting removal would need tombstones or
// generation-counted handles so a stale Inputs.Selected cannot alias a new body.
type World struct {
	params Params
	bodies []Body
	walls  []Wall
	state  State
	log    Logger
}

// NewWorld returns an empty world using params. Zero iteration counts fall back to defaults.
func NewWorld(params Params) *World {
	return &World{params: params.normalized()}
}

// SetLogger sets where the world reports soft failures (nil disables).
func (w *World) SetLogger(l Logger) {
	w.log = l
}

func (w *World) logf(format string, args ...any) {
	if w.log != nil {
		w.log.Logf(format, args...)
	}
}

// Params returns the world's tuning.
func (w *World) Params() Params {
	return w.params
}

// SetParams replaces the tuning. Takes effect on the next Step.
func (w *World) SetParams(p Params) {
	w.params = p.normalized()
}

// State returns Paused if the last Step was skipped because the inputs were paused.
func (w *World) State() State {
	return w.state
}

// AddWall appends a wall. Walls are expected to be added once at scene setup.
func (w *World) AddWall(wall Wall) {
	w.walls = append(w.walls, wall)
}

// Walls returns the wall list. Callers must not modify it.
func (w *World) Walls() []Wall {
	return w.walls
}

// Len returns the number of bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Body returns a pointer to body i. The pointer is invalidated by the next spawn.
func (w *World) Body(i int) (*Body, error) {
	if i < 0 || i >= len(w.bodies) {
		return nil, fmt.Errorf("body %d of %d: %w", i, len(w.bodies), ErrIndexOutOfRange)
	}
	return &w.bodies[i], nil
}

// AddBody appends b and returns its index. Existing indices are unchanged.
func (w *World) AddBody(b Body) (int, error) {
	if !(b.Radius > 0) || math.IsInf(b.Radius, 0) {
		return 0, ErrInvalidRadius
	}
	if !(b.Mass > 0) || math.IsInf(b.Mass, 0) {
		return 0, ErrInvalidMass
	}
	w.bodies = append(w.bodies, b)
	return len(w.bodies) - 1, nil
}

// Spawn creates a body at rest at pos with mass derived from radius and appends it.
func (w *World) Spawn(pos mgl64.Vec2, radius float64, color uint32) (int, error) {
	b, err := NewBody(pos, radius, color)
	if err != nil {
		return 0, err
	}
	return w.AddBody(b)
}

// SpawnBody appends a body at rest at pos. mass must be positive and match MassForRadius(radius)
// so the mass-radius invariant holds for every body in the world.
func (w *World) SpawnBody(pos mgl64.Vec2, radius, mass float64) (int, error) {
	if !(mass > 0) || math.IsInf(mass, 0) {
		return 0, ErrInvalidMass
	}
	b, err := NewBody(pos, radius, 0)
	if err != nil {
		return 0, err
	}
	if !mgl64.FloatEqualThreshold(mass, b.Mass, 1e-9) {
		return 0, fmt.Errorf("mass %g for radius %g: %w", mass, radius, ErrMassMismatch)
	}
	return w.AddBody(b)
}

// Reset removes every body. Walls are kept. Any selection index held by a frontend is stale
// afterwards; call Inputs.Clamp(w.Len()) before the next Step.
func (w *World) Reset() {
	w.bodies = w.bodies[:0]
}

// SelectBodyNearest returns the index of the body closest to p among those whose circle
// contains p.
func (w *World) SelectBodyNearest(p mgl64.Vec2) (int, bool) {
	best, bestDist := NoSelection, math.Inf(1)
	for i := range w.bodies {
		b := &w.bodies[i]
		if !b.Contains(p) {
			continue
		}
		if d := p.Sub(b.Position).LenSqr(); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best != NoSelection
}

// Flick launches body i with the pointer displacement d, scaled by Params.FlickScale.
// Only Previous changes, so the next integration reads the launch as existing velocity.
func (w *World) Flick(i int, d mgl64.Vec2) error {
	b, err := w.Body(i)
	if err != nil {
		return err
	}
	b.SetVelocity(d.Mul(w.params.FlickScale))
	return nil
}

// KineticEnergy returns the sum of ½·m·|v|² over all bodies, v in units per substep.
func (w *World) KineticEnergy() float64 {
	var e float64
	for i := range w.bodies {
		b := &w.bodies[i]
		e += 0.5 * b.Mass * b.Velocity().LenSqr()
	}
	return e
}

// Step advances the simulation by delta seconds. While in.Paused nothing is touched.
// Otherwise delta is clamped to MaxFrameDelta and split into Substeps slices, each running
// forces, integration of every body, then collision resolution.
func (w *World) Step(delta float64, in *Inputs) {
	if in.Paused {
		w.state = Paused
		return
	}
	w.state = Running
	if !(delta > 0) {
		return
	}
	if w.params.MaxFrameDelta > 0 && delta > w.params.MaxFrameDelta {
		delta = w.params.MaxFrameDelta
	}
	sel := in.Selected
	if sel < 0 || sel >= len(w.bodies) {
		sel = NoSelection
	}
	h := delta / float64(w.params.Substeps)
	for s := 0; s < w.params.Substeps; s++ {
		w.applyForces(in, sel)
		for i := range w.bodies {
			w.bodies[i].Integrate(h, w.params.Damping)
		}
		w.collide(in, sel)
	}
}

package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Body is a circular point mass advanced by position Verlet. Velocity is never stored; it is
// Position - Previous, so collision response edits Previous to change it.
type Body struct {
	Position     mgl64.Vec2
	Previous     mgl64.Vec2
	Acceleration mgl64.Vec2
	Radius       float64
	Mass         float64
	Color        uint32 // 0xRRGGBBAA, ignored by the solver
}

// MassForRadius returns the mass of a body of radius r (proportional to area).
func MassForRadius(r float64) float64 {
	return math.Pi * r * r
}

// NewBody returns a body at rest at pos. Mass is derived from radius.
func NewBody(pos mgl64.Vec2, radius float64, color uint32) (Body, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Body{}, ErrInvalidRadius
	}
	return Body{
		Position: pos,
		Previous: pos,
		Radius:   radius,
		Mass:     MassForRadius(radius),
		Color:    color,
	}, nil
}

// Velocity returns the implicit per-substep displacement.
func (b *Body) Velocity() mgl64.Vec2 {
	return b.Position.Sub(b.Previous)
}

// SetVelocity rewrites Previous so the next integration reads v as existing velocity.
// Position does not change.
func (b *Body) SetVelocity(v mgl64.Vec2) {
	b.Previous = b.Position.Sub(v)
}

// Integrate advances the body by one substep of length h and clears its acceleration.
func (b *Body) Integrate(h, damping float64) {
	vel := b.Position.Sub(b.Previous).Mul(damping)
	b.Previous = b.Position
	b.Position = b.Position.Add(vel).Add(b.Acceleration.Mul(h * h))
	b.Acceleration = mgl64.Vec2{}
}

// InverseMass is 1/Mass.
func (b *Body) InverseMass() float64 {
	return 1 / b.Mass
}

// Contains reports whether p lies inside the body's circle.
func (b *Body) Contains(p mgl64.Vec2) bool {
	return p.Sub(b.Position).LenSqr() <= b.Radius*b.Radius
}

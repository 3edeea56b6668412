package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Wall is a fixed capsule: the segment p1-p2 swept by a circle of diameter thickness.
// Walls have infinite mass and never move.
type Wall struct {
	p1, p2    mgl64.Vec2
	thickness float64
	dir       mgl64.Vec2
	lenSq     float64
}

// NewWall builds a wall and caches its direction and squared length.
func NewWall(p1, p2 mgl64.Vec2, thickness float64) (Wall, error) {
	if !(thickness > 0) || math.IsInf(thickness, 0) {
		return Wall{}, ErrInvalidThickness
	}
	dir := p2.Sub(p1)
	lenSq := dir.LenSqr()
	if lenSq == 0 {
		return Wall{}, ErrDegenerateWall
	}
	return Wall{p1: p1, p2: p2, thickness: thickness, dir: dir, lenSq: lenSq}, nil
}

// P1 returns the segment's first endpoint.
func (w Wall) P1() mgl64.Vec2 { return w.p1 }

// P2 returns the segment's second endpoint.
func (w Wall) P2() mgl64.Vec2 { return w.p2 }

// Thickness returns the capsule diameter.
func (w Wall) Thickness() float64 { return w.thickness }

// Direction returns p2 - p1 (not normalized).
func (w Wall) Direction() mgl64.Vec2 { return w.dir }

// LengthSquared returns |p2 - p1|².
func (w Wall) LengthSquared() float64 { return w.lenSq }

// HalfThickness returns the capsule radius around the segment.
func (w Wall) HalfThickness() float64 { return w.thickness / 2 }

// ClosestPoint projects p onto the segment, clamped to the endpoints.
func (w Wall) ClosestPoint(p mgl64.Vec2) mgl64.Vec2 {
	t := mgl64.Clamp(p.Sub(w.p1).Dot(w.dir)/w.lenSq, 0, 1)
	return w.p1.Add(w.dir.Mul(t))
}

// Normal is the unit perpendicular of the segment (direction rotated 90° counter-clockwise).
// Used when a body center sits exactly on the segment.
func (w Wall) Normal() mgl64.Vec2 {
	l := math.Sqrt(w.lenSq)
	return mgl64.Vec2{-w.dir.Y() / l, w.dir.X() / l}
}

// Distance returns the distance from p to the segment's centerline.
func (w Wall) Distance(p mgl64.Vec2) float64 {
	return p.Sub(w.ClosestPoint(p)).Len()
}

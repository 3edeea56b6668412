package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// collide runs the relaxation passes for one substep: cursor spring, body-wall, body-body.
// Pairs are visited in array order with i < j so results are reproducible. A dragged body out
// of spring reach is pulled by applyForces instead.
func (w *World) collide(in *Inputs, sel int) {
	for it := 0; it < w.params.Iterations; it++ {
		if sel != NoSelection && in.Dragging {
			w.dragToward(&w.bodies[sel], in)
		}
		for i := range w.bodies {
			b := &w.bodies[i]
			for k := range w.walls {
				w.resolveWall(b, &w.walls[k])
			}
		}
		for i := 0; i < len(w.bodies); i++ {
			for j := i + 1; j < len(w.bodies); j++ {
				w.resolvePair(&w.bodies[i], &w.bodies[j])
			}
		}
	}
}

// dragToward nudges b a SpringK fraction of the way to the cursor when it is within
// GrabRadiusFactor radii.
func (w *World) dragToward(b *Body, in *Inputs) {
	if w.inSpringReach(b, in.Cursor) {
		b.Position = b.Position.Add(in.Cursor.Sub(b.Position).Mul(w.params.SpringK))
	}
}

// inSpringReach reports whether cursor is within GrabRadiusFactor radii of b.
func (w *World) inSpringReach(b *Body, cursor mgl64.Vec2) bool {
	reach := w.params.GrabRadiusFactor * b.Radius
	return cursor.Sub(b.Position).LenSqr() < reach*reach
}

// resolveWall pushes b out of the capsule and reflects the normal component of its velocity
// when it is moving into the wall.
func (w *World) resolveWall(b *Body, wall *Wall) {
	closest := wall.ClosestPoint(b.Position)
	sep := b.Position.Sub(closest)
	dist := sep.Len()
	target := b.Radius + wall.HalfThickness()
	if dist >= target {
		return
	}
	n := wall.Normal()
	if dist > 0 {
		n = sep.Mul(1 / dist)
	}
	b.Position = b.Position.Add(n.Mul(target - dist))

	vn := b.Velocity().Dot(n)
	if vn < 0 {
		b.Previous = b.Previous.Add(n.Mul((1 + w.params.WallDamping) * vn))
	}
}

// resolvePair separates two overlapping bodies in inverse proportion to their masses, then
// applies a restitution impulse if they are still approaching.
func (w *World) resolvePair(a, b *Body) {
	axis := a.Position.Sub(b.Position)
	distSq := axis.LenSqr()
	target := a.Radius + b.Radius
	if distSq == 0 || distSq >= target*target {
		return
	}
	dist := math.Sqrt(distSq)
	n := axis.Mul(1 / dist)
	overlap := target - dist
	total := a.Mass + b.Mass
	a.Position = a.Position.Add(n.Mul(overlap * b.Mass / total))
	b.Position = b.Position.Sub(n.Mul(overlap * a.Mass / total))

	vrel := a.Velocity().Sub(b.Velocity()).Dot(n)
	if vrel > 0 {
		return
	}
	j := -(1 + w.params.Restitution) * vrel / (a.InverseMass() + b.InverseMass())
	a.Previous = a.Previous.Sub(n.Mul(j * a.InverseMass()))
	b.Previous = b.Previous.Add(n.Mul(j * b.InverseMass()))
}

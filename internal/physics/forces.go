package physics

import "github.com/go-gl/mathgl/mgl64"

// applyForces accumulates gravity on every body. The selected body has gravity cancelled and
// is pulled toward the cursor while hovered, or while dragged beyond the spring's reach.
func (w *World) applyForces(in *Inputs, sel int) {
	for i := range w.bodies {
		w.bodies[i].Acceleration = w.bodies[i].Acceleration.Add(in.Gravity)
	}
	if sel == NoSelection {
		return
	}
	b := &w.bodies[sel]
	if !in.Dragging || !w.inSpringReach(b, in.Cursor) {
		w.attractToCursor(b, in.Cursor)
	}
	b.Acceleration = b.Acceleration.Sub(in.Gravity)
}

// attractToCursor adds an acceleration toward cursor proportional to the distance,
// capped at AttractMaxAccel.
func (w *World) attractToCursor(b *Body, cursor mgl64.Vec2) {
	pull := cursor.Sub(b.Position).Mul(w.params.AttractStrength)
	if limit := w.params.AttractMaxAccel; limit > 0 {
		if l := pull.Len(); l > limit {
			pull = pull.Mul(limit / l)
		}
	}
	b.Acceleration = b.Acceleration.Add(pull)
}

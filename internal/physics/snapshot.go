package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jinzhu/copier"
)

// BodyState is the per-body data a renderer needs.
type BodyState struct {
	Position mgl64.Vec2
	Radius   float64
	Color    uint32
}

// Frame is a read-only copy of the world taken after a full Step.
type Frame struct {
	Bodies []BodyState
	State  State
}

// Snapshot copies every body's position, radius and color in index order.
func (w *World) Snapshot() (Frame, error) {
	f := Frame{Bodies: make([]BodyState, 0, len(w.bodies)), State: w.state}
	if err := copier.Copy(&f.Bodies, &w.bodies); err != nil {
		return Frame{}, err
	}
	return f, nil
}

package physics

import "github.com/go-gl/mathgl/mgl64"

// NoSelection is the Selected value when no body is grabbed.
const NoSelection = -1

// Inputs is the interaction state written by a frontend between frames and read by Step.
type Inputs struct {
	Gravity  mgl64.Vec2
	Cursor   mgl64.Vec2
	Selected int // index into the World's bodies, or NoSelection
	Dragging bool
	Paused   bool
}

// NewInputs returns inputs with the given gravity and nothing selected.
func NewInputs(gravity mgl64.Vec2) *Inputs {
	return &Inputs{Gravity: gravity, Selected: NoSelection}
}

// Select grabs body i and starts a drag.
func (in *Inputs) Select(i int) {
	in.Selected = i
	in.Dragging = true
}

// Release drops the current selection.
func (in *Inputs) Release() {
	in.Selected = NoSelection
	in.Dragging = false
}

// HasSelection reports whether a body is selected.
func (in *Inputs) HasSelection() bool {
	return in.Selected != NoSelection
}

// Clamp releases the selection if it no longer indexes one of n bodies.
func (in *Inputs) Clamp(n int) {
	if in.Selected < 0 || in.Selected >= n {
		in.Release()
	}
}

package physics

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// FlickTracker remembers the most recent pointer movement so a release can turn it into a
// launch velocity.
type FlickTracker struct {
	window   time.Duration
	last     mgl64.Vec2
	lastMove time.Time
	moved    bool
}

// NewFlickTracker returns a tracker that accepts releases within window of the last move.
func NewFlickTracker(window time.Duration) *FlickTracker {
	return &FlickTracker{window: window}
}

// Move records a pointer displacement d observed at time at.
func (f *FlickTracker) Move(d mgl64.Vec2, at time.Time) {
	f.last = d
	f.lastMove = at
	f.moved = true
}

// Release returns the last displacement if the pointer moved within the window before now,
// and resets the tracker.
func (f *FlickTracker) Release(now time.Time) (mgl64.Vec2, bool) {
	d, ok := f.last, f.moved && now.Sub(f.lastMove) < f.window
	f.Reset()
	return d, ok
}

// Reset forgets the recorded movement.
func (f *FlickTracker) Reset() {
	*f = FlickTracker{window: f.window}
}

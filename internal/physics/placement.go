package physics

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// PlacementOptions controls random initial placement.
type PlacementOptions struct {
	Count       int      // bodies wanted
	RadiusMin   float64  // smallest radius
	RadiusSpan  float64  // radius is drawn from [RadiusMin, RadiusMin+RadiusSpan)
	Palette     []uint32 // colors picked uniformly; empty means 0
	Width       float64  // canvas width
	Height      float64  // canvas height; bodies spawn in the top quarter
	MaxFailures int      // rejected candidates tolerated before giving up; 0 means 20*Count
}

// DefaultPlacement returns the reference placement for a width x height canvas.
func DefaultPlacement(width, height float64) PlacementOptions {
	return PlacementOptions{
		Count:      150,
		RadiusMin:  6,
		RadiusSpan: 20,
		Width:      width,
		Height:     height,
	}
}

// Populate adds up to opts.Count bodies at random non-overlapping positions in the top quarter
// of the canvas and returns how many were placed. Placement gives up once rejections exceed
// MaxFailures, so a crowded canvas yields fewer bodies instead of looping forever.
func (w *World) Populate(rng *rand.Rand, opts PlacementOptions) int {
	maxFailures := opts.MaxFailures
	if maxFailures <= 0 {
		maxFailures = 20 * opts.Count
	}
	bandHeight := opts.Height / 4
	placed, failures := 0, 0
	for placed < opts.Count && failures <= maxFailures {
		r := opts.RadiusMin + rng.Float64()*opts.RadiusSpan
		var color uint32
		if len(opts.Palette) > 0 {
			color = opts.Palette[rng.IntN(len(opts.Palette))]
		}
		if opts.Width < 2*r || bandHeight < 2*r {
			failures++
			continue
		}
		pos := mgl64.Vec2{
			r + rng.Float64()*(opts.Width-2*r),
			r + rng.Float64()*(bandHeight-2*r),
		}
		if w.overlapsAny(pos, r) {
			failures++
			continue
		}
		if _, err := w.Spawn(pos, r, color); err != nil {
			failures++
			continue
		}
		placed++
	}
	if placed < opts.Count {
		w.logf("placement: placed %d of %d bodies after %d rejected candidates", placed, opts.Count, failures)
	}
	return placed
}

func (w *World) overlapsAny(pos mgl64.Vec2, r float64) bool {
	for i := range w.bodies {
		b := &w.bodies[i]
		minDist := r + b.Radius
		if pos.Sub(b.Position).LenSqr() < minDist*minDist {
			return true
		}
	}
	return false
}

package physics

import "time"

// Params holds the solver tuning constants. The defaults are empirical, not derived from
// physical units.
type Params struct {
	Substeps         int           // integration slices per frame
	Iterations       int           // collision relaxation passes per substep
	Damping          float64       // velocity retained per substep
	WallDamping      float64       // wall bounce coefficient
	Restitution      float64       // ball-ball restitution
	SpringK          float64       // fraction of the cursor offset closed per iteration while dragging
	GrabRadiusFactor float64       // spring acts within this many radii of the cursor
	AttractStrength  float64       // cursor attraction, acceleration per unit of distance
	AttractMaxAccel  float64       // cap on the attraction magnitude; 0 = uncapped
	FlickScale       float64       // pointer displacement -> per-substep displacement
	FlickWindow      time.Duration // release must follow the last pointer move within this window
	MaxFrameDelta    float64       // frame delta clamp in seconds; 0 = no clamp
}

// DefaultParams returns the reference tuning.
func DefaultParams() Params {
	return Params{
		Substeps:         8,
		Iterations:       5,
		Damping:          0.999,
		WallDamping:      0.9,
		Restitution:      0.9,
		SpringK:          0.2,
		GrabRadiusFactor: 4,
		AttractStrength:  20,
		AttractMaxAccel:  4000,
		FlickScale:       0.2,
		FlickWindow:      100 * time.Millisecond,
		MaxFrameDelta:    0,
	}
}

// normalized fills zero counts with defaults so a zero Params never stalls the loop.
func (p Params) normalized() Params {
	d := DefaultParams()
	if p.Substeps <= 0 {
		p.Substeps = d.Substeps
	}
	if p.Iterations <= 0 {
		p.Iterations = d.Iterations
	}
	return p
}

package physics

import (
	"errors"
	"math"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestWorld_SpawnBody(t *testing.T) {
	w := NewWorld(DefaultParams())
	first, err := w.Spawn(mgl64.Vec2{10, 10}, 8, 0)
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	firstPos := w.bodies[first].Position

	idx, err := w.SpawnBody(mgl64.Vec2{50, 50}, 12, MassForRadius(12))
	if err != nil {
		t.Fatalf("SpawnBody: %v", err)
	}
	if idx != 1 || w.Len() != 2 {
		t.Errorf("SpawnBody index = %d, Len = %d; want 1, 2", idx, w.Len())
	}
	if w.bodies[first].Position != firstPos {
		t.Errorf("existing body moved after spawn")
	}

	tests := []struct {
		name   string
		radius float64
		mass   float64
		want   error
	}{
		{"zero mass", 5, 0, ErrInvalidMass},
		{"negative mass", 5, -3, ErrInvalidMass},
		{"zero radius", 0, 1, ErrInvalidRadius},
		{"mass not from radius", 5, 10, ErrMassMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := w.SpawnBody(mgl64.Vec2{}, tt.radius, tt.mass); !errors.Is(err, tt.want) {
				t.Errorf("SpawnBody error = %v, want %v", err, tt.want)
			}
		})
	}
	if w.Len() != 2 {
		t.Errorf("rejected spawns changed Len to %d", w.Len())
	}
}

func TestWorld_BodyOutOfRange(t *testing.T) {
	w := NewWorld(DefaultParams())
	if _, err := w.Body(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Body(0) on empty world error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestWorld_SelectBodyNearest(t *testing.T) {
	w := NewWorld(DefaultParams())
	w.Spawn(mgl64.Vec2{0, 0}, 10, 0)
	w.Spawn(mgl64.Vec2{12, 0}, 10, 0)

	if i, ok := w.SelectBodyNearest(mgl64.Vec2{8, 0}); !ok || i != 1 {
		t.Errorf("SelectBodyNearest(8,0) = %d, %v; want 1, true", i, ok)
	}
	if i, ok := w.SelectBodyNearest(mgl64.Vec2{2, 1}); !ok || i != 0 {
		t.Errorf("SelectBodyNearest(2,1) = %d, %v; want 0, true", i, ok)
	}
	if i, ok := w.SelectBodyNearest(mgl64.Vec2{100, 100}); ok || i != NoSelection {
		t.Errorf("SelectBodyNearest(miss) = %d, %v; want NoSelection, false", i, ok)
	}
}

func TestWorld_ForcesOnSelection(t *testing.T) {
	params := DefaultParams()
	params.AttractMaxAccel = 0
	w := NewWorld(params)
	w.Spawn(mgl64.Vec2{0, 0}, 5, 0)
	w.Spawn(mgl64.Vec2{100, 0}, 5, 0)
	gravity := mgl64.Vec2{0, 900}
	in := NewInputs(gravity)
	in.Selected = 1
	in.Cursor = mgl64.Vec2{110, 0}

	w.applyForces(in, 1)

	if w.bodies[0].Acceleration != gravity {
		t.Errorf("unselected acceleration = %v, want %v", w.bodies[0].Acceleration, gravity)
	}
	if want := (mgl64.Vec2{10 * params.AttractStrength, 0}); !vecAlmostEqual(w.bodies[1].Acceleration, want, eps) {
		t.Errorf("hovered acceleration = %v, want %v", w.bodies[1].Acceleration, want)
	}

	w.bodies[1].Acceleration = mgl64.Vec2{}
	in.Dragging = true
	w.applyForces(in, 1)
	if !vecAlmostEqual(w.bodies[1].Acceleration, mgl64.Vec2{}, eps) {
		t.Errorf("dragged acceleration = %v, want zero", w.bodies[1].Acceleration)
	}
}

func TestWorld_RestStability(t *testing.T) {
	params := DefaultParams()
	params.Substeps = 1
	w := NewWorld(params)
	floor := mustWall(mgl64.Vec2{0, 300}, mgl64.Vec2{400, 300}, 10)
	w.AddWall(floor)
	i, _ := w.Spawn(mgl64.Vec2{200, 283}, 10, 0)
	in := NewInputs(mgl64.Vec2{0, 1000})
	h := 1.0 / 480

	target := 10 + floor.HalfThickness()
	var last mgl64.Vec2
	for step := 0; step < 1000; step++ {
		w.Step(h, in)
		b := &w.bodies[i]
		if d := floor.Distance(b.Position); d < target-1e-6 {
			t.Fatalf("step %d: distance to floor %v, want >= %v", step, d, target)
		}
		last = b.Position.Sub(b.Previous)
	}
	if last.Len() > 1e-4 {
		t.Errorf("body still moving after 1000 substeps: |Δ| = %v", last.Len())
	}
	if x := w.bodies[i].Position.X(); !almostEqual(x, 200, 1e-6) {
		t.Errorf("body drifted sideways to x = %v", x)
	}
}

func TestWorld_RestStabilityDefaultParams(t *testing.T) {
	w := NewWorld(DefaultParams())
	floor := mustWall(mgl64.Vec2{0, 300}, mgl64.Vec2{400, 300}, 10)
	w.AddWall(floor)
	i, _ := w.Spawn(mgl64.Vec2{200, 283}, 10, 0)
	in := NewInputs(mgl64.Vec2{0, 1000})

	target := 10 + floor.HalfThickness()
	for frame := 0; frame < 125; frame++ {
		w.Step(1.0/60, in)
		if d := floor.Distance(w.bodies[i].Position); d < target-1e-6 {
			t.Fatalf("frame %d: distance to floor %v, want >= %v", frame, d, target)
		}
	}
	b := &w.bodies[i]
	if v := b.Velocity().Len(); v > 1e-4 {
		t.Errorf("body still moving after 125 frames: |Δ| = %v", v)
	}
	if !almostEqual(b.Position.Y(), 300-target, 1e-3) {
		t.Errorf("resting y = %v, want %v", b.Position.Y(), 300-target)
	}
}

func TestWorld_DragPullDoesNotOutliveStep(t *testing.T) {
	params := DefaultParams()
	params.AttractMaxAccel = 0
	w := NewWorld(params)
	i, _ := w.Spawn(mgl64.Vec2{0, 0}, 10, 0)
	in := NewInputs(mgl64.Vec2{})
	in.Select(i)
	in.Cursor = mgl64.Vec2{100, 0}

	w.Step(1.0/60, in)
	b := &w.bodies[i]
	if b.Position.X() <= 0 {
		t.Errorf("dragged body out of reach did not move toward cursor, x = %v", b.Position.X())
	}
	if b.Acceleration != (mgl64.Vec2{}) {
		t.Errorf("Acceleration after Step = %v, want zero", b.Acceleration)
	}

	in.Release()
	v := b.Velocity()
	w.Step(1.0/60, in)
	if got := b.Velocity(); got.X() > v.X()*math.Pow(params.Damping, float64(params.Substeps))+eps {
		t.Errorf("released body still pulled: velocity x %v -> %v", v.X(), got.X())
	}
}

func TestWorld_PauseIsIdempotent(t *testing.T) {
	w := NewWorld(DefaultParams())
	w.AddWall(mustWall(mgl64.Vec2{0, 400}, mgl64.Vec2{400, 400}, 10))
	w.Populate(rand.New(rand.NewPCG(1, 2)), DefaultPlacement(400, 400))
	in := NewInputs(mgl64.Vec2{0, 980})
	for k := 0; k < 10; k++ {
		w.Step(1.0/60, in)
	}
	bodies := append([]Body(nil), w.bodies...)
	walls := append([]Wall(nil), w.walls...)

	in.Paused = true
	for k := 0; k < 20; k++ {
		w.Step(1.0/60, in)
	}

	if w.State() != Paused {
		t.Errorf("State = %v, want paused", w.State())
	}
	if !reflect.DeepEqual(bodies, w.bodies) {
		t.Errorf("bodies changed while paused")
	}
	if !reflect.DeepEqual(walls, w.walls) {
		t.Errorf("walls changed while paused")
	}

	in.Paused = false
	w.Step(1.0/60, in)
	if w.State() != Running {
		t.Errorf("State = %v after resume, want running", w.State())
	}
}

func TestWorld_StepSplitsFullDelta(t *testing.T) {
	params := DefaultParams()
	w := NewWorld(params)
	i, _ := w.Spawn(mgl64.Vec2{0, 0}, 5, 0)
	gravity := mgl64.Vec2{0, 1000}

	w.Step(0.1, NewInputs(gravity))

	want := mustBody(mgl64.Vec2{0, 0}, 5)
	h := 0.1 / float64(params.Substeps)
	for s := 0; s < params.Substeps; s++ {
		want.Acceleration = gravity
		want.Integrate(h, params.Damping)
	}
	if got := w.bodies[i].Position; !vecAlmostEqual(got, want.Position, 1e-9) {
		t.Errorf("Step(0.1) Position = %v, want %v (h = 0.1/%d)", got, want.Position, params.Substeps)
	}
	// Roughly 36·h²·g without damping.
	if y := w.bodies[i].Position.Y(); !almostEqual(y, 36*h*h*1000, 0.05) {
		t.Errorf("Step(0.1) y = %v, want about %v", y, 36*h*h*1000)
	}
}

func TestWorld_StepClampsDelta(t *testing.T) {
	params := DefaultParams()
	params.MaxFrameDelta = 0.05
	build := func() *World {
		w := NewWorld(params)
		w.Spawn(mgl64.Vec2{0, 0}, 5, 0)
		return w
	}
	in := NewInputs(mgl64.Vec2{0, 1000})
	long, clamped := build(), build()
	long.Step(2, in)
	clamped.Step(params.MaxFrameDelta, in)
	if long.bodies[0].Position != clamped.bodies[0].Position {
		t.Errorf("Step(2) = %v, Step(max) = %v; want equal", long.bodies[0].Position, clamped.bodies[0].Position)
	}
}

func TestWorld_StepIgnoresStaleSelection(t *testing.T) {
	w := NewWorld(DefaultParams())
	w.Spawn(mgl64.Vec2{0, 0}, 5, 0)
	in := NewInputs(mgl64.Vec2{0, 10})
	in.Select(7)
	w.Step(1.0/60, in)
	if w.bodies[0].Position.Y() <= 0 {
		t.Errorf("gravity not applied, y = %v", w.bodies[0].Position.Y())
	}
	in.Clamp(w.Len())
	if in.HasSelection() || in.Dragging {
		t.Errorf("Clamp kept stale selection %d", in.Selected)
	}
}

func TestWorld_Flick(t *testing.T) {
	params := DefaultParams()
	w := NewWorld(params)
	i, _ := w.Spawn(mgl64.Vec2{40, 40}, 10, 0)
	d := mgl64.Vec2{50, -20}

	if err := w.Flick(i, d); err != nil {
		t.Fatalf("Flick: %v", err)
	}
	b, _ := w.Body(i)
	if b.Position != (mgl64.Vec2{40, 40}) {
		t.Errorf("Position changed on release: %v", b.Position)
	}
	if want := d.Mul(params.FlickScale); !vecAlmostEqual(b.Velocity(), want, eps) {
		t.Errorf("Velocity = %v, want %v", b.Velocity(), want)
	}
	if err := w.Flick(5, d); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Flick(5) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestWorld_Snapshot(t *testing.T) {
	w := NewWorld(DefaultParams())
	w.Spawn(mgl64.Vec2{1, 2}, 3, 0x11223344)
	w.Spawn(mgl64.Vec2{10, 20}, 4, 0x55667788)

	f, err := w.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	want := []BodyState{
		{Position: mgl64.Vec2{1, 2}, Radius: 3, Color: 0x11223344},
		{Position: mgl64.Vec2{10, 20}, Radius: 4, Color: 0x55667788},
	}
	if !reflect.DeepEqual(f.Bodies, want) {
		t.Errorf("Snapshot bodies = %+v, want %+v", f.Bodies, want)
	}
	f.Bodies[0].Position = mgl64.Vec2{99, 99}
	if w.bodies[0].Position != (mgl64.Vec2{1, 2}) {
		t.Errorf("snapshot aliases world state")
	}
}

func TestWorld_Reset(t *testing.T) {
	w := NewWorld(DefaultParams())
	w.AddWall(mustWall(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, 1))
	w.Spawn(mgl64.Vec2{}, 1, 0)
	w.Reset()
	if w.Len() != 0 || len(w.Walls()) != 1 {
		t.Errorf("after Reset: Len = %d, walls = %d; want 0, 1", w.Len(), len(w.Walls()))
	}
}

func TestWorld_KineticEnergy(t *testing.T) {
	w := NewWorld(DefaultParams())
	if e := w.KineticEnergy(); e != 0 {
		t.Errorf("empty world energy = %v, want 0", e)
	}
	i, _ := w.Spawn(mgl64.Vec2{}, 1, 0)
	w.Spawn(mgl64.Vec2{10, 0}, 2, 0)
	w.bodies[i].SetVelocity(mgl64.Vec2{3, 4})
	if e, want := w.KineticEnergy(), 0.5*MassForRadius(1)*25; !almostEqual(e, want, eps) {
		t.Errorf("KineticEnergy = %v, want %v", e, want)
	}
}

func TestState_String(t *testing.T) {
	if Running.String() != "running" || Paused.String() != "paused" {
		t.Errorf("State strings = %q, %q", Running, Paused)
	}
}

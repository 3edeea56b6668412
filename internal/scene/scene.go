package scene

import (
	"ballpit/internal/physics"
	"ballpit/internal/session"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	tiltStepDeg       = 15
	maxTiltDeg        = 90
	velocityArrowGain = 6 // arrow length per unit of per-substep velocity
	maxArrowLen       = 60
)

var (
	// Reused every frame to avoid per-frame color allocations.
	wallColor     = rl.NewColor(90, 90, 110, 255)
	canvasColor   = rl.NewColor(28, 28, 36, 255)
	selectColor   = rl.NewColor(255, 255, 255, 200)
	velocityColor = rl.NewColor(120, 220, 120, 200)
	cursorColor   = rl.NewColor(255, 255, 255, 90)
)

// Scene draws a session's world in 2D and turns mouse/keyboard input into session calls.
// The canvas is letterboxed into the window with a Camera2D so world units stay canvas units.
type Scene struct {
	sess    *session.Session
	camera  rl.Camera2D
	tiltDeg float64
	frame   physics.Frame
	// Input is ignored while the console overlay is capturing keys.
	InputBlocked func() bool
}

// New returns a scene bound to sess.
func New(sess *session.Session) *Scene {
	return &Scene{sess: sess, camera: rl.Camera2D{Zoom: 1}}
}

// fit updates the camera so the whole canvas is visible and centered.
func (s *Scene) fit() {
	cw := float32(s.sess.Config.Scene.Width)
	ch := float32(s.sess.Config.Scene.Height)
	sw := float32(rl.GetScreenWidth())
	sh := float32(rl.GetScreenHeight())
	zoom := math32.Min(sw/cw, sh/ch)
	s.camera.Zoom = zoom
	s.camera.Offset = rl.NewVector2((sw-cw*zoom)/2, (sh-ch*zoom)/2)
	s.camera.Target = rl.NewVector2(0, 0)
}

// cursor returns the mouse position in canvas coordinates.
func (s *Scene) cursor() mgl64.Vec2 {
	p := rl.GetScreenToWorld2D(rl.GetMousePosition(), s.camera)
	return mgl64.Vec2{float64(p.X), float64(p.Y)}
}

// Update reads input and steps the simulation by dt seconds. Call once per frame.
func (s *Scene) Update(dt float32) {
	s.fit()
	if s.InputBlocked == nil || !s.InputBlocked() {
		s.handleInput()
	}
	s.sess.Frame(float64(dt))
	if f, err := s.sess.World.Snapshot(); err == nil {
		s.frame = f
	}
}

func (s *Scene) handleInput() {
	p := s.cursor()
	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		s.sess.PointerDown(p, true)
	case rl.IsMouseButtonPressed(rl.MouseButtonRight):
		s.sess.PointerDown(p, false)
	case rl.IsMouseButtonReleased(rl.MouseButtonLeft), rl.IsMouseButtonReleased(rl.MouseButtonRight):
		s.sess.PointerUp()
	default:
		s.sess.PointerMove(p)
	}

	if rl.IsKeyPressed(rl.KeyP) {
		s.sess.TogglePause()
		s.sess.Log.Logf("simulation %s", s.sess.State())
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		if _, err := s.sess.Spawn(p, s.sess.RandomRadius()); err != nil {
			s.sess.Log.Logf("spawn: %v", err)
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		s.sess.Reset(s.sess.Config.Scene.Bodies)
	}
	// Arrow keys stand in for device tilt.
	if rl.IsKeyPressed(rl.KeyLeft) && s.tiltDeg > -maxTiltDeg {
		s.tiltDeg -= tiltStepDeg
		s.sess.Inputs.Gravity = session.Tilt(s.sess.Inputs.Gravity, s.tiltDeg)
	}
	if rl.IsKeyPressed(rl.KeyRight) && s.tiltDeg < maxTiltDeg {
		s.tiltDeg += tiltStepDeg
		s.sess.Inputs.Gravity = session.Tilt(s.sess.Inputs.Gravity, s.tiltDeg)
	}
}

// Draw renders walls, bodies, the selection ring and optional velocity arrows.
func (s *Scene) Draw() {
	rl.BeginMode2D(s.camera)
	rl.DrawRectangle(0, 0, int32(s.sess.Config.Scene.Width), int32(s.sess.Config.Scene.Height), canvasColor)
	for _, w := range s.sess.World.Walls() {
		drawWall(w)
	}
	for _, b := range s.frame.Bodies {
		rl.DrawCircleV(vec(b.Position), float32(b.Radius), rl.GetColor(uint(b.Color)))
	}
	if s.sess.Prefs.ShowVelocity {
		s.drawVelocities()
	}
	in := s.sess.Inputs
	if in.HasSelection() && in.Selected < len(s.frame.Bodies) {
		b := s.frame.Bodies[in.Selected]
		rl.DrawCircleLinesV(vec(b.Position), float32(b.Radius)+2, selectColor)
		if in.Dragging {
			rl.DrawLineV(vec(b.Position), vec(in.Cursor), cursorColor)
		}
	}
	rl.EndMode2D()
}

// drawWall draws a capsule as a thick segment with round caps.
func drawWall(w physics.Wall) {
	a, b := vec(w.P1()), vec(w.P2())
	half := float32(w.HalfThickness())
	rl.DrawLineEx(a, b, half*2, wallColor)
	rl.DrawCircleV(a, half, wallColor)
	rl.DrawCircleV(b, half, wallColor)
}

func (s *Scene) drawVelocities() {
	for i := 0; i < s.sess.World.Len(); i++ {
		b, err := s.sess.World.Body(i)
		if err != nil {
			return
		}
		v := b.Velocity()
		vx, vy := float32(v.X())*velocityArrowGain, float32(v.Y())*velocityArrowGain
		if l := math32.Hypot(vx, vy); l > maxArrowLen {
			vx, vy = vx*maxArrowLen/l, vy*maxArrowLen/l
		}
		from := vec(b.Position)
		rl.DrawLineEx(from, rl.NewVector2(from.X+vx, from.Y+vy), 2, velocityColor)
	}
}

func vec(v mgl64.Vec2) rl.Vector2 {
	return rl.NewVector2(float32(v.X()), float32(v.Y()))
}

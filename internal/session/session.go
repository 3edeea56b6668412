package session

import (
	"fmt"
	"math/rand/v2"
	"time"

	"ballpit/internal/engineconfig"
	"ballpit/internal/logger"
	"ballpit/internal/physics"
	"ballpit/internal/simconfig"

	"github.com/go-gl/mathgl/mgl64"
)

// Session ties one World to the inputs a frontend drives it with. Frontends translate their
// own events into PointerDown/Move/Up and call Frame once per rendered frame; all calls must
// come from the same goroutine.
type Session struct {
	Config simconfig.Config
	Prefs  engineconfig.EnginePrefs
	World  *physics.World
	Inputs *physics.Inputs
	Log    *logger.Logger

	flick *physics.FlickTracker
	rng   *rand.Rand
	now   func() time.Time
}

// New builds the world described by cfg and logs how many bodies were placed.
func New(cfg simconfig.Config, prefs engineconfig.EnginePrefs, log *logger.Logger) (*Session, error) {
	rng := cfg.Rand()
	w, placed, err := cfg.Build(rng, log)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	log.Logf("scene %gx%g: %d bodies, %d walls", cfg.Scene.Width, cfg.Scene.Height, placed, len(w.Walls()))
	return &Session{
		Config: cfg,
		Prefs:  prefs,
		World:  w,
		Inputs: physics.NewInputs(cfg.Gravity()),
		Log:    log,
		flick:  physics.NewFlickTracker(cfg.Params().FlickWindow),
		rng:    rng,
		now:    time.Now,
	}, nil
}

// MaxFrameDelta caps the seconds handed to the world per frame.
const MaxFrameDelta = 0.05

// Frame advances the simulation by delta seconds, at most MaxFrameDelta.
func (s *Session) Frame(delta float64) {
	s.Inputs.Clamp(s.World.Len())
	s.World.Step(min(delta, MaxFrameDelta), s.Inputs)
}

// TogglePause flips the paused flag and returns the new value.
func (s *Session) TogglePause() bool {
	s.Inputs.Paused = !s.Inputs.Paused
	return s.Inputs.Paused
}

// State reports whether the next Frame will run or be skipped.
func (s *Session) State() physics.State {
	if s.Inputs.Paused {
		return physics.Paused
	}
	return physics.Running
}

// PointerDown selects the body under p. With grab the body follows the cursor spring;
// without it the body is only attracted toward the cursor.
func (s *Session) PointerDown(p mgl64.Vec2, grab bool) bool {
	s.Inputs.Cursor = p
	s.flick.Reset()
	i, ok := s.World.SelectBodyNearest(p)
	if !ok {
		s.Inputs.Release()
		return false
	}
	s.Inputs.Selected = i
	s.Inputs.Dragging = grab
	return true
}

// PointerMove moves the cursor to p and records the displacement for a later flick.
func (s *Session) PointerMove(p mgl64.Vec2) {
	d := p.Sub(s.Inputs.Cursor)
	s.Inputs.Cursor = p
	if s.Inputs.Dragging && d != (mgl64.Vec2{}) {
		s.flick.Move(d, s.now())
	}
}

// PointerUp releases the selection. A release shortly after the last move launches the body.
func (s *Session) PointerUp() {
	if s.Inputs.HasSelection() && s.Inputs.Dragging {
		if d, ok := s.flick.Release(s.now()); ok {
			if err := s.World.Flick(s.Inputs.Selected, d); err != nil {
				s.Log.Logf("flick: %v", err)
			}
		}
	}
	s.flick.Reset()
	s.Inputs.Release()
}

// Reset removes every body and places n new ones. Walls are kept.
func (s *Session) Reset(n int) int {
	s.Inputs.Release()
	s.World.Reset()
	opts, err := s.Config.Placement()
	if err != nil {
		s.Log.Logf("reset: %v", err)
		return 0
	}
	opts.Count = n
	placed := s.World.Populate(s.rng, opts)
	s.Log.Logf("reset: %d bodies", placed)
	return placed
}

// Spawn adds a body at p with radius r and a random palette color.
func (s *Session) Spawn(p mgl64.Vec2, r float64) (int, error) {
	var color uint32
	if palette, err := s.Config.Palette(); err == nil && len(palette) > 0 {
		color = palette[s.rng.IntN(len(palette))]
	}
	return s.World.Spawn(p, r, color)
}

// RandomRadius returns a radius drawn from the configured range.
func (s *Session) RandomRadius() float64 {
	return s.Config.Scene.RadiusMin + s.rng.Float64()*s.Config.Scene.RadiusSpan
}

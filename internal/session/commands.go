package session

import (
	"fmt"
	"math"
	"strings"

	"ballpit/internal/commands"
	"ballpit/internal/engineconfig"

	"github.com/go-gl/mathgl/mgl64"
)

// Commands returns the console command set bound to s. Output lines go to s.Log.
func (s *Session) Commands() *commands.Registry {
	reg := commands.NewRegistry()

	reg.Register("help", "list commands", nil, func([]string) error {
		for _, line := range reg.Help() {
			s.Log.Log(line)
		}
		return nil
	})

	reg.Register("pause", "toggle pause", nil, func([]string) error {
		s.TogglePause()
		s.Log.Logf("simulation %s", s.State())
		return nil
	})

	spawn := commands.NewFlagSet("spawn")
	sx := spawn.Float64("x", math.NaN(), "x position (default: canvas center)")
	sy := spawn.Float64("y", math.NaN(), "y position (default: top of canvas)")
	sr := spawn.Float64("r", 0, "radius (default: random)")
	reg.Register("spawn", "spawn -x X -y Y -r R: add a body", spawn, func([]string) error {
		p := mgl64.Vec2{s.Config.Scene.Width / 2, s.Config.Scene.Height / 8}
		if !math.IsNaN(*sx) {
			p[0] = *sx
		}
		if !math.IsNaN(*sy) {
			p[1] = *sy
		}
		r := *sr
		if r == 0 {
			r = s.RandomRadius()
		}
		i, err := s.Spawn(p, r)
		if err != nil {
			return fmt.Errorf("spawn: %w", err)
		}
		s.Log.Logf("spawned body %d r=%.1f at (%.0f, %.0f)", i, r, p.X(), p.Y())
		return nil
	})

	grav := commands.NewFlagSet("gravity")
	gx := grav.Float64("x", 0, "x component")
	gy := grav.Float64("y", 980, "y component")
	reg.Register("gravity", "gravity -x X -y Y: set gravity", grav, func([]string) error {
		s.Inputs.Gravity = mgl64.Vec2{*gx, *gy}
		s.Log.Logf("gravity (%.0f, %.0f)", *gx, *gy)
		return nil
	})

	tilt := commands.NewFlagSet("tilt")
	deg := tilt.Float64("deg", 0, "angle from straight down, degrees")
	reg.Register("tilt", "tilt -deg D: rotate gravity", tilt, func([]string) error {
		s.Inputs.Gravity = Tilt(s.Inputs.Gravity, *deg)
		s.Log.Logf("gravity (%.0f, %.0f)", s.Inputs.Gravity.X(), s.Inputs.Gravity.Y())
		return nil
	})

	reset := commands.NewFlagSet("reset")
	n := reset.Int("n", -1, "body count (default: configured)")
	reg.Register("reset", "reset -n N: rebuild the bodies", reset, func([]string) error {
		count := *n
		if count < 0 {
			count = s.Config.Scene.Bodies
		}
		s.Reset(count)
		return nil
	})

	reg.Register("stats", "print body count, energy and state", nil, func([]string) error {
		s.Log.Log(s.Stats())
		return nil
	})

	reg.Register("overlay", "overlay fps|mem|velocity|stats: toggle a display overlay", nil, func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("overlay: want one of fps, mem, velocity, stats")
		}
		on, err := s.toggleOverlay(args[0])
		if err != nil {
			return err
		}
		s.Log.Logf("overlay %s %v", args[0], on)
		return nil
	})

	reg.Register("save", "save display preferences", nil, func([]string) error {
		if err := engineconfig.Save(s.Prefs); err != nil {
			return fmt.Errorf("save prefs: %w", err)
		}
		s.Log.Logf("saved %s", engineconfig.EngineConfigPath)
		return nil
	})

	return reg
}

// Run parses and executes one console line, logging the line and any error.
func (s *Session) Run(reg *commands.Registry, line string) {
	args, ok := commands.Parse(line)
	if !ok {
		return
	}
	s.Log.Log("> " + strings.Join(args, " "))
	if err := reg.Execute(args); err != nil {
		s.Log.Log(err.Error())
	}
}

// Stats summarizes the simulation in one line.
func (s *Session) Stats() string {
	return fmt.Sprintf("bodies=%d walls=%d energy=%.1f state=%s", s.World.Len(), len(s.World.Walls()), s.World.KineticEnergy(), s.State())
}

func (s *Session) toggleOverlay(name string) (bool, error) {
	var flag *bool
	switch name {
	case "fps":
		flag = &s.Prefs.ShowFPS
	case "mem":
		flag = &s.Prefs.ShowMemAlloc
	case "velocity":
		flag = &s.Prefs.ShowVelocity
	case "stats":
		flag = &s.Prefs.ShowStats
	default:
		return false, fmt.Errorf("overlay: unknown overlay %q", name)
	}
	*flag = !*flag
	return *flag, nil
}

// Tilt returns a gravity of the same magnitude as g rotated deg degrees from straight down
// (positive tilts toward +x).
func Tilt(g mgl64.Vec2, deg float64) mgl64.Vec2 {
	mag := g.Len()
	rad := mgl64.DegToRad(deg)
	return mgl64.Vec2{mag * math.Sin(rad), mag * math.Cos(rad)}
}

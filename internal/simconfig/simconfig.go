package simconfig

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"ballpit/internal/env"
	"ballpit/internal/physics"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the YAML config file, relative to the process working directory.
const DefaultPath = "config/physics.yaml"

// Environment overrides.
const (
	EnvConfig = "BALLPIT_CONFIG"
	EnvSeed   = "BALLPIT_SEED"
	EnvBodies = "BALLPIT_BODIES"
)

// Solver mirrors physics.Params in YAML form.
type Solver struct {
	Substeps         int           `yaml:"substeps"`
	Iterations       int           `yaml:"iterations"`
	Damping          float64       `yaml:"damping"`
	WallDamping      float64       `yaml:"wall_damping"`
	Restitution      float64       `yaml:"restitution"`
	SpringK          float64       `yaml:"spring_k"`
	GrabRadiusFactor float64       `yaml:"grab_radius_factor"`
	AttractStrength  float64       `yaml:"attract_strength"`
	AttractMaxAccel  float64       `yaml:"attract_max_accel"`
	FlickScale       float64       `yaml:"flick_scale"`
	FlickWindow      time.Duration `yaml:"flick_window"`
	MaxFrameDelta    float64       `yaml:"max_frame_delta"`
}

// WallDef is a wall with endpoints given as fractions of the canvas size.
type WallDef struct {
	From      [2]float64 `yaml:"from"`
	To        [2]float64 `yaml:"to"`
	Thickness float64    `yaml:"thickness"`
}

// Scene describes the canvas and its initial contents.
type Scene struct {
	Width      float64    `yaml:"width"`
	Height     float64    `yaml:"height"`
	Gravity    [2]float64 `yaml:"gravity"`
	Bodies     int        `yaml:"bodies"`
	RadiusMin  float64    `yaml:"radius_min"`
	RadiusSpan float64    `yaml:"radius_span"`
	Palette    []string   `yaml:"palette"`
	Seed       uint64     `yaml:"seed"` // 0 picks a time-based seed
	Walls      []WallDef  `yaml:"walls"`
}

// Config is the full simulation configuration.
type Config struct {
	Solver Solver `yaml:"solver"`
	Scene  Scene  `yaml:"scene"`
}

// Default returns the reference configuration: a framed 1280x720 canvas with two shelves.
func Default() Config {
	p := physics.DefaultParams()
	return Config{
		Solver: Solver{
			Substeps:         p.Substeps,
			Iterations:       p.Iterations,
			Damping:          p.Damping,
			WallDamping:      p.WallDamping,
			Restitution:      p.Restitution,
			SpringK:          p.SpringK,
			GrabRadiusFactor: p.GrabRadiusFactor,
			AttractStrength:  p.AttractStrength,
			AttractMaxAccel:  p.AttractMaxAccel,
			FlickScale:       p.FlickScale,
			FlickWindow:      p.FlickWindow,
			MaxFrameDelta:    p.MaxFrameDelta,
		},
		Scene: Scene{
			Width:      1280,
			Height:     720,
			Gravity:    [2]float64{0, 980},
			Bodies:     150,
			RadiusMin:  6,
			RadiusSpan: 20,
			Palette:    []string{"#e63946", "#f1faee", "#a8dadc", "#457b9d", "#ffb703"},
			Walls: []WallDef{
				{From: [2]float64{0, 1}, To: [2]float64{1, 1}, Thickness: 20},
				{From: [2]float64{0, 0}, To: [2]float64{0, 1}, Thickness: 20},
				{From: [2]float64{1, 0}, To: [2]float64{1, 1}, Thickness: 20},
				{From: [2]float64{0.1, 0.45}, To: [2]float64{0.45, 0.6}, Thickness: 12},
				{From: [2]float64{0.9, 0.65}, To: [2]float64{0.55, 0.8}, Thickness: 12},
			},
		},
	}
}

// Load reads path over Default(). A missing file returns Default() without error; a malformed
// or invalid file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by BALLPIT_CONFIG (DefaultPath when unset) and applies the
// BALLPIT_SEED and BALLPIT_BODIES overrides.
func LoadFromEnv() (Config, error) {
	cfg, err := Load(env.String(EnvConfig, DefaultPath))
	if err != nil {
		return cfg, err
	}
	if cfg.Scene.Seed, err = env.Uint64(EnvSeed, cfg.Scene.Seed); err != nil {
		return cfg, err
	}
	if cfg.Scene.Bodies, err = env.Int(EnvBodies, cfg.Scene.Bodies); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Save writes cfg as YAML, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the ranges the solver relies on.
func (c Config) Validate() error {
	s := c.Solver
	switch {
	case s.Substeps <= 0:
		return fmt.Errorf("solver.substeps must be positive, got %d", s.Substeps)
	case s.Iterations <= 0:
		return fmt.Errorf("solver.iterations must be positive, got %d", s.Iterations)
	case s.Damping <= 0 || s.Damping > 1:
		return fmt.Errorf("solver.damping must be in (0, 1], got %v", s.Damping)
	case s.WallDamping < 0 || s.Restitution < 0:
		return fmt.Errorf("solver.wall_damping and solver.restitution must be non-negative")
	case s.SpringK < 0 || s.SpringK > 1:
		return fmt.Errorf("solver.spring_k must be in [0, 1], got %v", s.SpringK)
	}
	sc := c.Scene
	switch {
	case sc.Width <= 0 || sc.Height <= 0:
		return fmt.Errorf("scene size must be positive, got %vx%v", sc.Width, sc.Height)
	case sc.Bodies < 0:
		return fmt.Errorf("scene.bodies must not be negative, got %d", sc.Bodies)
	case sc.RadiusMin <= 0 || sc.RadiusSpan < 0:
		return fmt.Errorf("scene.radius_min must be positive and radius_span non-negative")
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	for i, w := range sc.Walls {
		if _, err := c.wall(w); err != nil {
			return fmt.Errorf("scene.walls[%d]: %w", i, err)
		}
	}
	return nil
}

// Params converts the solver section.
func (c Config) Params() physics.Params {
	s := c.Solver
	return physics.Params{
		Substeps:         s.Substeps,
		Iterations:       s.Iterations,
		Damping:          s.Damping,
		WallDamping:      s.WallDamping,
		Restitution:      s.Restitution,
		SpringK:          s.SpringK,
		GrabRadiusFactor: s.GrabRadiusFactor,
		AttractStrength:  s.AttractStrength,
		AttractMaxAccel:  s.AttractMaxAccel,
		FlickScale:       s.FlickScale,
		FlickWindow:      s.FlickWindow,
		MaxFrameDelta:    s.MaxFrameDelta,
	}
}

// Gravity returns the scene gravity as a vector.
func (c Config) Gravity() mgl64.Vec2 {
	return mgl64.Vec2{c.Scene.Gravity[0], c.Scene.Gravity[1]}
}

// Palette parses the scene palette ("#rrggbb" or "#rrggbbaa") into 0xRRGGBBAA values.
func (c Config) Palette() ([]uint32, error) {
	out := make([]uint32, 0, len(c.Scene.Palette))
	for _, s := range c.Scene.Palette {
		v, err := ParseColor(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". Missing alpha is opaque.
func ParseColor(s string) (uint32, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return 0, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return uint32(v), nil
}

// Placement returns the placement options for the scene section.
func (c Config) Placement() (physics.PlacementOptions, error) {
	palette, err := c.Palette()
	if err != nil {
		return physics.PlacementOptions{}, err
	}
	opts := physics.DefaultPlacement(c.Scene.Width, c.Scene.Height)
	opts.Count = c.Scene.Bodies
	opts.RadiusMin = c.Scene.RadiusMin
	opts.RadiusSpan = c.Scene.RadiusSpan
	opts.Palette = palette
	return opts, nil
}

func (c Config) wall(d WallDef) (physics.Wall, error) {
	w, h := c.Scene.Width, c.Scene.Height
	return physics.NewWall(
		mgl64.Vec2{d.From[0] * w, d.From[1] * h},
		mgl64.Vec2{d.To[0] * w, d.To[1] * h},
		d.Thickness,
	)
}

// Walls builds the scene's walls in canvas coordinates.
func (c Config) Walls() ([]physics.Wall, error) {
	out := make([]physics.Wall, 0, len(c.Scene.Walls))
	for i, d := range c.Scene.Walls {
		w, err := c.wall(d)
		if err != nil {
			return nil, fmt.Errorf("wall %d: %w", i, err)
		}
		out = append(out, w)
	}
	return out, nil
}

// Rand returns the scene's random source. Seed 0 is replaced by the current time.
func (c Config) Rand() *rand.Rand {
	seed := c.Scene.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Build creates a world with the configured walls and randomly placed bodies.
// It returns the world and the number of bodies placed.
func (c Config) Build(rng *rand.Rand, log physics.Logger) (*physics.World, int, error) {
	walls, err := c.Walls()
	if err != nil {
		return nil, 0, err
	}
	opts, err := c.Placement()
	if err != nil {
		return nil, 0, err
	}
	w := physics.NewWorld(c.Params())
	w.SetLogger(log)
	for _, wall := range walls {
		w.AddWall(wall)
	}
	return w, w.Populate(rng, opts), nil
}

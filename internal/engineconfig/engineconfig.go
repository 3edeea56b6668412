package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// EngineConfigPath is the path to the display prefs file, relative to the process working directory.
const EngineConfigPath = "config/engine.json"

// EnginePrefs holds frontend-only preferences (overlays, window size). Persisted across runs.
// Simulation state is never saved here.
type EnginePrefs struct {
	ShowFPS      bool `json:"show_fps"`
	ShowMemAlloc bool `json:"show_memalloc"`
	ShowVelocity bool `json:"show_velocity"`
	ShowStats    bool `json:"show_stats"`
	WindowWidth  int  `json:"window_width"`
	WindowHeight int  `json:"window_height"`
	TargetFPS    int  `json:"target_fps"`
}

// Default returns default preferences (overlays off, 1280x720 at 60 FPS).
func Default() EnginePrefs {
	return EnginePrefs{
		ShowStats:    true,
		WindowWidth:  1280,
		WindowHeight: 720,
		TargetFPS:    60,
	}
}

// Load reads preferences from EngineConfigPath. See LoadFrom.
func Load() (EnginePrefs, error) {
	return LoadFrom(EngineConfigPath)
}

// LoadFrom reads preferences from path. If the file is missing or invalid, it returns
// Default() and does not create a file. Zero sizes fall back to the defaults.
func LoadFrom(path string) (EnginePrefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	d := Default()
	if p.WindowWidth <= 0 || p.WindowHeight <= 0 {
		p.WindowWidth, p.WindowHeight = d.WindowWidth, d.WindowHeight
	}
	if p.TargetFPS <= 0 {
		p.TargetFPS = d.TargetFPS
	}
	return p, nil
}

// Save writes preferences to EngineConfigPath.
func Save(p EnginePrefs) error {
	return SaveTo(EngineConfigPath, p)
}

// SaveTo writes preferences to path, creating the directory if needed.
func SaveTo(path string, p EnginePrefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

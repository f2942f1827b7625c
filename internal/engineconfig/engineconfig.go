package engineconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// EngineConfigPath is the path to the engine config file, relative to the process working directory.
const EngineConfigPath = "config/engine.json"

// EnginePrefs holds window and debug preferences. Persisted across runs by the dev console.
// Site content is separate (see package content).
type EnginePrefs struct {
	ShowFPS      bool   `json:"show_fps"`
	ShowMemAlloc bool   `json:"show_memalloc"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int32  `json:"target_fps"`
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	Seed         uint64 `json:"seed,omitempty"` // 0 = random tile placement each run
	Font         string `json:"font,omitempty"` // family searched under assets/fonts; empty = Go Bold
}

// Default returns default engine preferences (debug overlays off, 60 FPS, 1280×720 window).
func Default() EnginePrefs {
	return EnginePrefs{
		ShowFPS:      false,
		ShowMemAlloc: false,
		Fullscreen:   false,
		TargetFPS:    60,
		WindowWidth:  1280,
		WindowHeight: 720,
	}
}

// Load reads engine preferences from config/engine.json. If the file is missing or invalid,
// returns Default() and does not create a file.
func Load() (EnginePrefs, error) {
	return LoadFrom(EngineConfigPath)
}

// LoadFrom is Load for an explicit path. Fields missing from the file keep their defaults.
func LoadFrom(path string) (EnginePrefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), nil
	}
	p := Default()
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	if p.TargetFPS <= 0 {
		p.TargetFPS = 60
	}
	if p.WindowWidth <= 0 || p.WindowHeight <= 0 {
		p.WindowWidth, p.WindowHeight = 1280, 720
	}
	return p, nil
}

// Save writes engine preferences to config/engine.json, creating the config directory if needed.
func Save(p EnginePrefs) error {
	return SaveTo(EngineConfigPath, p)
}

// SaveTo is Save for an explicit path.
func SaveTo(path string, p EnginePrefs) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

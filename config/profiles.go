package config

import (
	"fmt"
	"time"

	"github.com/milk9111/flycam/prefabs"
)

const DefaultProfile = "flycam"

var profiles = map[string]func(*Config){
	// Free look, escape frees the pointer.
	"flycam": func(c *Config) {},
	// Free look, escape exits.
	"flycam-quit": func(c *Config) {
		c.Camera.Policy = "quit_on_escape"
	},
	// High vantage point, default orientation.
	"overview": func(c *Config) {
		c.Camera.Position = prefabs.Vec3Spec{X: 0, Y: 20, Z: 10}
		c.Camera.LookAt = nil
	},
	// Fixed camera, no mouse look.
	"static": func(c *Config) {
		c.Camera.FlyControl = false
		c.Camera.Position = prefabs.Vec3Spec{X: 5, Y: 5, Z: 5}
		c.Camera.LookAt = nil
	},
}

// Default is the "flycam" profile.
func Default() *Config {
	origin := prefabs.Vec3Spec{}
	up := prefabs.Vec3Spec{Y: 1}
	return &Config{
		Profile: DefaultProfile,
		Window: WindowConfig{
			Title:  "flycam",
			Width:  1024,
			Height: 768,
		},
		Frame: FrameConfig{
			TargetRate:       144,
			SleepGranularity: 2 * time.Millisecond,
			VSync:            true,
		},
		Camera: CameraConfig{
			FlyControl: true,
			Policy:     "release_on_escape",
			Position:   prefabs.Vec3Spec{X: 0, Y: 2, Z: 3},
			LookAt:     &origin,
			Up:         &up,
			Speed:      5,
			Sensitivity: SensitivityConfig{
				Horizontal: 0.1,
				Vertical:   0.1,
			},
			PitchLimit: 89,
		},
		Bindings: BindingsConfig{
			MoveX:    AxisBinding{Negative: []string{"A", "ArrowLeft"}, Positive: []string{"D", "ArrowRight"}},
			MoveY:    AxisBinding{Negative: []string{"ShiftLeft", "Q"}, Positive: []string{"Space", "E"}},
			MoveZ:    AxisBinding{Negative: []string{"W", "ArrowUp"}, Positive: []string{"S", "ArrowDown"}},
			CopyPose: []string{"F2"},
		},
		Scene: SceneConfig{
			Camera:  "camera.yaml",
			Prefabs: []string{"cube.yaml"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Profile returns the defaults for a named profile. The empty name is the
// default profile.
func Profile(name string) (*Config, error) {
	if name == "" {
		name = DefaultProfile
	}
	apply, ok := profiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownProfile, name, ProfileNames())
	}
	cfg := Default()
	cfg.Profile = name
	apply(cfg)
	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"time"

	"github.com/milk9111/flycam/camera"
	"github.com/milk9111/flycam/prefabs"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Profile  string         `yaml:"profile"`
	Window   WindowConfig   `yaml:"window"`
	Frame    FrameConfig    `yaml:"frame"`
	Camera   CameraConfig   `yaml:"camera"`
	Bindings BindingsConfig `yaml:"bindings"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// FrameConfig caps the frame rate. SleepGranularity is the longest single
// sleep the pacer takes before re-checking the deadline.
type FrameConfig struct {
	TargetRate       int           `yaml:"target_rate"`
	SleepGranularity time.Duration `yaml:"sleep_granularity"`
	VSync            bool          `yaml:"vsync"`
}

type CameraConfig struct {
	FlyControl  bool              `yaml:"fly_control"`
	Policy      string            `yaml:"policy"`
	Position    prefabs.Vec3Spec  `yaml:"position"`
	LookAt      *prefabs.Vec3Spec `yaml:"look_at"`
	Up          *prefabs.Vec3Spec `yaml:"up"`
	Speed       float64           `yaml:"speed"`
	Sensitivity SensitivityConfig `yaml:"sensitivity"`
	PitchLimit  float64           `yaml:"pitch_limit"`
	InvertY     bool              `yaml:"invert_y"`
}

type SensitivityConfig struct {
	Horizontal float64 `yaml:"horizontal"`
	Vertical   float64 `yaml:"vertical"`
}

// AxisBinding lists key names pushing an axis towards -1 and +1.
type AxisBinding struct {
	Negative []string `yaml:"negative"`
	Positive []string `yaml:"positive"`
}

type BindingsConfig struct {
	MoveX    AxisBinding `yaml:"move_x"`
	MoveY    AxisBinding `yaml:"move_y"`
	MoveZ    AxisBinding `yaml:"move_z"`
	CopyPose []string    `yaml:"copy_pose"`
}

type SceneConfig struct {
	Camera  string   `yaml:"camera"`
	Prefabs []string `yaml:"prefabs"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var ErrUnknownProfile = errors.New("config: unknown profile")

// Load reads path on top of the defaults of the profile it names. A
// non-empty profile argument wins over the file's own profile key.
func Load(path, profile string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var head struct {
		Profile string `yaml:"profile"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if profile == "" {
		profile = head.Profile
	}

	cfg, err := Profile(profile)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	cfg.Profile = profile
	if cfg.Profile == "" {
		cfg.Profile = DefaultProfile
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if _, err := camera.ParseCapturePolicy(c.Camera.Policy); err != nil {
		errs = append(errs, err)
	}
	if c.Camera.Speed < 0 || !finite(c.Camera.Speed) {
		errs = append(errs, fmt.Errorf("camera.speed must be a non-negative number, got %v", c.Camera.Speed))
	}
	if !finite(c.Camera.Sensitivity.Horizontal) || !finite(c.Camera.Sensitivity.Vertical) {
		errs = append(errs, errors.New("camera.sensitivity must be finite"))
	}
	if c.Camera.PitchLimit < 0 || c.Camera.PitchLimit >= 90 {
		errs = append(errs, fmt.Errorf("camera.pitch_limit must be in [0, 90), got %v", c.Camera.PitchLimit))
	}
	if c.Frame.TargetRate <= 0 {
		errs = append(errs, fmt.Errorf("frame.target_rate must be positive, got %d", c.Frame.TargetRate))
	}
	if c.Frame.SleepGranularity < 0 {
		errs = append(errs, fmt.Errorf("frame.sleep_granularity must not be negative, got %v", c.Frame.SleepGranularity))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Scene.Camera == "" {
		errs = append(errs, errors.New("scene.camera must name a prefab"))
	}
	return errors.Join(errs...)
}

// CapturePolicy returns the parsed policy. Validate has already rejected
// unknown names for loaded configs.
func (c *Config) CapturePolicy() camera.CapturePolicy {
	p, _ := camera.ParseCapturePolicy(c.Camera.Policy)
	return p
}

func (c *Config) Motion() camera.MotionConfig {
	return camera.MotionConfig{
		Speed: c.Camera.Speed,
		Sensitivity: camera.Sensitivity{
			Horizontal: c.Camera.Sensitivity.Horizontal,
			Vertical:   c.Camera.Sensitivity.Vertical,
		},
		PitchLimit: c.Camera.PitchLimit,
	}
}

// FrameTime is the fixed step handed to the integrator each update.
func (c *Config) FrameTime() float64 {
	if c.Frame.TargetRate <= 0 {
		return 0
	}
	return 1 / float64(c.Frame.TargetRate)
}

func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

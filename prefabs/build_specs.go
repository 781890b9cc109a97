package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	Position Vec3Spec `yaml:"position"`
	Rotation Vec3Spec `yaml:"rotation"`
	Scale    float64  `yaml:"scale"`
}

type CameraRigComponentSpec struct {
	Position Vec3Spec  `yaml:"position"`
	LookAt   *Vec3Spec `yaml:"look_at"`
	Up       *Vec3Spec `yaml:"up"`
}

type ProjectionComponentSpec struct {
	FovY   float64 `yaml:"fov_y"`
	Aspect float64 `yaml:"aspect"`
	Near   float64 `yaml:"near"`
	Far    float64 `yaml:"far"`
}

type SensitivitySpec struct {
	Horizontal float64 `yaml:"horizontal"`
	Vertical   float64 `yaml:"vertical"`
}

type FlyControlComponentSpec struct {
	Speed       float64         `yaml:"speed"`
	Sensitivity SensitivitySpec `yaml:"sensitivity"`
	PitchLimit  float64         `yaml:"pitch_limit"`
}

type CursorCaptureComponentSpec struct {
	Policy string `yaml:"policy"`
}

type MeshComponentSpec struct {
	Vertices []Vec3Spec `yaml:"vertices"`
	Edges    [][2]int   `yaml:"edges"`
	Color    string     `yaml:"color"`
	Width    float32    `yaml:"width"`
}

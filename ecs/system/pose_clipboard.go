package system

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/milk9111/flycam/camera"
	"github.com/milk9111/flycam/ecs"
	"github.com/milk9111/flycam/ecs/component"
	"github.com/milk9111/flycam/prefabs"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

// PoseClipboardSystem copies the camera pose as a config snippet when the
// copy binding is pressed. Without a usable clipboard it warns once and
// stays quiet after that.
type PoseClipboardSystem struct {
	write    func([]byte) error
	disabled bool
}

func NewPoseClipboardSystem() *PoseClipboardSystem {
	return &PoseClipboardSystem{write: writeClipboard}
}

func (s *PoseClipboardSystem) Update(w *ecs.World) {
	if w == nil || s.disabled {
		return
	}

	ecs.ForEach2(w, component.CameraRigComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, rig *component.CameraRig, input *component.Input) {
		if !input.CopyPose || s.disabled {
			return
		}
		snippet, err := FormatPose(rig.Rig.CurrentPose())
		if err != nil {
			slog.Error("pose clipboard: format", "err", err)
			return
		}
		if err := s.write(snippet); err != nil {
			slog.Warn("pose clipboard: disabled", "err", err)
			s.disabled = true
			return
		}
		slog.Info("camera pose copied", "entity", e)
	})
}

type poseSnippet struct {
	Camera struct {
		Position prefabs.Vec3Spec `yaml:"position"`
		LookAt   prefabs.Vec3Spec `yaml:"look_at"`
	} `yaml:"camera"`
}

// FormatPose renders pose as the camera section of a config file. The look
// target is one unit along the view direction.
func FormatPose(pose camera.Pose) ([]byte, error) {
	var s poseSnippet
	s.Camera.Position = roundedVec3(pose.Position.X(), pose.Position.Y(), pose.Position.Z())
	target := pose.Position.Add(pose.Forward())
	s.Camera.LookAt = roundedVec3(target.X(), target.Y(), target.Z())

	out, err := yaml.Marshal(&s)
	if err != nil {
		return nil, fmt.Errorf("marshal pose: %w", err)
	}
	return out, nil
}

func roundedVec3(x, y, z float64) prefabs.Vec3Spec {
	r := func(v float64) float64 {
		v = math.Round(v*1000) / 1000
		if v == 0 {
			return 0 // drop negative zero
		}
		return v
	}
	return prefabs.Vec3Spec{X: r(x), Y: r(y), Z: r(z)}
}

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

func writeClipboard(b []byte) error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return clipboardErr
	}
	clipboard.Write(clipboard.FmtText, b)
	return nil
}

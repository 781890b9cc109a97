package system

import (
	"github.com/milk9111/flycam/camera"
	"github.com/milk9111/flycam/ecs"
	"github.com/milk9111/flycam/ecs/component"
)

type FlyControlSystem struct{}

func NewFlyControlSystem() *FlyControlSystem {
	return &FlyControlSystem{}
}

// Update advances every fly-controlled rig by the frame's input. A rig with
// no cursor capture is treated as permanently captured.
func (s *FlyControlSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach3(w,
		component.CameraRigComponent.Kind(),
		component.FlyControlComponent.Kind(),
		component.InputComponent.Kind(),
		func(e ecs.Entity, rig *component.CameraRig, fly *component.FlyControl, input *component.Input) {
			if rig.Rig == nil || !input.Focused {
				return
			}
			mode := camera.Captured
			if capture, ok := ecs.Get(w, e, component.CursorCaptureComponent.Kind()); ok && capture.Controller != nil {
				mode = capture.Controller.Mode()
			}
			rig.Rig.Advance(mode, input.Frame, fly.Motion)
		})
}

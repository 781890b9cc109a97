package entity

import (
	"fmt"

	"github.com/milk9111/flycam/camera"
	"github.com/milk9111/flycam/config"
	"github.com/milk9111/flycam/ecs"
	"github.com/milk9111/flycam/ecs/component"
)

// NewCamera builds the camera prefab named by cfg and overrides its pose,
// motion and capture policy with the configured values. Without fly control
// the camera keeps its start pose and has no capture state.
func NewCamera(w *ecs.World, cfg *config.Config, cursor camera.CursorControl) (ecs.Entity, error) {
	e, err := BuildEntity(w, cfg.Scene.Camera, WithCursor(cursor))
	if err != nil {
		return 0, fmt.Errorf("camera: %w", err)
	}
	if !ecs.Has(w, e, component.CameraTagComponent.Kind()) {
		if err := ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
			return 0, fmt.Errorf("camera: add camera tag: %w", err)
		}
	}
	if !ecs.Has(w, e, component.InputComponent.Kind()) {
		if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
			return 0, fmt.Errorf("camera: add input: %w", err)
		}
	}

	rig := camera.NewRig()
	rig.Initialize(cfg.Camera.Position.Vec3(), vec3Ptr(cfg.Camera.LookAt), upOrDefault(cfg.Camera.Up))
	if err := ecs.Add(w, e, component.CameraRigComponent.Kind(), &component.CameraRig{Rig: rig}); err != nil {
		return 0, fmt.Errorf("camera: override rig: %w", err)
	}

	if !cfg.Camera.FlyControl {
		ecs.Remove(w, e, component.FlyControlComponent.Kind())
		ecs.Remove(w, e, component.CursorCaptureComponent.Kind())
		return e, nil
	}

	if err := ecs.Add(w, e, component.FlyControlComponent.Kind(), &component.FlyControl{
		Motion: cfg.Motion(),
	}); err != nil {
		return 0, fmt.Errorf("camera: override fly control: %w", err)
	}
	if err := ecs.Add(w, e, component.CursorCaptureComponent.Kind(), &component.CursorCapture{
		Controller: camera.NewCaptureController(cfg.CapturePolicy(), cursor),
	}); err != nil {
		return 0, fmt.Errorf("camera: override cursor capture: %w", err)
	}
	return e, nil
}

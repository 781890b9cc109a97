package entity

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/flycam/camera"
	"github.com/milk9111/flycam/ecs"
	"github.com/milk9111/flycam/ecs/component"
	"github.com/milk9111/flycam/prefabs"
	"golang.org/x/image/colornames"
)

type buildContext struct {
	PrefabPath string
	Cursor     camera.CursorControl
}

// BuildOption adjusts how a prefab is turned into an entity.
type BuildOption func(*buildContext)

// WithCursor hands the cursor collaborator to cursor_capture builders.
func WithCursor(cursor camera.CursorControl) BuildOption {
	return func(ctx *buildContext) {
		ctx.Cursor = cursor
	}
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"camera_tag":     addCameraTag,
	"transform":      addTransform,
	"camera_rig":     addCameraRig,
	"projection":     addProjection,
	"fly_control":    addFlyControl,
	"cursor_capture": addCursorCapture,
	"input":          addInput,
	"mesh":           addMesh,
}

var componentBuildOrder = []string{
	"camera_tag",
	"transform",
	"camera_rig",
	"projection",
	"fly_control",
	"cursor_capture",
	"input",
	"mesh",
}

func BuildEntity(w *ecs.World, prefabPath string, opts ...BuildOption) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	ctx := &buildContext{PrefabPath: prefabPath}
	for _, opt := range opts {
		opt(ctx)
	}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		if _, ok := componentRegistry[k]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, k)
		}
		remaining[k] = v
	}

	e := ecs.CreateEntity(w)
	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := componentRegistry[name](w, e, remaining[name], ctx); err != nil {
				ecs.DestroyEntity(w, e)
				return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
			}
		}
	}

	return e, nil
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.Scale == 0 {
		spec.Scale = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: spec.Position.Vec3(),
		Rotation: spec.Rotation.Vec3(),
		Scale:    spec.Scale,
	})
}

type cameraRigSpec = prefabs.CameraRigComponentSpec

func addCameraRig(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraRigSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera_rig spec: %w", err)
	}

	rig := camera.NewRig()
	rig.Initialize(spec.Position.Vec3(), vec3Ptr(spec.LookAt), upOrDefault(spec.Up))
	return ecs.Add(w, e, component.CameraRigComponent.Kind(), &component.CameraRig{Rig: rig})
}

type projectionSpec = prefabs.ProjectionComponentSpec

func addProjection(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[projectionSpec](raw)
	if err != nil {
		return fmt.Errorf("decode projection spec: %w", err)
	}
	if spec.FovY <= 0 {
		spec.FovY = 0.87
	}
	if spec.Near <= 0 {
		spec.Near = 0.1
	}
	if spec.Far <= spec.Near {
		spec.Far = 2000
	}
	return ecs.Add(w, e, component.ProjectionComponent.Kind(), &component.Projection{
		FovY:   spec.FovY,
		Aspect: spec.Aspect,
		Near:   spec.Near,
		Far:    spec.Far,
	})
}

type flyControlSpec = prefabs.FlyControlComponentSpec

func addFlyControl(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[flyControlSpec](raw)
	if err != nil {
		return fmt.Errorf("decode fly_control spec: %w", err)
	}
	return ecs.Add(w, e, component.FlyControlComponent.Kind(), &component.FlyControl{
		Motion: camera.MotionConfig{
			Speed: spec.Speed,
			Sensitivity: camera.Sensitivity{
				Horizontal: spec.Sensitivity.Horizontal,
				Vertical:   spec.Sensitivity.Vertical,
			},
			PitchLimit: spec.PitchLimit,
		},
	})
}

type cursorCaptureSpec = prefabs.CursorCaptureComponentSpec

func addCursorCapture(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cursorCaptureSpec](raw)
	if err != nil {
		return fmt.Errorf("decode cursor_capture spec: %w", err)
	}
	policy, err := camera.ParseCapturePolicy(spec.Policy)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.CursorCaptureComponent.Kind(), &component.CursorCapture{
		Controller: camera.NewCaptureController(policy, ctx.Cursor),
	})
}

type meshSpec = prefabs.MeshComponentSpec

func addMesh(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[meshSpec](raw)
	if err != nil {
		return fmt.Errorf("decode mesh spec: %w", err)
	}

	mesh := component.Mesh{
		Name:     ctx.PrefabPath,
		Vertices: make([]mgl64.Vec3, 0, len(spec.Vertices)),
		Edges:    spec.Edges,
		Color:    colornames.Lightgray,
		Width:    spec.Width,
	}
	for _, v := range spec.Vertices {
		mesh.Vertices = append(mesh.Vertices, v.Vec3())
	}
	for _, edge := range mesh.Edges {
		if edge[0] < 0 || edge[0] >= len(mesh.Vertices) || edge[1] < 0 || edge[1] >= len(mesh.Vertices) {
			return fmt.Errorf("mesh edge %v references a missing vertex (have %d)", edge, len(mesh.Vertices))
		}
	}
	if spec.Color != "" {
		c, err := prefabs.ParseHexColor(spec.Color)
		if err != nil {
			return fmt.Errorf("mesh color: %w", err)
		}
		mesh.Color = c
	}
	if mesh.Width <= 0 {
		mesh.Width = 1
	}

	return ecs.Add(w, e, component.MeshComponent.Kind(), &mesh)
}

func vec3Ptr(v *prefabs.Vec3Spec) *mgl64.Vec3 {
	if v == nil {
		return nil
	}
	out := v.Vec3()
	return &out
}

func upOrDefault(v *prefabs.Vec3Spec) mgl64.Vec3 {
	if v == nil {
		return camera.WorldUp
	}
	return v.Vec3()
}

package system

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/flycam/ecs"
	"github.com/milk9111/flycam/ecs/component"
	"golang.org/x/image/colornames"
)

// ClearColor is the backdrop behind the wireframe, a dark teal.
var ClearColor = color.NRGBA{R: 38, G: 77, B: 77, A: 255}

// RenderSystem draws every mesh as a wireframe through the camera.
type RenderSystem struct {
	camEntity ecs.Entity
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{}
}

// Update is a no-op; the system only draws.
func (r *RenderSystem) Update(w *ecs.World) {}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	screen.Fill(ClearColor)

	if !r.camEntity.Valid() || !w.IsAlive(r.camEntity) {
		camEntity, ok := w.First(component.CameraTagComponent.Kind())
		if !ok {
			return
		}
		r.camEntity = camEntity
	}

	rig, ok := ecs.Get(w, r.camEntity, component.CameraRigComponent.Kind())
	if !ok {
		return
	}
	proj := component.Projection{FovY: 0.87, Near: 0.1, Far: 2000}
	if p, ok := ecs.Get(w, r.camEntity, component.ProjectionComponent.Kind()); ok {
		proj = *p
	}

	bounds := screen.Bounds()
	sw, sh := float64(bounds.Dx()), float64(bounds.Dy())
	if sw == 0 || sh == 0 {
		return
	}
	aspect := proj.Aspect
	if aspect <= 0 {
		aspect = sw / sh
	}
	projection := mgl64.Perspective(proj.FovY, aspect, proj.Near, proj.Far)
	view := rig.Rig.CurrentPose().View()

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.MeshComponent.Kind(), func(e ecs.Entity, t *component.Transform, mesh *component.Mesh) {
		modelView := view.Mul4(modelMatrix(*t))
		viewSpace := make([]mgl64.Vec3, len(mesh.Vertices))
		for i, v := range mesh.Vertices {
			viewSpace[i] = modelView.Mul4x1(v.Vec4(1)).Vec3()
		}

		clr := mesh.Color
		if clr == nil {
			clr = colornames.Lightgray
		}
		width := mesh.Width
		if width <= 0 {
			width = 1
		}

		for _, edge := range mesh.Edges {
			if edge[0] >= len(viewSpace) || edge[1] >= len(viewSpace) {
				continue
			}
			a, b, visible := clipNear(viewSpace[edge[0]], viewSpace[edge[1]], proj.Near)
			if !visible {
				continue
			}
			x0, y0 := projectToScreen(a, projection, sw, sh)
			x1, y1 := projectToScreen(b, projection, sw, sh)
			vector.StrokeLine(screen, x0, y0, x1, y1, width, clr, true)
		}
	})
}

// modelMatrix applies scale, then Z, X and Y rotations, then translation.
func modelMatrix(t component.Transform) mgl64.Mat4 {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	rot := t.Rotation
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(rot.Y()))).
		Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(rot.X()))).
		Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(rot.Z()))).
		Mul4(mgl64.Scale3D(scale, scale, scale))
}

// clipNear trims a view-space segment to the part in front of the near
// plane. The camera looks down -Z, so visible points have z <= -near.
func clipNear(a, b mgl64.Vec3, near float64) (mgl64.Vec3, mgl64.Vec3, bool) {
	plane := -near
	aIn := a.Z() <= plane
	bIn := b.Z() <= plane
	switch {
	case aIn && bIn:
		return a, b, true
	case !aIn && !bIn:
		return a, b, false
	}
	t := (plane - a.Z()) / (b.Z() - a.Z())
	hit := a.Add(b.Sub(a).Mul(t))
	if aIn {
		return a, hit, true
	}
	return hit, b, true
}

// projectToScreen maps a view-space point to pixel coordinates with the
// origin at the top left.
func projectToScreen(p mgl64.Vec3, projection mgl64.Mat4, width, height float64) (float32, float32) {
	clip := projection.Mul4x1(p.Vec4(1))
	w := clip.W()
	if w == 0 {
		w = 1e-9
	}
	ndcX, ndcY := clip.X()/w, clip.Y()/w
	return float32((ndcX + 1) * 0.5 * width), float32((1 - ndcY) * 0.5 * height)
}

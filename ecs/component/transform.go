package component

import "github.com/go-gl/mathgl/mgl64"

// Transform places a mesh in the world. Cameras use CameraRig instead.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3 // euler degrees, applied Y then X then Z
	Scale    float64
}

var TransformComponent = NewComponent[Transform]()

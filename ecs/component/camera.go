package component

import "github.com/milk9111/flycam/camera"

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]()

// CameraRig holds the rig that owns the camera pose.
type CameraRig struct {
	Rig *camera.Rig
}

var CameraRigComponent = NewComponent[CameraRig]()

// Projection is a perspective projection. Aspect of zero means "use the
// screen's aspect ratio".
type Projection struct {
	FovY   float64 // radians
	Aspect float64
	Near   float64
	Far    float64
}

var ProjectionComponent = NewComponent[Projection]()

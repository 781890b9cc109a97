package component

import "github.com/milk9111/flycam/camera"

// FlyControl marks a camera as driven by mouse look and movement axes.
type FlyControl struct {
	Motion camera.MotionConfig
}

var FlyControlComponent = NewComponent[FlyControl]()

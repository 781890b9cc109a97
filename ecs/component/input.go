package component

import "github.com/milk9111/flycam/camera"

// Input stores the per-frame input gathered from the window.
type Input struct {
	Events   []camera.RawEvent
	Frame    camera.FrameInput
	Focused  bool
	CopyPose bool
}

var InputComponent = NewComponent[Input]()

package component

import "github.com/milk9111/flycam/camera"

// CursorCapture carries the capture state machine. ChangedThisFrame is set by
// the capture system when the mode flipped during the current update.
type CursorCapture struct {
	Controller       *camera.CaptureController
	ChangedThisFrame bool
}

var CursorCaptureComponent = NewComponent[CursorCapture]()

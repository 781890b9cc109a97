package system

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/flycam/camera"
	"github.com/milk9111/flycam/ecs"
	"github.com/milk9111/flycam/ecs/component"
)

const EventCaptureChanged = "capture_changed"

// CaptureChange is the payload of EventCaptureChanged.
type CaptureChange struct {
	Entity ecs.Entity
	From   camera.CaptureMode
	To     camera.CaptureMode
}

// CaptureSystem feeds each frame's signals through the cursor capture state
// machine and raises a QuitRequest when it asks to stop.
type CaptureSystem struct{}

func NewCaptureSystem() *CaptureSystem {
	return &CaptureSystem{}
}

func (s *CaptureSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	quits := map[ecs.Entity]string{}
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		signals := camera.ClassifyAll(input.Events)

		capture, ok := ecs.Get(w, e, component.CursorCaptureComponent.Kind())
		if !ok || capture.Controller == nil {
			// Nothing to release: escape and close both end the session.
			for _, sig := range signals {
				if sig == camera.CloseRequested || sig == camera.EscapeDown {
					quits[e] = quitReason(signals)
					return
				}
			}
			return
		}

		before := capture.Controller.Mode()
		quit := capture.Controller.HandleAll(signals)
		after := capture.Controller.Mode()

		capture.ChangedThisFrame = before != after
		if capture.ChangedThisFrame {
			input.Frame.MouseDelta = mgl64.Vec2{}
			w.Events().Push(ecs.Event{
				Type: EventCaptureChanged,
				Data: CaptureChange{Entity: e, From: before, To: after},
			})
			slog.Info("cursor capture changed", "entity", e, "from", before, "to", after)
		}
		if quit {
			quits[e] = quitReason(signals)
		}
	})

	for e, reason := range quits {
		if ecs.Has(w, e, component.QuitRequestComponent.Kind()) {
			continue
		}
		if err := ecs.Add(w, e, component.QuitRequestComponent.Kind(), &component.QuitRequest{Reason: reason}); err != nil {
			slog.Error("capture system: add quit request", "entity", e, "err", err)
		}
	}
}

func quitReason(signals []camera.Signal) string {
	for _, sig := range signals {
		if sig == camera.CloseRequested {
			return "window closed"
		}
	}
	return "escape"
}

package camera

import (
	"fmt"
	"strings"
)

// CapturePolicy decides what escape does while the cursor is captured.
type CapturePolicy int

const (
	ReleaseOnEscape CapturePolicy = iota
	QuitOnEscape
)

func (p CapturePolicy) String() string {
	switch p {
	case ReleaseOnEscape:
		return "release_on_escape"
	case QuitOnEscape:
		return "quit_on_escape"
	default:
		return fmt.Sprintf("CapturePolicy(%d)", int(p))
	}
}

// ParseCapturePolicy accepts the names produced by String.
func ParseCapturePolicy(s string) (CapturePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "release_on_escape", "release":
		return ReleaseOnEscape, nil
	case "quit_on_escape", "quit":
		return QuitOnEscape, nil
	}
	return 0, fmt.Errorf("camera: unknown capture policy %q", s)
}

type CaptureMode int

const (
	Captured CaptureMode = iota
	Released
)

func (m CaptureMode) String() string {
	if m == Released {
		return "released"
	}
	return "captured"
}

// CursorControl hides or shows the host pointer.
type CursorControl interface {
	SetHidden(hidden bool)
}

// CaptureController owns the capture mode and pushes cursor visibility to
// its CursorControl once per mode change.
type CaptureController struct {
	policy CapturePolicy
	mode   CaptureMode
	cursor CursorControl
}

// NewCaptureController starts in Captured. The cursor may be nil.
func NewCaptureController(policy CapturePolicy, cursor CursorControl) *CaptureController {
	return &CaptureController{
		policy: policy,
		mode:   Captured,
		cursor: cursor,
	}
}

func (c *CaptureController) Policy() CapturePolicy {
	return c.policy
}

func (c *CaptureController) Mode() CaptureMode {
	return c.mode
}

// Handle applies one signal and reports whether it requested quit.
func (c *CaptureController) Handle(sig Signal) (quit bool) {
	if sig.Kind == SignalCloseRequested {
		return true
	}

	switch c.mode {
	case Captured:
		if sig.Kind != SignalKeyDown || sig.Key != KeyEscape {
			return false
		}
		if c.policy == QuitOnEscape {
			return true
		}
		c.setMode(Released)
	case Released:
		if sig.Kind == SignalMouseButtonDown && sig.Button == MouseButtonLeft {
			c.setMode(Captured)
		}
	}
	return false
}

// HandleAll applies signals in order. Signals after a quit are still
// applied so the final mode reflects the whole batch.
func (c *CaptureController) HandleAll(signals []Signal) (quit bool) {
	for _, sig := range signals {
		if c.Handle(sig) {
			quit = true
		}
	}
	return quit
}

func (c *CaptureController) setMode(mode CaptureMode) {
	if c.mode == mode {
		return
	}
	c.mode = mode
	if c.cursor != nil {
		c.cursor.SetHidden(mode == Captured)
	}
}

package system

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/flycam/camera"
	"github.com/milk9111/flycam/config"
	"github.com/milk9111/flycam/ecs"
	"github.com/milk9111/flycam/ecs/component"
)

type axisKeys struct {
	negative []ebiten.Key
	positive []ebiten.Key
}

type keyBindings struct {
	moveX    axisKeys
	moveY    axisKeys
	moveZ    axisKeys
	copyPose []ebiten.Key
}

// InputSystem samples the keyboard, mouse and window once per update and
// writes the result into every Input component.
type InputSystem struct {
	bindings  keyBindings
	frameTime float64
	invertY   bool
	mouse     mouseTracker

	pressed  []ebiten.Key
	released []ebiten.Key
}

func NewInputSystem(cfg *config.Config) (*InputSystem, error) {
	b, err := parseBindings(cfg.Bindings)
	if err != nil {
		return nil, err
	}
	return &InputSystem{
		bindings:  b,
		frameTime: cfg.FrameTime(),
		invertY:   cfg.Camera.InvertY,
	}, nil
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	i.pressed = inpututil.AppendJustPressedKeys(i.pressed[:0])
	i.released = inpututil.AppendJustReleasedKeys(i.released[:0])

	var pressedButtons, releasedButtons []ebiten.MouseButton
	for _, b := range []ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonRight, ebiten.MouseButtonMiddle} {
		if inpututil.IsMouseButtonJustPressed(b) {
			pressedButtons = append(pressedButtons, b)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			releasedButtons = append(releasedButtons, b)
		}
	}

	events := rawEvents(ebiten.IsWindowBeingClosed(), i.pressed, i.released, pressedButtons, releasedButtons)
	focused := ebiten.IsFocused()

	mode := camera.Released
	if e, ok := w.First(component.CursorCaptureComponent.Kind()); ok {
		if capture, ok := ecs.Get(w, e, component.CursorCaptureComponent.Kind()); ok && capture.Controller != nil {
			mode = capture.Controller.Mode()
		}
	}
	cx, cy := ebiten.CursorPosition()
	delta := i.mouse.sample(cx, cy, mode, focused)
	if !i.invertY {
		delta[1] = -delta[1]
	}

	frame := camera.FrameInput{
		Axis: mgl64.Vec3{
			axisValue(ebiten.IsKeyPressed, i.bindings.moveX),
			axisValue(ebiten.IsKeyPressed, i.bindings.moveY),
			axisValue(ebiten.IsKeyPressed, i.bindings.moveZ),
		},
		MouseDelta: delta,
		Elapsed:    i.frameTime,
	}
	copyPose := anyJustPressed(i.pressed, i.bindings.copyPose)

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.Events = append(input.Events[:0], events...)
		input.Frame = frame
		input.Focused = focused
		input.CopyPose = copyPose
	})
}

func parseBindings(cfg config.BindingsConfig) (keyBindings, error) {
	var out keyBindings
	var err error
	if out.moveX, err = parseAxis("move_x", cfg.MoveX); err != nil {
		return out, err
	}
	if out.moveY, err = parseAxis("move_y", cfg.MoveY); err != nil {
		return out, err
	}
	if out.moveZ, err = parseAxis("move_z", cfg.MoveZ); err != nil {
		return out, err
	}
	if out.copyPose, err = parseKeys("copy_pose", cfg.CopyPose); err != nil {
		return out, err
	}
	return out, nil
}

func parseAxis(name string, b config.AxisBinding) (axisKeys, error) {
	neg, err := parseKeys(name+".negative", b.Negative)
	if err != nil {
		return axisKeys{}, err
	}
	pos, err := parseKeys(name+".positive", b.Positive)
	if err != nil {
		return axisKeys{}, err
	}
	return axisKeys{negative: neg, positive: pos}, nil
}

func parseKeys(name string, names []string) ([]ebiten.Key, error) {
	keys := make([]ebiten.Key, 0, len(names))
	for _, n := range names {
		k, ok := keyByName[strings.ToLower(n)]
		if !ok {
			return nil, fmt.Errorf("bindings.%s: unknown key %q", name, n)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

var keyByName = func() map[string]ebiten.Key {
	m := make(map[string]ebiten.Key, int(ebiten.KeyMax)+1)
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		m[strings.ToLower(k.String())] = k
	}
	return m
}()

// axisValue is -1, 0 or +1. Opposite keys held together cancel out.
func axisValue(pressed func(ebiten.Key) bool, keys axisKeys) float64 {
	v := 0.0
	for _, k := range keys.negative {
		if pressed(k) {
			v -= 1
			break
		}
	}
	for _, k := range keys.positive {
		if pressed(k) {
			v += 1
			break
		}
	}
	return v
}

func anyJustPressed(pressed, bound []ebiten.Key) bool {
	for _, p := range pressed {
		for _, b := range bound {
			if p == b {
				return true
			}
		}
	}
	return false
}

func rawEvents(closing bool, pressed, released []ebiten.Key, pressedButtons, releasedButtons []ebiten.MouseButton) []camera.RawEvent {
	var events []camera.RawEvent
	if closing {
		events = append(events, camera.RawEvent{Kind: camera.EventCloseRequested})
	}
	for _, k := range pressed {
		events = append(events, camera.RawEvent{Kind: camera.EventKeyPressed, Key: k.String()})
	}
	for _, k := range released {
		events = append(events, camera.RawEvent{Kind: camera.EventKeyReleased, Key: k.String()})
	}
	for _, b := range pressedButtons {
		if mb, ok := mouseButton(b); ok {
			events = append(events, camera.RawEvent{Kind: camera.EventMouseButtonPressed, Button: mb})
		}
	}
	for _, b := range releasedButtons {
		if mb, ok := mouseButton(b); ok {
			events = append(events, camera.RawEvent{Kind: camera.EventMouseButtonReleased, Button: mb})
		}
	}
	return events
}

func mouseButton(b ebiten.MouseButton) (camera.MouseButton, bool) {
	switch b {
	case ebiten.MouseButtonLeft:
		return camera.MouseButtonLeft, true
	case ebiten.MouseButtonRight:
		return camera.MouseButtonRight, true
	case ebiten.MouseButtonMiddle:
		return camera.MouseButtonMiddle, true
	}
	return 0, false
}

// mouseTracker turns absolute cursor positions into per-frame deltas. The
// first sample after a capture change or focus loss only primes it, so the
// warp the window system applies does not show up as a jump.
type mouseTracker struct {
	primed bool
	mode   camera.CaptureMode
	x, y   int
}

func (m *mouseTracker) sample(x, y int, mode camera.CaptureMode, focused bool) mgl64.Vec2 {
	if !focused || !m.primed || mode != m.mode {
		m.primed = focused
		m.mode = mode
		m.x, m.y = x, y
		return mgl64.Vec2{}
	}
	dx, dy := x-m.x, y-m.y
	m.x, m.y = x, y
	return mgl64.Vec2{float64(dx), float64(dy)}
}

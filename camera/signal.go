package camera

// EventKind identifies a raw window or input event.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventCloseRequested
	EventKeyPressed
	EventKeyReleased
	EventMouseButtonPressed
	EventMouseButtonReleased
)

// MouseButton mirrors the buttons the host reports.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// KeyEscape is the key name reported for the escape key.
const KeyEscape = "Escape"

// RawEvent is a single event polled from the host window.
// Key holds the host's key name and is only meaningful for key events.
type RawEvent struct {
	Kind   EventKind
	Key    string
	Button MouseButton
}

// SignalKind is the semantic meaning of a classified event.
type SignalKind int

const (
	SignalCloseRequested SignalKind = iota + 1
	SignalKeyDown
	SignalMouseButtonDown
)

type Signal struct {
	Kind   SignalKind
	Key    string
	Button MouseButton
}

var (
	CloseRequested      = Signal{Kind: SignalCloseRequested}
	EscapeDown          = Signal{Kind: SignalKeyDown, Key: KeyEscape}
	LeftMouseButtonDown = Signal{Kind: SignalMouseButtonDown, Button: MouseButtonLeft}
)

// Classify maps a raw event to the signal the capture state machine
// understands. Events without a meaning report false.
func Classify(ev RawEvent) (Signal, bool) {
	switch ev.Kind {
	case EventCloseRequested:
		return CloseRequested, true
	case EventKeyPressed:
		if ev.Key == KeyEscape {
			return EscapeDown, true
		}
	case EventMouseButtonPressed:
		if ev.Button == MouseButtonLeft {
			return LeftMouseButtonDown, true
		}
	}
	return Signal{}, false
}

// ClassifyAll classifies a batch, preserving arrival order.
func ClassifyAll(events []RawEvent) []Signal {
	if len(events) == 0 {
		return nil
	}
	out := make([]Signal, 0, len(events))
	for _, ev := range events {
		if sig, ok := Classify(ev); ok {
			out = append(out, sig)
		}
	}
	return out
}

package camera

import "testing"

type cursorRecorder struct {
	calls []bool
}

func (c *cursorRecorder) SetHidden(hidden bool) {
	c.calls = append(c.calls, hidden)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		ev   RawEvent
		want Signal
		ok   bool
	}{
		{"close", RawEvent{Kind: EventCloseRequested}, CloseRequested, true},
		{"escape_pressed", RawEvent{Kind: EventKeyPressed, Key: KeyEscape}, EscapeDown, true},
		{"escape_released", RawEvent{Kind: EventKeyReleased, Key: KeyEscape}, Signal{}, false},
		{"other_key", RawEvent{Kind: EventKeyPressed, Key: "W"}, Signal{}, false},
		{"left_pressed", RawEvent{Kind: EventMouseButtonPressed, Button: MouseButtonLeft}, LeftMouseButtonDown, true},
		{"left_released", RawEvent{Kind: EventMouseButtonReleased, Button: MouseButtonLeft}, Signal{}, false},
		{"right_pressed", RawEvent{Kind: EventMouseButtonPressed, Button: MouseButtonRight}, Signal{}, false},
		{"unknown", RawEvent{}, Signal{}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := Classify(c.ev)
			if ok != c.ok || got != c.want {
				t.Fatalf("Classify(%+v) = %+v, %v; want %+v, %v", c.ev, got, ok, c.want, c.ok)
			}
		})
	}
}

func TestClassifyAllKeepsOrder(t *testing.T) {
	got := ClassifyAll([]RawEvent{
		{Kind: EventMouseButtonPressed, Button: MouseButtonLeft},
		{Kind: EventKeyPressed, Key: "A"},
		{Kind: EventKeyPressed, Key: KeyEscape},
		{Kind: EventCloseRequested},
	})
	want := []Signal{LeftMouseButtonDown, EscapeDown, CloseRequested}
	if len(got) != len(want) {
		t.Fatalf("expected %d signals, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("signal %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCaptureTransitions(t *testing.T) {
	cases := []struct {
		name     string
		policy   CapturePolicy
		start    CaptureMode
		signal   Signal
		wantMode CaptureMode
		wantQuit bool
		wantCurs []bool
	}{
		{"captured_escape_release", ReleaseOnEscape, Captured, EscapeDown, Released, false, []bool{false}},
		{"captured_escape_quit", QuitOnEscape, Captured, EscapeDown, Captured, true, nil},
		{"captured_close_release_policy", ReleaseOnEscape, Captured, CloseRequested, Captured, true, nil},
		{"captured_close_quit_policy", QuitOnEscape, Captured, CloseRequested, Captured, true, nil},
		{"captured_click", ReleaseOnEscape, Captured, LeftMouseButtonDown, Captured, false, nil},
		{"released_click", ReleaseOnEscape, Released, LeftMouseButtonDown, Captured, false, []bool{true}},
		{"released_click_quit_policy", QuitOnEscape, Released, LeftMouseButtonDown, Captured, false, []bool{true}},
		{"released_close", ReleaseOnEscape, Released, CloseRequested, Released, true, nil},
		{"released_escape", ReleaseOnEscape, Released, EscapeDown, Released, false, nil},
		{"released_escape_quit_policy", QuitOnEscape, Released, EscapeDown, Released, false, nil},
		{"released_right_click", ReleaseOnEscape, Released, Signal{Kind: SignalMouseButtonDown, Button: MouseButtonRight}, Released, false, nil},
		{"captured_other_key", ReleaseOnEscape, Captured, Signal{Kind: SignalKeyDown, Key: "Q"}, Captured, false, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cursor := &cursorRecorder{}
			ctrl := NewCaptureController(c.policy, cursor)
			ctrl.mode = c.start

			quit := ctrl.Handle(c.signal)
			if quit != c.wantQuit {
				t.Fatalf("quit = %v, want %v", quit, c.wantQuit)
			}
			if ctrl.Mode() != c.wantMode {
				t.Fatalf("mode = %v, want %v", ctrl.Mode(), c.wantMode)
			}
			if len(cursor.calls) != len(c.wantCurs) {
				t.Fatalf("cursor calls = %v, want %v", cursor.calls, c.wantCurs)
			}
			for i := range c.wantCurs {
				if cursor.calls[i] != c.wantCurs[i] {
					t.Fatalf("cursor calls = %v, want %v", cursor.calls, c.wantCurs)
				}
			}
		})
	}
}

func TestRepeatedEscapeReleasesOnce(t *testing.T) {
	cursor := &cursorRecorder{}
	ctrl := NewCaptureController(ReleaseOnEscape, cursor)

	for i := 0; i < 5; i++ {
		if ctrl.Handle(EscapeDown) {
			t.Fatalf("escape should not quit under %v", ReleaseOnEscape)
		}
	}
	if ctrl.Mode() != Released {
		t.Fatalf("expected released, got %v", ctrl.Mode())
	}
	if len(cursor.calls) != 1 || cursor.calls[0] {
		t.Fatalf("expected exactly one show-cursor call, got %v", cursor.calls)
	}
}

func TestQuitOnEscapeNeverReleases(t *testing.T) {
	cursor := &cursorRecorder{}
	ctrl := NewCaptureController(QuitOnEscape, cursor)

	for i := 0; i < 3; i++ {
		if !ctrl.Handle(EscapeDown) {
			t.Fatalf("escape %d should quit", i)
		}
		if ctrl.Mode() != Captured {
			t.Fatalf("mode changed to %v", ctrl.Mode())
		}
	}
	if len(cursor.calls) != 0 {
		t.Fatalf("unexpected cursor calls %v", cursor.calls)
	}
}

func TestEscapeThenClickRoundTrip(t *testing.T) {
	cursor := &cursorRecorder{}
	ctrl := NewCaptureController(ReleaseOnEscape, cursor)

	ctrl.Handle(EscapeDown)
	if ctrl.Mode() != Released {
		t.Fatalf("expected released after escape, got %v", ctrl.Mode())
	}
	ctrl.Handle(LeftMouseButtonDown)
	if ctrl.Mode() != Captured {
		t.Fatalf("expected captured after click, got %v", ctrl.Mode())
	}
	if len(cursor.calls) != 2 || cursor.calls[0] || !cursor.calls[1] {
		t.Fatalf("expected show then hide, got %v", cursor.calls)
	}
}

func TestHandleAllAppliesInOrder(t *testing.T) {
	t.Run("escape_then_click", func(t *testing.T) {
		ctrl := NewCaptureController(ReleaseOnEscape, nil)
		if ctrl.HandleAll([]Signal{EscapeDown, LeftMouseButtonDown}) {
			t.Fatalf("unexpected quit")
		}
		if ctrl.Mode() != Captured {
			t.Fatalf("expected captured, got %v", ctrl.Mode())
		}
	})

	t.Run("click_then_escape", func(t *testing.T) {
		ctrl := NewCaptureController(ReleaseOnEscape, nil)
		ctrl.HandleAll([]Signal{LeftMouseButtonDown, EscapeDown})
		if ctrl.Mode() != Released {
			t.Fatalf("expected released, got %v", ctrl.Mode())
		}
	})

	t.Run("close_mid_batch", func(t *testing.T) {
		ctrl := NewCaptureController(ReleaseOnEscape, nil)
		if !ctrl.HandleAll([]Signal{CloseRequested, EscapeDown}) {
			t.Fatalf("expected quit")
		}
		if ctrl.Mode() != Released {
			t.Fatalf("expected released, got %v", ctrl.Mode())
		}
	})
}

func TestParseCapturePolicy(t *testing.T) {
	cases := []struct {
		in      string
		want    CapturePolicy
		wantErr bool
	}{
		{"", ReleaseOnEscape, false},
		{"release_on_escape", ReleaseOnEscape, false},
		{"Quit_On_Escape", QuitOnEscape, false},
		{"quit", QuitOnEscape, false},
		{"bogus", 0, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseCapturePolicy(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, c.wantErr)
			}
			if err == nil && got != c.want {
				t.Fatalf("got %v, want %v", got, c.want)
			}
		})
	}
}

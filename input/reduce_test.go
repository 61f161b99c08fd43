package input

import "testing"

func TestReduceLastPositionWins(t *testing.T) {
	f := Reduce(Pointer{}, []Event{
		PointerMove{X: 1, Y: 2},
		PointerMove{X: 3, Y: 4},
		PointerMove{X: 10, Y: 20},
	})
	if !f.Pointer.Known || f.Pointer.X != 10 || f.Pointer.Y != 20 {
		t.Errorf("pointer = %+v, want (10, 20) known", f.Pointer)
	}
	if f.Pressed {
		t.Error("Pressed set without a press")
	}
}

func TestReducePressedOncePerFrame(t *testing.T) {
	f := Reduce(Pointer{}, []Event{
		PointerPress{Button: ButtonPrimary, X: 5, Y: 5},
		PointerRelease{Button: ButtonPrimary, X: 5, Y: 5},
		PointerPress{Button: ButtonPrimary, X: 6, Y: 6},
	})
	if !f.Pressed {
		t.Fatal("Pressed not set")
	}
	if !f.Pointer.Held(ButtonPrimary) {
		t.Error("primary should still be held")
	}

	next := Reduce(f.Pointer, []Event{PointerMove{X: 7, Y: 7}})
	if next.Pressed {
		t.Error("holding the button must not press again next frame")
	}
}

func TestReduceSecondaryPressDoesNotCommit(t *testing.T) {
	f := Reduce(Pointer{}, []Event{PointerPress{Button: ButtonSecondary, X: 1, Y: 1}})
	if f.Pressed {
		t.Error("secondary press reported as primary")
	}
}

func TestReduceOrbitDrag(t *testing.T) {
	f := Reduce(Pointer{}, []Event{
		PointerMove{X: 10, Y: 10},
		PointerMove{X: 12, Y: 10}, // not held: no orbit
		PointerPress{Button: ButtonSecondary, X: 12, Y: 10},
		PointerMove{X: 20, Y: 13},
		PointerMove{X: 25, Y: 15},
		PointerRelease{Button: ButtonSecondary, X: 25, Y: 15},
		PointerMove{X: 40, Y: 40},
	})
	if f.OrbitX != 13 || f.OrbitY != 5 {
		t.Errorf("orbit = (%v, %v), want (13, 5)", f.OrbitX, f.OrbitY)
	}
}

func TestReduceScrollAndResize(t *testing.T) {
	f := Reduce(Pointer{}, []Event{
		Scroll{DY: 1},
		Resize{Width: 100, Height: 50},
		Scroll{DY: -0.5},
		Resize{Width: 640, Height: 480},
	})
	if f.Scroll != 0.5 {
		t.Errorf("scroll = %v, want 0.5", f.Scroll)
	}
	if !f.Resized || f.Resize != (Resize{Width: 640, Height: 480}) {
		t.Errorf("resize = %+v (%v), want 640x480", f.Resize, f.Resized)
	}
	if f.Pointer.Known {
		t.Error("pointer known without positional events")
	}
}

func TestReduceLeaveForgetsPointer(t *testing.T) {
	f := Reduce(Pointer{}, []Event{
		PointerMove{X: 10, Y: 10},
		PointerLeave{},
	})
	if f.Pointer.Known {
		t.Fatal("pointer still known after leaving")
	}

	// Re-entering while dragging must not orbit by the jump.
	held := Reduce(Pointer{}, []Event{PointerPress{Button: ButtonSecondary, X: 10, Y: 10}, PointerLeave{}})
	back := Reduce(held.Pointer, []Event{PointerMove{X: 90, Y: 70}})
	if !back.Pointer.Known || back.Pointer.X != 90 {
		t.Errorf("pointer = %+v, want known at 90", back.Pointer)
	}
	if back.OrbitX != 0 || back.OrbitY != 0 {
		t.Errorf("orbit = (%v, %v) after re-entry, want 0", back.OrbitX, back.OrbitY)
	}
	if !back.Pointer.Held(ButtonSecondary) {
		t.Error("leaving released the held button")
	}
}

func TestReduceIgnoresEmptyResize(t *testing.T) {
	tests := []Resize{{0, 0}, {-1, 10}, {10, 0}}
	for _, r := range tests {
		f := Reduce(Pointer{}, []Event{Resize{Width: 20, Height: 10}, r})
		if !f.Resized || f.Resize != (Resize{Width: 20, Height: 10}) {
			t.Errorf("after %+v: resize = %+v (%v), want 20x10", r, f.Resize, f.Resized)
		}
		if g := Reduce(Pointer{}, []Event{r}); g.Resized {
			t.Errorf("%+v reported as a resize", r)
		}
	}
}

func TestButtonString(t *testing.T) {
	if ButtonSecondary.String() != "secondary" || Button(9).String() != "Button(9)" {
		t.Errorf("unexpected names %q %q", ButtonSecondary, Button(9))
	}
}

// Package input defines the pointer events a host delivers to the picker
// and reduces each frame's events to the few values the frame needs.
//
// Coordinates are framebuffer pixels with the origin at the top-left.
package input

import "fmt"

// Button is a pointer button.
type Button uint8

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonSecondary:
		return "secondary"
	case ButtonMiddle:
		return "middle"
	}
	return fmt.Sprintf("Button(%d)", uint8(b))
}

// Event is one of PointerMove, PointerLeave, PointerPress,
// PointerRelease, Scroll or Resize.
type Event interface {
	event()
}

// PointerMove reports a new pointer position.
type PointerMove struct {
	X, Y float32
}

// PointerLeave reports the pointer leaving the viewport. The pointer is
// unknown until the next positional event.
type PointerLeave struct{}

// PointerPress reports a button going down at a position.
type PointerPress struct {
	Button Button
	X, Y   float32
}

// PointerRelease reports a button going up at a position.
type PointerRelease struct {
	Button Button
	X, Y   float32
}

// Scroll reports wheel motion. Positive DY zooms in.
type Scroll struct {
	DY float32
}

// Resize reports a new framebuffer size in pixels.
type Resize struct {
	Width, Height int
}

func (PointerMove) event()    {}
func (PointerLeave) event()   {}
func (PointerPress) event()   {}
func (PointerRelease) event() {}
func (Scroll) event()         {}
func (Resize) event()         {}

package pick

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/colorview/coord"
)

// State is the selection state. Current follows the pointer every frame,
// Saved changes only on a press, and Cartesian is Current in cartesian form.
type State struct {
	Current   coord.Cylindrical
	Saved     coord.Cylindrical
	Cartesian mgl32.Vec3
}

// NewState returns a state with both current and saved set to c.
func NewState(c coord.Cylindrical) State {
	return State{Current: c, Saved: c, Cartesian: coord.FromCylindrical(c)}
}

// Input is the per-frame pointer summary consumed by Update.
type Input struct {
	// Pressed is true when the primary button went down during the frame.
	Pressed bool
}

// Update returns the state after one frame. It resolves the new current
// coordinate from s.Current, s.Saved and the sample, then commits it to
// Saved when in.Pressed is set.
func Update(s State, in Input, sample Sample) State {
	next := s
	next.Current = Resolve(s.Current, s.Saved, sample)
	next.Cartesian = coord.FromCylindrical(next.Current)
	if in.Pressed {
		next.Saved = next.Current
	}
	return next
}

package input

// Pointer is the pointer state carried between frames.
type Pointer struct {
	X, Y  float32
	Known bool // false until the first positional event
	held  [3]bool
}

// Held reports whether b is currently down.
func (p Pointer) Held(b Button) bool {
	return int(b) < len(p.held) && p.held[b]
}

// Frame is what one frame's events reduce to.
type Frame struct {
	// Pointer is the last known pointer state after all events.
	Pointer Pointer
	// Pressed is true when the primary button went down at least once.
	Pressed bool
	// OrbitX and OrbitY accumulate motion while the secondary or middle
	// button is held.
	OrbitX, OrbitY float32
	// Scroll is the summed wheel motion.
	Scroll float32
	// Resize is the last resize in the frame, if Resized is set.
	Resize  Resize
	Resized bool
}

// Reduce folds events into a Frame. Only the last pointer position
// matters, and any number of primary presses count once. Resizes to an
// empty framebuffer are dropped.
func Reduce(prev Pointer, events []Event) Frame {
	f := Frame{Pointer: prev}
	p := &f.Pointer
	moveTo := func(x, y float32) {
		if p.Known && (p.Held(ButtonSecondary) || p.Held(ButtonMiddle)) {
			f.OrbitX += x - p.X
			f.OrbitY += y - p.Y
		}
		p.X, p.Y, p.Known = x, y, true
	}
	for _, ev := range events {
		switch e := ev.(type) {
		case PointerMove:
			moveTo(e.X, e.Y)
		case PointerLeave:
			p.Known = false
		case PointerPress:
			moveTo(e.X, e.Y)
			if int(e.Button) < len(p.held) {
				p.held[e.Button] = true
			}
			if e.Button == ButtonPrimary {
				f.Pressed = true
			}
		case PointerRelease:
			moveTo(e.X, e.Y)
			if int(e.Button) < len(p.held) {
				p.held[e.Button] = false
			}
		case Scroll:
			f.Scroll += e.DY
		case Resize:
			if e.Width > 0 && e.Height > 0 {
				f.Resize, f.Resized = e, true
			}
		}
	}
	return f
}

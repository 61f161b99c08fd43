package colorview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/colorview/camera"
	"github.com/gogpu/colorview/colorspace"
	"github.com/gogpu/colorview/coord"
	"github.com/gogpu/colorview/input"
	"github.com/gogpu/colorview/pick"
	"github.com/gogpu/colorview/render"
	"github.com/gogpu/colorview/widget"
)

// FrameOutput is what one frame produced.
type FrameOutput struct {
	// Index counts frames from 1.
	Index uint64
	// State is the selection after the frame.
	State pick.State
	// Sample is the decoded pick pixel; pick.Miss when the pointer was
	// unknown or outside the viewport.
	Sample pick.Sample
	// Committed is set when a primary press copied Current into Saved.
	Committed bool
	// Color is the saved coordinate's color under the view's mapping.
	Color colorful.Color
}

// Host supplies input and presents frames. It is implemented by window
// integrations and by scripted drivers.
type Host interface {
	// NextFrame blocks until the next frame is due and returns the events
	// collected since the previous one. It returns ErrHostClosed when the
	// host is gone.
	NextFrame(ctx context.Context) ([]input.Event, error)

	// Present shows the frame. The view's renderer has finished drawing
	// when Present is called; Snapshot may be used from inside it.
	Present(out FrameOutput) error
}

// View runs the picking pipeline: it owns the widget set, the selection
// state, the orbit camera and a renderer, and advances them one frame at a
// time.
//
// View is safe for concurrent use; frames are serialized.
type View struct {
	mu sync.Mutex

	id       uuid.UUID
	log      *slog.Logger
	renderer render.Renderer
	owned    bool
	mapping  colorspace.Mapping
	onSelect func(r, g, b float32)

	camera  camera.Orbit
	widgets []widget.Widget
	meshes  []render.MeshID // parallel to widgets
	pointer input.Pointer
	state   pick.State
	index   uint64
	closed  bool

	visible []render.Draw
	picks   []render.Draw
}

// New creates a view, uploads every widget mesh once and sets the
// initial selection.
func New(opts ...Option) (*View, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", render.ErrInvalidSize, o.width, o.height)
	}
	if !o.initial.Finite() {
		return nil, fmt.Errorf("colorview: initial coordinate %+v is not finite", o.initial)
	}

	v := &View{
		id:       uuid.New(),
		mapping:  o.mapping,
		onSelect: o.onSelect,
		camera:   o.camera,
		state:    pick.NewState(normalize(o.initial)),
	}
	v.log = o.logger
	if v.log == nil {
		v.log = Logger()
	}
	v.log = v.log.With("view", v.id.String())

	if o.renderer != nil {
		v.renderer = o.renderer
		if err := v.renderer.Resize(o.width, o.height); err != nil {
			return nil, fmt.Errorf("colorview: resize renderer: %w", err)
		}
	} else {
		cfg := render.Config{Width: o.width, Height: o.height, Mapping: o.mapping, Device: o.device}
		r, err := v.createRenderer(o.backend, cfg)
		if err != nil {
			return nil, err
		}
		v.renderer = r
		v.owned = true
	}
	propagateLogger(v.renderer, v.log)

	v.widgets = widget.Set(o.segments)
	v.meshes = make([]render.MeshID, len(v.widgets))
	for i, w := range v.widgets {
		id, err := v.renderer.Upload(w.Mesh)
		if err != nil {
			v.release()
			return nil, fmt.Errorf("colorview: upload %s: %w", w, err)
		}
		v.meshes[i] = id
	}

	v.log.Info("colorview: view created",
		"backend", v.renderer.Name(),
		"width", o.width, "height", o.height,
		"mapping", o.mapping.String(),
		"segments", o.segments)
	return v, nil
}

// createRenderer builds the named backend, or else the highest-priority
// backend that works.
func (v *View) createRenderer(name string, cfg render.Config) (render.Renderer, error) {
	if name != "" {
		r, err := render.New(name, cfg)
		if err != nil {
			return nil, fmt.Errorf("colorview: %w", err)
		}
		return r, nil
	}
	cfg.Fallback = func(backend string, err error) {
		v.log.Warn("colorview: backend unavailable, falling back", "backend", backend, "err", err)
	}
	r, err := render.Default(cfg)
	if err != nil {
		return nil, fmt.Errorf("colorview: %w", err)
	}
	return r, nil
}

// Frame advances the view by one frame:
//
//  1. reduce events to the latest pointer, press, orbit, zoom and resize
//  2. resize targets if the viewport changed
//  3. apply orbit and zoom to the camera
//  4. render the visible pass
//  5. render the pick pass at the pointer pixel
//  6. decode the sample
//  7. update the selection, committing on a primary press
//  8. report the saved color through WithOnSelect on commit
//
// The WithOnSelect callback runs after the view is unlocked and may call
// any View method.
func (v *View) Frame(events []input.Event) (FrameOutput, error) {
	v.mu.Lock()
	out, err := v.frame(events)
	onSelect := v.onSelect
	var r, g, b float32
	if err == nil && out.Committed {
		r, g, b = v.mapping.RGB(out.State.Saved)
	}
	v.mu.Unlock()

	if err == nil && out.Committed && onSelect != nil {
		onSelect(r, g, b)
	}
	return out, err
}

// frame runs one frame with v.mu held.
func (v *View) frame(events []input.Event) (FrameOutput, error) {
	if v.closed {
		return FrameOutput{}, ErrClosed
	}

	f := input.Reduce(v.pointer, events)
	v.pointer = f.Pointer

	if f.Resized {
		if err := v.renderer.Resize(f.Resize.Width, f.Resize.Height); err != nil {
			return FrameOutput{}, fmt.Errorf("colorview: resize: %w", err)
		}
	}
	v.camera.Rotate(f.OrbitX, f.OrbitY)
	v.camera.Zoom(f.Scroll)

	v.buildDraws()
	if err := v.renderer.RenderVisible(v.visible); err != nil {
		return FrameOutput{}, fmt.Errorf("colorview: visible pass: %w", err)
	}

	sample := pick.Miss
	if x, y, ok := v.pointerPixel(); ok {
		px, err := v.renderer.RenderPick(v.picks, x, y)
		if err != nil {
			v.log.Warn("colorview: pick pass failed", "x", x, "y", y, "err", err)
		} else {
			sample = pick.Decode(px)
		}
	}

	v.state = pick.Update(v.state, pick.Input{Pressed: f.Pressed}, sample)
	v.index++

	out := FrameOutput{
		Index:     v.index,
		State:     v.state,
		Sample:    sample,
		Committed: f.Pressed,
		Color:     v.mapping.Color(v.state.Saved),
	}
	if f.Pressed {
		v.log.Debug("colorview: selection committed",
			"hue", v.state.Saved.Turns(),
			"saturation", v.state.Saved.Radius,
			"value", v.state.Saved.Height,
			"hex", out.Color.Hex(),
			"tag", sample.Tag.String())
	}
	return out, nil
}

// buildDraws derives every widget's geometry from the current state.
// Screen-space widgets skip the camera.
func (v *View) buildDraws() {
	w, h := v.renderer.Size()
	viewProj := v.camera.ViewProjection(w, h)

	v.visible = v.visible[:0]
	v.picks = v.picks[:0]
	for i, wd := range v.widgets {
		m := wd.DeriveGeometry(v.state)
		d := render.Draw{
			Mesh:     v.meshes[i],
			ViewProj: viewProj,
			Model:    m.Model,
			Embed:    m.Embed,
			Tag:      m.Tag,
		}
		if m.ScreenSpace {
			d.ViewProj = mgl32.Ident4()
		}
		v.visible = append(v.visible, d)
		if m.Pickable() {
			v.picks = append(v.picks, d)
		}
	}
}

// pointerPixel returns the pixel under the pointer, or false when the
// pointer is unknown, non-finite or outside the viewport.
func (v *View) pointerPixel() (int, int, bool) {
	p := v.pointer
	if !p.Known || !coord.FiniteVec(mgl32.Vec3{p.X, p.Y, 0}) {
		return 0, 0, false
	}
	x, y := math32.Floor(p.X), math32.Floor(p.Y)
	w, h := v.renderer.Size()
	if x < 0 || y < 0 || x >= float32(w) || y >= float32(h) {
		return 0, 0, false
	}
	return int(x), int(y), true
}

// RunRenderLoop drives frames from host until ctx is cancelled or the
// host reports ErrHostClosed. It closes the view before returning.
func (v *View) RunRenderLoop(ctx context.Context, host Host) error {
	defer v.Close()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		events, err := host.NextFrame(ctx)
		if err != nil {
			return v.loopExit(ctx, "next frame", err)
		}
		out, err := v.Frame(events)
		if err != nil {
			return err
		}
		if err := host.Present(out); err != nil {
			return v.loopExit(ctx, "present", err)
		}
	}
}

func (v *View) loopExit(ctx context.Context, stage string, err error) error {
	switch {
	case errors.Is(err, ErrHostClosed):
		v.log.Info("colorview: host closed", "frames", v.Frames())
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return fmt.Errorf("colorview: %s: %w", stage, err)
	}
}

// State returns the current selection.
func (v *View) State() pick.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// SetSelection sets both the current and the saved coordinate, as if c had
// been picked and committed. The angle is wrapped into [0, 2π).
func (v *View) SetSelection(c coord.Cylindrical) error {
	if !c.Finite() {
		return fmt.Errorf("colorview: selection %+v is not finite", c)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}
	v.state = pick.NewState(normalize(c))
	return nil
}

// Color returns the saved coordinate's color.
func (v *View) Color() colorful.Color {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mapping.Color(v.state.Saved)
}

// Frames returns the number of frames rendered.
func (v *View) Frames() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.index
}

// Snapshot copies the last visible pass.
func (v *View) Snapshot() (*image.RGBA, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil, ErrClosed
	}
	s, ok := v.renderer.(render.Snapshotter)
	if !ok {
		return nil, ErrNoSnapshot
	}
	return s.Snapshot()
}

// Size returns the viewport size.
func (v *View) Size() (width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renderer.Size()
}

// Backend returns the renderer's backend name.
func (v *View) Backend() string {
	return v.renderer.Name()
}

// ID identifies the view in log records.
func (v *View) ID() uuid.UUID {
	return v.id
}

// Close releases the renderer if the view created it. It is safe to call
// more than once.
func (v *View) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	v.closed = true
	v.release()
	v.log.Info("colorview: view closed", "frames", v.index)
	return nil
}

func (v *View) release() {
	if v.owned && v.renderer != nil {
		v.renderer.Destroy()
	}
}

func normalize(c coord.Cylindrical) coord.Cylindrical {
	c.Angle = coord.WrapAngle(c.Angle)
	return c
}

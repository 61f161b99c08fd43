package colorview

import (
	"log/slog"

	"github.com/gogpu/colorview/camera"
	"github.com/gogpu/colorview/colorspace"
	"github.com/gogpu/colorview/coord"
	"github.com/gogpu/colorview/mesh"
	"github.com/gogpu/colorview/render"
)

// Option configures a View during creation.
//
// Example:
//
//	// Software rendering, LCh mapping, starting at pure green
//	v, err := colorview.New(
//		colorview.WithBackend(render.BackendSoftware),
//		colorview.WithMapping(colorspace.LCh),
//		colorview.WithInitial(coord.Cylindrical{Angle: 2 * math.Pi / 3, Radius: 1, Height: 1}),
//	)
type Option func(*options)

// options holds optional configuration for View creation.
type options struct {
	width, height int
	backend       string
	renderer      render.Renderer
	device        render.DeviceHandle
	mapping       colorspace.Mapping
	segments      int
	initial       coord.Cylindrical
	onSelect      func(r, g, b float32)
	camera        camera.Orbit
	logger        *slog.Logger
}

// Default viewport size.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// defaultOptions returns the default view options: a 640×480 viewport,
// HSV mapping, the default orbit and a fully saturated, full-value red.
func defaultOptions() options {
	return options{
		width:    DefaultWidth,
		height:   DefaultHeight,
		mapping:  colorspace.HSV,
		segments: mesh.DefaultSegments,
		initial:  coord.Cylindrical{Angle: 0, Radius: 1, Height: 1},
		camera:   camera.Default(),
	}
}

// WithSize sets the initial viewport size in pixels.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width, o.height = width, height
	}
}

// WithBackend selects a registered render backend by name instead of the
// highest-priority one that works.
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithRenderer injects a renderer. The caller keeps ownership: Close does
// not destroy it. WithBackend is ignored.
func WithRenderer(r render.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithDevice shares the host's GPU device with GPU backends.
func WithDevice(h render.DeviceHandle) Option {
	return func(o *options) {
		o.device = h
	}
}

// WithMapping sets how cylindrical coordinates map to colors.
func WithMapping(m colorspace.Mapping) Option {
	return func(o *options) {
		o.mapping = m
	}
}

// WithSegments sets the angular tessellation of round meshes. Values
// below mesh.MinSegments are raised to it.
func WithSegments(n int) Option {
	return func(o *options) {
		o.segments = max(n, mesh.MinSegments)
	}
}

// WithInitial sets the initial current and saved coordinate.
func WithInitial(c coord.Cylindrical) Option {
	return func(o *options) {
		o.initial = c
	}
}

// WithOnSelect registers a callback invoked on the frame goroutine with
// the RGB of the saved coordinate every time a press commits it.
func WithOnSelect(fn func(r, g, b float32)) Option {
	return func(o *options) {
		o.onSelect = fn
	}
}

// WithCamera sets the initial orbit camera.
func WithCamera(c camera.Orbit) Option {
	return func(o *options) {
		o.camera = c
	}
}

// WithLogger sets the view's logger, overriding the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

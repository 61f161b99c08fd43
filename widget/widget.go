// Package widget defines the objects drawn by the color picker.
//
// A Widget is a tagged variant. Its kind fixes its pick tag for life, and
// DeriveGeometry turns the current selection state into the transforms
// needed to draw it. The mesh is built once; only the transforms change
// from frame to frame.
package widget

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/colorview/coord"
	"github.com/gogpu/colorview/mesh"
	"github.com/gogpu/colorview/pick"
)

// Kind is the widget variant.
type Kind uint8

const (
	AxisHandle Kind = iota
	ColorVolumeSurface
	CursorMarker
	PreviewChip
)

func (k Kind) String() string {
	switch k {
	case AxisHandle:
		return "axis-handle"
	case ColorVolumeSurface:
		return "volume"
	case CursorMarker:
		return "cursor"
	case PreviewChip:
		return "chip"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Axis is the cylindrical component an AxisHandle controls.
type Axis uint8

const (
	AxisHue Axis = iota
	AxisSaturation
	AxisValue
)

func (a Axis) String() string {
	switch a {
	case AxisHue:
		return "hue"
	case AxisSaturation:
		return "saturation"
	case AxisValue:
		return "value"
	}
	return fmt.Sprintf("Axis(%d)", uint8(a))
}

// Tag returns the pick tag of the handle for a.
func (a Axis) Tag() pick.Tag {
	switch a {
	case AxisHue:
		return pick.TagHue
	case AxisSaturation:
		return pick.TagSaturation
	case AxisValue:
		return pick.TagValue
	}
	return pick.TagNone
}

// Placement of the handles relative to the unit volume.
const (
	RingInner     = 1.08 // hue ring inner radius
	RingWidth     = 0.1
	RingThickness = 0.03
	StripHeight   = 1.12 // saturation strip floats above the top cap
	BarRadius     = 1.22 // value bar stands outside the shell
	HandleWidth   = 0.03 // half-width of strip and bar
	CursorScale   = 0.05
	// minEmbedRadius keeps the hue ring's payload off the axis, where the
	// angle would be lost.
	minEmbedRadius = 1e-3
)

// ChipModel places the preview chip in the top-right corner of the
// viewport, in normalized device coordinates.
var ChipModel = mgl32.Translate3D(0.8, 0.8, 0).Mul4(mgl32.Scale3D(0.15, 0.15, 1))

// Widget is one drawable object.
type Widget struct {
	Kind Kind
	Axis Axis // AxisHandle only
	Mesh *mesh.Mesh
}

// RenderableModel is everything a renderer needs to draw a widget for one
// frame.
type RenderableModel struct {
	Mesh *mesh.Mesh
	// Model places Mesh.Positions in world space, or in NDC when
	// ScreenSpace is set.
	Model mgl32.Mat4
	// Embed maps Mesh.Embed to the color-volume point each vertex stands
	// for.
	Embed       mgl32.Mat4
	ScreenSpace bool
	Tag         pick.Tag
}

// Pickable reports whether the model takes part in the pick pass.
func (m RenderableModel) Pickable() bool {
	return m.Tag.Hit()
}

// NewAxisHandle returns the handle for a. The hue handle is a ring around
// the volume, the saturation handle a radial strip above it, and the value
// handle a vertical bar beside it.
func NewAxisHandle(a Axis, segments int) Widget {
	var m *mesh.Mesh
	switch a {
	case AxisHue:
		m = mesh.Tube(segments, RingInner, RingWidth, RingThickness)
	default:
		m = mesh.Bar(max(segments/8, 1), HandleWidth)
	}
	return Widget{Kind: AxisHandle, Axis: a, Mesh: m}
}

// NewColorVolumeSurface returns the unit cylinder.
func NewColorVolumeSurface(segments int) Widget {
	return Widget{Kind: ColorVolumeSurface, Mesh: mesh.Cylinder(segments)}
}

// NewCursorMarker returns the cube marking the current coordinate.
func NewCursorMarker() Widget {
	return Widget{Kind: CursorMarker, Mesh: mesh.Cube()}
}

// NewPreviewChip returns the swatch showing the saved color.
func NewPreviewChip() Widget {
	return Widget{Kind: PreviewChip, Mesh: mesh.Quad()}
}

// Set returns the full widget set in visible-pass draw order.
func Set(segments int) []Widget {
	return []Widget{
		NewColorVolumeSurface(segments),
		NewCursorMarker(),
		NewAxisHandle(AxisHue, segments),
		NewAxisHandle(AxisSaturation, segments),
		NewAxisHandle(AxisValue, segments),
		NewPreviewChip(),
	}
}

// Tag returns the widget's fixed pick tag.
func (w Widget) Tag() pick.Tag {
	if w.Kind == AxisHandle {
		return w.Axis.Tag()
	}
	if w.Kind == ColorVolumeSurface {
		return pick.TagVolume
	}
	return pick.TagNone
}

func (w Widget) String() string {
	if w.Kind == AxisHandle {
		return w.Kind.String() + "/" + w.Axis.String()
	}
	return w.Kind.String()
}

// DeriveGeometry returns the widget's model for state s.
func (w Widget) DeriveGeometry(s pick.State) RenderableModel {
	m := RenderableModel{
		Mesh:  w.Mesh,
		Model: mgl32.Ident4(),
		Embed: mgl32.Ident4(),
		Tag:   w.Tag(),
	}
	cur := s.Current
	switch w.Kind {
	case ColorVolumeSurface:
	case CursorMarker:
		p := coord.FromCylindrical(cur)
		m.Model = translate(p).Mul4(mgl32.Scale3D(CursorScale, CursorScale, CursorScale))
		m.Embed = collapse(p)
	case PreviewChip:
		m.Model = ChipModel
		m.Embed = collapse(coord.FromCylindrical(s.Saved))
		m.ScreenSpace = true
	case AxisHandle:
		m.Model, m.Embed = w.axisTransforms(cur)
	}
	return m
}

func (w Widget) axisTransforms(c coord.Cylindrical) (model, embed mgl32.Mat4) {
	turn := mgl32.HomogRotate3DY(-c.Angle)
	switch w.Axis {
	case AxisHue:
		lift := mgl32.Translate3D(0, c.Height, 0)
		r := math32.Max(c.Radius, minEmbedRadius)
		return lift, lift.Mul4(mgl32.Scale3D(r, 1, r))
	case AxisSaturation:
		model = mgl32.Translate3D(0, StripHeight, 0).Mul4(turn)
		embed = mgl32.Translate3D(0, c.Height, 0).Mul4(turn).Mul4(mgl32.Scale3D(1, 0, 0))
		return model, embed
	default:
		upright := mgl32.HomogRotate3DZ(math32.Pi / 2)
		model = turn.Mul4(mgl32.Translate3D(BarRadius, 0, 0)).Mul4(upright)
		embed = turn.Mul4(mgl32.Translate3D(c.Radius, 0, 0)).Mul4(mgl32.Scale3D(0, 1, 0))
		return model, embed
	}
}

func translate(p mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(p[0], p[1], p[2])
}

// collapse maps every payload vertex to p.
func collapse(p mgl32.Vec3) mgl32.Mat4 {
	return translate(p).Mul4(mgl32.Scale3D(0, 0, 0))
}

// Package coord converts points of the color volume between cartesian and
// cylindrical form.
//
// The volume is a unit cylinder standing on the xz plane: the angle around
// the y axis is hue, the distance from the axis is saturation and the
// height is value. Angles are radians measured from +x towards +z.
package coord

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// FullTurn is one revolution in radians.
const FullTurn = 2 * math32.Pi

// Cylindrical is a point of the color volume in cylindrical form.
type Cylindrical struct {
	Angle  float32 // radians, [0, 2π) after ToCylindrical
	Radius float32
	Height float32
}

// ToCylindrical returns p in cylindrical form. The angle is wrapped to
// [0, 2π). On the axis (x == z == 0) the angle is 0.
func ToCylindrical(p mgl32.Vec3) Cylindrical {
	x, y, z := float64(p[0]), float64(p[1]), float64(p[2])
	return Cylindrical{
		Angle:  WrapAngle(float32(math.Atan2(z, x))),
		Radius: float32(math.Hypot(x, z)),
		Height: float32(y),
	}
}

// FromCylindrical returns c in cartesian form. Any angle is accepted; it
// does not need to be wrapped, and it has no effect when the radius is 0.
func FromCylindrical(c Cylindrical) mgl32.Vec3 {
	s, co := math.Sincos(float64(c.Angle))
	r := float64(c.Radius)
	return mgl32.Vec3{float32(r * co), c.Height, float32(r * s)}
}

// WrapAngle wraps a to [0, 2π).
func WrapAngle(a float32) float32 {
	a = math32.Mod(a, FullTurn)
	if a < 0 {
		a += FullTurn
	}
	// Mod of a tiny negative value can round up to exactly FullTurn.
	if a >= FullTurn {
		a = 0
	}
	return a
}

// Turns returns the angle as a fraction of a full turn in [0, 1).
func (c Cylindrical) Turns() float32 {
	return WrapAngle(c.Angle) / FullTurn
}

// Finite reports whether no component is NaN or infinite.
func (c Cylindrical) Finite() bool {
	return finite(c.Angle) && finite(c.Radius) && finite(c.Height)
}

// Cartesian is shorthand for FromCylindrical(c).
func (c Cylindrical) Cartesian() mgl32.Vec3 {
	return FromCylindrical(c)
}

// FiniteVec reports whether no component of v is NaN or infinite.
func FiniteVec(v mgl32.Vec3) bool {
	return finite(v[0]) && finite(v[1]) && finite(v[2])
}

// ApproxEqual compares a and b component-wise within eps. Angles are
// compared on the circle, so 0 and 2π-ε/2 are equal.
func ApproxEqual(a, b Cylindrical, eps float32) bool {
	if math32.Abs(a.Radius-b.Radius) > eps || math32.Abs(a.Height-b.Height) > eps {
		return false
	}
	d := math32.Abs(WrapAngle(a.Angle) - WrapAngle(b.Angle))
	if d > math32.Pi {
		d = FullTurn - d
	}
	return d <= eps
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

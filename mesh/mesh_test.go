package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/gogpu/colorview/coord"
)

func TestPrimitivesValidate(t *testing.T) {
	tests := []struct {
		name string
		m    *Mesh
		tris int
	}{
		{"cylinder", Cylinder(16), 16 * 4},
		{"cylinder min segments", Cylinder(1), MinSegments * 4},
		{"tube", Tube(8, 1.1, 0.1, 0.05), 8 * 8},
		{"bar", Bar(4, 0.02), 4*8 + 4},
		{"quad", Quad(), 2},
		{"cube", Cube(), 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.m.Validate(); err != nil {
				t.Fatalf("Validate() = %v", err)
			}
			if got := tt.m.Triangles(); got != tt.tris {
				t.Errorf("Triangles() = %d, want %d", got, tt.tris)
			}
		})
	}
}

func TestCylinderBounds(t *testing.T) {
	lo, hi := Cylinder(32).Bounds()
	want := [2]mgl32.Vec3{{-1, 0, -1}, {1, 1, 1}}
	if !lo.ApproxEqualThreshold(want[0], 1e-5) || !hi.ApproxEqualThreshold(want[1], 1e-5) {
		t.Errorf("Bounds() = %v, %v, want %v", lo, hi, want)
	}
}

func TestCylinderEmbedIsPosition(t *testing.T) {
	m := Cylinder(12)
	for i := range m.Positions {
		if m.Positions[i] != m.Embed[i] {
			t.Fatalf("vertex %d: embed %v != position %v", i, m.Embed[i], m.Positions[i])
		}
	}
}

func TestTubeEmbedMatchesAngle(t *testing.T) {
	m := Tube(24, 1.1, 0.1, 0.05)
	for i, p := range m.Positions {
		e := m.Embed[i]
		if !scalar.EqualWithinAbs(float64(e.Len()), 1, 1e-5) {
			t.Fatalf("vertex %d: embed %v not on the unit circle", i, e)
		}
		pa := coord.ToCylindrical(p).Angle
		ea := coord.ToCylindrical(e).Angle
		if !coord.ApproxEqual(coord.Cylindrical{Angle: pa}, coord.Cylindrical{Angle: ea}, 1e-4) {
			t.Fatalf("vertex %d: position angle %v, embed angle %v", i, pa, ea)
		}
	}
}

func TestBarEmbedFollowsX(t *testing.T) {
	m := Bar(5, 0.03)
	for i, p := range m.Positions {
		e := m.Embed[i]
		if e[0] != p[0] || e[1] != p[0] || e[2] != p[0] {
			t.Fatalf("vertex %d: embed %v, want (%v,%v,%v)", i, e, p[0], p[0], p[0])
		}
	}
}

func TestValidateErrors(t *testing.T) {
	nan := float32(math.NaN())
	tests := []struct {
		name string
		m    Mesh
		want error
	}{
		{"empty", Mesh{}, ErrEmpty},
		{"mismatch", Mesh{Positions: make([]mgl32.Vec3, 3), Embed: make([]mgl32.Vec3, 2)}, ErrLengthMismatch},
		{"not triangles", Mesh{Positions: make([]mgl32.Vec3, 4), Embed: make([]mgl32.Vec3, 4)}, ErrNotTriangles},
		{"nan", Mesh{Positions: []mgl32.Vec3{{nan, 0, 0}, {}, {}}, Embed: make([]mgl32.Vec3, 3)}, ErrNonFinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.m.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAnglesCloseSeam(t *testing.T) {
	as := angles(8)
	if len(as) != 9 || as[0] != 0 || as[8] != 0 {
		t.Errorf("angles(8) = %v", as)
	}
	if !scalar.EqualWithinAbs(float64(as[4]), math.Pi, 1e-6) {
		t.Errorf("angles(8)[4] = %v, want π", as[4])
	}
}

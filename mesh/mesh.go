// Package mesh builds the triangle-list primitives drawn by the picker.
//
// Every mesh carries two position sets of equal length. Positions is the
// geometry that is rasterized. Embed is an auxiliary per-vertex payload
// that, after the widget's embed transform, is the color-volume point the
// vertex stands for: the visible pass shades from it and the pick pass
// writes it out. For the color volume itself the two are identical.
package mesh

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/floats"

	"github.com/gogpu/colorview/coord"
)

// MinSegments is the smallest subdivision count accepted by the builders.
const MinSegments = 3

// DefaultSegments is the subdivision count used when none is configured.
const DefaultSegments = 64

var (
	// ErrLengthMismatch means Positions and Embed differ in length.
	ErrLengthMismatch = errors.New("mesh: positions and embed differ in length")
	// ErrNotTriangles means the vertex count is not a multiple of three.
	ErrNotTriangles = errors.New("mesh: vertex count is not a multiple of 3")
	// ErrNonFinite means a vertex has a NaN or infinite component.
	ErrNonFinite = errors.New("mesh: non-finite vertex")
	// ErrEmpty means the mesh has no vertices.
	ErrEmpty = errors.New("mesh: empty")
)

// Mesh is a non-indexed triangle list.
type Mesh struct {
	Positions []mgl32.Vec3
	Embed     []mgl32.Vec3
}

// Len returns the vertex count.
func (m *Mesh) Len() int { return len(m.Positions) }

// Triangles returns the triangle count.
func (m *Mesh) Triangles() int { return len(m.Positions) / 3 }

// Validate checks the invariants renderers rely on.
func (m *Mesh) Validate() error {
	if len(m.Positions) == 0 {
		return ErrEmpty
	}
	if len(m.Positions) != len(m.Embed) {
		return fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(m.Positions), len(m.Embed))
	}
	if len(m.Positions)%3 != 0 {
		return fmt.Errorf("%w: %d", ErrNotTriangles, len(m.Positions))
	}
	for i := range m.Positions {
		if !coord.FiniteVec(m.Positions[i]) || !coord.FiniteVec(m.Embed[i]) {
			return fmt.Errorf("%w: index %d", ErrNonFinite, i)
		}
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of Positions.
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Positions) == 0 {
		return
	}
	lo, hi = m.Positions[0], m.Positions[0]
	for _, p := range m.Positions[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = math32.Min(lo[k], p[k])
			hi[k] = math32.Max(hi[k], p[k])
		}
	}
	return lo, hi
}

// builder accumulates triangles.
type builder struct {
	m Mesh
}

func (b *builder) tri(p0, p1, p2, e0, e1, e2 mgl32.Vec3) {
	b.m.Positions = append(b.m.Positions, p0, p1, p2)
	b.m.Embed = append(b.m.Embed, e0, e1, e2)
}

// quad adds two triangles p0 p1 p2, p0 p2 p3.
func (b *builder) quad(p, e [4]mgl32.Vec3) {
	b.tri(p[0], p[1], p[2], e[0], e[1], e[2])
	b.tri(p[0], p[2], p[3], e[0], e[2], e[3])
}

// solid adds a quad whose embed equals its positions.
func (b *builder) solid(p [4]mgl32.Vec3) {
	b.quad(p, p)
}

// angles returns segments+1 evenly spaced angles from 0 to 2π inclusive.
// The last one is set to exactly 0 again so that seams close.
func angles(segments int) []float32 {
	span := floats.Span(make([]float64, segments+1), 0, float64(coord.FullTurn))
	out := make([]float32, len(span))
	for i, a := range span {
		out[i] = float32(a)
	}
	out[segments] = 0
	return out
}

// steps returns n+1 evenly spaced values from 0 to 1 inclusive.
func steps(n int) []float32 {
	span := floats.Span(make([]float64, n+1), 0, 1)
	out := make([]float32, len(span))
	for i, v := range span {
		out[i] = float32(v)
	}
	return out
}

func clampSegments(n int) int {
	if n < MinSegments {
		return MinSegments
	}
	return n
}

func circle(a, r, y float32) mgl32.Vec3 {
	s, c := math32.Sincos(a)
	return mgl32.Vec3{r * c, y, r * s}
}

package mesh

import "github.com/go-gl/mathgl/mgl32"

// Cylinder returns the closed unit cylinder: radius 1, y from 0 to 1, with
// both caps. Embed equals Positions, so every surface point is its own
// color-volume coordinate.
func Cylinder(segments int) *Mesh {
	segments = clampSegments(segments)
	as := angles(segments)
	var b builder
	for i := 0; i < segments; i++ {
		a0, a1 := as[i], as[i+1]
		b.solid([4]mgl32.Vec3{
			circle(a0, 1, 0), circle(a1, 1, 0),
			circle(a1, 1, 1), circle(a0, 1, 1),
		})
		top := mgl32.Vec3{0, 1, 0}
		b.tri(top, circle(a1, 1, 1), circle(a0, 1, 1), top, circle(a1, 1, 1), circle(a0, 1, 1))
		bottom := mgl32.Vec3{}
		b.tri(bottom, circle(a0, 1, 0), circle(a1, 1, 0), bottom, circle(a0, 1, 0), circle(a1, 1, 0))
	}
	return &b.m
}

// Tube returns a flat ring around the y axis at y = 0, from radius inner
// to inner+width, with the given vertical thickness. Embed is the point on
// the unit circle at the vertex's angle, so a hit anywhere on the ring
// decodes to that angle.
func Tube(segments int, inner, width, thickness float32) *Mesh {
	segments = clampSegments(segments)
	as := angles(segments)
	outer := inner + width
	lo, hi := -thickness/2, thickness/2
	var b builder
	for i := 0; i < segments; i++ {
		a0, a1 := as[i], as[i+1]
		e0, e1 := circle(a0, 1, 0), circle(a1, 1, 0)
		e := [4]mgl32.Vec3{e0, e1, e1, e0}
		// top, bottom, outer wall, inner wall
		b.quad([4]mgl32.Vec3{circle(a0, inner, hi), circle(a1, inner, hi), circle(a1, outer, hi), circle(a0, outer, hi)}, e)
		b.quad([4]mgl32.Vec3{circle(a0, outer, lo), circle(a1, outer, lo), circle(a1, inner, lo), circle(a0, inner, lo)}, e)
		b.quad([4]mgl32.Vec3{circle(a0, outer, lo), circle(a1, outer, lo), circle(a1, outer, hi), circle(a0, outer, hi)}, e)
		b.quad([4]mgl32.Vec3{circle(a0, inner, lo), circle(a1, inner, lo), circle(a1, inner, hi), circle(a0, inner, hi)}, e)
	}
	return &b.m
}

// Bar returns a thin box running from x = 0 to x = 1 with half-extent
// halfWidth across y and z, split into n sections. Embed is (t, t, t) for
// a vertex at x = t, so an embed transform can route t into whichever
// cylindrical component the bar controls.
func Bar(n int, halfWidth float32) *Mesh {
	if n < 1 {
		n = 1
	}
	ts := steps(n)
	w := halfWidth
	var b builder
	for i := 0; i < n; i++ {
		t0, t1 := ts[i], ts[i+1]
		e := [4]mgl32.Vec3{{t0, t0, t0}, {t1, t1, t1}, {t1, t1, t1}, {t0, t0, t0}}
		b.quad([4]mgl32.Vec3{{t0, w, -w}, {t1, w, -w}, {t1, w, w}, {t0, w, w}}, e)
		b.quad([4]mgl32.Vec3{{t0, -w, w}, {t1, -w, w}, {t1, -w, -w}, {t0, -w, -w}}, e)
		b.quad([4]mgl32.Vec3{{t0, -w, w}, {t1, -w, w}, {t1, w, w}, {t0, w, w}}, e)
		b.quad([4]mgl32.Vec3{{t0, w, -w}, {t1, w, -w}, {t1, -w, -w}, {t0, -w, -w}}, e)
	}
	// end caps
	e0 := [4]mgl32.Vec3{}
	e1 := [4]mgl32.Vec3{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}, {1, 1, 1}}
	b.quad([4]mgl32.Vec3{{0, -w, -w}, {0, -w, w}, {0, w, w}, {0, w, -w}}, e0)
	b.quad([4]mgl32.Vec3{{1, -w, -w}, {1, w, -w}, {1, w, w}, {1, -w, w}}, e1)
	return &b.m
}

// Quad returns the square [-1, 1]² in the z = 0 plane.
func Quad() *Mesh {
	var b builder
	b.solid([4]mgl32.Vec3{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}})
	return &b.m
}

// Cube returns the cube [-1, 1]³.
func Cube() *Mesh {
	var b builder
	for _, f := range [6][4]mgl32.Vec3{
		{{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}},
		{{-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}, {-1, -1, -1}},
		{{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1}},
		{{-1, -1, 1}, {-1, -1, -1}, {1, -1, -1}, {1, -1, 1}},
		{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},
		{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}},
	} {
		b.solid(f)
	}
	return &b.m
}

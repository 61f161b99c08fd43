// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// clipVertex is a vertex after the vertex stage: clip-space position and
// one interpolated attribute.
type clipVertex struct {
	pos  mgl32.Vec4
	attr mgl32.Vec3
}

// fragmentFunc receives a covered pixel index that passed the depth test
// and its perspective-correct attribute.
type fragmentFunc func(i int, attr mgl32.Vec3)

// depthTarget rasterizes triangles against a depth buffer.
type depthTarget struct {
	width, height int
	depth         []float32
}

func (t *depthTarget) resize(width, height int) {
	t.width, t.height = width, height
	t.depth = make([]float32, width*height)
}

// clearDepth sets the depth of every pixel in r to 1.
func (t *depthTarget) clearDepth(r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := t.depth[y*t.width+r.Min.X : y*t.width+r.Max.X]
		for i := range row {
			row[i] = 1
		}
	}
}

// triangle clips v against the near plane and rasterizes what remains
// inside scissor.
func (t *depthTarget) triangle(v [3]clipVertex, scissor image.Rectangle, frag fragmentFunc) {
	var buf [4]clipVertex
	poly := clipNear(v, buf[:0])
	for i := 1; i+1 < len(poly); i++ {
		t.raster(poly[0], poly[i], poly[i+1], scissor, frag)
	}
}

// clipNear clips a triangle against z >= 0 (WebGPU near plane). The
// result has 0, 3 or 4 vertices.
func clipNear(v [3]clipVertex, out []clipVertex) []clipVertex {
	for i := 0; i < 3; i++ {
		a, b := v[i], v[(i+1)%3]
		da, db := a.pos[2], b.pos[2]
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			s := da / (da - db)
			out = append(out, clipVertex{
				pos:  a.pos.Add(b.pos.Sub(a.pos).Mul(s)),
				attr: a.attr.Add(b.attr.Sub(a.attr).Mul(s)),
			})
		}
	}
	return out
}

type screenVertex struct {
	x, y, z float32
	invW    float32
	attr    mgl32.Vec3 // attr / w
}

func (t *depthTarget) toScreen(v clipVertex) screenVertex {
	invW := 1 / v.pos[3]
	return screenVertex{
		x:    (v.pos[0]*invW + 1) * 0.5 * float32(t.width),
		y:    (1 - v.pos[1]*invW) * 0.5 * float32(t.height),
		z:    v.pos[2] * invW,
		invW: invW,
		attr: v.attr.Mul(invW),
	}
}

func edge(a, b screenVertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// raster samples pixel centers inside the triangle with a less-than depth
// test. Both windings are drawn.
func (t *depthTarget) raster(c0, c1, c2 clipVertex, scissor image.Rectangle, frag fragmentFunc) {
	if c0.pos[3] <= 0 || c1.pos[3] <= 0 || c2.pos[3] <= 0 {
		return
	}
	v0, v1, v2 := t.toScreen(c0), t.toScreen(c1), t.toScreen(c2)
	area := edge(v0, v1, v2.x, v2.y)
	if area == 0 || math32.IsNaN(area) {
		return
	}

	minX := int(math32.Floor(min(v0.x, v1.x, v2.x)))
	maxX := int(math32.Ceil(max(v0.x, v1.x, v2.x)))
	minY := int(math32.Floor(min(v0.y, v1.y, v2.y)))
	maxY := int(math32.Ceil(max(v0.y, v1.y, v2.y)))
	box := image.Rect(minX, minY, maxX+1, maxY+1).Intersect(scissor)
	if box.Empty() {
		return
	}

	inv := 1 / area
	for py := box.Min.Y; py < box.Max.Y; py++ {
		sy := float32(py) + 0.5
		for px := box.Min.X; px < box.Max.X; px++ {
			sx := float32(px) + 0.5
			b0 := edge(v1, v2, sx, sy) * inv
			b1 := edge(v2, v0, sx, sy) * inv
			b2 := edge(v0, v1, sx, sy) * inv
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}
			z := b0*v0.z + b1*v1.z + b2*v2.z
			if z < 0 || z > 1 {
				continue
			}
			i := py*t.width + px
			if z >= t.depth[i] {
				continue
			}
			t.depth[i] = z
			q := b0*v0.invW + b1*v1.invW + b2*v2.invW
			attr := v0.attr.Mul(b0).Add(v1.attr.Mul(b1)).Add(v2.attr.Mul(b2)).Mul(1 / q)
			frag(i, attr)
		}
	}
}

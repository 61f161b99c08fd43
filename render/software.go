// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/colorview/coord"
	"github.com/gogpu/colorview/internal/parallel"
	"github.com/gogpu/colorview/mesh"
	"github.com/gogpu/colorview/pick"
)

// Software is a CPU renderer.
//
// The visible pass is Gouraud-shaded: each vertex is colored from its
// embed payload and colors are interpolated across the triangle. The pick
// pass interpolates the payload itself, perspective-correct, so the value
// read back is exact for any point on a triangle.
//
// The pick target is a float RGBA buffer with its own depth buffer, both
// sized to the viewport. Each pick pass clears and rasterizes only the
// requested pixel.
//
// The visible pass is split into horizontal bands rasterized by a worker
// pool. Bands own disjoint pixels, so the result does not depend on the
// number of workers.
type Software struct {
	cfg    Config
	meshes []*mesh.Mesh
	pool   *parallel.Pool
	tris   [][3]clipVertex

	color   *image.RGBA
	visible depthTarget

	pick      []float32
	pickDepth depthTarget

	destroyed bool
}

// NewSoftware creates a software renderer of cfg.Width×cfg.Height.
func NewSoftware(cfg Config) (*Software, error) {
	r := &Software{cfg: cfg, pool: parallel.NewPool(cfg.Workers)}
	if err := r.Resize(cfg.Width, cfg.Height); err != nil {
		r.pool.Close()
		return nil, err
	}
	return r, nil
}

// Name returns "software".
func (r *Software) Name() string { return BackendSoftware }

// Capabilities reports a CPU renderer without size limit.
func (r *Software) Capabilities() Capabilities {
	return Capabilities{}
}

// Upload stores a copy of m.
func (r *Software) Upload(m *mesh.Mesh) (MeshID, error) {
	if r.destroyed {
		return 0, ErrDestroyed
	}
	if err := m.Validate(); err != nil {
		return 0, fmt.Errorf("render: upload: %w", err)
	}
	cp := &mesh.Mesh{
		Positions: append([]mgl32.Vec3(nil), m.Positions...),
		Embed:     append([]mgl32.Vec3(nil), m.Embed...),
	}
	r.meshes = append(r.meshes, cp)
	return MeshID(len(r.meshes)), nil
}

func (r *Software) mesh(id MeshID) (*mesh.Mesh, error) {
	if id == 0 || int(id) > len(r.meshes) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMesh, id)
	}
	return r.meshes[id-1], nil
}

// Resize reallocates the targets when the size changes.
func (r *Software) Resize(width, height int) error {
	if r.destroyed {
		return ErrDestroyed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if r.color != nil && r.visible.width == width && r.visible.height == height {
		return nil
	}
	r.color = image.NewRGBA(image.Rect(0, 0, width, height))
	r.visible.resize(width, height)
	r.pick = make([]float32, 4*width*height)
	r.pickDepth.resize(width, height)
	return nil
}

// Size returns the viewport size.
func (r *Software) Size() (int, int) {
	return r.visible.width, r.visible.height
}

func (r *Software) bounds() image.Rectangle {
	return image.Rect(0, 0, r.visible.width, r.visible.height)
}

// RenderVisible clears to the background and draws every draw.
func (r *Software) RenderVisible(draws []Draw) error {
	if r.destroyed {
		return ErrDestroyed
	}
	// Vertex stage once per frame; bands only rasterize.
	r.tris = r.tris[:0]
	shade := func(e mgl32.Vec3) mgl32.Vec3 {
		cr, cg, cb := r.cfg.Mapping.RGB(coord.ToCylindrical(e))
		return mgl32.Vec3{cr, cg, cb}
	}
	for _, d := range draws {
		m, err := r.mesh(d.Mesh)
		if err != nil {
			return err
		}
		r.tris = transform(r.tris, m, d, shade)
	}

	bg := r.cfg.background()
	pix := r.color.Pix
	stride := r.color.Stride
	write := func(i int, c mgl32.Vec3) {
		o := i * 4
		pix[o] = unorm8(c[0])
		pix[o+1] = unorm8(c[1])
		pix[o+2] = unorm8(c[2])
		pix[o+3] = 0xff
	}
	bands := parallel.Bands(r.bounds(), 2*r.pool.Workers())
	r.pool.Run(bands, func(band image.Rectangle) {
		for y := band.Min.Y; y < band.Max.Y; y++ {
			row := pix[y*stride : y*stride+4*band.Dx()]
			for i := 0; i < len(row); i += 4 {
				row[i], row[i+1], row[i+2], row[i+3] = bg.R, bg.G, bg.B, bg.A
			}
		}
		r.visible.clearDepth(band)
		for _, tri := range r.tris {
			r.visible.triangle(tri, band, write)
		}
	})
	return nil
}

// RenderPick clears pixel (x, y) of the pick target, draws into it and
// returns it.
func (r *Software) RenderPick(draws []Draw, x, y int) (Pixel, error) {
	if r.destroyed {
		return Pixel{}, ErrDestroyed
	}
	if !image.Pt(x, y).In(r.bounds()) {
		return Pixel{}, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	scissor := image.Rect(x, y, x+1, y+1)
	r.pickDepth.clearDepth(scissor)
	o := 4 * (y*r.visible.width + x)
	clear(r.pick[o : o+4])

	for _, d := range draws {
		m, err := r.mesh(d.Mesh)
		if err != nil {
			return Pixel{}, err
		}
		tag := d.Tag
		frag := func(i int, e mgl32.Vec3) {
			px := pick.Encode(e, tag)
			copy(r.pick[4*i:4*i+4], px[:])
		}
		r.tris = transform(r.tris[:0], m, d, nil)
		for _, tri := range r.tris {
			r.pickDepth.triangle(tri, scissor, frag)
		}
	}
	var px Pixel
	copy(px[:], r.pick[o:o+4])
	return px, nil
}

// transform runs the vertex stage for every triangle of m and appends
// the results to dst. shade, when non-nil, turns the transformed embed
// into the interpolated attribute.
func transform(dst [][3]clipVertex, m *mesh.Mesh, d Draw, shade func(mgl32.Vec3) mgl32.Vec3) [][3]clipVertex {
	mvp := d.ViewProj.Mul4(d.Model)
	var tri [3]clipVertex
	for i := 0; i+2 < len(m.Positions); i += 3 {
		for k := 0; k < 3; k++ {
			e := d.Embed.Mul4x1(m.Embed[i+k].Vec4(1)).Vec3()
			if shade != nil {
				e = shade(e)
			}
			tri[k] = clipVertex{pos: mvp.Mul4x1(m.Positions[i+k].Vec4(1)), attr: e}
		}
		dst = append(dst, tri)
	}
	return dst
}

// Snapshot returns a copy of the visible pass.
func (r *Software) Snapshot() (*image.RGBA, error) {
	if r.destroyed {
		return nil, ErrDestroyed
	}
	img := image.NewRGBA(r.color.Rect)
	copy(img.Pix, r.color.Pix)
	return img, nil
}

// At returns the visible-pass color at (x, y).
func (r *Software) At(x, y int) color.RGBA {
	return r.color.RGBAAt(x, y)
}

// Destroy releases the targets and meshes.
func (r *Software) Destroy() {
	if !r.destroyed {
		r.pool.Close()
	}
	r.destroyed = true
	r.meshes = nil
	r.color = nil
	r.pick = nil
	r.visible = depthTarget{}
	r.pickDepth = depthTarget{}
}

func unorm8(f float32) uint8 {
	if !(f > 0) {
		return 0
	}
	if f >= 1 {
		return 0xff
	}
	return uint8(f*255 + 0.5)
}

var (
	_ CapableRenderer = (*Software)(nil)
	_ Snapshotter     = (*Software)(nil)
)

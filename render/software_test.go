// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/colorview/camera"
	"github.com/gogpu/colorview/colorspace"
	"github.com/gogpu/colorview/coord"
	"github.com/gogpu/colorview/mesh"
	"github.com/gogpu/colorview/pick"
)

func newTestSoftware(t *testing.T, w, h int) *Software {
	t.Helper()
	r, err := NewSoftware(Config{Width: w, Height: h})
	if err != nil {
		t.Fatalf("NewSoftware: %v", err)
	}
	t.Cleanup(r.Destroy)
	return r
}

func upload(t *testing.T, r Renderer, m *mesh.Mesh) MeshID {
	t.Helper()
	id, err := r.Upload(m)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	return id
}

// quadAt draws the [-1,1]² quad in screen space at depth z.
func quadAt(id MeshID, z float32, tag pick.Tag, payload mgl32.Vec3) Draw {
	return Draw{
		Mesh:     id,
		ViewProj: mgl32.Ident4(),
		Model:    mgl32.Translate3D(0, 0, z),
		Embed:    mgl32.Translate3D(payload[0], payload[1], payload[2]).Mul4(mgl32.Scale3D(0, 0, 0)),
		Tag:      tag,
	}
}

func TestSoftwareNewInvalidSize(t *testing.T) {
	for _, sz := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		if _, err := NewSoftware(Config{Width: sz[0], Height: sz[1]}); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewSoftware(%v) error = %v, want ErrInvalidSize", sz, err)
		}
	}
}

func TestSoftwarePickClearedIsMiss(t *testing.T) {
	r := newTestSoftware(t, 16, 16)
	px, err := r.RenderPick(nil, 3, 4)
	if err != nil {
		t.Fatalf("RenderPick: %v", err)
	}
	if px != (Pixel{}) {
		t.Errorf("cleared pixel = %v, want zero", px)
	}
	if s := pick.Decode(px); s.Tag != pick.TagNone {
		t.Errorf("cleared pixel decodes to %v", s.Tag)
	}
}

func TestSoftwarePickOutOfBounds(t *testing.T) {
	r := newTestSoftware(t, 16, 8)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {16, 0}, {0, 8}} {
		if _, err := r.RenderPick(nil, p[0], p[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("RenderPick(%v) error = %v, want ErrOutOfBounds", p, err)
		}
	}
}

func TestSoftwarePickNearestWinsRegardlessOfOrder(t *testing.T) {
	r := newTestSoftware(t, 8, 8)
	id := upload(t, r, mesh.Quad())
	nearQ := quadAt(id, 0.3, pick.TagSaturation, mgl32.Vec3{0.1, 0.2, 0.3})
	farQ := quadAt(id, 0.6, pick.TagValue, mgl32.Vec3{0.4, 0.5, 0.6})

	for name, draws := range map[string][]Draw{
		"near first": {nearQ, farQ},
		"far first":  {farQ, nearQ},
	} {
		px, err := r.RenderPick(draws, 4, 4)
		if err != nil {
			t.Fatalf("%s: RenderPick: %v", name, err)
		}
		s := pick.Decode(px)
		if s.Tag != pick.TagSaturation || !s.Position.ApproxEqualThreshold(mgl32.Vec3{0.1, 0.2, 0.3}, 1e-6) {
			t.Errorf("%s: sample = %+v, want near quad", name, s)
		}
	}
}

func TestSoftwarePickOnlyTouchesScissor(t *testing.T) {
	r := newTestSoftware(t, 8, 8)
	id := upload(t, r, mesh.Quad())
	if _, err := r.RenderPick([]Draw{quadAt(id, 0.5, pick.TagVolume, mgl32.Vec3{})}, 2, 2); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 8*8; i++ {
		if i == 2*8+2 {
			continue
		}
		if r.pick[4*i+3] != 0 {
			t.Fatalf("pixel %d written outside the scissor", i)
		}
	}
}

func TestSoftwarePickVolumeSurface(t *testing.T) {
	const w, h = 64, 48
	r := newTestSoftware(t, w, h)
	id := upload(t, r, mesh.Cylinder(64))
	cam := camera.Default()
	d := Draw{Mesh: id, ViewProj: cam.ViewProjection(w, h), Model: mgl32.Ident4(), Embed: mgl32.Ident4(), Tag: pick.TagVolume}

	px, err := r.RenderPick([]Draw{d}, w/2, h/2)
	if err != nil {
		t.Fatal(err)
	}
	s := pick.Decode(px)
	if s.Tag != pick.TagVolume {
		t.Fatalf("center pixel tag = %v, want volume", s.Tag)
	}
	c := s.Cylindrical()
	onSide := c.Radius > 0.97 && c.Height >= 0 && c.Height <= 1
	onTop := c.Radius <= 1.0001 && c.Height > 0.999
	if !onSide && !onTop {
		t.Errorf("center pixel %+v not on the cylinder surface", c)
	}

	corner, err := r.RenderPick([]Draw{d}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if pick.Decode(corner).Tag != pick.TagNone {
		t.Errorf("corner pixel hit %v, want background", pick.Decode(corner).Tag)
	}
}

func TestSoftwareVisibleChipColor(t *testing.T) {
	r, err := NewSoftware(Config{Width: 20, Height: 20, Mapping: colorspace.HSV})
	if err != nil {
		t.Fatal(err)
	}
	id := upload(t, r, mesh.Quad())
	red := coord.FromCylindrical(coord.Cylindrical{Angle: 0, Radius: 1, Height: 1})
	if err := r.RenderVisible([]Draw{quadAt(id, 0, pick.TagNone, red)}); err != nil {
		t.Fatal(err)
	}
	if got := r.At(10, 10); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("quad color = %v, want red", got)
	}

	if err := r.RenderVisible(nil); err != nil {
		t.Fatal(err)
	}
	if got := r.At(10, 10); got != DefaultBackground {
		t.Errorf("cleared color = %v, want background %v", got, DefaultBackground)
	}
}

func TestSoftwareVisibleIndependentOfWorkers(t *testing.T) {
	const w, h = 40, 30
	cam := camera.Default()
	renderWith := func(workers int) []byte {
		r, err := NewSoftware(Config{Width: w, Height: h, Workers: workers})
		if err != nil {
			t.Fatal(err)
		}
		defer r.Destroy()
		id := upload(t, r, mesh.Cylinder(32))
		d := Draw{Mesh: id, ViewProj: cam.ViewProjection(w, h), Model: mgl32.Ident4(), Embed: mgl32.Ident4(), Tag: pick.TagVolume}
		if err := r.RenderVisible([]Draw{d}); err != nil {
			t.Fatal(err)
		}
		img, err := r.Snapshot()
		if err != nil {
			t.Fatal(err)
		}
		return img.Pix
	}
	serial, banded := renderWith(1), renderWith(5)
	for i := range serial {
		if serial[i] != banded[i] {
			t.Fatalf("byte %d differs: serial %d, banded %d", i, serial[i], banded[i])
		}
	}
}

func TestSoftwareResizeKeepsTargetsWhenUnchanged(t *testing.T) {
	r := newTestSoftware(t, 10, 10)
	pickBuf, img := &r.pick[0], r.color
	if err := r.Resize(10, 10); err != nil {
		t.Fatal(err)
	}
	if &r.pick[0] != pickBuf || r.color != img {
		t.Error("same-size resize reallocated targets")
	}
	if err := r.Resize(20, 5); err != nil {
		t.Fatal(err)
	}
	if len(r.pick) != 4*20*5 || len(r.pickDepth.depth) != 20*5 {
		t.Errorf("pick target not resized: %d floats", len(r.pick))
	}
	if w, h := r.Size(); w != 20 || h != 5 {
		t.Errorf("Size() = %dx%d, want 20x5", w, h)
	}
	if err := r.Resize(0, 5); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("Resize(0, 5) error = %v", err)
	}
}

func TestSoftwareUnknownMesh(t *testing.T) {
	r := newTestSoftware(t, 4, 4)
	d := Draw{Mesh: 42, ViewProj: mgl32.Ident4(), Model: mgl32.Ident4(), Embed: mgl32.Ident4()}
	if err := r.RenderVisible([]Draw{d}); !errors.Is(err, ErrUnknownMesh) {
		t.Errorf("RenderVisible error = %v, want ErrUnknownMesh", err)
	}
	if _, err := r.RenderPick([]Draw{d}, 0, 0); !errors.Is(err, ErrUnknownMesh) {
		t.Errorf("RenderPick error = %v, want ErrUnknownMesh", err)
	}
}

func TestSoftwareUploadValidates(t *testing.T) {
	r := newTestSoftware(t, 4, 4)
	if _, err := r.Upload(&mesh.Mesh{}); !errors.Is(err, mesh.ErrEmpty) {
		t.Errorf("Upload(empty) error = %v", err)
	}
}

func TestSoftwareUploadCopies(t *testing.T) {
	r := newTestSoftware(t, 4, 4)
	m := mesh.Quad()
	id := upload(t, r, m)
	m.Positions[0] = mgl32.Vec3{9, 9, 9}
	stored, _ := r.mesh(id)
	if stored.Positions[0] == m.Positions[0] {
		t.Error("Upload kept a reference to the caller's slice")
	}
}

func TestSoftwareDestroy(t *testing.T) {
	r := newTestSoftware(t, 4, 4)
	r.Destroy()
	if err := r.RenderVisible(nil); !errors.Is(err, ErrDestroyed) {
		t.Errorf("RenderVisible after Destroy = %v", err)
	}
	if _, err := r.Snapshot(); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Snapshot after Destroy = %v", err)
	}
}

func TestClipNear(t *testing.T) {
	v := [3]clipVertex{
		{pos: mgl32.Vec4{0, 0, -1, 1}},
		{pos: mgl32.Vec4{1, 0, 1, 1}},
		{pos: mgl32.Vec4{0, 1, 1, 1}},
	}
	got := clipNear(v, nil)
	if len(got) != 4 {
		t.Fatalf("one vertex behind: %d vertices, want 4", len(got))
	}
	for _, c := range got {
		if c.pos[2] < 0 {
			t.Errorf("vertex %v behind the near plane", c.pos)
		}
	}
	v[1].pos[2], v[2].pos[2] = -1, -1
	if got := clipNear(v, nil); len(got) != 0 {
		t.Errorf("fully behind: %d vertices, want 0", len(got))
	}
}

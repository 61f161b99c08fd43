// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/colorview/colorspace"
	"github.com/gogpu/colorview/mesh"
	"github.com/gogpu/colorview/pick"
)

// MeshID refers to a mesh uploaded to a renderer. The zero value refers to
// nothing.
type MeshID uint32

// Pixel is one texel of the pick target: embed xyz and tag.
type Pixel [4]float32

// Draw is one mesh drawn in a pass.
type Draw struct {
	Mesh MeshID
	// ViewProj is identity for screen-space widgets.
	ViewProj mgl32.Mat4
	Model    mgl32.Mat4
	Embed    mgl32.Mat4
	Tag      pick.Tag
}

// DefaultBackground is the visible-pass clear color.
var DefaultBackground = color.RGBA{R: 0x1e, G: 0x1f, B: 0x24, A: 0xff}

// Config configures a renderer at creation.
type Config struct {
	Width, Height int
	Mapping       colorspace.Mapping
	// Background is the visible-pass clear color. The zero value selects
	// DefaultBackground.
	Background color.RGBA
	// Device optionally shares the host's GPU device with GPU backends.
	Device DeviceHandle
	// Workers is the number of goroutines the software renderer rasterizes
	// with. Zero selects GOMAXPROCS.
	Workers int
	// Fallback, if set, is called by Default for each backend that fails
	// before the next one is tried.
	Fallback func(backend string, err error)
}

func (c Config) background() color.RGBA {
	if c.Background == (color.RGBA{}) {
		return DefaultBackground
	}
	return c.Background
}

// Renderer draws the two passes.
//
// Renderers are not safe for concurrent use; the frame loop owns them.
type Renderer interface {
	// Name returns the backend name.
	Name() string

	// Upload copies a mesh into renderer-owned storage. The returned id
	// stays valid until Destroy.
	Upload(m *mesh.Mesh) (MeshID, error)

	// Resize sets the viewport size. Targets are recreated only when the
	// size actually changes.
	Resize(width, height int) error

	// Size returns the viewport size.
	Size() (width, height int)

	// RenderVisible runs the visible pass.
	RenderVisible(draws []Draw) error

	// RenderPick runs the pick pass restricted to pixel (x, y) and
	// returns that pixel. Coordinates outside the viewport return
	// ErrOutOfBounds without rendering.
	RenderPick(draws []Draw, x, y int) (Pixel, error)

	// Destroy releases all resources. The renderer is unusable afterwards.
	Destroy()
}

// Snapshotter is implemented by renderers that can copy the visible pass
// to host memory.
type Snapshotter interface {
	Snapshot() (*image.RGBA, error)
}

// Capabilities describes a renderer.
type Capabilities struct {
	// IsGPU indicates a hardware renderer.
	IsGPU bool
	// MaxTextureSize is the largest viewport dimension (0 = unlimited).
	MaxTextureSize int
}

// CapableRenderer is implemented by renderers that report capabilities.
type CapableRenderer interface {
	Renderer
	Capabilities() Capabilities
}

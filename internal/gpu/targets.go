//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// depthFormat is the depth attachment format of both passes.
const depthFormat = gputypes.TextureFormatDepth32Float

// passTargets owns the color and depth attachments of one pass. They are
// sized to the viewport and recreated only when the size changes.
type passTargets struct {
	label  string
	format gputypes.TextureFormat

	colorTex  hal.Texture
	colorView hal.TextureView
	depthTex  hal.Texture
	depthView hal.TextureView

	width, height uint32
}

// EnsureTextures creates or recreates the attachments if the requested
// size differs from the current one. It is a no-op otherwise. On error,
// partially created resources are released.
func (pt *passTargets) EnsureTextures(device hal.Device, width, height uint32) (bool, error) {
	if pt.width == width && pt.height == height && pt.colorTex != nil {
		return false, nil
	}

	pt.destroyTextures(device)

	size := hal.Extent3D{
		Width:              width,
		Height:             height,
		DepthOrArrayLayers: 1,
	}

	colorTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         pt.label + "_color",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        pt.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return false, fmt.Errorf("create %s color texture: %w", pt.label, err)
	}
	pt.colorTex = colorTex

	colorView, err := device.CreateTextureView(colorTex, &hal.TextureViewDescriptor{
		Label: pt.label + "_color_view",
	})
	if err != nil {
		pt.destroyTextures(device)
		return false, fmt.Errorf("create %s color view: %w", pt.label, err)
	}
	pt.colorView = colorView

	depthTex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         pt.label + "_depth",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        depthFormat,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		pt.destroyTextures(device)
		return false, fmt.Errorf("create %s depth texture: %w", pt.label, err)
	}
	pt.depthTex = depthTex

	depthView, err := device.CreateTextureView(depthTex, &hal.TextureViewDescriptor{
		Label: pt.label + "_depth_view",
	})
	if err != nil {
		pt.destroyTextures(device)
		return false, fmt.Errorf("create %s depth view: %w", pt.label, err)
	}
	pt.depthView = depthView

	pt.width = width
	pt.height = height
	return true, nil
}

// destroyTextures releases all views and textures and resets the size.
func (pt *passTargets) destroyTextures(device hal.Device) {
	if pt.depthView != nil {
		device.DestroyTextureView(pt.depthView)
		pt.depthView = nil
	}
	if pt.depthTex != nil {
		device.DestroyTexture(pt.depthTex)
		pt.depthTex = nil
	}
	if pt.colorView != nil {
		device.DestroyTextureView(pt.colorView)
		pt.colorView = nil
	}
	if pt.colorTex != nil {
		device.DestroyTexture(pt.colorTex)
		pt.colorTex = nil
	}
	pt.width = 0
	pt.height = 0
}

// renderPassDescriptor clears color to clear and depth to 1.0.
func (pt *passTargets) renderPassDescriptor(clear gputypes.Color) *hal.RenderPassDescriptor {
	if pt.colorView == nil || pt.depthView == nil {
		return nil
	}
	return &hal.RenderPassDescriptor{
		Label: pt.label + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       pt.colorView,
				LoadOp:     gputypes.LoadOpClear,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: clear,
			},
		},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:            pt.depthView,
			DepthLoadOp:     gputypes.LoadOpClear,
			DepthStoreOp:    gputypes.StoreOpDiscard,
			DepthClearValue: 1.0,
			StencilLoadOp:   gputypes.LoadOpClear,
			StencilStoreOp:  gputypes.StoreOpDiscard,
		},
	}
}

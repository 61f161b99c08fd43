//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/colorview/mesh"
	"github.com/gogpu/colorview/render"
)

const (
	// vertexStride is position (vec3) followed by embed (vec3).
	vertexStride = 24

	// uniformSize is view_proj, model, embed (3×mat4) and params (vec4).
	uniformSize = 3*64 + 16

	// copyPitchAlignment is the required BytesPerRow alignment for
	// texture-to-buffer copies.
	copyPitchAlignment = 256

	// pickFormat stores embed xyz and the tag as 32-bit floats.
	pickFormat    = gputypes.TextureFormatRGBA32Float
	pickTexelSize = 16

	// defaultColorFormat is the visible-pass format without a host
	// surface preference.
	defaultColorFormat = gputypes.TextureFormatRGBA8Unorm

	// maxTextureSize is the WebGPU default limit for 2D textures.
	maxTextureSize = 8192

	fenceTimeout = 5 * time.Second
)

// ErrNotReady is returned when the renderer has no pipelines, typically
// after Destroy.
var ErrNotReady = errors.New("gpu: renderer not ready")

// gpuMesh is an uploaded vertex buffer.
type gpuMesh struct {
	buf   hal.Buffer
	count uint32
}

// drawSlot is the uniform buffer and bind group used by one draw of a
// pass. Slots are reused every frame and only grow.
type drawSlot struct {
	buf   hal.Buffer
	group hal.BindGroup
}

// Renderer draws the visible and pick passes with wgpu HAL.
//
// The visible pass renders into an offscreen color target (RGBA8Unorm or
// the host's surface format) with a Depth32Float attachment. The pick pass
// renders pickable draws into an RGBA32Float target, scissored to the
// pointer pixel, and copies that one texel into a persistent staging
// buffer.
type Renderer struct {
	instance       hal.Instance
	device         hal.Device
	queue          hal.Queue
	externalDevice bool

	cfg         render.Config
	colorFormat gputypes.TextureFormat

	shader          hal.ShaderModule
	uniformLayout   hal.BindGroupLayout
	pipeLayout      hal.PipelineLayout
	visiblePipeline hal.RenderPipeline
	pickPipeline    hal.RenderPipeline

	meshes       []gpuMesh
	visibleSlots []drawSlot
	pickSlots    []drawSlot
	uniformData  [uniformSize]byte

	visible passTargets
	pick    passTargets

	staging  hal.Buffer
	readback [pickTexelSize]byte
}

// New creates a renderer. When cfg.Device is set its HAL device is shared;
// otherwise a Vulkan device is opened.
func New(cfg render.Config) (*Renderer, error) {
	if cfg.Device != nil {
		device, queue, err := halFromProvider(cfg.Device)
		if err != nil {
			return nil, err
		}
		return NewWithDevice(device, queue, cfg)
	}
	instance, device, queue, err := openDevice()
	if err != nil {
		return nil, err
	}
	r, err := newRenderer(device, queue, cfg, false)
	if err != nil {
		device.Destroy()
		instance.Destroy()
		return nil, err
	}
	r.instance = instance
	return r, nil
}

// NewWithDevice creates a renderer on a device owned by the caller. The
// device is not destroyed by Destroy.
func NewWithDevice(device hal.Device, queue hal.Queue, cfg render.Config) (*Renderer, error) {
	return newRenderer(device, queue, cfg, true)
}

func newRenderer(device hal.Device, queue hal.Queue, cfg render.Config, external bool) (*Renderer, error) {
	r := &Renderer{
		device:         device,
		queue:          queue,
		externalDevice: external,
		cfg:            cfg,
		colorFormat:    render.SurfaceFormat(cfg.Device, defaultColorFormat),
	}
	r.visible = passTargets{label: "picker_visible", format: r.colorFormat}
	r.pick = passTargets{label: "picker_pick", format: pickFormat}

	if err := r.createPipelines(); err != nil {
		r.Destroy()
		return nil, fmt.Errorf("gpu: create pipelines: %w", err)
	}
	staging, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "picker_pick_staging",
		Size:  copyPitchAlignment,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		r.Destroy()
		return nil, fmt.Errorf("gpu: create staging buffer: %w", err)
	}
	r.staging = staging

	if err := r.Resize(cfg.Width, cfg.Height); err != nil {
		r.Destroy()
		return nil, err
	}
	slogger().Debug("gpu: picker renderer ready",
		"width", cfg.Width, "height", cfg.Height,
		"format", r.colorFormat, "external", external)
	return r, nil
}

// Name returns "gpu".
func (r *Renderer) Name() string { return render.BackendGPU }

// Capabilities reports a GPU renderer.
func (r *Renderer) Capabilities() render.Capabilities {
	return render.Capabilities{IsGPU: true, MaxTextureSize: maxTextureSize}
}

func (r *Renderer) createPipelines() error {
	shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "picker_shader",
		Source: hal.ShaderSource{WGSL: pickerShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile picker shader: %w", err)
	}
	r.shader = shader

	uniformLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "picker_uniform_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create uniform layout: %w", err)
	}
	r.uniformLayout = uniformLayout

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "picker_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{r.uniformLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout

	visible, err := r.createPipeline("picker_visible_pipeline", colorFragmentEntry, r.colorFormat)
	if err != nil {
		return err
	}
	r.visiblePipeline = visible

	pick, err := r.createPipeline("picker_pick_pipeline", pickFragmentEntry, pickFormat)
	if err != nil {
		return err
	}
	r.pickPipeline = pick
	return nil
}

// createPipeline builds a depth-tested (less) triangle-list pipeline
// without blending or culling.
func (r *Renderer) createPipeline(label, fragmentEntry string, format gputypes.TextureFormat) (hal.RenderPipeline, error) {
	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label,
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: vertexEntry,
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: fragmentEntry,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionLess,
			StencilFront: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilBack: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return pipeline, nil
}

func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1}, // embed
			},
		},
	}
}

// Upload creates a vertex buffer for m.
func (r *Renderer) Upload(m *mesh.Mesh) (render.MeshID, error) {
	if r.device == nil {
		return 0, render.ErrDestroyed
	}
	if err := m.Validate(); err != nil {
		return 0, fmt.Errorf("gpu: upload: %w", err)
	}
	data := packVertices(m)
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("picker_mesh_%d", len(r.meshes)+1),
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return 0, fmt.Errorf("gpu: create vertex buffer: %w", err)
	}
	r.queue.WriteBuffer(buf, 0, data)
	r.meshes = append(r.meshes, gpuMesh{buf: buf, count: uint32(m.Len())})
	return render.MeshID(len(r.meshes)), nil
}

func (r *Renderer) mesh(id render.MeshID) (gpuMesh, error) {
	if id == 0 || int(id) > len(r.meshes) {
		return gpuMesh{}, fmt.Errorf("%w: %d", render.ErrUnknownMesh, id)
	}
	return r.meshes[id-1], nil
}

// Resize recreates both passes' targets if the size changed.
func (r *Renderer) Resize(width, height int) error {
	if r.device == nil {
		return render.ErrDestroyed
	}
	if width <= 0 || height <= 0 || width > maxTextureSize || height > maxTextureSize {
		return fmt.Errorf("%w: %dx%d", render.ErrInvalidSize, width, height)
	}
	w, h := uint32(width), uint32(height)
	changed, err := r.visible.EnsureTextures(r.device, w, h)
	if err != nil {
		return fmt.Errorf("gpu: %w", err)
	}
	if _, err := r.pick.EnsureTextures(r.device, w, h); err != nil {
		return fmt.Errorf("gpu: %w", err)
	}
	if changed {
		slogger().Debug("gpu: targets recreated", "width", width, "height", height)
	}
	return nil
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return int(r.visible.width), int(r.visible.height)
}

// RenderVisible runs the visible pass.
func (r *Renderer) RenderVisible(draws []render.Draw) error {
	if r.visiblePipeline == nil {
		return ErrNotReady
	}
	if err := r.writeUniforms(&r.visibleSlots, "visible", draws); err != nil {
		return err
	}
	clearColor := backgroundColor(r.cfg.Background, r.colorFormat)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "picker_visible_encoder"})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("picker_visible_frame"); err != nil {
		return fmt.Errorf("gpu: begin encoding: %w", err)
	}
	rp := encoder.BeginRenderPass(r.visible.renderPassDescriptor(clearColor))
	if err := r.recordDraws(rp, r.visiblePipeline, r.visibleSlots, draws); err != nil {
		rp.End()
		encoder.DiscardEncoding()
		return err
	}
	rp.End()
	return r.submit(encoder)
}

// RenderPick runs the pick pass for pixel (x, y) and reads it back.
func (r *Renderer) RenderPick(draws []render.Draw, x, y int) (render.Pixel, error) {
	if r.pickPipeline == nil {
		return render.Pixel{}, ErrNotReady
	}
	if x < 0 || y < 0 || x >= int(r.pick.width) || y >= int(r.pick.height) {
		return render.Pixel{}, fmt.Errorf("%w: (%d, %d)", render.ErrOutOfBounds, x, y)
	}
	if err := r.writeUniforms(&r.pickSlots, "pick", draws); err != nil {
		return render.Pixel{}, err
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "picker_pick_encoder"})
	if err != nil {
		return render.Pixel{}, fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("picker_pick_frame"); err != nil {
		return render.Pixel{}, fmt.Errorf("gpu: begin encoding: %w", err)
	}

	// Cleared alpha decodes to "no hit".
	rp := encoder.BeginRenderPass(r.pick.renderPassDescriptor(gputypes.Color{}))
	rp.SetScissorRect(uint32(x), uint32(y), 1, 1)
	if err := r.recordDraws(rp, r.pickPipeline, r.pickSlots, draws); err != nil {
		rp.End()
		encoder.DiscardEncoding()
		return render.Pixel{}, err
	}
	rp.End()

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.pick.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(r.pick.colorTex, r.staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: copyPitchAlignment, RowsPerImage: 1},
		TextureBase: hal.ImageCopyTexture{
			Texture:  r.pick.colorTex,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: uint32(x), Y: uint32(y)},
			Aspect:   gputypes.TextureAspectAll,
		},
		Size: hal.Extent3D{Width: 1, Height: 1, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.pick.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})
	if err := r.submit(encoder); err != nil {
		return render.Pixel{}, err
	}

	clear(r.readback[:])
	if err := r.queue.ReadBuffer(r.staging, 0, r.readback[:]); err != nil {
		return render.Pixel{}, fmt.Errorf("gpu: pick readback: %w", err)
	}
	return decodePixel(r.readback[:]), nil
}

// recordDraws binds the pipeline and issues one draw per entry.
func (r *Renderer) recordDraws(rp hal.RenderPassEncoder, pipeline hal.RenderPipeline, slots []drawSlot, draws []render.Draw) error {
	rp.SetPipeline(pipeline)
	for i, d := range draws {
		m, err := r.mesh(d.Mesh)
		if err != nil {
			return err
		}
		rp.SetBindGroup(0, slots[i].group, nil)
		rp.SetVertexBuffer(0, m.buf, 0)
		rp.Draw(m.count, 1, 0, 0)
	}
	return nil
}

// writeUniforms uploads per-draw uniforms into *slots, growing it when a
// pass has more draws than ever before.
func (r *Renderer) writeUniforms(slots *[]drawSlot, pass string, draws []render.Draw) error {
	for len(*slots) < len(draws) {
		slot, err := r.createSlot(fmt.Sprintf("picker_%s_uniform_%d", pass, len(*slots)))
		if err != nil {
			return err
		}
		*slots = append(*slots, slot)
	}
	mapping := r.cfg.Mapping.ShaderIndex()
	for i, d := range draws {
		if _, err := r.mesh(d.Mesh); err != nil {
			return err
		}
		packUniforms(r.uniformData[:], d, mapping)
		r.queue.WriteBuffer((*slots)[i].buf, 0, r.uniformData[:])
	}
	return nil
}

func (r *Renderer) createSlot(label string) (drawSlot, error) {
	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return drawSlot{}, fmt.Errorf("gpu: create %s: %w", label, err)
	}
	group, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_group",
		Layout: r.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: buf.NativeHandle(), Offset: 0, Size: uniformSize}},
		},
	})
	if err != nil {
		r.device.DestroyBuffer(buf)
		return drawSlot{}, fmt.Errorf("gpu: create %s bind group: %w", label, err)
	}
	return drawSlot{buf: buf, group: group}, nil
}

// submit ends encoding, submits, and waits for the GPU.
func (r *Renderer) submit(encoder hal.CommandEncoder) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("gpu: end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("gpu: create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("gpu: submit: %w", err)
	}
	ok, err := r.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !ok {
		return fmt.Errorf("gpu: wait for GPU: ok=%v err=%w", ok, err)
	}
	return nil
}

// Snapshot copies the visible target to host memory.
func (r *Renderer) Snapshot() (*image.RGBA, error) {
	if r.visible.colorTex == nil {
		return nil, ErrNotReady
	}
	w, h := r.visible.width, r.visible.height
	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	size := uint64(alignedBytesPerRow) * uint64(h)

	buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "picker_snapshot_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create snapshot buffer: %w", err)
	}
	defer r.device.DestroyBuffer(buf)

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "picker_snapshot_encoder"})
	if err != nil {
		return nil, fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("picker_snapshot"); err != nil {
		return nil, fmt.Errorf("gpu: begin encoding: %w", err)
	}
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.visible.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(r.visible.colorTex, buf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: r.visible.colorTex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.visible.colorTex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})
	if err := r.submit(encoder); err != nil {
		return nil, err
	}

	data := make([]byte, size)
	if err := r.queue.ReadBuffer(buf, 0, data); err != nil {
		return nil, fmt.Errorf("gpu: snapshot readback: %w", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	unpadRows(img.Pix, data, int(bytesPerRow), int(alignedBytesPerRow), int(h))
	if isBGRA(r.colorFormat) {
		swapRB(img.Pix)
	}
	return img, nil
}

// Destroy releases all GPU resources. The device is destroyed only when
// the renderer opened it.
func (r *Renderer) Destroy() {
	if r.device == nil {
		return
	}
	for _, s := range append(r.visibleSlots, r.pickSlots...) {
		r.device.DestroyBindGroup(s.group)
		r.device.DestroyBuffer(s.buf)
	}
	r.visibleSlots, r.pickSlots = nil, nil
	for _, m := range r.meshes {
		r.device.DestroyBuffer(m.buf)
	}
	r.meshes = nil
	if r.staging != nil {
		r.device.DestroyBuffer(r.staging)
		r.staging = nil
	}
	r.visible.destroyTextures(r.device)
	r.pick.destroyTextures(r.device)
	r.destroyPipelines()

	if !r.externalDevice {
		r.device.Destroy()
		if r.instance != nil {
			r.instance.Destroy()
			r.instance = nil
		}
	}
	r.device = nil
	r.queue = nil
}

func (r *Renderer) destroyPipelines() {
	if r.pickPipeline != nil {
		r.device.DestroyRenderPipeline(r.pickPipeline)
		r.pickPipeline = nil
	}
	if r.visiblePipeline != nil {
		r.device.DestroyRenderPipeline(r.visiblePipeline)
		r.visiblePipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.uniformLayout != nil {
		r.device.DestroyBindGroupLayout(r.uniformLayout)
		r.uniformLayout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
}

// packVertices interleaves positions and embed payload as little-endian
// float32.
func packVertices(m *mesh.Mesh) []byte {
	data := make([]byte, m.Len()*vertexStride)
	for i := range m.Positions {
		o := i * vertexStride
		putVec3(data[o:], m.Positions[i])
		putVec3(data[o+12:], m.Embed[i])
	}
	return data
}

// packUniforms writes one draw's uniforms in WGSL layout. mgl32 matrices
// are column-major like WGSL's mat4x4.
func packUniforms(dst []byte, d render.Draw, mapping float32) {
	putMat4(dst[0:], d.ViewProj)
	putMat4(dst[64:], d.Model)
	putMat4(dst[128:], d.Embed)
	putFloat(dst[192:], float32(d.Tag))
	putFloat(dst[196:], mapping)
	putFloat(dst[200:], 0)
	putFloat(dst[204:], 0)
}

func putFloat(dst []byte, f float32) {
	binary.LittleEndian.PutUint32(dst, math.Float32bits(f))
}

func putVec3(dst []byte, v mgl32.Vec3) {
	for k := 0; k < 3; k++ {
		putFloat(dst[4*k:], v[k])
	}
}

func putMat4(dst []byte, m mgl32.Mat4) {
	for k := 0; k < 16; k++ {
		putFloat(dst[4*k:], m[k])
	}
}

// decodePixel reads an RGBA32Float texel.
func decodePixel(b []byte) render.Pixel {
	var px render.Pixel
	for k := 0; k < 4; k++ {
		px[k] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*k:]))
	}
	return px
}

// unpadRows strips per-row copy padding.
func unpadRows(dst, src []byte, rowBytes, pitch, rows int) {
	if rowBytes == pitch {
		copy(dst, src[:rowBytes*rows])
		return
	}
	for row := 0; row < rows; row++ {
		copy(dst[row*rowBytes:(row+1)*rowBytes], src[row*pitch:row*pitch+rowBytes])
	}
}

func swapRB(pix []byte) {
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i], pix[i+2] = pix[i+2], pix[i]
	}
}

func isBGRA(f gputypes.TextureFormat) bool {
	return f == gputypes.TextureFormatBGRA8Unorm || f == gputypes.TextureFormatBGRA8UnormSrgb
}

// isUnormFormat reports whether the visible format stores shader output
// without sRGB encoding.
func isUnormFormat(f gputypes.TextureFormat) bool {
	return f != gputypes.TextureFormatRGBA8UnormSrgb && f != gputypes.TextureFormatBGRA8UnormSrgb
}

// backgroundColor converts the configured clear color for format. sRGB
// targets expect a linear clear value.
func backgroundColor(bg color.RGBA, format gputypes.TextureFormat) gputypes.Color {
	if bg == (color.RGBA{}) {
		bg = render.DefaultBackground
	}
	c := colorful.Color{R: float64(bg.R) / 255, G: float64(bg.G) / 255, B: float64(bg.B) / 255}
	if !isUnormFormat(format) {
		c.R, c.G, c.B = c.LinearRgb()
	}
	return gputypes.Color{R: c.R, G: c.G, B: c.B, A: float64(bg.A) / 255}
}

var (
	_ render.CapableRenderer = (*Renderer)(nil)
	_ render.Snapshotter     = (*Renderer)(nil)
)

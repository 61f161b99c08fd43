//go:build !nogpu

// Package gpu registers the wgpu HAL picker renderer as the "gpu" render
// backend.
//
// Import it for its side effect. Default backend selection then prefers
// the GPU and falls back to the software renderer when no adapter can be
// opened.
//
// Usage:
//
//	import _ "github.com/gogpu/colorview/gpu" // enable the GPU backend
package gpu

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/naga"

	gpuimpl "github.com/gogpu/colorview/internal/gpu"
	"github.com/gogpu/colorview/render"
)

var (
	providerMu sync.RWMutex
	provider   render.DeviceHandle
)

func init() {
	render.Register(render.BackendGPU, render.PriorityGPU, newRenderer)
}

func newRenderer(cfg render.Config) (render.Renderer, error) {
	if cfg.Device == nil {
		providerMu.RLock()
		cfg.Device = provider
		providerMu.RUnlock()
	}
	r, err := gpuimpl.New(cfg)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// SetDeviceProvider makes GPU renderers created without Config.Device
// share the host's device. The provider must expose its HAL device and
// queue through HalDevice() any and HalQueue() any. Pass nil to let
// renderers open their own device again.
func SetDeviceProvider(p render.DeviceHandle) error {
	if p != nil {
		if _, ok := p.(interface {
			HalDevice() any
			HalQueue() any
		}); !ok {
			return gpuimpl.ErrNotHALProvider
		}
	}
	providerMu.Lock()
	provider = p
	providerMu.Unlock()
	return nil
}

// SetLogger sets the logger of the GPU renderer. Pass nil to silence it.
func SetLogger(l *slog.Logger) {
	gpuimpl.SetLogger(l)
}

// ErrEmptyShader is returned by CompileShaders when the embedded shader
// source is missing.
var ErrEmptyShader = errors.New("gpu: empty shader source")

// CompileShaders compiles the picker shader to SPIR-V without touching a
// device. Hosts use it to fail fast before opening a window.
func CompileShaders() ([]byte, error) {
	src := gpuimpl.ShaderSource()
	if src == "" {
		return nil, ErrEmptyShader
	}
	spirv, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("gpu: compile picker shader: %w", err)
	}
	return spirv, nil
}

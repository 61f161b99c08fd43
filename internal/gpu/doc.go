//go:build !nogpu

// Package gpu implements the picker renderer on wgpu HAL.
//
// Two pipelines share one WGSL module and one vertex layout. The visible
// pipeline shades the color volume from each vertex's embed payload. The
// pick pipeline writes the embedded cylindrical point and the widget tag
// into an RGBA32Float target that is read back one pixel at a time.
//
// The renderer is registered as the "gpu" render backend by the public
// gpu package.
package gpu

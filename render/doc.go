// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the renderer abstraction behind the color picker's
// two passes and ships the CPU implementation.
//
// # Passes
//
// The visible pass clears color and depth, then draws every widget with
// its color computed from the embed payload. The pick pass clears an RGBA
// float target to zero and its depth to 1, draws only pickable widgets, and
// writes (x, y, z, tag) per fragment, where xyz is the embed payload. Depth
// testing (less) decides which fragment survives, so overlap is resolved by
// distance and never by draw order. Only the pixel under the pointer is
// rasterized and read back.
//
// # Resources
//
// Meshes are uploaded once and referenced by MeshID for the renderer's
// lifetime. Render targets are sized to the viewport and reallocated only
// when Resize changes the size.
//
// # Backends
//
// Backends register a Factory under a name with a priority. The software
// renderer registers itself as "software" with the lowest priority; import
// github.com/gogpu/colorview/gpu to add the wgpu renderer.
package render

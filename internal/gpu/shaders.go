//go:build !nogpu

package gpu

import (
	_ "embed"
)

// pickerShaderSource holds the vertex stage shared by both passes and the
// two fragment stages.
//
//go:embed shaders/picker.wgsl
var pickerShaderSource string

// Shader entry points.
const (
	vertexEntry        = "vs_main"
	colorFragmentEntry = "fs_color"
	pickFragmentEntry  = "fs_pick"
)

// ShaderSource returns the WGSL source of the picker shader.
func ShaderSource() string {
	return pickerShaderSource
}

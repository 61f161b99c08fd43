// Package colorspace maps cylindrical color-volume coordinates to RGB.
//
// Two mappings are provided. HSV reads angle, radius and height directly as
// hue, saturation and value. LCh reads them as hue angle, chroma and
// lightness in CIE L*C*h° (D65), which keeps equal steps closer to equal
// perceived differences. The GPU shader implements the same formulas; the
// Go side is the reference used by the software renderer, the preview chip
// and the onSelect callback.
package colorspace

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/colorview/coord"
)

// Mapping selects how cylindrical coordinates become colors.
type Mapping uint8

const (
	// HSV maps angle, radius and height to hue, saturation and value.
	HSV Mapping = iota
	// LCh maps angle, radius and height to CIE hue, chroma and lightness.
	LCh
)

// ChromaScale is the LCh chroma reached at radius 1. Larger values leave
// the sRGB gamut over most hues and clip.
const ChromaScale = 0.5

// ErrUnknownMapping is returned by ParseMapping.
var ErrUnknownMapping = errors.New("colorspace: unknown mapping")

// ParseMapping parses "hsv" or "lch" (case-insensitive).
func ParseMapping(s string) (Mapping, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "hsv":
		return HSV, nil
	case "lch", "hcl":
		return LCh, nil
	}
	return HSV, fmt.Errorf("%w: %q", ErrUnknownMapping, s)
}

func (m Mapping) String() string {
	switch m {
	case HSV:
		return "hsv"
	case LCh:
		return "lch"
	}
	return fmt.Sprintf("Mapping(%d)", uint8(m))
}

// ShaderIndex is the value the GPU shader switches on.
func (m Mapping) ShaderIndex() float32 {
	return float32(m)
}

// Color returns the color of c, clamped to the sRGB gamut. Radius and
// height are clamped to [0, 1] first.
func (m Mapping) Color(c coord.Cylindrical) colorful.Color {
	hue := float64(c.Turns()) * 360
	r := float64(clamp01(c.Radius))
	h := float64(clamp01(c.Height))
	switch m {
	case LCh:
		return colorful.Hcl(hue, r*ChromaScale, h).Clamped()
	default:
		return colorful.Hsv(hue, r, h).Clamped()
	}
}

// RGB returns the color of c as float components in [0, 1].
func (m Mapping) RGB(c coord.Cylindrical) (r, g, b float32) {
	col := m.Color(c)
	return float32(col.R), float32(col.G), float32(col.B)
}

// RGBA8 returns the opaque 8-bit color of c.
func (m Mapping) RGBA8(c coord.Cylindrical) color.RGBA {
	r, g, b := m.Color(c).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Hex returns the color of c as "#rrggbb".
func (m Mapping) Hex(c coord.Cylindrical) string {
	return m.Color(c).Hex()
}

func clamp01(f float32) float32 {
	if math32.IsNaN(f) {
		return 0
	}
	return math32.Max(0, math32.Min(1, f))
}

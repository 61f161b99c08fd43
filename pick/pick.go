// Package pick holds the selection state machine of the color picker.
//
// Every frame the pick pass writes, for the frontmost pickable surface
// under each pixel, a cartesian position in the color volume and the tag
// of the widget that produced it. The pixel under the pointer is decoded
// into a Sample, and Update folds it into the State. Update is pure and
// needs no rendering context.
package pick

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/colorview/coord"
)

// Tag identifies the widget that produced a pick-pass pixel.
type Tag uint8

// Tags form a closed set. Any other value means no hit.
const (
	TagNone       Tag = 0
	TagHue        Tag = 1
	TagSaturation Tag = 2
	TagValue      Tag = 3
	TagVolume     Tag = 7
)

// Valid reports whether t is one of the defined tags.
func (t Tag) Valid() bool {
	switch t {
	case TagNone, TagHue, TagSaturation, TagValue, TagVolume:
		return true
	}
	return false
}

// Hit reports whether t identifies a pickable widget.
func (t Tag) Hit() bool {
	return t != TagNone && t.Valid()
}

// Normalize folds unknown tags into TagNone.
func (t Tag) Normalize() Tag {
	if !t.Valid() {
		return TagNone
	}
	return t
}

func (t Tag) String() string {
	switch t {
	case TagNone:
		return "none"
	case TagHue:
		return "hue"
	case TagSaturation:
		return "saturation"
	case TagValue:
		return "value"
	case TagVolume:
		return "volume"
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}

// maxAlpha bounds the alpha channel accepted by Decode. Anything above the
// largest tag plus rounding slack is garbage.
const maxAlpha = float32(TagVolume) + 0.5

// Sample is the decoded pick-pass pixel under the pointer.
type Sample struct {
	Position mgl32.Vec3
	Tag      Tag
}

// Miss is the sample for "nothing under the pointer".
var Miss = Sample{}

// Cylindrical returns the sample position in cylindrical form.
func (s Sample) Cylindrical() coord.Cylindrical {
	return coord.ToCylindrical(s.Position)
}

// Encode packs a position and tag into a pick-pass pixel.
func Encode(pos mgl32.Vec3, tag Tag) [4]float32 {
	return [4]float32{pos[0], pos[1], pos[2], float32(tag)}
}

// Decode unpacks a pick-pass pixel. The tag is the rounded alpha channel.
// Non-finite channels, alpha outside the tag range and unknown tags all
// decode to Miss.
func Decode(px [4]float32) Sample {
	for _, c := range px {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return Miss
		}
	}
	a := px[3]
	if a < 0 || a >= maxAlpha {
		return Miss
	}
	tag := Tag(math32.Round(a))
	if !tag.Hit() {
		return Miss
	}
	return Sample{Position: mgl32.Vec3{px[0], px[1], px[2]}, Tag: tag}
}

// Resolve computes the next current coordinate from the previous one, the
// committed one, and a sample. Axis tags replace one component of prev;
// the volume tag replaces all three; anything else falls back to saved.
func Resolve(prev, saved coord.Cylindrical, s Sample) coord.Cylindrical {
	if s.Tag.Hit() && !coord.FiniteVec(s.Position) {
		return saved
	}
	switch s.Tag {
	case TagHue:
		c := s.Cylindrical()
		return coord.Cylindrical{Angle: c.Angle, Radius: prev.Radius, Height: prev.Height}
	case TagSaturation:
		c := s.Cylindrical()
		return coord.Cylindrical{Angle: prev.Angle, Radius: c.Radius, Height: prev.Height}
	case TagValue:
		return coord.Cylindrical{Angle: prev.Angle, Radius: prev.Radius, Height: s.Position[1]}
	case TagVolume:
		return s.Cylindrical()
	default:
		return saved
	}
}

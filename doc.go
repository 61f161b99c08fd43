// Package colorview is a 3D color picker driven by GPU picking.
//
// The selectable colors form a cylinder: angle is hue, radius is
// saturation and height is value. A View draws that volume together with
// three axis handles, a cursor cube at the current coordinate and a
// preview chip showing the saved color. Every frame it renders a second,
// offscreen pass in which each pickable surface writes the cylindrical
// point it stands for plus a widget tag, reads back the single pixel under
// the pointer, and updates the selection from it:
//
//   - the hue ring changes only the angle
//   - the saturation strip changes only the radius
//   - the value bar changes only the height
//   - the volume itself changes all three
//
// Pressing the primary button commits the current coordinate as the saved
// one and reports its color through the WithOnSelect callback.
//
// # Quick start
//
//	v, err := colorview.New(colorview.WithSize(640, 480))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer v.Close()
//
//	out, err := v.Frame([]input.Event{input.PointerMove{X: 320, Y: 240}})
//
// Hosts that own a window implement Host and hand control to
// RunRenderLoop.
//
// # Backends
//
// The CPU renderer is always available. Import
// github.com/gogpu/colorview/gpu to register the wgpu renderer, which is
// preferred when a GPU adapter can be opened.
//
// # Logging
//
// colorview is silent by default. Call SetLogger or pass WithLogger to
// enable log/slog output.
package colorview

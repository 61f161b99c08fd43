package main

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/gogpu/colorview/input"
)

// pickerWidget shows the latest frame and queues pointer input for the
// render loop. Positions are converted from fyne units to raster pixels.
type pickerWidget struct {
	widget.BaseWidget
	raster *canvas.Raster

	mu     sync.Mutex
	events []input.Event
	frame  image.Image
	width  int
	height int
	scale  float32
}

var (
	_ desktop.Mouseable = (*pickerWidget)(nil)
	_ desktop.Hoverable = (*pickerWidget)(nil)
	_ fyne.Draggable    = (*pickerWidget)(nil)
	_ fyne.Scrollable   = (*pickerWidget)(nil)
)

func newPickerWidget(width, height int) *pickerWidget {
	p := &pickerWidget{width: width, height: height, scale: 1}
	p.raster = canvas.NewRaster(p.draw)
	p.raster.ScaleMode = canvas.ImageScalePixels
	p.raster.SetMinSize(fyne.NewSize(float32(width)/2, float32(height)/2))
	p.ExtendBaseWidget(p)
	return p
}

// draw is the raster generator. It is called with the raster size in
// pixels, which is where viewport resizes are detected.
func (p *pickerWidget) draw(w, h int) image.Image {
	p.mu.Lock()
	defer p.mu.Unlock()
	if w > 0 && h > 0 && (w != p.width || h != p.height) {
		p.width, p.height = w, h
		p.events = append(p.events, input.Resize{Width: w, Height: h})
	}
	if sz := p.Size(); sz.Width > 0 {
		p.scale = float32(w) / sz.Width
	}
	if p.frame == nil {
		return image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return p.frame
}

// setFrame replaces the displayed image.
func (p *pickerWidget) setFrame(img image.Image) {
	p.mu.Lock()
	p.frame = img
	p.mu.Unlock()
	p.raster.Refresh()
}

// drain returns and clears the queued events.
func (p *pickerWidget) drain() []input.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	ev := p.events
	p.events = nil
	return ev
}

func (p *pickerWidget) push(ev input.Event) {
	p.mu.Lock()
	p.events = append(p.events, ev)
	p.mu.Unlock()
}

func (p *pickerWidget) pixel(pos fyne.Position) (float32, float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return pos.X * p.scale, pos.Y * p.scale
}

func button(b desktop.MouseButton) input.Button {
	switch b {
	case desktop.MouseButtonSecondary:
		return input.ButtonSecondary
	case desktop.MouseButtonTertiary:
		return input.ButtonMiddle
	}
	return input.ButtonPrimary
}

func (p *pickerWidget) MouseDown(ev *desktop.MouseEvent) {
	x, y := p.pixel(ev.Position)
	p.push(input.PointerPress{Button: button(ev.Button), X: x, Y: y})
}

func (p *pickerWidget) MouseUp(ev *desktop.MouseEvent) {
	x, y := p.pixel(ev.Position)
	p.push(input.PointerRelease{Button: button(ev.Button), X: x, Y: y})
}

func (p *pickerWidget) MouseIn(ev *desktop.MouseEvent) {
	p.MouseMoved(ev)
}

func (p *pickerWidget) MouseMoved(ev *desktop.MouseEvent) {
	x, y := p.pixel(ev.Position)
	p.push(input.PointerMove{X: x, Y: y})
}

func (p *pickerWidget) MouseOut() {
	p.push(input.PointerLeave{})
}

func (p *pickerWidget) Dragged(ev *fyne.DragEvent) {
	x, y := p.pixel(ev.Position)
	p.push(input.PointerMove{X: x, Y: y})
}

func (p *pickerWidget) DragEnd() {}

func (p *pickerWidget) Scrolled(ev *fyne.ScrollEvent) {
	p.push(input.Scroll{DY: ev.Scrolled.DY / 10})
}

func (p *pickerWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.raster)
}

package main

import (
	"context"
	"time"

	"github.com/gogpu/colorview"
	"github.com/gogpu/colorview/input"
)

// frameInterval paces the render loop at about 60 frames per second.
const frameInterval = time.Second / 60

// windowHost connects a view's render loop to the picker widget.
type windowHost struct {
	view    *colorview.View
	picker  *pickerWidget
	ticker  *time.Ticker
	onFrame func(colorview.FrameOutput)
}

func newWindowHost(v *colorview.View, p *pickerWidget, onFrame func(colorview.FrameOutput)) *windowHost {
	return &windowHost{view: v, picker: p, ticker: time.NewTicker(frameInterval), onFrame: onFrame}
}

func (h *windowHost) NextFrame(ctx context.Context) ([]input.Event, error) {
	select {
	case <-ctx.Done():
		h.ticker.Stop()
		return nil, ctx.Err()
	case <-h.ticker.C:
		return h.picker.drain(), nil
	}
}

func (h *windowHost) Present(out colorview.FrameOutput) error {
	img, err := h.view.Snapshot()
	if err != nil {
		return err
	}
	h.picker.setFrame(img)
	if h.onFrame != nil {
		h.onFrame(out)
	}
	return nil
}

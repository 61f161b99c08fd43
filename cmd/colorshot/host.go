package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/colorview"
	"github.com/gogpu/colorview/input"
)

// shotHost feeds scripted frames to a view and writes the final frame.
type shotHost struct {
	view   *colorview.View
	frames [][]input.Event
	next   int
	output string

	last colorview.FrameOutput
	err  error
}

func newShotHost(v *colorview.View, frames [][]input.Event, output string) *shotHost {
	return &shotHost{view: v, frames: frames, output: output}
}

func (h *shotHost) NextFrame(ctx context.Context) ([]input.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if h.next >= len(h.frames) {
		return nil, colorview.ErrHostClosed
	}
	ev := h.frames[h.next]
	h.next++
	return ev, nil
}

func (h *shotHost) Present(out colorview.FrameOutput) error {
	h.last = out
	if h.next < len(h.frames) || h.output == "" {
		return nil
	}
	img, err := h.view.Snapshot()
	if err != nil {
		return err
	}
	if err := writeImage(h.output, img); err != nil {
		h.err = err
		return colorview.ErrHostClosed
	}
	return nil
}

// writeImage encodes img by the file extension of path.
func writeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f, filepath.Ext(path), img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func encode(w io.Writer, ext string, img image.Image) error {
	switch strings.ToLower(ext) {
	case ".png", "":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("unsupported image format %q", ext)
}

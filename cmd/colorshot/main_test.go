package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/colorview"
	"github.com/gogpu/colorview/input"
	"github.com/gogpu/colorview/render"
)

func TestParseScript(t *testing.T) {
	src := `
# orbit then pick
press 10 10 secondary
move 30 10
release 30 10 secondary
frame
scroll -1.5
resize 200 100
press 50 40
leave
`
	frames, err := ParseScript(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 2 {
		t.Fatalf("frames = %d, want 2", len(frames))
	}
	if got := frames[0][0]; got != (input.PointerPress{Button: input.ButtonSecondary, X: 10, Y: 10}) {
		t.Errorf("first event = %#v", got)
	}
	want := []input.Event{
		input.Scroll{DY: -1.5},
		input.Resize{Width: 200, Height: 100},
		input.PointerPress{Button: input.ButtonPrimary, X: 50, Y: 40},
		input.PointerLeave{},
	}
	if len(frames[1]) != len(want) {
		t.Fatalf("frame 1 = %#v, want %d events", frames[1], len(want))
	}
	for i, ev := range want {
		if frames[1][i] != ev {
			t.Errorf("frame 1 event %d = %#v, want %#v", i, frames[1][i], ev)
		}
	}
}

func TestParseScriptEmpty(t *testing.T) {
	frames, err := ParseScript(strings.NewReader("# nothing\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 1 || len(frames[0]) != 0 {
		t.Errorf("frames = %v, want one empty frame", frames)
	}
}

func TestParseScriptErrors(t *testing.T) {
	for _, line := range []string{
		"jump 1 2",
		"move 1",
		"leave 1 2",
		"move a b",
		"press 1 2 left",
		"scroll",
		"resize 1 x",
	} {
		if _, err := ParseScript(strings.NewReader(line)); !errors.Is(err, ErrScript) {
			t.Errorf("%q: err = %v, want ErrScript", line, err)
		}
	}
}

func TestEncodeFormats(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{10, 200, 30, 255})

	var buf bytes.Buffer
	if err := encode(&buf, ".bmp", img); err != nil {
		t.Fatal(err)
	}
	got, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if r, g, _, _ := got.At(1, 1).RGBA(); r>>8 != 10 || g>>8 != 200 {
		t.Errorf("bmp pixel = %v", got.At(1, 1))
	}

	buf.Reset()
	if err := encode(&buf, ".TIFF", img); err != nil {
		t.Fatal(err)
	}
	if _, err := tiff.Decode(&buf); err != nil {
		t.Errorf("tiff decode: %v", err)
	}

	if err := encode(&buf, ".gif", img); err == nil {
		t.Error("expected error for .gif")
	}
}

func TestShotHostWritesFinalFrame(t *testing.T) {
	out := filepath.Join(t.TempDir(), "shot.png")
	v, err := colorview.New(colorview.WithBackend(render.BackendSoftware), colorview.WithSize(24, 16))
	if err != nil {
		t.Fatal(err)
	}
	frames := [][]input.Event{
		{input.PointerMove{X: 12, Y: 8}},
		{input.PointerPress{Button: input.ButtonPrimary, X: 12, Y: 8}},
	}
	host := newShotHost(v, frames, out)
	if err := v.RunRenderLoop(context.Background(), host); err != nil {
		t.Fatal(err)
	}
	if host.err != nil {
		t.Fatal(host.err)
	}
	if host.last.Index != 2 || !host.last.Committed {
		t.Errorf("last = %+v", host.last)
	}
	if fi, err := os.Stat(out); err != nil || fi.Size() == 0 {
		t.Errorf("output not written: %v", err)
	}
}

// Command colorview opens a window with the 3D color picker.
//
// Left click commits the color under the pointer. Right or middle drag
// orbits the camera and the wheel zooms.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/gogpu/colorview"
	"github.com/gogpu/colorview/colorspace"
	"github.com/gogpu/colorview/coord"
	"github.com/gogpu/colorview/internal/config"

	_ "github.com/gogpu/colorview/gpu" // enable the GPU backend
)

func main() {
	configPath := flag.String("config", "", "config file (yaml, toml or json)")
	backend := flag.String("backend", "", "render backend (gpu, software)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("colorview: %v", err)
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	lvl, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("colorview: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	colorview.SetLogger(logger)

	mapping, err := colorspace.ParseMapping(cfg.Mapping)
	if err != nil {
		log.Fatalf("colorview: %v", err)
	}

	a := app.New()
	w := a.NewWindow("colorview")

	status := widget.NewLabel("")
	picker := newPickerWidget(cfg.Width, cfg.Height)

	v, err := colorview.New(
		colorview.WithSize(cfg.Width, cfg.Height),
		colorview.WithBackend(cfg.Backend),
		colorview.WithMapping(mapping),
		colorview.WithSegments(cfg.Segments),
		colorview.WithInitial(coord.Cylindrical{
			Angle:  float32(cfg.Initial.Hue) * coord.FullTurn,
			Radius: float32(cfg.Initial.Saturation),
			Height: float32(cfg.Initial.Value),
		}),
		colorview.WithOnSelect(func(r, g, b float32) {
			logger.Info("colorview: selected", "r", r, "g", g, "b", b)
		}),
	)
	if err != nil {
		log.Fatalf("colorview: %v", err)
	}
	status.SetText(statusText(v.Color().Hex(), v.Backend()))

	ctx, cancel := context.WithCancel(context.Background())
	host := newWindowHost(v, picker, func(out colorview.FrameOutput) {
		if out.Committed {
			status.SetText(statusText(out.Color.Hex(), v.Backend()))
		}
	})
	done := make(chan error, 1)
	go func() { done <- v.RunRenderLoop(ctx, host) }()

	w.SetOnClosed(func() {
		cancel()
		if err := <-done; err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("colorview: render loop", "err", err)
		}
	})
	w.SetContent(container.NewBorder(nil, status, nil, nil, picker))
	w.Resize(fyne.NewSize(float32(cfg.Width), float32(cfg.Height)+40))
	w.ShowAndRun()
}

func statusText(hex, backend string) string {
	return "saved " + hex + "  (" + backend + ")"
}

// Command colorshot renders the color picker offscreen, replays a scripted
// pointer session and writes the final frame to an image file.
//
// Usage:
//
//	colorshot -script session.txt -output pick.png
//
// Settings come from defaults, an optional -config file, COLORVIEW_*
// environment variables and finally flags.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/colorview"
	"github.com/gogpu/colorview/colorspace"
	"github.com/gogpu/colorview/coord"
	"github.com/gogpu/colorview/input"
	"github.com/gogpu/colorview/internal/config"

	_ "github.com/gogpu/colorview/gpu" // enable the GPU backend
)

func main() {
	var (
		configPath = flag.String("config", "", "config file (yaml, toml or json)")
		width      = flag.Int("width", 0, "viewport width")
		height     = flag.Int("height", 0, "viewport height")
		backend    = flag.String("backend", "", "render backend (gpu, software)")
		mapping    = flag.String("mapping", "", "color mapping (hsv, lch)")
		output     = flag.String("output", "", "output image (.png, .bmp, .tif)")
		script     = flag.String("script", "", "pointer script; empty renders one frame")
		level      = flag.String("log", "", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("colorshot: %v", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "backend":
			cfg.Backend = *backend
		case "mapping":
			cfg.Mapping = *mapping
		case "output":
			cfg.Output = *output
		case "script":
			cfg.Script = *script
		case "log":
			cfg.LogLevel = *level
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("colorshot: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("colorshot: %v", err)
	}
}

func run(cfg config.Config) error {
	lvl, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	colorview.SetLogger(logger)

	m, err := colorspace.ParseMapping(cfg.Mapping)
	if err != nil {
		return err
	}

	frames := [][]input.Event{nil}
	if cfg.Script != "" {
		f, err := os.Open(cfg.Script)
		if err != nil {
			return err
		}
		defer f.Close()
		parsed, err := ParseScript(f)
		if err != nil {
			return fmt.Errorf("%s: %w", cfg.Script, err)
		}
		frames = parsed
	}

	v, err := colorview.New(
		colorview.WithSize(cfg.Width, cfg.Height),
		colorview.WithBackend(cfg.Backend),
		colorview.WithMapping(m),
		colorview.WithSegments(cfg.Segments),
		colorview.WithInitial(coord.Cylindrical{
			Angle:  float32(cfg.Initial.Hue) * coord.FullTurn,
			Radius: float32(cfg.Initial.Saturation),
			Height: float32(cfg.Initial.Value),
		}),
		colorview.WithOnSelect(func(r, g, b float32) {
			logger.Info("colorshot: selected", "r", r, "g", g, "b", b)
		}),
	)
	if err != nil {
		return err
	}

	host := newShotHost(v, frames, cfg.Output)
	if err := v.RunRenderLoop(context.Background(), host); err != nil {
		return err
	}
	if host.err != nil {
		return host.err
	}
	s := host.last.State.Saved
	fmt.Printf("saved hue=%.4f saturation=%.4f value=%.4f color=%s (%d frames, %s)\n",
		s.Turns(), s.Radius, s.Height, host.last.Color.Hex(), host.last.Index, cfg.Output)
	return nil
}

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/colorview/input"
)

// ErrScript is returned for malformed script lines.
var ErrScript = errors.New("invalid script")

// ParseScript reads a pointer session. Each line is one event and a
// "frame" line ends a frame:
//
//	# comment
//	move 320 240
//	leave
//	press 320 240 [primary|secondary|middle]
//	release 320 240 [button]
//	scroll 1.5
//	resize 800 600
//	frame
//
// Events after the last "frame" form a final frame.
func ParseScript(r io.Reader) ([][]input.Event, error) {
	var (
		frames  [][]input.Event
		current []input.Event
		lineNo  int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "frame" {
			frames = append(frames, current)
			current = nil
			continue
		}
		ev, err := parseEvent(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		current = append(current, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(current) > 0 || len(frames) == 0 {
		frames = append(frames, current)
	}
	return frames, nil
}

func parseEvent(f []string) (input.Event, error) {
	switch f[0] {
	case "move":
		x, y, err := floats2(f, 3)
		return input.PointerMove{X: x, Y: y}, err
	case "leave":
		if len(f) != 1 {
			return nil, fmt.Errorf("%w: leave takes no arguments", ErrScript)
		}
		return input.PointerLeave{}, nil
	case "press", "release":
		if len(f) != 3 && len(f) != 4 {
			return nil, fmt.Errorf("%w: %q wants x y [button]", ErrScript, f[0])
		}
		x, y, err := floats2(f[:3], 3)
		if err != nil {
			return nil, err
		}
		b := input.ButtonPrimary
		if len(f) == 4 {
			if b, err = parseButton(f[3]); err != nil {
				return nil, err
			}
		}
		if f[0] == "press" {
			return input.PointerPress{Button: b, X: x, Y: y}, nil
		}
		return input.PointerRelease{Button: b, X: x, Y: y}, nil
	case "scroll":
		if len(f) != 2 {
			return nil, fmt.Errorf("%w: scroll wants dy", ErrScript)
		}
		dy, err := strconv.ParseFloat(f[1], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScript, err)
		}
		return input.Scroll{DY: float32(dy)}, nil
	case "resize":
		if len(f) != 3 {
			return nil, fmt.Errorf("%w: resize wants width height", ErrScript)
		}
		w, errW := strconv.Atoi(f[1])
		h, errH := strconv.Atoi(f[2])
		if errW != nil || errH != nil {
			return nil, fmt.Errorf("%w: resize %s %s", ErrScript, f[1], f[2])
		}
		return input.Resize{Width: w, Height: h}, nil
	}
	return nil, fmt.Errorf("%w: unknown event %q", ErrScript, f[0])
}

func floats2(f []string, n int) (float32, float32, error) {
	if len(f) != n {
		return 0, 0, fmt.Errorf("%w: %q wants x y", ErrScript, f[0])
	}
	x, errX := strconv.ParseFloat(f[1], 32)
	y, errY := strconv.ParseFloat(f[2], 32)
	if errX != nil || errY != nil {
		return 0, 0, fmt.Errorf("%w: %s %s", ErrScript, f[1], f[2])
	}
	return float32(x), float32(y), nil
}

func parseButton(s string) (input.Button, error) {
	for _, b := range []input.Button{input.ButtonPrimary, input.ButtonSecondary, input.ButtonMiddle} {
		if b.String() == s {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown button %q", ErrScript, s)
}

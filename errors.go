package colorview

import "errors"

var (
	// ErrClosed is returned by View methods after Close.
	ErrClosed = errors.New("colorview: view closed")

	// ErrHostClosed is returned by a Host when its window is gone.
	// RunRenderLoop treats it as a normal exit.
	ErrHostClosed = errors.New("colorview: host closed")

	// ErrNoSnapshot is returned by Snapshot when the renderer cannot copy
	// its visible target.
	ErrNoSnapshot = errors.New("colorview: renderer does not support snapshots")
)

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

var (
	// ErrInvalidSize is returned for a non-positive viewport size.
	ErrInvalidSize = errors.New("render: invalid size")
	// ErrUnknownMesh is returned when a draw references a mesh that was
	// never uploaded.
	ErrUnknownMesh = errors.New("render: unknown mesh")
	// ErrOutOfBounds is returned by RenderPick for a pixel outside the
	// viewport.
	ErrOutOfBounds = errors.New("render: pixel outside viewport")
	// ErrDestroyed is returned after Destroy.
	ErrDestroyed = errors.New("render: renderer destroyed")
	// ErrNotRegistered is returned by New for an unknown backend name.
	ErrNotRegistered = errors.New("render: backend not registered")
	// ErrNoBackend is returned by Default when no backend could be created.
	ErrNoBackend = errors.New("render: no backend available")
)

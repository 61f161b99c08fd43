// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Backend names.
const (
	BackendGPU      = "gpu"
	BackendSoftware = "software"
)

// Backend priorities. Default tries higher priorities first.
const (
	PrioritySoftware = 0
	PriorityGPU      = 100
)

// Factory creates a renderer.
type Factory func(cfg Config) (Renderer, error)

type backendEntry struct {
	factory  Factory
	priority int
}

var (
	registryMu sync.RWMutex
	backends   = make(map[string]backendEntry)
)

func init() {
	Register(BackendSoftware, PrioritySoftware, func(cfg Config) (Renderer, error) {
		return NewSoftware(cfg)
	})
}

// Register registers a factory under name. This is typically called from
// init functions in backend packages. A second registration under the same
// name replaces the first.
func Register(name string, priority int, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = backendEntry{factory: f, priority: priority}
}

// Unregister removes a backend. This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names, highest priority first.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		pi, pj := backends[names[i]].priority, backends[names[j]].priority
		if pi != pj {
			return pi > pj
		}
		return names[i] < names[j]
	})
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// New creates a renderer from the named backend.
func New(name string, cfg Config) (Renderer, error) {
	registryMu.RLock()
	e, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	r, err := e.factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("render: create %s: %w", name, err)
	}
	return r, nil
}

// Default creates a renderer from the highest-priority backend that
// succeeds. If every backend fails, the error wraps ErrNoBackend and each
// backend's error.
func Default(cfg Config) (Renderer, error) {
	errs := []error{ErrNoBackend}
	for _, name := range Available() {
		r, err := New(name, cfg)
		if err == nil {
			return r, nil
		}
		if cfg.Fallback != nil {
			cfg.Fallback(name, err)
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

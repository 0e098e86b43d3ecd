// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"

	"github.com/gogpu/outline/gl"
)

// Provider names.
const (
	Desktop  = "desktop"
	WebGL    = "webgl"
	Recorder = "recorder"
)

var (
	// ErrNotAvailable is returned when a requested provider is not registered.
	ErrNotAvailable = errors.New("backend: not available")

	// ErrNoSurface is returned when a target does not resolve to a drawable.
	ErrNoSurface = errors.New("backend: no drawable surface")

	// ErrUnavailable is returned when the graphics API is missing on the
	// platform.
	ErrUnavailable = errors.New("backend: graphics API unavailable")
)

// Provider creates graphics contexts bound to drawable surfaces.
type Provider interface {
	// Name returns the provider identifier.
	Name() string

	// Acquire binds a context to the surface identified by target and makes
	// it current on the calling goroutine.
	Acquire(target gl.Target) (gl.Functions, gl.Surface, error)

	// Close releases every context and surface the provider created.
	Close()
}

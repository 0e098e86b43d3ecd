// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package resource owns the graphics context and every GPU object created on
// it: shader and program objects, vertex and index buffers, textures and
// framebuffers. It also binds vertex attributes and uniform values through
// declarative location tables.
//
// Creation failures return the zero handle together with an error; a failed
// object is never replaced by a substitute.
package resource

import (
	"fmt"

	"github.com/gogpu/outline/gl"
)

// Provider binds a graphics context to a drawable surface. Backends in
// outline/backend implement it.
type Provider interface {
	Acquire(target gl.Target) (gl.Functions, gl.Surface, error)
}

// Manager owns one graphics context and the objects created on it.
//
// A Manager must only be used from the goroutine that acquired it.
type Manager struct {
	fn      gl.Functions
	surface gl.Surface
	target  gl.Target
}

// AcquireContext binds p to the surface identified by target.
// It fails with ErrContext when the target does not resolve to a drawable
// surface or the graphics API is unavailable.
func AcquireContext(p Provider, target gl.Target) (*Manager, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: no provider", ErrContext)
	}
	fn, surface, err := p.Acquire(target)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrContext, target, err)
	}
	if fn == nil || surface == nil {
		return nil, fmt.Errorf("%w: %s: provider returned no context", ErrContext, target)
	}
	slogger().Info("graphics context acquired", "target", target.String())
	return &Manager{fn: fn, surface: surface, target: target}, nil
}

// NewManager wraps an already current context. It is the entry point for
// hosts that create the context themselves.
func NewManager(fn gl.Functions, surface gl.Surface) (*Manager, error) {
	if fn == nil || surface == nil {
		return nil, ErrContext
	}
	return &Manager{fn: fn, surface: surface, target: gl.Direct(surface)}, nil
}

// GL returns the bound entry points, or nil once released.
func (m *Manager) GL() gl.Functions {
	if m == nil {
		return nil
	}
	return m.fn
}

// Surface returns the bound drawable.
func (m *Manager) Surface() gl.Surface {
	if m == nil {
		return nil
	}
	return m.surface
}

// Active reports whether the manager still holds a context.
func (m *Manager) Active() bool { return m != nil && m.fn != nil }

// Release drops the context. Every later creation call fails with
// ErrResource. Objects already created are owned by the driver and go away
// with the context.
func (m *Manager) Release() {
	if m == nil || m.fn == nil {
		return
	}
	slogger().Info("graphics context released", "target", m.target.String())
	m.fn = nil
}

// active returns the entry points or ErrResource.
func (m *Manager) active(op string) (gl.Functions, error) {
	if m == nil || m.fn == nil {
		return nil, fmt.Errorf("%w: %s: no active context", ErrResource, op)
	}
	return m.fn, nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package recorder is a headless graphics context.
//
// It keeps object tables and pipeline state in memory, compiles WGSL stage
// sources with naga, generates mip chains in software and records every
// call. Nothing is rasterized. Tests use the call log and state accessors to
// observe exactly what the resource manager and the renderer asked of the
// driver.
package recorder

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/gogpu/outline/backend"
	"github.com/gogpu/outline/gl"
)

func init() {
	backend.Register(backend.Recorder, func() backend.Provider { return New() })
}

// DefaultSurface is the surface name a fresh Backend resolves.
const DefaultSurface = "default"

// Option configures a Backend.
type Option func(*Backend)

// WithExtensions replaces the advertised extension set.
func WithExtensions(names ...string) Option {
	return func(b *Backend) {
		b.extensions = make(map[string]bool, len(names))
		for _, n := range names {
			b.extensions[n] = true
		}
	}
}

// WithSurface registers a named surface of the given size.
func WithSurface(name string, width, height int) Option {
	return func(b *Backend) { b.surfaces[name] = NewSurface(width, height) }
}

// Unavailable makes every Acquire fail as if the platform had no graphics
// API.
func Unavailable() Option {
	return func(b *Backend) { b.unavailable = true }
}

// Backend is a backend.Provider of recording contexts.
type Backend struct {
	mu          sync.Mutex
	surfaces    map[string]*Surface
	contexts    []*Context
	extensions  map[string]bool
	unavailable bool
}

// New returns a Backend with a 640x480 surface named DefaultSurface that
// advertises 32-bit indices and half-float textures.
func New(opts ...Option) *Backend {
	b := &Backend{
		surfaces: map[string]*Surface{DefaultSurface: NewSurface(640, 480)},
		extensions: map[string]bool{
			gl.ExtElementIndexUint: true,
			gl.ExtTextureHalfFloat: true,
		},
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Name implements backend.Provider.
func (b *Backend) Name() string { return backend.Recorder }

// AddSurface registers a named surface and returns it.
func (b *Backend) AddSurface(name string, width, height int) *Surface {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := NewSurface(width, height)
	b.surfaces[name] = s
	return s
}

// Acquire implements backend.Provider.
func (b *Backend) Acquire(target gl.Target) (gl.Functions, gl.Surface, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.unavailable {
		return nil, nil, backend.ErrUnavailable
	}
	surface := target.Surface
	if surface == nil {
		s, ok := b.surfaces[target.Name]
		if !ok {
			return nil, nil, fmt.Errorf("%w: %q", backend.ErrNoSurface, target.Name)
		}
		surface = s
	}
	c := newContext(maps.Clone(b.extensions))
	b.contexts = append(b.contexts, c)
	return c, surface, nil
}

// Context returns the most recently acquired context, or nil.
func (b *Backend) Context() *Context {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.contexts) == 0 {
		return nil
	}
	return b.contexts[len(b.contexts)-1]
}

// Surfaces returns the registered surface names, sorted.
func (b *Backend) Surfaces() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Sorted(maps.Keys(b.surfaces))
}

// Close implements backend.Provider.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.contexts {
		c.lose()
	}
	b.contexts = nil
}

// Surface is a resizable in-memory drawable.
type Surface struct {
	mu            sync.Mutex
	width, height int
	reads         int
}

// NewSurface returns a surface of the given size.
func NewSurface(width, height int) *Surface {
	return &Surface{width: width, height: height}
}

// Size implements gl.Surface.
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	return s.width, s.height
}

// Resize changes the drawable size, as a host resize event would.
func (s *Surface) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

// Reads returns how many times Size was called.
func (s *Surface) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

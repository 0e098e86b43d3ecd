// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !js

// Package desktop provides OpenGL 4.1 core contexts in GLFW windows.
//
// GLFW and OpenGL calls must come from the main OS thread. Programs using
// this backend lock it in an init function:
//
//	func init() { runtime.LockOSThread() }
package desktop

import (
	"fmt"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/outline"
	"github.com/gogpu/outline/backend"
	ogl "github.com/gogpu/outline/gl"
)

func init() {
	backend.Register(backend.Desktop, func() backend.Provider { return New() })
}

// Option configures a Backend.
type Option func(*Backend)

// WithSize sets the initial size of windows the backend creates.
func WithSize(width, height int) Option {
	return func(b *Backend) { b.width, b.height = width, height }
}

// WithVSync sets the swap interval of acquired contexts.
func WithVSync(on bool) Option {
	return func(b *Backend) { b.vsync = on }
}

// Backend creates one GLFW window per named target.
type Backend struct {
	mu      sync.Mutex
	width   int
	height  int
	vsync   bool
	started bool
	windows []*Window
}

// New returns a Backend creating 800x600 windows with vsync on.
func New(opts ...Option) *Backend {
	b := &Backend{width: 800, height: 600, vsync: true}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Apply reconfigures b. Windows opened afterwards use the new settings.
func (b *Backend) Apply(opts ...Option) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, o := range opts {
		o(b)
	}
}

// Name implements backend.Provider.
func (b *Backend) Name() string { return backend.Desktop }

// Acquire implements backend.Provider. A named target opens a new window
// titled with the name; a direct target must be a *Window from this
// backend.
func (b *Backend) Acquire(target ogl.Target) (ogl.Functions, ogl.Surface, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var win *Window
	switch s := target.Surface.(type) {
	case *Window:
		win = s
	case nil:
		if target.Name == "" {
			return nil, nil, fmt.Errorf("%w: empty target name", backend.ErrNoSurface)
		}
		w, err := b.open(target.Name)
		if err != nil {
			return nil, nil, err
		}
		win = w
	default:
		return nil, nil, fmt.Errorf("%w: %T is not a desktop window", backend.ErrNoSurface, s)
	}

	win.glw.MakeContextCurrent()
	if b.vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	if err := gl.Init(); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", backend.ErrUnavailable, err)
	}
	outline.Logger().Info("OpenGL context acquired",
		"window", win.title,
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return newFunctions(), win, nil
}

func (b *Backend) open(title string) (*Window, error) {
	if !b.started {
		if err := glfw.Init(); err != nil {
			return nil, fmt.Errorf("%w: %w", backend.ErrUnavailable, err)
		}
		b.started = true
	}
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)

	glw, err := glfw.CreateWindow(b.width, b.height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", backend.ErrUnavailable, err)
	}
	w := &Window{glw: glw, title: title}
	b.windows = append(b.windows, w)
	return w, nil
}

// Close implements backend.Provider.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, w := range b.windows {
		w.glw.Destroy()
	}
	b.windows = nil
	if b.started {
		glfw.Terminate()
		b.started = false
	}
}

// Window is a GLFW window used as a drawable surface.
type Window struct {
	glw   *glfw.Window
	title string
}

// Size implements gl.Surface with the framebuffer size in pixels, which
// differs from the window size on high-density displays.
func (w *Window) Size() (int, int) { return w.glw.GetFramebufferSize() }

// GLFW returns the underlying window for event wiring and buffer swaps.
func (w *Window) GLFW() *glfw.Window { return w.glw }

// Title returns the window title.
func (w *Window) Title() string { return w.title }

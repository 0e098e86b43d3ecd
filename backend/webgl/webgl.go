// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build js && wasm

// Package webgl provides WebGL 1 contexts on HTML canvas elements.
package webgl

import (
	"fmt"
	"sync"
	"syscall/js"

	"github.com/gogpu/outline/backend"
	"github.com/gogpu/outline/gl"
)

func init() {
	backend.Register(backend.WebGL, func() backend.Provider { return New() })
}

// Backend resolves named targets to canvas elements by id.
type Backend struct {
	mu       sync.Mutex
	canvases []*Canvas
	contexts []*functions
	attrs    map[string]any
}

// New returns a Backend requesting a depth buffer and antialiasing.
func New() *Backend {
	return &Backend{attrs: map[string]any{"depth": true, "antialias": true}}
}

// Name implements backend.Provider.
func (b *Backend) Name() string { return backend.WebGL }

// Acquire implements backend.Provider. A named target is looked up with
// document.getElementById; a direct target must be a *Canvas.
func (b *Backend) Acquire(target gl.Target) (gl.Functions, gl.Surface, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var c *Canvas
	switch s := target.Surface.(type) {
	case *Canvas:
		c = s
	case nil:
		el := js.Global().Get("document").Call("getElementById", target.Name)
		if el.IsNull() || el.IsUndefined() {
			return nil, nil, fmt.Errorf("%w: no element %q", backend.ErrNoSurface, target.Name)
		}
		c = NewCanvas(el)
	default:
		return nil, nil, fmt.Errorf("%w: %T is not a canvas", backend.ErrNoSurface, s)
	}

	ctx := c.el.Call("getContext", "webgl", b.attrs)
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil, nil, fmt.Errorf("%w: webgl context", backend.ErrUnavailable)
	}
	fn := newFunctions(ctx)
	b.canvases = append(b.canvases, c)
	b.contexts = append(b.contexts, fn)
	return fn, c, nil
}

// Close implements backend.Provider. Contexts are released with
// WEBGL_lose_context where the browser supports it.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, fn := range b.contexts {
		if ext := fn.ctx.Call("getExtension", "WEBGL_lose_context"); ext.Truthy() {
			ext.Call("loseContext")
		}
	}
	b.canvases, b.contexts = nil, nil
}

// Canvas is a canvas element that fills the browser window.
type Canvas struct {
	el js.Value
}

// NewCanvas wraps a canvas element.
func NewCanvas(el js.Value) *Canvas { return &Canvas{el: el} }

// Element returns the wrapped element.
func (c *Canvas) Element() js.Value { return c.el }

// Size implements gl.Surface. The drawing buffer is first matched to the
// window's inner size so every frame sees the current dimensions.
func (c *Canvas) Size() (int, int) {
	win := js.Global()
	w, h := win.Get("innerWidth").Int(), win.Get("innerHeight").Int()
	if c.el.Get("width").Int() != w {
		c.el.Set("width", w)
	}
	if c.el.Get("height").Int() != h {
		c.el.Set("height", h)
	}
	return w, h
}

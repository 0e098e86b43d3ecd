// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !js

// Command outlinedemo draws the outlined cube with an orbit camera.
//
// With the desktop backend it opens a window: drag to rotate, scroll to
// zoom. Other backends, such as -backend=recorder, draw -frames frames
// headless and exit.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/outline"
	"github.com/gogpu/outline/backend"
	"github.com/gogpu/outline/backend/desktop"
	"github.com/gogpu/outline/backend/recorder"
	"github.com/gogpu/outline/camera"
	"github.com/gogpu/outline/config"
	"github.com/gogpu/outline/gl"
	"github.com/gogpu/outline/shader"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		backendArg = flag.String("backend", "", "graphics backend: desktop, recorder (default: config, then best available)")
		vertex     = flag.String("vertex", "", "vertex shader path or URL (default: built in)")
		fragment   = flag.String("fragment", "", "fragment shader path or URL (default: built in)")
		watch      = flag.Bool("watch", false, "reload shaders when the files change")
		plane      = flag.Bool("plane", false, "draw the plane instead of the cube")
		frames     = flag.Int("frames", 1, "frames to draw without a window")
		verbose    = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	if *verbose {
		outline.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := config.Default()
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
		cfg = c
	}
	if *backendArg != "" {
		cfg.Backend = *backendArg
	}
	if *vertex != "" {
		cfg.Shaders.Vertex = *vertex
	}
	if *fragment != "" {
		cfg.Shaders.Fragment = *fragment
	}
	cfg.Shaders.Watch = cfg.Shaders.Watch || *watch

	if err := run(cfg, *plane, *frames); err != nil {
		log.Fatal(err)
	}
}

// newProvider resolves cfg.Backend through the registry and sizes its
// surfaces from cfg.Surface.
func newProvider(cfg config.Config) (backend.Provider, error) {
	p, err := backend.Lookup(cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("%w (registered: %v)", err, backend.Available())
	}
	switch b := p.(type) {
	case *desktop.Backend:
		if cfg.Surface.Width > 0 && cfg.Surface.Height > 0 {
			b.Apply(desktop.WithSize(cfg.Surface.Width, cfg.Surface.Height))
		}
	case *recorder.Backend:
		b.AddSurface(cfg.Surface.Name, cfg.Surface.Width, cfg.Surface.Height)
	}
	return p, nil
}

func run(cfg config.Config, plane bool, frames int) error {
	ctx := context.Background()

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}
	defer provider.Close()

	orbit := camera.New(camera.Options{
		Distance: cfg.Camera.Distance,
		Min:      cfg.Camera.Min,
		Max:      cfg.Camera.Max,
		Move:     cfg.Camera.Move,
	})
	opts := []outline.Option{outline.WithConfig(cfg), outline.WithCamera(orbit)}
	if plane {
		opts = append(opts, outline.WithScene(outline.ScenePlane))
	}
	r := outline.New(provider, nil, opts...)
	defer r.Release()

	paths := cfg.Shaders.Paths()
	ready, err := r.Run(ctx, gl.Named(cfg.Surface.Name), paths)
	if err != nil {
		return err
	}

	win, ok := ready.Manager.Surface().(*desktop.Window)
	if !ok {
		for range frames {
			if err := r.Tick(); err != nil {
				return err
			}
		}
		log.Printf("%s: drew %d frames", provider.Name(), r.Frames())
		return nil
	}
	return loop(ctx, r, win.GLFW(), orbit, cfg, paths)
}

func loop(ctx context.Context, r *outline.Renderer, win *glfw.Window, orbit *camera.Orbit, cfg config.Config, paths []string) error {
	bindInput(win, orbit)

	var changes <-chan string
	if cfg.Shaders.Watch && len(paths) > 0 {
		w, err := shader.Watch(paths...)
		if err != nil {
			return err
		}
		defer w.Close()
		changes = w.Changes()
	}

	for !win.ShouldClose() {
		select {
		case name := <-changes:
			// A failed reload keeps the previous program; report and go on.
			if err := r.Reload(ctx, paths); err != nil {
				log.Printf("reload after %s changed: %v", name, err)
			} else {
				log.Printf("reloaded shaders after %s changed", name)
			}
		default:
		}
		if err := r.Tick(); err != nil {
			return err
		}
		win.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

func bindInput(win *glfw.Window, orbit *camera.Orbit) {
	pointer := func() (float32, float32) {
		x, y := win.GetCursorPos()
		w, h := win.GetSize()
		return camera.Normalize(x, y, w, h)
	}
	win.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, a glfw.Action, _ glfw.ModifierKey) {
		if b != glfw.MouseButtonLeft {
			return
		}
		switch a {
		case glfw.Press:
			orbit.PointerDown(pointer())
		case glfw.Release:
			orbit.PointerUp()
		}
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w, h := win.GetSize()
		orbit.PointerMove(camera.Normalize(x, y, w, h))
	})
	win.SetScrollCallback(func(_ *glfw.Window, _, dy float64) {
		orbit.Wheel(float32(-dy))
	})
}

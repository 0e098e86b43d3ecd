// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/outline/camera"
	"github.com/gogpu/outline/config"
)

// Camera produces the view matrix once per frame.
type Camera interface {
	Update() mgl32.Mat4
}

// Scene selects the mesh the passes draw.
type Scene uint8

const (
	// SceneCube draws the cube. The plane is uploaded but stays dormant.
	SceneCube Scene = iota
	// ScenePlane draws the plane instead of the cube.
	ScenePlane
)

func (s Scene) String() string {
	if s == ScenePlane {
		return "plane"
	}
	return "cube"
}

// Option configures a Renderer during creation.
//
// Example:
//
//	r := outline.New(provider, fetcher,
//	    outline.WithConfig(cfg),
//	    outline.WithPasses(outline.DefaultPasses()))
type Option func(*options)

type options struct {
	camera     Camera
	cameraOpts camera.Options
	passes     []Pass
	clock      func() time.Time
	scene      Scene
	look       config.Scene
	projection config.Projection
}

func defaultOptions() options {
	d := config.Default()
	return options{
		cameraOpts: camera.Options{
			Distance: d.Camera.Distance,
			Min:      d.Camera.Min,
			Max:      d.Camera.Max,
			Move:     d.Camera.Move,
		},
		passes:     DefaultPasses(),
		clock:      time.Now,
		scene:      SceneCube,
		look:       d.Scene,
		projection: d.Projection,
	}
}

// WithCamera supplies the camera instead of building an orbit camera at
// setup.
func WithCamera(c Camera) Option {
	return func(o *options) {
		o.camera = c
	}
}

// WithPasses replaces the per-frame pass list. An empty list draws nothing.
func WithPasses(p []Pass) Option {
	return func(o *options) {
		o.passes = append([]Pass(nil), p...)
	}
}

// WithClock sets the time source Tick reads.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.clock = now
		}
	}
}

// WithScene selects the drawn mesh.
func WithScene(s Scene) Option {
	return func(o *options) {
		o.scene = s
	}
}

// WithConfig applies camera, scene and projection settings.
func WithConfig(c config.Config) Option {
	return func(o *options) {
		o.cameraOpts = camera.Options{
			Distance: c.Camera.Distance,
			Min:      c.Camera.Min,
			Max:      c.Camera.Max,
			Move:     c.Camera.Move,
		}
		o.look = c.Scene
		o.projection = c.Projection
	}
}

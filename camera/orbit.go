// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package camera provides an orbit camera that circles the origin.
//
// Pointer drags rotate the camera about the origin, the wheel changes its
// distance within [Min, Max]. Update produces the view matrix for a frame.
package camera

import (
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Options configure an Orbit.
type Options struct {
	// Distance is the initial distance from the origin.
	Distance float32
	// Min and Max bound the distance.
	Min, Max float32
	// Move scales pointer travel into rotation. A drag across the full
	// normalized range of 2 units turns the camera by Move radians.
	Move float32
	// Zoom is the distance change per wheel unit. Zero selects
	// DefaultZoom.
	Zoom float32
}

// DefaultZoom is the wheel step used when Options.Zoom is zero.
const DefaultZoom = 0.1

// DefaultOptions matches the reference scene: one unit from the origin,
// zooming out to ten.
var DefaultOptions = Options{Distance: 1, Min: 1, Max: 10, Move: 2}

// Orbit is a pointer-driven camera. Input methods may be called from event
// callbacks on another goroutine than Update.
type Orbit struct {
	mu       sync.Mutex
	opts     Options
	distance float32
	rotation mgl32.Quat
	dragging bool
	lastX    float32
	lastY    float32
}

// New returns an Orbit looking at the origin from +Z.
func New(o Options) *Orbit {
	if o.Max < o.Min {
		o.Min, o.Max = o.Max, o.Min
	}
	if o.Zoom == 0 {
		o.Zoom = DefaultZoom
	}
	c := &Orbit{opts: o, rotation: mgl32.QuatIdent()}
	c.distance = c.clamp(o.Distance)
	return c
}

func (c *Orbit) clamp(d float32) float32 {
	return math32.Max(c.opts.Min, math32.Min(c.opts.Max, d))
}

// Options returns the options the camera was built with, after
// normalization.
func (c *Orbit) Options() Options { return c.opts }

// Distance returns the current distance from the origin.
func (c *Orbit) Distance() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.distance
}

// SetDistance moves the camera to d, clamped to [Min, Max].
func (c *Orbit) SetDistance(d float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.distance = c.clamp(d)
}

// PointerDown starts a drag at (x, y) in normalized device coordinates.
func (c *Orbit) PointerDown(x, y float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = true
	c.lastX, c.lastY = x, y
}

// PointerMove rotates the camera by the travel since the previous pointer
// position. It does nothing unless a drag is in progress.
func (c *Orbit) PointerMove(x, y float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dragging {
		return
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y

	travel := math32.Sqrt(dx*dx + dy*dy)
	if travel == 0 {
		return
	}
	// Dragging right turns the scene right: rotate the eye about the axis
	// perpendicular to the drag, expressed in camera space.
	axis := c.rotation.Rotate(mgl32.Vec3{dy, -dx, 0}.Normalize())
	turn := mgl32.QuatRotate(travel*c.opts.Move*0.5, axis)
	c.rotation = turn.Mul(c.rotation).Normalize()
}

// PointerUp ends a drag.
func (c *Orbit) PointerUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dragging = false
}

// Wheel zooms by delta wheel units; positive values move away from the
// origin.
func (c *Orbit) Wheel(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.distance = c.clamp(c.distance + delta*c.opts.Zoom)
}

// Eye returns the camera position.
func (c *Orbit) Eye() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation.Rotate(mgl32.Vec3{0, 0, c.distance})
}

// Update returns the view matrix for the current orientation and distance.
func (c *Orbit) Update() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	eye := c.rotation.Rotate(mgl32.Vec3{0, 0, c.distance})
	up := c.rotation.Rotate(mgl32.Vec3{0, 1, 0})
	return mgl32.LookAtV(eye, mgl32.Vec3{}, up)
}

// Normalize maps a pixel position in a width x height window to normalized
// device coordinates with +Y up.
func Normalize(x, y float64, width, height int) (float32, float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	nx := float32(x)/float32(width)*2 - 1
	ny := 1 - float32(y)/float32(height)*2
	return nx, ny
}

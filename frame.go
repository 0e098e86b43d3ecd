// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/outline/gl"
	"github.com/gogpu/outline/resource"
)

// OnFrame draws one frame. t is the time since the first frame and dt the
// time since the previous one.
//
// Before Setup succeeds OnFrame does nothing. A zero-sized surface skips the
// frame. The surface size is read on every call so resizes take effect on
// the next frame.
func (r *Renderer) OnFrame(t, dt time.Duration) error {
	rd := r.ready
	if rd == nil {
		return nil
	}
	fn := rd.Manager.GL()
	if fn == nil {
		return fmt.Errorf("%w: frame after context release", ErrState)
	}
	w, h := rd.Manager.Surface().Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	r.state = StateRendering

	look, pr := r.opts.look, r.opts.projection
	fn.Viewport(0, 0, w, h)
	fn.ClearColor(look.ClearColor[0], look.ClearColor[1], look.ClearColor[2], look.ClearColor[3])
	fn.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	fn.Enable(gl.DEPTH_TEST)
	fn.Enable(gl.CULL_FACE)

	view := rd.Camera.Update()
	projection := mgl32.Perspective(mgl32.DegToRad(pr.FovY), float32(w)/float32(h), pr.Near, pr.Far)
	model := mgl32.Ident4()

	fn.UseProgram(rd.Program)

	mesh := rd.Cube
	if r.opts.scene == ScenePlane {
		mesh = rd.Plane
	}
	frame := [uniformCount]resource.UniformValue{
		UniformModel:      resource.Matrix(model),
		UniformView:       resource.Matrix(view),
		UniformProjection: resource.Matrix(projection),
		UniformEdge:       resource.Bool(false),
	}

	culling := true
	for _, p := range r.opts.passes {
		face, ok := cullFace(p.Cull)
		switch {
		case !ok && culling:
			fn.Disable(gl.CULL_FACE)
			culling = false
		case ok:
			if !culling {
				fn.Enable(gl.CULL_FACE)
				culling = true
			}
			fn.CullFace(face)
		}
		if err := rd.Manager.BindAttributes(mesh.Attributes[:], rd.Attributes, mesh.Index); err != nil {
			return fmt.Errorf("outline: pass %s: %w", p.Name, err)
		}
		if err := rd.Manager.SetUniforms(p.values(frame), rd.Uniforms); err != nil {
			return fmt.Errorf("outline: pass %s: %w", p.Name, err)
		}
		fn.DrawElements(gl.TRIANGLES, mesh.Count(), gl.UNSIGNED_SHORT, 0)
	}
	r.frames++
	return nil
}

// Tick calls OnFrame with times read from the renderer's clock.
func (r *Renderer) Tick() error {
	now := r.opts.clock()
	if r.start.IsZero() {
		r.start, r.last = now, now
	}
	dt := now.Sub(r.last)
	r.last = now
	return r.OnFrame(now.Sub(r.start), dt)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/outline/gl"
	"github.com/gogpu/outline/resource"
)

// Pass is one draw of the scene mesh: a cull mode and uniform values that
// override the per-frame defaults.
type Pass struct {
	Name     string
	Cull     gputypes.CullMode
	Uniforms map[Uniform]resource.UniformValue
}

// DefaultPasses returns the solid pass followed by the outline pass.
func DefaultPasses() []Pass {
	return []Pass{
		{
			Name:     "solid",
			Cull:     gputypes.CullModeBack,
			Uniforms: map[Uniform]resource.UniformValue{UniformEdge: resource.Bool(false)},
		},
		{
			Name:     "outline",
			Cull:     gputypes.CullModeFront,
			Uniforms: map[Uniform]resource.UniformValue{UniformEdge: resource.Bool(true)},
		},
	}
}

func cullFace(m gputypes.CullMode) (gl.Enum, bool) {
	switch m {
	case gputypes.CullModeFront:
		return gl.FRONT, true
	case gputypes.CullModeBack:
		return gl.BACK, true
	}
	return 0, false
}

// values returns the uniform values for p given the frame defaults.
func (p Pass) values(frame [uniformCount]resource.UniformValue) []resource.UniformValue {
	out := frame
	for u, v := range p.Uniforms {
		if u >= 0 && u < uniformCount {
			out[u] = v
		}
	}
	return out[:]
}

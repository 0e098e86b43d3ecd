// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import "github.com/gogpu/outline/gl"

// Extensions records optional capabilities of the context. A false field
// means the capability is absent; probing never fails.
type Extensions struct {
	ElementIndexUint bool
	TextureFloat     bool
	TextureHalfFloat bool
}

// FloatTextures reports whether any floating-point color format is usable.
func (e Extensions) FloatTextures() bool { return e.TextureFloat || e.TextureHalfFloat }

// QueryExtensions probes the optional capabilities. Without a context every
// capability reads as absent.
func (m *Manager) QueryExtensions() Extensions {
	fn, err := m.active("query extensions")
	if err != nil {
		return Extensions{}
	}
	ext := Extensions{
		ElementIndexUint: fn.GetExtension(gl.ExtElementIndexUint),
		TextureFloat:     fn.GetExtension(gl.ExtTextureFloat),
		TextureHalfFloat: fn.GetExtension(gl.ExtTextureHalfFloat),
	}
	slogger().Debug("extensions probed",
		"elementIndexUint", ext.ElementIndexUint,
		"textureFloat", ext.TextureFloat,
		"textureHalfFloat", ext.TextureHalfFloat)
	return ext
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"fmt"

	"github.com/gogpu/outline/gl"
)

// CreateVertexBuffer uploads data into a new static ARRAY_BUFFER.
func (m *Manager) CreateVertexBuffer(data []float32) (gl.Buffer, error) {
	return m.createBuffer("vertex buffer", gl.ARRAY_BUFFER, gl.Float32Bytes(data))
}

// CreateIndexBuffer uploads 16-bit indices into a new static
// ELEMENT_ARRAY_BUFFER.
func (m *Manager) CreateIndexBuffer(data []uint16) (gl.Buffer, error) {
	return m.createBuffer("index buffer", gl.ELEMENT_ARRAY_BUFFER, gl.Uint16Bytes(data))
}

// CreateIndexBuffer32 uploads 32-bit indices. It requires the
// element-index-uint capability and fails with ErrUnsupported without it.
func (m *Manager) CreateIndexBuffer32(ext Extensions, data []uint32) (gl.Buffer, error) {
	if !ext.ElementIndexUint {
		return gl.Buffer{}, fmt.Errorf("%w: %s", ErrUnsupported, gl.ExtElementIndexUint)
	}
	return m.createBuffer("index buffer", gl.ELEMENT_ARRAY_BUFFER, gl.Uint32Bytes(data))
}

func (m *Manager) createBuffer(what string, target gl.Enum, data []byte) (gl.Buffer, error) {
	fn, err := m.active("create " + what)
	if err != nil {
		return gl.Buffer{}, err
	}
	b := fn.CreateBuffer()
	if !b.Valid() {
		return gl.Buffer{}, fmt.Errorf("%w: create %s", ErrResource, what)
	}
	fn.BindBuffer(target, b)
	fn.BufferData(target, data, gl.STATIC_DRAW)
	fn.BindBuffer(target, gl.Buffer{})
	slogger().Debug("buffer created", "kind", what, "buffer", b.V, "bytes", len(data))
	return b, nil
}

// DeleteBuffer releases b. It is a no-op without a context.
func (m *Manager) DeleteBuffer(b gl.Buffer) {
	if fn, err := m.active("delete buffer"); err == nil && b.Valid() {
		fn.DeleteBuffer(b)
	}
}

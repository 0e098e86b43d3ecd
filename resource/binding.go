// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/outline/gl"
)

// AttributeSlot declares a vertex attribute by shader name and format.
type AttributeSlot struct {
	Name   string
	Format gputypes.VertexFormat
}

// Size returns the number of float components per vertex.
func (s AttributeSlot) Size() int {
	switch s.Format {
	case gputypes.VertexFormatFloat32:
		return 1
	case gputypes.VertexFormatFloat32x2:
		return 2
	case gputypes.VertexFormatFloat32x3:
		return 3
	case gputypes.VertexFormatFloat32x4:
		return 4
	}
	return 0
}

// AttributeBinding is a resolved attribute slot.
type AttributeBinding struct {
	Name     string
	Location gl.Attrib
	Size     int
}

// AttributeTable maps slot order to resolved locations.
type AttributeTable []AttributeBinding

// UniformKind selects the setter used for a uniform.
type UniformKind uint8

const (
	KindMatrix4 UniformKind = iota + 1
	KindInt
	KindFloat
	KindVec4
)

func (k UniformKind) String() string {
	switch k {
	case KindMatrix4:
		return "matrix4"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindVec4:
		return "vec4"
	}
	return fmt.Sprintf("UniformKind(%d)", uint8(k))
}

// UniformSlot declares a uniform by shader name and kind.
type UniformSlot struct {
	Name string
	Kind UniformKind
}

// UniformBinding is a resolved uniform slot.
type UniformBinding struct {
	Name     string
	Location gl.Uniform
	Kind     UniformKind
}

// UniformTable maps slot order to resolved locations.
type UniformTable []UniformBinding

// UniformValue is a tagged uniform value.
type UniformValue struct {
	kind UniformKind
	m    mgl32.Mat4
	i    int
	f    float32
	v    mgl32.Vec4
}

// Matrix returns a 4x4 matrix value.
func Matrix(m mgl32.Mat4) UniformValue { return UniformValue{kind: KindMatrix4, m: m} }

// Int returns an integer value.
func Int(i int) UniformValue { return UniformValue{kind: KindInt, i: i} }

// Bool returns an integer value of 1 or 0, the shader encoding of a boolean.
func Bool(b bool) UniformValue {
	if b {
		return Int(1)
	}
	return Int(0)
}

// Float returns a scalar float value.
func Float(f float32) UniformValue { return UniformValue{kind: KindFloat, f: f} }

// Vec4 returns a 4-component vector value.
func Vec4(v mgl32.Vec4) UniformValue { return UniformValue{kind: KindVec4, v: v} }

// Kind returns the value's kind tag.
func (v UniformValue) Kind() UniformKind { return v.kind }

// IntValue returns the integer payload.
func (v UniformValue) IntValue() int { return v.i }

// MatrixValue returns the matrix payload.
func (v UniformValue) MatrixValue() mgl32.Mat4 { return v.m }

// ResolveAttributes looks up every slot in p once. Slots the program does not
// use resolve to a negative location and are skipped when binding.
func (m *Manager) ResolveAttributes(p gl.Program, slots []AttributeSlot) (AttributeTable, error) {
	fn, err := m.active("resolve attributes")
	if err != nil {
		return nil, err
	}
	table := make(AttributeTable, len(slots))
	for i, s := range slots {
		if s.Size() == 0 {
			return nil, fmt.Errorf("%w: attribute %q has unsupported format %v", ErrResource, s.Name, s.Format)
		}
		loc := fn.GetAttribLocation(p, s.Name)
		if !loc.Valid() {
			slogger().Warn("attribute not active in program", "name", s.Name)
		}
		table[i] = AttributeBinding{Name: s.Name, Location: loc, Size: s.Size()}
	}
	return table, nil
}

// ResolveUniforms looks up every slot in p once.
func (m *Manager) ResolveUniforms(p gl.Program, slots []UniformSlot) (UniformTable, error) {
	fn, err := m.active("resolve uniforms")
	if err != nil {
		return nil, err
	}
	table := make(UniformTable, len(slots))
	for i, s := range slots {
		loc := fn.GetUniformLocation(p, s.Name)
		if !loc.Valid() {
			slogger().Warn("uniform not active in program", "name", s.Name)
		}
		table[i] = UniformBinding{Name: s.Name, Location: loc, Kind: s.Kind}
	}
	return table, nil
}

// BindAttributes binds buffers[i] to table[i]: the buffer is bound, its
// attribute enabled and declared as tightly packed floats. When index is
// valid it becomes the element source for the following draw calls.
func (m *Manager) BindAttributes(buffers []gl.Buffer, table AttributeTable, index gl.Buffer) error {
	fn, err := m.active("bind attributes")
	if err != nil {
		return err
	}
	if len(buffers) != len(table) {
		return fmt.Errorf("%w: %d buffers for %d attributes", ErrResource, len(buffers), len(table))
	}
	for i, b := range buffers {
		a := table[i]
		if !a.Location.Valid() || !b.Valid() {
			continue
		}
		fn.BindBuffer(gl.ARRAY_BUFFER, b)
		fn.EnableVertexAttribArray(a.Location)
		fn.VertexAttribPointer(a.Location, a.Size, gl.FLOAT, false, 0, 0)
	}
	if index.Valid() {
		fn.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, index)
	}
	return nil
}

// SetUniforms applies values[i] to table[i], dispatching on the slot kind.
// Matrices are uploaded column-major without transposition.
func (m *Manager) SetUniforms(values []UniformValue, table UniformTable) error {
	fn, err := m.active("set uniforms")
	if err != nil {
		return err
	}
	if len(values) != len(table) {
		return fmt.Errorf("%w: %d values for %d uniforms", ErrUniformKind, len(values), len(table))
	}
	for i, v := range values {
		u := table[i]
		if v.kind != u.Kind {
			return fmt.Errorf("%w: %s is %s, got %s", ErrUniformKind, u.Name, u.Kind, v.kind)
		}
		if !u.Location.Valid() {
			continue
		}
		switch u.Kind {
		case KindMatrix4:
			fn.UniformMatrix4fv(u.Location, false, v.m[:])
		case KindInt:
			fn.Uniform1i(u.Location, v.i)
		case KindFloat:
			fn.Uniform1f(u.Location, v.f)
		case KindVec4:
			fn.Uniform4f(u.Location, v.v[0], v.v[1], v.v[2], v.v[3])
		}
	}
	return nil
}

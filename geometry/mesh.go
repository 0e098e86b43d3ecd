// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package geometry generates indexed triangle meshes for the outline renderer.
//
// Generators are pure: they allocate fresh slices on every call and never
// touch GPU state.
package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxVertices is the largest vertex count a mesh may hold.
const MaxVertices = math.MaxUint16

var (
	// ErrArity is returned when per-vertex attribute arrays differ in length.
	ErrArity = errors.New("geometry: attribute arity mismatch")

	// ErrIndexRange is returned when an index addresses a missing vertex.
	ErrIndexRange = errors.New("geometry: index out of range")

	// ErrTooManyVertices is returned when a mesh exceeds 16-bit indexing.
	ErrTooManyVertices = errors.New("geometry: too many vertices for 16-bit indices")
)

// Mesh is an indexed triangle list with one entry per vertex in each
// attribute array.
type Mesh struct {
	Position []mgl32.Vec3
	Normal   []mgl32.Vec3
	Color    []mgl32.Vec4
	TexCoord []mgl32.Vec2 // optional
	Index    []uint16
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Position) }

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() int { return len(m.Index) }

// Validate checks the arity and index-bounds invariants.
func (m *Mesh) Validate() error {
	n := len(m.Position)
	if n > MaxVertices {
		return fmt.Errorf("%w: %d", ErrTooManyVertices, n)
	}
	if len(m.Normal) != n || len(m.Color) != n {
		return fmt.Errorf("%w: position=%d normal=%d color=%d",
			ErrArity, n, len(m.Normal), len(m.Color))
	}
	if m.TexCoord != nil && len(m.TexCoord) != n {
		return fmt.Errorf("%w: position=%d texCoord=%d", ErrArity, n, len(m.TexCoord))
	}
	for i, idx := range m.Index {
		if int(idx) >= n {
			return fmt.Errorf("%w: index[%d]=%d, vertices=%d", ErrIndexRange, i, idx, n)
		}
	}
	return nil
}

// Positions returns the positions as a tightly packed float array.
func (m *Mesh) Positions() []float32 { return Flatten3(m.Position) }

// Normals returns the normals as a tightly packed float array.
func (m *Mesh) Normals() []float32 { return Flatten3(m.Normal) }

// Colors returns the colors as a tightly packed float array.
func (m *Mesh) Colors() []float32 { return Flatten4(m.Color) }

// TexCoords returns the texture coordinates as a tightly packed float array,
// or nil when the mesh has none.
func (m *Mesh) TexCoords() []float32 {
	if m.TexCoord == nil {
		return nil
	}
	return Flatten2(m.TexCoord)
}

// Flatten2 packs 2-tuples into a float array.
func Flatten2(v []mgl32.Vec2) []float32 {
	out := make([]float32, 0, len(v)*2)
	for _, e := range v {
		out = append(out, e[0], e[1])
	}
	return out
}

// Flatten3 packs 3-tuples into a float array.
func Flatten3(v []mgl32.Vec3) []float32 {
	out := make([]float32, 0, len(v)*3)
	for _, e := range v {
		out = append(out, e[0], e[1], e[2])
	}
	return out
}

// Flatten4 packs 4-tuples into a float array.
func Flatten4(v []mgl32.Vec4) []float32 {
	out := make([]float32, 0, len(v)*4)
	for _, e := range v {
		out = append(out, e[0], e[1], e[2], e[3])
	}
	return out
}

func solid(c mgl32.Vec4, n int) []mgl32.Vec4 {
	col := make([]mgl32.Vec4, n)
	for i := range col {
		col[i] = c
	}
	return col
}

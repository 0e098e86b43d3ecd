// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geometry

import "github.com/go-gl/mathgl/mgl32"

// Front and back index lists of a plane. Counter-clockwise winding is the
// front face.
var (
	planeFront = [6]uint16{0, 2, 1, 1, 2, 3}
	planeBack  = [6]uint16{0, 1, 2, 1, 3, 2}
)

// Plane returns a width x height quad centered at the origin in the XY plane,
// facing +Z, with 4 vertices and the front-facing index list.
//
// Vertex order is top-left, top-right, bottom-left, bottom-right.
func Plane(width, height float32, rgba mgl32.Vec4) *Mesh {
	w, h := width/2, height/2
	m := &Mesh{
		Position: []mgl32.Vec3{
			{-w, h, 0},
			{w, h, 0},
			{-w, -h, 0},
			{w, -h, 0},
		},
		Normal: []mgl32.Vec3{
			{0, 0, 1},
			{0, 0, 1},
			{0, 0, 1},
			{0, 0, 1},
		},
		Color: solid(rgba, 4),
		TexCoord: []mgl32.Vec2{
			{0, 0},
			{1, 0},
			{0, 1},
			{1, 1},
		},
	}
	m.Index = append([]uint16(nil), planeFront[:]...)
	return m
}

// PlaneBack is Plane with the mirrored clockwise index list, so the quad is
// front-facing when seen from -Z.
func PlaneBack(width, height float32, rgba mgl32.Vec4) *Mesh {
	m := Plane(width, height, rgba)
	copy(m.Index, planeBack[:])
	return m
}

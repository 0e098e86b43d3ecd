// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// cubeCorners lists the 4 corners of each face as unit sign vectors, in the
// order front, back, top, bottom, right, left. Positions scale them by half
// the side; normals scale them by 1/sqrt(3).
var cubeCorners = [24]mgl32.Vec3{
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	{-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}, {1, -1, -1},
	{-1, 1, -1}, {-1, 1, 1}, {1, 1, 1}, {1, 1, -1},
	{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1},
	{1, -1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1},
	{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1},
}

// Cube returns an axis-aligned cube of the given side centered at the origin.
//
// Each of the 6 faces owns 4 vertices (24 total, no welding) and 2 triangles
// (36 indices). Normals are the corner directions normalized to unit length,
// not flat face normals; the outline shader depends on that shading.
func Cube(side float32, rgba mgl32.Vec4) *Mesh {
	hs := side * 0.5
	v := 1 / math32.Sqrt(3)

	m := &Mesh{
		Position: make([]mgl32.Vec3, len(cubeCorners)),
		Normal:   make([]mgl32.Vec3, len(cubeCorners)),
		Color:    solid(rgba, len(cubeCorners)),
		Index:    make([]uint16, 0, 36),
	}
	for i, c := range cubeCorners {
		m.Position[i] = c.Mul(hs)
		m.Normal[i] = c.Mul(v)
	}
	for face := uint16(0); face < 6; face++ {
		b := face * 4
		m.Index = append(m.Index, b, b+1, b+2, b, b+2, b+3)
	}
	return m
}

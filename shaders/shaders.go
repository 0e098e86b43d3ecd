// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shaders embeds the default outline shader pair for each backend.
//
// Both stages read the uEdgeDecide uniform: the vertex stage pushes outline
// vertices out along their normal and the fragment stage paints them flat.
package shaders

import (
	"embed"
	"path"
)

//go:embed glsl webgl wgsl
var FS embed.FS

// Dialect directories inside FS.
const (
	GLSL  = "glsl"  // OpenGL 4.1 core
	WebGL = "webgl" // GLSL ES 1.00
	WGSL  = "wgsl"  // naga-validated, used by the recorder
)

// Paths returns the vertex and fragment paths of dialect inside FS.
func Paths(dialect string) []string {
	ext := ".glsl"
	if dialect == WGSL {
		ext = ".wgsl"
	}
	return []string{
		path.Join(dialect, "outline.vert"+ext),
		path.Join(dialect, "outline.frag"+ext),
	}
}

// ForBackend returns the dialect a backend name compiles.
func ForBackend(name string) string {
	switch name {
	case "webgl":
		return WebGL
	case "recorder":
		return WGSL
	}
	return GLSL
}

// Source returns the embedded vertex and fragment sources of dialect.
func Source(dialect string) (vertex, fragment string, err error) {
	p := Paths(dialect)
	v, err := FS.ReadFile(p[0])
	if err != nil {
		return "", "", err
	}
	f, err := FS.ReadFile(p[1])
	if err != nil {
		return "", "", err
	}
	return string(v), string(f), nil
}

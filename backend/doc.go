// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend provides the registry of graphics context providers.
//
// A provider binds an immediate-mode [gl.Functions] table to a drawable
// surface. Providers register themselves from init() functions and are
// selected at runtime:
//
//	import (
//		_ "github.com/gogpu/outline/backend/desktop"  // GLFW + OpenGL 4.1
//		_ "github.com/gogpu/outline/backend/recorder" // headless
//	)
//
//	p := backend.Default()       // best available
//	p = backend.Get("recorder")  // or by name
//
// # Providers
//
//   - desktop: OpenGL 4.1 core through go-gl, window surfaces through GLFW
//   - webgl: WebGL 1 through syscall/js on a <canvas> (js/wasm builds)
//   - recorder: in-memory context that validates WGSL with naga and records
//     every call; used by tests and headless runs
package backend

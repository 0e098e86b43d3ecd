// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gl defines the immediate-mode graphics API surface used by outline.
//
// The [Functions] interface is the subset of OpenGL / WebGL entry points the
// resource manager and the render orchestrator call. Backends implement it on
// top of desktop OpenGL (backend/native), WebGL (backend/webgl) or an
// in-memory recorder (backend/recorder).
//
// Object handles are small value types. The zero value of every handle is
// invalid, mirroring the "null object" that GL returns on failure.
package gl

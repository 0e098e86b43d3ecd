// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package outline renders a lit cube with a silhouette outline.
//
// # Overview
//
// The outline is drawn with culling inversion: the mesh is drawn once with
// back faces culled, then again with front faces culled while the
// uEdgeDecide uniform tells the shaders to push the surviving back faces out
// along their normals and paint them a flat edge color. No stencil buffer
// and no second mesh are needed.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/outline"
//	    _ "github.com/gogpu/outline/backend/desktop"
//	)
//
//	r := outline.New(backend.Default(), nil)
//	if _, err := r.Run(ctx, gl.Named("canvas"), nil); err != nil {
//	    log.Fatal(err)
//	}
//	for !window.ShouldClose() {
//	    r.Tick()
//	    window.SwapBuffers()
//	}
//
// # Phases
//
// A Renderer moves through Uninitialized, ContextAcquired, Loading, Ready
// and Rendering. Each phase returns the data the next one needs:
//
//	init, err := r.Initialize(ctx, target)
//	loaded, err := r.Load(ctx, init, paths)
//	ready, err := r.Setup(loaded)
//
// OnFrame draws nothing and touches no GPU state until Setup has succeeded.
//
// # Passes
//
// The per-frame draw is an ordered list of Pass values, each a cull mode and
// a set of uniform overrides. DefaultPasses is the solid pass followed by
// the outline pass; WithPasses replaces it.
//
// # Packages
//
//   - gl: graphics entry points, handles and constants
//   - resource: context ownership and GPU object creation
//   - geometry: plane and cube meshes
//   - camera: orbit camera
//   - shader: stage source loading and hot reload
//   - shaders: embedded default stage sources
//   - config: TOML settings
//   - backend: backend registry; recorder, desktop and webgl implementations
package outline

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/outline/camera"
	"github.com/gogpu/outline/geometry"
	"github.com/gogpu/outline/gl"
	"github.com/gogpu/outline/resource"
	"github.com/gogpu/outline/shader"
	"github.com/gogpu/outline/shaders"
)

// State is a Renderer lifecycle phase.
type State uint8

const (
	StateUninitialized State = iota
	StateContextAcquired
	StateLoading
	StateReady
	StateRendering
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateContextAcquired:
		return "ContextAcquired"
	case StateLoading:
		return "Loading"
	case StateReady:
		return "Ready"
	case StateRendering:
		return "Rendering"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Initialized is the result of Initialize.
type Initialized struct {
	Manager    *resource.Manager
	Extensions resource.Extensions
}

// Loaded is the result of Load.
type Loaded struct {
	Manager *resource.Manager
	Sources shader.Pair
}

// MeshBuffers is a mesh uploaded as one buffer per Attribute plus an index
// buffer.
type MeshBuffers struct {
	Mesh       *geometry.Mesh
	Attributes [attributeCount]gl.Buffer
	Index      gl.Buffer
}

// Count returns the number of indices to draw.
func (b MeshBuffers) Count() int { return b.Mesh.IndexCount() }

// Ready is the result of Setup: everything a frame reads.
type Ready struct {
	Manager    *resource.Manager
	Program    gl.Program
	Attributes resource.AttributeTable
	Uniforms   resource.UniformTable
	Cube       MeshBuffers
	Plane      MeshBuffers
	Camera     Camera
}

// Renderer drives the phases and the per-frame draw. All methods must be
// called from the goroutine that owns the graphics context.
type Renderer struct {
	provider resource.Provider
	fetcher  shader.Fetcher
	opts     options

	state State
	mgr   *resource.Manager
	ready *Ready

	start  time.Time
	last   time.Time
	frames uint64
}

// New returns an uninitialized Renderer. A nil fetcher reads paths from disk
// or over HTTP.
func New(p resource.Provider, f shader.Fetcher, opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{provider: p, fetcher: f, opts: o}
}

// State returns the current phase.
func (r *Renderer) State() State { return r.state }

// Ready returns the setup result, or nil before Setup succeeds.
func (r *Renderer) Ready() *Ready { return r.ready }

// Frames returns the number of frames drawn.
func (r *Renderer) Frames() uint64 { return r.frames }

func (r *Renderer) expect(op string, states ...State) error {
	for _, s := range states {
		if r.state == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %s in state %s", ErrState, op, r.state)
}

// Initialize acquires the graphics context for target.
func (r *Renderer) Initialize(ctx context.Context, target gl.Target) (*Initialized, error) {
	if err := r.expect("initialize", StateUninitialized); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m, err := resource.AcquireContext(r.provider, target)
	if err != nil {
		return nil, err
	}
	r.mgr = m
	r.state = StateContextAcquired
	Logger().Info("renderer initialized", "target", target.String())
	return &Initialized{Manager: m, Extensions: m.QueryExtensions()}, nil
}

// Load fetches the vertex and fragment sources at paths, which must hold
// exactly a vertex and a fragment path; any other non-nil list fails with
// shader.ErrLoad. When paths is nil the embedded sources for the backend are
// used by default. On failure the renderer stays in ContextAcquired.
func (r *Renderer) Load(ctx context.Context, in *Initialized, paths []string) (*Loaded, error) {
	if err := r.expect("load", StateContextAcquired); err != nil {
		return nil, err
	}
	if in == nil || in.Manager != r.mgr {
		return nil, fmt.Errorf("%w: load: foreign initialize result", ErrState)
	}
	r.state = StateLoading
	src, err := r.fetch(ctx, paths)
	if err != nil {
		r.state = StateContextAcquired
		return nil, err
	}
	return &Loaded{Manager: in.Manager, Sources: src}, nil
}

func (r *Renderer) fetch(ctx context.Context, paths []string) (shader.Pair, error) {
	f := r.fetcher
	switch {
	case paths == nil:
		f, paths = shader.FS{FS: shaders.FS}, shaders.Paths(r.dialect())
	case f == nil:
		f = shader.Auto{}
	}
	return shader.Load(ctx, f, paths)
}

func (r *Renderer) dialect() string {
	if n, ok := r.provider.(interface{ Name() string }); ok {
		return shaders.ForBackend(n.Name())
	}
	return shaders.GLSL
}

// Setup builds the program, resolves the slot tables, uploads the meshes and
// creates the camera. Compile and link failures are returned unchanged in
// the chain so callers can report the driver log.
func (r *Renderer) Setup(in *Loaded) (*Ready, error) {
	if err := r.expect("setup", StateLoading); err != nil {
		return nil, err
	}
	if in == nil || in.Manager != r.mgr {
		return nil, fmt.Errorf("%w: setup: foreign load result", ErrState)
	}
	m := in.Manager

	rd := &Ready{Manager: m}
	var err error
	rd.Program, rd.Attributes, rd.Uniforms, err = r.buildProgram(m, in.Sources)
	if err != nil {
		return nil, fmt.Errorf("outline: setup: %w", err)
	}

	look := r.opts.look
	color := mgl32.Vec4(look.MeshColor)
	if rd.Cube, err = upload(m, geometry.Cube(look.CubeSide, color)); err == nil {
		rd.Plane, err = upload(m, geometry.Plane(look.PlaneSize, look.PlaneSize, color))
	}
	if err != nil {
		release(rd)
		return nil, fmt.Errorf("outline: setup: %w", err)
	}

	rd.Camera = r.opts.camera
	if rd.Camera == nil {
		rd.Camera = camera.New(r.opts.cameraOpts)
	}

	r.ready = rd
	r.state = StateReady
	Logger().Info("renderer ready",
		"program", rd.Program.V, "scene", r.opts.scene.String(), "passes", len(r.opts.passes))
	return rd, nil
}

func (r *Renderer) buildProgram(m *resource.Manager, src shader.Pair) (gl.Program, resource.AttributeTable, resource.UniformTable, error) {
	p, err := m.BuildProgram(src.Vertex, src.Fragment)
	if err != nil {
		return gl.Program{}, nil, nil, err
	}
	attrs, err := m.ResolveAttributes(p, AttributeSlots[:])
	if err != nil {
		m.DeleteProgram(p)
		return gl.Program{}, nil, nil, err
	}
	uniforms, err := m.ResolveUniforms(p, UniformSlots[:])
	if err != nil {
		m.DeleteProgram(p)
		return gl.Program{}, nil, nil, err
	}
	return p, attrs, uniforms, nil
}

func upload(m *resource.Manager, mesh *geometry.Mesh) (MeshBuffers, error) {
	b := MeshBuffers{Mesh: mesh}
	if err := mesh.Validate(); err != nil {
		return b, err
	}
	if mesh.IndexCount() == 0 {
		return b, ErrNoGeometry
	}
	data := [attributeCount][]float32{
		AttributePosition: mesh.Positions(),
		AttributeColor:    mesh.Colors(),
		AttributeNormal:   mesh.Normals(),
	}
	for i, d := range data {
		buf, err := m.CreateVertexBuffer(d)
		if err != nil {
			b.delete(m)
			return MeshBuffers{}, err
		}
		b.Attributes[i] = buf
	}
	idx, err := m.CreateIndexBuffer(mesh.Index)
	if err != nil {
		b.delete(m)
		return MeshBuffers{}, err
	}
	b.Index = idx
	return b, nil
}

func (b MeshBuffers) delete(m *resource.Manager) {
	for _, buf := range b.Attributes {
		m.DeleteBuffer(buf)
	}
	m.DeleteBuffer(b.Index)
}

func release(rd *Ready) {
	rd.Cube.delete(rd.Manager)
	rd.Plane.delete(rd.Manager)
	rd.Manager.DeleteProgram(rd.Program)
}

// Run performs Initialize, Load and Setup in order.
func (r *Renderer) Run(ctx context.Context, target gl.Target, paths []string) (*Ready, error) {
	in, err := r.Initialize(ctx, target)
	if err != nil {
		return nil, err
	}
	loaded, err := r.Load(ctx, in, paths)
	if err != nil {
		return nil, err
	}
	return r.Setup(loaded)
}

// Reload fetches new stage sources and swaps in a program built from them.
// When fetching, compiling or linking fails the current program stays in use
// and the error is returned.
func (r *Renderer) Reload(ctx context.Context, paths []string) error {
	if err := r.expect("reload", StateReady, StateRendering); err != nil {
		return err
	}
	src, err := r.fetch(ctx, paths)
	if err != nil {
		Logger().Warn("shader reload failed", "err", err)
		return err
	}
	rd := r.ready
	p, attrs, uniforms, err := r.buildProgram(rd.Manager, src)
	if err != nil {
		Logger().Warn("shader reload failed", "err", err)
		return fmt.Errorf("outline: reload: %w", err)
	}
	rd.Manager.DeleteProgram(rd.Program)
	rd.Program, rd.Attributes, rd.Uniforms = p, attrs, uniforms
	Logger().Info("shaders reloaded", "program", p.V)
	return nil
}

// Release deletes every object Setup created and drops the context. The
// renderer returns to Uninitialized.
func (r *Renderer) Release() {
	if r.ready != nil {
		release(r.ready)
		r.ready = nil
	}
	if r.mgr != nil {
		r.mgr.Release()
		r.mgr = nil
	}
	r.state = StateUninitialized
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/outline/backend/recorder"
	"github.com/gogpu/outline/gl"
	"github.com/gogpu/outline/resource"
	"github.com/gogpu/outline/shader"
	"github.com/gogpu/outline/shaders"
)

func setupRenderer(t *testing.T, opts ...Option) (*Renderer, *recorder.Backend) {
	t.Helper()
	b := recorder.New()
	r := New(b, nil, opts...)
	if _, err := r.Run(context.Background(), gl.Named(recorder.DefaultSurface), nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return r, b
}

// sourceFetcher serves stage sources by path.
func sourceFetcher(files map[string]string) shader.Fetcher {
	return shader.FetcherFunc(func(_ context.Context, path string) ([]byte, error) {
		s, ok := files[path]
		if !ok {
			return nil, errors.New("not found")
		}
		return []byte(s), nil
	})
}

func wgslFiles(t *testing.T) map[string]string {
	t.Helper()
	v, f, err := shaders.Source(shaders.WGSL)
	if err != nil {
		t.Fatal(err)
	}
	return map[string]string{
		"good.vert": v,
		"good.frag": f,
		"bad.vert":  "fn broken(",
	}
}

func TestOnFrameBeforeSetup(t *testing.T) {
	b := recorder.New()
	r := New(b, nil)
	if err := r.OnFrame(0, 0); err != nil {
		t.Fatalf("OnFrame() before Initialize error = %v", err)
	}

	in, err := r.Initialize(context.Background(), gl.Named(recorder.DefaultSurface))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Load(context.Background(), in, nil); err != nil {
		t.Fatal(err)
	}
	c := b.Context()
	c.Reset()

	for range 3 {
		if err := r.OnFrame(time.Second, time.Millisecond); err != nil {
			t.Fatalf("OnFrame() error = %v", err)
		}
	}
	if calls := c.Calls(); len(calls) != 0 {
		t.Errorf("OnFrame before Setup issued %d calls: %v", len(calls), calls)
	}
	if r.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", r.Frames())
	}
}

func TestTwoPassOutline(t *testing.T) {
	r, b := setupRenderer(t)
	c := b.Context()
	c.Reset()

	if err := r.OnFrame(0, 0); err != nil {
		t.Fatalf("OnFrame() error = %v", err)
	}
	if errs := c.Errors(); len(errs) != 0 {
		t.Fatalf("driver errors: %v", errs)
	}
	draws := c.Draws()
	if len(draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(draws))
	}
	want := []struct {
		face gl.Enum
		edge int
	}{
		{gl.BACK, 0},
		{gl.FRONT, 1},
	}
	for i, d := range draws {
		if d.Mode != gl.TRIANGLES || d.Count != 36 || d.Type != gl.UNSIGNED_SHORT || d.Offset != 0 {
			t.Errorf("draw %d = %v %d %v %d", i, d.Mode, d.Count, d.Type, d.Offset)
		}
		if !d.CullEnabled || d.CullFace != want[i].face {
			t.Errorf("draw %d cull = %v/0x%x, want 0x%x", i, d.CullEnabled, uint32(d.CullFace), uint32(want[i].face))
		}
		if got := d.Uniforms["uEdgeDecide"].Int(); got != want[i].edge {
			t.Errorf("draw %d uEdgeDecide = %d, want %d", i, got, want[i].edge)
		}
		if !d.DepthTest {
			t.Errorf("draw %d without depth test", i)
		}
		if d.Program != r.Ready().Program || d.ElementBuffer != r.Ready().Cube.Index {
			t.Errorf("draw %d program/ibo = %v/%v", i, d.Program, d.ElementBuffer)
		}
		if got := d.Uniforms["uModelMatrix"].Floats; !slices.Equal(got, identity()) {
			t.Errorf("draw %d model = %v", i, got)
		}
	}
	if !slices.Equal(draws[0].Uniforms["uViewMatrix"].Floats, draws[1].Uniforms["uViewMatrix"].Floats) {
		t.Error("passes used different view matrices")
	}
	if got := c.ClearColorValue(); got != [4]float32{0.158, 0.629, 0.81, 1} {
		t.Errorf("clear color = %v", got)
	}
	if r.State() != StateRendering {
		t.Errorf("State() = %v, want Rendering", r.State())
	}
}

func identity() []float32 {
	m := mgl32.Ident4()
	return m[:]
}

func TestFrameCallOrder(t *testing.T) {
	r, b := setupRenderer(t)
	c := b.Context()
	c.Reset()
	if err := r.OnFrame(0, 0); err != nil {
		t.Fatal(err)
	}
	names := c.CallNames()
	wantPrefix := []string{"Viewport", "ClearColor", "Clear", "Enable", "Enable", "UseProgram", "CullFace"}
	if len(names) < len(wantPrefix) || !slices.Equal(names[:len(wantPrefix)], wantPrefix) {
		t.Fatalf("call order = %v", names)
	}
	first := slices.Index(names, "DrawElements")
	if first < 0 || slices.Index(names[first+1:], "CullFace") < 0 {
		t.Errorf("second pass did not change the cull face: %v", names)
	}
}

func TestResizeReadEachFrame(t *testing.T) {
	b := recorder.New()
	s := b.AddSurface("resizable", 400, 200)
	r := New(b, nil)
	if _, err := r.Run(context.Background(), gl.Named("resizable"), nil); err != nil {
		t.Fatal(err)
	}
	c := b.Context()

	if err := r.OnFrame(0, 0); err != nil {
		t.Fatal(err)
	}
	s.Resize(300, 300)
	reads := s.Reads()
	if err := r.OnFrame(0, 0); err != nil {
		t.Fatal(err)
	}
	if s.Reads() != reads+1 {
		t.Errorf("surface size read %d times in one frame", s.Reads()-reads)
	}
	if got := c.ViewportRect(); got != [4]int{0, 0, 300, 300} {
		t.Errorf("viewport = %v, want 300x300", got)
	}
	p := c.Draws()[len(c.Draws())-1].Uniforms["uProjectionMatrix"].Floats
	if p[0] != p[5] {
		t.Errorf("square surface projection has aspect %v", p[5]/p[0])
	}
}

func TestZeroSizeSurfaceSkipsFrame(t *testing.T) {
	b := recorder.New(recorder.WithSurface("empty", 0, 0))
	r := New(b, nil)
	if _, err := r.Run(context.Background(), gl.Named("empty"), nil); err != nil {
		t.Fatal(err)
	}
	c := b.Context()
	c.Reset()
	if err := r.OnFrame(0, 0); err != nil {
		t.Fatal(err)
	}
	if len(c.Calls()) != 0 {
		t.Errorf("zero-sized frame issued calls: %v", c.CallNames())
	}
}

func TestPhaseOrder(t *testing.T) {
	ctx := context.Background()
	b := recorder.New()
	r := New(b, nil)

	if _, err := r.Load(ctx, &Initialized{}, nil); !errors.Is(err, ErrState) {
		t.Errorf("Load before Initialize error = %v", err)
	}
	if _, err := r.Setup(&Loaded{}); !errors.Is(err, ErrState) {
		t.Errorf("Setup before Load error = %v", err)
	}
	in, err := r.Initialize(ctx, gl.Named(recorder.DefaultSurface))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Initialize(ctx, gl.Named(recorder.DefaultSurface)); !errors.Is(err, ErrState) {
		t.Errorf("second Initialize error = %v", err)
	}
	if _, err := r.Setup(&Loaded{Manager: in.Manager}); !errors.Is(err, ErrState) {
		t.Errorf("Setup before Load error = %v", err)
	}
	if _, err := r.Load(ctx, &Initialized{}, nil); !errors.Is(err, ErrState) {
		t.Errorf("Load with a foreign result error = %v", err)
	}
	loaded, err := r.Load(ctx, in, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.State() != StateLoading {
		t.Errorf("State() = %v, want Loading", r.State())
	}
	if _, err := r.Setup(loaded); err != nil {
		t.Fatal(err)
	}
	if r.State() != StateReady {
		t.Errorf("State() = %v, want Ready", r.State())
	}
	if err := r.Reload(ctx, []string{"a"}); !errors.Is(err, shader.ErrInvalidPaths) {
		t.Errorf("Reload with one path error = %v", err)
	}
}

func TestInitializeFailure(t *testing.T) {
	r := New(recorder.New(recorder.Unavailable()), nil)
	_, err := r.Initialize(context.Background(), gl.Named(recorder.DefaultSurface))
	if !errors.Is(err, resource.ErrContext) {
		t.Errorf("error = %v, want ErrContext", err)
	}
	if r.State() != StateUninitialized {
		t.Errorf("State() = %v", r.State())
	}
}

func TestLoadFailureKeepsContext(t *testing.T) {
	ctx := context.Background()
	r := New(recorder.New(), sourceFetcher(wgslFiles(t)))
	in, err := r.Initialize(ctx, gl.Named(recorder.DefaultSurface))
	if err != nil {
		t.Fatal(err)
	}
	for _, paths := range [][]string{{}, {"good.vert"}, {"good.vert", "good.frag", "good.frag"}} {
		_, err := r.Load(ctx, in, paths)
		if !errors.Is(err, shader.ErrInvalidPaths) || !errors.Is(err, shader.ErrLoad) {
			t.Errorf("Load(%q) error = %v, want ErrLoad wrapping ErrInvalidPaths", paths, err)
		}
		if r.State() != StateContextAcquired {
			t.Errorf("after Load(%q): State() = %v, want ContextAcquired", paths, r.State())
		}
	}
	if _, err := r.Load(ctx, in, []string{"good.vert", "missing.frag"}); !errors.Is(err, shader.ErrLoad) {
		t.Errorf("error = %v, want ErrLoad", err)
	}
	if r.State() != StateContextAcquired {
		t.Errorf("State() = %v, want ContextAcquired", r.State())
	}
	if _, err := r.Load(ctx, in, []string{"good.vert", "good.frag"}); err != nil {
		t.Errorf("retry error = %v", err)
	}
}

func TestSetupCompileFailure(t *testing.T) {
	ctx := context.Background()
	b := recorder.New()
	r := New(b, sourceFetcher(wgslFiles(t)))
	in, err := r.Initialize(ctx, gl.Named(recorder.DefaultSurface))
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := r.Load(ctx, in, []string{"bad.vert", "good.frag"})
	if err != nil {
		t.Fatal(err)
	}
	_, err = r.Setup(loaded)
	var ce *resource.CompileError
	if !errors.As(err, &ce) || ce.Log == "" {
		t.Fatalf("error = %v, want CompileError with a log", err)
	}
	if r.Ready() != nil || r.State() == StateReady {
		t.Error("renderer became ready after a compile failure")
	}
	c := b.Context()
	c.Reset()
	if err := r.OnFrame(0, 0); err != nil || len(c.Calls()) != 0 {
		t.Errorf("OnFrame after failed setup = %v, %v", err, c.CallNames())
	}
}

func TestSetupTables(t *testing.T) {
	r, _ := setupRenderer(t)
	rd := r.Ready()
	if len(rd.Attributes) != int(attributeCount) || len(rd.Uniforms) != int(uniformCount) {
		t.Fatalf("tables = %v, %v", rd.Attributes, rd.Uniforms)
	}
	for i, a := range rd.Attributes {
		if a.Name != Attribute(i).String() || !a.Location.Valid() {
			t.Errorf("attribute %d = %+v", i, a)
		}
	}
	for i, u := range rd.Uniforms {
		if u.Name != Uniform(i).String() || !u.Location.Valid() {
			t.Errorf("uniform %d = %+v", i, u)
		}
	}
	if rd.Plane.Count() != 6 || !rd.Plane.Index.Valid() {
		t.Errorf("plane buffers = %+v", rd.Plane)
	}
	if _, ok := rd.Camera.(interface{ Distance() float32 }); !ok {
		t.Errorf("default camera is %T", rd.Camera)
	}
}

func TestCustomPasses(t *testing.T) {
	passes := append(DefaultPasses(), Pass{
		Name:     "silhouette",
		Cull:     gputypes.CullModeNone,
		Uniforms: map[Uniform]resource.UniformValue{UniformEdge: resource.Int(1)},
	})
	r, b := setupRenderer(t, WithPasses(passes))
	c := b.Context()
	c.Reset()
	if err := r.OnFrame(0, 0); err != nil {
		t.Fatal(err)
	}
	draws := c.Draws()
	if len(draws) != 3 {
		t.Fatalf("draws = %d, want 3", len(draws))
	}
	if draws[2].CullEnabled {
		t.Error("third pass drew with culling enabled")
	}
	if c.Count("Disable") != 1 {
		t.Errorf("Disable calls = %d", c.Count("Disable"))
	}

	if err := r.OnFrame(0, 0); err != nil {
		t.Fatal(err)
	}
	if d := c.Draws()[3]; !d.CullEnabled || d.CullFace != gl.BACK {
		t.Errorf("next frame solid pass cull = %v/0x%x", d.CullEnabled, uint32(d.CullFace))
	}
}

func TestScenePlane(t *testing.T) {
	r, b := setupRenderer(t, WithScene(ScenePlane))
	c := b.Context()
	c.Reset()
	if err := r.OnFrame(0, 0); err != nil {
		t.Fatal(err)
	}
	for _, d := range c.Draws() {
		if d.Count != 6 || d.ElementBuffer != r.Ready().Plane.Index {
			t.Errorf("plane draw = %d indices from %v", d.Count, d.ElementBuffer)
		}
	}
}

type fixedCamera struct {
	view    mgl32.Mat4
	updates int
}

func (c *fixedCamera) Update() mgl32.Mat4 {
	c.updates++
	return c.view
}

func TestWithCamera(t *testing.T) {
	cam := &fixedCamera{view: mgl32.Translate3D(0, 0, -3)}
	r, b := setupRenderer(t, WithCamera(cam))
	if err := r.OnFrame(0, 0); err != nil {
		t.Fatal(err)
	}
	if cam.updates != 1 {
		t.Errorf("camera updated %d times in one frame", cam.updates)
	}
	got := b.Context().Draws()[0].Uniforms["uViewMatrix"].Floats
	if !slices.Equal(got, cam.view[:]) {
		t.Errorf("view = %v, want %v", got, cam.view)
	}
}

func TestReload(t *testing.T) {
	ctx := context.Background()
	b := recorder.New()
	r := New(b, sourceFetcher(wgslFiles(t)))
	if _, err := r.Run(ctx, gl.Named(recorder.DefaultSurface), []string{"good.vert", "good.frag"}); err != nil {
		t.Fatal(err)
	}
	old := r.Ready().Program

	err := r.Reload(ctx, []string{"bad.vert", "good.frag"})
	if !errors.Is(err, resource.ErrCompile) {
		t.Errorf("Reload(bad) error = %v, want ErrCompile", err)
	}
	if r.Ready().Program != old {
		t.Fatal("failed reload replaced the program")
	}
	if err := r.OnFrame(0, 0); err != nil {
		t.Fatal(err)
	}

	if err := r.Reload(ctx, []string{"good.vert", "good.frag"}); err != nil {
		t.Fatalf("Reload(good) error = %v", err)
	}
	c := b.Context()
	if r.Ready().Program == old {
		t.Error("reload kept the old program")
	}
	c.Reset()
	if err := r.OnFrame(0, 0); err != nil {
		t.Fatal(err)
	}
	if errs := c.Errors(); len(errs) != 0 {
		t.Errorf("driver errors after reload: %v", errs)
	}
	if d := c.Draws(); len(d) != 2 || d[0].Program != r.Ready().Program {
		t.Errorf("draws after reload = %+v", d)
	}
}

func TestTickUsesClock(t *testing.T) {
	now := time.Unix(100, 0)
	clock := func() time.Time { return now }
	r, _ := setupRenderer(t, WithClock(clock))
	for range 3 {
		if err := r.Tick(); err != nil {
			t.Fatal(err)
		}
		now = now.Add(16 * time.Millisecond)
	}
	if r.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", r.Frames())
	}
	if got := r.last.Sub(r.start); got != 32*time.Millisecond {
		t.Errorf("elapsed = %v, want 32ms", got)
	}
}

func TestRelease(t *testing.T) {
	r, b := setupRenderer(t)
	c := b.Context()
	r.Release()
	if c.Live() != 0 {
		t.Errorf("%d objects alive after Release", c.Live())
	}
	if r.State() != StateUninitialized || r.Ready() != nil {
		t.Errorf("State() = %v", r.State())
	}
	c.Reset()
	if err := r.OnFrame(0, 0); err != nil || len(c.Calls()) != 0 {
		t.Errorf("OnFrame after Release = %v, %v", err, c.CallNames())
	}
}

func TestStateString(t *testing.T) {
	if got := StateContextAcquired.String(); got != "ContextAcquired" {
		t.Errorf("String() = %q", got)
	}
	if got := State(42).String(); got != "State(42)" {
		t.Errorf("String() = %q", got)
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"slices"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/outline/backend/recorder"
	"github.com/gogpu/outline/gl"
	"github.com/gogpu/outline/resource"
	"github.com/gogpu/outline/shaders"
)

func newManager(t *testing.T, opts ...recorder.Option) (*resource.Manager, *recorder.Context) {
	t.Helper()
	b := recorder.New(opts...)
	m, err := resource.AcquireContext(b, gl.Named(recorder.DefaultSurface))
	if err != nil {
		t.Fatalf("AcquireContext() error = %v", err)
	}
	return m, b.Context()
}

func buildProgram(t *testing.T, m *resource.Manager) gl.Program {
	t.Helper()
	v, f, err := shaders.Source(shaders.WGSL)
	if err != nil {
		t.Fatal(err)
	}
	p, err := m.BuildProgram(v, f)
	if err != nil {
		t.Fatalf("BuildProgram() error = %v", err)
	}
	return p
}

var (
	attributeSlots = []resource.AttributeSlot{
		{Name: "position", Format: gputypes.VertexFormatFloat32x3},
		{Name: "color", Format: gputypes.VertexFormatFloat32x4},
		{Name: "normal", Format: gputypes.VertexFormatFloat32x3},
	}
	uniformSlots = []resource.UniformSlot{
		{Name: "uModelMatrix", Kind: resource.KindMatrix4},
		{Name: "uViewMatrix", Kind: resource.KindMatrix4},
		{Name: "uProjectionMatrix", Kind: resource.KindMatrix4},
		{Name: "uEdgeDecide", Kind: resource.KindInt},
	}
)

func TestAcquireContext(t *testing.T) {
	tests := []struct {
		name   string
		b      *recorder.Backend
		target gl.Target
	}{
		{"unknown surface", recorder.New(), gl.Named("missing")},
		{"unavailable api", recorder.New(recorder.Unavailable()), gl.Named(recorder.DefaultSurface)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := resource.AcquireContext(tt.b, tt.target)
			if !errors.Is(err, resource.ErrContext) {
				t.Errorf("error = %v, want ErrContext", err)
			}
			if m != nil {
				t.Error("manager returned on failure")
			}
		})
	}

	if _, err := resource.AcquireContext(nil, gl.Named("x")); !errors.Is(err, resource.ErrContext) {
		t.Errorf("nil provider error = %v", err)
	}
}

func TestNewManager(t *testing.T) {
	if _, err := resource.NewManager(nil, recorder.NewSurface(1, 1)); !errors.Is(err, resource.ErrContext) {
		t.Errorf("NewManager(nil) error = %v", err)
	}
	b := recorder.New()
	fn, s, err := b.Acquire(gl.Named(recorder.DefaultSurface))
	if err != nil {
		t.Fatal(err)
	}
	m, err := resource.NewManager(fn, s)
	if err != nil || !m.Active() || m.Surface() != s {
		t.Errorf("NewManager() = %v, %v", m, err)
	}
}

func TestCompileShaderFailure(t *testing.T) {
	m, c := newManager(t)
	s, err := m.CompileShader("this is not wgsl", resource.StageVertex)
	if s.Valid() {
		t.Errorf("shader = %v, want zero", s)
	}
	var ce *resource.CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *CompileError", err)
	}
	if ce.Stage != resource.StageVertex || ce.Log == "" {
		t.Errorf("CompileError = %+v", ce)
	}
	if !errors.Is(err, resource.ErrCompile) {
		t.Error("CompileError does not match ErrCompile")
	}
	if c.Live() != 0 {
		t.Errorf("%d objects left after failed compile", c.Live())
	}
}

func TestBuildProgram(t *testing.T) {
	m, c := newManager(t)
	p := buildProgram(t, m)
	if !p.Valid() {
		t.Fatal("program is zero")
	}
	if c.CurrentProgram() != p {
		t.Errorf("current program = %v, want %v", c.CurrentProgram(), p)
	}
	if got := c.Count("DeleteShader"); got != 2 {
		t.Errorf("DeleteShader calls = %d, want 2", got)
	}
}

func TestBuildProgramFragmentFailure(t *testing.T) {
	m, _ := newManager(t)
	v, _, _ := shaders.Source(shaders.WGSL)
	_, err := m.BuildProgram(v, "@fragment fn broken(")
	var ce *resource.CompileError
	if !errors.As(err, &ce) || ce.Stage != resource.StageFragment {
		t.Errorf("error = %v, want fragment CompileError", err)
	}
}

func TestLinkProgramInvalidShader(t *testing.T) {
	m, _ := newManager(t)
	_, err := m.LinkProgram(gl.Shader{}, gl.Shader{})
	var le *resource.LinkError
	if !errors.As(err, &le) || !errors.Is(err, resource.ErrLink) {
		t.Errorf("error = %v, want *LinkError", err)
	}
}

func TestBuffers(t *testing.T) {
	m, c := newManager(t)
	vbo, err := m.CreateVertexBuffer([]float32{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}
	if got := gl.BytesFloat32(c.BufferContents(vbo)); !slices.Equal(got, []float32{1, 2, 3}) {
		t.Errorf("vertex buffer = %v", got)
	}
	ibo, err := m.CreateIndexBuffer([]uint16{0, 2, 1})
	if err != nil {
		t.Fatal(err)
	}
	if got := gl.BytesUint16(c.BufferContents(ibo)); !slices.Equal(got, []uint16{0, 2, 1}) {
		t.Errorf("index buffer = %v", got)
	}
	if got := c.Count("BufferData"); got != 2 {
		t.Errorf("BufferData calls = %d", got)
	}
}

func TestIndexBuffer32(t *testing.T) {
	m, c := newManager(t, recorder.WithExtensions())
	ext := m.QueryExtensions()
	if _, err := m.CreateIndexBuffer32(ext, []uint32{0, 1, 2}); !errors.Is(err, resource.ErrUnsupported) {
		t.Errorf("error = %v, want ErrUnsupported", err)
	}

	m, c = newManager(t)
	b, err := m.CreateIndexBuffer32(m.QueryExtensions(), []uint32{0, 70000})
	if err != nil {
		t.Fatal(err)
	}
	if got := len(c.BufferContents(b)); got != 8 {
		t.Errorf("buffer size = %d, want 8", got)
	}
}

func TestResolveIdempotent(t *testing.T) {
	m, _ := newManager(t)
	p := buildProgram(t, m)

	first, err := m.ResolveAttributes(p, attributeSlots)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := m.ResolveAttributes(p, attributeSlots)
	if !slices.Equal(first, second) {
		t.Errorf("attribute tables differ: %v vs %v", first, second)
	}
	for i, a := range first {
		if !a.Location.Valid() {
			t.Errorf("attribute %s not resolved", a.Name)
		}
		if a.Size != attributeSlots[i].Size() {
			t.Errorf("attribute %s size = %d", a.Name, a.Size)
		}
	}

	u1, _ := m.ResolveUniforms(p, uniformSlots)
	u2, _ := m.ResolveUniforms(p, uniformSlots)
	if !slices.Equal(u1, u2) {
		t.Errorf("uniform tables differ: %v vs %v", u1, u2)
	}
}

func TestResolveMissingNames(t *testing.T) {
	m, _ := newManager(t)
	p := buildProgram(t, m)
	attrs, err := m.ResolveAttributes(p, []resource.AttributeSlot{{Name: "tangent", Format: gputypes.VertexFormatFloat32x3}})
	if err != nil {
		t.Fatal(err)
	}
	if attrs[0].Location.Valid() {
		t.Error("unused attribute resolved to a location")
	}
	if _, err := m.ResolveAttributes(p, []resource.AttributeSlot{{Name: "position"}}); !errors.Is(err, resource.ErrResource) {
		t.Errorf("unsupported format error = %v", err)
	}
}

func TestBindAndDraw(t *testing.T) {
	m, c := newManager(t)
	p := buildProgram(t, m)
	attrs, _ := m.ResolveAttributes(p, attributeSlots)
	uniforms, _ := m.ResolveUniforms(p, uniformSlots)

	pos, _ := m.CreateVertexBuffer(make([]float32, 9))
	col, _ := m.CreateVertexBuffer(make([]float32, 12))
	nor, _ := m.CreateVertexBuffer(make([]float32, 9))
	ibo, _ := m.CreateIndexBuffer([]uint16{0, 1, 2})

	if err := m.BindAttributes([]gl.Buffer{pos, col, nor}, attrs, ibo); err != nil {
		t.Fatal(err)
	}
	err := m.SetUniforms([]resource.UniformValue{
		resource.Matrix(mgl32.Ident4()),
		resource.Matrix(mgl32.Translate3D(0, 0, -2)),
		resource.Matrix(mgl32.Ident4()),
		resource.Bool(true),
	}, uniforms)
	if err != nil {
		t.Fatal(err)
	}
	m.GL().DrawElements(gl.TRIANGLES, 3, gl.UNSIGNED_SHORT, 0)

	if errs := c.Errors(); len(errs) != 0 {
		t.Fatalf("driver errors: %v", errs)
	}
	d := c.Draws()[0]
	if d.ElementBuffer != ibo {
		t.Errorf("element buffer = %v, want %v", d.ElementBuffer, ibo)
	}
	if a := d.Attribs[attrs[1].Location]; a.Buffer != col || a.Size != 4 || a.Type != gl.FLOAT || a.Stride != 0 || a.Offset != 0 {
		t.Errorf("color attribute = %+v", a)
	}
	if got := d.Uniforms["uEdgeDecide"].Int(); got != 1 {
		t.Errorf("uEdgeDecide = %d, want 1", got)
	}
	if got := d.Uniforms["uViewMatrix"].Floats[14]; got != -2 {
		t.Errorf("view translation z = %v, want -2", got)
	}
}

func TestBindAttributesArity(t *testing.T) {
	m, _ := newManager(t)
	p := buildProgram(t, m)
	attrs, _ := m.ResolveAttributes(p, attributeSlots)
	if err := m.BindAttributes([]gl.Buffer{{V: 1}}, attrs, gl.Buffer{}); !errors.Is(err, resource.ErrResource) {
		t.Errorf("error = %v, want ErrResource", err)
	}
}

func TestSetUniformsKindMismatch(t *testing.T) {
	m, c := newManager(t)
	p := buildProgram(t, m)
	uniforms, _ := m.ResolveUniforms(p, uniformSlots[3:])
	before := c.Count("Uniform1i")
	err := m.SetUniforms([]resource.UniformValue{resource.Float(1)}, uniforms)
	if !errors.Is(err, resource.ErrUniformKind) {
		t.Errorf("error = %v, want ErrUniformKind", err)
	}
	if c.Count("Uniform1i") != before || c.Count("Uniform1f") != 0 {
		t.Error("mismatched uniform was written")
	}
}

func TestSetUniformsSkipsInactive(t *testing.T) {
	m, c := newManager(t)
	p := buildProgram(t, m)
	uniforms, _ := m.ResolveUniforms(p, []resource.UniformSlot{{Name: "uTime", Kind: resource.KindFloat}})
	if err := m.SetUniforms([]resource.UniformValue{resource.Float(2)}, uniforms); err != nil {
		t.Fatal(err)
	}
	if c.Count("Uniform1f") != 0 {
		t.Error("inactive uniform was written")
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestCreateTexture(t *testing.T) {
	m, c := newManager(t)
	tex, err := m.CreateTexture(context.Background(), bytes.NewReader(pngBytes(t, 4, 4)))
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	if got := c.TextureLevels(tex); got != 3 {
		t.Errorf("levels = %d, want 3", got)
	}
	if got := c.TextureParam(tex, gl.TEXTURE_MIN_FILTER); got != int(gl.LINEAR) {
		t.Errorf("min filter = 0x%x", got)
	}
	if got := c.TextureParam(tex, gl.TEXTURE_WRAP_S); got != int(gl.REPEAT) {
		t.Errorf("wrap = 0x%x", got)
	}
	if got := c.TextureImage(tex, 0).RGBAAt(1, 1); got != (color.RGBA{200, 100, 50, 255}) {
		t.Errorf("texel = %v", got)
	}
}

func TestCreateTextureDecodeError(t *testing.T) {
	m, c := newManager(t)
	_, err := m.CreateTexture(context.Background(), strings.NewReader("not an image"))
	if err == nil {
		t.Fatal("expected decode error")
	}
	if c.Count("CreateTexture") != 0 {
		t.Error("texture created for undecodable input")
	}
}

func TestCreateTextureCanceled(t *testing.T) {
	m, _ := newManager(t)
	r, w := io.Pipe()
	t.Cleanup(func() { w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.CreateTexture(ctx, r); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestFrameBuffer(t *testing.T) {
	m, c := newManager(t)
	fb, err := m.CreateFrameBuffer(64, 32)
	if err != nil {
		t.Fatalf("CreateFrameBuffer() error = %v", err)
	}
	if fb.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("format = %v", fb.Format)
	}
	tex, depth := c.Attachments(fb.Framebuffer)
	if tex != fb.Texture || depth != fb.Depth {
		t.Errorf("attachments = %v, %v", tex, depth)
	}
	if w, h := c.TextureLevelSize(fb.Texture, 0); w != 64 || h != 32 {
		t.Errorf("color size = %dx%d", w, h)
	}
	if _, err := m.CreateFrameBuffer(0, 32); !errors.Is(err, resource.ErrResource) {
		t.Errorf("zero size error = %v", err)
	}
}

func TestFloatFrameBuffer(t *testing.T) {
	m, _ := newManager(t, recorder.WithExtensions())
	if _, err := m.CreateFloatFrameBuffer(m.QueryExtensions(), 8, 8); !errors.Is(err, resource.ErrUnsupported) {
		t.Errorf("error = %v, want ErrUnsupported", err)
	}

	m, c := newManager(t, recorder.WithExtensions(gl.ExtTextureHalfFloat))
	fb, err := m.CreateFloatFrameBuffer(m.QueryExtensions(), 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if fb.Format != gputypes.TextureFormatRGBA16Float {
		t.Errorf("format = %v, want RGBA16Float", fb.Format)
	}
	if got := c.TextureType(fb.Texture, 0); got != gl.HALF_FLOAT_OES {
		t.Errorf("texel type = 0x%x", uint32(got))
	}
	if got := c.TextureParam(fb.Texture, gl.TEXTURE_WRAP_T); got != int(gl.CLAMP_TO_EDGE) {
		t.Errorf("wrap = 0x%x", got)
	}

	m, _ = newManager(t, recorder.WithExtensions(gl.ExtTextureFloat, gl.ExtTextureHalfFloat))
	fb, err = m.CreateFloatFrameBuffer(m.QueryExtensions(), 8, 8)
	if err != nil || fb.Format != gputypes.TextureFormatRGBA32Float {
		t.Errorf("float32 target = %v, %v", fb.Format, err)
	}
}

func TestQueryExtensions(t *testing.T) {
	m, _ := newManager(t)
	ext := m.QueryExtensions()
	want := resource.Extensions{ElementIndexUint: true, TextureHalfFloat: true}
	if ext != want {
		t.Errorf("QueryExtensions() = %+v, want %+v", ext, want)
	}
	if !ext.FloatTextures() {
		t.Error("FloatTextures() = false with half floats")
	}
	m.Release()
	if got := m.QueryExtensions(); got != (resource.Extensions{}) {
		t.Errorf("after Release = %+v", got)
	}
}

func TestReleased(t *testing.T) {
	m, _ := newManager(t)
	m.Release()
	if m.Active() || m.GL() != nil {
		t.Fatal("manager still active after Release")
	}
	if _, err := m.CompileShader("", resource.StageVertex); !errors.Is(err, resource.ErrResource) {
		t.Errorf("CompileShader error = %v", err)
	}
	if _, err := m.CreateVertexBuffer(nil); !errors.Is(err, resource.ErrResource) {
		t.Errorf("CreateVertexBuffer error = %v", err)
	}
	if _, err := m.CreateFrameBuffer(1, 1); !errors.Is(err, resource.ErrResource) {
		t.Errorf("CreateFrameBuffer error = %v", err)
	}
	m.Release()
}

func TestLostContext(t *testing.T) {
	m, c := newManager(t)
	c.Lose()
	if _, err := m.CreateVertexBuffer([]float32{1}); !errors.Is(err, resource.ErrResource) {
		t.Errorf("error = %v, want ErrResource", err)
	}
}

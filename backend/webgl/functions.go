// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build js && wasm

package webgl

import (
	"syscall/js"

	"github.com/gogpu/outline/gl"
)

// functions forwards to a WebGLRenderingContext. WebGL returns objects
// rather than integer names, so they are kept in a table keyed by the handle
// value handed out.
type functions struct {
	ctx      js.Value
	next     uint32
	objects  map[uint32]js.Value
	uniforms map[gl.Uniform]js.Value
	nextLoc  gl.Uniform
	locs     map[uint32]map[string]gl.Uniform
}

var _ gl.Functions = (*functions)(nil)

func newFunctions(ctx js.Value) *functions {
	return &functions{
		ctx:      ctx,
		objects:  make(map[uint32]js.Value),
		uniforms: make(map[gl.Uniform]js.Value),
		locs:     make(map[uint32]map[string]gl.Uniform),
	}
}

func (f *functions) put(v js.Value) uint32 {
	if v.IsNull() || v.IsUndefined() {
		return 0
	}
	f.next++
	f.objects[f.next] = v
	return f.next
}

func (f *functions) obj(id uint32) js.Value {
	if v, ok := f.objects[id]; ok {
		return v
	}
	return js.Null()
}

func (f *functions) drop(id uint32) js.Value {
	v := f.obj(id)
	delete(f.objects, id)
	return v
}

func bytesJS(data []byte) js.Value {
	if data == nil {
		return js.Null()
	}
	u8 := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(u8, data)
	return u8
}

func (f *functions) Viewport(x, y, width, height int) { f.ctx.Call("viewport", x, y, width, height) }
func (f *functions) ClearColor(r, g, b, a float32)   { f.ctx.Call("clearColor", r, g, b, a) }
func (f *functions) Clear(mask gl.Enum)              { f.ctx.Call("clear", uint32(mask)) }
func (f *functions) Enable(capability gl.Enum)       { f.ctx.Call("enable", uint32(capability)) }
func (f *functions) Disable(capability gl.Enum)      { f.ctx.Call("disable", uint32(capability)) }
func (f *functions) CullFace(mode gl.Enum)           { f.ctx.Call("cullFace", uint32(mode)) }

func (f *functions) CreateShader(ty gl.Enum) gl.Shader {
	return gl.Shader{V: f.put(f.ctx.Call("createShader", uint32(ty)))}
}

func (f *functions) ShaderSource(s gl.Shader, src string) {
	f.ctx.Call("shaderSource", f.obj(s.V), src)
}

func (f *functions) CompileShader(s gl.Shader) { f.ctx.Call("compileShader", f.obj(s.V)) }

func (f *functions) GetShaderi(s gl.Shader, pname gl.Enum) int {
	return param(f.ctx.Call("getShaderParameter", f.obj(s.V), uint32(pname)))
}

func (f *functions) GetShaderInfoLog(s gl.Shader) string {
	return f.ctx.Call("getShaderInfoLog", f.obj(s.V)).String()
}

func (f *functions) DeleteShader(s gl.Shader) { f.ctx.Call("deleteShader", f.drop(s.V)) }

func (f *functions) CreateProgram() gl.Program {
	return gl.Program{V: f.put(f.ctx.Call("createProgram"))}
}

func (f *functions) AttachShader(p gl.Program, s gl.Shader) {
	f.ctx.Call("attachShader", f.obj(p.V), f.obj(s.V))
}

func (f *functions) LinkProgram(p gl.Program) { f.ctx.Call("linkProgram", f.obj(p.V)) }

func (f *functions) GetProgrami(p gl.Program, pname gl.Enum) int {
	return param(f.ctx.Call("getProgramParameter", f.obj(p.V), uint32(pname)))
}

func (f *functions) GetProgramInfoLog(p gl.Program) string {
	return f.ctx.Call("getProgramInfoLog", f.obj(p.V)).String()
}

func (f *functions) UseProgram(p gl.Program) { f.ctx.Call("useProgram", f.obj(p.V)) }

func (f *functions) DeleteProgram(p gl.Program) {
	for _, loc := range f.locs[p.V] {
		delete(f.uniforms, loc)
	}
	delete(f.locs, p.V)
	f.ctx.Call("deleteProgram", f.drop(p.V))
}

func (f *functions) GetAttribLocation(p gl.Program, name string) gl.Attrib {
	return gl.Attrib(f.ctx.Call("getAttribLocation", f.obj(p.V), name).Int())
}

// GetUniformLocation hands out small integers for WebGLUniformLocation
// objects. Repeated queries for a name return the same integer.
func (f *functions) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	if loc, ok := f.locs[p.V][name]; ok {
		return loc
	}
	v := f.ctx.Call("getUniformLocation", f.obj(p.V), name)
	if v.IsNull() || v.IsUndefined() {
		return -1
	}
	loc := f.nextLoc
	f.nextLoc++
	f.uniforms[loc] = v
	if f.locs[p.V] == nil {
		f.locs[p.V] = make(map[string]gl.Uniform)
	}
	f.locs[p.V][name] = loc
	return loc
}

func (f *functions) uniform(u gl.Uniform) js.Value {
	if v, ok := f.uniforms[u]; ok {
		return v
	}
	return js.Null()
}

func (f *functions) CreateBuffer() gl.Buffer { return gl.Buffer{V: f.put(f.ctx.Call("createBuffer"))} }

func (f *functions) BindBuffer(target gl.Enum, b gl.Buffer) {
	f.ctx.Call("bindBuffer", uint32(target), f.obj(b.V))
}

func (f *functions) BufferData(target gl.Enum, data []byte, usage gl.Enum) {
	if len(data) == 0 {
		f.ctx.Call("bufferData", uint32(target), 0, uint32(usage))
		return
	}
	f.ctx.Call("bufferData", uint32(target), bytesJS(data), uint32(usage))
}

func (f *functions) DeleteBuffer(b gl.Buffer) { f.ctx.Call("deleteBuffer", f.drop(b.V)) }

func (f *functions) EnableVertexAttribArray(a gl.Attrib) {
	f.ctx.Call("enableVertexAttribArray", int32(a))
}

func (f *functions) VertexAttribPointer(a gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	f.ctx.Call("vertexAttribPointer", int32(a), size, uint32(ty), normalized, stride, offset)
}

func (f *functions) Uniform1i(u gl.Uniform, v int) { f.ctx.Call("uniform1i", f.uniform(u), v) }

func (f *functions) Uniform1f(u gl.Uniform, v float32) { f.ctx.Call("uniform1f", f.uniform(u), v) }

func (f *functions) Uniform4f(u gl.Uniform, v0, v1, v2, v3 float32) {
	f.ctx.Call("uniform4f", f.uniform(u), v0, v1, v2, v3)
}

func (f *functions) UniformMatrix4fv(u gl.Uniform, transpose bool, m []float32) {
	arr := js.Global().Get("Float32Array").New(len(m))
	for i, v := range m {
		arr.SetIndex(i, v)
	}
	f.ctx.Call("uniformMatrix4fv", f.uniform(u), transpose, arr)
}

func (f *functions) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	f.ctx.Call("drawElements", uint32(mode), count, uint32(ty), offset)
}

func (f *functions) CreateTexture() gl.Texture {
	return gl.Texture{V: f.put(f.ctx.Call("createTexture"))}
}

func (f *functions) BindTexture(target gl.Enum, t gl.Texture) {
	f.ctx.Call("bindTexture", uint32(target), f.obj(t.V))
}

// TexImage2D views data as the typed array WebGL expects for ty.
func (f *functions) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	pixels := bytesJS(data)
	if data != nil {
		switch ty {
		case gl.FLOAT:
			pixels = js.Global().Get("Float32Array").New(pixels.Get("buffer"))
		case gl.HALF_FLOAT_OES:
			pixels = js.Global().Get("Uint16Array").New(pixels.Get("buffer"))
		}
	}
	f.ctx.Call("texImage2D", uint32(target), level, uint32(internalFormat), width, height, 0,
		uint32(format), uint32(ty), pixels)
}

func (f *functions) TexParameteri(target, pname gl.Enum, param int) {
	f.ctx.Call("texParameteri", uint32(target), uint32(pname), param)
}

func (f *functions) GenerateMipmap(target gl.Enum) { f.ctx.Call("generateMipmap", uint32(target)) }

func (f *functions) DeleteTexture(t gl.Texture) { f.ctx.Call("deleteTexture", f.drop(t.V)) }

func (f *functions) CreateFramebuffer() gl.Framebuffer {
	return gl.Framebuffer{V: f.put(f.ctx.Call("createFramebuffer"))}
}

func (f *functions) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	f.ctx.Call("bindFramebuffer", uint32(target), f.obj(fb.V))
}

func (f *functions) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	f.ctx.Call("framebufferTexture2D", uint32(target), uint32(attachment), uint32(texTarget), f.obj(t.V), level)
}

func (f *functions) FramebufferRenderbuffer(target, attachment, rbTarget gl.Enum, rb gl.Renderbuffer) {
	f.ctx.Call("framebufferRenderbuffer", uint32(target), uint32(attachment), uint32(rbTarget), f.obj(rb.V))
}

func (f *functions) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	return gl.Enum(f.ctx.Call("checkFramebufferStatus", uint32(target)).Int())
}

func (f *functions) DeleteFramebuffer(fb gl.Framebuffer) {
	f.ctx.Call("deleteFramebuffer", f.drop(fb.V))
}

func (f *functions) CreateRenderbuffer() gl.Renderbuffer {
	return gl.Renderbuffer{V: f.put(f.ctx.Call("createRenderbuffer"))}
}

func (f *functions) BindRenderbuffer(target gl.Enum, rb gl.Renderbuffer) {
	f.ctx.Call("bindRenderbuffer", uint32(target), f.obj(rb.V))
}

func (f *functions) RenderbufferStorage(target, internalFormat gl.Enum, width, height int) {
	f.ctx.Call("renderbufferStorage", uint32(target), uint32(internalFormat), width, height)
}

func (f *functions) DeleteRenderbuffer(rb gl.Renderbuffer) {
	f.ctx.Call("deleteRenderbuffer", f.drop(rb.V))
}

// GetExtension enables the named extension. WebGL extensions only take
// effect once requested, so probing is also activation.
func (f *functions) GetExtension(name string) bool {
	return f.ctx.Call("getExtension", name).Truthy()
}

// param converts a boolean or numeric parameter to an int.
func param(v js.Value) int {
	switch v.Type() {
	case js.TypeBoolean:
		if v.Bool() {
			return 1
		}
		return 0
	case js.TypeNumber:
		return v.Int()
	}
	return 0
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !js

package desktop

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	ogl "github.com/gogpu/outline/gl"
)

// functions forwards to the current OpenGL 4.1 core context. Core profiles
// require a bound vertex array object, so one is created and left bound.
type functions struct {
	vao uint32
}

var _ ogl.Functions = (*functions)(nil)

func newFunctions() *functions {
	f := &functions{}
	gl.GenVertexArrays(1, &f.vao)
	gl.BindVertexArray(f.vao)
	return f
}

func (*functions) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (*functions) ClearColor(r, g, b, a float32)   { gl.ClearColor(r, g, b, a) }
func (*functions) Clear(mask ogl.Enum)            { gl.Clear(uint32(mask)) }
func (*functions) Enable(capability ogl.Enum)     { gl.Enable(uint32(capability)) }
func (*functions) Disable(capability ogl.Enum)    { gl.Disable(uint32(capability)) }
func (*functions) CullFace(mode ogl.Enum)         { gl.CullFace(uint32(mode)) }
func (*functions) CompileShader(s ogl.Shader)     { gl.CompileShader(s.V) }
func (*functions) DeleteShader(s ogl.Shader)      { gl.DeleteShader(s.V) }
func (*functions) LinkProgram(p ogl.Program)      { gl.LinkProgram(p.V) }
func (*functions) UseProgram(p ogl.Program)       { gl.UseProgram(p.V) }
func (*functions) DeleteProgram(p ogl.Program)    { gl.DeleteProgram(p.V) }
func (*functions) GenerateMipmap(target ogl.Enum) { gl.GenerateMipmap(uint32(target)) }

func (*functions) CreateShader(ty ogl.Enum) ogl.Shader {
	return ogl.Shader{V: gl.CreateShader(uint32(ty))}
}

func (*functions) ShaderSource(s ogl.Shader, src string) {
	csrc, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(s.V, 1, csrc, nil)
}

func (*functions) GetShaderi(s ogl.Shader, pname ogl.Enum) int {
	var v int32
	gl.GetShaderiv(s.V, uint32(pname), &v)
	return int(v)
}

func (*functions) GetShaderInfoLog(s ogl.Shader) string {
	var n int32
	gl.GetShaderiv(s.V, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n+1)
	gl.GetShaderInfoLog(s.V, n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

func (*functions) CreateProgram() ogl.Program { return ogl.Program{V: gl.CreateProgram()} }

func (*functions) AttachShader(p ogl.Program, s ogl.Shader) { gl.AttachShader(p.V, s.V) }

func (*functions) GetProgrami(p ogl.Program, pname ogl.Enum) int {
	var v int32
	gl.GetProgramiv(p.V, uint32(pname), &v)
	return int(v)
}

func (*functions) GetProgramInfoLog(p ogl.Program) string {
	var n int32
	gl.GetProgramiv(p.V, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n+1)
	gl.GetProgramInfoLog(p.V, n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

func (*functions) GetAttribLocation(p ogl.Program, name string) ogl.Attrib {
	return ogl.Attrib(gl.GetAttribLocation(p.V, gl.Str(name+"\x00")))
}

func (*functions) GetUniformLocation(p ogl.Program, name string) ogl.Uniform {
	return ogl.Uniform(gl.GetUniformLocation(p.V, gl.Str(name+"\x00")))
}

func (*functions) CreateBuffer() ogl.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return ogl.Buffer{V: b}
}

func (*functions) BindBuffer(target ogl.Enum, b ogl.Buffer) { gl.BindBuffer(uint32(target), b.V) }

func (*functions) BufferData(target ogl.Enum, data []byte, usage ogl.Enum) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), 0, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), len(data), gl.Ptr(data), uint32(usage))
}

func (*functions) DeleteBuffer(b ogl.Buffer) { gl.DeleteBuffers(1, &b.V) }

func (*functions) EnableVertexAttribArray(a ogl.Attrib) { gl.EnableVertexAttribArray(uint32(a)) }

func (*functions) VertexAttribPointer(a ogl.Attrib, size int, ty ogl.Enum, normalized bool, stride, offset int) {
	gl.VertexAttribPointerWithOffset(uint32(a), int32(size), uint32(ty), normalized, int32(stride), uintptr(offset))
}

func (*functions) Uniform1i(u ogl.Uniform, v int)     { gl.Uniform1i(int32(u), int32(v)) }
func (*functions) Uniform1f(u ogl.Uniform, v float32) { gl.Uniform1f(int32(u), v) }

func (*functions) Uniform4f(u ogl.Uniform, v0, v1, v2, v3 float32) {
	gl.Uniform4f(int32(u), v0, v1, v2, v3)
}

func (*functions) UniformMatrix4fv(u ogl.Uniform, transpose bool, m []float32) {
	if len(m) < 16 {
		return
	}
	gl.UniformMatrix4fv(int32(u), int32(len(m)/16), transpose, &m[0])
}

func (*functions) DrawElements(mode ogl.Enum, count int, ty ogl.Enum, offset int) {
	gl.DrawElementsWithOffset(uint32(mode), int32(count), uint32(ty), uintptr(offset))
}

func (*functions) CreateTexture() ogl.Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return ogl.Texture{V: t}
}

func (*functions) BindTexture(target ogl.Enum, t ogl.Texture) { gl.BindTexture(uint32(target), t.V) }

// TexImage2D maps the unsized float formats of OpenGL ES onto sized core
// formats.
func (*functions) TexImage2D(target ogl.Enum, level int, internalFormat ogl.Enum, width, height int, format, ty ogl.Enum, data []byte) {
	internal := int32(internalFormat)
	switch ty {
	case ogl.FLOAT:
		internal = gl.RGBA32F
	case ogl.HALF_FLOAT_OES:
		internal, ty = gl.RGBA16F, gl.HALF_FLOAT
	}
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.TexImage2D(uint32(target), int32(level), internal, int32(width), int32(height), 0, uint32(format), uint32(ty), ptr)
}

func (*functions) TexParameteri(target, pname ogl.Enum, param int) {
	gl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (*functions) DeleteTexture(t ogl.Texture) { gl.DeleteTextures(1, &t.V) }

func (*functions) CreateFramebuffer() ogl.Framebuffer {
	var fb uint32
	gl.GenFramebuffers(1, &fb)
	return ogl.Framebuffer{V: fb}
}

func (*functions) BindFramebuffer(target ogl.Enum, fb ogl.Framebuffer) {
	gl.BindFramebuffer(uint32(target), fb.V)
}

func (*functions) FramebufferTexture2D(target, attachment, texTarget ogl.Enum, t ogl.Texture, level int) {
	gl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), t.V, int32(level))
}

func (*functions) FramebufferRenderbuffer(target, attachment, rbTarget ogl.Enum, rb ogl.Renderbuffer) {
	gl.FramebufferRenderbuffer(uint32(target), uint32(attachment), uint32(rbTarget), rb.V)
}

func (*functions) CheckFramebufferStatus(target ogl.Enum) ogl.Enum {
	return ogl.Enum(gl.CheckFramebufferStatus(uint32(target)))
}

func (*functions) DeleteFramebuffer(fb ogl.Framebuffer) { gl.DeleteFramebuffers(1, &fb.V) }

func (*functions) CreateRenderbuffer() ogl.Renderbuffer {
	var rb uint32
	gl.GenRenderbuffers(1, &rb)
	return ogl.Renderbuffer{V: rb}
}

func (*functions) BindRenderbuffer(target ogl.Enum, rb ogl.Renderbuffer) {
	gl.BindRenderbuffer(uint32(target), rb.V)
}

func (*functions) RenderbufferStorage(target, internalFormat ogl.Enum, width, height int) {
	gl.RenderbufferStorage(uint32(target), uint32(internalFormat), int32(width), int32(height))
}

func (*functions) DeleteRenderbuffer(rb ogl.Renderbuffer) { gl.DeleteRenderbuffers(1, &rb.V) }

// GetExtension reports the OES capabilities as present, since OpenGL 4.1
// core includes them, and otherwise searches the extension list.
func (*functions) GetExtension(name string) bool {
	switch name {
	case ogl.ExtElementIndexUint, ogl.ExtTextureFloat, ogl.ExtTextureHalfFloat:
		return true
	}
	var n int32
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &n)
	for i := range uint32(n) {
		ext := gl.GoStr(gl.GetStringi(gl.EXTENSIONS, i))
		if ext == name || ext == "GL_"+name {
			return true
		}
	}
	return false
}

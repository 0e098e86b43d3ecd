// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recorder

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gogpu/naga"

	"github.com/gogpu/outline/gl"
)

// compile validates a WGSL stage source. The diagnostic is naga's error text.
func compile(ty gl.Enum, src string) (ok bool, log string) {
	if strings.TrimSpace(src) == "" {
		return false, "error: empty shader source"
	}
	if _, err := naga.Compile(src); err != nil {
		return false, err.Error()
	}
	entry := "@vertex"
	if ty == gl.FRAGMENT_SHADER {
		entry = "@fragment"
	}
	if !strings.Contains(src, entry) {
		return false, fmt.Sprintf("error: no %s entry point", entry)
	}
	return true, ""
}

// mentions reports whether name appears as an identifier in src.
func mentions(src, name string) bool {
	if name == "" {
		return false
	}
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(src)
}

func (c *Context) CreateShader(ty gl.Enum) gl.Shader {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("CreateShader", ty)
	if c.lost {
		return gl.Shader{}
	}
	if ty != gl.VERTEX_SHADER && ty != gl.FRAGMENT_SHADER {
		c.fail("CreateShader: invalid type 0x%x", uint32(ty))
		return gl.Shader{}
	}
	id := c.newID()
	c.shaders[id] = &shaderObj{ty: ty}
	return gl.Shader{V: id}
}

func (c *Context) ShaderSource(s gl.Shader, src string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("ShaderSource", s.V, len(src))
	if o := c.shaders[s.V]; o != nil {
		o.src = src
	} else {
		c.fail("ShaderSource: unknown shader %d", s.V)
	}
}

func (c *Context) CompileShader(s gl.Shader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("CompileShader", s.V)
	o := c.shaders[s.V]
	if o == nil {
		c.fail("CompileShader: unknown shader %d", s.V)
		return
	}
	o.compiled, o.log = compile(o.ty, o.src)
}

func (c *Context) GetShaderi(s gl.Shader, pname gl.Enum) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("GetShaderi", s.V, pname)
	o := c.shaders[s.V]
	if o == nil || pname != gl.COMPILE_STATUS {
		return 0
	}
	if o.compiled {
		return 1
	}
	return 0
}

func (c *Context) GetShaderInfoLog(s gl.Shader) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("GetShaderInfoLog", s.V)
	if o := c.shaders[s.V]; o != nil {
		return o.log
	}
	return ""
}

func (c *Context) DeleteShader(s gl.Shader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("DeleteShader", s.V)
	delete(c.shaders, s.V)
}

func (c *Context) CreateProgram() gl.Program {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("CreateProgram")
	if c.lost {
		return gl.Program{}
	}
	id := c.newID()
	c.programs[id] = &programObj{
		attribs:      make(map[string]gl.Attrib),
		uniforms:     make(map[string]gl.Uniform),
		uniformNames: make(map[gl.Uniform]string),
		values:       make(map[gl.Uniform]UniformState),
	}
	return gl.Program{V: id}
}

func (c *Context) AttachShader(p gl.Program, s gl.Shader) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("AttachShader", p.V, s.V)
	po, so := c.programs[p.V], c.shaders[s.V]
	if po == nil || so == nil {
		c.fail("AttachShader: unknown program %d or shader %d", p.V, s.V)
		return
	}
	po.shaders = append(po.shaders, s.V)
}

func (c *Context) LinkProgram(p gl.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("LinkProgram", p.V)
	po := c.programs[p.V]
	if po == nil {
		c.fail("LinkProgram: unknown program %d", p.V)
		return
	}
	po.linked, po.log = false, ""
	var vs, fs *shaderObj
	for _, id := range po.shaders {
		so := c.shaders[id]
		switch {
		case so == nil:
			po.log = fmt.Sprintf("error: attached shader %d was deleted before link", id)
			return
		case !so.compiled:
			po.log = fmt.Sprintf("error: attached shader %d is not compiled", id)
			return
		case so.ty == gl.VERTEX_SHADER && vs == nil:
			vs = so
		case so.ty == gl.FRAGMENT_SHADER && fs == nil:
			fs = so
		default:
			po.log = "error: more than one shader attached for a stage"
			return
		}
	}
	if vs == nil || fs == nil {
		po.log = "error: program needs one vertex and one fragment shader"
		return
	}
	po.linked = true
	po.vertexSrc, po.fragmentSrc = vs.src, fs.src
}

func (c *Context) GetProgrami(p gl.Program, pname gl.Enum) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("GetProgrami", p.V, pname)
	po := c.programs[p.V]
	if po == nil || pname != gl.LINK_STATUS {
		return 0
	}
	if po.linked {
		return 1
	}
	return 0
}

func (c *Context) GetProgramInfoLog(p gl.Program) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("GetProgramInfoLog", p.V)
	if po := c.programs[p.V]; po != nil {
		return po.log
	}
	return ""
}

func (c *Context) UseProgram(p gl.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("UseProgram", p.V)
	if p.Valid() {
		po := c.programs[p.V]
		if po == nil || !po.linked {
			c.fail("UseProgram: program %d is not linked", p.V)
			return
		}
	}
	c.program = p.V
}

func (c *Context) DeleteProgram(p gl.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("DeleteProgram", p.V)
	delete(c.programs, p.V)
	if c.program == p.V {
		c.program = 0
	}
}

// GetAttribLocation assigns locations in first-query order to names the
// vertex stage mentions. Repeated queries return the same location.
func (c *Context) GetAttribLocation(p gl.Program, name string) gl.Attrib {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("GetAttribLocation", p.V, name)
	po := c.programs[p.V]
	if po == nil || !po.linked {
		c.fail("GetAttribLocation: program %d is not linked", p.V)
		return -1
	}
	if loc, ok := po.attribs[name]; ok {
		return loc
	}
	if !mentions(po.vertexSrc, name) {
		return -1
	}
	loc := gl.Attrib(len(po.attribs))
	po.attribs[name] = loc
	return loc
}

// GetUniformLocation assigns locations in first-query order to names either
// stage mentions.
func (c *Context) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("GetUniformLocation", p.V, name)
	po := c.programs[p.V]
	if po == nil || !po.linked {
		c.fail("GetUniformLocation: program %d is not linked", p.V)
		return -1
	}
	if loc, ok := po.uniforms[name]; ok {
		return loc
	}
	if !mentions(po.vertexSrc, name) && !mentions(po.fragmentSrc, name) {
		return -1
	}
	loc := gl.Uniform(len(po.uniforms))
	po.uniforms[name] = loc
	po.uniformNames[loc] = name
	return loc
}

// setUniform stores v for loc on the current program. c.mu must be held.
func (c *Context) setUniform(op string, loc gl.Uniform, v UniformState) {
	if !loc.Valid() {
		return
	}
	po := c.programs[c.program]
	if po == nil {
		c.fail("%s: no program in use", op)
		return
	}
	if _, ok := po.uniformNames[loc]; !ok {
		c.fail("%s: location %d not in program %d", op, loc, c.program)
		return
	}
	po.values[loc] = v
}

func (c *Context) Uniform1i(u gl.Uniform, v int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("Uniform1i", u, v)
	c.setUniform("Uniform1i", u, UniformState{Ints: []int{v}})
}

func (c *Context) Uniform1f(u gl.Uniform, v float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("Uniform1f", u, v)
	c.setUniform("Uniform1f", u, UniformState{Floats: []float32{v}})
}

func (c *Context) Uniform4f(u gl.Uniform, v0, v1, v2, v3 float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("Uniform4f", u, v0, v1, v2, v3)
	c.setUniform("Uniform4f", u, UniformState{Floats: []float32{v0, v1, v2, v3}})
}

func (c *Context) UniformMatrix4fv(u gl.Uniform, transpose bool, m []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("UniformMatrix4fv", u, transpose, len(m))
	if len(m) != 16 {
		c.fail("UniformMatrix4fv: %d values, want 16", len(m))
		return
	}
	if transpose {
		c.fail("UniformMatrix4fv: transpose must be false")
		return
	}
	c.setUniform("UniformMatrix4fv", u, UniformState{Floats: append([]float32(nil), m...)})
}

// UniformValue returns the last value written to the named uniform of p.
func (c *Context) UniformValue(p gl.Program, name string) (UniformState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	po := c.programs[p.V]
	if po == nil {
		return UniformState{}, false
	}
	loc, ok := po.uniforms[name]
	if !ok {
		return UniformState{}, false
	}
	v, ok := po.values[loc]
	return v, ok
}

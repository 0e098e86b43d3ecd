// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recorder

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/outline/gl"
)

// Call is one recorded entry point invocation.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// AttribState is the recorded state of one vertex attribute slot.
type AttribState struct {
	Enabled bool
	Buffer  gl.Buffer
	Size    int
	Type    gl.Enum
	Stride  int
	Offset  int
}

// UniformState is the last value written to a uniform.
type UniformState struct {
	Ints   []int
	Floats []float32
}

// Int returns the first integer component, or 0.
func (u UniformState) Int() int {
	if len(u.Ints) == 0 {
		return 0
	}
	return u.Ints[0]
}

// Draw is a snapshot of the pipeline state at a DrawElements call.
type Draw struct {
	Mode          gl.Enum
	Count         int
	Type          gl.Enum
	Offset        int
	Program       gl.Program
	ElementBuffer gl.Buffer
	CullEnabled   bool
	CullFace      gl.Enum
	DepthTest     bool
	Viewport      [4]int
	Attribs       map[gl.Attrib]AttribState
	Uniforms      map[string]UniformState
}

type shaderObj struct {
	ty       gl.Enum
	src      string
	compiled bool
	log      string
}

type programObj struct {
	shaders      []uint32
	linked       bool
	log          string
	vertexSrc    string
	fragmentSrc  string
	attribs      map[string]gl.Attrib
	uniforms     map[string]gl.Uniform
	uniformNames map[gl.Uniform]string
	values       map[gl.Uniform]UniformState
}

type bufferObj struct {
	data []byte
}

type framebufferObj struct {
	color uint32
	depth uint32
}

type renderbufferObj struct {
	format        gl.Enum
	width, height int
}

// Context is a recording gl.Functions implementation. It is safe to inspect
// from another goroutine while the owner issues calls.
type Context struct {
	mu   sync.Mutex
	lost bool
	ext  map[string]bool

	nextID uint32
	calls  []Call
	errs   []string
	draws  []Draw

	shaders       map[uint32]*shaderObj
	programs      map[uint32]*programObj
	buffers       map[uint32]*bufferObj
	textures      map[uint32]*textureObj
	framebuffers  map[uint32]*framebufferObj
	renderbuffers map[uint32]*renderbufferObj

	enabled       map[gl.Enum]bool
	cullFace      gl.Enum
	viewport      [4]int
	clearColor    [4]float32
	program       uint32
	arrayBuffer   uint32
	elementBuffer uint32
	texture       uint32
	framebuffer   uint32
	renderbuffer  uint32
	attribs       map[gl.Attrib]AttribState
}

var _ gl.Functions = (*Context)(nil)

func newContext(ext map[string]bool) *Context {
	return &Context{
		ext:           ext,
		shaders:       make(map[uint32]*shaderObj),
		programs:      make(map[uint32]*programObj),
		buffers:       make(map[uint32]*bufferObj),
		textures:      make(map[uint32]*textureObj),
		framebuffers:  make(map[uint32]*framebufferObj),
		renderbuffers: make(map[uint32]*renderbufferObj),
		enabled:       make(map[gl.Enum]bool),
		cullFace:      gl.BACK,
		attribs:       make(map[gl.Attrib]AttribState),
	}
}

// record appends a call. c.mu must be held.
func (c *Context) record(name string, args ...any) {
	c.calls = append(c.calls, Call{Name: name, Args: args})
}

// fail records a driver error. c.mu must be held.
func (c *Context) fail(format string, args ...any) {
	c.errs = append(c.errs, fmt.Sprintf(format, args...))
}

func (c *Context) newID() uint32 {
	c.nextID++
	return c.nextID
}

func (c *Context) lose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lost = true
}

// Lose simulates context loss: every later creation call returns the zero
// handle.
func (c *Context) Lose() { c.lose() }

// Lost reports whether the context was lost.
func (c *Context) Lost() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lost
}

func (c *Context) Viewport(x, y, width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("Viewport", x, y, width, height)
	c.viewport = [4]int{x, y, width, height}
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("ClearColor", r, g, b, a)
	c.clearColor = [4]float32{r, g, b, a}
}

func (c *Context) Clear(mask gl.Enum) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("Clear", mask)
}

func (c *Context) Enable(capability gl.Enum) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("Enable", capability)
	c.enabled[capability] = true
}

func (c *Context) Disable(capability gl.Enum) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("Disable", capability)
	delete(c.enabled, capability)
}

func (c *Context) CullFace(mode gl.Enum) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("CullFace", mode)
	switch mode {
	case gl.FRONT, gl.BACK, gl.FRONT_AND_BACK:
		c.cullFace = mode
	default:
		c.fail("CullFace: invalid mode 0x%x", uint32(mode))
	}
}

func (c *Context) CreateBuffer() gl.Buffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("CreateBuffer")
	if c.lost {
		return gl.Buffer{}
	}
	id := c.newID()
	c.buffers[id] = &bufferObj{}
	return gl.Buffer{V: id}
}

func (c *Context) BindBuffer(target gl.Enum, b gl.Buffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("BindBuffer", target, b.V)
	if b.Valid() && c.buffers[b.V] == nil {
		c.fail("BindBuffer: unknown buffer %d", b.V)
		return
	}
	switch target {
	case gl.ARRAY_BUFFER:
		c.arrayBuffer = b.V
	case gl.ELEMENT_ARRAY_BUFFER:
		c.elementBuffer = b.V
	default:
		c.fail("BindBuffer: invalid target 0x%x", uint32(target))
	}
}

func (c *Context) BufferData(target gl.Enum, data []byte, usage gl.Enum) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("BufferData", target, len(data), usage)
	var id uint32
	switch target {
	case gl.ARRAY_BUFFER:
		id = c.arrayBuffer
	case gl.ELEMENT_ARRAY_BUFFER:
		id = c.elementBuffer
	}
	b := c.buffers[id]
	if b == nil {
		c.fail("BufferData: no buffer bound to 0x%x", uint32(target))
		return
	}
	b.data = append([]byte(nil), data...)
}

func (c *Context) DeleteBuffer(b gl.Buffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("DeleteBuffer", b.V)
	delete(c.buffers, b.V)
	if c.arrayBuffer == b.V {
		c.arrayBuffer = 0
	}
	if c.elementBuffer == b.V {
		c.elementBuffer = 0
	}
}

func (c *Context) EnableVertexAttribArray(a gl.Attrib) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("EnableVertexAttribArray", a)
	if !a.Valid() {
		c.fail("EnableVertexAttribArray: invalid location %d", a)
		return
	}
	s := c.attribs[a]
	s.Enabled = true
	c.attribs[a] = s
}

func (c *Context) VertexAttribPointer(a gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("VertexAttribPointer", a, size, ty, normalized, stride, offset)
	if !a.Valid() || size < 1 || size > 4 {
		c.fail("VertexAttribPointer: invalid location %d or size %d", a, size)
		return
	}
	if c.arrayBuffer == 0 {
		c.fail("VertexAttribPointer: no ARRAY_BUFFER bound")
		return
	}
	s := c.attribs[a]
	s.Buffer = gl.Buffer{V: c.arrayBuffer}
	s.Size, s.Type, s.Stride, s.Offset = size, ty, stride, offset
	c.attribs[a] = s
}

func (c *Context) DrawElements(mode gl.Enum, count int, ty gl.Enum, offset int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("DrawElements", mode, count, ty, offset)

	p := c.programs[c.program]
	if p == nil || !p.linked {
		c.fail("DrawElements: no linked program in use")
		return
	}
	ibo := c.buffers[c.elementBuffer]
	if ibo == nil {
		c.fail("DrawElements: no ELEMENT_ARRAY_BUFFER bound")
		return
	}
	width := 2
	if ty == gl.UNSIGNED_INT {
		width = 4
	} else if ty == gl.UNSIGNED_BYTE {
		width = 1
	}
	if offset+count*width > len(ibo.data) {
		c.fail("DrawElements: %d indices at offset %d exceed buffer of %d bytes", count, offset, len(ibo.data))
		return
	}

	d := Draw{
		Mode:          mode,
		Count:         count,
		Type:          ty,
		Offset:        offset,
		Program:       gl.Program{V: c.program},
		ElementBuffer: gl.Buffer{V: c.elementBuffer},
		CullEnabled:   c.enabled[gl.CULL_FACE],
		CullFace:      c.cullFace,
		DepthTest:     c.enabled[gl.DEPTH_TEST],
		Viewport:      c.viewport,
		Attribs:       make(map[gl.Attrib]AttribState, len(c.attribs)),
		Uniforms:      make(map[string]UniformState, len(p.values)),
	}
	for a, s := range c.attribs {
		d.Attribs[a] = s
	}
	for loc, v := range p.values {
		d.Uniforms[p.uniformNames[loc]] = v
	}
	c.draws = append(c.draws, d)
}

func (c *Context) GetExtension(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("GetExtension", name)
	return c.ext[name]
}

// Calls returns a copy of the call log.
func (c *Context) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Call(nil), c.calls...)
}

// CallNames returns the entry point names of the call log in order.
func (c *Context) CallNames() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, len(c.calls))
	for i, call := range c.calls {
		names[i] = call.Name
	}
	return names
}

// Count returns how many times name was called.
func (c *Context) Count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.calls {
		if call.Name == name {
			n++
		}
	}
	return n
}

// Draws returns the recorded draw snapshots.
func (c *Context) Draws() []Draw {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Draw(nil), c.draws...)
}

// Errors returns the driver errors raised so far.
func (c *Context) Errors() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.errs...)
}

// Reset clears the call log, draws and errors. Objects and state survive.
func (c *Context) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls, c.draws, c.errs = nil, nil, nil
}

// Enabled reports whether capability is enabled.
func (c *Context) Enabled(capability gl.Enum) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled[capability]
}

// CullFaceMode returns the current cull face.
func (c *Context) CullFaceMode() gl.Enum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cullFace
}

// ViewportRect returns the last viewport.
func (c *Context) ViewportRect() [4]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

// ClearColorValue returns the current clear color.
func (c *Context) ClearColorValue() [4]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clearColor
}

// CurrentProgram returns the program in use.
func (c *Context) CurrentProgram() gl.Program {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gl.Program{V: c.program}
}

// BufferContents returns a copy of b's data store.
func (c *Context) BufferContents(b gl.Buffer) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if o := c.buffers[b.V]; o != nil {
		return append([]byte(nil), o.data...)
	}
	return nil
}

// Live returns the number of objects that have not been deleted.
func (c *Context) Live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.shaders) + len(c.programs) + len(c.buffers) +
		len(c.textures) + len(c.framebuffers) + len(c.renderbuffers)
}

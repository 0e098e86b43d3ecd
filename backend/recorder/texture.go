// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package recorder

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/outline/gl"
)

type level struct {
	width, height int
	internal      gl.Enum
	format        gl.Enum
	ty            gl.Enum
	img           *image.RGBA // RGBA8 levels only
}

type textureObj struct {
	levels []level
	params map[gl.Enum]int
}

func (c *Context) CreateTexture() gl.Texture {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("CreateTexture")
	if c.lost {
		return gl.Texture{}
	}
	id := c.newID()
	c.textures[id] = &textureObj{params: make(map[gl.Enum]int)}
	return gl.Texture{V: id}
}

func (c *Context) BindTexture(target gl.Enum, t gl.Texture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("BindTexture", target, t.V)
	if target != gl.TEXTURE_2D {
		c.fail("BindTexture: invalid target 0x%x", uint32(target))
		return
	}
	if t.Valid() && c.textures[t.V] == nil {
		c.fail("BindTexture: unknown texture %d", t.V)
		return
	}
	c.texture = t.V
}

// bound returns the texture bound to TEXTURE_2D. c.mu must be held.
func (c *Context) bound(op string) *textureObj {
	t := c.textures[c.texture]
	if t == nil {
		c.fail("%s: no texture bound", op)
	}
	return t
}

func (c *Context) TexImage2D(target gl.Enum, lvl int, internalFormat gl.Enum, width, height int, format, ty gl.Enum, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("TexImage2D", target, lvl, internalFormat, width, height, format, ty, len(data))
	t := c.bound("TexImage2D")
	if t == nil {
		return
	}
	if lvl < 0 || width <= 0 || height <= 0 {
		c.fail("TexImage2D: invalid level %d or size %dx%d", lvl, width, height)
		return
	}
	l := level{width: width, height: height, internal: internalFormat, format: format, ty: ty}
	if format == gl.RGBA && ty == gl.UNSIGNED_BYTE {
		l.img = image.NewRGBA(image.Rect(0, 0, width, height))
		if data != nil {
			if len(data) < len(l.img.Pix) {
				c.fail("TexImage2D: %d bytes for %dx%d RGBA", len(data), width, height)
				return
			}
			copy(l.img.Pix, data)
		}
	}
	if lvl == 0 {
		t.levels = t.levels[:0]
	}
	for len(t.levels) <= lvl {
		t.levels = append(t.levels, level{})
	}
	t.levels[lvl] = l
}

func (c *Context) TexParameteri(target, pname gl.Enum, param int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("TexParameteri", target, pname, param)
	if t := c.bound("TexParameteri"); t != nil {
		t.params[pname] = param
	}
}

// GenerateMipmap builds the full chain down to 1x1 from level 0 with a
// bilinear filter.
func (c *Context) GenerateMipmap(target gl.Enum) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("GenerateMipmap", target)
	t := c.bound("GenerateMipmap")
	if t == nil {
		return
	}
	if len(t.levels) == 0 || t.levels[0].width == 0 {
		c.fail("GenerateMipmap: level 0 is undefined")
		return
	}
	base := t.levels[0]
	t.levels = t.levels[:1]
	prev := base
	for prev.width > 1 || prev.height > 1 {
		next := level{
			width:    max(prev.width/2, 1),
			height:   max(prev.height/2, 1),
			internal: base.internal,
			format:   base.format,
			ty:       base.ty,
		}
		if prev.img != nil {
			next.img = image.NewRGBA(image.Rect(0, 0, next.width, next.height))
			draw.BiLinear.Scale(next.img, next.img.Bounds(), prev.img, prev.img.Bounds(), draw.Src, nil)
		}
		t.levels = append(t.levels, next)
		prev = next
	}
}

func (c *Context) DeleteTexture(t gl.Texture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("DeleteTexture", t.V)
	delete(c.textures, t.V)
	if c.texture == t.V {
		c.texture = 0
	}
}

func (c *Context) CreateFramebuffer() gl.Framebuffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("CreateFramebuffer")
	if c.lost {
		return gl.Framebuffer{}
	}
	id := c.newID()
	c.framebuffers[id] = &framebufferObj{}
	return gl.Framebuffer{V: id}
}

func (c *Context) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("BindFramebuffer", target, fb.V)
	if fb.Valid() && c.framebuffers[fb.V] == nil {
		c.fail("BindFramebuffer: unknown framebuffer %d", fb.V)
		return
	}
	c.framebuffer = fb.V
}

func (c *Context) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, lvl int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("FramebufferTexture2D", target, attachment, texTarget, t.V, lvl)
	fb := c.framebuffers[c.framebuffer]
	if fb == nil || attachment != gl.COLOR_ATTACHMENT0 {
		c.fail("FramebufferTexture2D: no framebuffer bound or bad attachment")
		return
	}
	fb.color = t.V
}

func (c *Context) FramebufferRenderbuffer(target, attachment, rbTarget gl.Enum, rb gl.Renderbuffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("FramebufferRenderbuffer", target, attachment, rbTarget, rb.V)
	fb := c.framebuffers[c.framebuffer]
	if fb == nil || attachment != gl.DEPTH_ATTACHMENT {
		c.fail("FramebufferRenderbuffer: no framebuffer bound or bad attachment")
		return
	}
	fb.depth = rb.V
}

// CheckFramebufferStatus reports a bound framebuffer complete when its color
// attachment has a defined level 0.
func (c *Context) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("CheckFramebufferStatus", target)
	if c.framebuffer == 0 {
		return gl.FRAMEBUFFER_COMPLETE
	}
	fb := c.framebuffers[c.framebuffer]
	t := c.textures[fb.color]
	if t == nil || len(t.levels) == 0 || t.levels[0].width == 0 {
		return gl.FRAMEBUFFER_INCOMPLETE
	}
	if fb.depth != 0 {
		rb := c.renderbuffers[fb.depth]
		if rb == nil || rb.width != t.levels[0].width || rb.height != t.levels[0].height {
			return gl.FRAMEBUFFER_INCOMPLETE
		}
	}
	return gl.FRAMEBUFFER_COMPLETE
}

func (c *Context) DeleteFramebuffer(fb gl.Framebuffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("DeleteFramebuffer", fb.V)
	delete(c.framebuffers, fb.V)
	if c.framebuffer == fb.V {
		c.framebuffer = 0
	}
}

func (c *Context) CreateRenderbuffer() gl.Renderbuffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("CreateRenderbuffer")
	if c.lost {
		return gl.Renderbuffer{}
	}
	id := c.newID()
	c.renderbuffers[id] = &renderbufferObj{}
	return gl.Renderbuffer{V: id}
}

func (c *Context) BindRenderbuffer(target gl.Enum, rb gl.Renderbuffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("BindRenderbuffer", target, rb.V)
	if rb.Valid() && c.renderbuffers[rb.V] == nil {
		c.fail("BindRenderbuffer: unknown renderbuffer %d", rb.V)
		return
	}
	c.renderbuffer = rb.V
}

func (c *Context) RenderbufferStorage(target, internalFormat gl.Enum, width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("RenderbufferStorage", target, internalFormat, width, height)
	rb := c.renderbuffers[c.renderbuffer]
	if rb == nil {
		c.fail("RenderbufferStorage: no renderbuffer bound")
		return
	}
	rb.format, rb.width, rb.height = internalFormat, width, height
}

func (c *Context) DeleteRenderbuffer(rb gl.Renderbuffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("DeleteRenderbuffer", rb.V)
	delete(c.renderbuffers, rb.V)
	if c.renderbuffer == rb.V {
		c.renderbuffer = 0
	}
}

// TextureLevels returns the number of defined mip levels of t.
func (c *Context) TextureLevels(t gl.Texture) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if o := c.textures[t.V]; o != nil {
		return len(o.levels)
	}
	return 0
}

// TextureLevelSize returns the size of a mip level of t.
func (c *Context) TextureLevelSize(t gl.Texture, lvl int) (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if o := c.textures[t.V]; o != nil && lvl < len(o.levels) {
		return o.levels[lvl].width, o.levels[lvl].height
	}
	return 0, 0
}

// TextureType returns the pixel type of a mip level of t.
func (c *Context) TextureType(t gl.Texture, lvl int) gl.Enum {
	c.mu.Lock()
	defer c.mu.Unlock()
	if o := c.textures[t.V]; o != nil && lvl < len(o.levels) {
		return o.levels[lvl].ty
	}
	return 0
}

// TextureImage returns a copy of an RGBA8 mip level of t, or nil.
func (c *Context) TextureImage(t gl.Texture, lvl int) *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	o := c.textures[t.V]
	if o == nil || lvl >= len(o.levels) || o.levels[lvl].img == nil {
		return nil
	}
	src := o.levels[lvl].img
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// TextureParam returns a parameter of t set through TexParameteri.
func (c *Context) TextureParam(t gl.Texture, pname gl.Enum) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if o := c.textures[t.V]; o != nil {
		return o.params[pname]
	}
	return 0
}

// Attachments returns the color and depth attachments of fb.
func (c *Context) Attachments(fb gl.Framebuffer) (gl.Texture, gl.Renderbuffer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if o := c.framebuffers[fb.V]; o != nil {
		return gl.Texture{V: o.color}, gl.Renderbuffer{V: o.depth}
	}
	return gl.Texture{}, gl.Renderbuffer{}
}

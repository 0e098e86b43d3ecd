// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/outline/gl"
)

// FrameBuffer is an offscreen render target: a framebuffer with a color
// texture and, for integer formats, a depth renderbuffer.
type FrameBuffer struct {
	Framebuffer gl.Framebuffer
	Depth       gl.Renderbuffer
	Texture     gl.Texture
	Width       int
	Height      int
	Format      gputypes.TextureFormat
}

// CreateFrameBuffer allocates an RGBA8 target of width x height with a 16-bit
// depth attachment and linear filtering.
func (m *Manager) CreateFrameBuffer(width, height int) (FrameBuffer, error) {
	fn, err := m.active("create framebuffer")
	if err != nil {
		return FrameBuffer{}, err
	}
	if width <= 0 || height <= 0 {
		return FrameBuffer{}, fmt.Errorf("%w: framebuffer size %dx%d", ErrResource, width, height)
	}

	fb := FrameBuffer{
		Framebuffer: fn.CreateFramebuffer(),
		Depth:       fn.CreateRenderbuffer(),
		Texture:     fn.CreateTexture(),
		Width:       width,
		Height:      height,
		Format:      gputypes.TextureFormatRGBA8Unorm,
	}
	if !fb.Framebuffer.Valid() || !fb.Depth.Valid() || !fb.Texture.Valid() {
		m.DeleteFrameBuffer(fb)
		return FrameBuffer{}, fmt.Errorf("%w: create framebuffer objects", ErrResource)
	}

	fn.BindFramebuffer(gl.FRAMEBUFFER, fb.Framebuffer)
	fn.BindRenderbuffer(gl.RENDERBUFFER, fb.Depth)
	fn.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT16, width, height)
	fn.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, fb.Depth)

	fn.BindTexture(gl.TEXTURE_2D, fb.Texture)
	fn.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	fn.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, int(gl.LINEAR))
	fn.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, int(gl.LINEAR))
	fn.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.Texture, 0)

	return m.finishFrameBuffer(fn, fb)
}

// CreateFloatFrameBuffer allocates a floating-point color target without a
// depth attachment, using 32-bit floats when available and half floats
// otherwise. It fails with ErrUnsupported when ext has neither.
func (m *Manager) CreateFloatFrameBuffer(ext Extensions, width, height int) (FrameBuffer, error) {
	fn, err := m.active("create float framebuffer")
	if err != nil {
		return FrameBuffer{}, err
	}
	if !ext.FloatTextures() {
		return FrameBuffer{}, fmt.Errorf("%w: float textures", ErrUnsupported)
	}
	if width <= 0 || height <= 0 {
		return FrameBuffer{}, fmt.Errorf("%w: framebuffer size %dx%d", ErrResource, width, height)
	}

	ty, format := gl.FLOAT, gputypes.TextureFormatRGBA32Float
	if !ext.TextureFloat {
		ty, format = gl.HALF_FLOAT_OES, gputypes.TextureFormatRGBA16Float
	}
	fb := FrameBuffer{
		Framebuffer: fn.CreateFramebuffer(),
		Texture:     fn.CreateTexture(),
		Width:       width,
		Height:      height,
		Format:      format,
	}
	if !fb.Framebuffer.Valid() || !fb.Texture.Valid() {
		m.DeleteFrameBuffer(fb)
		return FrameBuffer{}, fmt.Errorf("%w: create framebuffer objects", ErrResource)
	}

	fn.BindFramebuffer(gl.FRAMEBUFFER, fb.Framebuffer)
	fn.BindTexture(gl.TEXTURE_2D, fb.Texture)
	fn.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, width, height, gl.RGBA, ty, nil)
	Sampler{
		MinFilter: gputypes.FilterModeNearest,
		MagFilter: gputypes.FilterModeNearest,
		Wrap:      gputypes.AddressModeClampToEdge,
	}.apply(fn)
	fn.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.Texture, 0)

	return m.finishFrameBuffer(fn, fb)
}

func (m *Manager) finishFrameBuffer(fn gl.Functions, fb FrameBuffer) (FrameBuffer, error) {
	status := fn.CheckFramebufferStatus(gl.FRAMEBUFFER)
	fn.BindTexture(gl.TEXTURE_2D, gl.Texture{})
	fn.BindRenderbuffer(gl.RENDERBUFFER, gl.Renderbuffer{})
	fn.BindFramebuffer(gl.FRAMEBUFFER, gl.Framebuffer{})
	if status != gl.FRAMEBUFFER_COMPLETE {
		m.DeleteFrameBuffer(fb)
		return FrameBuffer{}, fmt.Errorf("%w: framebuffer incomplete (status 0x%x)", ErrResource, uint32(status))
	}
	slogger().Debug("framebuffer created",
		"framebuffer", fb.Framebuffer.V, "width", fb.Width, "height", fb.Height, "format", fb.Format)
	return fb, nil
}

// DeleteFrameBuffer releases every object of fb. It is a no-op without a
// context.
func (m *Manager) DeleteFrameBuffer(fb FrameBuffer) {
	fn, err := m.active("delete framebuffer")
	if err != nil {
		return
	}
	if fb.Framebuffer.Valid() {
		fn.DeleteFramebuffer(fb.Framebuffer)
	}
	if fb.Depth.Valid() {
		fn.DeleteRenderbuffer(fb.Depth)
	}
	if fb.Texture.Valid() {
		fn.DeleteTexture(fb.Texture)
	}
}

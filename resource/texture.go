// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	"github.com/gogpu/gputypes"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/outline/gl"
)

// Sampler describes texture filtering and addressing.
type Sampler struct {
	MinFilter gputypes.FilterMode
	MagFilter gputypes.FilterMode
	Wrap      gputypes.AddressMode
	Mipmaps   bool
}

// DefaultSampler is linear filtering with repeat addressing and a mip chain.
var DefaultSampler = Sampler{
	MinFilter: gputypes.FilterModeLinear,
	MagFilter: gputypes.FilterModeLinear,
	Wrap:      gputypes.AddressModeRepeat,
	Mipmaps:   true,
}

func filterEnum(f gputypes.FilterMode) int {
	if f == gputypes.FilterModeNearest {
		return int(gl.NEAREST)
	}
	return int(gl.LINEAR)
}

func wrapEnum(a gputypes.AddressMode) int {
	if a == gputypes.AddressModeClampToEdge {
		return int(gl.CLAMP_TO_EDGE)
	}
	return int(gl.REPEAT)
}

func (s Sampler) apply(fn gl.Functions) {
	fn.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filterEnum(s.MinFilter))
	fn.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filterEnum(s.MagFilter))
	fn.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapEnum(s.Wrap))
	fn.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapEnum(s.Wrap))
}

type decoded struct {
	img *image.RGBA
	err error
}

// CreateTexture decodes an image from r and uploads it as an RGBA8 2D texture
// using DefaultSampler.
//
// Decoding runs on its own goroutine; the upload happens on the calling
// goroutine once decoding finishes, so CreateTexture must be called from the
// context's goroutine. If ctx ends first the decode result is discarded and
// ctx.Err() is returned.
func (m *Manager) CreateTexture(ctx context.Context, r io.Reader) (gl.Texture, error) {
	return m.CreateTextureWith(ctx, r, DefaultSampler)
}

// CreateTextureWith is CreateTexture with an explicit sampler.
func (m *Manager) CreateTextureWith(ctx context.Context, r io.Reader, s Sampler) (gl.Texture, error) {
	if _, err := m.active("create texture"); err != nil {
		return gl.Texture{}, err
	}

	done := make(chan decoded, 1)
	go func() {
		img, err := DecodeImage(r)
		done <- decoded{img: img, err: err}
	}()

	var d decoded
	select {
	case <-ctx.Done():
		return gl.Texture{}, ctx.Err()
	case d = <-done:
	}
	if d.err != nil {
		return gl.Texture{}, d.err
	}
	return m.UploadTexture(d.img, s)
}

// DecodeImage decodes any registered image format into RGBA.
func DecodeImage(r io.Reader) (*image.RGBA, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("resource: decode image: %w", err)
	}
	if rgba, ok := src.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba, nil
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	slogger().Debug("image decoded", "format", format, "width", b.Dx(), "height", b.Dy())
	return dst, nil
}

// UploadTexture uploads img as a 2D texture.
func (m *Manager) UploadTexture(img *image.RGBA, s Sampler) (gl.Texture, error) {
	fn, err := m.active("upload texture")
	if err != nil {
		return gl.Texture{}, err
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return gl.Texture{}, fmt.Errorf("%w: empty image", ErrResource)
	}
	pix := img.Pix
	if img.Stride != w*4 {
		pix = make([]byte, 0, w*h*4)
		for y := 0; y < h; y++ {
			off := y * img.Stride
			pix = append(pix, img.Pix[off:off+w*4]...)
		}
	}

	t := fn.CreateTexture()
	if !t.Valid() {
		return gl.Texture{}, fmt.Errorf("%w: create texture", ErrResource)
	}
	fn.BindTexture(gl.TEXTURE_2D, t)
	fn.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, w, h, gl.RGBA, gl.UNSIGNED_BYTE, pix)
	if s.Mipmaps {
		fn.GenerateMipmap(gl.TEXTURE_2D)
	}
	s.apply(fn)
	fn.BindTexture(gl.TEXTURE_2D, gl.Texture{})
	slogger().Debug("texture created", "texture", t.V, "width", w, "height", h)
	return t, nil
}

// DeleteTexture releases t. It is a no-op without a context.
func (m *Manager) DeleteTexture(t gl.Texture) {
	if fn, err := m.active("delete texture"); err == nil && t.Valid() {
		fn.DeleteTexture(t)
	}
}

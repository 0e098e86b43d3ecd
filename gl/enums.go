// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

// Enum is a GL enumerant.
type Enum uint32

const (
	ARRAY_BUFFER                 Enum = 0x8892
	BACK                         Enum = 0x0405
	CLAMP_TO_EDGE                Enum = 0x812f
	COLOR_ATTACHMENT0            Enum = 0x8ce0
	COLOR_BUFFER_BIT             Enum = 0x4000
	COMPILE_STATUS               Enum = 0x8b81
	CULL_FACE                    Enum = 0x0b44
	DEPTH_ATTACHMENT             Enum = 0x8d00
	DEPTH_BUFFER_BIT             Enum = 0x0100
	DEPTH_COMPONENT16            Enum = 0x81a5
	DEPTH_TEST                   Enum = 0x0b71
	ELEMENT_ARRAY_BUFFER         Enum = 0x8893
	FLOAT                        Enum = 0x1406
	FRAGMENT_SHADER              Enum = 0x8b30
	FRAMEBUFFER                  Enum = 0x8d40
	FRAMEBUFFER_COMPLETE         Enum = 0x8cd5
	FRAMEBUFFER_INCOMPLETE       Enum = 0x8cd6
	FRONT                        Enum = 0x0404
	FRONT_AND_BACK               Enum = 0x0408
	HALF_FLOAT_OES               Enum = 0x8d61
	LINEAR                       Enum = 0x2601
	LINEAR_MIPMAP_LINEAR         Enum = 0x2703
	LINK_STATUS                  Enum = 0x8b82
	NEAREST                      Enum = 0x2600
	RENDERBUFFER                 Enum = 0x8d41
	REPEAT                       Enum = 0x2901
	RGBA                         Enum = 0x1908
	STATIC_DRAW                  Enum = 0x88e4
	TEXTURE_2D                   Enum = 0x0de1
	TEXTURE_MAG_FILTER           Enum = 0x2800
	TEXTURE_MIN_FILTER           Enum = 0x2801
	TEXTURE_WRAP_S               Enum = 0x2802
	TEXTURE_WRAP_T               Enum = 0x2803
	TRIANGLES                    Enum = 0x0004
	UNSIGNED_BYTE                Enum = 0x1401
	UNSIGNED_INT                 Enum = 0x1405
	UNSIGNED_SHORT               Enum = 0x1403
	VERTEX_SHADER                Enum = 0x8b31
)

// Extension names probed by the resource manager.
const (
	ExtElementIndexUint = "OES_element_index_uint"
	ExtTextureFloat     = "OES_texture_float"
	ExtTextureHalfFloat = "OES_texture_half_float"
)

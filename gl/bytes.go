// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"encoding/binary"
	"math"
)

// Float32Bytes encodes v as little-endian IEEE 754 words, the layout
// BufferData and TexImage2D expect for FLOAT data.
func Float32Bytes(v []float32) []byte {
	b := make([]byte, 0, len(v)*4)
	for _, f := range v {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	return b
}

// Uint16Bytes encodes v as little-endian 16-bit words.
func Uint16Bytes(v []uint16) []byte {
	b := make([]byte, 0, len(v)*2)
	for _, u := range v {
		b = binary.LittleEndian.AppendUint16(b, u)
	}
	return b
}

// Uint32Bytes encodes v as little-endian 32-bit words.
func Uint32Bytes(v []uint32) []byte {
	b := make([]byte, 0, len(v)*4)
	for _, u := range v {
		b = binary.LittleEndian.AppendUint32(b, u)
	}
	return b
}

// BytesFloat32 decodes little-endian IEEE 754 words. Trailing bytes that do
// not form a whole word are ignored.
func BytesFloat32(b []byte) []float32 {
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}

// BytesUint16 decodes little-endian 16-bit words.
func BytesUint16(b []byte) []uint16 {
	v := make([]uint16, len(b)/2)
	for i := range v {
		v[i] = binary.LittleEndian.Uint16(b[i*2:])
	}
	return v
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import "testing"

func TestFloat32Bytes(t *testing.T) {
	in := []float32{-0.05, 0, 1, 0.8124}
	b := Float32Bytes(in)
	if len(b) != 16 {
		t.Fatalf("len = %d, want 16", len(b))
	}
	// 1.0 is 0x3f800000, little-endian.
	if b[8] != 0x00 || b[9] != 0x00 || b[10] != 0x80 || b[11] != 0x3f {
		t.Errorf("1.0 encoded as % x", b[8:12])
	}
	out := BytesFloat32(b)
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestUint16Bytes(t *testing.T) {
	b := Uint16Bytes([]uint16{0, 2, 0xffff})
	want := []byte{0, 0, 2, 0, 0xff, 0xff}
	if string(b) != string(want) {
		t.Errorf("Uint16Bytes = % x, want % x", b, want)
	}
	if got := BytesUint16(b); got[2] != 0xffff {
		t.Errorf("BytesUint16()[2] = %d", got[2])
	}
}

func TestHandleValidity(t *testing.T) {
	if (Buffer{}).Valid() || (Program{}).Valid() || (Shader{}).Valid() {
		t.Error("zero handles must be invalid")
	}
	if !(Buffer{V: 1}).Valid() {
		t.Error("non-zero buffer must be valid")
	}
	if Attrib(-1).Valid() || Uniform(-1).Valid() {
		t.Error("negative locations must be invalid")
	}
	if !Attrib(0).Valid() || !Uniform(0).Valid() {
		t.Error("location 0 must be valid")
	}
}

func TestTargetString(t *testing.T) {
	if got := Named("webgl-canvas").String(); got != "webgl-canvas" {
		t.Errorf("Named().String() = %q", got)
	}
	if got := Direct(fixedSurface{}).String(); got != "<surface>" {
		t.Errorf("Direct().String() = %q", got)
	}
}

type fixedSurface struct{}

func (fixedSurface) Size() (int, int) { return 1, 1 }

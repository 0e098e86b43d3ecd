// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if c.Camera != (Camera{Distance: 1, Min: 1, Max: 10, Move: 2}) {
		t.Errorf("Camera = %+v", c.Camera)
	}
	if c.Scene.ClearColor != [4]float32{0.158, 0.629, 0.81, 1} {
		t.Errorf("ClearColor = %v", c.Scene.ClearColor)
	}
	if c.Shaders.Paths() != nil {
		t.Errorf("Paths() = %v, want nil", c.Shaders.Paths())
	}
}

func TestDecodeOverridesDefaults(t *testing.T) {
	src := `
backend = "recorder"

[surface]
name = "main"

[shaders]
vertex = "a.vert"
fragment = "a.frag"
watch = true

[camera]
distance = 3.0
`
	c, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if c.Backend != "recorder" || c.Surface.Name != "main" || c.Surface.Width != 800 {
		t.Errorf("Decode() = %+v", c)
	}
	if c.Camera.Distance != 3 || c.Camera.Max != 10 {
		t.Errorf("Camera = %+v", c.Camera)
	}
	if got := c.Shaders.Paths(); len(got) != 2 || got[0] != "a.vert" || !c.Shaders.Watch {
		t.Errorf("Shaders = %+v", c.Shaders)
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":  "colour = 1\n",
		"camera range": "[camera]\nmin = 5.0\nmax = 2.0\n",
		"depth range":  "[projection]\nnear = 1.0\nfar = 0.5\n",
		"fov":          "[projection]\nfov_y = 190.0\n",
		"one shader":   "[shaders]\nvertex = \"a\"\n",
		"cube side":    "[scene]\ncube_side = 0.0\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(src)); err == nil {
				t.Error("Decode() succeeded")
			}
		})
	}
	if _, err := Decode(strings.NewReader("[camera]\nmin = 0.0\n")); !errors.Is(err, ErrInvalid) {
		t.Errorf("error = %v, want ErrInvalid", err)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	c := Default()
	c.Backend = "desktop"
	c.Scene.CubeSide = 0.25

	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "outline.toml")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != c {
		t.Errorf("Load() = %+v, want %+v", got, c)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.toml")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config holds the scene, camera and shader settings of the demo
// host. Settings are read from TOML; anything a file omits keeps its default.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is returned for settings that cannot describe a scene.
var ErrInvalid = errors.New("config: invalid")

// Config is the full set of host settings.
type Config struct {
	Backend    string     `toml:"backend"`
	Surface    Surface    `toml:"surface"`
	Shaders    Shaders    `toml:"shaders"`
	Camera     Camera     `toml:"camera"`
	Scene      Scene      `toml:"scene"`
	Projection Projection `toml:"projection"`
}

// Surface names the drawable and its initial size.
type Surface struct {
	Name   string `toml:"name"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// Shaders locates the stage sources. Empty paths select the embedded pair
// for the backend.
type Shaders struct {
	Vertex   string `toml:"vertex"`
	Fragment string `toml:"fragment"`
	Watch    bool   `toml:"watch"`
}

// Paths returns the vertex and fragment paths, or nil when both are empty.
func (s Shaders) Paths() []string {
	if s.Vertex == "" && s.Fragment == "" {
		return nil
	}
	return []string{s.Vertex, s.Fragment}
}

// Camera configures the orbit camera.
type Camera struct {
	Distance float32 `toml:"distance"`
	Min      float32 `toml:"min"`
	Max      float32 `toml:"max"`
	Move     float32 `toml:"move"`
}

// Scene sets colors and mesh sizes.
type Scene struct {
	ClearColor [4]float32 `toml:"clear_color"`
	MeshColor  [4]float32 `toml:"mesh_color"`
	PlaneSize  float32    `toml:"plane_size"`
	CubeSide   float32    `toml:"cube_side"`
}

// Projection is a perspective projection with a vertical field of view in
// degrees.
type Projection struct {
	FovY float32 `toml:"fov_y"`
	Near float32 `toml:"near"`
	Far  float32 `toml:"far"`
}

// Default returns the reference scene settings.
func Default() Config {
	return Config{
		Surface: Surface{Name: "canvas", Width: 800, Height: 600},
		Camera:  Camera{Distance: 1, Min: 1, Max: 10, Move: 2},
		Scene: Scene{
			ClearColor: [4]float32{0.158, 0.629, 0.81, 1},
			MeshColor:  [4]float32{0.8124, 0.629, 0.81, 1},
			PlaneSize:  0.1,
			CubeSide:   0.1,
		},
		Projection: Projection{FovY: 45, Near: 0.1, Far: 10},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	c, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Decode reads TOML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	c := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks that c describes a drawable scene.
func (c Config) Validate() error {
	switch {
	case c.Surface.Width < 0 || c.Surface.Height < 0:
		return fmt.Errorf("%w: surface size %dx%d", ErrInvalid, c.Surface.Width, c.Surface.Height)
	case c.Camera.Min <= 0 || c.Camera.Max < c.Camera.Min:
		return fmt.Errorf("%w: camera range [%v, %v]", ErrInvalid, c.Camera.Min, c.Camera.Max)
	case c.Scene.PlaneSize <= 0 || c.Scene.CubeSide <= 0:
		return fmt.Errorf("%w: mesh sizes must be positive", ErrInvalid)
	case c.Projection.FovY <= 0 || c.Projection.FovY >= 180:
		return fmt.Errorf("%w: field of view %v", ErrInvalid, c.Projection.FovY)
	case c.Projection.Near <= 0 || c.Projection.Far <= c.Projection.Near:
		return fmt.Errorf("%w: depth range [%v, %v]", ErrInvalid, c.Projection.Near, c.Projection.Far)
	case (c.Shaders.Vertex == "") != (c.Shaders.Fragment == ""):
		return fmt.Errorf("%w: set both shader paths or neither", ErrInvalid)
	}
	return nil
}

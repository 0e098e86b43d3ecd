// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"fmt"
	"strings"

	"github.com/gogpu/outline/gl"
)

// Stage is a programmable pipeline stage.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}

// Enum returns the GL shader type of s.
func (s Stage) Enum() gl.Enum {
	if s == StageFragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

// CompileShader compiles src for stage. On failure it returns the zero shader
// and a *CompileError holding the driver log verbatim.
func (m *Manager) CompileShader(src string, stage Stage) (gl.Shader, error) {
	fn, err := m.active("compile shader")
	if err != nil {
		return gl.Shader{}, err
	}
	if stage != StageVertex && stage != StageFragment {
		return gl.Shader{}, fmt.Errorf("%w: unknown stage %s", ErrResource, stage)
	}

	s := fn.CreateShader(stage.Enum())
	if !s.Valid() {
		return gl.Shader{}, fmt.Errorf("%w: create %s shader", ErrResource, stage)
	}
	fn.ShaderSource(s, src)
	fn.CompileShader(s)
	if fn.GetShaderi(s, gl.COMPILE_STATUS) == 0 {
		log := strings.TrimSpace(fn.GetShaderInfoLog(s))
		fn.DeleteShader(s)
		if log == "" {
			log = "no diagnostic reported"
		}
		slogger().Warn("shader compilation failed", "stage", stage.String(), "log", log)
		return gl.Shader{}, &CompileError{Stage: stage, Log: log}
	}
	slogger().Debug("shader compiled", "stage", stage.String(), "shader", s.V)
	return s, nil
}

// LinkProgram attaches vs and fs and links them. A successfully linked program
// is made current as a side effect. On failure it returns the zero program and
// a *LinkError.
func (m *Manager) LinkProgram(vs, fs gl.Shader) (gl.Program, error) {
	fn, err := m.active("link program")
	if err != nil {
		return gl.Program{}, err
	}
	if !vs.Valid() || !fs.Valid() {
		return gl.Program{}, &LinkError{Log: "invalid shader object"}
	}

	p := fn.CreateProgram()
	if !p.Valid() {
		return gl.Program{}, fmt.Errorf("%w: create program", ErrResource)
	}
	fn.AttachShader(p, vs)
	fn.AttachShader(p, fs)
	fn.LinkProgram(p)
	if fn.GetProgrami(p, gl.LINK_STATUS) == 0 {
		log := strings.TrimSpace(fn.GetProgramInfoLog(p))
		fn.DeleteProgram(p)
		if log == "" {
			log = "no diagnostic reported"
		}
		slogger().Warn("program link failed", "log", log)
		return gl.Program{}, &LinkError{Log: log}
	}
	fn.UseProgram(p)
	slogger().Info("program linked", "program", p.V)
	return p, nil
}

// BuildProgram compiles both stages and links them. Shader objects are
// deleted once the program owns them.
func (m *Manager) BuildProgram(vertexSrc, fragmentSrc string) (gl.Program, error) {
	vs, err := m.CompileShader(vertexSrc, StageVertex)
	if err != nil {
		return gl.Program{}, err
	}
	fs, err := m.CompileShader(fragmentSrc, StageFragment)
	if err != nil {
		m.fn.DeleteShader(vs)
		return gl.Program{}, err
	}
	p, err := m.LinkProgram(vs, fs)
	m.fn.DeleteShader(vs)
	m.fn.DeleteShader(fs)
	return p, err
}

// DeleteProgram releases p. It is a no-op without a context.
func (m *Manager) DeleteProgram(p gl.Program) {
	if fn, err := m.active("delete program"); err == nil && p.Valid() {
		fn.DeleteProgram(p)
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

type (
	Buffer       struct{ V uint32 }
	Framebuffer  struct{ V uint32 }
	Program      struct{ V uint32 }
	Renderbuffer struct{ V uint32 }
	Shader       struct{ V uint32 }
	Texture      struct{ V uint32 }
)

// Attrib is a resolved vertex attribute location. Negative values mean the
// attribute is not active in the program.
type Attrib int32

// Uniform is a resolved uniform location. Negative values mean the uniform is
// not active in the program.
type Uniform int32

func (b Buffer) Valid() bool       { return b.V != 0 }
func (f Framebuffer) Valid() bool  { return f.V != 0 }
func (p Program) Valid() bool      { return p.V != 0 }
func (r Renderbuffer) Valid() bool { return r.V != 0 }
func (s Shader) Valid() bool       { return s.V != 0 }
func (t Texture) Valid() bool      { return t.V != 0 }
func (a Attrib) Valid() bool       { return a >= 0 }
func (u Uniform) Valid() bool      { return u >= 0 }

// Surface is a drawable the context renders into.
//
// Size reports the current drawable size in pixels. Implementations must
// re-read the host dimensions on every call; callers never cache it across
// frames.
type Surface interface {
	Size() (width, height int)
}

// Target identifies the surface a context binds to, either directly or by a
// backend-specific logical name (canvas element id, window title, ...).
// A non-nil Surface takes precedence over Name.
type Target struct {
	Name    string
	Surface Surface
}

// Named returns a Target that resolves a surface by logical name.
func Named(name string) Target { return Target{Name: name} }

// Direct returns a Target that binds to s.
func Direct(s Surface) Target { return Target{Surface: s} }

func (t Target) String() string {
	if t.Surface != nil {
		return "<surface>"
	}
	return t.Name
}

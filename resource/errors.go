// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package resource

import (
	"errors"
	"fmt"
)

var (
	// ErrContext is returned when no drawable surface could be bound or the
	// graphics API is unavailable. Fatal to initialization.
	ErrContext = errors.New("resource: no graphics context")

	// ErrCompile matches every CompileError.
	ErrCompile = errors.New("resource: shader compilation failed")

	// ErrLink matches every LinkError.
	ErrLink = errors.New("resource: program link failed")

	// ErrResource is returned when a GPU object is requested without an
	// active context, or the driver refused to create it.
	ErrResource = errors.New("resource: resource creation failed")

	// ErrUnsupported is returned when a feature depends on a missing
	// extension. Callers may fall back.
	ErrUnsupported = errors.New("resource: unsupported by context")

	// ErrUniformKind is returned when a uniform value does not match the kind
	// its slot was declared with.
	ErrUniformKind = errors.New("resource: uniform kind mismatch")
)

// CompileError carries the driver diagnostic of a failed shader compile.
type CompileError struct {
	Stage Stage
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("resource: %s shader compilation failed: %s", e.Stage, e.Log)
}

// Is reports whether target is ErrCompile.
func (e *CompileError) Is(target error) bool { return target == ErrCompile }

// LinkError carries the driver diagnostic of a failed program link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "resource: program link failed: " + e.Log
}

// Is reports whether target is ErrLink.
func (e *LinkError) Is(target error) bool { return target == ErrLink }

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package outline

import "errors"

// ErrState is returned when a phase method is called out of order.
var ErrState = errors.New("outline: invalid renderer state")

// ErrNoGeometry is returned by Setup when the configured scene yields no
// drawable mesh.
var ErrNoGeometry = errors.New("outline: scene has no geometry")

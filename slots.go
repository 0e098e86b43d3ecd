// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package outline

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/outline/resource"
)

// Attribute is a vertex input slot of the outline program.
type Attribute int

const (
	AttributePosition Attribute = iota
	AttributeColor
	AttributeNormal
	attributeCount
)

// Uniform is a uniform slot of the outline program.
type Uniform int

const (
	UniformModel Uniform = iota
	UniformView
	UniformProjection
	// UniformEdge selects the outline look when nonzero.
	UniformEdge
	uniformCount
)

// AttributeSlots declares the vertex inputs in Attribute order.
var AttributeSlots = [attributeCount]resource.AttributeSlot{
	AttributePosition: {Name: "position", Format: gputypes.VertexFormatFloat32x3},
	AttributeColor:    {Name: "color", Format: gputypes.VertexFormatFloat32x4},
	AttributeNormal:   {Name: "normal", Format: gputypes.VertexFormatFloat32x3},
}

// UniformSlots declares the uniforms in Uniform order.
var UniformSlots = [uniformCount]resource.UniformSlot{
	UniformModel:      {Name: "uModelMatrix", Kind: resource.KindMatrix4},
	UniformView:       {Name: "uViewMatrix", Kind: resource.KindMatrix4},
	UniformProjection: {Name: "uProjectionMatrix", Kind: resource.KindMatrix4},
	UniformEdge:       {Name: "uEdgeDecide", Kind: resource.KindInt},
}

func (a Attribute) String() string {
	if a >= 0 && a < attributeCount {
		return AttributeSlots[a].Name
	}
	return "Attribute(?)"
}

func (u Uniform) String() string {
	if u >= 0 && u < uniformCount {
		return UniformSlots[u].Name
	}
	return "Uniform(?)"
}

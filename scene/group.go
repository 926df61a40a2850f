// Copyright (c) 2025, Vecscene Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/vecscene/core/math32"
)

// Group is a container item that groups children under a common
// transform. It has no content of its own: its bounds are the union
// of its visible, non-empty children's bounds.
type Group struct {
	ItemBase
}

// NewGroup returns a new empty [Group] registered in the given
// context, with the given children, if any, added to it.
func NewGroup(ctx *Context, children ...Item) *Group {
	g := &Group{}
	initItem(g, ctx)
	for _, kid := range children {
		g.AddChild(kid)
	}
	return g
}

func (g *Group) LocalBounds(m *math32.Matrix2, q boundsQuery) math32.Box2 {
	b := math32.B2Empty()
	cq := q
	cq.Internal = false // internal applies to the queried item only
	for _, kid := range g.Children {
		kb := kid.AsItemBase()
		if !kb.Visible || kid.IsEmpty() {
			continue
		}
		composed := kb.Matrix
		if m != nil {
			composed = m.Mul(kb.Matrix)
		}
		b.ExpandByBox(kb.queryBounds(&composed, cq))
	}
	return b
}

func (g *Group) TransformContent(m math32.Matrix2, recursively, setApply bool) bool {
	if len(g.Children) == 0 {
		return true
	}
	for _, kid := range g.Children {
		kid.AsItemBase().transform(&m, recursively, setApply)
	}
	return true
}

func (g *Group) Equals(other Item) bool {
	if !g.ItemBase.Equals(other) {
		return false
	}
	ob := other.AsItemBase()
	if len(g.Children) != len(ob.Children) {
		return false
	}
	for i, kid := range g.Children {
		if !kid.Equals(ob.Children[i]) {
			return false
		}
	}
	return true
}

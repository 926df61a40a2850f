// Copyright (c) 2025, Vecscene Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vecscene/core/base/tolassert"
	"github.com/vecscene/core/math32"
)

func tolAssertEqualVector(t *testing.T, tol float32, vt, va math32.Vector2) {
	t.Helper()
	tolassert.EqualTol(t, vt.X, va.X, tol)
	tolassert.EqualTol(t, vt.Y, va.Y, tol)
}

func TestItemTree(t *testing.T) {
	ctx := NewContext()
	g := NewGroup(ctx)
	p1 := square(ctx)
	p2 := square(ctx)

	g.AddChild(p1)
	g.AddChild(p2)
	assert.Equal(t, 2, g.NumChildren())
	assert.Same(t, Item(g), p1.Parent)
	assert.Equal(t, 0, p1.IndexInParent())
	assert.Equal(t, 1, p2.IndexInParent())

	p3 := square(ctx)
	g.InsertChild(p3, 1)
	assert.Equal(t, 1, p3.IndexInParent())
	assert.Equal(t, 2, p2.IndexInParent())

	assert.True(t, p3.Remove())
	assert.Nil(t, p3.Parent)
	assert.Equal(t, 1, p2.IndexInParent())

	// moving a child within the same parent adjusts the index
	g.InsertChild(p2, 0)
	assert.Equal(t, 0, p2.IndexInParent())
	assert.Equal(t, 1, p1.IndexInParent())
}

func TestItemNames(t *testing.T) {
	ctx := NewContext()
	g := NewGroup(ctx)
	p1 := square(ctx)
	p1.SetName("a")
	p2 := square(ctx)
	p2.SetName("a")
	p3 := square(ctx)
	p3.SetName("b")
	g.AddChild(p1)
	g.AddChild(p2)
	g.AddChild(p3)

	assert.Same(t, Item(p1), g.ChildByName("a"))
	assert.Equal(t, []Item{p1, p2}, g.ChildrenByName("a"))
	assert.Same(t, Item(p3), g.ChildByName("b"))
	assert.Nil(t, g.ChildByName("c"))

	p1.SetName("c")
	assert.Same(t, Item(p2), g.ChildByName("a"))
	assert.Same(t, Item(p1), g.ChildByName("c"))
}

func TestContextArena(t *testing.T) {
	ctx := NewContext()
	g := NewGroup(ctx)
	p := square(ctx)
	g.AddChild(p)

	id := p.ID()
	assert.True(t, id.IsValid())
	assert.Same(t, Item(p), ctx.Item(id))
	assert.Equal(t, 2, ctx.NumLive())

	g.Destroy()
	assert.Nil(t, ctx.Item(id))
	assert.Equal(t, 0, ctx.NumLive())

	// a reused slot gets a fresh generation, so the stale ID still
	// resolves to nil
	q := square(ctx)
	assert.NotEqual(t, id, q.ID())
	assert.Nil(t, ctx.Item(id))
	assert.Same(t, Item(q), ctx.Item(q.ID()))
}

func TestGroupBounds(t *testing.T) {
	ctx := NewContext()
	g := NewGroup(ctx)
	p1 := square(ctx) // 0,0 .. 100,100
	p2 := square(ctx)
	p2.ApplyMatrix = false
	p2.Translate(100, 0) // 100,0 .. 200,100
	g.AddChild(p1)
	g.AddChild(p2)

	assert.Equal(t, math32.B2(0, 0, 200, 100), g.Bounds(nil, BoundsOptions{}))

	// invisible and empty children are excluded
	p2.SetVisible(false)
	assert.Equal(t, math32.B2(0, 0, 100, 100), g.Bounds(nil, BoundsOptions{}))
	p2.SetVisible(true)

	empty := NewPath(ctx)
	g.AddChild(empty)
	assert.Equal(t, math32.B2(0, 0, 200, 100), g.Bounds(nil, BoundsOptions{}))

	// an empty group reports the empty sentinel
	eg := NewGroup(ctx)
	assert.True(t, eg.Bounds(nil, BoundsOptions{}).IsEmpty())
}

func TestBoundsCacheInvalidation(t *testing.T) {
	ctx := NewContext()
	g := NewGroup(ctx)
	p1 := square(ctx)
	p2 := square(ctx)
	p2.ApplyMatrix = false
	p2.Translate(200, 0)
	g.AddChild(p1)
	g.AddChild(p2)

	assert.Equal(t, math32.B2(0, 0, 300, 100), g.Bounds(nil, BoundsOptions{}))

	// mutating a grandchild segment must reach the group's cache
	p2.segments[1].SetPoint(math32.Vec2(200, 0))
	assert.Equal(t, math32.B2(0, 0, 400, 100), g.Bounds(nil, BoundsOptions{}))

	// transforming a child as well
	p1.Translate(-50, 0)
	assert.Equal(t, math32.B2(-50, 0, 400, 100), g.Bounds(nil, BoundsOptions{}))

	// and structural changes on the group itself
	p2.Remove()
	assert.Equal(t, math32.B2(-50, 0, 50, 100), g.Bounds(nil, BoundsOptions{}))
}

func TestBoundsCacheNested(t *testing.T) {
	ctx := NewContext()
	root := NewGroup(ctx)
	inner := NewGroup(ctx)
	p := square(ctx)
	inner.AddChild(p)
	root.AddChild(inner)

	assert.Equal(t, math32.B2(0, 0, 100, 100), root.Bounds(nil, BoundsOptions{}))
	assert.Equal(t, math32.B2(0, 0, 100, 100), inner.Bounds(nil, BoundsOptions{}))

	p.Translate(10, 10)
	assert.Equal(t, math32.B2(10, 10, 110, 110), root.Bounds(nil, BoundsOptions{}))
	assert.Equal(t, math32.B2(10, 10, 110, 110), inner.Bounds(nil, BoundsOptions{}))
}

func TestCachedBoundsFastPath(t *testing.T) {
	ctx := NewContext()
	p := square(ctx)
	b := p.Bounds(nil, BoundsOptions{})
	assert.Equal(t, math32.B2(0, 0, 100, 100), b)

	// a quarter-turn rotation about the center keeps the cached rect
	// transformable; the result must match a fresh recompute
	p.Rotate(math32.DegToRad(90), math32.Vec2(50, 50))
	rb := p.Bounds(nil, BoundsOptions{})

	fresh := square(ctx)
	fresh.Rotate(math32.DegToRad(90), math32.Vec2(50, 50))
	fb := fresh.Bounds(nil, BoundsOptions{})
	tolAssertEqualVector(t, 1.0e-3, fb.Min, rb.Min)
	tolAssertEqualVector(t, 1.0e-3, fb.Max, rb.Max)
	tolAssertEqualVector(t, 1.0e-3, math32.Vec2(0, 0), rb.Min)
	tolAssertEqualVector(t, 1.0e-3, math32.Vec2(100, 100), rb.Max)
}

func TestGroupTransformRecursive(t *testing.T) {
	ctx := NewContext()
	g := NewGroup(ctx)
	p := square(ctx)
	g.AddChild(p)

	g.Translate(10, 20)
	// the group bakes the transform into its children
	assert.True(t, g.Matrix.IsIdentity())
	assert.Equal(t, math32.Vec2(10, 20), p.segments[0].Point())

	g.ApplyMatrix = false
	g.Translate(5, 5)
	assert.Equal(t, math32.Vec2(5, 5), g.Matrix.Translation())
	assert.Equal(t, math32.Vec2(10, 20), p.segments[0].Point())
	assert.Equal(t, math32.B2(15, 25, 115, 125), g.Bounds(nil, BoundsOptions{}))
}

func TestDecomposedCache(t *testing.T) {
	ctx := NewContext()
	p := square(ctx)
	p.ApplyMatrix = false
	p.SetMatrix(math32.Rotate2D(math32.DegToRad(45)))

	tr, ok := p.Decomposed()
	assert.True(t, ok)
	tolassert.EqualTol(t, 45, tr.Rotation, 1.0e-4)

	p.SetMatrix(math32.Rotate2D(math32.DegToRad(90)))
	tr, ok = p.Decomposed()
	assert.True(t, ok)
	tolassert.EqualTol(t, 90, tr.Rotation, 1.0e-4)
}

func TestGlobalMatrix(t *testing.T) {
	ctx := NewContext()
	g := NewGroup(ctx)
	g.ApplyMatrix = false
	g.Translate(10, 0)
	p := square(ctx)
	p.ApplyMatrix = false
	p.Translate(0, 5)
	g.AddChild(p)

	gm := p.GlobalMatrix()
	assert.Equal(t, math32.Vec2(10, 5), gm.Translation())

	// moving the parent invalidates the cached global matrix
	g.Translate(1, 0)
	gm = p.GlobalMatrix()
	assert.Equal(t, math32.Vec2(11, 5), gm.Translation())
}

func TestPivotPosition(t *testing.T) {
	ctx := NewContext()
	p := square(ctx)
	assert.Equal(t, math32.Vec2(50, 50), p.Position())

	p.SetPivot(math32.Vec2(0, 0))
	assert.Equal(t, math32.Vec2(0, 0), p.Position())

	p.SetPosition(math32.Vec2(10, 10))
	assert.Equal(t, math32.Vec2(10, 10), p.Position())
	// content moved along
	b := p.Bounds(nil, BoundsOptions{})
	assert.Equal(t, math32.B2(10, 10, 110, 110), b)

	p.ClearPivot()
	assert.Equal(t, math32.Vec2(60, 60), p.Position())
}

func TestSetBounds(t *testing.T) {
	ctx := NewContext()
	p := square(ctx)
	p.SetBounds(math32.B2(10, 10, 30, 50))
	b := p.Bounds(nil, BoundsOptions{})
	tolAssertEqualVector(t, 1.0e-3, math32.Vec2(10, 10), b.Min)
	tolAssertEqualVector(t, 1.0e-3, math32.Vec2(30, 50), b.Max)
}

func TestSetBoundsDegenerateRecovery(t *testing.T) {
	ctx := NewContext()
	p := square(ctx)
	p.SetApplyMatrix(false)

	p.Transform(math32.Scale2D(0, 0))
	assert.False(t, p.Matrix.IsInvertible())
	assert.Equal(t, math32.Vec2(0, 0), p.Bounds(nil, BoundsOptions{}).Size())

	// the last invertible matrix was checkpointed before the collapse,
	// so the shape comes back
	p.SetBounds(math32.B2(10, 10, 60, 60))
	b := p.Bounds(nil, BoundsOptions{})
	tolAssertEqualVector(t, 1.0e-3, math32.Vec2(10, 10), b.Min)
	tolAssertEqualVector(t, 1.0e-3, math32.Vec2(60, 60), b.Max)

	// a directly assigned degenerate matrix has no checkpoint; only
	// the translation components survive
	p2 := square(ctx)
	p2.SetApplyMatrix(false)
	p2.SetMatrix(math32.Translate2D(5, 5).Scale(0, 0))
	p2.SetBounds(math32.B2(0, 0, 100, 100))
	b = p2.Bounds(nil, BoundsOptions{})
	tolAssertEqualVector(t, 1.0e-3, math32.Vec2(0, 0), b.Min)
	tolAssertEqualVector(t, 1.0e-3, math32.Vec2(100, 100), b.Max)
}

func TestBoundsForeignMatrix(t *testing.T) {
	ctx := NewContext()
	p := square(ctx)

	m1 := math32.Translate2D(10, 0)
	m2 := math32.Translate2D(0, 10)
	assert.Equal(t, math32.B2(10, 0, 110, 100), p.Bounds(&m1, BoundsOptions{}))
	assert.Equal(t, math32.B2(0, 10, 100, 110), p.Bounds(&m2, BoundsOptions{}))
	// alternating foreign matrices stay independent and never enter
	// the cache
	assert.Equal(t, math32.B2(10, 0, 110, 100), p.Bounds(&m1, BoundsOptions{}))
	assert.Empty(t, p.cachedBounds)

	// a query under the item's own matrix is cached
	p.ApplyMatrix = false
	p.Translate(10, 0)
	own := p.Matrix
	assert.Equal(t, math32.B2(10, 0, 110, 100), p.Bounds(&own, BoundsOptions{}))
	_, ok := p.cachedBounds[BoundsOptions{}]
	assert.True(t, ok)
}

func TestEditMatrix(t *testing.T) {
	ctx := NewContext()
	p := square(ctx)
	p.EditMatrix(func(m *math32.Matrix2) {
		m.SetMul(math32.Translate2D(10, 20))
	})
	// with ApplyMatrix on, the edited matrix is baked straight into
	// the segments
	assert.True(t, p.Matrix.IsIdentity())
	assert.Equal(t, math32.Vec2(10, 20), p.segments[0].Point())

	p.ApplyMatrix = false
	p.EditMatrix(func(m *math32.Matrix2) {
		*m = math32.Translate2D(5, 5)
	})
	assert.Equal(t, math32.Vec2(5, 5), p.Matrix.Translation())
	assert.Equal(t, math32.Vec2(10, 20), p.segments[0].Point())
}

func TestSetApplyMatrix(t *testing.T) {
	ctx := NewContext()
	g := NewGroup(ctx)
	g.SetApplyMatrix(false)
	p := square(ctx)
	p.SetApplyMatrix(false)
	g.AddChild(p)

	g.Translate(10, 0)
	p.Translate(0, 5)
	assert.Equal(t, math32.Vec2(0, 0), p.segments[0].Point())

	// turning baking back on flushes the accumulated matrices into
	// the content, recursively
	g.SetApplyMatrix(true)
	assert.True(t, g.ApplyMatrix)
	assert.True(t, p.ApplyMatrix)
	assert.True(t, g.Matrix.IsIdentity())
	assert.True(t, p.Matrix.IsIdentity())
	assert.Equal(t, math32.Vec2(10, 5), p.segments[0].Point())
}

func TestGroupCloneEquals(t *testing.T) {
	ctx := NewContext()
	g := NewGroup(ctx, square(ctx), square(ctx))
	g.SetName("shapes")

	c := g.Clone().(*Group)
	assert.True(t, g.Equals(c))
	assert.Equal(t, "shapes", c.Name)
	assert.Equal(t, 2, c.NumChildren())
	assert.NotSame(t, g.Child(0), c.Child(0))

	c.Child(0).(*Path).segments[0].SetPoint(math32.Vec2(-5, -5))
	assert.False(t, g.Equals(c))
}

func TestChangesString(t *testing.T) {
	assert.Equal(t, "Geometry", Geometry.String())
	assert.Equal(t, "Geometry|Children", (Geometry | Children).String())
	assert.True(t, (Geometry | Stroke).HasFlag(Stroke))
	assert.False(t, Geometry.HasFlag(Children))
}

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

func TestPathDataSerialize(t *testing.T) {
	ctx := NewContext()

	sq := square(ctx)
	assert.Equal(t, "M0,0h100v100h-100z", sq.PathData())

	open := NewPath(ctx,
		NewSegment(math32.Vec2(10, 20)),
		NewSegment(math32.Vec2(30, 40)),
		NewSegment(math32.Vec2(30, 60)))
	assert.Equal(t, "M10,20l20,20v20", open.PathData())

	curved := NewPath(ctx)
	curved.MoveTo(math32.Vec2(0, 0))
	assert.NoError(t, curved.CubicTo(math32.Vec2(0, -10), math32.Vec2(10, -10), math32.Vec2(10, 0)))
	assert.Equal(t, "M0,0c0,-10 10,-10 10,0", curved.PathData())

	empty := NewPath(ctx)
	assert.Equal(t, "", empty.PathData())
}

func TestPathDataPrecision(t *testing.T) {
	ctx := NewContext()
	ctx.Precision = 2
	p := NewPath(ctx, NewSegment(math32.Vec2(1.23456, 7.89012)))
	assert.Equal(t, "M1.23,7.89", p.PathData())

	ctx.Precision = 0
	assert.Equal(t, "M1,8", p.PathData())
}

func TestParsePathData(t *testing.T) {
	ctx := NewContext()
	paths, err := ParsePathData(ctx, "M0,0h100v100h-100z")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(paths))

	p := paths[0]
	assert.True(t, p.Closed())
	assert.Equal(t, 4, len(p.Segments()))
	assert.Equal(t, math32.Vec2(0, 0), p.Segment(0).Point())
	assert.Equal(t, math32.Vec2(100, 0), p.Segment(1).Point())
	assert.Equal(t, math32.Vec2(100, 100), p.Segment(2).Point())
	assert.Equal(t, math32.Vec2(0, 100), p.Segment(3).Point())
	tolassert.EqualTol(t, 10000, p.Area(), 1.0e-2)
}

func TestParsePathDataAbsoluteRelative(t *testing.T) {
	ctx := NewContext()
	abs, err := PathFromData(ctx, "M10,10 L20,10 L20,20 H10 V10")
	assert.NoError(t, err)
	rel, err := PathFromData(ctx, "m10,10 l10,0 l0,10 h-10 v-10")
	assert.NoError(t, err)
	assert.Equal(t, len(abs.Segments()), len(rel.Segments()))
	for i := range abs.Segments() {
		assert.Equal(t, abs.Segment(i).Point(), rel.Segment(i).Point(), "segment %d", i)
	}
}

func TestParsePathDataCurves(t *testing.T) {
	ctx := NewContext()
	p, err := PathFromData(ctx, "M0,0C0,-10 10,-10 10,0")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(p.Segments()))
	assert.Equal(t, math32.Vec2(0, -10), p.Segment(0).AbsoluteHandleOut())
	assert.Equal(t, math32.Vec2(10, -10), p.Segment(1).AbsoluteHandleIn())

	// implicit repetition of the command
	p2, err := PathFromData(ctx, "M0,0c0,-10 10,-10 10,0 0,10 10,10 10,0")
	assert.NoError(t, err)
	assert.Equal(t, 3, len(p2.Segments()))
	assert.Equal(t, math32.Vec2(20, 0), p2.Segment(2).Point())
}

func TestParsePathDataSmooth(t *testing.T) {
	ctx := NewContext()
	p, err := PathFromData(ctx, "M0,0C10,20 30,20 40,0S70,-20 80,0")
	assert.NoError(t, err)
	assert.Equal(t, 3, len(p.Segments()))

	// the smooth command reflects the previous control point
	assert.Equal(t, math32.Vec2(50, -20), p.Segment(1).AbsoluteHandleOut())
	assert.Equal(t, math32.Vec2(70, -20), p.Segment(2).AbsoluteHandleIn())

	// without a preceding curve the reflected control point is the
	// current point itself
	q, err := PathFromData(ctx, "M0,0S10,10 20,0")
	assert.NoError(t, err)
	assert.Equal(t, math32.Vec2(0, 0), q.Segment(0).AbsoluteHandleOut())
}

func TestParsePathDataQuadratic(t *testing.T) {
	ctx := NewContext()
	p, err := PathFromData(ctx, "M0,0Q5,10 10,0T20,0")
	assert.NoError(t, err)
	assert.Equal(t, 3, len(p.Segments()))
	// quadratics arrive as elevated cubics passing through the
	// quadratic midpoint
	tolAssertEqualVector(t, 1.0e-4, math32.Vec2(5, 5), p.Curves()[0].PointAt(0.5))
	// T reflects the previous quadratic control: (5,10) about (10,0)
	// is (15,-10), so the midpoint dips below
	tolAssertEqualVector(t, 1.0e-4, math32.Vec2(15, -5), p.Curves()[1].PointAt(0.5))
}

func TestParsePathDataArc(t *testing.T) {
	ctx := NewContext()
	p, err := PathFromData(ctx, "M0,0A50,50 0 0 1 100,0")
	assert.NoError(t, err)

	segs := p.Segments()
	assert.GreaterOrEqual(t, len(segs), 2)
	assert.LessOrEqual(t, len(segs), 5)
	assert.Equal(t, math32.Vec2(0, 0), segs[0].Point())
	assert.Equal(t, math32.Vec2(100, 0), segs[len(segs)-1].Point())

	// half circle of radius 50: length πr, sweeping up (y-down: sweep
	// keeps the arc above the chord)
	tolassert.EqualTol(t, math32.Pi*50, p.Length(), 0.1)
	b := p.Bounds(nil, BoundsOptions{})
	tolAssertEqualVector(t, 0.1, math32.Vec2(0, -50), b.Min)
	tolAssertEqualVector(t, 0.1, math32.Vec2(100, 0), b.Max)

	// degenerate radii degrade to a line
	ln, err := PathFromData(ctx, "M0,0A0,0 0 0 1 100,0")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(ln.Segments()))
	assert.True(t, ln.Curves()[0].IsStraight())

	// radii too small to span the endpoints are scaled up: the arc
	// still reaches the end point exactly
	sm, err := PathFromData(ctx, "M0,0A10,10 0 0 1 100,0")
	assert.NoError(t, err)
	assert.Equal(t, math32.Vec2(100, 0), sm.LastSegment().Point())

	// arc flags may run together with the following coordinates
	rt, err := PathFromData(ctx, "M0,0a50,50 0 0150,50")
	assert.NoError(t, err)
	assert.Equal(t, math32.Vec2(50, 50), rt.LastSegment().Point())
}

func TestParsePathDataSubpaths(t *testing.T) {
	ctx := NewContext()
	paths, err := ParsePathData(ctx, "M0,0h10v10z M20,0h10v10z")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(paths))
	assert.True(t, paths[0].Closed())
	assert.True(t, paths[1].Closed())
	assert.Equal(t, math32.Vec2(20, 0), paths[1].Segment(0).Point())

	// a drawing command after z starts a new subpath at the start
	// point of the closed one
	paths, err = ParsePathData(ctx, "M0,0h10v10z l5,5")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(paths))
	assert.Equal(t, math32.Vec2(0, 0), paths[1].Segment(0).Point())
	assert.Equal(t, math32.Vec2(5, 5), paths[1].Segment(1).Point())

	_, err = PathFromData(ctx, "M0,0h10 M20,0h10")
	assert.Error(t, err)
}

func TestParsePathDataErrors(t *testing.T) {
	ctx := NewContext()
	for _, bad := range []string{
		"X10,0",                 // invalid command
		"M10,abc",               // malformed number
		"L10,20",                // draw before moveto
		"l10,0",                 // relative with no current point
		"M0,0A50,50 0 2 0 10,0", // bad arc flag
		"M10",                   // missing coordinate
		"M0,0C1,1 2,2",          // truncated parameter group
	} {
		paths, err := ParsePathData(ctx, bad)
		assert.Error(t, err, bad)
		assert.Nil(t, paths, bad)
	}
	// parse failures must not leak items into the arena
	assert.Equal(t, 0, ctx.NumLive())
}

func TestPathDataRoundTrip(t *testing.T) {
	ctx := NewContext()
	for _, data := range []string{
		"M0,0h100v100h-100z",
		"M10,20l20,20v20",
		"M0,0c0,-10 10,-10 10,0",
		"M0,0c10,20 30,20 40,0c10,-20 30,-20 40,0",
	} {
		p, err := PathFromData(ctx, data)
		assert.NoError(t, err, data)
		out := p.PathData()
		assert.Equal(t, data, out, data)

		// and the re-parse preserves geometry
		q, err := PathFromData(ctx, out)
		assert.NoError(t, err, data)
		assert.Equal(t, len(p.Segments()), len(q.Segments()), data)
		tolassert.EqualTol(t, p.Length(), q.Length(), 1.0e-3)
		tolassert.EqualTol(t, p.Area(), q.Area(), 1.0e-3)
	}
}

func TestPathDataRoundTripArc(t *testing.T) {
	ctx := NewContext()
	p, err := PathFromData(ctx, "M0,0A50,50 0 0 1 100,0")
	assert.NoError(t, err)

	q, err := PathFromData(ctx, p.PathData())
	assert.NoError(t, err)
	pb := p.Bounds(nil, BoundsOptions{})
	qb := q.Bounds(nil, BoundsOptions{})
	tolAssertEqualVector(t, 1.0e-3, pb.Min, qb.Min)
	tolAssertEqualVector(t, 1.0e-3, pb.Max, qb.Max)
	tolassert.EqualTol(t, p.Length(), q.Length(), 1.0e-2)
}

// Copyright (c) 2025, Vecscene Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"errors"
	"slices"

	"github.com/vecscene/core/math32"
)

// ErrNoCurrentPoint is returned by builder operations that need an
// existing current point (handle-bearing commands) when the path has
// no segments yet.
var ErrNoCurrentPoint = errors.New("scene: path has no current point")

// Path is an item holding a single open or closed sequence of
// [Segment]s, interpreted pairwise as cubic bézier [Curve]s.
//
// A path owns its segments: adding a segment that already belongs to
// another path inserts a clone instead. The curve list is derived
// lazily from the segments and incrementally relinked as segments are
// spliced in and out, maintaining len(curves) == len(segments) for a
// closed path and max(len(segments)-1, 0) for an open one.
type Path struct {
	ItemBase

	segments []*Segment
	closed   bool

	// curves is the lazily built list of curve views over adjacent
	// segment pairs. nil until first requested.
	curves []*Curve

	// version counts structural changes (segment splices, reversal,
	// closing), so external consumers can detect staleness.
	version uint64

	length *float32
	area   *float32
}

// NewPath returns a new open [Path] registered in the given context,
// with the given segments, if any, appended to it.
func NewPath(ctx *Context, segments ...*Segment) *Path {
	p := &Path{}
	initItem(p, ctx)
	if len(segments) > 0 {
		p.add(segments, 0)
	}
	return p
}

// Segments returns the path's segment list. The returned slice is the
// path's own storage and must not be modified directly.
func (p *Path) Segments() []*Segment { return p.segments }

// NumSegments returns the number of segments in the path.
func (p *Path) NumSegments() int { return len(p.segments) }

// Segment returns the segment at the given index,
// or nil if out of range.
func (p *Path) Segment(i int) *Segment {
	if i < 0 || i >= len(p.segments) {
		return nil
	}
	return p.segments[i]
}

// FirstSegment returns the first segment, or nil if the path is empty.
func (p *Path) FirstSegment() *Segment {
	if len(p.segments) == 0 {
		return nil
	}
	return p.segments[0]
}

// LastSegment returns the last segment, or nil if the path is empty.
func (p *Path) LastSegment() *Segment {
	if len(p.segments) == 0 {
		return nil
	}
	return p.segments[len(p.segments)-1]
}

// Closed returns whether the path is closed, with an implicit curve
// connecting the last segment back to the first.
func (p *Path) Closed() bool { return p.closed }

// Version returns the structural version counter, incremented on
// every segment splice, reversal, or change of the closed flag.
func (p *Path) Version() uint64 { return p.version }

// SetSegments replaces all segments of the path and sets the closed
// flag. Existing segments are detached from the path.
func (p *Path) SetSegments(segments []*Segment, closed bool) {
	p.RemoveSegments(0, len(p.segments))
	p.closed = closed
	p.curves = nil
	if len(segments) > 0 {
		p.add(segments, 0)
	} else {
		p.structureChanged()
	}
}

// countCurves returns the number of curves implied by the current
// segments and closed flag.
func (p *Path) countCurves() int {
	n := len(p.segments)
	if p.closed {
		return n
	}
	return max(n-1, 0)
}

// Curves returns the path's curve list, building it on first use.
func (p *Path) Curves() []*Curve {
	if p.curves == nil {
		n := p.countCurves()
		p.curves = make([]*Curve, n)
		for i := range n {
			p.curves[i] = &Curve{
				path:     p,
				segment1: p.segments[i],
				segment2: p.segments[(i+1)%len(p.segments)],
			}
		}
	}
	return p.curves
}

// NumCurves returns the number of curves in the path.
func (p *Path) NumCurves() int { return p.countCurves() }

// FirstCurve returns the first curve, or nil if the path has none.
func (p *Path) FirstCurve() *Curve {
	cs := p.Curves()
	if len(cs) == 0 {
		return nil
	}
	return cs[0]
}

// LastCurve returns the last curve, or nil if the path has none.
func (p *Path) LastCurve() *Curve {
	cs := p.Curves()
	if len(cs) == 0 {
		return nil
	}
	return cs[len(cs)-1]
}

// segmentsChanged invalidates derived geometric state after segment
// geometry changed. Called by segment setters as well as structural
// operations.
func (p *Path) segmentsChanged() {
	p.length = nil
	p.area = nil
	p.Changed(Geometry)
}

// structureChanged records a structural change (splice, reversal,
// closed flag) on top of the geometric invalidation.
func (p *Path) structureChanged() {
	p.version++
	p.segmentsChanged()
}

// add splices segs into the segment list at index, cloning any
// segment already owned by a path, and incrementally updates the
// curve list if it has been built. It returns the segments actually
// inserted (clones substituted where needed).
func (p *Path) add(segs []*Segment, index int) []*Segment {
	amount := len(segs)
	for i, seg := range segs {
		if seg.path != nil {
			seg = seg.Clone()
			segs[i] = seg
		}
		seg.path = p
		seg.index = index + i
	}
	if index == len(p.segments) {
		p.segments = append(p.segments, segs...)
	} else {
		p.segments = slices.Insert(p.segments, index, segs...)
		for i := index + amount; i < len(p.segments); i++ {
			p.segments[i].index = i
		}
	}
	if p.curves != nil && amount > 0 {
		total := p.countCurves()
		// appending to the end extends the previous last curve
		// instead of inserting before it
		start := index
		if index > 0 && index+amount-1 == total {
			start = index - 1
		}
		to := min(start+amount, total)
		for i := start; i < to; i++ {
			p.curves = slices.Insert(p.curves, i, &Curve{path: p})
		}
		p.adjustCurves(start, to)
	}
	p.structureChanged()
	return segs
}

// adjustCurves relinks the curves in [start, end) to their segments
// after a splice, and fixes up the curves bordering the range: the
// one leading into it (wrapping around for closed paths) and the one
// following it.
func (p *Path) adjustCurves(start, end int) {
	segments, curves := p.segments, p.curves
	if len(segments) == 0 {
		return
	}
	seg := func(i int) *Segment {
		if i < len(segments) {
			return segments[i]
		}
		return segments[0]
	}
	for i := start; i < end; i++ {
		c := curves[i]
		c.path = p
		c.segment1 = segments[i]
		c.segment2 = seg(i + 1)
	}
	prev := start - 1
	if p.closed && start == 0 {
		prev = len(segments) - 1
	}
	if prev >= 0 && prev < len(curves) {
		curves[prev].segment2 = seg(start)
	}
	if end < len(curves) && end < len(segments) {
		curves[end].segment1 = segments[end]
	}
}

// Add appends a segment to the path, returning the segment actually
// added (a clone if seg already belonged to a path).
func (p *Path) Add(seg *Segment) *Segment {
	return p.add([]*Segment{seg}, len(p.segments))[0]
}

// AddSegments appends segments to the path.
func (p *Path) AddSegments(segs ...*Segment) []*Segment {
	return p.add(segs, len(p.segments))
}

// Insert inserts a segment at the given index, returning the segment
// actually inserted.
func (p *Path) Insert(index int, seg *Segment) *Segment {
	return p.add([]*Segment{seg}, index)[0]
}

// InsertSegments inserts segments at the given index.
func (p *Path) InsertSegments(index int, segs ...*Segment) []*Segment {
	return p.add(segs, index)
}

// RemoveSegment removes and returns the segment at the given index,
// or nil if out of range.
func (p *Path) RemoveSegment(index int) *Segment {
	removed := p.RemoveSegments(index, index+1)
	if len(removed) == 0 {
		return nil
	}
	return removed[0]
}

// RemoveSegments removes the segments in [from, to), detaching them
// from the path, and returns them. The curve list is spliced to
// match: the curve preceding the removed range is relinked to the
// first surviving segment after it (wrapping around for closed
// paths).
func (p *Path) RemoveSegments(from, to int) []*Segment {
	from = max(from, 0)
	to = min(to, len(p.segments))
	if to <= from {
		return nil
	}
	count := len(p.segments)
	removed := slices.Clone(p.segments[from:to])
	p.segments = slices.Delete(p.segments, from, to)
	amount := len(removed)
	for _, seg := range removed {
		seg.Selected = false
		seg.path = nil
	}
	for i := from; i < len(p.segments); i++ {
		p.segments[i].index = i
	}
	if p.curves != nil {
		index := from
		if from > 0 && to == count {
			// removing through the end of an open path: the curve
			// leading into the range goes with it
			if !p.closed {
				index = from - 1
			}
		}
		cut := p.curves[index:min(index+amount, len(p.curves))]
		for _, c := range cut {
			c.path = nil
			c.segment1 = nil
			c.segment2 = nil
		}
		p.curves = slices.Delete(p.curves, index, min(index+amount, len(p.curves)))
		p.adjustCurves(index, index)
	}
	p.structureChanged()
	return removed
}

// Reverse reverses the direction of the path, swapping the in and out
// handles of every segment. The curve list is rebuilt on next use.
func (p *Path) Reverse() {
	slices.Reverse(p.segments)
	for i, seg := range p.segments {
		seg.handleIn, seg.handleOut = seg.handleOut, seg.handleIn
		seg.index = i
	}
	p.curves = nil
	p.structureChanged()
}

// SetClosed sets whether the path is closed. Closing adds the
// wrap-around curve from the last segment to the first; opening
// removes it.
func (p *Path) SetClosed(closed bool) {
	if p.closed == closed {
		return
	}
	p.closed = closed
	if p.curves != nil {
		n := p.countCurves()
		if closed && n > 0 {
			p.curves = append(p.curves, &Curve{
				path:     p,
				segment1: p.segments[len(p.segments)-1],
				segment2: p.segments[0],
			})
		} else if len(p.curves) > n {
			cut := p.curves[n:]
			for _, c := range cut {
				c.path = nil
				c.segment1 = nil
				c.segment2 = nil
			}
			p.curves = p.curves[:n]
		}
	}
	p.structureChanged()
}

////////  derived queries

// Length returns the total arc length of the path. The result is
// cached until the geometry changes.
func (p *Path) Length() float32 {
	if p.length == nil {
		var l float32
		for _, c := range p.Curves() {
			l += c.Length()
		}
		p.length = &l
	}
	return *p.length
}

// Area returns the signed area enclosed by the path, positive for
// clockwise winding in a y-down coordinate system. Open paths are
// treated as if closed by a straight line. The result is cached until
// the geometry changes.
func (p *Path) Area() float32 {
	if p.area == nil {
		var a float32
		for _, c := range p.Curves() {
			a += c.Area()
		}
		if !p.closed && len(p.segments) > 1 {
			lp := p.segments[len(p.segments)-1].point
			fp := p.segments[0].point
			a += cubicArea(lp, lp, fp, fp)
		}
		p.area = &a
	}
	return *p.area
}

// IsClockwise returns whether the path winds clockwise in a y-down
// coordinate system.
func (p *Path) IsClockwise() bool {
	return p.Area() >= 0
}

func (p *Path) LocalBounds(m *math32.Matrix2, q boundsQuery) math32.Box2 {
	b := math32.B2Empty()
	if len(p.segments) == 0 {
		return b
	}
	xf := func(pt math32.Vector2) math32.Vector2 {
		if m != nil {
			return m.MulVector2AsPoint(pt)
		}
		return pt
	}
	if q.Handle {
		// the control-point box contains the curves, so the segment
		// points and absolute handles are all we need
		for _, s := range p.segments {
			b.ExpandByPoint(xf(s.point))
			b.ExpandByPoint(xf(s.AbsoluteHandleIn()))
			b.ExpandByPoint(xf(s.AbsoluteHandleOut()))
		}
	} else {
		curves := p.Curves()
		if len(curves) == 0 {
			b.ExpandByPoint(xf(p.segments[0].point))
		}
		for _, c := range curves {
			p0, p1, p2, p3 := c.Points()
			b.ExpandByBox(cubicBounds(xf(p0), xf(p1), xf(p2), xf(p3)))
		}
	}
	if q.Stroke && p.StrokeWidth > 0 {
		sw := 0.5 * p.StrokeWidth
		if m != nil {
			scx, scy := m.ExtractScale()
			sw *= max(math32.Abs(scx), math32.Abs(scy))
		}
		b.ExpandByScalar(sw)
	}
	return b
}

func (p *Path) TransformContent(m math32.Matrix2, recursively, setApply bool) bool {
	for _, seg := range p.segments {
		seg.transform(m)
	}
	p.length = nil
	p.area = nil
	return true
}

func (p *Path) IsEmpty() bool {
	return len(p.segments) == 0
}

func (p *Path) Equals(other Item) bool {
	op, ok := other.(*Path)
	if !ok || !p.ItemBase.Equals(other) {
		return false
	}
	if p.closed != op.closed || len(p.segments) != len(op.segments) {
		return false
	}
	for i, seg := range p.segments {
		if !seg.Equals(op.segments[i]) {
			return false
		}
	}
	return true
}

func (p *Path) CopyFieldsFrom(from Item) {
	fp, ok := from.(*Path)
	if !ok {
		return
	}
	p.ItemBase.CopyFieldsFrom(from)
	p.closed = fp.closed
	p.segments = make([]*Segment, len(fp.segments))
	for i, seg := range fp.segments {
		ns := seg.Clone()
		ns.path = p
		ns.index = i
		p.segments[i] = ns
	}
	p.curves = nil
	p.length = nil
	p.area = nil
}

////////  builder operations

// currentSegment returns the segment holding the current point for
// builder operations.
func (p *Path) currentSegment() (*Segment, error) {
	if len(p.segments) == 0 {
		return nil, ErrNoCurrentPoint
	}
	return p.segments[len(p.segments)-1], nil
}

// MoveTo starts the path at the given point. A lone first segment is
// replaced; once the path has curves, MoveTo does nothing, as a path
// holds a single contiguous run of segments.
func (p *Path) MoveTo(pt math32.Vector2) {
	if len(p.segments) == 1 {
		p.RemoveSegment(0)
	}
	if len(p.segments) == 0 {
		p.Add(NewSegment(pt))
	}
}

// LineTo adds a straight line to the given point. On an empty path it
// starts the path there instead.
func (p *Path) LineTo(pt math32.Vector2) {
	p.Add(NewSegment(pt))
}

// CubicTo adds a cubic bézier curve to the given point, with absolute
// control points handle1 and handle2. It returns [ErrNoCurrentPoint]
// if the path is empty.
func (p *Path) CubicTo(handle1, handle2, to math32.Vector2) error {
	cur, err := p.currentSegment()
	if err != nil {
		return err
	}
	cur.SetHandleOut(handle1.Sub(cur.point))
	p.Add(NewSegmentFull(to, handle2.Sub(to), math32.Vector2{}))
	return nil
}

// QuadTo adds a quadratic bézier curve to the given point with the
// absolute control point handle, elevated to the equivalent cubic.
// It returns [ErrNoCurrentPoint] if the path is empty.
func (p *Path) QuadTo(handle, to math32.Vector2) error {
	cur, err := p.currentSegment()
	if err != nil {
		return err
	}
	// the cubic control points sit 2/3 of the way toward the
	// quadratic control point
	h1 := cur.point.Lerp(handle, 2.0/3.0)
	h2 := to.Lerp(handle, 2.0/3.0)
	return p.CubicTo(h1, h2, to)
}

// ClosePath closes the path. If the last segment coincides with the
// first, the two are merged so that the closing curve reuses the
// first segment.
func (p *Path) ClosePath() {
	first := p.FirstSegment()
	last := p.LastSegment()
	if first != nil && first != last &&
		first.point.DistanceTo(last.point) <= p.ctx.Tolerance {
		first.SetHandleIn(last.handleIn)
		p.RemoveSegment(last.index)
	}
	p.SetClosed(true)
}

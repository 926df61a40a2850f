// Copyright (c) 2025, Vecscene Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"

	"github.com/vecscene/core/math32"
)

// Segment is one anchor point of a [Path], together with two tangent
// handles stored relative to the anchor: HandleIn shapes the incoming
// curve, HandleOut the outgoing one. A segment belongs to at most one
// path at a time; mutation goes through the setter methods so the
// owning path is notified.
type Segment struct {
	point     math32.Vector2
	handleIn  math32.Vector2
	handleOut math32.Vector2

	// Selected is bookkeeping for selection UIs layered on top of the
	// kernel; it has no geometric meaning here.
	Selected bool

	// path is the owning path, nil while detached.
	path *Path

	// index is the segment's position in the owning path's segment
	// list, only meaningful while path is non-nil.
	index int
}

// NewSegment returns a new detached segment with the given anchor
// point and zero handles.
func NewSegment(point math32.Vector2) *Segment {
	return &Segment{point: point}
}

// NewSegmentFull returns a new detached segment with the given anchor
// point and relative in and out handles.
func NewSegmentFull(point, handleIn, handleOut math32.Vector2) *Segment {
	return &Segment{point: point, handleIn: handleIn, handleOut: handleOut}
}

func (s *Segment) String() string {
	return fmt.Sprintf("segment(%v in:%v out:%v)", s.point, s.handleIn, s.handleOut)
}

// Path returns the path this segment belongs to, or nil if detached.
func (s *Segment) Path() *Path { return s.path }

// Index returns the segment's position in its owning path, or -1 if
// detached.
func (s *Segment) Index() int {
	if s.path == nil {
		return -1
	}
	return s.index
}

// Point returns the anchor point.
func (s *Segment) Point() math32.Vector2 { return s.point }

// HandleIn returns the incoming handle, relative to the anchor.
func (s *Segment) HandleIn() math32.Vector2 { return s.handleIn }

// HandleOut returns the outgoing handle, relative to the anchor.
func (s *Segment) HandleOut() math32.Vector2 { return s.handleOut }

// AbsoluteHandleIn returns the incoming handle position in path
// coordinates.
func (s *Segment) AbsoluteHandleIn() math32.Vector2 {
	return s.point.Add(s.handleIn)
}

// AbsoluteHandleOut returns the outgoing handle position in path
// coordinates.
func (s *Segment) AbsoluteHandleOut() math32.Vector2 {
	return s.point.Add(s.handleOut)
}

// SetPoint sets the anchor point, notifying the owning path.
func (s *Segment) SetPoint(p math32.Vector2) {
	s.point = p
	s.changed()
}

// SetHandleIn sets the incoming handle relative to the anchor,
// notifying the owning path.
func (s *Segment) SetHandleIn(h math32.Vector2) {
	s.handleIn = h
	s.changed()
}

// SetHandleOut sets the outgoing handle relative to the anchor,
// notifying the owning path.
func (s *Segment) SetHandleOut(h math32.Vector2) {
	s.handleOut = h
	s.changed()
}

// ClearHandles zeroes both handles, making the adjoining curves
// straight, and notifies the owning path.
func (s *Segment) ClearHandles() {
	s.handleIn.SetZero()
	s.handleOut.SetZero()
	s.changed()
}

// HasHandles returns whether either handle is non-zero.
func (s *Segment) HasHandles() bool {
	return !s.handleIn.IsZero() || !s.handleOut.IsZero()
}

// IsSmooth returns whether the two handles are collinear and on
// opposite sides of the anchor, making the curve continuous through
// this segment.
func (s *Segment) IsSmooth() bool {
	return s.HasHandles() && s.handleIn.IsCollinear(s.handleOut) &&
		s.handleIn.Dot(s.handleOut) < 0
}

// Reversed returns a copy of the segment with the handles swapped.
func (s *Segment) Reversed() *Segment {
	return NewSegmentFull(s.point, s.handleOut, s.handleIn)
}

// Clone returns a detached copy of this segment.
func (s *Segment) Clone() *Segment {
	return &Segment{point: s.point, handleIn: s.handleIn, handleOut: s.handleOut, Selected: s.Selected}
}

// Equals returns whether the other segment has exactly equal anchor
// and handles.
func (s *Segment) Equals(other *Segment) bool {
	return other != nil && s.point == other.point &&
		s.handleIn == other.handleIn && s.handleOut == other.handleOut
}

// Transform transforms the segment in place: the anchor as a point and
// the handles as vectors.
func (s *Segment) Transform(m math32.Matrix2) {
	s.transform(m)
	s.changed()
}

// transform transforms the segment without notification, for bulk
// operations that notify once at the end.
func (s *Segment) transform(m math32.Matrix2) {
	s.point = m.MulVector2AsPoint(s.point)
	s.handleIn = m.MulVector2AsVector(s.handleIn)
	s.handleOut = m.MulVector2AsVector(s.handleOut)
}

// changed notifies the owning path of a geometry change.
func (s *Segment) changed() {
	if s.path != nil {
		s.path.segmentsChanged()
	}
}

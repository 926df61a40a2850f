// Copyright (c) 2025, Vecscene Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"

	"github.com/vecscene/core/math32"
)

// Curve is a non-owning view over two adjacent segments of a [Path],
// representing the cubic bézier between them. Curves are derived
// state: the path regenerates or relinks them whenever segments are
// spliced, and they are never persisted independently.
type Curve struct {
	path     *Path
	segment1 *Segment
	segment2 *Segment
}

func (c *Curve) String() string {
	p0, p1, p2, p3 := c.Points()
	return fmt.Sprintf("curve(%v %v %v %v)", p0, p1, p2, p3)
}

// Path returns the path this curve belongs to, or nil if the path was
// destroyed or the curve range removed.
func (c *Curve) Path() *Path { return c.path }

// Segment1 returns the segment at the start of the curve.
func (c *Curve) Segment1() *Segment { return c.segment1 }

// Segment2 returns the segment at the end of the curve.
func (c *Curve) Segment2() *Segment { return c.segment2 }

// Index returns the curve's position in the path's curve list, which
// is the index of its first segment.
func (c *Curve) Index() int {
	if c.segment1 == nil {
		return -1
	}
	return c.segment1.Index()
}

// Points returns the four cubic bézier control points of this curve
// in path coordinates: the first anchor, the two absolute handle
// positions, and the second anchor.
func (c *Curve) Points() (p0, p1, p2, p3 math32.Vector2) {
	p0 = c.segment1.point
	p3 = c.segment2.point
	p1 = p0.Add(c.segment1.handleOut)
	p2 = p3.Add(c.segment2.handleIn)
	return
}

// IsStraight returns whether the curve is a straight line: both
// adjoining handles are zero, or they lie on the line between the two
// anchors without overshooting it.
func (c *Curve) IsStraight() bool {
	h1, h2 := c.segment1.handleOut, c.segment2.handleIn
	if h1.IsZero() && h2.IsZero() {
		return true
	}
	l := c.segment2.point.Sub(c.segment1.point)
	if l.IsZero() {
		return false
	}
	if h1.IsCollinear(l) && h2.IsCollinear(l) {
		// check the handles stay within the line span
		ll := l.LengthSquared()
		d1 := h1.Dot(l) / ll
		d2 := h2.Dot(l) / ll
		return d1 >= 0 && d1 <= 1 && d2 <= 0 && d2 >= -1
	}
	return false
}

// HasHandles returns whether either adjoining handle is non-zero.
func (c *Curve) HasHandles() bool {
	return !c.segment1.handleOut.IsZero() || !c.segment2.handleIn.IsZero()
}

// PointAt returns the point on the curve at parameter t in [0, 1].
func (c *Curve) PointAt(t float32) math32.Vector2 {
	p0, p1, p2, p3 := c.Points()
	return cubicPointAt(p0, p1, p2, p3, t)
}

// TangentAt returns the (unnormalized) tangent of the curve at
// parameter t in [0, 1].
func (c *Curve) TangentAt(t float32) math32.Vector2 {
	p0, p1, p2, p3 := c.Points()
	return cubicDerivAt(p0, p1, p2, p3, t)
}

// Length returns the arc length of the curve.
func (c *Curve) Length() float32 {
	p0, p1, p2, p3 := c.Points()
	if c.IsStraight() {
		return p3.Sub(p0).Length()
	}
	return cubicLength(p0, p1, p2, p3)
}

// Area returns the signed area contribution of the curve to the
// shoelace integral over its path. Summed over the curves of a closed
// path, it gives the enclosed area, positive for clockwise winding in
// a y-down coordinate system.
func (c *Curve) Area() float32 {
	p0, p1, p2, p3 := c.Points()
	return cubicArea(p0, p1, p2, p3)
}

// Bounds returns the exact axis-aligned bounding box of the curve,
// found by evaluating the curve at the extrema of each coordinate.
func (c *Curve) Bounds() math32.Box2 {
	p0, p1, p2, p3 := c.Points()
	return cubicBounds(p0, p1, p2, p3)
}

////////  cubic bézier numerics

func cubicPointAt(p0, p1, p2, p3 math32.Vector2, t float32) math32.Vector2 {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t
	return p0.MulScalar(b0).Add(p1.MulScalar(b1)).Add(p2.MulScalar(b2)).Add(p3.MulScalar(b3))
}

func cubicDerivAt(p0, p1, p2, p3 math32.Vector2, t float32) math32.Vector2 {
	u := 1 - t
	d0 := p1.Sub(p0).MulScalar(3 * u * u)
	d1 := p2.Sub(p1).MulScalar(6 * u * t)
	d2 := p3.Sub(p2).MulScalar(3 * t * t)
	return d0.Add(d1).Add(d2)
}

// gaussLegendre16 holds the abscissae and weights of 16-point
// Gauss-Legendre quadrature on [-1, 1], symmetric about 0.
var gaussLegendre16 = [8][2]float32{
	{0.0950125098376374, 0.1894506104550685},
	{0.2816035507792589, 0.1826034150449236},
	{0.4580167776572274, 0.1691565193950025},
	{0.6178762444026438, 0.1495959888165767},
	{0.7554044083550030, 0.1246289712555339},
	{0.8656312023878318, 0.0951585116824928},
	{0.9445750230732326, 0.0622535239386479},
	{0.9894009349916499, 0.0271524594117541},
}

// cubicLength integrates the length of the derivative using 16-point
// Gauss-Legendre quadrature, which is exact to well below float32
// resolution for non-degenerate cubics.
func cubicLength(p0, p1, p2, p3 math32.Vector2) float32 {
	var sum float32
	for _, aw := range gaussLegendre16 {
		x, w := aw[0], aw[1]
		sum += w * cubicDerivAt(p0, p1, p2, p3, 0.5*(1+x)).Length()
		sum += w * cubicDerivAt(p0, p1, p2, p3, 0.5*(1-x)).Length()
	}
	return 0.5 * sum
}

// cubicArea is the closed-form line integral of a cubic bézier for
// Green's-theorem area computation.
func cubicArea(p0, p1, p2, p3 math32.Vector2) float32 {
	v := p0.X*(6*p1.Y+3*p2.Y+p3.Y) +
		3*(p1.X*(-2*p0.Y+p2.Y+p3.Y)-p2.X*(p0.Y+p1.Y-2*p3.Y)) -
		p3.X*(p0.Y+3*p1.Y+6*p2.Y)
	return v * (1.0 / 20.0)
}

// cubicBounds computes the exact bounds of a cubic by solving for the
// roots of the derivative in each coordinate and evaluating the curve
// there and at the endpoints.
func cubicBounds(p0, p1, p2, p3 math32.Vector2) math32.Box2 {
	b := math32.B2Empty()
	b.ExpandByPoint(p0)
	b.ExpandByPoint(p3)
	add := func(t float32) {
		if t > 0 && t < 1 {
			b.ExpandByPoint(cubicPointAt(p0, p1, p2, p3, t))
		}
	}
	for _, t := range cubicExtrema(p0.X, p1.X, p2.X, p3.X) {
		add(t)
	}
	for _, t := range cubicExtrema(p0.Y, p1.Y, p2.Y, p3.Y) {
		add(t)
	}
	return b
}

// cubicExtrema returns the parameter values in (0, 1) at which one
// coordinate of a cubic bézier has zero derivative, given the four
// control values of that coordinate.
func cubicExtrema(v0, v1, v2, v3 float32) []float32 {
	// derivative is a quadratic in t with these coefficients
	a := 3 * (-v0 + 3*v1 - 3*v2 + v3)
	b := 6 * (v0 - 2*v1 + v2)
	c := 3 * (v1 - v0)
	return solveQuadratic(a, b, c)
}

// solveQuadratic returns the real roots of a*t^2 + b*t + c = 0,
// degrading to the linear case when a vanishes.
func solveQuadratic(a, b, c float32) []float32 {
	if math32.Abs(a) < math32.Epsilon {
		if math32.Abs(b) < math32.Epsilon {
			return nil
		}
		return []float32{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	if disc == 0 {
		return []float32{-b / (2 * a)}
	}
	// numerically stable form avoiding cancellation
	sq := math32.Sqrt(disc)
	var q float32
	if b >= 0 {
		q = -0.5 * (b + sq)
	} else {
		q = -0.5 * (b - sq)
	}
	return []float32{q / a, c / q}
}

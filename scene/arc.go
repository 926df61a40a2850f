// Copyright (c) 2025, Vecscene Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"github.com/vecscene/core/math32"
)

// ArcTo adds an elliptical arc from the current point to the given
// point, using the SVG endpoint parameterization: radii rx, ry, the
// ellipse x-axis rotation in degrees, and the large-arc and sweep
// flags. The arc is converted to center parameterization and
// approximated by one cubic bézier per quarter sweep. Degenerate
// radii degrade to a straight line; radii too small to span the
// endpoints are scaled up per the SVG arc correction rules. It
// returns [ErrNoCurrentPoint] if the path is empty.
func (p *Path) ArcTo(rx, ry, rotation float32, largeArc, sweep bool, to math32.Vector2) error {
	cur, err := p.currentSegment()
	if err != nil {
		return err
	}
	from := cur.point
	if from.Equals(to) {
		return nil
	}
	rx, ry = math32.Abs(rx), math32.Abs(ry)
	if rx < math32.Epsilon || ry < math32.Epsilon {
		p.LineTo(to)
		return nil
	}
	rotX := math32.DegToRad(rotation)
	center := findEllipseCenter(&rx, &ry, rotX, from, to, sweep, largeArc)
	p.arcSegments(center, from, to, rx, ry, rotX, largeArc, sweep)
	return nil
}

// findEllipseCenter locates the center of the ellipse through the two
// endpoints with the given radii and rotation, picking the one of the
// two candidates matching the sweep and large-arc flags. If no such
// ellipse exists, the radii are scaled up to the minimum that fits,
// which makes the two candidates coincide.
func findEllipseCenter(rx, ry *float32, rotX float32, from, to math32.Vector2, sweep, largeArc bool) math32.Vector2 {
	cos, sin := math32.Cos(rotX), math32.Sin(rotX)

	// move the origin to the start point, rotate the ellipse x-axis
	// onto the coordinate x-axis, and scale x so that rx == ry:
	// the ellipse becomes a circle of radius ry
	n := to.Sub(from)
	n = math32.Vec2(n.X*cos+n.Y*sin, -n.X*sin+n.Y*cos)
	n.X *= *ry / *rx

	mid := n.MulScalar(0.5)
	midlenSq := mid.LengthSquared()

	var hr float32
	if *ry**ry < midlenSq {
		// the requested ellipse cannot span the endpoints; scale the
		// radii up to the minimum that can
		nry := math32.Sqrt(midlenSq)
		if *rx == *ry {
			*rx = nry // prevents roundoff
		} else {
			*rx = *rx * nry / *ry
		}
		*ry = nry
	} else {
		hr = math32.Sqrt(*ry**ry-midlenSq) / math32.Sqrt(midlenSq)
	}
	var c math32.Vector2
	if sweep == largeArc {
		c = math32.Vec2(mid.X+mid.Y*hr, mid.Y-mid.X*hr)
	} else {
		c = math32.Vec2(mid.X-mid.Y*hr, mid.Y+mid.X*hr)
	}

	// undo the scale, rotation, and translation
	c.X *= *rx / *ry
	return math32.Vec2(c.X*cos-c.Y*sin+from.X, c.X*sin+c.Y*cos+from.Y)
}

// ellipsePoint returns the point on the ellipse at parameter eta.
func ellipsePoint(c math32.Vector2, rx, ry, sinTheta, cosTheta, eta float32) math32.Vector2 {
	aCosEta := rx * math32.Cos(eta)
	bSinEta := ry * math32.Sin(eta)
	return math32.Vec2(
		c.X+aCosEta*cosTheta-bSinEta*sinTheta,
		c.Y+aCosEta*sinTheta+bSinEta*cosTheta)
}

// ellipseTangent returns the derivative of the ellipse with respect
// to the parameter at eta.
func ellipseTangent(rx, ry, sinTheta, cosTheta, eta float32) math32.Vector2 {
	bCosEta := ry * math32.Cos(eta)
	aSinEta := rx * math32.Sin(eta)
	return math32.Vec2(
		-aSinEta*cosTheta-bCosEta*sinTheta,
		-aSinEta*sinTheta+bCosEta*cosTheta)
}

// arcSegments appends the cubic bézier approximation of the arc
// centered at c from the current point to the given end point, using
// the method of L. Maisonobe, "Drawing an elliptical arc using
// polylines, quadratic or cubic Bezier curves", 2003.
func (p *Path) arcSegments(c, from, to math32.Vector2, rx, ry, rotX float32, largeArc, sweep bool) {
	startAngle := math32.Atan2(from.Y-c.Y, from.X-c.X) - rotX
	endAngle := math32.Atan2(to.Y-c.Y, to.X-c.X) - rotX
	arcBig := math32.Abs(endAngle-startAngle) > math32.Pi

	etaStart := math32.Atan2(math32.Sin(startAngle)/ry, math32.Cos(startAngle)/rx)
	etaEnd := math32.Atan2(math32.Sin(endAngle)/ry, math32.Cos(endAngle)/rx)
	deltaEta := etaEnd - etaStart
	if arcBig != largeArc {
		if deltaEta < 0 {
			deltaEta += 2 * math32.Pi
		} else {
			deltaEta -= 2 * math32.Pi
		}
	}
	// needed when the center is at the midpoint of the endpoints
	if deltaEta < 0 && sweep {
		deltaEta += 2 * math32.Pi
	} else if deltaEta >= 0 && !sweep {
		deltaEta -= 2 * math32.Pi
	}

	// one cubic per quarter sweep
	segs := int(math32.Ceil(math32.Abs(deltaEta) / (math32.Pi / 2)))
	if segs < 1 {
		segs = 1
	}
	dEta := deltaEta / float32(segs)
	tde := math32.Tan(dEta / 2)
	alpha := math32.Sin(dEta) * (math32.Sqrt(4+3*tde*tde) - 1) / 3

	sinTheta, cosTheta := math32.Sin(rotX), math32.Cos(rotX)
	last := from
	ld := ellipseTangent(rx, ry, sinTheta, cosTheta, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float32(i)
		var pt math32.Vector2
		if i == segs {
			pt = to // end point exact, no roundoff error
		} else {
			pt = ellipsePoint(c, rx, ry, sinTheta, cosTheta, eta)
		}
		d := ellipseTangent(rx, ry, sinTheta, cosTheta, eta)
		_ = p.CubicTo(last.Add(ld.MulScalar(alpha)), pt.Sub(d.MulScalar(alpha)), pt)
		last, ld = pt, d
	}
}

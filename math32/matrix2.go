// Copyright (c) 2025, Vecscene Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNotInvertible is returned by [Matrix2.Inverse] when the matrix
// determinant is too close to zero for a meaningful inverse.
var ErrNotInvertible = errors.New("math32.Matrix2: matrix is not invertible")

// Matrix2 is a 2x3 affine transform matrix, stored in the SVG order
// a, b, c, d, tx, ty:
//
//	x' = XX*x + XY*y + X0
//	y' = YX*x + YY*y + Y0
type Matrix2 struct {
	XX, YX, XY, YY, X0, Y0 float32
}

// Identity2 returns a new identity [Matrix2].
func Identity2() Matrix2 {
	return Matrix2{
		1, 0,
		0, 1,
		0, 0,
	}
}

// Translate2D returns a 2D matrix translating by the given offsets.
func Translate2D(x, y float32) Matrix2 {
	return Matrix2{
		1, 0,
		0, 1,
		x, y,
	}
}

// Scale2D returns a 2D matrix scaling by the given factors.
func Scale2D(x, y float32) Matrix2 {
	return Matrix2{
		x, 0,
		0, y,
		0, 0,
	}
}

// Rotate2D returns a 2D matrix rotating counterclockwise by the given
// angle in radians.
func Rotate2D(angle float32) Matrix2 {
	c := Cos(angle)
	s := Sin(angle)
	return Matrix2{
		c, s,
		-s, c,
		0, 0,
	}
}

// Shear2D returns a 2D matrix shearing by the given proportions.
func Shear2D(x, y float32) Matrix2 {
	return Matrix2{
		1, y,
		x, 1,
		0, 0,
	}
}

// Skew2D returns a 2D matrix skewing by the given angles in radians.
func Skew2D(x, y float32) Matrix2 {
	return Shear2D(Tan(x), Tan(y))
}

// IsIdentity returns whether this is exactly the identity matrix.
// Identity is a distinguished value, not an approximation, so the
// comparison is exact.
func (m Matrix2) IsIdentity() bool {
	return m == Identity2()
}

// Mul returns a*b, the composed transform that applies b first and
// then a.
func (a Matrix2) Mul(b Matrix2) Matrix2 {
	return Matrix2{
		XX: a.XX*b.XX + a.XY*b.YX,
		YX: a.YX*b.XX + a.YY*b.YX,
		XY: a.XX*b.XY + a.XY*b.YY,
		YY: a.YX*b.XY + a.YY*b.YY,
		X0: a.XX*b.X0 + a.XY*b.Y0 + a.X0,
		Y0: a.YX*b.X0 + a.YY*b.Y0 + a.Y0,
	}
}

// MulPre returns b*a, the composed transform that applies this matrix
// first and then b.
func (a Matrix2) MulPre(b Matrix2) Matrix2 {
	return b.Mul(a)
}

// SetMul appends the other matrix to this one in place: m = m * b,
// so that b is applied first when transforming points.
func (m *Matrix2) SetMul(b Matrix2) {
	*m = m.Mul(b)
}

// SetMulPre prepends the other matrix to this one in place: m = b * m,
// so that b is applied last when transforming points.
func (m *Matrix2) SetMulPre(b Matrix2) {
	*m = b.Mul(*m)
}

// Translate appends a translation by the given offsets.
func (m Matrix2) Translate(x, y float32) Matrix2 {
	return m.Mul(Translate2D(x, y))
}

// Scale appends a scaling by the given factors.
func (m Matrix2) Scale(x, y float32) Matrix2 {
	return m.Mul(Scale2D(x, y))
}

// Rotate appends a counterclockwise rotation by the given angle
// in radians.
func (m Matrix2) Rotate(angle float32) Matrix2 {
	return m.Mul(Rotate2D(angle))
}

// Shear appends a shearing by the given proportions.
func (m Matrix2) Shear(x, y float32) Matrix2 {
	return m.Mul(Shear2D(x, y))
}

// MulVector2AsVector multiplies the vector by the matrix, without
// applying translation, returning the transformed direction.
func (m Matrix2) MulVector2AsVector(v Vector2) Vector2 {
	return Vector2{
		X: m.XX*v.X + m.XY*v.Y,
		Y: m.YX*v.X + m.YY*v.Y,
	}
}

// MulVector2AsPoint multiplies the point by the matrix, including
// translation.
func (m Matrix2) MulVector2AsPoint(v Vector2) Vector2 {
	return Vector2{
		X: m.XX*v.X + m.XY*v.Y + m.X0,
		Y: m.YX*v.X + m.YY*v.Y + m.Y0,
	}
}

// Determinant returns the determinant of the linear part of
// this matrix.
func (m Matrix2) Determinant() float32 {
	return m.XX*m.YY - m.YX*m.XY
}

// IsInvertible returns whether the matrix has a meaningful inverse,
// i.e. its determinant is not within [Epsilon] of zero.
func (m Matrix2) IsInvertible() bool {
	return Abs(m.Determinant()) >= Epsilon
}

// Inverse returns the inverse of this matrix. It returns
// [ErrNotInvertible] (and the identity) when the determinant is within
// [Epsilon] of zero; degenerate transforms are a normal transient
// state, so callers must handle the error rather than assuming a
// valid result.
func (m Matrix2) Inverse() (Matrix2, error) {
	det := m.Determinant()
	if Abs(det) < Epsilon {
		return Identity2(), ErrNotInvertible
	}
	return Matrix2{
		XX: m.YY / det,
		YX: -m.YX / det,
		XY: -m.XY / det,
		YY: m.XX / det,
		X0: (m.XY*m.Y0 - m.YY*m.X0) / det,
		Y0: (m.YX*m.X0 - m.XX*m.Y0) / det,
	}, nil
}

// Shiftless returns this matrix with the translation components zeroed,
// for cases where only the linear behavior matters, such as scaling
// stroke widths.
func (m Matrix2) Shiftless() Matrix2 {
	m.X0 = 0
	m.Y0 = 0
	return m
}

// Translation returns the translation components as a vector.
func (m Matrix2) Translation() Vector2 {
	return Vector2{m.X0, m.Y0}
}

// ExtractRot extracts the rotation angle in radians from this matrix.
func (m Matrix2) ExtractRot() float32 {
	return Atan2(-m.XY, m.XX)
}

// ExtractScale extracts the x and y scale factors from this matrix,
// ignoring rotation and skew sign interactions; use
// [Matrix2.Decompose] for the full factorization.
func (m Matrix2) ExtractScale() (scx, scy float32) {
	scx = Vec2(m.XX, m.YX).Length()
	scy = Vec2(m.XY, m.YY).Length()
	if m.Determinant() < 0 {
		scx = -scx
	}
	return
}

// MulBox2 multiplies the four corners of the given bounding box by
// this matrix and returns the axis-aligned box spanning the
// transformed corners.
func (m Matrix2) MulBox2(b Box2) Box2 {
	if b.IsEmpty() {
		return b
	}
	nb := B2Empty()
	nb.ExpandByPoint(m.MulVector2AsPoint(Vec2(b.Min.X, b.Min.Y)))
	nb.ExpandByPoint(m.MulVector2AsPoint(Vec2(b.Min.X, b.Max.Y)))
	nb.ExpandByPoint(m.MulVector2AsPoint(Vec2(b.Max.X, b.Min.Y)))
	nb.ExpandByPoint(m.MulVector2AsPoint(Vec2(b.Max.X, b.Max.Y)))
	return nb
}

// Transforms is the decomposition of a [Matrix2] into translation,
// rotation, scaling, and skewing factors, in the order
// translate * rotate * scale * skew.
type Transforms struct {
	// Translation is the translation component.
	Translation Vector2

	// Rotation is the rotation angle in degrees.
	Rotation float32

	// Scaling is the x and y scale factors.
	Scaling Vector2

	// Skewing is the x and y skew angles in degrees.
	Skewing Vector2
}

// Decompose factors this matrix into translation, rotation, scaling,
// and skewing components. It returns ok=false when the matrix is
// degenerate (determinant within [Epsilon] of zero) and no meaningful
// factorization exists; callers must handle that case.
func (m Matrix2) Decompose() (Transforms, bool) {
	a, b, c, d := m.XX, m.YX, m.XY, m.YY
	det := a*d - b*c
	if Abs(det) < Epsilon {
		return Transforms{}, false
	}
	t := Transforms{Translation: m.Translation()}
	sign := func(v float32) float32 {
		if v > 0 {
			return 1
		}
		return -1
	}
	// det != 0 implies a and b are not both zero
	r := Sqrt(a*a + b*b)
	t.Rotation = RadToDeg(Acos(a/r) * sign(b))
	t.Scaling = Vec2(r, det/r)
	t.Skewing = Vec2(RadToDeg(Atan2(a*c+b*d, r*r)), 0)
	return t, true
}

// String returns the SVG transform attribute representation of this
// matrix, using the simplest equivalent form: "none" for identity,
// translate and/or scale where sufficient, and the full matrix
// otherwise.
func (m Matrix2) String() string {
	if m.IsIdentity() {
		return "none"
	}
	if m.YX == 0 && m.XY == 0 { // no rotation or skew
		var parts []string
		if m.X0 != 0 || m.Y0 != 0 {
			parts = append(parts, fmt.Sprintf("translate(%v,%v)", m.X0, m.Y0))
		}
		if m.XX != 1 || m.YY != 1 {
			parts = append(parts, fmt.Sprintf("scale(%v,%v)", m.XX, m.YY))
		}
		return strings.Join(parts, " ")
	}
	return fmt.Sprintf("matrix(%v,%v,%v,%v,%v,%v)", m.XX, m.YX, m.XY, m.YY, m.X0, m.Y0)
}

// SetString sets this matrix from the given SVG transform attribute
// string, which can contain a sequence of transform functions:
// matrix, translate, scale, rotate, skewX, skewY, or "none".
func (m *Matrix2) SetString(str string) error {
	*m = Identity2()
	str = strings.ToLower(strings.TrimSpace(str))
	if str == "none" || str == "" {
		return nil
	}
	// could have multiple transforms
	for {
		pidx := strings.IndexByte(str, '(')
		if pidx < 0 {
			err := fmt.Errorf("math32.Matrix2.SetString: no params for transform: %q", str)
			return err
		}
		cmd := strings.TrimSpace(str[:pidx])
		vals := str[pidx+1:]
		nxt := ""
		eidx := strings.IndexByte(vals, ')')
		if eidx > 0 {
			nxt = strings.TrimSpace(vals[eidx+1:])
			if strings.HasPrefix(nxt, ";") {
				nxt = strings.TrimSpace(strings.TrimPrefix(nxt, ";"))
			}
			vals = vals[:eidx]
		}
		pts, err := readPoints(vals)
		if err != nil {
			return err
		}
		switch cmd {
		case "matrix":
			if err := pointsCheckN(pts, 6, cmd); err != nil {
				return err
			}
			m.SetMul(Matrix2{pts[0], pts[1], pts[2], pts[3], pts[4], pts[5]})
		case "translate":
			if len(pts) == 1 {
				pts = append(pts, 0)
			}
			if err := pointsCheckN(pts, 2, cmd); err != nil {
				return err
			}
			m.SetMul(Translate2D(pts[0], pts[1]))
		case "scale":
			switch len(pts) {
			case 1:
				m.SetMul(Scale2D(pts[0], pts[0]))
			case 2:
				m.SetMul(Scale2D(pts[0], pts[1]))
			default:
				return fmt.Errorf("math32.Matrix2.SetString: scale requires 1 or 2 params, got %d", len(pts))
			}
		case "rotate":
			switch len(pts) {
			case 1:
				m.SetMul(Rotate2D(DegToRad(pts[0])))
			case 3: // rotation about a point
				m.SetMul(Translate2D(pts[1], pts[2]).Rotate(DegToRad(pts[0])).Translate(-pts[1], -pts[2]))
			default:
				return fmt.Errorf("math32.Matrix2.SetString: rotate requires 1 or 3 params, got %d", len(pts))
			}
		case "skewx":
			if err := pointsCheckN(pts, 1, cmd); err != nil {
				return err
			}
			m.SetMul(Skew2D(DegToRad(pts[0]), 0))
		case "skewy":
			if err := pointsCheckN(pts, 1, cmd); err != nil {
				return err
			}
			m.SetMul(Skew2D(0, DegToRad(pts[0])))
		default:
			return fmt.Errorf("math32.Matrix2.SetString: unknown transform function: %q", cmd)
		}
		if nxt == "" {
			break
		}
		if !strings.Contains(nxt, "(") {
			break
		}
		str = nxt
	}
	return nil
}

// readPoints reads a comma- or space-separated list of float values.
func readPoints(pstr string) ([]float32, error) {
	fields := strings.FieldsFunc(pstr, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	pts := make([]float32, 0, len(fields))
	for _, fld := range fields {
		p, err := strconv.ParseFloat(fld, 32)
		if err != nil {
			return nil, fmt.Errorf("math32.Matrix2.SetString: %w", err)
		}
		pts = append(pts, float32(p))
	}
	return pts, nil
}

// pointsCheckN checks the number of points read against the number
// needed by the given command.
func pointsCheckN(pts []float32, n int, cmd string) error {
	if len(pts) != n {
		return fmt.Errorf("math32.Matrix2.SetString: %s requires %d params, got %d", cmd, n, len(pts))
	}
	return nil
}

// Copyright (c) 2025, Vecscene Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"fmt"
	"image"

	"golang.org/x/image/math/fixed"
)

// Vector2 is a 2D vector or point with X and Y components. It is a
// plain value type: methods return new values and callers that want
// in-place mutation use the Set* variants.
type Vector2 struct {
	X float32
	Y float32
}

// Vec2 returns a new [Vector2] with the given x and y components.
func Vec2(x, y float32) Vector2 {
	return Vector2{x, y}
}

// Vector2Scalar returns a new [Vector2] with all components set to the
// given scalar value.
func Vector2Scalar(scalar float32) Vector2 {
	return Vector2{scalar, scalar}
}

// Vector2FromPoint returns a new [Vector2] from the given [image.Point].
func Vector2FromPoint(pt image.Point) Vector2 {
	return Vector2{float32(pt.X), float32(pt.Y)}
}

// Vector2FromFixed returns a new [Vector2] from the given
// [fixed.Point26_6].
func Vector2FromFixed(pt fixed.Point26_6) Vector2 {
	const scale = 1 / 64.0
	return Vector2{scale * float32(pt.X), scale * float32(pt.Y)}
}

func (v Vector2) String() string {
	return fmt.Sprintf("(%v, %v)", v.X, v.Y)
}

// Set sets this vector's X and Y components.
func (v *Vector2) Set(x, y float32) {
	v.X = x
	v.Y = y
}

// SetScalar sets all components of this vector to the given scalar.
func (v *Vector2) SetScalar(scalar float32) {
	v.X = scalar
	v.Y = scalar
}

// SetZero sets all components of this vector to zero.
func (v *Vector2) SetZero() {
	v.SetScalar(0)
}

// ToPoint returns this vector as an [image.Point], truncating
// the components.
func (v Vector2) ToPoint() image.Point {
	return image.Point{int(v.X), int(v.Y)}
}

// ToPointFloor returns this vector as an [image.Point], flooring
// the components.
func (v Vector2) ToPointFloor() image.Point {
	return image.Point{int(Floor(v.X)), int(Floor(v.Y))}
}

// ToPointCeil returns this vector as an [image.Point], ceiling
// the components.
func (v Vector2) ToPointCeil() image.Point {
	return image.Point{int(Ceil(v.X)), int(Ceil(v.Y))}
}

// ToFixed returns this vector as a [fixed.Point26_6].
func (v Vector2) ToFixed() fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(v.X * 64), Y: fixed.Int26_6(v.Y * 64)}
}

// SetFixed sets this vector from the given [fixed.Point26_6].
func (v *Vector2) SetFixed(pt fixed.Point26_6) {
	*v = Vector2FromFixed(pt)
}

// Add returns the sum of this vector and the other.
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{v.X + other.X, v.Y + other.Y}
}

// AddScalar returns the vector with the scalar added to each component.
func (v Vector2) AddScalar(scalar float32) Vector2 {
	return Vector2{v.X + scalar, v.Y + scalar}
}

// SetAdd adds the other vector to this one in place.
func (v *Vector2) SetAdd(other Vector2) {
	v.X += other.X
	v.Y += other.Y
}

// SetAddScalar adds the scalar to each component in place.
func (v *Vector2) SetAddScalar(scalar float32) {
	v.X += scalar
	v.Y += scalar
}

// Sub returns the difference of this vector and the other.
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{v.X - other.X, v.Y - other.Y}
}

// SubScalar returns the vector with the scalar subtracted from each
// component.
func (v Vector2) SubScalar(scalar float32) Vector2 {
	return Vector2{v.X - scalar, v.Y - scalar}
}

// SetSub subtracts the other vector from this one in place.
func (v *Vector2) SetSub(other Vector2) {
	v.X -= other.X
	v.Y -= other.Y
}

// SetSubScalar subtracts the scalar from each component in place.
func (v *Vector2) SetSubScalar(scalar float32) {
	v.X -= scalar
	v.Y -= scalar
}

// Mul returns the component-wise product of this vector and the other.
func (v Vector2) Mul(other Vector2) Vector2 {
	return Vector2{v.X * other.X, v.Y * other.Y}
}

// MulScalar returns the vector scaled by the scalar.
func (v Vector2) MulScalar(scalar float32) Vector2 {
	return Vector2{v.X * scalar, v.Y * scalar}
}

// Div returns the component-wise quotient of this vector and the other.
func (v Vector2) Div(other Vector2) Vector2 {
	return Vector2{v.X / other.X, v.Y / other.Y}
}

// DivScalar returns the vector divided by the scalar. It returns the
// zero vector if the scalar is zero.
func (v Vector2) DivScalar(scalar float32) Vector2 {
	if scalar == 0 {
		return Vector2{}
	}
	return v.MulScalar(1 / scalar)
}

// Negate returns the vector with each component negated.
func (v Vector2) Negate() Vector2 {
	return Vector2{-v.X, -v.Y}
}

// Abs returns the vector with [Abs] applied to each component.
func (v Vector2) Abs() Vector2 {
	return Vector2{Abs(v.X), Abs(v.Y)}
}

// Min returns the component-wise minimum of this vector and the other.
func (v Vector2) Min(other Vector2) Vector2 {
	return Vector2{Min(v.X, other.X), Min(v.Y, other.Y)}
}

// SetMin sets each component to the minimum of itself and the
// corresponding component of the other vector.
func (v *Vector2) SetMin(other Vector2) {
	v.X = Min(v.X, other.X)
	v.Y = Min(v.Y, other.Y)
}

// Max returns the component-wise maximum of this vector and the other.
func (v Vector2) Max(other Vector2) Vector2 {
	return Vector2{Max(v.X, other.X), Max(v.Y, other.Y)}
}

// SetMax sets each component to the maximum of itself and the
// corresponding component of the other vector.
func (v *Vector2) SetMax(other Vector2) {
	v.X = Max(v.X, other.X)
	v.Y = Max(v.Y, other.Y)
}

// Clamp clamps each component to the range given by min and max
// in place.
func (v *Vector2) Clamp(min, max Vector2) {
	v.X = Clamp(v.X, min.X, max.X)
	v.Y = Clamp(v.Y, min.Y, max.Y)
}

// Dot returns the dot product of this vector with the other.
func (v Vector2) Dot(other Vector2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the 2D cross product (the z component of the 3D cross
// product) of this vector with the other.
func (v Vector2) Cross(other Vector2) float32 {
	return v.X*other.Y - v.Y*other.X
}

// Length returns the length of this vector.
func (v Vector2) Length() float32 {
	return Sqrt(v.LengthSquared())
}

// LengthSquared returns the squared length of this vector. It is
// cheaper than [Vector2.Length] and sufficient for comparisons.
func (v Vector2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

// DistanceTo returns the distance from this point to the other.
func (v Vector2) DistanceTo(other Vector2) float32 {
	return v.Sub(other).Length()
}

// DistanceToSquared returns the squared distance from this point to
// the other.
func (v Vector2) DistanceToSquared(other Vector2) float32 {
	return v.Sub(other).LengthSquared()
}

// Normal returns this vector normalized to unit length. It returns the
// zero vector if the length is zero.
func (v Vector2) Normal() Vector2 {
	return v.DivScalar(v.Length())
}

// Rotate returns this vector rotated counterclockwise by the given
// angle in radians.
func (v Vector2) Rotate(angle float32) Vector2 {
	cos, sin := Cos(angle), Sin(angle)
	return Vector2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Rotate90 returns this vector rotated counterclockwise by 90 degrees,
// exactly.
func (v Vector2) Rotate90() Vector2 {
	return Vector2{-v.Y, v.X}
}

// Lerp returns the linear interpolation between this vector and the
// other at parameter t: t=0 returns this vector, t=1 the other.
func (v Vector2) Lerp(other Vector2, t float32) Vector2 {
	return Vector2{v.X + (other.X-v.X)*t, v.Y + (other.Y-v.Y)*t}
}

// Angle returns the angle in radians between the positive x axis and
// this vector.
func (v Vector2) Angle() float32 {
	return Atan2(v.Y, v.X)
}

// AngleTo returns the signed angle in radians from this vector to
// the other.
func (v Vector2) AngleTo(other Vector2) float32 {
	return Atan2(v.Cross(other), v.Dot(other))
}

// Equals returns whether this vector is equal to the other within an
// absolute tolerance of [Epsilon] per component. Use == for exact
// comparison.
func (v Vector2) Equals(other Vector2) bool {
	return Equal(v.X, other.X) && Equal(v.Y, other.Y)
}

// IsZero returns whether both components are zero within [Epsilon].
func (v Vector2) IsZero() bool {
	return Equal(v.X, 0) && Equal(v.Y, 0)
}

// IsNaN returns whether either component is a "not-a-number" value.
func (v Vector2) IsNaN() bool {
	return IsNaN(v.X) || IsNaN(v.Y)
}

// IsCollinear returns whether this vector and the other are parallel,
// within a tolerance scaled by the magnitudes of the vectors, so that
// the result does not depend on the scale of the inputs.
func (v Vector2) IsCollinear(other Vector2) bool {
	return Abs(v.Cross(other)) <= GeomEpsilon*Sqrt(v.LengthSquared()*other.LengthSquared())
}

// IsOrthogonal returns whether this vector and the other are
// perpendicular, within a tolerance scaled by the magnitudes of
// the vectors.
func (v Vector2) IsOrthogonal(other Vector2) bool {
	return Abs(v.Dot(other)) <= GeomEpsilon*Sqrt(v.LengthSquared()*other.LengthSquared())
}

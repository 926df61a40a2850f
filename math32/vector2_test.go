// Copyright (c) 2025, Vecscene Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vecscene/core/base/tolassert"
)

func TestVector2(t *testing.T) {
	v := Vec2(3, 4)
	assert.Equal(t, float32(5), v.Length())
	assert.Equal(t, float32(25), v.LengthSquared())
	assert.Equal(t, Vec2(4, 6), v.Add(Vec2(1, 2)))
	assert.Equal(t, Vec2(2, 2), v.Sub(Vec2(1, 2)))
	assert.Equal(t, Vec2(6, 8), v.MulScalar(2))
	assert.Equal(t, float32(11), v.Dot(Vec2(1, 2)))
	assert.Equal(t, float32(2), v.Cross(Vec2(1, 2)))
	assert.Equal(t, float32(5), Vec2(0, 0).DistanceTo(v))

	tolAssertEqualVector(t, standardTol, Vec2(0.6, 0.8), v.Normal())
	tolAssertEqualVector(t, standardTol, Vec2(-4, 3), v.Rotate90())
	tolAssertEqualVector(t, standardTol, Vec2(-4, 3), v.Rotate(DegToRad(90)))

	tolassert.Equal(t, Pi/2, Vec2(0, 1).Angle())
	tolAssertEqualVector(t, standardTol, Vec2(1.5, 2), Vec2(1, 0).Lerp(Vec2(2, 4), 0.5))
}

func TestVector2Collinear(t *testing.T) {
	assert.True(t, Vec2(1, 1).IsCollinear(Vec2(3, 3)))
	assert.True(t, Vec2(1, 1).IsCollinear(Vec2(-2, -2)))
	assert.False(t, Vec2(1, 1).IsCollinear(Vec2(1, 1.1)))
	assert.True(t, Vec2(1, 0).IsOrthogonal(Vec2(0, 5)))
	assert.False(t, Vec2(1, 0).IsOrthogonal(Vec2(1, 5)))

	assert.True(t, Vec2(1, 2).Equals(Vec2(1, 2)))
	assert.True(t, Vector2{}.IsZero())
	assert.False(t, Vec2(0.1, 0).IsZero())
}

func TestBox2(t *testing.T) {
	b := B2Empty()
	assert.True(t, b.IsEmpty())

	b.ExpandByPoint(Vec2(1, 2))
	b.ExpandByPoint(Vec2(-1, 5))
	assert.False(t, b.IsEmpty())
	assert.Equal(t, Vec2(-1, 2), b.Min)
	assert.Equal(t, Vec2(1, 5), b.Max)
	assert.Equal(t, Vec2(0, 3.5), b.Center())
	assert.Equal(t, Vec2(2, 3), b.Size())

	u := b.Union(B2(0, 0, 4, 1))
	assert.Equal(t, B2(-1, 0, 4, 5), u)
	assert.Equal(t, u, B2Empty().Union(u))
	assert.Equal(t, u, u.Union(B2Empty()))

	assert.True(t, u.ContainsPoint(Vec2(0, 0)))
	assert.False(t, u.ContainsPoint(Vec2(5, 0)))
	assert.True(t, u.ContainsBox(b))
	assert.True(t, u.IntersectsBox(B2(3, 4, 10, 10)))
	assert.False(t, u.IntersectsBox(B2(5, 6, 10, 10)))

	tb := b.Translate(Vec2(10, 10))
	assert.Equal(t, B2(9, 12, 11, 15), tb)

	// expanding by an empty box is a no-op
	eb := b
	eb.ExpandByBox(B2Empty())
	assert.Equal(t, b, eb)
}

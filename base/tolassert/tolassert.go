// Copyright (c) 2025, Vecscene Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tolassert provides functions for asserting the equality of
// numbers within a tolerance, for use in tests of numerically delicate
// geometric code.
package tolassert

import (
	"github.com/stretchr/testify/assert"
)

// Equal asserts that the two numbers are equal within a standard
// tolerance of 1e-6.
func Equal[T float32 | float64](t assert.TestingT, expected, actual T, msgAndArgs ...any) bool {
	return EqualTol(t, expected, actual, 1.0e-6, msgAndArgs...)
}

// EqualTol asserts that the two numbers are equal within the given
// tolerance.
func EqualTol[T float32 | float64](t assert.TestingT, expected, actual, tol T, msgAndArgs ...any) bool {
	return assert.InDelta(t, float64(expected), float64(actual), float64(tol), msgAndArgs...)
}

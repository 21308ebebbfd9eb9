// SPDX-License-Identifier: MIT
// Package distmatrix: sentinel error set.
//
// All validation failures return these sentinels (never wrapped at the
// point of definition); callers use errors.Is to branch on semantics.

package distmatrix

import "errors"

var (
	// ErrInvalidMatrix is returned when dim < 4, the matrix is not
	// symmetric within tolerance, or a negative entry is present.
	ErrInvalidMatrix = errors.New("distmatrix: invalid distance matrix")

	// ErrIndexOutOfRange is returned by Get when i or j falls outside
	// [0, dim). Label reports an out-of-range index as ("", false).
	ErrIndexOutOfRange = errors.New("distmatrix: index out of range")
)

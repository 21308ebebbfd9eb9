// SPDX-License-Identifier: MIT
// Package score: sentinel error set.

package score

import "errors"

// ErrNumericTolerance is returned when a raw cost lies outside
// [MIN-1e-6, MAX+1e-6]; it indicates a scoring bug, never a valid tree
// state, and is fatal for the affected candidate.
var ErrNumericTolerance = errors.New("score: raw cost outside [MIN,MAX] tolerance")

// errorTolerance is the absolute tolerance applied to the raw-cost
// range assertion and to the MAX == MIN test in Normalize.
const errorTolerance = 1e-6

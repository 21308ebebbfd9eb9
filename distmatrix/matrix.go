// SPDX-License-Identifier: MIT
package distmatrix

import (
	"fmt"
	"math"
)

// symmetryTolerance bounds |d(i,j) - d(j,i)| when validating symmetry of
// a caller-supplied matrix built from possibly-noisy floating point input.
const symmetryTolerance = 1e-9

// Matrix is an immutable symmetric N×N matrix of non-negative pairwise
// distances between N leaf objects, with optional column labels. Once
// constructed by New, a Matrix never changes; it is safe to share a
// *Matrix by pointer across any number of Tree clones.
type Matrix struct {
	dim    int
	values []float64 // row-major dim*dim
	labels []string  // len(labels) == dim, or nil if unlabeled
}

// New validates and constructs a Matrix from a dense row-major distance
// table. dist must be square with dim == len(dist) >= 4, symmetric within
// symmetryTolerance, and free of negative or non-finite entries.
//
// Complexity: O(dim^2).
func New(dist [][]float64) (*Matrix, error) {
	dim := len(dist)
	if dim < 4 {
		return nil, fmt.Errorf("distmatrix.New: dim=%d: %w", dim, ErrInvalidMatrix)
	}
	values := make([]float64, dim*dim)
	for i := 0; i < dim; i++ {
		if len(dist[i]) != dim {
			return nil, fmt.Errorf("distmatrix.New: row %d has length %d, want %d: %w", i, len(dist[i]), dim, ErrInvalidMatrix)
		}
		for j := 0; j < dim; j++ {
			v := dist[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("distmatrix.New: entry (%d,%d) is non-finite: %w", i, j, ErrInvalidMatrix)
			}
			if v < 0 {
				return nil, fmt.Errorf("distmatrix.New: entry (%d,%d)=%g is negative: %w", i, j, v, ErrInvalidMatrix)
			}
			values[i*dim+j] = v
		}
	}
	for i := 0; i < dim; i++ {
		for j := i + 1; j < dim; j++ {
			if math.Abs(values[i*dim+j]-values[j*dim+i]) > symmetryTolerance {
				return nil, fmt.Errorf("distmatrix.New: entries (%d,%d) and (%d,%d) are asymmetric: %w", i, j, j, i, ErrInvalidMatrix)
			}
		}
	}
	return &Matrix{dim: dim, values: values}, nil
}

// NewLabeled is New plus per-column labels. len(labels) must equal dim.
func NewLabeled(dist [][]float64, labels []string) (*Matrix, error) {
	m, err := New(dist)
	if err != nil {
		return nil, err
	}
	if len(labels) != m.dim {
		return nil, fmt.Errorf("distmatrix.NewLabeled: got %d labels, want %d: %w", len(labels), m.dim, ErrInvalidMatrix)
	}
	m.labels = append([]string(nil), labels...)
	return m, nil
}

// Dim returns N, the number of distance-matrix columns (leaf objects).
func (m *Matrix) Dim() int { return m.dim }

// Get returns d(i,j). Panics are never used for out-of-range access from
// internal callers (they are expected to stay in-bounds by construction);
// external callers get ErrIndexOutOfRange.
func (m *Matrix) Get(i, j int) (float64, error) {
	if i < 0 || j < 0 || i >= m.dim || j >= m.dim {
		return 0, fmt.Errorf("distmatrix.Get(%d,%d): %w", i, j, ErrIndexOutOfRange)
	}
	return m.values[i*m.dim+j], nil
}

// At is the unchecked counterpart of Get, used on hot paths (scoring,
// mutation) where i and j are already known to be valid column indices.
func (m *Matrix) At(i, j int) float64 {
	return m.values[i*m.dim+j]
}

// HasLabels reports whether per-column labels were supplied at construction.
func (m *Matrix) HasLabels() bool { return m.labels != nil }

// Label returns the label of column i, or "" and false if unlabeled or
// out of range.
func (m *Matrix) Label(i int) (string, bool) {
	if m.labels == nil || i < 0 || i >= m.dim {
		return "", false
	}
	return m.labels[i], true
}

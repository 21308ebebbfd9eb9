// SPDX-License-Identifier: MIT
package score

import "gonum.org/v1/gonum/stat/combin"

// DistanceSource is the minimal read surface score needs from a distance
// matrix: dimension and a symmetric non-negative entry accessor. It lets
// score avoid importing distmatrix's constructors; *distmatrix.Matrix
// satisfies it via Dim/At.
type DistanceSource interface {
	Dim() int
	At(i, j int) float64
}

// MinMax holds the two distance-matrix-only constants needed to
// normalize a raw quartet cost: the sum, over every leaf 4-subset, of
// the minimum (respectively maximum) of the three pairing costs.
type MinMax struct {
	Min float64
	Max float64
}

// ComputeMinMax computes MinMax in O(dim^4) using gonum's combin package
// to enumerate leaf 4-subsets rather than four hand-nested loops.
func ComputeMinMax(dm DistanceSource) MinMax {
	dim := dm.Dim()
	if dim < 4 {
		return MinMax{}
	}
	var mm MinMax
	for _, quartet := range combin.Combinations(dim, 4) {
		i, j, k, l := quartet[0], quartet[1], quartet[2], quartet[3]
		c1 := dm.At(i, j) + dm.At(k, l)
		c2 := dm.At(i, k) + dm.At(j, l)
		c3 := dm.At(i, l) + dm.At(j, k)
		mm.Min += minOf3(c1, c2, c3)
		mm.Max += maxOf3(c1, c2, c3)
	}
	return mm
}

func minOf3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxOf3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

// SPDX-License-Identifier: MIT
package score

import (
	"fmt"

	"github.com/qtreekit/qsearch/qtree"
)

// Scorer scores qtree.Tree instances against one distance matrix. MIN
// and MAX depend only on the matrix, so a Scorer computes them once at
// construction and is then safe to share (read-only) across every Tree
// clone in a search.
type Scorer struct {
	minMax MinMax
}

// New precomputes MIN/MAX for dm and returns a ready-to-use Scorer.
func New(dm DistanceSource) *Scorer {
	return &Scorer{minMax: ComputeMinMax(dm)}
}

// MinMax returns the precomputed MIN/MAX pair.
func (s *Scorer) MinMax() MinMax { return s.minMax }

// RawCost returns FastRawCost(t), i.e. the unnormalized quartet cost.
func (s *Scorer) RawCost(t *qtree.Tree) float64 { return FastRawCost(t) }

// Normalize maps a raw cost to S = (MAX-raw)/(MAX-MIN) in [0,1]. When
// MAX == MIN (every quartet is equally costly under every pairing, e.g.
// a unit distance matrix), S is defined as 1.
func (s *Scorer) Normalize(raw float64) (float64, error) {
	min, max := s.minMax.Min, s.minMax.Max
	if raw < min-errorTolerance || raw > max+errorTolerance {
		return 0, fmt.Errorf("score.Normalize: raw=%g outside [%g,%g]: %w", raw, min, max, ErrNumericTolerance)
	}
	if max-min <= errorTolerance {
		return 1, nil
	}
	s01 := (max - raw) / (max - min)
	if s01 < 0 {
		s01 = 0
	}
	if s01 > 1 {
		s01 = 1
	}
	return s01, nil
}

// Score computes the raw cost and returns its normalized value.
func (s *Scorer) Score(t *qtree.Tree) (float64, error) {
	return s.Normalize(s.RawCost(t))
}

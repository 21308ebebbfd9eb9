// SPDX-License-Identifier: MIT
package score

import (
	"fmt"

	"github.com/qtreekit/qsearch/qtree"
	"gonum.org/v1/gonum/stat/combin"
)

// isConsistentQuartet reports whether pairing (a,b|c,d) is consistent
// with t: the unique path a→b is node-disjoint from the unique path
// c→d. It marks every node on path(a,b) with FlagQuartetMark, then walks
// path(c,d) checking for a marked node.
func isConsistentQuartet(t *qtree.Tree, a, b, c, d qtree.NodeID) bool {
	t.ClearFlagAll(qtree.FlagQuartetMark)
	for _, n := range t.FindPath(a, b) {
		t.SetFlag(n, qtree.FlagQuartetMark, true)
	}
	for _, n := range t.FindPath(c, d) {
		if t.Flag(n, qtree.FlagQuartetMark) {
			return false
		}
	}
	return true
}

// SlowRawCost is the O(N^4) reference scorer kept for cross-validation
// against FastRawCost: for every leaf 4-subset it determines the single
// consistent pairing by direct path-intersection tests rather than the
// fast branch-counting algorithm.
func SlowRawCost(t *qtree.Tree) (float64, error) {
	leafCount := t.LeafCount()
	placement := t.LeafPlacement()
	dm := t.Matrix()

	var acc float64
	for _, q := range combin.Combinations(leafCount, 4) {
		i, j, k, l := q[0], q[1], q[2], q[3]
		ni, nj, nk, nl := placement[i], placement[j], placement[k], placement[l]
		c1 := dm.At(i, j) + dm.At(k, l)
		c2 := dm.At(i, k) + dm.At(j, l)
		c3 := dm.At(i, l) + dm.At(j, k)

		switch {
		case isConsistentQuartet(t, ni, nj, nk, nl):
			acc += c1
		case isConsistentQuartet(t, ni, nk, nj, nl):
			acc += c2
		case isConsistentQuartet(t, ni, nl, nj, nk):
			acc += c3
		default:
			return 0, fmt.Errorf("score.SlowRawCost: no consistent pairing for leaves (%d,%d,%d,%d): %w", ni, nj, nk, nl, ErrNumericTolerance)
		}
	}
	return acc, nil
}

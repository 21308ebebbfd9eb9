// SPDX-License-Identifier: MIT
package score

import "github.com/qtreekit/qsearch/qtree"

// FastRawCost computes the raw quartet-consistency cost in O(N^3) using
// a ConnectedNodeMap built fresh from t. For each internal node v and
// each of its three branches, every quartet formed by two leaves in one
// branch and two leaves in another contributes the pairing cost that
// splits along v; this is accumulated into an integer pair-multiplier
// tensor so the final distance multiplication is a single dot product,
// keeping the result independent of traversal/summation order.
//
// Relies on the structural invariant that every mutation in this engine
// preserves each node id's degree: leaf ids are always the first
// LeafCount() ids and kernel ids always occupy the rest, exactly as the
// caterpillar construction laid them out.
func FastRawCost(t *qtree.Tree) float64 {
	cnm := qtree.NewConnectedNodeMap(t)
	leafCount := t.LeafCount()
	total := t.TotalNodes()
	placement := t.LeafPlacement()

	branchOf := make([]int, leafCount) // branchOf[i] = branch of leaf-column i's node, reused per kernel
	mult := make([]int64, leafCount*leafCount)

	for v := leafCount; v < total; v++ {
		vid := qtree.NodeID(v)
		for i := 0; i < leafCount; i++ {
			branchOf[i] = cnm.Branch(vid, placement[i])
		}
		for k := 0; k < 3; k++ {
			n := cnm.LeafCount(vid, k)
			if n < 2 {
				continue
			}
			npairs := int64(n) * int64(n-1) / 2
			first := (k + 2) % 3
			second := (k + 1) % 3
			for i := 0; i < leafCount; i++ {
				if branchOf[i] != first {
					continue
				}
				row := mult[i*leafCount : i*leafCount+leafCount]
				for j := 0; j < leafCount; j++ {
					if branchOf[j] != second {
						continue
					}
					row[j] += npairs
				}
			}
		}
	}

	dm := t.Matrix()
	var sum float64
	for i := 0; i < leafCount; i++ {
		row := mult[i*leafCount : i*leafCount+leafCount]
		for j := 0; j < leafCount; j++ {
			if row[j] == 0 {
				continue
			}
			sum += float64(row[j]) * dm.At(i, j)
		}
	}
	return sum
}

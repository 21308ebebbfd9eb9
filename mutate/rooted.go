// SPDX-License-Identifier: MIT
package mutate

import (
	"fmt"
	"math/rand"

	"github.com/qtreekit/qsearch/qtree"
)

// root is an arbitrary, fixed reference node used to give the unrooted
// Tree a parent/child orientation for SwapNodes and SubtreeMove. The
// lowest-numbered kernel id always exists (every valid Tree has at
// least two kernels) and is cheap to recompute, so no state is kept.
func root(t *qtree.Tree) qtree.NodeID { return qtree.NodeID(t.LeafCount()) }

// parentOf returns the neighbor of v on the path toward root; v itself
// when v is the root.
func parentOf(t *qtree.Tree, v qtree.NodeID) qtree.NodeID {
	return t.NextHop(v, root(t))
}

// childrenOf returns v's neighbors other than its parent (all of v's
// neighbors when v is the root).
func childrenOf(t *qtree.Tree, v qtree.NodeID) []qtree.NodeID {
	r := root(t)
	out := make([]qtree.NodeID, 0, 3)
	if v == r {
		return append(out, t.Neighbors(v)...)
	}
	p := parentOf(t, v)
	for _, nb := range t.Neighbors(v) {
		if nb != p {
			out = append(out, nb)
		}
	}
	return out
}

// SwapNodes detaches p1 and p2 from their respective parents and
// reattaches each under the other's former parent, splicing their two
// subtrees. It is its own inverse: calling SwapNodes(t, p1, p2) again
// restores the pre-swap topology exactly, which is how callers revert
// a rejected candidate.
func SwapNodes(t *qtree.Tree, p1, p2 qtree.NodeID) error {
	parent1 := parentOf(t, p1)
	parent2 := parentOf(t, p2)
	if err := t.Disconnect(parent1, p1); err != nil {
		return fmt.Errorf("mutate.SwapNodes(%d,%d): %w", p1, p2, err)
	}
	if err := t.Disconnect(parent2, p2); err != nil {
		return fmt.Errorf("mutate.SwapNodes(%d,%d): %w", p1, p2, err)
	}
	if err := t.Connect(parent1, p2); err != nil {
		return fmt.Errorf("mutate.SwapNodes(%d,%d): %w", p1, p2, err)
	}
	if err := t.Connect(parent2, p1); err != nil {
		return fmt.Errorf("mutate.SwapNodes(%d,%d): %w", p1, p2, err)
	}
	return nil
}

// findSibling returns v's sibling: the other child of v's parent. When
// v's parent is the root and has two other children (root has degree
// 3), the lexicographically smallest candidate is chosen deterministically;
// this disambiguation is not specified by the distillation this engine
// is built from and is this engine's own documented choice.
func findSibling(t *qtree.Tree, v qtree.NodeID) (qtree.NodeID, error) {
	p := parentOf(t, v)
	candidates := childrenOf(t, p)
	var sibling qtree.NodeID = -1
	for _, c := range candidates {
		if c == v {
			continue
		}
		if sibling == -1 || c < sibling {
			sibling = c
		}
	}
	if sibling == -1 {
		return 0, fmt.Errorf("mutate.findSibling(%d): no sibling found: %w", v, qtree.ErrInvariantViolation)
	}
	return sibling, nil
}

// RandomPair samples two distinct non-root nodes with FindPathLength
// greater than 2, so that NextHop(p1,p2) is a genuine interior node
// distinct from both endpoints. Suitable for SwapNodes, where p1 and p2
// themselves must not be adjacent.
func RandomPair(t *qtree.Tree, r *rand.Rand) (qtree.NodeID, qtree.NodeID, error) {
	return randomPairMinPathLen(t, r, 2)
}

// RandomSubtreeMovePair samples a pair suitable for SubtreeMove, where
// the node splice happens one hop further in (at NextHop(p1,p2) rather
// than p1 itself), so the minimum path length is one greater than
// RandomPair's: FindPathLength(p1,p2) > 3 guarantees NextHop(p1,p2) is
// never adjacent to p2.
func RandomSubtreeMovePair(t *qtree.Tree, r *rand.Rand) (qtree.NodeID, qtree.NodeID, error) {
	return randomPairMinPathLen(t, r, 3)
}

func randomPairMinPathLen(t *qtree.Tree, r *rand.Rand, minPathLen int) (qtree.NodeID, qtree.NodeID, error) {
	rt := root(t)
	for attempt := 0; attempt < maxPairAttempts; attempt++ {
		p1, err := t.RandomNode(qtree.Any, r)
		if err != nil {
			return 0, 0, err
		}
		if p1 == rt {
			continue
		}
		p2, err := t.RandomNodeButNot(qtree.Any, p1, r)
		if err != nil {
			return 0, 0, err
		}
		if p2 == rt {
			continue
		}
		if t.FindPathLength(p1, p2) > minPathLen {
			return p1, p2, nil
		}
	}
	return 0, 0, fmt.Errorf("mutate.randomPairMinPathLen: %w", ErrNoCandidatePair)
}

// SubtreeMove makes p2 the sibling of p1 via two SwapNodes splices: p1's
// parent, now holding p1 and p2, sits where p2 used to, and p1's former
// sibling takes the parent's old place. It returns an undo function that
// restores the pre-move topology exactly when called (apply the same two
// SwapNodes calls again, in reverse order).
// Precondition: FindPathLength(p1,p2) > 3 (see RandomSubtreeMovePair),
// so that NextHop(p1,p2) is never adjacent to p2.
func SubtreeMove(t *qtree.Tree, p1, p2 qtree.NodeID) (undo func() error, err error) {
	interior := t.NextHop(p1, p2)
	// FindPathLength counts nodes inclusive of both ends, so 1 means
	// interior == p2 and 2 means interior is directly adjacent to p2;
	// either way SwapNodes(interior, p2) would degenerate into a
	// self-loop connect.
	if t.FindPathLength(interior, p2) <= 2 {
		return nil, fmt.Errorf("mutate.SubtreeMove(%d,%d): interior node adjacent to p2: %w", p1, p2, qtree.ErrInvariantViolation)
	}
	sibling, err := findSibling(t, p1)
	if err != nil {
		return nil, fmt.Errorf("mutate.SubtreeMove(%d,%d): %w", p1, p2, err)
	}

	if err := SwapNodes(t, interior, p2); err != nil {
		return nil, fmt.Errorf("mutate.SubtreeMove(%d,%d): %w", p1, p2, err)
	}
	if err := SwapNodes(t, sibling, p2); err != nil {
		return nil, fmt.Errorf("mutate.SubtreeMove(%d,%d): %w", p1, p2, err)
	}

	undo = func() error {
		if err := SwapNodes(t, sibling, p2); err != nil {
			return err
		}
		return SwapNodes(t, interior, p2)
	}
	return undo, nil
}

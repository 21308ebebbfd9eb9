// SPDX-License-Identifier: MIT
package mutate

import (
	"fmt"
	"math/rand"

	"github.com/qtreekit/qsearch/internal/rng"
	"github.com/qtreekit/qsearch/qtree"
)

// maxDispatchAttempts bounds the "pick a mutation kind, retry if its
// precondition fails" loop. Only matters on trees too small for
// subtree-transfer/interchange, where leaf-swap is always applicable
// and terminates the loop on the first try that draws it.
const maxDispatchAttempts = 1000

// maxPairAttempts bounds rejection sampling for a mutation's node pair.
const maxPairAttempts = 10000

// CanSubtreeTransfer reports whether t is large enough to support
// subtree-transfer (total node count >= 9).
func CanSubtreeTransfer(t *qtree.Tree) bool { return t.TotalNodes() >= 9 }

// CanSubtreeInterchange reports whether t is large enough to support
// subtree-interchange (total node count >= 11).
func CanSubtreeInterchange(t *qtree.Tree) bool { return t.TotalNodes() >= 11 }

// LeafSwap exchanges the distance-matrix columns carried by two
// distinct, randomly chosen leaves. Always applicable when LeafCount
// >= 2, which every valid Tree satisfies (N >= 4).
func LeafSwap(t *qtree.Tree, r *rand.Rand) error {
	l1, err := t.RandomNode(qtree.Leaf, r)
	if err != nil {
		return fmt.Errorf("mutate.LeafSwap: %w", err)
	}
	l2, err := t.RandomNodeButNot(qtree.Leaf, l1, r)
	if err != nil {
		return fmt.Errorf("mutate.LeafSwap: %w", err)
	}
	i, j := t.ColumnOf(l1), t.ColumnOf(l2)
	t.SwapLeafPlacement(i, j)
	return nil
}

// SubtreeTransfer detaches the interior node adjacent to a randomly
// chosen node k1 on the path toward a randomly chosen kernel k2 (with
// path length > 2), and reattaches it between k2 and one of k2's other
// two branches, bypassing its former position by directly joining its
// former other two neighbors. Precondition: CanSubtreeTransfer(t).
func SubtreeTransfer(t *qtree.Tree, r *rand.Rand) error {
	k1, k2, err := pickPair(t, qtree.Any, qtree.Kernel, 2, r)
	if err != nil {
		return fmt.Errorf("mutate.SubtreeTransfer: %w", err)
	}
	path := t.FindPath(k1, k2)
	i1 := path[1]

	if err := t.Disconnect(k1, i1); err != nil {
		return fmt.Errorf("mutate.SubtreeTransfer: %w", err)
	}
	neighbors := t.Neighbors(i1)
	if len(neighbors) != 2 {
		return fmt.Errorf("mutate.SubtreeTransfer: interior node %d has %d neighbors after detach, want 2: %w", i1, len(neighbors), qtree.ErrInvariantViolation)
	}
	m1, m2 := neighbors[0], neighbors[1]

	pathNeighborOfK2 := path[len(path)-2]
	var m3 qtree.NodeID
	for attempt := 0; ; attempt++ {
		if attempt >= maxPairAttempts {
			return fmt.Errorf("mutate.SubtreeTransfer: %w", ErrNoCandidatePair)
		}
		m3 = t.RandomNeighbor(k2, r)
		if m3 != pathNeighborOfK2 {
			break
		}
	}

	if err := t.Disconnect(m1, i1); err != nil {
		return fmt.Errorf("mutate.SubtreeTransfer: %w", err)
	}
	if err := t.Disconnect(m2, i1); err != nil {
		return fmt.Errorf("mutate.SubtreeTransfer: %w", err)
	}
	if err := t.Disconnect(m3, k2); err != nil {
		return fmt.Errorf("mutate.SubtreeTransfer: %w", err)
	}
	if err := t.Connect(m1, m2); err != nil {
		return fmt.Errorf("mutate.SubtreeTransfer: %w", err)
	}
	if err := t.Connect(k2, i1); err != nil {
		return fmt.Errorf("mutate.SubtreeTransfer: %w", err)
	}
	if err := t.Connect(m3, i1); err != nil {
		return fmt.Errorf("mutate.SubtreeTransfer: %w", err)
	}
	if err := t.Connect(k1, i1); err != nil {
		return fmt.Errorf("mutate.SubtreeTransfer: %w", err)
	}
	return nil
}

// SubtreeInterchange swaps the branches rooted at the two nodes
// adjacent to k1 and k2 (a randomly chosen pair of kernels with path
// length > 3) on the path between them. Precondition: CanSubtreeInterchange(t).
func SubtreeInterchange(t *qtree.Tree, r *rand.Rand) error {
	k1, k2, err := pickPair(t, qtree.Kernel, qtree.Kernel, 3, r)
	if err != nil {
		return fmt.Errorf("mutate.SubtreeInterchange: %w", err)
	}
	path := t.FindPath(k1, k2)
	n1 := path[1]
	n2 := path[len(path)-2]

	if err := t.Disconnect(n1, k1); err != nil {
		return fmt.Errorf("mutate.SubtreeInterchange: %w", err)
	}
	if err := t.Disconnect(n2, k2); err != nil {
		return fmt.Errorf("mutate.SubtreeInterchange: %w", err)
	}
	if err := t.Connect(n1, k2); err != nil {
		return fmt.Errorf("mutate.SubtreeInterchange: %w", err)
	}
	if err := t.Connect(n2, k1); err != nil {
		return fmt.Errorf("mutate.SubtreeInterchange: %w", err)
	}
	return nil
}

// pickPair samples a pair (k1 of kind1, k2 of kind2, k2 != k1) by
// rejection until FindPathLength(k1,k2) > minPathLen.
func pickPair(t *qtree.Tree, kind1, kind2 qtree.NodeKind, minPathLen int, r *rand.Rand) (qtree.NodeID, qtree.NodeID, error) {
	for attempt := 0; attempt < maxPairAttempts; attempt++ {
		k1, err := t.RandomNode(kind1, r)
		if err != nil {
			return 0, 0, err
		}
		k2, err := t.RandomNodeButNot(kind2, k1, r)
		if err != nil {
			return 0, 0, err
		}
		if t.FindPathLength(k1, k2) > minPathLen {
			return k1, k2, nil
		}
	}
	return 0, 0, ErrNoCandidatePair
}

// dispatchSimpleMutation picks one of the three non-rooted mutation
// kinds uniformly at random and applies it, retrying on a kind whose
// precondition fails.
func dispatchSimpleMutation(t *qtree.Tree, r *rand.Rand) error {
	for attempt := 0; attempt < maxDispatchAttempts; attempt++ {
		switch rng.IntRange(r, 0, 2) {
		case 0:
			return LeafSwap(t, r)
		case 1:
			if CanSubtreeTransfer(t) {
				return SubtreeTransfer(t, r)
			}
		case 2:
			if CanSubtreeInterchange(t) {
				return SubtreeInterchange(t, r)
			}
		}
	}
	return fmt.Errorf("mutate.SimpleMutation: %w", ErrNoApplicableMutation)
}

package mutate_test

import (
	"testing"

	"github.com/qtreekit/qsearch/distmatrix"
	"github.com/qtreekit/qsearch/internal/rng"
	"github.com/qtreekit/qsearch/mutate"
	"github.com/qtreekit/qsearch/qtree"
	"github.com/stretchr/testify/require"
)

func unitMatrix(t *testing.T, n int) *distmatrix.Matrix {
	t.Helper()
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = 1
			}
		}
	}
	m, err := distmatrix.New(dist)
	require.NoError(t, err)
	return m
}

func cloneAdjacency(t *qtree.Tree) [][]int {
	return t.AdjacencyMatrix()
}

// N=5, leaf-swap then the inverse swap restores the exact pre-mutation
// leaf placement.
func TestLeafSwap_SelfInverse(t *testing.T) {
	t.Parallel()

	dm := unitMatrix(t, 5)
	tr, err := qtree.NewCaterpillar(dm)
	require.NoError(t, err)

	before := append([]qtree.NodeID(nil), tr.LeafPlacement()...)
	r := rng.New(42)

	require.NoError(t, mutate.LeafSwap(tr, r))
	require.NotEqual(t, before, tr.LeafPlacement())

	// find which two columns moved and swap them back directly; LeafSwap
	// itself picks a fresh random pair, so determinism of the revert is
	// verified structurally instead of by re-invoking LeafSwap.
	after := tr.LeafPlacement()
	var i, j int = -1, -1
	for idx := range before {
		if before[idx] != after[idx] {
			if i == -1 {
				i = idx
			} else {
				j = idx
			}
		}
	}
	require.NotEqual(t, -1, j, "expected exactly two columns to differ")
	tr.SwapLeafPlacement(i, j)
	require.Equal(t, before, tr.LeafPlacement())
}

// N=8 (14 nodes) satisfies both subtree-transfer (>=9) and
// subtree-interchange (>=11) preconditions, and applying either leaves
// a structurally valid tree.
func TestSubtreeTransferAndInterchange_PreserveValidity(t *testing.T) {
	t.Parallel()

	dm := unitMatrix(t, 8)
	r := rng.New(7)

	for trial := 0; trial < 20; trial++ {
		tr, err := qtree.NewCaterpillar(dm)
		require.NoError(t, err)
		require.True(t, mutate.CanSubtreeTransfer(tr))
		require.True(t, mutate.CanSubtreeInterchange(tr))

		require.NoError(t, mutate.SubtreeTransfer(tr, r))
		require.True(t, tr.IsValidTree())

		require.NoError(t, mutate.SubtreeInterchange(tr, r))
		require.True(t, tr.IsValidTree())
	}
}

func TestCanMutate_SmallTreeDisallowsTransferAndInterchange(t *testing.T) {
	t.Parallel()

	dm := unitMatrix(t, 4)
	tr, err := qtree.NewCaterpillar(dm)
	require.NoError(t, err)

	require.False(t, mutate.CanSubtreeTransfer(tr))
	require.False(t, mutate.CanSubtreeInterchange(tr))
}

// pairwise node-swap is its own inverse.
func TestSwapNodes_Reverts(t *testing.T) {
	t.Parallel()

	dm := unitMatrix(t, 9)
	tr, err := qtree.NewCaterpillar(dm)
	require.NoError(t, err)

	before := cloneAdjacency(tr)
	r := rng.New(3)

	m := mutate.New(tr)
	_, _, undo, err := m.PairwiseSwap(r)
	require.NoError(t, err)
	require.NotEqual(t, before, cloneAdjacency(tr))

	require.NoError(t, undo())
	require.Equal(t, before, cloneAdjacency(tr))
	require.True(t, tr.IsValidTree())
}

// subtree-move is reverted exactly by its undo closure.
func TestSubtreeMove_Reverts(t *testing.T) {
	t.Parallel()

	dm := unitMatrix(t, 10)
	tr, err := qtree.NewCaterpillar(dm)
	require.NoError(t, err)

	before := cloneAdjacency(tr)
	r := rng.New(4)

	m := mutate.New(tr)
	for trial := 0; trial < 30; trial++ {
		_, _, undo, err := m.SubtreeMove(r)
		require.NoError(t, err)
		require.True(t, tr.IsValidTree())

		require.NoError(t, undo())
		require.Equal(t, before, cloneAdjacency(tr))
		require.True(t, tr.IsValidTree())
	}
}

// A pair with FindPathLength == 3 places NextHop(p1,p2) directly
// adjacent to p2; mutate.SubtreeMove must reject this case cleanly
// (returning an error before mutating anything) rather than leave a
// broken tree behind.
func TestSubtreeMove_RejectsAdjacentInteriorWithoutMutating(t *testing.T) {
	t.Parallel()

	dm := unitMatrix(t, 6)
	tr, err := qtree.NewCaterpillar(dm)
	require.NoError(t, err)

	// caterpillar kernel chain for N=6 is 6-7-8-9, with leaf 0 attached
	// to kernel 6 and leaf 1 attached to kernel 7: path 0-6-7 has
	// FindPathLength 3, so NextHop(0,7) == 6, adjacent to 7.
	p1, p2 := qtree.NodeID(0), qtree.NodeID(7)
	require.Equal(t, 3, tr.FindPathLength(p1, p2))

	before := cloneAdjacency(tr)
	_, err = mutate.SubtreeMove(tr, p1, p2)
	require.Error(t, err)
	require.Equal(t, before, cloneAdjacency(tr), "a rejected SubtreeMove must leave the tree untouched")
	require.True(t, tr.IsValidTree())
}

func TestSimpleMutation_AlwaysLeavesValidTree(t *testing.T) {
	t.Parallel()

	dm := unitMatrix(t, 9)
	tr, err := qtree.NewCaterpillar(dm)
	require.NoError(t, err)

	r := rng.New(9)
	m := mutate.New(tr)
	for i := 0; i < 100; i++ {
		require.NoError(t, m.SimpleMutation(r))
		require.True(t, tr.IsValidTree())
	}
	stats := m.Stats()
	require.Equal(t, 100, stats.TotalSimple)
}

func TestComplexMutation_AppliesAtLeastOneSimpleMutation(t *testing.T) {
	t.Parallel()

	dm := unitMatrix(t, 9)
	tr, err := qtree.NewCaterpillar(dm)
	require.NoError(t, err)

	r := rng.New(13)
	m := mutate.New(tr)
	require.NoError(t, m.ComplexMutation(r))
	require.True(t, tr.IsValidTree())

	stats := m.Stats()
	require.GreaterOrEqual(t, stats.TotalSimple, 1)
	require.Equal(t, 1, stats.TotalComposite)
	require.Equal(t, stats.TotalSimple, stats.LastSimple)
}

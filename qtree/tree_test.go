package qtree_test

import (
	"math/rand"
	"testing"

	"github.com/qtreekit/qsearch/distmatrix"
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

func TestNewCaterpillar_N4(t *testing.T) {
	t.Parallel()

	dm := unitMatrix(t, 4)
	tr, err := qtree.NewCaterpillar(dm)
	require.NoError(t, err)

	require.Equal(t, 6, tr.TotalNodes())
	require.Equal(t, 4, tr.LeafCount())
	require.Equal(t, 2, tr.KernelCount())
	require.True(t, tr.IsValidTree())

	wantEdges := [][2]int{{0, 4}, {1, 5}, {2, 4}, {3, 5}, {4, 5}}
	for _, e := range wantEdges {
		require.True(t, tr.IsConnected(qtree.NodeID(e[0]), qtree.NodeID(e[1])), "expected edge %v", e)
	}
	require.Equal(t, qtree.Leaf, tr.Kind(0))
	require.Equal(t, qtree.Kernel, tr.Kind(4))
}

func TestConnectDisconnect_Invariants(t *testing.T) {
	t.Parallel()

	dm := unitMatrix(t, 4)
	tr, err := qtree.NewCaterpillar(dm)
	require.NoError(t, err)

	require.ErrorIs(t, tr.Connect(0, 0), qtree.ErrInvariantViolation)
	require.ErrorIs(t, tr.Connect(0, 4), qtree.ErrInvariantViolation) // already connected
	require.ErrorIs(t, tr.Disconnect(0, 1), qtree.ErrInvariantViolation)

	require.NoError(t, tr.Disconnect(0, 4))
	require.NoError(t, tr.Connect(0, 4))
	require.True(t, tr.IsValidTree())
}

func TestClone_Independent(t *testing.T) {
	t.Parallel()

	dm := unitMatrix(t, 6)
	tr, err := qtree.NewCaterpillar(dm)
	require.NoError(t, err)

	clone := tr.Clone()
	require.NoError(t, clone.Disconnect(0, qtree.NodeID(6)))
	require.True(t, tr.IsConnected(0, 6), "original must be unaffected by clone mutation")
	require.Same(t, tr.Matrix(), clone.Matrix())
}

func TestRandomNode_KindsOnly(t *testing.T) {
	t.Parallel()

	dm := unitMatrix(t, 8)
	tr, err := qtree.NewCaterpillar(dm)
	require.NoError(t, err)
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		leaf, err := tr.RandomNode(qtree.Leaf, r)
		require.NoError(t, err)
		require.Equal(t, 1, tr.Degree(leaf))

		kernel, err := tr.RandomNode(qtree.Kernel, r)
		require.NoError(t, err)
		require.Equal(t, 3, tr.Degree(kernel))
	}
}

func TestFindPathLength_SymmetricAndBounded(t *testing.T) {
	t.Parallel()

	dm := unitMatrix(t, 6)
	tr, err := qtree.NewCaterpillar(dm)
	require.NoError(t, err)

	total := tr.TotalNodes()
	for i := 0; i < total; i++ {
		for j := 0; j < total; j++ {
			li := tr.FindPathLength(qtree.NodeID(i), qtree.NodeID(j))
			lj := tr.FindPathLength(qtree.NodeID(j), qtree.NodeID(i))
			require.Equal(t, li, lj)
			require.GreaterOrEqual(t, li, 1)
			require.LessOrEqual(t, li, total)
		}
	}
}

func TestSwapLeafPlacement_RoundTrips(t *testing.T) {
	t.Parallel()

	dm := unitMatrix(t, 5)
	tr, err := qtree.NewCaterpillar(dm)
	require.NoError(t, err)

	before := append([]qtree.NodeID(nil), tr.LeafPlacement()...)
	tr.SwapLeafPlacement(0, 2)
	require.NotEqual(t, before, tr.LeafPlacement())
	tr.SwapLeafPlacement(0, 2)
	require.Equal(t, before, tr.LeafPlacement())
}

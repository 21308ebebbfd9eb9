package search_test

import (
	"testing"

	"github.com/qtreekit/qsearch/distmatrix"
	"github.com/qtreekit/qsearch/internal/rng"
	"github.com/qtreekit/qsearch/mutate"
	"github.com/qtreekit/qsearch/qtree"
	"github.com/qtreekit/qsearch/score"
	"github.com/qtreekit/qsearch/search"
	"github.com/stretchr/testify/require"
)

// additiveMatrixFromRandomTopology builds a distance matrix that is
// exactly realized by some binary tree topology on n leaves: it starts
// from the caterpillar, randomly rearranges it with a handful of
// subtree-move primitives, assigns each edge a random positive weight,
// then reads off every pairwise leaf distance as the summed edge weight
// along the tree path. MIN for the resulting matrix therefore equals
// the raw cost actually achievable by (some reachable rotation of) the
// starting topology.
func additiveMatrixFromRandomTopology(t *testing.T, n int, seed int64) *distmatrix.Matrix {
	t.Helper()
	seedDM := unitMatrix(t, n)
	tr, err := qtree.NewCaterpillar(seedDM)
	require.NoError(t, err)

	r := rng.New(seed)
	m := mutate.New(tr)
	for i := 0; i < 6; i++ {
		_, _, _, err := m.SubtreeMove(r)
		require.NoError(t, err)
	}

	total := tr.TotalNodes()
	weight := make(map[[2]qtree.NodeID]float64)
	for i := 0; i < total; i++ {
		for j := i + 1; j < total; j++ {
			if tr.IsConnected(qtree.NodeID(i), qtree.NodeID(j)) {
				weight[[2]qtree.NodeID{qtree.NodeID(i), qtree.NodeID(j)}] = 1 + r.Float64()*4
			}
		}
	}
	edgeWeight := func(a, b qtree.NodeID) float64 {
		if a > b {
			a, b = b, a
		}
		return weight[[2]qtree.NodeID{a, b}]
	}

	placement := tr.LeafPlacement()
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			path := tr.FindPath(placement[i], placement[j])
			var sum float64
			for k := 0; k+1 < len(path); k++ {
				sum += edgeWeight(path[k], path[k+1])
			}
			dist[i][j] = sum
			dist[j][i] = sum
		}
	}
	dm, err := distmatrix.New(dist)
	require.NoError(t, err)
	return dm
}

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
	dm, err := distmatrix.New(dist)
	require.NoError(t, err)
	return dm
}

// N=6, a matrix with a known, exactly realizable optimum. Repeated
// FindBetterTree(tries=32) calls must reach it within 20 outer
// iterations.
func TestFindBetterTree_ReachesKnownOptimum(t *testing.T) {
	t.Parallel()

	dm := additiveMatrixFromRandomTopology(t, 6, 21)
	sc := score.New(dm)
	minCost := sc.MinMax().Min

	tr, err := qtree.NewCaterpillar(dm)
	require.NoError(t, err)

	loop := search.NewLoop(dm, 99)
	for i := 0; i < 20; i++ {
		better, err := loop.FindBetterTree(tr, 32)
		require.NoError(t, err)
		if better != nil {
			tr = better
		}
		if score.FastRawCost(tr) <= minCost+1e-6 {
			break
		}
	}
	require.InDelta(t, minCost, score.FastRawCost(tr), 1e-6)
}

func TestFindBetterTree_NoImprovementReturnsNil(t *testing.T) {
	t.Parallel()

	dm := unitMatrix(t, 5)
	tr, err := qtree.NewCaterpillar(dm)
	require.NoError(t, err)

	// every topology scores identically under a unit matrix, so no
	// candidate can strictly improve on the incumbent.
	loop := search.NewLoop(dm, 1)
	better, err := loop.FindBetterTree(tr, 8)
	require.NoError(t, err)
	require.Nil(t, better)
}

func TestFindBetterTree_DeterministicGivenSeed(t *testing.T) {
	t.Parallel()

	dm := additiveMatrixFromRandomTopology(t, 6, 17)
	tr, err := qtree.NewCaterpillar(dm)
	require.NoError(t, err)

	loop1 := search.NewLoop(dm, 123)
	loop2 := search.NewLoop(dm, 123)

	r1, err1 := loop1.FindBetterTree(tr, 16)
	r2, err2 := loop2.FindBetterTree(tr, 16)
	require.NoError(t, err1)
	require.NoError(t, err2)
	if r1 == nil {
		require.Nil(t, r2)
		return
	}
	require.NotNil(t, r2)
	require.Equal(t, r1.AdjacencyMatrix(), r2.AdjacencyMatrix())
}

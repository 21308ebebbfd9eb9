// Package qsearch is a stochastic local-search engine for unrooted
// ternary phylogenetic trees.
//
// Given an N×N symmetric distance matrix, it searches the space of
// binary tree topologies over N leaves for one maximizing a normalized
// quartet-consistency score: for every 4-subset of leaves, a tree is
// consistent with the one distance-minimizing pairing of that subset
// into two disjoint pairs, and the score rewards trees that agree with
// as many subsets as possible, weighted by how much each pairing choice
// would have cost.
//
// Everything is organized under five subpackages:
//
//	distmatrix/   — immutable, validated N×N distance matrix
//	qtree/        — arena-indexed tree: adjacency, PathOracle, ConnectedNodeMap, DOT/JSON export
//	score/        — fast O(N³) and slow O(N⁴) reference quartet scorers
//	mutate/       — the five topology mutation primitives and the composite mutation schedule
//	search/       — the candidate-parallel hill-climbing loop
//
// A typical search starts from the deterministic caterpillar topology,
// then repeatedly calls search.Loop.FindBetterTree until it stops
// finding improvements:
//
//	dm, _ := distmatrix.New(distances)
//	tree, _ := qtree.NewCaterpillar(dm)
//	loop := search.NewLoop(dm, seed)
//	for {
//	    better, _ := loop.FindBetterTree(tree, 32)
//	    if better == nil {
//	        break
//	    }
//	    tree = better
//	}
package qsearch

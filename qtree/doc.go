// Package qtree implements the unrooted ternary tree that is the core
// data model of the quartet-tree search engine: 2N−2 arena-indexed
// nodes, every node of degree 1 (leaf) or 3 (kernel), a leaf-placement
// permutation mapping distance-matrix columns onto leaf nodes, a lazily
// rebuilt shortest-path (next-hop) oracle, and a per-pass
// ConnectedNodeMap used by the fast quartet scorer.
//
// A Tree is constructed once from a *distmatrix.Matrix with a
// deterministic caterpillar topology (NewCaterpillar) and is then
// mutated in place by the mutate package; qtree itself only provides
// the primitive, invariant-preserving edits (Connect/Disconnect,
// SwapLeafPlacement) plus the read-only derived views.
//
// Nodes are stored arena-style: Tree.nodes is a dense slice indexed by
// NodeID, each entry holding up to three neighbor ids inline, kept
// symmetric at both endpoints of every edge for O(1) neighbor lookups.
package qtree

// SPDX-License-Identifier: MIT
package qtree

import (
	"fmt"
	"math/rand"

	"github.com/qtreekit/qsearch/distmatrix"
	"github.com/qtreekit/qsearch/internal/rng"
)

// maxRandomNodeAttempts bounds rejection sampling in RandomNode before
// StarvationError is returned; it is set generously above any realistic
// tree size so a legitimate node of the requested kind is found quickly.
const maxRandomNodeAttempts = 10000

// Tree is an unrooted ternary tree over 2N−2 arena-indexed nodes, built
// from and scored against a shared, immutable *distmatrix.Matrix. Every
// node has degree 1 (leaf) or 3 (kernel). Tree exclusively owns its
// adjacency, flags, leaf placement, and derived-view caches; the
// DistanceMatrix is shared read-only across every clone in a search.
type Tree struct {
	dm    *distmatrix.Matrix
	nodes []node

	// leafPlacement[i] is the node id carrying distance-matrix column i.
	leafPlacement []NodeID

	spm      [][]NodeID // spm[target][from] = next hop from "from" toward "target"
	spmFresh bool
}

// NewCaterpillar builds the deterministic initial "caterpillar" topology:
// for i in 0..N-3, leaf i connects to kernel N+i, kernels N+i-1 and N+i
// chain together, leaf N-2 attaches to kernel N, and leaf N-1 attaches
// to kernel 2N-3.
func NewCaterpillar(dm *distmatrix.Matrix) (*Tree, error) {
	n := dm.Dim()
	total := 2*n - 2
	t := &Tree{
		dm:    dm,
		nodes: make([]node, total),
	}
	for i := 0; i < n-2; i++ {
		if err := t.Connect(NodeID(i), NodeID(n+i)); err != nil {
			return nil, err
		}
		if i > 0 {
			if err := t.Connect(NodeID(n+i-1), NodeID(n+i)); err != nil {
				return nil, err
			}
		}
	}
	if err := t.Connect(NodeID(n-2), NodeID(n)); err != nil {
		return nil, err
	}
	if err := t.Connect(NodeID(n-1), NodeID(total-1)); err != nil {
		return nil, err
	}

	t.leafPlacement = make([]NodeID, 0, n)
	for id := 0; id < total; id++ {
		if t.nodes[id].degree == 1 {
			t.leafPlacement = append(t.leafPlacement, NodeID(id))
		}
	}
	return t, nil
}

// Matrix returns the shared, immutable DistanceMatrix backing this Tree.
func (t *Tree) Matrix() *distmatrix.Matrix { return t.dm }

// TotalNodes returns 2N−2, the arena size.
func (t *Tree) TotalNodes() int { return len(t.nodes) }

// LeafCount returns N, the number of degree-1 nodes ((total+2)/2).
func (t *Tree) LeafCount() int { return (len(t.nodes) + 2) / 2 }

// KernelCount returns N−2, the number of degree-3 nodes ((total-2)/2).
func (t *Tree) KernelCount() int { return (len(t.nodes) - 2) / 2 }

// LeafPlacement returns the current column→node-id permutation. The
// returned slice is owned by Tree; callers must not mutate it.
func (t *Tree) LeafPlacement() []NodeID { return t.leafPlacement }

// ColumnOf returns the distance-matrix column index currently carried by
// node id, or -1 if id is not a leaf.
func (t *Tree) ColumnOf(id NodeID) int {
	for i, n := range t.leafPlacement {
		if n == id {
			return i
		}
	}
	return -1
}

// Degree returns the current degree (1 or 3) of node id.
func (t *Tree) Degree(id NodeID) int { return int(t.nodes[id].degree) }

// Kind classifies node id by its current degree.
func (t *Tree) Kind(id NodeID) NodeKind { return t.nodes[id].kind() }

// IsConnected reports whether a and b are adjacent. False when a == b.
func (t *Tree) IsConnected(a, b NodeID) bool {
	if a == b {
		return false
	}
	return t.nodes[a].hasNeighbor(b)
}

// Neighbors returns up to three neighbor ids of id, in internal storage
// order. Disconnect moves the last slot into the removed one, so the
// order changes as edges are edited; flags never reorder it.
func (t *Tree) Neighbors(id NodeID) []NodeID {
	n := &t.nodes[id]
	out := make([]NodeID, n.degree)
	copy(out, n.neighbors[:n.degree])
	return out
}

// Connect adds the undirected edge (a,b). Preconditions: a != b, the
// edge does not already exist, and neither endpoint is already at
// maxDegree. Invalidates the PathOracle.
func (t *Tree) Connect(a, b NodeID) error {
	if a == b {
		return fmt.Errorf("qtree.Connect(%d,%d): self-loop: %w", a, b, ErrInvariantViolation)
	}
	if t.IsConnected(a, b) {
		return fmt.Errorf("qtree.Connect(%d,%d): already connected: %w", a, b, ErrInvariantViolation)
	}
	if t.nodes[a].degree >= maxDegree || t.nodes[b].degree >= maxDegree {
		return fmt.Errorf("qtree.Connect(%d,%d): degree would exceed %d: %w", a, b, maxDegree, ErrInvariantViolation)
	}
	t.nodes[a].addNeighbor(b)
	t.nodes[b].addNeighbor(a)
	t.spmFresh = false
	return nil
}

// Disconnect removes the undirected edge (a,b). Precondition: a != b and
// the edge currently exists. Invalidates the PathOracle.
func (t *Tree) Disconnect(a, b NodeID) error {
	if a == b {
		return fmt.Errorf("qtree.Disconnect(%d,%d): self-loop: %w", a, b, ErrInvariantViolation)
	}
	if !t.IsConnected(a, b) {
		return fmt.Errorf("qtree.Disconnect(%d,%d): not connected: %w", a, b, ErrInvariantViolation)
	}
	t.nodes[a].removeNeighbor(b)
	t.nodes[b].removeNeighbor(a)
	t.spmFresh = false
	return nil
}

// SwapLeafPlacement swaps the column assignments of leaf-placement
// indices i and j (0 <= i,j < LeafCount). Topology is unchanged; does
// not touch the PathOracle.
func (t *Tree) SwapLeafPlacement(i, j int) {
	t.leafPlacement[i], t.leafPlacement[j] = t.leafPlacement[j], t.leafPlacement[i]
}

// Flag reports whether bit is set on node id.
func (t *Tree) Flag(id NodeID, bit Flags) bool { return t.nodes[id].flags&bit != 0 }

// SetFlag sets or clears bit on node id.
func (t *Tree) SetFlag(id NodeID, bit Flags, on bool) {
	if on {
		t.nodes[id].flags |= bit
	} else {
		t.nodes[id].flags &^= bit
	}
}

// ClearFlagAll clears bit on every node; used before a fresh quartet-mark pass.
func (t *Tree) ClearFlagAll(bit Flags) {
	for i := range t.nodes {
		t.nodes[i].flags &^= bit
	}
}

// RandomNode uniformly samples nodes by rejection until one of the
// requested kind is found. Returns ErrStarvation if no node of kind
// exists after maxRandomNodeAttempts tries.
func (t *Tree) RandomNode(kind NodeKind, r *rand.Rand) (NodeID, error) {
	total := len(t.nodes)
	for attempt := 0; attempt < maxRandomNodeAttempts; attempt++ {
		id := NodeID(rng.IntRange(r, 0, total-1))
		if t.nodes[id].kind()&kind != 0 {
			return id, nil
		}
	}
	return 0, fmt.Errorf("qtree.RandomNode(kind=%d): %w", kind, ErrStarvation)
}

// RandomNodeButNot is RandomNode restricted to ids != butNot.
func (t *Tree) RandomNodeButNot(kind NodeKind, butNot NodeID, r *rand.Rand) (NodeID, error) {
	for attempt := 0; attempt < maxRandomNodeAttempts; attempt++ {
		id, err := t.RandomNode(kind, r)
		if err != nil {
			return 0, err
		}
		if id != butNot {
			return id, nil
		}
	}
	return 0, fmt.Errorf("qtree.RandomNodeButNot(kind=%d,butNot=%d): %w", kind, butNot, ErrStarvation)
}

// RandomNeighbor returns a uniformly chosen current neighbor of who.
func (t *Tree) RandomNeighbor(who NodeID, r *rand.Rand) NodeID {
	n := &t.nodes[who]
	return n.neighbors[rng.IntRange(r, 0, int(n.degree)-1)]
}

// Clone returns a deep copy of this Tree's mutable state (adjacency,
// flags, leaf placement); the DistanceMatrix is shared by pointer. The
// clone's PathOracle starts stale and is rebuilt lazily on first use.
func (t *Tree) Clone() *Tree {
	c := &Tree{
		dm:            t.dm,
		nodes:         append([]node(nil), t.nodes...),
		leafPlacement: append([]NodeID(nil), t.leafPlacement...),
	}
	return c
}

// IsValidTree checks the full set of structural invariants: degree
// constraints, symmetric reachable path lengths in [1,2N-2], and every
// leaf-placement entry actually pointing at a degree-1 node. Intended
// for tests only; O(N^3), since the all-pairs path-length check walks an
// O(N) path for each of the O(N^2) pairs.
func (t *Tree) IsValidTree() bool {
	for _, leafNode := range t.leafPlacement {
		if t.Degree(leafNode) != 1 {
			return false
		}
	}
	total := len(t.nodes)
	for i := 0; i < total; i++ {
		d := t.nodes[i].degree
		if d != 1 && d != 3 {
			return false
		}
	}
	for i := 0; i < total; i++ {
		for j := 0; j < total; j++ {
			l1 := t.FindPathLength(NodeID(i), NodeID(j))
			l2 := t.FindPathLength(NodeID(j), NodeID(i))
			if l1 != l2 {
				return false
			}
			if l1 < 1 || l1 > total {
				return false
			}
		}
	}
	return true
}

// SPDX-License-Identifier: MIT
package mutate

import (
	"math/rand"

	"github.com/qtreekit/qsearch/qtree"
)

// Mutator applies mutation primitives to one Tree and keeps its own
// Stats. Callers construct one per tree they intend to mutate; a search
// over many candidate trees in parallel constructs one Mutator per
// candidate so Stats never need synchronization.
type Mutator struct {
	tree  *qtree.Tree
	stats Stats
}

// New returns a Mutator bound to t.
func New(t *qtree.Tree) *Mutator {
	return &Mutator{tree: t}
}

// Stats returns the running mutation counters for this Mutator.
func (m *Mutator) Stats() Stats { return m.stats }

// SimpleMutation applies exactly one of leaf-swap, subtree-transfer, or
// subtree-interchange, retrying the random kind choice until one whose
// precondition holds is found.
func (m *Mutator) SimpleMutation(r *rand.Rand) error {
	if err := dispatchSimpleMutation(m.tree, r); err != nil {
		return err
	}
	m.stats.recordSimple()
	return nil
}

// ComplexMutation draws a mutation count from the heavy-tailed discrete
// distribution and applies that many simple mutations in sequence.
func (m *Mutator) ComplexMutation(r *rand.Rand) error {
	m.stats.beginComposite()
	count := mutationCountSample(r)
	for i := 0; i < count; i++ {
		if err := dispatchSimpleMutation(m.tree, r); err != nil {
			return err
		}
		m.stats.recordSimple()
	}
	m.stats.endComposite()
	return nil
}

// PairwiseSwap samples a random node pair and applies SwapNodes,
// returning an undo closure that reverts it exactly.
func (m *Mutator) PairwiseSwap(r *rand.Rand) (p1, p2 qtree.NodeID, undo func() error, err error) {
	p1, p2, err = RandomPair(m.tree, r)
	if err != nil {
		return 0, 0, nil, err
	}
	if err := SwapNodes(m.tree, p1, p2); err != nil {
		return 0, 0, nil, err
	}
	tree := m.tree
	undo = func() error { return SwapNodes(tree, p1, p2) }
	return p1, p2, undo, nil
}

// SubtreeMove samples a random node pair and applies SubtreeMove,
// returning its undo closure.
func (m *Mutator) SubtreeMove(r *rand.Rand) (p1, p2 qtree.NodeID, undo func() error, err error) {
	p1, p2, err = RandomSubtreeMovePair(m.tree, r)
	if err != nil {
		return 0, 0, nil, err
	}
	undo, err = SubtreeMove(m.tree, p1, p2)
	if err != nil {
		return 0, 0, nil, err
	}
	return p1, p2, undo, nil
}

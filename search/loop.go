// SPDX-License-Identifier: MIT
package search

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/qtreekit/qsearch/internal/rng"
	"github.com/qtreekit/qsearch/mutate"
	"github.com/qtreekit/qsearch/qtree"
	"github.com/qtreekit/qsearch/score"
	"golang.org/x/sync/errgroup"
)

// acceptanceBeta is the Metropolis inverse-temperature used by every
// candidate's inner loop; 1.0 biases toward improving moves, 0.0 would
// recover an unbiased random walk.
const acceptanceBeta = 1.0

// scoreEpsilon is the "close enough to count as an improvement"
// tolerance used both for best-so-far snapshotting and for comparing a
// finished candidate against the incumbent.
const scoreEpsilon = 1e-6

// Loop runs the candidate-parallel search loop. It is stateless beyond
// its RNG seed and is safe to reuse across calls; each FindBetterTree
// call derives a fresh, independent RNG stream per try.
type Loop struct {
	seed   int64
	scorer *score.Scorer
}

// NewLoop returns a Loop scoring against dm, seeded for reproducibility.
func NewLoop(dm score.DistanceSource, seed int64) *Loop {
	return &Loop{seed: seed, scorer: score.New(dm)}
}

// FindBetterTree explores up to tries independent candidates derived
// from incumbent. Among the candidates whose normalized score exceeds
// incumbent's by more than the epsilon tolerance, it returns the one
// with the highest score (ties go to the lowest try index, so the
// result does not depend on which worker finishes first), or (nil, nil)
// if no candidate improves on it.
func (l *Loop) FindBetterTree(incumbent *qtree.Tree, tries int) (*qtree.Tree, error) {
	incumbentScore, err := l.scorer.Score(incumbent)
	if err != nil {
		return nil, err
	}

	parent := rng.New(l.seed)
	streams := make([]*rand.Rand, tries)
	for i := 0; i < tries; i++ {
		streams[i] = rng.Derive(parent, uint64(i))
	}

	var mu sync.Mutex
	var best *qtree.Tree
	bestScore := incumbentScore
	bestTry := -1

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < tries; i++ {
		i := i
		g.Go(func() error {
			r := streams[i]
			cand := l.runCandidate(incumbent, r)

			candScore, err := l.scorer.Score(cand)
			if err != nil {
				// a candidate producing an out-of-range raw cost is a
				// scoring bug, not grounds to abort the whole search;
				// discard this candidate and keep the others.
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			if candScore > incumbentScore+scoreEpsilon &&
				(best == nil || candScore > bestScore || (candScore == bestScore && i < bestTry)) {
				best = cand
				bestScore = candScore
				bestTry = i
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return best, nil
}

// runCandidate clones incumbent and performs TotalNodes() pairwise-
// swap/subtree-move attempts under Metropolis acceptance, tracking the
// best raw-cost snapshot seen.
func (l *Loop) runCandidate(incumbent *qtree.Tree, r *rand.Rand) *qtree.Tree {
	cand := incumbent.Clone()
	m := mutate.New(cand)

	bestSoFar := score.FastRawCost(cand)
	bestSnapshot := cand.Clone()

	attempts := cand.TotalNodes()
	for j := 0; j < attempts; j++ {
		cur := score.FastRawCost(cand)

		undo, err := applyAttempt(m, r)
		if err != nil {
			continue
		}

		now := score.FastRawCost(cand)
		if now <= bestSoFar+scoreEpsilon {
			bestSoFar = now
			bestSnapshot = cand.Clone()
		}

		if r.Float64() >= math.Exp(acceptanceBeta*(cur-now)) {
			undo()
		}
	}
	return bestSnapshot
}

// applyAttempt performs one pairwise node-swap (probability 2/3) or one
// subtree-move (probability 1/3), returning its undo closure.
func applyAttempt(m *mutate.Mutator, r *rand.Rand) (func() error, error) {
	if rng.IntRange(r, 0, 2) < 2 {
		_, _, undo, err := m.PairwiseSwap(r)
		return undo, err
	}
	_, _, undo, err := m.SubtreeMove(r)
	return undo, err
}

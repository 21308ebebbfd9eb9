// Package search implements the outer stochastic hill-climbing loop:
// given an incumbent tree, it explores a batch of independent candidate
// trees in parallel and returns any candidate whose normalized score
// exceeds the incumbent's.
//
// Each candidate is a clone of the incumbent mutated by a fixed number
// of pairwise node-swap / subtree-move attempts under Metropolis
// acceptance (β=1.0, lower raw cost preferred). Candidates are pure
// functions of their clone and a derived RNG stream, so a Loop
// constructed with a fixed seed reproduces every run byte-for-byte; the
// only contended state across workers is the published best-candidate
// slot, held behind one mutex.
package search

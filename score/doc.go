// Package score computes the quartet-consistency cost of a qtree.Tree
// against a distance matrix and normalizes it to a [0,1] score.
//
// Scorer precomputes MIN and MAX once per distance matrix (the sums,
// over every leaf 4-subset, of the minimum/maximum of the three pairing
// costs) and then scores any number of trees against that matrix in
// O(N^3) via FastRawCost, which accumulates an integer pair-multiplier
// tensor before a single dot product with the distance matrix — this
// keeps the result independent of floating-point summation order, so
// the fast and slow (O(N^4), path-intersection-based) scorers agree to
// tight tolerance regardless of traversal order.
package score

// Package mutate implements the five topology-preserving mutation
// primitives of the quartet-tree search engine (leaf-swap, subtree-
// transfer, subtree-interchange, rooted pairwise node-swap, rooted
// subtree-move), the composite mutation schedule that draws a random
// count of simple mutations from a heavy-tailed discrete distribution,
// and a per-caller Stats counter, redesigned from scratch as
// explicit, caller-owned state rather than process-wide counters.
//
// Every mutation takes an explicit *rand.Rand, never a package-global
// generator, so a search can reproduce any run from one seed.
package mutate

// Package rng centralizes deterministic random-number generation shared
// by mutate and search: a seed-to-*rand.Rand constructor and a
// SplitMix64-style stream derivation helper so that parallel search
// candidates get independent, reproducible RNG streams from one
// search-level seed.
package rng

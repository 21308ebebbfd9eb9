// SPDX-License-Identifier: MIT
package rng

import "math/rand"

// defaultSeed is the fixed "zero" seed used when callers pass seed==0,
// kept stable so defaults are reproducible across runs.
const defaultSeed int64 = 1

// New returns a deterministic *rand.Rand. seed==0 is mapped to
// defaultSeed so a zero-value search config still behaves
// deterministically rather than silently becoming random.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// Derive creates an independent deterministic RNG stream from a parent
// RNG and a stream identifier (e.g. a candidate-try index), using a
// SplitMix64-style avalanche mix so that consecutive streams are well
// decorrelated. parent.Int63() is consumed once first so repeated calls
// with the same stream id from the same parent never collide.
func Derive(parent *rand.Rand, stream uint64) *rand.Rand {
	var base int64
	if parent == nil {
		base = defaultSeed
	} else {
		base = parent.Int63()
	}
	return rand.New(rand.NewSource(mix(base, stream)))
}

// mix applies the canonical SplitMix64 finalizer to (parent, stream).
func mix(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// IntRange returns a uniform integer in [lo, hi], inclusive of both
// ends. Requires hi >= lo.
func IntRange(r *rand.Rand, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + r.Intn(hi-lo+1)
}

// FairCoin returns a uniform boolean.
func FairCoin(r *rand.Rand) bool {
	return r.Intn(2) == 0
}

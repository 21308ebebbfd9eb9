// SPDX-License-Identifier: MIT
package mutate

import (
	"math"
	"math/rand"
)

// maxCompositeMutationCount bounds the discrete distribution sampled by
// mutationCountSample; weights beyond this index are negligible.
const maxCompositeMutationCount = 80

// mutationCountWeights holds p(k) ∝ 1/((k+4)*log2(k+4)^2) for k in
// [0,maxCompositeMutationCount), scaled by 1e6 and truncated to an
// integer exactly like the distillation this engine is built from, so
// single mutations remain the common case while occasional long
// composite mutations still occur.
var mutationCountWeights = buildMutationCountWeights()

func buildMutationCountWeights() []float64 {
	w := make([]float64, maxCompositeMutationCount)
	for i := range w {
		k := float64(i + 4)
		log2k := math.Log(k) / math.Log(2.0)
		w[i] = math.Trunc(1000000.0 / (k * log2k * log2k))
	}
	return w
}

// mutationCountSample draws one value from the discrete distribution
// over mutationCountWeights and returns it plus one, so a composite
// mutation always performs at least one simple mutation.
func mutationCountSample(r *rand.Rand) int {
	var total float64
	for _, w := range mutationCountWeights {
		total += w
	}
	target := r.Float64() * total
	var acc float64
	for i, w := range mutationCountWeights {
		acc += w
		if target < acc {
			return i + 1
		}
	}
	return len(mutationCountWeights)
}

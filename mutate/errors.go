// SPDX-License-Identifier: MIT
package mutate

import "errors"

// ErrNoApplicableMutation is returned when SimpleMutation exhausts its
// retry budget without finding an applicable mutation kind; this can
// only happen on pathologically small trees, since leaf-swap always
// applies whenever LeafCount() >= 2.
var ErrNoApplicableMutation = errors.New("mutate: no applicable mutation found")

// ErrNoCandidatePair is returned when rejection sampling for a mutation
// primitive's node pair exhausts its retry budget.
var ErrNoCandidatePair = errors.New("mutate: no candidate node pair found")

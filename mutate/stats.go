// SPDX-License-Identifier: MIT
package mutate

// Stats counts mutations applied through one Mutator. Each search owns
// its own Stats (constructed fresh by New), so parallel candidates
// never contend on shared counters.
//
// LastSimple holds the simple-mutation count from the most recently
// completed composite mutation; it is reset to 0 when a composite
// mutation begins, not when it ends, so it remains readable afterward.
// Standalone SimpleMutation calls also increment it, so after such calls
// it exceeds the last composite mutation's count.
type Stats struct {
	TotalSimple    int
	LastSimple     int
	TotalComposite int
}

func (s *Stats) recordSimple() {
	s.TotalSimple++
	s.LastSimple++
}

func (s *Stats) beginComposite() {
	s.LastSimple = 0
}

func (s *Stats) endComposite() {
	s.TotalComposite++
}

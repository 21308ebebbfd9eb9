// SPDX-License-Identifier: MIT
// Package qtree: sentinel error set.

package qtree

import "errors"

var (
	// ErrInvariantViolation is returned when a Connect/Disconnect
	// precondition is breached, or when Connect would push a node's
	// degree above 3. Fatal for the affected Tree; a search
	// worker discards its clone and continues.
	ErrInvariantViolation = errors.New("qtree: invariant violation")

	// ErrStarvation is returned by RandomNode when repeated rejection
	// sampling fails to find a node of the requested kind after a
	// bounded number of attempts, and the tree genuinely has no node
	// of that kind. Indicates a programming error upstream.
	ErrStarvation = errors.New("qtree: starvation sampling random node")
)

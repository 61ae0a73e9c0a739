package abita

import "errors"

// Runtime search errors. These are not failures: spec.md treats a rejected
// swap, a stalled diffusion, or an unsatisfiable seeding attempt as the
// ordinary control flow of the search (see SPEC_FULL.md §7). They surface as
// plain error values only where a caller genuinely cannot proceed (e.g.
// RandomSeed finding no eligible seed cell); elsewhere they surface as bool.
var (
	// ErrNoEligibleNeighbor is returned by Solution.RandomSeed when fewer
	// than nbSeeds unassigned cells are adjacent to the common lot, so
	// seeding cannot reach its target lot count. RandomSeed lists every
	// eligible cell before each draw, so it reports this as soon as the
	// list is empty instead of searching again.
	ErrNoEligibleNeighbor = errors.New("abita: no eligible neighbor cell found while seeding")

	// ErrEmptyGeometry is returned when an operation requires at least one
	// element and the Geometry/Solution has none.
	ErrEmptyGeometry = errors.New("abita: geometry has no elements")
)

package abita

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/rnd"
)

// Solution is a full assignment of Geometry's elements to Lots, encoded as a
// dense distribution vector: Distribution[i] is the lot index of element i,
// or -1 if unassigned. Lot 0 is the common (circulation) lot by convention.
type Solution struct {
	Elements     []*Element // borrowed read-only reference into a Geometry
	Distribution []int
	Lots         []*Lot
	Fitness      float64
	Mark         bool
}

// NewSolution creates a solution over g's elements with every element
// unassigned. This is the "from Geometry" constructor spec.md 9 asks to be
// split out of a duck-typed single constructor.
func NewSolution(g *Geometry) *Solution {
	s := &Solution{Elements: g.Elements}
	s.Distribution = make([]int, len(g.Elements))
	for i := range s.Distribution {
		s.Distribution[i] = -1
	}
	return s
}

// NewSolutionFrom deep-copies other's distribution (sharing its element
// reference) and rebuilds the lot list from it. This is the "from Solution"
// constructor spec.md 9 asks to be split out.
func NewSolutionFrom(other *Solution) *Solution {
	s := &Solution{Elements: other.Elements}
	s.Distribution = append([]int(nil), other.Distribution...)
	s.SetLots()
	return s
}

// Equal reports whether two solutions share the same element list and an
// identical distribution vector.
func (s *Solution) Equal(o *Solution) bool {
	if len(s.Elements) != len(o.Elements) || len(s.Lots) != len(o.Lots) {
		return false
	}
	for i := range s.Elements {
		if s.Elements[i] != o.Elements[i] {
			return false
		}
	}
	for i := range s.Distribution {
		if s.Distribution[i] != o.Distribution[i] {
			return false
		}
	}
	return true
}

// SetLots rebuilds the lot list from scratch out of the current
// distribution: clears Lots, allocates max(Distribution)+1 Lots (one per
// index from 0 to the maximum, whether or not that index is used), adds every assigned element
// to its lot, then builds every lot's border. Idempotent: calling it twice
// in a row yields identical lot content (spec.md 3's Solution invariant).
func (s *Solution) SetLots() {
	if len(s.Elements) == 0 {
		return
	}
	s.Lots = nil

	nbLots := 0
	for _, d := range s.Distribution {
		if d+1 > nbLots {
			nbLots = d + 1
		}
	}
	if nbLots == 0 {
		return
	}

	s.Lots = make([]*Lot, nbLots)
	for i := range s.Lots {
		s.Lots[i] = newLot(s, i)
	}
	for i, d := range s.Distribution {
		if d > -1 {
			s.Lots[d].AddElement(s.Elements[i])
		}
	}
	for _, lot := range s.Lots {
		lot.BuildBorder()
	}
}

// Swap is the neighbor-swap move: it reassigns the element on the far side
// of lot lotID's segID-th border segment into lotID, provided every
// connectivity precondition of spec.md 4.C holds. Returns whether the move
// was applied; a rejected swap is ordinary search control flow, not an
// error (SPEC_FULL.md §7).
func (s *Solution) Swap(lotID, segID int) bool {
	if len(s.Lots) < 2 {
		return false
	}
	if lotID < 0 || lotID > len(s.Lots)-1 {
		return false
	}
	lot := s.Lots[lotID]

	if segID < 0 || segID > len(lot.Border)-1 {
		return false
	}
	seg := lot.Border[segID]

	elt := lot.borderNeighbor(seg)
	if elt == nil || elt.Imposed {
		return false
	}
	if lotID == 0 && !elt.Common {
		return false
	}

	nlotID := s.Distribution[elt.Index]
	nlot := s.Lots[nlotID]
	if len(nlot.Elements) < 2 {
		return false
	}

	if nlotID > 0 && !nlot.StillConnex(elt) {
		return false
	}

	if lotID > 0 {
		for _, es := range elt.Segments {
			next := es.NextOf(elt)
			i := -1
			if next != nil {
				i = s.Distribution[next.Index]
			}
			if i > -1 && i != lotID {
				if !s.Lots[i].StillConnected(elt) {
					return false
				}
			}
		}
	}

	nlot.RemoveElement(elt)
	lot.MergeElement(elt)
	return true
}

// SortLots reorders Lots so lot indices follow the order in which each lot
// id first appears while scanning the distribution, with lot 0 pinned at
// position 0, then rewrites Distribution to match. This is the canonical
// ordering used by solution equality and by Population insertion.
func (s *Solution) SortLots() {
	if len(s.Lots) < 2 {
		return
	}

	old := s.Lots
	sorted := make([]*Lot, len(old))
	sorted[0] = old[0]

	i, j := 0, 1
	for i < len(s.Elements) && j < len(sorted) {
		target := old[s.Distribution[i]]
		k := 0
		for k < j && sorted[k] != target {
			k++
		}
		if k == j {
			sorted[j] = target
			j++
		}
		i++
	}

	s.Lots = sorted
	for idx, lot := range s.Lots {
		lot.Index = idx
		for _, elt := range lot.Elements {
			s.Distribution[elt.Index] = idx
		}
	}
}

// RandomSeed builds a random initial partition: every common element is
// auto-assigned to lot 0, then nbSeeds fresh lots are seeded on random
// unassigned cells adjacent to lot 0, lots are built, non-common lots are
// grown by repeated diffusion, and any still-unassigned cells are each
// spun off into their own lot and diffused to completion.
//
// Returns ErrEmptyGeometry if the underlying geometry has no elements at all,
// and ErrNoEligibleNeighbor if a seed cannot find any unassigned cell
// adjacent to the common lot.
func (s *Solution) RandomSeed(nbSeeds int) error {
	if len(s.Elements) == 0 {
		return ErrEmptyGeometry
	}

	for i, elt := range s.Elements {
		if elt.Common && s.Distribution[i] < 0 {
			s.Distribution[i] = 0
		}
	}

	for seeded := 0; seeded < nbSeeds; seeded++ {
		j, ok := s.pickSeedCandidate()
		if !ok {
			return ErrNoEligibleNeighbor
		}
		s.Distribution[j] = seeded + 1
	}

	s.SetLots()

	progressed := true
	for progressed {
		progressed = false
		for _, lot := range s.Lots {
			if lot.Index != 0 && lot.Diffuse() {
				progressed = true
			}
		}
	}

	for {
		i := s.firstUnassigned()
		if i < 0 {
			break
		}
		s.Distribution[i] = len(s.Lots)
		s.SetLots()
		last := s.Lots[len(s.Lots)-1]
		for last.Diffuse() {
		}
	}

	return nil
}

// pickSeedCandidate draws a uniformly random unassigned element that is
// adjacent (via any segment) to an element already in lot 0, using the
// "draw the (i+1)-th eligible cell for a uniformly drawn i" rule of
// spec.md 4.C. Returns ok=false if no unassigned element is adjacent to lot
// 0 at all.
func (s *Solution) pickSeedCandidate() (int, bool) {
	var eligible []int
	for j, elt := range s.Elements {
		if s.Distribution[j] >= 0 {
			continue
		}
		for _, seg := range elt.Segments {
			next := seg.NextOf(elt)
			if next != nil && s.Distribution[next.Index] == 0 {
				eligible = append(eligible, j)
				break
			}
		}
	}
	if len(eligible) == 0 {
		return 0, false
	}
	i := rnd.Int(0, len(eligible)-1)
	return eligible[i], true
}

// firstUnassigned returns the index of the first element with no lot
// assignment, or -1 if every element is assigned.
func (s *Solution) firstUnassigned() int {
	for i, d := range s.Distribution {
		if d < 0 {
			return i
		}
	}
	return -1
}

// checkInvariants panics (via gosl/chk) if the distribution-consistency
// invariant of spec.md §8 is violated. Used by tests; not called on the hot
// path.
func (s *Solution) checkInvariants() {
	for _, lot := range s.Lots {
		for _, elt := range lot.Elements {
			if s.Distribution[elt.Index] != lot.Index {
				chk.Panic("Solution: distribution[%d]=%d but element is listed in lot %d",
					elt.Index, s.Distribution[elt.Index], lot.Index)
			}
		}
	}
}

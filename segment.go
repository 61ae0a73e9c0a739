package abita

import "math"

// Segment is a shared edge between up to two Elements. Equality is the
// unordered pair of its endpoints, so a segment built while walking one
// element's boundary is recognized as "the same" segment when the
// neighboring element later walks it in the opposite direction.
type Segment struct {
	P1, P2 *Point
	Floor  int
	Length float64

	// E1, E2 are the up to two elements incident to this segment. Bound by
	// Geometry.Build's connectivity pass; nil means "no element on that
	// side yet" (or ever, for a segment on the outer perimeter).
	E1, E2 *Element

	// Mark is scratch state used only by Lot.BorderPoints' cycle walk. No
	// connectivity predicate depends on it (see SPEC_FULL.md §4 for why).
	Mark bool
}

// NewSegment builds a segment from two endpoints, deriving floor and length.
func NewSegment(p1, p2 *Point) *Segment {
	return &Segment{
		P1:     p1,
		P2:     p2,
		Floor:  p1.Floor,
		Length: math.Hypot(p2.X-p1.X, p2.Y-p1.Y),
	}
}

// Equal reports whether two segments share the same unordered endpoint pair.
func (s *Segment) Equal(o *Segment) bool {
	if s == nil || o == nil {
		return s == o
	}
	return (s.P1.Equal(o.P1) && s.P2.Equal(o.P2)) ||
		(s.P1.Equal(o.P2) && s.P2.Equal(o.P1))
}

// SetElement binds one of the segment's two element slots to elt. Returns
// true if elt now occupies a slot (either because it was just bound, or
// because it already occupied one), false if both slots are taken by other
// elements.
func (s *Segment) SetElement(elt *Element) bool {
	if s.E1 == nil {
		s.E1 = elt
		return true
	}
	if s.E2 == nil {
		s.E2 = elt
		return true
	}
	return s.E1 == elt || s.E2 == elt
}

// NextOf returns the element on the other side of the segment from elt, or
// nil if elt does not border this segment (or the other side is unbound).
func (s *Segment) NextOf(elt *Element) *Element {
	switch {
	case s.E1 == elt:
		return s.E2
	case s.E2 == elt:
		return s.E1
	default:
		return nil
	}
}

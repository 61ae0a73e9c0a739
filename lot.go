package abita

import (
	"strconv"

	"github.com/katalvlaran/lvlath/graph"
)

// Lot is a contiguous group of Elements belonging to exactly one Solution:
// either a candidate apartment, or (by convention, index 0) the common
// circulation space. Its border is the set of Segments with exactly one
// incident element inside the lot.
type Lot struct {
	Index    int
	Common   bool
	Area     float64
	Length   float64
	Fitness  float64
	TypeNo   int
	Elements []*Element
	Border   []*Segment

	solution *Solution // non-owning back-reference
}

// newLot creates an empty lot at the given index within sol.
func newLot(sol *Solution, index int) *Lot {
	return &Lot{Index: index, solution: sol}
}

// Contain reports whether elt is currently assigned to this lot.
func (l *Lot) Contain(elt *Element) bool {
	if elt == nil {
		return false
	}
	return l.Index == elt.Lot(l.solution)
}

// AddElement appends elt to the lot and updates the solution's distribution,
// area, and the Common flag, but does NOT touch the border: callers that add
// elements in bulk (Solution.SetLots) must call BuildBorder afterward.
func (l *Lot) AddElement(elt *Element) {
	l.Elements = append(l.Elements, elt)
	l.solution.Distribution[elt.Index] = l.Index
	if elt.Exit {
		l.Common = true
	}
	l.Area += elt.Area
}

// MergeElement adds elt to the lot and incrementally updates the border: for
// each of elt's segments, the segment leaves the border if its far side is
// already a lot member (it becomes interior), or enters the border
// otherwise. Returns false if elt is already a member.
func (l *Lot) MergeElement(elt *Element) bool {
	if elt == nil {
		return false
	}
	for _, e := range l.Elements {
		if e == elt {
			return false
		}
	}

	l.Elements = append(l.Elements, elt)
	for _, seg := range elt.Segments {
		if l.Contain(seg.NextOf(elt)) {
			l.removeSegment(seg)
		} else {
			l.addSegment(seg)
		}
	}
	l.solution.Distribution[elt.Index] = l.Index
	l.Area += elt.Area
	return true
}

// RemoveElement removes elt from the lot, symmetrically rebuilding the
// border. Returns false if elt was not a member.
func (l *Lot) RemoveElement(elt *Element) bool {
	for i, e := range l.Elements {
		if e != elt {
			continue
		}
		l.Elements = append(l.Elements[:i], l.Elements[i+1:]...)

		for _, seg := range elt.Segments {
			if l.Contain(seg.NextOf(elt)) {
				l.addSegment(seg)
			} else {
				l.removeSegment(seg)
			}
		}

		l.solution.Distribution[elt.Index] = -1
		l.Area -= elt.Area
		return true
	}
	return false
}

// BuildBorder recomputes the lot's border from scratch: a segment of a
// member element is a border segment iff exactly one of its incident
// elements belongs to this lot.
func (l *Lot) BuildBorder() {
	l.Border = nil
	l.Length = 0
	for _, elt := range l.Elements {
		for _, seg := range elt.Segments {
			if l.Contain(seg.NextOf(elt)) {
				l.removeSegment(seg)
			} else {
				l.addSegment(seg)
			}
		}
	}
}

func (l *Lot) addSegment(seg *Segment) {
	l.Border = append(l.Border, seg)
	l.Length += seg.Length
}

func (l *Lot) removeSegment(seg *Segment) {
	for i, s := range l.Border {
		if s == seg {
			l.Border = append(l.Border[:i], l.Border[i+1:]...)
			l.Length -= seg.Length
			return
		}
	}
}

// memberGraph builds a throwaway adjacency graph over the lot's currently
// assigned members: one vertex per member element index, one undirected
// edge per interior segment connecting two members. This is the
// per-traversal substitute for the shared Element.Mark field that
// SPEC_FULL.md §4 adopts to avoid the original's exclusive-borrow
// discipline; it costs one small graph build per connectivity check, which
// is cheap at the size of lot this domain produces.
func (l *Lot) memberGraph() *graph.Graph {
	g := graph.NewGraph(false, false)
	for _, elt := range l.Elements {
		g.AddVertex(&graph.Vertex{ID: vertexID(elt)})
	}
	for _, elt := range l.Elements {
		for _, seg := range elt.Segments {
			next := seg.NextOf(elt)
			if next != nil && l.Contain(next) {
				g.AddEdge(vertexID(elt), vertexID(next), 1)
			}
		}
	}
	return g
}

func vertexID(elt *Element) string {
	return strconv.Itoa(elt.Index)
}

// StillConnex reports whether the lot's induced subgraph would remain
// connected if removed were deleted from it. Precondition: removed is
// currently a member. Always false if removed is not a member, if the lot
// has at most one element, or if removed is imposed (imposed elements can
// never leave the common lot, so the question is moot there and the
// original treats it as a hard no).
func (l *Lot) StillConnex(removed *Element) bool {
	if removed.Lot(l.solution) != l.Index {
		return false
	}
	if len(l.Elements) < 2 || removed.Imposed {
		return false
	}

	g := l.memberGraph()

	var start *Element
	for _, seg := range removed.Segments {
		if n := seg.NextOf(removed); n != nil && l.Contain(n) {
			start = n
			break
		}
	}
	if start == nil {
		// removed has no in-lot neighbor even though the lot has >= 2
		// members: it was already disconnected from the rest before removal.
		return false
	}

	g.RemoveVertex(vertexID(removed))
	res, err := g.BFS(vertexID(start), nil)
	if err != nil {
		return false
	}
	return len(res.Visited) == len(l.Elements)-1
}

// StillConnected reports whether the lot would remain connected to an exit
// (for the common lot) or adjacent to the common lot (for any other lot) if
// removed were deleted from its current lot.
func (l *Lot) StillConnected(removed *Element) bool {
	lotID := removed.Lot(l.solution)

	if lotID == 0 {
		if l.Common {
			if removed.Imposed {
				return false
			}
			return l.commonStillConnectedToExit(removed)
		}
		for _, seg := range l.Border {
			neighbor := l.borderNeighbor(seg)
			if neighbor != nil && neighbor != removed && neighbor.Lot(l.solution) == 0 {
				return true
			}
		}
		return false
	}

	if lotID != l.Index {
		return true
	}
	for _, seg := range l.Border {
		if seg.E1 == removed || seg.E2 == removed {
			continue
		}
		neighbor := l.borderNeighbor(seg)
		if neighbor != nil && neighbor != removed && neighbor.Lot(l.solution) == 0 {
			return true
		}
	}
	return false
}

// borderNeighbor returns the element across a border segment that is not
// this lot's member (i.e. the neighbor outside the lot).
func (l *Lot) borderNeighbor(seg *Segment) *Element {
	if l.Contain(seg.E1) {
		return seg.E2
	}
	return seg.E1
}

// commonStillConnectedToExit checks that every member of the common lot
// remains reachable from some exit element once removed is gone, using a
// multi-source BFS seeded from every exit.
func (l *Lot) commonStillConnectedToExit(removed *Element) bool {
	g := l.memberGraph()
	g.RemoveVertex(vertexID(removed))

	reached := make(map[string]bool, len(l.Elements))
	for _, elt := range l.Elements {
		if !elt.Exit || elt == removed {
			continue
		}
		res, err := g.BFS(vertexID(elt), nil)
		if err != nil {
			continue
		}
		for id := range res.Visited {
			reached[id] = true
		}
		reached[vertexID(elt)] = true
	}

	for _, elt := range l.Elements {
		if elt == removed {
			continue
		}
		if !reached[vertexID(elt)] {
			return false
		}
	}
	return true
}

// Diffuse attempts to grow the lot by absorbing exactly one neighbor across
// its border: an unassigned, non-imposed neighbor is merged directly; a
// neighbor currently in the common lot is merged only if every other lot
// adjacent to it would stay connected to the common lot without it. Returns
// true if an element was merged.
func (l *Lot) Diffuse() bool {
	for _, seg := range append([]*Segment(nil), l.Border...) {
		elt := l.borderNeighbor(seg)
		if elt == nil {
			continue
		}
		lotID := elt.Lot(l.solution)

		if lotID < 0 && !elt.Imposed {
			if l.MergeElement(elt) {
				return true
			}
			continue
		}

		if lotID == 0 && !elt.Imposed {
			if l.safeToPullFromCommon(elt) {
				l.solution.Lots[0].RemoveElement(elt)
				if l.MergeElement(elt) {
					return true
				}
			}
		}
	}
	return false
}

// safeToPullFromCommon reports whether removing elt from the common lot
// would leave every other lot adjacent to elt still connected to the common
// lot.
func (l *Lot) safeToPullFromCommon(elt *Element) bool {
	for _, seg := range elt.Segments {
		next := seg.NextOf(elt)
		if next == nil {
			continue
		}
		i := next.Lot(l.solution)
		if i > -1 && i != l.Index {
			if !l.solution.Lots[i].StillConnected(elt) {
				return false
			}
		}
	}
	return true
}

// BorderPoints returns the ordered vertex cycle traced by the lot's border
// segments. Assumes the border forms a single simple cycle.
func (l *Lot) BorderPoints() []*Point {
	if len(l.Border) == 0 {
		return nil
	}
	for _, seg := range l.Border {
		seg.Mark = false
	}
	first := l.Border[0]
	first.Mark = true
	points := []*Point{first.P1, first.P2}

	for len(points) != len(l.Border) {
		advanced := false
		last := points[len(points)-1]
		for _, seg := range l.Border {
			if seg.Mark {
				continue
			}
			switch {
			case seg.P1.Equal(last):
				points = append(points, seg.P2)
				seg.Mark = true
				advanced = true
			case seg.P2.Equal(last):
				points = append(points, seg.P1)
				seg.Mark = true
				advanced = true
			}
			if advanced {
				break
			}
		}
		if !advanced {
			break
		}
	}
	return points
}

package abita

import "github.com/cpmech/gosl/chk"

// Element is a single polygonal cell: the atomic unit of assignment. It
// belongs to one Floor and, once a Geometry is built, carries a contiguous
// Index used to look its lot assignment up in a Solution's distribution
// vector.
type Element struct {
	ID    int
	Floor int
	Index int // assigned by Geometry.AddElement; -1 until then

	Bonus float64

	Exit     bool // entrance; implies Imposed
	Common   bool // may belong to the common lot
	Imposed  bool // must belong to the common lot (stronger than Common)

	Area float64

	Points   []*Point
	Segments []*Segment

	// Mark is scratch state for callers that need a throwaway visited flag
	// outside a lot-connectivity check. No part of this package reads or
	// writes it.
	Mark bool
}

// NewElement creates an open (unclosed) element on the given floor.
func NewElement(floor, id int) *Element {
	return &Element{Floor: floor, ID: id, Index: -1}
}

// AddPoint appends a vertex to the element's (still open) polygon.
func (e *Element) AddPoint(p *Point) {
	if p == nil {
		chk.Panic("Element.AddPoint: nil point")
	}
	e.Points = append(e.Points, p)
}

// Close closes the element's polygon by repeating its first vertex, computes
// its area via the shoelace formula, and allocates an empty segment slot for
// each of the resulting nbPoints-1 edges. Close must run exactly once, after
// all vertices have been added and before Geometry.Build wires up segments.
func (e *Element) Close() {
	if len(e.Points) < 2 {
		chk.Panic("Element E%d.Close: not enough points to close a polygon", e.ID)
	}
	e.Points = append(e.Points, e.Points[0])

	var area float64
	p2 := e.Points[0]
	for i := 1; i < len(e.Points); i++ {
		p1 := p2
		p2 = e.Points[i]
		area += p2.X*p1.Y - p1.X*p2.Y
	}
	area *= 0.5
	if area < 0 {
		area = -area
	}
	if area == 0 {
		chk.Panic("Element E%d.Close: area is null", e.ID)
	}
	e.Area = area

	e.Segments = make([]*Segment, len(e.Points)-1)
}

// Lot returns the index of the lot this element is assigned to in sol, or -1
// if the element is not part of Geometry (Index < 0) or is unassigned.
func (e *Element) Lot(sol *Solution) int {
	if e.Index < 0 {
		return -1
	}
	return sol.Distribution[e.Index]
}

package abita

import "github.com/cpmech/gosl/chk"

// Geometry owns every Point, Element, Segment, and Floor of the problem and
// is treated as read-only once Build has run. It is the sole owner of these
// arenas: Solutions and Lots reference Elements by pointer/index into it,
// never by copy (SPEC_FULL.md §9).
type Geometry struct {
	Points   []*Point
	Elements []*Element
	Segments []*Segment
	Floors   []*Floor

	built bool
}

// NewGeometry creates an empty geometry.
func NewGeometry() *Geometry {
	return &Geometry{}
}

// AddPoint appends a point, rejecting nil and duplicate identifiers.
func (g *Geometry) AddPoint(p *Point) {
	if p == nil {
		chk.Panic("Geometry.AddPoint: nil point")
	}
	for _, q := range g.Points {
		if p.Equal(q) {
			chk.Panic("Geometry.AddPoint: point P%d already defined", p.ID)
		}
	}
	g.Points = append(g.Points, p)
}

// AddElement appends an element, assigning it a contiguous Index, and
// rejects nil and duplicate identifiers.
func (g *Geometry) AddElement(elt *Element) {
	if elt == nil {
		chk.Panic("Geometry.AddElement: nil element")
	}
	for _, e := range g.Elements {
		if e.ID == elt.ID && e.Floor == elt.Floor {
			chk.Panic("Geometry.AddElement: element E%d already defined", elt.ID)
		}
	}
	elt.Index = len(g.Elements)
	g.Elements = append(g.Elements, elt)
}

// AddFloor appends a floor, rejecting nil and duplicate identifiers.
func (g *Geometry) AddFloor(f *Floor) {
	if f == nil {
		chk.Panic("Geometry.AddFloor: nil floor")
	}
	for _, existing := range g.Floors {
		if existing.ID == f.ID {
			chk.Panic("Geometry.AddFloor: floor F%d already defined", f.ID)
		}
	}
	g.Floors = append(g.Floors, f)
}

// addSegment registers seg unless an equivalent segment (by unordered
// endpoint pair) is already known.
func (g *Geometry) addSegment(seg *Segment) {
	for _, s := range g.Segments {
		if s.Equal(seg) {
			return
		}
	}
	g.Segments = append(g.Segments, seg)
}

// Build closes every element's polygon, constructs the deduplicated segment
// list, binds each segment to its (up to two) incident elements, and
// buckets elements into their floors. It must run exactly once, after all
// points/elements/floors have been added.
//
// Complexity is O(E·S) against the brute-force segment search, matching the
// original; spec.md §4.A notes this may be replaced by a hash on unordered
// endpoint pairs without changing semantics (E is small in practice for this
// domain).
func (g *Geometry) Build() {
	if g.built {
		chk.Panic("Geometry.Build: already built")
	}

	for _, elt := range g.Elements {
		elt.Close()
	}

	for _, elt := range g.Elements {
		for i := 0; i < len(elt.Points)-1; i++ {
			seg := NewSegment(elt.Points[i], elt.Points[i+1])
			g.addSegment(seg)
		}
	}

	// brute-force connectivity: for each element's directed edge, find the
	// (deduplicated) segment that matches it and bind this element to it.
	for _, elt := range g.Elements {
		for i := 0; i < len(elt.Points)-1; i++ {
			p1, p2 := elt.Points[i], elt.Points[i+1]
			for _, seg := range g.Segments {
				if (p1.Equal(seg.P1) && p2.Equal(seg.P2)) || (p2.Equal(seg.P1) && p1.Equal(seg.P2)) {
					seg.SetElement(elt)
					elt.Segments[i] = seg
					break
				}
			}
		}
	}

	floorByID := make(map[int]*Floor, len(g.Floors))
	for _, f := range g.Floors {
		floorByID[f.ID] = f
	}
	for _, elt := range g.Elements {
		if f, ok := floorByID[elt.Floor]; ok {
			f.AddElement(elt)
		}
	}

	g.built = true
}

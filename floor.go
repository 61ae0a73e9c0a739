package abita

import "github.com/cpmech/gosl/chk"

// Floor groups the Elements that live on one level of the building.
type Floor struct {
	ID       int
	Elements []*Element
}

// NewFloor creates an empty floor.
func NewFloor(id int) *Floor {
	return &Floor{ID: id}
}

// AddElement appends elt to the floor, rejecting nil and duplicates.
func (f *Floor) AddElement(elt *Element) {
	if elt == nil {
		chk.Panic("Floor.AddElement: nil element")
	}
	for _, e := range f.Elements {
		if e == elt {
			chk.Panic("Floor.AddElement: element E%d already defined", elt.ID)
		}
	}
	f.Elements = append(f.Elements, elt)
}

package abita

import "github.com/cpmech/gosl/chk"

// Tx is a lot type: an area bracket and unit benefit against which a lot's
// area is scored, plus inclusive count bounds on how many lots of this type
// a solution may contain.
//
// The area bracket is half-open, (AreaMin, AreaMax]: spec.md §9 requires
// brackets to be non-overlapping so exactly one type matches any area, and
// this convention (strictly-greater-than-min, less-or-equal-max) is the one
// the original enforces.
type Tx struct {
	ID      int
	Benefit float64
	AreaMin float64
	AreaMax float64
	NbMin   int
	NbMax   int
}

// NewTx creates a type record. id must be unique within a Types catalog.
func NewTx(id int, benefit, areaMin, areaMax float64, nbMin, nbMax int) *Tx {
	return &Tx{ID: id, Benefit: benefit, AreaMin: areaMin, AreaMax: areaMax, NbMin: nbMin, NbMax: nbMax}
}

// Matches reports whether area falls in this type's half-open bracket.
func (t *Tx) Matches(area float64) bool {
	return area > t.AreaMin && area <= t.AreaMax
}

// Types is an insertion-ordered catalog of lot types.
type Types struct {
	List []*Tx
}

// NewTypes creates an empty catalog.
func NewTypes() *Types {
	return &Types{}
}

// Add appends t to the catalog, rejecting nil and duplicate identifiers.
func (ty *Types) Add(t *Tx) {
	if t == nil {
		chk.Panic("Types.Add: nil type")
	}
	for _, existing := range ty.List {
		if existing.ID == t.ID {
			chk.Panic("Types.Add: type T%d already exists", t.ID)
		}
	}
	ty.List = append(ty.List, t)
}

// defaultTypes installs the five-type catalog the Driver falls back to when
// no types have been configured, matching Algo._init's literal defaults.
func defaultTypes() *Types {
	ty := NewTypes()
	ty.Add(NewTx(1, 70, 30, 45, 0, 1000))
	ty.Add(NewTx(2, 80, 45, 60, 0, 1000))
	ty.Add(NewTx(3, 100, 60, 75, 0, 1000))
	ty.Add(NewTx(4, 50, 75, 85, 0, 1000))
	ty.Add(NewTx(5, 40, 85, 100, 0, 1000))
	return ty
}

package abita

import "github.com/cpmech/gosl/rnd"

// rndInit seeds gosl/rnd's package-global stream once per test process, the
// same stream RandomSeed draws from.
func rndInit() {
	rnd.Init(1)
}

// newGrid builds an nx*ny grid of unit squares (side length) on a single
// floor and returns it unbuilt, plus a lookup from (i,j) cell coordinates to
// the Element occupying that cell. Callers add flags (Common/Exit/Imposed)
// before calling Build.
func newGrid(nx, ny int, side float64) (*Geometry, map[[2]int]*Element) {
	g := NewGeometry()
	g.AddFloor(NewFloor(0))

	ptID := 0
	pts := make(map[[2]int]*Point)
	for i := 0; i <= nx; i++ {
		for j := 0; j <= ny; j++ {
			p := NewPoint(float64(i)*side, float64(j)*side, 0, ptID)
			g.AddPoint(p)
			pts[[2]int{i, j}] = p
			ptID++
		}
	}

	eltID := 0
	byCell := make(map[[2]int]*Element)
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			elt := NewElement(0, eltID)
			elt.AddPoint(pts[[2]int{i, j}])
			elt.AddPoint(pts[[2]int{i + 1, j}])
			elt.AddPoint(pts[[2]int{i + 1, j + 1}])
			elt.AddPoint(pts[[2]int{i, j + 1}])
			g.AddElement(elt)
			byCell[[2]int{i, j}] = elt
			eltID++
		}
	}
	return g, byCell
}

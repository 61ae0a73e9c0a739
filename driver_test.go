package abita

import "testing"

func smallProblemGeometry() *Geometry {
	g, cells := newGrid(2, 2, 1.0)
	cells[[2]int{0, 0}].Common = true
	cells[[2]int{0, 0}].Exit = true
	cells[[2]int{0, 0}].Imposed = true
	g.Build()
	return g
}

func TestDriverComputeLotBoundsIsPositive(t *testing.T) {
	d := NewDriver(smallProblemGeometry())
	d.Seed = 7
	// init installs the default catalog before computing the bounds; do the
	// same here, since maxLots is capped by the sum of the types' NbMax.
	d.Types = defaultTypes()
	maxLots, minLots := d.computeLotBounds()
	if maxLots <= 0 {
		t.Errorf("expected at least one candidate lot adjacent to the common lot, got maxLots=%d", maxLots)
	}
	if minLots < 1 {
		t.Errorf("minLots should never drop below 1, got %d", minLots)
	}
}

func TestDriverRunRespectsIterationBudget(t *testing.T) {
	d := NewDriver(smallProblemGeometry())
	d.Seed = 3
	d.NbSols = 5
	d.InitIT = 10
	d.EndIT = 10

	iters := 0
	for d.Run() {
		iters++
		if iters > d.InitIT+d.EndIT+1 {
			t.Fatalf("Run kept returning true past its configured iteration budget")
		}
	}
	if d.CurrentIteration() > d.InitIT+d.EndIT+1 {
		t.Errorf("final iteration count %d exceeds budget %d", d.CurrentIteration(), d.InitIT+d.EndIT)
	}
}

func TestDriverRunPopulatesPopulation(t *testing.T) {
	d := NewDriver(smallProblemGeometry())
	d.Seed = 11
	d.NbSols = 5
	d.InitIT = 20
	d.EndIT = 5

	for d.Run() {
	}
	if len(d.Pop.Solutions) == 0 {
		t.Errorf("expected at least one admissible solution to have been found over the seeding phase")
	}
}

package abita

import "testing"

// lotOverRow builds a row of n cells, assigns all of them to lot 1 (index
// 1, so lot 0 stays the reserved common lot), and returns the solution plus
// the n cells in order.
func lotOverRow(n int) (*Solution, []*Element) {
	g, cells := newGrid(n, 1, 1.0)
	g.Build()
	sol := NewSolution(g)
	row := make([]*Element, n)
	for i := 0; i < n; i++ {
		row[i] = cells[[2]int{i, 0}]
		sol.Distribution[row[i].Index] = 1
	}
	sol.SetLots()
	return sol, row
}

func TestLotStillConnexMiddleElementDisconnects(t *testing.T) {
	sol, row := lotOverRow(3)
	lot := sol.Lots[1]
	if lot.StillConnex(row[1]) {
		t.Errorf("removing the middle cell of a 3-in-a-row lot should disconnect it")
	}
}

func TestLotStillConnexEndElementStaysConnected(t *testing.T) {
	sol, row := lotOverRow(3)
	lot := sol.Lots[1]
	if !lot.StillConnex(row[0]) {
		t.Errorf("removing an end cell of a 3-in-a-row lot should keep it connected")
	}
}

func TestLotStillConnexImposedAlwaysFalse(t *testing.T) {
	sol, row := lotOverRow(3)
	lot := sol.Lots[1]
	row[0].Imposed = true
	if lot.StillConnex(row[0]) {
		t.Errorf("an imposed element should never report StillConnex=true")
	}
}

func TestLotMergeAndRemoveElementKeepBorderConsistent(t *testing.T) {
	g, cells := newGrid(2, 1, 1.0)
	g.Build()
	sol := NewSolution(g)
	lot := newLot(sol, 1)
	a := cells[[2]int{0, 0}]
	b := cells[[2]int{1, 0}]

	lot.MergeElement(a)
	if len(lot.Border) != 4 {
		t.Fatalf("a single cell's border should have 4 segments, got %d", len(lot.Border))
	}

	lot.MergeElement(b)
	if len(lot.Border) != 6 {
		t.Fatalf("two adjacent cells should expose 6 border segments (8 total minus 2 shared), got %d", len(lot.Border))
	}

	lot.RemoveElement(b)
	if len(lot.Border) != 4 {
		t.Errorf("removing b should restore a's standalone 4-segment border, got %d", len(lot.Border))
	}
}

func TestLotBorderPointsFormsClosedCycle(t *testing.T) {
	g, cells := newGrid(1, 1, 1.0)
	g.Build()
	sol := NewSolution(g)
	lot := newLot(sol, 1)
	lot.MergeElement(cells[[2]int{0, 0}])

	pts := lot.BorderPoints()
	if len(pts) != len(lot.Border) {
		t.Fatalf("expected one point per border segment (closed quad), got %d points for %d segments", len(pts), len(lot.Border))
	}
}

package abita

import "testing"

func TestPopulationInsertOrdersByDecreasingFitness(t *testing.T) {
	pop := NewPopulation()
	a := &Solution{Fitness: 1, Distribution: []int{0}}
	b := &Solution{Fitness: 3, Distribution: []int{1}}
	c := &Solution{Fitness: 2, Distribution: []int{2}}
	for _, s := range []*Solution{a, b, c} {
		if !pop.InsertSolution(s) {
			t.Fatalf("expected every distinct solution to be admitted into an unbounded population")
		}
	}
	want := []float64{3, 2, 1}
	for i, s := range pop.Solutions {
		if s.Fitness != want[i] {
			t.Errorf("position %d: expected fitness %v, got %v", i, want[i], s.Fitness)
		}
	}
}

func TestPopulationRejectsDuplicateSolution(t *testing.T) {
	pop := NewPopulation()
	a := &Solution{Fitness: 1, Distribution: []int{0, 1}}
	b := &Solution{Fitness: 1, Distribution: []int{0, 1}}
	pop.InsertSolution(a)
	if pop.InsertSolution(b) {
		t.Errorf("a solution with an identical distribution should be rejected as a duplicate")
	}
}

// With SizeMax=2, a tie at the capacity boundary is resolved by the
// "<=-scan, tie-break after peers" rule: the newest equal-fitness arrival is
// placed after its peers and dropped if that falls past capacity.
func TestPopulationSizeMaxTieBreak(t *testing.T) {
	pop := NewPopulation()
	pop.Resize(2)

	first := &Solution{Fitness: 5, Distribution: []int{0}}
	second := &Solution{Fitness: 5, Distribution: []int{1}}
	third := &Solution{Fitness: 5, Distribution: []int{2}}

	if !pop.InsertSolution(first) {
		t.Fatalf("expected first insert to be admitted")
	}
	if !pop.InsertSolution(second) {
		t.Fatalf("expected second insert to be admitted (population not yet full)")
	}
	if pop.InsertSolution(third) {
		t.Errorf("expected third equal-fitness insert to be rejected once the population is full at capacity 2")
	}
	if len(pop.Solutions) != 2 {
		t.Errorf("population should still hold exactly 2 solutions, got %d", len(pop.Solutions))
	}
}

func TestPopulationStatsOnEmptyIsZero(t *testing.T) {
	pop := NewPopulation()
	pop.Stats()
	if pop.MinFitness != 0 || pop.MaxFitness != 0 || pop.AvgFitness != 0 {
		t.Errorf("stats on an empty population should all be zero")
	}
}

func TestPopulationResizeTruncatesTail(t *testing.T) {
	pop := NewPopulation()
	pop.InsertSolution(&Solution{Fitness: 3, Distribution: []int{0}})
	pop.InsertSolution(&Solution{Fitness: 2, Distribution: []int{1}})
	pop.InsertSolution(&Solution{Fitness: 1, Distribution: []int{2}})
	pop.Resize(1)
	if len(pop.Solutions) != 1 || pop.Solutions[0].Fitness != 3 {
		t.Errorf("resizing down should keep only the highest-ranked solutions")
	}
}

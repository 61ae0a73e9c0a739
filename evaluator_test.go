package abita

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestEvaluateWorkedExample(t *testing.T) {
	g, cells := newGrid(3, 1, 1.0)
	cells[[2]int{0, 0}].Common = true
	cells[[2]int{0, 0}].Exit = true
	cells[[2]int{0, 0}].Imposed = true
	g.Build()

	sol := NewSolution(g)
	sol.Distribution[cells[[2]int{0, 0}].Index] = 0
	sol.Distribution[cells[[2]int{1, 0}].Index] = 1
	sol.Distribution[cells[[2]int{2, 0}].Index] = 1
	sol.SetLots()

	types := NewTypes()
	types.Add(NewTx(1, 10, 0, 5, 0, 10))
	eval := NewEvaluator(types, 0)
	eval.Evaluate(sol)

	// lot1 area = 2, benefit = 10 => raw lot fitness 20, normalized by its own
	// area back to the unit benefit of 10.
	chk.Scalar(t, "lot1 fitness", 1e-12, sol.Lots[1].Fitness, 10.0)
	if sol.Lots[1].TypeNo != 1 {
		t.Errorf("expected lot1 to match type 1, got %d", sol.Lots[1].TypeNo)
	}

	// overall fitness = 20 (raw) / (1 + 2) total area = 20/3.
	chk.Scalar(t, "solution fitness", 1e-12, sol.Fitness, 20.0/3.0)
}

func TestEvaluateZeroesFitnessOnCountBoundViolation(t *testing.T) {
	g, cells := newGrid(3, 1, 1.0)
	cells[[2]int{0, 0}].Common = true
	cells[[2]int{0, 0}].Exit = true
	cells[[2]int{0, 0}].Imposed = true
	g.Build()

	sol := NewSolution(g)
	sol.Distribution[cells[[2]int{0, 0}].Index] = 0
	sol.Distribution[cells[[2]int{1, 0}].Index] = 1
	sol.Distribution[cells[[2]int{2, 0}].Index] = 2
	sol.SetLots()

	types := NewTypes()
	types.Add(NewTx(1, 10, 0, 5, 0, 1)) // at most 1 lot of this type allowed
	eval := NewEvaluator(types, 0)
	eval.Evaluate(sol)

	if sol.Fitness != 0 {
		t.Errorf("expected fitness to be zeroed when NbMax is exceeded, got %v", sol.Fitness)
	}
}

func TestEvaluateZeroesFitnessWhenLotUntyped(t *testing.T) {
	g, cells := newGrid(3, 1, 1.0)
	cells[[2]int{0, 0}].Common = true
	cells[[2]int{0, 0}].Exit = true
	cells[[2]int{0, 0}].Imposed = true
	g.Build()

	sol := NewSolution(g)
	sol.Distribution[cells[[2]int{0, 0}].Index] = 0
	sol.Distribution[cells[[2]int{1, 0}].Index] = 1
	sol.Distribution[cells[[2]int{2, 0}].Index] = 2
	sol.SetLots()

	// area 1 matches no bracket at all: every apartment lot goes untyped.
	types := NewTypes()
	types.Add(NewTx(1, 10, 5, 10, 0, 10))
	eval := NewEvaluator(types, 0)
	eval.Evaluate(sol)

	if sol.Fitness != 0 {
		t.Errorf("expected fitness to be zeroed when a lot matches no type, got %v", sol.Fitness)
	}
}

package abita

import (
	"sort"
	"strings"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Population is a bounded, ordered (by decreasing fitness) collection of
// Solutions with no duplicates, plus running statistics.
type Population struct {
	Solutions []*Solution
	SizeMax   int

	NbTest     int
	MinFitness float64
	MaxFitness float64
	AvgFitness float64
}

// NewPopulation creates an empty population with an effectively unbounded
// capacity; call Resize to bound it.
func NewPopulation() *Population {
	return &Population{SizeMax: 1<<31 - 1}
}

// Resize changes the population's capacity, truncating the tail if
// shrinking below the current length. Negative values are rejected (no-op).
func (p *Population) Resize(sizeMax int) {
	if sizeMax < 0 {
		return
	}
	if sizeMax < len(p.Solutions) {
		p.Solutions = p.Solutions[:sizeMax]
	}
	p.SizeMax = sizeMax
}

// contains reports whether an equal solution is already present.
func (p *Population) contains(sol *Solution) bool {
	for _, s := range p.Solutions {
		if s.Equal(sol) {
			return true
		}
	}
	return false
}

// InsertSolution inserts sol at its rank-ordered position (by decreasing
// fitness) and reports whether it was admitted. Equal solutions are
// rejected as duplicates. Among equal-fitness candidates, sol is inserted
// after its peers (a ≤-scan, matching the original's tie-break rule); if
// that puts it past the last occupied slot and the population is already
// at capacity, it is rejected.
func (p *Population) InsertSolution(sol *Solution) bool {
	if len(p.Solutions) == 0 {
		if p.SizeMax <= 0 {
			return false
		}
		p.Solutions = append(p.Solutions, sol)
		return true
	}

	if p.contains(sol) {
		return false
	}
	p.NbTest++

	i := 0
	for i < len(p.Solutions) && sol.Fitness <= p.Solutions[i].Fitness {
		i++
	}

	if i == len(p.Solutions) {
		if len(p.Solutions) == p.SizeMax {
			return false
		}
		p.Solutions = append(p.Solutions, sol)
		return true
	}

	if len(p.Solutions) == p.SizeMax {
		p.Solutions = p.Solutions[:len(p.Solutions)-1]
	}
	p.Solutions = append(p.Solutions, nil)
	copy(p.Solutions[i+1:], p.Solutions[i:len(p.Solutions)-1])
	p.Solutions[i] = sol
	return true
}

// SortSolutions stable-sorts the population by decreasing fitness.
func (p *Population) SortSolutions() {
	sort.SliceStable(p.Solutions, func(i, j int) bool {
		return p.Solutions[i].Fitness > p.Solutions[j].Fitness
	})
}

// Stats recomputes Min/Max/AvgFitness over the current solution list. An
// empty population reports all-zero stats.
func (p *Population) Stats() {
	if len(p.Solutions) == 0 {
		p.MinFitness, p.MaxFitness, p.AvgFitness = 0, 0, 0
		return
	}
	sum := 0.0
	p.MinFitness = p.Solutions[0].Fitness
	p.MaxFitness = p.Solutions[0].Fitness
	for _, s := range p.Solutions {
		p.MinFitness = utl.Min(p.MinFitness, s.Fitness)
		p.MaxFitness = utl.Max(p.MaxFitness, s.Fitness)
		sum += s.Fitness
	}
	p.AvgFitness = sum / float64(len(p.Solutions))
}

// Report renders a ranked table of the population's fitnesses, in the same
// thick-line/thin-line bordered style as the teacher's Population.Output.
func (p *Population) Report() string {
	var b strings.Builder
	b.WriteString(utl.PrintThickLine(40) + "\n")
	b.WriteString(io.Sf("%6s%14s\n", "rank", "fitness"))
	b.WriteString(thinLine(40))
	for i, s := range p.Solutions {
		b.WriteString(io.Sf("%6d%14.6f\n", i, s.Fitness))
	}
	b.WriteString(utl.PrintThickLine(40) + "\n")
	return b.String()
}

// thinLine has no gosl/utl counterpart in the pack (only PrintThickLine is
// ever called there), so the thin separator stays hand-rolled.
func thinLine(n int) string { return strings.Repeat("-", n) + "\n" }

package abita

import (
	"runtime"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/rnd"
)

// Driver orchestrates the search: a random-seeding phase followed by a
// local-improvement (swap-neighborhood) phase, feeding every candidate
// Solution through an Evaluator and into a ranked Population.
type Driver struct {
	Geometry *Geometry
	Types    *Types
	Alpha    float64
	Pop      *Population

	// NbSols is the population capacity. Zero means "use the default of
	// 100" (spec.md 4.F).
	NbSols int

	// InitIT/EndIT are the random-seeding and local-improvement iteration
	// budgets. Negative means "compute a default from maxLots once init
	// runs" (250*maxLots / 10*maxLots per spec.md 4.F).
	InitIT int
	EndIT  int

	// Seed configures gosl/rnd's single logical random stream for
	// reproducibility, per spec.md §5 and §9's "inject an explicit RNG"
	// design note — gosl/rnd is itself a package-global stream (the same
	// shape as math/rand's top-level functions), so "injecting" it here
	// means the Driver is the one call site that seeds it, rather than
	// leaving it to whatever seeded it last.
	Seed int

	minLots, maxLots int
	currentIT        int
	initialized      bool

	eval *Evaluator
}

// NewDriver creates a driver over g with an empty, unbounded population.
// Configure NbSols/InitIT/EndIT/Alpha/Types and call Run repeatedly.
func NewDriver(g *Geometry) *Driver {
	return &Driver{
		Geometry: g,
		Types:    NewTypes(),
		InitIT:   -1,
		EndIT:    -1,
		Pop:      NewPopulation(),
	}
}

// Evaluate scores sol against the Driver's type catalog and alpha
// coefficient. Exposed so callers (tests, the CLI re-evaluating a loaded
// file) can score a solution without running the whole search loop.
func (d *Driver) Evaluate(sol *Solution) {
	if d.eval == nil {
		d.eval = NewEvaluator(d.Types, d.Alpha)
	}
	d.eval.Evaluate(sol)
}

// CurrentIteration returns the number of completed Run calls.
func (d *Driver) CurrentIteration() int {
	return d.currentIT
}

// init lazily prepares the driver on the first Run call: installs the
// default type catalog if none was configured, computes maxLots/minLots
// from the geometry's common-element frontier, defaults InitIT/EndIT,
// resizes and evaluates the initial population.
func (d *Driver) init() {
	must(d.Geometry != nil, "Driver.init: Geometry is nil")

	if d.NbSols <= 0 {
		d.NbSols = 100
	}
	if len(d.Types.List) == 0 {
		d.Types = defaultTypes()
	}
	d.eval = NewEvaluator(d.Types, d.Alpha)
	rnd.Init(d.Seed)

	d.maxLots, d.minLots = d.computeLotBounds()

	if d.InitIT < 0 {
		d.InitIT = 250 * d.maxLots
	}
	if d.EndIT < 0 {
		d.EndIT = 10 * d.maxLots
	}

	must(d.NbSols > 0, "Driver.init: NbSols must be positive, got %d", d.NbSols)
	d.Pop.Resize(d.NbSols)
	for _, sol := range d.Pop.Solutions {
		d.Evaluate(sol)
	}
	d.Pop.Stats()

	d.initialized = true
}

// computeLotBounds derives maxLots (the number of distinct elements
// bordering the common lot, capped by the sum of each type's NbMax) and
// minLots (at least 1, raised to the sum of each type's NbMin), per
// spec.md 4.F step 1-2.
func (d *Driver) computeLotBounds() (maxLots, minLots int) {
	sol := NewSolution(d.Geometry)
	lot := newLot(sol, 0)
	for _, elt := range d.Geometry.Elements {
		if elt.Common {
			lot.AddElement(elt)
		}
	}
	lot.BuildBorder()

	seen := make(map[int]bool)
	for _, seg := range lot.Border {
		elt := lot.borderNeighbor(seg)
		if elt != nil {
			seen[elt.Index] = true
		}
	}
	maxLots = len(seen)

	sumMax := 0
	for _, t := range d.Types.List {
		sumMax += t.NbMax
	}
	if maxLots > sumMax {
		maxLots = sumMax
	}

	minLots = 1
	sumMin := 0
	for _, t := range d.Types.List {
		sumMin += t.NbMin
	}
	if minLots < sumMin {
		minLots = sumMin
	}
	return maxLots, minLots
}

// Run advances the search by one iteration and reports whether another call
// would do useful work. The first call runs init and sorts the starting
// population. Returns false once the iteration budget (InitIT+EndIT) is
// exhausted, or once an improvement-phase iteration promotes nothing.
func (d *Driver) Run() bool {
	if !d.initialized {
		d.init()
		d.Pop.SortSolutions()
	}

	d.currentIT++
	if d.currentIT > d.InitIT+d.EndIT {
		return false
	}

	if d.currentIT <= d.InitIT {
		d.runSeedingIteration()
	} else {
		if !d.runImprovementIteration() {
			return false
		}
	}

	d.Pop.Stats()
	return true
}

// runSeedingIteration implements spec.md 4.F's "iter <= initIT" branch: one
// fresh random solution is built, evaluated, and offered to the population;
// if admitted, its whole swap-neighborhood is explored and promoted.
func (d *Driver) runSeedingIteration() {
	sol := NewSolution(d.Geometry)
	nbSeeds := randInRange(d.minLots, d.maxLots)
	if err := sol.RandomSeed(nbSeeds); err != nil {
		return
	}
	d.Evaluate(sol)

	if !d.Pop.InsertSolution(sol) {
		return
	}
	d.expandNeighborhood(sol)
}

// runImprovementIteration implements spec.md 4.F's "iter > initIT" branch:
// every solution currently in the population has its full swap-neighborhood
// explored; returns false (meaning "converged, stop") iff nothing from any
// solution's neighborhood was promoted into the main population this
// iteration — even if some were merely admitted into the scratch
// population under capacity, per spec.md §9's explicit note to preserve
// this exact behavior.
func (d *Driver) runImprovementIteration() bool {
	scratch := NewPopulation()
	scratch.Resize(d.NbSols)

	type job struct{ lotID, segID int }
	var jobs []job
	var bases []*Solution
	for _, base := range d.Pop.Solutions {
		for j, lot := range base.Lots {
			for k := range lot.Border {
				jobs = append(jobs, job{j, k})
				bases = append(bases, base)
			}
		}
	}

	candidates := d.evaluateSwapsParallel(bases, jobs)
	for _, cand := range candidates {
		scratch.InsertSolution(cand)
	}

	promoted := 0
	for _, cand := range scratch.Solutions {
		if d.Pop.InsertSolution(cand) {
			promoted++
		}
	}
	return promoted > 0
}

// expandNeighborhood explores every (lot, border segment) swap of sol,
// scoring each clone and collecting the admissible ones into a scratch
// population before attempting to promote them into the main population —
// spec.md 4.F's seeding-phase swap exploration.
func (d *Driver) expandNeighborhood(sol *Solution) {
	scratch := NewPopulation()
	scratch.Resize(len(d.Pop.Solutions))

	type job struct{ lotID, segID int }
	var jobs []job
	var bases []*Solution
	for j, lot := range sol.Lots {
		for k := range lot.Border {
			jobs = append(jobs, job{j, k})
			bases = append(bases, sol)
		}
	}

	candidates := d.evaluateSwapsParallel(bases, jobs)
	for _, cand := range candidates {
		scratch.InsertSolution(cand)
	}
	for _, cand := range scratch.Solutions {
		d.Pop.InsertSolution(cand)
	}
}

// evaluateSwapsParallel clones each bases[i], applies Swap(lotID, segID),
// and evaluates the clone, fanning the (pure, per spec.md §5) clone+swap+
// evaluate work out across a bounded worker pool. It returns only the
// clones whose swap actually applied; population insertion — the one step
// spec.md §5 requires to stay serialized — happens in the caller.
func (d *Driver) evaluateSwapsParallel(bases []*Solution, jobs []struct{ lotID, segID int }) []*Solution {
	results := make([]*Solution, len(jobs))

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}
	if workers == 0 {
		return nil
	}

	var wg sync.WaitGroup
	idx := make(chan int, len(jobs))
	for i := range jobs {
		idx <- i
	}
	close(idx)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				clone := NewSolutionFrom(bases[i])
				if !clone.Swap(jobs[i].lotID, jobs[i].segID) {
					continue
				}
				d.Evaluate(clone)
				results[i] = clone
			}
		}()
	}
	wg.Wait()

	out := results[:0]
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// randInRange draws an int uniformly in [low, high], matching Algo._rnd's
// int overload (spec.md 4.F).
func randInRange(low, high int) int {
	if high <= low {
		return low
	}
	return rnd.Int(low, high)
}

// must is a small guard used where an invariant violation should panic via
// gosl/chk rather than silently proceed (spec.md §7).
func must(cond bool, format string, args ...interface{}) {
	if !cond {
		chk.Panic(format, args...)
	}
}

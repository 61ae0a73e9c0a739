// Package abifile reads and writes the .abi text format: a line-oriented
// command language describing a floor-partitioning problem (geometry, lot
// types, algorithm parameters) and, optionally, a set of already-computed
// solutions.
//
// There is no parser-generator library wired into this module, so the
// grammar is handled by a small hand-written tokenizer and line dispatcher
// instead of a generated parser.
package abifile

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cpmech/gosl/io"

	abita "github.com/Laurent-Lescop/ABITA"
)

// ParseError reports a malformed .abi line, carrying its 1-based line number.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("abifile: line %d: %s", e.Line, e.Msg)
}

func parseErrf(line int, format string, args ...interface{}) error {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Read loads a .abi file into a fresh Driver: its Geometry is built, its
// Types catalog and A-parameters are installed, and any S/L solutions found
// in the file are evaluated and inserted into its Population.
func Read(path string) (*abita.Driver, error) {
	raw, err := io.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("abifile: cannot read %q: %w", path, err)
	}

	p := newParser()
	lines := strings.Split(string(raw), "\n")
	for i, line := range lines {
		if err := p.parseLine(i+1, line); err != nil {
			return nil, err
		}
	}

	geo := p.geo
	geo.Build()

	d := abita.NewDriver(geo)
	d.Types = p.types
	d.NbSols = p.nbSols
	d.InitIT = p.initIT
	d.EndIT = p.endIT
	d.Alpha = p.alpha
	if d.NbSols > 0 {
		d.Pop.Resize(d.NbSols)
	}

	for _, sol := range p.solutions {
		d.Evaluate(sol)
		d.Pop.InsertSolution(sol)
	}
	d.Pop.Stats()

	return d, nil
}

// Write saves d's geometry, type catalog, algorithm parameters, and current
// population to path in .abi format.
func Write(path string, d *abita.Driver) error {
	var b bytes.Buffer

	b.WriteString(io.Sf("A1\t%d\n", d.InitIT))
	b.WriteString(io.Sf("A2\t%d\n", d.EndIT))
	b.WriteString(io.Sf("A3\t%d\n", d.NbSols))
	b.WriteString(io.Sf("A4\t%.2f\n", d.Alpha))

	for _, t := range d.Types.List {
		b.WriteString(io.Sf("T%d\t%.2f\t%.2f\t%.2f\t%d\t%d\n",
			t.ID, t.Benefit, t.AreaMin, t.AreaMax, t.NbMin, t.NbMax))
	}

	for floorIdx, floor := range d.Geometry.Floors {
		b.WriteString(io.Sf("F%d\n", floor.ID))

		for _, pt := range d.Geometry.Points {
			if pt.Floor == floorIdx {
				b.WriteString(io.Sf("P%d\t%.2f\t%.2f\n", pt.ID, pt.X, pt.Y))
			}
		}

		for _, elt := range floor.Elements {
			b.WriteString(io.Sf("E%d\t%d", elt.ID, len(elt.Points)-1))
			for _, pt := range elt.Points[:len(elt.Points)-1] {
				b.WriteString(io.Sf("\t%d", pt.ID))
			}
			b.WriteString("\n")
		}
		for _, elt := range floor.Elements {
			if elt.Common && !elt.Imposed {
				b.WriteString(io.Sf("C%d\n", elt.ID))
			}
		}
		for _, elt := range floor.Elements {
			if elt.Imposed && !elt.Exit {
				b.WriteString(io.Sf("I%d\n", elt.ID))
			}
		}
		for _, elt := range floor.Elements {
			if elt.Exit {
				b.WriteString(io.Sf("X%d\n", elt.ID))
			}
		}
		for _, elt := range floor.Elements {
			if elt.Bonus != 0 {
				b.WriteString(io.Sf("B%d\t%.2f\n", elt.ID, elt.Bonus))
			}
		}
	}

	for i, sol := range d.Pop.Solutions {
		b.WriteString(io.Sf("S%d\t%.2f\n", i, sol.Fitness))
		for j, lot := range sol.Lots {
			b.WriteString(io.Sf("L%d\t%d\t%.2f\t%d", j, lot.TypeNo, lot.Fitness, len(lot.Elements)))
			ordered := append([]*abita.Element(nil), lot.Elements...)
			sort.Slice(ordered, func(a, bIdx int) bool { return ordered[a].ID < ordered[bIdx].ID })
			for _, elt := range ordered {
				b.WriteString(io.Sf("\t%d", elt.ID))
			}
			b.WriteString("\n")
		}
	}

	io.WriteFileD(dirOf(path), baseOf(path), &b)
	return nil
}

func dirOf(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return "."
	}
	return path[:i]
}

func baseOf(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return path
	}
	return path[i+1:]
}

// parser holds the mutable state of a single .abi parse pass.
type parser struct {
	geo   *abita.Geometry
	types *abita.Types

	initIT, endIT, nbSols int
	alpha                 float64

	floorIdx     int
	pointsByID   map[int]*abita.Point
	elementsByID map[int]*abita.Element

	solutions []*abita.Solution
	curSol    *abita.Solution
}

func newParser() *parser {
	return &parser{
		geo:          abita.NewGeometry(),
		types:        abita.NewTypes(),
		floorIdx:     -1,
		pointsByID:   make(map[int]*abita.Point),
		elementsByID: make(map[int]*abita.Element),
	}
}

// parseLine dispatches a single source line by its command letter. Blank
// lines and '#' comments are ignored. A panic raised by the core while
// applying the line (e.g. a duplicate T/P/E/F identifier) is returned as a
// *ParseError carrying this line's number.
func (p *parser) parseLine(lineno int, raw string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = parseErrf(lineno, "%v", r)
		}
	}()
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	fields := strings.Fields(line)
	head := fields[0]

	cmd := head[0]
	id, err := parseNatural(head[1:])
	if err != nil {
		return parseErrf(lineno, "bad command identifier %q: %v", head, err)
	}
	args := fields[1:]

	switch cmd {
	case 'A':
		return p.parseParam(lineno, id, args)
	case 'T':
		return p.parseType(lineno, id, args)
	case 'F':
		return p.parseFloor(lineno, id)
	case 'P':
		return p.parsePoint(lineno, id, args)
	case 'E':
		return p.parseElement(lineno, id, args)
	case 'C':
		return p.withElement(lineno, id, func(e *abita.Element) { e.Common = true })
	case 'I':
		return p.withElement(lineno, id, func(e *abita.Element) { e.Common, e.Imposed = true, true })
	case 'X':
		return p.withElement(lineno, id, func(e *abita.Element) { e.Common, e.Imposed, e.Exit = true, true, true })
	case 'B':
		return p.parseBonus(lineno, id, args)
	case 'S':
		return p.parseSolution(lineno, id, args)
	case 'L':
		return p.parseLot(lineno, id, args)
	default:
		return parseErrf(lineno, "unknown command %q", head)
	}
}

func (p *parser) parseParam(lineno, id int, args []string) error {
	v, err := parseFloats(lineno, args, 1)
	if err != nil {
		return err
	}
	switch id {
	case 1:
		p.initIT = int(v[0])
	case 2:
		p.endIT = int(v[0])
	case 3:
		p.nbSols = int(v[0])
	case 4:
		p.alpha = v[0]
	default:
		return parseErrf(lineno, "parameter A%d does not exist", id)
	}
	return nil
}

func (p *parser) parseType(lineno, id int, args []string) error {
	v, err := parseFloats(lineno, args, 5)
	if err != nil {
		return err
	}
	p.types.Add(abita.NewTx(id, v[0], v[1], v[2], int(v[3]), int(v[4])))
	return nil
}

func (p *parser) parseFloor(lineno, id int) error {
	p.geo.AddFloor(abita.NewFloor(id))
	p.floorIdx = len(p.geo.Floors) - 1
	return nil
}

func (p *parser) parsePoint(lineno, id int, args []string) error {
	v, err := parseFloats(lineno, args, 2)
	if err != nil {
		return err
	}
	if p.floorIdx < 0 {
		return parseErrf(lineno, "point P%d defined before any floor", id)
	}
	pt := abita.NewPoint(v[0], v[1], p.floorIdx, id)
	p.geo.AddPoint(pt)
	p.pointsByID[id] = pt
	return nil
}

func (p *parser) parseElement(lineno, id int, args []string) error {
	if len(args) < 1 {
		return parseErrf(lineno, "element E%d: missing point count", id)
	}
	nbPts, err := parseNatural(args[0])
	if err != nil {
		return parseErrf(lineno, "element E%d: bad point count: %v", id, err)
	}
	ptIDs := args[1:]
	if len(ptIDs) != nbPts {
		return parseErrf(lineno, "element E%d has wrong number of points", id)
	}
	if p.floorIdx < 0 {
		return parseErrf(lineno, "element E%d defined before any floor", id)
	}

	elt := abita.NewElement(p.floorIdx, id)
	for _, s := range ptIDs {
		ptID, err := parseNatural(s)
		if err != nil {
			return parseErrf(lineno, "element E%d: bad point id %q", id, s)
		}
		pt, ok := p.pointsByID[ptID]
		if !ok {
			return parseErrf(lineno, "element E%d references undefined point P%d", id, ptID)
		}
		elt.AddPoint(pt)
	}
	p.geo.AddElement(elt)
	p.elementsByID[id] = elt
	return nil
}

func (p *parser) withElement(lineno, id int, fn func(*abita.Element)) error {
	elt, ok := p.elementsByID[id]
	if !ok {
		return parseErrf(lineno, "reference to undefined element E%d", id)
	}
	fn(elt)
	return nil
}

func (p *parser) parseBonus(lineno, id int, args []string) error {
	v, err := parseFloats(lineno, args, 1)
	if err != nil {
		return err
	}
	elt, ok := p.elementsByID[id]
	if !ok {
		return parseErrf(lineno, "bonus on undefined element E%d", id)
	}
	elt.Bonus = v[0]
	return nil
}

func (p *parser) parseSolution(lineno, id int, args []string) error {
	v, err := parseFloats(lineno, args, 1)
	if err != nil {
		return err
	}
	sol := abita.NewSolution(p.geo)
	sol.Fitness = v[0]
	p.solutions = append(p.solutions, sol)
	p.curSol = sol
	return nil
}

func (p *parser) parseLot(lineno, lotID int, args []string) error {
	if p.curSol == nil {
		return parseErrf(lineno, "lot L%d defined before any solution", lotID)
	}
	if len(args) < 3 {
		return parseErrf(lineno, "lot L%d: missing fields", lotID)
	}
	typeNo, err := parseNatural(args[0])
	if err != nil {
		return parseErrf(lineno, "lot L%d: bad type number: %v", lotID, err)
	}
	_, err = strconv.ParseFloat(args[1], 64)
	if err != nil {
		return parseErrf(lineno, "lot L%d: bad fitness: %v", lotID, err)
	}
	nbElt, err := parseNatural(args[2])
	if err != nil {
		return parseErrf(lineno, "lot L%d: bad element count: %v", lotID, err)
	}
	eltIDs := args[3:]
	if len(eltIDs) != nbElt {
		return parseErrf(lineno, "lot L%d has wrong number of elements", lotID)
	}
	_ = typeNo // the lot's type/fitness are recomputed by Evaluate after load

	for _, s := range eltIDs {
		eltID, err := parseNatural(s)
		if err != nil {
			return parseErrf(lineno, "lot L%d: bad element id %q", lotID, s)
		}
		elt, ok := p.elementsByID[eltID]
		if !ok {
			return parseErrf(lineno, "lot L%d references undefined element E%d", lotID, eltID)
		}
		p.curSol.Distribution[elt.Index] = lotID
	}
	return nil
}

func parseNatural(s string) (int, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 || v != float64(int(v)) {
		return 0, fmt.Errorf("expected a natural number, got %v", v)
	}
	return int(v), nil
}

func parseFloats(lineno int, args []string, n int) ([]float64, error) {
	if len(args) < n {
		return nil, parseErrf(lineno, "expected %d numeric field(s), got %d", n, len(args))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, parseErrf(lineno, "bad number %q: %v", args[i], err)
		}
		out[i] = v
	}
	return out, nil
}

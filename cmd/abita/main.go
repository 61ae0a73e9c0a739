// Command abita reads a .abi floor-partitioning problem, runs the solver
// to convergence, and writes the resulting population back to a .abi file.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/cpmech/gosl/io"

	abita "github.com/Laurent-Lescop/ABITA"
	"github.com/Laurent-Lescop/ABITA/abifile"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	io.PfYel("%s\n", strings.Repeat("#", 37))
	io.PfYel("##              ABITA              ##\n")
	io.PfYel("%s\n", strings.Repeat("#", 37))

	fnIn, fnOut, err := fileNames(os.Args[1:])
	if err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
	io.Pf("input file:  %s\n", fnIn)
	io.Pf("output file: %s\n", fnOut)

	d, err := abifile.Read(fnIn)
	if err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}

	solve(d)

	if err := abifile.Write(fnOut, d); err != nil {
		io.PfRed("ERROR: %v\n", err)
		os.Exit(1)
	}
	io.Pfcyan("\nresults saved in %s\n", fnOut)
}

// fileNames resolves the input/output paths from the command line, prompting
// interactively when neither is given, and appends the .abi extension where
// missing.
func fileNames(args []string) (fnIn, fnOut string, err error) {
	switch len(args) {
	case 0:
		fnIn = prompt("input file name: ")
		fnOut = prompt("output file name (blank for default): ")
	case 1:
		fnIn = args[0]
	case 2:
		fnIn = args[0]
		fnOut = args[1]
	default:
		return "", "", fmt.Errorf("usage: abita [input.abi] [output.abi]")
	}
	if fnIn == "" {
		return "", "", fmt.Errorf("an input file name is required")
	}
	fnIn = withExt(fnIn)
	if fnOut == "" {
		fnOut = fnIn[:len(fnIn)-len(".abi")] + "_solved.abi"
	}
	fnOut = withExt(fnOut)
	return fnIn, fnOut, nil
}

func withExt(name string) string {
	if strings.HasSuffix(name, ".abi") {
		return name
	}
	return name + ".abi"
}

func prompt(msg string) string {
	io.Pf("%s", msg)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Scan()
	return strings.TrimSpace(scanner.Text())
}

// solve runs the driver to convergence, printing progress the way the
// original command-line tool does: every 1000th seeding iteration, then
// every improvement iteration.
func solve(d *abita.Driver) {
	io.Pf("\n%6s%12s%12s%12s\n", "iter", "min", "avg", "max")
	io.Pf("%s\n", strings.Repeat("-", 42))
	for d.Run() {
		it := d.CurrentIteration()
		if it%1000 == 0 || it > d.InitIT {
			io.Pf("%6d%12.2f%12.2f%12.2f\n", it, d.Pop.MinFitness, d.Pop.AvgFitness, d.Pop.MaxFitness)
		}
	}
	io.Pf("%s\n", strings.Repeat("-", 42))
}

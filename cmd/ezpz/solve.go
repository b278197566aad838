package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ezpz"
	"ezpz/problemfile"
	"ezpz/viz"
)

var (
	flagFilepath       string
	flagGnuplot        bool
	flagGnuplotPNGPath string
	flagShowPoints     bool
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a textual problem file",
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&flagFilepath, "filepath", "f", "", "path to the problem file, or '-' for stdin")
	solveCmd.Flags().BoolVar(&flagGnuplot, "gnuplot", false, "render the solution to solution.png")
	solveCmd.Flags().StringVar(&flagGnuplotPNGPath, "gnuplot-png-path", "", "render the solution to this PNG path")
	solveCmd.Flags().BoolVar(&flagShowPoints, "show-points", false, "print each point's final coordinates")
	solveCmd.MarkFlagsMutuallyExclusive("gnuplot", "gnuplot-png-path")
	_ = solveCmd.MarkFlagRequired("filepath")
}

func runSolve(cmd *cobra.Command, args []string) error {
	src, closeSrc, err := readProblem(flagFilepath)
	if err != nil {
		return fmt.Errorf("reading problem file: %w", err)
	}
	defer closeSrc()

	cfg := ezpz.DefaultConfig()
	doc, err := problemfile.Parse(src, cfg.DeadbandArc)
	if err != nil {
		return fmt.Errorf("parsing problem file: %w", err)
	}

	logger := logrus.NewEntry(logrus.StandardLogger())
	soln, err := ezpz.SolveWithProgress(doc.Requests, doc.Guesses, doc.NCols(), cfg, nil, logger)
	if err != nil {
		// Every error SolveWithProgress can return - unsatisfiable,
		// diverged, stalled, singular, iteration limit, cancelled - means
		// the solve itself did not fully succeed, not that the input was
		// malformed. That distinction is exit code 1 here; exit code 2 is
		// reserved for the parse/IO failures already returned above.
		fmt.Printf("solve did not fully succeed: %v\n", err)
		if !soln.IsSatisfied() {
			fmt.Printf("unsatisfied constraints: %v\n", soln.Unsatisfied())
		}
		printSolution(doc, soln)
		os.Exit(1)
	}

	fmt.Printf("Iterations needed: %d\n", soln.Iterations())
	fmt.Printf("Residual norm: %.3e\n", soln.ResidualNorm())
	printSolution(doc, soln)

	if flagGnuplot || flagGnuplotPNGPath != "" {
		path := flagGnuplotPNGPath
		if path == "" {
			path = "solution.png"
		}
		if err := renderSolution(doc, soln, path); err != nil {
			return fmt.Errorf("rendering solution: %w", err)
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

func printSolution(doc *problemfile.Document, soln *ezpz.Solution) {
	if !flagShowPoints {
		return
	}
	fmt.Println("Points:")
	for _, name := range problemfile.SortedNames(doc) {
		p := doc.Points[name]
		pt := soln.FinalValuePoint(&p)
		fmt.Printf("\t%s: (%.2f, %.2f)\n", name, pt.X, pt.Y)
	}
}

func renderSolution(doc *problemfile.Document, soln *ezpz.Solution, path string) error {
	values := soln.FinalValues()
	scene := viz.Scene{}
	for _, name := range problemfile.SortedNames(doc) {
		p := doc.Points[name]
		scene.Points = append(scene.Points, viz.Point{X: values[p.X], Y: values[p.Y], Label: name})
	}
	return viz.RenderPNG(scene, path, 600, 600)
}

func readProblem(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, func() {}, err
	}
	return f, func() { f.Close() }, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ezpz/internal/bigproblem"
)

var (
	flagExtraLines int
	flagOutputPath string
)

var genBigProblemCmd = &cobra.Command{
	Use:   "gen-big-problem",
	Short: "Write a chain-of-parallel-segments stress-test problem file",
	RunE:  runGenBigProblem,
}

func init() {
	genBigProblemCmd.Flags().IntVar(&flagExtraLines, "extra-lines", bigproblem.DefaultExtraLines, "chain length knob; default produces a 1000-point, 2000-constraint system")
	genBigProblemCmd.Flags().StringVarP(&flagOutputPath, "output", "o", "-", "output path, or '-' for stdout")
}

func runGenBigProblem(cmd *cobra.Command, args []string) error {
	text := bigproblem.Text(flagExtraLines)

	if flagOutputPath == "-" {
		fmt.Print(text)
		return nil
	}
	return os.WriteFile(flagOutputPath, []byte(text), 0o644)
}

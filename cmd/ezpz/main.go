// Command ezpz is the textual-problem-file front end: read a problem file,
// solve it, and either report the result on stdout or render it to a PNG.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ezpz",
	Short: "Solve 2D geometric constraint systems from a textual problem file",
}

func init() {
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(genBigProblemCmd)
}

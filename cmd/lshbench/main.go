// Command lshbench measures recall and latency of the LSH index on a seeded
// synthetic dataset and prints the theoretical collision probabilities for a
// choice of tables and bits.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lshbench",
	Short: "Evaluate random-hyperplane LSH parameters",
	Long: `lshbench builds LSH indexes over a synthetic clustered dataset and
reports recall@k against brute force, mean candidate counts and query latency.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newParamsCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

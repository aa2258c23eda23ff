// Package cmd provides fragid's CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fragid",
	Short: "fragid - MS2 fragmentation tree identification",
	Long: `fragid identifies plausible neutral-loss fragmentation trees for small
molecules from MS2 (and optionally MS1) mass spectrometry experiments.

It builds a fragmentation DAG per candidate precursor formula, extracts the
highest-scoring colorful subtree, and optionally recalibrates and re-solves
using a robust mass-shift fit.`,
	Version: "0.1.0",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

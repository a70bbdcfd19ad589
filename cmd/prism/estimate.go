package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newthinker/prism/internal/sweep"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate name=min:max:step ...",
	Short: "Estimate the size of a parameter search space",
	Long: `Estimate how many parameter combinations a sweep would run.
Each argument declares one dimension, for example:

  prism estimate fast=5:50:5 slow=20:200:20`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEstimate,
}

func init() {
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	ranges, err := sweep.ParseRangeSpecs(args)
	if err != nil {
		return err
	}

	total, err := sweep.Estimate(ranges)
	if err != nil {
		return err
	}

	for name, r := range ranges {
		steps, _ := r.Steps()
		fmt.Printf("%s: %g to %g step %g (%d values)\n", name, r.Min, r.Max, r.Step, steps)
	}
	fmt.Printf("total combinations: %d\n", total)
	return nil
}

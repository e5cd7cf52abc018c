// Package cmd provides the commands of the estimate CLI.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the cost of a domestic trip",
		Long: `estimate prices a trip from the fixed rate card: hotel nights,
return flights per traveler and local transport per day.

Examples:
  estimate quote --destination Goa --from 2026-01-01 --to 2026-01-07 --travelers 2
  estimate quote --destination Kerala --no-flights --transport Train --format json
  estimate rates`,
		SilenceUsage: true,
	}
	root.AddCommand(newQuoteCmd())
	root.AddCommand(newRatesCmd())
	return root
}

// Execute runs the CLI
func Execute() error {
	return NewRootCmd().Execute()
}

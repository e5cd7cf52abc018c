package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/indianhorizon/tripplanner/internal/estimator"
)

func newRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "Print the rate card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printRates(cmd.OutOrStdout())
		},
	}
}

func printRates(out io.Writer) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Destinations:\t%s\n", joinDestinations())
	fmt.Fprintf(w, "Flights:\t%s per traveler\n", inr(estimator.FlightRatePerPerson))
	for _, m := range estimator.TransportModes {
		fmt.Fprintf(w, "%s:\t%s per day\n", m, inr(estimator.TransportRate(m)))
	}
	fmt.Fprintf(w, "Hotel:\t%s to %s per night\n", inr(estimator.MinHotelPrice), inr(estimator.MaxHotelPrice))
	fmt.Fprintf(w, "Stars:\t%d to %d\n", estimator.MinStarRating, estimator.MaxStarRating)
	fmt.Fprintf(w, "Travelers:\t%d to %d\n", estimator.MinTravelers, estimator.MaxTravelers)
	return w.Flush()
}
